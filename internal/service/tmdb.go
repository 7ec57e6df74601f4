package service

import (
	"fmt"
	"net/url"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/user/watchscape/internal/config"
	"github.com/user/watchscape/internal/utils"
)

// MovieSummary TMDB 搜索/热门结果条目，保持 TMDB 原始字段名透传给前端
type MovieSummary struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	Overview    string  `json:"overview"`
	VoteAverage float64 `json:"vote_average"`
	GenreIDs    []int   `json:"genre_ids"`
}

// MovieDetails TMDB 影片详情（补全快照用的子集）
type MovieDetails struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	Overview    string  `json:"overview"`
	VoteAverage float64 `json:"vote_average"`
}

type movieListResponse struct {
	Results []MovieSummary `json:"results"`
}

// TMDBService 目录 API 客户端。
// 搜索/热门结果走 LRU 缓存，详情走全局缓存，
// 并发的相同请求用 singleflight 合并成一次上游调用。
type TMDBService struct {
	baseURL     string
	client      *utils.HTTPClient
	group       singleflight.Group
	searchCache *utils.LRUCache[[]MovieSummary]
}

func NewTMDBService(cfg *config.Config) *TMDBService {
	headers := map[string]string{}
	if cfg.TMDBToken != "" {
		headers["Authorization"] = "Bearer " + cfg.TMDBToken
	}
	return &TMDBService{
		baseURL:     cfg.TMDBBaseURL,
		client:      utils.NewHTTPClient(time.Duration(cfg.TMDBTimeout)*time.Second, headers),
		searchCache: utils.NewLRUCache[[]MovieSummary](1000, time.Hour),
	}
}

// Search 按标题搜索影片
func (s *TMDBService) Search(query string) ([]MovieSummary, error) {
	key := "search:" + query
	if cached, ok := s.searchCache.Get(key); ok {
		return cached, nil
	}

	// 使用 singleflight 避免并发重复请求
	val, err, _ := s.group.Do(key, func() (interface{}, error) {
		reqURL := fmt.Sprintf("%s/search/movie?query=%s&language=en-US&page=1&include_adult=false",
			s.baseURL, url.QueryEscape(query))
		var resp movieListResponse
		if err := s.client.GetJSON(reqURL, &resp); err != nil {
			return nil, err
		}
		s.searchCache.Set(key, resp.Results)
		return resp.Results, nil
	})
	if err != nil {
		return nil, err
	}
	return val.([]MovieSummary), nil
}

// Popular 热门影片
func (s *TMDBService) Popular() ([]MovieSummary, error) {
	key := "popular"
	if cached, ok := s.searchCache.Get(key); ok {
		return cached, nil
	}

	val, err, _ := s.group.Do(key, func() (interface{}, error) {
		reqURL := fmt.Sprintf("%s/movie/popular?language=en-US&page=1", s.baseURL)
		var resp movieListResponse
		if err := s.client.GetJSON(reqURL, &resp); err != nil {
			return nil, err
		}
		s.searchCache.Set(key, resp.Results)
		return resp.Results, nil
	})
	if err != nil {
		return nil, err
	}
	return val.([]MovieSummary), nil
}

// Details 影片详情，片单/信息流读取时的实时补全都走这里
func (s *TMDBService) Details(tmdbID string) (*MovieDetails, error) {
	key := "tmdb:movie:" + tmdbID
	if cached, ok := utils.CacheGet(key); ok {
		return cached.(*MovieDetails), nil
	}

	val, err, _ := s.group.Do(key, func() (interface{}, error) {
		reqURL := fmt.Sprintf("%s/movie/%s?language=en-US", s.baseURL, url.PathEscape(tmdbID))
		var details MovieDetails
		if err := s.client.GetJSON(reqURL, &details); err != nil {
			return nil, err
		}
		utils.CacheSet(key, &details, 10*time.Minute)
		return &details, nil
	})
	if err != nil {
		return nil, err
	}
	return val.(*MovieDetails), nil
}
