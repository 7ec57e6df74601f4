package service

import (
	"errors"
	"log"
	"strconv"

	"github.com/user/watchscape/internal/model"
	"github.com/user/watchscape/internal/repository"
)

var (
	// ErrNotOwner 只有作者本人才能修改/删除帖子
	ErrNotOwner = errors.New("not the post author")
	// ErrNotTextPost 只有文本帖才允许编辑正文
	ErrNotTextPost = errors.New("not a text post")
	// ErrUserNotFound 操作者不存在。帖子存在与否用 repository.ErrNotFound 区分
	ErrUserNotFound = errors.New("user not found")
)

// FeedService 信息流业务：发帖、点赞、评论、转发及其通知触发。
type FeedService struct {
	posts       *repository.PostRepository
	users       *repository.UserRepository
	collections *repository.CollectionRepository
	notify      *NotificationService
	tmdb        *TMDBService
}

func NewFeedService(repos *repository.Repositories, notify *NotificationService, tmdb *TMDBService) *FeedService {
	return &FeedService{
		posts:       repos.Post,
		users:       repos.User,
		collections: repos.Collection,
		notify:      notify,
		tmdb:        tmdb,
	}
}

// CreateTextPost 发布文本帖，可附带影片快照，并向全部粉丝投递通知
func (s *FeedService) CreateTextPost(uid, text string, movie *model.MovieRef) (*model.Post, error) {
	user, err := s.users.GetByUID(uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	post := &model.Post{
		UserID:   uid,
		Username: user.DisplayName(),
		Type:     model.PostTypeText,
		Text:     text,
		Movie:    movie,
	}
	if err := s.posts.Create(post); err != nil {
		return nil, err
	}

	movieText := ""
	if movie != nil {
		movieText = " about " + movie.Title
	}
	if err := s.notify.FanOutToFollowers(NotifyInput{
		SenderUID: uid,
		Type:      model.NotifyTypePost,
		Message:   `posted: "` + preview(text) + `"` + movieText,
		PostID:    strconv.Itoa(post.ID),
	}); err != nil {
		log.Printf("[信息流] 发帖通知投递失败 (post: %d): %v", post.ID, err)
	}

	return post, nil
}

// MovieActivityInput 片单操作的入参
type MovieActivityInput struct {
	UserID      string
	TmdbID      int
	Title       string
	PosterPath  string
	ReleaseDate string
	Overview    string
	Status      string
}

// CreateMovieActivity 添加片单条目，并生成对应的观影动态帖。
// 片单重复直接失败；条目保存后用户已不存在时只保留条目，不发动态。
func (s *FeedService) CreateMovieActivity(in MovieActivityInput) (*model.CollectionEntry, error) {
	entry := &model.CollectionEntry{
		UserID:      in.UserID,
		TmdbID:      in.TmdbID,
		Status:      in.Status,
		Title:       in.Title,
		PosterPath:  in.PosterPath,
		ReleaseDate: in.ReleaseDate,
		Overview:    in.Overview,
	}
	if err := s.collections.Add(entry); err != nil {
		return nil, err
	}

	user, err := s.users.GetByUID(in.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entry, nil
		}
		return nil, err
	}

	post := &model.Post{
		UserID:   in.UserID,
		Username: user.DisplayName(),
		Type:     model.PostTypeMovieActivity,
		MovieActivity: &model.MovieActivity{
			Action: in.Status,
			Movie: model.MovieRef{
				TmdbID:      strconv.Itoa(in.TmdbID),
				Title:       in.Title,
				PosterPath:  in.PosterPath,
				ReleaseDate: in.ReleaseDate,
				Overview:    in.Overview,
			},
		},
	}
	if err := s.posts.Create(post); err != nil {
		return nil, err
	}

	actionText := "watched"
	if in.Status == model.StatusWatchlist {
		actionText = "added to watchlist"
	}
	if err := s.notify.FanOutToFollowers(NotifyInput{
		SenderUID:   in.UserID,
		Type:        model.NotifyTypeMovieActivity,
		Message:     actionText + ` "` + in.Title + `"`,
		PostID:      strconv.Itoa(post.ID),
		MovieTitle:  in.Title,
		MovieAction: in.Status,
	}); err != nil {
		log.Printf("[信息流] 观影动态通知投递失败 (post: %d): %v", post.ID, err)
	}

	return entry, nil
}

// ListPosts 全量信息流，最新在前，逐帖做目录补全与评论人昵称回填
func (s *FeedService) ListPosts() ([]*model.Post, error) {
	posts, err := s.posts.ListAll()
	if err != nil {
		return nil, err
	}
	for _, post := range posts {
		s.enrichPost(post)
	}
	return posts, nil
}

// GetPost 单帖详情，补全逻辑与列表一致
func (s *FeedService) GetPost(id int) (*model.Post, error) {
	post, err := s.posts.GetByID(id)
	if err != nil {
		return nil, err
	}
	s.enrichPost(post)
	return post, nil
}

// ToggleLike 切换点赞；从无到有时通知作者（自赞不通知）
func (s *FeedService) ToggleLike(postID int, uid string) (model.StringSet, error) {
	post, err := s.posts.GetByID(postID)
	if err != nil {
		return nil, err
	}

	likes, liked, err := s.posts.ToggleLike(postID, uid)
	if err != nil {
		return nil, err
	}

	if liked {
		if err := s.notify.Notify(NotifyInput{
			RecipientUID: post.UserID,
			SenderUID:    uid,
			Type:         model.NotifyTypeLike,
			Message:      "liked your post",
			PostID:       strconv.Itoa(postID),
		}); err != nil {
			log.Printf("[信息流] 点赞通知失败 (post: %d): %v", postID, err)
		}
	}

	return likes, nil
}

// AddComment 追加评论（昵称写入时快照），并通知作者
func (s *FeedService) AddComment(postID int, uid, text string) (model.CommentList, error) {
	post, err := s.posts.GetByID(postID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByUID(uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	comments, err := s.posts.AddComment(postID, model.Comment{
		UserID:   uid,
		UserName: user.DisplayName(),
		Text:     text,
	})
	if err != nil {
		return nil, err
	}

	if err := s.notify.Notify(NotifyInput{
		RecipientUID: post.UserID,
		SenderUID:    uid,
		Type:         model.NotifyTypeComment,
		Message:      `commented: "` + preview(text) + `"`,
		PostID:       strconv.Itoa(postID),
	}); err != nil {
		log.Printf("[信息流] 评论通知失败 (post: %d): %v", postID, err)
	}

	return comments, nil
}

// Share 转发：深拷贝原帖内容生成actor署名的新帖，通知原作者。
// 拷贝是独立副本，原帖后续修改不会传播。
func (s *FeedService) Share(postID int, uid string) (*model.Post, error) {
	original, err := s.posts.GetByID(postID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByUID(uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	shared := &model.Post{
		UserID:   uid,
		Username: user.DisplayName(),
		Type:     original.Type,
		Text:     original.Text,
	}
	if original.Movie != nil {
		movie := *original.Movie
		shared.Movie = &movie
	}
	if original.MovieActivity != nil {
		activity := *original.MovieActivity
		shared.MovieActivity = &activity
	}
	if err := s.posts.Create(shared); err != nil {
		return nil, err
	}

	if err := s.notify.Notify(NotifyInput{
		RecipientUID: original.UserID,
		SenderUID:    uid,
		Type:         model.NotifyTypeShare,
		Message:      "shared your post",
		PostID:       strconv.Itoa(original.ID),
	}); err != nil {
		log.Printf("[信息流] 转发通知失败 (post: %d): %v", postID, err)
	}

	return shared, nil
}

// EditText 修改帖子正文，仅限作者本人，且只有文本帖可编辑
func (s *FeedService) EditText(postID int, uid, text string) error {
	post, err := s.posts.GetByID(postID)
	if err != nil {
		return err
	}
	if post.UserID != uid {
		return ErrNotOwner
	}
	if post.Type != model.PostTypeText {
		return ErrNotTextPost
	}
	return s.posts.UpdateText(postID, text)
}

// Delete 删除帖子，仅限作者本人
func (s *FeedService) Delete(postID int, uid string) error {
	post, err := s.posts.GetByID(postID)
	if err != nil {
		return err
	}
	if post.UserID != uid {
		return ErrNotOwner
	}
	return s.posts.Delete(postID)
}

// enrichPost 目录实时补全 + 评论人昵称回填。
// 补全失败一律降级为已存快照，绝不让读取链路失败。
func (s *FeedService) enrichPost(post *model.Post) {
	s.enrichMovieRef(post.Movie)
	if post.MovieActivity != nil {
		s.enrichMovieRef(&post.MovieActivity.Movie)
	}

	for i := range post.Comments {
		if post.Comments[i].UserName != "" {
			continue
		}
		user, err := s.users.GetByUID(post.Comments[i].UserID)
		if err != nil {
			post.Comments[i].UserName = post.Comments[i].UserID
			continue
		}
		post.Comments[i].UserName = user.DisplayName()
	}
}

// enrichMovieRef 用目录详情补全快照缺失的字段
func (s *FeedService) enrichMovieRef(ref *model.MovieRef) {
	if ref == nil || ref.TmdbID == "" {
		return
	}
	if ref.Overview != "" && ref.ReleaseDate != "" {
		return
	}
	details, err := s.tmdb.Details(ref.TmdbID)
	if err != nil {
		log.Printf("[信息流] 目录补全失败 (tmdb: %s): %v", ref.TmdbID, err)
		return
	}
	if ref.Overview == "" {
		ref.Overview = details.Overview
	}
	if ref.ReleaseDate == "" {
		ref.ReleaseDate = details.ReleaseDate
	}
}

// preview 通知正文里的帖子/评论摘要，超长截断
func preview(text string) string {
	const max = 50
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
