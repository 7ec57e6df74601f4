package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config 应用配置
type Config struct {
	Env          string
	Port         string
	DatabaseURL  string
	TMDBBaseURL  string // TMDB API 基础地址，全局唯一入口，禁止各模块自行硬编码
	TMDBToken    string // TMDB v4 Read Access Token
	TMDBTimeout  int    // TMDB 请求超时（秒）
	AllowOrigins string // CORS 允许的来源，逗号分隔，* 表示全部
}

// Load 加载配置
func Load() *Config {
	dbUser := getEnv("DB_USER", "postgres")
	dbPass := getEnv("DB_PASSWORD", "postgres")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbName := getEnv("DB_NAME", "watchscape")
	dbSSL := getEnv("DB_SSLMODE", "disable")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbUser, dbPass, dbHost, dbPort, dbName, dbSSL)

	timeout, _ := strconv.Atoi(getEnv("TMDB_TIMEOUT_SECONDS", "10"))

	token := getEnv("TMDB_TOKEN", "")
	if token == "" {
		fmt.Println("【警告】未设置 TMDB_TOKEN，目录检索与详情补全将不可用")
	}

	return &Config{
		Env:          getEnv("APP_ENV", "development"),
		Port:         getEnv("PORT", "5000"),
		DatabaseURL:  dbURL,
		TMDBBaseURL:  getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		TMDBToken:    token,
		TMDBTimeout:  timeout,
		AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
