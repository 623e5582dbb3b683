package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Database
	DatabaseURL string

	// Identity Provider
	AuthDomain      string        // userinfoエンドポイントのドメイン（例: example.auth0.com）
	AdminEmail      string        // 管理者削除オーバーライドに使用するメールアドレス
	UserInfoTimeout time.Duration // userinfo呼び出しのタイムアウト
	UserInfoMaxSize int64         // userinfoレスポンスの最大サイズ

	// Posts
	PostsDir string

	// Rate Limit
	RateLimitGeneral int // req/min/IP
	RateLimitComment int // コメント投稿・削除のreq/min/IP

	// Feed
	BlogTitle       string
	BlogDescription string

	// Server
	ServerPort string
	BaseURL    string

	// CORS
	CORSAllowedOrigin string
}

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.AuthDomain = os.Getenv("AUTH_DOMAIN")
	if cfg.AuthDomain == "" {
		missing = append(missing, "AUTH_DOMAIN")
	}

	cfg.AdminEmail = os.Getenv("ADMIN_EMAIL")
	if cfg.AdminEmail == "" {
		missing = append(missing, "ADMIN_EMAIL")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// AUTH_DOMAINはドメイン名のみを期待する（スキームは内部で付与する）
	cfg.AuthDomain = strings.TrimSuffix(strings.TrimPrefix(cfg.AuthDomain, "https://"), "/")

	// Optional fields with defaults
	cfg.UserInfoTimeout = getEnvDuration("USERINFO_TIMEOUT", 10*time.Second)
	cfg.UserInfoMaxSize = getEnvInt64("USERINFO_MAX_SIZE", 65536)
	cfg.PostsDir = getEnvString("POSTS_DIR", "_posts")
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.RateLimitComment = getEnvInt("RATE_LIMIT_COMMENT", 10)
	cfg.BlogTitle = getEnvString("BLOG_TITLE", "mdblog")
	cfg.BlogDescription = getEnvString("BLOG_DESCRIPTION", "")
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.BaseURL = getEnvString("BASE_URL", "http://localhost:8080")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvInt64(key string, defaultVal int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
