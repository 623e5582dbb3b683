// Package auth はIdPのuserinfoエンドポイントによるベアラートークンの検証を提供する。
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hitoshi/mdblog/internal/model"
	"github.com/hitoshi/mdblog/internal/security"
)

// Directory はベアラートークンを検証済みのユーザープロフィールに交換するインターフェース。
type Directory interface {
	// Lookup はトークンをIdPのuserinfoエンドポイントで検証し、
	// プロフィールスナップショットを返す。
	// トークンが無効な場合、プロバイダーに到達できない場合、
	// または必須フィールド（sub, name, picture）が欠けている場合は
	// UNAUTHORIZEDエラーを返す。
	Lookup(ctx context.Context, token string) (*model.Author, error)
}

// UserInfoMetrics はuserinfo呼び出しのメトリクス記録に必要なインターフェース。
// metrics.Collectorの部分集合として定義する。
type UserInfoMetrics interface {
	RecordUserInfoLatency(duration time.Duration)
	RecordUserInfoFailure()
}

// UserInfoConfig はuserinfoクライアントの設定。
type UserInfoConfig struct {
	Domain          string        // IdPドメイン（例: example.auth0.com）
	Timeout         time.Duration // 呼び出しタイムアウト
	MaxResponseSize int64         // レスポンスボディの最大サイズ

	// テスト用にオーバーライド可能なURL
	UserInfoURL string
}

// UserInfoClient はIdPのuserinfoエンドポイントを呼び出すDirectory実装。
// トークンはキャッシュせず、呼び出しごとにIdPで再検証する。
// レイテンシと引き換えに認可情報の鮮度を常に保証する（意図的な設計判断）。
type UserInfoClient struct {
	config  UserInfoConfig
	client  *http.Client
	guard   security.OutboundGuardService
	metrics UserInfoMetrics
}

// NewUserInfoClient はUserInfoClientを生成する。
// HTTPクライアントはguardのセーフクライアントファクトリから生成され、
// タイムアウトとSSRF防止が適用される。
func NewUserInfoClient(config UserInfoConfig, guard security.OutboundGuardService, metrics UserInfoMetrics) *UserInfoClient {
	if config.UserInfoURL == "" {
		config.UserInfoURL = "https://" + config.Domain + "/userinfo"
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	if config.MaxResponseSize == 0 {
		config.MaxResponseSize = 65536
	}
	return &UserInfoClient{
		config:  config,
		client:  guard.NewSafeClient(config.Timeout),
		guard:   guard,
		metrics: metrics,
	}
}

// userInfoResponse はIdPのuserinfoエンドポイントのレスポンス。
type userInfoResponse struct {
	Sub     string `json:"sub"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Email   string `json:"email"`
}

// Lookup はトークンをIdPで検証し、検証済みプロフィールを返す。
// 失敗の詳細はログに記録し、呼び出し元には一律UNAUTHORIZEDを返す。
func (c *UserInfoClient) Lookup(ctx context.Context, token string) (*model.Author, error) {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return nil, model.NewMissingParameterError("authorization")
	}

	info, err := c.fetchUserInfo(ctx, token)
	if err != nil {
		c.recordFailure()
		slog.Warn("userinfo lookup failed", slog.String("error", err.Error()))
		return nil, model.NewUnauthorizedError()
	}

	return &model.Author{
		Sub:     info.Sub,
		Name:    info.Name,
		Picture: info.Picture,
		Email:   info.Email,
	}, nil
}

// fetchUserInfo はアクセストークンでIdPのユーザー情報を取得する。
func (c *UserInfoClient) fetchUserInfo(ctx context.Context, accessToken string) (*userInfoResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.UserInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create user info request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	c.recordLatency(time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("user info request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read user info response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info fetch failed with status %d: %s", resp.StatusCode, string(body))
	}

	var info userInfoResponse
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse user info response: %w", err)
	}

	// 必須フィールドの検証。subのみでなくname/pictureも欠けていれば無効として扱う。
	if info.Sub == "" {
		return nil, fmt.Errorf("empty sub in user info response")
	}
	if info.Name == "" {
		return nil, fmt.Errorf("empty name in user info response")
	}
	if info.Picture == "" {
		return nil, fmt.Errorf("empty picture in user info response")
	}

	// pictureはコメントとともに保存されページに埋め込まれるため事前検証する
	if err := c.guard.ValidateProfileURL(info.Picture); err != nil {
		return nil, fmt.Errorf("unsafe picture URL in user info response: %w", err)
	}

	return &info, nil
}

func (c *UserInfoClient) recordLatency(d time.Duration) {
	if c.metrics != nil {
		c.metrics.RecordUserInfoLatency(d)
	}
}

func (c *UserInfoClient) recordFailure() {
	if c.metrics != nil {
		c.metrics.RecordUserInfoFailure()
	}
}

// compile-time interface check
var _ Directory = (*UserInfoClient)(nil)
