package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/mdblog/internal/model"
	"github.com/hitoshi/mdblog/internal/post"
)

// PostServiceInterface は記事ハンドラーが必要とするサービスインターフェース。
type PostServiceInterface interface {
	// List は全記事をメタデータのみで日付降順に返す。
	List(ctx context.Context) ([]model.Post, error)
	// GetBySlug は指定スラッグの記事をレンダリング済みHTML付きで返す。
	GetBySlug(ctx context.Context, slug string) (*model.Post, error)
}

// PostHandler はブログ記事APIとRSSフィードのHTTPハンドラー。
type PostHandler struct {
	service    PostServiceInterface
	feedConfig post.FeedConfig
}

// NewPostHandler はPostHandlerを生成する。
func NewPostHandler(service PostServiceInterface, feedConfig post.FeedConfig) *PostHandler {
	return &PostHandler{service: service, feedConfig: feedConfig}
}

// ListPosts は記事一覧を返す。
// GET /api/posts
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(posts)
}

// GetPost は記事詳細を返す。
// GET /api/posts/:slug
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	p, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

// Feed はRSS 2.0フィードを返す。
// GET /feed.xml
func (h *PostHandler) Feed(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	body, err := post.RenderFeed(r.Context(), h.feedConfig, posts)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Write(body)
}
