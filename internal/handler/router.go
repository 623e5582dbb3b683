package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/mdblog/internal/metrics"
	"github.com/hitoshi/mdblog/internal/middleware"
	"github.com/hitoshi/mdblog/internal/model"
	"github.com/hitoshi/mdblog/internal/post"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	StatusRecorder    middleware.StatusRecorder

	// コメント
	CommentService CommentServiceInterface

	// イベント
	EventService EventServiceInterface

	// 記事・フィード
	PostService PostServiceInterface
	FeedConfig  post.FeedConfig

	// メトリクス公開
	MetricsGatherer prometheus.Gatherer

	// ヘルスチェック
	Pinger Pinger
}

// Pinger はヘルスチェックで使用するデータストア到達確認のインターフェース。
type Pinger interface {
	Ping() error
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORS → SecurityHeaders → Recovery → Logging → RateLimit(General、/api配下のみ)
//
// サポート外のHTTPメソッドには405ではなく400のINVALID_METHODエンベロープで応答する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger, deps.StatusRecorder))

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidMethodError(r.Method))
	})

	commentHandler := NewCommentHandler(deps.CommentService)
	eventHandler := NewEventHandler(deps.EventService)
	postHandler := NewPostHandler(deps.PostService, deps.FeedConfig)

	// --- API ルート ---
	// ミドルウェアスタック: RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// コメント
		r.Route("/api/comments", func(r chi.Router) {
			r.Get("/", commentHandler.ListComments)

			// 変更操作にはコメント専用レート制限を追加
			r.With(deps.RateLimiter.CommentMutationMiddleware()).Post("/", commentHandler.CreateComment)
			r.With(deps.RateLimiter.CommentMutationMiddleware()).Delete("/", commentHandler.DeleteComment)
		})

		// カレンダーイベント
		r.Route("/api/events", func(r chi.Router) {
			r.Get("/", eventHandler.ListEvents)
			r.Post("/", eventHandler.CreateEvent)
		})

		// 記事
		r.Route("/api/posts", func(r chi.Router) {
			r.Get("/", postHandler.ListPosts)
			r.Get("/{slug}", postHandler.GetPost)
		})
	})

	// RSSフィード（レート制限の対象外）
	r.Get("/feed.xml", postHandler.Feed)

	// ヘルスチェック
	r.Get("/health", healthHandler(deps.Pinger))

	// Prometheusスクレイプ
	if deps.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.MetricsGatherer))
	}

	return r
}

// healthHandler はデータストアへの到達性を含むヘルスチェックレスポンスを返す。
func healthHandler(pinger Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		statusCode := http.StatusOK

		if pinger != nil {
			if err := pinger.Ping(); err != nil {
				slog.Error("health check failed", slog.String("error", err.Error()))
				status = "unavailable"
				statusCode = http.StatusServiceUnavailable
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		json.NewEncoder(w).Encode(map[string]string{"status": status})
	}
}
