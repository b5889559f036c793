package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/teamfeed/internal/metrics"
	"github.com/hitoshi/teamfeed/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	UserResolver      middleware.CurrentUserResolver
	FallbackUserID    string
	Collector         metrics.MetricsCollector
	Logger            *slog.Logger

	// 運用
	HealthChecker  HealthChecker
	MetricsHandler http.Handler

	// フィード
	FeedService FeedServiceInterface

	// 投稿・いいね・下書き・ユーザー（ローカルデータベース）
	Posts  PostStore
	Drafts DraftStore
	Users  UserStore

	// 投稿フォーム
	Composer ComposerInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	RequestID → Recovery → SecurityHeaders → CORS → Metrics → CurrentUser → Logging → RateLimit(General)
//
// /health と /metrics はレート制限の外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	collector := deps.Collector
	if collector == nil {
		collector = metrics.Nop{}
	}

	r := chi.NewRouter()

	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewRecoveryMiddleware(logger))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewMetricsMiddleware(collector))
	r.Use(middleware.NewCurrentUserMiddleware(deps.UserResolver, deps.FallbackUserID))
	r.Use(middleware.NewLoggingMiddleware(logger))

	feedHandler := NewFeedHandler(deps.FeedService)
	postHandler := NewPostHandler(deps.Posts)
	draftHandler := NewDraftHandler(deps.Drafts)
	composerHandler := NewComposerHandler(deps.Composer)
	userHandler := NewUserHandler(deps.Users)

	// --- 運用エンドポイント ---
	r.Get("/health", Health(deps.HealthChecker))
	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	// --- API ---
	r.Route("/api", func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.GeneralMiddleware())
		}

		r.Get("/me", userHandler.Me)

		// フィード射影
		r.Get("/feed", feedHandler.GetFeed)

		// 投稿
		r.Route("/posts", func(r chi.Router) {
			r.Get("/", postHandler.ListPosts)

			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", postHandler.UpdatePost)
				r.Post("/like", feedHandler.ToggleLike)
				r.Get("/comments", feedHandler.ListComments)
				r.Post("/comments", feedHandler.AddComment)
			})
		})

		// いいね
		r.Get("/likes", postHandler.ListLikes)

		// 下書き
		r.Route("/drafts", func(r chi.Router) {
			r.Get("/new", draftHandler.GetDraft)
			r.Put("/new", draftHandler.SaveDraft)
			r.Delete("/new", draftHandler.ClearDraft)

			r.Get("/posts/{id}", draftHandler.GetDraft)
			r.Put("/posts/{id}", draftHandler.SaveDraft)
			r.Delete("/posts/{id}", draftHandler.ClearDraft)
		})

		// 投稿フォーム
		r.Route("/composer", func(r chi.Router) {
			r.Get("/", composerHandler.GetForm)
			r.Post("/draft", composerHandler.SaveDraft)

			create := http.Handler(http.HandlerFunc(composerHandler.CreatePost))
			if deps.RateLimiter != nil {
				create = deps.RateLimiter.ComposeMiddleware()(create)
			}
			r.Method(http.MethodPost, "/posts", create)
		})
	})

	return r
}
