package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/hitoshi/teamfeed/internal/composer"
	"github.com/hitoshi/teamfeed/internal/config"
	"github.com/hitoshi/teamfeed/internal/database"
	"github.com/hitoshi/teamfeed/internal/feed"
	"github.com/hitoshi/teamfeed/internal/handler"
	"github.com/hitoshi/teamfeed/internal/kvstore"
	"github.com/hitoshi/teamfeed/internal/logger"
	"github.com/hitoshi/teamfeed/internal/metrics"
	"github.com/hitoshi/teamfeed/internal/middleware"
	"github.com/hitoshi/teamfeed/internal/model"
	"github.com/hitoshi/teamfeed/internal/repository"
	"github.com/hitoshi/teamfeed/internal/security"
	"github.com/hitoshi/teamfeed/internal/seed"
)

// Init はアプリケーションの初期化を行う。
// .envと環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. .envがあれば環境変数へ読み込む（既存の環境変数は上書きしない）
	_ = godotenv.Load(".env")

	// 2. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w, os.Getenv("LOG_LEVEL"))

	// 3. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.SetupDefault(w, cfg.LogLevel)
	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("store_driver", string(cfg.StoreDriver)),
	)

	switch cmd {
	case CommandInit:
		return runInit(cfg)
	case CommandReset:
		return runReset(cfg)
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// components はストアからHTTPルーターまでの依存関係を保持する。
type components struct {
	store     *kvstore.Store
	db        *repository.LocalDB
	registry  *prometheus.Registry
	collector *metrics.Collector
	feed      *feed.Service
	composer  *composer.Composer
}

// Close はストアを閉じる。
func (c *components) Close() error {
	return c.store.Close()
}

// build はストアを開き、ローカルデータベースとドメインサービスを組み立てる。
// シードの書き込みは呼び出し側で行う。
func build(cfg *config.Config, log *slog.Logger) (*components, error) {
	// 1. メトリクス
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	// 2. ストア
	backend, err := kvstore.Open(cfg.StoreDriver, cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	store := kvstore.New(backend, kvstore.Sinks{
		kvstore.NewLogSink(log),
		kvstore.SinkFunc(func(op kvstore.Op, _ string, _ error) {
			collector.RecordStoreFault(string(op))
		}),
	})

	// 3. シードスナップショット
	snapshot, err := seed.Load(cfg.SeedFile)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to load seed: %w", err)
	}

	// 4. ローカルデータベースとドメインサービス
	db := repository.NewLocalDB(store, snapshot, log)
	feedService := feed.NewService(db, security.NewTextRenderer(), collector, log)
	// 投稿者はストアの現在ユーザーを優先し、未保存時のみ設定値を使う
	c := composer.New(db, composer.Author{
		ID:   cfg.ComposerUserID,
		Name: cfg.ComposerUserName,
		Team: cfg.ComposerTeam,
	}, collector, log)

	return &components{
		store:     store,
		db:        db,
		registry:  registry,
		collector: collector,
		feed:      feedService,
		composer:  c,
	}, nil
}

// newServer はルーターを構成したHTTPサーバーを返す。
func newServer(cfg *config.Config, c *components, limiter *middleware.RateLimiter, log *slog.Logger) *http.Server {
	deps := &handler.RouterDeps{
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       limiter,
		UserResolver:      c.db,
		FallbackUserID:    cfg.ComposerUserID,
		Collector:         c.collector,
		Logger:            log,

		HealthChecker:  c.store,
		MetricsHandler: metrics.SetupMetricsRoute(c.registry),

		FeedService: c.feed,
		Posts:       c.db,
		Drafts:      c.db,
		Users:       c.db,
		Composer:    c.composer,
	}

	return &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      handler.NewRouter(deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// runServe はAPIサーバーモードで起動する。
// ストアを開いてシードを適用し、全依存関係をワイヤリングしてHTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	log := slog.Default()

	c, err := build(cfg, log)
	if err != nil {
		return err
	}
	defer c.Close()

	c.db.Init(context.Background())

	c.composer.OnPostCreated(func(p model.Post) {
		log.Info("feed updated", slog.String("post_id", p.ID), slog.String("team", p.Team))
	})

	limiter := middleware.NewRateLimiter(
		middleware.NewRateLimiterConfig(cfg.RateLimitGeneral, cfg.RateLimitCompose),
		log,
	)
	defer limiter.Stop()

	server := newServer(cfg, c, limiter, log)

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	errCh := make(chan error, 1)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		return fmt.Errorf("server listen error: %w", err)
	}
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runInit はシードデータを書き込んで終了する。初期化済みのストアには何もしない。
func runInit(cfg *config.Config) error {
	c, err := build(cfg, slog.Default())
	if err != nil {
		return err
	}
	defer c.Close()

	c.db.Init(context.Background())
	return nil
}

// runReset はストアを全消去し、シードデータを書き直す。
func runReset(cfg *config.Config) error {
	c, err := build(cfg, slog.Default())
	if err != nil {
		return err
	}
	defer c.Close()

	ctx := context.Background()
	c.db.Reset(ctx)
	c.db.Init(ctx)

	slog.Info("store reset to seed data")
	return nil
}

// runMigrate はsqliteストアのマイグレーションを実行する。
// 他のドライバではスキーマを持たないため何もしない。
func runMigrate(cfg *config.Config) error {
	if cfg.StoreDriver != kvstore.DriverSQLite {
		slog.Info("no migrations for store driver",
			slog.String("store_driver", string(cfg.StoreDriver)),
		)
		return nil
	}

	slog.Info("running database migrations",
		slog.String("store_path", cfg.StorePath),
	)

	if err := database.RunMigrations(cfg.StorePath); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}
