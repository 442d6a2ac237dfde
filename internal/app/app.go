package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/himalink/internal/adapter/blob"
	"github.com/heartmarshall/himalink/internal/adapter/kv"
	"github.com/heartmarshall/himalink/internal/adapter/postgres"
	"github.com/heartmarshall/himalink/internal/adapter/postgres/chat"
	"github.com/heartmarshall/himalink/internal/adapter/postgres/comment"
	"github.com/heartmarshall/himalink/internal/adapter/postgres/entry"
	"github.com/heartmarshall/himalink/internal/adapter/postgres/follow"
	"github.com/heartmarshall/himalink/internal/adapter/postgres/image"
	"github.com/heartmarshall/himalink/internal/adapter/postgres/reaction"
	"github.com/heartmarshall/himalink/internal/adapter/postgres/realtime"
	"github.com/heartmarshall/himalink/internal/auth"
	"github.com/heartmarshall/himalink/internal/config"
	"github.com/heartmarshall/himalink/internal/domain"
	"github.com/heartmarshall/himalink/internal/metrics"
	"github.com/heartmarshall/himalink/internal/service/calendar"
	"github.com/heartmarshall/himalink/internal/service/chatsync"
	"github.com/heartmarshall/himalink/internal/service/entrysync"
	"github.com/heartmarshall/himalink/internal/service/entrysync/batch"
	"github.com/heartmarshall/himalink/internal/service/visited"
	"github.com/heartmarshall/himalink/internal/session"
	"github.com/heartmarshall/himalink/internal/transport/middleware"
	"github.com/heartmarshall/himalink/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the gateway, starts the realtime listener, the session janitor and the
// HTTP server, and blocks until ctx is cancelled or a component fails.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("kv_driver", cfg.KV.Driver),
	)

	// --- Gateway ---
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	storage, err := blob.New(ctx, blob.Config{
		Endpoint:      cfg.Storage.Endpoint,
		Region:        cfg.Storage.Region,
		AccessKey:     cfg.Storage.AccessKey,
		SecretKey:     cfg.Storage.SecretKey,
		Bucket:        cfg.Storage.Bucket,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
	}, logger)
	if err != nil {
		return fmt.Errorf("init blob storage: %w", err)
	}

	store, err := kv.Open(ctx, kv.Options{
		Driver:     cfg.KV.Driver,
		RedisAddr:  cfg.KV.RedisAddr,
		RedisDB:    cfg.KV.RedisDB,
		SQLitePath: cfg.KV.SQLitePath,
		KeyPrefix:  cfg.KV.KeyPrefix,
	}, logger)
	if err != nil {
		return fmt.Errorf("open kv store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("close kv store", slog.String("error", err.Error()))
		}
	}()

	// --- Repositories ---
	txm := postgres.NewTxManager(pool)
	entryRepo := entry.New(pool)
	followRepo := follow.New(pool)
	imageRepo := image.New(pool)
	chatRepo := chat.New(pool)
	reactionRepo := reaction.New(pool)
	commentRepo := comment.New(pool)

	listener := realtime.NewListener(pool, cfg.Realtime.ChannelPrefix, cfg.Realtime.ReconnectDelay, logger)

	// --- Sessions ---
	factory := func(ctx context.Context, userID uuid.UUID) (*session.Session, error) {
		v := visited.New(logger, store, userID, cfg.Visited.Limit)
		if err := v.Init(ctx); err != nil {
			return nil, err
		}
		// Loaders are per session: a batch is never shared across users.
		batchOpts := []batch.Option{batch.WithWait(cfg.Sync.BatchWait), batch.WithTimeout(cfg.Sync.SnapshotTimeout)}
		reactions := batch.NewReactions(reactionRepo, batchOpts...)
		comments := batch.NewComments(commentRepo, batchOpts...)
		images := batch.NewImages(imageRepo, batchOpts...)

		return &session.Session{
			Entries: entrysync.NewService(logger, reactions, comments, images, storage, entrysync.Options{
				SnapshotTimeout: cfg.Sync.SnapshotTimeout,
				Concurrency:     cfg.Sync.Concurrency,
			}),
			Chat:    chatsync.NewService(logger, userID, chatRepo, followRepo, listener),
			Visited: v,
		}, nil
	}
	registry := session.NewRegistry(logger, factory, session.Options{
		IdleTTL:       cfg.Session.IdleTTL,
		SweepInterval: cfg.Session.SweepInterval,
		FanOut:        cfg.Session.FanOut,
	})
	if err := registry.Watch(listener); err != nil {
		return fmt.Errorf("watch comments: %w", err)
	}
	defer registry.CloseAll()

	// --- Services ---
	calendarService := calendar.NewService(logger, entryRepo, followRepo, imageRepo, storage, txm, calendar.Config{
		MaxRange: cfg.Calendar.MaxRange,
		Limit:    cfg.Calendar.Limit,
	})

	// --- Metrics ---
	registryProm := prometheus.NewRegistry()
	registryProm.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics.MustRegister(registryProm)

	// --- HTTP ---
	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	sessions := rest.Sessions(registry)
	router := rest.NewRouter(rest.RouterDeps{
		Logger: logger,
		Health: rest.NewHealthHandler(Version,
			rest.Check{Name: "database", Ping: pool.Ping},
			rest.Check{Name: "kv", Ping: kvPing(store)},
		),
		Entries:     rest.NewEntryHandler(calendarService, sessions, imageRepo, cfg.Storage.MaxUploadBytes, logger),
		Chats:       rest.NewChatHandler(sessions, logger),
		Visited:     rest.NewVisitedHandler(sessions, logger),
		Validator:   auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.Audience, cfg.Auth.Leeway),
		CORS:        cfg.CORS,
		RateLimiter: limiter,
		RateLimit:   cfg.RateLimit.PerMinute,
		Gatherer:    registryProm,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return listener.Run(gctx)
	})
	g.Go(func() error {
		registry.Run(gctx)
		return nil
	})
	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("application stopped with error", slog.String("error", err.Error()))
		return err
	}
	logger.Info("application stopped")
	return nil
}

// kvPing probes the store with a read of a key that is never written.
func kvPing(store kv.Store) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		_, err := store.Get(ctx, "health:probe")
		if err == nil || errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
}
