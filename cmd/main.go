package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/go-user-registration/config"
	"github.com/oksasatya/go-user-registration/internal/container"
	"github.com/oksasatya/go-user-registration/internal/infrastructure/memory"
	"github.com/oksasatya/go-user-registration/internal/infrastructure/metrics"
	pginfra "github.com/oksasatya/go-user-registration/internal/infrastructure/postgres"
	redisinfra "github.com/oksasatya/go-user-registration/internal/infrastructure/redis"
	"github.com/oksasatya/go-user-registration/internal/infrastructure/search"
	"github.com/oksasatya/go-user-registration/internal/interface/http/views"
	"github.com/oksasatya/go-user-registration/internal/interface/middleware"
	"github.com/oksasatya/go-user-registration/internal/router"
	"github.com/oksasatya/go-user-registration/pkg/helpers"
	"github.com/oksasatya/go-user-registration/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	container.SetConfig(cfg)
	container.SetLogger(logger)
	if cfg.DebugMetricsEnabled {
		container.SetMetrics(metrics.NewRegistration())
	}

	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Warn("using in-memory storage; data is lost on restart")
		container.SetUserRepository(memory.NewUserRepository())
		container.SetFlashStore(memory.NewFlashStore(cfg.FlashTTL))
	case config.StoragePostgres:
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			logger.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()

		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			logger.Fatalf("migration failed: %v", err)
		}

		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = rdb.Close() }()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatalf("failed to connect to redis: %v", err)
		}

		container.SetUserRepository(pginfra.NewUserRepository(pool))
		container.SetFlashStore(redisinfra.NewFlashStore(rdb, cfg.FlashTTL))
	default:
		logger.Fatalf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	// Welcome emails are optional; registration works without a broker.
	if cfg.MailSendEnabled && cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable; welcome emails disabled")
		} else {
			defer pub.Close()
			container.SetRabbitPub(pub)
		}
	}

	if cfg.SearchEnabled {
		es, err := search.NewClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.WithError(err).Warn("elasticsearch unavailable; user search disabled")
		} else {
			container.SetES(es)
		}
	}

	tpl, err := views.Load()
	if err != nil {
		logger.Fatalf("failed to parse views: %v", err)
	}

	// Gin engine and global middleware
	r := gin.New()
	r.SetHTMLTemplate(tpl)

	reg := router.NewRegistry(r)
	reg.Use(gin.Recovery())
	reg.Use(middleware.RequestIDMiddleware(), middleware.RealIP())
	reg.Use(middleware.Session(cfg.SessionCookieName, helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)))
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		reg.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.HeaderRequestID},
			ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		reg.Use(gin.Logger())
	}

	// Registry: auto-register modules using container
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(sigCtx)

	g.Go(func() error {
		logger.Infof("server starting on :%s (storage=%s)", cfg.Port, cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctxShutdown)
	})

	if err := g.Wait(); err != nil {
		logger.WithError(err).Error("server stopped with error")
		return
	}
	logger.Info("server exited properly")
}
