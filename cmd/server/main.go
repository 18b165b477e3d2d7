package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/taskhive/backend/api/handler"
	"github.com/taskhive/backend/internal/config"
	"github.com/taskhive/backend/internal/infrastructure/monitor"
	pgInfra "github.com/taskhive/backend/internal/infrastructure/postgres"
	redisInfra "github.com/taskhive/backend/internal/infrastructure/redis"
	"github.com/taskhive/backend/internal/middleware"
	"github.com/taskhive/backend/internal/router"
	"github.com/taskhive/backend/internal/services/lifecycle"
	"github.com/taskhive/backend/internal/services/overdue"
	"github.com/taskhive/backend/pkg/httpcontext"
	"github.com/taskhive/backend/pkg/logger"
	"github.com/taskhive/backend/repository"
	boltRepo "github.com/taskhive/backend/repository/bolt"
	"github.com/taskhive/backend/repository/postgres"
	"github.com/taskhive/backend/repository/rediscache"
	authUC "github.com/taskhive/backend/usecase/auth"
	employeeUC "github.com/taskhive/backend/usecase/employee"
	statsUC "github.com/taskhive/backend/usecase/stats"
	taskUC "github.com/taskhive/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	mon := monitor.New(10*time.Second, zapLogger)

	var (
		userRepo     repository.UserRepository
		employeeRepo repository.EmployeeRepository
		taskRepo     repository.TaskRepository
	)

	switch cfg.Storage.Backend {
	case config.BackendBolt:
		store, err := boltRepo.Open(cfg.Storage.BoltPath)
		if err != nil {
			zapLogger.Fatal("failed to open bolt store", zap.Error(err))
		}
		manager.Register("bolt", func(ctx context.Context) error {
			return store.Close()
		})
		mon.Register("bolt", store)

		userRepo = boltRepo.NewUserRepository(store)
		employeeRepo = boltRepo.NewEmployeeRepository(store)
		taskRepo = boltRepo.NewTaskRepository(store)
		zapLogger.Info("using embedded bolt storage", zap.String("path", cfg.Storage.BoltPath))

	default:
		if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
			zapLogger.Fatal("migrations failed", zap.Error(err))
		}

		pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
		if err != nil {
			zapLogger.Fatal("postgres connection failed", zap.Error(err))
		}
		manager.Register("postgres", func(ctx context.Context) error {
			pool.Close()
			return nil
		})
		mon.Register("postgresql", pool)

		userRepo = postgres.NewUserRepository(pool)
		employeeRepo = postgres.NewEmployeeRepository(pool)
		taskRepo = postgres.NewTaskRepository(pool)
	}

	var statsCache repository.StatsCache
	if cfg.Redis.URL != "" {
		redisClient, err := redisInfra.NewClient(cfg.Redis)
		if err != nil {
			zapLogger.Fatal("redis connection failed", zap.Error(err))
		}
		manager.Register("redis", func(ctx context.Context) error {
			return redisClient.Close()
		})
		mon.Register("redis", monitor.PingerFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}))
		statsCache = rediscache.NewStatsCache(redisClient, cfg.Redis.StatsTTL)
	}

	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	authUseCase := authUC.New(userRepo, cfg.JWT.Secret, cfg.JWT.TokenTTL, zapLogger)
	employeeUseCase := employeeUC.New(employeeRepo, zapLogger)
	taskUseCase := taskUC.New(taskRepo, employeeRepo, statsCache, zapLogger)
	statsUseCase := statsUC.New(taskRepo, employeeRepo, statsCache, zapLogger)

	if cfg.Overdue.Enabled {
		reporter := overdue.NewReporter(taskRepo, cfg.Overdue.Interval, zapLogger)
		reporter.Start()
		manager.Register("overdue_reporter", func(ctx context.Context) error {
			reporter.Stop(ctx)
			return nil
		})
	}

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:      apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Employee:  apiHandler.NewEmployeeHandler(employeeUseCase, ctxAdapter, zapLogger),
		Task:      apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Dashboard: apiHandler.NewDashboardHandler(statsUseCase, ctxAdapter, zapLogger),
		Health:    apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(authUseCase, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
