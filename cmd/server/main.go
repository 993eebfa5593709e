package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/meetdesk/dashboard/internal/api"
	"github.com/meetdesk/dashboard/internal/core/client"
	"github.com/meetdesk/dashboard/internal/core/guard"
	"github.com/meetdesk/dashboard/internal/core/ports"
	"github.com/meetdesk/dashboard/internal/core/service"
	"github.com/meetdesk/dashboard/internal/infrastructure/db/memory"
	"github.com/meetdesk/dashboard/internal/infrastructure/db/mongo"
	"github.com/meetdesk/dashboard/internal/infrastructure/db/redis"
	infrahttp "github.com/meetdesk/dashboard/internal/infrastructure/http"
	"github.com/meetdesk/dashboard/internal/infrastructure/queue"
	"github.com/meetdesk/dashboard/internal/infrastructure/seed"
	"github.com/meetdesk/dashboard/internal/pkg/config"
	"github.com/meetdesk/dashboard/pkg/logger"
)

const sweepInterval = time.Minute

type repositories struct {
	users    ports.UserRepository
	meetings ports.MeetingRepository
	files    ports.FileRepository
	db       *mongodriver.Database
	close    func(context.Context)
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		_, _ = os.Stderr.WriteString("warning: could not read .env: " + err.Error() + "\n")
	}

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: !cfg.IsProduction()})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = uuid.NewString()
		log.Warn().Msg("JWT_SECRET not set; using a random secret, sessions will not survive a restart")
	}

	repos, err := openRepositories(ctx, cfg, logger.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.DataBackend).Msg("failed to open data backend")
	}
	defer repos.close(context.Background())

	storage, rdb, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StorageBackend).Msg("failed to open client storage")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	authService := service.NewAuthService(repos.users, cfg.JWTSecret, cfg.TokenTTL)
	registry := client.NewRegistry(authService, storage, guard.DefaultRoutes(), cfg.ClientIdleTTL, log)
	go registry.RunSweeper(ctx, sweepInterval)

	dispatcher := queue.NewDispatcher(cfg.DispatchWorkers, registry, logger.Component("dispatcher"))
	dispatcher.Start(ctx)

	e := api.NewRouter(api.Dependencies{
		Auth:          authService,
		Clients:       registry,
		Meetings:      service.NewMeetingService(repos.meetings, repos.users, dispatcher, logger.Component("meetings")),
		Users:         service.NewUserService(repos.users),
		Files:         service.NewFileService(repos.files),
		Reports:       service.NewReportService(repos.meetings, repos.users, repos.files),
		Notifications: dispatcher,
		Logger:        logger.Component("http"),
		SecureCookies: cfg.IsProduction(),
	})
	infrahttp.RegisterOps(e, repos.db, rdb)

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("data_backend", cfg.DataBackend).
			Str("storage_backend", cfg.StorageBackend).
			Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
}

func openRepositories(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*repositories, error) {
	hash, err := service.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return nil, err
	}
	data := seed.Build(hash, time.Now())

	if cfg.DataBackend == config.BackendMemory {
		return &repositories{
			users:    memory.NewUserRepository(data.Users...),
			meetings: memory.NewMeetingRepository(data.Meetings...),
			files:    memory.NewFileRepository(data.Files...),
			close:    func(context.Context) {},
		}, nil
	}

	mc, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database, AppName: "meetdesk"})
	if err != nil {
		return nil, err
	}
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		_ = mc.Disconnect(ctx)
		return nil, err
	}

	repos := &repositories{
		users:    mongo.NewUserRepository(db),
		meetings: mongo.NewMeetingRepository(db),
		files:    mongo.NewFileRepository(db),
		db:       db,
		close: func(ctx context.Context) {
			if err := mc.Disconnect(ctx); err != nil {
				log.Error().Err(err).Msg("mongo disconnect")
			}
		},
	}
	if err := seed.Apply(ctx, data, repos.users, repos.meetings, mongo.NewFileRepository(db)); err != nil {
		repos.close(ctx)
		return nil, err
	}
	return repos, nil
}

func openStorage(ctx context.Context, cfg *config.Config) (ports.StorageProvider, *goredis.Client, error) {
	if cfg.StorageBackend == config.BackendMemory {
		return memory.NewStorageProvider(), nil, nil
	}
	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, nil, err
	}
	return redis.NewStorageProvider(rdb), rdb, nil
}
