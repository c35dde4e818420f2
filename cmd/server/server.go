package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-service/internal/config"
	"catalog-service/internal/db"
	"catalog-service/internal/delivery/handler"
	"catalog-service/internal/delivery/ws"
	"catalog-service/internal/domain/repositories"
	"catalog-service/internal/infrastructure"
	"catalog-service/internal/messaging"
	"catalog-service/internal/repository"
	"catalog-service/internal/repository/memory"
	"catalog-service/internal/usecase"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 10 * time.Second

type stores struct {
	artworks repositories.ArtworkRepository
	users    repositories.UserRepository
	catalog  repositories.CatalogRepository
	close    func()
}

func serveCommand(logger *log.Logger) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP server",
		Flags: []cli.Flag{configFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return err
			}
			return serve(ctx, cfg, logger)
		},
	}
}

func indexesCommand(logger *log.Logger) *cli.Command {
	return &cli.Command{
		Name:  "indexes",
		Usage: "Create the MongoDB indexes and exit",
		Flags: []cli.Flag{configFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return err
			}
			if cfg.Store != config.StoreMongo {
				return fmt.Errorf("indexes require STORE=%s", config.StoreMongo)
			}
			client, err := db.Connect(ctx, cfg.MongoURI)
			if err != nil {
				return fmt.Errorf("connect to mongodb: %w", err)
			}
			defer client.Disconnect(context.Background())

			if err := db.EnsureIndexes(ctx, client.Database(cfg.Database)); err != nil {
				return err
			}
			logger.Info("indexes created", "database", cfg.Database)
			return nil
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	logger.SetLevel(levelOrInfo(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.close()

	rdb := connectRedis(ctx, cfg.RedisURL, logger)
	if rdb != nil {
		defer rdb.Close()
	}
	cache := repository.NewRedisRepo(rdb)

	hub := ws.NewHub(logger)
	defer hub.Close()
	publishers := messaging.Fanout{hub}
	if cfg.NatsURL != "" {
		nc, err := messaging.ConnectNats(cfg.NatsURL, logger)
		if err != nil {
			logger.Warn("nats unavailable, events stay local", "err", err)
		} else {
			defer nc.Close()
			publishers = append(publishers, nc)
		}
	}

	h := handler.NewHandler(
		usecase.NewArtworkUsecase(st.artworks, cache, publishers, cfg.CacheTTL, logger),
		usecase.NewUserUsecase(st.users, publishers, logger),
		usecase.NewListUsecase(st.users, st.artworks, publishers, logger),
		usecase.NewCatalogUsecase(st.catalog),
		logger,
	)

	limiter := infrastructure.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, 10*time.Minute)
	defer limiter.Stop()

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: handler.NewRouter(h, handler.RouterConfig{
			Events:         hub,
			StaticDir:      cfg.StaticDir,
			Limiter:        limiter,
			RequestTimeout: cfg.RequestTimeout,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "store", cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStores(ctx context.Context, cfg *config.Config, logger *log.Logger) (*stores, error) {
	if cfg.Store == config.StoreMemory {
		logger.Warn("using in-memory store, data is lost on exit")
		return &stores{
			artworks: memory.NewArtworkRepo(),
			users:    memory.NewUserRepo(),
			catalog:  memory.NewCatalogRepo(nil, nil),
			close:    func() {},
		}, nil
	}

	client, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	database := client.Database(cfg.Database)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}
	logger.Info("connected to mongodb", "database", cfg.Database)

	return &stores{
		artworks: repository.NewArtworkRepo(database),
		users:    repository.NewUserRepo(database),
		catalog:  repository.NewCatalogRepo(database),
		close: func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Warn("mongodb disconnect failed", "err", err)
			}
		},
	}, nil
}

// connectRedis returns nil when caching is off or the server is unreachable,
// which disables the artwork cache.
func connectRedis(ctx context.Context, url string, logger *log.Logger) *redis.Client {
	if url == "" {
		return nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		logger.Warn("invalid REDIS_URL, cache disabled", "err", err)
		return nil
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unavailable, cache disabled", "err", err)
		client.Close()
		return nil
	}
	logger.Info("connected to redis", "addr", opts.Addr)
	return client
}

func levelOrInfo(level string) log.Level {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
