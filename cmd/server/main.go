package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Prem-Healthinformatics/pruno/internal/cache"
	"github.com/Prem-Healthinformatics/pruno/internal/config"
	"github.com/Prem-Healthinformatics/pruno/internal/game"
	"github.com/Prem-Healthinformatics/pruno/internal/server"
	"github.com/Prem-Healthinformatics/pruno/internal/session"
	"github.com/Prem-Healthinformatics/pruno/internal/store"
)

func main() {
	cfg := config.Load()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := openStore(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed opening store")
	}
	defer repo.Close(context.Background())

	var historian *cache.Historian
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		historian = cache.NewHistorian(rdb)
		logrus.WithField("addr", cfg.RedisAddr).Info("action historian enabled")
	}

	registry := session.NewRegistry()
	rooms := game.NewManager(repo, historian, registry.BroadcastToRoom)
	srv := server.New(cfg, registry, rooms)

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: srv.Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Warn("shutdown was not clean")
		}
	}()

	logrus.WithField("addr", cfg.ListenAddr).Info("listening")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.WithError(err).Fatal("server exited")
	}
}

// openStore picks the persistence backend from config: postgres, then sqlite,
// then in-process memory.
func openStore(ctx context.Context, cfg *config.Config) (store.Repository, error) {
	switch {
	case cfg.DatabaseURL != "":
		logrus.Info("using postgres store")
		return store.NewPostgresRepository(ctx, cfg.DatabaseURL)
	case cfg.SQLitePath != "":
		logrus.WithField("path", cfg.SQLitePath).Info("using sqlite store")
		return store.NewSQLiteRepository(ctx, cfg.SQLitePath)
	default:
		logrus.Warn("no DATABASE_URL or SQLITE_PATH set, rooms will not survive restarts")
		return store.NewMemoryRepository(), nil
	}
}
