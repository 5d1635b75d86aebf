package main

import (
	"context"
	"database/sql"
	"errors"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/lunchpoll/internal/adapters/handler/http"
	"github.com/vncsmyrnk/lunchpoll/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/lunchpoll/internal/config"
	"github.com/vncsmyrnk/lunchpoll/internal/core/services"
	"github.com/vncsmyrnk/lunchpoll/internal/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := log.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	log.SetDefault(logger)
	defer logger.Sync()

	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET is not set, voting endpoints will reject every token")
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("failed to reach database", zap.Error(err))
	}

	pollRepo := postgres.NewPollRepository(db)
	voteRepo := postgres.NewVoteRepository(db)
	resultRepo := postgres.NewPollResultRepository(db)
	userRepo := postgres.NewUserRepository(db)

	pollService := services.NewPollService(pollRepo)
	summaryService := services.NewSummaryService(pollRepo, resultRepo)
	voteService := services.NewVoteService(pollRepo, voteRepo, summaryService)
	userService := services.NewUserService(userRepo)

	handler := http.NewHandler(
		http.NewPollHandler(pollService, logger),
		http.NewVoteHandler(voteService, logger),
		http.NewUserHandler(userService),
		[]byte(cfg.JWTSecret),
		cfg.AllowedOrigins,
		logger,
	)
	server := &stdhttp.Server{Addr: cfg.HTTPAddr, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("shutdown failed", zap.Error(err))
	}
}
