package main

import (
	"context"
	"database/sql"
	"flag"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

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

	flag.StringVar(&cfg.DBHost, "db-host", cfg.DBHost, "Database host")
	flag.StringVar(&cfg.DBPort, "db-port", cfg.DBPort, "Database port")
	flag.StringVar(&cfg.DBUser, "db-user", cfg.DBUser, "Database user")
	flag.StringVar(&cfg.DBPassword, "db-pass", cfg.DBPassword, "Database password")
	flag.StringVar(&cfg.DBName, "db-name", cfg.DBName, "Database name")
	timeout := flag.Duration("timeout", 5*time.Minute, "Maximum duration of the job")
	flag.Parse()

	logger, err := log.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	log.SetDefault(logger)
	defer logger.Sync()

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("failed to reach database", zap.Error(err))
	}

	pollRepo := postgres.NewPollRepository(db)
	resultRepo := postgres.NewPollResultRepository(db)

	summaryService := services.NewSummaryService(pollRepo, resultRepo)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	log.Info("starting vote summarization job")
	start := time.Now()

	if err := summaryService.SummarizeAllVotes(ctx); err != nil {
		log.Fatal("error summarizing votes", zap.Error(err))
	}

	log.Info("vote summarization completed", zap.Duration("took", time.Since(start)))
}
