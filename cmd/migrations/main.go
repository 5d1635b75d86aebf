package main

import (
	"context"
	"database/sql"
	"os"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/lunchpoll/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/lunchpoll/internal/config"
	"github.com/vncsmyrnk/lunchpoll/internal/log"
)

// Usage: migrations [up | <migration name>]
//
// Without an argument, or with "up", every up migration is applied.
// Otherwise the single file whose name ends with the argument is run, for
// example "create_votes.down".
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

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()

	name := "up"
	if len(os.Args) > 1 {
		name = os.Args[1]
	}

	if name == "up" {
		err = postgres.Migrate(ctx, db)
	} else {
		err = postgres.ApplyMigration(ctx, db, name)
	}
	if err != nil {
		log.Fatal("migration failed", zap.String("migration", name), zap.Error(err))
	}

	log.Info("migration executed successfully", zap.String("migration", name))
}
