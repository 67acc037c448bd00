// Command seed fills the configured database with demo data.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"echoes/internal/config"
	"echoes/internal/db"
	"echoes/internal/observability"
	"echoes/internal/seed"
)

var errProduction = errors.New("refusing to seed a production database")

func main() {
	numUsers := flag.Int("users", 12, "Number of users to create")
	numPosts := flag.Int("posts", 60, "Number of posts to create")
	maxComments := flag.Int("comments", 3, "Maximum comments per post")
	shouldClean := flag.Bool("clean", false, "Delete existing rows before seeding")
	seedValue := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := observability.Setup(cfg.Env, cfg.LogLevel)

	opts := seed.Options{
		Users:    *numUsers,
		Posts:    *numPosts,
		Comments: *maxComments,
		Seed:     *seedValue,
	}
	if err := run(context.Background(), cfg, opts, *shouldClean); err != nil {
		logger.Error("seeding failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("all seeded users share one password", slog.String("password", seed.DemoPassword))
}

// run returns instead of exiting so the database is always closed.
func run(ctx context.Context, cfg *config.Config, opts seed.Options, clean bool) (err error) {
	if cfg.IsProduction() {
		return errProduction
	}

	gdb, err := db.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if cerr := db.Close(gdb); cerr != nil {
			observability.Logger.Error("failed to close database", slog.Any("error", cerr))
			if err == nil {
				err = cerr
			}
		}
	}()

	s := seed.NewSeeder(gdb, opts)
	if clean {
		if err := s.ClearAll(ctx); err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
	}

	if _, err := s.Run(ctx); err != nil {
		return err
	}
	return nil
}
