package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/brp/internal/cli"
	"github.com/alexanderramin/brp/internal/config"
	"github.com/alexanderramin/brp/internal/db"
	"github.com/alexanderramin/brp/internal/repository"
	"github.com/alexanderramin/brp/internal/service"
	"github.com/alexanderramin/brp/internal/store"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	st := store.New(repository.NewSQLiteDocumentRepo(database), store.WithLogger(logger))

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}
	svc := service.NewBRPService(st, nil, observer)

	if cfg.SeedDemo {
		if _, err := svc.Seed(context.Background()); err != nil {
			return fmt.Errorf("seeding demo data: %w", err)
		}
	}

	app := &cli.App{
		BRPs:          svc,
		AutoSaveDelay: cfg.AutoSaveDelay(),
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	return cli.NewRootCmd(app).ExecuteContext(context.Background())
}
