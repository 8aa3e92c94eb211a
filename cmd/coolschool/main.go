package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coolschool/internal/auth"
	"coolschool/internal/config"
	"coolschool/internal/database"
	"coolschool/internal/logger"
	"coolschool/internal/page"
	"coolschool/internal/web"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, errHelp) {
			os.Exit(2)
		}
		logger.Fatal("coolschool failed", slog.String("error", err.Error()))
	}
}

// run returns instead of exiting so deferred cleanup always happens.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	dsn := flag.String("dsn", cfg.DSN, "The database connection string.")
	addr := flag.String("addr", cfg.Addr, "The address to listen on.")
	flag.Parse()

	logger.Init(cfg.LogLevel, cfg.IsProduction())

	db, err := database.New(cfg.DBDriver, *dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Info("database migrated", slog.String("driver", cfg.DBDriver))

	pageRepo := page.NewRepository(db)
	if err := pageRepo.Seed(ctx, cfg.Site); err != nil {
		return fmt.Errorf("failed to seed pages: %w", err)
	}

	if cfg.SessionKey == "" {
		logger.Warn("COOLSCHOOL_SESSION_KEY is not set, sessions will not survive a restart")
	}
	store, err := auth.NewCookieStore(cfg.SessionKey)
	if err != nil {
		return fmt.Errorf("failed to create session store: %w", err)
	}

	if args := flag.Args(); len(args) > 0 && args[0] == "admin" {
		cli := &commandLine{
			authService: auth.NewService(auth.NewRepository(db), store),
			pageRepo:    pageRepo,
			site:        cfg.Site,
			out:         os.Stdout,
		}
		return cli.run(args)
	}

	server, err := web.NewServer(cfg.Site, db, store)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	srv := &http.Server{
		Addr:         *addr,
		Handler:      server,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("addr", *addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}

	logger.Info("server exited")
	return nil
}
