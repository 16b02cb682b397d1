package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gyaneshwarpardhi/automation/internal/api"
	"github.com/gyaneshwarpardhi/automation/internal/automation"
	"github.com/gyaneshwarpardhi/automation/internal/catalog"
	"github.com/gyaneshwarpardhi/automation/internal/directory"
	"github.com/gyaneshwarpardhi/automation/internal/engine"
	"github.com/gyaneshwarpardhi/automation/internal/locale"
	"github.com/gyaneshwarpardhi/automation/internal/notify"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	catalogPath := flag.String("catalog", "configs/catalog.yaml", "Path to the automation catalog YAML")
	directoryPath := flag.String("directory", "configs/directory.yaml", "Path to the account directory YAML")
	localePath := flag.String("locale", "configs/locale.en.yaml", "Path to the locale YAML")
	workers := flag.Int("workers", 8, "Batch format workers")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// ── Load catalog, directory and strings ──────────────────────────────────
	loader, err := catalog.NewLoader(*catalogPath)
	if err != nil {
		slog.Error("failed to load catalog", "err", err)
		os.Exit(1)
	}
	base := loader.Catalog()
	dir, err := directory.Load(*directoryPath)
	if err != nil {
		slog.Error("failed to load directory", "err", err)
		os.Exit(1)
	}
	bundle, err := locale.Load(*localePath)
	if err != nil {
		slog.Error("failed to load locale", "err", err)
		os.Exit(1)
	}

	// ── Editing context ──────────────────────────────────────────────────────
	notifier := notify.NewLogger(logger)
	build := func(c *catalog.Catalog) *automation.Editor {
		return automation.NewEditor(c, dir, bundle, notifier)
	}
	editor := build(base)
	slog.Info("catalog loaded",
		"events", len(base.Events),
		"actions", len(base.Actions),
		"custom_attributes", len(dir.CustomAttributes()),
	)

	// ── Batch formatter ──────────────────────────────────────────────────────
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	batcher := engine.New(ctx, engine.Conf{Workers: *workers, Timeout: 5 * time.Second})

	handler := api.New(api.Deps{
		Loader:   loader,
		Build:    build,
		Batcher:  batcher,
		Notifier: notifier,
	}, editor)

	// ── Hot-reload watcher ────────────────────────────────────────────────────
	// The handler swaps its editor on reload; this only logs.
	loader.OnChange(func(c *catalog.Catalog) {
		slog.Info("catalog reloaded", "events", len(c.Events), "actions", len(c.Actions))
	})
	stopWatch, err := loader.Watch()
	if err != nil {
		slog.Warn("catalog watcher unavailable (hot-reload disabled)", "err", err)
	} else {
		defer stopWatch()
	}

	// ── HTTP server ───────────────────────────────────────────────────────────
	srv := &http.Server{
		Addr:         *addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", *addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down…")

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutCancel()
	_ = srv.Shutdown(shutCtx)
	batcher.Shutdown()
	cancel()
	slog.Info("goodbye")
}
