package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sbmonitor/internal/config"
	"sbmonitor/internal/logging"
	"sbmonitor/internal/poll"
	"sbmonitor/internal/slicebox"
	"sbmonitor/internal/trace"
	"sbmonitor/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load also validates.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, shutdown, err := trace.NewTracerProvider(ctx)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			logger.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	client, err := slicebox.New(cfg.Server.BaseURL,
		slicebox.WithTimeout(cfg.Server.Timeout),
		slicebox.WithBasicAuth(cfg.Server.Username, cfg.Server.Password),
		slicebox.WithTracerProvider(tp),
		slicebox.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	logger.Info("starting", zap.String("server", client.BaseURL()), zap.Duration("poll_interval", cfg.Poll.Interval))

	app := ui.NewAppModel(ui.ControllerDeps{
		Parent:   ctx,
		Pages:    client,
		Modals:   ui.NewModals(client),
		Clock:    poll.RealClock{},
		Interval: cfg.Poll.Interval,
		PageSize: cfg.Table.PageSize,
		Logger:   logger,
	})
	defer app.Close()

	p := tea.NewProgram(app.AsTeaModel(), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
