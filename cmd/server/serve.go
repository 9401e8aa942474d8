package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"terminal-terrace/blog/config"
	"terminal-terrace/blog/internal/database"
	"terminal-terrace/blog/internal/route"
	"terminal-terrace/blog/internal/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conf := config.Conf

	shutdownTracing, err := telemetry.Init(ctx, conf.Telemetry, conf.Server.Mode)
	if err != nil {
		return err
	}
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(c); err != nil {
			slog.Warn("tracer shutdown", "err", err)
		}
	}()

	// 初始化数据库（包含表迁移）
	if err := database.InitDatabase(); err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer database.Close()

	r := route.SetupRouter(database.GetDB(), conf)

	srv := &http.Server{
		Addr:         conf.Server.Addr(),
		Handler:      otelhttp.NewHandler(r, "http.server"),
		ReadTimeout:  conf.Server.ReadTimeout,
		WriteTimeout: conf.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr, "driver", conf.Database.Driver)
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

	slog.Info("shutting down")
	c, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(c)
}
