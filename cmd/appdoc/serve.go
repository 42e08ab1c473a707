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

	"github.com/strogmv/appdoc/internal/pkg/tracing"
)

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", "", "listen address, overrides HTTP_ADDR")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	shutdownTracing, err := tracing.Init(ctx, c.Config.OTLPEndpoint, c.Config.ServiceName)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			c.Log.Warn("tracing shutdown", slog.Any("error", err))
		}
	}()

	if err := c.SubscribeNotifications(); err != nil {
		return err
	}

	listen := c.Config.HTTPAddr
	if *addr != "" {
		listen = *addr
	}
	srv := &http.Server{
		Addr:              listen,
		Handler:           c.HTTPHandler().Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Log.Info("http server listening", slog.String("addr", listen))
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

	c.Log.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(sctx)
}
