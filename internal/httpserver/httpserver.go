package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"golang.org/x/sync/errgroup"
)

// Run starts the HTTP server and all background services, then blocks until shutdown signal.
//  1. Map HTTP handlers and routes
//  2. Start the realtime hub and the Redis subscriber
//  3. Serve HTTP until SIGINT/SIGTERM
//  4. Drain HTTP, then the subscriber, then the hub
func (srv *HTTPServer) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.serve(ctx)
}

func (srv *HTTPServer) serve(ctx context.Context) error {
	// 1. Map handlers
	if err := srv.mapHandlers(ctx); err != nil {
		srv.logger.Errorf(ctx, "Failed to map handlers: %v", err)
		return err
	}

	srv.srv = &http.Server{
		Addr:    net.JoinHostPort(srv.host, strconv.Itoa(srv.port)),
		Handler: srv.gin,
	}

	g, gctx := errgroup.WithContext(ctx)

	// 2. Background services
	g.Go(func() error {
		srv.realtimeUC.Run()
		return nil
	})
	srv.logger.Info(ctx, "Realtime hub started")

	if srv.subscriber != nil {
		if err := srv.subscriber.Start(); err != nil {
			srv.logger.Errorf(ctx, "Failed to start Redis subscriber: %v", err)
			srv.shutdownServices(context.Background())
			_ = g.Wait()
			return err
		}
	}

	// 3. HTTP
	g.Go(func() error {
		srv.logger.Infof(ctx, "HTTP server listening on %s", srv.srv.Addr)
		if err := srv.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	// 4. Shutdown once a signal arrives or the listener fails
	g.Go(func() error {
		<-gctx.Done()
		srv.logger.Info(context.Background(), "Stopping SOS service...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), srv.shutdownTimeout)
		defer cancel()

		if err := srv.srv.Shutdown(shutdownCtx); err != nil {
			srv.logger.Errorf(shutdownCtx, "HTTP server shutdown error: %v", err)
		}
		srv.shutdownServices(shutdownCtx)
		return nil
	})

	if err := g.Wait(); err != nil {
		srv.logger.Errorf(context.Background(), "SOS service stopped with error: %v", err)
		return err
	}

	srv.logger.Info(context.Background(), "SOS service stopped")
	return nil
}

func (srv *HTTPServer) shutdownServices(ctx context.Context) {
	if srv.subscriber != nil {
		if err := srv.subscriber.Shutdown(ctx); err != nil {
			srv.logger.Errorf(ctx, "Redis subscriber shutdown error: %v", err)
		}
	}
	if srv.relay != nil {
		srv.relay.Wait()
	}
	if err := srv.realtimeUC.Shutdown(ctx); err != nil {
		srv.logger.Errorf(ctx, "Realtime hub shutdown error: %v", err)
	}
}
