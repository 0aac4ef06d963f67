package api

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"
)

const shutdownGrace = 5 * time.Second

// Serve runs the palette API on Config.HTTPPort until ctx is cancelled or the
// process receives SIGINT or SIGTERM.
func (app *Application) Serve(ctx context.Context, mux *http.ServeMux) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", app.Config.HTTPPort)
	if err != nil {
		return err
	}
	return app.serve(ctx, ln, mux)
}

func (app *Application) serve(ctx context.Context, ln net.Listener, mux *http.ServeMux) error {
	srv := &http.Server{
		Handler:      app.BuildRoutes(mux),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	served := make(chan error, 1)
	go func() { served <- srv.Serve(ln) }()

	log.Printf("palette api listening on %s (%d names, origins %v)",
		ln.Addr(), app.names().Len(), app.Config.AllowedOrigins)

	select {
	case err := <-served:
		return err
	case <-ctx.Done():
	}

	log.Printf("palette api draining requests on %s", ln.Addr())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-served; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	log.Printf("palette api stopped on %s", ln.Addr())
	return nil
}
