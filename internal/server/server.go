package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/pizzeria/app/workers"
	"github.com/shashiranjanraj/pizzeria/config"
	"github.com/shashiranjanraj/pizzeria/pkg/logger"
	"github.com/shashiranjanraj/pizzeria/pkg/schedule"
)

const shutdownTimeout = 10 * time.Second

// Start boots the app and serves until SIGINT or SIGTERM.
func Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := Boot(ctx)
	if err != nil {
		return err
	}
	return app.Serve(ctx)
}

// Scheduler returns the background jobs of the app.
func (a *App) Scheduler() *schedule.Scheduler {
	s := schedule.New()
	s.Interval(config.Duration("TOKEN_SWEEP_INTERVAL", 2*time.Hour)).
		Name(workers.SweepJob).
		WithoutOverlapping().
		Run(a.Sweeper.Run)
	return s
}

// Serve runs the HTTP server, the HTTPS server when a certificate is
// configured, and the scheduler. It returns once ctx is done and everything
// has drained, or when a listener fails.
func (a *App) Serve(ctx context.Context) error {
	handler := a.Router.Handler()

	servers := []*http.Server{{
		Addr:              ":" + config.AppPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}}
	cert, key := config.Get("TLS_CERT_FILE", ""), config.Get("TLS_KEY_FILE", "")
	if cert != "" && key != "" {
		servers = append(servers, &http.Server{
			Addr:              ":" + config.Get("HTTPS_PORT", "3001"),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		})
	}

	errc := make(chan error, len(servers))
	for i, srv := range servers {
		srv := srv
		tls := i > 0
		go func() {
			logger.Info("pizzeria listening", "addr", srv.Addr, "tls", tls, "env", config.AppEnv())
			var err error
			if tls {
				err = srv.ListenAndServeTLS(cert, key)
			} else {
				err = srv.ListenAndServe()
			}
			if !errors.Is(err, http.ErrServerClosed) {
				errc <- err
			}
		}()
	}

	jobCtx, cancelJobs := context.WithCancel(ctx)
	defer cancelJobs()
	sched := a.Scheduler()
	sched.Start(jobCtx)

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case serveErr = <-errc:
		logger.Error("server failed", "error", serveErr)
	}

	cancelJobs()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "addr", srv.Addr, "error", err)
		}
	}
	sched.Wait()

	return serveErr
}
