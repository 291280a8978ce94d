package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrpayroll/internal/app"
	"hrpayroll/internal/platform/jobs"
	employeehandler "hrpayroll/internal/transport/http/handlers/employees"
	"hrpayroll/internal/transport/http/api"
	"hrpayroll/internal/transport/http/middleware"
)

func NewRouter(a *app.App) http.Handler {
	cfg := a.Config
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(a.Logger, a.Metrics))
	router.Use(middleware.Recoverer(a.Logger))
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			snapshot := a.Metrics.Snapshot()
			snapshot["employees"] = a.Service.Count()
			api.Success(w, snapshot, middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.MutationRateLimit(cfg.RateLimitPerMin, time.Minute, cfg.TrustProxyHeaders))
		employeeHandler := employeehandler.NewHandler(a.Service, a.Metrics, a.Logger)
		employeeHandler.RegisterRoutes(r)
	})

	return router
}

// Run serves the API until ctx is cancelled, then drains in-flight requests
// and saves the roster one last time.
func Run(ctx context.Context, a *app.App) error {
	jobCtx, cancelJobs := context.WithCancel(ctx)
	defer cancelJobs()
	runner := jobs.New(a.Logger)
	runner.Start(jobCtx)
	runner.Every(jobCtx, jobs.JobRosterAutosave, a.Config.AutosaveInterval, a.Service.Save)

	srv := &http.Server{
		Addr:              a.Config.Addr,
		Handler:           NewRouter(a),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("payroll server listening", "addr", a.Config.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warn("server shutdown failed", "err", err)
	}
	cancelJobs()
	runner.Wait()
	// Shutdown may have used the whole timeout, so the save gets its own context.
	if err := a.Service.Save(context.WithoutCancel(ctx)); err != nil {
		a.Logger.Error("final roster save failed", "err", err)
		return errors.Join(serveErr, err)
	}
	return serveErr
}
