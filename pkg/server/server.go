package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	indicatorhandlers "github.com/de-tools/isg-atlas/pkg/handlers/indicators"
	"github.com/de-tools/isg-atlas/pkg/handlers/respond"
	riskhandlers "github.com/de-tools/isg-atlas/pkg/handlers/risk"
	isgmiddleware "github.com/de-tools/isg-atlas/pkg/server/middleware"
	"github.com/de-tools/isg-atlas/pkg/services/analytics"
	"github.com/de-tools/isg-atlas/pkg/services/indicator"
	"github.com/de-tools/isg-atlas/pkg/services/risk"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Scorer    risk.Scorer
	Engine    indicator.Engine
	Analytics analytics.Service
	Logger    zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func ConfigureRouter(config Config) http.Handler {
	deps := config.Dependencies
	riskHandler := riskhandlers.NewHandler(deps.Scorer)
	indicatorHandler := indicatorhandlers.NewHandler(deps.Engine, deps.Analytics)

	router := chi.NewRouter()

	router.Use(isgmiddleware.Logger(&deps.Logger))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/risk", func(r chi.Router) {
			r.Get("/score", riskHandler.Score)
			r.Get("/matrix", riskHandler.Matrix)
		})
		r.Route("/indicators", func(r chi.Router) {
			r.Get("/targets", indicatorHandler.ListTargets)
			r.Put("/targets", indicatorHandler.SetTarget)
			r.Post("/actuals", indicatorHandler.UpdateActual)
			r.Post("/actuals/batch", indicatorHandler.BatchUpdateActuals)
			r.Get("/compare", indicatorHandler.Compare)
			r.Get("/trend", indicatorHandler.Trend)
		})
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	return &WebAPI{
		logger: &logger,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: timeout,
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
