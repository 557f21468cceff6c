package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/awantoch/kwanixflow/api"
	"github.com/awantoch/kwanixflow/config"
	"github.com/awantoch/kwanixflow/constants"
	"github.com/awantoch/kwanixflow/telemetry"
	"github.com/awantoch/kwanixflow/utils"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const shutdownTimeout = 10 * time.Second

var defaultAllowedOrigins = []string{"http://localhost:3000"}

// StartServer runs the HTTP API until ctx is cancelled.
func StartServer(ctx context.Context, cfg *config.Config) error {
	if cfg == nil {
		cfg = config.Default()
	}
	deps, cleanup, err := api.InitializeDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           NewHandler(deps.Service, cfg.HTTP),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          log.New(&utils.LoggerWriter{Fn: utils.Error, Prefix: "http: "}, "", 0),
	}

	errCh := make(chan error, 1)
	go func() {
		utils.Info("Listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		utils.Info("Shutting down HTTP server")
		return srv.Shutdown(shutdownCtx)
	}
}

// NewHandler returns the full HTTP API for svc.
func NewHandler(svc api.DiagramService, cfg config.HTTPConfig) http.Handler {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = defaultAllowedOrigins
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", constants.HeaderRequestID},
		ExposedHeaders:   []string{constants.HeaderContentDisposition, constants.HeaderRequestID},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	h := &handlers{svc: svc}

	r.Get("/", h.index)
	r.Get(constants.RouteHealth, h.health)
	r.Method(http.MethodGet, constants.RouteMetrics, telemetry.MetricsHandler())
	r.Get(constants.RouteExtensions, h.extensions)

	r.Route(constants.RouteSessions, func(r chi.Router) {
		r.Post("/", h.createSession)
		r.Get("/", h.listSessions)
		r.Route("/{"+constants.ParamSessionID+"}", func(r chi.Router) {
			r.Get("/", h.getSession)
			r.Delete("/", h.deleteSession)
			r.Post("/items", h.createItem)
			r.Get("/items", h.listItems)
			r.Put("/canvas", h.initCanvas)
			r.Post("/drops", h.dropItem)
			r.Patch("/nodes/{"+constants.ParamNodeID+"}", h.moveNode)
			r.Post("/edges", h.connect)
			r.Post("/undo", h.undo)
			r.Post("/reset", h.reset)
			r.Put("/extension", h.setExtension)
			r.Get("/preview", h.preview)
			r.Get("/graph", h.graph)
			r.Get("/export", h.export)
			r.Get("/exports", h.exports)
		})
	})

	return telemetry.WrapHandler(constants.ServiceName, r)
}
