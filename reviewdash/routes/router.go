// reviewdash/routes/router.go
package routes

import (
	"net/http"
	"time"

	"reviewdash/reviewdash/config"
	"reviewdash/reviewdash/controllers"
	"reviewdash/reviewdash/middlewares"
	"reviewdash/reviewdash/services/events"
	"reviewdash/reviewdash/utils/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Controllers groups everything the router serves.
type Controllers struct {
	Analysis *controllers.AnalysisController
	Import   *controllers.ImportController
	Health   *controllers.HealthController
	LLM      *controllers.LLMController
	Hub      *events.Hub
}

// DefaultRequestTimeout bounds every read endpoint when the config sets none.
// Imports run to completion.
const DefaultRequestTimeout = 60 * time.Second

func NewRouter(cfg config.Config, c Controllers) http.Handler {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewares.RequestMetrics)
	r.Use(middleware.Recoverer)

	r.Mount("/health", HealthRoutes(c.Health))
	r.Handle("/metrics", metrics.Handler())
	// long lived, kept out of the request timeout
	r.Get("/api/events", EventsHandler(c.Hub))
	r.Mount("/api/import", ImportRoutes(c.Import, cfg))

	r.Group(func(gr chi.Router) {
		gr.Use(middleware.Timeout(timeout))
		gr.Mount("/api/metrics", MetricsRoutes(c.Analysis))
		gr.Mount("/api/analysis", AnalysisRoutes(c.Analysis, c.LLM))
		gr.Mount("/api/training", TrainingRoutes(c.LLM))
		gr.Mount("/api/check-duplicates", DuplicateRoutes(c.Analysis))
		gr.Mount("/api/imports", ImportHistoryRoutes(c.Import, cfg))
	})
	return r
}
