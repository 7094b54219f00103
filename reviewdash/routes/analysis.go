// reviewdash/routes/analysis.go
package routes

import (
	"net/http"

	"reviewdash/reviewdash/controllers"

	"github.com/go-chi/chi/v5"
)

func MetricsRoutes(ctrl *controllers.AnalysisController) chi.Router {
	r := chi.NewRouter()
	r.Get("/", handleJSON(func(r *http.Request) (any, int, error) {
		res, err := ctrl.Metrics(r.Context())
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return res, http.StatusOK, nil
	}))
	return r
}

func DuplicateRoutes(ctrl *controllers.AnalysisController) chi.Router {
	r := chi.NewRouter()
	r.Get("/", handleJSON(func(r *http.Request) (any, int, error) {
		res, err := ctrl.Duplicates(r.Context())
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return res, http.StatusOK, nil
	}))
	return r
}

// AnalysisRoutes serves the public dashboard tabs. The bare path runs the
// model analysis.
func AnalysisRoutes(ctrl *controllers.AnalysisController, llmCtrl *controllers.LLMController) chi.Router {
	r := chi.NewRouter()
	r.Get("/", reviewAnalysisHandler(llmCtrl))
	r.Group(func(ar chi.Router) {
		ar.Get("/categories", handleJSON(func(r *http.Request) (any, int, error) {
			res, err := ctrl.Categories(r.Context())
			if err != nil {
				return nil, http.StatusInternalServerError, err
			}
			return res, http.StatusOK, nil
		}))
		ar.Get("/workareas", handleJSON(func(r *http.Request) (any, int, error) {
			res, err := ctrl.WorkAreas(r.Context())
			if err != nil {
				return nil, http.StatusInternalServerError, err
			}
			return res, http.StatusOK, nil
		}))
		ar.Get("/intents", handleJSON(func(r *http.Request) (any, int, error) {
			res, err := ctrl.Intents(r.Context())
			if err != nil {
				return nil, http.StatusInternalServerError, err
			}
			return res, http.StatusOK, nil
		}))
		ar.Get("/capabilities", handleJSON(func(r *http.Request) (any, int, error) {
			res, err := ctrl.Capabilities(r.Context())
			if err != nil {
				return nil, http.StatusInternalServerError, err
			}
			return res, http.StatusOK, nil
		}))
		ar.Get("/training", handleJSON(func(r *http.Request) (any, int, error) {
			res, err := ctrl.Training(r.Context())
			if err != nil {
				return nil, http.StatusInternalServerError, err
			}
			return res, http.StatusOK, nil
		}))
		ar.Get("/queries", handleJSON(func(r *http.Request) (any, int, error) {
			res, err := ctrl.Queries(r.Context())
			if err != nil {
				return nil, http.StatusInternalServerError, err
			}
			return res, http.StatusOK, nil
		}))
	})
	return r
}
