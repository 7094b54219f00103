// reviewdash/routes/llm.go
package routes

import (
	"errors"
	"net/http"

	"reviewdash/reviewdash/controllers"

	"github.com/go-chi/chi/v5"
)

func llmStatus(err error) int {
	if errors.Is(err, controllers.ErrLLMDisabled) {
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func reviewAnalysisHandler(ctrl *controllers.LLMController) http.HandlerFunc {
	return handleJSON(func(r *http.Request) (any, int, error) {
		res, err := ctrl.AnalyzeReviews(r.Context())
		if err != nil {
			return nil, llmStatus(err), err
		}
		return res, http.StatusOK, nil
	})
}

// TrainingRoutes serves model generated course recommendations.
func TrainingRoutes(ctrl *controllers.LLMController) chi.Router {
	r := chi.NewRouter()
	r.Get("/recommendations", handleJSON(func(r *http.Request) (any, int, error) {
		res, err := ctrl.TrainingRecommendations(r.Context())
		if err != nil {
			return nil, llmStatus(err), err
		}
		return res, http.StatusOK, nil
	}))
	return r
}
