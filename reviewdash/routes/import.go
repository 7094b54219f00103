// reviewdash/routes/import.go
package routes

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"reviewdash/reviewdash/config"
	"reviewdash/reviewdash/controllers"
	"reviewdash/reviewdash/middlewares"
	"reviewdash/reviewdash/services/importer"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// importEndpoints maps each trigger path to the table it refreshes.
var importEndpoints = map[string]importer.Kind{
	"/":                             importer.KindReviews,
	"/intent-keywords":              importer.KindIntents,
	"/capabilities":                 importer.KindCapabilities,
	"/work-area-broader-categories": importer.KindWorkAreas,
	"/training-recommendations":     importer.KindTraining,
}

func runImport(ctrl *controllers.ImportController, kind importer.Kind) http.HandlerFunc {
	return handleJSON(func(r *http.Request) (any, int, error) {
		res, err := ctrl.Import(r.Context(), kind)
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return res, http.StatusOK, nil
	})
}

// ImportRoutes exposes the admin-only import triggers.
func ImportRoutes(ctrl *controllers.ImportController, cfg config.Config) chi.Router {
	r := chi.NewRouter()
	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AdminMiddleware(cfg))
		for path, kind := range importEndpoints {
			gr.Post(path, runImport(ctrl, kind))
		}
	})
	return r
}

// ImportHistoryRoutes lists past import runs and their archived sources.
func ImportHistoryRoutes(ctrl *controllers.ImportController, cfg config.Config) chi.Router {
	r := chi.NewRouter()
	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AdminMiddleware(cfg))

		gr.Get("/", handleJSON(func(r *http.Request) (any, int, error) {
			limit := 0
			if s := r.URL.Query().Get("limit"); s != "" {
				n, err := strconv.Atoi(s)
				if err != nil || n < 0 {
					return nil, http.StatusBadRequest, fmt.Errorf("invalid limit %q", s)
				}
				limit = n
			}
			runs, err := ctrl.ListRuns(r.Context(), limit)
			if err != nil {
				return nil, http.StatusInternalServerError, err
			}
			return runs, http.StatusOK, nil
		}))

		gr.Get("/{id}", handleJSON(func(r *http.Request) (any, int, error) {
			id, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				return nil, http.StatusBadRequest, err
			}
			run, err := ctrl.GetRun(r.Context(), id)
			if errors.Is(err, controllers.ErrRunNotFound) {
				return nil, http.StatusNotFound, err
			}
			if err != nil {
				return nil, http.StatusInternalServerError, err
			}
			return run, http.StatusOK, nil
		}))

		gr.Get("/{id}/source", func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			data, name, err := ctrl.ArchivedSource(r.Context(), id)
			switch {
			case errors.Is(err, controllers.ErrRunNotFound):
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			case errors.Is(err, controllers.ErrArchiveDisabled):
				http.Error(w, err.Error(), http.StatusNotImplemented)
				return
			case err != nil:
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/octet-stream")
			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
			w.Write(data)
		})
	})
	return r
}

// ImportURL is the trigger endpoint for kind on a server rooted at base.
func ImportURL(base string, kind importer.Kind) (string, bool) {
	for path, k := range importEndpoints {
		if k == kind {
			return strings.TrimRight(base, "/") + strings.TrimRight("/api/import"+path, "/"), true
		}
	}
	return "", false
}
