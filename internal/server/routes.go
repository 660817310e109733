package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) routes(prefix string) chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.recoverer)
	r.Use(s.logRequests)
	r.Use(cors(defaultCORS))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "API is running"})
	})

	r.Route(prefix, func(r chi.Router) {
		r.Get("/library/{name}", s.handleLibrary)
		r.Get("/library/{name}/source", s.handleSource)
		r.Get("/library/{name}/examples", s.handleExamples)
		r.Get("/library/{name}/diagram", s.handleDiagram)
		r.Get("/search", s.handleInstalled)
		r.Get("/pypi/search", s.handlePyPISearch)
		r.Get("/pypi/package/{name}", s.handlePyPIPackage)
		r.Get("/recommend", s.handleRecommend)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Status: statusError, Message: "Route not found."})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Status: statusError, Message: "Method not allowed."})
	})
	return r
}
