package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/libscope/pkg/diagram"
	apperr "github.com/matzehuels/libscope/pkg/errors"
	"github.com/matzehuels/libscope/pkg/examples"
	"github.com/matzehuels/libscope/pkg/introspect"
	"github.com/matzehuels/libscope/pkg/recommend"
	"github.com/matzehuels/libscope/pkg/registry"
)

type libraryResponse struct {
	Status string `json:"status"`
	*introspect.Library
}

func (s *Server) handleLibrary(w http.ResponseWriter, r *http.Request) {
	lib, err := s.svc.Inspector.Describe(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, libraryResponse{Status: statusSuccess, Library: lib})
}

type sourceResponse struct {
	Status     string `json:"status"`
	SourceCode string `json:"source_code"`
}

func (s *Server) handleSource(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	src, err := s.svc.Inspector.Source(r.Context(), introspect.SourceRequest{
		Library: chi.URLParam(r, "name"),
		Kind:    introspect.ElementKind(q.Get("type")),
		Name:    q.Get("name"),
		Parent:  q.Get("parent"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sourceResponse{Status: statusSuccess, SourceCode: src})
}

type examplesResponse struct {
	Status string `json:"status"`
	*examples.Entry
}

func (s *Server) handleExamples(w http.ResponseWriter, r *http.Request) {
	entry, err := s.svc.Examples.Examples(r.Context(), chi.URLParam(r, "name"), queryBool(r, "refresh"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, examplesResponse{Status: statusSuccess, Entry: entry})
}

func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	format, err := diagram.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, err)
		return
	}
	lib, err := s.svc.Inspector.Describe(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := s.svc.Diagrams.Render(r.Context(), lib, format)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

type installedResponse struct {
	Status   string               `json:"status"`
	Packages []introspect.Package `json:"packages"`
}

func (s *Server) handleInstalled(w http.ResponseWriter, r *http.Request) {
	pkgs, err := s.svc.Inspector.Installed(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.logger.Warn("installed package listing failed", "error", err, "request_id", RequestID(r.Context()))
		pkgs = []introspect.Package{}
	}
	writeJSON(w, http.StatusOK, installedResponse{Status: statusSuccess, Packages: pkgs})
}

type pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type searchFilters struct {
	Query      string           `json:"query"`
	SortBy     registry.SortKey `json:"sort_by"`
	ExactMatch bool             `json:"exact_match"`
}

type pypiSearchResponse struct {
	Status     string                 `json:"status"`
	Message    string                 `json:"message,omitempty"`
	Results    []registry.PackageInfo `json:"results"`
	Pagination pagination             `json:"pagination"`
	Filters    searchFilters          `json:"filters"`
}

// handlePyPISearch always answers 200; failures are reported in the body.
func (s *Server) handlePyPISearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := registry.SearchOptions{
		Query:      q.Get("q"),
		Page:       queryInt(r, "page"),
		PerPage:    queryInt(r, "per_page"),
		SortBy:     registry.SortKey(q.Get("sort_by")),
		ExactMatch: queryBool(r, "exact_match"),
	}.Normalize()

	resp := pypiSearchResponse{
		Status:     statusSuccess,
		Results:    []registry.PackageInfo{},
		Pagination: pagination{Page: opts.Page, PerPage: opts.PerPage},
		Filters:    searchFilters{Query: opts.Query, SortBy: opts.SortBy, ExactMatch: opts.ExactMatch},
	}

	res, err := s.safeSearch(r, opts)
	if err != nil {
		resp.Status = statusError
		resp.Message = apperr.UserMessage(err)
		writeJSON(w, http.StatusOK, resp)
		return
	}
	resp.Results = res.Results
	resp.Pagination.Total = res.Total
	resp.Pagination.TotalPages = res.TotalPages
	writeJSON(w, http.StatusOK, resp)
}

// safeSearch converts a panic in the search path into an error so the
// route keeps its 200 contract.
func (s *Server) safeSearch(r *http.Request, opts registry.SearchOptions) (res *registry.SearchResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("pypi search panic", "error", rec, "request_id", RequestID(r.Context()))
			err = apperr.New(apperr.ErrCodeInternal, "Error searching PyPI.")
		}
	}()
	return s.svc.Registry.Search(r.Context(), opts)
}

type packageResponse struct {
	Status  string                  `json:"status"`
	Package *registry.PackageDetail `json:"package"`
}

func (s *Server) handlePyPIPackage(w http.ResponseWriter, r *http.Request) {
	detail, err := s.svc.Registry.Package(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, packageResponse{Status: statusSuccess, Package: detail})
}

type recommendResponse struct {
	Status string `json:"status"`
	*recommend.Recommendation
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	rec, err := s.svc.Recommender.Recommend(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recommendResponse{Status: statusSuccess, Recommendation: rec})
}

func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get(key)))
	if err != nil {
		return 0
	}
	return n
}

func queryBool(r *http.Request, key string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(r.URL.Query().Get(key)))
	return err == nil && b
}
