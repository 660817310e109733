package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matzehuels/libscope/pkg/examples"
	"github.com/matzehuels/libscope/pkg/integrations"
	"github.com/matzehuels/libscope/pkg/integrations/pypi"
	"github.com/matzehuels/libscope/pkg/introspect"
	"github.com/matzehuels/libscope/pkg/introspect/introspecttest"
	"github.com/matzehuels/libscope/pkg/registry"
)

type fakeIndex struct {
	packages map[string]*pypi.PackageInfo
}

func (f fakeIndex) FetchPackage(_ context.Context, name string, _ bool) (*pypi.PackageInfo, error) {
	if p, ok := f.packages[strings.ToLower(name)]; ok {
		return p, nil
	}
	return nil, integrations.ErrNotFound
}

func (fakeIndex) ListProjects(context.Context, bool) ([]string, error) { return nil, nil }

func (fakeIndex) SearchPage(context.Context, string, int) ([]pypi.SearchHit, error) {
	return nil, nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	insp := introspect.New(introspecttest.JSON(), introspect.Options{})
	idx := fakeIndex{packages: map[string]*pypi.PackageInfo{
		"requests": {
			Name:     "requests",
			Version:  "2.32.3",
			Summary:  "Python HTTP for Humans.",
			Releases: []pypi.Release{{Version: "2.31.0"}, {Version: "2.32.3"}},
		},
	}}
	return New(Services{
		Inspector: insp,
		Examples:  examples.New(examples.Options{Docs: insp}),
		Registry:  registry.New(idx, registry.Options{Installed: insp}),
	}, Options{})
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestRoot(t *testing.T) {
	rec := get(t, newTestServer(t), "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decode(t, rec)["status"]; got != "API is running" {
		t.Errorf("status field = %v", got)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q", got)
	}
}

func TestLibrary(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/library/json")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}

	var body struct {
		Status   string `json:"status"`
		Metadata struct {
			Name    string `json:"name"`
			Version string `json:"version"`
		} `json:"metadata"`
		Classes []struct {
			Name    string `json:"name"`
			Methods []struct {
				Name string `json:"name"`
			} `json:"methods"`
		} `json:"classes"`
		Functions []struct {
			Name string `json:"name"`
		} `json:"functions"`
		Constants []struct {
			Name string `json:"name"`
		} `json:"constants"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "success" || body.Metadata.Name != "json" {
		t.Fatalf("unexpected body %s", rec.Body)
	}

	classes := map[string]int{}
	for _, c := range body.Classes {
		classes[c.Name] = len(c.Methods)
	}
	if _, ok := classes["JSONEncoder"]; !ok {
		t.Error("JSONEncoder missing")
	}
	if n, ok := classes["JSONDecoder"]; !ok || n != 2 {
		t.Errorf("JSONDecoder methods = %d, %v", n, ok)
	}
	if len(body.Functions) != 3 {
		t.Errorf("functions = %+v", body.Functions)
	}
	if len(body.Constants) != 1 || body.Constants[0].Name != "codecs" {
		t.Errorf("constants = %+v", body.Constants)
	}
}

func TestLibraryNotFound(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/library/doesnotexist123")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decode(t, rec)
	if body["status"] != "error" || body["message"] == "" {
		t.Errorf("body = %v", body)
	}
}

func TestSource(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		name   string
		target string
		code   int
		want   string
	}{
		{"function", "/api/library/json/source?type=function&name=dumps", 200, "def dumps"},
		{"method", "/api/library/json/source?type=method&name=encode&parent=JSONEncoder", 200, "def encode"},
		{"fallback", "/api/library/json/source?type=class&name=JSONDecodeError", 200, "Class defined in module: json.decoder"},
		{"missing params", "/api/library/json/source?type=function", 400, ""},
		{"bad kind", "/api/library/json/source?type=module&name=dumps", 400, ""},
		{"method without parent", "/api/library/json/source?type=method&name=encode", 400, ""},
		{"unknown element", "/api/library/json/source?type=function&name=nope", 404, ""},
		{"unknown library", "/api/library/doesnotexist123/source?type=function&name=x", 404, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, tt.target)
			if rec.Code != tt.code {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.code, rec.Body)
			}
			body := decode(t, rec)
			if tt.code != 200 {
				if body["status"] != "error" {
					t.Errorf("status field = %v", body["status"])
				}
				return
			}
			src, _ := body["source_code"].(string)
			if !strings.Contains(src, tt.want) {
				t.Errorf("source_code = %q, want substring %q", src, tt.want)
			}
		})
	}
}

func TestExamples(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/library/json/examples")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	var body struct {
		Status    string             `json:"status"`
		Library   string             `json:"library"`
		Examples  []examples.Example `json:"examples"`
		Timestamp int64              `json:"timestamp"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "success" || body.Library != "json" || len(body.Examples) == 0 || body.Timestamp == 0 {
		t.Errorf("body = %+v", body)
	}
}

func TestExamplesInvalidName(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/library/bad%20name/examples")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestDiagram(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/library/json/diagram?format=dot")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/vnd.graphviz") {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `"class:JSONEncoder"`) {
		t.Errorf("dot missing class node:\n%s", rec.Body)
	}

	rec = get(t, s, "/api/library/json/diagram?format=pdf")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unsupported format status = %d", rec.Code)
	}
}

func TestInstalled(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/search?q=REQ")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body installedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Packages) != 1 || body.Packages[0].Name != "requests" {
		t.Errorf("packages = %+v", body.Packages)
	}
}

func TestInstalledDegradesToEmpty(t *testing.T) {
	p := introspecttest.JSON()
	p.Err = context.DeadlineExceeded
	insp := introspect.New(p, introspect.Options{})
	s := New(Services{
		Inspector: insp,
		Examples:  examples.New(examples.Options{}),
		Registry:  registry.New(fakeIndex{}, registry.Options{}),
	}, Options{})

	rec := get(t, s, "/api/search?q=x")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"status":"success","packages":[]}` {
		t.Errorf("body = %s", got)
	}
}

func TestPyPISearch(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/pypi/search?q=requests&per_page=5")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body pypiSearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "success" || len(body.Results) != 1 {
		t.Fatalf("body = %+v", body)
	}
	r := body.Results[0]
	if r.Name != "requests" || r.Relevance != 100 || !r.Installed {
		t.Errorf("result = %+v", r)
	}
	if body.Pagination.Page != 1 || body.Pagination.PerPage != 5 || body.Pagination.Total != 1 || body.Pagination.TotalPages != 1 {
		t.Errorf("pagination = %+v", body.Pagination)
	}
	if body.Filters.Query != "requests" || body.Filters.SortBy != registry.SortRelevance {
		t.Errorf("filters = %+v", body.Filters)
	}
}

func TestPyPISearchErrorsStay200(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/pypi/search")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decode(t, rec)
	if body["status"] != "error" || body["message"] == "" {
		t.Errorf("body = %v", body)
	}
	if results, ok := body["results"].([]any); !ok || len(results) != 0 {
		t.Errorf("results = %v", body["results"])
	}
}

func TestPyPIPackage(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/pypi/package/requests")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body packageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Package == nil || body.Package.Name != "requests" || !body.Package.Installed {
		t.Fatalf("package = %+v", body.Package)
	}
	if len(body.Package.Releases) != 2 || body.Package.Releases[0].Version != "2.32.3" {
		t.Errorf("releases = %+v", body.Package.Releases)
	}

	rec = get(t, s, "/api/pypi/package/nope-not-here")
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing package status = %d", rec.Code)
	}
}

func TestRecommend(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/recommend?q=testing+with+mocking+and+coverage")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decode(t, rec)
	if body["status"] != "success" {
		t.Fatalf("body = %v", body)
	}
	msg, _ := body["message"].(string)
	if !strings.Contains(msg, "testing") {
		t.Errorf("message = %q", msg)
	}
	if libs, _ := body["libraries"].([]any); len(libs) == 0 {
		t.Error("no libraries recommended")
	}

	rec = get(t, s, "/api/recommend")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty query status = %d", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/library/json", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	h := rec.Header()
	if got := h.Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("allow origin = %q", got)
	}
	if got := h.Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("allow credentials = %q", got)
	}
	if !strings.Contains(h.Get("Access-Control-Allow-Methods"), "GET") {
		t.Errorf("allow methods = %q", h.Get("Access-Control-Allow-Methods"))
	}
}

func TestUnknownRoute(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/nope")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if decode(t, rec)["status"] != "error" {
		t.Error("expected error body")
	}
}
