package registry

import (
	"context"
	"errors"
	"strings"
	"testing"

	apperr "github.com/matzehuels/libscope/pkg/errors"
	"github.com/matzehuels/libscope/pkg/integrations"
	"github.com/matzehuels/libscope/pkg/integrations/pypi"
)

var _ Index = (*pypi.Client)(nil)

type fakeIndex struct {
	packages map[string]*pypi.PackageInfo
	projects []string
	hits     []pypi.SearchHit

	indexErr  error
	scrapeErr error
	calls     []string
}

func (f *fakeIndex) FetchPackage(_ context.Context, name string, _ bool) (*pypi.PackageInfo, error) {
	f.calls = append(f.calls, "direct")
	if p, ok := f.packages[strings.ToLower(name)]; ok {
		return p, nil
	}
	return nil, integrations.ErrNotFound
}

func (f *fakeIndex) ListProjects(context.Context, bool) ([]string, error) {
	f.calls = append(f.calls, "index")
	return f.projects, f.indexErr
}

func (f *fakeIndex) SearchPage(context.Context, string, int) ([]pypi.SearchHit, error) {
	f.calls = append(f.calls, "scrape")
	return f.hits, f.scrapeErr
}

type installed map[string]bool

func (i installed) InstalledNames(context.Context) (map[string]bool, error) { return i, nil }

func TestRelevance(t *testing.T) {
	tests := []struct {
		query, name string
		want        int
	}{
		{"flask", "Flask", 100},
		{"re", "requests", 90},
		{"abc", "xyzabc", 87},
		{"nomatch", "requests", 50},
		{"x", strings.Repeat("a", 100) + "x", 10},
	}
	for _, tt := range tests {
		if got := Relevance(tt.query, tt.name); got != tt.want {
			t.Errorf("Relevance(%q, %q) = %d, want %d", tt.query, tt.name, got, tt.want)
		}
	}
}

func TestSearchDirectLookup(t *testing.T) {
	idx := &fakeIndex{packages: map[string]*pypi.PackageInfo{
		"flask": {Name: "Flask", Version: "3.0.0", Summary: "A micro framework"},
	}}
	c := New(idx, Options{Installed: installed{"flask": true}})

	res, err := c.Search(context.Background(), SearchOptions{Query: "flask"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Strategy != "direct" || len(res.Results) != 1 {
		t.Fatalf("strategy=%s results=%+v", res.Strategy, res.Results)
	}
	got := res.Results[0]
	if got.Name != "Flask" || got.Relevance != 100 || !got.Installed || got.DownloadCount != 0 {
		t.Errorf("unexpected record: %+v", got)
	}
	if got.URL != "https://pypi.org/project/Flask/" {
		t.Errorf("url = %q", got.URL)
	}
	if strings.Join(idx.calls, ",") != "direct" {
		t.Errorf("calls = %v", idx.calls)
	}
}

func TestSearchFallsThroughStrategies(t *testing.T) {
	idx := &fakeIndex{
		indexErr: errors.New("index unavailable"),
		hits: []pypi.SearchHit{
			{Name: "web-scraper", Version: "1.0", Description: "scrapes"},
			{Name: "scrapy", Version: "2.11", Description: "framework"},
		},
	}
	c := New(idx, Options{})

	res, err := c.Search(context.Background(), SearchOptions{Query: "web scraping"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Strategy != "scrape" {
		t.Errorf("strategy = %s, want scrape", res.Strategy)
	}
	if strings.Join(idx.calls, ",") != "index,scrape" {
		t.Errorf("multi-word query should skip direct lookup, calls = %v", idx.calls)
	}
	if len(res.Results) != 2 || res.Results[0].Summary != "scrapes" {
		t.Errorf("unexpected results: %+v", res.Results)
	}
}

func TestSearchIndexScan(t *testing.T) {
	idx := &fakeIndex{projects: []string{"aiohttp", "httpx", "requests", "urllib3", "pyhttp"}}
	c := New(idx, Options{})

	res, err := c.Search(context.Background(), SearchOptions{Query: "http"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Strategy != "index" {
		t.Fatalf("strategy = %s", res.Strategy)
	}
	var names []string
	for _, r := range res.Results {
		names = append(names, r.Name)
	}
	// httpx 90, pyhttp 88, aiohttp 87; stable for equal scores.
	if got := strings.Join(names, ","); got != "httpx,pyhttp,aiohttp" {
		t.Errorf("order = %s", got)
	}
}

func TestSearchPlaceholder(t *testing.T) {
	idx := &fakeIndex{indexErr: errors.New("down"), scrapeErr: errors.New("down")}
	c := New(idx, Options{})

	res, err := c.Search(context.Background(), SearchOptions{Query: "zzz"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Strategy != "none" || len(res.Results) != 1 {
		t.Fatalf("strategy=%s results=%+v", res.Strategy, res.Results)
	}
	if !strings.HasPrefix(res.Results[0].Summary, "Search failed") {
		t.Errorf("summary = %q", res.Results[0].Summary)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	c := New(&fakeIndex{}, Options{})
	_, err := c.Search(context.Background(), SearchOptions{Query: "  "})
	if !apperr.Is(err, apperr.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want invalid input", err)
	}
}

func TestSearchSortPaginateExact(t *testing.T) {
	idx := &fakeIndex{projects: []string{"Zlib-ng", "alib", "lib", "libx", "mylib"}}
	c := New(idx, Options{})
	ctx := context.Background()

	res, err := c.Search(ctx, SearchOptions{Query: "lib", SortBy: SortName, Page: 2, PerPage: 2})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Total != 5 || res.TotalPages != 3 {
		t.Errorf("total=%d pages=%d", res.Total, res.TotalPages)
	}
	if len(res.Results) != 2 || res.Results[0].Name != "libx" || res.Results[1].Name != "mylib" {
		t.Errorf("page 2 = %+v", res.Results)
	}

	res, err = c.Search(ctx, SearchOptions{Query: "LIB", ExactMatch: true})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Results) != 1 || res.Results[0].Name != "lib" {
		t.Errorf("exact = %+v", res.Results)
	}

	res, err = c.Search(ctx, SearchOptions{Query: "lib", Page: 9})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Results) != 0 || res.Total != 5 {
		t.Errorf("out of range page: %+v", res)
	}
}

func TestNormalize(t *testing.T) {
	o := SearchOptions{Query: " q ", Page: -1, PerPage: 500, SortBy: "popularity"}.Normalize()
	if o.Query != "q" || o.Page != 1 || o.PerPage != MaxPerPage || o.SortBy != SortRelevance {
		t.Errorf("Normalize = %+v", o)
	}
	o = SearchOptions{PerPage: 0}.Normalize()
	if o.PerPage != DefaultPerPage {
		t.Errorf("PerPage = %d", o.PerPage)
	}
}

func TestPackage(t *testing.T) {
	var releases []pypi.Release
	for _, v := range []string{"1.0", "2.0", "0.9", "1.1", "0.1", "0.2", "0.3", "0.4", "0.5", "0.6", "0.7", "0.8"} {
		releases = append(releases, pypi.Release{Version: v})
	}
	idx := &fakeIndex{packages: map[string]*pypi.PackageInfo{
		"requests": {Name: "requests", Version: "2.0", Summary: "HTTP", Releases: releases},
	}}
	c := New(idx, Options{Installed: installed{"requests": true}})

	d, err := c.Package(context.Background(), "requests")
	if err != nil {
		t.Fatalf("Package: %v", err)
	}
	if !d.Installed || d.URL != "https://pypi.org/project/requests/" {
		t.Errorf("unexpected detail: %+v", d)
	}
	if len(d.Releases) != MaxReleases {
		t.Fatalf("got %d releases", len(d.Releases))
	}
	if d.Releases[0].Version != "2.0" || d.Releases[1].Version != "1.1" || d.Releases[9].Version != "0.3" {
		t.Errorf("release order = %+v", d.Releases)
	}
	if d.ProjectURLs == nil || d.Dependencies == nil {
		t.Error("maps and slices should be non-nil")
	}
}

func TestPackageNotFound(t *testing.T) {
	c := New(&fakeIndex{}, Options{})
	_, err := c.Package(context.Background(), "missing-pkg")
	if !apperr.IsNotFound(err) {
		t.Errorf("err = %v, want not found", err)
	}
}
