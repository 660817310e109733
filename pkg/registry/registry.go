package registry

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	apperr "github.com/matzehuels/libscope/pkg/errors"
	"github.com/matzehuels/libscope/pkg/integrations/pypi"
)

// SortKey selects the ordering of search results.
type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortDownloads SortKey = "downloads"
	SortName      SortKey = "name"
)

// Pagination and scan bounds.
const (
	DefaultPerPage    = 20
	MaxPerPage        = 100
	DefaultIndexLimit = 200
)

// Index is the subset of the PyPI client used here. [pypi.Client] implements it.
type Index interface {
	FetchPackage(ctx context.Context, name string, refresh bool) (*pypi.PackageInfo, error)
	ListProjects(ctx context.Context, refresh bool) ([]string, error)
	SearchPage(ctx context.Context, query string, page int) ([]pypi.SearchHit, error)
}

// InstalledSet reports installed distributions, keyed by lowercased name.
// [introspect.Inspector] implements it.
type InstalledSet interface {
	InstalledNames(ctx context.Context) (map[string]bool, error)
}

// PackageInfo is one search result.
type PackageInfo struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	Summary       string `json:"summary"`
	Installed     bool   `json:"installed"`
	URL           string `json:"url"`
	Relevance     int    `json:"relevance"`
	DownloadCount int    `json:"download_count"`
}

// SearchOptions controls [Client.Search].
type SearchOptions struct {
	Query      string
	Page       int
	PerPage    int
	SortBy     SortKey
	ExactMatch bool
}

// Normalize trims the query and clamps paging and sorting to valid values.
func (o SearchOptions) Normalize() SearchOptions {
	o.Query = strings.TrimSpace(o.Query)
	if o.Page < 1 {
		o.Page = 1
	}
	switch {
	case o.PerPage < 1:
		o.PerPage = DefaultPerPage
	case o.PerPage > MaxPerPage:
		o.PerPage = MaxPerPage
	}
	switch o.SortBy {
	case SortRelevance, SortDownloads, SortName:
	default:
		o.SortBy = SortRelevance
	}
	return o
}

// SearchResult is one page of results plus the totals needed to page further.
type SearchResult struct {
	Results    []PackageInfo
	Total      int
	TotalPages int
	Strategy   string // which strategy produced the results, "none" for the placeholder
	Options    SearchOptions
}

// Options configures a [Client].
type Options struct {
	// Installed marks results that are installed locally. Nil marks none.
	Installed InstalledSet

	// IndexLimit caps the number of names kept from a simple-index scan.
	IndexLimit int

	Logger *log.Logger
}

// Client searches PyPI and fetches package details.
type Client struct {
	index     Index
	installed InstalledSet
	limit     int
	logger    *log.Logger
}

// New creates a Client over index.
func New(index Index, opts Options) *Client {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.IndexLimit <= 0 {
		opts.IndexLimit = DefaultIndexLimit
	}
	return &Client{index: index, installed: opts.Installed, limit: opts.IndexLimit, logger: opts.Logger}
}

// Relevance scores name against query.
func Relevance(query, name string) int {
	q, n := strings.ToLower(query), strings.ToLower(name)
	if q == n {
		return 100
	}
	if i := strings.Index(n, q); i >= 0 {
		return 90 - min(i, 80)
	}
	return 50
}

// Search runs the retrieval strategies for opts.Query and returns the
// requested page. The only error is an empty query.
func (c *Client) Search(ctx context.Context, opts SearchOptions) (*SearchResult, error) {
	opts = opts.Normalize()
	if opts.Query == "" {
		return nil, apperr.New(apperr.ErrCodeInvalidInput, "Query parameter 'q' is required.")
	}

	records, strategy := c.retrieve(ctx, opts.Query)
	if len(records) == 0 {
		records = []PackageInfo{{
			Name:    opts.Query,
			Summary: fmt.Sprintf("Search failed or returned no results for '%s'.", opts.Query),
			URL:     pypi.ProjectURL(opts.Query),
		}}
		strategy = "none"
	}

	installed := c.installedNames(ctx)
	for i := range records {
		records[i].Relevance = Relevance(opts.Query, records[i].Name)
		records[i].Installed = installed[strings.ToLower(records[i].Name)]
	}

	if opts.ExactMatch {
		records = slices.DeleteFunc(records, func(p PackageInfo) bool {
			return !strings.EqualFold(p.Name, opts.Query)
		})
	}
	sortRecords(records, opts.SortBy)

	total := len(records)
	start := min((opts.Page-1)*opts.PerPage, total)
	end := min(start+opts.PerPage, total)

	return &SearchResult{
		Results:    records[start:end],
		Total:      total,
		TotalPages: (total + opts.PerPage - 1) / opts.PerPage,
		Strategy:   strategy,
		Options:    opts,
	}, nil
}

func (c *Client) retrieve(ctx context.Context, query string) ([]PackageInfo, string) {
	strategies := []struct {
		name string
		run  func(context.Context, string) ([]PackageInfo, error)
	}{
		{"direct", c.direct},
		{"index", c.scanIndex},
		{"scrape", c.scrape},
	}
	for _, s := range strategies {
		records, err := s.run(ctx, query)
		if err != nil {
			c.logger.Debug("pypi search strategy failed", "strategy", s.name, "query", query, "error", err)
			continue
		}
		if len(records) > 0 {
			return records, s.name
		}
	}
	return nil, ""
}

func (c *Client) direct(ctx context.Context, query string) ([]PackageInfo, error) {
	if strings.ContainsAny(query, " \t") {
		return nil, nil
	}
	info, err := c.index.FetchPackage(ctx, query, false)
	if err != nil {
		return nil, err
	}
	return []PackageInfo{{
		Name:    info.Name,
		Version: info.Version,
		Summary: info.Summary,
		URL:     pypi.ProjectURL(info.Name),
	}}, nil
}

func (c *Client) scanIndex(ctx context.Context, query string) ([]PackageInfo, error) {
	names, err := c.index.ListProjects(ctx, false)
	if err != nil {
		return nil, err
	}
	matches := pypi.MatchProjects(names, query)
	if len(matches) > c.limit {
		// Keep the best-ranked names.
		slices.SortStableFunc(matches, func(a, b string) int {
			return cmp.Compare(Relevance(query, b), Relevance(query, a))
		})
		matches = matches[:c.limit]
	}
	out := make([]PackageInfo, len(matches))
	for i, name := range matches {
		out[i] = PackageInfo{Name: name, URL: pypi.ProjectURL(name)}
	}
	return out, nil
}

func (c *Client) scrape(ctx context.Context, query string) ([]PackageInfo, error) {
	hits, err := c.index.SearchPage(ctx, query, 1)
	if err != nil {
		return nil, err
	}
	out := make([]PackageInfo, len(hits))
	for i, h := range hits {
		out[i] = PackageInfo{Name: h.Name, Version: h.Version, Summary: h.Description, URL: pypi.ProjectURL(h.Name)}
	}
	return out, nil
}

func (c *Client) installedNames(ctx context.Context) map[string]bool {
	if c.installed == nil {
		return nil
	}
	names, err := c.installed.InstalledNames(ctx)
	if err != nil {
		c.logger.Debug("installed package listing failed", "error", err)
		return nil
	}
	return names
}

func sortRecords(records []PackageInfo, key SortKey) {
	switch key {
	case SortName:
		slices.SortStableFunc(records, func(a, b PackageInfo) int {
			return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		})
	case SortDownloads:
		slices.SortStableFunc(records, func(a, b PackageInfo) int {
			return cmp.Compare(b.DownloadCount, a.DownloadCount)
		})
	default:
		slices.SortStableFunc(records, func(a, b PackageInfo) int {
			return cmp.Compare(b.Relevance, a.Relevance)
		})
	}
}
