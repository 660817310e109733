// Package recommend maps free-text questions onto a keyword taxonomy and
// answers with curated Python libraries, falling back to a registry search.
package recommend

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	apperr "github.com/matzehuels/libscope/pkg/errors"
	"github.com/matzehuels/libscope/pkg/registry"
)

const (
	maxCategories     = 2
	minLibraries      = 5
	maxLibraries      = 15
	maxSearchFallback = 10
	searchPageSize    = 20
)

// CategoryScore is the number of keyword phrases of a category found in a query.
type CategoryScore struct {
	Category string `json:"category"`
	Score    int    `json:"score"`
}

// Categorize scores query against every category of c. Only non-zero scores
// are returned, highest first; ties keep catalog order.
func Categorize(query string, c *Catalog) []CategoryScore {
	q := strings.ToLower(query)
	var scores []CategoryScore
	for _, cat := range c.Categories {
		n := 0
		for _, kw := range cat.Keywords {
			if strings.Contains(q, kw) {
				n++
			}
		}
		if n > 0 {
			scores = append(scores, CategoryScore{Category: cat.Name, Score: n})
		}
	}
	slices.SortStableFunc(scores, func(a, b CategoryScore) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return scores
}

// Searcher looks libraries up in a package registry.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Library, error)
}

// SearcherFunc adapts a function to [Searcher].
type SearcherFunc func(ctx context.Context, query string) ([]Library, error)

func (f SearcherFunc) Search(ctx context.Context, query string) ([]Library, error) {
	return f(ctx, query)
}

// RegistrySearcher returns a Searcher backed by a registry client. The
// placeholder record the registry produces when nothing is found is dropped.
func RegistrySearcher(c *registry.Client) Searcher {
	return SearcherFunc(func(ctx context.Context, query string) ([]Library, error) {
		res, err := c.Search(ctx, registry.SearchOptions{Query: query, PerPage: searchPageSize})
		if err != nil {
			return nil, err
		}
		if res.Strategy == "none" {
			return nil, nil
		}
		out := make([]Library, len(res.Results))
		for i, p := range res.Results {
			out[i] = Library{Name: p.Name, Version: p.Version, Summary: p.Summary}
		}
		return out, nil
	})
}

// Recommendation answers one query.
type Recommendation struct {
	Query      string          `json:"query"`
	Categories []CategoryScore `json:"categories"`
	Libraries  []Library       `json:"libraries"`
	Message    string          `json:"message"`
}

// Options configures a [Recommender].
type Options struct {
	Catalog *Catalog // nil uses DefaultCatalog
	Search  Searcher // nil disables registry fallback
	Logger  *log.Logger
}

// Recommender answers library questions.
type Recommender struct {
	catalog *Catalog
	search  Searcher
	logger  *log.Logger
}

// New creates a Recommender.
func New(opts Options) *Recommender {
	if opts.Catalog == nil {
		opts.Catalog = DefaultCatalog()
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Recommender{catalog: opts.Catalog, search: opts.Search, logger: opts.Logger}
}

// Recommend picks libraries for query. Registry failures degrade to fewer
// results; the only error is an empty query.
func (r *Recommender) Recommend(ctx context.Context, query string) (*Recommendation, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperr.New(apperr.ErrCodeInvalidInput, "Query parameter 'q' is required.")
	}

	scores := Categorize(query, r.catalog)
	rec := &Recommendation{Query: query, Categories: scores, Libraries: []Library{}}
	if rec.Categories == nil {
		rec.Categories = []CategoryScore{}
	}

	if len(scores) == 0 {
		found := r.lookup(ctx, query)
		rec.Libraries = append(rec.Libraries, found[:min(len(found), maxSearchFallback)]...)
		rec.Message = fmt.Sprintf("Here are some Python libraries related to '%s':", query)
		return rec, nil
	}

	seen := make(map[string]bool)
	add := func(libs []Library) {
		for _, l := range libs {
			if !seen[l.Name] {
				seen[l.Name] = true
				rec.Libraries = append(rec.Libraries, l)
			}
		}
	}

	var names []string
	for _, s := range scores[:min(len(scores), maxCategories)] {
		names = append(names, strings.ReplaceAll(s.Category, "_", " "))
		add(r.catalog.Libraries(s.Category))
	}
	if len(rec.Libraries) < minLibraries {
		add(r.lookup(ctx, query))
	}

	if len(rec.Libraries) > maxLibraries {
		rec.Libraries = rec.Libraries[:maxLibraries]
	}
	rec.Message = fmt.Sprintf("Here are Python libraries for %s based on your query:", strings.Join(names, " and "))
	return rec, nil
}

func (r *Recommender) lookup(ctx context.Context, query string) []Library {
	if r.search == nil {
		return nil
	}
	libs, err := r.search.Search(ctx, query)
	if err != nil {
		r.logger.Debug("registry search failed", "query", query, "error", err)
		return nil
	}
	return libs
}
