// Package examples gathers usage examples for a Python library from its own
// docstrings, from public code on GitHub and from Stack Overflow answers.
//
// Results are cached per library as a whole entry with a timestamp. An
// entry younger than StaleAfter is served as is; older or unreadable
// entries are rebuilt from scratch and overwrite the cache.
package examples

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/libscope/pkg/cache"
	"github.com/matzehuels/libscope/pkg/docstring"
	apperr "github.com/matzehuels/libscope/pkg/errors"
	"github.com/matzehuels/libscope/pkg/integrations/github"
	"github.com/matzehuels/libscope/pkg/integrations/stackoverflow"
	"github.com/matzehuels/libscope/pkg/introspect"
	"github.com/matzehuels/libscope/pkg/observability"
)

// Defaults for [Options].
const (
	DefaultStaleAfter       = 7 * 24 * time.Hour
	DefaultFetchLimit       = 5
	DefaultWorkers          = 5
	DefaultMinSnippetLength = 20
)

// Example sources.
const (
	SourceLibraryDocs   = "Library Documentation"
	SourceGitHub        = "GitHub"
	SourceStackOverflow = "Stack Overflow"
	SourceGenerated     = "Generated"
)

// Example is one code sample.
type Example struct {
	Title    string `json:"title"`
	Code     string `json:"code"`
	Language string `json:"language"`
	Source   string `json:"source"`
	URL      string `json:"url"`
}

// Entry is the cached record for one library.
type Entry struct {
	Library   string    `json:"library"`
	Examples  []Example `json:"examples"`
	Timestamp int64     `json:"timestamp"` // Unix seconds
}

// DocSource supplies raw docstrings. [introspect.Inspector] implements it.
type DocSource interface {
	Docstrings(ctx context.Context, library string) (string, []introspect.Member, error)
}

// CodeSearcher finds and downloads public code. [github.Client] implements it.
type CodeSearcher interface {
	SearchCode(ctx context.Context, query string, perPage int) ([]github.CodeResult, error)
	FetchFile(ctx context.Context, r github.CodeResult) (string, error)
}

// QASource finds answered questions. [stackoverflow.Client] implements it.
type QASource interface {
	SearchQuestions(ctx context.Context, query string, pageSize int) ([]stackoverflow.Question, error)
	TopAnswers(ctx context.Context, questionIDs []int) ([]stackoverflow.Answer, error)
}

// Options configures an [Aggregator]. Nil sources are skipped.
type Options struct {
	Cache cache.Cache
	Keyer cache.Keyer

	Docs DocSource
	Code CodeSearcher
	QA   QASource

	StaleAfter       time.Duration
	FetchLimit       int
	Workers          int
	MinSnippetLength int

	Logger *log.Logger
	Now    func() time.Time
}

// Aggregator builds and caches example entries.
type Aggregator struct {
	opts Options
}

// New creates an Aggregator, filling unset options with defaults.
func New(opts Options) *Aggregator {
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.StaleAfter <= 0 {
		opts.StaleAfter = DefaultStaleAfter
	}
	if opts.FetchLimit <= 0 {
		opts.FetchLimit = DefaultFetchLimit
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.MinSnippetLength <= 0 {
		opts.MinSnippetLength = DefaultMinSnippetLength
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Aggregator{opts: opts}
}

// Examples returns the examples for library, from cache when a fresh entry
// exists. With refresh set the cache is not consulted. Source failures are
// logged and skipped, so the returned entry is never empty.
func (a *Aggregator) Examples(ctx context.Context, library string, refresh bool) (*Entry, error) {
	library = strings.TrimSpace(library)
	if err := apperr.ValidatePackageName(library); err != nil {
		return nil, err
	}

	hooks := observability.Examples()
	start := time.Now()
	hooks.OnAggregateStart(ctx, library)

	key := a.opts.Keyer.ExamplesKey(library)
	if !refresh {
		if entry, ok := a.cached(ctx, key); ok {
			hooks.OnAggregateComplete(ctx, library, len(entry.Examples), true, time.Since(start))
			return entry, nil
		}
	}

	var all []Example
	all = append(all, a.collect(ctx, library, "docstrings", a.fromDocstrings)...)
	all = append(all, a.collect(ctx, library, "github", a.fromGitHub)...)
	all = append(all, a.collect(ctx, library, "stackoverflow", a.fromStackOverflow)...)
	if len(all) == 0 {
		all = []Example{{
			Title:    fmt.Sprintf("Basic %s import", library),
			Code:     "import " + library,
			Language: "python",
			Source:   SourceGenerated,
		}}
	}

	entry := &Entry{Library: library, Examples: all, Timestamp: a.opts.Now().Unix()}
	a.store(ctx, key, entry)
	hooks.OnAggregateComplete(ctx, library, len(all), false, time.Since(start))
	return entry, nil
}

// IsFresh reports whether an entry written at ts is still usable at now.
func IsFresh(ts int64, now time.Time, staleAfter time.Duration) bool {
	return now.Unix()-ts < int64(staleAfter/time.Second)
}

func (a *Aggregator) cached(ctx context.Context, key string) (*Entry, bool) {
	data, ok, err := a.opts.Cache.Get(ctx, key)
	if err != nil {
		a.opts.Logger.Debug("examples cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !ok {
		observability.Cache().OnCacheMiss(ctx, "examples")
		return nil, false
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		a.opts.Logger.Debug("examples cache entry unreadable", "key", key, "error", err)
		return nil, false
	}
	if !IsFresh(entry.Timestamp, a.opts.Now(), a.opts.StaleAfter) {
		observability.Cache().OnCacheMiss(ctx, "examples")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "examples")
	return &entry, true
}

func (a *Aggregator) store(ctx context.Context, key string, entry *Entry) {
	data, err := json.Marshal(entry)
	if err != nil {
		a.opts.Logger.Warn("examples encode failed", "library", entry.Library, "error", err)
		return
	}
	if err := a.opts.Cache.Set(ctx, key, data, 0); err != nil {
		a.opts.Logger.Warn("examples cache write failed", "library", entry.Library, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "examples", len(data))
}

func (a *Aggregator) collect(ctx context.Context, library, source string, fn func(context.Context, string) ([]Example, error)) []Example {
	start := time.Now()
	out, err := fn(ctx, library)
	observability.Examples().OnSourceComplete(ctx, library, source, len(out), time.Since(start), err)
	if err != nil {
		a.opts.Logger.Debug("example source failed", "library", library, "source", source, "error", err)
		return nil
	}
	return out
}

func (a *Aggregator) fromDocstrings(ctx context.Context, library string) ([]Example, error) {
	if a.opts.Docs == nil {
		return nil, nil
	}
	moduleDoc, members, err := a.opts.Docs.Docstrings(ctx, library)
	if err != nil {
		return nil, err
	}

	var out []Example
	for _, code := range docstring.ExtractCodeBlocks(moduleDoc) {
		out = append(out, Example{
			Title:    fmt.Sprintf("Example from %s documentation", library),
			Code:     code,
			Language: "python",
			Source:   SourceLibraryDocs,
		})
	}
	for _, m := range members {
		for _, code := range docstring.ExtractCodeBlocks(m.Doc) {
			out = append(out, Example{
				Title:    fmt.Sprintf("%s example", m.Name),
				Code:     code,
				Language: "python",
				Source:   fmt.Sprintf("%s.%s Documentation", library, m.Name),
			})
		}
	}
	return out, nil
}

func (a *Aggregator) fromGitHub(ctx context.Context, library string) ([]Example, error) {
	if a.opts.Code == nil {
		return nil, nil
	}
	hits, err := a.opts.Code.SearchCode(ctx, fmt.Sprintf("import %s language:python", library), a.opts.FetchLimit)
	if err != nil {
		return nil, err
	}
	if len(hits) > a.opts.FetchLimit {
		hits = hits[:a.opts.FetchLimit]
	}

	results := make([]*Example, len(hits))
	var wg sync.WaitGroup
	sem := make(chan struct{}, a.opts.Workers)

	for i, hit := range hits {
		wg.Add(1)
		go func(idx int, hit github.CodeResult) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			content, err := a.opts.Code.FetchFile(ctx, hit)
			if err != nil {
				a.opts.Logger.Debug("github file skipped", "repo", hit.Repository, "path", hit.Path, "error", err)
				return
			}
			snippet, ok := docstring.ExtractSnippet(content, library)
			if !ok {
				return
			}
			results[idx] = &Example{
				Title:    fmt.Sprintf("Example from %s", hit.Repository),
				Code:     snippet,
				Language: "python",
				Source:   SourceGitHub,
				URL:      hit.HTMLURL,
			}
		}(i, hit)
	}
	wg.Wait()

	var out []Example
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (a *Aggregator) fromStackOverflow(ctx context.Context, library string) ([]Example, error) {
	if a.opts.QA == nil {
		return nil, nil
	}
	questions, err := a.opts.QA.SearchQuestions(ctx, library, a.opts.FetchLimit)
	if err != nil {
		return nil, err
	}
	if len(questions) > a.opts.FetchLimit {
		questions = questions[:a.opts.FetchLimit]
	}
	if len(questions) == 0 {
		return nil, nil
	}

	ids := make([]int, len(questions))
	byID := make(map[int]stackoverflow.Question, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
		byID[q.ID] = q
	}
	answers, err := a.opts.QA.TopAnswers(ctx, ids)
	if err != nil {
		return nil, err
	}

	var out []Example
	for _, ans := range answers {
		q := byID[ans.QuestionID]
		url := q.Link
		if url == "" {
			url = stackoverflow.QuestionURL(ans.QuestionID)
		}
		for _, code := range stackoverflow.CodeFragments(ans.Body, a.opts.MinSnippetLength) {
			out = append(out, Example{
				Title:    q.Title,
				Code:     code,
				Language: "python",
				Source:   SourceStackOverflow,
				URL:      url,
			})
		}
	}
	return out, nil
}
