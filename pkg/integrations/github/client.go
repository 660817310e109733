package github

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/libscope/pkg/cache"
	"github.com/matzehuels/libscope/pkg/integrations"
)

const defaultBaseURL = "https://api.github.com"

// Client provides access to the GitHub code search and contents APIs.
// It handles HTTP requests with caching, automatic retries, and optional authentication.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a GitHub API client with optional authentication.
// Pass an empty string for token to use unauthenticated requests. Note that
// the code search endpoint rejects anonymous callers, so without a token
// [Client.SearchCode] fails with [integrations.ErrRateLimited] or similar.
func NewClient(backend cache.Cache, token string, cacheTTL time.Duration) *Client {
	return &Client{
		Client:  integrations.NewClient(backend, "github", cacheTTL, headers(token)),
		baseURL: defaultBaseURL,
	}
}

func headers(token string) map[string]string {
	h := map[string]string{"Accept": "application/vnd.github.v3+json"}
	if token != "" {
		h["Authorization"] = "Bearer " + token
	}
	return h
}

// SearchCode runs a code search and returns at most perPage hits.
func (c *Client) SearchCode(ctx context.Context, query string, perPage int) ([]CodeResult, error) {
	if perPage <= 0 {
		perPage = 5
	}
	key := fmt.Sprintf("search:%d:%s", perPage, query)

	var results []CodeResult
	err := c.Cached(ctx, key, false, &results, func() error {
		var data searchResponse
		url := fmt.Sprintf("%s/search/code?q=%s&per_page=%d", c.baseURL, integrations.URLEncode(query), perPage)
		if err := c.Get(ctx, url, &data); err != nil {
			return fmt.Errorf("github code search: %w", err)
		}
		results = make([]CodeResult, 0, len(data.Items))
		for _, item := range data.Items {
			results = append(results, CodeResult{
				Name:       item.Name,
				Path:       item.Path,
				Repository: item.Repository.FullName,
				HTMLURL:    item.HTMLURL,
				ContentURL: item.URL,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// FetchFile downloads and decodes the file behind a search hit.
func (c *Client) FetchFile(ctx context.Context, r CodeResult) (string, error) {
	url := r.ContentURL
	if url == "" {
		owner, repo, err := ParseRepoRef(r.Repository)
		if err != nil {
			return "", err
		}
		url = contentsURL(c.baseURL, owner, repo, r.Path)
	}

	var content string
	err := c.Cached(ctx, "file:"+url, false, &content, func() error {
		var data apiContentResponse
		if err := c.Get(ctx, url, &data); err != nil {
			if errors.Is(err, integrations.ErrNotFound) {
				return fmt.Errorf("%w: github file %s", err, r.Path)
			}
			return err
		}
		decoded, err := decodeContent(data)
		if err != nil {
			return err
		}
		content = decoded
		return nil
	})
	if err != nil {
		return "", err
	}
	return content, nil
}

func decodeContent(data apiContentResponse) (string, error) {
	switch data.Encoding {
	case "base64":
		// The API wraps base64 payloads at 60 columns.
		raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(data.Content, "\n", ""))
		if err != nil {
			return "", fmt.Errorf("decode %s: %w", data.Path, err)
		}
		return string(raw), nil
	case "", "utf-8":
		return data.Content, nil
	default:
		return "", fmt.Errorf("unsupported content encoding %q for %s", data.Encoding, data.Path)
	}
}
