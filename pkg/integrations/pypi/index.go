package pypi

import (
	"context"
	"fmt"
	"strings"
)

const simpleIndexAccept = "application/vnd.pypi.simple.v1+json"

type simpleIndex struct {
	Projects []struct {
		Name string `json:"name"`
	} `json:"projects"`
}

// ListProjects returns every project name from the PEP 691 simple index.
// The list is large (several hundred thousand names); it is cached like any
// other response so repeated searches only download it once per TTL.
func (c *Client) ListProjects(ctx context.Context, refresh bool) ([]string, error) {
	var names []string
	err := c.Cached(ctx, "simple-index", refresh, &names, func() error {
		var idx simpleIndex
		url := c.baseURL + "/simple/"
		if err := c.GetWithHeaders(ctx, url, map[string]string{"Accept": simpleIndexAccept}, &idx); err != nil {
			return fmt.Errorf("simple index: %w", err)
		}
		names = make([]string, 0, len(idx.Projects))
		for _, p := range idx.Projects {
			names = append(names, p.Name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// MatchProjects filters names to those containing query, case-insensitively,
// preserving index order.
func MatchProjects(names []string, query string) []string {
	q := strings.ToLower(query)
	var out []string
	for _, n := range names {
		if strings.Contains(strings.ToLower(n), q) {
			out = append(out, n)
		}
	}
	return out
}
