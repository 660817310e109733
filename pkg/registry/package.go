package registry

import (
	"context"
	"slices"
	"strings"

	apperr "github.com/matzehuels/libscope/pkg/errors"
	"github.com/matzehuels/libscope/pkg/integrations/pypi"
)

// MaxReleases bounds the release list of a [PackageDetail].
const MaxReleases = 10

// PackageDetail is the full record for one PyPI project.
type PackageDetail struct {
	Name           string            `json:"name"`
	Version        string            `json:"version"`
	Summary        string            `json:"summary"`
	Author         string            `json:"author"`
	License        string            `json:"license"`
	HomePage       string            `json:"home_page"`
	ProjectURLs    map[string]string `json:"project_urls"`
	RequiresPython string            `json:"requires_python"`
	Dependencies   []string          `json:"dependencies"`
	Installed      bool              `json:"installed"`
	URL            string            `json:"url"`
	Releases       []pypi.Release    `json:"releases"`
}

// Package fetches the detail record for name. Any registry failure is
// reported as not found.
func (c *Client) Package(ctx context.Context, name string) (*PackageDetail, error) {
	name = strings.TrimSpace(name)
	if err := apperr.ValidateDistributionName(name); err != nil {
		return nil, err
	}
	info, err := c.index.FetchPackage(ctx, name, false)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodePackageNotFound, err, "Package '%s' not found on PyPI.", name)
	}

	urls := info.ProjectURLs
	if urls == nil {
		urls = map[string]string{}
	}
	deps := info.Dependencies
	if deps == nil {
		deps = []string{}
	}

	return &PackageDetail{
		Name:           info.Name,
		Version:        info.Version,
		Summary:        info.Summary,
		Author:         info.Author,
		License:        info.License,
		HomePage:       info.HomePage,
		ProjectURLs:    urls,
		RequiresPython: info.RequiresPython,
		Dependencies:   deps,
		Installed:      c.installedNames(ctx)[strings.ToLower(info.Name)],
		URL:            pypi.ProjectURL(info.Name),
		Releases:       LatestReleases(info.Releases, MaxReleases),
	}, nil
}

// LatestReleases sorts releases by version string, highest first, and keeps
// at most n. The comparison is lexical.
func LatestReleases(releases []pypi.Release, n int) []pypi.Release {
	out := slices.Clone(releases)
	slices.SortFunc(out, func(a, b pypi.Release) int {
		return strings.Compare(b.Version, a.Version)
	})
	if len(out) > n {
		out = out[:n]
	}
	if out == nil {
		out = []pypi.Release{}
	}
	return out
}
