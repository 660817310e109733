package pypi

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/matzehuels/libscope/pkg/cache"
	"github.com/matzehuels/libscope/pkg/integrations"
)

const defaultBaseURL = "https://pypi.org"

// Leading project name of a PEP 508 requirement.
var requirementName = regexp.MustCompile(`^[A-Za-z0-9_.-]+`)

// PackageInfo is the JSON API record of one project, reduced to what
// libscope shows.
type PackageInfo struct {
	Name           string            `json:"name"`
	Version        string            `json:"version"`
	Summary        string            `json:"summary,omitempty"`
	License        string            `json:"license,omitempty"`
	Author         string            `json:"author,omitempty"`
	HomePage       string            `json:"home_page,omitempty"`
	RequiresPython string            `json:"requires_python,omitempty"`
	ProjectURLs    map[string]string `json:"project_urls,omitempty"`
	Dependencies   []string          `json:"dependencies,omitempty"` // runtime only, PEP 503 names
	Releases       []Release         `json:"releases,omitempty"`     // unordered
}

// Release is one published version.
type Release struct {
	Version    string `json:"version"`
	UploadTime string `json:"upload_time,omitempty"` // first file, ISO-8601
	Yanked     bool   `json:"yanked"`
}

// Client talks to the PyPI JSON API, the simple index and the search page.
// It is safe for concurrent use.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient returns a client caching responses in backend for cacheTTL.
func NewClient(backend cache.Cache, cacheTTL time.Duration) *Client {
	return &Client{
		Client:  integrations.NewClient(backend, "pypi", cacheTTL, nil),
		baseURL: defaultBaseURL,
	}
}

// ProjectURL returns the pypi.org page of name.
func ProjectURL(name string) string {
	return defaultBaseURL + "/project/" + name + "/"
}

// FetchPackage returns the JSON API record of name, which is normalized
// before lookup. Unknown projects wrap [integrations.ErrNotFound].
func (c *Client) FetchPackage(ctx context.Context, name string, refresh bool) (*PackageInfo, error) {
	pkg := integrations.NormalizePkgName(name)
	if pkg == "" {
		return nil, fmt.Errorf("%w: empty package name", integrations.ErrNotFound)
	}

	var info PackageInfo
	err := c.Cached(ctx, "package:"+pkg, refresh, &info, func() error {
		var data apiResponse
		url := fmt.Sprintf("%s/pypi/%s/json", c.baseURL, integrations.PathEscape(pkg))
		err := c.GetWithHeaders(ctx, url, map[string]string{"Accept": "application/json"}, &data)
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: pypi package %s", err, pkg)
		}
		if err != nil {
			return err
		}
		info = data.packageInfo()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

type apiResponse struct {
	Info     apiInfo              `json:"info"`
	Releases map[string][]apiFile `json:"releases"`
}

type apiInfo struct {
	Name           string         `json:"name"`
	Version        string         `json:"version"`
	Summary        string         `json:"summary"`
	License        string         `json:"license"`
	Classifiers    []string       `json:"classifiers"`
	RequiresDist   []string       `json:"requires_dist"`
	RequiresPython string         `json:"requires_python"`
	ProjectURLs    map[string]any `json:"project_urls"`
	HomePage       string         `json:"home_page"`
	Author         string         `json:"author"`
}

type apiFile struct {
	UploadTime string `json:"upload_time_iso_8601"`
	Yanked     bool   `json:"yanked"`
}

func (r apiResponse) packageInfo() PackageInfo {
	info := PackageInfo{
		Name:           r.Info.Name,
		Version:        r.Info.Version,
		Summary:        r.Info.Summary,
		License:        licenseName(r.Info.License, r.Info.Classifiers),
		Author:         r.Info.Author,
		HomePage:       r.Info.HomePage,
		RequiresPython: r.Info.RequiresPython,
		ProjectURLs:    make(map[string]string, len(r.Info.ProjectURLs)),
		Dependencies:   runtimeDeps(r.Info.RequiresDist),
		Releases:       make([]Release, 0, len(r.Releases)),
	}
	for label, v := range r.Info.ProjectURLs {
		if s, ok := v.(string); ok {
			info.ProjectURLs[label] = s
		}
	}
	for version, files := range r.Releases {
		rel := Release{Version: version}
		if len(files) > 0 {
			rel.UploadTime, rel.Yanked = files[0].UploadTime, files[0].Yanked
		}
		info.Releases = append(info.Releases, rel)
	}
	return info
}

// runtimeDeps returns the distinct normalized names of requirements whose
// environment marker does not restrict them to an extra, dev or test
// install.
func runtimeDeps(requires []string) []string {
	var deps []string
	seen := make(map[string]bool)
	for _, req := range requires {
		spec, marker, _ := strings.Cut(req, ";")
		if m := strings.ToLower(marker); strings.Contains(m, "extra") ||
			strings.Contains(m, "dev") || strings.Contains(m, "test") {
			continue
		}
		name := integrations.NormalizePkgName(requirementName.FindString(strings.TrimSpace(spec)))
		if name != "" && !seen[name] {
			seen[name] = true
			deps = append(deps, name)
		}
	}
	return deps
}

// licenseName prefers the last segment of a "License ::" trove classifier,
// then a short license field, then the first line of a long one.
func licenseName(license string, classifiers []string) string {
	for _, c := range classifiers {
		if parts := strings.Split(c, " :: "); len(parts) >= 3 && parts[0] == "License" {
			return parts[len(parts)-1]
		}
	}
	license = strings.TrimSpace(license)
	if len(license) < 100 && !strings.Contains(license, "\n") {
		return license
	}
	if first, _, _ := strings.Cut(license, "\n"); len(strings.TrimSpace(first)) < 50 {
		return strings.TrimSpace(first)
	}
	return ""
}
