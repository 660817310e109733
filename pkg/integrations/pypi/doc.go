// Package pypi provides an HTTP client for the Python Package Index.
//
// # Overview
//
// Three PyPI surfaces are used, each backing one registry search strategy:
//
//   - The JSON API (/pypi/{name}/json) for package details and releases
//   - The PEP 691 simple index (/simple/) for name-only substring matching
//   - The rendered search page (/search/) for free-text queries
//
// # Usage
//
//	client := pypi.NewClient(backend, 24*time.Hour)
//
//	pkg, err := client.FetchPackage(ctx, "fastapi", false)  // false = use cache
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(pkg.Name, pkg.Version, len(pkg.Releases))
//
// # Caching
//
// Responses are cached in the backend passed to [NewClient] under the
// "pypi" namespace. Pass refresh=true to [Client.FetchPackage] or
// [Client.ListProjects] to bypass the cache.
//
// # Dependency Filtering
//
// Dependencies are extracted from requires_dist, filtering out optional
// extras and dev/test markers. Package names are normalized following PEP 503.
package pypi
