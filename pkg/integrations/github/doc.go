// Package github provides an HTTP client for the GitHub code search and
// repository contents APIs.
//
// # Overview
//
// The examples aggregator searches public Python code that imports a
// library and downloads the matching files so that usage snippets can be
// cut from them.
//
// # Usage
//
//	client := github.NewClient(backend, os.Getenv("GITHUB_TOKEN"), 24*time.Hour)
//
//	hits, err := client.SearchCode(ctx, "import requests language:python", 5)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, hit := range hits {
//	    src, err := client.FetchFile(ctx, hit)
//	    ...
//	}
//
// # Authentication
//
// Code search requires a personal access token. Without one, GitHub answers
// 401/403 and callers should treat the source as empty.
//
// # Caching
//
// Search results and decoded files are cached in the backend passed to
// [NewClient] under the "github" namespace.
package github
