package github

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/matzehuels/libscope/pkg/integrations"
)

// ErrInvalidRepo is returned for repository references that GitHub would
// never produce, such as those in a malformed search hit.
var ErrInvalidRepo = errors.New("invalid repository reference")

var (
	ownerRE = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,38}$`)
	repoRE  = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,100}$`)
)

// ParseRepoRef splits "owner/repo" and checks both halves against GitHub's
// naming rules.
func ParseRepoRef(ref string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(ref, "/")
	if !ok || !ownerRE.MatchString(owner) || !repoRE.MatchString(repo) {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRepo, ref)
	}
	return owner, repo, nil
}

// contentsURL is the contents API address of path in owner/repo. Each path
// segment is escaped on its own so that slashes survive.
func contentsURL(base, owner, repo, path string) string {
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	for i, s := range segments {
		segments[i] = integrations.PathEscape(s)
	}
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", base, owner, repo, strings.Join(segments, "/"))
}
