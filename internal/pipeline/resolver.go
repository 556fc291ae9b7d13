package pipeline

import (
	"net/url"
	"strings"
)

// RepoRef addresses one GitHub repository for the lifetime of a scoring
// run. Immutable once created.
type RepoRef struct {
	Owner string
	Name  string
}

func (r RepoRef) String() string {
	return r.Owner + "/" + r.Name
}

// ParseRepoURL extracts the owner and name from a (already normalized)
// repository URL of the form https://github.com/{owner}/{name}. The
// second return value is false when the input does not match; this is a
// recoverable condition, not an error.
func ParseRepoURL(raw string) (RepoRef, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return RepoRef{}, false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return RepoRef{}, false
	}
	if strings.TrimPrefix(u.Hostname(), "www.") != "github.com" {
		return RepoRef{}, false
	}

	// First two path segments; anything after them (tree/blob/...) is ignored.
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return RepoRef{}, false
	}

	name := strings.TrimSuffix(parts[1], ".git")
	if name == "" {
		return RepoRef{}, false
	}

	return RepoRef{Owner: parts[0], Name: name}, true
}
