// Package reference validates remote repository references.
//
// A reference is accepted when it parses as an http(s) URL, its host is on
// the hosting allow-list, and its path names at least an owner and a
// repository. Existence and accessibility of the repository are not checked
// here; that is the ingestion tool's concern.
package reference

import (
	"strings"

	giturls "github.com/whilp/git-urls"
)

// allowedHosts is the fixed allow-list of supported hosting domains.
// Matched case-insensitively, bare or "www."-prefixed.
var allowedHosts = map[string]bool{
	"github.com":    true,
	"gitlab.com":    true,
	"bitbucket.org": true,
	"codeberg.org":  true,
}

// IsSupported reports whether ref is a well-formed reference to a supported
// hosting provider. Pure predicate: malformed input yields false, never an
// error, and no side effects occur.
func IsSupported(ref string) bool {
	if strings.TrimSpace(ref) == "" {
		return false
	}

	u, err := giturls.Parse(ref)
	if err != nil {
		return false
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	if !allowedHosts[host] {
		return false
	}

	// The path must carry at least an owner and a repository name.
	return len(pathSegments(u.Path)) >= 2
}

// pathSegments splits a URL path into its non-empty segments.
func pathSegments(path string) []string {
	var segs []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}
