package socialproof

import (
	"net/url"
	"strings"
)

// Verifier checks that a social proof reference is plausible. Whether the
// linked post actually contains the account id is verified off-process; the
// core only gates on syntax.
type Verifier interface {
	Validate(proofLink, accountID, handle string) bool
}

// LinkVerifier accepts absolute https links that point at an actual post,
// i.e. carry a host and a non-root path.
type LinkVerifier struct{}

func (LinkVerifier) Validate(proofLink, accountID, handle string) bool {
	if proofLink == "" || accountID == "" || handle == "" {
		return false
	}

	u, err := url.Parse(proofLink)
	if err != nil {
		return false
	}
	if u.Scheme != "https" || u.Host == "" {
		return false
	}
	if u.Path == "" || u.Path == "/" {
		return false
	}
	// A handle like "@alice" claims the path segment "alice".
	return strings.Contains(u.Path, strings.TrimPrefix(handle, "@"))
}
