// Package validation checks user-supplied identifiers before they are put
// into a request URL. The client itself passes names and cursors through
// untouched; these helpers are for callers that want to reject obvious
// typos early.
package validation

import (
	"fmt"
	"regexp"

	"github.com/jamesprial/go-subreddit/pkg/types"
)

var (
	// base36Regex matches base36 encoded IDs (0-9, a-z)
	base36Regex = regexp.MustCompile(`^[0-9a-z]+$`)

	// subredditRegex matches subreddit names (2-21 chars, alphanumeric + underscore)
	subredditRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{2,21}$`)

	// Format: t[1-6]_[base36_id]
	fullnameRegex = regexp.MustCompile(`^t[1-6]_[0-9a-z]+$`)
)

// IsValidBase36 checks if a string is a valid base36 encoded ID
func IsValidBase36(s string) bool {
	return base36Regex.MatchString(s)
}

// IsValidSubreddit checks if a string is a valid subreddit name
func IsValidSubreddit(s string) bool {
	return subredditRegex.MatchString(s)
}

// IsValidFullname checks if a string is a valid fullname such as "t3_abc123".
func IsValidFullname(s string) bool {
	return fullnameRegex.MatchString(s)
}

// Subreddit returns an error when name is not a valid subreddit name.
func Subreddit(name string) error {
	if !IsValidSubreddit(name) {
		return fmt.Errorf("invalid subreddit name %q", name)
	}
	return nil
}

// ArticleID returns an error when id is not a bare base36 submission id.
func ArticleID(id string) error {
	if !IsValidBase36(id) {
		return fmt.Errorf("invalid article id %q: expected a base36 id without the t3_ prefix", id)
	}
	return nil
}

// FeedOption checks the cursors of opts. Unset cursors and counts are valid.
func FeedOption(opts types.FeedOption) error {
	if opts.After != "" && !IsValidFullname(opts.After) {
		return fmt.Errorf("invalid after cursor %q: expected a fullname like t3_abc123", opts.After)
	}
	if opts.Before != "" && !IsValidFullname(opts.Before) {
		return fmt.Errorf("invalid before cursor %q: expected a fullname like t3_abc123", opts.Before)
	}
	if opts.Count < 0 {
		return fmt.Errorf("invalid count %d: must not be negative", opts.Count)
	}
	return nil
}
