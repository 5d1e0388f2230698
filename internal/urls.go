package internal

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/jamesprial/go-subreddit/pkg/types"
)

// Listing types accepted by FeedURL.
const (
	ListingHot    = "hot"
	ListingRising = "rising"
	ListingTop    = "top"
	ListingNew    = "new"
)

const (
	// CommentsPath is the subreddit-wide comment stream.
	CommentsPath = "comments"
	// articleSegment is the path segment that precedes an article id.
	articleSegment = "comments/"
)

// SubredditURL returns the base URL of a subreddit, e.g. https://www.reddit.com/r/golang.
// The name is not validated.
func SubredditURL(platform, name string) string {
	return strings.TrimRight(platform, "/") + "/r/" + name
}

// ModeratorsURL returns the moderator list endpoint of a subreddit base URL.
func ModeratorsURL(base string) string {
	return base + "/about/moderators/.json"
}

// FeedURL builds the URL of a post listing. When opts is non-nil After wins
// over Before and Count is appended independently. Cursors are not escaped.
func FeedURL(base, listing string, limit int, opts *types.FeedOption) string {
	var b strings.Builder
	b.WriteString(base)
	b.WriteString("/")
	b.WriteString(listing)
	b.WriteString(".json?limit=")
	b.WriteString(strconv.Itoa(limit))

	if opts != nil {
		if opts.After != "" {
			b.WriteString("&after=")
			b.WriteString(opts.After)
		} else if opts.Before != "" {
			b.WriteString("&before=")
			b.WriteString(opts.Before)
		}

		if opts.Count != 0 {
			b.WriteString("&count=")
			b.WriteString(strconv.Itoa(opts.Count))
		}
	}

	return b.String()
}

// ArticleCommentsPath returns the comments path of one submission.
func ArticleCommentsPath(articleID string) string {
	return articleSegment + articleID
}

// CommentsURL builds the URL of a comment listing. path is CommentsPath or
// the result of ArticleCommentsPath. Zero depth or limit is left out.
func CommentsURL(base, path string, depth, limit int) string {
	var b strings.Builder
	b.WriteString(base)
	b.WriteString("/")
	b.WriteString(path)
	b.WriteString(".json?")

	if depth != 0 {
		b.WriteString("&depth=")
		b.WriteString(strconv.Itoa(depth))
	}
	if limit != 0 {
		b.WriteString("&limit=")
		b.WriteString(strconv.Itoa(limit))
	}

	return b.String()
}

// IsArticleScoped reports whether a comments URL targets a single submission,
// i.e. whether an article id follows the comments segment. Those responses
// are a JSON array; the subreddit-wide stream is a single listing.
//
// Only the path below /r/<name>/ is inspected so a subreddit that is itself
// called "comments" is not mistaken for an article request.
func IsArticleScoped(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return strings.Contains(rawURL, articleSegment)
	}

	rest := u.Path
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+1 < len(segments); i++ {
		if segments[i] == "r" {
			rest = strings.Join(segments[i+2:], "/")
			break
		}
	}

	return strings.Contains(rest, articleSegment)
}
