package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jamesprial/go-subreddit/pkg/types"
)

const testBase = "https://www.reddit.com/r/astolfo"

func TestSubredditURL(t *testing.T) {
	assert.Equal(t, testBase, SubredditURL("https://www.reddit.com", "astolfo"))
	assert.Equal(t, testBase, SubredditURL("https://www.reddit.com/", "astolfo"))
	// names are passed through unvalidated
	assert.Equal(t, "https://www.reddit.com/r/not a name", SubredditURL("https://www.reddit.com", "not a name"))
}

func TestModeratorsURL(t *testing.T) {
	assert.Equal(t, testBase+"/about/moderators/.json", ModeratorsURL(testBase))
}

func TestFeedURL(t *testing.T) {
	tests := []struct {
		name    string
		listing string
		limit   int
		opts    *types.FeedOption
		want    string
	}{
		{
			name:    "no options",
			listing: ListingHot,
			limit:   25,
			want:    testBase + "/hot.json?limit=25",
		},
		{
			name:    "empty options",
			listing: ListingRising,
			limit:   5,
			opts:    &types.FeedOption{},
			want:    testBase + "/rising.json?limit=5",
		},
		{
			name:    "after",
			listing: ListingTop,
			limit:   10,
			opts:    &types.FeedOption{After: "t3_abc"},
			want:    testBase + "/top.json?limit=10&after=t3_abc",
		},
		{
			name:    "before with count",
			listing: ListingNew,
			limit:   7,
			opts:    &types.FeedOption{Before: "t3_xyz", Count: 5},
			want:    testBase + "/new.json?limit=7&before=t3_xyz&count=5",
		},
		{
			name:    "after wins over before",
			listing: ListingHot,
			limit:   25,
			opts:    &types.FeedOption{After: "t3_a", Before: "t3_b"},
			want:    testBase + "/hot.json?limit=25&after=t3_a",
		},
		{
			name:    "count only",
			listing: ListingHot,
			limit:   25,
			opts:    &types.FeedOption{Count: 25},
			want:    testBase + "/hot.json?limit=25&count=25",
		},
		{
			name:    "cursor passed verbatim",
			listing: ListingHot,
			limit:   1,
			opts:    &types.FeedOption{After: "t3_a&b=c"},
			want:    testBase + "/hot.json?limit=1&after=t3_a&b=c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FeedURL(testBase, tt.listing, tt.limit, tt.opts))
		})
	}
}

func TestFeedURL_Deterministic(t *testing.T) {
	opts := &types.FeedOption{After: "t3_abc", Count: 3}
	first := FeedURL(testBase, ListingHot, 25, opts)
	second := FeedURL(testBase, ListingHot, 25, opts)

	assert.Equal(t, first, second)
	assert.Equal(t, types.FeedOption{After: "t3_abc", Count: 3}, *opts)
}

func TestCommentsURL(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		depth int
		limit int
		want  string
	}{
		{name: "stream without params", path: CommentsPath, want: testBase + "/comments.json?"},
		{name: "stream with limit", path: CommentsPath, limit: 25, want: testBase + "/comments.json?&limit=25"},
		{name: "stream with depth and limit", path: CommentsPath, depth: 2, limit: 25, want: testBase + "/comments.json?&depth=2&limit=25"},
		{name: "article", path: ArticleCommentsPath("abc123"), want: testBase + "/comments/abc123.json?"},
		{name: "article with depth", path: ArticleCommentsPath("abc123"), depth: 3, want: testBase + "/comments/abc123.json?&depth=3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CommentsURL(testBase, tt.path, tt.depth, tt.limit))
		})
	}
}

func TestIsArticleScoped(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{url: "https://www.reddit.com/r/x/comments/abc123.json?", want: true},
		{url: "https://www.reddit.com/r/x/comments/abc123.json?&depth=1&limit=5", want: true},
		{url: "https://www.reddit.com/r/x/comments.json?", want: false},
		{url: "https://www.reddit.com/r/x/comments.json?&limit=25", want: false},
		{url: "https://www.reddit.com/r/comments/comments.json?", want: false},
		{url: "https://www.reddit.com/r/comments/comments/abc.json?", want: true},
		{url: "http://127.0.0.1:4321/r/x/comments/abc.json?", want: true},
		{url: "://bad/comments/abc", want: true},
		{url: "://bad/comments.json", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, IsArticleScoped(tt.url))
		})
	}
}
