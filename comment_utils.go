package subreddit

import (
	"github.com/jamesprial/go-subreddit/internal"
	"github.com/jamesprial/go-subreddit/pkg/types"
)

// CommentTree provides utility methods for working with comment trees.
type CommentTree interface {
	Flatten() []*types.Comment
	Filter(func(*types.Comment) bool) []*types.Comment
	Find(func(*types.Comment) bool) *types.Comment
	GetByID(string) *types.Comment
	GetByAuthor(string) []*types.Comment
	GetTopLevel() []*types.Comment
	GetDepth() int
	Count() int
	MoreIDs() []string
	Walk(func(*types.Comment))
}

// NewCommentTree creates a CommentTree over a fetched comment listing.
// The listing is not modified.
func NewCommentTree(listing *types.SubredditComments) CommentTree {
	return internal.NewCommentTree(listing)
}
