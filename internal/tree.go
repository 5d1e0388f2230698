package internal

import (
	"github.com/jamesprial/go-subreddit/pkg/types"
)

// CommentTree provides read-only traversal of a fetched comment listing.
// "more" placeholders are skipped; only t1 comments are visited.
type CommentTree struct {
	Comments []*types.Comment

	listing *types.SubredditComments
}

// NewCommentTree creates a CommentTree over the top-level comments of listing.
func NewCommentTree(listing *types.SubredditComments) *CommentTree {
	if listing == nil {
		return &CommentTree{}
	}
	return &CommentTree{Comments: commentsOf(listing.Data.Children), listing: listing}
}

// Flatten returns all comments in the tree as a flat slice, depth-first.
func (ct *CommentTree) Flatten() []*types.Comment {
	var result []*types.Comment
	ct.Walk(func(c *types.Comment) {
		result = append(result, c)
	})
	return result
}

// Filter returns comments that match the given filter function.
func (ct *CommentTree) Filter(filterFunc func(*types.Comment) bool) []*types.Comment {
	var result []*types.Comment
	ct.Walk(func(c *types.Comment) {
		if filterFunc(c) {
			result = append(result, c)
		}
	})
	return result
}

// Find returns the first comment that matches the given condition.
func (ct *CommentTree) Find(condition func(*types.Comment) bool) *types.Comment {
	return ct.findRecursive(ct.Comments, condition)
}

func (ct *CommentTree) findRecursive(comments []*types.Comment, condition func(*types.Comment) bool) *types.Comment {
	for _, comment := range comments {
		if condition(comment) {
			return comment
		}
		if found := ct.findRecursive(Replies(comment), condition); found != nil {
			return found
		}
	}
	return nil
}

// GetByID returns a comment by its ID.
func (ct *CommentTree) GetByID(id string) *types.Comment {
	return ct.Find(func(c *types.Comment) bool {
		return c.Data.ID == id
	})
}

// GetByAuthor returns all comments by a specific author.
func (ct *CommentTree) GetByAuthor(author string) []*types.Comment {
	return ct.Filter(func(c *types.Comment) bool {
		return c.Data.Author == author
	})
}

// GetTopLevel returns only the top-level comments.
func (ct *CommentTree) GetTopLevel() []*types.Comment {
	return ct.Comments
}

// GetDepth returns the maximum reply depth of the tree. A tree of top-level
// comments only has depth 0.
func (ct *CommentTree) GetDepth() int {
	return ct.getDepthRecursive(ct.Comments, 0)
}

func (ct *CommentTree) getDepthRecursive(comments []*types.Comment, currentDepth int) int {
	maxDepth := currentDepth
	for _, comment := range comments {
		replies := Replies(comment)
		if len(replies) > 0 {
			if depth := ct.getDepthRecursive(replies, currentDepth+1); depth > maxDepth {
				maxDepth = depth
			}
		}
	}
	return maxDepth
}

// Count returns the total number of comments in the tree.
func (ct *CommentTree) Count() int {
	n := 0
	ct.Walk(func(*types.Comment) { n++ })
	return n
}

// MoreIDs returns the ids collected from "more" placeholders anywhere in the tree.
func (ct *CommentTree) MoreIDs() []string {
	if ct.listing == nil {
		return nil
	}
	var ids []string
	collectMore(ct.listing.Data.Children, &ids)
	return ids
}

func collectMore(children []types.Comment, ids *[]string) {
	for i := range children {
		child := &children[i]
		if child.Kind == types.KindMore {
			*ids = append(*ids, child.Data.Children...)
			continue
		}
		collectMore(child.Data.Replies.Children(), ids)
	}
}

// Walk applies a function to each comment in the tree, depth-first.
func (ct *CommentTree) Walk(fn func(*types.Comment)) {
	ct.walkRecursive(ct.Comments, fn)
}

func (ct *CommentTree) walkRecursive(comments []*types.Comment, fn func(*types.Comment)) {
	for _, comment := range comments {
		fn(comment)
		ct.walkRecursive(Replies(comment), fn)
	}
}

// Replies returns the direct t1 replies of comment.
func Replies(comment *types.Comment) []*types.Comment {
	if comment == nil {
		return nil
	}
	return commentsOf(comment.Data.Replies.Children())
}

func commentsOf(children []types.Comment) []*types.Comment {
	var result []*types.Comment
	for i := range children {
		if children[i].Kind == types.KindComment {
			result = append(result, &children[i])
		}
	}
	return result
}
