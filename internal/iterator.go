package internal

import (
	"context"
	"errors"

	"golang.org/x/time/rate"

	"github.com/jamesprial/go-subreddit/pkg/types"
)

// ErrIteratorDone is returned by Next once an iterator is exhausted.
var ErrIteratorDone = errors.New("no more items available")

// FeedFunc fetches one page of a post listing, e.g. (*subreddit.Subreddit).Hot.
type FeedFunc func(ctx context.Context, limit int, opts *types.FeedOption) (*types.Submissions, error)

// PageIterator walks a post listing page by page by following the After
// cursor. Requests are paced by a rate limiter.
type PageIterator struct {
	fetch    FeedFunc
	limiter  *rate.Limiter
	limit    int
	maxPages int

	opts    types.FeedOption
	pages   int
	hasMore bool
	err     error
}

// NewPageIterator creates an iterator that fetches at most maxPages pages of
// limit posts, starting from start. A nil limiter does not pace requests;
// maxPages below 1 means one page.
func NewPageIterator(fetch FeedFunc, limit, maxPages int, start types.FeedOption, limiter *rate.Limiter) *PageIterator {
	if maxPages < 1 {
		maxPages = 1
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return &PageIterator{
		fetch:    fetch,
		limiter:  limiter,
		limit:    limit,
		maxPages: maxPages,
		opts:     start,
		hasMore:  true,
	}
}

// HasNext returns true if another page may be fetched.
func (it *PageIterator) HasNext() bool {
	return it.err == nil && it.hasMore && it.pages < it.maxPages
}

// Next waits for the limiter and fetches the next page.
func (it *PageIterator) Next(ctx context.Context) (*types.Submissions, error) {
	if it.err != nil {
		return nil, it.err
	}
	if !it.HasNext() {
		return nil, ErrIteratorDone
	}

	if err := it.limiter.Wait(ctx); err != nil {
		it.err = err
		return nil, err
	}

	opts := it.opts
	page, err := it.fetch(ctx, it.limit, &opts)
	if err != nil {
		it.err = err
		return nil, err
	}
	it.pages++

	after := page.Data.After
	if after == "" || len(page.Data.Children) == 0 {
		it.hasMore = false
	}
	// paging forward: Before no longer applies
	it.opts = it.opts.WithAfter(after).WithBefore("").WithCount(it.opts.Count + len(page.Data.Children))

	return page, nil
}

// Pages returns the number of pages fetched so far.
func (it *PageIterator) Pages() int {
	return it.pages
}

// Cursor returns the option that would fetch the next page.
func (it *PageIterator) Cursor() types.FeedOption {
	return it.opts
}

// CommentIterator provides an iterator for traversing comment trees.
type CommentIterator struct {
	stack      []levelled
	depthFirst bool
	filterFunc func(*types.Comment) bool
	maxDepth   int
}

type levelled struct {
	comment *types.Comment
	level   int
}

// CommentIteratorOptions provides options for comment iteration.
type CommentIteratorOptions struct {
	DepthFirst bool
	FilterFunc func(*types.Comment) bool
	// MaxDepth stops descending below this level; 0 means unlimited.
	MaxDepth int
}

// NewCommentIterator creates a new iterator over the t1 comments of listing.
func NewCommentIterator(listing *types.SubredditComments, opts *CommentIteratorOptions) *CommentIterator {
	if opts == nil {
		opts = &CommentIteratorOptions{
			DepthFirst: true,
		}
	}

	var roots []*types.Comment
	if listing != nil {
		roots = commentsOf(listing.Data.Children)
	}

	it := &CommentIterator{
		stack:      make([]levelled, 0, len(roots)),
		depthFirst: opts.DepthFirst,
		filterFunc: opts.FilterFunc,
		maxDepth:   opts.MaxDepth,
	}
	for _, c := range roots {
		it.stack = append(it.stack, levelled{comment: c})
	}

	if opts.DepthFirst {
		for i, j := 0, len(it.stack)-1; i < j; i, j = i+1, j-1 {
			it.stack[i], it.stack[j] = it.stack[j], it.stack[i]
		}
	}

	return it
}

// HasNext returns true if there are more comments to iterate through. A
// filter may still skip all of them, in which case Next returns ErrIteratorDone.
func (it *CommentIterator) HasNext() bool {
	return len(it.stack) > 0
}

// Next returns the next comment and its nesting level, 0 for top-level comments.
func (it *CommentIterator) Next() (*types.Comment, int, error) {
	for len(it.stack) > 0 {
		var item levelled
		if it.depthFirst {
			item = it.stack[len(it.stack)-1]
			it.stack = it.stack[:len(it.stack)-1]
		} else {
			item = it.stack[0]
			it.stack = it.stack[1:]
		}

		// a filtered comment hides its replies as well
		if it.filterFunc != nil && !it.filterFunc(item.comment) {
			continue
		}

		if it.maxDepth == 0 || item.level < it.maxDepth {
			replies := Replies(item.comment)
			if it.depthFirst {
				for i := len(replies) - 1; i >= 0; i-- {
					it.stack = append(it.stack, levelled{comment: replies[i], level: item.level + 1})
				}
			} else {
				for _, r := range replies {
					it.stack = append(it.stack, levelled{comment: r, level: item.level + 1})
				}
			}
		}

		return item.comment, item.level, nil
	}

	return nil, 0, ErrIteratorDone
}
