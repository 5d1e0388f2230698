package internal

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/jamesprial/go-subreddit/pkg/types"
)

// fakeFeed serves total posts in pages of the requested limit and records
// the options of every call.
type fakeFeed struct {
	total int
	calls []types.FeedOption
	fail  error
}

func (f *fakeFeed) fetch(_ context.Context, limit int, opts *types.FeedOption) (*types.Submissions, error) {
	f.calls = append(f.calls, *opts)
	if f.fail != nil {
		return nil, f.fail
	}

	start := 0
	if opts.After != "" {
		_, _ = fmt.Sscanf(opts.After, "t3_%d", &start)
		start++
	}

	var page types.Submissions
	for i := start; i < start+limit && i < f.total; i++ {
		page.Data.Children = append(page.Data.Children, types.Submission{
			Kind: types.KindLink,
			Data: types.SubmissionData{ThingData: types.ThingData{ID: fmt.Sprint(i), Name: fmt.Sprintf("t3_%d", i)}},
		})
	}
	if n := len(page.Data.Children); n > 0 && start+n < f.total {
		page.Data.After = page.Data.Children[n-1].Data.Name
	}
	return &page, nil
}

func TestPageIterator_WalksAllPages(t *testing.T) {
	feed := &fakeFeed{total: 7}
	it := NewPageIterator(feed.fetch, 3, 10, types.FeedOption{}, nil)

	var sizes []int
	for it.HasNext() {
		page, err := it.Next(context.Background())
		require.NoError(t, err)
		sizes = append(sizes, len(page.Data.Children))
	}

	assert.Equal(t, []int{3, 3, 1}, sizes)
	assert.Equal(t, 3, it.Pages())
	require.Len(t, feed.calls, 3)
	assert.Equal(t, types.FeedOption{}, feed.calls[0])
	assert.Equal(t, types.FeedOption{After: "t3_2", Count: 3}, feed.calls[1])
	assert.Equal(t, types.FeedOption{After: "t3_5", Count: 6}, feed.calls[2])

	_, err := it.Next(context.Background())
	assert.ErrorIs(t, err, ErrIteratorDone)
}

func TestPageIterator_MaxPages(t *testing.T) {
	feed := &fakeFeed{total: 100}
	it := NewPageIterator(feed.fetch, 10, 2, types.FeedOption{}, nil)

	for it.HasNext() {
		_, err := it.Next(context.Background())
		require.NoError(t, err)
	}

	assert.Equal(t, 2, it.Pages())
	assert.Equal(t, types.FeedOption{After: "t3_19", Count: 20}, it.Cursor())
}

func TestPageIterator_StartCursor(t *testing.T) {
	feed := &fakeFeed{total: 10}
	it := NewPageIterator(feed.fetch, 5, 0, types.FeedOption{Before: "t3_x", Count: 4}, nil)

	_, err := it.Next(context.Background())
	require.NoError(t, err)
	assert.False(t, it.HasNext())
	assert.Equal(t, types.FeedOption{Before: "t3_x", Count: 4}, feed.calls[0])
	assert.Equal(t, types.FeedOption{After: "t3_4", Count: 9}, it.Cursor())
}

func TestPageIterator_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	feed := &fakeFeed{total: 10, fail: boom}
	it := NewPageIterator(feed.fetch, 5, 3, types.FeedOption{}, nil)

	_, err := it.Next(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.False(t, it.HasNext())

	_, err = it.Next(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Len(t, feed.calls, 1)
}

func TestPageIterator_LimiterHonoursContext(t *testing.T) {
	feed := &fakeFeed{total: 100}
	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	it := NewPageIterator(feed.fetch, 10, 5, types.FeedOption{}, limiter)

	_, err := it.Next(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = it.Next(ctx)
	require.Error(t, err)
	assert.Len(t, feed.calls, 1)
}

func TestCommentIterator_DepthFirst(t *testing.T) {
	it := NewCommentIterator(sampleListing(), nil)

	var got []string
	var levels []int
	for it.HasNext() {
		c, level, err := it.Next()
		require.NoError(t, err)
		got = append(got, c.Data.ID)
		levels = append(levels, level)
	}

	assert.Equal(t, []string{"c1", "c2", "c3", "c4"}, got)
	assert.Equal(t, []int{0, 1, 2, 0}, levels)
}

func TestCommentIterator_BreadthFirst(t *testing.T) {
	it := NewCommentIterator(sampleListing(), &CommentIteratorOptions{})

	var got []string
	for it.HasNext() {
		c, _, err := it.Next()
		require.NoError(t, err)
		got = append(got, c.Data.ID)
	}

	assert.Equal(t, []string{"c1", "c4", "c2", "c3"}, got)
}

func TestCommentIterator_MaxDepthAndFilter(t *testing.T) {
	it := NewCommentIterator(sampleListing(), &CommentIteratorOptions{DepthFirst: true, MaxDepth: 1})

	var got []string
	for it.HasNext() {
		c, _, err := it.Next()
		require.NoError(t, err)
		got = append(got, c.Data.ID)
	}
	assert.Equal(t, []string{"c1", "c2", "c4"}, got)

	it = NewCommentIterator(sampleListing(), &CommentIteratorOptions{
		DepthFirst: true,
		FilterFunc: func(c *types.Comment) bool { return c.Data.Author != "bob" },
	})
	got = nil
	for {
		c, _, err := it.Next()
		if errors.Is(err, ErrIteratorDone) {
			break
		}
		require.NoError(t, err)
		got = append(got, c.Data.ID)
	}
	assert.Equal(t, []string{"c1", "c4"}, got)
}

func TestCommentIterator_Empty(t *testing.T) {
	it := NewCommentIterator(nil, nil)
	assert.False(t, it.HasNext())

	_, _, err := it.Next()
	assert.ErrorIs(t, err, ErrIteratorDone)
}
