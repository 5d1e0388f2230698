package subreddit

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesprial/go-subreddit/internal/redditmock"
)

// TestConcurrentOperations runs every operation of one client at the same time.
func TestConcurrentOperations(t *testing.T) {
	sub, server := newTestSubreddit(t, "astolfo")
	ctx := context.Background()

	calls := map[string]func() error{
		OpModerators: func() error { _, err := sub.Moderators(ctx); return err },
		OpHot:        func() error { _, err := sub.Hot(ctx, 2, nil); return err },
		OpRising:     func() error { _, err := sub.Rising(ctx, 2, nil); return err },
		OpTop:        func() error { _, err := sub.Top(ctx, 2, nil); return err },
		OpLatest:     func() error { _, err := sub.Latest(ctx, 2, nil); return err },
		OpLatestComments: func() error {
			_, err := sub.LatestComments(ctx, 0, 25)
			return err
		},
		OpArticleComments: func() error {
			_, err := sub.ArticleComments(ctx, "p1", 0, 0)
			return err
		},
	}

	const rounds = 10

	var wg sync.WaitGroup
	errs := make(chan error, rounds*len(calls))
	for i := 0; i < rounds; i++ {
		for op, call := range calls {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := call(); err != nil {
					errs <- fmt.Errorf("%s: %w", op, err)
				}
			}()
		}
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
	assert.Len(t, server.Requests(), rounds*len(calls))
}

// TestSharedHTTPClient checks that clients for different subreddits can
// share one *http.Client without affecting each other.
func TestSharedHTTPClient(t *testing.T) {
	server := redditmock.NewServer()
	t.Cleanup(server.Close)
	server.SetupSubreddit("one", []redditmock.Post{{ID: "a1"}}, nil, 25)
	server.SetupSubreddit("two", []redditmock.Post{{ID: "b1"}, {ID: "b2"}}, nil, 25)

	shared := server.Client()
	one := NewWithHTTPClient("one", shared, WithBaseURL(server.URL()))
	two := NewWithHTTPClient("two", shared, WithBaseURL(server.URL()), WithUserAgent("second/1.0"))

	var wg sync.WaitGroup
	results := make([]int, 2)
	failures := make([]error, 2)
	for i, sub := range []*Subreddit{one, two} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			posts, err := sub.Hot(context.Background(), 25, nil)
			if err != nil {
				failures[i] = err
				return
			}
			results[i] = len(posts.Data.Children)
		}()
	}
	wg.Wait()

	require.NoError(t, failures[0])
	require.NoError(t, failures[1])
	assert.Equal(t, []int{1, 2}, results)

	req, err := server.LastRequest("/r/two/hot.json")
	require.NoError(t, err)
	assert.Equal(t, "second/1.0", req.Headers.Get("User-Agent"))

	// the shared client is still usable on its own
	resp, err := shared.Get(server.URL() + "/r/one/hot.json?limit=1")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
