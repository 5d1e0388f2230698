// Package subreddit provides a read-only Go client for the public JSON
// feeds of a single subreddit.
//
// # Overview
//
// A Subreddit is bound to one subreddit name. It builds the listing URLs,
// issues one HTTP GET per call and decodes the JSON response into typed
// values. It does not authenticate, cache, retry or paginate on its own.
//
// # Quick Start
//
//	sub := subreddit.New("golang", subreddit.WithUserAgent("myapp/1.0 by /u/me"))
//
//	posts, err := sub.Hot(ctx, 25, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, p := range posts.Data.Children {
//		fmt.Printf("%s (score: %d)\n", p.Data.Title, p.Data.Score)
//	}
//
// # Operations
//
//   - Moderators: the moderator list
//   - Hot, Rising, Top, Latest: post listings
//   - LatestComments: the newest comments across the subreddit
//   - ArticleComments: the comment tree of one submission
//
// # Pagination
//
// Listings use cursor-based pagination with fullnames such as "t3_abc123".
// The client never follows cursors itself; pass the After of one page into
// the FeedOption of the next call:
//
//	opts := subreddit.NewFeedOption()
//	for {
//		page, err := sub.Latest(ctx, 100, &opts)
//		if err != nil {
//			return err
//		}
//		handle(page)
//		if page.Data.After == "" {
//			break
//		}
//		opts = opts.WithAfter(page.Data.After).WithCount(opts.Count + len(page.Data.Children))
//	}
//
// After takes precedence over Before when both are set. Cursor values are
// sent verbatim.
//
// # Comments
//
// The comment endpoint of a submission returns a JSON array whose last
// element holds the comments; ArticleComments returns only that element.
// LatestComments returns the subreddit-wide listing as is. Use
// NewCommentTree to walk the nested replies:
//
//	listing, err := sub.ArticleComments(ctx, "abc123", 0, 0)
//	if err != nil {
//		return err
//	}
//	tree := subreddit.NewCommentTree(listing)
//	fmt.Println(tree.Count(), "comments, depth", tree.GetDepth())
//
// # Error Handling
//
// Every operation returns a *ClientError. Its Origin separates transport
// failures (network errors, timeouts, cancellation and non-2xx statuses)
// from decode failures:
//
//	_, err := sub.Hot(ctx, 25, nil)
//	var statusErr *subreddit.StatusError
//	switch {
//	case errors.As(err, &statusErr):
//		// the platform answered with statusErr.StatusCode
//	case subreddit.IsTransport(err):
//		// network failure or cancellation
//	case subreddit.IsDecode(err):
//		// unexpected response shape
//	}
//
// # Concurrency
//
// A Subreddit is safe for concurrent use. Several clients can share one
// *http.Client through NewWithHTTPClient, which leaves connection pooling
// and timeouts to that client.
//
// # Logging
//
// Pass a logger to see every request at debug level:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
//	sub := subreddit.New("golang", subreddit.WithLogger(logger))
package subreddit
