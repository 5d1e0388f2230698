package subreddit

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jamesprial/go-subreddit/internal"
	"github.com/jamesprial/go-subreddit/pkg/types"
)

const (
	// DefaultBaseURL is the platform root the client talks to.
	DefaultBaseURL = "https://www.reddit.com"
	// DefaultUserAgent is sent when no valid user agent is configured.
	DefaultUserAgent = "go-subreddit/0.1"
	// DefaultTimeout is the timeout of the HTTP client created by New.
	DefaultTimeout = 30 * time.Second
)

// Operation names reported in ClientError.Operation.
const (
	OpModerators      = "moderators"
	OpHot             = "hot"
	OpRising          = "rising"
	OpTop             = "top"
	OpLatest          = "latest"
	OpLatestComments  = "latest_comments"
	OpArticleComments = "article_comments"
)

// Subreddit is a read-only client bound to one subreddit.
//
// A Subreddit holds no mutable state: every method issues exactly one GET
// request and returns the decoded response. It is safe for concurrent use,
// and several Subreddit values may share one *http.Client.
//
// Example usage:
//
//	sub := subreddit.New("golang")
//	posts, err := sub.Hot(ctx, 25, nil)
//	if err != nil {
//		return err
//	}
//	next, err := sub.Hot(ctx, 25, &subreddit.FeedOption{After: posts.Data.After})
type Subreddit struct {
	// Name is the subreddit name as given to the constructor, without "r/".
	Name string

	baseURL string
	client  *internal.Client
	parser  *internal.Parser
	logger  *slog.Logger
}

// New creates a client for the subreddit name with its own HTTP client.
// The HTTP client times out after DefaultTimeout and records an
// OpenTelemetry span for every request.
//
// The name is not validated; an unknown subreddit surfaces as an error
// from the first request.
func New(name string, opts ...Option) *Subreddit {
	return NewWithHTTPClient(name, defaultHTTPClient(), opts...)
}

// NewWithHTTPClient creates a client for the subreddit name that sends its
// requests through httpClient. The client is used by reference and is not
// closed or modified. A nil httpClient behaves like New.
func NewWithHTTPClient(name string, httpClient *http.Client, opts ...Option) *Subreddit {
	if httpClient == nil {
		httpClient = defaultHTTPClient()
	}

	o := options{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	userAgent := o.userAgent
	if err := internal.ValidateUserAgent(userAgent); err != nil {
		logger.Warn("invalid user agent, using default", "error", err, "default", DefaultUserAgent)
		userAgent = DefaultUserAgent
	}

	baseURL := o.baseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Subreddit{
		Name:    name,
		baseURL: internal.SubredditURL(baseURL, name),
		client:  internal.NewClient(httpClient, userAgent, logger),
		parser:  internal.NewParser(),
		logger:  logger,
	}
}

func defaultHTTPClient() *http.Client {
	return &http.Client{
		Timeout:   DefaultTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// BaseURL returns the subreddit URL every request is built from,
// e.g. https://www.reddit.com/r/golang.
func (s *Subreddit) BaseURL() string {
	return s.baseURL
}

// Moderators returns the moderator list of the subreddit.
func (s *Subreddit) Moderators(ctx context.Context) (*Moderators, error) {
	rawURL := internal.ModeratorsURL(s.baseURL)

	body, err := s.client.Get(ctx, OpModerators, rawURL)
	if err != nil {
		return nil, err
	}
	return s.parser.DecodeModerators(OpModerators, rawURL, body)
}

// Hot returns up to limit posts of the hot listing.
//
// opts may be nil. When set, After takes precedence over Before, and Count
// is sent independently. Pass the After of a previous page to continue.
func (s *Subreddit) Hot(ctx context.Context, limit int, opts *FeedOption) (*Submissions, error) {
	return s.feed(ctx, OpHot, internal.ListingHot, limit, opts)
}

// Rising returns up to limit posts of the rising listing.
func (s *Subreddit) Rising(ctx context.Context, limit int, opts *FeedOption) (*Submissions, error) {
	return s.feed(ctx, OpRising, internal.ListingRising, limit, opts)
}

// Top returns up to limit posts of the top listing over the platform's
// default time window.
func (s *Subreddit) Top(ctx context.Context, limit int, opts *FeedOption) (*Submissions, error) {
	return s.feed(ctx, OpTop, internal.ListingTop, limit, opts)
}

// Latest returns up to limit posts of the new listing, newest first.
func (s *Subreddit) Latest(ctx context.Context, limit int, opts *FeedOption) (*Submissions, error) {
	return s.feed(ctx, OpLatest, internal.ListingNew, limit, opts)
}

// LatestComments returns the most recent comments across the subreddit.
// Zero depth or limit leaves the parameter to the platform default.
func (s *Subreddit) LatestComments(ctx context.Context, depth, limit int) (*SubredditComments, error) {
	return s.comments(ctx, OpLatestComments, internal.CommentsPath, depth, limit)
}

// ArticleComments returns the comment tree of the submission articleID
// (the id without the "t3_" prefix). The submission itself is not returned.
func (s *Subreddit) ArticleComments(ctx context.Context, articleID string, depth, limit int) (*SubredditComments, error) {
	return s.comments(ctx, OpArticleComments, internal.ArticleCommentsPath(articleID), depth, limit)
}

func (s *Subreddit) feed(ctx context.Context, operation, listing string, limit int, opts *types.FeedOption) (*types.Submissions, error) {
	rawURL := internal.FeedURL(s.baseURL, listing, limit, opts)

	body, err := s.client.Get(ctx, operation, rawURL)
	if err != nil {
		return nil, err
	}
	return s.parser.DecodeSubmissions(operation, rawURL, body)
}

func (s *Subreddit) comments(ctx context.Context, operation, path string, depth, limit int) (*types.SubredditComments, error) {
	rawURL := internal.CommentsURL(s.baseURL, path, depth, limit)

	body, err := s.client.Get(ctx, operation, rawURL)
	if err != nil {
		return nil, err
	}
	return s.parser.DecodeComments(operation, rawURL, body)
}
