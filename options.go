package subreddit

import "log/slog"

type options struct {
	logger    *slog.Logger
	userAgent string
	baseURL   string
}

// Option configures a Subreddit.
type Option func(*options)

// WithLogger sets the logger used for request diagnostics. Requests are
// logged at debug level. A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithUserAgent sets the User-Agent header. Invalid values (empty, longer
// than 256 bytes or containing line breaks) are replaced by DefaultUserAgent.
func WithUserAgent(userAgent string) Option {
	return func(o *options) {
		o.userAgent = userAgent
	}
}

// WithBaseURL points the client at another platform root, such as a test
// server. The subreddit path is appended to it.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}
