package subreddit

import (
	pkgerrs "github.com/jamesprial/go-subreddit/pkg/errors"
	"github.com/jamesprial/go-subreddit/pkg/types"
)

// Response and option types, re-exported so callers need a single import.
type (
	FeedOption        = types.FeedOption
	Submissions       = types.Submissions
	Submission        = types.Submission
	SubmissionData    = types.SubmissionData
	SubredditComments = types.SubredditComments
	Comment           = types.Comment
	CommentData       = types.CommentData
	Moderators        = types.Moderators
	ModeratorData     = types.ModeratorData
)

// Error types returned by every operation.
type (
	ClientError = pkgerrs.ClientError
	StatusError = pkgerrs.StatusError
)

// ErrEmptyCommentResponse is wrapped by the decode error returned when a
// submission's comment endpoint answers with an empty array.
var ErrEmptyCommentResponse = pkgerrs.ErrEmptyCommentResponse

// NewFeedOption returns an empty FeedOption for use with its With* methods.
func NewFeedOption() FeedOption {
	return types.NewFeedOption()
}

// IsTransport reports whether err failed before a usable response arrived:
// a connection error, timeout, cancellation or non-2xx status.
func IsTransport(err error) bool {
	return pkgerrs.IsTransport(err)
}

// IsDecode reports whether err is a response that did not have the expected shape.
func IsDecode(err error) bool {
	return pkgerrs.IsDecode(err)
}
