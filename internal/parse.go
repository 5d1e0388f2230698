package internal

import (
	"encoding/json"
	"fmt"

	pkgerrs "github.com/jamesprial/go-subreddit/pkg/errors"
	"github.com/jamesprial/go-subreddit/pkg/types"
)

// Parser decodes response bodies into the response types. Unknown fields are ignored.
type Parser struct{}

// NewParser creates a new parser instance
func NewParser() *Parser {
	return &Parser{}
}

// DecodeSubmissions decodes a post listing.
func (p *Parser) DecodeSubmissions(operation, rawURL string, body []byte) (*types.Submissions, error) {
	var submissions types.Submissions
	if err := json.Unmarshal(body, &submissions); err != nil {
		return nil, pkgerrs.NewDecodeError(operation, rawURL, fmt.Errorf("failed to parse submissions: %w", err))
	}
	return &submissions, nil
}

// DecodeModerators decodes a moderator list.
func (p *Parser) DecodeModerators(operation, rawURL string, body []byte) (*types.Moderators, error) {
	var moderators types.Moderators
	if err := json.Unmarshal(body, &moderators); err != nil {
		return nil, pkgerrs.NewDecodeError(operation, rawURL, fmt.Errorf("failed to parse moderators: %w", err))
	}
	return &moderators, nil
}

// DecodeComments decodes a comment listing in the shape implied by rawURL.
//
// Submission-scoped responses are an array whose last element is the comment
// tree; everything before it (normally the submission itself) is dropped.
// The subreddit-wide stream is a single listing.
func (p *Parser) DecodeComments(operation, rawURL string, body []byte) (*types.SubredditComments, error) {
	if !IsArticleScoped(rawURL) {
		var comments types.SubredditComments
		if err := json.Unmarshal(body, &comments); err != nil {
			return nil, pkgerrs.NewDecodeError(operation, rawURL, fmt.Errorf("failed to parse comments: %w", err))
		}
		return &comments, nil
	}

	var listings []types.SubredditComments
	if err := json.Unmarshal(body, &listings); err != nil {
		return nil, pkgerrs.NewDecodeError(operation, rawURL, fmt.Errorf("failed to parse comments array: %w", err))
	}
	if len(listings) == 0 {
		return nil, pkgerrs.NewDecodeError(operation, rawURL, pkgerrs.ErrEmptyCommentResponse)
	}

	last := listings[len(listings)-1]
	return &last, nil
}
