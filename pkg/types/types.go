package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Kinds of things returned by the listing endpoints.
const (
	KindListing  = "Listing"
	KindComment  = "t1"
	KindAccount  = "t2"
	KindLink     = "t3"
	KindMore     = "more"
	KindUserList = "UserList"
)

// ThingData holds the identifier fields shared by posts and comments.
type ThingData struct {
	ID   string `json:"id"`   // ID (without prefix)
	Name string `json:"name"` // Full name (e.g., "t3_abc123")
}

// GetID returns the object's ID.
func (td ThingData) GetID() string {
	return td.ID
}

// GetName returns the object's full name.
func (td ThingData) GetName() string {
	return td.Name
}

// Votable is an embeddable struct for things that can be voted on.
type Votable struct {
	Ups   int `json:"ups"`
	Downs int `json:"downs"`
	// Likes is always null for unauthenticated requests.
	Likes *bool `json:"likes"`
}

// Created is an embeddable struct for things that have a creation time.
type Created struct {
	Created    float64 `json:"created"`
	CreatedUTC float64 `json:"created_utc"`
}

// Edited represents a field that can be a boolean or a timestamp.
// If IsEdited is true and Timestamp is 0, it was an old edit marked as `true`.
// If IsEdited is true and Timestamp is non-zero, it's a modern edit with a timestamp.
// If IsEdited is false, the item was not edited.
type Edited struct {
	IsEdited  bool
	Timestamp float64
}

// UnmarshalJSON implements json.Unmarshaler to handle mixed types for the "edited" field.
func (e *Edited) UnmarshalJSON(data []byte) error {
	switch strings.ToLower(string(data)) {
	case "false", "null":
		e.IsEdited = false
		e.Timestamp = 0
		return nil
	case "true":
		e.IsEdited = true
		e.Timestamp = 0
		return nil
	}

	var timestamp float64
	if err := json.Unmarshal(data, &timestamp); err == nil {
		e.IsEdited = true
		e.Timestamp = timestamp
		return nil
	}

	return fmt.Errorf("unrecognized type for 'edited' field: %s", data)
}

// MarshalJSON writes the field back in the shape the platform uses.
func (e Edited) MarshalJSON() ([]byte, error) {
	if !e.IsEdited {
		return []byte("false"), nil
	}
	if e.Timestamp == 0 {
		return []byte("true"), nil
	}
	return json.Marshal(e.Timestamp)
}

// FeedOption carries the optional pagination parameters of a feed request.
// A zero field means "not set". When both After and Before are set only
// After is sent.
//
// Cursor values are appended to the query verbatim; pass the fullnames
// exactly as a previous listing returned them.
type FeedOption struct {
	// After is the fullname of the last item of the previous page, e.g. "t3_abc123".
	After string
	// Before is the fullname of the first item of the next page.
	Before string
	// Count is the number of items already seen in the listing.
	Count int
}

// NewFeedOption returns an empty FeedOption.
func NewFeedOption() FeedOption {
	return FeedOption{}
}

// WithAfter returns a copy of o with After set.
func (o FeedOption) WithAfter(after string) FeedOption {
	o.After = after
	return o
}

// WithBefore returns a copy of o with Before set.
func (o FeedOption) WithBefore(before string) FeedOption {
	o.Before = before
	return o
}

// WithCount returns a copy of o with Count set.
func (o FeedOption) WithCount(count int) FeedOption {
	o.Count = count
	return o
}

// Submissions is a page of posts as returned by the hot, rising, top and new listings.
type Submissions struct {
	Kind string          `json:"kind"`
	Data SubmissionsData `json:"data"`
}

// SubmissionsData is the listing body of Submissions.
type SubmissionsData struct {
	Modhash  string       `json:"modhash"`
	Dist     int          `json:"dist"`
	After    string       `json:"after"`  // Fullname of the last post, empty on the last page
	Before   string       `json:"before"` // Fullname of the first post, usually empty
	Children []Submission `json:"children"`
}

// Submission wraps a single post of a listing.
type Submission struct {
	Kind string         `json:"kind"`
	Data SubmissionData `json:"data"`
}

// SubmissionData holds the post fields. Values are passed through as the platform sends them.
type SubmissionData struct {
	ThingData
	Votable
	Created
	Author              string          `json:"author"`
	AuthorFullname      string          `json:"author_fullname"`
	AuthorFlairCSSClass *string         `json:"author_flair_css_class"`
	AuthorFlairText     *string         `json:"author_flair_text"`
	Clicked             bool            `json:"clicked"`
	Distinguished       *string         `json:"distinguished"`
	Domain              string          `json:"domain"`
	Edited              Edited          `json:"edited"`
	Gilded              int             `json:"gilded"`
	Hidden              bool            `json:"hidden"`
	IsSelf              bool            `json:"is_self"`
	IsVideo             bool            `json:"is_video"`
	LinkFlairCSSClass   *string         `json:"link_flair_css_class"`
	LinkFlairText       *string         `json:"link_flair_text"`
	Locked              bool            `json:"locked"`
	Media               json.RawMessage `json:"media,omitempty"`
	MediaEmbed          json.RawMessage `json:"media_embed,omitempty"`
	NumComments         int             `json:"num_comments"`
	Over18              bool            `json:"over_18"`
	Permalink           string          `json:"permalink"`
	Pinned              bool            `json:"pinned"`
	Saved               bool            `json:"saved"`
	Score               int             `json:"score"`
	SelfText            string          `json:"selftext"`
	SelfTextHTML        *string         `json:"selftext_html"`
	Spoiler             bool            `json:"spoiler"`
	Stickied            bool            `json:"stickied"`
	Subreddit           string          `json:"subreddit"`
	SubredditID         string          `json:"subreddit_id"`
	SubredditType       string          `json:"subreddit_type"`
	Thumbnail           string          `json:"thumbnail"`
	Title               string          `json:"title"`
	UpvoteRatio         float64         `json:"upvote_ratio"`
	URL                 string          `json:"url"`
}

// SubredditComments is a comment listing, either the subreddit-wide stream
// or the comment tree of one submission.
type SubredditComments struct {
	Kind string                `json:"kind"`
	Data SubredditCommentsData `json:"data"`
}

// SubredditCommentsData is the listing body of SubredditComments.
type SubredditCommentsData struct {
	Modhash  string    `json:"modhash"`
	Dist     *int      `json:"dist"`
	After    string    `json:"after"`
	Before   string    `json:"before"`
	Children []Comment `json:"children"`
}

// Comment wraps a single child of a comment listing. Kind is "t1" for
// comments and "more" for collapsed placeholders.
type Comment struct {
	Kind string      `json:"kind"`
	Data CommentData `json:"data"`
}

// CommentData holds the comment fields. For "more" children only ID, Name,
// ParentID, Depth, Count and Children are populated.
type CommentData struct {
	ThingData
	Votable
	Created
	ApprovedBy          *string  `json:"approved_by"`
	Author              string   `json:"author"`
	AuthorFullname      string   `json:"author_fullname"`
	AuthorFlairCSSClass *string  `json:"author_flair_css_class"`
	AuthorFlairText     *string  `json:"author_flair_text"`
	BannedBy            *string  `json:"banned_by"`
	Body                string   `json:"body"`
	BodyHTML            string   `json:"body_html"`
	Controversiality    int      `json:"controversiality"`
	Depth               int      `json:"depth"`
	Distinguished       *string  `json:"distinguished"`
	Edited              Edited   `json:"edited"`
	Gilded              int      `json:"gilded"`
	IsSubmitter         bool     `json:"is_submitter"`
	LinkAuthor          string   `json:"link_author,omitempty"`
	LinkID              string   `json:"link_id"`
	LinkPermalink       string   `json:"link_permalink,omitempty"`
	LinkTitle           string   `json:"link_title,omitempty"`
	LinkURL             string   `json:"link_url,omitempty"`
	Locked              bool     `json:"locked"`
	NumReports          *int     `json:"num_reports"`
	Over18              bool     `json:"over_18"`
	ParentID            string   `json:"parent_id"`
	Permalink           string   `json:"permalink"`
	Replies             Replies  `json:"replies"`
	Saved               bool     `json:"saved"`
	Score               int      `json:"score"`
	ScoreHidden         bool     `json:"score_hidden"`
	Stickied            bool     `json:"stickied"`
	Subreddit           string   `json:"subreddit"`
	SubredditID         string   `json:"subreddit_id"`
	Count               int      `json:"count,omitempty"`
	Children            []string `json:"children,omitempty"`
}

// Replies is the nested reply listing of a comment. The platform sends an
// empty string when there are no replies, so Listing is nil in that case.
type Replies struct {
	Listing *SubredditComments
}

// UnmarshalJSON accepts either "" / null or a nested comment listing.
func (r *Replies) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte(`""`)) || bytes.Equal(trimmed, []byte("null")) {
		r.Listing = nil
		return nil
	}

	var listing SubredditComments
	if err := json.Unmarshal(trimmed, &listing); err != nil {
		return fmt.Errorf("failed to parse replies: %w", err)
	}
	r.Listing = &listing
	return nil
}

// MarshalJSON writes "" for an empty reply set, as the platform does.
func (r Replies) MarshalJSON() ([]byte, error) {
	if r.Listing == nil {
		return []byte(`""`), nil
	}
	return json.Marshal(r.Listing)
}

// Children returns the direct replies, or nil.
func (r Replies) Children() []Comment {
	if r.Listing == nil {
		return nil
	}
	return r.Listing.Data.Children
}

// Moderators is the moderator list of a subreddit.
type Moderators struct {
	Kind string         `json:"kind"`
	Data ModeratorsData `json:"data"`
}

// ModeratorsData is the body of Moderators.
type ModeratorsData struct {
	Children []ModeratorData `json:"children"`
}

// ModeratorData describes one moderator.
type ModeratorData struct {
	Name                string   `json:"name"`
	ID                  string   `json:"id"` // Account fullname, e.g. "t2_abc"
	Date                float64  `json:"date"`
	ModPermissions      []string `json:"mod_permissions"`
	AuthorFlairText     *string  `json:"author_flair_text"`
	AuthorFlairCSSClass *string  `json:"author_flair_css_class"`
}
