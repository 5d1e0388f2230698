// Package redditmock provides an httptest server that answers the public
// subreddit JSON endpoints with canned listings.
package redditmock

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"
)

// Server is a configurable mock of the platform's JSON endpoints.
type Server struct {
	server *httptest.Server

	mu          sync.RWMutex
	responses   map[string]*Response
	dynamic     map[string]func(*http.Request) *Response
	defaultResp *Response
	requestLog  []RequestEntry
}

// RequestEntry records one request seen by the server.
type RequestEntry struct {
	Method    string
	Path      string
	RawQuery  string
	Headers   http.Header
	Timestamp time.Time
}

// Response defines a canned response.
type Response struct {
	Status  int
	Body    string
	Headers map[string]string
	Delay   time.Duration
}

// NewServer starts an empty mock server. Unknown paths answer 404.
func NewServer() *Server {
	s := &Server{
		responses: make(map[string]*Response),
		dynamic:   make(map[string]func(*http.Request) *Response),
		defaultResp: &Response{
			Status: http.StatusNotFound,
			Body:   `{"message": "Not Found", "error": 404}`,
		},
	}
	s.server = httptest.NewServer(s)
	return s
}

// URL returns the platform root of the mock server, for use as a base URL.
func (s *Server) URL() string {
	return s.server.URL
}

// Client returns an *http.Client wired to the server.
func (s *Server) Client() *http.Client {
	return s.server.Client()
}

// Close shuts down the mock server
func (s *Server) Close() {
	s.server.Close()
}

// SetResponse configures a response for a specific path, replacing any
// handler set for it.
func (s *Server) SetResponse(path string, response *Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.dynamic, path)
	s.responses[path] = response
}

// SetHandler configures a response computed per request for path, replacing
// any static response set for it.
func (s *Server) SetHandler(path string, fn func(*http.Request) *Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.responses, path)
	s.dynamic[path] = fn
}

// SetDefaultResponse configures the response for unconfigured paths.
func (s *Server) SetDefaultResponse(response *Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaultResp = response
}

// Requests returns a copy of the request log.
func (s *Server) Requests() []RequestEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]RequestEntry(nil), s.requestLog...)
}

// LastRequest returns the most recent request for path.
func (s *Server) LastRequest(path string) (*RequestEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.requestLog) - 1; i >= 0; i-- {
		if s.requestLog[i].Path == path {
			entry := s.requestLog[i]
			return &entry, nil
		}
	}
	return nil, fmt.Errorf("no requests found for path: %s", path)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requestLog = append(s.requestLog, RequestEntry{
		Method:    r.Method,
		Path:      r.URL.Path,
		RawQuery:  r.URL.RawQuery,
		Headers:   r.Header.Clone(),
		Timestamp: time.Now(),
	})
	fn := s.dynamic[r.URL.Path]
	response, exists := s.responses[r.URL.Path]
	if !exists {
		response = s.defaultResp
	}
	s.mu.Unlock()

	if fn != nil {
		response = fn(r)
	}
	if response == nil {
		response = &Response{Status: http.StatusNotFound, Body: `{"message": "Not Found", "error": 404}`}
	}

	if response.Delay > 0 {
		select {
		case <-time.After(response.Delay):
		case <-r.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	for key, value := range response.Headers {
		w.Header().Set(key, value)
	}

	status := response.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(response.Body))
}

// SetupError makes every unconfigured path answer with statusCode.
func (s *Server) SetupError(statusCode int, message string) {
	s.SetDefaultResponse(&Response{
		Status: statusCode,
		Body:   fmt.Sprintf(`{"message": %q, "error": %d}`, message, statusCode),
	})
}

// Post is the minimal post description used to build fixtures.
type Post struct {
	ID     string
	Title  string
	Author string
	Score  int
}

// Comment is the minimal comment description used to build fixtures.
type Comment struct {
	ID      string
	Author  string
	Body    string
	LinkID  string // fullname of the post, e.g. "t3_abc"
	Replies []Comment
}

// SetupSubreddit registers every listing of subreddit name.
//
// Every post listing is paginated: requests without an after cursor get the
// first pageSize posts (fewer when limit is smaller), requests with
// after=<fullname> get the posts that follow it. The subreddit-wide
// comment stream returns comments; each post's comment page returns the
// array [post listing, comment listing] with the comments that reference it.
func (s *Server) SetupSubreddit(name string, posts []Post, comments []Comment, pageSize int) {
	base := "/r/" + name

	page := func(r *http.Request) *Response {
		start := 0
		if after := r.URL.Query().Get("after"); after != "" {
			for i, p := range posts {
				if "t3_"+p.ID == after {
					start = i + 1
					break
				}
			}
		}
		limit := pageSize
		if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l < limit {
			limit = l
		}
		end := start + limit
		if end > len(posts) {
			end = len(posts)
		}
		after := ""
		if end < len(posts) {
			after = "t3_" + posts[end-1].ID
		}
		return &Response{Status: http.StatusOK, Body: SubmissionsJSON(posts[start:end], after)}
	}

	s.SetHandler(base+"/hot.json", page)
	for _, listing := range []string{"rising", "top", "new"} {
		s.SetHandler(base+"/"+listing+".json", page)
	}

	s.SetResponse(base+"/about/moderators/.json", &Response{
		Status: http.StatusOK,
		Body:   ModeratorsJSON("automoderator", name+"_mod"),
	})

	s.SetResponse(base+"/comments.json", &Response{
		Status: http.StatusOK,
		Body:   CommentsJSON(comments),
	})

	for _, p := range posts {
		var own []Comment
		for _, c := range comments {
			if c.LinkID == "t3_"+p.ID {
				own = append(own, c)
			}
		}
		s.SetResponse(base+"/comments/"+p.ID+".json", &Response{
			Status: http.StatusOK,
			Body:   "[" + SubmissionsJSON([]Post{p}, "") + "," + CommentsJSON(own) + "]",
		})
	}
}

// SubmissionsJSON renders posts as a listing body.
func SubmissionsJSON(posts []Post, after string) string {
	children := make([]map[string]any, 0, len(posts))
	for _, p := range posts {
		children = append(children, map[string]any{
			"kind": "t3",
			"data": map[string]any{
				"id":           p.ID,
				"name":         "t3_" + p.ID,
				"title":        p.Title,
				"author":       p.Author,
				"score":        p.Score,
				"ups":          p.Score,
				"num_comments": 0,
				"edited":       false,
				"permalink":    "/r/x/comments/" + p.ID + "/",
				"created_utc":  1700000000.0,
			},
		})
	}

	var afterValue any
	if after != "" {
		afterValue = after
	}

	return mustJSON(map[string]any{
		"kind": "Listing",
		"data": map[string]any{
			"after":    afterValue,
			"before":   nil,
			"dist":     len(posts),
			"modhash":  "",
			"children": children,
		},
	})
}

// CommentsJSON renders comments, with their replies, as a comment listing body.
func CommentsJSON(comments []Comment) string {
	return mustJSON(commentListing(comments, 0))
}

func commentListing(comments []Comment, depth int) map[string]any {
	children := make([]map[string]any, 0, len(comments))
	for _, c := range comments {
		var replies any = ""
		if len(c.Replies) > 0 {
			replies = commentListing(c.Replies, depth+1)
		}
		children = append(children, map[string]any{
			"kind": "t1",
			"data": map[string]any{
				"id":        c.ID,
				"name":      "t1_" + c.ID,
				"author":    c.Author,
				"body":      c.Body,
				"link_id":   c.LinkID,
				"parent_id": c.LinkID,
				"depth":     depth,
				"edited":    false,
				"replies":   replies,
			},
		})
	}

	return map[string]any{
		"kind": "Listing",
		"data": map[string]any{
			"after":    nil,
			"before":   nil,
			"children": children,
		},
	}
}

// ModeratorsJSON renders a moderator list body.
func ModeratorsJSON(names ...string) string {
	children := make([]map[string]any, 0, len(names))
	for i, n := range names {
		children = append(children, map[string]any{
			"name":              n,
			"id":                fmt.Sprintf("t2_%d", i+1),
			"date":              1500000000.0,
			"mod_permissions":   []string{"all"},
			"author_flair_text": nil,
		})
	}
	return mustJSON(map[string]any{
		"kind": "UserList",
		"data": map[string]any{"children": children},
	})
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
