// Package types defines the wire envelopes and typed entities returned by the
// classic Reddit API.
package types

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// SiteObject defines the common behavior for all Reddit API objects like
// Links, Comments, Accounts and Subreddits.
type SiteObject interface {
	GetID() string
	GetName() string
}

// ThingData holds the common identifier fields for Reddit objects.
// It can be embedded into specific types like Link and Comment.
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

// Thing is the generic envelope the API wraps every object in. The Kind
// discriminates the payload ("t1" comment, "t3" link, "t5" subreddit,
// "Listing") and Data carries the raw object.
type Thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// Votable is an embeddable struct for things that can be voted on.
type Votable struct {
	Ups   int `json:"ups"`
	Downs int `json:"downs"`
	// Likes indicates the user's vote: true for upvote, false for downvote, null for no vote.
	Likes *bool `json:"likes"`
}

// Created is an embeddable struct for things that have a creation time.
type Created struct {
	Created    float64 `json:"created"`
	CreatedUTC float64 `json:"created_utc"`
}

// Edited represents a field that can be a boolean or a timestamp.
// Old edits are marked with a bare `true`; modern edits carry the edit time.
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

	return fmt.Errorf("unrecognized type for 'edited' field: %s", string(data))
}

// ListingData contains the data for a Listing response,
// the shape {data: {children: [...], modhash}}.
type ListingData struct {
	BeforeFullname string   `json:"before"`
	AfterFullname  string   `json:"after"`
	Modhash        string   `json:"modhash"`
	Children       []*Thing `json:"children"` // Raw Things with kind+data, parsed by caller
}

// CommentLoader fetches the full comment sequence for a link. The client
// implements it; Link holds it as a non-owning handle so entities stay
// testable with a stub loader.
type CommentLoader interface {
	LoadComments(ctx context.Context, linkID string) ([]*Comment, error)
}

// Link represents a submission (a post). Fields cover the documented classic
// API surface; Raw retains the complete payload for anything undocumented.
type Link struct {
	ThingData
	Votable
	Created
	Author      string `json:"author"`
	Domain      string `json:"domain"`
	Hidden      bool   `json:"hidden"`
	IsSelf      bool   `json:"is_self"`
	NumComments int    `json:"num_comments"`
	Over18      bool   `json:"over_18"`
	Permalink   string `json:"permalink"`
	Saved       bool   `json:"saved"`
	Score       int    `json:"score"`
	SelfText    string `json:"selftext"`
	Subreddit   string `json:"subreddit"`
	SubredditID string `json:"subreddit_id"`
	Thumbnail   string `json:"thumbnail"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Edited      Edited `json:"edited"`
	Stickied    bool   `json:"stickied"`

	// Raw is the original JSON payload this Link was decoded from.
	Raw json.RawMessage `json:"-"`

	mu       sync.Mutex
	comments []*Comment
	loaded   bool
	loader   CommentLoader
}

// IsSelfPost reports whether the submission is a text post hosted on the site
// itself rather than a link to an external URL.
func (l *Link) IsSelfPost() bool {
	return l.IsSelf
}

// SetCommentLoader attaches the handle Comments uses for its one-time fetch.
func (l *Link) SetCommentLoader(loader CommentLoader) {
	l.mu.Lock()
	l.loader = loader
	l.mu.Unlock()
}

// SetComments supplies the comment sequence directly. Once set, Comments
// never fetches again for this instance.
func (l *Link) SetComments(comments []*Comment) {
	l.mu.Lock()
	l.comments = comments
	l.loaded = true
	l.mu.Unlock()
}

// HasComments reports whether the comment sequence has been populated.
func (l *Link) HasComments() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}

// Comments returns the link's comment sequence, fetching it through the
// attached CommentLoader on first call and caching the result. Repeated calls
// return the cached slice without another network round trip, even if the
// post has since received new comments. A failed fetch is not cached.
func (l *Link) Comments(ctx context.Context) ([]*Comment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loaded {
		return l.comments, nil
	}
	if l.loader == nil {
		return nil, fmt.Errorf("link %s: no comment loader attached", l.ID)
	}

	comments, err := l.loader.LoadComments(ctx, l.ID)
	if err != nil {
		return nil, err
	}

	l.comments = comments
	l.loaded = true
	return l.comments, nil
}

// Comment represents a single comment on a link.
type Comment struct {
	ThingData
	Votable
	Created
	Author    string `json:"author"`
	Body      string `json:"body"`
	BodyHTML  string `json:"body_html"`
	Edited    Edited `json:"edited"`
	Gilded    int    `json:"gilded"`
	LinkID    string `json:"link_id"`
	ParentID  string `json:"parent_id"`
	Score     int    `json:"score"`
	Subreddit string `json:"subreddit"`

	// Replies holds nested replies, parsed by the parser from the raw
	// replies field (the API sends "" when there are none).
	Replies []*Comment `json:"-"`

	// Raw is the original JSON payload this Comment was decoded from.
	Raw json.RawMessage `json:"-"`
}

// SubredditData contains the data for a Subreddit.
type SubredditData struct {
	ThingData
	Description       string `json:"description"`
	DisplayName       string `json:"display_name"`
	Over18            bool   `json:"over18"`
	PublicDescription string `json:"public_description"`
	Subscribers       int64  `json:"subscribers"`
	SubredditType     string `json:"subreddit_type"`
	Title             string `json:"title"`
	URL               string `json:"url"`

	// Raw is the original JSON payload this SubredditData was decoded from.
	Raw json.RawMessage `json:"-"`
}

// AccountData contains the data for a user Account.
type AccountData struct {
	ThingData
	Created
	CommentKarma     int    `json:"comment_karma"`
	HasVerifiedEmail *bool  `json:"has_verified_email"`
	IsFriend         bool   `json:"is_friend"`
	IsGold           bool   `json:"is_gold"`
	IsMod            bool   `json:"is_mod"`
	LinkKarma        int    `json:"link_karma"`
	Modhash          string `json:"modhash,omitempty"`
	Over18           bool   `json:"over_18"`

	// Raw is the original JSON payload this AccountData was decoded from.
	Raw json.RawMessage `json:"-"`
}
