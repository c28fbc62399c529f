package internal

import (
	"encoding/json"
	"fmt"

	"github.com/snooweb/go-reddit-classic/pkg/types"
)

// Parser maps decoded JSON payloads onto typed entities.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// ParseListing extracts the ListingData from a listing-shaped payload,
// {data: {children: [...], modhash}}.
func (p *Parser) ParseListing(raw json.RawMessage) (*types.ListingData, error) {
	var envelope struct {
		Data *types.ListingData `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse listing: %w", err)
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("listing has no data field")
	}
	return envelope.Data, nil
}

// ParseLinkData decodes one link object, retaining the raw payload.
func (p *Parser) ParseLinkData(data json.RawMessage) (*types.Link, error) {
	var link types.Link
	if err := json.Unmarshal(data, &link); err != nil {
		return nil, fmt.Errorf("failed to parse link data: %w", err)
	}
	link.Raw = data
	return &link, nil
}

// ParseCommentData decodes one comment object, retaining the raw payload.
// Nested replies are decoded recursively; the API sends an empty string in
// the replies field when there are none.
func (p *Parser) ParseCommentData(data json.RawMessage) (*types.Comment, error) {
	var comment types.Comment
	if err := json.Unmarshal(data, &comment); err != nil {
		return nil, fmt.Errorf("failed to parse comment data: %w", err)
	}
	comment.Raw = data

	var rawFields struct {
		Replies json.RawMessage `json:"replies"`
	}
	if err := json.Unmarshal(data, &rawFields); err == nil && len(rawFields.Replies) > 0 && string(rawFields.Replies) != `""` {
		if replies, err := p.extractCommentChildren(rawFields.Replies); err == nil {
			comment.Replies = replies
		}
	}

	return &comment, nil
}

// ParseSubredditData decodes one subreddit object, retaining the raw payload.
func (p *Parser) ParseSubredditData(data json.RawMessage) (*types.SubredditData, error) {
	var subreddit types.SubredditData
	if err := json.Unmarshal(data, &subreddit); err != nil {
		return nil, fmt.Errorf("failed to parse subreddit data: %w", err)
	}
	subreddit.Raw = data
	return &subreddit, nil
}

// ParseAccountData decodes one account object, retaining the raw payload.
func (p *Parser) ParseAccountData(data json.RawMessage) (*types.AccountData, error) {
	var account types.AccountData
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, fmt.Errorf("failed to parse account data: %w", err)
	}
	account.Raw = data
	return &account, nil
}

// ExtractLinks maps every element of a listing's data.children into a Link,
// preserving the response order.
func (p *Parser) ExtractLinks(raw json.RawMessage) ([]*types.Link, error) {
	listing, err := p.ParseListing(raw)
	if err != nil {
		return nil, err
	}

	links := make([]*types.Link, 0, len(listing.Children))
	for _, child := range listing.Children {
		link, err := p.ParseLinkData(child.Data)
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, nil
}

// ExtractSubreddits maps every element of a listing's data.children into a
// SubredditData, preserving the response order.
func (p *Parser) ExtractSubreddits(raw json.RawMessage) ([]*types.SubredditData, error) {
	listing, err := p.ParseListing(raw)
	if err != nil {
		return nil, err
	}

	subreddits := make([]*types.SubredditData, 0, len(listing.Children))
	for _, child := range listing.Children {
		subreddit, err := p.ParseSubredditData(child.Data)
		if err != nil {
			return nil, err
		}
		subreddits = append(subreddits, subreddit)
	}
	return subreddits, nil
}

// ExtractAccount builds an Account from the payload's data field.
func (p *Parser) ExtractAccount(raw json.RawMessage) (*types.AccountData, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse account envelope: %w", err)
	}
	if len(envelope.Data) == 0 {
		return nil, fmt.Errorf("account response has no data field")
	}
	return p.ParseAccountData(envelope.Data)
}

// ExtractFirstLink finds the first data.children[0].data present in either
// response form the link endpoints produce: a bare listing object, or an
// array whose first element is one. A well-formed response without the
// expected shape yields (nil, nil): nothing found, not an error.
func (p *Parser) ExtractFirstLink(raw json.RawMessage) (*types.Link, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	candidates := []json.RawMessage{raw}
	if raw[0] == '[' {
		var elements []json.RawMessage
		if err := json.Unmarshal(raw, &elements); err != nil {
			return nil, fmt.Errorf("failed to parse response array: %w", err)
		}
		candidates = elements
	}

	for _, candidate := range candidates {
		listing, err := p.ParseListing(candidate)
		if err != nil || len(listing.Children) == 0 {
			continue
		}
		return p.ParseLinkData(listing.Children[0].Data)
	}

	return nil, nil
}

// ExtractLinkAndComments parses the two-element comments-endpoint response:
// [postEnvelope, commentsEnvelope]. Comment entries lacking an author field
// (deleted or placeholder comments) are excluded; the order of the rest is
// preserved. A missing link shape yields (nil, nil, nil).
func (p *Parser) ExtractLinkAndComments(raw json.RawMessage) (*types.Link, []*types.Comment, error) {
	if len(raw) == 0 {
		return nil, nil, nil
	}

	// Some responses come back as a bare listing object instead of the
	// usual two-element array; that form carries no comments.
	if raw[0] != '[' {
		link, err := p.ExtractFirstLink(raw)
		return link, nil, err
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, nil, fmt.Errorf("failed to parse comment thread response: %w", err)
	}
	if len(elements) == 0 {
		return nil, nil, nil
	}

	link, err := p.ExtractFirstLink(elements[0])
	if err != nil {
		return nil, nil, err
	}
	if link == nil {
		return nil, nil, nil
	}

	if len(elements) < 2 {
		return link, nil, nil
	}

	comments, err := p.extractCommentChildren(elements[1])
	if err != nil {
		return nil, nil, err
	}
	return link, comments, nil
}

// extractCommentChildren flattens a comment listing's children into an
// ordered slice, skipping entries without an author field.
func (p *Parser) extractCommentChildren(raw json.RawMessage) ([]*types.Comment, error) {
	listing, err := p.ParseListing(raw)
	if err != nil {
		return nil, err
	}

	comments := make([]*types.Comment, 0, len(listing.Children))
	for _, child := range listing.Children {
		if !hasAuthor(child.Data) {
			continue
		}
		comment, err := p.ParseCommentData(child.Data)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, nil
}

// hasAuthor reports whether the entry carries an author field at all. Deleted
// and "more" placeholder entries do not.
func hasAuthor(data json.RawMessage) bool {
	var probe struct {
		Author *string `json:"author"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	return probe.Author != nil
}
