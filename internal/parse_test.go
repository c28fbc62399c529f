package internal

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/snooweb/go-reddit-classic/pkg/types"
)

const linkListingFixture = `{
	"kind": "Listing",
	"data": {
		"modhash": "m1",
		"children": [
			{"kind": "t3", "data": {"id": "aaa", "name": "t3_aaa", "title": "first", "author": "alice", "score": 3}},
			{"kind": "t3", "data": {"id": "bbb", "name": "t3_bbb", "title": "second", "author": "bob", "score": 1}}
		]
	}
}`

func TestParseListing(t *testing.T) {
	p := NewParser()

	listing, err := p.ParseListing(json.RawMessage(linkListingFixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if listing.Modhash != "m1" {
		t.Errorf("expected modhash m1, got %q", listing.Modhash)
	}
	if len(listing.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(listing.Children))
	}
}

func TestExtractLinksPreservesOrder(t *testing.T) {
	p := NewParser()

	links, err := p.ExtractLinks(json.RawMessage(linkListingFixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("expected 2 links, got %d", len(links))
	}
	if links[0].ID != "aaa" || links[1].ID != "bbb" {
		t.Errorf("response order not preserved: got %s, %s", links[0].ID, links[1].ID)
	}
	if links[0].Title != "first" || links[0].Author != "alice" || links[0].Score != 3 {
		t.Errorf("link fields not mapped: %+v", links[0])
	}
	if len(links[0].Raw) == 0 {
		t.Error("expected raw payload to be retained")
	}
}

func TestExtractFirstLinkObjectShape(t *testing.T) {
	p := NewParser()

	link, err := p.ExtractFirstLink(json.RawMessage(linkListingFixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if link == nil {
		t.Fatal("expected a link")
	}
	if link.ID != "aaa" {
		t.Errorf("expected first child, got %q", link.ID)
	}
}

func TestExtractFirstLinkArrayShape(t *testing.T) {
	p := NewParser()

	raw := json.RawMessage(`[` + linkListingFixture + `, {"kind":"Listing","data":{"children":[]}}]`)
	link, err := p.ExtractFirstLink(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if link == nil {
		t.Fatal("expected a link")
	}
	if link.ID != "aaa" {
		t.Errorf("expected first child, got %q", link.ID)
	}
}

func TestExtractFirstLinkNothingFound(t *testing.T) {
	p := NewParser()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty children", raw: `{"kind":"Listing","data":{"children":[]}}`},
		{name: "no data field", raw: `{"kind":"Listing"}`},
		{name: "empty object", raw: `{}`},
		{name: "empty array", raw: `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link, err := p.ExtractFirstLink(json.RawMessage(tt.raw))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if link != nil {
				t.Errorf("expected nothing found, got %+v", link)
			}
		})
	}
}

func TestExtractLinkAndComments(t *testing.T) {
	p := NewParser()

	raw := json.RawMessage(`[
		{"kind":"Listing","data":{"children":[{"kind":"t3","data":{"id":"aaa","title":"post","author":"alice"}}]}},
		{"kind":"Listing","data":{"children":[
			{"kind":"t1","data":{"id":"c1","author":"carol","body":"one"}},
			{"kind":"more","data":{"id":"c2","children":["x","y"]}},
			{"kind":"t1","data":{"id":"c3","author":"dave","body":"three"}}
		]}}
	]`)

	link, comments, err := p.ExtractLinkAndComments(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if link == nil || link.ID != "aaa" {
		t.Fatalf("expected link aaa, got %+v", link)
	}

	want := []*types.Comment{
		{ThingData: types.ThingData{ID: "c1"}, Author: "carol", Body: "one"},
		{ThingData: types.ThingData{ID: "c3"}, Author: "dave", Body: "three"},
	}
	ignore := cmpopts.IgnoreFields(types.Comment{}, "Raw")
	if diff := cmp.Diff(want, comments, ignore); diff != "" {
		t.Errorf("comments mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractLinkAndCommentsExcludesAuthorlessEntry(t *testing.T) {
	p := NewParser()

	raw := json.RawMessage(`[
		{"kind":"Listing","data":{"children":[{"kind":"t3","data":{"id":"aaa","author":"alice"}}]}},
		{"kind":"Listing","data":{"children":[
			{"kind":"t1","data":{"id":"c1","author":"carol","body":"kept"}},
			{"kind":"t1","data":{"id":"c2","body":"deleted placeholder"}},
			{"kind":"t1","data":{"id":"c3","author":"dave","body":"also kept"}}
		]}}
	]`)

	_, comments, err := p.ExtractLinkAndComments(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("expected exactly 2 comments, got %d", len(comments))
	}
	if comments[0].ID != "c1" || comments[1].ID != "c3" {
		t.Errorf("order of remaining comments not preserved: %s, %s", comments[0].ID, comments[1].ID)
	}
}

func TestExtractLinkAndCommentsNoLinkShape(t *testing.T) {
	p := NewParser()

	raw := json.RawMessage(`[{"kind":"Listing","data":{"children":[]}}]`)
	link, comments, err := p.ExtractLinkAndComments(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if link != nil || comments != nil {
		t.Errorf("expected nothing found, got link=%+v comments=%v", link, comments)
	}
}

func TestExtractLinkAndCommentsObjectShape(t *testing.T) {
	p := NewParser()

	raw := json.RawMessage(`{"kind":"Listing","data":{"children":[{"kind":"t3","data":{"id":"aaa","title":"post","author":"alice"}}]}}`)
	link, comments, err := p.ExtractLinkAndComments(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if link == nil || link.ID != "aaa" {
		t.Fatalf("expected link aaa, got %+v", link)
	}
	if comments != nil {
		t.Errorf("object responses carry no comments, got %v", comments)
	}
}

func TestParseCommentNestedReplies(t *testing.T) {
	p := NewParser()

	data := json.RawMessage(`{
		"id": "c1", "author": "carol", "body": "top",
		"replies": {"kind":"Listing","data":{"children":[
			{"kind":"t1","data":{"id":"c2","author":"dave","body":"nested","replies":""}}
		]}}
	}`)

	comment, err := p.ParseCommentData(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(comment.Replies) != 1 {
		t.Fatalf("expected 1 reply, got %d", len(comment.Replies))
	}
	if comment.Replies[0].ID != "c2" {
		t.Errorf("expected reply c2, got %q", comment.Replies[0].ID)
	}
	if comment.Replies[0].Replies != nil {
		t.Error("empty-string replies should parse to nil")
	}
}

func TestExtractSubreddits(t *testing.T) {
	p := NewParser()

	raw := json.RawMessage(`{"kind":"Listing","data":{"children":[
		{"kind":"t5","data":{"id":"s1","display_name":"golang","subscribers":100}},
		{"kind":"t5","data":{"id":"s2","display_name":"programming","subscribers":200}}
	]}}`)

	subreddits, err := p.ExtractSubreddits(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(subreddits) != 2 {
		t.Fatalf("expected 2 subreddits, got %d", len(subreddits))
	}
	if subreddits[0].DisplayName != "golang" || subreddits[1].DisplayName != "programming" {
		t.Errorf("subreddit order or fields wrong: %+v", subreddits)
	}
}

func TestExtractAccount(t *testing.T) {
	p := NewParser()

	raw := json.RawMessage(`{"kind":"t2","data":{"id":"u1","name":"t2_u1","link_karma":42,"comment_karma":7,"modhash":"m2"}}`)
	account, err := p.ExtractAccount(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.LinkKarma != 42 || account.CommentKarma != 7 {
		t.Errorf("account fields not mapped: %+v", account)
	}
	if account.Modhash != "m2" {
		t.Errorf("expected modhash m2, got %q", account.Modhash)
	}
}

func TestExtractAccountMissingData(t *testing.T) {
	p := NewParser()

	if _, err := p.ExtractAccount(json.RawMessage(`{"kind":"t2"}`)); err == nil {
		t.Fatal("expected error for missing data field")
	}
}
