package reddit

import (
	"context"
	"strings"
	"testing"

	pkgerrs "github.com/snooweb/go-reddit-classic/pkg/errors"
	"github.com/snooweb/go-reddit-classic/test_helpers"
)

func TestNewClientLoginSuccess(t *testing.T) {
	server := test_helpers.NewClassicMockServer()
	defer server.Close()

	client, err := NewClient(context.Background(), &Config{
		Username: "alice",
		Password: "hunter2",
		BaseURL:  server.URL(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !client.IsLoggedIn() {
		t.Error("expected client to be logged in")
	}
	if got := server.CallCount("/api/login"); got != 1 {
		t.Errorf("expected exactly 1 login call, got %d", got)
	}
}

func TestNewClientLoginFailure(t *testing.T) {
	server := test_helpers.NewClassicMockServer()
	defer server.Close()
	server.FailLogin()

	_, err := NewClient(context.Background(), &Config{
		Username: "alice",
		Password: "wrong",
		BaseURL:  server.URL(),
	})
	if err == nil {
		t.Fatal("expected construction to fail")
	}
	if _, ok := err.(*pkgerrs.AuthError); !ok {
		t.Errorf("expected AuthError, got %T", err)
	}
}

func TestNewClientAnonymousMakesNoNetworkCalls(t *testing.T) {
	server := test_helpers.NewClassicMockServer()
	defer server.Close()

	client, err := NewClient(context.Background(), &Config{BaseURL: server.URL()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.IsLoggedIn() {
		t.Error("expected anonymous client")
	}
	if got := server.TotalCalls(); got != 0 {
		t.Errorf("expected zero network calls during construction, got %d", got)
	}
}

func TestLoginNoMatchLeavesStateAnonymous(t *testing.T) {
	server := test_helpers.NewClassicMockServer()
	defer server.Close()
	server.FailLogin()

	client, err := NewClient(context.Background(), &Config{BaseURL: server.URL()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ok, err := client.Login(context.Background(), "alice", "wrong")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected login to report false")
	}
	if client.IsLoggedIn() {
		t.Error("expected session state to stay anonymous")
	}
}

func TestSessionFlowCookieAndModhash(t *testing.T) {
	server := test_helpers.NewClassicMockServer()
	defer server.Close()

	ctx := context.Background()
	client, err := NewClient(ctx, &Config{
		Username: "alice",
		Password: "hunter2",
		BaseURL:  server.URL(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A listing response carries a modhash; the dispatcher must harvest it.
	links, err := client.GetLinksBySubreddit(ctx, "golang")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("expected 2 links, got %d", len(links))
	}

	listingReq := server.LastRequest("/r/golang.json")
	if listingReq == nil {
		t.Fatal("expected a listing request")
	}
	if !strings.Contains(listingReq.Cookie, "reddit_session="+test_helpers.TestSessionCookie) {
		t.Errorf("expected session cookie on request, got %q", listingReq.Cookie)
	}

	// The next state-mutating request must carry the harvested token.
	if err := client.Vote(ctx, "t3_aaa111", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	voteReq := server.LastRequest("/api/vote")
	if voteReq == nil {
		t.Fatal("expected a vote request")
	}
	if got := voteReq.Form["uh"]; got != test_helpers.TestModhash {
		t.Errorf("expected uh %q, got %q", test_helpers.TestModhash, got)
	}
	if got := voteReq.Form["dir"]; got != "1" {
		t.Errorf("expected dir 1, got %q", got)
	}
}

func TestGetLinkWithCommentsAgainstMockServer(t *testing.T) {
	server := test_helpers.NewClassicMockServer()
	defer server.Close()

	ctx := context.Background()
	client, err := NewClient(ctx, &Config{BaseURL: server.URL()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	link, err := client.GetLink(ctx, "aaa111", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if link == nil || link.Title != "first" {
		t.Fatalf("unexpected link: %+v", link)
	}

	comments, err := link.Comments(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}
	if got := server.CallCount("/comments/aaa111.json"); got != 1 {
		t.Errorf("expected a single comments fetch, got %d", got)
	}
}
