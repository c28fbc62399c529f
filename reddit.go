package reddit

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/snooweb/go-reddit-classic/internal"
	pkgerrs "github.com/snooweb/go-reddit-classic/pkg/errors"
	"github.com/snooweb/go-reddit-classic/pkg/types"
)

const (
	// DefaultBaseURL is the default Reddit base URL
	DefaultBaseURL = "https://www.reddit.com/"
	// DefaultUserAgent is the default user agent string
	DefaultUserAgent = "go-reddit-classic/0.1"
	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second
)

// Vote directions accepted by the API. The client forwards the direction
// unchanged; the API's own semantics define what each value means.
const (
	VoteUp    = 1
	VoteDown  = -1
	VoteClear = 0
)

// Config holds the configuration for the classic Reddit client.
//
// Provide both Username and Password to log in during construction; leave
// both empty for an anonymous client that can still read public data.
type Config struct {
	// Username and Password for the classic login flow.
	// Supply both or neither.
	Username string
	Password string

	// UserAgent string to identify your application to Reddit.
	UserAgent string

	// BaseURL for the Reddit site.
	// Defaults to DefaultBaseURL if not specified.
	BaseURL string

	// HTTPClient to use for requests.
	// Defaults to a client with DefaultTimeout if not specified.
	HTTPClient *http.Client

	// Logger for structured diagnostics.
	// Optional. If provided, debug information will be logged during API calls.
	Logger *slog.Logger
}

// Dispatcher defines the behavior required from the request dispatcher.
// This interface allows for easy testing with a stub transport.
type Dispatcher interface {
	// Get issues one GET to the path relative to the base URL and returns
	// the decoded JSON payload.
	Get(ctx context.Context, path string) (json.RawMessage, error)

	// PostForm issues one POST with URL-encoded form fields and returns the
	// decoded JSON payload.
	PostForm(ctx context.Context, path string, form url.Values) (json.RawMessage, error)
}

// Client is the main classic Reddit API client. Each method performs at most
// one network round trip before returning. The session state it owns is safe
// for concurrent use, though concurrent state-mutating actions may race to
// rotate the anti-forgery token and lose it for one of the callers.
type Client struct {
	dispatcher Dispatcher
	auth       *internal.Authenticator
	session    *internal.Session
	parser     *internal.Parser
	validator  *internal.Validator
	config     *Config
}

// NewClient creates a new classic Reddit client with the provided
// configuration. When both Username and Password are supplied the login is
// attempted immediately and construction fails with an *errors.AuthError if
// the credentials are rejected. With neither supplied, no network call is
// made and the client starts anonymous.
func NewClient(ctx context.Context, config *Config) (*Client, error) {
	if config == nil {
		return nil, &pkgerrs.ConfigError{Message: "config cannot be nil"}
	}
	if (config.Username == "") != (config.Password == "") {
		return nil, &pkgerrs.ConfigError{Field: "Username", Message: "username and password must be supplied together"}
	}

	// Set defaults
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}

	validator := internal.NewValidator()
	if err := validator.ValidateUserAgent(config.UserAgent); err != nil {
		return nil, err
	}

	session := internal.NewSession()

	auth, err := internal.NewAuthenticator(config.HTTPClient, config.BaseURL, config.UserAgent)
	if err != nil {
		return nil, err
	}

	dispatcher, err := internal.NewClient(config.HTTPClient, session, config.BaseURL, config.UserAgent, config.Logger)
	if err != nil {
		return nil, err
	}

	c := &Client{
		dispatcher: dispatcher,
		auth:       auth,
		session:    session,
		parser:     internal.NewParser(),
		validator:  validator,
		config:     config,
	}

	if config.Username != "" {
		ok, err := c.Login(ctx, config.Username, config.Password)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &pkgerrs.AuthError{Message: "unable to login"}
		}
	}

	return c, nil
}

// Login issues one POST to the login endpoint with the credentials as form
// fields. It returns true and stores the session cookie when the response
// carries a recognizable session-cookie assignment; false leaves the session
// state unchanged. An error is returned only when the endpoint could not be
// reached at all.
func (c *Client) Login(ctx context.Context, username, password string) (bool, error) {
	cookie, err := c.auth.Login(ctx, username, password)
	if err != nil {
		return false, err
	}
	if cookie == "" {
		return false, nil
	}

	c.session.SetCookie(cookie)
	if c.config.Logger != nil {
		c.config.Logger.Debug("logged in", "username", username)
	}
	return true, nil
}

// IsLoggedIn reports whether a session cookie is present. This is a local
// check only; it is never revalidated against the server, so a revoked
// server-side session is indistinguishable from a valid one until a request
// actually fails.
func (c *Client) IsLoggedIn() bool {
	return c.session.HasCookie()
}

// GetLink retrieves a single link by its ID (without the "t3_" prefix). With
// withComments set, the comments-thread endpoint is used instead and the
// link's comment sequence is populated in the same round trip.
//
// A well-formed response without the expected link shape yields (nil, nil):
// nothing found, not an error.
func (c *Client) GetLink(ctx context.Context, id string, withComments bool) (*types.Link, error) {
	if withComments {
		raw, err := c.dispatcher.Get(ctx, "comments/"+id+".json")
		if err != nil {
			return nil, err
		}

		link, comments, err := c.parser.ExtractLinkAndComments(raw)
		if err != nil {
			return nil, &pkgerrs.ParseError{Operation: "GetLink", Err: err}
		}
		if link == nil {
			return nil, nil
		}

		link.SetComments(comments)
		link.SetCommentLoader(c)
		return link, nil
	}

	raw, err := c.dispatcher.Get(ctx, "by_id/t3_"+id+".json")
	if err != nil {
		return nil, err
	}

	link, err := c.parser.ExtractFirstLink(raw)
	if err != nil {
		return nil, &pkgerrs.ParseError{Operation: "GetLink", Err: err}
	}
	if link == nil {
		return nil, nil
	}

	link.SetCommentLoader(c)
	return link, nil
}

// LoadComments fetches the full comment sequence for a link by performing a
// GetLink round trip with comments. It implements types.CommentLoader, which
// Link instances use for their one-time lazy fetch.
func (c *Client) LoadComments(ctx context.Context, linkID string) ([]*types.Comment, error) {
	raw, err := c.dispatcher.Get(ctx, "comments/"+linkID+".json")
	if err != nil {
		return nil, err
	}

	_, comments, err := c.parser.ExtractLinkAndComments(raw)
	if err != nil {
		return nil, &pkgerrs.ParseError{Operation: "LoadComments", Err: err}
	}
	return comments, nil
}

// GetLinksBySubreddit retrieves the links of a subreddit's listing page,
// preserving the API response order.
func (c *Client) GetLinksBySubreddit(ctx context.Context, subreddit string) ([]*types.Link, error) {
	if err := c.validator.ValidateSubredditName(subreddit); err != nil {
		return nil, err
	}

	raw, err := c.dispatcher.Get(ctx, "r/"+subreddit+".json")
	if err != nil {
		return nil, err
	}

	links, err := c.parser.ExtractLinks(raw)
	if err != nil {
		return nil, &pkgerrs.ParseError{Operation: "GetLinksBySubreddit", Err: err}
	}

	for _, link := range links {
		link.SetCommentLoader(c)
	}
	return links, nil
}

// GetLinksByUsername retrieves the links a user has submitted, preserving
// the API response order.
func (c *Client) GetLinksByUsername(ctx context.Context, username string) ([]*types.Link, error) {
	if err := c.validator.ValidateUsername(username); err != nil {
		return nil, err
	}

	raw, err := c.dispatcher.Get(ctx, "user/"+username+".json")
	if err != nil {
		return nil, err
	}

	links, err := c.parser.ExtractLinks(raw)
	if err != nil {
		return nil, &pkgerrs.ParseError{Operation: "GetLinksByUsername", Err: err}
	}

	for _, link := range links {
		link.SetCommentLoader(c)
	}
	return links, nil
}

// GetMySubreddits retrieves the subreddits the logged-in user is subscribed
// to. It requires a session.
func (c *Client) GetMySubreddits(ctx context.Context) ([]*types.SubredditData, error) {
	if !c.IsLoggedIn() {
		return nil, &pkgerrs.StateError{Operation: "GetMySubreddits", Message: "login required"}
	}

	raw, err := c.dispatcher.Get(ctx, "reddits/mine.json")
	if err != nil {
		return nil, err
	}

	subreddits, err := c.parser.ExtractSubreddits(raw)
	if err != nil {
		return nil, &pkgerrs.ParseError{Operation: "GetMySubreddits", Err: err}
	}
	return subreddits, nil
}

// GetAccountByUsername retrieves a user's public account information.
func (c *Client) GetAccountByUsername(ctx context.Context, username string) (*types.AccountData, error) {
	if err := c.validator.ValidateUsername(username); err != nil {
		return nil, err
	}

	raw, err := c.dispatcher.Get(ctx, "user/"+username+"/about.json")
	if err != nil {
		return nil, err
	}

	account, err := c.parser.ExtractAccount(raw)
	if err != nil {
		return nil, &pkgerrs.ParseError{Operation: "GetAccountByUsername", Err: err}
	}
	return account, nil
}

// Vote casts a vote on a thing. The API defines 1 as up, -1 as down and 0 as
// clearing a previous vote; the direction is forwarded unchanged without
// local validation.
func (c *Client) Vote(ctx context.Context, thingID string, direction int) error {
	form := url.Values{}
	form.Set("id", thingID)
	form.Set("dir", strconv.Itoa(direction))
	return c.action(ctx, "Vote", "api/vote", form)
}

// Save saves a thing to the logged-in user's saved list.
func (c *Client) Save(ctx context.Context, thingID string) error {
	return c.simpleAction(ctx, "Save", "api/save", thingID)
}

// Unsave removes a thing from the logged-in user's saved list.
func (c *Client) Unsave(ctx context.Context, thingID string) error {
	return c.simpleAction(ctx, "Unsave", "api/unsave", thingID)
}

// Hide hides a thing from the logged-in user's listings.
func (c *Client) Hide(ctx context.Context, thingID string) error {
	return c.simpleAction(ctx, "Hide", "api/hide", thingID)
}

// Unhide reverses a previous Hide.
func (c *Client) Unhide(ctx context.Context, thingID string) error {
	return c.simpleAction(ctx, "Unhide", "api/unhide", thingID)
}

// Comment posts a reply to a thing (a link or another comment). parentID is
// the fullname of the parent, e.g. "t3_abc123".
func (c *Client) Comment(ctx context.Context, parentID, text string) error {
	form := url.Values{}
	form.Set("thing_id", parentID)
	form.Set("text", text)
	return c.action(ctx, "Comment", "api/comment", form)
}

func (c *Client) simpleAction(ctx context.Context, operation, path, thingID string) error {
	form := url.Values{}
	form.Set("id", thingID)
	return c.action(ctx, operation, path, form)
}

// action dispatches one authenticated POST carrying the current anti-forgery
// token. It fails fast, before any network call, when no session is present.
// An empty decoded response body means success; any non-empty body is an
// error or informational payload and is surfaced as an *errors.APIError.
func (c *Client) action(ctx context.Context, operation, path string, form url.Values) error {
	if !c.IsLoggedIn() {
		return &pkgerrs.StateError{Operation: operation, Message: "login required"}
	}

	form.Set("uh", c.session.Modhash())

	raw, err := c.dispatcher.PostForm(ctx, path, form)
	if err != nil {
		return err
	}

	if !internal.IsEmptyPayload(raw) {
		return &pkgerrs.APIError{StatusCode: http.StatusOK, Message: string(raw)}
	}
	return nil
}
