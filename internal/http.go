package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	pkgerrs "github.com/snooweb/go-reddit-classic/pkg/errors"
)

// Client is the request dispatcher. It builds GET and form-encoded POST
// requests against a fixed base URL, injects the session cookie when one is
// present, decodes the JSON body, and opportunistically harvests the
// anti-forgery token from successful responses.
type Client struct {
	client    *http.Client
	BaseURL   *url.URL
	UserAgent string
	session   *Session
	logger    *slog.Logger
}

// NewClient returns a new dispatcher bound to the given session.
// If a nil httpClient is provided, http.DefaultClient will be used.
func NewClient(httpClient *http.Client, session *Session, baseURL, userAgent string, logger *slog.Logger) (*Client, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if session == nil {
		session = NewSession()
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, &pkgerrs.ConfigError{Field: "BaseURL", Message: err.Error()}
	}
	if !strings.HasSuffix(parsedURL.Path, "/") {
		parsedURL.Path += "/"
	}

	return &Client{
		client:    httpClient,
		BaseURL:   parsedURL,
		UserAgent: userAgent,
		session:   session,
		logger:    logger,
	}, nil
}

// Session exposes the session state this dispatcher mutates.
func (c *Client) Session() *Session {
	return c.session
}

// Get issues one GET to the path (relative to the base URL) and returns the
// decoded JSON payload.
func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// PostForm issues one POST with the fields URL-encoded as the request body
// and returns the decoded JSON payload.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values) (json.RawMessage, error) {
	req, err := c.newRequest(ctx, http.MethodPost, path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	u, err := c.BaseURL.Parse(path)
	if err != nil {
		return nil, &pkgerrs.RequestError{URL: path, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, &pkgerrs.RequestError{URL: u.String(), Err: err}
	}

	req.Header.Set("User-Agent", c.UserAgent)
	if c.session.HasCookie() {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: c.session.Cookie()})
	}

	return req, nil
}

// do sends the request and decodes the response. Transport failures surface
// as RequestError, non-2xx statuses as APIError, and malformed JSON as
// ParseError; "nothing found" is left to the caller to decide from the
// decoded payload.
func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	if c.logger != nil {
		c.logger.Debug("dispatching request", "method", req.Method, "url", req.URL.String())
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &pkgerrs.RequestError{URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &pkgerrs.RequestError{URL: req.URL.String(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &pkgerrs.APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	payload := bytes.TrimSpace(body)
	if len(payload) > 0 && !json.Valid(payload) {
		return nil, &pkgerrs.ParseError{Message: "response body is not valid JSON"}
	}

	if modhash := extractModhash(payload); modhash != "" {
		c.session.SetModhash(modhash)
		if c.logger != nil {
			c.logger.Debug("modhash rotated", "url", req.URL.String())
		}
	}

	return payload, nil
}

// extractModhash pulls data.modhash out of the two known response shapes: an
// object, or an array whose first element carries the token.
func extractModhash(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	type envelope struct {
		Data struct {
			Modhash string `json:"modhash"`
		} `json:"data"`
	}

	switch raw[0] {
	case '{':
		var env envelope
		if err := json.Unmarshal(raw, &env); err == nil {
			return env.Data.Modhash
		}
	case '[':
		var envs []envelope
		if err := json.Unmarshal(raw, &envs); err == nil && len(envs) > 0 {
			return envs[0].Data.Modhash
		}
	}

	return ""
}

// IsEmptyPayload reports whether a decoded response body carries no content:
// the classic API answers successful state-mutating actions with an empty
// object, and anything else is an error or informational payload.
func IsEmptyPayload(raw json.RawMessage) bool {
	switch strings.TrimSpace(string(raw)) {
	case "", "{}", "[]", "null", `""`:
		return true
	}
	return false
}
