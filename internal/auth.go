package internal

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	pkgerrs "github.com/snooweb/go-reddit-classic/pkg/errors"
)

const defaultLoginPath = "api/login"

// sessionCookiePattern matches the session cookie assignment inside a
// Set-Cookie header, e.g. "reddit_session=ABC123; Path=/".
var sessionCookiePattern = regexp.MustCompile(SessionCookieName + `=([^;]+);`)

// Authenticator performs the classic username/password login and extracts the
// session cookie from the response headers.
type Authenticator struct {
	client    *http.Client
	userAgent string
	loginURL  *url.URL
}

// NewAuthenticator creates a new authenticator against the given base URL.
// If a nil httpClient is provided, http.DefaultClient will be used.
func NewAuthenticator(httpClient *http.Client, baseURL, userAgent string) (*Authenticator, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, &pkgerrs.AuthError{Err: fmt.Errorf("failed to parse base URL: %w", err)}
	}
	if !strings.HasSuffix(parsedURL.Path, "/") {
		parsedURL.Path += "/"
	}

	loginURL, err := parsedURL.Parse(defaultLoginPath)
	if err != nil {
		return nil, &pkgerrs.AuthError{Err: fmt.Errorf("failed to resolve login endpoint: %w", err)}
	}

	return &Authenticator{
		client:    httpClient,
		userAgent: userAgent,
		loginURL:  loginURL,
	}, nil
}

// Login issues one POST to the login endpoint with the credentials as form
// fields and scans the Set-Cookie headers for a session cookie assignment.
// It returns the cookie value on a match, or "" when the response carried no
// recognizable session cookie (wrong credentials). Only transport failures
// produce an error.
func (a *Authenticator) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("user", username)
	form.Set("passwd", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.loginURL.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return "", &pkgerrs.AuthError{Err: fmt.Errorf("failed to create login request: %w", err)}
	}

	req.Header.Set("User-Agent", a.userAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", &pkgerrs.AuthError{Err: fmt.Errorf("failed to execute login request: %w", err)}
	}
	defer resp.Body.Close()

	for _, header := range resp.Header.Values("Set-Cookie") {
		if match := sessionCookiePattern.FindStringSubmatch(header); match != nil {
			return match[1], nil
		}
	}

	return "", nil
}
