package internal

import (
	"fmt"
	"strings"

	pkgerrs "github.com/snooweb/go-reddit-classic/pkg/errors"
)

const (
	// Subreddit name constraints
	minSubredditLength = 3
	maxSubredditLength = 21

	// Username constraints
	maxUsernameLength = 20

	// User agent constraints
	maxUserAgentLength = 256
)

// Validator checks the parameters that become URL path segments or headers.
// Thing IDs and vote directions are deliberately not validated: both are
// opaque to the client and forwarded to the API unchanged.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSubredditName checks a subreddit name against the site's naming
// rules before it is interpolated into a request path.
func (v *Validator) ValidateSubredditName(name string) error {
	if name == "" {
		return &pkgerrs.ConfigError{Field: "subreddit", Message: "subreddit name cannot be empty"}
	}
	if len(name) < minSubredditLength {
		return &pkgerrs.ConfigError{Field: "subreddit", Message: fmt.Sprintf("subreddit name must be at least %d characters", minSubredditLength)}
	}
	if len(name) > maxSubredditLength {
		return &pkgerrs.ConfigError{Field: "subreddit", Message: fmt.Sprintf("subreddit name cannot exceed %d characters", maxSubredditLength)}
	}
	for i, ch := range name {
		if !isWordChar(ch) {
			return &pkgerrs.ConfigError{Field: "subreddit", Message: fmt.Sprintf("subreddit name contains invalid character %q at position %d", ch, i)}
		}
	}
	return nil
}

// ValidateUsername checks a username before it is interpolated into a
// request path.
func (v *Validator) ValidateUsername(name string) error {
	if name == "" {
		return &pkgerrs.ConfigError{Field: "username", Message: "username cannot be empty"}
	}
	if len(name) > maxUsernameLength {
		return &pkgerrs.ConfigError{Field: "username", Message: fmt.Sprintf("username cannot exceed %d characters", maxUsernameLength)}
	}
	for i, ch := range name {
		if !isWordChar(ch) && ch != '-' {
			return &pkgerrs.ConfigError{Field: "username", Message: fmt.Sprintf("username contains invalid character %q at position %d", ch, i)}
		}
	}
	return nil
}

// ValidateUserAgent validates the User-Agent string to prevent header
// injection attacks.
func (v *Validator) ValidateUserAgent(ua string) error {
	if len(ua) == 0 {
		return &pkgerrs.ConfigError{Field: "UserAgent", Message: "user agent cannot be empty"}
	}
	if strings.ContainsAny(ua, "\r\n") {
		return &pkgerrs.ConfigError{Field: "UserAgent", Message: "user agent cannot contain newline characters"}
	}
	if len(ua) > maxUserAgentLength {
		return &pkgerrs.ConfigError{Field: "UserAgent", Message: fmt.Sprintf("user agent too long (max %d characters)", maxUserAgentLength)}
	}
	return nil
}

func isWordChar(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '_'
}
