// Package reddit provides a Go client for the classic (cookie and modhash)
// Reddit HTTP API.
//
// # Overview
//
// This package enables Go applications to interact with the pre-OAuth Reddit
// API through a small, type-safe interface. It authenticates a user with
// username and password, tracks the session cookie and the rotating
// anti-forgery token (modhash), and maps JSON responses onto typed entities
// for links, comments, accounts and subreddits.
//
// # Features
//
//   - Classic cookie/modhash session handling with automatic token rotation
//   - Type-safe entity fetches with proper error handling
//   - Authenticated actions: vote, save, unsave, hide, unhide, comment
//   - Lazy one-shot comment loading on Link instances
//   - Comment tree utilities for flattening, filtering and searching
//   - Structured logging support via Go's slog package
//
// # Quick Start
//
// An anonymous client needs no configuration beyond defaults:
//
//	client, err := reddit.NewClient(ctx, &reddit.Config{})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	links, err := client.GetLinksBySubreddit(ctx, "golang")
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Supplying credentials logs in during construction; construction fails with
// an *errors.AuthError when the credentials are rejected:
//
//	client, err := reddit.NewClient(ctx, &reddit.Config{
//		Username: "your-username",
//		Password: "your-password",
//	})
//
// # Session Semantics
//
// The session cookie is set once on a successful login and never refreshed.
// The modhash is harvested from every response that carries one and attached
// as the "uh" form field to every authenticated POST. IsLoggedIn is a local
// check only: a session revoked server-side is indistinguishable from a valid
// one until a request actually fails.
//
// # Error Handling
//
// Authenticated actions fail fast with an *errors.StateError before any
// network call when no session is present. Transport failures surface as
// *errors.RequestError, malformed JSON as *errors.ParseError, and API
// rejections as *errors.APIError. A well-formed response that simply lacks
// the requested object yields a nil result with a nil error.
//
// # Requests and Concurrency
//
// Every method performs at most one synchronous network round trip. The
// client issues no concurrent requests of its own; its session state is safe
// to share across goroutines, but concurrent state-mutating actions may race
// to rotate the modhash.
package reddit
