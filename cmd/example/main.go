package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/kelseyhightower/envconfig"

	reddit "github.com/snooweb/go-reddit-classic"
)

// settings is filled from the environment. Credentials are optional; without
// them the example runs anonymously.
type settings struct {
	Username  string `envconfig:"REDDIT_USERNAME"`
	Password  string `envconfig:"REDDIT_PASSWORD"`
	UserAgent string `envconfig:"REDDIT_USER_AGENT" default:"go-reddit-classic-example/1.0"`
	Subreddit string `envconfig:"REDDIT_SUBREDDIT" default:"golang"`
}

func main() {
	var cfg settings
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to read environment: %v", err)
	}

	// Route structured logs to stdout; adjust the level as needed.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctx := context.Background()
	client, err := reddit.NewClient(ctx, &reddit.Config{
		Username:  cfg.Username,
		Password:  cfg.Password,
		UserAgent: cfg.UserAgent,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	links, err := client.GetLinksBySubreddit(ctx, cfg.Subreddit)
	if err != nil {
		log.Fatalf("Failed to fetch r/%s: %v", cfg.Subreddit, err)
	}

	fmt.Printf("r/%s front page (%d links):\n", cfg.Subreddit, len(links))
	for _, link := range links {
		fmt.Printf("  [%5d] %s (by %s, %d comments)\n", link.Score, link.Title, link.Author, link.NumComments)
	}

	if !client.IsLoggedIn() {
		fmt.Println("\nSet REDDIT_USERNAME and REDDIT_PASSWORD to see your subscriptions.")
		return
	}

	subreddits, err := client.GetMySubreddits(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch subscriptions: %v", err)
	}

	fmt.Printf("\nSubscribed subreddits (%d):\n", len(subreddits))
	for _, subreddit := range subreddits {
		fmt.Printf("  %s — %d subscribers\n", subreddit.DisplayName, subreddit.Subscribers)
	}
}
