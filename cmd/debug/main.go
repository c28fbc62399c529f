// Command debug fetches a single link together with its comment thread and
// dumps the typed entities for inspection.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/kr/pretty"

	reddit "github.com/snooweb/go-reddit-classic"
	"github.com/snooweb/go-reddit-classic/pkg/types"
)

func main() {
	linkID := flag.String("link", "", "link ID to fetch (without the t3_ prefix)")
	withComments := flag.Bool("comments", true, "also fetch the comment thread")
	flag.Parse()

	if *linkID == "" {
		log.Fatal("usage: debug -link <id> [-comments=false]")
	}

	ctx := context.Background()
	client, err := reddit.NewClient(ctx, &reddit.Config{
		UserAgent: "go-reddit-classic-debug/1.0",
	})
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	link, err := client.GetLink(ctx, *linkID, *withComments)
	if err != nil {
		log.Fatalf("Failed to fetch link: %v", err)
	}
	if link == nil {
		log.Fatalf("No link found for ID %q", *linkID)
	}

	pretty.Println(link)

	if *withComments {
		comments, err := link.Comments(ctx)
		if err != nil {
			log.Fatalf("Failed to load comments: %v", err)
		}

		tree := reddit.NewCommentTree(comments)
		fmt.Printf("\n%d comments (depth %d):\n", tree.Count(), tree.GetDepth())
		tree.Walk(func(c *types.Comment) {
			body := c.Body
			if len(body) > 60 {
				body = body[:60] + "..."
			}
			fmt.Printf("  %s: %s\n", c.Author, body)
		})
	}
}
