package reddit

import (
	"github.com/snooweb/go-reddit-classic/internal"
	"github.com/snooweb/go-reddit-classic/pkg/types"
)

// CommentTree provides utility methods for working with comment sequences.
type CommentTree interface {
	Flatten() []*types.Comment
	Filter(func(*types.Comment) bool) []*types.Comment
	Find(func(*types.Comment) bool) *types.Comment
	GetByID(string) *types.Comment
	GetByAuthor(string) []*types.Comment
	GetTopLevel() []*types.Comment
	GetDepth() int
	Count() int
	Walk(func(*types.Comment))
}

// NewCommentTree creates a new CommentTree from a slice of comments.
func NewCommentTree(comments []*types.Comment) CommentTree {
	return internal.NewCommentTree(comments)
}
