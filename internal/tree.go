package internal

import "github.com/snooweb/go-reddit-classic/pkg/types"

// CommentTree provides utility methods for working with a comment sequence
// and the reply trees hanging off it.
type CommentTree struct {
	Comments []*types.Comment
}

// NewCommentTree creates a new CommentTree from a slice of comments.
func NewCommentTree(comments []*types.Comment) *CommentTree {
	return &CommentTree{Comments: comments}
}

// Flatten returns all comments, including nested replies, as a flat slice in
// depth-first order.
func (ct *CommentTree) Flatten() []*types.Comment {
	var result []*types.Comment
	walk(ct.Comments, func(c *types.Comment) {
		result = append(result, c)
	})
	return result
}

// Filter returns all comments matching the given predicate.
func (ct *CommentTree) Filter(match func(*types.Comment) bool) []*types.Comment {
	var result []*types.Comment
	walk(ct.Comments, func(c *types.Comment) {
		if match(c) {
			result = append(result, c)
		}
	})
	return result
}

// Find returns the first comment matching the given predicate, or nil.
func (ct *CommentTree) Find(match func(*types.Comment) bool) *types.Comment {
	return find(ct.Comments, match)
}

// GetByID returns the comment with the given ID, or nil.
func (ct *CommentTree) GetByID(id string) *types.Comment {
	return ct.Find(func(c *types.Comment) bool {
		return c.ID == id
	})
}

// GetByAuthor returns all comments written by the given author.
func (ct *CommentTree) GetByAuthor(author string) []*types.Comment {
	return ct.Filter(func(c *types.Comment) bool {
		return c.Author == author
	})
}

// GetTopLevel returns only the top-level comments.
func (ct *CommentTree) GetTopLevel() []*types.Comment {
	return ct.Comments
}

// GetDepth returns the maximum reply depth of the tree. A sequence with no
// replies has depth zero.
func (ct *CommentTree) GetDepth() int {
	return depth(ct.Comments, 0)
}

// Count returns the total number of comments, including nested replies.
func (ct *CommentTree) Count() int {
	count := 0
	walk(ct.Comments, func(*types.Comment) {
		count++
	})
	return count
}

// Walk applies fn to every comment in depth-first order.
func (ct *CommentTree) Walk(fn func(*types.Comment)) {
	walk(ct.Comments, fn)
}

func walk(comments []*types.Comment, fn func(*types.Comment)) {
	for _, comment := range comments {
		if comment == nil {
			continue
		}
		fn(comment)
		walk(comment.Replies, fn)
	}
}

func find(comments []*types.Comment, match func(*types.Comment) bool) *types.Comment {
	for _, comment := range comments {
		if comment == nil {
			continue
		}
		if match(comment) {
			return comment
		}
		if found := find(comment.Replies, match); found != nil {
			return found
		}
	}
	return nil
}

func depth(comments []*types.Comment, current int) int {
	max := current
	for _, comment := range comments {
		if comment == nil || len(comment.Replies) == 0 {
			continue
		}
		if d := depth(comment.Replies, current+1); d > max {
			max = d
		}
	}
	return max
}
