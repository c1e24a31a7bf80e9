package models

// NewEnrichedPost joins a post with its author and comments. The comments
// slice is copied so the record does not alias the caller's buffer.
func NewEnrichedPost(post Post, author Author, comments []Comment) EnrichedPost {
	cs := make([]Comment, len(comments))
	copy(cs, comments)
	return EnrichedPost{
		Post:     post,
		Author:   author,
		Comments: cs,
	}
}

// HasComments reports whether the post has any comments.
func (e EnrichedPost) HasComments() bool {
	return len(e.Comments) > 0
}
