package models

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Post is a post as served by the API.
type Post struct {
	ID       int    `json:"id" validate:"gte=0"`
	AuthorID int    `json:"authorId" validate:"gte=0"`
	Content  string `json:"content"`
}

// Author is the author of one or more posts.
type Author struct {
	ID   int    `json:"id" validate:"gte=0"`
	Name string `json:"name"`
}

// Comment is a comment on a post. PostID is only set on stored comments.
type Comment struct {
	ID      int    `json:"id" validate:"gte=0"`
	PostID  int    `json:"postId,omitempty" validate:"gte=0"`
	Content string `json:"content"`
}

// EnrichedPost is a post joined with its author and comments.
type EnrichedPost struct {
	Post     Post
	Author   Author
	Comments []Comment
}
