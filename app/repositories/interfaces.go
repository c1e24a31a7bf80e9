package repositories

import "postfeed/app/models"

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id int) (*models.Post, error)
	List() ([]*models.Post, error)
}

// AuthorRepository defines the interface for author data access
type AuthorRepository interface {
	Create(author *models.Author) error
	GetByID(id int) (*models.Author, error)
	List() ([]*models.Author, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(comment *models.Comment) error
	ListByPost(postID int) ([]*models.Comment, error)
}

var (
	_ PostRepository    = (*BadgerPostRepository)(nil)
	_ AuthorRepository  = (*BadgerAuthorRepository)(nil)
	_ CommentRepository = (*BadgerCommentRepository)(nil)
)
