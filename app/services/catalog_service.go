package services

import (
	"errors"
	"fmt"

	"postfeed/app/models"
	"postfeed/app/repositories"
)

// CatalogService handles the read side of the posts API and seeding.
type CatalogService struct {
	postRepo    repositories.PostRepository
	authorRepo  repositories.AuthorRepository
	commentRepo repositories.CommentRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(postRepo repositories.PostRepository, authorRepo repositories.AuthorRepository, commentRepo repositories.CommentRepository) *CatalogService {
	return &CatalogService{
		postRepo:    postRepo,
		authorRepo:  authorRepo,
		commentRepo: commentRepo,
	}
}

// ListPosts returns all posts ordered by ID.
func (s *CatalogService) ListPosts() ([]models.Post, error) {
	posts, err := s.postRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		out = append(out, *p)
	}
	return out, nil
}

// GetAuthor returns an author by ID.
func (s *CatalogService) GetAuthor(id int) (*models.Author, error) {
	return s.authorRepo.GetByID(id)
}

// ListComments returns the comments of a post ordered by ID. It fails with
// repositories.ErrNotFound if the post does not exist.
func (s *CatalogService) ListComments(postID int) ([]models.Comment, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	out := make([]models.Comment, 0, len(comments))
	for _, c := range comments {
		out = append(out, *c)
	}
	return out, nil
}

// Dataset is a batch of records to seed the catalog with.
type Dataset struct {
	Authors []models.Author
	Posts   []SeedPost
}

// SeedPost is a post together with its comments, in display order.
type SeedPost struct {
	Post     models.Post
	Comments []models.Comment
}

// SeedStats counts the records written by Seed.
type SeedStats struct {
	Authors  int
	Posts    int
	Comments int
}

// Seed validates and stores a dataset. Authors are written first so posts
// may reference authors from the same dataset or already stored ones.
// Seeding stops at the first invalid record; records before it stay
// stored.
func (s *CatalogService) Seed(data Dataset) (SeedStats, error) {
	var stats SeedStats

	for i := range data.Authors {
		author := data.Authors[i]
		if err := author.Validate(); err != nil {
			return stats, fmt.Errorf("invalid author: %w", err)
		}
		if err := s.authorRepo.Create(&author); err != nil {
			return stats, fmt.Errorf("failed to create author %d: %w", author.ID, err)
		}
		stats.Authors++
	}

	for i := range data.Posts {
		post := data.Posts[i].Post
		if err := post.Validate(); err != nil {
			return stats, fmt.Errorf("invalid post: %w", err)
		}
		if _, err := s.authorRepo.GetByID(post.AuthorID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return stats, fmt.Errorf("post %d: unknown author %d", post.ID, post.AuthorID)
			}
			return stats, err
		}
		if err := s.postRepo.Create(&post); err != nil {
			return stats, fmt.Errorf("failed to create post %d: %w", post.ID, err)
		}
		stats.Posts++

		for j := range data.Posts[i].Comments {
			comment := data.Posts[i].Comments[j]
			if err := comment.SetPost(&post); err != nil {
				return stats, err
			}
			if err := comment.Validate(); err != nil {
				return stats, fmt.Errorf("invalid comment: %w", err)
			}
			if err := s.commentRepo.Create(&comment); err != nil {
				return stats, fmt.Errorf("failed to create comment on post %d: %w", post.ID, err)
			}
			stats.Comments++
		}
	}

	return stats, nil
}
