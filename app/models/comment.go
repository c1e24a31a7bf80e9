package models

import (
	"errors"
	"fmt"
)

// Check validates a decoded comment payload.
func (c Comment) Check() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("comment %d: %w", c.ID, err)
	}
	return nil
}

// Validate checks if the comment can be stored.
func (c *Comment) Validate() error {
	if c == nil {
		return errors.New("comment cannot be nil")
	}
	if err := c.Check(); err != nil {
		return err
	}
	if err := validate.Var(c.PostID, "gt=0"); err != nil {
		return fmt.Errorf("comment %d: post id: %w", c.ID, err)
	}
	if err := validate.Var(c.Content, "required,max=500"); err != nil {
		return fmt.Errorf("comment %d: content: %w", c.ID, err)
	}
	return nil
}

// SetPost sets the parent post of the comment.
func (c *Comment) SetPost(post *Post) error {
	if post == nil {
		return errors.New("post cannot be nil")
	}
	c.PostID = post.ID
	return nil
}
