package models

import (
	"errors"
	"fmt"
)

// Check validates a decoded post payload.
func (p Post) Check() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("post %d: %w", p.ID, err)
	}
	return nil
}

// Validate checks if the post can be stored. A zero ID is allowed and
// means the store assigns one.
func (p *Post) Validate() error {
	if p == nil {
		return errors.New("post cannot be nil")
	}
	if err := p.Check(); err != nil {
		return err
	}
	if err := validate.Var(p.AuthorID, "gt=0"); err != nil {
		return fmt.Errorf("post %d: author id: %w", p.ID, err)
	}
	if err := validate.Var(p.Content, "required"); err != nil {
		return fmt.Errorf("post %d: content: %w", p.ID, err)
	}
	return nil
}
