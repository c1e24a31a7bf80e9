package models

import (
	"errors"
	"fmt"
)

// Check validates a decoded author payload.
func (a Author) Check() error {
	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("author %d: %w", a.ID, err)
	}
	return nil
}

// Validate checks if the author can be stored.
func (a *Author) Validate() error {
	if a == nil {
		return errors.New("author cannot be nil")
	}
	if err := a.Check(); err != nil {
		return err
	}
	if err := validate.Var(a.Name, "required,max=100"); err != nil {
		return fmt.Errorf("author %d: name: %w", a.ID, err)
	}
	return nil
}
