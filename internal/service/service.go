package service

import (
	"context"
	"fmt"
	"strings"

	apperrors "dcover/internal/errors"
	"dcover/internal/model"
	"dcover/internal/repository"
)

// ownership guards mutations of user-owned rows.
type ownership struct {
	users repository.UserRepository
}

// check returns a 403 with msg unless actor may modify rows of ownerID.
// The owner is loaded only when an admin acts on someone else's row.
func (o ownership) check(ctx context.Context, actor *model.User, ownerID uint, msg string) error {
	if actor == nil {
		return apperrors.Unauthorized("Authentication required")
	}
	if actor.ID == ownerID {
		return nil
	}
	if !actor.IsAdmin() {
		return apperrors.Forbidden("%s", msg)
	}
	owner, err := o.users.FindByID(ctx, ownerID)
	if err != nil && !repository.IsNotFound(err) {
		return fmt.Errorf("load owner: %w", err)
	}
	if err != nil {
		owner = nil
	}
	if !actor.CanModify(owner) {
		return apperrors.Forbidden("%s", msg)
	}
	return nil
}

// notFoundOr converts a missing-row error into a 404 with msg and passes
// anything else through.
func notFoundOr(err error, msg string) error {
	if repository.IsNotFound(err) {
		return apperrors.NotFound("%s", msg)
	}
	return err
}

// trimmed returns a trimmed copy of s, keeping nil as nil.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// nullable maps "" to nil so optional text columns store NULL.
func nullable(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
