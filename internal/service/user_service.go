package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	apperrors "dcover/internal/errors"
	"dcover/internal/model"
	"dcover/internal/repository"
)

const (
	suggestionLimit = 10
	searchLimit     = 20
	minSearchLength = 2
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._]{3,30}$`)

// ProfileUpdate carries the editable profile fields. Nil pointers are left
// unchanged.
type ProfileUpdate struct {
	Name     string
	Bio      *string
	PhotoURL *string
	Username *string
}

// UserService handles profiles, discovery and moderation.
type UserService interface {
	Profile(ctx context.Context, id uint) (*model.Profile, error)
	ProfileByUsername(ctx context.Context, username string) (*model.Profile, error)
	UpdateProfile(ctx context.Context, user *model.User, in ProfileUpdate) (*model.User, error)
	Suggestions(ctx context.Context, user *model.User) ([]model.UserSummary, error)
	Search(ctx context.Context, query string) ([]model.UserSummary, error)
	List(ctx context.Context) ([]model.AdminUserView, error)
	SetSuspended(ctx context.Context, actor *model.User, targetID uint, suspended bool) (*model.User, error)
	SetRole(ctx context.Context, actor *model.User, targetID uint, role string) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Profile(ctx context.Context, id uint) (*model.Profile, error) {
	profile, err := s.userRepo.Profile(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "User not found")
	}
	return profile, nil
}

func (s *userService) ProfileByUsername(ctx context.Context, username string) (*model.Profile, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, notFoundOr(err, "User not found")
	}
	return s.Profile(ctx, user.ID)
}

func (s *userService) UpdateProfile(ctx context.Context, user *model.User, in ProfileUpdate) (*model.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperrors.Validation("Name is required")
	}
	fields := map[string]any{"name": name}

	if bio := trimmed(in.Bio); bio != nil {
		fields["bio"] = nullable(bio)
	}
	if photo := trimmed(in.PhotoURL); photo != nil {
		fields["photo_url"] = nullable(photo)
	}
	if username := trimmed(in.Username); username != nil {
		if !usernamePattern.MatchString(*username) {
			return nil, apperrors.Validation("Username must be 3-30 letters, digits, dots or underscores")
		}
		existing, err := s.userRepo.FindByUsername(ctx, *username)
		if err != nil && !repository.IsNotFound(err) {
			return nil, fmt.Errorf("check username: %w", err)
		}
		if existing != nil && existing.ID != user.ID {
			return nil, apperrors.Conflict("Username already taken")
		}
		fields["username"] = *username
	}

	if err := s.userRepo.Update(ctx, user.ID, fields); err != nil {
		if repository.IsDuplicate(err) {
			return nil, apperrors.Conflict("Username already taken")
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return s.userRepo.FindByID(ctx, user.ID)
}

func (s *userService) Suggestions(ctx context.Context, user *model.User) ([]model.UserSummary, error) {
	return s.userRepo.Suggestions(ctx, user.ID, suggestionLimit)
}

// Search returns no results for queries shorter than two characters.
func (s *userService) Search(ctx context.Context, query string) ([]model.UserSummary, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < minSearchLength {
		return []model.UserSummary{}, nil
	}
	return s.userRepo.Search(ctx, query, searchLimit)
}

func (s *userService) List(ctx context.Context) ([]model.AdminUserView, error) {
	return s.userRepo.ListWithSongCount(ctx)
}

// SetSuspended suspends or reinstates a user. Admins, including the actor,
// cannot be suspended.
func (s *userService) SetSuspended(ctx context.Context, actor *model.User, targetID uint, suspended bool) (*model.User, error) {
	target, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, notFoundOr(err, "User not found")
	}
	if target.IsAdmin() {
		return nil, apperrors.Forbidden("Cannot suspend an admin")
	}

	if err := s.userRepo.Update(ctx, target.ID, map[string]any{"suspended": suspended}); err != nil {
		return nil, fmt.Errorf("update suspension: %w", err)
	}
	target.Suspended = suspended
	return target, nil
}

// SetRole promotes or demotes a user. Admins cannot change their own role or
// demote another admin.
func (s *userService) SetRole(ctx context.Context, actor *model.User, targetID uint, role string) (*model.User, error) {
	if role != model.RoleUser && role != model.RoleAdmin {
		return nil, apperrors.Validation("Role must be 'user' or 'admin'")
	}
	if actor.ID == targetID {
		return nil, apperrors.Validation("Cannot change your own role")
	}

	target, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, notFoundOr(err, "User not found")
	}
	if target.IsAdmin() && role != model.RoleAdmin {
		return nil, apperrors.Forbidden("Cannot demote another admin")
	}

	if err := s.userRepo.Update(ctx, target.ID, map[string]any{"role": role}); err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	target.Role = role
	return target, nil
}
