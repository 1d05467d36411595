package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"dcover/internal/auth"
	apperrors "dcover/internal/errors"
	"dcover/internal/model"
	"dcover/internal/repository"
)

const maxUsernameAttempts = 20

var usernameStrip = regexp.MustCompile(`[^a-z0-9._]`)

// GoogleSignIn is the identity asserted by the client after Google sign-in.
type GoogleSignIn struct {
	GoogleID string
	Email    string
	Name     string
	PhotoURL string
	IDToken  string
}

// AuthResult is returned on successful sign-in.
type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// AuthService handles authentication operations.
type AuthService interface {
	SignInWithGoogle(ctx context.Context, in GoogleSignIn) (*AuthResult, error)
	Logout(ctx context.Context, claims *auth.Claims) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	verifier   auth.IdentityVerifier
	isAdmin    func(email string) bool
}

// NewAuthService creates a new authentication service. verifier may be nil,
// in which case the client-asserted identity is trusted. isAdmin decides the
// role of newly created accounts.
func NewAuthService(
	userRepo repository.UserRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	verifier auth.IdentityVerifier,
	isAdmin func(email string) bool,
) AuthService {
	if isAdmin == nil {
		isAdmin = func(string) bool { return false }
	}
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
		verifier:   verifier,
		isAdmin:    isAdmin,
	}
}

// SignInWithGoogle finds or creates the account and issues a token.
func (s *authService) SignInWithGoogle(ctx context.Context, in GoogleSignIn) (*AuthResult, error) {
	in.GoogleID = strings.TrimSpace(in.GoogleID)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	in.PhotoURL = strings.TrimSpace(in.PhotoURL)
	if in.GoogleID == "" || in.Email == "" {
		return nil, apperrors.Validation("googleId and email are required")
	}

	if s.verifier != nil {
		if in.IDToken == "" {
			return nil, apperrors.Unauthorized("idToken is required")
		}
		identity, err := s.verifier.Verify(ctx, in.IDToken)
		if err != nil {
			return nil, apperrors.Unauthorized("Invalid Google ID token")
		}
		if identity.GoogleID != in.GoogleID || !strings.EqualFold(identity.Email, in.Email) {
			return nil, apperrors.Unauthorized("Google ID token does not match account")
		}
	}

	user, err := s.findOrCreate(ctx, in)
	if err != nil {
		return nil, err
	}
	if user.Suspended {
		return nil, apperrors.Forbidden("Account suspended")
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *authService) findOrCreate(ctx context.Context, in GoogleSignIn) (*model.User, error) {
	user, err := s.userRepo.FindByGoogleID(ctx, in.GoogleID)
	if err != nil && !repository.IsNotFound(err) {
		return nil, fmt.Errorf("find user by google id: %w", err)
	}

	if user == nil {
		// accounts created before google ids were stored are linked by email
		user, err = s.userRepo.FindByEmail(ctx, in.Email)
		if err != nil && !repository.IsNotFound(err) {
			return nil, fmt.Errorf("find user by email: %w", err)
		}
		if user != nil {
			if err := s.userRepo.Update(ctx, user.ID, map[string]any{"google_id": in.GoogleID}); err != nil {
				return nil, fmt.Errorf("link google id: %w", err)
			}
			user.GoogleID = in.GoogleID
		}
	}

	if user == nil {
		return s.create(ctx, in)
	}

	if in.PhotoURL != "" && (user.PhotoURL == nil || *user.PhotoURL != in.PhotoURL) {
		if err := s.userRepo.Update(ctx, user.ID, map[string]any{"photo_url": in.PhotoURL}); err != nil {
			return nil, fmt.Errorf("update photo: %w", err)
		}
		photo := in.PhotoURL
		user.PhotoURL = &photo
	}
	return user, nil
}

func (s *authService) create(ctx context.Context, in GoogleSignIn) (*model.User, error) {
	username, err := s.uniqueUsername(ctx, in.Email)
	if err != nil {
		return nil, err
	}

	name := in.Name
	if name == "" {
		name = localPart(in.Email)
	}
	role := model.RoleUser
	if s.isAdmin(in.Email) {
		role = model.RoleAdmin
	}

	user := &model.User{
		GoogleID: in.GoogleID,
		Email:    in.Email,
		Name:     name,
		Username: &username,
		PhotoURL: nullable(&in.PhotoURL),
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsDuplicate(err) {
			// a concurrent sign-in created the same account
			existing, findErr := s.userRepo.FindByGoogleID(ctx, in.GoogleID)
			if findErr == nil {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// uniqueUsername derives a username from the email local part and appends a
// counter until it is free.
func (s *authService) uniqueUsername(ctx context.Context, email string) (string, error) {
	base := usernameStrip.ReplaceAllString(strings.ToLower(localPart(email)), "")
	if len(base) > 24 {
		base = base[:24]
	}
	if len(base) < 3 {
		base = "user" + base
	}

	candidate := base
	for i := 1; i <= maxUsernameAttempts; i++ {
		_, err := s.userRepo.FindByUsername(ctx, candidate)
		if repository.IsNotFound(err) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("check username: %w", err)
		}
		candidate = fmt.Sprintf("%s%d", base, i+1)
	}
	return base + strings.ReplaceAll(uuid.NewString(), "-", "")[:8], nil
}

// Logout revokes the presented token for the rest of its lifetime.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return apperrors.Unauthorized("Invalid token")
	}
	return s.tokenStore.Revoke(ctx, claims.ID, claims.Remaining(time.Now()))
}

func localPart(email string) string {
	if i := strings.IndexByte(email, '@'); i >= 0 {
		return email[:i]
	}
	return email
}
