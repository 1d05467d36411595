package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"dcover/internal/auth"
	apperrors "dcover/internal/errors"
	"dcover/internal/model"
)

func newAuthService(users *MockUserRepository, store *MockTokenStore, verifier auth.IdentityVerifier, admins ...string) (AuthService, *auth.JWTService) {
	jwtService := auth.NewJWTService("test-secret")
	isAdmin := func(email string) bool {
		for _, a := range admins {
			if a == email {
				return true
			}
		}
		return false
	}
	return NewAuthService(users, jwtService, store, verifier, isAdmin), jwtService
}

func TestAuthService_SignInWithGoogle(t *testing.T) {
	ctx := context.Background()
	photo := "https://img.example.com/old.png"

	tests := []struct {
		name      string
		input     GoogleSignIn
		admins    []string
		setupMock func(*MockUserRepository)
		wantKind  apperrors.Kind
		wantErr   bool
		check     func(t *testing.T, res *AuthResult)
	}{
		{
			name:     "missing google id",
			input:    GoogleSignIn{Email: "ana@example.com"},
			wantErr:  true,
			wantKind: apperrors.KindValidation,
		},
		{
			name:  "existing user by google id",
			input: GoogleSignIn{GoogleID: "g1", Email: "ana@example.com", PhotoURL: photo},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByGoogleID", ctx, "g1").Return(&model.User{ID: 1, GoogleID: "g1", Email: "ana@example.com", PhotoURL: &photo, Role: model.RoleUser}, nil)
			},
			check: func(t *testing.T, res *AuthResult) {
				assert.Equal(t, uint(1), res.User.ID)
			},
		},
		{
			name:  "photo change is persisted",
			input: GoogleSignIn{GoogleID: "g1", Email: "ana@example.com", PhotoURL: "https://img.example.com/new.png"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByGoogleID", ctx, "g1").Return(&model.User{ID: 1, GoogleID: "g1", Email: "ana@example.com", PhotoURL: &photo}, nil)
				m.On("Update", ctx, uint(1), map[string]any{"photo_url": "https://img.example.com/new.png"}).Return(nil)
			},
			check: func(t *testing.T, res *AuthResult) {
				assert.Equal(t, "https://img.example.com/new.png", *res.User.PhotoURL)
			},
		},
		{
			name:  "email fallback links google id",
			input: GoogleSignIn{GoogleID: "g2", Email: "Ana@Example.com "},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByGoogleID", ctx, "g2").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByEmail", ctx, "ana@example.com").Return(&model.User{ID: 1, GoogleID: "legacy", Email: "ana@example.com"}, nil)
				m.On("Update", ctx, uint(1), map[string]any{"google_id": "g2"}).Return(nil)
			},
			check: func(t *testing.T, res *AuthResult) {
				assert.Equal(t, "g2", res.User.GoogleID)
			},
		},
		{
			name:   "new admin from allow-list",
			input:  GoogleSignIn{GoogleID: "g3", Email: "boss@example.com", Name: "Boss"},
			admins: []string{"boss@example.com"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByGoogleID", ctx, "g3").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByEmail", ctx, "boss@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByUsername", ctx, "boss").Return(&model.User{ID: 9}, nil)
				m.On("FindByUsername", ctx, "boss2").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", ctx, mock.AnythingOfType("*model.User")).Run(func(args mock.Arguments) {
					args.Get(1).(*model.User).ID = 10
				}).Return(nil)
			},
			check: func(t *testing.T, res *AuthResult) {
				assert.Equal(t, model.RoleAdmin, res.User.Role)
				assert.Equal(t, "boss2", *res.User.Username)
				assert.Equal(t, "Boss", res.User.Name)
			},
		},
		{
			name:  "new regular user",
			input: GoogleSignIn{GoogleID: "g4", Email: "x@example.com"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByGoogleID", ctx, "g4").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByEmail", ctx, "x@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByUsername", ctx, "userx").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", ctx, mock.AnythingOfType("*model.User")).Run(func(args mock.Arguments) {
					args.Get(1).(*model.User).ID = 11
				}).Return(nil)
			},
			check: func(t *testing.T, res *AuthResult) {
				assert.Equal(t, model.RoleUser, res.User.Role)
				assert.Equal(t, "userx", *res.User.Username)
				assert.Equal(t, "x", res.User.Name)
			},
		},
		{
			name:  "suspended user gets no token",
			input: GoogleSignIn{GoogleID: "g5", Email: "bad@example.com"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByGoogleID", ctx, "g5").Return(&model.User{ID: 5, Email: "bad@example.com", Suspended: true}, nil)
			},
			wantErr:  true,
			wantKind: apperrors.KindForbidden,
		},
		{
			name:  "database failure",
			input: GoogleSignIn{GoogleID: "g6", Email: "a@example.com"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByGoogleID", ctx, "g6").Return(nil, errors.New("connection reset"))
			},
			wantErr:  true,
			wantKind: apperrors.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			if tt.setupMock != nil {
				tt.setupMock(users)
			}
			svc, jwtService := newAuthService(users, new(MockTokenStore), nil, tt.admins...)

			res, err := svc.SignInWithGoogle(ctx, tt.input)
			if tt.wantErr {
				require.Error(t, err)
				if tt.wantKind != apperrors.KindInternal {
					assert.True(t, apperrors.IsKind(err, tt.wantKind), "got %v", err)
				}
				assert.Nil(t, res)
			} else {
				require.NoError(t, err)
				claims, err := jwtService.ValidateToken(res.Token)
				require.NoError(t, err)
				assert.Equal(t, res.User.ID, claims.UserID)
				if tt.check != nil {
					tt.check(t, res)
				}
			}
			users.AssertExpectations(t)
		})
	}
}

func TestAuthService_VerifierRequired(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	verifier := new(MockIdentityVerifier)
	svc, _ := newAuthService(users, new(MockTokenStore), verifier)

	_, err := svc.SignInWithGoogle(ctx, GoogleSignIn{GoogleID: "g1", Email: "a@example.com"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))

	verifier.On("Verify", ctx, "bad").Return(nil, errors.New("expired"))
	_, err = svc.SignInWithGoogle(ctx, GoogleSignIn{GoogleID: "g1", Email: "a@example.com", IDToken: "bad"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))

	verifier.On("Verify", ctx, "someone-else").Return(&auth.Identity{GoogleID: "g2", Email: "a@example.com"}, nil)
	_, err = svc.SignInWithGoogle(ctx, GoogleSignIn{GoogleID: "g1", Email: "a@example.com", IDToken: "someone-else"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))

	verifier.On("Verify", ctx, "good").Return(&auth.Identity{GoogleID: "g1", Email: "A@example.com"}, nil)
	users.On("FindByGoogleID", ctx, "g1").Return(&model.User{ID: 1, GoogleID: "g1", Email: "a@example.com"}, nil)
	res, err := svc.SignInWithGoogle(ctx, GoogleSignIn{GoogleID: "g1", Email: "a@example.com", IDToken: "good"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	store := new(MockTokenStore)
	svc, jwtService := newAuthService(new(MockUserRepository), store, nil)

	token, err := jwtService.GenerateToken(1, "a@example.com")
	require.NoError(t, err)
	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)

	store.On("Revoke", ctx, claims.ID, mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 0 && ttl <= auth.TokenExpiry
	})).Return(nil)

	require.NoError(t, svc.Logout(ctx, claims))
	store.AssertExpectations(t)

	assert.True(t, apperrors.IsKind(svc.Logout(ctx, &auth.Claims{}), apperrors.KindUnauthorized))
}
