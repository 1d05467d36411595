package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "dcover/internal/errors"
	"dcover/internal/model"
)

func TestUserService_SetSuspended(t *testing.T) {
	ctx := context.Background()
	admin := &model.User{ID: 1, Role: model.RoleAdmin}

	tests := []struct {
		name      string
		targetID  uint
		setupMock func(*MockUserRepository)
		wantKind  apperrors.Kind
		wantErr   bool
	}{
		{
			name:     "suspend user",
			targetID: 2,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", ctx, uint(2)).Return(&model.User{ID: 2, Role: model.RoleUser}, nil)
				m.On("Update", ctx, uint(2), map[string]any{"suspended": true}).Return(nil)
			},
		},
		{
			name:     "another admin",
			targetID: 3,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", ctx, uint(3)).Return(&model.User{ID: 3, Role: model.RoleAdmin}, nil)
			},
			wantErr:  true,
			wantKind: apperrors.KindForbidden,
		},
		{
			name:     "self",
			targetID: 1,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", ctx, uint(1)).Return(admin, nil)
			},
			wantErr:  true,
			wantKind: apperrors.KindForbidden,
		},
		{
			name:     "unknown user",
			targetID: 99,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", ctx, uint(99)).Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr:  true,
			wantKind: apperrors.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			tt.setupMock(users)
			svc := NewUserService(users)

			got, err := svc.SetSuspended(ctx, admin, tt.targetID, true)
			if tt.wantErr {
				assert.True(t, apperrors.IsKind(err, tt.wantKind), "got %v", err)
				users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Suspended)
			users.AssertExpectations(t)
		})
	}
}

func TestUserService_SetRole(t *testing.T) {
	ctx := context.Background()
	admin := &model.User{ID: 1, Role: model.RoleAdmin}

	t.Run("invalid role", func(t *testing.T) {
		_, err := NewUserService(new(MockUserRepository)).SetRole(ctx, admin, 2, "owner")
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})

	t.Run("own role", func(t *testing.T) {
		_, err := NewUserService(new(MockUserRepository)).SetRole(ctx, admin, 1, model.RoleUser)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})

	t.Run("demote other admin", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByID", ctx, uint(3)).Return(&model.User{ID: 3, Role: model.RoleAdmin}, nil)
		_, err := NewUserService(users).SetRole(ctx, admin, 3, model.RoleUser)
		assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
	})

	t.Run("promote", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByID", ctx, uint(2)).Return(&model.User{ID: 2, Role: model.RoleUser}, nil)
		users.On("Update", ctx, uint(2), map[string]any{"role": model.RoleAdmin}).Return(nil)
		got, err := NewUserService(users).SetRole(ctx, admin, 2, model.RoleAdmin)
		require.NoError(t, err)
		assert.True(t, got.IsAdmin())
	})
}

func TestUserService_Search(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	svc := NewUserService(users)

	got, err := svc.Search(ctx, " a ")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	users.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)

	users.On("Search", ctx, "an", uint64(searchLimit)).Return([]model.UserSummary{{ID: 1}}, nil)
	got, err = svc.Search(ctx, "an")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	me := &model.User{ID: 1, Name: "Me"}

	t.Run("name required", func(t *testing.T) {
		_, err := NewUserService(new(MockUserRepository)).UpdateProfile(ctx, me, ProfileUpdate{Name: " "})
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})

	t.Run("username taken", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByUsername", ctx, "taken").Return(&model.User{ID: 2}, nil)
		_, err := NewUserService(users).UpdateProfile(ctx, me, ProfileUpdate{Name: "Me", Username: strPtr("taken")})
		assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	})

	t.Run("clears bio", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("Update", ctx, uint(1), map[string]any{"name": "New", "bio": (*string)(nil)}).Return(nil)
		users.On("FindByID", ctx, uint(1)).Return(&model.User{ID: 1, Name: "New"}, nil)

		got, err := NewUserService(users).UpdateProfile(ctx, me, ProfileUpdate{Name: " New ", Bio: strPtr("  ")})
		require.NoError(t, err)
		assert.Equal(t, "New", got.Name)
		users.AssertExpectations(t)
	})
}
