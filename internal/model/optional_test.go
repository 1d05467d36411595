package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalID(t *testing.T) {
	type body struct {
		AlbumID OptionalID `json:"albumId"`
	}

	var absent body
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	assert.False(t, absent.AlbumID.Set)

	var null body
	require.NoError(t, json.Unmarshal([]byte(`{"albumId":null}`), &null))
	assert.True(t, null.AlbumID.Set)
	assert.Nil(t, null.AlbumID.ID)

	var set body
	require.NoError(t, json.Unmarshal([]byte(`{"albumId":7}`), &set))
	assert.True(t, set.AlbumID.Set)
	require.NotNil(t, set.AlbumID.ID)
	assert.Equal(t, uint(7), *set.AlbumID.ID)

	var bad body
	assert.Error(t, json.Unmarshal([]byte(`{"albumId":"x"}`), &bad))
}

func TestOptionalTime(t *testing.T) {
	type body struct {
		EndDate OptionalTime `json:"endDate"`
	}

	var absent body
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	assert.False(t, absent.EndDate.Set)

	var null body
	require.NoError(t, json.Unmarshal([]byte(`{"endDate":null}`), &null))
	assert.True(t, null.EndDate.Set)
	assert.Nil(t, null.EndDate.Time)
	assert.Nil(t, null.EndDate.Column())

	var set body
	require.NoError(t, json.Unmarshal([]byte(`{"endDate":"2026-01-02T03:04:05Z"}`), &set))
	require.NotNil(t, set.EndDate.Time)
	assert.Equal(t, 2026, set.EndDate.Time.Year())
	assert.Equal(t, *set.EndDate.Time, set.EndDate.Column())

	var bad body
	assert.Error(t, json.Unmarshal([]byte(`{"endDate":"soon"}`), &bad))
}

func TestUserCanModify(t *testing.T) {
	owner := &User{ID: 1, Role: RoleUser}
	other := &User{ID: 2, Role: RoleUser}
	admin := &User{ID: 3, Role: RoleAdmin}

	otherAdmin := &User{ID: 4, Role: RoleAdmin}

	assert.True(t, owner.CanModify(owner))
	assert.False(t, other.CanModify(owner))
	assert.True(t, admin.CanModify(owner))
	assert.True(t, admin.CanModify(admin))
	assert.False(t, admin.CanModify(otherAdmin))
	assert.True(t, admin.CanModify(nil))
	assert.False(t, other.CanModify(nil))
	assert.False(t, (*User)(nil).CanModify(owner))
}

func TestUserCanView(t *testing.T) {
	owner := &User{ID: 1, Role: RoleUser}
	other := &User{ID: 2, Role: RoleUser}
	admin := &User{ID: 3, Role: RoleAdmin}

	assert.True(t, owner.CanView(1))
	assert.False(t, other.CanView(1))
	assert.True(t, admin.CanView(1))
	assert.False(t, (*User)(nil).CanView(1))
}
