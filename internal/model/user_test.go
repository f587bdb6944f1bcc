package model

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "profilehub/internal/errors"
)

func validUser() *User {
	return &User{
		Username:     "alice",
		Email:        "a@x.com",
		City:         "NYC",
		MobileNumber: "5551234",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
	}
}

func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(u *User)
		wantErr bool
	}{
		{name: "complete", mutate: func(u *User) {}},
		{name: "picture is optional", mutate: func(u *User) { u.ProfilePicturePath = "" }},
		{name: "missing username", mutate: func(u *User) { u.Username = "" }, wantErr: true},
		{name: "blank email", mutate: func(u *User) { u.Email = "   " }, wantErr: true},
		{name: "missing city", mutate: func(u *User) { u.City = "" }, wantErr: true},
		{name: "missing mobile", mutate: func(u *User) { u.MobileNumber = "" }, wantErr: true},
		{name: "missing hash", mutate: func(u *User) { u.PasswordHash = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := validUser()
			tt.mutate(u)
			err := u.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestUser_BeforeCreateAssignsID(t *testing.T) {
	u := validUser()
	require.NoError(t, u.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, u.ID)

	id := u.ID
	require.NoError(t, u.BeforeCreate(nil))
	assert.Equal(t, id, u.ID)
}

func TestUser_JSONNeverExposesHash(t *testing.T) {
	payload, err := json.Marshal(validUser())
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "password")
	assert.NotContains(t, string(payload), "$2a$")
}

func TestUser_Sanitized(t *testing.T) {
	u := validUser()
	clean := u.Sanitized()
	assert.Empty(t, clean.PasswordHash)
	assert.NotEmpty(t, u.PasswordHash)
	assert.Equal(t, u.Username, clean.Username)
	assert.Nil(t, (*User)(nil).Sanitized())
}
