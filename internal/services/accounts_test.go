package services

import (
	"context"
	"strings"
	"testing"

	"echoes/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	svc, gdb := newTestServices(t)
	ctx := context.Background()

	user, err := svc.Accounts.Register(ctx, "  ada ", "secret", "secret")
	require.NoError(t, err)
	assert.Equal(t, "ada", user.Username)
	assert.Equal(t, models.DefaultBio, user.Bio)
	assert.Equal(t, models.DefaultAvatar, user.Avatar)
	assert.NotEqual(t, "secret", user.Password, "password must be hashed")

	t.Run("mismatched confirmation", func(t *testing.T) {
		_, err := svc.Accounts.Register(ctx, "bob", "secret", "other")
		assert.True(t, models.IsCode(err, models.CodeValidation))
		assert.Equal(t, "Passwords do not match.", models.UserMessage(err))

		var count int64
		gdb.Model(&models.User{}).Where("username = ?", "bob").Count(&count)
		assert.Zero(t, count)
	})

	t.Run("duplicate handle", func(t *testing.T) {
		_, err := svc.Accounts.Register(ctx, "ada", "another", "another")
		assert.True(t, models.IsCode(err, models.CodeConflict))

		var count int64
		gdb.Model(&models.User{}).Count(&count)
		assert.EqualValues(t, 1, count)
	})

	t.Run("invalid input", func(t *testing.T) {
		cases := map[string][2]string{
			"empty username": {"", "secret"},
			"blank username": {"   ", "secret"},
			"bad characters": {"ada lovelace", "secret"},
			"dot handle":     {".", "secret"},
			"dotdot handle":  {"..", "secret"},
			"leading dot":    {".ada", "secret"},
			"leading dash":   {"-ada", "secret"},
			"empty password": {"carol", ""},
			"short password": {"carol", "abc"},
		}
		for name, tc := range cases {
			_, err := svc.Accounts.Register(ctx, tc[0], tc[1], tc[1])
			assert.True(t, models.IsCode(err, models.CodeValidation), name)
		}
	})

	t.Run("password over bcrypt byte limit", func(t *testing.T) {
		// 40 runes, 80 bytes
		long := strings.Repeat("é", 40)
		_, err := svc.Accounts.Register(ctx, "dora", long, long)
		assert.True(t, models.IsCode(err, models.CodeValidation))
		assert.Equal(t, "Password is too long.", models.UserMessage(err))

		exact := strings.Repeat("é", 36)
		_, err = svc.Accounts.Register(ctx, "dora", exact, exact)
		assert.NoError(t, err)
	})

	t.Run("handles with inner dots", func(t *testing.T) {
		user, err := svc.Accounts.Register(ctx, "ada.l_1-x", "secret", "secret")
		require.NoError(t, err)
		assert.Equal(t, "ada.l_1-x", user.Username)
	})
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	mustRegister(t, svc, "ada")

	user, err := svc.Accounts.Authenticate(ctx, "ada", "secret")
	require.NoError(t, err)
	assert.Equal(t, "ada", user.Username)

	_, err = svc.Accounts.Authenticate(ctx, "ada", "wrong")
	assert.True(t, models.IsCode(err, models.CodeAuthFailure))

	_, err = svc.Accounts.Authenticate(ctx, "nobody", "secret")
	assert.True(t, models.IsCode(err, models.CodeAuthFailure))
	assert.Equal(t, "Invalid credentials.", models.UserMessage(err))
}

func TestGetUser(t *testing.T) {
	svc, _ := newTestServices(t)
	mustRegister(t, svc, "ada")

	user, err := svc.Accounts.GetUser(context.Background(), "ada")
	require.NoError(t, err)
	assert.Equal(t, "ada", user.Username)

	_, err = svc.Accounts.GetUser(context.Background(), "ghost")
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	mustRegister(t, svc, "ada")

	user, err := svc.Accounts.UpdateProfile(ctx, "ada", "Counting engines.", "lantern.png")
	require.NoError(t, err)
	assert.Equal(t, "Counting engines.", user.Bio)
	assert.Equal(t, "lantern.png", user.Avatar)

	user, err = svc.Accounts.UpdateProfile(ctx, "ada", "", "")
	require.NoError(t, err)
	assert.Equal(t, "", user.Bio)
	assert.Equal(t, models.DefaultAvatar, user.Avatar)

	_, err = svc.Accounts.UpdateProfile(ctx, "ada", strings.Repeat("x", 201), "")
	assert.True(t, models.IsCode(err, models.CodeValidation))

	_, err = svc.Accounts.UpdateProfile(ctx, "ada", "", "../../etc/passwd")
	assert.True(t, models.IsCode(err, models.CodeValidation))

	_, err = svc.Accounts.UpdateProfile(ctx, "ghost", "bio", "")
	assert.True(t, models.IsCode(err, models.CodeNotFound))

	_, err = svc.Accounts.UpdateProfile(ctx, "", "bio", "")
	assert.True(t, models.IsCode(err, models.CodeUnauthorized))
}
