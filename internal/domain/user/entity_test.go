//go:build unit

package user_test

import (
	"testing"

	"brow-studio-api/internal/domain/user"
	"brow-studio-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.UserBuilder)
	errIs  error
}

func TestUser(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewUserBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "customer@example.com", actual.Email().Value())
		assert.Equal(t, "Kim Jiyoung", actual.Name())
		assert.True(t, actual.IsActive())
		assert.Nil(t, actual.LastLogin())
		assert.False(t, actual.IsAdmin())
	})

	t.Run("email validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "valid email",
				mutate: func(b *builder.UserBuilder) { b.Email = "valid@example.com" },
			},
			{
				name:   "empty email",
				mutate: func(b *builder.UserBuilder) { b.Email = "" },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "missing at sign",
				mutate: func(b *builder.UserBuilder) { b.Email = "invalid.example.com" },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "missing domain",
				mutate: func(b *builder.UserBuilder) { b.Email = "invalid@" },
				errIs:  user.ErrInvalidEmail,
			},
		})
	})

	t.Run("name validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty name",
				mutate: func(b *builder.UserBuilder) { b.Name = "" },
				errIs:  user.ErrEmptyName,
			},
			{
				name:   "whitespace only name",
				mutate: func(b *builder.UserBuilder) { b.Name = "   " },
				errIs:  user.ErrEmptyName,
			},
		})
	})

	t.Run("role validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "admin role",
				mutate: func(b *builder.UserBuilder) { b.Role = "admin" },
			},
			{
				name:   "unknown role",
				mutate: func(b *builder.UserBuilder) { b.Role = "superuser" },
				errIs:  user.ErrInvalidRole,
			},
		})
	})

	t.Run("password strength", func(t *testing.T) {
		_, err := user.NewPassword("short")
		require.ErrorIs(t, err, user.ErrPasswordTooWeak)

		_, err = user.NewPassword("longenough")
		require.NoError(t, err)
	})

	t.Run("UUID uniqueness", func(t *testing.T) {
		u1, err1 := builder.NewUserBuilder().BuildDomain()
		u2, err2 := builder.NewUserBuilder().BuildDomain()

		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, u1.ID(), u2.ID())
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewUserBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
