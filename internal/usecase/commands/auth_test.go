//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"brow-studio-api/internal/domain/user"
	reqdto "brow-studio-api/internal/handler/dto/request"
	"brow-studio-api/internal/pkg/clock"
	"brow-studio-api/internal/pkg/jwt"
	"brow-studio-api/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthCommands(t *testing.T, userRepo *fakeUserRepo) commands.AuthCommands {
	t.Helper()
	jwtService := jwt.NewService("test-secret-key-for-unit-tests", time.Hour)
	clk := clock.NewMockClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	return commands.NewAuthCommands(userRepo, jwtService, clk, testLogger())
}

func TestRegister(t *testing.T) {
	t.Run("creates a customer account and logs it in", func(t *testing.T) {
		repo := newFakeUserRepo()
		auth := newAuthCommands(t, repo)

		result, err := auth.Register(context.Background(), reqdto.RegisterRequest{
			Email:    "new@example.com",
			Password: "str0ngPassw0rd",
			Name:     "Park Minji",
		})
		require.NoError(t, err)
		assert.Equal(t, user.RoleCustomer, result.Role)
		assert.NotEmpty(t, result.AccessToken)

		created, err := repo.FindByEmail(context.Background(), "new@example.com")
		require.NoError(t, err)
		assert.Equal(t, "Park Minji", created.Name())
		// the stored hash is never the raw password
		assert.NotEqual(t, "str0ngPassw0rd", created.PasswordHash())
	})

	t.Run("duplicate email is refused", func(t *testing.T) {
		repo := newFakeUserRepo()
		auth := newAuthCommands(t, repo)

		req := reqdto.RegisterRequest{Email: "dup@example.com", Password: "str0ngPassw0rd", Name: "Park Minji"}
		_, err := auth.Register(context.Background(), req)
		require.NoError(t, err)

		_, err = auth.Register(context.Background(), req)
		require.ErrorIs(t, err, commands.ErrEmailTaken)
	})

	t.Run("malformed email is refused", func(t *testing.T) {
		auth := newAuthCommands(t, newFakeUserRepo())

		_, err := auth.Register(context.Background(), reqdto.RegisterRequest{
			Email:    "not-an-email",
			Password: "str0ngPassw0rd",
			Name:     "Park Minji",
		})
		require.Error(t, err)
	})
}

func TestLogin(t *testing.T) {
	register := func(t *testing.T) (commands.AuthCommands, *fakeUserRepo) {
		t.Helper()
		repo := newFakeUserRepo()
		auth := newAuthCommands(t, repo)
		_, err := auth.Register(context.Background(), reqdto.RegisterRequest{
			Email:    "customer@example.com",
			Password: "str0ngPassw0rd",
			Name:     "Kim Jiyoung",
		})
		require.NoError(t, err)
		return auth, repo
	}

	t.Run("valid credentials yield a token", func(t *testing.T) {
		auth, _ := register(t)

		result, err := auth.Login(context.Background(), reqdto.LoginRequest{
			Email:    "customer@example.com",
			Password: "str0ngPassw0rd",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.Equal(t, user.RoleCustomer, result.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		auth, _ := register(t)

		_, err := auth.Login(context.Background(), reqdto.LoginRequest{
			Email:    "customer@example.com",
			Password: "wr0ngPassw0rd",
		})
		require.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		auth, _ := register(t)

		_, err := auth.Login(context.Background(), reqdto.LoginRequest{
			Email:    "nobody@example.com",
			Password: "str0ngPassw0rd",
		})
		require.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})
}
