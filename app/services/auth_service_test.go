package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	auth := newTestAuth(repos)

	account, err := auth.Register(ctx, " a@x.io ", "Alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, 1, account.ID)
	assert.Equal(t, "a@x.io", account.Email)
	assert.NotEqual(t, "pw", account.Password)

	stored, err := repos.accounts.GetByEmail(ctx, "a@x.io")
	require.NoError(t, err)
	assert.NotContains(t, stored.Password, "pw")

	t.Run("duplicate email", func(t *testing.T) {
		_, err := auth.Register(ctx, "a@x.io", "Other", "pw2")
		assert.ErrorIs(t, err, ErrAlreadyRegistered)
		assert.Equal(t, 1, repos.accounts.Count())
	})

	t.Run("ids increase", func(t *testing.T) {
		second, err := auth.Register(ctx, "b@x.io", "Bob", "pw")
		require.NoError(t, err)
		assert.Greater(t, second.ID, account.ID)
	})

	t.Run("invalid account", func(t *testing.T) {
		_, err := auth.Register(ctx, "not-an-email", "Bad", "pw")
		assert.Error(t, err)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	auth := newTestAuth(repos)

	registered, err := auth.Register(ctx, "a@x.io", "Alice", "pw")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "valid credentials", email: "a@x.io", password: "pw"},
		{name: "unknown email", email: "nobody@x.io", password: "pw", wantErr: ErrUnknownEmail},
		{name: "wrong password", email: "a@x.io", password: "nope", wantErr: ErrWrongPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account, err := auth.Login(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, account)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, registered.ID, account.ID)
		})
	}
}

func TestAuthService_Account(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	auth := newTestAuth(repos)

	registered, err := auth.Register(ctx, "a@x.io", "Alice", "pw")
	require.NoError(t, err)

	found, err := auth.Account(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", found.Name)

	_, err = auth.Account(ctx, 99)
	assert.Error(t, err)
}

func TestAuthService_LongPassword(t *testing.T) {
	ctx := context.Background()
	auth := newTestAuth(newTestRepos())

	long := strings.Repeat("p", 80)
	_, err := auth.Register(ctx, "a@x.io", "Alice", long)
	require.NoError(t, err)

	_, err = auth.Login(ctx, "a@x.io", long)
	assert.NoError(t, err)

	// Passwords sharing the first 72 bytes must still differ.
	_, err = auth.Login(ctx, "a@x.io", strings.Repeat("p", 72)+"qqqqqqqq")
	assert.ErrorIs(t, err, ErrWrongPassword)
}
