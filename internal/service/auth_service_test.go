package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worlddist/ordering-backend/internal/domain"
	"github.com/worlddist/ordering-backend/internal/repository/postgres"
	"github.com/worlddist/ordering-backend/internal/service"
	"github.com/worlddist/ordering-backend/internal/testutil"
)

func TestHashPassword(t *testing.T) {
	digest, err := service.HashPassword("hunter22")
	require.NoError(t, err)

	assert.True(t, service.CheckPassword("hunter22", digest))
	assert.False(t, service.CheckPassword("hunter23", digest))

	// Fresh salt per call: identical passwords, distinct digests.
	digest2, err := service.HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, digest, digest2)
	assert.True(t, service.CheckPassword("hunter22", digest2))

	// A malformed digest is a non-match, not a panic.
	assert.False(t, service.CheckPassword("hunter22", "not-a-bcrypt-digest"))
}

func TestAuthService_Register(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, cfg)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   service.RegisterInput
		setup   func()
		wantErr error
	}{
		{
			name: "successful registration",
			input: service.RegisterInput{
				Email:       "new@buyer.com",
				Password:    "password123",
				CompanyName: "New Buyer AG",
				Country:     "Germany",
			},
		},
		{
			name: "duplicate email",
			input: service.RegisterInput{
				Email:       "existing@buyer.com",
				Password:    "password123",
				CompanyName: "Another Buyer",
				Country:     "France",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithEmail("existing@buyer.com").
					Build(t, testDB.DB)
			},
			wantErr: service.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testDB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			result, err := authService.Register(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotZero(t, result.User.ID)
			assert.Equal(t, tt.input.Email, result.User.Email)
			assert.Equal(t, "EU", result.User.Region)
			assert.NotEmpty(t, result.Token)

			// The fresh session resolves straight back to the user.
			user, err := authService.Resolve(ctx, result.Token)
			require.NoError(t, err)
			require.NotNil(t, user)
			assert.Equal(t, result.User.ID, user.ID)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, cfg)
	ctx := context.Background()

	user, rawPassword := testutil.NewUserBuilder().
		WithEmail("login@buyer.com").
		WithPassword("correctpassword").
		Build(t, testDB.DB)

	tests := []struct {
		name    string
		input   service.LoginInput
		wantErr error
	}{
		{
			name: "successful login",
			input: service.LoginInput{
				Email:    user.Email,
				Password: rawPassword,
			},
		},
		{
			name: "wrong password",
			input: service.LoginInput{
				Email:    user.Email,
				Password: "wrongpassword",
			},
			wantErr: service.ErrInvalidCredentials,
		},
		{
			name: "non-existent user",
			input: service.LoginInput{
				Email:    "nobody@buyer.com",
				Password: "anypassword",
			},
			wantErr: service.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := authService.Login(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, user.ID, result.User.ID)
			assert.NotEmpty(t, result.Token)
		})
	}
}

func TestAuthService_SessionLifecycle(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, cfg)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	t.Run("expired session resolves to absent without a sweep", func(t *testing.T) {
		token, err := authService.IssueSession(ctx, user.ID)
		require.NoError(t, err)

		resolved, err := authService.Resolve(ctx, token)
		require.NoError(t, err)
		require.NotNil(t, resolved)

		// Push the session past expiry; the row still exists.
		err = testDB.DB.Model(&domain.Session{}).
			Where("token = ?", token).
			Update("expires_at", time.Now().Add(-time.Minute)).Error
		require.NoError(t, err)

		resolved, err = authService.Resolve(ctx, token)
		require.NoError(t, err)
		assert.Nil(t, resolved)
	})

	t.Run("revoke is idempotent", func(t *testing.T) {
		token, err := authService.IssueSession(ctx, user.ID)
		require.NoError(t, err)

		require.NoError(t, authService.Revoke(ctx, token))

		resolved, err := authService.Resolve(ctx, token)
		require.NoError(t, err)
		assert.Nil(t, resolved)

		// Revoking again, or revoking garbage, is a no-op.
		require.NoError(t, authService.Revoke(ctx, token))
		require.NoError(t, authService.Revoke(ctx, "unknown-token"))
	})

	t.Run("sweep removes only expired rows", func(t *testing.T) {
		testDB.DB.Exec("TRUNCATE TABLE sessions")

		live, err := authService.IssueSession(ctx, user.ID)
		require.NoError(t, err)
		dead, err := authService.IssueSession(ctx, user.ID)
		require.NoError(t, err)

		err = testDB.DB.Model(&domain.Session{}).
			Where("token = ?", dead).
			Update("expires_at", time.Now().Add(-time.Minute)).Error
		require.NoError(t, err)

		removed, err := authService.SweepExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), removed)

		resolved, err := authService.Resolve(ctx, live)
		require.NoError(t, err)
		assert.NotNil(t, resolved)
	})

	t.Run("concurrent sessions per user", func(t *testing.T) {
		first, err := authService.IssueSession(ctx, user.ID)
		require.NoError(t, err)
		second, err := authService.IssueSession(ctx, user.ID)
		require.NoError(t, err)
		assert.NotEqual(t, first, second)

		for _, token := range []string{first, second} {
			resolved, err := authService.Resolve(ctx, token)
			require.NoError(t, err)
			assert.NotNil(t, resolved)
		}
	})
}
