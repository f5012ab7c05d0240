package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidtube/backend/internal/repository/postgres"
	"github.com/vidtube/backend/internal/service"
	"github.com/vidtube/backend/internal/testutil"
)

func TestAuthService_Register(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, cfg)
	ctx := context.Background()

	tests := []struct {
		name      string
		input     service.RegisterInput
		setup     func()
		wantErr   error
		checkUser bool
	}{
		{
			name: "successful registration",
			input: service.RegisterInput{
				Username: "newuser",
				Email:    "newuser@example.com",
				FullName: "New User",
				Password: "password123",
			},
			checkUser: true,
		},
		{
			name: "duplicate username",
			input: service.RegisterInput{
				Username: "existinguser",
				Email:    "other@example.com",
				Password: "password123",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithUsername("existinguser").
					Build(t, testDB.DB)
			},
			wantErr: service.ErrUsernameTaken,
		},
		{
			name: "duplicate email",
			input: service.RegisterInput{
				Username: "freshname",
				Email:    "taken@example.com",
				Password: "password123",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithEmail("taken@example.com").
					Build(t, testDB.DB)
			},
			wantErr: service.ErrEmailTaken,
		},
		{
			name: "username is case-insensitive",
			input: service.RegisterInput{
				Username: "ShoutyUser",
				Email:    "shouty@example.com",
				Password: "password123",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithUsername("shoutyuser").
					Build(t, testDB.DB)
			},
			wantErr: service.ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clean up between tests
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
			if tt.checkUser {
				assert.NotNil(t, result.User)
				assert.Equal(t, tt.input.Username, result.User.Username)
				assert.NotEmpty(t, result.AccessToken)
				assert.NotEmpty(t, result.RefreshToken)
				assert.NotEqual(t, tt.input.Password, result.User.PasswordHash)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, cfg)
	ctx := context.Background()

	// Create a user for login tests
	user, rawPassword := testutil.NewUserBuilder().
		WithUsername("loginuser").
		WithEmail("loginuser@example.com").
		WithPassword("correctpassword").
		Build(t, testDB.DB)

	tests := []struct {
		name    string
		input   service.LoginInput
		wantErr error
	}{
		{
			name: "login by username",
			input: service.LoginInput{
				Identifier: user.Username,
				Password:   rawPassword,
			},
		},
		{
			name: "login by email",
			input: service.LoginInput{
				Identifier: user.Email,
				Password:   rawPassword,
			},
		},
		{
			name: "wrong password",
			input: service.LoginInput{
				Identifier: user.Username,
				Password:   "wrongpassword",
			},
			wantErr: service.ErrInvalidCredentials,
		},
		{
			name: "non-existent user",
			input: service.LoginInput{
				Identifier: "nonexistent",
				Password:   "anypassword",
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
			assert.NotNil(t, result.User)
			assert.Equal(t, user.ID, result.User.ID)
			assert.NotEmpty(t, result.AccessToken)
			assert.NotEmpty(t, result.RefreshToken)
		})
	}
}

func TestAuthService_VerifyAccess(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, cfg)
	ctx := context.Background()

	result, err := authService.Register(ctx, service.RegisterInput{
		Username: "tokenuser",
		Email:    "tokenuser@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{
			name:    "valid token",
			token:   result.AccessToken,
			wantErr: false,
		},
		{
			name: "refresh token is not an access token",
			// Signed with the refresh secret, so the access check must reject it
			token:   result.RefreshToken,
			wantErr: true,
		},
		{
			name:    "invalid token",
			token:   "invalid.token.here",
			wantErr: true,
		},
		{
			name:    "malformed token",
			token:   "notavalidjwt",
			wantErr: true,
		},
		{
			name:    "empty token",
			token:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, err := authService.VerifyAccess(tt.token)

			if tt.wantErr {
				assert.ErrorIs(t, err, service.ErrInvalidAccessToken)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, result.User.ID, userID)
		})
	}
}

func TestAuthService_Refresh_RotatesTokenPair(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, cfg)
	ctx := context.Background()

	registered, err := authService.Register(ctx, service.RegisterInput{
		Username: "refreshuser",
		Email:    "refreshuser@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	// A valid refresh yields a fresh pair
	rotated, err := authService.Refresh(ctx, registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, rotated.AccessToken)
	assert.NotEqual(t, registered.RefreshToken, rotated.RefreshToken)

	// The old token was rotated out and must be rejected, even though its
	// signature and expiry are still valid
	_, err = authService.Refresh(ctx, registered.RefreshToken)
	assert.ErrorIs(t, err, service.ErrInvalidRefreshToken)

	// The new token still works
	_, err = authService.Refresh(ctx, rotated.RefreshToken)
	require.NoError(t, err)
}

func TestAuthService_Refresh_RejectsGarbage(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, cfg)
	ctx := context.Background()

	_, err := authService.Refresh(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, service.ErrInvalidRefreshToken)
}

func TestAuthService_Logout(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, cfg)
	ctx := context.Background()

	result, err := authService.Register(ctx, service.RegisterInput{
		Username: "logoutuser",
		Email:    "logoutuser@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	// Logout revokes the refresh token
	err = authService.Logout(ctx, result.User.ID)
	require.NoError(t, err)

	_, err = authService.Refresh(ctx, result.RefreshToken)
	assert.ErrorIs(t, err, service.ErrInvalidRefreshToken)

	// Logout again should not error (no session to delete)
	err = authService.Logout(ctx, result.User.ID)
	require.NoError(t, err)
}

func TestAuthService_ChangePassword(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, cfg)
	ctx := context.Background()

	user, rawPassword := testutil.NewUserBuilder().
		WithUsername("passworduser").
		WithPassword("oldpassword1").
		Build(t, testDB.DB)

	// Wrong current password is rejected
	err := authService.ChangePassword(ctx, user.ID, "notthepassword", "newpassword1")
	assert.ErrorIs(t, err, service.ErrWrongPassword)

	// Unknown user
	err = authService.ChangePassword(ctx, uuid.New(), rawPassword, "newpassword1")
	assert.ErrorIs(t, err, service.ErrUserNotFound)

	// Successful change
	err = authService.ChangePassword(ctx, user.ID, rawPassword, "newpassword1")
	require.NoError(t, err)

	// Old password no longer works, new one does
	_, err = authService.Login(ctx, service.LoginInput{Identifier: user.Username, Password: rawPassword})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = authService.Login(ctx, service.LoginInput{Identifier: user.Username, Password: "newpassword1"})
	require.NoError(t, err)
}
