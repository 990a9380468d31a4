package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"finedu/backend/internal/repository"
	"finedu/backend/internal/repository/testutil"
	"finedu/backend/internal/service"
)

func newAuthService(t *testing.T) service.AuthService {
	t.Helper()
	db := testutil.NewTestDB(t)
	svc, err := service.NewAuthService(
		repository.NewUserRepository(db),
		repository.NewSessionRepository(db),
		repository.NewSettingsRepository(db),
		"test-secret",
	)
	require.NoError(t, err)
	return svc
}

func TestAuthService_RegisterLoginValidate(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, "zhang_san", "zhangsan@example.com", "pass123", "", service.Profile{})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "student", resp.User.Role)

	login, err := svc.Login(ctx, "zhang_san", "pass123")
	require.NoError(t, err)
	require.NotNil(t, login.User.LastLogin)

	identity, err := svc.ValidateToken(ctx, login.Token)
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, identity.UserID)
	require.Equal(t, "student", identity.Role)

	// Email works as the login too
	_, err = svc.Login(ctx, "zhangsan@example.com", "pass123")
	require.NoError(t, err)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		email    string
		password string
		want     error
	}{
		{"empty username", "", "a@example.com", "pass123", service.ErrUsernameRequired},
		{"empty email", "u1", "", "pass123", service.ErrEmailRequired},
		{"bad email", "u1", "not-an-email", "pass123", service.ErrEmailInvalid},
		{"empty password", "u1", "a@example.com", "", service.ErrPasswordRequired},
		{"short password", "u1", "a@example.com", "a1", service.ErrPasswordTooWeak},
		{"letters only", "u1", "a@example.com", "abcdef", service.ErrPasswordTooWeak},
		{"digits only", "u1", "a@example.com", "123456", service.ErrPasswordTooWeak},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.username, tc.email, tc.password, "", service.Profile{})
			require.ErrorIs(t, err, tc.want)
		})
	}

	_, err := svc.Register(ctx, "u1", "a@example.com", "pass123", "superuser", service.Profile{})
	require.ErrorIs(t, err, service.ErrInvalid)
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "dup", "dup@example.com", "pass123", "", service.Profile{})
	require.NoError(t, err)

	_, err = svc.Register(ctx, "dup", "other@example.com", "pass123", "", service.Profile{})
	require.ErrorIs(t, err, service.ErrUserExists)

	_, err = svc.Register(ctx, "other", "dup@example.com", "pass123", "", service.Profile{})
	require.ErrorIs(t, err, service.ErrUserExists)
}

// Unknown user and wrong password must be indistinguishable to the caller.
func TestAuthService_LoginFailures(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "li_si", "lisi@example.com", "pass123", "", service.Profile{})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "li_si", "wrong1")
	require.ErrorIs(t, err, service.ErrInvalidPassword)

	_, err = svc.Login(ctx, "no_such_user", "pass123")
	require.ErrorIs(t, err, service.ErrInvalidPassword)
}

func TestAuthService_LogoutInvalidatesToken(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, "wang_wu", "wangwu@example.com", "pass123", "", service.Profile{})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.Token))

	_, err = svc.ValidateToken(ctx, resp.Token)
	require.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.ValidateToken(context.Background(), "not.a.token")
	require.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, "zhao_liu", "zhaoliu@example.com", "pass123", "", service.Profile{})
	require.NoError(t, err)
	userID := resp.User.ID

	err = svc.ChangePassword(ctx, userID, "wrong1", "newpass1")
	require.ErrorIs(t, err, service.ErrInvalidPassword)

	err = svc.ChangePassword(ctx, userID, "pass123", "short")
	require.ErrorIs(t, err, service.ErrPasswordTooWeak)

	require.NoError(t, svc.ChangePassword(ctx, userID, "pass123", "newpass1"))

	// Old sessions are revoked
	_, err = svc.ValidateToken(ctx, resp.Token)
	require.ErrorIs(t, err, service.ErrInvalidToken)

	_, err = svc.Login(ctx, "zhao_liu", "pass123")
	require.ErrorIs(t, err, service.ErrInvalidPassword)
	_, err = svc.Login(ctx, "zhao_liu", "newpass1")
	require.NoError(t, err)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, "profile_user", "p@example.com", "pass123", "", service.Profile{})
	require.NoError(t, err)

	fullName := "测试学生"
	school := "某大学"
	user, err := svc.UpdateProfile(ctx, resp.User.ID, service.Profile{FullName: &fullName, School: &school}, "")
	require.NoError(t, err)
	require.NotNil(t, user.FullName)
	require.Equal(t, "测试学生", *user.FullName)
	require.Equal(t, "p@example.com", user.Email)

	_, err = svc.UpdateProfile(ctx, resp.User.ID, service.Profile{}, "bad-email")
	require.ErrorIs(t, err, service.ErrEmailInvalid)
}

func TestAuthService_EnsureDemoUser(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDemoUser(ctx))
	// Idempotent
	require.NoError(t, svc.EnsureDemoUser(ctx))

	resp, err := svc.Login(ctx, service.DemoUsername, service.DemoPassword)
	require.NoError(t, err)
	require.Equal(t, "student", resp.User.Role)
}

// A generated secret must be persisted so tokens survive a restart.
func TestAuthService_GeneratedSecretPersists(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := repository.NewUserRepository(db)
	sessions := repository.NewSessionRepository(db)
	settings := repository.NewSettingsRepository(db)

	first, err := service.NewAuthService(users, sessions, settings, "")
	require.NoError(t, err)

	ctx := context.Background()
	resp, err := first.Register(ctx, "restart", "restart@example.com", "pass123", "", service.Profile{})
	require.NoError(t, err)

	second, err := service.NewAuthService(users, sessions, settings, "")
	require.NoError(t, err)

	identity, err := second.ValidateToken(ctx, resp.Token)
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, identity.UserID)
}
