package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"finedu/backend/internal/model"
	"finedu/backend/internal/repository"
	"finedu/backend/internal/repository/testutil"

	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	fullName := "张三"
	user, err := repo.Create(ctx, model.User{
		Username:     "zhangsan",
		Email:        "zhangsan@example.com",
		PasswordHash: "hash",
		FullName:     &fullName,
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, model.RoleStudent, user.Role)
	require.True(t, user.IsActive)

	fetched, err := repo.GetByUsername(ctx, "zhangsan")
	require.NoError(t, err)
	require.Equal(t, user.ID, fetched.ID)
	require.NotNil(t, fetched.FullName)
	require.Equal(t, fullName, *fetched.FullName)
	require.Nil(t, fetched.LastLogin)
}

func TestUserRepository_GetByUsernameOrEmail(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, model.User{
		Username: "lisi", Email: "lisi@example.com", PasswordHash: "hash",
	})
	require.NoError(t, err)

	byName, err := repo.GetByUsernameOrEmail(ctx, "lisi")
	require.NoError(t, err)
	byEmail, err2 := repo.GetByUsernameOrEmail(ctx, "lisi@example.com")
	require.NoError(t, err2)
	require.Equal(t, byName.ID, byEmail.ID)

	_, err = repo.GetByUsernameOrEmail(ctx, "missing")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUserRepository_ExistsByUsernameOrEmail(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	testutil.SeedUser(t, db, model.User{Username: "wangwu", Email: "wangwu@example.com"})

	exists, err := repo.ExistsByUsernameOrEmail(ctx, "wangwu", "other@example.com")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.ExistsByUsernameOrEmail(ctx, "other", "wangwu@example.com")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.ExistsByUsernameOrEmail(ctx, "other", "other@example.com")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestUserRepository_UpdateLastLogin(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	id := testutil.SeedUser(t, db, model.User{Username: "u1"})

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.UpdateLastLogin(ctx, id, now))

	user, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, user.LastLogin)
	require.Equal(t, now.Format(time.RFC3339), user.LastLogin.UTC().Format(time.RFC3339))
}

func TestSessionRepository_Lifecycle(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSessionRepository(db)
	ctx := context.Background()

	userID := testutil.SeedUser(t, db, model.User{Username: "u1"})

	session := model.Session{
		ID:        "session-1",
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, session))

	fetched, err := repo.GetByID(ctx, "session-1")
	require.NoError(t, err)
	require.Equal(t, userID, fetched.UserID)

	require.NoError(t, repo.Delete(ctx, "session-1"))

	_, err = repo.GetByID(ctx, "session-1")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSessionRepository_DeleteExpired(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSessionRepository(db)
	ctx := context.Background()

	userID := testutil.SeedUser(t, db, model.User{Username: "u1"})

	require.NoError(t, repo.Create(ctx, model.Session{
		ID: "expired", UserID: userID,
		ExpiresAt: time.Now().Add(-time.Hour), CreatedAt: time.Now().Add(-2 * time.Hour),
	}))
	require.NoError(t, repo.Create(ctx, model.Session{
		ID: "live", UserID: userID,
		ExpiresAt: time.Now().Add(time.Hour), CreatedAt: time.Now(),
	}))

	n, err := repo.DeleteExpired(ctx, time.Now())
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	_, err = repo.GetByID(ctx, "live")
	require.NoError(t, err)
}
