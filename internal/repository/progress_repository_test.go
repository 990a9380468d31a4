package repository_test

import (
	"context"
	"testing"
	"time"

	"finedu/backend/internal/model"
	"finedu/backend/internal/repository"
	"finedu/backend/internal/repository/testutil"

	"github.com/stretchr/testify/require"
)

func TestProgressRepository_UpsertAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewProgressRepository(db)
	ctx := context.Background()

	userID := testutil.SeedUser(t, db, model.User{})

	status := model.StatusInProgress
	err := repo.Upsert(ctx, userID, "基金投资入门", "第一课", &status, nil)
	require.NoError(t, err)

	p, err := repo.Get(ctx, userID, "基金投资入门", "第一课")
	require.NoError(t, err)
	require.Equal(t, model.StatusInProgress, p.Status)
	require.Nil(t, p.Score)
	require.Nil(t, p.CompletedAt)
}

// Upserting with a nil status must keep the stored status, and a nil score
// must keep the stored score (COALESCE on conflict).
func TestProgressRepository_Upsert_PartialUpdate(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewProgressRepository(db)
	ctx := context.Background()

	userID := testutil.SeedUser(t, db, model.User{})

	status := model.StatusInProgress
	require.NoError(t, repo.Upsert(ctx, userID, "m", "l", &status, nil))

	// Score-only update keeps status
	score := 85.0
	require.NoError(t, repo.Upsert(ctx, userID, "m", "l", nil, &score))

	p, err := repo.Get(ctx, userID, "m", "l")
	require.NoError(t, err)
	require.Equal(t, model.StatusInProgress, p.Status)
	require.NotNil(t, p.Score)
	require.Equal(t, 85.0, *p.Score)

	// Status-only update keeps score
	completed := model.StatusCompleted
	require.NoError(t, repo.Upsert(ctx, userID, "m", "l", &completed, nil))

	p, err = repo.Get(ctx, userID, "m", "l")
	require.NoError(t, err)
	require.Equal(t, model.StatusCompleted, p.Status)
	require.NotNil(t, p.Score)
	require.Equal(t, 85.0, *p.Score)
	require.NotNil(t, p.CompletedAt)
}

func TestProgressRepository_Upsert_SetsCompletedAt(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewProgressRepository(db)
	ctx := context.Background()

	userID := testutil.SeedUser(t, db, model.User{})

	completed := model.StatusCompleted
	require.NoError(t, repo.Upsert(ctx, userID, "m", "l", &completed, nil))

	p, err := repo.Get(ctx, userID, "m", "l")
	require.NoError(t, err)
	require.NotNil(t, p.CompletedAt)
	require.WithinDuration(t, time.Now(), *p.CompletedAt, time.Minute)
}

func TestProgressRepository_ModuleStats(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewProgressRepository(db)
	ctx := context.Background()

	userID := testutil.SeedUser(t, db, model.User{})

	score1, score2 := 80.0, 90.0
	testutil.SeedProgress(t, db, userID, "m1", "l1", model.StatusCompleted, &score1)
	testutil.SeedProgress(t, db, userID, "m1", "l2", model.StatusCompleted, &score2)
	testutil.SeedProgress(t, db, userID, "m1", "l3", model.StatusInProgress, nil)
	testutil.SeedProgress(t, db, userID, "m2", "l1", model.StatusNotStarted, nil)

	stats, err := repo.ModuleStats(ctx, userID)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	require.Equal(t, "m1", stats[0].ModuleName)
	require.Equal(t, 3, stats[0].Total)
	require.Equal(t, 2, stats[0].Completed)
	require.InDelta(t, 85.0, stats[0].AvgScore, 0.001)

	require.Equal(t, "m2", stats[1].ModuleName)
	require.Equal(t, 1, stats[1].Total)
	require.Equal(t, 0, stats[1].Completed)
}

func TestProgressRepository_CountsAndAverages(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewProgressRepository(db)
	ctx := context.Background()

	userID := testutil.SeedUser(t, db, model.User{})

	// No rows yet: everything zero
	count, err := repo.CountByStatus(ctx, userID, model.StatusCompleted)
	require.NoError(t, err)
	require.Equal(t, 0, count)

	avg, err := repo.AvgScore(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 0.0, avg)

	score := 70.0
	testutil.SeedProgress(t, db, userID, "m", "l1", model.StatusCompleted, &score)
	testutil.SeedProgress(t, db, userID, "m", "l2", model.StatusInProgress, nil)

	count, err = repo.CountByStatus(ctx, userID, model.StatusCompleted)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	avg, err = repo.AvgScore(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 70.0, avg)
}

func TestProgressRepository_ListByUser_ScopedToUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewProgressRepository(db)
	ctx := context.Background()

	user1 := testutil.SeedUser(t, db, model.User{Username: "u1"})
	user2 := testutil.SeedUser(t, db, model.User{Username: "u2"})

	testutil.SeedProgress(t, db, user1, "m", "l1", model.StatusInProgress, nil)
	testutil.SeedProgress(t, db, user2, "m", "l1", model.StatusCompleted, nil)

	list, err := repo.ListByUser(ctx, user1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, user1, list[0].UserID)
}
