package repository_test

import (
	"context"
	"database/sql"
	"testing"

	"finedu/backend/internal/model"
	"finedu/backend/internal/repository"
	"finedu/backend/internal/repository/testutil"

	"github.com/stretchr/testify/require"
)

func TestPortfolioRepository_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewPortfolioRepository(db)
	ctx := context.Background()

	userID := testutil.SeedUser(t, db, model.User{})

	desc := "稳健型组合"
	p, err := repo.Create(ctx, userID, "我的组合", &desc)
	require.NoError(t, err)
	require.NotZero(t, p.ID)

	fetched, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "我的组合", fetched.Name)
	require.NotNil(t, fetched.Description)
	require.Equal(t, desc, *fetched.Description)
	require.Empty(t, fetched.Holdings)
}

func TestPortfolioRepository_ReplaceHoldings(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewPortfolioRepository(db)
	ctx := context.Background()

	userID := testutil.SeedUser(t, db, model.User{})
	portfolioID := testutil.SeedPortfolio(t, db, userID, "p1")

	name1 := "货币基金A"
	err := repo.ReplaceHoldings(ctx, portfolioID, []model.Holding{
		{FundCode: "000198", FundName: &name1, Weight: 0.5},
		{FundCode: "110003", Weight: 0.5},
	})
	require.NoError(t, err)

	holdings, err := repo.ListHoldings(ctx, portfolioID)
	require.NoError(t, err)
	require.Len(t, holdings, 2)

	// Replacement drops the previous set entirely
	err = repo.ReplaceHoldings(ctx, portfolioID, []model.Holding{
		{FundCode: "510300", Weight: 1.0},
	})
	require.NoError(t, err)

	holdings, err = repo.ListHoldings(ctx, portfolioID)
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	require.Equal(t, "510300", holdings[0].FundCode)
	require.Equal(t, 1.0, holdings[0].Weight)
}

func TestPortfolioRepository_Delete_CascadesHoldings(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewPortfolioRepository(db)
	ctx := context.Background()

	userID := testutil.SeedUser(t, db, model.User{})
	portfolioID := testutil.SeedPortfolio(t, db, userID, "p1")

	require.NoError(t, repo.ReplaceHoldings(ctx, portfolioID, []model.Holding{
		{FundCode: "000198", Weight: 1.0},
	}))

	require.NoError(t, repo.Delete(ctx, portfolioID))

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM holdings WHERE portfolio_id = ?`, portfolioID).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestPortfolioRepository_Delete_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewPortfolioRepository(db)

	err := repo.Delete(context.Background(), 12345)
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestPortfolioRepository_ListByUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewPortfolioRepository(db)
	ctx := context.Background()

	user1 := testutil.SeedUser(t, db, model.User{Username: "u1"})
	user2 := testutil.SeedUser(t, db, model.User{Username: "u2"})

	testutil.SeedPortfolio(t, db, user1, "p1")
	testutil.SeedPortfolio(t, db, user1, "p2")
	testutil.SeedPortfolio(t, db, user2, "p3")

	list, err := repo.ListByUser(ctx, user1)
	require.NoError(t, err)
	require.Len(t, list, 2)
}
