package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"finedu/backend/internal/market"
	marketmock "finedu/backend/internal/market/mock"
	"finedu/backend/internal/model"
	"finedu/backend/internal/repository"
	"finedu/backend/internal/repository/testutil"
	"finedu/backend/internal/service"
)

func newPortfolioService(t *testing.T) (service.PortfolioService, *marketmock.MockClient, int64) {
	t.Helper()
	db := testutil.NewTestDB(t)
	ctrl := gomock.NewController(t)
	client := marketmock.NewMockClient(ctrl)
	svc := service.NewPortfolioService(repository.NewPortfolioRepository(db), client)
	userID := testutil.SeedUser(t, db, model.User{})
	return svc, client, userID
}

func TestPortfolioService_CreateAndGet(t *testing.T) {
	svc, _, userID := newPortfolioService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, userID, "  ", nil)
	require.ErrorIs(t, err, service.ErrInvalid)

	desc := "练习组合"
	p, err := svc.Create(ctx, userID, "我的第一个组合", &desc)
	require.NoError(t, err)
	require.NotZero(t, p.ID)

	got, err := svc.Get(ctx, userID, p.ID)
	require.NoError(t, err)
	require.Equal(t, "我的第一个组合", got.Name)

	// Other users see a 404, not a permission error
	_, err = svc.Get(ctx, userID+1, p.ID)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestPortfolioService_UpdateHoldings(t *testing.T) {
	svc, _, userID := newPortfolioService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, userID, "组合", nil)
	require.NoError(t, err)

	_, err = svc.UpdateHoldings(ctx, userID, p.ID, nil)
	require.ErrorIs(t, err, service.ErrInvalid)

	_, err = svc.UpdateHoldings(ctx, userID, p.ID, []service.HoldingInput{
		{FundCode: "005827", Weight: 0.5},
		{FundCode: "110011", Weight: 0.3},
	})
	var weightErr *service.WeightSumError
	require.ErrorAs(t, err, &weightErr)
	require.InDelta(t, 0.8, weightErr.Sum, 1e-9)
	// WeightSumError still matches the generic invalid sentinel
	require.ErrorIs(t, err, service.ErrInvalid)

	_, err = svc.UpdateHoldings(ctx, userID, p.ID, []service.HoldingInput{
		{FundCode: "", Weight: 1},
	})
	require.ErrorIs(t, err, service.ErrInvalid)

	updated, err := svc.UpdateHoldings(ctx, userID, p.ID, []service.HoldingInput{
		{FundCode: "005827", Weight: 0.6},
		{FundCode: "110011", Weight: 0.4},
	})
	require.NoError(t, err)
	require.Len(t, updated.Holdings, 2)

	// Replacing is not additive
	updated, err = svc.UpdateHoldings(ctx, userID, p.ID, []service.HoldingInput{
		{FundCode: "510300", Weight: 1.0},
	})
	require.NoError(t, err)
	require.Len(t, updated.Holdings, 1)
	require.Equal(t, "510300", updated.Holdings[0].FundCode)
}

func TestPortfolioService_Delete(t *testing.T) {
	svc, _, userID := newPortfolioService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, userID, "待删除", nil)
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(ctx, userID+1, p.ID), service.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, userID, p.ID))
	require.ErrorIs(t, svc.Delete(ctx, userID, p.ID), service.ErrNotFound)
}

func TestPortfolioService_Analyze(t *testing.T) {
	svc, client, userID := newPortfolioService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, userID, "分析组合", nil)
	require.NoError(t, err)

	// No holdings yet
	_, err = svc.Analyze(ctx, userID, p.ID)
	require.ErrorIs(t, err, service.ErrInvalid)

	_, err = svc.UpdateHoldings(ctx, userID, p.ID, []service.HoldingInput{
		{FundCode: "005827", Weight: 0.6},
		{FundCode: "110011", Weight: 0.4},
	})
	require.NoError(t, err)

	funds := []market.PortfolioFund{
		{FundCode: "005827", Weight: 0.6},
		{FundCode: "110011", Weight: 0.4},
	}
	codes := []string{"005827", "110011"}
	client.EXPECT().AnalyzePortfolioRisk(gomock.Any(), funds).Return(json.RawMessage(`{"risk":"mid"}`), nil)
	client.EXPECT().Correlation(gomock.Any(), codes).Return(json.RawMessage(`{"matrix":[]}`), nil)
	client.EXPECT().BackTest(gomock.Any(), funds, "", "").Return(json.RawMessage(`{"nav":[]}`), nil)
	client.EXPECT().DiagnosePortfolio(gomock.Any(), funds).Return(json.RawMessage(`{"score":80}`), nil)

	analysis, err := svc.Analyze(ctx, userID, p.ID)
	require.NoError(t, err)
	require.JSONEq(t, `{"risk":"mid"}`, string(analysis.Risk))
	require.JSONEq(t, `{"matrix":[]}`, string(analysis.Correlation))
}

// A single-fund portfolio has nothing to correlate.
func TestPortfolioService_Analyze_SingleFundSkipsCorrelation(t *testing.T) {
	svc, client, userID := newPortfolioService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, userID, "单基金", nil)
	require.NoError(t, err)
	_, err = svc.UpdateHoldings(ctx, userID, p.ID, []service.HoldingInput{
		{FundCode: "005827", Weight: 1.0},
	})
	require.NoError(t, err)

	funds := []market.PortfolioFund{{FundCode: "005827", Weight: 1.0}}
	client.EXPECT().AnalyzePortfolioRisk(gomock.Any(), funds).Return(json.RawMessage(`{}`), nil)
	client.EXPECT().BackTest(gomock.Any(), funds, "", "").Return(json.RawMessage(`{}`), nil)
	client.EXPECT().DiagnosePortfolio(gomock.Any(), funds).Return(json.RawMessage(`{}`), nil)

	analysis, err := svc.Analyze(ctx, userID, p.ID)
	require.NoError(t, err)
	require.Nil(t, analysis.Correlation)
}

func TestPortfolioService_Analyze_UpstreamError(t *testing.T) {
	svc, client, userID := newPortfolioService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, userID, "出错组合", nil)
	require.NoError(t, err)
	_, err = svc.UpdateHoldings(ctx, userID, p.ID, []service.HoldingInput{
		{FundCode: "005827", Weight: 1.0},
	})
	require.NoError(t, err)

	upstream := errors.New("boom")
	client.EXPECT().AnalyzePortfolioRisk(gomock.Any(), gomock.Any()).Return(nil, upstream)

	_, err = svc.Analyze(ctx, userID, p.ID)
	require.ErrorIs(t, err, upstream)
}

func TestPortfolioService_Allocations(t *testing.T) {
	svc, _, _ := newPortfolioService(t)

	all := svc.Allocations()
	require.Len(t, all, 5)
	for _, a := range all {
		require.InDelta(t, 100, a.Money+a.Bond+a.Equity, 1e-9)
	}

	conservative := svc.Allocation(service.RiskConservative)
	require.Equal(t, 50.0, conservative.Money)
	require.Equal(t, "保守型", conservative.Label)

	// Unknown levels fall back to steady
	fallback := svc.Allocation("yolo")
	require.Equal(t, service.RiskSteady, fallback.RiskLevel)

	require.NotEmpty(t, svc.RecommendedFunds("equity"))
	require.Nil(t, svc.RecommendedFunds("crypto"))
}

func TestPortfolioService_Simulate(t *testing.T) {
	svc, _, _ := newPortfolioService(t)

	_, err := svc.Simulate(service.SimulationParams{InitialAmount: 0, Years: 10})
	require.ErrorIs(t, err, service.ErrInvalid)

	_, err = svc.Simulate(service.SimulationParams{InitialAmount: 10000, Years: 0})
	require.ErrorIs(t, err, service.ErrInvalid)

	_, err = svc.Simulate(service.SimulationParams{InitialAmount: 10000, Years: 99})
	require.ErrorIs(t, err, service.ErrInvalid)

	result, err := svc.Simulate(service.SimulationParams{
		InitialAmount: 10000,
		Years:         10,
		Paths:         2000,
		Seed:          42,
	})
	require.NoError(t, err)
	require.Equal(t, 2000, result.Paths)
	require.LessOrEqual(t, result.P10, result.P50)
	require.LessOrEqual(t, result.P50, result.P90)
	require.Positive(t, result.MeanFinal)

	var total float64
	for _, p := range result.Probabilities {
		require.GreaterOrEqual(t, p, 0.0)
		total += p
	}
	require.InDelta(t, 1.0, total, 1e-9)

	// Same seed, same distribution
	again, err := svc.Simulate(service.SimulationParams{
		InitialAmount: 10000,
		Years:         10,
		Paths:         2000,
		Seed:          42,
	})
	require.NoError(t, err)
	require.Equal(t, result.P50, again.P50)
	require.Equal(t, result.MeanFinal, again.MeanFinal)
}
