package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"finedu/backend/internal/logger"
	"finedu/backend/internal/market"
	"finedu/backend/internal/model"
	"finedu/backend/internal/repository"
)

const weightTolerance = 1e-6

// HoldingInput is one fund position supplied by the caller.
type HoldingInput struct {
	FundCode string
	FundName *string
	Weight   float64
	Amount   *float64
}

// PortfolioAnalysis bundles the upstream analysis results for one portfolio.
type PortfolioAnalysis struct {
	Risk        json.RawMessage `json:"risk,omitempty"`
	Correlation json.RawMessage `json:"correlation,omitempty"`
	BackTest    json.RawMessage `json:"backTest,omitempty"`
	Diagnosis   json.RawMessage `json:"diagnosis,omitempty"`
}

// PortfolioService manages portfolios and the planning tools around them.
type PortfolioService interface {
	Create(ctx context.Context, userID int64, name string, description *string) (model.Portfolio, error)
	List(ctx context.Context, userID int64) ([]model.Portfolio, error)
	Get(ctx context.Context, userID, portfolioID int64) (model.Portfolio, error)
	Delete(ctx context.Context, userID, portfolioID int64) error
	// UpdateHoldings replaces the holding set. Weights must be positive and
	// sum to 1 within tolerance.
	UpdateHoldings(ctx context.Context, userID, portfolioID int64, holdings []HoldingInput) (model.Portfolio, error)
	// Allocation returns the asset allocation template for a risk level.
	Allocation(riskLevel string) RiskAllocation
	Allocations() []RiskAllocation
	RecommendedFunds(assetClass string) []RecommendedFund
	// Analyze runs the upstream risk/correlation/backtest/diagnosis tools.
	Analyze(ctx context.Context, userID, portfolioID int64) (PortfolioAnalysis, error)
	// Simulate runs a local Monte Carlo projection of portfolio value.
	Simulate(params SimulationParams) (SimulationResult, error)
}

type portfolioService struct {
	portfolios repository.PortfolioRepository
	market     market.Client
}

func NewPortfolioService(portfolios repository.PortfolioRepository, marketClient market.Client) PortfolioService {
	return &portfolioService{portfolios: portfolios, market: marketClient}
}

func (s *portfolioService) Create(ctx context.Context, userID int64, name string, description *string) (model.Portfolio, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Portfolio{}, ErrInvalid
	}
	return s.portfolios.Create(ctx, userID, name, description)
}

func (s *portfolioService) List(ctx context.Context, userID int64) ([]model.Portfolio, error) {
	return s.portfolios.ListByUser(ctx, userID)
}

// Get returns the portfolio only to its owner; anything else is a 404.
func (s *portfolioService) Get(ctx context.Context, userID, portfolioID int64) (model.Portfolio, error) {
	p, err := s.portfolios.GetByID(ctx, portfolioID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Portfolio{}, ErrNotFound
		}
		return model.Portfolio{}, err
	}
	if p.UserID != userID {
		return model.Portfolio{}, ErrNotFound
	}
	return p, nil
}

func (s *portfolioService) Delete(ctx context.Context, userID, portfolioID int64) error {
	if _, err := s.Get(ctx, userID, portfolioID); err != nil {
		return err
	}
	if err := s.portfolios.Delete(ctx, portfolioID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	logger.Info("portfolio deleted",
		"module", "portfolio", "action", "delete", "resource", "portfolio", "result", "ok",
		"portfolio_id", portfolioID)
	return nil
}

func (s *portfolioService) UpdateHoldings(ctx context.Context, userID, portfolioID int64, inputs []HoldingInput) (model.Portfolio, error) {
	if _, err := s.Get(ctx, userID, portfolioID); err != nil {
		return model.Portfolio{}, err
	}
	if len(inputs) == 0 {
		return model.Portfolio{}, ErrInvalid
	}

	var sum float64
	holdings := make([]model.Holding, 0, len(inputs))
	for _, in := range inputs {
		code := strings.TrimSpace(in.FundCode)
		if code == "" || in.Weight <= 0 {
			return model.Portfolio{}, ErrInvalid
		}
		sum += in.Weight
		holdings = append(holdings, model.Holding{
			FundCode: code,
			FundName: in.FundName,
			Weight:   in.Weight,
			Amount:   in.Amount,
		})
	}
	if math.Abs(sum-1) > weightTolerance {
		return model.Portfolio{}, &WeightSumError{Sum: sum}
	}

	if err := s.portfolios.ReplaceHoldings(ctx, portfolioID, holdings); err != nil {
		return model.Portfolio{}, fmt.Errorf("replace holdings: %w", err)
	}
	return s.Get(ctx, userID, portfolioID)
}

func (s *portfolioService) Allocation(riskLevel string) RiskAllocation {
	return allocationForRisk(riskLevel)
}

func (s *portfolioService) Allocations() []RiskAllocation {
	return riskAllocations
}

func (s *portfolioService) RecommendedFunds(assetClass string) []RecommendedFund {
	return recommendedFunds[assetClass]
}

func (s *portfolioService) Analyze(ctx context.Context, userID, portfolioID int64) (PortfolioAnalysis, error) {
	p, err := s.Get(ctx, userID, portfolioID)
	if err != nil {
		return PortfolioAnalysis{}, err
	}
	if len(p.Holdings) == 0 {
		return PortfolioAnalysis{}, ErrInvalid
	}

	funds := make([]market.PortfolioFund, 0, len(p.Holdings))
	codes := make([]string, 0, len(p.Holdings))
	for _, h := range p.Holdings {
		funds = append(funds, market.PortfolioFund{FundCode: h.FundCode, Weight: h.Weight})
		codes = append(codes, h.FundCode)
	}

	var analysis PortfolioAnalysis
	if analysis.Risk, err = s.market.AnalyzePortfolioRisk(ctx, funds); err != nil {
		return PortfolioAnalysis{}, err
	}
	// Correlation needs at least two funds to mean anything.
	if len(codes) > 1 {
		if analysis.Correlation, err = s.market.Correlation(ctx, codes); err != nil {
			return PortfolioAnalysis{}, err
		}
	}
	if analysis.BackTest, err = s.market.BackTest(ctx, funds, "", ""); err != nil {
		return PortfolioAnalysis{}, err
	}
	if analysis.Diagnosis, err = s.market.DiagnosePortfolio(ctx, funds); err != nil {
		return PortfolioAnalysis{}, err
	}
	return analysis, nil
}

func (s *portfolioService) Simulate(params SimulationParams) (SimulationResult, error) {
	return runSimulation(params)
}
