package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"finedu/backend/internal/model"
	"finedu/backend/internal/snowflake"
)

type PortfolioRepository interface {
	Create(ctx context.Context, userID int64, name string, description *string) (model.Portfolio, error)
	GetByID(ctx context.Context, id int64) (model.Portfolio, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Portfolio, error)
	Delete(ctx context.Context, id int64) error
	// ReplaceHoldings swaps the full holding set in one transaction and bumps
	// the portfolio's updated_at.
	ReplaceHoldings(ctx context.Context, portfolioID int64, holdings []model.Holding) error
	ListHoldings(ctx context.Context, portfolioID int64) ([]model.Holding, error)
}

type portfolioRepository struct {
	db *sql.DB
}

func NewPortfolioRepository(db *sql.DB) PortfolioRepository {
	return &portfolioRepository{db: db}
}

func (r *portfolioRepository) Create(ctx context.Context, userID int64, name string, description *string) (model.Portfolio, error) {
	id := snowflake.NextID()
	now := time.Now().UTC()

	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO portfolios (id, user_id, name, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, userID, name, description, formatTime(now), formatTime(now),
	)
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("create portfolio: %w", err)
	}

	return model.Portfolio{
		ID:          id,
		UserID:      userID,
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (r *portfolioRepository) GetByID(ctx context.Context, id int64) (model.Portfolio, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, user_id, name, description, created_at, updated_at FROM portfolios WHERE id = ?`,
		id,
	)

	p, err := scanPortfolio(row)
	if err != nil {
		return model.Portfolio{}, err
	}

	holdings, err := r.ListHoldings(ctx, id)
	if err != nil {
		return model.Portfolio{}, err
	}
	p.Holdings = holdings
	return p, nil
}

func (r *portfolioRepository) ListByUser(ctx context.Context, userID int64) ([]model.Portfolio, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, user_id, name, description, created_at, updated_at
		 FROM portfolios WHERE user_id = ? ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var portfolios []model.Portfolio
	for rows.Next() {
		var p model.Portfolio
		var description sql.NullString
		var createdAt, updatedAt string
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &description, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if description.Valid {
			p.Description = &description.String
		}
		p.CreatedAt, _ = parseTime(createdAt)
		p.UpdatedAt, _ = parseTime(updatedAt)
		portfolios = append(portfolios, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range portfolios {
		holdings, err := r.ListHoldings(ctx, portfolios[i].ID)
		if err != nil {
			return nil, err
		}
		portfolios[i].Holdings = holdings
	}
	return portfolios, nil
}

func (r *portfolioRepository) Delete(ctx context.Context, id int64) error {
	// Holdings go with it via ON DELETE CASCADE.
	res, err := r.db.ExecContext(ctx, `DELETE FROM portfolios WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *portfolioRepository) ReplaceHoldings(ctx context.Context, portfolioID int64, holdings []model.Holding) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := formatTime(time.Now())

	if _, err := tx.ExecContext(ctx, `DELETE FROM holdings WHERE portfolio_id = ?`, portfolioID); err != nil {
		return fmt.Errorf("clear holdings: %w", err)
	}

	for _, h := range holdings {
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO holdings (id, portfolio_id, fund_code, fund_name, weight, amount, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			snowflake.NextID(), portfolioID, h.FundCode, h.FundName, h.Weight, h.Amount, now,
		)
		if err != nil {
			return fmt.Errorf("insert holding %s: %w", h.FundCode, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `UPDATE portfolios SET updated_at = ? WHERE id = ?`, now, portfolioID); err != nil {
		return fmt.Errorf("touch portfolio: %w", err)
	}

	return tx.Commit()
}

func (r *portfolioRepository) ListHoldings(ctx context.Context, portfolioID int64) ([]model.Holding, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, portfolio_id, fund_code, fund_name, weight, amount, updated_at
		 FROM holdings WHERE portfolio_id = ? ORDER BY weight DESC, fund_code`,
		portfolioID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holdings []model.Holding
	for rows.Next() {
		var h model.Holding
		var fundName sql.NullString
		var amount sql.NullFloat64
		var updatedAt string
		if err := rows.Scan(&h.ID, &h.PortfolioID, &h.FundCode, &fundName, &h.Weight, &amount, &updatedAt); err != nil {
			return nil, err
		}
		if fundName.Valid {
			h.FundName = &fundName.String
		}
		if amount.Valid {
			h.Amount = &amount.Float64
		}
		h.UpdatedAt, _ = parseTime(updatedAt)
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

func scanPortfolio(row *sql.Row) (model.Portfolio, error) {
	var p model.Portfolio
	var description sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&p.ID, &p.UserID, &p.Name, &description, &createdAt, &updatedAt)
	if err != nil {
		return model.Portfolio{}, err
	}
	if description.Valid {
		p.Description = &description.String
	}
	p.CreatedAt, _ = parseTime(createdAt)
	p.UpdatedAt, _ = parseTime(updatedAt)
	return p, nil
}
