package model

import "time"

// Portfolio is a user-built fund portfolio.
type Portfolio struct {
	ID          int64
	UserID      int64
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Holdings    []Holding
}

// Holding is a single fund position inside a portfolio.
type Holding struct {
	ID          int64
	PortfolioID int64
	FundCode    string
	FundName    *string
	Weight      float64
	Amount      *float64
	UpdatedAt   time.Time
}
