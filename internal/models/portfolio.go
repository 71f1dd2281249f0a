package models

import "time"

// PortfolioItem represents a single holding. Quantity must be positive;
// prices are non-negative. Persisted on every mutation, reloaded at startup.
type PortfolioItem struct {
	ID           string    `json:"id" badgerhold:"key"`
	Symbol       string    `json:"symbol"`
	Name         string    `json:"name"`
	Quantity     float64   `json:"quantity"`
	BuyPrice     float64   `json:"buy_price"`
	CurrentPrice float64   `json:"current_price"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MarketValue returns quantity × current price.
func (p PortfolioItem) MarketValue() float64 {
	return p.Quantity * p.CurrentPrice
}

// CostBasis returns quantity × buy price.
func (p PortfolioItem) CostBasis() float64 {
	return p.Quantity * p.BuyPrice
}

// GainLoss returns the absolute P/L for the holding.
func (p PortfolioItem) GainLoss() float64 {
	return p.MarketValue() - p.CostBasis()
}

// PortfolioSummary holds the derived aggregates over a holdings list.
type PortfolioSummary struct {
	TotalValue   float64 `json:"total_value"`
	TotalCost    float64 `json:"total_cost"`
	GainLoss     float64 `json:"gain_loss"`
	GainLossPct  float64 `json:"gain_loss_pct"`
	HoldingCount int     `json:"holding_count"`
}

// Summarize computes the aggregate totals for a holdings list.
// GainLossPct is zero when total cost is zero.
func Summarize(items []PortfolioItem) PortfolioSummary {
	s := PortfolioSummary{HoldingCount: len(items)}
	for _, item := range items {
		s.TotalValue += item.MarketValue()
		s.TotalCost += item.CostBasis()
	}
	s.GainLoss = s.TotalValue - s.TotalCost
	if s.TotalCost > 0 {
		s.GainLossPct = s.GainLoss / s.TotalCost * 100
	}
	return s
}
