package dto

import "github.com/shopspring/decimal"

// Score classifications, bucketed from total_score.
const (
	ClassificationCampeao   = "campeao"
	ClassificationBom       = "bom"
	ClassificationArriscado = "arriscado"
	ClassificationDescartar = "descartar"
)

// ScoreResponse is the full score payload for one product.
// Sub-scores are 0–100, higher is better — including risk_score, where
// higher means less risky.
type ScoreResponse struct {
	TotalScore     int    `json:"total_score"`
	Classification string `json:"classification"`

	DemandScore      int `json:"demand_score"`
	CompetitionScore int `json:"competition_score"`
	MarginScore      int `json:"margin_score"`
	RiskScore        int `json:"risk_score"`

	SalesPerDay     *float64 `json:"sales_per_day"`
	SalesPerMonth   *float64 `json:"sales_per_month"`
	Visits          *int     `json:"visits"`
	CompetitorCount *int     `json:"competitor_count"`

	FullRatio          *decimal.Decimal `json:"full_ratio"`
	PriceAverageBRL    *decimal.Decimal `json:"price_average_brl"`
	EstimatedMarginPct *decimal.Decimal `json:"estimated_margin_pct"`

	HasLatestSimulation bool `json:"has_latest_simulation"`

	// Dominant factors driving the score, most important first. Rendered
	// verbatim by the dashboard, so order must be deterministic.
	Reasons []string `json:"reasons"`

	Notes *string `json:"notes"`
}

// RankingItem is one row of GET /products/scores/ranking.
type RankingItem struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`

	TotalScore       int `json:"total_score"`
	DemandScore      int `json:"demand_score"`
	CompetitionScore int `json:"competition_score"`
	MarginScore      int `json:"margin_score"`
	RiskScore        int `json:"risk_score"`

	Classification string `json:"classification"`
	Notes          string `json:"notes"`
}
