package dto

import "github.com/shopspring/decimal"

// UpsertMarketDataRequest carries observed marketplace signals.
// Every field is optional: absent data lowers score confidence downstream
// but is never rejected here.
type UpsertMarketDataRequest struct {
	PriceAverageBRL *decimal.Decimal `json:"price_average_brl"`
	SalesPerDay     *float64         `json:"sales_per_day"     validate:"omitempty,min=0"`
	SalesPerMonth   *float64         `json:"sales_per_month"   validate:"omitempty,min=0"`
	Visits          *int             `json:"visits"            validate:"omitempty,min=0"`
	RankingPosition *int             `json:"ranking_position"  validate:"omitempty,min=1"`
	FullRatio       *decimal.Decimal `json:"full_ratio"`
	CompetitorCount *int             `json:"competitor_count"  validate:"omitempty,min=0"`
	ListingAgeDays  *int             `json:"listing_age_days"  validate:"omitempty,min=0"`
	AvgReviews      *float64         `json:"avg_reviews"       validate:"omitempty,min=0"`
}

type MarketDataResponse struct {
	ID        uint `json:"id"`
	ProductID uint `json:"product_id"`

	PriceAverageBRL *decimal.Decimal `json:"price_average_brl"`
	SalesPerDay     *float64         `json:"sales_per_day"`
	SalesPerMonth   *float64         `json:"sales_per_month"`
	Visits          *int             `json:"visits"`
	RankingPosition *int             `json:"ranking_position"`
	FullRatio       *decimal.Decimal `json:"full_ratio"`
	CompetitorCount *int             `json:"competitor_count"`
	ListingAgeDays  *int             `json:"listing_age_days"`
	AvgReviews      *float64         `json:"avg_reviews"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
