package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketData holds observed marketplace signals for one product.
// One row per product (upsert semantics: posting again overwrites).
// Every signal is nullable — missing fields lower score confidence but
// never block computation.
type MarketData struct {
	ID        uint `gorm:"primaryKey"`
	ProductID uint `gorm:"uniqueIndex;not null"`

	PriceAverageBRL *decimal.Decimal `gorm:"type:decimal(12,2)"`
	SalesPerDay     *float64
	SalesPerMonth   *float64
	Visits          *int
	RankingPosition *int
	// FullRatio is the share (0–100) of competing listings fulfilled by the
	// marketplace's own logistics.
	FullRatio       *decimal.Decimal `gorm:"type:decimal(5,2)"`
	CompetitorCount *int
	ListingAgeDays  *int
	AvgReviews      *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
