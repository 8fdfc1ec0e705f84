package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Simulation is one immutable run of the landed-cost formula for a product.
// Rows are append-only; "latest simulation" is the most recently created one.
type Simulation struct {
	ID        uint `gorm:"primaryKey"`
	ProductID uint `gorm:"index:idx_simulations_product_created;not null"`

	Quantity     int             `gorm:"not null"`
	ExchangeRate decimal.Decimal `gorm:"type:decimal(10,4);not null"`

	FOBTotalUSD       decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	FreightTotalUSD   decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	InsuranceTotalUSD decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CustomsValueUSD   decimal.Decimal `gorm:"type:decimal(14,2);not null"`

	EstimatedTotalCostUSD decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	EstimatedTotalCostBRL decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	UnitCostBRL           decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	TargetSalePriceBRL decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	EstimatedMarginPct decimal.Decimal `gorm:"type:decimal(7,2);not null"`

	Approved bool `gorm:"not null"`
	Reason   *string

	CreatedAt time.Time `gorm:"index:idx_simulations_product_created"`
}
