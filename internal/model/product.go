package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the registry record for an import candidate. Cost fields are
// nullable on purpose: a product can be registered before the supplier quote
// arrives, and triage will flag the gap (needs_costs).
type Product struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"index;not null"`
	Category    *string `gorm:"index"`
	Description *string

	// NCM is the Mercosur tariff code, when known.
	NCM          *string
	SupplierName *string

	FOBPriceUSD  *decimal.Decimal `gorm:"type:decimal(12,2)"`
	FreightUSD   *decimal.Decimal `gorm:"type:decimal(12,2)"`
	InsuranceUSD *decimal.Decimal `gorm:"type:decimal(12,2)"`
	WeightKg     *decimal.Decimal `gorm:"type:decimal(10,3)"`

	Fragile               bool `gorm:"not null;default:false"`
	IsFamousBrand         bool `gorm:"not null;default:false"`
	HasBrandAuthorization bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	MarketData  *MarketData       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Simulations []Simulation      `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Decisions   []ProductDecision `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// HasFOB reports whether the supplier unit price is on file.
func (p *Product) HasFOB() bool { return p.FOBPriceUSD != nil }

// HasFreight reports whether a per-unit freight estimate is on file.
func (p *Product) HasFreight() bool { return p.FreightUSD != nil }
