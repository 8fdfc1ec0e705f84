package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name         string  `json:"name"          validate:"required,min=2,max=160"`
	Category     *string `json:"category"`
	Description  *string `json:"description"`
	NCM          *string `json:"ncm"           validate:"omitempty,min=4,max=10"`
	SupplierName *string `json:"supplier_name"`

	FOBPriceUSD  *decimal.Decimal `json:"fob_price_usd"`
	FreightUSD   *decimal.Decimal `json:"freight_usd"`
	InsuranceUSD *decimal.Decimal `json:"insurance_usd"`
	WeightKg     *decimal.Decimal `json:"weight_kg"`

	Fragile               bool `json:"fragile"`
	IsFamousBrand         bool `json:"is_famous_brand"`
	HasBrandAuthorization bool `json:"has_brand_authorization"`
}

// UpdateProductRequest uses pointers throughout: only supplied fields change.
type UpdateProductRequest struct {
	Name         *string `json:"name"          validate:"omitempty,min=2,max=160"`
	Category     *string `json:"category"`
	Description  *string `json:"description"`
	NCM          *string `json:"ncm"           validate:"omitempty,min=4,max=10"`
	SupplierName *string `json:"supplier_name"`

	FOBPriceUSD  *decimal.Decimal `json:"fob_price_usd"`
	FreightUSD   *decimal.Decimal `json:"freight_usd"`
	InsuranceUSD *decimal.Decimal `json:"insurance_usd"`
	WeightKg     *decimal.Decimal `json:"weight_kg"`

	Fragile               *bool `json:"fragile"`
	IsFamousBrand         *bool `json:"is_famous_brand"`
	HasBrandAuthorization *bool `json:"has_brand_authorization"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ProductResponse serializes decimals as strings (shopspring default) so the
// dashboard can parse them without float precision loss.
type ProductResponse struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Category     *string `json:"category"`
	Description  *string `json:"description"`
	NCM          *string `json:"ncm"`
	SupplierName *string `json:"supplier_name"`

	FOBPriceUSD  *decimal.Decimal `json:"fob_price_usd"`
	FreightUSD   *decimal.Decimal `json:"freight_usd"`
	InsuranceUSD *decimal.Decimal `json:"insurance_usd"`
	WeightKg     *decimal.Decimal `json:"weight_kg"`

	Fragile               bool `json:"fragile"`
	IsFamousBrand         bool `json:"is_famous_brand"`
	HasBrandAuthorization bool `json:"has_brand_authorization"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
