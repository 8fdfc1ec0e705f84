package dto

import "github.com/shopspring/decimal"

// SimulateRequest is the input for one landed-cost simulation run.
// ExchangeRate omitted (or null) means "use the current market rate".
type SimulateRequest struct {
	Quantity           int              `json:"quantity"              validate:"required"`
	ExchangeRate       *decimal.Decimal `json:"exchange_rate"`
	TargetSalePriceBRL decimal.Decimal  `json:"target_sale_price_brl" validate:"required"`

	// Optional totals overriding the per-unit product fields.
	FreightTotalUSD   *decimal.Decimal `json:"freight_total_usd"`
	InsuranceTotalUSD *decimal.Decimal `json:"insurance_total_usd"`
}

// SimulationResponse mirrors the persisted record. Decimals serialize as
// strings; quantity and ids stay numeric.
type SimulationResponse struct {
	ID        uint `json:"id"`
	ProductID uint `json:"product_id"`

	Quantity     int             `json:"quantity"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`

	FOBTotalUSD       decimal.Decimal `json:"fob_total_usd"`
	FreightTotalUSD   decimal.Decimal `json:"freight_total_usd"`
	InsuranceTotalUSD decimal.Decimal `json:"insurance_total_usd"`
	CustomsValueUSD   decimal.Decimal `json:"customs_value_usd"`

	EstimatedTotalCostUSD decimal.Decimal `json:"estimated_total_cost_usd"`
	EstimatedTotalCostBRL decimal.Decimal `json:"estimated_total_cost_brl"`
	UnitCostBRL           decimal.Decimal `json:"unit_cost_brl"`

	TargetSalePriceBRL decimal.Decimal `json:"target_sale_price_brl"`
	EstimatedMarginPct decimal.Decimal `json:"estimated_margin_pct"`

	Approved bool    `json:"approved"`
	Reason   *string `json:"reason"`

	CreatedAt string `json:"created_at"`
}

// SimulationSummary is the condensed form embedded in triage rows.
type SimulationSummary struct {
	ID                 uint            `json:"id"`
	CreatedAt          string          `json:"created_at"`
	Approved           bool            `json:"approved"`
	UnitCostBRL        decimal.Decimal `json:"unit_cost_brl"`
	TargetSalePriceBRL decimal.Decimal `json:"target_sale_price_brl"`
	EstimatedMarginPct decimal.Decimal `json:"estimated_margin_pct"`
}
