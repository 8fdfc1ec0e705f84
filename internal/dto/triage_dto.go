package dto

import "github.com/shopspring/decimal"

// Triage statuses, ordered from ready to most blocked.
const (
	TriageReady           = "ready"
	TriageNeedsSimulation = "needs_simulation"
	TriageNeedsMarket     = "needs_market"
	TriageNeedsCosts      = "needs_costs"
)

// TriageFilter binds the query params of GET /products/triage.
type TriageFilter struct {
	Limit        int  `form:"limit,default=50" validate:"min=1,max=500"`
	IncludeScore bool `form:"include_score"`
	IncludeNotes bool `form:"include_notes"`
}

// TriageItem is one row of the prioritized work queue. priority_rank is
// ascending: the closer a product is to ready (and the higher it scores),
// the lower the rank.
type TriageItem struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Category    *string `json:"category"`
	CreatedAt   string  `json:"created_at"`

	FOBPriceUSD  *decimal.Decimal `json:"fob_price_usd"`
	FreightUSD   *decimal.Decimal `json:"freight_usd"`
	InsuranceUSD *decimal.Decimal `json:"insurance_usd"`

	HasFOB              bool `json:"has_fob"`
	HasFreight          bool `json:"has_freight"`
	HasMarketData       bool `json:"has_market_data"`
	HasLatestSimulation bool `json:"has_latest_simulation"`

	Status       string `json:"status"`
	NextAction   string `json:"next_action"`
	PriorityRank int    `json:"priority_rank"`

	LastSimulation *SimulationSummary `json:"last_simulation"`
	Score          *ScoreResponse     `json:"score"`
	LatestDecision *DecisionResponse  `json:"latest_decision"`

	Alerts []string `json:"alerts"`
}
