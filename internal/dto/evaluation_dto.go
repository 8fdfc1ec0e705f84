package dto

// Computed top-line recommendations. Distinct from the ledger's human
// decisions: this is a suggestion derived from the conservative scenario
// and the blocker list.
const (
	EvalApprove   = "approve"
	EvalReject    = "reject"
	EvalNeedsData = "needs_data"
)

// Scenario kinds. Decision validity rests on the conservative scenario only;
// base and optimistic are informational.
const (
	ScenarioBase         = "base"
	ScenarioConservative = "conservative"
	ScenarioOptimistic   = "optimistic"
)

// Pillar statuses.
const (
	PillarGreen   = "green"
	PillarYellow  = "yellow"
	PillarRed     = "red"
	PillarUnknown = "unknown"
)

type Metric struct {
	Key   string   `json:"key"`
	Label string   `json:"label"`
	Value *float64 `json:"value"`
	Unit  *string  `json:"unit,omitempty"`
	Help  *string  `json:"help,omitempty"`
}

type Pillar struct {
	Key        string   `json:"key"` // market | unit_economics | operations | risk
	Title      string   `json:"title"`
	Status     string   `json:"status"`
	Summary    string   `json:"summary"`
	NextAction *string  `json:"next_action,omitempty"`
	Metrics    []Metric `json:"metrics"`
}

type CompletenessItem struct {
	Key        string `json:"key"`
	Label      string `json:"label"`
	IsComplete bool   `json:"is_complete"`
}

type Completeness struct {
	Percent int                `json:"percent"`
	Items   []CompletenessItem `json:"items"`
	Missing []string           `json:"missing"`
}

type Blocker struct {
	Key    string `json:"key"`
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// ScenarioResult is a full re-run of the simulation formula under
// scenario-specific assumptions. Unlike persisted simulations, values are
// plain numbers — the dashboard charts them directly.
type ScenarioResult struct {
	Kind string `json:"kind"`
	Name string `json:"name"`

	Quantity     int     `json:"quantity"`
	ExchangeRate float64 `json:"exchange_rate"`

	FOBTotalUSD       float64 `json:"fob_total_usd"`
	FreightTotalUSD   float64 `json:"freight_total_usd"`
	InsuranceTotalUSD float64 `json:"insurance_total_usd"`
	CustomsValueUSD   float64 `json:"customs_value_usd"`

	EstimatedTotalCostUSD float64 `json:"estimated_total_cost_usd"`
	EstimatedTotalCostBRL float64 `json:"estimated_total_cost_brl"`
	UnitCostBRL           float64 `json:"unit_cost_brl"`

	TargetSalePriceBRL float64 `json:"target_sale_price_brl"`
	EstimatedMarginPct float64 `json:"estimated_margin_pct"`

	Approved bool    `json:"approved"`
	Reason   *string `json:"reason,omitempty"`
}

type EvaluationHeader struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Category    *string `json:"category"`

	HasMarketData bool `json:"has_market_data"`
	HasNCM        bool `json:"has_ncm"`
	HasSupplier   bool `json:"has_supplier"`
	HasDimensions bool `json:"has_dimensions"`

	LatestDecision *DecisionResponse `json:"latest_decision"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type EvaluationResponse struct {
	Header       EvaluationHeader `json:"header"`
	Completeness Completeness     `json:"completeness"`

	Decision       string `json:"decision"`
	DecisionReason string `json:"decision_reason"`

	Pillars   []Pillar         `json:"pillars"`
	Scenarios []ScenarioResult `json:"scenarios"`

	Blockers []Blocker `json:"blockers"`
	Notes    []string  `json:"notes"`
}
