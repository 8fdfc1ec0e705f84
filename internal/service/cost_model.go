package service

import (
	"fmt"

	"importradar/internal/model"

	"github.com/shopspring/decimal"
)

// ── Landed-cost model ─────────────────────────────────────────────────────────
// The simplified-import heuristic ("regra do ×2"): taxes, fees and duties are
// approximated as 100% of the customs value, so the estimated total cost is
// customs value × 2. Every simulation and every evaluation scenario runs
// through this single function.

// Scenario assumption factors. The conservative scenario is the authoritative
// basis for go/no-go: a weaker BRL and a discounted sale price must still
// clear the margin floor.
var (
	two            = decimal.NewFromInt(2)
	decimalHundred = decimal.NewFromInt(100)

	conservativeRateFactor  = decimal.RequireFromString("1.10")
	conservativePriceFactor = decimal.RequireFromString("0.90")
	optimisticRateFactor    = decimal.RequireFromString("0.95")
	optimisticPriceFactor   = decimal.RequireFromString("1.05")
)

// CostModelInput are the resolved inputs for one run. Unit values come from
// the product; overrides, when present, replace the unit×quantity totals.
type CostModelInput struct {
	Quantity           int
	ExchangeRate       decimal.Decimal
	TargetSalePriceBRL decimal.Decimal

	FOBUnitUSD       decimal.Decimal
	FreightUnitUSD   decimal.Decimal
	InsuranceUnitUSD decimal.Decimal

	FreightTotalOverrideUSD   *decimal.Decimal
	InsuranceTotalOverrideUSD *decimal.Decimal

	// MarginFloorPct is the approval threshold (policy constant).
	MarginFloorPct decimal.Decimal
}

// CostBreakdown is the output of one landed-cost run.
type CostBreakdown struct {
	FOBTotalUSD       decimal.Decimal
	FreightTotalUSD   decimal.Decimal
	InsuranceTotalUSD decimal.Decimal
	CustomsValueUSD   decimal.Decimal

	EstimatedTotalCostUSD decimal.Decimal
	EstimatedTotalCostBRL decimal.Decimal
	UnitCostBRL           decimal.Decimal

	EstimatedMarginPct decimal.Decimal

	Approved bool
	Reason   *string
}

// ComputeCostModel runs the formula. Inputs must be pre-validated
// (quantity > 0, rate > 0, target price > 0).
func ComputeCostModel(in CostModelInput) CostBreakdown {
	qty := decimal.NewFromInt(int64(in.Quantity))

	fobTotal := in.FOBUnitUSD.Mul(qty).Round(2)

	freightTotal := in.FreightUnitUSD.Mul(qty)
	if in.FreightTotalOverrideUSD != nil {
		freightTotal = *in.FreightTotalOverrideUSD
	}
	freightTotal = freightTotal.Round(2)

	insuranceTotal := in.InsuranceUnitUSD.Mul(qty)
	if in.InsuranceTotalOverrideUSD != nil {
		insuranceTotal = *in.InsuranceTotalOverrideUSD
	}
	insuranceTotal = insuranceTotal.Round(2)

	customs := fobTotal.Add(freightTotal).Add(insuranceTotal)
	totalUSD := customs.Mul(two)
	totalBRL := totalUSD.Mul(in.ExchangeRate).Round(2)
	unitCost := totalBRL.Div(qty).Round(2)

	margin := in.TargetSalePriceBRL.Sub(unitCost).
		Div(in.TargetSalePriceBRL).
		Mul(decimalHundred).
		Round(2)

	out := CostBreakdown{
		FOBTotalUSD:           fobTotal,
		FreightTotalUSD:       freightTotal,
		InsuranceTotalUSD:     insuranceTotal,
		CustomsValueUSD:       customs,
		EstimatedTotalCostUSD: totalUSD,
		EstimatedTotalCostBRL: totalBRL,
		UnitCostBRL:           unitCost,
		EstimatedMarginPct:    margin,
		Approved:              margin.GreaterThanOrEqual(in.MarginFloorPct),
	}
	if !out.Approved {
		reason := fmt.Sprintf("Margem de %s%% abaixo do mínimo de %s%%",
			margin.StringFixed(2), in.MarginFloorPct.StringFixed(2))
		out.Reason = &reason
	}
	return out
}

// scenarioInput derives the cost-model input for one scenario kind from a
// product's cost fields and the assumptions of its reference simulation.
// Returns false when the product lacks a FOB price (nothing to recompute).
func scenarioInput(p *model.Product, ref *model.Simulation, kind string, floor decimal.Decimal) (CostModelInput, bool) {
	if p.FOBPriceUSD == nil {
		return CostModelInput{}, false
	}

	rate := ref.ExchangeRate
	price := ref.TargetSalePriceBRL
	switch kind {
	case "conservative":
		rate = rate.Mul(conservativeRateFactor).Round(4)
		price = price.Mul(conservativePriceFactor).Round(2)
	case "optimistic":
		rate = rate.Mul(optimisticRateFactor).Round(4)
		price = price.Mul(optimisticPriceFactor).Round(2)
	}

	in := CostModelInput{
		Quantity:           ref.Quantity,
		ExchangeRate:       rate,
		TargetSalePriceBRL: price,
		FOBUnitUSD:         *p.FOBPriceUSD,
		MarginFloorPct:     floor,
	}
	if p.FreightUSD != nil {
		in.FreightUnitUSD = *p.FreightUSD
	}
	if p.InsuranceUSD != nil {
		in.InsuranceUnitUSD = *p.InsuranceUSD
	}
	return in, true
}

// conservativeMargin recomputes the conservative-scenario margin for scoring.
// Falls back to the stored simulation margin when the product's cost fields
// were removed after the simulation ran.
func conservativeMargin(p *model.Product, latest *model.Simulation, floor decimal.Decimal) decimal.Decimal {
	if in, ok := scenarioInput(p, latest, "conservative", floor); ok {
		return ComputeCostModel(in).EstimatedMarginPct
	}
	return latest.EstimatedMarginPct
}
