package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"importradar/internal/dto"
	"importradar/internal/model"
	"importradar/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EvaluationService assembles the one-stop evaluation panel: registry
// completeness, scenario re-runs, pillar statuses, blockers and a computed
// go/no-go recommendation.
type EvaluationService interface {
	Evaluate(ctx context.Context, productID uint) (*dto.EvaluationResponse, error)
}

type evaluationService struct {
	products  repository.ProductRepository
	market    repository.MarketDataRepository
	sims      repository.SimulationRepository
	decisions repository.DecisionRepository

	marginFloor decimal.Decimal
}

func NewEvaluationService(
	products repository.ProductRepository,
	market repository.MarketDataRepository,
	sims repository.SimulationRepository,
	decisions repository.DecisionRepository,
	marginFloorPct float64,
) EvaluationService {
	return &evaluationService{
		products:    products,
		market:      market,
		sims:        sims,
		decisions:   decisions,
		marginFloor: decimal.NewFromFloat(marginFloorPct),
	}
}

func (s *evaluationService) Evaluate(ctx context.Context, productID uint) (*dto.EvaluationResponse, error) {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, mapNotFound(err, "produto")
	}

	md, err := s.market.FindByProductID(ctx, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	latest, err := s.sims.FindLatestByProductID(ctx, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	lastDecision, err := s.decisions.FindLatestByProductID(ctx, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	resp := &dto.EvaluationResponse{
		Header:       buildHeader(p, md, lastDecision),
		Completeness: buildCompleteness(p, md, latest),
		Blockers:     buildBlockers(p),
		Scenarios:    s.buildScenarios(p, latest),
		Notes:        buildNotes(p, md, latest),
	}

	conservative := findScenario(resp.Scenarios, dto.ScenarioConservative)
	resp.Decision, resp.DecisionReason = computeDecision(resp.Blockers, conservative, s.marginFloor)
	resp.Pillars = s.buildPillars(p, md, conservative)

	return resp, nil
}

func buildHeader(p *model.Product, md *model.MarketData, d *model.ProductDecision) dto.EvaluationHeader {
	h := dto.EvaluationHeader{
		ProductID:     p.ID,
		ProductName:   p.Name,
		Category:      p.Category,
		HasMarketData: md != nil,
		HasNCM:        p.NCM != nil && *p.NCM != "",
		HasSupplier:   p.SupplierName != nil && *p.SupplierName != "",
		HasDimensions: p.WeightKg != nil,
		CreatedAt:     formatTime(p.CreatedAt),
		UpdatedAt:     formatTime(p.UpdatedAt),
	}
	if d != nil {
		h.LatestDecision = decisionToResponse(d)
	}
	return h
}

// buildCompleteness tracks the six data points the workflow needs before a
// decision is trustworthy. Brand authorization counts as complete for
// non-famous brands.
func buildCompleteness(p *model.Product, md *model.MarketData, latest *model.Simulation) dto.Completeness {
	items := []dto.CompletenessItem{
		{Key: "fob", Label: "Preço FOB", IsComplete: p.HasFOB()},
		{Key: "freight", Label: "Frete internacional", IsComplete: p.HasFreight()},
		{Key: "market_data", Label: "Dados de mercado", IsComplete: md != nil},
		{Key: "simulation", Label: "Simulação de custos", IsComplete: latest != nil},
		{Key: "ncm", Label: "NCM", IsComplete: p.NCM != nil && *p.NCM != ""},
		{Key: "brand_authorization", Label: "Autorização de marca", IsComplete: !p.IsFamousBrand || p.HasBrandAuthorization},
	}

	complete := 0
	missing := make([]string, 0, len(items))
	for _, it := range items {
		if it.IsComplete {
			complete++
		} else {
			missing = append(missing, it.Label)
		}
	}
	return dto.Completeness{
		Percent: int(math.Round(float64(complete) / float64(len(items)) * 100)),
		Items:   items,
		Missing: missing,
	}
}

func buildBlockers(p *model.Product) []dto.Blocker {
	blockers := make([]dto.Blocker, 0, 1)
	if p.IsFamousBrand && !p.HasBrandAuthorization {
		blockers = append(blockers, dto.Blocker{
			Key:    "brand_authorization",
			Title:  "Marca famosa sem autorização",
			Reason: "Importar marca famosa sem autorização do titular expõe a apreensão e processo. Obtenha a autorização ou descarte o produto.",
		})
	}
	return blockers
}

// buildScenarios re-runs the cost model under the three assumption sets,
// anchored on the latest simulation's quantity, rate and target price.
func (s *evaluationService) buildScenarios(p *model.Product, latest *model.Simulation) []dto.ScenarioResult {
	if latest == nil {
		return []dto.ScenarioResult{}
	}

	kinds := []struct{ kind, name string }{
		{dto.ScenarioBase, "Base"},
		{dto.ScenarioConservative, "Conservador"},
		{dto.ScenarioOptimistic, "Otimista"},
	}

	out := make([]dto.ScenarioResult, 0, len(kinds))
	for _, k := range kinds {
		in, ok := scenarioInput(p, latest, k.kind, s.marginFloor)
		if !ok {
			return []dto.ScenarioResult{}
		}
		out = append(out, scenarioToResult(k.kind, k.name, in, ComputeCostModel(in)))
	}
	return out
}

func scenarioToResult(kind, name string, in CostModelInput, b CostBreakdown) dto.ScenarioResult {
	return dto.ScenarioResult{
		Kind:                  kind,
		Name:                  name,
		Quantity:              in.Quantity,
		ExchangeRate:          fdec(in.ExchangeRate),
		FOBTotalUSD:           fdec(b.FOBTotalUSD),
		FreightTotalUSD:       fdec(b.FreightTotalUSD),
		InsuranceTotalUSD:     fdec(b.InsuranceTotalUSD),
		CustomsValueUSD:       fdec(b.CustomsValueUSD),
		EstimatedTotalCostUSD: fdec(b.EstimatedTotalCostUSD),
		EstimatedTotalCostBRL: fdec(b.EstimatedTotalCostBRL),
		UnitCostBRL:           fdec(b.UnitCostBRL),
		TargetSalePriceBRL:    fdec(in.TargetSalePriceBRL),
		EstimatedMarginPct:    fdec(b.EstimatedMarginPct),
		Approved:              b.Approved,
		Reason:                b.Reason,
	}
}

func findScenario(scenarios []dto.ScenarioResult, kind string) *dto.ScenarioResult {
	for i := range scenarios {
		if scenarios[i].Kind == kind {
			return &scenarios[i]
		}
	}
	return nil
}

// computeDecision: blockers veto everything; then the conservative scenario
// decides; without one there is nothing to decide on yet.
func computeDecision(blockers []dto.Blocker, conservative *dto.ScenarioResult, floor decimal.Decimal) (string, string) {
	if len(blockers) > 0 {
		return dto.EvalReject, blockers[0].Reason
	}
	if conservative == nil {
		return dto.EvalNeedsData, "Cadastre os custos e rode ao menos uma simulação para liberar a recomendação."
	}
	if conservative.Approved {
		return dto.EvalApprove, fmt.Sprintf(
			"Margem de %.2f%% no cenário conservador, acima do mínimo de %s%%.",
			conservative.EstimatedMarginPct, floor.StringFixed(0))
	}
	return dto.EvalReject, fmt.Sprintf(
		"Margem de %.2f%% no cenário conservador, abaixo do mínimo de %s%%.",
		conservative.EstimatedMarginPct, floor.StringFixed(0))
}

func (s *evaluationService) buildPillars(p *model.Product, md *model.MarketData, conservative *dto.ScenarioResult) []dto.Pillar {
	return []dto.Pillar{
		marketPillar(md),
		unitEconomicsPillar(conservative, s.marginFloor),
		operationsPillar(p),
		riskPillar(p),
	}
}

func marketPillar(md *model.MarketData) dto.Pillar {
	pillar := dto.Pillar{
		Key:     "market",
		Title:   "Mercado",
		Metrics: make([]dto.Metric, 0, 4),
	}
	if md == nil {
		pillar.Status = dto.PillarUnknown
		pillar.Summary = "Sem dados de mercado."
		pillar.NextAction = strPtr("Preencher dados de mercado")
		return pillar
	}

	demand, daily := demandScore(md)
	switch {
	case demand >= 70:
		pillar.Status = dto.PillarGreen
		pillar.Summary = "Demanda forte para o nicho."
	case demand >= 40:
		pillar.Status = dto.PillarYellow
		pillar.Summary = "Demanda moderada; valide o volume antes de escalar."
	default:
		pillar.Status = dto.PillarRed
		pillar.Summary = "Demanda fraca nos sinais coletados."
	}
	if daily == nil {
		pillar.Status = dto.PillarUnknown
		pillar.Summary = "Sinais de venda ausentes."
		pillar.NextAction = strPtr("Informar vendas por dia ou por mês")
	}

	pillar.Metrics = append(pillar.Metrics,
		floatMetric("sales_per_day", "Vendas/dia", daily, nil),
		intMetric("visits", "Visitas", md.Visits, nil),
		intMetric("competitor_count", "Concorrentes", md.CompetitorCount, nil),
		decMetric("price_average_brl", "Preço médio", md.PriceAverageBRL, strPtr("BRL")),
	)
	return pillar
}

func unitEconomicsPillar(conservative *dto.ScenarioResult, floor decimal.Decimal) dto.Pillar {
	pillar := dto.Pillar{
		Key:     "unit_economics",
		Title:   "Economia unitária",
		Metrics: make([]dto.Metric, 0, 3),
	}
	if conservative == nil {
		pillar.Status = dto.PillarUnknown
		pillar.Summary = "Sem simulação para avaliar a margem."
		pillar.NextAction = strPtr("Rodar uma simulação de custos")
		return pillar
	}

	floorF, _ := floor.Float64()
	margin := conservative.EstimatedMarginPct
	switch {
	case margin >= floorF:
		pillar.Status = dto.PillarGreen
		pillar.Summary = fmt.Sprintf("Margem conservadora de %.2f%% acima do mínimo.", margin)
	case margin >= 0:
		pillar.Status = dto.PillarYellow
		pillar.Summary = fmt.Sprintf("Margem conservadora de %.2f%% abaixo do mínimo de %.0f%%.", margin, floorF)
		pillar.NextAction = strPtr("Negociar custos ou revisar o preço-alvo")
	default:
		pillar.Status = dto.PillarRed
		pillar.Summary = "Prejuízo no cenário conservador."
		pillar.NextAction = strPtr("Reestruturar custos antes de seguir")
	}

	pillar.Metrics = append(pillar.Metrics,
		floatMetric("unit_cost_brl", "Custo unitário", &conservative.UnitCostBRL, strPtr("BRL")),
		floatMetric("target_sale_price_brl", "Preço-alvo", &conservative.TargetSalePriceBRL, strPtr("BRL")),
		floatMetric("estimated_margin_pct", "Margem estimada", &margin, strPtr("%")),
	)
	return pillar
}

func operationsPillar(p *model.Product) dto.Pillar {
	pillar := dto.Pillar{
		Key:     "operations",
		Title:   "Operação",
		Metrics: make([]dto.Metric, 0, 2),
	}

	var weight *float64
	if p.WeightKg != nil {
		w, _ := p.WeightKg.Float64()
		weight = &w
	}
	fragileFlag := 0.0
	if p.Fragile {
		fragileFlag = 1
	}
	pillar.Metrics = append(pillar.Metrics,
		floatMetric("weight_kg", "Peso unitário", weight, strPtr("kg")),
		floatMetric("fragile", "Frágil", &fragileFlag, nil),
	)

	heavy := weight != nil && *weight >= 2
	switch {
	case weight == nil:
		pillar.Status = dto.PillarUnknown
		pillar.Summary = "Peso não informado."
		pillar.NextAction = strPtr("Cadastrar o peso unitário")
	case p.Fragile && heavy:
		pillar.Status = dto.PillarRed
		pillar.Summary = "Produto frágil e pesado: frete e avaria pressionam o custo."
	case p.Fragile || heavy:
		pillar.Status = dto.PillarYellow
		pillar.Summary = "Atenção ao manuseio ou ao peso no frete."
	default:
		pillar.Status = dto.PillarGreen
		pillar.Summary = "Logística simples: leve e não frágil."
	}
	return pillar
}

func riskPillar(p *model.Product) dto.Pillar {
	pillar := dto.Pillar{
		Key:     "risk",
		Title:   "Risco",
		Metrics: make([]dto.Metric, 0, 1),
	}
	score := float64(riskScore(p))
	pillar.Metrics = append(pillar.Metrics,
		floatMetric("risk_score", "Score de risco", &score, nil))

	switch {
	case p.IsFamousBrand && !p.HasBrandAuthorization:
		pillar.Status = dto.PillarRed
		pillar.Summary = "Marca famosa sem autorização do titular."
		pillar.NextAction = strPtr("Obter autorização ou descartar")
	case p.IsFamousBrand || p.Fragile:
		pillar.Status = dto.PillarYellow
		pillar.Summary = "Risco moderado: marca ou fragilidade exigem cuidado."
	default:
		pillar.Status = dto.PillarGreen
		pillar.Summary = "Sem fatores de risco relevantes."
	}
	return pillar
}

func buildNotes(p *model.Product, md *model.MarketData, latest *model.Simulation) []string {
	notes := make([]string, 0, 3)
	if md == nil {
		notes = append(notes, "Sem dados de mercado: a avaliação de demanda usa valores neutros.")
	}
	if latest == nil {
		notes = append(notes, "Nenhuma simulação registrada ainda.")
	}
	if p.NCM == nil || *p.NCM == "" {
		notes = append(notes, "NCM não informado: a estimativa usa a regra simplificada de impostos.")
	}
	return notes
}

func fdec(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func strPtr(s string) *string { return &s }

func floatMetric(key, label string, v *float64, unit *string) dto.Metric {
	return dto.Metric{Key: key, Label: label, Value: v, Unit: unit}
}

func intMetric(key, label string, v *int, unit *string) dto.Metric {
	var f *float64
	if v != nil {
		x := float64(*v)
		f = &x
	}
	return dto.Metric{Key: key, Label: label, Value: f, Unit: unit}
}

func decMetric(key, label string, v *decimal.Decimal, unit *string) dto.Metric {
	var f *float64
	if v != nil {
		x, _ := v.Float64()
		f = &x
	}
	return dto.Metric{Key: key, Label: label, Value: f, Unit: unit}
}
