package service

import (
	"context"
	"errors"
	"testing"

	"importradar/internal/apierror"
	"importradar/internal/dto"
	"importradar/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type evalFixture struct {
	ctx       context.Context
	products  *stubProductRepo
	market    *stubMarketRepo
	sims      *stubSimulationRepo
	decisions *stubDecisionRepo
	svc       EvaluationService
}

func newEvalFixture(t *testing.T) *evalFixture {
	t.Helper()
	f := &evalFixture{
		ctx:       context.Background(),
		products:  newStubProductRepo(),
		market:    newStubMarketRepo(),
		sims:      newStubSimulationRepo(),
		decisions: newStubDecisionRepo(),
	}
	f.svc = NewEvaluationService(f.products, f.market, f.sims, f.decisions, 25)
	return f
}

func TestEvaluateApprovesOnConservativeMargin(t *testing.T) {
	f := newEvalFixture(t)
	p := &model.Product{
		Name: "Suporte", NCM: strp("3926.90.90"),
		FOBPriceUSD: decp("1.00"), FreightUSD: decp("0.10"),
	}
	require.NoError(t, f.products.Create(f.ctx, p))
	require.NoError(t, f.market.Upsert(f.ctx, &model.MarketData{ProductID: p.ID, SalesPerDay: f64p(6)}))
	require.NoError(t, f.sims.Create(f.ctx, &model.Simulation{
		ProductID: p.ID, Quantity: 100, ExchangeRate: dec("5.00"), TargetSalePriceBRL: dec("30.00"),
	}))

	resp, err := f.svc.Evaluate(f.ctx, p.ID)
	require.NoError(t, err)

	// Conservative: rate 5.50, price 27.00, unit cost 12.10 → margem 55.19%.
	assert.Equal(t, dto.EvalApprove, resp.Decision)
	assert.Empty(t, resp.Blockers)
	require.Len(t, resp.Scenarios, 3)
	assert.Equal(t, dto.ScenarioBase, resp.Scenarios[0].Kind)
	cons := resp.Scenarios[1]
	assert.Equal(t, dto.ScenarioConservative, cons.Kind)
	assert.True(t, cons.Approved)
}

func TestEvaluateBlockerVetoesApproval(t *testing.T) {
	f := newEvalFixture(t)
	p := &model.Product{
		Name: "Fone réplica", FOBPriceUSD: decp("0.50"), FreightUSD: decp("0.05"),
		IsFamousBrand: true,
	}
	require.NoError(t, f.products.Create(f.ctx, p))
	// Excellent margin — the blocker must still win.
	require.NoError(t, f.sims.Create(f.ctx, &model.Simulation{
		ProductID: p.ID, Quantity: 100, ExchangeRate: dec("5.00"), TargetSalePriceBRL: dec("50.00"),
	}))

	resp, err := f.svc.Evaluate(f.ctx, p.ID)
	require.NoError(t, err)

	require.Len(t, resp.Blockers, 1)
	assert.Equal(t, "brand_authorization", resp.Blockers[0].Key)
	assert.Equal(t, dto.EvalReject, resp.Decision)
	assert.Equal(t, resp.Blockers[0].Reason, resp.DecisionReason)
}

func TestEvaluateAuthorizedBrandIsNotBlocked(t *testing.T) {
	f := newEvalFixture(t)
	p := &model.Product{
		Name: "Marca licenciada", FOBPriceUSD: decp("1.00"), FreightUSD: decp("0.10"),
		IsFamousBrand: true, HasBrandAuthorization: true,
	}
	require.NoError(t, f.products.Create(f.ctx, p))
	require.NoError(t, f.sims.Create(f.ctx, &model.Simulation{
		ProductID: p.ID, Quantity: 100, ExchangeRate: dec("5.00"), TargetSalePriceBRL: dec("30.00"),
	}))

	resp, err := f.svc.Evaluate(f.ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, resp.Blockers)
	assert.Equal(t, dto.EvalApprove, resp.Decision)
}

func TestEvaluateWithoutSimulationNeedsData(t *testing.T) {
	f := newEvalFixture(t)
	p := &model.Product{Name: "Luminária"}
	require.NoError(t, f.products.Create(f.ctx, p))

	resp, err := f.svc.Evaluate(f.ctx, p.ID)
	require.NoError(t, err)

	assert.Equal(t, dto.EvalNeedsData, resp.Decision)
	assert.Empty(t, resp.Scenarios)
}

func TestEvaluateRejectsBelowFloor(t *testing.T) {
	f := newEvalFixture(t)
	p := &model.Product{Name: "Caneca", FOBPriceUSD: decp("2.00"), FreightUSD: decp("0.50")}
	require.NoError(t, f.products.Create(f.ctx, p))
	// Base margin barely positive; conservative pushes it under the floor.
	require.NoError(t, f.sims.Create(f.ctx, &model.Simulation{
		ProductID: p.ID, Quantity: 100, ExchangeRate: dec("5.00"), TargetSalePriceBRL: dec("28.00"),
	}))

	resp, err := f.svc.Evaluate(f.ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.EvalReject, resp.Decision)
}

func TestEvaluateCompleteness(t *testing.T) {
	f := newEvalFixture(t)
	p := &model.Product{
		Name: "Suporte", NCM: strp("3926.90.90"),
		FOBPriceUSD: decp("1.80"), FreightUSD: decp("0.45"),
	}
	require.NoError(t, f.products.Create(f.ctx, p))

	resp, err := f.svc.Evaluate(f.ctx, p.ID)
	require.NoError(t, err)

	// fob, freight, ncm and brand authorization complete; market data and
	// simulation missing → 4/6 ≈ 67%.
	assert.Equal(t, 67, resp.Completeness.Percent)
	assert.Len(t, resp.Completeness.Items, 6)
	assert.Len(t, resp.Completeness.Missing, 2)
	assert.Contains(t, resp.Completeness.Missing, "Dados de mercado")
	assert.Contains(t, resp.Completeness.Missing, "Simulação de custos")
}

func TestEvaluatePillarStatuses(t *testing.T) {
	f := newEvalFixture(t)
	p := &model.Product{
		Name: "Suporte", FOBPriceUSD: decp("1.00"), FreightUSD: decp("0.10"),
		WeightKg: decp("0.120"),
	}
	require.NoError(t, f.products.Create(f.ctx, p))
	require.NoError(t, f.market.Upsert(f.ctx, &model.MarketData{
		ProductID: p.ID, SalesPerDay: f64p(9), Visits: intp(4000),
	}))
	require.NoError(t, f.sims.Create(f.ctx, &model.Simulation{
		ProductID: p.ID, Quantity: 100, ExchangeRate: dec("5.00"), TargetSalePriceBRL: dec("30.00"),
	}))

	resp, err := f.svc.Evaluate(f.ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, resp.Pillars, 4)

	byKey := map[string]dto.Pillar{}
	for _, pillar := range resp.Pillars {
		byKey[pillar.Key] = pillar
	}
	assert.Equal(t, dto.PillarGreen, byKey["market"].Status)
	assert.Equal(t, dto.PillarGreen, byKey["unit_economics"].Status)
	assert.Equal(t, dto.PillarGreen, byKey["operations"].Status)
	assert.Equal(t, dto.PillarGreen, byKey["risk"].Status)
}

func TestEvaluateLatestDecisionInHeader(t *testing.T) {
	f := newEvalFixture(t)
	p := &model.Product{Name: "Suporte"}
	require.NoError(t, f.products.Create(f.ctx, p))
	require.NoError(t, f.decisions.Create(f.ctx, &model.ProductDecision{
		ProductID: p.ID, Decision: model.DecisionNeedsData, Reason: "faltam custos",
	}))
	require.NoError(t, f.decisions.Create(f.ctx, &model.ProductDecision{
		ProductID: p.ID, Decision: model.DecisionReject, Reason: "nicho saturado",
	}))

	resp, err := f.svc.Evaluate(f.ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, resp.Header.LatestDecision)
	assert.Equal(t, model.DecisionReject, resp.Header.LatestDecision.Decision)
}

func TestEvaluateUnknownProduct(t *testing.T) {
	f := newEvalFixture(t)
	_, err := f.svc.Evaluate(f.ctx, 123)
	assert.True(t, errors.Is(err, apierror.ErrNotFound))
}
