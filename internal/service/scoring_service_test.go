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

func TestClassifyBoundariesAreInclusive(t *testing.T) {
	cases := map[int]string{
		100: dto.ClassificationCampeao,
		80:  dto.ClassificationCampeao,
		79:  dto.ClassificationBom,
		60:  dto.ClassificationBom,
		59:  dto.ClassificationArriscado,
		40:  dto.ClassificationArriscado,
		39:  dto.ClassificationDescartar,
		0:   dto.ClassificationDescartar,
	}
	for total, want := range cases {
		assert.Equal(t, want, classify(total), "total=%d", total)
	}
}

func TestDemandScoreIsMonotonicInSales(t *testing.T) {
	low := &model.MarketData{SalesPerDay: f64p(1)}
	mid := &model.MarketData{SalesPerDay: f64p(5)}
	high := &model.MarketData{SalesPerDay: f64p(12)}

	sLow, _ := demandScore(low)
	sMid, _ := demandScore(mid)
	sHigh, _ := demandScore(high)

	assert.Less(t, sLow, sMid)
	assert.Less(t, sMid, sHigh)
	// 10+ sales/day saturates the sales component.
	sat, _ := demandScore(&model.MarketData{SalesPerDay: f64p(50)})
	assert.Equal(t, sHigh, sat)
}

func TestDemandScoreDerivesDailyFromMonthly(t *testing.T) {
	daily := &model.MarketData{SalesPerDay: f64p(4)}
	monthly := &model.MarketData{SalesPerMonth: f64p(120)}

	sDaily, _ := demandScore(daily)
	sMonthly, _ := demandScore(monthly)
	assert.Equal(t, sDaily, sMonthly)
}

func TestDemandScoreMissingDataIsNeutral(t *testing.T) {
	s, daily := demandScore(nil)
	assert.Nil(t, daily)
	assert.Equal(t, 40, s)
}

func TestCompetitionScoreDecreasesWithCompetitors(t *testing.T) {
	few := &model.MarketData{CompetitorCount: intp(2), RankingPosition: intp(1), FullRatio: decp("0")}
	many := &model.MarketData{CompetitorCount: intp(30), RankingPosition: intp(1), FullRatio: decp("0")}

	assert.Greater(t, competitionScore(few), competitionScore(many))
	// 20+ competitors cap the penalty at 60.
	assert.Equal(t, competitionScore(many), competitionScore(&model.MarketData{
		CompetitorCount: intp(99), RankingPosition: intp(1), FullRatio: decp("0"),
	}))
}

func TestRiskScorePenalties(t *testing.T) {
	assert.Equal(t, 100, riskScore(&model.Product{}))
	assert.Equal(t, 80, riskScore(&model.Product{Fragile: true}))
	assert.Equal(t, 90, riskScore(&model.Product{IsFamousBrand: true, HasBrandAuthorization: true}))
	assert.Equal(t, 50, riskScore(&model.Product{IsFamousBrand: true}))
	assert.Equal(t, 30, riskScore(&model.Product{IsFamousBrand: true, Fragile: true}))
}

func TestMarginScoreMapping(t *testing.T) {
	assert.Equal(t, 0, marginScore(dec("-10")))
	assert.Equal(t, 0, marginScore(dec("0")))
	assert.Equal(t, 50, marginScore(dec("20")))
	assert.Equal(t, 100, marginScore(dec("40")))
	assert.Equal(t, 100, marginScore(dec("55")))
}

func TestComputeScoreIsDeterministic(t *testing.T) {
	p := &model.Product{FOBPriceUSD: decp("2.50"), FreightUSD: decp("0.80")}
	md := &model.MarketData{SalesPerDay: f64p(6), Visits: intp(3000), CompetitorCount: intp(8)}
	sim := &model.Simulation{Quantity: 100, ExchangeRate: dec("5.20"), TargetSalePriceBRL: dec("49.90")}

	a := computeScore(p, md, sim, dec("25"))
	b := computeScore(p, md, sim, dec("25"))
	assert.Equal(t, a, b)
	assert.NotEmpty(t, a.Reasons)
	assert.LessOrEqual(t, len(a.Reasons), 5)
	assert.True(t, a.HasLatestSimulation)
}

func TestScoreRequiresSimulation(t *testing.T) {
	products := newStubProductRepo()
	require.NoError(t, products.Create(context.Background(), &model.Product{Name: "Caneca"}))

	svc := NewScoringService(products, newStubMarketRepo(), newStubSimulationRepo(), nil, 25)
	_, err := svc.Score(context.Background(), 1)
	assert.True(t, errors.Is(err, apierror.ErrNotComputable))
}

func TestScoreUnknownProductIs404(t *testing.T) {
	svc := NewScoringService(newStubProductRepo(), newStubMarketRepo(), newStubSimulationRepo(), nil, 25)
	_, err := svc.Score(context.Background(), 42)
	assert.True(t, errors.Is(err, apierror.ErrNotFound))
}

func TestRankingOrdersByScoreAndSkipsUnscored(t *testing.T) {
	ctx := context.Background()
	products := newStubProductRepo()
	market := newStubMarketRepo()
	sims := newStubSimulationRepo()

	strong := &model.Product{Name: "Suporte", FOBPriceUSD: decp("1.00"), FreightUSD: decp("0.10")}
	weak := &model.Product{Name: "Fone réplica", FOBPriceUSD: decp("4.00"), IsFamousBrand: true}
	unsimulated := &model.Product{Name: "Luminária", FOBPriceUSD: decp("3.00")}
	require.NoError(t, products.Create(ctx, strong))
	require.NoError(t, products.Create(ctx, weak))
	require.NoError(t, products.Create(ctx, unsimulated))

	require.NoError(t, market.Upsert(ctx, &model.MarketData{
		ProductID: strong.ID, SalesPerDay: f64p(9), CompetitorCount: intp(4), RankingPosition: intp(1),
	}))

	require.NoError(t, sims.Create(ctx, &model.Simulation{
		ProductID: strong.ID, Quantity: 100, ExchangeRate: dec("5.00"),
		TargetSalePriceBRL: dec("30.00"), EstimatedMarginPct: dec("55.00"),
	}))
	require.NoError(t, sims.Create(ctx, &model.Simulation{
		ProductID: weak.ID, Quantity: 100, ExchangeRate: dec("5.00"),
		TargetSalePriceBRL: dec("45.00"), EstimatedMarginPct: dec("6.00"),
	}))

	svc := NewScoringService(products, market, sims, nil, 25)
	items, err := svc.Ranking(ctx)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, strong.ID, items[0].ProductID)
	assert.Equal(t, weak.ID, items[1].ProductID)
	assert.Greater(t, items[0].TotalScore, items[1].TotalScore)
}
