package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"

	"importradar/internal/apierror"
	"importradar/internal/dto"
	"importradar/internal/model"
	"importradar/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ScoringService converts market signals and the latest simulation into a
// 0–100 viability score. At least one simulation is required; without it the
// score is not computable.
type ScoringService interface {
	Score(ctx context.Context, productID uint) (*dto.ScoreResponse, error)
	Ranking(ctx context.Context) ([]dto.RankingItem, error)
}

type scoringService struct {
	products repository.ProductRepository
	market   repository.MarketDataRepository
	sims     repository.SimulationRepository
	rdb      *redis.Client

	marginFloor decimal.Decimal
}

func NewScoringService(
	products repository.ProductRepository,
	market repository.MarketDataRepository,
	sims repository.SimulationRepository,
	rdb *redis.Client,
	marginFloorPct float64,
) ScoringService {
	return &scoringService{
		products:    products,
		market:      market,
		sims:        sims,
		rdb:         rdb,
		marginFloor: decimal.NewFromFloat(marginFloorPct),
	}
}

func (s *scoringService) Score(ctx context.Context, productID uint) (*dto.ScoreResponse, error) {
	// Cache hit path — invalidated by every score-relevant write.
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, scoreCacheKey(productID)).Bytes(); err == nil {
			var resp dto.ScoreResponse
			if json.Unmarshal(cached, &resp) == nil {
				return &resp, nil
			}
		}
	}

	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, mapNotFound(err, "produto")
	}

	latest, err := s.sims.FindLatestByProductID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: é necessária ao menos uma simulação", apierror.ErrNotComputable)
		}
		return nil, err
	}

	md, err := s.market.FindByProductID(ctx, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	resp := computeScore(p, md, latest, s.marginFloor)

	if s.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = s.rdb.Set(ctx, scoreCacheKey(productID), b, scoreCacheTTL).Err()
		}
	}
	return resp, nil
}

func (s *scoringService) Ranking(ctx context.Context) ([]dto.RankingItem, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, rankingCacheKey).Bytes(); err == nil {
			var items []dto.RankingItem
			if json.Unmarshal(cached, &items) == nil {
				return items, nil
			}
		}
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(products))
	for i := range products {
		ids = append(ids, products[i].ID)
	}

	latest, err := s.sims.LatestByProductIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	markets, err := s.market.ByProductIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]dto.RankingItem, 0, len(products))
	for i := range products {
		p := &products[i]
		sim, ok := latest[p.ID]
		if !ok {
			// Not computable yet — ranking only lists scored products.
			continue
		}
		var md *model.MarketData
		if m, ok := markets[p.ID]; ok {
			md = &m
		}
		score := computeScore(p, md, &sim, s.marginFloor)

		notes := ""
		if score.Notes != nil {
			notes = *score.Notes
		}
		items = append(items, dto.RankingItem{
			ProductID:        p.ID,
			ProductName:      p.Name,
			TotalScore:       score.TotalScore,
			DemandScore:      score.DemandScore,
			CompetitionScore: score.CompetitionScore,
			MarginScore:      score.MarginScore,
			RiskScore:        score.RiskScore,
			Classification:   score.Classification,
			Notes:            notes,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].TotalScore != items[j].TotalScore {
			return items[i].TotalScore > items[j].TotalScore
		}
		return items[i].ProductName < items[j].ProductName
	})

	if s.rdb != nil {
		if b, jsonErr := json.Marshal(items); jsonErr == nil {
			_ = s.rdb.Set(ctx, rankingCacheKey, b, scoreCacheTTL).Err()
		}
	}
	return items, nil
}

// ── Score computation ─────────────────────────────────────────────────────────
// All sub-scores are monotonic transforms of their inputs, deterministic for a
// given snapshot. Missing signals degrade toward a neutral-low band instead of
// failing the computation.

const (
	weightDemand      = 0.30
	weightCompetition = 0.20
	weightMargin      = 0.35
	weightRisk        = 0.15
)

func computeScore(p *model.Product, md *model.MarketData, latest *model.Simulation, floor decimal.Decimal) *dto.ScoreResponse {
	consMargin := conservativeMargin(p, latest, floor)

	demand, dailySales := demandScore(md)
	competition := competitionScore(md)
	margin := marginScore(consMargin)
	risk := riskScore(p)

	total := clampScore(math.Round(
		weightDemand*float64(demand) +
			weightCompetition*float64(competition) +
			weightMargin*float64(margin) +
			weightRisk*float64(risk)))

	resp := &dto.ScoreResponse{
		TotalScore:          total,
		Classification:      classify(total),
		DemandScore:         demand,
		CompetitionScore:    competition,
		MarginScore:         margin,
		RiskScore:           risk,
		HasLatestSimulation: true,
		EstimatedMarginPct:  &consMargin,
		Reasons:             scoreReasons(p, md, consMargin, floor, dailySales, demand),
		Notes:               scoreNotes(md),
	}
	if md != nil {
		resp.SalesPerDay = md.SalesPerDay
		resp.SalesPerMonth = md.SalesPerMonth
		resp.Visits = md.Visits
		resp.CompetitorCount = md.CompetitorCount
		resp.FullRatio = md.FullRatio
		resp.PriceAverageBRL = md.PriceAverageBRL
	}
	return resp
}

// demandScore is increasing in sales velocity and visits. Around 10 sales/day
// saturates the sales component; ~5000 visits saturates the visits component.
// A missing component contributes a fixed neutral-low 40.
func demandScore(md *model.MarketData) (int, *float64) {
	daily := dailySales(md)

	salesComponent := 40.0
	if daily != nil {
		salesComponent = math.Min(100, *daily*10)
	}

	visitsComponent := 40.0
	if md != nil && md.Visits != nil {
		visitsComponent = math.Min(100, float64(*md.Visits)/50)
	}

	return clampScore(math.Round(0.7*salesComponent + 0.3*visitsComponent)), daily
}

func dailySales(md *model.MarketData) *float64 {
	if md == nil {
		return nil
	}
	if md.SalesPerDay != nil {
		return md.SalesPerDay
	}
	if md.SalesPerMonth != nil {
		d := *md.SalesPerMonth / 30
		return &d
	}
	return nil
}

// competitionScore starts from 100 and subtracts penalties: 3 points per
// competitor (cap 60), ranking position past first place (cap 25), and up to
// 15 points when the niche is saturated with marketplace-fulfilled listings.
// Unknown signals cost a fixed mid penalty.
func competitionScore(md *model.MarketData) int {
	penalty := 0.0

	if md == nil || md.CompetitorCount == nil {
		penalty += 30
	} else {
		penalty += math.Min(60, float64(*md.CompetitorCount)*3)
	}

	if md == nil || md.RankingPosition == nil {
		penalty += 10
	} else {
		penalty += math.Min(25, float64(*md.RankingPosition-1))
	}

	if md == nil || md.FullRatio == nil {
		penalty += 5
	} else {
		ratio, _ := md.FullRatio.Float64()
		penalty += math.Min(15, ratio*0.15)
	}

	return clampScore(math.Round(100 - penalty))
}

// marginScore maps the conservative-scenario margin linearly: ≤0% → 0,
// ≥40% → 100.
func marginScore(consMargin decimal.Decimal) int {
	m, _ := consMargin.Float64()
	if m <= 0 {
		return 0
	}
	return clampScore(math.Round(m * 2.5))
}

// riskScore: higher = less risky. Fragility and unauthorized famous brands
// are the two observed risk drivers.
func riskScore(p *model.Product) int {
	score := 100
	if p.Fragile {
		score -= 20
	}
	if p.IsFamousBrand {
		if p.HasBrandAuthorization {
			score -= 10
		} else {
			score -= 50
		}
	}
	return clampScore(float64(score))
}

// classify buckets the total score; boundaries are inclusive.
func classify(total int) string {
	switch {
	case total >= 80:
		return dto.ClassificationCampeao
	case total >= 60:
		return dto.ClassificationBom
	case total >= 40:
		return dto.ClassificationArriscado
	default:
		return dto.ClassificationDescartar
	}
}

// scoreReasons lists the dominant factors, most important first, capped at 5.
// Rendered verbatim by the dashboard — wording and order must be stable for a
// given snapshot.
func scoreReasons(p *model.Product, md *model.MarketData, consMargin, floor decimal.Decimal, dailySales *float64, demand int) []string {
	reasons := make([]string, 0, 5)

	if consMargin.GreaterThanOrEqual(floor) {
		reasons = append(reasons, fmt.Sprintf("Margem de %s%% no cenário conservador", consMargin.StringFixed(1)))
	} else {
		reasons = append(reasons, fmt.Sprintf("Margem conservadora de %s%% abaixo do mínimo de %s%%",
			consMargin.StringFixed(1), floor.StringFixed(0)))
	}

	if p.IsFamousBrand && !p.HasBrandAuthorization {
		reasons = append(reasons, "Marca famosa sem autorização do titular")
	}

	switch {
	case dailySales == nil:
		reasons = append(reasons, "Sem dados de vendas — confiança reduzida")
	case demand >= 70:
		reasons = append(reasons, fmt.Sprintf("Demanda forte: ~%.1f vendas/dia", *dailySales))
	case demand < 30:
		reasons = append(reasons, fmt.Sprintf("Demanda fraca: ~%.1f vendas/dia", *dailySales))
	default:
		reasons = append(reasons, fmt.Sprintf("Demanda moderada: ~%.1f vendas/dia", *dailySales))
	}

	if md != nil && md.CompetitorCount != nil {
		switch c := *md.CompetitorCount; {
		case c >= 20:
			reasons = append(reasons, fmt.Sprintf("Concorrência alta: %d vendedores no nicho", c))
		case c <= 5:
			reasons = append(reasons, fmt.Sprintf("Concorrência baixa: %d vendedores no nicho", c))
		default:
			reasons = append(reasons, fmt.Sprintf("Concorrência moderada: %d vendedores no nicho", c))
		}
	} else {
		reasons = append(reasons, "Sem contagem de concorrentes")
	}

	if p.Fragile {
		reasons = append(reasons, "Produto frágil — manuseio e avaria encarecem a operação")
	}

	if len(reasons) > 5 {
		reasons = reasons[:5]
	}
	return reasons
}

func scoreNotes(md *model.MarketData) *string {
	if md == nil {
		n := "Dados de mercado ausentes; demanda e concorrência usam valores neutros."
		return &n
	}
	if md.SalesPerDay == nil && md.SalesPerMonth == nil {
		n := "Sinais de venda ausentes; confiança reduzida."
		return &n
	}
	return nil
}

func clampScore(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(v)
}
