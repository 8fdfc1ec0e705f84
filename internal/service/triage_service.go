package service

import (
	"context"
	"fmt"
	"sort"

	"importradar/internal/dto"
	"importradar/internal/model"
	"importradar/internal/repository"

	"github.com/shopspring/decimal"
)

// TriageService builds the prioritized work queue: which product to look at
// next and what is blocking it.
type TriageService interface {
	List(ctx context.Context, filter dto.TriageFilter) ([]dto.TriageItem, error)
}

type triageService struct {
	products  repository.ProductRepository
	market    repository.MarketDataRepository
	sims      repository.SimulationRepository
	decisions repository.DecisionRepository

	marginFloor decimal.Decimal
}

func NewTriageService(
	products repository.ProductRepository,
	market repository.MarketDataRepository,
	sims repository.SimulationRepository,
	decisions repository.DecisionRepository,
	marginFloorPct float64,
) TriageService {
	return &triageService{
		products:    products,
		market:      market,
		sims:        sims,
		decisions:   decisions,
		marginFloor: decimal.NewFromFloat(marginFloorPct),
	}
}

// Status precedence: missing costs dominate everything else — without FOB and
// freight no simulation is meaningful, so market gaps are reported only after
// the costs exist.
func triageStatus(p *model.Product, hasMarket, hasSim bool) string {
	switch {
	case !p.HasFOB() || !p.HasFreight():
		return dto.TriageNeedsCosts
	case !hasMarket:
		return dto.TriageNeedsMarket
	case !hasSim:
		return dto.TriageNeedsSimulation
	default:
		return dto.TriageReady
	}
}

var triageNextAction = map[string]string{
	dto.TriageNeedsCosts:      "Cadastrar custos (FOB e frete)",
	dto.TriageNeedsMarket:     "Preencher dados de mercado",
	dto.TriageNeedsSimulation: "Rodar a primeira simulação",
	dto.TriageReady:           "Revisar avaliação e decidir",
}

var triageStatusOrder = map[string]int{
	dto.TriageReady:           0,
	dto.TriageNeedsSimulation: 1,
	dto.TriageNeedsMarket:     2,
	dto.TriageNeedsCosts:      3,
}

// priorityRank is ascending: ready products first, and within a status band
// the higher-scoring product wins. Unscored products sit at the bottom of
// their band.
func priorityRank(status string, score *dto.ScoreResponse) int {
	rank := triageStatusOrder[status] * 100
	if score != nil {
		rank += 100 - score.TotalScore
	} else {
		rank += 100
	}
	return rank
}

func (s *triageService) List(ctx context.Context, filter dto.TriageFilter) ([]dto.TriageItem, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(products))
	for i := range products {
		ids = append(ids, products[i].ID)
	}

	markets, err := s.market.ByProductIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	latestSims, err := s.sims.LatestByProductIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	latestDecisions, err := s.decisions.LatestByProductIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]dto.TriageItem, 0, len(products))
	for i := range products {
		p := &products[i]

		var md *model.MarketData
		if m, ok := markets[p.ID]; ok {
			md = &m
		}
		var sim *model.Simulation
		if l, ok := latestSims[p.ID]; ok {
			sim = &l
		}

		status := triageStatus(p, md != nil, sim != nil)

		var score *dto.ScoreResponse
		if filter.IncludeScore && sim != nil {
			score = computeScore(p, md, sim, s.marginFloor)
			if !filter.IncludeNotes {
				score.Notes = nil
			}
		}

		item := dto.TriageItem{
			ProductID:           p.ID,
			ProductName:         p.Name,
			Category:            p.Category,
			CreatedAt:           formatTime(p.CreatedAt),
			FOBPriceUSD:         p.FOBPriceUSD,
			FreightUSD:          p.FreightUSD,
			InsuranceUSD:        p.InsuranceUSD,
			HasFOB:              p.HasFOB(),
			HasFreight:          p.HasFreight(),
			HasMarketData:       md != nil,
			HasLatestSimulation: sim != nil,
			Status:              status,
			NextAction:          triageNextAction[status],
			PriorityRank:        priorityRank(status, score),
			Score:               score,
			Alerts:              triageAlerts(p, md, sim, s.marginFloor),
		}
		if sim != nil {
			item.LastSimulation = simulationToSummary(sim)
		}
		if d, ok := latestDecisions[p.ID]; ok {
			item.LatestDecision = decisionToResponse(&d)
		}
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].PriorityRank != items[j].PriorityRank {
			return items[i].PriorityRank < items[j].PriorityRank
		}
		// Newer products first inside the same band.
		return items[i].ProductID > items[j].ProductID
	})

	if filter.Limit > 0 && len(items) > filter.Limit {
		items = items[:filter.Limit]
	}
	return items, nil
}

// triageAlerts flags conditions that should catch the operator's eye
// regardless of status.
func triageAlerts(p *model.Product, md *model.MarketData, sim *model.Simulation, floor decimal.Decimal) []string {
	alerts := make([]string, 0, 3)
	if p.IsFamousBrand && !p.HasBrandAuthorization {
		alerts = append(alerts, "Marca famosa sem autorização do titular")
	}
	if sim != nil && sim.EstimatedMarginPct.LessThan(floor) {
		alerts = append(alerts, fmt.Sprintf("Última simulação com margem de %s%%, abaixo do mínimo de %s%%",
			sim.EstimatedMarginPct.StringFixed(2), floor.StringFixed(0)))
	}
	if md == nil && p.HasFOB() && p.HasFreight() {
		alerts = append(alerts, "Sem dados de mercado para estimar demanda")
	}
	return alerts
}
