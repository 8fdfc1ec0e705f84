package service

import (
	"time"

	"importradar/internal/dto"
	"importradar/internal/model"
)

const timeLayout = "2006-01-02T15:04:05Z"

func formatTime(t time.Time) string { return t.UTC().Format(timeLayout) }

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                    p.ID,
		Name:                  p.Name,
		Category:              p.Category,
		Description:           p.Description,
		NCM:                   p.NCM,
		SupplierName:          p.SupplierName,
		FOBPriceUSD:           p.FOBPriceUSD,
		FreightUSD:            p.FreightUSD,
		InsuranceUSD:          p.InsuranceUSD,
		WeightKg:              p.WeightKg,
		Fragile:               p.Fragile,
		IsFamousBrand:         p.IsFamousBrand,
		HasBrandAuthorization: p.HasBrandAuthorization,
		CreatedAt:             formatTime(p.CreatedAt),
		UpdatedAt:             formatTime(p.UpdatedAt),
	}
}

func marketDataToResponse(md *model.MarketData) *dto.MarketDataResponse {
	return &dto.MarketDataResponse{
		ID:              md.ID,
		ProductID:       md.ProductID,
		PriceAverageBRL: md.PriceAverageBRL,
		SalesPerDay:     md.SalesPerDay,
		SalesPerMonth:   md.SalesPerMonth,
		Visits:          md.Visits,
		RankingPosition: md.RankingPosition,
		FullRatio:       md.FullRatio,
		CompetitorCount: md.CompetitorCount,
		ListingAgeDays:  md.ListingAgeDays,
		AvgReviews:      md.AvgReviews,
		CreatedAt:       formatTime(md.CreatedAt),
		UpdatedAt:       formatTime(md.UpdatedAt),
	}
}

func simulationToResponse(s *model.Simulation) *dto.SimulationResponse {
	return &dto.SimulationResponse{
		ID:                    s.ID,
		ProductID:             s.ProductID,
		Quantity:              s.Quantity,
		ExchangeRate:          s.ExchangeRate,
		FOBTotalUSD:           s.FOBTotalUSD,
		FreightTotalUSD:       s.FreightTotalUSD,
		InsuranceTotalUSD:     s.InsuranceTotalUSD,
		CustomsValueUSD:       s.CustomsValueUSD,
		EstimatedTotalCostUSD: s.EstimatedTotalCostUSD,
		EstimatedTotalCostBRL: s.EstimatedTotalCostBRL,
		UnitCostBRL:           s.UnitCostBRL,
		TargetSalePriceBRL:    s.TargetSalePriceBRL,
		EstimatedMarginPct:    s.EstimatedMarginPct,
		Approved:              s.Approved,
		Reason:                s.Reason,
		CreatedAt:             formatTime(s.CreatedAt),
	}
}

func simulationToSummary(s *model.Simulation) *dto.SimulationSummary {
	return &dto.SimulationSummary{
		ID:                 s.ID,
		CreatedAt:          formatTime(s.CreatedAt),
		Approved:           s.Approved,
		UnitCostBRL:        s.UnitCostBRL,
		TargetSalePriceBRL: s.TargetSalePriceBRL,
		EstimatedMarginPct: s.EstimatedMarginPct,
	}
}

func decisionToResponse(d *model.ProductDecision) *dto.DecisionResponse {
	return &dto.DecisionResponse{
		ID:        d.ID,
		ProductID: d.ProductID,
		Decision:  d.Decision,
		Reason:    d.Reason,
		DecidedBy: d.DecidedBy,
		CreatedAt: formatTime(d.CreatedAt),
	}
}
