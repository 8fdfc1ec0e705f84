package service

import (
	"context"
	"fmt"

	"importradar/internal/apierror"
	"importradar/internal/dto"
	"importradar/internal/model"
	"importradar/internal/repository"

	"github.com/redis/go-redis/v9"
)

// MarketDataService handles the one-row-per-product marketplace signals.
type MarketDataService interface {
	// Get returns ErrNotFound while no data was ever upserted — the caller
	// treats that 404 as "no data yet", not as a failure.
	Get(ctx context.Context, productID uint) (*dto.MarketDataResponse, error)
	Upsert(ctx context.Context, productID uint, req dto.UpsertMarketDataRequest) (*dto.MarketDataResponse, error)
}

type marketDataService struct {
	repo     repository.MarketDataRepository
	products repository.ProductRepository
	rdb      *redis.Client
}

func NewMarketDataService(repo repository.MarketDataRepository, products repository.ProductRepository, rdb *redis.Client) MarketDataService {
	return &marketDataService{repo: repo, products: products, rdb: rdb}
}

func (s *marketDataService) Get(ctx context.Context, productID uint) (*dto.MarketDataResponse, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, mapNotFound(err, "produto")
	}
	md, err := s.repo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, mapNotFound(err, "dados de mercado")
	}
	return marketDataToResponse(md), nil
}

func (s *marketDataService) Upsert(ctx context.Context, productID uint, req dto.UpsertMarketDataRequest) (*dto.MarketDataResponse, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, mapNotFound(err, "produto")
	}

	if req.FullRatio != nil && (req.FullRatio.IsNegative() || req.FullRatio.GreaterThan(decimalHundred)) {
		return nil, fmt.Errorf("%w: full_ratio deve estar entre 0 e 100", apierror.ErrValidation)
	}
	if req.PriceAverageBRL != nil && req.PriceAverageBRL.IsNegative() {
		return nil, fmt.Errorf("%w: price_average_brl não pode ser negativo", apierror.ErrValidation)
	}

	md := &model.MarketData{
		ProductID:       productID,
		PriceAverageBRL: req.PriceAverageBRL,
		SalesPerDay:     req.SalesPerDay,
		SalesPerMonth:   req.SalesPerMonth,
		Visits:          req.Visits,
		RankingPosition: req.RankingPosition,
		FullRatio:       req.FullRatio,
		CompetitorCount: req.CompetitorCount,
		ListingAgeDays:  req.ListingAgeDays,
		AvgReviews:      req.AvgReviews,
	}
	if err := s.repo.Upsert(ctx, md); err != nil {
		return nil, err
	}

	// Fresh signals, stale score.
	invalidateScoreCache(ctx, s.rdb, productID)

	saved, err := s.repo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return marketDataToResponse(saved), nil
}
