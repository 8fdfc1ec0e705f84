package service

import (
	"context"
	"fmt"

	"importradar/internal/apierror"
	"importradar/internal/dto"
	"importradar/internal/model"
	"importradar/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// RateProvider supplies the market USD→BRL rate when a simulation request
// does not carry an explicit one. Injected so tests can fake it.
type RateProvider interface {
	FetchUSDBRL(ctx context.Context) (decimal.Decimal, error)
}

// SimulationService runs and records landed-cost simulations.
type SimulationService interface {
	Simulate(ctx context.Context, productID uint, req dto.SimulateRequest) (*dto.SimulationResponse, error)
	// Last returns ErrNotFound while the product has no simulations —
	// a valid empty state for the caller, not a failure.
	Last(ctx context.Context, productID uint) (*dto.SimulationResponse, error)
}

type simulationService struct {
	products repository.ProductRepository
	sims     repository.SimulationRepository
	rates    RateProvider
	rdb      *redis.Client

	marginFloor decimal.Decimal
}

func NewSimulationService(
	products repository.ProductRepository,
	sims repository.SimulationRepository,
	rates RateProvider,
	rdb *redis.Client,
	marginFloorPct float64,
) SimulationService {
	return &simulationService{
		products:    products,
		sims:        sims,
		rates:       rates,
		rdb:         rdb,
		marginFloor: decimal.NewFromFloat(marginFloorPct),
	}
}

func (s *simulationService) Simulate(ctx context.Context, productID uint, req dto.SimulateRequest) (*dto.SimulationResponse, error) {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, mapNotFound(err, "produto")
	}

	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity deve ser maior que zero", apierror.ErrValidation)
	}
	if !req.TargetSalePriceBRL.IsPositive() {
		return nil, fmt.Errorf("%w: target_sale_price_brl deve ser maior que zero", apierror.ErrValidation)
	}
	if req.ExchangeRate != nil && !req.ExchangeRate.IsPositive() {
		return nil, fmt.Errorf("%w: exchange_rate deve ser maior que zero", apierror.ErrValidation)
	}
	if p.FOBPriceUSD == nil {
		return nil, fmt.Errorf("%w: produto sem preço FOB cadastrado", apierror.ErrValidation)
	}

	// Explicit rate wins; otherwise ask the provider for the market rate.
	var rate decimal.Decimal
	if req.ExchangeRate != nil {
		rate = *req.ExchangeRate
	} else {
		rate, err = s.rates.FetchUSDBRL(ctx)
		if err != nil {
			return nil, fmt.Errorf("cotação USD/BRL indisponível: %w", err)
		}
	}

	in := CostModelInput{
		Quantity:                  req.Quantity,
		ExchangeRate:              rate,
		TargetSalePriceBRL:        req.TargetSalePriceBRL,
		FOBUnitUSD:                *p.FOBPriceUSD,
		FreightTotalOverrideUSD:   req.FreightTotalUSD,
		InsuranceTotalOverrideUSD: req.InsuranceTotalUSD,
		MarginFloorPct:            s.marginFloor,
	}
	if p.FreightUSD != nil {
		in.FreightUnitUSD = *p.FreightUSD
	}
	if p.InsuranceUSD != nil {
		in.InsuranceUnitUSD = *p.InsuranceUSD
	}

	out := ComputeCostModel(in)

	sim := &model.Simulation{
		ProductID:             productID,
		Quantity:              req.Quantity,
		ExchangeRate:          rate,
		FOBTotalUSD:           out.FOBTotalUSD,
		FreightTotalUSD:       out.FreightTotalUSD,
		InsuranceTotalUSD:     out.InsuranceTotalUSD,
		CustomsValueUSD:       out.CustomsValueUSD,
		EstimatedTotalCostUSD: out.EstimatedTotalCostUSD,
		EstimatedTotalCostBRL: out.EstimatedTotalCostBRL,
		UnitCostBRL:           out.UnitCostBRL,
		TargetSalePriceBRL:    req.TargetSalePriceBRL,
		EstimatedMarginPct:    out.EstimatedMarginPct,
		Approved:              out.Approved,
		Reason:                out.Reason,
	}
	if err := s.sims.Create(ctx, sim); err != nil {
		return nil, err
	}

	// A new latest simulation changes the score.
	invalidateScoreCache(ctx, s.rdb, productID)

	return simulationToResponse(sim), nil
}

func (s *simulationService) Last(ctx context.Context, productID uint) (*dto.SimulationResponse, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, mapNotFound(err, "produto")
	}
	sim, err := s.sims.FindLatestByProductID(ctx, productID)
	if err != nil {
		return nil, mapNotFound(err, "simulação")
	}
	return simulationToResponse(sim), nil
}
