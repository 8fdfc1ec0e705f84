package service

import (
	"context"
	"errors"
	"fmt"

	"importradar/internal/apierror"
	"importradar/internal/dto"
	"importradar/internal/model"
	"importradar/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductService defines the business logic contract for the registry.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.ProductResponse, error)
	List(ctx context.Context) ([]dto.ProductResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uint) error
}

type productService struct {
	repo repository.ProductRepository
	rdb  *redis.Client
}

func NewProductService(repo repository.ProductRepository, rdb *redis.Client) ProductService {
	return &productService{repo: repo, rdb: rdb}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	p := &model.Product{
		Name:                  req.Name,
		Category:              req.Category,
		Description:           req.Description,
		NCM:                   req.NCM,
		SupplierName:          req.SupplierName,
		FOBPriceUSD:           req.FOBPriceUSD,
		FreightUSD:            req.FreightUSD,
		InsuranceUSD:          req.InsuranceUSD,
		WeightKg:              req.WeightKg,
		Fragile:               req.Fragile,
		IsFamousBrand:         req.IsFamousBrand,
		HasBrandAuthorization: req.HasBrandAuthorization,
	}
	if err := validateCostFields(p); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) GetByID(ctx context.Context, id uint) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "produto")
	}
	return productToResponse(p), nil
}

func (s *productService) List(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, *productToResponse(&products[i]))
	}
	return out, nil
}

func (s *productService) Update(ctx context.Context, id uint, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "produto")
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Category != nil {
		p.Category = req.Category
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.NCM != nil {
		p.NCM = req.NCM
	}
	if req.SupplierName != nil {
		p.SupplierName = req.SupplierName
	}
	if req.FOBPriceUSD != nil {
		p.FOBPriceUSD = req.FOBPriceUSD
	}
	if req.FreightUSD != nil {
		p.FreightUSD = req.FreightUSD
	}
	if req.InsuranceUSD != nil {
		p.InsuranceUSD = req.InsuranceUSD
	}
	if req.WeightKg != nil {
		p.WeightKg = req.WeightKg
	}
	if req.Fragile != nil {
		p.Fragile = *req.Fragile
	}
	if req.IsFamousBrand != nil {
		p.IsFamousBrand = *req.IsFamousBrand
	}
	if req.HasBrandAuthorization != nil {
		p.HasBrandAuthorization = *req.HasBrandAuthorization
	}

	if err := validateCostFields(p); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	// Cost and risk fields feed the score — drop the cached one.
	invalidateScoreCache(ctx, s.rdb, id)

	return productToResponse(p), nil
}

func (s *productService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapNotFound(err, "produto")
	}
	invalidateScoreCache(ctx, s.rdb, id)
	return nil
}

// validateCostFields rejects negative monetary values. Null stays allowed —
// missing costs are a triage state, not an error.
func validateCostFields(p *model.Product) error {
	fields := map[string]*decimal.Decimal{
		"fob_price_usd": p.FOBPriceUSD,
		"freight_usd":   p.FreightUSD,
		"insurance_usd": p.InsuranceUSD,
		"weight_kg":     p.WeightKg,
	}
	for name, v := range fields {
		if v != nil && v.IsNegative() {
			return fmt.Errorf("%w: %s não pode ser negativo", apierror.ErrValidation, name)
		}
	}
	return nil
}

// mapNotFound converts gorm's record-not-found into the domain sentinel.
func mapNotFound(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", apierror.ErrNotFound, entity)
	}
	return err
}
