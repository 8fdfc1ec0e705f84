package service

import (
	"context"
	"fmt"
	"strings"

	"importradar/internal/apierror"
	"importradar/internal/dto"
	"importradar/internal/model"
	"importradar/internal/repository"
)

// DecisionService appends to and reads the per-product decision ledger.
// Entries are never updated or removed; the latest one is the current stance.
type DecisionService interface {
	Create(ctx context.Context, productID uint, req dto.CreateDecisionRequest) (*dto.DecisionResponse, error)
	List(ctx context.Context, productID uint) ([]dto.DecisionResponse, error)
}

type decisionService struct {
	products  repository.ProductRepository
	decisions repository.DecisionRepository
}

func NewDecisionService(products repository.ProductRepository, decisions repository.DecisionRepository) DecisionService {
	return &decisionService{products: products, decisions: decisions}
}

func (s *decisionService) Create(ctx context.Context, productID uint, req dto.CreateDecisionRequest) (*dto.DecisionResponse, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, mapNotFound(err, "produto")
	}

	if !model.ValidDecisionKind(req.Decision) {
		return nil, fmt.Errorf("%w: decisão inválida, use approve_test, approve_import, reject ou needs_data",
			apierror.ErrValidation)
	}
	reason := strings.TrimSpace(req.Reason)
	if len(reason) < 3 {
		return nil, fmt.Errorf("%w: reason deve ter ao menos 3 caracteres", apierror.ErrValidation)
	}

	d := &model.ProductDecision{
		ProductID: productID,
		Decision:  req.Decision,
		Reason:    reason,
		DecidedBy: req.DecidedBy,
	}
	if err := s.decisions.Create(ctx, d); err != nil {
		return nil, err
	}
	return decisionToResponse(d), nil
}

func (s *decisionService) List(ctx context.Context, productID uint) ([]dto.DecisionResponse, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, mapNotFound(err, "produto")
	}
	decisions, err := s.decisions.ListByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DecisionResponse, 0, len(decisions))
	for i := range decisions {
		out = append(out, *decisionToResponse(&decisions[i]))
	}
	return out, nil
}
