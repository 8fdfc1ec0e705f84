package repository

import (
	"context"

	"importradar/internal/model"

	"gorm.io/gorm"
)

// DecisionRepository is the append-only decision ledger. Corrections append
// a new row; prior entries are never mutated or removed.
type DecisionRepository interface {
	Create(ctx context.Context, d *model.ProductDecision) error
	FindLatestByProductID(ctx context.Context, productID uint) (*model.ProductDecision, error)
	ListByProductID(ctx context.Context, productID uint) ([]model.ProductDecision, error)
	LatestByProductIDs(ctx context.Context, productIDs []uint) (map[uint]model.ProductDecision, error)
}

type decisionRepo struct{ db *gorm.DB }

func NewDecisionRepository(db *gorm.DB) DecisionRepository { return &decisionRepo{db: db} }

func (r *decisionRepo) Create(ctx context.Context, d *model.ProductDecision) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *decisionRepo) FindLatestByProductID(ctx context.Context, productID uint) (*model.ProductDecision, error) {
	var d model.ProductDecision
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *decisionRepo) ListByProductID(ctx context.Context, productID uint) ([]model.ProductDecision, error) {
	var ds []model.ProductDecision
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		Find(&ds).Error
	return ds, err
}

func (r *decisionRepo) LatestByProductIDs(ctx context.Context, productIDs []uint) (map[uint]model.ProductDecision, error) {
	result := make(map[uint]model.ProductDecision, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}

	var ds []model.ProductDecision
	err := r.db.WithContext(ctx).
		Where("id IN (?)", r.db.Model(&model.ProductDecision{}).
			Select("MAX(id)").
			Where("product_id IN ?", productIDs).
			Group("product_id")).
		Find(&ds).Error
	if err != nil {
		return nil, err
	}
	for _, d := range ds {
		result[d.ProductID] = d
	}
	return result, nil
}
