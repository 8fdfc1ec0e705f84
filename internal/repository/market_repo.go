package repository

import (
	"context"

	"importradar/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MarketDataRepository stores one marketplace-signal row per product.
type MarketDataRepository interface {
	FindByProductID(ctx context.Context, productID uint) (*model.MarketData, error)
	// Upsert inserts the row or overwrites the existing one for the same
	// product (last write wins — no optimistic concurrency token).
	Upsert(ctx context.Context, md *model.MarketData) error
	// ByProductIDs loads the rows for a set of products in one query,
	// keyed by product id. Products without data are simply absent.
	ByProductIDs(ctx context.Context, productIDs []uint) (map[uint]model.MarketData, error)
}

type marketRepo struct{ db *gorm.DB }

func NewMarketDataRepository(db *gorm.DB) MarketDataRepository { return &marketRepo{db: db} }

func (r *marketRepo) FindByProductID(ctx context.Context, productID uint) (*model.MarketData, error) {
	var md model.MarketData
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).First(&md).Error
	if err != nil {
		return nil, err
	}
	return &md, nil
}

func (r *marketRepo) ByProductIDs(ctx context.Context, productIDs []uint) (map[uint]model.MarketData, error) {
	out := make(map[uint]model.MarketData, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}
	var rows []model.MarketData
	if err := r.db.WithContext(ctx).Where("product_id IN ?", productIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ProductID] = row
	}
	return out, nil
}

func (r *marketRepo) Upsert(ctx context.Context, md *model.MarketData) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}},
		UpdateAll: true,
	}).Create(md).Error
}
