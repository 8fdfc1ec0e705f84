package repository

import (
	"context"

	"importradar/internal/model"

	"gorm.io/gorm"
)

// SimulationRepository is append-only: simulations are immutable records and
// there is no update or delete path.
type SimulationRepository interface {
	Create(ctx context.Context, s *model.Simulation) error
	FindLatestByProductID(ctx context.Context, productID uint) (*model.Simulation, error)
	// LatestByProductIDs batch-loads the most recent simulation for each of
	// the given products (triage and ranking avoid the N+1 this way).
	LatestByProductIDs(ctx context.Context, productIDs []uint) (map[uint]model.Simulation, error)
}

type simulationRepo struct{ db *gorm.DB }

func NewSimulationRepository(db *gorm.DB) SimulationRepository { return &simulationRepo{db: db} }

func (r *simulationRepo) Create(ctx context.Context, s *model.Simulation) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *simulationRepo) FindLatestByProductID(ctx context.Context, productID uint) (*model.Simulation, error) {
	var s model.Simulation
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *simulationRepo) LatestByProductIDs(ctx context.Context, productIDs []uint) (map[uint]model.Simulation, error) {
	result := make(map[uint]model.Simulation, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}

	var sims []model.Simulation
	err := r.db.WithContext(ctx).
		Where("id IN (?)", r.db.Model(&model.Simulation{}).
			Select("MAX(id)").
			Where("product_id IN ?", productIDs).
			Group("product_id")).
		Find(&sims).Error
	if err != nil {
		return nil, err
	}
	for _, s := range sims {
		result[s.ProductID] = s
	}
	return result, nil
}
