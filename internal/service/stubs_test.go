package service

import (
	"context"
	"time"

	"importradar/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs. Each test wires only what it needs; a nil redis
// client disables caching in every service.

type stubProductRepo struct {
	products map[uint]*model.Product
	nextID   uint
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uint]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	r.nextID++
	p.ID = r.nextID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uint) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) List(_ context.Context) ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.products))
	for id := uint(1); id <= r.nextID; id++ {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	p.UpdatedAt = time.Now()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.products[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

type stubMarketRepo struct {
	rows map[uint]*model.MarketData
}

func newStubMarketRepo() *stubMarketRepo {
	return &stubMarketRepo{rows: make(map[uint]*model.MarketData)}
}

func (r *stubMarketRepo) FindByProductID(_ context.Context, productID uint) (*model.MarketData, error) {
	md, ok := r.rows[productID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *md
	return &cp, nil
}

func (r *stubMarketRepo) Upsert(_ context.Context, md *model.MarketData) error {
	if prev, ok := r.rows[md.ProductID]; ok {
		md.ID = prev.ID
		md.CreatedAt = prev.CreatedAt
	} else {
		md.ID = uint(len(r.rows) + 1)
		md.CreatedAt = time.Now()
	}
	md.UpdatedAt = time.Now()
	cp := *md
	r.rows[md.ProductID] = &cp
	return nil
}

func (r *stubMarketRepo) ByProductIDs(_ context.Context, productIDs []uint) (map[uint]model.MarketData, error) {
	out := make(map[uint]model.MarketData, len(productIDs))
	for _, id := range productIDs {
		if md, ok := r.rows[id]; ok {
			out[id] = *md
		}
	}
	return out, nil
}

type stubSimulationRepo struct {
	sims   []model.Simulation
	nextID uint
}

func newStubSimulationRepo() *stubSimulationRepo { return &stubSimulationRepo{} }

func (r *stubSimulationRepo) Create(_ context.Context, s *model.Simulation) error {
	r.nextID++
	s.ID = r.nextID
	s.CreatedAt = time.Now()
	r.sims = append(r.sims, *s)
	return nil
}

func (r *stubSimulationRepo) FindLatestByProductID(_ context.Context, productID uint) (*model.Simulation, error) {
	var latest *model.Simulation
	for i := range r.sims {
		s := &r.sims[i]
		if s.ProductID != productID {
			continue
		}
		if latest == nil || s.ID > latest.ID {
			latest = s
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *latest
	return &cp, nil
}

func (r *stubSimulationRepo) LatestByProductIDs(_ context.Context, productIDs []uint) (map[uint]model.Simulation, error) {
	out := make(map[uint]model.Simulation, len(productIDs))
	for _, id := range productIDs {
		if s, err := r.FindLatestByProductID(context.Background(), id); err == nil {
			out[id] = *s
		}
	}
	return out, nil
}

type stubDecisionRepo struct {
	decisions []model.ProductDecision
	nextID    uint
}

func newStubDecisionRepo() *stubDecisionRepo { return &stubDecisionRepo{} }

func (r *stubDecisionRepo) Create(_ context.Context, d *model.ProductDecision) error {
	r.nextID++
	d.ID = r.nextID
	d.CreatedAt = time.Now()
	r.decisions = append(r.decisions, *d)
	return nil
}

func (r *stubDecisionRepo) FindLatestByProductID(_ context.Context, productID uint) (*model.ProductDecision, error) {
	var latest *model.ProductDecision
	for i := range r.decisions {
		d := &r.decisions[i]
		if d.ProductID != productID {
			continue
		}
		if latest == nil || d.ID > latest.ID {
			latest = d
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *latest
	return &cp, nil
}

func (r *stubDecisionRepo) ListByProductID(_ context.Context, productID uint) ([]model.ProductDecision, error) {
	var out []model.ProductDecision
	for i := len(r.decisions) - 1; i >= 0; i-- {
		if r.decisions[i].ProductID == productID {
			out = append(out, r.decisions[i])
		}
	}
	return out, nil
}

func (r *stubDecisionRepo) LatestByProductIDs(_ context.Context, productIDs []uint) (map[uint]model.ProductDecision, error) {
	out := make(map[uint]model.ProductDecision, len(productIDs))
	for _, id := range productIDs {
		if d, err := r.FindLatestByProductID(context.Background(), id); err == nil {
			out[id] = *d
		}
	}
	return out, nil
}

// fixedRates is a RateProvider returning a constant rate.
type fixedRates struct{ rate decimal.Decimal }

func (f fixedRates) FetchUSDBRL(context.Context) (decimal.Decimal, error) { return f.rate, nil }

func dec(s string) decimal.Decimal   { return decimal.RequireFromString(s) }
func decp(s string) *decimal.Decimal { d := dec(s); return &d }
func strp(s string) *string          { return &s }
func intp(v int) *int                { return &v }
func f64p(v float64) *float64        { return &v }
