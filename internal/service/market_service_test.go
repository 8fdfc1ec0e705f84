package service

import (
	"context"
	"errors"
	"testing"

	"importradar/internal/apierror"
	"importradar/internal/dto"
	"importradar/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMarketFixture(t *testing.T) (context.Context, MarketDataService, uint) {
	t.Helper()
	ctx := context.Background()
	products := newStubProductRepo()

	p := &model.Product{Name: "Suporte"}
	require.NoError(t, products.Create(ctx, p))

	return ctx, NewMarketDataService(newStubMarketRepo(), products, nil), p.ID
}

func TestMarketGetBeforeUpsertIs404(t *testing.T) {
	ctx, svc, productID := newMarketFixture(t)

	_, err := svc.Get(ctx, productID)
	assert.True(t, errors.Is(err, apierror.ErrNotFound))
}

func TestMarketUpsertReplacesWholeRow(t *testing.T) {
	ctx, svc, productID := newMarketFixture(t)

	first, err := svc.Upsert(ctx, productID, dto.UpsertMarketDataRequest{
		SalesPerDay: f64p(4),
		Visits:      intp(1200),
	})
	require.NoError(t, err)
	require.NotNil(t, first.Visits)

	// Second write omits visits — the row is replaced, not merged.
	second, err := svc.Upsert(ctx, productID, dto.UpsertMarketDataRequest{
		SalesPerDay: f64p(6),
	})
	require.NoError(t, err)
	assert.Nil(t, second.Visits)
	require.NotNil(t, second.SalesPerDay)
	assert.Equal(t, 6.0, *second.SalesPerDay)
	assert.Equal(t, first.ID, second.ID, "same row, last write wins")
}

func TestMarketUpsertValidatesRanges(t *testing.T) {
	ctx, svc, productID := newMarketFixture(t)

	_, err := svc.Upsert(ctx, productID, dto.UpsertMarketDataRequest{FullRatio: decp("120")})
	assert.True(t, errors.Is(err, apierror.ErrValidation))

	_, err = svc.Upsert(ctx, productID, dto.UpsertMarketDataRequest{PriceAverageBRL: decp("-5")})
	assert.True(t, errors.Is(err, apierror.ErrValidation))
}

func TestMarketUpsertUnknownProduct(t *testing.T) {
	ctx, svc, _ := newMarketFixture(t)

	_, err := svc.Upsert(ctx, 999, dto.UpsertMarketDataRequest{})
	assert.True(t, errors.Is(err, apierror.ErrNotFound))
}
