package service

import (
	"context"
	"errors"
	"testing"

	"importradar/internal/apierror"
	"importradar/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(newStubProductRepo(), nil)

	created, err := svc.Create(ctx, dto.CreateProductRequest{
		Name:        "Caneca térmica inox 500ml",
		Category:    strp("casa"),
		FOBPriceUSD: decp("2.50"),
		FreightUSD:  decp("0.80"),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Caneca térmica inox 500ml", got.Name)
	require.NotNil(t, got.FOBPriceUSD)
	assert.True(t, got.FOBPriceUSD.Equal(dec("2.50")))
}

func TestProductCreateRejectsNegativeCosts(t *testing.T) {
	svc := NewProductService(newStubProductRepo(), nil)

	_, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:        "Inválido",
		FOBPriceUSD: decp("-1.00"),
	})
	assert.True(t, errors.Is(err, apierror.ErrValidation))
}

func TestProductUpdateMergesOnlyPresentFields(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(newStubProductRepo(), nil)

	created, err := svc.Create(ctx, dto.CreateProductRequest{
		Name:        "Suporte",
		Category:    strp("acessorios"),
		FOBPriceUSD: decp("1.80"),
	})
	require.NoError(t, err)

	fragile := true
	updated, err := svc.Update(ctx, created.ID, dto.UpdateProductRequest{
		FreightUSD: decp("0.45"),
		Fragile:    &fragile,
	})
	require.NoError(t, err)

	// Untouched fields survive the partial update.
	assert.Equal(t, "Suporte", updated.Name)
	require.NotNil(t, updated.FOBPriceUSD)
	assert.True(t, updated.FOBPriceUSD.Equal(dec("1.80")))
	require.NotNil(t, updated.FreightUSD)
	assert.True(t, updated.FreightUSD.Equal(dec("0.45")))
	assert.True(t, updated.Fragile)
}

func TestProductDeleteThenGetIs404(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(newStubProductRepo(), nil)

	created, err := svc.Create(ctx, dto.CreateProductRequest{Name: "Descartável"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	assert.True(t, errors.Is(err, apierror.ErrNotFound))

	err = svc.Delete(ctx, created.ID)
	assert.True(t, errors.Is(err, apierror.ErrNotFound))
}
