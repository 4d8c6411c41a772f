package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marianorefrig/mariano_api/internal/models"
	"github.com/marianorefrig/mariano_api/internal/repository"
)

func TestSeedFillsOnlyEmptyCollections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createProduct(t, models.Product{Name: "Existente", Quantity: 1, Price: decimal.NewFromInt(1)})

	seed := NewSeedService(repository.NewTechnicianRepository(env.db), env.productRepo, nil)
	require.NoError(t, seed.Seed(ctx))
	require.NoError(t, seed.Seed(ctx))

	technicians, err := env.technicians.ListTechnicians(ctx)
	require.NoError(t, err)
	assert.Len(t, technicians, 3)

	products, err := env.products.ListProducts(ctx, "")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Existente", products[0].Name)
}

func TestSeedSampleProducts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seed := NewSeedService(repository.NewTechnicianRepository(env.db), env.productRepo, nil)
	require.NoError(t, seed.Seed(ctx))

	products, err := env.products.ListProducts(ctx, "GAS001")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 50, products[0].Quantity)
	assert.Equal(t, 10, products[0].MinStock)
	assert.True(t, products[0].Price.Equal(decimal.NewFromInt(180)))
}
