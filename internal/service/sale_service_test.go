package service

import (
	"context"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marianorefrig/mariano_api/internal/models"
	"github.com/marianorefrig/mariano_api/internal/utils"
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCommitSaleDecrementsStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	gas := env.createProduct(t, models.Product{Name: "Gás R-22", Code: "GAS001", Quantity: 50, MinStock: 10, Price: decimal.NewFromInt(180)})

	sale, err := env.sales.CommitSale(ctx, models.SaleDraft{
		Items:   []models.SaleDraftItem{{ProductID: gas.ID, Quantity: 3}},
		Payment: models.PaymentPix,
	})
	require.NoError(t, err)
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(540)))
	assert.True(t, sale.Items[0].UnitPrice.Equal(decimal.NewFromInt(180)))
	assert.Nil(t, sale.CustomerID)
	assert.Equal(t, fixedNow, sale.Date)

	p, err := env.products.GetProduct(ctx, gas.ID)
	require.NoError(t, err)
	assert.Equal(t, 47, p.Quantity)

	stored, err := env.sales.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.True(t, stored.Total.Equal(decimal.NewFromInt(540)))
}

func TestCommitSaleRejectsOverSell(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	gas := env.createProduct(t, models.Product{Name: "Gás R-22", Quantity: 47, Price: decimal.NewFromInt(180)})

	_, err := env.sales.CommitSale(ctx, models.SaleDraft{
		Items:   []models.SaleDraftItem{{ProductID: gas.ID, Quantity: 999}},
		Payment: models.PaymentCash,
	})
	require.ErrorIs(t, err, utils.ErrInsufficientStock)

	p, err := env.products.GetProduct(ctx, gas.ID)
	require.NoError(t, err)
	assert.Equal(t, 47, p.Quantity)

	sales, err := env.sales.ListSales(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestCommitSaleAggregatesRepeatedProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	gas := env.createProduct(t, models.Product{Name: "Gás", Quantity: 5, Price: decimal.NewFromInt(100)})
	filtro := env.createProduct(t, models.Product{Name: "Filtro", Quantity: 10, Price: decimal.NewFromInt(20)})

	// 3 + 3 exceeds 5 even though each line alone fits.
	_, err := env.sales.CommitSale(ctx, models.SaleDraft{
		Items: []models.SaleDraftItem{
			{ProductID: filtro.ID, Quantity: 1},
			{ProductID: gas.ID, Quantity: 3},
			{ProductID: gas.ID, Quantity: 3},
		},
		Payment: models.PaymentDebit,
	})
	require.ErrorIs(t, err, utils.ErrInsufficientStock)

	p, err := env.products.GetProduct(ctx, filtro.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Quantity, "no line may be applied when another is rejected")
}

func TestCommitSaleRejectsQuantitiesThatWrapAround(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	gas := env.createProduct(t, models.Product{Name: "Gás R-22", Quantity: 47, Price: decimal.NewFromInt(180)})

	// The two lines sum past math.MaxInt.
	_, err := env.sales.CommitSale(ctx, models.SaleDraft{
		Items: []models.SaleDraftItem{
			{ProductID: gas.ID, Quantity: 47},
			{ProductID: gas.ID, Quantity: math.MaxInt - 46},
		},
		Payment: models.PaymentCash,
	})
	require.ErrorIs(t, err, utils.ErrInsufficientStock)

	p, err := env.products.GetProduct(ctx, gas.ID)
	require.NoError(t, err)
	assert.Equal(t, 47, p.Quantity)

	sales, err := env.sales.ListSales(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestCommitSalePriceTolerance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	gas := env.createProduct(t, models.Product{Name: "Gás", Quantity: 10, Price: decimal.NewFromInt(180)})

	_, err := env.sales.CommitSale(ctx, models.SaleDraft{
		Items:   []models.SaleDraftItem{{ProductID: gas.ID, Quantity: 1, UnitPrice: decPtr("150")}},
		Payment: models.PaymentCash,
	})
	require.ErrorIs(t, err, utils.ErrPriceMismatch)

	_, err = env.sales.CommitSale(ctx, models.SaleDraft{
		Items:   []models.SaleDraftItem{{ProductID: gas.ID, Quantity: 2}},
		Total:   decPtr("100"),
		Payment: models.PaymentCash,
	})
	require.ErrorIs(t, err, utils.ErrPriceMismatch)

	sale, err := env.sales.CommitSale(ctx, models.SaleDraft{
		Items:   []models.SaleDraftItem{{ProductID: gas.ID, Quantity: 2, UnitPrice: decPtr("180.005")}},
		Total:   decPtr("360.01"),
		Payment: models.PaymentCash,
	})
	require.NoError(t, err)
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(360)))

	p, err := env.products.GetProduct(ctx, gas.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, p.Quantity)
}

func TestCommitSaleValidatesDraft(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.sales.CommitSale(ctx, models.SaleDraft{Payment: "cheque"})
	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	fields := map[string]bool{}
	for _, f := range verr.Fields {
		fields[f.Field] = true
	}
	assert.True(t, fields["itens"])
	assert.True(t, fields["pagamento"])

	_, err = env.sales.CommitSale(ctx, models.SaleDraft{
		Items:   []models.SaleDraftItem{{ProductID: "ghost", Quantity: 1}},
		Payment: models.PaymentPix,
	})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "itens[0].produtoId", verr.Fields[0].Field)
}

func TestCommitSaleKeepsCustomerReference(t *testing.T) {
	env := newTestEnv(t)
	gas := env.createProduct(t, models.Product{Name: "Gás", Quantity: 10, Price: decimal.NewFromInt(180)})
	customer := "cliente-1"

	sale, err := env.sales.CommitSale(context.Background(), models.SaleDraft{
		CustomerID: &customer,
		Items:      []models.SaleDraftItem{{ProductID: gas.ID, Quantity: 1}},
		Payment:    models.PaymentCredit,
	})
	require.NoError(t, err)
	require.NotNil(t, sale.CustomerID)
	assert.Equal(t, "cliente-1", *sale.CustomerID)
}

func TestStockNeverNegativeAcrossCommits(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	gas := env.createProduct(t, models.Product{Name: "Gás", Quantity: 7, Price: decimal.NewFromInt(10)})

	for i := 0; i < 10; i++ {
		_, _ = env.sales.CommitSale(ctx, models.SaleDraft{
			Items:   []models.SaleDraftItem{{ProductID: gas.ID, Quantity: 2}},
			Payment: models.PaymentCash,
		})
		p, err := env.products.GetProduct(ctx, gas.ID)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, p.Quantity, 0)
	}
	p, err := env.products.GetProduct(ctx, gas.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Quantity)
}

func TestCommitSaleNotifiesOnlyOnSuccess(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	rec := &recordingNotifier{}
	env.sales.SetNotifier(rec)
	filtro := env.createProduct(t, models.Product{Name: "Filtro", Quantity: 1, Price: decimal.NewFromInt(45)})

	sale, err := env.sales.CommitSale(ctx, models.SaleDraft{
		Items:   []models.SaleDraftItem{{ProductID: filtro.ID, Quantity: 1}},
		Payment: models.PaymentDebit,
	})
	require.NoError(t, err)

	_, err = env.sales.CommitSale(ctx, models.SaleDraft{
		Items:   []models.SaleDraftItem{{ProductID: filtro.ID, Quantity: 1}},
		Payment: models.PaymentDebit,
	})
	require.ErrorIs(t, err, utils.ErrInsufficientStock)

	assert.Equal(t, []string{sale.ID}, rec.sales)
}
