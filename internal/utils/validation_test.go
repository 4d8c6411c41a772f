package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleItem struct {
	ProductID string `json:"produtoId" validate:"required"`
	Quantity  int    `json:"quantidade" validate:"gt=0"`
}

type sample struct {
	Name  string          `json:"nome" validate:"required"`
	Price decimal.Decimal `json:"preco" validate:"gte=0"`
	Items []sampleItem    `json:"itens" validate:"required,min=1,dive"`
}

func TestValidateStructReportsJSONPaths(t *testing.T) {
	err := ValidateStruct(sample{
		Price: decimal.NewFromInt(-1),
		Items: []sampleItem{{ProductID: "p1", Quantity: 0}},
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	fields := map[string]string{}
	for _, f := range verr.Fields {
		fields[f.Field] = f.Message
	}
	assert.Equal(t, "is required", fields["nome"])
	assert.Equal(t, "must be >= 0", fields["preco"])
	assert.Equal(t, "must be > 0", fields["itens[0].quantidade"])
}

func TestValidateStructAcceptsValidInput(t *testing.T) {
	err := ValidateStruct(sample{
		Name:  "Gás R-22",
		Price: decimal.RequireFromString("180.00"),
		Items: []sampleItem{{ProductID: "p1", Quantity: 2}},
	})
	assert.NoError(t, err)
}
