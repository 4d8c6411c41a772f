package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod enumerates accepted payment methods.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "dinheiro"
	PaymentDebit  PaymentMethod = "cartao_debito"
	PaymentCredit PaymentMethod = "cartao_credito"
	PaymentPix    PaymentMethod = "pix"
)

// SaleItem is a sale line. UnitPrice is captured from the product at sale time.
type SaleItem struct {
	ProductID string          `json:"produtoId"`
	Quantity  int             `json:"quantidade"`
	UnitPrice decimal.Decimal `json:"precoUnitario"`
}

// Subtotal returns quantity x unit price.
func (i SaleItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Sale is a committed point-of-sale record.
type Sale struct {
	ID         string          `json:"id"`
	CustomerID *string         `json:"clienteId"`
	Items      []SaleItem      `json:"itens"`
	Total      decimal.Decimal `json:"total"`
	Payment    PaymentMethod   `json:"pagamento"`
	Date       time.Time       `json:"data"`
}

// RecordID implements Record.
func (s Sale) RecordID() string { return s.ID }

// ItemsTotal sums the line subtotals.
func (s Sale) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// SaleDraft is the caller's proposal for a sale. Prices and total are
// advisory; the committed values come from the product catalog.
type SaleDraft struct {
	CustomerID *string          `json:"clienteId"`
	Items      []SaleDraftItem  `json:"itens" validate:"required,min=1,dive"`
	Total      *decimal.Decimal `json:"total"`
	Payment    PaymentMethod    `json:"pagamento" validate:"required,oneof=dinheiro cartao_debito cartao_credito pix"`
}

// SaleDraftItem is a draft line.
type SaleDraftItem struct {
	ProductID string           `json:"produtoId" validate:"required"`
	Quantity  int              `json:"quantidade" validate:"gt=0"`
	UnitPrice *decimal.Decimal `json:"precoUnitario"`
}
