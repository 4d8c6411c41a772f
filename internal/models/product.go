package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product is an inventory item. Code is assigned by the shop and is not
// guaranteed to be unique.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"nome" validate:"required,max=120"`
	Code     string          `json:"codigo" validate:"max=40"`
	Quantity int             `json:"quantidade" validate:"gte=0"`
	MinStock int             `json:"minimo" validate:"gte=0"`
	Price    decimal.Decimal `json:"preco" validate:"gte=0"`
}

// RecordID implements Record.
func (p Product) RecordID() string { return p.ID }

// IsLowStock reports whether the on-hand quantity is at or below the minimum.
func (p Product) IsLowStock() bool { return p.Quantity <= p.MinStock }

// Matches reports whether term (case-insensitive) appears in name or code.
func (p Product) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Code), term)
}

// ProductPatch carries the fields of a partial product update.
type ProductPatch struct {
	Name     *string          `json:"nome"`
	Code     *string          `json:"codigo"`
	Quantity *int             `json:"quantidade"`
	MinStock *int             `json:"minimo"`
	Price    *decimal.Decimal `json:"preco"`
}

// Apply shallow-merges the patch into p.
func (pp ProductPatch) Apply(p *Product) {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Code != nil {
		p.Code = *pp.Code
	}
	if pp.Quantity != nil {
		p.Quantity = *pp.Quantity
	}
	if pp.MinStock != nil {
		p.MinStock = *pp.MinStock
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
}
