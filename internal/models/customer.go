package models

import (
	"strings"
	"time"
)

// Customer represents a shop customer.
type Customer struct {
	ID           string    `json:"id"`
	Name         string    `json:"nome" validate:"required,max=120"`
	Phone        string    `json:"telefone" validate:"required,max=30"`
	Email        string    `json:"email" validate:"omitempty,email,max=120"`
	Address      string    `json:"endereco" validate:"max=240"`
	RegisteredAt time.Time `json:"criadoEm"`
}

// RecordID implements Record.
func (c Customer) RecordID() string { return c.ID }

// Matches reports whether term (case-insensitive) appears in name, phone or email.
func (c Customer) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), term) ||
		strings.Contains(c.Phone, term) ||
		strings.Contains(strings.ToLower(c.Email), term)
}

// CustomerPatch carries the fields of a partial customer update.
// Nil fields are left untouched.
type CustomerPatch struct {
	Name    *string `json:"nome"`
	Phone   *string `json:"telefone"`
	Email   *string `json:"email"`
	Address *string `json:"endereco"`
}

// Apply shallow-merges the patch into c.
func (p CustomerPatch) Apply(c *Customer) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
}
