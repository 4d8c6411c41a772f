package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marianorefrig/mariano_api/internal/utils"
)

// OrderStatus enumerates the lifecycle states of a service order.
type OrderStatus string

const (
	OrderOpen       OrderStatus = "aberta"
	OrderInProgress OrderStatus = "em_andamento"
	OrderCompleted  OrderStatus = "finalizada"
	OrderCancelled  OrderStatus = "cancelada"
)

// OrderStatuses lists every status in display order.
var OrderStatuses = []OrderStatus{OrderOpen, OrderInProgress, OrderCompleted, OrderCancelled}

// orderTransitions is the strict transition table. Completed and cancelled
// orders are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderOpen:       {OrderInProgress, OrderCompleted, OrderCancelled},
	OrderInProgress: {OrderOpen, OrderCompleted, OrderCancelled},
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderOpen, OrderInProgress, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no transition may leave s.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// CanTransitionTo reports whether the strict table allows s -> next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Priority enumerates service order priorities.
type Priority string

const (
	PriorityLow    Priority = "baixa"
	PriorityMedium Priority = "media"
	PriorityHigh   Priority = "alta"
)

// ServiceOrder is a repair ticket. CustomerID and TechnicianID are weak
// references and may dangle.
type ServiceOrder struct {
	ID           string          `json:"id"`
	CustomerID   string          `json:"clienteId" validate:"max=64"`
	TechnicianID string          `json:"tecnicoId" validate:"max=64"`
	Equipment    string          `json:"equipamento" validate:"required,max=160"`
	Description  string          `json:"descricao" validate:"max=2000"`
	Status       OrderStatus     `json:"status" validate:"required,oneof=aberta em_andamento finalizada cancelada"`
	Priority     Priority        `json:"prioridade" validate:"required,oneof=baixa media alta"`
	Value        decimal.Decimal `json:"valor" validate:"gte=0"`
	CreatedAt    time.Time       `json:"criadoEm"`
	CompletedAt  *time.Time      `json:"finalizadoEm,omitempty"`
}

// UnmarshalJSON accepts records written with the older "tecnico" key and
// reads it as TechnicianID when "tecnicoId" is absent or empty.
func (o *ServiceOrder) UnmarshalJSON(data []byte) error {
	type plain ServiceOrder
	var aux struct {
		plain
		Tecnico string `json:"tecnico"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*o = ServiceOrder(aux.plain)
	if o.TechnicianID == "" {
		o.TechnicianID = aux.Tecnico
	}
	return nil
}

// RecordID implements Record.
func (o ServiceOrder) RecordID() string { return o.ID }

// TransitionTo moves the order to next, keeping CompletedAt present iff the
// order is completed. With strict set, transitions outside the table are
// rejected with utils.ErrInvalidTransition. Writing the current status is a no-op.
func (o *ServiceOrder) TransitionTo(next OrderStatus, now time.Time, strict bool) error {
	if next == o.Status {
		return nil
	}
	if strict && !o.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", utils.ErrInvalidTransition, o.Status, next)
	}
	o.Status = next
	if next == OrderCompleted {
		t := now
		o.CompletedAt = &t
	} else {
		o.CompletedAt = nil
	}
	return nil
}

// Matches reports whether term appears in equipment or description.
func (o ServiceOrder) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(o.Equipment), term) ||
		strings.Contains(strings.ToLower(o.Description), term)
}

// ServiceOrderPatch carries the fields of a partial service order update.
// Status changes go through TransitionTo; the completion timestamp cannot be
// written directly.
type ServiceOrderPatch struct {
	CustomerID   *string          `json:"clienteId"`
	TechnicianID *string          `json:"tecnicoId"`
	Equipment    *string          `json:"equipamento"`
	Description  *string          `json:"descricao"`
	Status       *OrderStatus     `json:"status"`
	Priority     *Priority        `json:"prioridade"`
	Value        *decimal.Decimal `json:"valor"`
}

// Apply merges the patch into o. An unknown status is stored as-is and left for
// validation to reject.
func (p ServiceOrderPatch) Apply(o *ServiceOrder, now time.Time, strict bool) error {
	if p.CustomerID != nil {
		o.CustomerID = *p.CustomerID
	}
	if p.TechnicianID != nil {
		o.TechnicianID = *p.TechnicianID
	}
	if p.Equipment != nil {
		o.Equipment = *p.Equipment
	}
	if p.Description != nil {
		o.Description = *p.Description
	}
	if p.Priority != nil {
		o.Priority = *p.Priority
	}
	if p.Value != nil {
		o.Value = *p.Value
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			o.Status = *p.Status
			return nil
		}
		return o.TransitionTo(*p.Status, now, strict)
	}
	return nil
}
