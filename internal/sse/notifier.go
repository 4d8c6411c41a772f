package sse

import (
	"time"

	"github.com/marianorefrig/mariano_api/internal/models"
)

// Notifier is the interface services use to emit shop events.
type Notifier interface {
	NotifySaleCommitted(sale *models.Sale)
	NotifyOrderStatusChanged(order *models.ServiceOrder)
	NotifyLowStock(products []models.Product)
}

// HubNotifier implements Notifier using the SSE Hub.
type HubNotifier struct {
	hub *Hub
	now func() time.Time
}

// NewHubNotifier creates a notifier backed by the given Hub.
func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub, now: time.Now}
}

func (n *HubNotifier) NotifySaleCommitted(sale *models.Sale) {
	if n.hub.ClientCount() == 0 {
		return
	}
	total := sale.Total
	n.hub.Broadcast(&Event{
		Event:     EventSaleCommitted,
		EntityID:  sale.ID,
		Status:    string(sale.Payment),
		Total:     &total,
		Timestamp: n.now(),
	})
}

func (n *HubNotifier) NotifyOrderStatusChanged(order *models.ServiceOrder) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(&Event{
		Event:     EventOrderStatusChanged,
		EntityID:  order.ID,
		Status:    string(order.Status),
		Timestamp: n.now(),
	})
}

func (n *HubNotifier) NotifyLowStock(products []models.Product) {
	if n.hub.ClientCount() == 0 || len(products) == 0 {
		return
	}
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	n.hub.Broadcast(&Event{
		Event:     EventLowStock,
		Products:  ids,
		Timestamp: n.now(),
	})
}

// NopNotifier is a no-op implementation for when SSE is not needed.
type NopNotifier struct{}

func (NopNotifier) NotifySaleCommitted(*models.Sale)              {}
func (NopNotifier) NotifyOrderStatusChanged(*models.ServiceOrder) {}
func (NopNotifier) NotifyLowStock([]models.Product)               {}
