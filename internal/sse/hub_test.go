package sse

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marianorefrig/mariano_api/internal/models"
)

func TestHubBroadcastsToRegisteredClients(t *testing.T) {
	hub := NewHub()
	a := hub.Register("a")
	b := hub.Register("b")
	assert.Equal(t, 2, hub.ClientCount())

	NewHubNotifier(hub).NotifySaleCommitted(&models.Sale{
		ID:      "v1",
		Total:   decimal.RequireFromString("180.5"),
		Payment: models.PaymentPix,
	})

	for _, c := range []*Client{a, b} {
		var ev map[string]interface{}
		require.NoError(t, json.Unmarshal(<-c.Events, &ev))
		assert.Equal(t, "venda.registrada", ev["event"])
		assert.Equal(t, "v1", ev["id"])
		assert.Equal(t, 180.5, ev["total"])
	}

	hub.Unregister("a")
	_, open := <-a.Events
	assert.False(t, open)
	assert.Equal(t, 1, hub.ClientCount())
}

func TestHubDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	c := hub.Register("slow")
	n := NewHubNotifier(hub)
	for i := 0; i < 100; i++ {
		n.NotifyOrderStatusChanged(&models.ServiceOrder{ID: "o1", Status: models.OrderCompleted})
	}
	assert.Len(t, c.Events, cap(c.Events))
}

func TestLowStockEventListsProducts(t *testing.T) {
	hub := NewHub()
	c := hub.Register("x")
	n := NewHubNotifier(hub)

	n.NotifyLowStock(nil)
	assert.Empty(t, c.Events)

	n.NotifyLowStock([]models.Product{{ID: "p1"}, {ID: "p2"}})
	var ev Event
	require.NoError(t, json.Unmarshal(<-c.Events, &ev))
	assert.Equal(t, EventLowStock, ev.Event)
	assert.Equal(t, []string{"p1", "p2"}, ev.Products)
}
