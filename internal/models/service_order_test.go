package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marianorefrig/mariano_api/internal/utils"
)

func TestStrictTransitionTable(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		from, to OrderStatus
		ok       bool
	}{
		{OrderOpen, OrderInProgress, true},
		{OrderOpen, OrderCompleted, true},
		{OrderOpen, OrderCancelled, true},
		{OrderInProgress, OrderOpen, true},
		{OrderInProgress, OrderCompleted, true},
		{OrderInProgress, OrderCancelled, true},
		{OrderCompleted, OrderOpen, false},
		{OrderCompleted, OrderCancelled, false},
		{OrderCancelled, OrderInProgress, false},
		{OrderCancelled, OrderCompleted, false},
		{OrderCompleted, OrderCompleted, true},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			o := ServiceOrder{Status: tc.from}
			err := o.TransitionTo(tc.to, now, true)
			if !tc.ok {
				assert.ErrorIs(t, err, utils.ErrInvalidTransition)
				assert.Equal(t, tc.from, o.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.to, o.Status)
		})
	}
}

func TestCompletionTimestampFollowsStatus(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	o := ServiceOrder{Status: OrderInProgress}

	require.NoError(t, o.TransitionTo(OrderCompleted, now, false))
	require.NotNil(t, o.CompletedAt)
	assert.Equal(t, now, *o.CompletedAt)

	require.NoError(t, o.TransitionTo(OrderOpen, now.Add(time.Hour), false))
	assert.Nil(t, o.CompletedAt)
}

func TestServiceOrderJSONShape(t *testing.T) {
	o := ServiceOrder{
		ID:        "os1",
		Equipment: "Ar-condicionado Split",
		Status:    OrderOpen,
		Priority:  PriorityHigh,
		Value:     decimal.RequireFromString("350.50"),
		CreatedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}
	data, err := json.Marshal(o)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, 350.5, m["valor"])
	assert.Equal(t, "aberta", m["status"])
	assert.Equal(t, "alta", m["prioridade"])
	assert.NotContains(t, m, "finalizadoEm")
}

func TestServiceOrderReadsLegacyTecnicoKey(t *testing.T) {
	var o ServiceOrder
	require.NoError(t, json.Unmarshal([]byte(`{"id":"os1","tecnico":"t9","equipamento":"Freezer","status":"aberta","prioridade":"media","valor":0}`), &o))
	assert.Equal(t, "t9", o.TechnicianID)
	assert.Equal(t, "Freezer", o.Equipment)
	assert.Equal(t, OrderOpen, o.Status)

	var both ServiceOrder
	require.NoError(t, json.Unmarshal([]byte(`{"id":"os2","tecnicoId":"t1","tecnico":"t9"}`), &both))
	assert.Equal(t, "t1", both.TechnicianID)

	data, err := json.Marshal(o)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"tecnico"`)
	assert.Contains(t, string(data), `"tecnicoId":"t9"`)
}

func TestSaleItemsTotal(t *testing.T) {
	s := Sale{Items: []SaleItem{
		{ProductID: "p1", Quantity: 3, UnitPrice: decimal.NewFromInt(180)},
		{ProductID: "p2", Quantity: 2, UnitPrice: decimal.RequireFromString("12.25")},
	}}
	assert.True(t, s.ItemsTotal().Equal(decimal.RequireFromString("564.50")))
}
