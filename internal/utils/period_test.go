package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodIncludesLastInstantOfEndDay(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	now := time.Date(2024, 3, 20, 10, 0, 0, 0, loc)

	p, err := ParsePeriod("2024-03-01", "2024-03-15", now, loc)
	require.NoError(t, err)

	atEnd := time.Date(2024, 3, 15, 23, 59, 59, int(999*time.Millisecond), loc)
	assert.True(t, p.Contains(atEnd))
	assert.False(t, p.Contains(atEnd.Add(time.Millisecond)))
	assert.True(t, p.Contains(time.Date(2024, 3, 1, 0, 0, 0, 0, loc)))
	assert.False(t, p.Contains(time.Date(2024, 2, 29, 23, 59, 59, 0, loc)))
}

func TestParsePeriodDefaults(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, 3, 20, 10, 0, 0, 0, loc)

	p, err := ParsePeriod("", "", now, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, loc), p.Start)
	assert.Equal(t, EndOfDay(now, loc), p.End)
}

func TestParsePeriodWithOnlyEndStartsAtThatMonth(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, 3, 20, 10, 0, 0, 0, loc)

	p, err := ParsePeriod("", "2024-01-15", now, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, loc), p.Start)
	assert.Equal(t, time.Date(2024, 1, 15, 23, 59, 59, 999999999, loc), p.End)
}

func TestParsePeriodRejectsBadInput(t *testing.T) {
	now := time.Now()

	_, err := ParsePeriod("01/03/2024", "", now, time.UTC)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "inicio", verr.Fields[0].Field)

	_, err = ParsePeriod("2024-03-10", "2024-03-01", now, time.UTC)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "fim", verr.Fields[0].Field)
}

func TestMonthPeriod(t *testing.T) {
	now := time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)
	p := MonthPeriod(now, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 999999999, time.UTC), p.End)
}
