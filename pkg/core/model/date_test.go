package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_Valid(t *testing.T) {
	d, err := ParseDate("2025-06-05")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-05", d.String())
	assert.Equal(t, time.Thursday, d.Weekday())
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("05/06/2025")
	assert.Error(t, err)
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2025, time.June, 10)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-06-10"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, d.Equal(back))
}

func TestDate_AddDaysAndDaysUntil(t *testing.T) {
	d := NewDate(2025, time.May, 30)

	next := d.AddDays(3)
	assert.Equal(t, "2025-06-02", next.String())
	assert.Equal(t, 3, d.DaysUntil(next))
	assert.Equal(t, -3, next.DaysUntil(d))
}

func TestDate_IsWeekend(t *testing.T) {
	assert.True(t, NewDate(2025, time.May, 31).IsWeekend())  // Saturday
	assert.True(t, NewDate(2025, time.June, 1).IsWeekend())  // Sunday
	assert.False(t, NewDate(2025, time.June, 2).IsWeekend()) // Monday
}

func TestDate_Ordering(t *testing.T) {
	a := NewDate(2025, time.June, 1)
	b := NewDate(2025, time.June, 2)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Equal(b))
}
