package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	var p Promotion
	err := json.Unmarshal([]byte(`{"id":1,"percentage":25,"startDate":"2025-01-01","endDate":"2025-01-31T00:00:00","active":true}`), &p)
	require.NoError(t, err)

	assert.Equal(t, NewDate(2025, time.January, 1), p.StartDate)
	assert.Equal(t, NewDate(2025, time.January, 31), p.EndDate)
	assert.Equal(t, "25", p.Percentage.String())

	out, err := json.Marshal(p.StartDate)
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-01-01"`, string(out))
}

func TestDateNull(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestParseDateRejectsGarbage(t *testing.T) {
	_, err := ParseDate("31/01/2025")
	assert.Error(t, err)
}

func TestDateStartOfDay(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	got := NewDate(2025, time.March, 2).StartOfDay(loc)
	assert.Equal(t, time.Date(2025, time.March, 2, 0, 0, 0, 0, loc), got)
}
