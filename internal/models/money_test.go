package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyMarshalsAsNumber(t *testing.T) {
	require.True(t, MoneyAsJSONNumber())

	out, err := json.Marshal(struct {
		Price decimal.Decimal `json:"price"`
	}{decimal.RequireFromString("12.50")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":12.5}`, string(out))

	// Quoted input still decodes.
	var d decimal.Decimal
	require.NoError(t, json.Unmarshal([]byte(`"7.25"`), &d))
	assert.Equal(t, "7.25", d.String())
	assert.Equal(t, "7.25", DisplayPrice(d))
}
