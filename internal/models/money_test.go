package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyMarshalJSON(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{"whole amount renders without decimals", "25700.00", "25700"},
		{"fractional amount keeps decimals", "350.50", "350.5"},
		{"zero", "0", "0"},
		{"sub-peso amount", "0.25", "0.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := MoneyFromString(tt.amount)
			require.NoError(t, err)

			data, err := json.Marshal(m)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestMoneyUnmarshalJSON(t *testing.T) {
	t.Run("bare number", func(t *testing.T) {
		var m Money
		require.NoError(t, json.Unmarshal([]byte(`25000.00`), &m))
		assert.True(t, m.Equal(decimal.RequireFromString("25000")))
	})

	t.Run("quoted number", func(t *testing.T) {
		var m Money
		require.NoError(t, json.Unmarshal([]byte(`"350.00"`), &m))
		assert.True(t, m.Equal(decimal.RequireFromString("350")))
	})

	t.Run("null is zero", func(t *testing.T) {
		var m Money
		require.NoError(t, json.Unmarshal([]byte(`null`), &m))
		assert.True(t, m.IsZero())
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		var m Money
		assert.Error(t, json.Unmarshal([]byte(`"abc"`), &m))
	})
}
