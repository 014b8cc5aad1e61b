package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionValid(t *testing.T) {
	assert.True(t, ActionBuy.Valid())
	assert.True(t, ActionSell.Valid())
	assert.True(t, ActionHold.Valid())
	assert.False(t, Action("short").Valid())
	assert.False(t, Action("").Valid())
}

func TestSignalIndicatorAccessors(t *testing.T) {
	signal := Signal{
		Action:   ActionHold,
		Strength: 75,
		Price:    100,
		Indicators: map[string]any{
			"gridSpacing": 2.0,
			"buyOrders":   []float64{98, 96},
			"buyExchange": "binance",
		},
	}

	spacing, ok := signal.Float("gridSpacing")
	assert.True(t, ok)
	assert.Equal(t, 2.0, spacing)

	orders, ok := signal.Floats("buyOrders")
	assert.True(t, ok)
	assert.Equal(t, []float64{98, 96}, orders)

	exchange, ok := signal.Label("buyExchange")
	assert.True(t, ok)
	assert.Equal(t, "binance", exchange)

	_, ok = signal.Float("buyExchange")
	assert.False(t, ok)

	_, ok = signal.Floats("missing")
	assert.False(t, ok)

	_, ok = Signal{}.Label("anything")
	assert.False(t, ok)
}

func TestSignalJSON(t *testing.T) {
	signal := Signal{
		Action:     ActionBuy,
		Strength:   85,
		Price:      105,
		Reasoning:  "Breakout above resistance (100.10) with high volume",
		Indicators: map[string]any{"resistance": 100.1},
	}

	data, err := json.Marshal(signal)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "buy", decoded["action"])
	assert.Equal(t, 85.0, decoded["strength"])
	assert.Equal(t, map[string]any{"resistance": 100.1}, decoded["indicators"])
}
