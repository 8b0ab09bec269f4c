package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketsim/abidesgen/internal/agent"
	"github.com/marketsim/abidesgen/internal/errors"
)

// Baseline totals are a compatibility contract with the published reference
// configurations.
func TestBaselineTotals(t *testing.T) {
	tests := []struct {
		name  string
		total int
	}{
		{"rmsc03", 5127},
		{"rmsc04", 1116},
		{"hft", 1510},
		{"behavioral", 430},
		{"minimal", 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Lookup(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.total, tmpl.TotalAgents())
		})
	}
}

func TestRMSC03Baseline(t *testing.T) {
	tmpl, err := Lookup("rmsc03")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"adaptive-market-maker": 2,
		"value":                 100,
		"momentum":              25,
		"noise":                 5000,
	}, tmpl.Agents)
	assert.Equal(t, "ABM", tmpl.Market.Symbol)
	assert.Equal(t, "2020-06-03", tmpl.Market.Date)
	assert.Equal(t, "09:30:00", tmpl.Market.Open)
	assert.Equal(t, "16:00:00", tmpl.Market.Close)
	assert.Equal(t, int64(10_000_000), tmpl.Market.StartingCash)
}

func TestHFTBaseline(t *testing.T) {
	tmpl, err := Lookup("hft")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"market-maker":      10,
		"zero-intelligence": 1000,
		"noise":             500,
	}, tmpl.Agents)
	assert.Equal(t, "JPM", tmpl.Market.Symbol)
	assert.Empty(t, tmpl.Market.Date, "hft has no recommended date")
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("rmsc99")
	require.Error(t, err)
	assert.Equal(t, errors.EUnknownTemplate, errors.GetCode(err))
	assert.Contains(t, err.Error(), "rmsc03", "error should list available templates")
}

func TestAllOrder(t *testing.T) {
	assert.Equal(t, []string{"rmsc03", "rmsc04", "hft", "minimal", "behavioral"}, Names())
	all := All()
	require.Len(t, all, 5)
	assert.Equal(t, "rmsc03", all[0].Name)
}

func TestComposition_Fresh(t *testing.T) {
	tmpl, err := Lookup("minimal")
	require.NoError(t, err)

	c := tmpl.Composition()
	c[agent.MarketMaker] = 99

	again := tmpl.Composition()
	assert.Equal(t, 1, again[agent.MarketMaker], "Composition must return a fresh value")
}
