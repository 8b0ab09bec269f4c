package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketsim/abidesgen/internal/agent"
	"github.com/marketsim/abidesgen/internal/compose"
	"github.com/marketsim/abidesgen/internal/errors"
	"github.com/marketsim/abidesgen/internal/market"
)

func testInput() Input {
	return Input{
		TemplateName: "rmsc03",
		Composition: compose.Composition{
			agent.AdaptiveMarketMaker: 2,
			agent.Value:               100,
			agent.Momentum:            25,
			agent.Noise:               5000,
		},
		Params: market.Params{
			Symbol:       "ABM",
			Date:         "2020-06-03",
			Open:         "09:30:00",
			Close:        "16:00:00",
			StartingCash: 10_000_000,
		},
		Seed:        42,
		FileName:    "rmsc03_test.py",
		GeneratedAt: time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC),
	}
}

func TestRender_Idempotent(t *testing.T) {
	first, err := Render(testInput())
	require.NoError(t, err)
	second, err := Render(testInput())
	require.NoError(t, err)
	assert.Equal(t, first.Text, second.Text, "same inputs must yield byte-identical output")
}

func TestRender_SectionOrder(t *testing.T) {
	cfg, err := Render(testInput())
	require.NoError(t, err)

	sections := []string{
		"###### IMPORTS ######",
		"###### GENERAL CONFIGURATION ######",
		"###### ORACLE CONFIGURATION ######",
		"###### AGENTS CONFIGURATION ######",
		"###### SIMULATION KERNEL & EXECUTION ######",
	}
	last := -1
	for _, s := range sections {
		idx := strings.Index(cfg.Text, s)
		require.NotEqual(t, -1, idx, "missing section %q", s)
		assert.Greater(t, idx, last, "section %q out of order", s)
		last = idx
	}
}

func TestRender_Declarations(t *testing.T) {
	cfg, err := Render(testInput())
	require.NoError(t, err)

	assert.Contains(t, cfg.Text, "seed = 42\n")
	assert.Contains(t, cfg.Text, "symbol = 'ABM'\n")
	assert.Contains(t, cfg.Text, "historical_date = pd.to_datetime('2020-06-03')\n")
	assert.Contains(t, cfg.Text, "mkt_open = historical_date + pd.to_timedelta('09:30:00')\n")
	assert.Contains(t, cfg.Text, "mkt_close = historical_date + pd.to_timedelta('16:00:00')\n")
	assert.Contains(t, cfg.Text, "starting_cash = 10000000  # $100,000.00 per agent\n")
	assert.Contains(t, cfg.Text, "total_trading_agents = 5127\n")
	assert.Contains(t, cfg.Text, "oracle = SparseMeanRevertingOracle(mkt_open, mkt_close, symbols)")
}

func TestRender_AgentBlocks(t *testing.T) {
	cfg, err := Render(testInput())
	require.NoError(t, err)

	// Exchange agent is always present and first.
	assert.Contains(t, cfg.Text, "name='EXCHANGE_AGENT'")

	// Blocks follow exchange instantiation order: noise, value, momentum, amm.
	noiseIdx := strings.Index(cfg.Text, "# Noise Agents (5000)")
	valueIdx := strings.Index(cfg.Text, "# Value Agents (100)")
	momentumIdx := strings.Index(cfg.Text, "# Momentum Agents (25)")
	ammIdx := strings.Index(cfg.Text, "# Adaptive Market Maker Agents (2)")
	require.NotEqual(t, -1, noiseIdx)
	require.NotEqual(t, -1, valueIdx)
	require.NotEqual(t, -1, momentumIdx)
	require.NotEqual(t, -1, ammIdx)
	assert.Less(t, noiseIdx, valueIdx)
	assert.Less(t, valueIdx, momentumIdx)
	assert.Less(t, momentumIdx, ammIdx)

	// Kinds with zero count emit no block.
	assert.NotContains(t, cfg.Text, "# Market Maker Agents (")
	assert.NotContains(t, cfg.Text, "ZeroIntelligenceAgent(")

	// Registry params flow into the blocks.
	assert.Contains(t, cfg.Text, "pov=0.025")
	assert.Contains(t, cfg.Text, "wake_up_freq=str_to_ns('60s')")
	assert.Contains(t, cfg.Text, "agent_count += 5000")
}

func TestRender_Header(t *testing.T) {
	cfg, err := Render(testInput())
	require.NoError(t, err)

	assert.Contains(t, cfg.Text, "Template: rmsc03")
	assert.Contains(t, cfg.Text, "  noise: 5000\n")
	assert.Contains(t, cfg.Text, "Total trading agents: 5127")
	assert.Contains(t, cfg.Text, "Generated on: 2026-08-26 12:00:00 (metadata only")
	assert.Contains(t, cfg.Text, "Run with: python rmsc03_test.py -c rmsc03_test -v")
}

func TestRender_CustomTemplateName(t *testing.T) {
	in := testInput()
	in.TemplateName = ""
	cfg, err := Render(in)
	require.NoError(t, err)
	assert.Contains(t, cfg.Text, "Template: custom")
}

func TestRender_GymOnlyWhenRequested(t *testing.T) {
	cfg, err := Render(testInput())
	require.NoError(t, err)
	assert.NotContains(t, cfg.Text, "background_config")

	in := testInput()
	in.Params.Gym = true
	cfg, err = Render(in)
	require.NoError(t, err)
	assert.Contains(t, cfg.Text, "background_config = create_background_config()")
}

func TestRender_GymComposition(t *testing.T) {
	in := testInput()
	in.Params.Gym = true
	cfg, err := Render(in)
	require.NoError(t, err)

	// The exported composition excludes the exchange agent and includes every
	// configured kind with count > 0, under snake_case keys.
	assert.Contains(t, cfg.Text, "'agents': agents[1:],  # Exclude exchange agent")
	assert.Contains(t, cfg.Text, "'noise': 5000,")
	assert.Contains(t, cfg.Text, "'value': 100,")
	assert.Contains(t, cfg.Text, "'momentum': 25,")
	assert.Contains(t, cfg.Text, "'adaptive_market_maker': 2,")
	assert.NotContains(t, cfg.Text, "'market_maker': 0")
	assert.NotContains(t, cfg.Text, "'exchange':")
}

func TestRender_OpenNotBeforeClose(t *testing.T) {
	in := testInput()
	in.Params.Open = "16:00:00"
	in.Params.Close = "09:30:00"
	_, err := Render(in)
	require.Error(t, err)
	assert.Equal(t, errors.ERender, errors.GetCode(err))
}

func TestDollars(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{10_000_000, "100,000.00"},
		{1_000_000, "10,000.00"},
		{99, "0.99"},
		{100, "1.00"},
		{123456789, "1,234,567.89"},
		{0, "0.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, dollars(tt.cents))
	}
}
