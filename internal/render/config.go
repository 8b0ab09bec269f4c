// Package render produces the text of generated ABIDES configuration files.
//
// Rendering is deterministic: the same Input yields byte-identical output.
// The generation timestamp is supplied by the caller and appears only in the
// header comment as metadata.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/marketsim/abidesgen/internal/agent"
	"github.com/marketsim/abidesgen/internal/compose"
	"github.com/marketsim/abidesgen/internal/errors"
	"github.com/marketsim/abidesgen/internal/market"
)

// Input is everything the renderer needs for one configuration file.
type Input struct {
	TemplateName string // empty for fully custom compositions
	Composition  compose.Composition
	Params       market.Params
	Seed         int64
	FileName     string // target file name, with extension
	GeneratedAt  time.Time
}

// Config is a rendered configuration: the output text plus its file name.
// Write-once; ownership passes to the CLI layer for persistence.
type Config struct {
	FileName string
	Text     string
}

// Render produces the configuration text for in.
// Section order is fixed: header/imports, general configuration, oracle,
// agents, kernel, and (gym mode only) the gym export.
// Returns E_RENDER if the market parameters fail the open/close cross-check.
func Render(in Input) (Config, error) {
	open, err := time.Parse(market.TimeFormat, in.Params.Open)
	if err != nil {
		return Config{}, errors.Wrap(errors.ERender, "invalid market open time", err)
	}
	close, err := time.Parse(market.TimeFormat, in.Params.Close)
	if err != nil {
		return Config{}, errors.Wrap(errors.ERender, "invalid market close time", err)
	}
	if !open.Before(close) {
		return Config{}, errors.New(errors.ERender,
			fmt.Sprintf("market open (%s) must be before market close (%s)", in.Params.Open, in.Params.Close))
	}

	var b strings.Builder
	writeHeader(&b, in)
	writeImports(&b)
	writeGeneral(&b, in.Seed)
	writeOracle(&b, in.Params)
	writeAgents(&b, in)
	writeKernel(&b)
	if in.Params.Gym {
		writeGym(&b, in.Composition)
	}

	return Config{FileName: in.FileName, Text: b.String()}, nil
}

// writeHeader emits the leading docstring: tool identity, template name,
// composition summary, and the generation timestamp (metadata only).
func writeHeader(b *strings.Builder, in Input) {
	templateName := in.TemplateName
	if templateName == "" {
		templateName = "custom"
	}

	configName := strings.TrimSuffix(in.FileName, ".py")

	fmt.Fprintf(b, `#!/usr/bin/env python3
"""
ABIDES Configuration File
Generated by abidesgen v1.0.0
Template: %s
`, templateName)
	for _, kind := range agent.Kinds() {
		if n := in.Composition[kind]; n > 0 {
			fmt.Fprintf(b, "  %s: %d\n", kind, n)
		}
	}
	fmt.Fprintf(b, `Total trading agents: %d
Generated on: %s (metadata only; not read by the simulation)

This configuration sets up an ABIDES market simulation with specified parameters.
Run with: python %s -c %s -v
"""

`, in.Composition.Total(), in.GeneratedAt.Format("2006-01-02 15:04:05"), in.FileName, configName)
}

const importsSection = `###### IMPORTS ######

import argparse
import numpy as np
import pandas as pd
import datetime as dt
import logging

# ABIDES Core Components
from abides_core.kernel import Kernel
from abides_core.utils import util, str_to_ns

# Oracle Components
from abides_markets.oracles.SparseMeanRevertingOracle import SparseMeanRevertingOracle

# Latency Model
from abides_core.latency_model import LatencyModel

# Agent Components
from abides_markets.agents.ExchangeAgent import ExchangeAgent
from abides_markets.agents.NoiseAgent import NoiseAgent
from abides_markets.agents.ValueAgent import ValueAgent
from abides_markets.agents.ZeroIntelligenceAgent import ZeroIntelligenceAgent
from abides_markets.agents.market_makers.MarketMakerAgent import MarketMakerAgent
from abides_markets.agents.examples.momentum_agent import MomentumAgent
from abides_markets.agents.market_makers.adaptive_market_maker_agent import AdaptiveMarketMakerAgent


`

func writeImports(b *strings.Builder) {
	b.WriteString(importsSection)
}

const generalBeforeSeed = `###### GENERAL CONFIGURATION ######

# Parse command line arguments
parser = argparse.ArgumentParser(
    description='ABIDES Market Simulation - Generated Configuration',
    formatter_class=argparse.ArgumentDefaultsHelpFormatter
)
parser.add_argument('-c', '--config', required=True,
                   help='Configuration name (must match filename)')
parser.add_argument('-l', '--log_dir', default=None,
                   help='Log directory (default: auto-generated timestamp)')
parser.add_argument('-v', '--verbose', action='store_true',
                   help='Enable verbose logging and detailed output')
parser.add_argument('--log-level', choices=['DEBUG', 'INFO', 'WARNING', 'ERROR'],
                   default='INFO', help='Set logging level')

args, remaining_args = parser.parse_known_args()

# Configuration parameters
log_dir = args.log_dir
`

const generalAfterSeed = `
# Set up logging
log_level = getattr(logging, args.log_level.upper())
logging.basicConfig(
    level=log_level,
    format='%(asctime)s - %(name)s - %(levelname)s - %(message)s',
    datefmt='%Y-%m-%d %H:%M:%S'
)

# Initialize random state for reproducible simulations
np.random.seed(seed)
util.silent_mode = not args.verbose

# Simulation metadata
simulation_start_time = dt.datetime.now()

print("=" * 60)
print("🚀 ABIDES Market Simulation Starting")
print("=" * 60)
print(f"📅 Start Time: {simulation_start_time.strftime('%Y-%m-%d %H:%M:%S')}")
print(f"🎲 Random Seed: {seed}")
print(f"📁 Log Directory: {log_dir or 'Auto-generated'}")
print(f"🔊 Verbose Mode: {'Enabled' if args.verbose else 'Disabled'}")
print("=" * 60 + "\n")

`

func writeGeneral(b *strings.Builder, seed int64) {
	b.WriteString(generalBeforeSeed)
	fmt.Fprintf(b, "seed = %d\n", seed)
	b.WriteString(generalAfterSeed)
}

// dollars formats a cent amount as a dollar string with thousands separators
// and two decimal places, e.g. 10000000 -> "100,000.00".
func dollars(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	whole := cents / 100
	frac := cents % 100
	s := fmt.Sprintf("%s.%02d", addCommas(whole), frac)
	if neg {
		return "-" + s
	}
	return s
}

// addCommas inserts thousands separators into a non-negative integer.
func addCommas(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	return s + "," + strings.Join(parts, ",")
}
