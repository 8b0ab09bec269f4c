// Package cli handles command-line parsing and dispatch for abidesgen.
package cli

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/marketsim/abidesgen/internal/agent"
	"github.com/marketsim/abidesgen/internal/commands"
	"github.com/marketsim/abidesgen/internal/compose"
	"github.com/marketsim/abidesgen/internal/errors"
	"github.com/marketsim/abidesgen/internal/fs"
	"github.com/marketsim/abidesgen/internal/version"
)

const usageText = `abidesgen - ABIDES market simulation configuration generator

usage: abidesgen <command> [options]

commands:
  generate    render a simulation configuration file
  templates   list available research templates
  info        show details for one template

options:
  -h, --help      show this help
  -v, --version   show version

run 'abidesgen <command> --help' for command-specific help.
`

const generateUsageText = `usage: abidesgen generate [options]

render an ABIDES simulation configuration file.
a template, explicit agent counts, or both (template + overrides) select the
agent composition; an explicit count replaces the template's value for that kind.

template and output:
  --template <name>          research template (see 'abidesgen templates')
  --name, -f <name>          config file name (auto-generated if not given)
  --out-dir, -o <dir>        output directory (default: current directory)
  --validate-only            run all checks but write nothing
  --quiet, -q                suppress advisory warnings

agent composition:
  --market-makers, -mm <n>           Market Maker agents (provide liquidity)
  --adaptive-market-makers, -amm <n> Adaptive Market Maker agents (dynamic spreads)
  --zero-intelligence, -zi <n>       Zero Intelligence agents (random trading)
  --noise, -na <n>                   Noise agents (background trading)
  --value, -va <n>                   Value agents (fundamental trading)
  --momentum, -mo <n>                Momentum agents (trend following)
  --scale <factor>                   multiply every count by factor (default 1.0)

market parameters:
  --symbol <sym>             primary trading symbol
  --date <YYYY-MM-DD>        historical market date
  --open <HH:MM:SS>          market opening time
  --close <HH:MM:SS>         market closing time
  --cash <cents>             starting cash per agent in cents
  --seed <n>                 random seed (auto-generated if not given)
  --gym                      add the ABIDES-Gym compatibility export

examples:
  abidesgen generate --template rmsc03 -f my_research_config
  abidesgen generate --template rmsc04 --symbol AAPL --scale 0.1
  abidesgen generate -f custom -mm 2 -amm 3 -mo 15 -zi 100 -va 25
  abidesgen generate -f rl_env -mm 1 -zi 50 --gym
  abidesgen generate --validate-only --template hft
`

const templatesUsageText = `usage: abidesgen templates

list all available research configuration templates.

options:
  -h, --help    show this help
`

const infoUsageText = `usage: abidesgen info <name>

show detailed information about a specific template.

arguments:
  name          the template name (e.g., rmsc03)

options:
  -h, --help    show this help
`

// Run parses arguments and dispatches to the appropriate subcommand.
// Returns an error if the command fails; the caller should print the error and exit.
func Run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stdout, usageText)
		return errors.New(errors.EUsage, "no command specified")
	}

	cmd := args[0]
	cmdArgs := args[1:]

	// Handle global flags
	if cmd == "-h" || cmd == "--help" {
		fmt.Fprint(stdout, usageText)
		return nil
	}
	if cmd == "-v" || cmd == "--version" {
		fmt.Fprintf(stdout, "abidesgen %s\n", version.Version)
		return nil
	}

	switch cmd {
	case "generate":
		return runGenerate(cmdArgs, stdout, stderr)
	case "templates":
		return runTemplates(cmdArgs, stdout, stderr)
	case "info":
		return runInfo(cmdArgs, stdout, stderr)
	default:
		fmt.Fprint(stdout, usageText)
		return errors.New(errors.EUsage, fmt.Sprintf("unknown command: %s", cmd))
	}
}

// countFlags maps every composition flag name (long and short) to its kind.
var countFlags = map[string]agent.Kind{
	"market-makers":          agent.MarketMaker,
	"mm":                     agent.MarketMaker,
	"adaptive-market-makers": agent.AdaptiveMarketMaker,
	"amm":                    agent.AdaptiveMarketMaker,
	"zero-intelligence":      agent.ZeroIntelligence,
	"zi":                     agent.ZeroIntelligence,
	"noise":                  agent.Noise,
	"na":                     agent.Noise,
	"value":                  agent.Value,
	"va":                     agent.Value,
	"momentum":               agent.Momentum,
	"mo":                     agent.Momentum,
}

func runGenerate(args []string, stdout, stderr io.Writer) error {
	flagSet := flag.NewFlagSet("generate", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	templateName := flagSet.String("template", "", "research template name")
	var name string
	flagSet.StringVar(&name, "name", "", "config file name")
	flagSet.StringVar(&name, "f", "", "config file name")
	var outDir string
	flagSet.StringVar(&outDir, "out-dir", "", "output directory")
	flagSet.StringVar(&outDir, "o", "", "output directory")
	validateOnly := flagSet.Bool("validate-only", false, "run all checks but write nothing")
	var quiet bool
	flagSet.BoolVar(&quiet, "quiet", false, "suppress advisory warnings")
	flagSet.BoolVar(&quiet, "q", false, "suppress advisory warnings")

	// Agent counts: both long and short spellings bind the same variable.
	counts := make(map[agent.Kind]*int)
	for _, kind := range agent.Kinds() {
		counts[kind] = new(int)
	}
	for flagName, kind := range countFlags {
		flagSet.IntVar(counts[kind], flagName, 0, "agent count")
	}
	scale := flagSet.Float64("scale", 1.0, "scale factor for all agent counts")

	symbol := flagSet.String("symbol", "", "primary trading symbol")
	date := flagSet.String("date", "", "historical market date")
	open := flagSet.String("open", "", "market opening time")
	closeTime := flagSet.String("close", "", "market closing time")
	cash := flagSet.Int64("cash", 0, "starting cash per agent in cents")
	seed := flagSet.Int64("seed", 0, "random seed")
	gym := flagSet.Bool("gym", false, "add the ABIDES-Gym compatibility export")

	// Handle help manually to return nil (exit 0)
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			fmt.Fprint(stdout, generateUsageText)
			return nil
		}
	}

	if err := flagSet.Parse(args); err != nil {
		return errors.Wrap(errors.EUsage, "invalid flags", err)
	}
	if flagSet.NArg() > 0 {
		return errors.New(errors.EUsage, fmt.Sprintf("unexpected argument: %s", flagSet.Arg(0)))
	}

	// Record which flags the user actually set: explicit counts override the
	// template even when zero, and template market recommendations only fill
	// parameters the user left alone.
	overrides := compose.Composition{}
	set := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) {
		set[f.Name] = true
		if kind, ok := countFlags[f.Name]; ok {
			overrides[kind] = *counts[kind]
		}
	})

	opts := commands.GenerateOpts{
		Template:     *templateName,
		Overrides:    overrides,
		Scale:        *scale,
		Symbol:       *symbol,
		SymbolSet:    set["symbol"],
		Date:         *date,
		DateSet:      set["date"],
		Open:         *open,
		OpenSet:      set["open"],
		Close:        *closeTime,
		CloseSet:     set["close"],
		Cash:         *cash,
		CashSet:      set["cash"],
		Seed:         *seed,
		SeedSet:      set["seed"],
		Gym:          *gym,
		OutDir:       outDir,
		Name:         name,
		ValidateOnly: *validateOnly,
		Quiet:        quiet,
	}

	return commands.Generate(fs.NewRealFS(), opts, time.Now(), stdout, stderr)
}

func runTemplates(args []string, stdout, stderr io.Writer) error {
	flagSet := flag.NewFlagSet("templates", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	// Handle help manually to return nil (exit 0)
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			fmt.Fprint(stdout, templatesUsageText)
			return nil
		}
	}

	if err := flagSet.Parse(args); err != nil {
		return errors.Wrap(errors.EUsage, "invalid flags", err)
	}

	return commands.Templates(stdout)
}

func runInfo(args []string, stdout, stderr io.Writer) error {
	flagSet := flag.NewFlagSet("info", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	// Handle help manually to return nil (exit 0)
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			fmt.Fprint(stdout, infoUsageText)
			return nil
		}
	}

	if err := flagSet.Parse(args); err != nil {
		return errors.Wrap(errors.EUsage, "invalid flags", err)
	}

	positionalArgs := flagSet.Args()
	if len(positionalArgs) < 1 {
		fmt.Fprint(stderr, infoUsageText)
		return errors.New(errors.EUsage, "template name is required")
	}

	return commands.Info(positionalArgs[0], stdout)
}
