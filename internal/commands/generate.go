// Package commands implements abidesgen CLI commands.
package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/marketsim/abidesgen/internal/compose"
	"github.com/marketsim/abidesgen/internal/core"
	"github.com/marketsim/abidesgen/internal/errors"
	"github.com/marketsim/abidesgen/internal/fs"
	"github.com/marketsim/abidesgen/internal/market"
	"github.com/marketsim/abidesgen/internal/render"
	"github.com/marketsim/abidesgen/internal/template"
)

// GenerateOpts holds options for the generate command.
//
// Overrides carries only the kinds the user explicitly set; an explicit zero
// replaces the template's value for that kind. The *Set flags record which
// market parameters were given on the command line so that template
// recommendations only fill the gaps.
type GenerateOpts struct {
	Template  string
	Overrides compose.Composition
	Scale     float64

	Symbol    string
	SymbolSet bool
	Date      string
	DateSet   bool
	Open      string
	OpenSet   bool
	Close     string
	CloseSet  bool
	Cash      int64
	CashSet   bool
	Seed      int64
	SeedSet   bool

	Gym          bool
	OutDir       string
	Name         string
	ValidateOnly bool
	Quiet        bool
}

// GenerateResult holds the outcome of a generate run for output formatting.
type GenerateResult struct {
	ConfigPath  string
	Template    string // "custom" when no template was used
	TotalAgents int
	Seed        int64
	Validated   bool // true when --validate-only skipped the write
}

// Generate implements the `abidesgen generate` command: template lookup,
// composition resolution, parameter validation, rendering, and the atomic
// file write. With ValidateOnly the pipeline runs fully but nothing is written.
func Generate(fsys fs.FS, opts GenerateOpts, now time.Time, stdout, stderr io.Writer) error {
	var tmpl template.Template
	base := compose.Composition{}
	if opts.Template != "" {
		t, err := template.Lookup(opts.Template)
		if err != nil {
			return err
		}
		tmpl = t
		base = t.Composition()
	}

	comp, warnings, err := compose.Resolve(base, opts.Overrides, opts.Scale)
	if err != nil {
		return err
	}

	params := resolveParams(tmpl, opts)
	paramWarnings, err := params.Validate(now)
	if err != nil {
		return err
	}

	seed := opts.Seed
	if !opts.SeedSet {
		seed = market.AutoSeed(now)
	}

	fileName := ""
	if opts.Name != "" {
		fileName, err = core.SanitizeName(opts.Name)
		if err != nil {
			return err
		}
	} else {
		fileName = core.AutoName(opts.Template, comp.Total(), now)
	}

	cfg, err := render.Render(render.Input{
		TemplateName: opts.Template,
		Composition:  comp,
		Params:       params,
		Seed:         seed,
		FileName:     fileName,
		GeneratedAt:  now,
	})
	if err != nil {
		return err
	}

	if !opts.Quiet {
		for _, w := range warnings {
			fmt.Fprintf(stderr, "warning: %s\n", w.Msg)
		}
		for _, w := range paramWarnings {
			fmt.Fprintf(stderr, "warning: %s\n", w)
		}
	}

	outDir := opts.OutDir
	if outDir == "" {
		outDir = "."
	}
	configPath := filepath.Join(outDir, cfg.FileName)

	result := GenerateResult{
		ConfigPath:  configPath,
		Template:    displayTemplate(opts.Template),
		TotalAgents: comp.Total(),
		Seed:        seed,
		Validated:   opts.ValidateOnly,
	}

	if opts.ValidateOnly {
		writeGenerateOutput(stdout, result)
		return nil
	}

	if err := fsys.MkdirAll(outDir, 0755); err != nil {
		return errors.WrapWithDetails(errors.EWriteFailed, "failed to create output directory", err,
			map[string]string{"path": outDir})
	}
	if err := fs.WriteFileAtomic(fsys, configPath, []byte(cfg.Text), 0644); err != nil {
		return errors.WrapWithDetails(errors.EWriteFailed, "failed to write configuration file", err,
			map[string]string{"path": configPath})
	}

	writeGenerateOutput(stdout, result)
	return nil
}

// resolveParams layers market parameters: hard defaults, then template
// recommendations, then explicit flags. Later layers win; template values
// apply only to fields the user did not set.
func resolveParams(tmpl template.Template, opts GenerateOpts) market.Params {
	p := market.Params{
		Symbol:       market.DefaultSymbol,
		Date:         market.DefaultDate,
		Open:         market.DefaultOpen,
		Close:        market.DefaultClose,
		StartingCash: market.DefaultStartingCash,
		Seed:         opts.Seed,
		SeedSet:      opts.SeedSet,
		Gym:          opts.Gym,
	}

	if tmpl.Market.Symbol != "" {
		p.Symbol = tmpl.Market.Symbol
	}
	if tmpl.Market.Date != "" {
		p.Date = tmpl.Market.Date
	}
	if tmpl.Market.Open != "" {
		p.Open = tmpl.Market.Open
	}
	if tmpl.Market.Close != "" {
		p.Close = tmpl.Market.Close
	}
	if tmpl.Market.StartingCash != 0 {
		p.StartingCash = tmpl.Market.StartingCash
	}

	if opts.SymbolSet {
		p.Symbol = opts.Symbol
	}
	if opts.DateSet {
		p.Date = opts.Date
	}
	if opts.OpenSet {
		p.Open = opts.Open
	}
	if opts.CloseSet {
		p.Close = opts.Close
	}
	if opts.CashSet {
		p.StartingCash = opts.Cash
	}

	return p
}

func displayTemplate(name string) string {
	if name == "" {
		return "custom"
	}
	return name
}

func writeGenerateOutput(w io.Writer, r GenerateResult) {
	if r.Validated {
		fmt.Fprintln(w, "validation: ok")
		fmt.Fprintf(w, "would_generate: %s\n", r.ConfigPath)
	} else {
		fmt.Fprintf(w, "config_path: %s\n", r.ConfigPath)
	}
	fmt.Fprintf(w, "template: %s\n", r.Template)
	fmt.Fprintf(w, "total_agents: %d\n", r.TotalAgents)
	fmt.Fprintf(w, "seed: %d\n", r.Seed)
	if !r.Validated {
		base := strings.TrimSuffix(filepath.Base(r.ConfigPath), core.ConfigExt)
		fmt.Fprintf(w, "run_hint: python %s -c %s -v\n", r.ConfigPath, base)
	}
}
