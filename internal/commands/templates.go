package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/marketsim/abidesgen/internal/agent"
	"github.com/marketsim/abidesgen/internal/template"
)

// templateRow holds the fields for a single templates-listing row.
type templateRow struct {
	Name        string
	Agents      string
	Symbol      string
	Description string
}

// Templates implements the `abidesgen templates` command: a column listing of
// every catalog template with its baseline total and recommended symbol.
func Templates(stdout io.Writer) error {
	rows := make([]templateRow, 0)
	for _, t := range template.All() {
		rows = append(rows, templateRow{
			Name:        t.Name,
			Agents:      fmt.Sprintf("%d", t.TotalAgents()),
			Symbol:      t.Market.Symbol,
			Description: t.Description,
		})
	}
	return writeTemplateRows(stdout, rows)
}

func writeTemplateRows(w io.Writer, rows []templateRow) error {
	nameW, agentsW, symbolW := len("NAME"), len("AGENTS"), len("SYMBOL")
	for _, r := range rows {
		if len(r.Name) > nameW {
			nameW = len(r.Name)
		}
		if len(r.Agents) > agentsW {
			agentsW = len(r.Agents)
		}
		if len(r.Symbol) > symbolW {
			symbolW = len(r.Symbol)
		}
	}

	if _, err := fmt.Fprintf(w, "%-*s  %-*s  %-*s  %s\n",
		nameW, "NAME", agentsW, "AGENTS", symbolW, "SYMBOL", "DESCRIPTION"); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%-*s  %-*s  %-*s  %s\n",
			nameW, r.Name, agentsW, r.Agents, symbolW, r.Symbol, r.Description); err != nil {
			return err
		}
	}
	return nil
}

// agentBreakdown formats a template's composition as "2 adaptive-market-maker + 100 value + ...",
// listing kinds in registry order.
func agentBreakdown(t template.Template) string {
	var parts []string
	for _, kind := range agent.Kinds() {
		if n := t.Agents[string(kind)]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, kind))
		}
	}
	return strings.Join(parts, " + ")
}
