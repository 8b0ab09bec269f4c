package commands

import (
	"fmt"
	"io"

	"github.com/marketsim/abidesgen/internal/agent"
	"github.com/marketsim/abidesgen/internal/template"
)

// Info implements the `abidesgen info <name>` command: a detailed view of one
// template, in sectioned key/value form.
func Info(name string, stdout io.Writer) error {
	t, err := template.Lookup(name)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, "=== template ===")
	fmt.Fprintf(stdout, "name: %s\n", t.Name)
	fmt.Fprintf(stdout, "description: %s\n", t.Description)

	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "=== agents ===")
	for _, kind := range agent.Kinds() {
		if n := t.Agents[string(kind)]; n > 0 {
			fmt.Fprintf(stdout, "%s: %d\n", kind, n)
		}
	}
	fmt.Fprintf(stdout, "total_agents: %d\n", t.TotalAgents())
	fmt.Fprintf(stdout, "breakdown: %s\n", agentBreakdown(t))

	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "=== market ===")
	if t.Market.Symbol != "" {
		fmt.Fprintf(stdout, "symbol: %s\n", t.Market.Symbol)
	}
	if t.Market.Date != "" {
		fmt.Fprintf(stdout, "date: %s\n", t.Market.Date)
	}
	if t.Market.Open != "" && t.Market.Close != "" {
		fmt.Fprintf(stdout, "hours: %s - %s\n", t.Market.Open, t.Market.Close)
	}
	if t.Market.StartingCash != 0 {
		fmt.Fprintf(stdout, "starting_cash_cents: %d\n", t.Market.StartingCash)
		fmt.Fprintf(stdout, "total_market_cap_cents: %d\n", t.Market.StartingCash*int64(t.TotalAgents()))
	}

	return nil
}
