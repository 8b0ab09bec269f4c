// Command abidesgen generates ready-to-run ABIDES market simulation
// configuration files from research templates and CLI flags.
package main

import (
	"os"

	"github.com/marketsim/abidesgen/internal/cli"
	"github.com/marketsim/abidesgen/internal/errors"
)

func main() {
	err := cli.Run(os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		errors.Print(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}
}
