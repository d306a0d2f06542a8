// Package main is the entry point for the domassert CLI.
package main

import (
	"os"

	"github.com/jmylchreest/domassert/cmd/domassert/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
