// Package cmd implements the CLI application to keep the household books.
package cmd

import (
	"flag"

	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "transactions")
	c.Register(&fmtCmd{}, "transactions")

	c.Register(&reconcileCmd{}, "reports")
	c.Register(&payeesCmd{}, "reports")
	c.Register(&monthsCmd{}, "reports")

	c.Register(&topicCmd{}, "help")
	c.Register(&assistCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("D", ".", "Path to the data directory holding main.ledger, monthly files and csv exports")

// DataDir returns the data directory all commands operate on.
func DataDir() string { return *dataDir }
