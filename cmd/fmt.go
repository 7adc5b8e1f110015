package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/olindh/kassabok"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and rewrites the monthly ledger files into canonical form"
}
func (*fmtCmd) Usage() string {
	return `kbk fmt

  Validates and formats the monthly ledger files. This command reads every
  transaction, re-orders postings canonically, sorts entries by account and
  date, and writes the files back in-place.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	files, err := kassabok.FormatLedgers(DataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not format ledgers: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "Warning: no ledger files found to format.\n")
		return subcommands.ExitSuccess
	}
	for _, file := range files {
		fmt.Fprintf(os.Stderr, "Formatted %q.\n", file)
	}
	return subcommands.ExitSuccess
}
