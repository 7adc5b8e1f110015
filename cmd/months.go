package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/olindh/kassabok"
)

type monthsCmd struct{}

func (*monthsCmd) Name() string     { return "months" }
func (*monthsCmd) Synopsis() string { return "list every month with activity" }
func (*monthsCmd) Usage() string {
	return `kbk months

  Lists the calendar months holding at least one declared or imported
  transaction, in ascending order.
`
}

func (*monthsCmd) SetFlags(f *flag.FlagSet) {}

func (c *monthsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	aggs, err := kassabok.ReadAggregations(DataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	b.WriteString("# Months\n\n")
	for _, ym := range kassabok.YearMonths(aggs) {
		fmt.Fprintf(&b, "- %04d-%02d\n", ym.Year, int(ym.Month))
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
