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

type payeesCmd struct{}

func (*payeesCmd) Name() string     { return "payees" }
func (*payeesCmd) Synopsis() string { return "list every payee appearing in the ledger" }
func (*payeesCmd) Usage() string {
	return `kbk payees

  Lists the payees of all declared transactions, in first-seen order.
`
}

func (*payeesCmd) SetFlags(f *flag.FlagSet) {}

func (c *payeesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	payees, err := kassabok.ReadPayees(DataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	b.WriteString("# Payees\n\n")
	for _, p := range payees {
		fmt.Fprintf(&b, "- %s\n", p)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
