package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"
	"github.com/olindh/kassabok"
)

type reconcileCmd struct {
	month string
	open  bool
}

func (*reconcileCmd) Name() string { return "reconcile" }
func (*reconcileCmd) Synopsis() string {
	return "display the ledger reconciled against the bank csv exports"
}
func (*reconcileCmd) Usage() string {
	return `kbk reconcile [-m <YYYY-MM>] [-open]

  Matches the declared transactions against the rows imported from the bank
  csv exports, and displays the result day by day. Each entry is classified:

    CONNECTED    declared and bank row share an identity
    AUTO_MATCHED same date, amount and similar payee, no shared identity
    UNCONNECTED  declared entry with no bank counterpart
    INFERRED     bank row with no declared counterpart

Usage Examples:
# Review March, unresolved entries only.
$ kbk reconcile -m 2025-03 -open
`
}

func (c *reconcileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Restrict the report to one month (YYYY-MM)")
	f.BoolVar(&c.open, "open", false, "Hide connected entries, show only what needs attention")
}

func (c *reconcileCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	aggs, err := kassabok.ReadAggregations(DataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	title := "Reconciliation"
	if c.month != "" {
		m, err := time.Parse("2006-01", c.month)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing month %q: %v\n", c.month, err)
			return subcommands.ExitUsageError
		}
		aggs = kassabok.FilterYearMonth(aggs, m.Year(), m.Month())
		title = "Reconciliation " + c.month
	}

	printMarkdown(reconciliationMarkdown(title, kassabok.GroupByDate(aggs), c.open))
	return subcommands.ExitSuccess
}

func reconciliationMarkdown(title string, groups []kassabok.DateGroup, openOnly bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", title)

	empty := true
	for _, g := range groups {
		rows := make([]kassabok.Aggregation, 0, len(g.Connected)+len(g.Unconnected)+len(g.Inferred))
		if !openOnly {
			rows = append(rows, g.Connected...)
		}
		rows = append(rows, g.Unconnected...)
		rows = append(rows, g.Inferred...)
		if len(rows) == 0 {
			continue
		}
		empty = false

		fmt.Fprintf(&b, "\n## %s\n\n", g.Date)
		fmt.Fprintf(&b, "| Status | Payee | Amount | Account | Id |\n")
		fmt.Fprintf(&b, "|---|---|---:|---|---|\n")
		for _, a := range rows {
			id := ""
			if a.ID != nil {
				id = fmt.Sprintf("#%d", *a.ID)
			}
			payee := ""
			if t := a.Transaction(); t != nil {
				payee = t.Payee
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				a.Status, payee, a.Amount.String(), a.ObjectAccount(), id)
		}
	}
	if empty {
		b.WriteString("\nNothing to reconcile.\n")
	}
	return b.String()
}
