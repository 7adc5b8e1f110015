package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/olindh/kassabok"
	"github.com/shopspring/decimal"
)

type addCmd struct {
	date     string
	mark     string
	payee    string
	comment  string
	from     string
	to       string
	amount   string
	currency string
	id       int
	index    int
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a transaction in its monthly ledger file" }
func (*addCmd) Usage() string {
	return `add -p <payee> -from <account> -to <account> -a <amount> [-d <date>] [-c <currency>] [-m <comment>] [-id <n>] [-at <index>]

  Records a double-entry transaction: the amount leaves the -from account and
  enters the -to account. The entry is written into <year>/<month>.ledger under
  the data directory, replacing the entry at -at when given.

Usage Examples:
# Groceries paid from the checking account.
$ kbk add -p ICA -from Asset:Checking -to Expenses:Food -a 523.50
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", kassabok.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.mark, "mark", "*", "Status marker (*, ! or @)")
	f.StringVar(&c.payee, "p", "", "Payee")
	f.StringVar(&c.comment, "m", "", "An optional note for the transaction")
	f.StringVar(&c.from, "from", "", "Account the amount leaves")
	f.StringVar(&c.to, "to", "", "Account the amount enters")
	f.StringVar(&c.amount, "a", "", "Amount, in the transaction currency")
	f.StringVar(&c.currency, "c", "SEK", "Currency code")
	f.IntVar(&c.id, "id", 0, "Bank row identity to connect to")
	f.IntVar(&c.index, "at", -1, "Index of the entry to replace in its monthly file")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.payee == "" || c.from == "" || c.to == "" || c.amount == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := kassabok.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	prefix, ok := kassabok.ParsePrefix(c.mark)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown status marker %q, want *, ! or @\n", c.mark)
		return subcommands.ExitUsageError
	}
	value, err := decimal.NewFromString(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
		return subcommands.ExitUsageError
	}

	postings, amount := kassabok.Standardize([]kassabok.Posting{
		{Account: c.to, Currency: c.currency},
		{Account: c.from, Currency: c.currency, Amount: kassabok.AmountOf(value.Neg())},
	})

	tx := kassabok.Transaction{
		Date:     day,
		Prefix:   prefix,
		Payee:    c.payee,
		Comment:  c.comment,
		Postings: postings,
		Amount:   kassabok.M(amount, c.currency),
	}
	if c.id > 0 {
		tx.ID = &c.id
	}
	if c.index >= 0 {
		tx.Index = &c.index
	}

	if err := kassabok.SaveTransaction(DataDir(), tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving transaction: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Successfully saved transaction to %s\n", kassabok.MonthlyFile(DataDir(), day))
	return subcommands.ExitSuccess
}
