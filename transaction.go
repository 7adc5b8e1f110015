package kassabok

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Prefix is the tri-state marker on a transaction header line.
type Prefix string

const (
	Cleared Prefix = "*" // declared and verified by the user
	Pending Prefix = "!" // declared but not verified
	Flagged Prefix = "@" // needs attention, e.g. inferred with no account match
)

// ParsePrefix validates a header marker.
func ParsePrefix(s string) (Prefix, bool) {
	switch Prefix(s) {
	case Cleared, Pending, Flagged:
		return Prefix(s), true
	default:
		return "", false
	}
}

// Transaction is one double-entry record. Declared transactions come from
// ledger files; inferred ones from bank CSV rows. Transactions are value
// records: they are replaced whole, never partially mutated.
type Transaction struct {
	Date     Date
	Prefix   Prefix
	Payee    string
	Comment  string
	ID       *int // set once linked to an imported bank row
	Index    *int // position in the owning monthly file, set once persisted
	Postings []Posting
	Amount   Money // sum of the subject postings, the user-facing figure
}

// ObjectAccount returns the account of the first object posting.
func (t Transaction) ObjectAccount() string {
	for _, p := range t.Postings {
		if p.Role == Object {
			return p.Account
		}
	}
	return ""
}

// Balanced reports whether all defined amounts sum to zero. The grammar
// accepts fully-amounted transactions that do not balance; callers that care
// should check explicitly.
func (t Transaction) Balanced() bool {
	sum := decimal.Zero
	undefined := 0
	for _, p := range t.Postings {
		if !p.Amount.Defined() {
			undefined++
			continue
		}
		sum = sum.Add(p.Amount.Decimal())
	}
	return undefined > 0 || sum.IsZero()
}

// Equal compares the user-meaningful content of two transactions: date,
// prefix, payee, comment, id and the (role-classified) postings. Index is
// storage bookkeeping and is ignored.
func (t Transaction) Equal(u Transaction) bool {
	if t.Date != u.Date || t.Prefix != u.Prefix || t.Payee != u.Payee || t.Comment != u.Comment {
		return false
	}
	if !eqIntPtr(t.ID, u.ID) {
		return false
	}
	if !t.Amount.Equal(u.Amount) {
		return false
	}
	if len(t.Postings) != len(u.Postings) {
		return false
	}
	for i := range t.Postings {
		if !t.Postings[i].Equal(u.Postings[i]) {
			return false
		}
	}
	return true
}

func eqIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// SortByDate stable-sorts transactions chronologically.
func SortByDate(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.Before(txs[j].Date)
	})
}

// SortByObjectAccount stable-sorts transactions by their object account,
// the secondary order used inside a monthly file.
func SortByObjectAccount(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].ObjectAccount() < txs[j].ObjectAccount()
	})
}

// intp is a small helper for optional int fields.
func intp(v int) *int { return &v }
