package kassabok

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Role classifies a posting leg. The subject is the account the user reasons
// about (their own money); the object is the counterpart leg.
type Role int

const (
	Subject Role = iota
	Object
)

func (r Role) String() string {
	switch r {
	case Subject:
		return "subject"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Posting is one leg of a double-entry transaction.
type Posting struct {
	Account  string // hierarchical colon-separated path, e.g. "Asset:Bank:Checking"
	Currency string
	Amount   Amount // at most one posting per transaction may leave this undefined
	Role     Role
}

// Owned reports whether the posting hits an account the user owns.
func (p Posting) Owned() bool {
	return strings.HasPrefix(p.Account, "Asset") || strings.HasPrefix(p.Account, "Equity")
}

// Equal compares postings field by field, including amount definedness.
func (p Posting) Equal(q Posting) bool {
	return p.Account == q.Account &&
		p.Currency == q.Currency &&
		p.Role == q.Role &&
		p.Amount.Equal(q.Amount)
}

// Standardize classifies raw postings as subject or object and re-expresses
// them in the canonical object-then-subject order.
//
// If a not-owned account is involved, the transaction is an expense or income
// of some kind: the owned legs with negative amounts are the subjects. If the
// transaction is a transfer between owned accounts only, the subjects are the
// debit (positive) legs instead. The first posting of the canonical order
// carries the implied amount; every other leg gets its given amount, or the
// negated sum of all given amounts if it had none.
//
// The second return value is the transaction amount: the sum of the subject
// legs' final amounts, the figure the user relates to.
func Standardize(postings []Posting) ([]Posting, decimal.Decimal) {
	definedSum := decimal.Zero
	for _, p := range postings {
		definedSum = definedSum.Add(p.Amount.Or(decimal.Zero))
	}
	implied := definedSum.Neg()

	allOwned := true
	for _, p := range postings {
		if !p.Owned() {
			allOwned = false
			break
		}
	}

	isSubject := func(p Posting) bool {
		if !p.Owned() {
			return false
		}
		amount := p.Amount.Or(implied)
		if allOwned {
			return amount.IsPositive()
		}
		return amount.IsNegative()
	}

	var objects, subjects []Posting
	for _, p := range postings {
		if isSubject(p) {
			p.Role = Subject
			subjects = append(subjects, p)
		} else {
			p.Role = Object
			objects = append(objects, p)
		}
	}

	ordered := append(objects, subjects...)
	for i := range ordered {
		if i == 0 {
			// Objects come first: the first leg is the one whose amount
			// stays implied when serialized.
			ordered[i].Amount = Amount{}
			continue
		}
		ordered[i].Amount = AmountOf(ordered[i].Amount.Or(implied))
	}

	amount := decimal.Zero
	for _, p := range ordered {
		if p.Role == Subject {
			amount = amount.Add(p.Amount.Or(implied))
		}
	}
	return ordered, amount
}
