package kassabok

import (
	"sort"
	"strings"
)

// Status classifies the reconciliation state of one date+amount bucket.
type Status string

const (
	// Connected: a declared transaction whose id matches an inferred one.
	Connected Status = "CONNECTED"
	// AutoMatched: a declared/inferred pair linked heuristically by date,
	// amount and fuzzy payee, without a shared id.
	AutoMatched Status = "AUTO_MATCHED"
	// Unconnected: a declared transaction with no imported counterpart.
	Unconnected Status = "UNCONNECTED"
	// Inferred: an imported transaction with no declared counterpart.
	Inferred Status = "INFERRED"
)

// Aggregation is the reconciliation result for one slot. Connected and
// AutoMatched carry both transactions, Unconnected only the declared one,
// Inferred only the inferred one.
type Aggregation struct {
	Status   Status
	Date     Date
	Amount   Money
	ID       *int
	Declared *Transaction
	Inferred *Transaction
}

// Reconcile matches inferred transactions against declared ones.
//
// Every declared transaction seeds an Unconnected slot. Each inferred
// transaction, in input order, first claims the declared slot sharing its id
// (Connected); failing that, the first still-unclaimed slot with equal date
// and amount whose payee is a case-insensitive substring of the inferred
// payee or vice versa (AutoMatched); failing both, it appends a new Inferred
// slot. Matching is deliberately first-fit in declared-list order, not
// best-fit: ambiguous inputs resolve by list order.
//
// The result is stable-sorted by date, so re-running on the same inputs
// yields the same classification and ordering.
func Reconcile(declared, inferred []Transaction) []Aggregation {
	slots := make([]Aggregation, len(declared))
	claimed := make([]bool, len(declared))
	for i := range declared {
		t := declared[i]
		slots[i] = Aggregation{
			Status:   Unconnected,
			Date:     t.Date,
			Amount:   t.Amount,
			Declared: &t,
		}
	}

	var extra []Aggregation
	for i := range inferred {
		in := inferred[i]

		if j, ok := findByID(declared, in.ID); ok {
			slots[j].Status = Connected
			slots[j].ID = in.ID
			slots[j].Inferred = &in
			claimed[j] = true
			continue
		}

		if j, ok := findMatch(declared, claimed, slots, in); ok {
			slots[j].Status = AutoMatched
			slots[j].ID = in.ID
			slots[j].Inferred = &in
			claimed[j] = true
			continue
		}

		extra = append(extra, Aggregation{
			Status:   Inferred,
			Date:     in.Date,
			Amount:   in.Amount,
			ID:       in.ID,
			Inferred: &in,
		})
	}

	result := append(slots, extra...)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result
}

func findByID(declared []Transaction, id *int) (int, bool) {
	if id == nil {
		return 0, false
	}
	for i, t := range declared {
		if t.ID != nil && *t.ID == *id {
			return i, true
		}
	}
	return 0, false
}

func findMatch(declared []Transaction, claimed []bool, slots []Aggregation, in Transaction) (int, bool) {
	for i, t := range declared {
		if claimed[i] || slots[i].Status != Unconnected {
			continue
		}
		if t.Date == in.Date && t.Amount.Equal(in.Amount) && fuzzyIncludes(t.Payee, in.Payee) {
			return i, true
		}
	}
	return 0, false
}

// fuzzyIncludes reports whether either payee contains the other, ignoring case.
func fuzzyIncludes(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}

// Transaction returns the slot's transaction, preferring the declared one.
func (a Aggregation) Transaction() *Transaction {
	if a.Declared != nil {
		return a.Declared
	}
	return a.Inferred
}

// ObjectAccount returns the object account of the slot's transaction.
func (a Aggregation) ObjectAccount() string {
	if t := a.Transaction(); t != nil {
		return t.ObjectAccount()
	}
	return ""
}
