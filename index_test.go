package kassabok

import (
	"testing"
	"time"
)

func agg(status Status, date string, account string) Aggregation {
	tx := declaredTx(date, "payee", "-10.00", nil)
	tx.Postings[0].Account = account
	a := Aggregation{Status: status, Date: MustParseDate(date), Amount: tx.Amount}
	if status == Inferred {
		a.Inferred = &tx
	} else {
		a.Declared = &tx
	}
	return a
}

func TestGroupByDate(t *testing.T) {
	aggs := []Aggregation{
		agg(Inferred, "2025-03-15", "Expenses:Transport"),
		agg(Connected, "2025-03-14", "Expenses:Food"),
		agg(AutoMatched, "2025-03-14", "Expenses:Food"),
		agg(Unconnected, "2025-03-14", "Expenses:Housing"),
	}

	groups := GroupByDate(aggs)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}

	first := groups[0]
	if first.Date.String() != "2025-03-14" {
		t.Errorf("first group date = %s, want 2025-03-14", first.Date)
	}
	if len(first.Connected) != 1 {
		t.Errorf("got %d connected, want 1", len(first.Connected))
	}
	// Auto-matched entries still need attention, they group with unconnected.
	if len(first.Unconnected) != 2 {
		t.Errorf("got %d unconnected, want 2", len(first.Unconnected))
	}
	if len(first.Inferred) != 0 {
		t.Errorf("got %d inferred, want 0", len(first.Inferred))
	}

	second := groups[1]
	if second.Date.String() != "2025-03-15" {
		t.Errorf("second group date = %s, want 2025-03-15", second.Date)
	}
	if len(second.Inferred) != 1 {
		t.Errorf("got %d inferred, want 1", len(second.Inferred))
	}
}

func TestSortByObjectAccountThenDate(t *testing.T) {
	aggs := []Aggregation{
		agg(Unconnected, "2025-03-15", "Expenses:Transport"),
		agg(Unconnected, "2025-03-14", "Expenses:Transport"),
		agg(Unconnected, "2025-03-14", "Expenses:Food"),
	}
	SortByObjectAccountThenDate(aggs)

	want := []struct {
		date    string
		account string
	}{
		{"2025-03-14", "Expenses:Food"},
		{"2025-03-14", "Expenses:Transport"},
		{"2025-03-15", "Expenses:Transport"},
	}
	for i, w := range want {
		if aggs[i].Date.String() != w.date || aggs[i].ObjectAccount() != w.account {
			t.Errorf("slot %d = %s %s, want %s %s", i, aggs[i].Date, aggs[i].ObjectAccount(), w.date, w.account)
		}
	}
}

func TestFilterYearMonthAndYearMonths(t *testing.T) {
	aggs := []Aggregation{
		agg(Unconnected, "2025-02-28", "Expenses:Food"),
		agg(Unconnected, "2025-03-14", "Expenses:Food"),
		agg(Unconnected, "2025-03-15", "Expenses:Food"),
		agg(Unconnected, "2024-12-31", "Expenses:Food"),
	}

	march := FilterYearMonth(aggs, 2025, time.March)
	if len(march) != 2 {
		t.Fatalf("got %d aggregations for 2025-03, want 2", len(march))
	}

	months := YearMonths(aggs)
	want := []YearMonth{
		{Year: 2024, Month: time.December},
		{Year: 2025, Month: time.February},
		{Year: 2025, Month: time.March},
	}
	if len(months) != len(want) {
		t.Fatalf("got %d months, want %d", len(months), len(want))
	}
	for i := range want {
		if months[i] != want[i] {
			t.Errorf("month %d = %v, want %v", i, months[i], want[i])
		}
	}
}
