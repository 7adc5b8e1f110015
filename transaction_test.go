package kassabok

import "testing"

func TestParsePrefix(t *testing.T) {
	testCases := []struct {
		input  string
		want   Prefix
		wantOK bool
	}{
		{"*", Cleared, true},
		{"!", Pending, true},
		{"@", Flagged, true},
		{"x", "", false},
		{"", "", false},
		{"**", "", false},
	}
	for _, tc := range testCases {
		got, ok := ParsePrefix(tc.input)
		if ok != tc.wantOK || got != tc.want {
			t.Errorf("ParsePrefix(%q) = %q, %v, want %q, %v", tc.input, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestBalanced(t *testing.T) {
	testCases := []struct {
		name     string
		postings []Posting
		want     bool
	}{
		{
			name: "defined amounts summing to zero",
			postings: []Posting{
				{Account: "Expenses:Food", Amount: AmountOf(dec("523.50"))},
				{Account: "Asset:Checking", Amount: AmountOf(dec("-523.50"))},
			},
			want: true,
		},
		{
			name: "implied leg always balances",
			postings: []Posting{
				{Account: "Expenses:Food"},
				{Account: "Asset:Checking", Amount: AmountOf(dec("-523.50"))},
			},
			want: true,
		},
		{
			name: "fully amounted but unbalanced",
			postings: []Posting{
				{Account: "Expenses:Food", Amount: AmountOf(dec("500.00"))},
				{Account: "Asset:Checking", Amount: AmountOf(dec("-523.50"))},
			},
			want: false,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tx := Transaction{Postings: tc.postings}
			if got := tx.Balanced(); got != tc.want {
				t.Errorf("Balanced() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTransactionEqualIgnoresIndex(t *testing.T) {
	a := declaredTx("2025-03-14", "ICA", "-523.50", intp(6))
	b := declaredTx("2025-03-14", "ICA", "-523.50", intp(6))
	b.Index = intp(4)
	if !a.Equal(b) {
		t.Error("Index is storage bookkeeping, Equal must ignore it")
	}

	c := declaredTx("2025-03-14", "ICA", "-523.50", intp(7))
	if a.Equal(c) {
		t.Error("different ids must not compare equal")
	}
}

func TestSortByObjectAccount(t *testing.T) {
	txs := []Transaction{
		declaredTx("2025-03-14", "a", "-1.00", nil),
		declaredTx("2025-03-14", "b", "-1.00", nil),
	}
	txs[0].Postings[0].Account = "Expenses:Transport"
	txs[1].Postings[0].Account = "Expenses:Food"
	SortByObjectAccount(txs)
	if txs[0].Payee != "b" || txs[1].Payee != "a" {
		t.Errorf("order = %s, %s; want b, a", txs[0].Payee, txs[1].Payee)
	}
}
