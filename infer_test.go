package kassabok

import (
	"strings"
	"testing"
)

func TestInferTransactions(t *testing.T) {
	dir, err := DecodeDirectory(strings.NewReader(configText))
	if err != nil {
		t.Fatal(err)
	}

	rows := []Row{
		{ID: 7, Date: MustParseDate("2025-03-15"), Amount: dec("-89.00"), Desc: "SL ACCESS", AccountNo: "9024-123456", Currency: "SEK"},
		{ID: 6, Date: MustParseDate("2025-03-14"), Amount: dec("-523.50"), Desc: "ICA SUPERMARKET", AccountNo: "9024-123456", Currency: "SEK"},
		{ID: 8, Date: MustParseDate("2025-03-16"), Amount: dec("-250.00"), Desc: "APOTEKET HJÄRTAT", AccountNo: "9024-123456", Currency: "SEK"},
	}

	txs, err := InferTransactions(rows, dir)
	if err != nil {
		t.Fatalf("InferTransactions returned error: %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("got %d transactions, want 3", len(txs))
	}

	// Sorted by date, whatever the row order was.
	ica := txs[0]
	if ica.Date.String() != "2025-03-14" {
		t.Errorf("date = %s, want 2025-03-14", ica.Date)
	}
	if ica.Prefix != Cleared {
		t.Errorf("prefix = %q, want %q: a firing rule clears the entry", ica.Prefix, Cleared)
	}
	if ica.Payee != "ICA" {
		t.Errorf("payee = %q, want the rule's name ICA", ica.Payee)
	}
	if got := ica.ObjectAccount(); got != "Expenses:Food" {
		t.Errorf("object account = %q, want Expenses:Food", got)
	}
	if ica.ID == nil || *ica.ID != 6 {
		t.Errorf("id = %v, want 6", ica.ID)
	}
	if got := ica.Amount.Fixed(); got != "-523.50 SEK" {
		t.Errorf("amount = %q, want -523.50 SEK", got)
	}

	apoteket := txs[2]
	if apoteket.Prefix != Flagged {
		t.Errorf("prefix = %q, want %q: no rule fired", apoteket.Prefix, Flagged)
	}
	if apoteket.Payee != "APOTEKET HJÄRTAT" {
		t.Errorf("payee = %q, want the raw description", apoteket.Payee)
	}
	if got := apoteket.ObjectAccount(); got != UnknownAccount {
		t.Errorf("object account = %q, want %q", got, UnknownAccount)
	}
}

func TestInferTransactionsUnknownAccountNo(t *testing.T) {
	dir, err := DecodeDirectory(strings.NewReader(configText))
	if err != nil {
		t.Fatal(err)
	}
	rows := []Row{
		{ID: 2, Date: MustParseDate("2025-03-14"), Amount: dec("-10.00"), Desc: "X", AccountNo: "1111-111111", Currency: "SEK"},
	}
	if _, err := InferTransactions(rows, dir); err == nil {
		t.Fatal("rows from an unconfigured bank account must be a hard error")
	}
}
