package kassabok

import "testing"

func TestMoneyArithmetic(t *testing.T) {
	a := M(dec("100.50"), "SEK")
	b := M(dec("-40.25"), "SEK")

	if got := a.Add(b); !got.Equal(M(dec("60.25"), "SEK")) {
		t.Errorf("Add = %s, want 60.25 SEK", got.Fixed())
	}
	if got := a.Sub(b); !got.Equal(M(dec("140.75"), "SEK")) {
		t.Errorf("Sub = %s, want 140.75 SEK", got.Fixed())
	}
	if got := b.Neg(); !got.Equal(M(dec("40.25"), "SEK")) {
		t.Errorf("Neg = %s, want 40.25 SEK", got.Fixed())
	}
}

func TestMoneyWeakZeroCurrency(t *testing.T) {
	// The empty currency yields to any concrete one, so a zero accumulator
	// can absorb the first real value.
	var sum Money
	sum = sum.Add(M(dec("10.00"), "SEK"))
	if sum.Currency() != "SEK" {
		t.Errorf("currency = %q, want SEK", sum.Currency())
	}

	defer func() {
		if recover() == nil {
			t.Error("mixing concrete currencies should panic")
		}
	}()
	_ = M(dec("1"), "SEK").Add(M(dec("1"), "EUR"))
}

func TestMoneyFixed(t *testing.T) {
	testCases := []struct {
		value string
		cur   string
		want  string
	}{
		{"-5000", "SEK", "-5000.00 SEK"},
		{"523.5", "SEK", "523.50 SEK"},
		{"0", "EUR", "0.00 EUR"},
	}
	for _, tc := range testCases {
		if got := M(dec(tc.value), tc.cur).Fixed(); got != tc.want {
			t.Errorf("Fixed(%s %s) = %q, want %q", tc.value, tc.cur, got, tc.want)
		}
	}
}

func TestAmount(t *testing.T) {
	var undefined Amount
	if undefined.Defined() {
		t.Error("zero Amount should be undefined")
	}
	if got := undefined.Or(dec("7")); !got.Equal(dec("7")) {
		t.Errorf("Or on undefined = %s, want the fallback 7", got)
	}
	if undefined.String() != "" {
		t.Errorf("undefined String = %q, want empty", undefined.String())
	}

	defined := AmountOf(dec("0"))
	if !defined.Defined() {
		t.Error("AmountOf(0) should be defined: absent and zero are distinct")
	}
	if defined.Equal(undefined) {
		t.Error("defined zero should not equal undefined")
	}
	if !undefined.Equal(Amount{}) {
		t.Error("two undefined amounts should be equal")
	}

	parsed, err := ParseAmount("-523,50")
	if err != nil {
		t.Fatalf("ParseAmount returned error: %v", err)
	}
	if !parsed.Decimal().Equal(dec("-523.50")) {
		t.Errorf("ParseAmount(-523,50) = %s, want -523.50", parsed.Decimal())
	}
}
