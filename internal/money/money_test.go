package money

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/groupledger/internal/models"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"1.23", "1.23", true},
		{"1,23", "1.23", true},
		{" 2.50 ", "2.5", true},
		{"0.01", "0.01", true},
		{"0", "", false},
		{"-1", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		if tc.ok {
			if err != nil || !got.Equal(decimal.RequireFromString(tc.out)) {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
			continue
		}
		if !errors.Is(err, models.ErrInvalidAmount) {
			t.Fatalf("%q expected ErrInvalidAmount, got %v", tc.in, err)
		}
	}
}

func TestParseSigned(t *testing.T) {
	got, err := ParseSigned("-10,5")
	if err != nil {
		t.Fatalf("ParseSigned failed: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("-10.5")) {
		t.Errorf("got %s, want -10.5", got)
	}
	if _, err := ParseSigned("0"); err != nil {
		t.Errorf("zero should be accepted, got %v", err)
	}
}

func TestApproxEqual(t *testing.T) {
	a := decimal.RequireFromString("100")
	if !ApproxEqual(a, decimal.RequireFromString("100.01")) {
		t.Error("100 and 100.01 should be equal within epsilon")
	}
	if !ApproxEqual(a, decimal.RequireFromString("99.99")) {
		t.Error("100 and 99.99 should be equal within epsilon")
	}
	if ApproxEqual(a, decimal.RequireFromString("100.02")) {
		t.Error("100 and 100.02 should differ")
	}
}

func TestSignificant(t *testing.T) {
	if Significant(decimal.RequireFromString("0.01")) {
		t.Error("one cent is not significant")
	}
	if !Significant(decimal.RequireFromString("0.011")) {
		t.Error("0.011 is significant")
	}
	if !Negligible(decimal.RequireFromString("-0.01")) {
		t.Error("-0.01 is negligible")
	}
}

func TestFormat(t *testing.T) {
	if got := Format(decimal.RequireFromString("12.5"), "$"); got != "$12.50" {
		t.Errorf("Format = %q, want $12.50", got)
	}
}
