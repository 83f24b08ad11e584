package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseSplitType(t *testing.T) {
	for _, name := range []string{"equal", "unequal", "percentage", "shares", "adjustment", "exclude"} {
		got, err := ParseSplitType(name)
		if err != nil || string(got) != name {
			t.Errorf("ParseSplitType(%q) = %q, %v", name, got, err)
		}
	}
	for _, name := range []string{"", "Equal", "itemized"} {
		if _, err := ParseSplitType(name); !errors.Is(err, ErrUnknownSplitType) {
			t.Errorf("ParseSplitType(%q): expected ErrUnknownSplitType, got %v", name, err)
		}
	}
}

func TestSplitShareJSON(t *testing.T) {
	tests := []struct {
		name  string
		share SplitShare
		want  string
	}{
		{
			name:  "no detail",
			share: SplitShare{MemberID: "a", Amount: decimal.RequireFromString("33.34")},
			want:  `{"memberId":"a","amount":"33.34"}`,
		},
		{
			name:  "percentage",
			share: SplitShare{MemberID: "a", Amount: decimal.NewFromInt(25), Detail: PercentageDetail{Percentage: decimal.NewFromInt(25)}},
			want:  `{"memberId":"a","amount":"25","percentage":"25"}`,
		},
		{
			name:  "shares",
			share: SplitShare{MemberID: "b", Amount: decimal.NewFromInt(75), Detail: SharesDetail{Shares: decimal.NewFromInt(3)}},
			want:  `{"memberId":"b","amount":"75","shares":"3"}`,
		},
		{
			name:  "negative adjustment",
			share: SplitShare{MemberID: "c", Amount: decimal.NewFromInt(40), Detail: AdjustmentDetail{Adjustment: decimal.NewFromInt(-10)}},
			want:  `{"memberId":"c","amount":"40","adjustment":"-10"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.share)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("got %s, want %s", data, tt.want)
			}

			var back SplitShare
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if back.MemberID != tt.share.MemberID || !back.Amount.Equal(tt.share.Amount) {
				t.Errorf("round trip lost fields: %+v", back)
			}
			if (back.Detail == nil) != (tt.share.Detail == nil) {
				t.Fatalf("detail mismatch: got %#v", back.Detail)
			}
			if back.Detail != nil && back.Detail.SplitType() != tt.share.Detail.SplitType() {
				t.Errorf("detail type %s, want %s", back.Detail.SplitType(), tt.share.Detail.SplitType())
			}
		})
	}
}

func TestDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if !d.Equal(NewDate(2024, 2, 29).Time) {
		t.Errorf("unexpected date %v", d)
	}

	data, _ := json.Marshal(struct {
		On Date `json:"on"`
	}{d})
	if string(data) != `{"on":"2024-02-29"}` {
		t.Errorf("unexpected json %s", data)
	}

	var zero Date
	if err := json.Unmarshal([]byte(`""`), &zero); err != nil || !zero.IsZero() {
		t.Errorf("empty string should decode to zero date, got %v %v", zero, err)
	}

	for _, bad := range []string{"2024-13-01", "02/29/2024", "yesterday"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDate(%q): expected ErrInvalidDate, got %v", bad, err)
		}
	}
}

func TestBudgetValidate(t *testing.T) {
	valid := Budget{Name: "Food", Amount: decimal.NewFromInt(200), Period: BudgetMonthly}

	tests := []struct {
		name   string
		modify func(b *Budget)
		want   error
	}{
		{"valid", func(b *Budget) {}, nil},
		{"missing name", func(b *Budget) { b.Name = "" }, ErrInvalidBudget},
		{"zero amount", func(b *Budget) { b.Amount = decimal.Zero }, ErrInvalidAmount},
		{"unknown period", func(b *Budget) { b.Period = "daily" }, ErrInvalidBudget},
		{"custom without dates", func(b *Budget) { b.Period = BudgetCustom }, ErrInvalidBudget},
		{"custom reversed", func(b *Budget) {
			b.Period = BudgetCustom
			b.StartDate = NewDate(2024, 3, 1)
			b.EndDate = NewDate(2024, 2, 1)
		}, ErrInvalidBudget},
		{"custom range", func(b *Budget) {
			b.Period = BudgetCustom
			b.StartDate = NewDate(2024, 2, 1)
			b.EndDate = NewDate(2024, 3, 1)
		}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid
			tt.modify(&b)
			err := b.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestIsValidation(t *testing.T) {
	if !IsValidation(fmt.Errorf("expense: %w", ErrSplitMismatch)) {
		t.Error("wrapped split mismatch should be a validation error")
	}
	if IsValidation(fmt.Errorf("group g: %w", ErrNotFound)) {
		t.Error("not found is not a validation error")
	}
	if IsValidation(ErrDuplicateMember) {
		t.Error("duplicate member is reported as a conflict, not a validation error")
	}
}
