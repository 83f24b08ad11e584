package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// SplitType names the strategy used to divide an expense among participants.
type SplitType string

const (
	SplitEqual      SplitType = "equal"
	SplitUnequal    SplitType = "unequal"
	SplitPercentage SplitType = "percentage"
	SplitShares     SplitType = "shares"
	SplitAdjustment SplitType = "adjustment"
	// SplitExclude is an equal split over the subset of members left included.
	SplitExclude SplitType = "exclude"
)

// ParseSplitType validates a split type name.
func ParseSplitType(s string) (SplitType, error) {
	switch t := SplitType(s); t {
	case SplitEqual, SplitUnequal, SplitPercentage, SplitShares, SplitAdjustment, SplitExclude:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSplitType, s)
	}
}

// Label is the human-readable name of the split type.
func (t SplitType) Label() string {
	switch t {
	case SplitEqual:
		return "Split equally"
	case SplitUnequal:
		return "Split by exact amounts"
	case SplitPercentage:
		return "Split by percentages"
	case SplitShares:
		return "Split by shares"
	case SplitAdjustment:
		return "Split by adjustment"
	case SplitExclude:
		return "Exclude members"
	default:
		return string(t)
	}
}

// ShareDetail is the strategy-specific input a share was computed from.
// Only percentage, shares and adjustment splits carry one.
type ShareDetail interface {
	SplitType() SplitType
}

// PercentageDetail records the percentage a member was assigned.
type PercentageDetail struct {
	Percentage decimal.Decimal
}

// SharesDetail records the whole-number weight a member was assigned.
type SharesDetail struct {
	Shares decimal.Decimal
}

// AdjustmentDetail records the signed delta applied to the equal base share.
type AdjustmentDetail struct {
	Adjustment decimal.Decimal
}

func (PercentageDetail) SplitType() SplitType { return SplitPercentage }
func (SharesDetail) SplitType() SplitType     { return SplitShares }
func (AdjustmentDetail) SplitType() SplitType { return SplitAdjustment }

// SplitShare is one member's owed portion of an expense.
type SplitShare struct {
	// MemberID is the member who owes this share.
	MemberID string

	// Amount is what the member owes.
	Amount decimal.Decimal

	// Detail is nil for equal, exclude and unequal splits.
	Detail ShareDetail
}

type splitShareJSON struct {
	MemberID   string           `json:"memberId"`
	Amount     decimal.Decimal  `json:"amount"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
	Shares     *decimal.Decimal `json:"shares,omitempty"`
	Adjustment *decimal.Decimal `json:"adjustment,omitempty"`
}

// MarshalJSON flattens the detail into optional sibling fields.
func (s SplitShare) MarshalJSON() ([]byte, error) {
	out := splitShareJSON{MemberID: s.MemberID, Amount: s.Amount}
	switch d := s.Detail.(type) {
	case PercentageDetail:
		out.Percentage = &d.Percentage
	case SharesDetail:
		out.Shares = &d.Shares
	case AdjustmentDetail:
		out.Adjustment = &d.Adjustment
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores the detail from whichever optional field is present.
func (s *SplitShare) UnmarshalJSON(data []byte) error {
	var in splitShareJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*s = SplitShare{MemberID: in.MemberID, Amount: in.Amount}
	switch {
	case in.Percentage != nil:
		s.Detail = PercentageDetail{Percentage: *in.Percentage}
	case in.Shares != nil:
		s.Detail = SharesDetail{Shares: *in.Shares}
	case in.Adjustment != nil:
		s.Detail = AdjustmentDetail{Adjustment: *in.Adjustment}
	}
	return nil
}
