package calculator

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/money"
)

// SplitInput is one participant together with the raw value its split
// strategy needs: an exact amount, a percentage, a share weight or a signed
// adjustment. Value is nil when the caller supplied nothing.
type SplitInput struct {
	MemberID string
	Value    *decimal.Decimal
}

// Strategy computes per-member shares for one split type.
type Strategy interface {
	Type() models.SplitType
	Calculate(amount decimal.Decimal, inputs []SplitInput) ([]models.SplitShare, error)
}

// StrategyFor returns the strategy implementation for t.
func StrategyFor(t models.SplitType) (Strategy, error) {
	switch t {
	case models.SplitEqual, models.SplitExclude:
		return equalStrategy{splitType: t}, nil
	case models.SplitUnequal:
		return exactStrategy{}, nil
	case models.SplitPercentage:
		return percentageStrategy{}, nil
	case models.SplitShares:
		return sharesStrategy{}, nil
	case models.SplitAdjustment:
		return adjustmentStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownSplitType, t)
	}
}

// CalculateSplit divides amount among the participants in inputs using the
// given split type. The result has one share per input, in input order.
func CalculateSplit(amount decimal.Decimal, splitType models.SplitType, inputs []SplitInput) ([]models.SplitShare, error) {
	if len(inputs) == 0 {
		return nil, models.ErrNoParticipants
	}
	if err := money.RequirePositive(amount); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		if in.MemberID == "" {
			return nil, fmt.Errorf("%w: empty member id", models.ErrNoParticipants)
		}
		if seen[in.MemberID] {
			return nil, fmt.Errorf("%w: %s", models.ErrDuplicateParticipant, in.MemberID)
		}
		seen[in.MemberID] = true
	}

	strategy, err := StrategyFor(splitType)
	if err != nil {
		return nil, err
	}
	return strategy.Calculate(amount, inputs)
}

// ParseSplitInputs turns raw per-member form values into SplitInputs.
//
// Share weights and adjustments that cannot be parsed are left nil so their
// strategies apply the defaults (weight 1, adjustment 0). Exact amounts and
// percentages must parse; a bad value fails with models.ErrInvalidAmount
// rather than being dropped.
func ParseSplitInputs(splitType models.SplitType, memberIDs []string, raw map[string]string) ([]SplitInput, error) {
	inputs := make([]SplitInput, len(memberIDs))
	for i, id := range memberIDs {
		inputs[i] = SplitInput{MemberID: id}
		s := strings.TrimSpace(raw[id])

		switch splitType {
		case models.SplitUnequal, models.SplitPercentage:
			v, err := money.ParseSigned(s)
			if err != nil {
				return nil, fmt.Errorf("member %s: %w", id, err)
			}
			inputs[i].Value = &v
		case models.SplitShares, models.SplitAdjustment:
			if v, err := money.ParseSigned(s); err == nil {
				inputs[i].Value = &v
			}
		}
	}
	return inputs, nil
}

type equalStrategy struct {
	splitType models.SplitType
}

func (s equalStrategy) Type() models.SplitType { return s.splitType }

// Calculate gives every participant amount / n.
func (s equalStrategy) Calculate(amount decimal.Decimal, inputs []SplitInput) ([]models.SplitShare, error) {
	share := amount.Div(decimal.NewFromInt(int64(len(inputs))))
	shares := make([]models.SplitShare, len(inputs))
	for i, in := range inputs {
		shares[i] = models.SplitShare{MemberID: in.MemberID, Amount: share}
	}
	return shares, nil
}

type exactStrategy struct{}

func (exactStrategy) Type() models.SplitType { return models.SplitUnequal }

// Calculate uses the caller's amounts verbatim; they must reconcile with amount.
func (exactStrategy) Calculate(amount decimal.Decimal, inputs []SplitInput) ([]models.SplitShare, error) {
	shares := make([]models.SplitShare, len(inputs))
	total := decimal.Zero
	for i, in := range inputs {
		if in.Value == nil || in.Value.IsNegative() {
			return nil, fmt.Errorf("%w: exact amount for %s", models.ErrInvalidAmount, in.MemberID)
		}
		total = total.Add(*in.Value)
		shares[i] = models.SplitShare{MemberID: in.MemberID, Amount: *in.Value}
	}
	if !money.ApproxEqual(total, amount) {
		return nil, fmt.Errorf("%w: got %s, want %s", models.ErrSplitMismatch, total, amount)
	}
	return shares, nil
}

type percentageStrategy struct{}

func (percentageStrategy) Type() models.SplitType { return models.SplitPercentage }

// Calculate assigns pct/100 of amount to each participant.
func (percentageStrategy) Calculate(amount decimal.Decimal, inputs []SplitInput) ([]models.SplitShare, error) {
	shares := make([]models.SplitShare, len(inputs))
	totalPct := decimal.Zero
	for i, in := range inputs {
		if in.Value == nil || in.Value.IsNegative() {
			return nil, fmt.Errorf("%w: percentage for %s", models.ErrInvalidAmount, in.MemberID)
		}
		pct := *in.Value
		totalPct = totalPct.Add(pct)
		shares[i] = models.SplitShare{
			MemberID: in.MemberID,
			Amount:   amount.Mul(pct).Div(money.Hundred),
			Detail:   models.PercentageDetail{Percentage: pct},
		}
	}
	if !money.ApproxEqual(totalPct, money.Hundred) {
		return nil, fmt.Errorf("%w: got %s%%", models.ErrPercentageMismatch, totalPct)
	}
	return shares, nil
}

type sharesStrategy struct{}

func (sharesStrategy) Type() models.SplitType { return models.SplitShares }

// Calculate divides amount proportionally to whole-number weights.
// Fractions are truncated and missing or non-positive weights count as 1,
// so this never fails. Weights are unbounded.
func (sharesStrategy) Calculate(amount decimal.Decimal, inputs []SplitInput) ([]models.SplitShare, error) {
	weights := make([]decimal.Decimal, len(inputs))
	totalWeight := decimal.Zero
	for i, in := range inputs {
		w := decimal.NewFromInt(1)
		if in.Value != nil {
			if t := in.Value.Truncate(0); t.IsPositive() {
				w = t
			}
		}
		weights[i] = w
		totalWeight = totalWeight.Add(w)
	}

	shares := make([]models.SplitShare, len(inputs))
	for i, in := range inputs {
		shares[i] = models.SplitShare{
			MemberID: in.MemberID,
			Amount:   amount.Mul(weights[i]).Div(totalWeight),
			Detail:   models.SharesDetail{Shares: weights[i]},
		}
	}
	return shares, nil
}

type adjustmentStrategy struct{}

func (adjustmentStrategy) Type() models.SplitType { return models.SplitAdjustment }

// Calculate starts from an equal base share and applies each signed
// adjustment. Adjustments must cancel out.
func (adjustmentStrategy) Calculate(amount decimal.Decimal, inputs []SplitInput) ([]models.SplitShare, error) {
	base := amount.Div(decimal.NewFromInt(int64(len(inputs))))
	shares := make([]models.SplitShare, len(inputs))
	totalAdj := decimal.Zero
	for i, in := range inputs {
		adj := decimal.Zero
		if in.Value != nil {
			adj = *in.Value
		}
		totalAdj = totalAdj.Add(adj)
		shares[i] = models.SplitShare{
			MemberID: in.MemberID,
			Amount:   base.Add(adj),
			Detail:   models.AdjustmentDetail{Adjustment: adj},
		}
	}
	if !money.Negligible(totalAdj) {
		return nil, fmt.Errorf("%w: got %s", models.ErrAdjustmentMismatch, totalAdj)
	}
	return shares, nil
}
