package calculator

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/money"
)

// PayerInput is one raw "who paid how much" entry from a multi-payer form.
type PayerInput struct {
	MemberID string `json:"memberId"`
	Amount   string `json:"amount"`
}

// SinglePayer records memberID as having paid the whole amount.
func SinglePayer(memberID string, amount decimal.Decimal) ([]models.PayerContribution, error) {
	if strings.TrimSpace(memberID) == "" {
		return nil, fmt.Errorf("%w: payer required", models.ErrPayerMismatch)
	}
	if err := money.RequirePositive(amount); err != nil {
		return nil, err
	}
	return []models.PayerContribution{{MemberID: memberID, Amount: amount}}, nil
}

// AllocatePayers validates a multi-payer breakdown of amount.
//
// Entries without a member or with a non-positive or unparsable amount are
// discarded. The retained entries must sum to amount within one cent.
// Repeated members are merged into one contribution at their first position.
func AllocatePayers(amount decimal.Decimal, inputs []PayerInput) ([]models.PayerContribution, error) {
	if err := money.RequirePositive(amount); err != nil {
		return nil, err
	}

	var payers []models.PayerContribution
	index := make(map[string]int)
	total := decimal.Zero

	for _, in := range inputs {
		if strings.TrimSpace(in.MemberID) == "" {
			continue
		}
		paid, err := money.Parse(in.Amount)
		if err != nil {
			continue
		}
		total = total.Add(paid)
		if i, ok := index[in.MemberID]; ok {
			payers[i].Amount = payers[i].Amount.Add(paid)
			continue
		}
		index[in.MemberID] = len(payers)
		payers = append(payers, models.PayerContribution{MemberID: in.MemberID, Amount: paid})
	}

	if len(payers) == 0 {
		return nil, fmt.Errorf("%w: no valid payer amounts", models.ErrPayerMismatch)
	}
	if !money.ApproxEqual(total, amount) {
		return nil, fmt.Errorf("%w: got %s, want %s", models.ErrPayerMismatch, total, amount)
	}
	return payers, nil
}
