package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/groupledger/internal/calculator"
	"github.com/mmynk/groupledger/internal/ledger"
	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/money"
)

// AddExpense parses and validates a raw expense, computes its split and
// records it.
func (s *LedgerService) AddExpense(ctx context.Context, req *AddExpenseRequest) (resp *AddExpenseResponse, err error) {
	defer func() {
		attrs := []any{"group_id", req.GroupID, "amount", req.Amount, "split_type", req.SplitType}
		if resp != nil {
			attrs = append(attrs, "expense_id", resp.Expense.ID)
		}
		s.observe("AddExpense", err, attrs...)
	}()

	expense, err := buildExpense(req)
	if err != nil {
		return nil, err
	}

	var recorded models.Expense
	_, err = s.update(ctx, req.GroupID, func(g *models.Group, now time.Time) error {
		var err error
		recorded, err = ledger.RecordExpense(g, expense, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &AddExpenseResponse{Expense: recorded}, nil
}

// buildExpense turns the raw request into an expense whose payers and
// splits already reconcile with its amount.
func buildExpense(req *AddExpenseRequest) (models.Expense, error) {
	amount, err := money.Parse(req.Amount)
	if err != nil {
		return models.Expense{}, err
	}
	splitType, err := models.ParseSplitType(req.SplitType)
	if err != nil {
		return models.Expense{}, err
	}
	date, err := models.ParseDate(req.Date)
	if err != nil {
		return models.Expense{}, err
	}

	var payers []models.PayerContribution
	if len(req.Payers) > 0 {
		payers, err = calculator.AllocatePayers(amount, req.Payers)
	} else {
		payers, err = calculator.SinglePayer(req.PaidBy, amount)
	}
	if err != nil {
		return models.Expense{}, err
	}

	inputs, err := calculator.ParseSplitInputs(splitType, req.Participants, req.SplitValues)
	if err != nil {
		return models.Expense{}, err
	}
	splits, err := calculator.CalculateSplit(amount, splitType, inputs)
	if err != nil {
		return models.Expense{}, err
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		return models.Expense{}, fmt.Errorf("description: %w", models.ErrEmptyName)
	}

	return models.Expense{
		Description: description,
		Amount:      amount,
		Category:    req.Category,
		Date:        date,
		Notes:       req.Notes,
		Payers:      payers,
		Splits:      splits,
		SplitType:   splitType,
		CreatedBy:   req.CreatedBy,
	}, nil
}

// DeleteExpense removes an expense from a group's history.
func (s *LedgerService) DeleteExpense(ctx context.Context, req *DeleteExpenseRequest) (resp *DeleteExpenseResponse, err error) {
	defer func() { s.observe("DeleteExpense", err, "group_id", req.GroupID, "expense_id", req.ExpenseID) }()

	var removed models.Expense
	_, err = s.update(ctx, req.GroupID, func(g *models.Group, now time.Time) error {
		var err error
		removed, err = ledger.DeleteExpense(g, req.ExpenseID, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &DeleteExpenseResponse{Expense: removed}, nil
}

// RecordSettlement records a payment from one member to another.
func (s *LedgerService) RecordSettlement(ctx context.Context, req *RecordSettlementRequest) (resp *RecordSettlementResponse, err error) {
	defer func() {
		s.observe("RecordSettlement", err, "group_id", req.GroupID, "from", req.From, "to", req.To, "amount", req.Amount)
	}()

	// Self-settlement is reported before amount problems.
	if req.From == req.To {
		return nil, models.ErrSelfSettlement
	}
	amount, err := money.Parse(req.Amount)
	if err != nil {
		return nil, err
	}
	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	var recorded models.Settlement
	_, err = s.update(ctx, req.GroupID, func(g *models.Group, now time.Time) error {
		var err error
		recorded, err = ledger.RecordSettlement(g, models.Settlement{
			From:      req.From,
			To:        req.To,
			Amount:    amount,
			Date:      date,
			Notes:     req.Notes,
			CreatedBy: req.CreatedBy,
		}, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &RecordSettlementResponse{Settlement: recorded}, nil
}

// DeleteSettlement removes a recorded settlement.
func (s *LedgerService) DeleteSettlement(ctx context.Context, req *DeleteSettlementRequest) (resp *DeleteSettlementResponse, err error) {
	defer func() {
		s.observe("DeleteSettlement", err, "group_id", req.GroupID, "settlement_id", req.SettlementID)
	}()

	var removed models.Settlement
	_, err = s.update(ctx, req.GroupID, func(g *models.Group, now time.Time) error {
		var err error
		removed, err = ledger.DeleteSettlement(g, req.SettlementID, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &DeleteSettlementResponse{Settlement: removed}, nil
}
