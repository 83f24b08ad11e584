package service

import (
	"context"
	"time"

	"github.com/mmynk/groupledger/internal/ledger"
	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/money"
)

// AddBudget attaches a spending target to a group.
func (s *LedgerService) AddBudget(ctx context.Context, req *AddBudgetRequest) (resp *AddBudgetResponse, err error) {
	defer func() { s.observe("AddBudget", err, "group_id", req.GroupID, "name", req.Name) }()

	amount, err := money.Parse(req.Amount)
	if err != nil {
		return nil, err
	}
	start, err := models.ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := models.ParseDate(req.EndDate)
	if err != nil {
		return nil, err
	}

	var added models.Budget
	_, err = s.update(ctx, req.GroupID, func(g *models.Group, now time.Time) error {
		var err error
		added, err = ledger.AddBudget(g, models.Budget{
			Name:      req.Name,
			Amount:    amount,
			Category:  req.Category,
			Period:    models.BudgetPeriod(req.Period),
			StartDate: start,
			EndDate:   end,
			Notes:     req.Notes,
			CreatedBy: req.CreatedBy,
		}, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &AddBudgetResponse{Budget: added}, nil
}

// DeleteBudget removes a budget from a group.
func (s *LedgerService) DeleteBudget(ctx context.Context, req *DeleteBudgetRequest) (resp *DeleteBudgetResponse, err error) {
	defer func() { s.observe("DeleteBudget", err, "group_id", req.GroupID, "budget_id", req.BudgetID) }()

	var removed models.Budget
	_, err = s.update(ctx, req.GroupID, func(g *models.Group, now time.Time) error {
		var err error
		removed, err = ledger.DeleteBudget(g, req.BudgetID, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &DeleteBudgetResponse{Budget: removed}, nil
}
