package service

import (
	"bytes"
	"context"

	"github.com/mmynk/groupledger/internal/export"
	"github.com/mmynk/groupledger/internal/ledger"
	"github.com/mmynk/groupledger/internal/models"
)

// GetBalances derives member balances, a settlement plan and budget status
// from the group's current history.
func (s *LedgerService) GetBalances(ctx context.Context, req *GetBalancesRequest) (resp *GetBalancesResponse, err error) {
	defer func() { s.observe("GetBalances", err, "group_id", req.GroupID) }()

	g, err := s.store.GetGroup(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	return Balances(g), nil
}

// Balances builds the balance report for g without touching storage.
func Balances(g *models.Group) *GetBalancesResponse {
	resp := &GetBalancesResponse{
		GroupID:  g.ID,
		Currency: g.Currency,
		Balances: []BalanceView{},
		Plan:     []TransferView{},
		Budgets:  ledger.BudgetStatuses(g),
	}
	for _, b := range ledger.BalancesOf(g) {
		resp.Balances = append(resp.Balances, BalanceView{MemberBalance: b, Name: g.MemberName(b.MemberID)})
	}
	for _, t := range ledger.SettlementPlan(g) {
		resp.Plan = append(resp.Plan, TransferView{
			From:     t.From,
			FromName: g.MemberName(t.From),
			To:       t.To,
			ToName:   g.MemberName(t.To),
			Amount:   t.Amount,
		})
	}
	return resp
}

// ExportGroup renders the group as a downloadable JSON or YAML document.
func (s *LedgerService) ExportGroup(ctx context.Context, req *ExportGroupRequest) (resp *ExportGroupResponse, err error) {
	defer func() { s.observe("ExportGroup", err, "group_id", req.GroupID, "format", req.Format) }()

	format, err := export.ParseFormat(req.Format)
	if err != nil {
		return nil, err
	}
	g, err := s.store.GetGroup(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := export.Encode(&buf, format, export.Project(g)); err != nil {
		return nil, err
	}
	return &ExportGroupResponse{
		FileName:    export.FileName(g, format),
		ContentType: format.ContentType(),
		Content:     buf.String(),
	}, nil
}
