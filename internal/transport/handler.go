// Package transport serves LedgerService over Connect RPC with JSON bodies
// and provides a typed client for it.
package transport

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/service"
)

// ServiceName is the fully-qualified RPC service name.
const ServiceName = "groupledger.v1.LedgerService"

// Procedure paths, one per LedgerService method.
const (
	CreateGroupProcedure      = "/" + ServiceName + "/CreateGroup"
	GetGroupProcedure         = "/" + ServiceName + "/GetGroup"
	ListGroupsProcedure       = "/" + ServiceName + "/ListGroups"
	JoinGroupProcedure        = "/" + ServiceName + "/JoinGroup"
	DeleteGroupProcedure      = "/" + ServiceName + "/DeleteGroup"
	AddMemberProcedure        = "/" + ServiceName + "/AddMember"
	AddExpenseProcedure       = "/" + ServiceName + "/AddExpense"
	DeleteExpenseProcedure    = "/" + ServiceName + "/DeleteExpense"
	RecordSettlementProcedure = "/" + ServiceName + "/RecordSettlement"
	DeleteSettlementProcedure = "/" + ServiceName + "/DeleteSettlement"
	AddBudgetProcedure        = "/" + ServiceName + "/AddBudget"
	DeleteBudgetProcedure     = "/" + ServiceName + "/DeleteBudget"
	GetBalancesProcedure      = "/" + ServiceName + "/GetBalances"
	ExportGroupProcedure      = "/" + ServiceName + "/ExportGroup"
	SaveUserProcedure         = "/" + ServiceName + "/SaveUser"
	GetUserProcedure          = "/" + ServiceName + "/GetUser"
)

// NewHandler builds the handler for every LedgerService procedure and
// returns it with the path prefix to mount it under.
func NewHandler(svc *service.LedgerService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(CreateGroupProcedure, unary(CreateGroupProcedure, svc.CreateGroup, opts))
	mux.Handle(GetGroupProcedure, unary(GetGroupProcedure, svc.GetGroup, opts))
	mux.Handle(ListGroupsProcedure, unary(ListGroupsProcedure, svc.ListGroups, opts))
	mux.Handle(JoinGroupProcedure, unary(JoinGroupProcedure, svc.JoinGroup, opts))
	mux.Handle(DeleteGroupProcedure, unary(DeleteGroupProcedure, svc.DeleteGroup, opts))
	mux.Handle(AddMemberProcedure, unary(AddMemberProcedure, svc.AddMember, opts))
	mux.Handle(AddExpenseProcedure, unary(AddExpenseProcedure, svc.AddExpense, opts))
	mux.Handle(DeleteExpenseProcedure, unary(DeleteExpenseProcedure, svc.DeleteExpense, opts))
	mux.Handle(RecordSettlementProcedure, unary(RecordSettlementProcedure, svc.RecordSettlement, opts))
	mux.Handle(DeleteSettlementProcedure, unary(DeleteSettlementProcedure, svc.DeleteSettlement, opts))
	mux.Handle(AddBudgetProcedure, unary(AddBudgetProcedure, svc.AddBudget, opts))
	mux.Handle(DeleteBudgetProcedure, unary(DeleteBudgetProcedure, svc.DeleteBudget, opts))
	mux.Handle(GetBalancesProcedure, unary(GetBalancesProcedure, svc.GetBalances, opts))
	mux.Handle(ExportGroupProcedure, unary(ExportGroupProcedure, svc.ExportGroup, opts))
	mux.Handle(SaveUserProcedure, unary(SaveUserProcedure, svc.SaveUser, opts))
	mux.Handle(GetUserProcedure, unary(GetUserProcedure, svc.GetUser, opts))

	return "/" + ServiceName + "/", mux
}

func unary[Req, Res any](procedure string, fn func(context.Context, *Req) (*Res, error), opts []connect.HandlerOption) *connect.Handler {
	return connect.NewUnaryHandler(procedure,
		func(ctx context.Context, req *connect.Request[Req]) (*connect.Response[Res], error) {
			res, err := fn(ctx, req.Msg)
			if err != nil {
				return nil, ToConnectError(err)
			}
			return connect.NewResponse(res), nil
		},
		opts...,
	)
}

// ToConnectError maps ledger errors onto Connect status codes.
func ToConnectError(err error) error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return err
	}
	return connect.NewError(CodeFor(err), err)
}

// CodeFor picks the Connect code for a ledger error.
func CodeFor(err error) connect.Code {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return connect.CodeNotFound
	case errors.Is(err, models.ErrDuplicateMember):
		return connect.CodeAlreadyExists
	case models.IsValidation(err):
		return connect.CodeInvalidArgument
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	default:
		return connect.CodeInternal
	}
}
