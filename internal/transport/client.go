package transport

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/groupledger/internal/service"
)

// Client is a typed Connect client for LedgerService.
type Client struct {
	createGroup      *connect.Client[service.CreateGroupRequest, service.CreateGroupResponse]
	getGroup         *connect.Client[service.GetGroupRequest, service.GetGroupResponse]
	listGroups       *connect.Client[service.ListGroupsRequest, service.ListGroupsResponse]
	joinGroup        *connect.Client[service.JoinGroupRequest, service.JoinGroupResponse]
	deleteGroup      *connect.Client[service.DeleteGroupRequest, service.DeleteGroupResponse]
	addMember        *connect.Client[service.AddMemberRequest, service.AddMemberResponse]
	addExpense       *connect.Client[service.AddExpenseRequest, service.AddExpenseResponse]
	deleteExpense    *connect.Client[service.DeleteExpenseRequest, service.DeleteExpenseResponse]
	recordSettlement *connect.Client[service.RecordSettlementRequest, service.RecordSettlementResponse]
	deleteSettlement *connect.Client[service.DeleteSettlementRequest, service.DeleteSettlementResponse]
	addBudget        *connect.Client[service.AddBudgetRequest, service.AddBudgetResponse]
	deleteBudget     *connect.Client[service.DeleteBudgetRequest, service.DeleteBudgetResponse]
	getBalances      *connect.Client[service.GetBalancesRequest, service.GetBalancesResponse]
	exportGroup      *connect.Client[service.ExportGroupRequest, service.ExportGroupResponse]
	saveUser         *connect.Client[service.SaveUserRequest, service.SaveUserResponse]
	getUser          *connect.Client[service.GetUserRequest, service.GetUserResponse]
}

// NewClient creates a client for the server at baseURL, e.g.
// "http://localhost:8080".
func NewClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &Client{
		createGroup:      connect.NewClient[service.CreateGroupRequest, service.CreateGroupResponse](httpClient, baseURL+CreateGroupProcedure, opts...),
		getGroup:         connect.NewClient[service.GetGroupRequest, service.GetGroupResponse](httpClient, baseURL+GetGroupProcedure, opts...),
		listGroups:       connect.NewClient[service.ListGroupsRequest, service.ListGroupsResponse](httpClient, baseURL+ListGroupsProcedure, opts...),
		joinGroup:        connect.NewClient[service.JoinGroupRequest, service.JoinGroupResponse](httpClient, baseURL+JoinGroupProcedure, opts...),
		deleteGroup:      connect.NewClient[service.DeleteGroupRequest, service.DeleteGroupResponse](httpClient, baseURL+DeleteGroupProcedure, opts...),
		addMember:        connect.NewClient[service.AddMemberRequest, service.AddMemberResponse](httpClient, baseURL+AddMemberProcedure, opts...),
		addExpense:       connect.NewClient[service.AddExpenseRequest, service.AddExpenseResponse](httpClient, baseURL+AddExpenseProcedure, opts...),
		deleteExpense:    connect.NewClient[service.DeleteExpenseRequest, service.DeleteExpenseResponse](httpClient, baseURL+DeleteExpenseProcedure, opts...),
		recordSettlement: connect.NewClient[service.RecordSettlementRequest, service.RecordSettlementResponse](httpClient, baseURL+RecordSettlementProcedure, opts...),
		deleteSettlement: connect.NewClient[service.DeleteSettlementRequest, service.DeleteSettlementResponse](httpClient, baseURL+DeleteSettlementProcedure, opts...),
		addBudget:        connect.NewClient[service.AddBudgetRequest, service.AddBudgetResponse](httpClient, baseURL+AddBudgetProcedure, opts...),
		deleteBudget:     connect.NewClient[service.DeleteBudgetRequest, service.DeleteBudgetResponse](httpClient, baseURL+DeleteBudgetProcedure, opts...),
		getBalances:      connect.NewClient[service.GetBalancesRequest, service.GetBalancesResponse](httpClient, baseURL+GetBalancesProcedure, opts...),
		exportGroup:      connect.NewClient[service.ExportGroupRequest, service.ExportGroupResponse](httpClient, baseURL+ExportGroupProcedure, opts...),
		saveUser:         connect.NewClient[service.SaveUserRequest, service.SaveUserResponse](httpClient, baseURL+SaveUserProcedure, opts...),
		getUser:          connect.NewClient[service.GetUserRequest, service.GetUserResponse](httpClient, baseURL+GetUserProcedure, opts...),
	}
}

func call[Req, Res any](ctx context.Context, c *connect.Client[Req, Res], req *Req) (*Res, error) {
	resp, err := c.CallUnary(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func (c *Client) CreateGroup(ctx context.Context, req *service.CreateGroupRequest) (*service.CreateGroupResponse, error) {
	return call(ctx, c.createGroup, req)
}

func (c *Client) GetGroup(ctx context.Context, req *service.GetGroupRequest) (*service.GetGroupResponse, error) {
	return call(ctx, c.getGroup, req)
}

func (c *Client) ListGroups(ctx context.Context, req *service.ListGroupsRequest) (*service.ListGroupsResponse, error) {
	return call(ctx, c.listGroups, req)
}

func (c *Client) JoinGroup(ctx context.Context, req *service.JoinGroupRequest) (*service.JoinGroupResponse, error) {
	return call(ctx, c.joinGroup, req)
}

func (c *Client) DeleteGroup(ctx context.Context, req *service.DeleteGroupRequest) (*service.DeleteGroupResponse, error) {
	return call(ctx, c.deleteGroup, req)
}

func (c *Client) AddMember(ctx context.Context, req *service.AddMemberRequest) (*service.AddMemberResponse, error) {
	return call(ctx, c.addMember, req)
}

func (c *Client) AddExpense(ctx context.Context, req *service.AddExpenseRequest) (*service.AddExpenseResponse, error) {
	return call(ctx, c.addExpense, req)
}

func (c *Client) DeleteExpense(ctx context.Context, req *service.DeleteExpenseRequest) (*service.DeleteExpenseResponse, error) {
	return call(ctx, c.deleteExpense, req)
}

func (c *Client) RecordSettlement(ctx context.Context, req *service.RecordSettlementRequest) (*service.RecordSettlementResponse, error) {
	return call(ctx, c.recordSettlement, req)
}

func (c *Client) DeleteSettlement(ctx context.Context, req *service.DeleteSettlementRequest) (*service.DeleteSettlementResponse, error) {
	return call(ctx, c.deleteSettlement, req)
}

func (c *Client) AddBudget(ctx context.Context, req *service.AddBudgetRequest) (*service.AddBudgetResponse, error) {
	return call(ctx, c.addBudget, req)
}

func (c *Client) DeleteBudget(ctx context.Context, req *service.DeleteBudgetRequest) (*service.DeleteBudgetResponse, error) {
	return call(ctx, c.deleteBudget, req)
}

func (c *Client) GetBalances(ctx context.Context, req *service.GetBalancesRequest) (*service.GetBalancesResponse, error) {
	return call(ctx, c.getBalances, req)
}

func (c *Client) ExportGroup(ctx context.Context, req *service.ExportGroupRequest) (*service.ExportGroupResponse, error) {
	return call(ctx, c.exportGroup, req)
}

func (c *Client) SaveUser(ctx context.Context, req *service.SaveUserRequest) (*service.SaveUserResponse, error) {
	return call(ctx, c.saveUser, req)
}

func (c *Client) GetUser(ctx context.Context, req *service.GetUserRequest) (*service.GetUserResponse, error) {
	return call(ctx, c.getUser, req)
}
