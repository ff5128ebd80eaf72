// Package ledgerv1 is the ledger.v1.LedgerService wire contract.
package ledgerv1

import (
	"context"

	commonv1 "github.com/louisbranch/txfacade/api/common/v1"
	platformgrpc "github.com/louisbranch/txfacade/internal/platform/grpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// ServiceName is the fully-qualified gRPC service name, also used as the
	// health check service key.
	ServiceName = "ledger.v1.LedgerService"

	LedgerService_Apply_FullMethodName          = "/ledger.v1.LedgerService/Apply"
	LedgerService_GetBalance_FullMethodName     = "/ledger.v1.LedgerService/GetBalance"
	LedgerService_GetAllBalances_FullMethodName = "/ledger.v1.LedgerService/GetAllBalances"
)

// ApplyResponse reports the balance after a command was folded in.
type ApplyResponse struct {
	TransactionID string  `json:"transaction_id"`
	Balance       float64 `json:"balance"`
}

func (r *ApplyResponse) GetBalance() float64 {
	if r == nil {
		return 0
	}
	return r.Balance
}

// GetBalanceRequest reads one user's balance.
type GetBalanceRequest = commonv1.UserRequest

type GetBalanceResponse struct {
	Balance float64 `json:"balance"`
}

func (r *GetBalanceResponse) GetBalance() float64 {
	if r == nil {
		return 0
	}
	return r.Balance
}

type GetAllBalancesRequest struct{}

type GetAllBalancesResponse struct {
	Balances map[string]float64 `json:"balances"`
}

func (r *GetAllBalancesResponse) GetBalances() map[string]float64 {
	if r == nil {
		return nil
	}
	return r.Balances
}

// LedgerServiceServer is the server API for ledger.v1.LedgerService.
type LedgerServiceServer interface {
	Apply(context.Context, *commonv1.TransactionCommand) (*ApplyResponse, error)
	GetBalance(context.Context, *GetBalanceRequest) (*GetBalanceResponse, error)
	GetAllBalances(context.Context, *GetAllBalancesRequest) (*GetAllBalancesResponse, error)
}

// UnimplementedLedgerServiceServer can be embedded for forward compatibility.
type UnimplementedLedgerServiceServer struct{}

func (UnimplementedLedgerServiceServer) Apply(context.Context, *commonv1.TransactionCommand) (*ApplyResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Apply not implemented")
}

func (UnimplementedLedgerServiceServer) GetBalance(context.Context, *GetBalanceRequest) (*GetBalanceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetBalance not implemented")
}

func (UnimplementedLedgerServiceServer) GetAllBalances(context.Context, *GetAllBalancesRequest) (*GetAllBalancesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetAllBalances not implemented")
}

// LedgerService_ServiceDesc describes ledger.v1.LedgerService for grpc.Server.
var LedgerService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LedgerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Apply",
			Handler:    platformgrpc.UnaryHandler(LedgerService_Apply_FullMethodName, LedgerServiceServer.Apply),
		},
		{
			MethodName: "GetBalance",
			Handler:    platformgrpc.UnaryHandler(LedgerService_GetBalance_FullMethodName, LedgerServiceServer.GetBalance),
		},
		{
			MethodName: "GetAllBalances",
			Handler:    platformgrpc.UnaryHandler(LedgerService_GetAllBalances_FullMethodName, LedgerServiceServer.GetAllBalances),
		},
	},
	Metadata: "ledger/v1/ledger.go",
}

// RegisterLedgerServiceServer registers srv on s.
func RegisterLedgerServiceServer(s grpc.ServiceRegistrar, srv LedgerServiceServer) {
	s.RegisterService(&LedgerService_ServiceDesc, srv)
}

// LedgerServiceClient is the client API for ledger.v1.LedgerService.
type LedgerServiceClient interface {
	Apply(ctx context.Context, in *commonv1.TransactionCommand, opts ...grpc.CallOption) (*ApplyResponse, error)
	GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*GetBalanceResponse, error)
	GetAllBalances(ctx context.Context, in *GetAllBalancesRequest, opts ...grpc.CallOption) (*GetAllBalancesResponse, error)
}

type ledgerServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewLedgerServiceClient returns a client that encodes calls with the JSON codec.
func NewLedgerServiceClient(cc grpc.ClientConnInterface) LedgerServiceClient {
	return &ledgerServiceClient{cc: cc}
}

func (c *ledgerServiceClient) Apply(ctx context.Context, in *commonv1.TransactionCommand, opts ...grpc.CallOption) (*ApplyResponse, error) {
	return platformgrpc.InvokeJSON[ApplyResponse](ctx, c.cc, LedgerService_Apply_FullMethodName, in, opts...)
}

func (c *ledgerServiceClient) GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*GetBalanceResponse, error) {
	return platformgrpc.InvokeJSON[GetBalanceResponse](ctx, c.cc, LedgerService_GetBalance_FullMethodName, in, opts...)
}

func (c *ledgerServiceClient) GetAllBalances(ctx context.Context, in *GetAllBalancesRequest, opts ...grpc.CallOption) (*GetAllBalancesResponse, error) {
	return platformgrpc.InvokeJSON[GetAllBalancesResponse](ctx, c.cc, LedgerService_GetAllBalances_FullMethodName, in, opts...)
}
