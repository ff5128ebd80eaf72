// Package txlogv1 is the txlog.v1.TransactionLogService wire contract.
package txlogv1

import (
	"context"

	commonv1 "github.com/louisbranch/txfacade/api/common/v1"
	platformgrpc "github.com/louisbranch/txfacade/internal/platform/grpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ServiceName = "txlog.v1.TransactionLogService"

	TransactionLogService_Append_FullMethodName              = "/txlog.v1.TransactionLogService/Append"
	TransactionLogService_GetUserTransactions_FullMethodName = "/txlog.v1.TransactionLogService/GetUserTransactions"
)

// AppendResponse acknowledges a recorded command.
type AppendResponse struct{}

type GetUserTransactionsRequest = commonv1.UserRequest

type GetUserTransactionsResponse struct {
	Amounts []float64 `json:"amounts"`
}

func (r *GetUserTransactionsResponse) GetAmounts() []float64 {
	if r == nil {
		return nil
	}
	return r.Amounts
}

// TransactionLogServiceServer is the server API for txlog.v1.TransactionLogService.
type TransactionLogServiceServer interface {
	Append(context.Context, *commonv1.TransactionCommand) (*AppendResponse, error)
	GetUserTransactions(context.Context, *GetUserTransactionsRequest) (*GetUserTransactionsResponse, error)
}

// UnimplementedTransactionLogServiceServer can be embedded for forward compatibility.
type UnimplementedTransactionLogServiceServer struct{}

func (UnimplementedTransactionLogServiceServer) Append(context.Context, *commonv1.TransactionCommand) (*AppendResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Append not implemented")
}

func (UnimplementedTransactionLogServiceServer) GetUserTransactions(context.Context, *GetUserTransactionsRequest) (*GetUserTransactionsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetUserTransactions not implemented")
}

var TransactionLogService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TransactionLogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Append",
			Handler:    platformgrpc.UnaryHandler(TransactionLogService_Append_FullMethodName, TransactionLogServiceServer.Append),
		},
		{
			MethodName: "GetUserTransactions",
			Handler:    platformgrpc.UnaryHandler(TransactionLogService_GetUserTransactions_FullMethodName, TransactionLogServiceServer.GetUserTransactions),
		},
	},
	Metadata: "txlog/v1/txlog.go",
}

func RegisterTransactionLogServiceServer(s grpc.ServiceRegistrar, srv TransactionLogServiceServer) {
	s.RegisterService(&TransactionLogService_ServiceDesc, srv)
}

// TransactionLogServiceClient is the client API for txlog.v1.TransactionLogService.
type TransactionLogServiceClient interface {
	Append(ctx context.Context, in *commonv1.TransactionCommand, opts ...grpc.CallOption) (*AppendResponse, error)
	GetUserTransactions(ctx context.Context, in *GetUserTransactionsRequest, opts ...grpc.CallOption) (*GetUserTransactionsResponse, error)
}

type transactionLogServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewTransactionLogServiceClient(cc grpc.ClientConnInterface) TransactionLogServiceClient {
	return &transactionLogServiceClient{cc: cc}
}

func (c *transactionLogServiceClient) Append(ctx context.Context, in *commonv1.TransactionCommand, opts ...grpc.CallOption) (*AppendResponse, error) {
	return platformgrpc.InvokeJSON[AppendResponse](ctx, c.cc, TransactionLogService_Append_FullMethodName, in, opts...)
}

func (c *transactionLogServiceClient) GetUserTransactions(ctx context.Context, in *GetUserTransactionsRequest, opts ...grpc.CallOption) (*GetUserTransactionsResponse, error) {
	return platformgrpc.InvokeJSON[GetUserTransactionsResponse](ctx, c.cc, TransactionLogService_GetUserTransactions_FullMethodName, in, opts...)
}
