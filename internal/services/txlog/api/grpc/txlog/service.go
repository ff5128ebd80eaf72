// Package txlog exposes the transaction store over txlog.v1.TransactionLogService.
package txlog

import (
	"context"
	"errors"
	"log"

	commonv1 "github.com/louisbranch/txfacade/api/common/v1"
	txlogv1 "github.com/louisbranch/txfacade/api/txlog/v1"
	apperrors "github.com/louisbranch/txfacade/internal/platform/errors"
	"github.com/louisbranch/txfacade/internal/services/txlog/storage"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Service exposes txlog.v1 gRPC operations.
type Service struct {
	txlogv1.UnimplementedTransactionLogServiceServer
	store storage.TransactionStore
}

// NewService creates a transaction log service backed by store.
func NewService(store storage.TransactionStore) *Service {
	return &Service{store: store}
}

// Append records one transaction command.
func (s *Service) Append(ctx context.Context, in *commonv1.TransactionCommand) (*txlogv1.AppendResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "transaction command is required")
	}
	if s == nil || s.store == nil {
		return nil, status.Error(codes.Internal, "transaction store is not configured")
	}

	err := s.store.Append(ctx, storage.Entry{
		TransactionID: in.GetTransactionID(),
		UserID:        in.GetUserID(),
		Amount:        in.GetAmount(),
	})
	if err != nil {
		return nil, storeError(err)
	}
	log.Printf("logged %s: user %s amount %v", in.GetTransactionID(), in.GetUserID(), in.GetAmount())
	return &txlogv1.AppendResponse{}, nil
}

// GetUserTransactions lists the amounts recorded for one user.
func (s *Service) GetUserTransactions(ctx context.Context, in *txlogv1.GetUserTransactionsRequest) (*txlogv1.GetUserTransactionsResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "get user transactions request is required")
	}
	if s == nil || s.store == nil {
		return nil, status.Error(codes.Internal, "transaction store is not configured")
	}

	amounts, err := s.store.UserAmounts(ctx, in.GetUserID())
	if err != nil {
		return nil, storeError(err)
	}
	if amounts == nil {
		amounts = []float64{}
	}
	return &txlogv1.GetUserTransactionsResponse{Amounts: amounts}, nil
}

func storeError(err error) error {
	var invalid *storage.ValidationError
	if errors.As(err, &invalid) {
		return apperrors.Validation(invalid.Error()).ToGRPCStatus()
	}
	return apperrors.StatusError(err)
}
