// Package ledger exposes the balance store over ledger.v1.LedgerService.
package ledger

import (
	"context"
	"errors"
	"log"

	commonv1 "github.com/louisbranch/txfacade/api/common/v1"
	ledgerv1 "github.com/louisbranch/txfacade/api/ledger/v1"
	apperrors "github.com/louisbranch/txfacade/internal/platform/errors"
	"github.com/louisbranch/txfacade/internal/services/ledger/storage"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Service exposes ledger.v1 gRPC operations.
type Service struct {
	ledgerv1.UnimplementedLedgerServiceServer
	store storage.BalanceStore
}

// NewService creates a ledger service backed by store.
func NewService(store storage.BalanceStore) *Service {
	return &Service{store: store}
}

// Apply folds one transaction command into the user's balance.
func (s *Service) Apply(ctx context.Context, in *commonv1.TransactionCommand) (*ledgerv1.ApplyResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "transaction command is required")
	}
	if s == nil || s.store == nil {
		return nil, status.Error(codes.Internal, "ledger store is not configured")
	}

	balance, err := s.store.Apply(ctx, storage.Command{
		TransactionID: in.GetTransactionID(),
		UserID:        in.GetUserID(),
		Amount:        in.GetAmount(),
	})
	if err != nil {
		return nil, storeError(err)
	}
	log.Printf("applied %s: user %s amount %v balance %v", in.GetTransactionID(), in.GetUserID(), in.GetAmount(), balance)
	return &ledgerv1.ApplyResponse{
		TransactionID: in.GetTransactionID(),
		Balance:       balance,
	}, nil
}

// GetBalance returns one user's balance; unknown users report zero.
func (s *Service) GetBalance(ctx context.Context, in *ledgerv1.GetBalanceRequest) (*ledgerv1.GetBalanceResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "get balance request is required")
	}
	if s == nil || s.store == nil {
		return nil, status.Error(codes.Internal, "ledger store is not configured")
	}

	balance, err := s.store.Balance(ctx, in.GetUserID())
	if err != nil {
		return nil, storeError(err)
	}
	return &ledgerv1.GetBalanceResponse{Balance: balance}, nil
}

// GetAllBalances returns a snapshot of every balance.
func (s *Service) GetAllBalances(ctx context.Context, _ *ledgerv1.GetAllBalancesRequest) (*ledgerv1.GetAllBalancesResponse, error) {
	if s == nil || s.store == nil {
		return nil, status.Error(codes.Internal, "ledger store is not configured")
	}

	balances, err := s.store.Balances(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	if balances == nil {
		balances = map[string]float64{}
	}
	return &ledgerv1.GetAllBalancesResponse{Balances: balances}, nil
}

func storeError(err error) error {
	var invalid *storage.ValidationError
	if errors.As(err, &invalid) {
		return apperrors.Validation(invalid.Error()).ToGRPCStatus()
	}
	return apperrors.StatusError(err)
}
