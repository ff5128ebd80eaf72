package server

import (
	"context"

	commonv1 "github.com/louisbranch/txfacade/api/common/v1"
	ledgerv1 "github.com/louisbranch/txfacade/api/ledger/v1"
	txlogv1 "github.com/louisbranch/txfacade/api/txlog/v1"
	apperrors "github.com/louisbranch/txfacade/internal/platform/errors"
	"github.com/louisbranch/txfacade/internal/services/facade/domain"
)

// Gateways return backend failures as *apperrors.Error so the backend's code
// and reason survive into the dispatcher's upstream error.

type ledgerGateway struct {
	client ledgerv1.LedgerServiceClient
}

func (g ledgerGateway) Apply(ctx context.Context, cmd domain.Command) (float64, error) {
	resp, err := g.client.Apply(ctx, toWire(cmd))
	if err != nil {
		return 0, apperrors.FromGRPC(err)
	}
	return resp.GetBalance(), nil
}

func (g ledgerGateway) GetBalance(ctx context.Context, userID string) (float64, error) {
	resp, err := g.client.GetBalance(ctx, &ledgerv1.GetBalanceRequest{UserID: userID})
	if err != nil {
		return 0, apperrors.FromGRPC(err)
	}
	return resp.GetBalance(), nil
}

func (g ledgerGateway) GetAllBalances(ctx context.Context) (map[string]float64, error) {
	resp, err := g.client.GetAllBalances(ctx, &ledgerv1.GetAllBalancesRequest{})
	if err != nil {
		return nil, apperrors.FromGRPC(err)
	}
	return resp.GetBalances(), nil
}

type logGateway struct {
	client txlogv1.TransactionLogServiceClient
}

func (g logGateway) Append(ctx context.Context, cmd domain.Command) error {
	if _, err := g.client.Append(ctx, toWire(cmd)); err != nil {
		return apperrors.FromGRPC(err)
	}
	return nil
}

func (g logGateway) GetUserTransactions(ctx context.Context, userID string) ([]float64, error) {
	resp, err := g.client.GetUserTransactions(ctx, &txlogv1.GetUserTransactionsRequest{UserID: userID})
	if err != nil {
		return nil, apperrors.FromGRPC(err)
	}
	return resp.GetAmounts(), nil
}

func toWire(cmd domain.Command) *commonv1.TransactionCommand {
	return &commonv1.TransactionCommand{
		TransactionID: cmd.TransactionID,
		UserID:        cmd.UserID,
		Amount:        cmd.Amount,
	}
}
