// Package domain implements the facade dispatcher: validation, concurrent
// fan-out to the ledger and transaction log, timing and reconciliation.
package domain

import (
	"context"
	"errors"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	apperrors "github.com/louisbranch/txfacade/internal/platform/errors"
	"github.com/louisbranch/txfacade/internal/platform/id"
	"github.com/louisbranch/txfacade/internal/services/facade/events"
	"github.com/louisbranch/txfacade/internal/services/facade/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	backendLedger = "ledger"

	tracerName = "github.com/louisbranch/txfacade/internal/services/facade/domain"
)

var (
	// ErrServiceNotConfigured indicates the dispatcher is nil.
	ErrServiceNotConfigured = errors.New("facade service is not configured")
	// ErrLedgerGatewayNotConfigured indicates the ledger dependency is missing.
	ErrLedgerGatewayNotConfigured = errors.New("ledger gateway is not configured")
	// ErrLogGatewayNotConfigured indicates the transaction log dependency is missing.
	ErrLogGatewayNotConfigured = errors.New("log gateway is not configured")
)

// Command is the write sent identically to both backends.
type Command struct {
	TransactionID string
	UserID        string
	Amount        float64
}

// TransactionRequest is one client submission.
type TransactionRequest struct {
	UserID string
	Amount float64
}

// TransactionResult is derived from the ledger reply alone.
type TransactionResult struct {
	TransactionID string
	Balance       float64
}

// UserInfo combines a ledger balance with the log's amounts for one user.
// Either half falls back to its zero value when its backend fails.
type UserInfo struct {
	Balance      float64
	Transactions []float64
}

// LedgerGateway reaches the balance ledger backend.
type LedgerGateway interface {
	Apply(ctx context.Context, cmd Command) (float64, error)
	GetBalance(ctx context.Context, userID string) (float64, error)
	GetAllBalances(ctx context.Context) (map[string]float64, error)
}

// LogGateway reaches the transaction log backend.
type LogGateway interface {
	Append(ctx context.Context, cmd Command) error
	GetUserTransactions(ctx context.Context, userID string) ([]float64, error)
}

// Config controls dispatcher behavior. Zero values select defaults.
type Config struct {
	// CallTimeout bounds each backend call. Zero disables the deadline.
	CallTimeout      time.Duration
	Clock            func() time.Time
	NewTransactionID func(time.Time) (string, error)
	Events           events.Publisher
	Metrics          *metrics.Aggregator
}

// Service dispatches facade operations to the ledger and transaction log.
type Service struct {
	ledger      LedgerGateway
	log         LogGateway
	metrics     *metrics.Aggregator
	events      events.Publisher
	callTimeout time.Duration
	clock       func() time.Time
	newTxID     func(time.Time) (string, error)
	tracer      trace.Tracer
}

// NewService builds a dispatcher over the two backend gateways.
func NewService(ledger LedgerGateway, txlog LogGateway, cfg Config) *Service {
	svc := &Service{
		ledger:      ledger,
		log:         txlog,
		metrics:     cfg.Metrics,
		events:      cfg.Events,
		callTimeout: cfg.CallTimeout,
		clock:       cfg.Clock,
		newTxID:     cfg.NewTransactionID,
		tracer:      otel.Tracer(tracerName),
	}
	if svc.metrics == nil {
		svc.metrics = &metrics.Aggregator{}
	}
	if svc.events == nil {
		svc.events = events.NopPublisher{}
	}
	if svc.clock == nil {
		svc.clock = time.Now
	}
	if svc.newTxID == nil {
		svc.newTxID = id.NewTransactionID
	}
	return svc
}

// ProcessTransaction validates req, writes it to both backends concurrently
// and answers from the ledger reply. A log failure is reported only through
// logs and dispatch events.
func (s *Service) ProcessTransaction(ctx context.Context, req TransactionRequest) (TransactionResult, error) {
	if err := s.ready(); err != nil {
		return TransactionResult{}, err
	}
	if err := validateUserID(req.UserID); err != nil {
		return TransactionResult{}, err
	}
	if math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		return TransactionResult{}, apperrors.Validation("amount must be a finite number")
	}

	txID, err := s.newTxID(s.clock())
	if err != nil {
		return TransactionResult{}, apperrors.Wrap(apperrors.CodeUnknown, "generate transaction id", err)
	}
	cmd := Command{TransactionID: txID, UserID: req.UserID, Amount: req.Amount}

	var (
		wg                  sync.WaitGroup
		balance             float64
		ledgerErr, logErr   error
		ledgerTook, logTook time.Duration
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		ledgerTook, ledgerErr = s.timed(ctx, "ledger.Apply", func(ctx context.Context) error {
			var err error
			balance, err = s.ledger.Apply(ctx, cmd)
			return err
		})
	}()
	go func() {
		defer wg.Done()
		logTook, logErr = s.timed(ctx, "txlog.Append", func(ctx context.Context) error {
			return s.log.Append(ctx, cmd)
		})
	}()
	wg.Wait()
	s.metrics.RecordPair(ledgerTook, logTook)

	event := events.TransactionDispatched{
		TransactionID: txID,
		UserID:        cmd.UserID,
		Amount:        cmd.Amount,
		LedgerOK:      ledgerErr == nil,
		LogOK:         logErr == nil,
		LedgerNanos:   ledgerTook.Nanoseconds(),
		LogNanos:      logTook.Nanoseconds(),
		OccurredAt:    s.clock().UTC(),
	}
	if event.Diverged() {
		log.Printf("transaction %s diverged: ledger err=%v, log err=%v", txID, ledgerErr, logErr)
	}
	s.publish(ctx, event)

	if ledgerErr != nil {
		return TransactionResult{}, apperrors.Upstream(backendLedger, "ledger apply failed", ledgerErr)
	}
	return TransactionResult{TransactionID: txID, Balance: balance}, nil
}

// GetUserInfo reads the user's balance and transaction amounts concurrently.
// It never fails once the id is valid.
func (s *Service) GetUserInfo(ctx context.Context, userID string) (UserInfo, error) {
	if err := s.ready(); err != nil {
		return UserInfo{}, err
	}
	if err := validateUserID(userID); err != nil {
		return UserInfo{}, err
	}

	var (
		wg                  sync.WaitGroup
		info                UserInfo
		ledgerTook, logTook time.Duration
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		ledgerTook, err = s.timed(ctx, "ledger.GetBalance", func(ctx context.Context) error {
			var err error
			info.Balance, err = s.ledger.GetBalance(ctx, userID)
			return err
		})
		if err != nil {
			info.Balance = 0
			log.Printf("user %s: ledger balance unavailable: %v", userID, err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		logTook, err = s.timed(ctx, "txlog.GetUserTransactions", func(ctx context.Context) error {
			var err error
			info.Transactions, err = s.log.GetUserTransactions(ctx, userID)
			return err
		})
		if err != nil {
			info.Transactions = nil
			log.Printf("user %s: transaction log unavailable: %v", userID, err)
		}
	}()
	wg.Wait()
	s.metrics.RecordPair(ledgerTook, logTook)

	if info.Transactions == nil {
		info.Transactions = []float64{}
	}
	return info, nil
}

// GetAccountBalances returns every ledger balance.
func (s *Service) GetAccountBalances(ctx context.Context) (map[string]float64, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	var balances map[string]float64
	took, err := s.timed(ctx, "ledger.GetAllBalances", func(ctx context.Context) error {
		var err error
		balances, err = s.ledger.GetAllBalances(ctx)
		return err
	})
	s.metrics.Record(metrics.KindLedger, took)
	if err != nil {
		return nil, apperrors.Upstream(backendLedger, "ledger balances unavailable", err)
	}
	if balances == nil {
		balances = map[string]float64{}
	}
	return balances, nil
}

// GetTimings returns the accumulated backend timings.
func (s *Service) GetTimings() metrics.Snapshot {
	if s == nil || s.metrics == nil {
		return metrics.Snapshot{}
	}
	return s.metrics.Snapshot()
}

func (s *Service) ready() error {
	if s == nil {
		return ErrServiceNotConfigured
	}
	if s.ledger == nil {
		return ErrLedgerGatewayNotConfigured
	}
	if s.log == nil {
		return ErrLogGatewayNotConfigured
	}
	return nil
}

// timed runs call under its own span and deadline and returns how long it
// took, success or failure. Any completed call counts for at least 1ns.
func (s *Service) timed(ctx context.Context, op string, call func(context.Context) error) (time.Duration, error) {
	ctx, span := s.tracer.Start(ctx, op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	if s.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.callTimeout)
		defer cancel()
	}

	start := time.Now()
	err := call(ctx)
	took := max(time.Since(start), time.Nanosecond)

	span.SetAttributes(attribute.Int64("txfacade.elapsed_nanos", took.Nanoseconds()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
	}
	return took, err
}

func (s *Service) publish(ctx context.Context, event events.TransactionDispatched) {
	if err := s.events.PublishDispatched(context.WithoutCancel(ctx), event); err != nil {
		log.Printf("transaction %s: %v", event.TransactionID, err)
	}
}

func validateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return apperrors.Validation("user_id is required")
	}
	return nil
}
