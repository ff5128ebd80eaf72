// Package httpapi serves the facade's JSON HTTP routes.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	apperrors "github.com/louisbranch/txfacade/internal/platform/errors"
	"github.com/louisbranch/txfacade/internal/services/facade/domain"
	"github.com/louisbranch/txfacade/internal/services/facade/metrics"
)

const maxRequestBodyBytes = 1 << 20

// Dispatcher is the facade behavior the routes expose.
type Dispatcher interface {
	ProcessTransaction(ctx context.Context, req domain.TransactionRequest) (domain.TransactionResult, error)
	GetUserInfo(ctx context.Context, userID string) (domain.UserInfo, error)
	GetAccountBalances(ctx context.Context) (map[string]float64, error)
	GetTimings() metrics.Snapshot
}

type transactionRequest struct {
	UserID string   `json:"user_id"`
	Amount *float64 `json:"amount"`
}

type transactionResponse struct {
	TransactionID string  `json:"transaction_id"`
	Balance       float64 `json:"balance"`
}

type userInfoResponse struct {
	Balance      float64   `json:"balance"`
	Transactions []float64 `json:"transactions"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewHandler returns the facade routes backed by dispatcher.
func NewHandler(dispatcher Dispatcher) http.Handler {
	h := &handler{dispatcher: dispatcher}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /up", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.HandleFunc("POST /transaction", h.submitTransaction)
	mux.HandleFunc("GET /user/{user_id}", h.getUser)
	mux.HandleFunc("GET /user/{$}", h.getUser)
	mux.HandleFunc("GET /accounts", h.getAccounts)
	mux.HandleFunc("GET /metrics", h.getMetrics)
	return mux
}

type handler struct {
	dispatcher Dispatcher
}

func (h *handler) submitTransaction(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Amount == nil {
		writeJSONError(w, http.StatusBadRequest, "amount is required")
		return
	}

	result, err := h.dispatcher.ProcessTransaction(r.Context(), domain.TransactionRequest{
		UserID: req.UserID,
		Amount: *req.Amount,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, transactionResponse{
		TransactionID: result.TransactionID,
		Balance:       result.Balance,
	})
}

func (h *handler) getUser(w http.ResponseWriter, r *http.Request) {
	info, err := h.dispatcher.GetUserInfo(r.Context(), r.PathValue("user_id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	transactions := info.Transactions
	if transactions == nil {
		transactions = []float64{}
	}
	writeJSON(w, http.StatusOK, userInfoResponse{Balance: info.Balance, Transactions: transactions})
}

func (h *handler) getAccounts(w http.ResponseWriter, r *http.Request) {
	balances, err := h.dispatcher.GetAccountBalances(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, balances)
}

func (h *handler) getMetrics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.dispatcher.GetTimings())
}

func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.CodeOf(err).HTTPStatus()
	message := "internal error"
	var domainErr *apperrors.Error
	if errors.As(err, &domainErr) {
		message = domainErr.Message
	}
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	}
	writeJSONError(w, status, message)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
