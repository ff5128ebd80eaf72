package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/louisbranch/txfacade/internal/platform/errors"
	"github.com/louisbranch/txfacade/internal/services/facade/domain"
	"github.com/louisbranch/txfacade/internal/services/facade/metrics"
)

type fakeDispatcher struct {
	lastRequest  domain.TransactionRequest
	lastUserID   string
	processCalls int
	result       domain.TransactionResult
	info         domain.UserInfo
	balances     map[string]float64
	timings      metrics.Snapshot
	err          error
}

func (f *fakeDispatcher) ProcessTransaction(_ context.Context, req domain.TransactionRequest) (domain.TransactionResult, error) {
	f.processCalls++
	f.lastRequest = req
	return f.result, f.err
}

func (f *fakeDispatcher) GetUserInfo(_ context.Context, userID string) (domain.UserInfo, error) {
	f.lastUserID = userID
	if strings.TrimSpace(userID) == "" {
		return domain.UserInfo{}, apperrors.Validation("user_id is required")
	}
	return f.info, f.err
}

func (f *fakeDispatcher) GetAccountBalances(context.Context) (map[string]float64, error) {
	return f.balances, f.err
}

func (f *fakeDispatcher) GetTimings() metrics.Snapshot {
	return f.timings
}

func serve(t *testing.T, dispatcher Dispatcher, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	NewHandler(dispatcher).ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestUp(t *testing.T) {
	rec := serve(t, &fakeDispatcher{}, http.MethodGet, "/up", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Fatalf("up = %d %q, want 200 OK", rec.Code, rec.Body.String())
	}
}

func TestSubmitTransaction(t *testing.T) {
	dispatcher := &fakeDispatcher{result: domain.TransactionResult{TransactionID: "tx-1", Balance: 25}}
	rec := serve(t, dispatcher, http.MethodPost, "/transaction", `{"user_id":"alice","amount":15}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	got := decodeBody[map[string]any](t, rec)
	if got["transaction_id"] != "tx-1" || got["balance"] != 25.0 {
		t.Fatalf("body = %v", got)
	}
	if dispatcher.lastRequest != (domain.TransactionRequest{UserID: "alice", Amount: 15}) {
		t.Fatalf("request = %+v", dispatcher.lastRequest)
	}
}

func TestSubmitTransactionRejectsBadBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "malformed", body: `{"user_id":`, want: "invalid JSON body"},
		{name: "amount string", body: `{"user_id":"alice","amount":"ten"}`, want: "invalid JSON body"},
		{name: "missing amount", body: `{"user_id":"alice"}`, want: "amount is required"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dispatcher := &fakeDispatcher{}
			rec := serve(t, dispatcher, http.MethodPost, "/transaction", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if got := decodeBody[errorResponse](t, rec); got.Error != tc.want {
				t.Fatalf("error = %q, want %q", got.Error, tc.want)
			}
			if dispatcher.processCalls != 0 {
				t.Fatalf("process calls = %d, want 0", dispatcher.processCalls)
			}
		})
	}
}

func TestSubmitTransactionTooLarge(t *testing.T) {
	body := `{"user_id":"` + strings.Repeat("a", maxRequestBodyBytes) + `","amount":1}`
	rec := serve(t, &fakeDispatcher{}, http.MethodPost, "/transaction", body)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
}

func TestSubmitTransactionErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{name: "validation", err: apperrors.Validation("user_id is required"), status: http.StatusBadRequest, body: "user_id is required"},
		{name: "upstream", err: apperrors.Upstream("ledger", "ledger apply failed", errors.New("refused")), status: http.StatusBadGateway, body: "ledger apply failed"},
		{name: "plain", err: errors.New("surprise"), status: http.StatusInternalServerError, body: "internal error"},
		{
			name:   "upstream wrapping backend validation",
			err:    apperrors.Upstream("ledger", "ledger apply failed", apperrors.Validation("balance would overflow")),
			status: http.StatusBadGateway,
			body:   "ledger apply failed",
		},
		{name: "wrapped unknown", err: fmt.Errorf("dispatch: %w", apperrors.New(apperrors.CodeUnknown, "id source failed")), status: http.StatusInternalServerError, body: "id source failed"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(t, &fakeDispatcher{err: tc.err}, http.MethodPost, "/transaction", `{"user_id":"alice","amount":1}`)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if got := decodeBody[errorResponse](t, rec); got.Error != tc.body {
				t.Fatalf("error = %q, want %q", got.Error, tc.body)
			}
		})
	}
}

func TestSubmitTransactionWrongMethod(t *testing.T) {
	rec := serve(t, &fakeDispatcher{}, http.MethodGet, "/transaction", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestGetUser(t *testing.T) {
	dispatcher := &fakeDispatcher{info: domain.UserInfo{Balance: 25, Transactions: []float64{10, 15}}}
	rec := serve(t, dispatcher, http.MethodGet, "/user/alice%20smith", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if dispatcher.lastUserID != "alice smith" {
		t.Fatalf("user id = %q, want %q", dispatcher.lastUserID, "alice smith")
	}
	got := decodeBody[userInfoResponse](t, rec)
	if got.Balance != 25 || len(got.Transactions) != 2 {
		t.Fatalf("body = %+v", got)
	}
}

func TestGetUserEmptyTransactionsEncodeAsArray(t *testing.T) {
	rec := serve(t, &fakeDispatcher{info: domain.UserInfo{Balance: 3}}, http.MethodGet, "/user/bob", "")
	if !strings.Contains(rec.Body.String(), `"transactions":[]`) {
		t.Fatalf("body = %s, want empty transactions array", rec.Body.String())
	}
}

func TestGetUserEmptyID(t *testing.T) {
	rec := serve(t, &fakeDispatcher{}, http.MethodGet, "/user/", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetAccounts(t *testing.T) {
	rec := serve(t, &fakeDispatcher{balances: map[string]float64{"alice": 25, "bob": -2}}, http.MethodGet, "/accounts", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	got := decodeBody[map[string]float64](t, rec)
	if got["alice"] != 25 || got["bob"] != -2 {
		t.Fatalf("balances = %v", got)
	}
}

func TestGetAccountsUpstreamFailure(t *testing.T) {
	err := apperrors.Upstream("ledger", "ledger balances unavailable", errors.New("down"))
	rec := serve(t, &fakeDispatcher{err: err}, http.MethodGet, "/accounts", "")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestGetMetrics(t *testing.T) {
	rec := serve(t, &fakeDispatcher{timings: metrics.Snapshot{LedgerTimeNanos: 120, LogTimeNanos: 45}}, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	got := decodeBody[map[string]uint64](t, rec)
	if got["ledger_time_nanos"] != 120 || got["log_time_nanos"] != 45 {
		t.Fatalf("metrics = %v", got)
	}
}
