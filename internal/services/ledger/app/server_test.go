package server

import (
	"context"
	"testing"
	"time"

	commonv1 "github.com/louisbranch/txfacade/api/common/v1"
	ledgerv1 "github.com/louisbranch/txfacade/api/ledger/v1"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

func startServer(t *testing.T) *grpc.ClientConn {
	t.Helper()

	srv, err := NewWithAddr("127.0.0.1:0")
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	runCtx, runCancel := context.WithCancel(context.Background())
	serveDone := make(chan error, 1)
	go func() {
		serveDone <- srv.Serve(runCtx)
	}()
	t.Cleanup(func() {
		runCancel()
		select {
		case serveErr := <-serveDone:
			if serveErr != nil {
				t.Fatalf("serve: %v", serveErr)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timeout waiting for server shutdown")
		}
	})

	conn, err := grpc.NewClient(srv.Addr(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("dial ledger server: %v", err)
	}
	t.Cleanup(func() {
		if closeErr := conn.Close(); closeErr != nil {
			t.Fatalf("close gRPC connection: %v", closeErr)
		}
	})
	return conn
}

func TestServer_ApplyAndReadRoundTrip(t *testing.T) {
	conn := startServer(t)
	client := ledgerv1.NewLedgerServiceClient(conn)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Apply(ctx, &commonv1.TransactionCommand{TransactionID: "tx-1", UserID: "alice", Amount: 10}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	applyResp, err := client.Apply(ctx, &commonv1.TransactionCommand{TransactionID: "tx-2", UserID: "alice", Amount: 15})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if applyResp.GetBalance() != 25 {
		t.Fatalf("balance = %v, want 25", applyResp.GetBalance())
	}

	balanceResp, err := client.GetBalance(ctx, &ledgerv1.GetBalanceRequest{UserID: "alice"})
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if balanceResp.GetBalance() != 25 {
		t.Fatalf("get balance = %v, want 25", balanceResp.GetBalance())
	}

	allResp, err := client.GetAllBalances(ctx, &ledgerv1.GetAllBalancesRequest{})
	if err != nil {
		t.Fatalf("get all balances: %v", err)
	}
	if len(allResp.GetBalances()) != 1 || allResp.GetBalances()["alice"] != 25 {
		t.Fatalf("balances = %v, want map[alice:25]", allResp.GetBalances())
	}
}

func TestServer_ValidationSurvivesTransport(t *testing.T) {
	conn := startServer(t)
	client := ledgerv1.NewLedgerServiceClient(conn)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := client.Apply(ctx, &commonv1.TransactionCommand{TransactionID: "tx-1", Amount: 1})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("code = %v, want %v", status.Code(err), codes.InvalidArgument)
	}
}

func TestServer_ReportsServingHealth(t *testing.T) {
	conn := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: ledgerv1.ServiceName})
	if err != nil {
		t.Fatalf("health check: %v", err)
	}
	if resp.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
		t.Fatalf("status = %v, want SERVING", resp.GetStatus())
	}
}

func TestServeNilServer(t *testing.T) {
	var srv *Server
	if err := srv.Serve(context.Background()); err == nil {
		t.Fatal("expected error for nil server")
	}
	if srv.Addr() != "" {
		t.Fatal("expected empty addr for nil server")
	}
}
