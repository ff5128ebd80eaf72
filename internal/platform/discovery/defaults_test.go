package discovery

import "testing"

func TestGRPCAddr(t *testing.T) {
	tests := []struct {
		service string
		want    string
		port    int
	}{
		{service: ServiceLedger, want: "ledger:8081", port: 8081},
		{service: " txlog ", want: "txlog:8082", port: 8082},
		{service: "facade", want: "", port: 0},
		{service: "", want: "", port: 0},
	}
	for _, tt := range tests {
		if got := GRPCAddr(tt.service); got != tt.want {
			t.Fatalf("GRPCAddr(%q) = %q, want %q", tt.service, got, tt.want)
		}
		if got := GRPCPort(tt.service); got != tt.port {
			t.Fatalf("GRPCPort(%q) = %d, want %d", tt.service, got, tt.port)
		}
	}
}

func TestOrDefaultGRPCAddr(t *testing.T) {
	if got := OrDefaultGRPCAddr(" localhost:9000 ", ServiceLedger); got != "localhost:9000" {
		t.Fatalf("explicit addr = %q, want localhost:9000", got)
	}
	if got := OrDefaultGRPCAddr("   ", ServiceTxLog); got != "txlog:8082" {
		t.Fatalf("fallback addr = %q, want txlog:8082", got)
	}
}
