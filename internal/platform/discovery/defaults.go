// Package discovery maps backend names to their in-network gRPC addresses.
// Compose networks resolve the service name as host.
package discovery

import (
	"strconv"
	"strings"
)

// Backend service names.
const (
	ServiceLedger = "ledger"
	ServiceTxLog  = "txlog"
)

var grpcPorts = map[string]int{
	ServiceLedger: 8081,
	ServiceTxLog:  8082,
}

// GRPCPort returns the listen port a backend uses by default, or 0 when the
// service is unknown.
func GRPCPort(service string) int {
	return grpcPorts[strings.TrimSpace(service)]
}

// GRPCAddr returns "<service>:<port>" for a known backend, or "".
func GRPCAddr(service string) string {
	service = strings.TrimSpace(service)
	port := GRPCPort(service)
	if port == 0 {
		return ""
	}
	return service + ":" + strconv.Itoa(port)
}

// OrDefaultGRPCAddr keeps an explicit address and otherwise falls back to
// the backend's in-network address.
func OrDefaultGRPCAddr(value, service string) string {
	if value = strings.TrimSpace(value); value != "" {
		return value
	}
	return GRPCAddr(service)
}
