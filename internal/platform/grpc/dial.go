// Package grpc holds the gRPC plumbing shared by txfacade services: dialing
// with health checks, the JSON wire codec and unary handler helpers.
package grpc

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// DialStage names the step of a backend dial that failed.
type DialStage string

const (
	// StageConnect means the client connection could not be created.
	StageConnect DialStage = "connect"
	// StageHealth means the backend never reported SERVING.
	StageHealth DialStage = "health"
)

// DialError reports which backend failed to come up and at which stage.
type DialError struct {
	Backend string
	Addr    string
	Stage   DialStage
	Err     error
}

func (e *DialError) Error() string {
	if e == nil {
		return "backend dial failed"
	}
	return fmt.Sprintf("dial %s service at %s: %s: %v", e.Backend, e.Addr, e.Stage, e.Err)
}

func (e *DialError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// newClient is swapped in tests to force connect failures.
var newClient = gogrpc.NewClient

// ClientOptions are the dial options every backend client uses: plaintext
// transport and OTel trace propagation.
func ClientOptions() []gogrpc.DialOption {
	return []gogrpc.DialOption{
		gogrpc.WithTransportCredentials(insecure.NewCredentials()),
		gogrpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}
}

// DefaultServerOptions returns standard options for backend gRPC servers.
func DefaultServerOptions() []gogrpc.ServerOption {
	return []gogrpc.ServerOption{
		gogrpc.StatsHandler(otelgrpc.NewServerHandler()),
	}
}

// DialBackend connects to a named backend and blocks until its health
// service reports SERVING or timeout elapses. Health progress is logged with
// the backend name as prefix. The connection is closed on failure.
func DialBackend(ctx context.Context, name string, addr string, timeout time.Duration, logf func(string, ...any)) (*gogrpc.ClientConn, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	conn, err := newClient(addr, ClientOptions()...)
	if err != nil {
		return nil, &DialError{Backend: name, Addr: addr, Stage: StageConnect, Err: err}
	}
	conn.Connect()

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	var named func(string, ...any)
	if logf != nil {
		named = func(format string, args ...any) {
			logf("%s: %s", name, fmt.Sprintf(format, args...))
		}
	}
	if err := WaitForHealth(ctx, conn, "", named); err != nil {
		_ = conn.Close()
		return nil, &DialError{Backend: name, Addr: addr, Stage: StageHealth, Err: err}
	}
	return conn, nil
}

// NewLazyClient returns a connection that dials on first use instead of
// blocking. Calls fail with Unavailable until the backend is reachable.
func NewLazyClient(addr string) (*gogrpc.ClientConn, error) {
	conn, err := newClient(addr, ClientOptions()...)
	if err != nil {
		return nil, fmt.Errorf("create lazy client for %s: %w", addr, err)
	}
	return conn, nil
}
