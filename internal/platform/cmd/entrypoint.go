// Package cmd holds the startup conventions shared by every txfacade command.
package cmd

import (
	"context"
	"errors"
	"flag"
	"log"
	"strings"
	"time"

	"github.com/louisbranch/txfacade/internal/platform/config"
	"github.com/louisbranch/txfacade/internal/platform/otel"
)

// telemetryFlushTimeout bounds the final span export on exit.
const telemetryFlushTimeout = 5 * time.Second

// Service names used for telemetry resources and NATS client names.
const (
	ServiceFacade = "facade"
	ServiceLedger = "ledger"
	ServiceTxLog  = "txlog"
)

// Load fills cfg from environment variables, lets bind register flags whose
// defaults are the env values, then parses args. Flags win over env.
func Load[T any](cfg *T, fs *flag.FlagSet, args []string, bind func(*flag.FlagSet)) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	if fs == nil {
		return errors.New("flag set is required")
	}
	if err := config.ParseEnv(cfg); err != nil {
		return err
	}
	if bind != nil {
		bind(fs)
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// RunWithTelemetry installs the tracer provider for service, runs run and
// flushes pending spans before returning run's error.
func RunWithTelemetry(ctx context.Context, service string, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	switch {
	case service == "":
		return errors.New("service name is required")
	case run == nil:
		return errors.New("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), telemetryFlushTimeout)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			log.Printf("%s: flush telemetry: %v", service, err)
		}
	}()
	return run(ctx)
}
