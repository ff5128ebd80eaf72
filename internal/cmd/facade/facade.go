// Package facade parses facade command flags and composes its backends.
package facade

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/txfacade/internal/platform/cmd"
	"github.com/louisbranch/txfacade/internal/platform/discovery"
	"github.com/louisbranch/txfacade/internal/platform/timeouts"
	server "github.com/louisbranch/txfacade/internal/services/facade/app"
	"github.com/louisbranch/txfacade/internal/services/facade/events"
)

// Config holds facade command configuration.
type Config struct {
	HTTPAddr       string        `env:"FACADE_HTTP_ADDR"       envDefault:":8080"`
	LedgerAddr     string        `env:"FACADE_LEDGER_ADDR"`
	LogAddr        string        `env:"FACADE_LOG_ADDR"`
	DialTimeout    time.Duration `env:"FACADE_DIAL_TIMEOUT"    envDefault:"2s"`
	BackendTimeout time.Duration `env:"FACADE_BACKEND_TIMEOUT" envDefault:"5s"`
	NATSURL        string        `env:"FACADE_NATS_URL"`
	NATSSubject    string        `env:"FACADE_NATS_SUBJECT"    envDefault:"txfacade.transaction.dispatched"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	err := entrypoint.Load(&cfg, fs, args, func(fs *flag.FlagSet) {
		fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "facade HTTP listen address")
		fs.StringVar(&cfg.LedgerAddr, "ledger-addr", cfg.LedgerAddr, "ledger service gRPC address")
		fs.StringVar(&cfg.LogAddr, "log-addr", cfg.LogAddr, "transaction log service gRPC address")
		fs.DurationVar(&cfg.DialTimeout, "dial-timeout", cfg.DialTimeout, "backend dial and health wait timeout")
		fs.DurationVar(&cfg.BackendTimeout, "backend-timeout", cfg.BackendTimeout, "deadline for each backend call (0 disables)")
		fs.StringVar(&cfg.NATSURL, "nats-url", cfg.NATSURL, "NATS URL for dispatch events (empty disables)")
		fs.StringVar(&cfg.NATSSubject, "nats-subject", cfg.NATSSubject, "NATS subject for dispatch events")
	})
	if err != nil {
		return Config{}, err
	}

	cfg.LedgerAddr = discovery.OrDefaultGRPCAddr(cfg.LedgerAddr, discovery.ServiceLedger)
	cfg.LogAddr = discovery.OrDefaultGRPCAddr(cfg.LogAddr, discovery.ServiceTxLog)
	if cfg.BackendTimeout < 0 {
		return Config{}, fmt.Errorf("backend timeout must not be negative: %s", cfg.BackendTimeout)
	}
	return cfg, nil
}

// Run builds the facade and serves HTTP until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceFacade, func(ctx context.Context) error {
		var publisher events.Publisher
		if strings.TrimSpace(cfg.NATSURL) != "" {
			natsPublisher, cleanup, err := events.ConnectNATS(events.NATSConfig{
				URL:         cfg.NATSURL,
				Subject:     cfg.NATSSubject,
				Name:        entrypoint.ServiceFacade,
				ConnTimeout: timeouts.GRPCDial,
			})
			if err != nil {
				return fmt.Errorf("connect dispatch events: %w", err)
			}
			defer cleanup()
			log.Printf("publishing dispatch events to %s", natsPublisher.Subject())
			publisher = natsPublisher
		}

		if err := server.Run(ctx, server.Config{
			HTTPAddr:        cfg.HTTPAddr,
			LedgerAddr:      cfg.LedgerAddr,
			LogAddr:         cfg.LogAddr,
			GRPCDialTimeout: cfg.DialTimeout,
			BackendTimeout:  cfg.BackendTimeout,
			Events:          publisher,
		}); err != nil {
			return fmt.Errorf("serve facade: %w", err)
		}
		return nil
	})
}
