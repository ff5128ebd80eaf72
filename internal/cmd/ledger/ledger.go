// Package ledger parses ledger service flags and launches the service.
package ledger

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/txfacade/internal/platform/cmd"
	"github.com/louisbranch/txfacade/internal/platform/discovery"
	server "github.com/louisbranch/txfacade/internal/services/ledger/app"
)

// Config holds ledger command configuration.
type Config struct {
	Port int `env:"LEDGER_PORT" envDefault:"8081"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	err := entrypoint.Load(&cfg, fs, args, func(fs *flag.FlagSet) {
		fs.IntVar(&cfg.Port, "port", cfg.Port, "The ledger gRPC server port")
	})
	if err != nil {
		return Config{}, err
	}
	if cfg.Port <= 0 {
		cfg.Port = discovery.GRPCPort(discovery.ServiceLedger)
	}
	return cfg, nil
}

// Run starts the ledger gRPC service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceLedger, func(ctx context.Context) error {
		return server.Run(ctx, cfg.Port)
	})
}
