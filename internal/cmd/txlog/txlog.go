// Package txlog parses transaction log service flags and launches the service.
package txlog

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/txfacade/internal/platform/cmd"
	"github.com/louisbranch/txfacade/internal/platform/discovery"
	server "github.com/louisbranch/txfacade/internal/services/txlog/app"
)

// Config holds txlog command configuration.
type Config struct {
	Port int `env:"TXLOG_PORT" envDefault:"8082"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	err := entrypoint.Load(&cfg, fs, args, func(fs *flag.FlagSet) {
		fs.IntVar(&cfg.Port, "port", cfg.Port, "The transaction log gRPC server port")
	})
	if err != nil {
		return Config{}, err
	}
	if cfg.Port <= 0 {
		cfg.Port = discovery.GRPCPort(discovery.ServiceTxLog)
	}
	return cfg, nil
}

// Run starts the transaction log gRPC service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceTxLog, func(ctx context.Context) error {
		return server.Run(ctx, cfg.Port)
	})
}
