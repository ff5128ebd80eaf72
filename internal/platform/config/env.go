package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every environment variable read by txfacade commands.
const EnvPrefix = "TXFACADE_"

// ParseEnv loads configuration from environment variables.
//
// Struct tags carry unprefixed names; EnvPrefix is applied to each of them, so
// `env:"LEDGER_PORT"` is read from TXFACADE_LEDGER_PORT.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
