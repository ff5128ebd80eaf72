// Package loadtest drives concurrent transaction submissions against a running
// facade and verifies the resulting balances.
package loadtest

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/txfacade/internal/platform/cmd"
	"github.com/louisbranch/txfacade/internal/platform/id"
)

// Scenario selectors.
const (
	ScenarioDistinct = "distinct"
	ScenarioSame     = "same"
	ScenarioBoth     = "both"
)

// ErrVerificationFailed is returned when any balance check fails.
var ErrVerificationFailed = errors.New("balance verification failed")

// Config holds loadtest command configuration.
type Config struct {
	BaseURL   string        `env:"LOADTEST_BASE_URL"   envDefault:"http://localhost:8080"`
	Clients   int           `env:"LOADTEST_CLIENTS"    envDefault:"10"`
	PerClient int           `env:"LOADTEST_PER_CLIENT" envDefault:"10000"`
	Amount    float64       `env:"LOADTEST_AMOUNT"     envDefault:"1"`
	Timeout   time.Duration `env:"LOADTEST_TIMEOUT"    envDefault:"10s"`
	Scenario  string        `env:"LOADTEST_SCENARIO"   envDefault:"both"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	err := entrypoint.Load(&cfg, fs, args, func(fs *flag.FlagSet) {
		fs.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "facade base URL")
		fs.IntVar(&cfg.Clients, "clients", cfg.Clients, "number of concurrent clients")
		fs.IntVar(&cfg.PerClient, "per-client", cfg.PerClient, "transactions submitted by each client")
		fs.Float64Var(&cfg.Amount, "amount", cfg.Amount, "amount of every transaction")
		fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per-request timeout")
		fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "distinct, same or both")
	})
	if err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Clients <= 0 || c.PerClient <= 0 {
		return errors.New("clients and per-client must be > 0")
	}
	switch c.Scenario {
	case ScenarioDistinct, ScenarioSame, ScenarioBoth:
	default:
		return fmt.Errorf("unknown scenario %q: want distinct, same or both", c.Scenario)
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("base url is required")
	}
	return nil
}

// Run executes the configured scenarios, printing a report for each to out.
// It returns ErrVerificationFailed when any balance disagrees with what was
// submitted.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	client := newFacadeClient(cfg.BaseURL, cfg.Timeout)
	verified := true

	if cfg.Scenario == ScenarioDistinct || cfg.Scenario == ScenarioBoth {
		userIDs := make([]string, cfg.Clients)
		for i := range userIDs {
			suffix, err := shortID()
			if err != nil {
				return err
			}
			userIDs[i] = fmt.Sprintf("distinct-%d-%s", i, suffix)
		}
		result := runScenario(ctx, client, fmt.Sprintf("%d clients x %d to distinct accounts", cfg.Clients, cfg.PerClient), userIDs, cfg.PerClient, cfg.Amount)
		result.Report(out)

		expected := float64(cfg.PerClient) * cfg.Amount
		err := verifyAccounts(ctx, client, userIDs, expected)
		verified = reportVerification(out, "Verification", err) && verified
		err = verifyUsers(ctx, client, userIDs, expected)
		verified = reportVerification(out, "Verification (/user)", err) && verified
	}

	if cfg.Scenario == ScenarioSame || cfg.Scenario == ScenarioBoth {
		suffix, err := shortID()
		if err != nil {
			return err
		}
		shared := "shared-" + suffix
		userIDs := make([]string, cfg.Clients)
		for i := range userIDs {
			userIDs[i] = shared
		}
		result := runScenario(ctx, client, fmt.Sprintf("%d clients x %d to same account", cfg.Clients, cfg.PerClient), userIDs, cfg.PerClient, cfg.Amount)
		result.Report(out)

		expected := float64(cfg.Clients) * float64(cfg.PerClient) * cfg.Amount
		err = verifyUsers(ctx, client, []string{shared}, expected)
		verified = reportVerification(out, "Verification", err) && verified
	}

	if !verified {
		return ErrVerificationFailed
	}
	return nil
}

func reportVerification(out io.Writer, label string, err error) bool {
	if err != nil {
		fmt.Fprintf(out, "%s: FAIL (%v)\n", label, err)
		return false
	}
	fmt.Fprintf(out, "%s: OK (ok)\n", label)
	return true
}

func shortID() (string, error) {
	value, err := id.NewID()
	if err != nil {
		return "", fmt.Errorf("generate user id: %w", err)
	}
	return value[:8], nil
}
