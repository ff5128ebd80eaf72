package txlog

import (
	"flag"
	"testing"
)

func TestParseConfig(t *testing.T) {
	fs := flag.NewFlagSet("txlog", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 8082 {
		t.Fatalf("port = %d, want 8082", cfg.Port)
	}

	t.Setenv("TXFACADE_TXLOG_PORT", "9100")
	fs = flag.NewFlagSet("txlog", flag.ContinueOnError)
	cfg, err = ParseConfig(fs, []string{"-port", "9101"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 9101 {
		t.Fatalf("port = %d, want flag override 9101", cfg.Port)
	}
}

func TestParseConfigNonPositivePortFallsBack(t *testing.T) {
	fs := flag.NewFlagSet("txlog", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-port", "0"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 8082 {
		t.Fatalf("port = %d, want 8082", cfg.Port)
	}
}
