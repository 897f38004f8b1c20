package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server-config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != constants.DefaultServerAddress {
		t.Fatalf("expected default address, got %q", cfg.Address)
	}
	if cfg.BodySizeBytes() != constants.DefaultMaxBodySizeBytes {
		t.Fatalf("expected default body size, got %d", cfg.BodySizeBytes())
	}
	if cfg.SessionTTLDuration() != constants.DefaultSessionTTL {
		t.Fatalf("expected default session TTL, got %v", cfg.SessionTTLDuration())
	}
	if cfg.HistoryLimit != constants.DefaultHistoryLimit {
		t.Fatalf("expected default history limit, got %d", cfg.HistoryLimit)
	}
	if cfg.Redis.Addr != "" {
		t.Fatalf("expected in-memory history by default, got redis %q", cfg.Redis.Addr)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.BodySizeBytes() <= 0 {
		t.Fatalf("expected positive default body size, got %d", cfg.BodySizeBytes())
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `address: 127.0.0.1:9000
maxBodySize: 1M
sessionTTL: 2h
historyLimit: 5
redis:
  addr: localhost:6379
  db: 3
logging:
  level: debug
  format: console
  outputFile: /tmp/server.log
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != "127.0.0.1:9000" {
		t.Fatalf("expected address override, got %s", cfg.Address)
	}
	if cfg.BodySizeBytes() != 1024*1024 {
		t.Fatalf("expected body size override, got %d", cfg.BodySizeBytes())
	}
	if cfg.SessionTTLDuration() != 2*time.Hour {
		t.Fatalf("expected session TTL override, got %v", cfg.SessionTTLDuration())
	}
	if cfg.HistoryLimit != 5 {
		t.Fatalf("expected history limit override, got %d", cfg.HistoryLimit)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.DB != 3 {
		t.Fatalf("unexpected redis config %+v", cfg.Redis)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" || cfg.Logging.OutputFile != "/tmp/server.log" {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := map[string]string{
		"bad size":     "maxBodySize: invalid",
		"bad ttl":      "sessionTTL: soon",
		"negative ttl": "sessionTTL: -5m",
		"bad yaml":     "address: [unclosed",
	}

	for name, contents := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, contents)); err == nil {
				t.Fatal("expected error but got nil")
			}
		})
	}
}

func TestParseSize(t *testing.T) {
	tests := map[string]int64{
		"":          constants.DefaultMaxBodySizeBytes,
		"1024":      1024,
		"512b":      512,
		"64K":       64 * 1024,
		"1m":        1024 * 1024,
		"3MB":       3 * 1024 * 1024,
		"  4096   ": 4096,
	}

	for input, expected := range tests {
		got, err := ParseSize(input)
		if err != nil {
			t.Fatalf("ParseSize(%q) returned error: %v", input, err)
		}
		if got != expected {
			t.Fatalf("ParseSize(%q) = %d, expected %d", input, got, expected)
		}
	}

	if _, err := ParseSize("1GB"); err == nil {
		t.Fatal("expected error for unsupported unit")
	}
	if _, err := ParseSize("abc"); err == nil {
		t.Fatal("expected error for invalid number")
	}
	if _, err := ParseSize("-5K"); err == nil {
		t.Fatal("expected error for negative size")
	}
}

func TestParseSizeOverflow(t *testing.T) {
	if got, err := ParseSize("9007199254740991K"); err != nil || got != 9223372036854774784 {
		t.Fatalf("ParseSize at the limit = %d, %v", got, err)
	}

	// Each of these wraps past zero when multiplied in int64.
	for _, input := range []string{
		"9007199254740992K",
		"18014398509481985K",
		"17592186044417M",
		"9223372036854775807M",
	} {
		if got, err := ParseSize(input); err == nil {
			t.Errorf("ParseSize(%q) = %d, expected overflow error", input, got)
		}
	}
}
