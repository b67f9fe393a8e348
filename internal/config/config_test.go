package config

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "info" || cfg.Storage != StorageBadger || cfg.PerftWorkers != 0 || cfg.NoColor {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CHESSRULES_DATA_DIR", "/tmp/chessrules")
	t.Setenv("CHESSRULES_LOG_LEVEL", "debug")
	t.Setenv("CHESSRULES_PERFT_WORKERS", "3")
	t.Setenv("CHESSRULES_STORAGE", "memory")
	t.Setenv("CHESSRULES_NO_COLOR", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Config{
		DataDir:      "/tmp/chessrules",
		LogLevel:     "debug",
		PerftWorkers: 3,
		Storage:      StorageMemory,
		NoColor:      true,
	}
	if cfg != want {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"CHESSRULES_PERFT_WORKERS", "many", "parse env:"},
		{"CHESSRULES_PERFT_WORKERS", "-2", "must not be negative"},
		{"CHESSRULES_STORAGE", "postgres", "want badger, memory or off"},
		{"CHESSRULES_LOG_LEVEL", "loud", "CHESSRULES_LOG_LEVEL"},
	}

	for _, tc := range tests {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, "warn", true)

	log.Info().Msg("hidden")
	log.Warn().Str("id", "g1").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line written at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "id=g1") {
		t.Errorf("warn line missing: %q", out)
	}
}
