package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"warehouse-quote/internal/errors"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Catalog.Source != SourceHCL || cfg.Server.Addr != ":8080" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("shutdown timeout = %s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Catalog.StartupRetry != time.Minute || len(cfg.Server.AllowedOrigins) != 0 {
		t.Errorf("startup retry = %s, origins = %v", cfg.Catalog.StartupRetry, cfg.Server.AllowedOrigins)
	}
}

func TestLoadFileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "whquote.yaml")
	body := "catalog:\n  source: postgres\n  dsn: postgres://file\n  refresh_schedule: \"*/5 * * * *\"\nserver:\n  addr: \":9000\"\n  allowed_origins:\n    - https://quotes.example.com\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WHQUOTE_CATALOG_DSN", "postgres://env")
	t.Setenv("WHQUOTE_LOGGING_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Catalog.Source != SourcePostgres || cfg.Catalog.RefreshSchedule != "*/5 * * * *" {
		t.Errorf("file values not applied: %+v", cfg.Catalog)
	}
	if cfg.Catalog.DSN != "postgres://env" {
		t.Errorf("environment should override file, got %q", cfg.Catalog.DSN)
	}
	if cfg.Server.Addr != ":9000" || cfg.Logging.Level != "debug" {
		t.Errorf("unexpected values: addr=%q level=%q", cfg.Server.Addr, cfg.Logging.Level)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "https://quotes.example.com" {
		t.Errorf("allowed origins = %v", cfg.Server.AllowedOrigins)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"postgres without dsn", func(c *Config) { c.Catalog.Source = SourcePostgres }, true},
		{"hcl without path", func(c *Config) { c.Catalog.Path = "" }, true},
		{"unknown source", func(c *Config) { c.Catalog.Source = "csv" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func validSettings() map[string]string {
	return map[string]string{
		KeyOfficeMonthlyRate:       "150",
		KeyMinimumCharge:           "100",
		KeyDaysPerMonth:            "30",
		KeyOfficeFreeAreaThreshold: "0",
	}
}

func TestParseSystemSettings(t *testing.T) {
	s, err := ParseSystemSettings(validSettings())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.MinimumCharge.String() != "100" || s.DaysPerMonth.String() != "30" || !s.VATPercent.IsZero() {
		t.Errorf("unexpected settings: %+v", s)
	}

	raw := validSettings()
	raw[KeyVATPercent] = " 10 "
	s, err = ParseSystemSettings(raw)
	if err != nil || s.VATPercent.String() != "10" {
		t.Errorf("vat = %s, err = %v", s.VATPercent, err)
	}
}

func TestParseSystemSettingsFailsFast(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value *string
	}{
		{"missing minimum charge", KeyMinimumCharge, nil},
		{"missing office rate", KeyOfficeMonthlyRate, nil},
		{"blank threshold", KeyOfficeFreeAreaThreshold, strPtr(" ")},
		{"non numeric days", KeyDaysPerMonth, strPtr("thirty")},
		{"zero days", KeyDaysPerMonth, strPtr("0")},
		{"negative minimum", KeyMinimumCharge, strPtr("-1")},
		{"vat over 100", KeyVATPercent, strPtr("150")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validSettings()
			if tt.value == nil {
				delete(raw, tt.key)
			} else {
				raw[tt.key] = *tt.value
			}

			_, err := ParseSystemSettings(raw)
			if !errors.IsType(err, errors.TypeConfig) {
				t.Fatalf("expected CONFIG_ERROR, got %v", err)
			}
			var e *errors.Error
			if !asError(err, &e) || e.Context["key"] != tt.key {
				t.Errorf("error should name key %q: %v", tt.key, err)
			}
		})
	}
}

func strPtr(s string) *string { return &s }

func asError(err error, target **errors.Error) bool {
	e, ok := err.(*errors.Error)
	if ok {
		*target = e
	}
	return ok
}
