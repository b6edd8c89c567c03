package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

func TestValidate_DefaultConfigIsValid(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Fatalf("Default config should validate: %v", err)
	}
}

func TestValidate_RejectsBadLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "SHOUT"

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected error for invalid log level")
	}
}

func TestValidate_RejectsBadLogFormat(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Format = "xml"

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected error for invalid log format")
	}
}

func TestValidate_RejectsZeroShutdownTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.Server.ShutdownTimeout = 0

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected error for zero shutdown timeout")
	}
}

func TestValidate_RootOverrides(t *testing.T) {
	t.Run("AcceptsKnownClassAbsolutePath", func(t *testing.T) {
		cfg := validConfig()
		cfg.Roots = map[string]string{"data": "/var/lib/app/data"}

		if err := Validate(cfg); err != nil {
			t.Fatalf("Expected valid override to pass: %v", err)
		}
	})

	t.Run("RejectsUnknownClass", func(t *testing.T) {
		cfg := validConfig()
		cfg.Roots = map[string]string{"downloads": "/srv/downloads"}

		err := Validate(cfg)
		if err == nil {
			t.Fatal("Expected error for unknown storage class")
		}
		if !strings.Contains(err.Error(), "unknown storage class") {
			t.Errorf("Unexpected error: %v", err)
		}
	})

	t.Run("RejectsRelativePath", func(t *testing.T) {
		cfg := validConfig()
		cfg.Roots = map[string]string{"cache": "relative/cache"}

		err := Validate(cfg)
		if err == nil {
			t.Fatal("Expected error for relative path")
		}
		if !strings.Contains(err.Error(), "not absolute") {
			t.Errorf("Unexpected error: %v", err)
		}
	})
}

func TestValidate_Journal(t *testing.T) {
	t.Run("EnabledRequiresPath", func(t *testing.T) {
		cfg := validConfig()
		cfg.Engine.Journal = map[string]any{"enabled": true}

		err := Validate(cfg)
		if err == nil {
			t.Fatal("Expected error for enabled journal without path")
		}
		if !strings.Contains(err.Error(), "path is empty") {
			t.Errorf("Unexpected error: %v", err)
		}
	})

	t.Run("EnabledWithPathIsValid", func(t *testing.T) {
		cfg := validConfig()
		cfg.Engine.Journal = map[string]any{"enabled": true, "path": "/var/lib/app/journal"}

		if err := Validate(cfg); err != nil {
			t.Fatalf("Expected valid journal config to pass: %v", err)
		}
	})

	t.Run("DisabledNeedsNoPath", func(t *testing.T) {
		cfg := validConfig()
		cfg.Engine.Journal = map[string]any{"enabled": false}

		if err := Validate(cfg); err != nil {
			t.Fatalf("Expected disabled journal to pass: %v", err)
		}
	})
}
