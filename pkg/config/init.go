package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GetDefaultConfig returns a Config struct with all default values applied.
//
// This is useful for:
//   - Generating sample configuration files
//   - Testing
func GetDefaultConfig() *Config {
	cfg := &Config{
		Roots: make(map[string]string),
		Engine: EngineConfig{
			Journal: make(map[string]any),
		},
	}

	ApplyDefaults(cfg)
	return cfg
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// InitConfig writes a commented sample configuration to the default
// location and returns its path. An existing file is only replaced when
// force is true.
func InitConfig(force bool) (string, error) {
	path := GetDefaultConfigPath()
	if err := InitConfigToPath(path, force); err != nil {
		return "", err
	}
	return path, nil
}

// InitConfigToPath writes a commented sample configuration to path,
// creating parent directories as needed.
func InitConfigToPath(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s (use force to overwrite)", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	content := generateYAMLWithComments(GetDefaultConfig())
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// generateYAMLWithComments renders cfg as documented YAML. The output is
// hand-assembled so every setting carries its explanation.
func generateYAMLWithComments(cfg *Config) string {
	var b strings.Builder

	b.WriteString("# filebridge configuration file\n")
	b.WriteString("#\n")
	b.WriteString("# Every setting can also be supplied as an environment variable with the\n")
	b.WriteString("# FILEBRIDGE_ prefix, e.g. FILEBRIDGE_LOGGING_LEVEL=DEBUG.\n\n")

	b.WriteString("logging:\n")
	b.WriteString("  # Minimum level to output: DEBUG, INFO, WARN or ERROR\n")
	fmt.Fprintf(&b, "  level: %q\n", cfg.Logging.Level)
	b.WriteString("  # Output format: text or json\n")
	fmt.Fprintf(&b, "  format: %q\n", cfg.Logging.Format)
	b.WriteString("  # Destination: stdout, stderr or a file path.\n")
	b.WriteString("  # Keep logs off stdout when serving the bridge protocol on it.\n")
	fmt.Fprintf(&b, "  output: %q\n\n", cfg.Logging.Output)

	b.WriteString("server:\n")
	b.WriteString("  # Application name; scopes the detected data and cache roots\n")
	fmt.Fprintf(&b, "  app_name: %q\n", cfg.Server.AppName)
	b.WriteString("  # Maximum time to wait for in-flight requests on shutdown\n")
	fmt.Fprintf(&b, "  shutdown_timeout: %s\n\n", cfg.Server.ShutdownTimeout)

	b.WriteString("# Per-class storage root overrides. Classes left out are detected from\n")
	b.WriteString("# platform directories. Paths must be absolute.\n")
	b.WriteString("roots: {}\n")
	b.WriteString("#  data: /var/lib/filebridge/data\n")
	b.WriteString("#  cache: /var/cache/filebridge\n\n")

	b.WriteString("engine:\n")
	b.WriteString("  # Verify copied content with a checksum comparison\n")
	fmt.Fprintf(&b, "  verify_copies: %v\n", cfg.Engine.VerifyCopies)
	b.WriteString("  # Journal in-flight moves so interrupted transfers are reported on start\n")
	b.WriteString("  journal:\n")
	b.WriteString("    enabled: false\n")
	b.WriteString("#    path: /var/lib/filebridge/journal\n")

	return b.String()
}
