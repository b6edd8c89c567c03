package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/marmos91/filebridge/pkg/entry/local"
	"github.com/marmos91/filebridge/pkg/entry/roots"
	"github.com/marmos91/filebridge/pkg/journal"
)

// BuildRoots creates the storage-root table from configuration.
//
// Roots are detected from platform directory queries, then any per-class
// overrides from the configuration replace the detected bindings. Classes
// without an override keep their detected path.
func BuildRoots(cfg *Config) (*roots.Table, error) {
	detected, err := roots.DetectTable(cfg.Server.AppName)
	if err != nil {
		return nil, fmt.Errorf("failed to detect storage roots: %w", err)
	}

	if len(cfg.Roots) == 0 {
		return detected, nil
	}

	paths := make(map[roots.Class]string, len(roots.Classes))
	for _, root := range detected.All() {
		paths[root.Class] = root.Path
	}
	for class, path := range cfg.Roots {
		paths[roots.Class(class)] = path
	}

	table, err := roots.NewTable(paths)
	if err != nil {
		return nil, fmt.Errorf("failed to apply root overrides: %w", err)
	}
	return table, nil
}

// BuildEngine creates the entry operations engine from configuration.
//
// The returned journal is nil when journaling is disabled; when non-nil
// the caller owns it and must close it on shutdown.
func BuildEngine(cfg *Config) (*local.Engine, *journal.Journal, error) {
	var opts []local.Option

	if cfg.Engine.VerifyCopies {
		opts = append(opts, local.WithCopyVerification())
	}

	jnl, err := BuildJournal(cfg)
	if err != nil {
		return nil, nil, err
	}
	if jnl != nil {
		opts = append(opts, local.WithJournal(jnl))
	}

	return local.NewEngine(opts...), jnl, nil
}

// BuildJournal creates the transfer journal when enabled, or returns nil.
func BuildJournal(cfg *Config) (*journal.Journal, error) {
	// Define the configuration struct for the journal
	type JournalConfig struct {
		Enabled bool   `mapstructure:"enabled"`
		Path    string `mapstructure:"path"`
	}

	// Decode the options into the config struct
	var jnlCfg JournalConfig
	if err := mapstructure.Decode(cfg.Engine.Journal, &jnlCfg); err != nil {
		return nil, fmt.Errorf("failed to decode journal config: %w", err)
	}

	if !jnlCfg.Enabled {
		return nil, nil
	}

	jnl, err := journal.Open(jnlCfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transfer journal: %w", err)
	}
	return jnl, nil
}
