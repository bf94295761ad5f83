package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/at-ishikawa/diarium2journey/internal/config"
	"github.com/at-ishikawa/diarium2journey/internal/diarium"
)

// loadConfig loads the configuration file, then applies flags and key=value
// parameters on top of it.
func loadConfig(flags *pflag.FlagSet, params []string) (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	if flags != nil {
		if err := loader.BindFlags(flags); err != nil {
			return nil, err
		}
	}
	for _, key := range loader.ApplyParameters(params) {
		slog.Warn("Unsupported parameter", "key", key)
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Debug && !debugMode {
		setupLogger(true)
	}
	return cfg, nil
}

// loadLabels resolves the configured language. It fails before any export
// folder is touched when the language is not in the localization table.
func loadLabels(cfg *config.Config) (diarium.Labels, error) {
	localization, err := diarium.LoadLocalization(cfg.LocalizationFile)
	if err != nil {
		return diarium.Labels{}, fmt.Errorf("diarium.LoadLocalization() > %w", err)
	}
	labels, err := localization.Lookup(cfg.Language)
	if err != nil {
		return diarium.Labels{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return labels, nil
}
