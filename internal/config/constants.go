package config

import "flipwatch/internal/units"

const (
	// DefaultDelay applies when neither the flags nor the config file set a delay.
	DefaultDelay = units.DefaultDelay

	// EnvConfigFile names the YAML config file when --config is absent.
	EnvConfigFile = "FLIPWATCH_CONFIG"
)
