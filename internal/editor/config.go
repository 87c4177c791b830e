package editor

import (
	"os"
	"strconv"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvFile         = "POWEREDITOR_FILE"
	EnvDescriptions = "POWEREDITOR_DESCRIPTIONS"
	EnvExportDir    = "POWEREDITOR_EXPORT_DIR"
	EnvHitboxColor  = "POWEREDITOR_HITBOX_COLOR"
	EnvTracing      = "POWEREDITOR_TRACING"
)

// DefaultHitboxColor is used when no valid hitbox color is configured.
const DefaultHitboxColor = "#E03030"

// Config holds editor configuration options.
type Config struct {
	// File is the power table opened at startup. Empty starts with nothing loaded.
	File string
	// Descriptions is a column description JSON file. Empty uses the bundled one.
	Descriptions string
	// ExportDir receives frame PNGs. Empty means the current directory.
	ExportDir string
	// HitboxColor is a hex color for hitboxes in the preview and in exports.
	HitboxColor string
	// Tracing enables span export. When false the editor uses a no-op tracer.
	// It defaults to on when an OTLP endpoint or Honeycomb key is present.
	Tracing bool
}

// ConfigFromEnv reads configuration from the environment.
func ConfigFromEnv() Config {
	cfg := Config{
		File:         os.Getenv(EnvFile),
		Descriptions: os.Getenv(EnvDescriptions),
		ExportDir:    os.Getenv(EnvExportDir),
		HitboxColor:  os.Getenv(EnvHitboxColor),
		Tracing: os.Getenv("HONEYCOMB_POWEREDITOR_API_KEY") != "" ||
			os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "",
	}
	if cfg.HitboxColor == "" {
		cfg.HitboxColor = DefaultHitboxColor
	}
	if v, err := strconv.ParseBool(os.Getenv(EnvTracing)); err == nil {
		cfg.Tracing = v
	}
	return cfg
}
