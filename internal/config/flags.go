package config

import (
	"flag"
	"os"
)

// EnvConfig names the environment variable consulted when --config is unset.
const EnvConfig = "FABRIK_CONFIG"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagSegments   = flag.Int("segments", 0, "Number of chain segments")
	flagLength     = flag.Float64("length", 0, "Length of every segment")
	flagTolerance  = flag.Float64("tolerance", -1, "Solver tolerance")
	flagIterations = flag.Int("iterations", 0, "Maximum solver iterations per tick")
	flagScript     = flag.String("script", "", "Step script to play")
	flagRecord     = flag.String("record", "", "Write solved frames to this file")
	flagTicks      = flag.Int("ticks", 0, "Ticks in a generated sweep")
	flagSaveConfig = flag.String("save-config", "", "Write the merged config to this file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path from --config, falling back to
// $FABRIK_CONFIG.
func ConfigPath() string {
	if *flagConfig != "" {
		return *flagConfig
	}
	return os.Getenv(EnvConfig)
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSegments > 0 {
		cfg.Chain.SegmentCount = *flagSegments
	}
	if *flagLength > 0 {
		cfg.Chain.SegmentLength = *flagLength
	}
	if *flagTolerance >= 0 {
		cfg.Chain.Tolerance = *flagTolerance
	}
	if *flagIterations > 0 {
		cfg.Chain.MaxIterations = *flagIterations
	}
	if *flagScript != "" {
		cfg.Run.Script = *flagScript
	}
	if *flagRecord != "" {
		cfg.Run.Record = *flagRecord
	}
	if *flagTicks > 0 {
		cfg.Run.SweepTicks = *flagTicks
	}
	if *flagSaveConfig != "" {
		cfg.Run.SaveConfig = *flagSaveConfig
	}
}
