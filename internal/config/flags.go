package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagDir    = flag.String("dir", "", "Bundle directory to import from")
	flagWatch  = flag.Bool("watch", false, "Watch the bundle directory and re-import on change")
	flagSettle = flag.Duration("settle", 0, "Quiet period before a changed bundle is processed")
	flagDetail = flag.Int("detail", -2, "Highest mesh detail element to import, -1 for all")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagDir != "" {
		cfg.Import.BundleDir = *flagDir
	}
	if *flagWatch {
		cfg.Watch.Enabled = true
	}
	if *flagSettle > 0 {
		cfg.Watch.SettleDelay = *flagSettle
	}
	if *flagDetail >= -1 {
		cfg.Import.DetailLevel = *flagDetail
	}
}