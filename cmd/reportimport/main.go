// Package main is the entry point for the bundle import tool.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/quarry3d/report/internal/config"
	"github.com/quarry3d/report/internal/ingest"
	"github.com/quarry3d/report/internal/logger"
	"github.com/quarry3d/report/internal/pipeline"
	"github.com/quarry3d/report/internal/watch"
	"github.com/quarry3d/report/pkg/report"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== RePort Importer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	registry, err := report.NewRegistry(report.BuiltinRegistrations()...)
	if err != nil {
		logger.Error("failed to build importer registry", zap.Error(err))
		os.Exit(1)
	}
	logger.Sugar.Infof("Registered exporter identities: %v", registry.Identities())

	p := pipeline.New(registry, ingest.YAMLSource{}, pipeline.Options{
		DetailLevel: cfg.Import.DetailLevel,
		ImportExtra: cfg.Import.ImportExtra,
	})

	if err := runOnce(p, cfg); err != nil {
		logger.Error("import failed", zap.Error(err))
		os.Exit(1)
	}

	if cfg.Watch.Enabled {
		if err := runWatch(p, cfg); err != nil {
			logger.Error("watch failed", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("importer finished")
}

func runOnce(p *pipeline.Pipeline, cfg *config.Config) error {
	results, err := p.RunDir(cfg.Import.BundleDir)
	if err != nil {
		return err
	}

	decoded := 0
	diags := 0
	for _, res := range results {
		decoded += res.Report.PlacementsDecoded + res.Report.LightsDecoded
		diags += len(res.Report.Diags)
	}
	logger.Info("import pass complete",
		zap.Int("files", len(results)),
		zap.Int("decoded", decoded),
		zap.Int("diags", diags))
	return nil
}

func runWatch(p *pipeline.Pipeline, cfg *config.Config) error {
	w, err := watch.New(cfg.Import.BundleDir, cfg.Watch.SettleDelay)
	if err != nil {
		return err
	}
	defer w.Close()

	logger.Info("watching bundle directory",
		zap.String("dir", cfg.Import.BundleDir),
		zap.Duration("settle", cfg.Watch.SettleDelay))

	w.Run(func() {
		if err := runOnce(p, cfg); err != nil {
			logger.Error("re-import failed", zap.Error(err))
		}
	})
	return nil
}
