package cli

import (
	"fmt"
	"os"

	"Finsight/internal/chart"
	"Finsight/internal/config"
	"Finsight/internal/dataset"
	"Finsight/internal/logging"
	"Finsight/internal/tools"

	"go.uber.org/zap"
)

// app is what every analysis command needs: the effective configuration,
// a logger, the loaded table and the tools bound to it.
type app struct {
	cfg      *config.Config
	log      *logging.Logger
	frame    *dataset.Frame
	analyze  *tools.AnalyzeTool
	chart    *tools.ChartTool
	registry *tools.Registry
}

// loadConfig layers ./.env, the config files, the environment and the
// persistent flags.
func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}

	globalPath, err := config.GlobalPath()
	if err != nil {
		return nil, err
	}
	localPath, err := config.LocalPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(globalPath, localPath, cfgFile)
	if err != nil {
		return nil, err
	}

	if rootDir != "" {
		cfg.Root = rootDir
	}
	if dataPath != "" {
		cfg.DataPath = dataPath
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	cfg.Resolve()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   enableLogging,
	})
	if err != nil {
		return nil, err
	}
	if path := log.FilePath(); path != "" {
		fmt.Fprintf(os.Stderr, "📝 Logging session to: %s\n", path)
	}

	frame := dataset.Load(cfg.DataPath, log.Logger)
	analyze := tools.NewAnalyzeTool(frame)
	chartTool := tools.NewChartTool(frame, chart.NewRenderer(cfg.OutputDir))
	registry := tools.NewRegistry(log.Logger, analyze, chartTool)
	log.Debug("tools registered", zap.Strings("tools", registry.Names()))

	return &app{
		cfg:      cfg,
		log:      log,
		frame:    frame,
		analyze:  analyze,
		chart:    chartTool,
		registry: registry,
	}, nil
}

func (a *app) Close() {
	_ = a.log.Close()
}
