package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stackmap/internal/config"
	"stackmap/internal/logging"
)

var version = "0.1.0"

// app carries what every command needs once flags are parsed
type app struct {
	configPath string
	logLevel   string

	cfg     *config.Config
	cfgPath string
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "stackmap",
		Short: "Interactive diagram of a retail system stack",
		Long: Brand.Sprint("stackmap") + " shows how the systems of a retail business integrate\n" +
			Subtle.Sprint("Serve the diagram, or export, import and reset layouts from the shell"),
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.SetVersionTemplate("stackmap {{ .Version }}\n")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default: search "+config.EnvConfigPath+", ./stackmap.yaml, ~/.config/stackmap)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Override log level (debug, info, warn, error)")

	root.AddCommand(
		a.serveCmd(),
		a.exportCmd(),
		a.importCmd(),
		a.resetCmd(),
		a.payloadCmd(),
		a.scenariosCmd(),
		a.catalogCmd(),
	)

	return root
}

func (a *app) setup() error {
	cfg, path, err := config.LoadExplicit(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.cfgPath = path
	a.logger = logger
	return nil
}
