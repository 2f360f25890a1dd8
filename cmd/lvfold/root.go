package main

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/lvfold/internal/config"
	"github.com/katalvlaran/lvfold/internal/logging"
	"github.com/katalvlaran/lvfold/internal/metrics"
	"github.com/katalvlaran/lvfold/internal/service"
)

// app holds flag values and the components built from them.
type app struct {
	configPath    string
	model         string
	logLevel      string
	logFormat     string
	output        string
	timeout       time.Duration
	maxStructures int
	maxLength     int

	cfg      *config.Config
	log      *zap.Logger
	registry *prometheus.Registry
	folder   *service.Folder
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "lvfold",
		Short: "Fold sequences into optimal non-crossing pairings",
		Long: `lvfold predicts base-pair maximizing secondary structures, lists every
co-optimal structure, counts all admissible structures exactly, extracts a
consensus from several structures and checks inverse-folding designs.

Configuration is read from --config (YAML), then LVFOLD_* environment
variables, then flags.`,
		Version:       version,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = logging.Sync(a.log)
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "path to a YAML config file")
	pf.StringVarP(&a.model, "model", "m", "", "pairing model (basic, wobble, promiscuous)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&a.logFormat, "log-format", "", "log format (console, json)")
	pf.DurationVar(&a.timeout, "timeout", 0, "per-operation deadline, 0 keeps the configured value")
	pf.StringVarP(&a.output, "output", "o", "text", "output format (text, json, yaml)")
	pf.IntVar(&a.maxStructures, "max-structures", 0, "cap on listed optimal structures, 0 keeps the configured value")
	pf.IntVar(&a.maxLength, "max-length", 0, "longest accepted input, 0 keeps the configured value")

	root.AddCommand(
		newFoldCmd(a),
		newCountCmd(a),
		newConsensusCmd(a),
		newPlanarizeCmd(a),
		newDesignCmd(a),
		newModelsCmd(a),
		newServeCmd(a),
	)

	return root
}

// setup loads configuration, applies flag overrides and wires the folder.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("model") {
		cfg.Fold.Model = a.model
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if flags.Changed("timeout") {
		cfg.Fold.Timeout = a.timeout
	}
	if flags.Changed("max-structures") {
		cfg.Fold.MaxStructures = a.maxStructures
	}
	if flags.Changed("max-length") {
		cfg.Fold.MaxLength = a.maxLength
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	switch a.output {
	case outputText, outputJSON, outputYAML:
	default:
		return fmt.Errorf("unknown output format %q", a.output)
	}

	log, err := logging.NewWithWriter(cfg.Log, zapcore.AddSync(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	folder, err := service.New(cfg, metrics.New(reg), log)
	if err != nil {
		return err
	}

	a.cfg, a.log, a.registry, a.folder = cfg, log, reg, folder
	log.Debug("configuration loaded",
		zap.String("model", cfg.Fold.Model),
		zap.Int("max_structures", cfg.Fold.MaxStructures),
		zap.Int("max_length", cfg.Fold.MaxLength),
		zap.Duration("timeout", cfg.Fold.Timeout),
	)

	return nil
}
