package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/san-kum/remixer/internal/config"
	"github.com/san-kum/remixer/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	configFile string
	preset     string
	source     string
	replayFile string
	listen     string
	busKind    string
	broker     string
	record     string
	headless   bool
	logFile    string
	verbose    bool
	watch      bool
}

// main is the entry point for the remixer CLI. With no subcommand it runs
// the interactive slider session.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "remixer",
		Short:        "shake and tilt to remix playback speed and pitch",
		SilenceUsage: true,
		RunE:         func(cmd *cobra.Command, args []string) error { return runSession(cmd, opts) },
	}
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run an interactive session",
		Args:  cobra.NoArgs,
		RunE:  func(cmd *cobra.Command, args []string) error { return runSession(cmd, opts) },
	}
	for _, c := range []*cobra.Command{rootCmd, runCmd} {
		f := c.Flags()
		f.StringVar(&opts.source, "source", "", "sensor source: mock, replay, websocket or mqtt")
		f.StringVar(&opts.replayFile, "replay-file", "", "recorded session to replay (csv or yaml)")
		f.StringVar(&opts.listen, "listen", "", "websocket listen address")
		f.StringVar(&opts.busKind, "bus", "", "parameter bus: log or mqtt")
		f.StringVar(&opts.broker, "broker", "", "mqtt broker url")
		f.StringVar(&opts.record, "record", "", "record sensor samples to a csv file")
		f.BoolVar(&opts.headless, "headless", false, "run without the terminal UI")
		f.StringVar(&opts.logFile, "log-file", "remixer.log", "log file used while the terminal UI is active")
		f.BoolVar(&opts.watch, "watch", false, "reload --config when it changes")
	}

	rootCmd.AddCommand(runCmd, newReplayCmd(opts), newMapCmd(), newPresetsCmd(), newInitConfigCmd(opts))
	return rootCmd
}

// loadConfig layers the defaults, --preset, --config and the command line.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := presetConfig(opts)
	if err != nil {
		return nil, err
	}

	if opts.configFile != "" {
		loaded, err := config.LoadOnto(opts.configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	return applyFlags(cmd, opts, cfg)
}

// presetConfig returns the defaults with --preset applied.
func presetConfig(opts *options) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.preset != "" && !config.ApplyPreset(cfg, opts.preset) {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", opts.preset, config.ListPresets())
	}
	return cfg, nil
}

// applyFlags overrides cfg with the flags set on the command line.
func applyFlags(cmd *cobra.Command, opts *options, cfg *config.Config) (*config.Config, error) {
	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Sensor.Kind = opts.source
	}
	if flags.Changed("replay-file") {
		cfg.Sensor.File = opts.replayFile
		if !flags.Changed("source") {
			cfg.Sensor.Kind = config.SensorReplay
		}
	}
	if flags.Changed("listen") {
		cfg.Sensor.Listen = opts.listen
	}
	if flags.Changed("bus") {
		cfg.Bus.Kind = opts.busKind
	}
	if flags.Changed("broker") {
		cfg.Bus.Broker = opts.broker
	}
	if flags.Changed("record") {
		cfg.Sensor.Record = opts.record
	}
	if opts.verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, opts *options, toFile bool) (*zap.Logger, error) {
	if toFile {
		return logging.ToFile(cfg.LogLevel, opts.logFile)
	}
	return logging.New(cfg.LogLevel, opts.verbose)
}
