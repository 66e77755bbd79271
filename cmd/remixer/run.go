package main

import (
	"context"
	"fmt"

	"github.com/san-kum/remixer/internal/config"
	"github.com/san-kum/remixer/internal/remix"
	"github.com/san-kum/remixer/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runSession(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, opts, !opts.headless)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	b, releaseBus, err := remix.OpenBus(cfg, logger)
	if err != nil {
		return err
	}
	defer releaseBus()

	in, err := remix.OpenInput(cfg, logger)
	if err != nil {
		return err
	}
	defer in.Close()

	sess, err := remix.New(cfg, b, logger)
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	resume := func() error { return sess.Resume(ctx, in.Source) }
	if err := resume(); err != nil {
		return err
	}
	logger.Info("session started",
		zap.String("session", sess.ID()),
		zap.String("source", in.Kind),
		zap.String("bus", cfg.Bus.Kind))

	inputDone := make(chan error, 1)
	go func() { inputDone <- in.Run(ctx) }()

	if opts.watch && opts.configFile != "" {
		base := func() *config.Config {
			// The preset was validated by loadConfig.
			cfg, _ := presetConfig(opts)
			return cfg
		}
		go func() {
			err := config.WatchDebounced(ctx, opts.configFile, config.DefaultWatchDebounce, base, func(c *config.Config, err error) {
				if err == nil {
					c, err = applyFlags(cmd, opts, c)
				}
				if err != nil {
					logger.Warn("config reload failed", zap.Error(err))
					return
				}
				if err := sess.ApplyConfig(c); err != nil {
					logger.Warn("config reload rejected", zap.Error(err))
				}
			})
			if err != nil {
				logger.Warn("config watch stopped", zap.Error(err))
			}
		}()
	}

	if opts.headless {
		select {
		case <-ctx.Done():
		case err := <-inputDone:
			if err != nil {
				return err
			}
		}
		printSummary(cmd, sess)
		return nil
	}

	uiErr := tui.Run(ctx, sess, resume, logger)
	cancel()
	if err := <-inputDone; err != nil {
		logger.Warn("sensor input stopped", zap.Error(err))
	}
	return uiErr
}

func printSummary(cmd *cobra.Command, sess *remix.Session) {
	out := cmd.OutOrStdout()
	st := sess.Stats()
	fmt.Fprintf(out, "session %s\n", sess.ID())
	fmt.Fprintf(out, "  speed     %.4f\n", sess.Speed().RealValue())
	fmt.Fprintf(out, "  pitch     %.4f\n", sess.Pitch().RealValue())
	fmt.Fprintf(out, "  restarts  %d\n", st.Triggers)
	fmt.Fprintf(out, "  shakes    %d (%d debounced)\n", st.ShakesDetected, st.ShakesSuppressed)
	fmt.Fprintf(out, "  samples   accel=%d orient=%d\n", st.AccelSamples, st.OrientSamples)
	if st.AccelSamples+st.OrientSamples == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: no sensor samples were received")
	}
}
