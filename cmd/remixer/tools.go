package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/san-kum/remixer/internal/config"
	"github.com/san-kum/remixer/internal/control"
	"github.com/spf13/cobra"
)

func newMapCmd() *cobra.Command {
	var (
		min, max float64
		log      bool
		reverse  bool
	)
	cmd := &cobra.Command{
		Use:   "map [value]",
		Short: "show the slider position for a value, or the value for a position with --reverse",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := control.New(control.NewSlider(), min, min, max, log)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if reverse {
				pos, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("position must be an integer: %w", err)
				}
				b.Drag(pos)
				fmt.Fprintf(out, "%d -> %g\n", b.Position(), b.RealValue())
				return nil
			}
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("value must be a number: %w", err)
			}
			b.SetRealValue(v)
			fmt.Fprintf(out, "%g -> %d\n", v, b.Position())
			return nil
		},
	}
	cmd.Flags().Float64Var(&min, "min", config.DefaultSliderMin, "range minimum")
	cmd.Flags().Float64Var(&max, "max", config.DefaultSliderMax, "range maximum")
	cmd.Flags().BoolVar(&log, "log", true, "logarithmic scale")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "map a position back to a value")
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSPEED\tPITCH\tTILT\tSHAKE")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%g\n",
					name,
					cfg.Sliders.Speed.Domain(),
					cfg.Sliders.Pitch.Domain(),
					cfg.Gesture.TiltScale,
					cfg.Gesture.ShakeThreshold,
				)
			}
			return w.Flush()
		},
	}
}

func newInitConfigCmd(opts *options) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a default configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}

			cfg := config.DefaultConfig()
			if opts.preset != "" && !config.ApplyPreset(cfg, opts.preset) {
				return fmt.Errorf("unknown preset: %s (available: %v)", opts.preset, config.ListPresets())
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
