package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/remixer/internal/analysis"
	"github.com/san-kum/remixer/internal/bus"
	"github.com/san-kum/remixer/internal/config"
	"github.com/san-kum/remixer/internal/remix"
	"github.com/san-kum/remixer/internal/sensor"
	"github.com/spf13/cobra"
)

func newReplayCmd(opts *options) *cobra.Command {
	var (
		plot     bool
		analyze  bool
		realtime bool
	)
	cmd := &cobra.Command{
		Use:   "replay [file]",
		Short: "replay a recorded sensor session headlessly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			cfg.Sensor.Kind = config.SensorReplay
			cfg.Sensor.File = args[0]
			cfg.Sensor.Realtime = realtime

			logger, err := newLogger(cfg, opts, false)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			src, err := sensor.LoadReplay(args[0], realtime)
			if err != nil {
				return err
			}

			rec := bus.NewRecorder()
			sess, err := remix.New(cfg, bus.Multi{rec, bus.NewLogBus(logger)}, logger)
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := sess.Resume(cmd.Context(), src); err != nil {
				return err
			}
			if err := src.Play(cmd.Context()); err != nil {
				return err
			}
			sess.Pause()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "replayed %d samples from %s\n", src.Len(), args[0])
			fmt.Fprintf(out, "  restarts  %d\n", rec.Triggers(cfg.Gesture.RestartTrigger))
			fmt.Fprintf(out, "  speed     %.4f\n", sess.Speed().RealValue())
			fmt.Fprintf(out, "  pitch     %.4f\n", sess.Pitch().RealValue())

			if analyze {
				printAnalysis(cmd, analysis.Summarize(src.Samples()), cfg)
			}

			if plot {
				for _, sc := range []config.SliderConfig{cfg.Sliders.Speed, cfg.Sliders.Pitch} {
					data := rec.Scalars(sc.Param)
					if len(data) < 2 {
						continue
					}
					graph := asciigraph.Plot(data,
						asciigraph.Height(10),
						asciigraph.Width(80),
						asciigraph.Caption(sc.Param),
					)
					fmt.Fprintln(out, graph)
					fmt.Fprintln(out)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&plot, "plot", false, "plot speed and pitch over the replay")
	cmd.Flags().BoolVar(&analyze, "analyze", false, "report sample rates, jumps and shake frequency")
	cmd.Flags().BoolVar(&realtime, "realtime", false, "pace playback by the recorded timestamps")
	return cmd
}

func printAnalysis(cmd *cobra.Command, r analysis.Report, cfg *config.Config) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STREAM\tSAMPLES\tRATE\tMAX JUMP\tMAX TILT\tDOMINANT")
	for _, row := range []struct {
		name string
		r    analysis.StreamReport
	}{{"accel", r.Accel}, {"orient", r.Orient}} {
		fmt.Fprintf(w, "%s\t%d\t%.1fHz\t%.3f\t%.3f\t%.2fHz\n",
			row.name, row.r.Samples, row.r.RateHz, row.r.MaxJump, row.r.MaxTilt, row.r.DominantHz)
	}
	w.Flush()

	if r.Accel.Samples > 1 && r.Accel.MaxJump < cfg.Gesture.ShakeThreshold {
		fmt.Fprintf(cmd.OutOrStdout(), "no jump reaches the shake threshold %g\n", cfg.Gesture.ShakeThreshold)
	}
}
