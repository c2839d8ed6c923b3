package main

import (
	"fmt"
	"os"
	"time"

	"diesel.com/sph2d/app"
	"diesel.com/sph2d/app/viewer"
	F "diesel.com/sph2d/fluid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type options struct {
	configFile  string
	logLevel    string
	profileMode string
	frames      int
	frameMs     float64
	report      int
	profiler    *app.Profiler
}

func main() {
	if err := execute(&options{}, os.Args[1:]); err != nil {
		logrus.Fatal(err)
	}
}

//execute runs the command line and always flushes the profile, since PostRun is
//skipped when a command fails and logrus.Fatal exits without running deferreds
func execute(opts *options, args []string) error {
	root := rootCommand(opts)
	root.SetArgs(args)
	err := root.Execute()
	opts.profiler.Stop()
	return err
}

func rootCommand(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:           "sph2d",
		Short:         "2D smoothed particle hydrodynamics sandbox",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			opts.profiler.Stop()
		},
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "logrus level (debug logs per stage step timing)")
	root.PersistentFlags().StringVar(&opts.profileMode, "profile", "", "write a cpu or mem profile to the working directory")

	view := &cobra.Command{
		Use:   "view",
		Short: "Open the interactive viewer",
		Long: `Open a window sized to the configured world.

Left mouse pushes particles away from the cursor, right mouse pulls them in.
Space pauses, Enter advances one frame while paused, R resets, Esc quits.
Up and Down change the pressure force strength. D toggles the debug overlay: grid
lines, the sample circle around the cursor, highlighted neighbors, over speed
particles in white, and the cursor density in the title.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			con, err := app.ReadConfig(opts.configFile)
			if err != nil {
				return err
			}
			return viewer.RenderFluidGL(con, logrus.StandardLogger())
		},
	}
	view.Flags().StringVarP(&opts.configFile, "config", "c", "", "INI config file (see example-config)")

	run := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation without a window and log density statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			con, err := app.ReadConfig(opts.configFile)
			if err != nil {
				return err
			}
			sph := F.NewSPHFluid(con.Fluid.Parameters(), logrus.StandardLogger())
			rc := app.RunConfig{
				Frames: opts.frames,
				Frame:  time.Duration(opts.frameMs * float64(time.Millisecond)),
				Report: opts.report,
			}
			_, err = app.RunHeadless(sph, rc, logrus.StandardLogger())
			return err
		},
	}
	run.Flags().StringVarP(&opts.configFile, "config", "c", "", "INI config file (see example-config)")
	run.Flags().IntVar(&opts.frames, "frames", 600, "frames to simulate")
	run.Flags().Float64Var(&opts.frameMs, "frame-ms", 16, "wall clock milliseconds per simulated frame")
	run.Flags().IntVar(&opts.report, "report", 60, "log statistics every n frames (0 for final only)")

	example := &cobra.Command{
		Use:   "example-config",
		Short: "Print an example config file with the default values",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), app.ExampleConfigFile)
		},
	}

	root.AddCommand(view, run, example)
	return root
}

func (opts *options) setup() error {
	level, err := logrus.ParseLevel(opts.logLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetOutput(os.Stderr)

	opts.profiler, err = app.StartProfile(opts.profileMode, ".")
	return err
}
