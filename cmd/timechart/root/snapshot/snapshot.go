package snapshot

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/wandb/timechart/internal/cliutil"
	"github.com/wandb/timechart/internal/dataset"
	"github.com/wandb/timechart/internal/snapshot"
)

func NewSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot <dataset.json>",
		Short: "Render the charts of a dataset to PNG images",
		Long: heredoc.Doc(`
			Render each chart of a dataset to a PNG image once every
			animation has settled, and print the written files.
		`),
		Example: heredoc.Doc(`
			$ timechart snapshot followers.json
			$ timechart snapshot -o out/ --chart 2 --select 40 followers.json
			$ timechart snapshot --hide y1 --format yaml followers.json
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cliutil.NewEnv(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			charts, err := dataset.Load(env.Fs, args[0], env.Logger)
			if err != nil {
				env.Logger.CaptureError(err)
				return err
			}
			flags := cliutil.Flags(cmd)
			if n := flags.GetInt("chart"); n > 0 {
				if n > len(charts) {
					return fmt.Errorf("snapshot: chart %d out of range, dataset has %d", n, len(charts))
				}
				charts = charts[n-1 : n]
			}

			opts := snapshot.DefaultOptions()
			opts.Width = flags.GetInt("width")
			opts.Height = flags.GetInt("height")
			opts.MinimapHeight = flags.GetInt("minimap-height")
			opts.Params = env.Config.ChartParams()
			opts.FrameInterval = env.Config.FrameInterval()
			opts.Night = flags.GetBool("night")
			if n := env.Config.Config().Night; n != nil && !flags.IsSet("night") {
				opts.Night = *n
			}
			if flags.IsSet("start") || flags.IsSet("end") {
				r := opts.Params.InitialViewport
				if flags.IsSet("start") {
					r.Start = flags.GetFloat64("start")
				}
				if flags.IsSet("end") {
					r.End = flags.GetFloat64("end")
				}
				if !r.Valid() {
					return fmt.Errorf("snapshot: invalid range %v", r)
				}
				opts.Viewport = &r
			}
			opts.Hidden, _ = cmd.Flags().GetStringSlice("hide")
			opts.Select = flags.GetInt("select")

			paths, err := snapshot.RenderAll(cmd.Context(), env.Fs, flags.GetString("output-dir"), charts, opts, env.Logger)
			if err != nil {
				env.Logger.CaptureError(err)
				return err
			}

			return cliutil.HandleOutput(cmd, map[string]any{"files": paths})
		},
	}

	cmd.Flags().StringP("output-dir", "o", "snapshots", "Directory to write images to")
	cmd.Flags().Int("width", 1000, "Chart width in pixels")
	cmd.Flags().Int("height", 500, "Chart height in pixels")
	cmd.Flags().Int("minimap-height", 80, "Overview strip height in pixels")
	cmd.Flags().Float64("start", 0, "Start of the visible range, as a fraction of the timeline")
	cmd.Flags().Float64("end", 1, "End of the visible range, as a fraction of the timeline")
	cmd.Flags().Bool("night", false, "Use the dark palette")
	cmd.Flags().StringSlice("hide", nil, "Ids of series to hide")
	cmd.Flags().Int("select", -1, "Timeline index to show a tooltip for")
	cmd.Flags().Int("chart", 0, "Render only this chart, counting from 1")
	cliutil.AddOutputFlags(cmd)

	return cmd
}
