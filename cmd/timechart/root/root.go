package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/wandb/timechart/cmd/timechart/root/snapshot"
	"github.com/wandb/timechart/cmd/timechart/root/version"
	"github.com/wandb/timechart/cmd/timechart/root/view"
	"github.com/wandb/timechart/internal/cliutil"
)

// NewRootCmd creates the timechart command and its subcommands.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timechart <command>",
		Short: "Animated time series charts",
		Long: heredoc.Doc(`
			Explore time series datasets with an animated line chart and an
			overview strip, in the terminal or as rendered images.

			A dataset is a JSON array of charts. Each chart has columns whose
			first element is the column id, a types map that marks the "x"
			column as the timeline and the others as "line", and optional
			names and colors maps.
		`),
		Example: heredoc.Doc(`
			$ timechart view followers.json
			$ timechart view --watch --set night=true followers.json
			$ timechart snapshot -o out/ --start 0.5 --end 1 followers.json
		`),
		SilenceUsage: true,
	}

	cliutil.AddRuntimeFlags(cmd)

	cmd.AddCommand(view.NewViewCmd())
	cmd.AddCommand(snapshot.NewSnapshotCmd())
	cmd.AddCommand(version.NewVersionCmd())

	return cmd
}
