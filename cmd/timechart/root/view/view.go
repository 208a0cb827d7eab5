package view

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/wandb/timechart/internal/cliutil"
	"github.com/wandb/timechart/internal/dataset"
	"github.com/wandb/timechart/internal/termview"
)

func NewViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <dataset.json>",
		Short: "Explore a dataset in the terminal",
		Long: heredoc.Doc(`
			Show the charts of a dataset in the terminal.

			Drag the chart to pan and hover it to read values. Drag the
			window in the overview strip, or its edges to zoom. Press ? for
			the key bindings.
		`),
		Example: heredoc.Doc(`
			$ timechart view followers.json
			$ timechart view --watch metrics.json # Reload on every write
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cliutil.NewEnv(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			path := args[0]
			charts, err := dataset.Load(env.Fs, path, env.Logger)
			if err != nil {
				env.Logger.CaptureError(err)
				return err
			}

			model, err := termview.New(termview.Params{
				Charts: charts,
				Path:   path,
				Fs:     env.Fs,
				Watch:  cliutil.Flags(cmd).GetBool("watch"),
				Config: env.Config,
				Logger: env.Logger,
			})
			if err != nil {
				env.Logger.CaptureError(err)
				return err
			}
			defer model.Close()

			p := tea.NewProgram(
				model,
				tea.WithAltScreen(),
				tea.WithMouseAllMotion(),
				tea.WithReportFocus(),
				tea.WithContext(cmd.Context()),
			)
			if _, err := p.Run(); err != nil {
				env.Logger.CaptureError(fmt.Errorf("view: %v", err))
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolP("watch", "w", false, "Reload the dataset when the file changes")

	return cmd
}
