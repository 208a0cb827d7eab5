package version

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/wandb/timechart/internal/cliutil"
)

// NewVersionCmd creates a new command that displays version information
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  `Display the version, git commit, and build date of timechart.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cliutil.HandleOutput(cmd, map[string]any{
				"version":   cliutil.Version,
				"gitCommit": cliutil.GitCommit,
				"buildDate": cliutil.BuildDate,
				"goVersion": runtime.Version(),
			})
		},
	}

	cliutil.AddOutputFlags(cmd)

	return cmd
}
