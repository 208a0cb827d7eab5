package cliutil

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables flags fall back to.
const EnvPrefix = "TIMECHART_"

// Flags returns the command's flags as a viper instance.
//
// A flag set on the command line wins, then its environment variable
// (TIMECHART_MINIMAP_HEIGHT for --minimap-height), then the flag's default.
func Flags(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(strings.TrimSuffix(EnvPrefix, "_"))
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// Binding only fails on a nil flag set.
	_ = v.BindPFlags(cmd.Flags())
	return v
}

// GetString returns a string flag with its environment fallback.
func GetString(cmd *cobra.Command, flag string) string {
	return Flags(cmd).GetString(flag)
}
