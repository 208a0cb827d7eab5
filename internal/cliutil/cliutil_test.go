package cliutil_test

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/timechart/internal/cliutil"
)

func TestParseOverrides(t *testing.T) {
	got, err := cliutil.ParseOverrides([]string{
		"springs.zoom_ratio=0.01",
		"springs.lower_border=0.02",
		"night=true",
		"frame_interval=20ms",
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"springs": map[string]any{
			"zoom_ratio":   0.01,
			"lower_border": 0.02,
		},
		"night":          true,
		"frame_interval": "20ms",
	}, got)
}

func TestParseOverrides_Errors(t *testing.T) {
	for _, pairs := range [][]string{
		{"no-equals"},
		{"=1"},
		{"a..b=1"},
		{"a=1", "a.b=2"},
	} {
		_, err := cliutil.ParseOverrides(pairs)
		assert.Error(t, err, "%v", pairs)
	}
}

func newCmd(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cliutil.AddOutputFlags(cmd)
	cmd.SetOut(out)
	return cmd
}

func TestHandleOutput_Formats(t *testing.T) {
	result := map[string]any{"version": "1.2.3"}

	var out bytes.Buffer
	cmd := newCmd(&out)
	require.NoError(t, cliutil.HandleOutput(cmd, result))
	assert.JSONEq(t, `{"version": "1.2.3"}`, out.String())

	out.Reset()
	require.NoError(t, cmd.Flags().Set("format", "yaml"))
	require.NoError(t, cliutil.HandleOutput(cmd, result))
	assert.Equal(t, "version: 1.2.3\n\n", out.String())

	out.Reset()
	require.NoError(t, cmd.Flags().Set("template", "v{{.version}}"))
	require.NoError(t, cliutil.HandleOutput(cmd, result))
	assert.Equal(t, "v1.2.3\n", out.String())
}

func TestHandleOutput_UnknownFormat(t *testing.T) {
	var out bytes.Buffer
	cmd := newCmd(&out)
	require.NoError(t, cmd.Flags().Set("format", "xml"))
	assert.Error(t, cliutil.HandleOutput(cmd, 1))
}

func TestGetString_FallsBackToEnv(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("output-dir", "snapshots", "")

	assert.Equal(t, "snapshots", cliutil.GetString(cmd, "output-dir"))

	t.Setenv("TIMECHART_OUTPUT_DIR", "/tmp/out")
	assert.Equal(t, "/tmp/out", cliutil.GetString(cmd, "output-dir"))

	require.NoError(t, cmd.Flags().Set("output-dir", "here"))
	assert.Equal(t, "here", cliutil.GetString(cmd, "output-dir"))
}

func TestFlags_TypedEnvFallback(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Int("minimap-height", 80, "")
	cmd.Flags().Float64("start", 0, "")
	cmd.Flags().Bool("night", false, "")

	flags := cliutil.Flags(cmd)
	assert.Equal(t, 80, flags.GetInt("minimap-height"))
	assert.False(t, flags.IsSet("start"))

	t.Setenv("TIMECHART_MINIMAP_HEIGHT", "40")
	t.Setenv("TIMECHART_START", "0.25")
	t.Setenv("TIMECHART_NIGHT", "true")
	flags = cliutil.Flags(cmd)
	assert.Equal(t, 40, flags.GetInt("minimap-height"))
	assert.Equal(t, 0.25, flags.GetFloat64("start"))
	assert.True(t, flags.IsSet("start"))
	assert.True(t, flags.GetBool("night"))

	require.NoError(t, cmd.Flags().Set("minimap-height", "60"))
	assert.Equal(t, 60, cliutil.Flags(cmd).GetInt("minimap-height"))
}
