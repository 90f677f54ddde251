package run

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	cmdpkg "github.com/pidbase/pidctl/internal/cmd"
	"github.com/pidbase/pidctl/internal/cmd/common"
	"github.com/pidbase/pidctl/internal/config"
	"github.com/pidbase/pidctl/internal/iostreams"
	"github.com/pidbase/pidctl/internal/output"
	cmdtest "github.com/pidbase/pidctl/test/cmd"
	configtest "github.com/pidbase/pidctl/test/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRunHelper(t *testing.T, args []string, cfg config.Hook) (*cmdtest.MockHelper, *cobra.Command) {
	t.Helper()

	c := NewRunCmd()
	streams := iostreams.NewTestIOStreamsOnly()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	helper := &cmdtest.MockHelper{
		GetCmdMock:     func() *cobra.Command { return c },
		GetArgsMock:    func() []string { return args },
		GetStreamsMock: func() *iostreams.IOStreams { return &streams },
		GetConfigMock:  func() (config.Hook, error) { return cfg, nil },
		GetOutputMock: func() (*output.Output, error) {
			return output.New(output.NewStreamSink(io.Discard, output.Quiet)), nil
		},
		GetLoggerMock: func() (*slog.Logger, error) { return logger, nil },
	}
	return helper, c
}

func runConfig(pidDir string) *configtest.MockConfigHook {
	return &configtest.MockConfigHook{
		GetStringMock: func(key string) string {
			switch key {
			case common.PidDirConfigPath:
				return pidDir
			case common.PidPrefixConfigPath:
				return "job_"
			}
			return ""
		},
		GetIntMock: func(key string) int {
			if key == CountConfigPath {
				return 1
			}
			return 0
		},
		GetMock: func(key string) any {
			if key == IntervalConfigPath {
				return 10 * time.Millisecond
			}
			return nil
		},
	}
}

func TestValidateRequiresCommand(t *testing.T) {
	helper, _ := newRunHelper(t, nil, nil)

	err := validate(helper)
	require.Error(t, err)

	_, ok := err.(*cmdpkg.ConfigurationError)
	assert.True(t, ok, "expected a configuration error, got %T", err)
}

func TestRunRegistersPidFileAndRunsOnce(t *testing.T) {
	pidDir := filepath.Join(t.TempDir(), "pids")
	helper, _ := newRunHelper(t, []string{"true"}, runConfig(pidDir))

	require.NoError(t, run(helper))

	entries, err := os.ReadDir(pidDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	name := entries[0].Name()
	assert.Regexp(t, `^job_pid_[1-9][0-9]*\.pid$`, name)

	content, err := os.ReadFile(filepath.Join(pidDir, name))
	require.NoError(t, err)
	assert.Equal(t, "job_"+string(content)+".pid", name,
		"file content must be the token embedded in the file name")
}

func TestRunSkipsPidFileWhenDisabled(t *testing.T) {
	pidDir := filepath.Join(t.TempDir(), "pids")
	helper, c := newRunHelper(t, []string{"true"}, runConfig(pidDir))
	require.NoError(t, c.Flags().Set(NoPidFileFlagName, "true"))

	require.NoError(t, run(helper))

	_, err := os.Stat(pidDir)
	assert.True(t, os.IsNotExist(err), "no pid directory should be created")
}

func TestRunFailureSurfacesDiagnostics(t *testing.T) {
	// A regular file where the pid directory should be makes creation fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o666))

	helper, _ := newRunHelper(t, []string{"true"}, runConfig(blocker))

	// Capture the console surface to observe the fixed diagnostic sequence.
	var console bytes.Buffer
	helper.GetOutputMock = func() (*output.Output, error) {
		return output.New(output.NewStreamSink(&console, output.Normal)), nil
	}

	err := run(helper)
	require.Error(t, err)

	_, ok := err.(*cmdpkg.ExecutionError)
	assert.True(t, ok, "expected an execution error, got %T", err)

	// The three diagnostic lines have a fixed wording and a fixed order.
	got := console.String()
	first := strings.Index(got, "Unable to create pid file ")
	second := strings.Index(got, "Please be sure pid file can be created in this location.")
	third := strings.Index(got, "Command stopped!")
	require.GreaterOrEqual(t, first, 0, "missing creation failure line in %q", got)
	require.Greater(t, second, first, "permission hint must follow the failure line")
	require.Greater(t, third, second, "stop notice must come last")
}

func TestRunFailingChildCommand(t *testing.T) {
	pidDir := filepath.Join(t.TempDir(), "pids")
	helper, _ := newRunHelper(t, []string{"false"}, runConfig(pidDir))

	err := run(helper)
	require.Error(t, err)

	execErr, ok := err.(*cmdpkg.ExecutionError)
	require.True(t, ok, "expected an execution error, got %T", err)
	assert.Contains(t, execErr.Msg, "work unit 0 failed")
}
