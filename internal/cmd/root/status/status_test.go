package status

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pidbase/pidctl/internal/cmd/common"
	"github.com/pidbase/pidctl/internal/iostreams"
	"github.com/pidbase/pidctl/internal/output"
	cmdtest "github.com/pidbase/pidctl/test/cmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusReportsFilesystemState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "myjob_pid_4242.pid")

	streams, _, out, _ := iostreams.NewTestIOStreams()
	helper := &cmdtest.MockHelper{
		GetArgsMock: func() []string { return []string{path} },
		GetOutputMock: func() (*output.Output, error) {
			return output.New(output.NewStreamSink(out, output.Normal)), nil
		},
		GetOutputFormatMock: func() (common.OutputFormat, error) { return common.TEXT, nil },
		GetStreamsMock:      func() *iostreams.IOStreams { return &streams },
	}

	require.NoError(t, run(helper))
	assert.Contains(t, out.String(), path+": absent")

	out.Reset()
	require.NoError(t, os.WriteFile(path, []byte("pid_4242"), 0o666))

	require.NoError(t, run(helper))
	assert.Contains(t, out.String(), path+": present")
}
