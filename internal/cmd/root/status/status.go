package status

import (
	"fmt"
	"io"

	"github.com/pidbase/pidctl/internal/cmd"
	"github.com/pidbase/pidctl/internal/cmd/common"
	"github.com/pidbase/pidctl/internal/meta"
	"github.com/pidbase/pidctl/internal/pidfile"
	"github.com/pidbase/pidctl/internal/util/i18n"
	"github.com/pidbase/pidctl/internal/util/normalizers"
	"github.com/segmentio/cli"
	"github.com/spf13/cobra"
)

var (
	statusUse   = "status <pid-file>"
	statusShort = i18n.T("root.status.statusShort", "Report whether a pid marker file is present")
	statusLong  = normalizers.LongDesc(i18n.T("root.status.statusLong", `
		The status command performs a forced existence probe of a pid marker file,
		bypassing the polling throttle, and reports the real filesystem state.`))
	statusExample = normalizers.Examples(i18n.T("root.status.statusExamples",
		fmt.Sprintf(`
		# Check on a tracked invocation
		%[1]s status /tmp/pids/myjob_pid_4242.pid
		`, meta.CLIName)))
)

// Build a new instance of the status command
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:     statusUse,
		Short:   statusShort,
		Long:    statusLong,
		Example: statusExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			helper := cmd.BuildHelper(c, args)
			return run(helper)
		},
	}
}

// Run performs the actual status command logic
func run(helper cmd.Helper) error {
	out, err := helper.GetOutput()
	if err != nil {
		return err
	}

	path := helper.GetArgs()[0]
	mgr := pidfile.NewManager(out)
	exists := mgr.Exists(path, true)

	result := map[string]interface{}{
		"path":   path,
		"exists": exists,
	}

	outType, err := helper.GetOutputFormat()
	if err != nil {
		return err
	}

	if outType == common.TEXT {
		return printText(result, helper.GetStreams().Out)
	}

	p, err := cli.Format(outType.String(), helper.GetStreams().Out)
	if err != nil {
		return err
	}
	defer p.Flush()
	p.Print(result)

	return nil
}

func printText(data map[string]interface{}, out io.Writer) error {
	state := "absent"
	if exists, ok := data["exists"].(bool); ok && exists {
		state = "present"
	}
	_, e := fmt.Fprintf(out, "%s: %s\n", data["path"], state)
	return e
}
