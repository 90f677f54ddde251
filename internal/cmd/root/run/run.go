package run

import (
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/pidbase/pidctl/internal/cmd"
	"github.com/pidbase/pidctl/internal/cmd/common"
	"github.com/pidbase/pidctl/internal/meta"
	"github.com/pidbase/pidctl/internal/pidfile"
	"github.com/pidbase/pidctl/internal/textenc"
	"github.com/pidbase/pidctl/internal/util"
	"github.com/pidbase/pidctl/internal/util/i18n"
	"github.com/pidbase/pidctl/internal/util/normalizers"
	"github.com/spf13/cobra"
)

const (
	IntervalFlagName   = "interval"
	IntervalConfigPath = "run." + IntervalFlagName

	CountFlagName   = "count"
	CountConfigPath = "run." + CountFlagName

	NoPidFileFlagName = "no-pidfile"
)

var (
	runUse   = "run [flags] -- command [args...]"
	runShort = i18n.T("root.run.runShort", "Run a command as a pid-tracked process")
	runLong  = normalizers.LongDesc(i18n.T("root.run.runLong", `
		The run command registers a pid marker file for this invocation and then
		executes the given command once per interval. The marker is probed between
		work units: deleting it stops the loop cooperatively. The marker is never
		removed by the tool itself.`))
	runExample = normalizers.Examples(i18n.T("root.run.runExamples",
		fmt.Sprintf(`
		# Run a backup script every 30 seconds until its pid marker is deleted
		%[1]s run --interval 30s -- /usr/local/bin/backup.sh
		# Run a command exactly once, without registering a pid marker
		%[1]s run --count 1 --no-pidfile -- echo hello
		`, meta.CLIName)))
)

// Build a new instance of the run command
func NewRunCmd() *cobra.Command {
	rv := &cobra.Command{
		Use:     runUse,
		Short:   runShort,
		Long:    runLong,
		Example: runExample,
		Args:    cobra.ArbitraryArgs,
		PreRun: func(c *cobra.Command, args []string) {
			bindFlags(c, args)
		},
		RunE: func(c *cobra.Command, args []string) error {
			helper := cmd.BuildHelper(c, args)

			err := validate(helper)
			if err != nil {
				return err
			}
			return run(helper)
		},
	}

	rv.Flags().Duration(IntervalFlagName, time.Second,
		i18n.T("root.run."+IntervalFlagName,
			fmt.Sprintf("Delay between work units.\n (config path = '%s')", IntervalConfigPath)))

	rv.Flags().Int(CountFlagName, 0,
		i18n.T("root.run."+CountFlagName,
			fmt.Sprintf("Number of work units to run, 0 to run until stopped.\n (config path = '%s')", CountConfigPath)))

	rv.Flags().Bool(NoPidFileFlagName, false,
		i18n.T("root.run."+NoPidFileFlagName, "Skip pid marker registration for this invocation."))

	return rv
}

func bindFlags(c *cobra.Command, args []string) {
	helper := cmd.BuildHelper(c, args)
	cfg, e := helper.GetConfig()
	util.CheckError(e)
	util.CheckError(cfg.BindFlag(IntervalConfigPath, c.Flags().Lookup(IntervalFlagName)))
	util.CheckError(cfg.BindFlag(CountConfigPath, c.Flags().Lookup(CountFlagName)))
}

// Validate ensures the configured command is valid
func validate(helper cmd.Helper) error {
	if len(helper.GetArgs()) == 0 {
		return &cmd.ConfigurationError{
			Err: fmt.Errorf("a command to run is required, e.g. %s run -- echo hello", meta.CLIName),
		}
	}
	return nil
}

// Run performs the actual run command logic
func run(helper cmd.Helper) error {
	cfg, err := helper.GetConfig()
	if err != nil {
		return err
	}
	out, err := helper.GetOutput()
	if err != nil {
		return err
	}
	logger, err := helper.GetLogger()
	if err != nil {
		return err
	}

	// The command body must only ever see UTF-8 text, whatever encoding the
	// shell handed us.
	argv := textenc.NormalizeArgs(helper.GetArgs(), out)

	mgr := pidfile.NewManager(out)

	markerPath := ""
	if noPid, _ := helper.GetCmd().Flags().GetBool(NoPidFileFlagName); !noPid {
		dir := cfg.GetString(common.PidDirConfigPath)
		if dir == "" {
			dir = common.DefaultPidDir
		}
		prefix := cfg.GetString(common.PidPrefixConfigPath)

		markerPath, err = mgr.Create(dir, prefix)
		if err != nil {
			var createErr *pidfile.CreateError
			if errors.As(err, &createErr) {
				out.Write(createErr.Diagnostics()...)
			}
			return cmd.PrepareExecutionErrorFromErr(helper, err)
		}
		out.WriteV(fmt.Sprintf("Registered pid file %s", markerPath))
		logger.Info("pid marker registered", "path", markerPath)
	}

	interval := cfg.Get(IntervalConfigPath)
	delay, ok := interval.(time.Duration)
	if !ok {
		delay, _ = time.ParseDuration(fmt.Sprint(interval))
	}
	if delay <= 0 {
		delay = time.Second
	}
	count := cfg.GetInt(CountConfigPath)

	ctx := helper.GetContext()
	streams := helper.GetStreams()

	for unit := 0; count == 0 || unit < count; unit++ {
		if markerPath != "" && !mgr.Exists(markerPath, false) {
			out.WriteV(fmt.Sprintf("Pid file %s is gone, stopping", markerPath))
			logger.Info("pid marker removed, stopping", "path", markerPath, "units", unit)
			return nil
		}

		child := exec.CommandContext(ctx, argv[0], argv[1:]...)
		child.Stdin = streams.In
		child.Stdout = streams.Out
		child.Stderr = streams.ErrOut
		if err := child.Run(); err != nil {
			logger.Error("work unit failed", "unit", unit, "error", err)
			return cmd.PrepareExecutionErrorWithHelper(helper,
				fmt.Sprintf("work unit %d failed", unit), err)
		}
		out.WriteVV(fmt.Sprintf("Work unit %d finished", unit))

		if count != 0 && unit+1 >= count {
			break
		}

		select {
		case <-ctx.Done():
			logger.Info("interrupted, stopping", "units", unit+1)
			return nil
		case <-time.After(delay):
		}
	}

	return nil
}
