package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/pidbase/pidctl/internal/build"
	"github.com/pidbase/pidctl/internal/cmd"
	"github.com/pidbase/pidctl/internal/cmd/common"
	profilecmd "github.com/pidbase/pidctl/internal/cmd/root/profile"
	"github.com/pidbase/pidctl/internal/cmd/root/run"
	"github.com/pidbase/pidctl/internal/cmd/root/status"
	"github.com/pidbase/pidctl/internal/cmd/root/version"
	"github.com/pidbase/pidctl/internal/config"
	"github.com/pidbase/pidctl/internal/iostreams"
	"github.com/pidbase/pidctl/internal/log"
	"github.com/pidbase/pidctl/internal/meta"
	"github.com/pidbase/pidctl/internal/output"
	"github.com/pidbase/pidctl/internal/pidfile"
	"github.com/pidbase/pidctl/internal/profile"
	"github.com/pidbase/pidctl/internal/util"
	"github.com/pidbase/pidctl/internal/util/i18n"
	"github.com/pidbase/pidctl/internal/util/normalizers"
	"github.com/segmentio/cli"
	"github.com/spf13/cobra"
)

var (
	rootLong = normalizers.LongDesc(i18n.T("root.rootLong", `
  pidctl runs commands as tracked background processes. Every invocation
  registers a pid marker file so other tooling can see it is active, and
  deleting the marker stops the run cooperatively.`))

	rootShort = i18n.T("root.rootShort", fmt.Sprintf("%s runs pid-tracked commands", meta.CLIName))

	rootCmd *cobra.Command

	// Stores the global runtime value for the Configuration file path,
	configFilePath = config.ExpandDefaultConfigFilePath()
	currProfile    = profile.DefaultProfile

	currConfig   config.Hook
	streams      *iostreams.IOStreams
	pMgr         profile.Manager
	outputFormat = cmd.NewEnum([]string{"json", "yaml", "text"}, "text")

	verboseCount int
	quietFlag    bool

	buildInfo *build.Info

	logClose io.Closer
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   meta.CLIName,
		Short: rootShort,
		Long:  rootLong,
		PersistentPreRun: func(cobraCmd *cobra.Command, _ []string) {
			logger := buildLogger()
			out := buildOutput(logger)

			ctx := context.WithValue(cobraCmd.Context(), config.ConfigKey, currConfig)
			ctx = context.WithValue(ctx, iostreams.StreamsKey, streams)
			ctx = context.WithValue(ctx, profile.ProfileManagerKey, pMgr)
			ctx = context.WithValue(ctx, build.InfoKey, buildInfo)
			ctx = context.WithValue(ctx, log.LoggerKey, logger)
			ctx = context.WithValue(ctx, output.OutputKey, out)
			cobraCmd.SetContext(ctx)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if logClose != nil {
				return logClose.Close()
			}
			return nil
		},
	}

	// parses all flags not just the target command
	rootCmd.TraverseChildren = true

	rootCmd.PersistentFlags().StringVar(&configFilePath, common.ConfigFilePathFlagName,
		config.ExpandDefaultConfigFilePath(),
		i18n.T("root."+common.ConfigFilePathFlagName, "Path to the configuration file to load."))

	rootCmd.PersistentFlags().StringVarP(&currProfile, common.ProfileFlagName, common.ProfileFlagShort,
		profile.DefaultProfile,
		"Specify the profile to use for this command.")

	rootCmd.PersistentFlags().VarP(outputFormat, common.OutputFlagName, common.OutputFlagShort,
		fmt.Sprintf(`Configures the output format.
- Config path: [ %s ]
- Allowed    : [ %s ]`,
			common.OutputConfigPath, strings.Join(outputFormat.Allowed, "|")))

	rootCmd.PersistentFlags().String(common.LogLevelFlagName, common.DefaultLogLevel,
		fmt.Sprintf(`Configures the level of the operational log.
- Config path: [ %s ]
- Allowed    : [ trace|debug|info|warn|error ]`,
			common.LogLevelConfigPath))

	rootCmd.PersistentFlags().CountVarP(&verboseCount, common.VerboseFlagName, common.VerboseFlagShort,
		"Increase console verbosity. Repeatable: -v, -vv, -vvv.")

	rootCmd.PersistentFlags().BoolVarP(&quietFlag, common.QuietFlagName, common.QuietFlagShort,
		false, "Suppress all console output. Wins over --verbose.")

	return rootCmd
}

// buildLogger assembles the operational slog logger for this invocation.
// Records go to the configured log file when one can be opened, with errors
// mirrored to the error stream; otherwise everything goes to the error
// stream directly.
func buildLogger() *slog.Logger {
	level := log.ConfigLevelStringToSlogLevel(currConfig.GetString(common.LogLevelConfigPath))

	var primary io.Writer = streams.ErrOut
	var secondary io.Writer

	logFilePath := currConfig.GetString(common.LogFileConfigPath)
	if logFilePath != "" {
		if e := util.InitDir(logFilePath, 0o755); e == nil {
			if f, e := os.OpenFile(os.ExpandEnv(logFilePath),
				os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); e == nil {
				primary = f
				logClose = f
				// Mirror errors to the terminal for interactive runs only; a
				// cron or piped invocation reads the log file instead.
				if iostreams.IsTerminal(streams.ErrOut) {
					secondary = streams.ErrOut
				}
			}
		}
	}

	logger := log.NewLogger(primary, secondary, level)
	return logger.With("invocation_id", uuid.NewString(), "profile", currProfile)
}

// buildOutput assembles the leveled console surface. The sink mirrors every
// message to the operational logger, so a quiet console still produces a
// complete log. Quiet mode also turns off error mirroring to the terminal.
// The baseline verbosity comes from the configuration; --quiet and --verbose
// win over it when given.
func buildOutput(logger *slog.Logger) *output.Output {
	verbosity := output.VerbosityFromFlags(quietFlag, verboseCount)
	if !quietFlag && verboseCount == 0 {
		if v, e := output.VerbosityStringToIota(
			currConfig.GetString(common.VerbosityConfigPath)); e == nil {
			verbosity = v
		}
	}
	sink := output.NewStreamSink(streams.Out, verbosity).WithLogger(logger)
	out := output.New(sink)
	if out.IsQuiet() {
		log.DisableErrorMirroring()
	}
	return out
}

// addCommands adds the root subcommands to the command.
func addCommands() {
	rootCmd.AddCommand(version.NewVersionCmd())
	rootCmd.AddCommand(run.NewRunCmd())
	rootCmd.AddCommand(status.NewStatusCmd())
	rootCmd.AddCommand(profilecmd.NewProfileCmd())
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd = newRootCmd()
	addCommands()

	// Because the profile is not part of the configuration, we can't use viper
	// to read it following it's built in priorities.  So here we look for a well known
	// profile variable and set our package level variable if it's set before
	// continuing to process the command run.  This creates a ENV_VAR < CLI_FLAG priority
	profileEnvVar, found := os.LookupEnv(fmt.Sprintf("%s_PROFILE", meta.EnvVarPrefix))
	if found {
		currProfile = profileEnvVar
	}
}

func initConfig() {
	defaultConfigFilePath := config.ExpandDefaultConfigFilePath()
	cfg, e1 := config.GetConfig(configFilePath, currProfile, defaultConfigFilePath)
	util.CheckError(e1)
	currConfig = cfg

	pMgr = profile.NewManager(cfg.Viper)

	f := rootCmd.Flags().Lookup(common.OutputFlagName)
	util.CheckError(cfg.BindFlag(common.OutputConfigPath, f))

	f = rootCmd.Flags().Lookup(common.LogLevelFlagName)
	util.CheckError(cfg.BindFlag(common.LogLevelConfigPath, f))
}

func Execute(ctx context.Context, s *iostreams.IOStreams, bi *build.Info) {
	buildInfo = bi
	cobra.EnableTraverseRunHooks = true
	streams = s
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		var executionError *cmd.ExecutionError
		if errors.As(err, &executionError) {
			// Pid file registration failures have already emitted their fixed
			// diagnostic lines through the console surface; the driver's only
			// remaining job is the exit status.
			var createErr *pidfile.CreateError
			if errors.As(err, &createErr) {
				os.Exit(1)
			}
			printer, _ := cli.Format(outputFormat.String(), s.ErrOut)
			printer.Print(executionError)
			os.Exit(1)
		}
	}
}
