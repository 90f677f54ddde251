package common

import "fmt"

// Represents an enum of valid values for the format of the output for this CLI execution
type OutputFormat int

const (
	JSON OutputFormat = iota
	YAML
	TEXT
)

const (
	// related to the --output flag
	DefaultOutputFormat = "text"
	OutputFlagName      = "output"
	OutputFlagShort     = "o"
	OutputConfigPath    = OutputFlagName

	// related to the --profile flag
	ProfileFlagName  = "profile"
	ProfileFlagShort = "p"

	// related to the --config-file flag
	ConfigFilePathFlagName = "config-file"

	// related to the --log-level flag
	LogLevelFlagName   = "log-level"
	DefaultLogLevel    = "info"
	LogLevelConfigPath = LogLevelFlagName

	// path of the operational log file
	LogFileConfigPath = "log-file"

	// related to the --verbose / --quiet console verbosity flags
	VerboseFlagName  = "verbose"
	VerboseFlagShort = "v"
	QuietFlagName    = "quiet"
	QuietFlagShort   = "q"

	// baseline console verbosity, used when neither flag is given
	VerbosityConfigPath = "verbosity"
	DefaultVerbosity    = "normal"

	// related to the --pid-dir flag
	PidDirFlagName   = "pid-dir"
	PidDirConfigPath = PidDirFlagName
	DefaultPidDir    = "/tmp/pids"

	// related to the --pid-prefix flag
	PidPrefixFlagName   = "pid-prefix"
	PidPrefixConfigPath = PidPrefixFlagName
)

func (of OutputFormat) String() string {
	return [...]string{"json", "yaml", "text"}[of]
}

func OutputFormatStringToIota(format string) (OutputFormat, error) {
	switch format {
	case "json":
		return JSON, nil
	case "yaml":
		return YAML, nil
	case "text":
		return TEXT, nil
	default:
		return TEXT, fmt.Errorf("invalid output format %q, must be one of %v", format, []string{"json", "yaml", "text"})
	}
}
