package meta

const (
	// CLIName is the name of the command line tool
	CLIName = "pidctl"

	// EnvVarPrefix prefixes every environment variable read by the CLI
	EnvVarPrefix = "PIDCTL"
)
