package output

import "fmt"

// Verbosity is the ordered console verbosity setting for a command
// invocation. Quiet suppresses all console writes, Debug shows everything.
type Verbosity int

const (
	Quiet Verbosity = iota
	Normal
	Verbose
	VeryVerbose
	Debug
)

func (v Verbosity) String() string {
	return [...]string{"quiet", "normal", "verbose", "very-verbose", "debug"}[v]
}

func VerbosityStringToIota(verbosity string) (Verbosity, error) {
	switch verbosity {
	case "quiet":
		return Quiet, nil
	case "normal":
		return Normal, nil
	case "verbose":
		return Verbose, nil
	case "very-verbose":
		return VeryVerbose, nil
	case "debug":
		return Debug, nil
	default:
		return Normal, fmt.Errorf("invalid verbosity %q, must be one of %v", verbosity,
			[]string{"quiet", "normal", "verbose", "very-verbose", "debug"})
	}
}

// VerbosityFromFlags derives the active verbosity from the --quiet flag and
// the -v count flag. --quiet wins over any number of -v repetitions.
func VerbosityFromFlags(quiet bool, verboseCount int) Verbosity {
	if quiet {
		return Quiet
	}
	switch {
	case verboseCount <= 0:
		return Normal
	case verboseCount == 1:
		return Verbose
	case verboseCount == 2:
		return VeryVerbose
	default:
		return Debug
	}
}
