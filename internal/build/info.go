package build

// Info carries the build-time identity of the binary. The fields are
// populated by the linker (see .goreleaser.yml) and threaded through the
// command context so any command can report them.
type Info struct {
	Version string
	Commit  string
	Date    string
}

// Empty type to represent the _type_ Info. Genesis is to support a key in a Context
type Key struct{}

// InfoKey is a global instance of the Key type
var InfoKey = Key{}
