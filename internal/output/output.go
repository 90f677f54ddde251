package output

// Output is a thin leveled facade over a Sink. Each convenience method tags
// messages with one fixed verbosity tier and returns the receiver so calls
// can be chained. The facade never stores verbosity policy itself; the sink
// decides suppression.
type Output struct {
	sink Sink
}

// Empty type to represent the _type_ Output. Genesis is to support a key in a Context
type Key struct{}

// OutputKey is a global instance of the Key type
var OutputKey = Key{}

func New(sink Sink) *Output {
	return &Output{
		sink: sink,
	}
}

// WriteAt emits messages at an explicit verbosity tier.
func (o *Output) WriteAt(level Verbosity, messages ...string) *Output {
	if o == nil || o.sink == nil {
		return o
	}
	o.sink.Emit(level, messages...)
	return o
}

// Write emits messages at the Normal tier, shown at every verbosity
// except quiet.
func (o *Output) Write(messages ...string) *Output {
	return o.WriteAt(Normal, messages...)
}

// WriteV emits messages at the Verbose tier (-v).
func (o *Output) WriteV(messages ...string) *Output {
	return o.WriteAt(Verbose, messages...)
}

// WriteVV emits messages at the VeryVerbose tier (-vv).
func (o *Output) WriteVV(messages ...string) *Output {
	return o.WriteAt(VeryVerbose, messages...)
}

// WriteVVV emits messages at the Debug tier (-vvv).
func (o *Output) WriteVVV(messages ...string) *Output {
	return o.WriteAt(Debug, messages...)
}

// IsQuiet reports whether the active sink's verbosity is exactly Quiet.
// When an override sink is supplied it is checked instead of the held one.
// With no sink available at all it fails open and returns false: an
// unconfigured output is never silently treated as quiet.
func (o *Output) IsQuiet(override ...Sink) bool {
	var sink Sink
	if len(override) > 0 && override[0] != nil {
		sink = override[0]
	} else if o != nil {
		sink = o.sink
	}
	if sink == nil {
		return false
	}
	return sink.Verbosity() == Quiet
}
