package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestStreamSinkLevelOrdering(t *testing.T) {
	tests := []struct {
		name    string
		active  Verbosity
		message Verbosity
		want    bool
	}{
		{name: "normal shown at normal", active: Normal, message: Normal, want: true},
		{name: "normal shown at debug", active: Debug, message: Normal, want: true},
		{name: "normal suppressed at quiet", active: Quiet, message: Normal, want: false},
		{name: "verbose suppressed at normal", active: Normal, message: Verbose, want: false},
		{name: "verbose shown at verbose", active: Verbose, message: Verbose, want: true},
		{name: "very verbose suppressed at verbose", active: Verbose, message: VeryVerbose, want: false},
		{name: "debug shown only at debug", active: VeryVerbose, message: Debug, want: false},
		{name: "debug shown at debug", active: Debug, message: Debug, want: true},
		{name: "quiet suppresses debug", active: Quiet, message: Debug, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			sink := NewStreamSink(&buf, tt.active)

			sink.Emit(tt.message, "hello")

			if got := buf.Len() > 0; got != tt.want {
				t.Fatalf("active=%s message=%s: emitted=%v, want %v (output %q)",
					tt.active, tt.message, got, tt.want, buf.String())
			}
		})
	}
}

func TestOutputConvenienceTiers(t *testing.T) {
	var buf bytes.Buffer
	out := New(NewStreamSink(&buf, VeryVerbose))

	out.Write("normal").WriteV("verbose").WriteVV("very verbose").WriteVVV("debug")

	got := buf.String()
	for _, want := range []string{"normal", "verbose", "very verbose"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected output to contain %q, got %q", want, got)
		}
	}
	if strings.Contains(got, "debug") {
		t.Fatalf("debug tier should be suppressed at very-verbose, got %q", got)
	}
}

func TestOutputBatchMessages(t *testing.T) {
	var buf bytes.Buffer
	out := New(NewStreamSink(&buf, Normal))

	out.Write("one", "two", "three")

	if got := buf.String(); got != "one\ntwo\nthree\n" {
		t.Fatalf("expected one message per line, got %q", got)
	}
}

func TestIsQuiet(t *testing.T) {
	quietSink := NewStreamSink(&bytes.Buffer{}, Quiet)
	normalSink := NewStreamSink(&bytes.Buffer{}, Normal)

	if got := New(normalSink).IsQuiet(); got {
		t.Fatal("normal sink should not report quiet")
	}
	if got := New(quietSink).IsQuiet(); !got {
		t.Fatal("quiet sink should report quiet")
	}
	if got := New(normalSink).IsQuiet(quietSink); !got {
		t.Fatal("override sink should take precedence")
	}
	if got := New(nil).IsQuiet(); got {
		t.Fatal("unconfigured output must fail open and report not quiet")
	}

	var nilOut *Output
	if got := nilOut.IsQuiet(); got {
		t.Fatal("nil output must fail open and report not quiet")
	}
}

func TestVerbosityStringRoundTrip(t *testing.T) {
	for _, v := range []Verbosity{Quiet, Normal, Verbose, VeryVerbose, Debug} {
		got, err := VerbosityStringToIota(v.String())
		if err != nil {
			t.Fatal(err)
		}
		if got != v {
			t.Fatalf("round trip for %s yielded %s", v, got)
		}
	}

	if _, err := VerbosityStringToIota("shouty"); err == nil {
		t.Fatal("expected an error for an invalid verbosity name")
	}
}

func TestVerbosityFromFlags(t *testing.T) {
	tests := []struct {
		quiet   bool
		verbose int
		want    Verbosity
	}{
		{quiet: false, verbose: 0, want: Normal},
		{quiet: false, verbose: 1, want: Verbose},
		{quiet: false, verbose: 2, want: VeryVerbose},
		{quiet: false, verbose: 3, want: Debug},
		{quiet: false, verbose: 9, want: Debug},
		{quiet: true, verbose: 3, want: Quiet},
	}

	for _, tt := range tests {
		if got := VerbosityFromFlags(tt.quiet, tt.verbose); got != tt.want {
			t.Fatalf("VerbosityFromFlags(%v, %d) = %s, want %s", tt.quiet, tt.verbose, got, tt.want)
		}
	}
}
