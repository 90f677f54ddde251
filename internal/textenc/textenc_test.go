package textenc

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pidbase/pidctl/internal/output"
)

func TestDetectFirstMatchWins(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		candidates []Encoding
		want       Encoding
	}{
		{
			name:       "plain ascii reports utf-8 first",
			value:      "hello",
			candidates: DefaultCandidates,
			want:       UTF8,
		},
		{
			name:       "multibyte utf-8",
			value:      "héllo wörld",
			candidates: DefaultCandidates,
			want:       UTF8,
		},
		{
			name:       "ascii when utf-8 not a candidate",
			value:      "hello",
			candidates: []Encoding{ASCII, ISO8859_2},
			want:       ASCII,
		},
		{
			name:       "legacy byte falls through to iso-8859-2",
			value:      "caf\xe9",
			candidates: DefaultCandidates,
			want:       ISO8859_2,
		},
		{
			name:       "cyrillic bytes against a narrowed candidate list",
			value:      "\xcf\xf0\xe8\xe2\xe5\xf2",
			candidates: []Encoding{UTF8, Windows1251},
			want:       Windows1251,
		},
		{
			name:       "byte undefined in every candidate",
			value:      "\x81",
			candidates: []Encoding{UTF8, ASCII, Windows1252, Windows1254},
			want:       Unknown,
		},
		{
			name:       "empty candidate list",
			value:      "hello",
			candidates: nil,
			want:       Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.value, tt.candidates); got != tt.want {
				t.Fatalf("Detect(%q) = %s, want %s", tt.value, got, tt.want)
			}
		})
	}
}

func TestConvert(t *testing.T) {
	got, err := Convert("caf\xe9", ISO8859_2)
	if err != nil {
		t.Fatal(err)
	}
	if got != "café" {
		t.Fatalf("expected %q, got %q", "café", got)
	}

	got, err = Convert("\xcf\xf0\xe8\xe2\xe5\xf2", Windows1251)
	if err != nil {
		t.Fatal(err)
	}
	if got != "Привет" {
		t.Fatalf("expected %q, got %q", "Привет", got)
	}

	// UTF-8 and ASCII pass through untouched.
	got, err = Convert("already fine", UTF8)
	if err != nil {
		t.Fatal(err)
	}
	if got != "already fine" {
		t.Fatalf("expected passthrough, got %q", got)
	}

	if _, err = Convert("x", Unknown); err == nil {
		t.Fatal("expected an error converting from an unknown encoding")
	}
}

func TestNormalizeArgs(t *testing.T) {
	var buf bytes.Buffer
	out := output.New(output.NewStreamSink(&buf, output.Debug))

	args := []string{"plain", "caf\xe9", "héllo"}
	got := NormalizeArgs(args, out)

	want := []string{"plain", "café", "héllo"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("normalized args mismatch (-want +got):\n%s", diff)
	}

	// originals are untouched
	if args[1] != "caf\xe9" {
		t.Fatalf("input slice must not be mutated, got %q", args[1])
	}

	if !strings.Contains(buf.String(), "Converted argument 1 from ISO-8859-2 to UTF-8") {
		t.Fatalf("expected a debug-tier conversion note, got %q", buf.String())
	}
}

func TestNormalizeArgsQuietSinkStillConverts(t *testing.T) {
	var buf bytes.Buffer
	out := output.New(output.NewStreamSink(&buf, output.Quiet))

	got := NormalizeArgs([]string{"caf\xe9"}, out)

	if got[0] != "café" {
		t.Fatalf("conversion must not depend on verbosity, got %q", got[0])
	}
	if buf.Len() != 0 {
		t.Fatalf("quiet sink must not emit, got %q", buf.String())
	}
}
