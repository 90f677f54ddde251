// Package textenc normalizes the text encoding of command-line arguments.
// Shells and locales can hand a program bytes in a legacy code page;
// commands downstream always want UTF-8. Detection is a best-effort
// heuristic over a fixed candidate order and can mis-classify ambiguous
// byte sequences. That is an accepted limitation, not something to paper
// over.
package textenc

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/pidbase/pidctl/internal/output"
)

// Encoding identifies one of the supported argument encodings.
type Encoding int

const (
	Unknown Encoding = iota
	UTF8
	ASCII
	ISO8859_2
	Windows1251
	Windows1252
	Windows1254
)

func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "UTF-8"
	case ASCII:
		return "US-ASCII"
	case ISO8859_2:
		return "ISO-8859-2"
	case Windows1251:
		return "Windows-1251"
	case Windows1252:
		return "Windows-1252"
	case Windows1254:
		return "Windows-1254"
	default:
		return "unknown"
	}
}

// DefaultCandidates is the fixed detection order. UTF-8 first means an
// argument valid in several encodings is reported as UTF-8 and left alone.
var DefaultCandidates = []Encoding{UTF8, ASCII, ISO8859_2, Windows1251, Windows1252, Windows1254}

func (e Encoding) charmap() *charmap.Charmap {
	switch e {
	case ISO8859_2:
		return charmap.ISO8859_2
	case Windows1251:
		return charmap.Windows1251
	case Windows1252:
		return charmap.Windows1252
	case Windows1254:
		return charmap.Windows1254
	default:
		return nil
	}
}

// Detect returns the first candidate that decodes value cleanly, or Unknown
// when none does.
func Detect(value string, candidates []Encoding) Encoding {
	for _, candidate := range candidates {
		if decodesCleanly(value, candidate) {
			return candidate
		}
	}
	return Unknown
}

func decodesCleanly(value string, enc Encoding) bool {
	switch enc {
	case UTF8:
		return utf8.ValidString(value)
	case ASCII:
		for i := 0; i < len(value); i++ {
			if value[i] >= utf8.RuneSelf {
				return false
			}
		}
		return true
	case Unknown:
		return false
	default:
		cm := enc.charmap()
		if cm == nil {
			return false
		}
		decoded, err := cm.NewDecoder().String(value)
		if err != nil {
			return false
		}
		// charmap decoders substitute U+FFFD for bytes the code page does
		// not define; treat that as a failed decode.
		return !strings.ContainsRune(decoded, utf8.RuneError)
	}
}

// Convert transcodes value from the given encoding to UTF-8.
func Convert(value string, from Encoding) (string, error) {
	switch from {
	case UTF8, ASCII:
		return value, nil
	case Unknown:
		return value, fmt.Errorf("cannot convert from an unknown encoding")
	default:
		cm := from.charmap()
		if cm == nil {
			return value, fmt.Errorf("no converter for encoding %s", from)
		}
		return cm.NewDecoder().String(value)
	}
}

// NormalizeArgs returns a copy of args in which every value the detector
// recognizes as a legacy encoding has been converted to UTF-8. Arguments
// whose encoding cannot be detected pass through untouched with a
// debug-tier note.
func NormalizeArgs(args []string, out *output.Output) []string {
	normalized := make([]string, len(args))
	for i, arg := range args {
		detected := Detect(arg, DefaultCandidates)
		switch detected {
		case Unknown:
			out.WriteVVV(fmt.Sprintf("Could not detect encoding of argument %d, leaving it as is", i))
			normalized[i] = arg
		case UTF8, ASCII:
			normalized[i] = arg
		default:
			converted, err := Convert(arg, detected)
			if err != nil {
				out.WriteVVV(fmt.Sprintf("Could not convert argument %d from %s, leaving it as is", i, detected))
				normalized[i] = arg
				continue
			}
			out.WriteVVV(fmt.Sprintf("Converted argument %d from %s to UTF-8", i, detected))
			normalized[i] = converted
		}
	}
	return normalized
}
