package root

import (
	"log/slog"
	"testing"

	"github.com/pidbase/pidctl/internal/iostreams"
	configtest "github.com/pidbase/pidctl/test/config"
	"github.com/stretchr/testify/assert"
)

func TestBuildOutputVerbosityFromConfig(t *testing.T) {
	savedStreams, savedConfig := streams, currConfig
	savedQuiet, savedVerbose := quietFlag, verboseCount
	t.Cleanup(func() {
		streams, currConfig = savedStreams, savedConfig
		quietFlag, verboseCount = savedQuiet, savedVerbose
	})

	tests := []struct {
		name       string
		configured string
		quiet      bool
		verbose    int
		want       string
	}{
		{name: "config raises the baseline", configured: "very-verbose", want: "deep\n"},
		{name: "config can quiet the console", configured: "quiet", want: ""},
		{name: "verbose flag wins over config", configured: "quiet", verbose: 2, want: "deep\n"},
		{name: "quiet flag wins over config", configured: "very-verbose", quiet: true, want: ""},
		{name: "invalid config keeps normal", configured: "shouty", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ios, _, out, _ := iostreams.NewTestIOStreams()
			streams = &ios
			quietFlag = tt.quiet
			verboseCount = tt.verbose
			currConfig = &configtest.MockConfigHook{
				GetStringMock: func(string) string { return tt.configured },
			}

			o := buildOutput(slog.New(slog.DiscardHandler))
			o.WriteVV("deep")

			assert.Equal(t, tt.want, out.String())
		})
	}
}
