package cmd

import (
	"context"
	"log/slog"

	"github.com/pidbase/pidctl/internal/build"
	"github.com/pidbase/pidctl/internal/cmd/common"
	"github.com/pidbase/pidctl/internal/config"
	"github.com/pidbase/pidctl/internal/iostreams"
	"github.com/pidbase/pidctl/internal/output"
	"github.com/pidbase/pidctl/internal/profile"
	"github.com/spf13/cobra"
)

type MockHelper struct {
	GetCmdMock            func() *cobra.Command
	GetArgsMock           func() []string
	GetStreamsMock        func() *iostreams.IOStreams
	GetConfigMock         func() (config.Hook, error)
	GetOutputFormatMock   func() (common.OutputFormat, error)
	GetLoggerMock         func() (*slog.Logger, error)
	GetOutputMock         func() (*output.Output, error)
	GetBuildInfoMock      func() (*build.Info, error)
	GetProfileManagerMock func() (profile.Manager, error)
	GetContextMock        func() context.Context
}

func (m *MockHelper) GetCmd() *cobra.Command {
	return m.GetCmdMock()
}

func (m *MockHelper) GetArgs() []string {
	return m.GetArgsMock()
}

func (m *MockHelper) GetStreams() *iostreams.IOStreams {
	return m.GetStreamsMock()
}

func (m *MockHelper) GetConfig() (config.Hook, error) {
	return m.GetConfigMock()
}

func (m *MockHelper) GetOutputFormat() (common.OutputFormat, error) {
	return m.GetOutputFormatMock()
}

func (m *MockHelper) GetLogger() (*slog.Logger, error) {
	return m.GetLoggerMock()
}

func (m *MockHelper) GetOutput() (*output.Output, error) {
	return m.GetOutputMock()
}

func (m *MockHelper) GetBuildInfo() (*build.Info, error) {
	return m.GetBuildInfoMock()
}

func (m *MockHelper) GetProfileManager() (profile.Manager, error) {
	return m.GetProfileManagerMock()
}

func (m *MockHelper) GetContext() context.Context {
	if m.GetContextMock != nil {
		return m.GetContextMock()
	}
	return context.Background()
}
