package config

import (
	"testing"

	utilviper "github.com/pidbase/pidctl/internal/util/viper"
)

func TestBuildProfiledConfig_ProfileEnvWithDashes(t *testing.T) {
	t.Setenv("PIDCTL_TEAM_A_B_C_PID_DIR", "/var/run/jobs")

	profile := "team-a-b-c"
	mainv := utilviper.NewViper("nonexistent.yaml")
	mainv.Set(profile, map[string]any{})

	cfg := BuildProfiledConfig(profile, "nonexistent.yaml", mainv)

	if got := cfg.GetString("pid-dir"); got != "/var/run/jobs" {
		t.Fatalf("expected pid-dir to be %q, got %q", "/var/run/jobs", got)
	}
}

func TestBuildProfiledConfig_GetIntOrElse(t *testing.T) {
	profile := "default"
	mainv := utilviper.NewViper("nonexistent.yaml")
	mainv.Set(profile, map[string]any{"interval": 5})

	cfg := BuildProfiledConfig(profile, "nonexistent.yaml", mainv)

	if got := cfg.GetIntOrElse("interval", 1); got != 5 {
		t.Fatalf("expected interval to be 5, got %d", got)
	}
	if got := cfg.GetIntOrElse("missing", 7); got != 7 {
		t.Fatalf("expected default 7, got %d", got)
	}
}
