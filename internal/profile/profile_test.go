package profile

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) Manager {
	t.Helper()
	v := viper.New()
	v.Set("default.output", "text")
	v.Set("ci.output", "json")
	return NewManager(v)
}

func TestGetProfiles(t *testing.T) {
	mgr := newTestManager(t)
	assert.ElementsMatch(t, []string{"default", "ci"}, mgr.GetProfiles())
}

func TestGetProfile(t *testing.T) {
	mgr := newTestManager(t)

	prof, err := mgr.GetProfile("ci")
	require.NoError(t, err)
	assert.Equal(t, "json", prof["output"])

	_, err = mgr.GetProfile("missing")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestCreateProfile(t *testing.T) {
	mgr := newTestManager(t)

	require.NoError(t, mgr.CreateProfile("staging"))
	assert.Contains(t, mgr.GetProfiles(), "staging")

	assert.ErrorIs(t, mgr.CreateProfile("staging"), ErrProfileExists)
	assert.ErrorIs(t, mgr.CreateProfile(""), ErrProfileNameEmpty)
}

func TestDeleteProfile(t *testing.T) {
	mgr := newTestManager(t)

	assert.ErrorIs(t, mgr.DeleteProfile("missing"), ErrProfileNotFound)
	assert.ErrorIs(t, mgr.DeleteProfile(""), ErrProfileNameEmpty)
	assert.ErrorIs(t, mgr.DeleteProfile("ci"), ErrProfileDeleteUnsupported)
}
