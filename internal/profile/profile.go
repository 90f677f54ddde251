package profile

import (
	"errors"
	"strings"

	"github.com/pidbase/pidctl/internal/cmd/common"
	"github.com/spf13/viper"
)

const (
	DefaultProfile = "default"
)

var (
	ErrProfileExists    = errors.New("profile already exists")
	ErrProfileNameEmpty = errors.New("invalid profile name (empty)")
	ErrProfileNotFound  = errors.New("profile not found")

	// Viper offers no way to remove a key once set, so profiles can only be
	// removed by editing the configuration file.
	ErrProfileDeleteUnsupported = errors.New(
		"deleting a profile requires editing the configuration file directly")
)

type Manager interface {
	GetProfiles() []string
	GetProfile(name string) (map[string]any, error)
	CreateProfile(name string) error
	DeleteProfile(name string) error
}

type profileManager struct {
	config *viper.Viper
}

// Empty type to represent the _type_ Manager. Genesis is to support a key in a Context
type Key struct{}

// Global instance of the ProfileManagerKey type
var ProfileManagerKey = Key{}

func (v *profileManager) GetProfiles() []string {
	allKeys := v.config.AllKeys()
	keyMap := make(map[string]bool)

	for _, key := range allKeys {
		topLevelKey := strings.Split(key, ".")[0]
		keyMap[topLevelKey] = true
	}

	uniqueTopLevelKeys := make([]string, 0, len(keyMap))
	for key := range keyMap {
		uniqueTopLevelKeys = append(uniqueTopLevelKeys, key)
	}

	return uniqueTopLevelKeys
}

func (v *profileManager) CreateProfile(profileName string) error {
	if profileName == "" {
		return ErrProfileNameEmpty
	}

	if v.config.IsSet(profileName) {
		return ErrProfileExists
	}

	// Viper only surfaces leaf keys, so an empty profile would be invisible
	// to GetProfiles. Seed it with the default output format instead.
	v.config.Set(profileName, map[string]any{
		common.OutputConfigPath: common.DefaultOutputFormat,
	})

	return nil
}

func (v *profileManager) DeleteProfile(name string) error {
	if name == "" {
		return ErrProfileNameEmpty
	}
	if !v.config.IsSet(name) {
		return ErrProfileNotFound
	}
	return ErrProfileDeleteUnsupported
}

func (v *profileManager) GetProfile(name string) (map[string]any, error) {
	if !v.config.IsSet(name) {
		return nil, ErrProfileNotFound
	}
	return v.config.GetStringMap(name), nil
}

func NewManager(config *viper.Viper) Manager {
	return &profileManager{
		config: config,
	}
}
