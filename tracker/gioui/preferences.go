package gioui

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"gioui.org/unit"
	"github.com/wavetag/wavetag"
	"github.com/wavetag/wavetag/tracker"
)

type (
	Preferences struct {
		Window   WindowPreferences
		Playback PlaybackPreferences
		Mode     string
		YmlError error `yaml:"-"`
	}

	WindowPreferences struct {
		Width     int
		Height    int
		Maximized bool `yaml:",omitempty"`
	}

	PlaybackPreferences struct {
		Speed  float64
		Follow bool
	}
)

//go:embed preferences.yml
var defaultPreferencesYaml []byte

func loadDefaultPreferences() Preferences {
	var preferences Preferences
	err := yaml.UnmarshalStrict(defaultPreferencesYaml, &preferences)
	if err != nil {
		panic(fmt.Errorf("failed to unmarshal preferences: %w", err))
	}
	return preferences
}

func customConfigPath(filename string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "wavetag", filename), nil
}

func readCustomConfig(filename string) ([]byte, error) {
	path, err := customConfigPath(filename)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// ReadCustomConfigYml modifies the target argument, i.e. needs a pointer
func ReadCustomConfigYml(filename string, target interface{}) (exists bool, err error) {
	bytes, err := readCustomConfig(filename)
	if err != nil {
		return false, err
	}
	err = yaml.UnmarshalStrict(bytes, target)
	return true, err
}

// MakePreferences returns the embedded defaults overridden by the user's
// preferences.yml. A broken user file is reported in YmlError and the values
// parsed before the error are kept.
func MakePreferences() Preferences {
	preferences := loadDefaultPreferences()
	exists, err := ReadCustomConfigYml("preferences.yml", &preferences)
	if exists {
		preferences.YmlError = err
	}
	return preferences
}

func (p Preferences) WindowSize() (unit.Dp, unit.Dp) {
	return unit.Dp(p.Window.Width), unit.Dp(p.Window.Height)
}

// PlaybackSpeed returns the configured speed limited to the supported range.
func (p Preferences) PlaybackSpeed() float64 {
	return min(max(p.Playback.Speed, wavetag.MinSpeed), wavetag.MaxSpeed)
}

// InteractionMode returns the configured mode, SELECT if it is unknown.
func (p Preferences) InteractionMode() (tracker.Mode, error) {
	return tracker.ParseMode(p.Mode)
}
