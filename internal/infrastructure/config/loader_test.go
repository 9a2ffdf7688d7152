package config

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const configDir = "../../../cmd/toybow/configs"

func TestLoader_LoadBow(t *testing.T) {
	loader := NewLoader(configDir)

	cfg, err := loader.LoadBow()
	require.NoError(t, err)

	assert.Equal(t, 0.80, cfg.Draw.Threshold)
	assert.Equal(t, 0.08, cfg.Notch.Forward)
	assert.Equal(t, 0.035, cfg.Notch.Up)
	assert.Equal(t, 0.32, cfg.Arrow.TipOffset)
	assert.Equal(t, -4.8, cfg.Arrow.Gravity.Y)
	assert.Equal(t, 10.0, cfg.Arrow.Lifetime)
	assert.Equal(t, 15.0, cfg.ShotStrength.RangeMax)
	assert.Equal(t, uint8(255), cfg.String.Color.R)
	assert.Equal(t, "Hifi-Beam-Disabler", cfg.Grab.BeamDisablerName)
}

func TestLoader_LoadBow_MatchesDefaults(t *testing.T) {
	cfg, err := NewLoader(configDir).LoadBow()
	require.NoError(t, err)

	assert.Equal(t, DefaultBowConfig(), cfg)
}

func TestLoader_LoadBow_Missing(t *testing.T) {
	loader := NewFSLoader(fstest.MapFS{}, "")

	cfg, err := loader.LoadBow()
	require.NoError(t, err)
	assert.Equal(t, DefaultBowConfig(), cfg)
}

func TestLoader_LoadBow_PartialOverride(t *testing.T) {
	fsys := fstest.MapFS{
		"bow.json": {Data: []byte(`{"draw": {"threshold": 0.5}}`)},
	}

	cfg, err := NewFSLoader(fsys, "").LoadBow()
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Draw.Threshold)
	assert.Equal(t, 0.08, cfg.Notch.Forward, "unspecified fields keep defaults")
}

func TestLoader_LoadBow_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `{"draw":`},
		{"threshold too high", `{"draw": {"threshold": 1.5}}`},
		{"empty shot domain", `{"shotStrength": {"domainMin": 0.3, "domainMax": 0.3, "rangeMin": 1, "rangeMax": 15}}`},
		{"zero lifetime", `{"arrow": {"lifetime": 0}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{"bow.json": {Data: []byte(tt.data)}}
			_, err := NewFSLoader(fsys, "").LoadBow()
			assert.Error(t, err)
		})
	}
}

func TestLoader_LoadRange(t *testing.T) {
	loader := NewLoader(configDir)

	cfg, err := loader.LoadRange("demo")
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.ID)
	assert.Equal(t, 640, cfg.View.ScreenWidth)
	assert.Equal(t, 60, cfg.View.Framerate)
	assert.Equal(t, 40.0, cfg.View.PixelsPerMeter)
	assert.Equal(t, -90.0, cfg.Bow.YawDeg)
	assert.True(t, cfg.BeamDisabler)
	require.Len(t, cfg.Targets, 3)
	assert.Equal(t, "ground", cfg.Targets[0].Name)
}

func TestLoader_ListRanges(t *testing.T) {
	names, err := NewLoader(configDir).ListRanges()
	require.NoError(t, err)
	assert.Equal(t, []string{"demo", "long"}, names)
}

func TestLoader_LoadRange_Unknown(t *testing.T) {
	loader := NewLoader(configDir)

	_, err := loader.LoadRange("dmeo")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownRange))
	assert.Contains(t, err.Error(), `did you mean "demo"`)

	_, err = loader.LoadRange("completely-different")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownRange))
	assert.Contains(t, err.Error(), "available: demo, long")
}

func TestClosestName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{"exact", "long", "long", true},
		{"swap", "lnog", "long", true},
		{"case", "DEMO", "demo", true},
		{"too far", "archery", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClosestName(tt.input, []string{"demo", "long"})
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLoader_LoadAll(t *testing.T) {
	cfg, err := NewLoader(configDir).LoadAll("long")
	require.NoError(t, err)

	assert.NotNil(t, cfg.Range)
	assert.Equal(t, "long", cfg.Range.ID)
	assert.Equal(t, 44100, cfg.Audio.SampleRate)
}

func TestApplyEnv(t *testing.T) {
	cfg := &GameConfig{Bow: DefaultBowConfig(), Audio: DefaultAudioConfig()}

	err := ApplyEnv(cfg, map[string]string{
		"TOYBOW_DRAW_THRESHOLD":       "0.65",
		"TOYBOW_ARROW_LIFETIME":       "4",
		"TOYBOW_MODULATE_PULL_VOLUME": "false",
		"TOYBOW_AUDIO_ENABLED":        "false",
		"TOYBOW_MASTER_VOLUME":        "0.5",
	})
	require.NoError(t, err)

	assert.Equal(t, 0.65, cfg.Bow.Draw.Threshold)
	assert.Equal(t, 4.0, cfg.Bow.Arrow.Lifetime)
	assert.False(t, cfg.Bow.ModulatePullVolume)
	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, 0.5, cfg.Audio.MasterVolume)
	assert.Equal(t, 15.0, cfg.Bow.ShotStrength.RangeMax, "unset vars keep loaded values")
}

func TestApplyEnv_Invalid(t *testing.T) {
	cfg := &GameConfig{Bow: DefaultBowConfig(), Audio: DefaultAudioConfig()}

	err := ApplyEnv(cfg, map[string]string{"TOYBOW_DRAW_THRESHOLD": "abc"})
	assert.Error(t, err)

	cfg = &GameConfig{Bow: DefaultBowConfig(), Audio: DefaultAudioConfig()}
	err = ApplyEnv(cfg, map[string]string{"TOYBOW_DRAW_THRESHOLD": "2"})
	assert.Error(t, err)
}

func TestGrabConfig_SpatialKey(t *testing.T) {
	key := DefaultBowConfig().Grab.SpatialKey()
	require.NotNil(t, key)
	assert.Equal(t, 0.06, key.RelativePosition.Y)
	assert.InDelta(t, 1.0, key.RelativeRotation.Length(), 1e-9)
}
