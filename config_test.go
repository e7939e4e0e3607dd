package tinsel

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 300*time.Millisecond, cfg.Pointer.DoubleClickWindow.Duration)
	assert.Equal(t, DefaultRibbon(), cfg.Camera.Ribbon)
	assert.Equal(t, DefaultPinchThreshold, cfg.Hand.PinchThreshold)
}

func TestLoadConfigFromReader(t *testing.T) {
	src := `
[camera]
transition_delay = 1.5
galaxy_distance = 25.0

[camera.ribbon]
turns = 4.0

[pointer]
double_click_window = "250ms"

[scene]
photo_count = 8

[log]
level = "debug"
`
	cfg, err := LoadConfigFromReader(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, 1.5, cfg.Camera.TransitionDelay)
	assert.Equal(t, 25.0, cfg.Camera.GalaxyDistance)
	assert.Equal(t, 4.0, cfg.Camera.Ribbon.Turns)
	assert.Equal(t, 7.0, cfg.Camera.Ribbon.Height, "unset keys keep defaults")
	assert.Equal(t, 250*time.Millisecond, cfg.Pointer.DoubleClickWindow.Duration)
	assert.Equal(t, 8, cfg.Scene.PhotoCount)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFromReaderBadTOML(t *testing.T) {
	_, err := LoadConfigFromReader(strings.NewReader("[camera\nbroken"))
	assert.ErrorContains(t, err, "decode config")
}

func TestLoadConfigBadDuration(t *testing.T) {
	_, err := LoadConfigFromReader(strings.NewReader(`[pointer]
double_click_window = "soon"`))
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tinsel.toml")
	require.NoError(t, os.WriteFile(path, []byte("[hand]\nenabled = false\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.False(t, cfg.Hand.Enabled)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("TINSEL_CAMERA_TRANSITION_DELAY", "3.25")
	t.Setenv("TINSEL_CAMERA_RIBBON_TAPER", "0.5")
	t.Setenv("TINSEL_POINTER_DOUBLE_CLICK_WINDOW", "400ms")
	t.Setenv("TINSEL_HAND_ENABLED", "false")
	t.Setenv("TINSEL_SCENE_PHOTO_COUNT", "3")
	t.Setenv("TINSEL_LOG_LEVEL", "warn")

	cfg, err := LoadConfigFromReader(strings.NewReader("[camera]\ntransition_delay = 1.0\n"))
	require.NoError(t, err)

	assert.Equal(t, 3.25, cfg.Camera.TransitionDelay, "env wins over file")
	assert.Equal(t, 0.5, cfg.Camera.Ribbon.Taper)
	assert.Equal(t, 400*time.Millisecond, cfg.Pointer.DoubleClickWindow.Duration)
	assert.False(t, cfg.Hand.Enabled)
	assert.Equal(t, 3, cfg.Scene.PhotoCount)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestApplyEnvBadValue(t *testing.T) {
	t.Setenv("TINSEL_SCENE_PHOTO_COUNT", "many")
	cfg := DefaultConfig()
	assert.ErrorContains(t, ApplyEnv(&cfg), "parse env")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero height", func(c *Config) { c.Camera.Ribbon.Height = 0 }},
		{"taper above one", func(c *Config) { c.Camera.Ribbon.Taper = 1.5 }},
		{"inverted velocity", func(c *Config) { c.Camera.MaxVelocity = 0.01 }},
		{"inverted distance", func(c *Config) { c.Camera.MaxDistance = 1 }},
		{"zero follow rate", func(c *Config) { c.Camera.FollowRate = 0 }},
		{"zero click window", func(c *Config) { c.Pointer.DoubleClickWindow.Duration = 0 }},
		{"zero pinch spread", func(c *Config) { c.Pointer.PinchSpread = 0 }},
		{"zero pinch threshold", func(c *Config) { c.Hand.PinchThreshold = 0 }},
		{"negative photos", func(c *Config) { c.Scene.PhotoCount = -1 }},
		{"inverted zoom", func(c *Config) { c.Scene.ZoomMin, c.Scene.ZoomMax = 5, -5 }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogConfig{Level: "warn"})
	logger.Info("hidden")
	logger.Warn("shown", "k", 1)
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "k=1")
}

func TestDurationText(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("1.5s")))
	assert.Equal(t, 1500*time.Millisecond, d.Duration)

	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1.5s", string(text))

	assert.Error(t, d.UnmarshalText([]byte("-1s")))
	assert.Error(t, d.UnmarshalText([]byte("later")))
}
