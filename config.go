package tinsel

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment override, e.g.
// TINSEL_CAMERA_TRANSITION_DELAY or TINSEL_POINTER_DOUBLE_CLICK_WINDOW.
const EnvPrefix = "TINSEL_"

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full session configuration.
type Config struct {
	Camera  CameraConfig  `toml:"camera" envPrefix:"CAMERA_"`
	Pointer PointerConfig `toml:"pointer" envPrefix:"POINTER_"`
	Hand    HandConfig    `toml:"hand" envPrefix:"HAND_"`
	Scene   SceneConfig   `toml:"scene" envPrefix:"SCENE_"`
	Log     LogConfig     `toml:"log" envPrefix:"LOG_"`
}

// SceneConfig holds session-level settings.
type SceneConfig struct {
	// PhotoCount is how many photos the scene shows; focus picks among the
	// first MaxFocusCandidates.
	PhotoCount int `toml:"photo_count" env:"PHOTO_COUNT"`
	// ZoomMin and ZoomMax bound the raw zoom offset.
	ZoomMin float64 `toml:"zoom_min" env:"ZOOM_MIN"`
	ZoomMax float64 `toml:"zoom_max" env:"ZOOM_MAX"`
	// Debug logs per-frame stats at debug level.
	Debug bool `toml:"debug" env:"DEBUG"`
}

// LogConfig selects the log level: debug, info, warn or error.
type LogConfig struct {
	Level string `toml:"level" env:"LEVEL"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Camera:  DefaultCameraConfig(),
		Pointer: DefaultPointerConfig(),
		Hand:    DefaultHandConfig(),
		Scene: SceneConfig{
			PhotoCount: 24,
			ZoomMin:    -10,
			ZoomMax:    15,
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig reads a TOML file over the defaults and applies environment
// overrides. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			if err := ApplyEnv(&cfg); err != nil {
				return Config{}, err
			}
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return LoadConfigFromReader(f)
}

// LoadConfigFromReader decodes TOML from r over the defaults and applies
// environment overrides.
func LoadConfigFromReader(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg fields from TINSEL_* environment variables.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate reports the first setting that would break the controller.
func (c Config) Validate() error {
	cam := c.Camera
	switch {
	case cam.Ribbon.Height <= 0 || cam.Ribbon.MaxRadius <= 0 || cam.Ribbon.Turns <= 0:
		return fmt.Errorf("%w: ribbon height, radius and turns must be positive", ErrInvalidConfig)
	case cam.Ribbon.Taper < 0 || cam.Ribbon.Taper > 1:
		return fmt.Errorf("%w: ribbon taper %v outside [0, 1]", ErrInvalidConfig, cam.Ribbon.Taper)
	case cam.MinVelocity < 0 || cam.MaxVelocity < cam.MinVelocity:
		return fmt.Errorf("%w: climb velocity range [%v, %v]", ErrInvalidConfig, cam.MinVelocity, cam.MaxVelocity)
	case cam.MinDistance <= 0 || cam.MaxDistance < cam.MinDistance:
		return fmt.Errorf("%w: distance range [%v, %v]", ErrInvalidConfig, cam.MinDistance, cam.MaxDistance)
	case cam.TransitionDelay < 0 || cam.VelocityRate <= 0 || cam.FollowRate <= 0 || cam.ZoomRate <= 0:
		return fmt.Errorf("%w: delays and rates must be positive", ErrInvalidConfig)
	case c.Pointer.DoubleClickWindow.Duration <= 0:
		return fmt.Errorf("%w: double click window must be positive", ErrInvalidConfig)
	case c.Pointer.PinchSpread <= 0 || c.Pointer.MouseSensitivity <= 0 || c.Pointer.TouchSensitivity <= 0:
		return fmt.Errorf("%w: pointer spread and sensitivities must be positive", ErrInvalidConfig)
	case c.Hand.PinchThreshold <= 0:
		return fmt.Errorf("%w: pinch threshold must be positive", ErrInvalidConfig)
	case c.Scene.PhotoCount < 0:
		return fmt.Errorf("%w: photo count %d", ErrInvalidConfig, c.Scene.PhotoCount)
	case c.Scene.ZoomMax < c.Scene.ZoomMin:
		return fmt.Errorf("%w: zoom range [%v, %v]", ErrInvalidConfig, c.Scene.ZoomMin, c.Scene.ZoomMax)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// SlogLevel parses Level.
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if c.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}

// NewLogger builds a text logger writing to w at the configured level.
func NewLogger(w io.Writer, cfg LogConfig) *slog.Logger {
	lvl, err := cfg.SlogLevel()
	if err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
