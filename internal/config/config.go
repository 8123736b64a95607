// Package config loads moodcam's operator configuration.
//
// Values come from, in increasing priority: struct defaults, an optional .env
// file, process environment variables, and CLI flags applied by cmd/moodcam.
package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Default configuration values.
const (
	DefaultPort        = "5000"
	DefaultHost        = "0.0.0.0"
	DefaultModelPath   = "model/emotion_model.onnx"
	DefaultAdvicePath  = "data/advice.json"
	DefaultMaxIndex    = 5
	DefaultJPEGQuality = 85
	DefaultStreamFPS   = 15
)

// Config holds everything the serve command needs.
// Flag parsing is done in cmd/moodcam; this struct is data only.
type Config struct {
	// HTTP surface.
	Host string `env:"MOODCAM_HOST" envDefault:"0.0.0.0"`
	Port string `env:"PORT" envDefault:"5000"`

	// Camera. CameraIndex < 0 means no preference.
	CameraIndex    int `env:"CAMERA_INDEX" envDefault:"-1"`
	CameraMaxIndex int `env:"CAMERA_MAX_INDEX" envDefault:"5"`
	FrameWidth     int `env:"FRAME_WIDTH" envDefault:"640"`
	FrameHeight    int `env:"FRAME_HEIGHT" envDefault:"480"`

	// Classifier.
	ModelPath    string `env:"MODEL_PATH" envDefault:"model/emotion_model.onnx"`
	RequireModel bool   `env:"MOODCAM_REQUIRE_MODEL" envDefault:"false"`
	Demo         bool   `env:"MOODCAM_DEMO" envDefault:"false"`

	// Optional YuNet model. When set the classifier sees face crops.
	FaceModelPath string `env:"FACE_MODEL_PATH"`

	// Advice mapping (JSON or YAML).
	AdvicePath string `env:"ADVICE_PATH" envDefault:"data/advice.json"`

	// Seed for the random label picker. 0 means seed from the clock.
	Seed uint64 `env:"MOODCAM_SEED" envDefault:"0"`

	// Encoding and streaming.
	JPEGQuality int `env:"JPEG_QUALITY" envDefault:"85"`
	StreamFPS   int `env:"STREAM_FPS" envDefault:"15"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	AccessLog bool   `env:"MOODCAM_ACCESS_LOG" envDefault:"false"`
}

// Error represents a configuration validation error.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Default returns the configuration used when no environment is set.
func Default() Config {
	return Config{
		Host:           DefaultHost,
		Port:           DefaultPort,
		CameraIndex:    -1,
		CameraMaxIndex: DefaultMaxIndex,
		FrameWidth:     640,
		FrameHeight:    480,
		ModelPath:      DefaultModelPath,
		AdvicePath:     DefaultAdvicePath,
		JPEGQuality:    DefaultJPEGQuality,
		StreamFPS:      DefaultStreamFPS,
		LogLevel:       "info",
	}
}

// Load reads an optional .env file and then the process environment.
// The result is not validated; callers apply flag overrides first and then
// call Validate.
func Load() (Config, error) {
	// .env is optional, don't fail if not found
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// LoadFrom parses configuration from the given variables only.
func LoadFrom(vars map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Validate checks that values are usable. Camera probing limits are checked
// by camera.Config.Validate.
func (c *Config) Validate() error {
	if p, err := strconv.Atoi(c.Port); err != nil || p < 1 || p > 65535 {
		return &Error{Field: "Port", Message: fmt.Sprintf("invalid port %q", c.Port)}
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return &Error{Field: "JPEGQuality", Message: "must be between 1 and 100"}
	}
	if c.StreamFPS < 1 || c.StreamFPS > 60 {
		return &Error{Field: "StreamFPS", Message: "must be between 1 and 60"}
	}
	if c.AdvicePath == "" {
		return &Error{Field: "AdvicePath", Message: "ADVICE_PATH is required"}
	}
	if c.Demo && c.RequireModel {
		return &Error{Field: "Demo", Message: "MOODCAM_DEMO and MOODCAM_REQUIRE_MODEL are mutually exclusive"}
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// IsConfigError reports whether err is a validation error.
func IsConfigError(err error) bool {
	var cerr *Error
	return errors.As(err, &cerr)
}
