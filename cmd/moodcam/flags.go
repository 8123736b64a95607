package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/teslashibe/moodcam/internal/config"
	"github.com/teslashibe/moodcam/pkg/camera"
)

// Flag values. Only flags the user actually set override the environment.
var (
	flagHost         string
	flagPort         string
	flagCameraIndex  int
	flagMaxIndex     int
	flagModelPath    string
	flagFaceModel    string
	flagAdvicePath   string
	flagDemo         bool
	flagRequireModel bool
	flagSeed         uint64
	flagLogLevel     string
	flagAccessLog    bool
)

func addCameraFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagCameraIndex, "camera", -1, "Preferred camera index (env CAMERA_INDEX)")
	cmd.Flags().IntVar(&flagMaxIndex, "max-index", config.DefaultMaxIndex, "Probe indices below this value (env CAMERA_MAX_INDEX)")
}

func addServeFlags(cmd *cobra.Command) {
	addCameraFlags(cmd)
	cmd.Flags().StringVar(&flagHost, "host", config.DefaultHost, "Listen host (env MOODCAM_HOST)")
	cmd.Flags().StringVarP(&flagPort, "port", "p", config.DefaultPort, "Listen port (env PORT)")
	cmd.Flags().StringVar(&flagModelPath, "model", config.DefaultModelPath, "ONNX emotion model (env MODEL_PATH)")
	cmd.Flags().StringVar(&flagFaceModel, "face-model", "", "Optional YuNet face model; classify face crops (env FACE_MODEL_PATH)")
	cmd.Flags().StringVar(&flagAdvicePath, "advice", config.DefaultAdvicePath, "Advice file, JSON or YAML (env ADVICE_PATH)")
	cmd.Flags().BoolVar(&flagDemo, "demo", false, "Skip the model and pick emotions at random (env MOODCAM_DEMO)")
	cmd.Flags().BoolVar(&flagRequireModel, "require-model", false, "Exit if the model cannot be loaded (env MOODCAM_REQUIRE_MODEL)")
	cmd.Flags().Uint64Var(&flagSeed, "seed", 0, "Seed for random emotions, 0 for a random seed (env MOODCAM_SEED)")
	cmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "debug, info, warn or error (env LOG_LEVEL)")
	cmd.Flags().BoolVar(&flagAccessLog, "access-log", false, "Log every HTTP request (env MOODCAM_ACCESS_LOG)")
}

// loadConfig reads .env and the environment, then applies explicitly set
// flags on top and validates the result.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	applyFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	cam := cameraConfig(cfg)
	if errs := cam.Validate(); len(errs) > 0 {
		return config.Config{}, &config.Error{Field: "Camera", Message: strings.Join(errs, "; ")}
	}
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("host") {
		cfg.Host = flagHost
	}
	if f.Changed("port") {
		cfg.Port = flagPort
	}
	if f.Changed("camera") {
		cfg.CameraIndex = flagCameraIndex
	}
	if f.Changed("max-index") {
		cfg.CameraMaxIndex = flagMaxIndex
	}
	if f.Changed("model") {
		cfg.ModelPath = flagModelPath
	}
	if f.Changed("face-model") {
		cfg.FaceModelPath = flagFaceModel
	}
	if f.Changed("advice") {
		cfg.AdvicePath = flagAdvicePath
	}
	if f.Changed("demo") {
		cfg.Demo = flagDemo
	}
	if f.Changed("require-model") {
		cfg.RequireModel = flagRequireModel
	}
	if f.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if f.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if f.Changed("access-log") {
		cfg.AccessLog = flagAccessLog
	}
}

func cameraConfig(cfg config.Config) camera.Config {
	return camera.Config{
		PreferredIndex: cfg.CameraIndex,
		MaxIndex:       cfg.CameraMaxIndex,
		Width:          cfg.FrameWidth,
		Height:         cfg.FrameHeight,
	}
}
