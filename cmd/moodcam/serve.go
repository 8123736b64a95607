package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/teslashibe/moodcam/internal/config"
	"github.com/teslashibe/moodcam/internal/log"
	"github.com/teslashibe/moodcam/pkg/camera"
	"github.com/teslashibe/moodcam/pkg/camera/opencv"
	"github.com/teslashibe/moodcam/pkg/classifier"
	"github.com/teslashibe/moodcam/pkg/classifier/onnx"
	"github.com/teslashibe/moodcam/pkg/emotions"
	"github.com/teslashibe/moodcam/pkg/face"
	"github.com/teslashibe/moodcam/pkg/face/yunet"
	"github.com/teslashibe/moodcam/pkg/hub"
	"github.com/teslashibe/moodcam/pkg/resolver"
	"github.com/teslashibe/moodcam/pkg/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the HTTP server with the live feed at / and /video_feed, single-shot
advice at /get_advice and the JSON API under /api.`,
	RunE: runServe,
}

func init() {
	addServeFlags(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log.Init(cfg.LogLevel)
	logger := log.L()

	advice, err := loadAdvice(cfg, logger)
	if err != nil {
		return err
	}

	clf, err := loadClassifier(cfg, logger)
	if err != nil {
		return err
	}
	if clf != nil {
		defer clf.Close()
	}

	faces := loadFaceDetector(cfg, clf, logger)
	if faces != nil {
		defer faces.Close()
	}

	src := camera.New(cameraConfig(cfg),
		opencv.Opener(cfg.FrameWidth, cfg.FrameHeight),
		camera.WithLogger(logger),
	)
	defer src.Close()

	res := resolver.New(src, advice,
		resolver.WithClassifier(clf),
		resolver.WithFaceDetector(faces),
		resolver.WithPicker(resolver.NewPicker(cfg.Seed)),
		resolver.WithQuality(cfg.JPEGQuality),
		resolver.WithFrameSize(cfg.FrameWidth, cfg.FrameHeight),
		resolver.WithLogger(logger),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	readings := hub.New("readings", hub.WithLogger(logger))
	go readings.Run(ctx)

	srv := web.NewServer(web.Config{
		Addr:      cfg.Addr(),
		StreamFPS: cfg.StreamFPS,
		AccessLog: cfg.AccessLog,
		Logger:    logger,
	}, res, readings)

	st := res.Status()
	logger.Info("moodcam starting",
		"version", version,
		"addr", cfg.Addr(),
		"mode", st.Mode,
		"seed", st.Seed,
	)

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	logger.Info("moodcam stopped")
	return nil
}

// loadAdvice reads the advice file. Any failure is fatal.
func loadAdvice(cfg config.Config, logger *slog.Logger) (*emotions.AdviceBook, error) {
	book, err := emotions.LoadAdvice(cfg.AdvicePath)
	if err != nil {
		return nil, err
	}
	if missing := book.Missing(); len(missing) > 0 {
		logger.Warn("advice missing for some emotions", "emotions", missing)
	}
	if unknown := book.Unknown(); len(unknown) > 0 {
		logger.Warn("advice file has unknown keys", "keys", unknown)
	}
	if dups := book.Duplicates(); len(dups) > 0 {
		logger.Warn("advice file names some emotions twice, ignoring keys", "keys", dups)
	}
	logger.Info("advice loaded", "path", cfg.AdvicePath, "entries", book.Len())
	return book, nil
}

// loadClassifier returns nil without error when the service should run in
// demo mode.
func loadClassifier(cfg config.Config, logger *slog.Logger) (classifier.Classifier, error) {
	if cfg.Demo {
		logger.Info("demo mode requested, not loading model")
		return nil, nil
	}

	net, err := onnx.Load(onnx.Config{ModelPath: cfg.ModelPath, Logger: logger})
	if err != nil {
		if cfg.RequireModel {
			return nil, err
		}
		if errors.Is(err, classifier.ErrModelNotFound) {
			logger.Warn("emotion model not found, running in demo mode", "path", cfg.ModelPath)
		} else {
			logger.Warn("emotion model failed to load, running in demo mode", "path", cfg.ModelPath, "error", err)
		}
		return nil, nil
	}
	return net, nil
}

// loadFaceDetector is best effort. Without it the classifier sees whole
// frames.
func loadFaceDetector(cfg config.Config, clf classifier.Classifier, logger *slog.Logger) face.Detector {
	if cfg.FaceModelPath == "" || clf == nil {
		return nil
	}
	yc := yunet.DefaultConfig()
	yc.ModelPath = cfg.FaceModelPath
	det, err := yunet.New(yc)
	if err != nil {
		logger.Warn("face detector unavailable, classifying whole frames", "path", cfg.FaceModelPath, "error", err)
		return nil
	}
	logger.Info("face detector loaded", "path", cfg.FaceModelPath)
	return det
}
