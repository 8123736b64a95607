package config

import (
	"testing"
)

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	want := Default()
	if cfg != want {
		t.Errorf("defaults mismatch:\n got %+v\nwant %+v", cfg, want)
	}
	if cfg.Addr() != "0.0.0.0:5000" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
}

func TestLoadFromOverrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"PORT":         "8080",
		"CAMERA_INDEX": "2",
		"MOODCAM_DEMO": "true",
		"MOODCAM_SEED": "42",
		"ADVICE_PATH":  "advice.yaml",
		"JPEG_QUALITY": "70",
	})
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.CameraIndex != 2 {
		t.Errorf("CameraIndex = %d, want 2", cfg.CameraIndex)
	}
	if !cfg.Demo {
		t.Error("expected Demo to be true")
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Seed)
	}
	if cfg.AdvicePath != "advice.yaml" {
		t.Errorf("AdvicePath = %q", cfg.AdvicePath)
	}
	if cfg.JPEGQuality != 70 {
		t.Errorf("JPEGQuality = %d, want 70", cfg.JPEGQuality)
	}
}

func TestValidateInvalid(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"port not numeric", map[string]string{"PORT": "http"}},
		{"port out of range", map[string]string{"PORT": "70000"}},
		{"quality too high", map[string]string{"JPEG_QUALITY": "101"}},
		{"fps zero", map[string]string{"STREAM_FPS": "0"}},
		{"demo and require model", map[string]string{"MOODCAM_DEMO": "true", "MOODCAM_REQUIRE_MODEL": "true"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := LoadFrom(tc.vars)
			if err != nil {
				t.Fatalf("LoadFrom failed: %v", err)
			}
			err = cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !IsConfigError(err) {
				t.Errorf("expected *config.Error, got %T: %v", err, err)
			}
		})
	}
}

func TestLoadFromUnparsable(t *testing.T) {
	_, err := LoadFrom(map[string]string{"CAMERA_INDEX": "first"})
	if err == nil {
		t.Fatal("expected parse error")
	}
	if IsConfigError(err) {
		t.Error("parse errors should not be reported as validation errors")
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "9090" || cfg.LogLevel != "debug" {
		t.Errorf("env not applied: %+v", cfg)
	}
}

func TestLoadDoesNotValidate(t *testing.T) {
	// A bad env value may still be overridden by a flag, so Load leaves
	// validation to the caller.
	t.Setenv("PORT", "abc")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "abc" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if !IsConfigError(cfg.Validate()) {
		t.Error("expected Validate to reject the port")
	}
}
