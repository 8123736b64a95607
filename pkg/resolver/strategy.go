package resolver

import (
	"context"
	"errors"
	"image"

	"github.com/teslashibe/moodcam/pkg/camera"
	"github.com/teslashibe/moodcam/pkg/classifier"
	"github.com/teslashibe/moodcam/pkg/emotions"
	"github.com/teslashibe/moodcam/pkg/face"
	"github.com/teslashibe/moodcam/pkg/imaging"
)

// Strategy names.
const (
	StrategyClassifier        = "classifier"
	StrategyCameraUnavailable = "camera_unavailable"
	StrategyRandom            = "random"
)

// Input is what one capture attempt produced.
type Input struct {
	Frame       image.Image
	FrameErr    error
	CameraState camera.State
	CameraIndex int
}

// HasFrame reports whether a frame was captured.
func (in *Input) HasFrame() bool {
	return in.Frame != nil
}

// Selection is a strategy's answer: a label and the image it applies to.
type Selection struct {
	Label         emotions.Label
	Confidence    float32
	Probabilities []float32
	Image         image.Image

	// FaceFound is set when the classifier saw a face crop.
	FaceFound bool
}

// Strategy is one step of the ordered resolution list. Applies is its
// precondition; Select may still decline by returning an error, in which
// case the next strategy is tried.
type Strategy interface {
	Name() string
	Applies(in *Input) bool
	Select(ctx context.Context, in *Input) (*Selection, error)
}

// ClassifierStrategy labels a real frame with the model. With a face
// detector the model sees the best face crop; without one, or when no face
// is found, it sees the whole frame.
type ClassifierStrategy struct {
	Classifier classifier.Classifier
	Faces      face.Detector
}

func (s *ClassifierStrategy) Name() string { return StrategyClassifier }

func (s *ClassifierStrategy) Applies(in *Input) bool {
	return in.HasFrame() && s.Classifier != nil
}

func (s *ClassifierStrategy) Select(ctx context.Context, in *Input) (*Selection, error) {
	subject, found := in.Frame, false
	if s.Faces != nil {
		// Detection errors are not fatal; classify the whole frame.
		subject, found, _ = face.CropBest(s.Faces, in.Frame, face.DefaultMargin)
	}

	pred, err := classifier.Classify(ctx, s.Classifier, subject)
	if err != nil {
		return nil, err
	}
	return &Selection{
		Label:         pred.Label,
		Confidence:    pred.Confidence,
		Probabilities: pred.Probabilities,
		Image:         in.Frame,
		FaceFound:     found,
	}, nil
}

// UnavailableStrategy answers when no frame could be captured.
type UnavailableStrategy struct {
	Picker *Picker
	Width  int
	Height int
}

func (s *UnavailableStrategy) Name() string { return StrategyCameraUnavailable }

func (s *UnavailableStrategy) Applies(in *Input) bool {
	return !in.HasFrame()
}

func (s *UnavailableStrategy) Select(_ context.Context, in *Input) (*Selection, error) {
	return &Selection{
		Label: s.Picker.Label(),
		Image: imaging.Placeholder(s.Width, s.Height, placeholderMessage(in.FrameErr)),
	}, nil
}

// RandomStrategy always applies. It keeps the real frame when there is one.
type RandomStrategy struct {
	Picker *Picker
	Width  int
	Height int
}

func (s *RandomStrategy) Name() string { return StrategyRandom }

func (s *RandomStrategy) Applies(*Input) bool { return true }

func (s *RandomStrategy) Select(_ context.Context, in *Input) (*Selection, error) {
	img := in.Frame
	if img == nil {
		img = imaging.Placeholder(s.Width, s.Height, placeholderMessage(in.FrameErr))
	}
	return &Selection{Label: s.Picker.Label(), Image: img}, nil
}

// placeholderMessage distinguishes a device that was never bound from one
// that was bound and then failed to deliver.
func placeholderMessage(err error) string {
	if errors.Is(err, camera.ErrReadFailed) {
		return imaging.CameraReadFailed
	}
	return imaging.CameraNotAvailable
}
