// Package resolver turns the current camera outcome into an emotion label,
// advice text and an annotated JPEG.
//
// Resolution walks an ordered list of strategies. The first strategy whose
// precondition holds and which does not decline wins; the built-in list is
// classifier, camera_unavailable, random. Nothing is cached between calls.
package resolver

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/teslashibe/moodcam/pkg/camera"
	"github.com/teslashibe/moodcam/pkg/classifier"
	"github.com/teslashibe/moodcam/pkg/emotions"
	"github.com/teslashibe/moodcam/pkg/face"
	"github.com/teslashibe/moodcam/pkg/imaging"
)

// FrameSource is the camera as the resolver sees it. *camera.Source
// satisfies it.
type FrameSource interface {
	Read() (image.Image, error)
	State() camera.State
	Index() int
}

// Resolver produces readings. It is safe for concurrent use.
type Resolver struct {
	source     FrameSource
	classifier classifier.Classifier
	faces      face.Detector
	advice     *emotions.AdviceBook
	picker     *Picker
	strategies []Strategy
	quality    int
	width      int
	height     int
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithClassifier enables the classifier strategy. Nil leaves it disabled.
func WithClassifier(c classifier.Classifier) Option {
	return func(r *Resolver) { r.classifier = c }
}

// WithFaceDetector crops frames to the best face before classification.
func WithFaceDetector(d face.Detector) Option {
	return func(r *Resolver) { r.faces = d }
}

// WithPicker sets the random label source.
func WithPicker(p *Picker) Option {
	return func(r *Resolver) { r.picker = p }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// WithQuality sets the JPEG quality.
func WithQuality(q int) Option {
	return func(r *Resolver) { r.quality = q }
}

// WithFrameSize sets the placeholder frame size.
func WithFrameSize(w, h int) Option {
	return func(r *Resolver) {
		if w > 0 && h > 0 {
			r.width, r.height = w, h
		}
	}
}

// WithStrategies replaces the built-in strategy list.
func WithStrategies(s ...Strategy) Option {
	return func(r *Resolver) { r.strategies = s }
}

// WithClock overrides time.Now for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// New creates a Resolver. A nil source behaves as a camera that never binds.
func New(source FrameSource, advice *emotions.AdviceBook, opts ...Option) *Resolver {
	r := &Resolver{
		source:  source,
		advice:  advice,
		quality: imaging.DefaultQuality,
		width:   camera.DefaultWidth,
		height:  camera.DefaultHeight,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.picker == nil {
		r.picker = NewPicker(0)
	}
	if r.strategies == nil {
		r.strategies = DefaultStrategies(r.classifier, r.faces, r.picker, r.width, r.height)
	}
	r.logger = r.logger.With("component", "resolver")
	return r
}

// DefaultStrategies returns the built-in list: classifier, camera_unavailable,
// random.
func DefaultStrategies(c classifier.Classifier, faces face.Detector, p *Picker, w, h int) []Strategy {
	return []Strategy{
		&ClassifierStrategy{Classifier: c, Faces: faces},
		&UnavailableStrategy{Picker: p, Width: w, Height: h},
		&RandomStrategy{Picker: p, Width: w, Height: h},
	}
}

// Resolve captures a frame and produces a reading. Classifier and camera
// failures are absorbed by the fallback strategies; an error means no
// reading could be produced at all.
func (r *Resolver) Resolve(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	in := r.capture()

	for i, s := range r.strategies {
		if !s.Applies(in) {
			continue
		}

		sel, err := s.Select(ctx, in)
		if err != nil {
			r.logger.Warn("strategy declined, trying next",
				"strategy", s.Name(),
				"strategy_index", i,
				"error", err,
			)
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}

		return r.finish(s.Name(), sel, in)
	}

	return nil, ErrNoStrategy
}

func (r *Resolver) capture() *Input {
	if r.source == nil {
		return &Input{FrameErr: camera.ErrUnavailable, CameraState: camera.StateUnavailable, CameraIndex: -1}
	}

	frame, err := r.source.Read()
	in := &Input{
		Frame:       frame,
		FrameErr:    err,
		CameraState: r.source.State(),
		CameraIndex: r.source.Index(),
	}
	if err != nil {
		in.Frame = nil
		r.logger.Debug("no frame captured", "error", err)
	}
	return in
}

func (r *Resolver) finish(strategy string, sel *Selection, in *Input) (*Result, error) {
	img := imaging.Annotate(sel.Image, overlay(strategy, sel)...)

	data, err := imaging.EncodeJPEG(img, r.quality)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	res := &Result{
		ID:              uuid.NewString(),
		Label:           sel.Label,
		Advice:          r.advice.Lookup(sel.Label),
		Strategy:        strategy,
		Confidence:      sel.Confidence,
		Probabilities:   sel.Probabilities,
		CameraAvailable: in.CameraState == camera.StateBound,
		FrameCaptured:   in.HasFrame(),
		CameraIndex:     in.CameraIndex,
		Image:           data,
		CreatedAt:       r.now(),
	}

	r.logger.Debug("reading resolved",
		"id", res.ID,
		"emotion", res.Label,
		"strategy", strategy,
		"face_found", sel.FaceFound,
		"camera_available", res.CameraAvailable,
		"frame_captured", res.FrameCaptured,
	)
	return res, nil
}

func overlay(strategy string, sel *Selection) []imaging.Line {
	if strategy == StrategyClassifier {
		return []imaging.Line{{
			Text:  fmt.Sprintf("%s (%.0f%%)", sel.Label, sel.Confidence*100),
			Pos:   image.Pt(10, 10),
			Scale: 2,
			Color: imaging.Green,
		}}
	}
	return []imaging.Line{
		{Text: "DEMO: " + string(sel.Label), Pos: image.Pt(10, 10), Scale: 2, Color: imaging.Green},
		{Text: "Random emotion generated", Pos: image.Pt(10, 44), Scale: 1, Color: imaging.Yellow},
	}
}

// StreamFrame produces one JPEG for the continuous feed: the live frame,
// bannered when no classifier is loaded, or a placeholder when capture
// failed.
func (r *Resolver) StreamFrame(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	in := r.capture()

	var img image.Image
	switch {
	case !in.HasFrame():
		img = imaging.Placeholder(r.width, r.height, placeholderMessage(in.FrameErr))
	case r.classifier == nil:
		b := in.Frame.Bounds()
		img = imaging.Annotate(in.Frame, imaging.Line{
			Text:  imaging.DemoBanner,
			Pos:   image.Pt(10, b.Dy()-24),
			Scale: 1,
			Color: imaging.Yellow,
		})
	default:
		img = in.Frame
	}

	data, err := imaging.EncodeJPEG(img, r.quality)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return data, nil
}

// Status describes the resolver's operating mode.
type Status struct {
	Mode             string   `json:"mode"`
	CameraState      string   `json:"camera_state"`
	CameraIndex      int      `json:"camera_index"`
	ClassifierLoaded bool     `json:"classifier_loaded"`
	FaceDetection    bool     `json:"face_detection"`
	Strategies       []string `json:"strategies"`
	AdviceMissing    []string `json:"advice_missing,omitempty"`
	Seed             uint64   `json:"seed"`
}

// Mode names.
const (
	ModeLive = "live"
	ModeDemo = "demo"
)

// Status reports the current mode without touching the camera.
func (r *Resolver) Status() Status {
	st := Status{
		Mode:             ModeDemo,
		CameraState:      camera.StateUnavailable.String(),
		CameraIndex:      -1,
		ClassifierLoaded: r.classifier != nil,
		FaceDetection:    r.faces != nil,
		Seed:             r.picker.Seed(),
	}
	if r.classifier != nil {
		st.Mode = ModeLive
	}
	if r.source != nil {
		st.CameraState = r.source.State().String()
		st.CameraIndex = r.source.Index()
	}
	for _, s := range r.strategies {
		st.Strategies = append(st.Strategies, s.Name())
	}
	for _, l := range r.advice.Missing() {
		st.AdviceMissing = append(st.AdviceMissing, string(l))
	}
	return st
}

// Labels returns the label set with the advice for each.
func (r *Resolver) Labels() []LabelAdvice {
	out := make([]LabelAdvice, 0, emotions.Count)
	for _, l := range emotions.Labels {
		out = append(out, LabelAdvice{Emotion: string(l), Advice: r.advice.Lookup(l)})
	}
	return out
}

// LabelAdvice pairs a label with its advice.
type LabelAdvice struct {
	Emotion string `json:"emotion"`
	Advice  string `json:"advice"`
}
