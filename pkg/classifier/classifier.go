// Package classifier turns a frame into one of the emotion labels using an
// opaque model behind the Classifier interface.
package classifier

import (
	"context"
	"fmt"
	"image"
	"math"

	"github.com/teslashibe/moodcam/pkg/emotions"
	"golang.org/x/image/draw"
)

// InputSize is the side length of the square grayscale model input.
const InputSize = 48

// Classifier runs a forward pass over a normalized 48x48 input and returns
// one score per emotion label, in emotions.Labels order.
type Classifier interface {
	Predict(ctx context.Context, input []float32) ([]float32, error)
	Close() error
}

// Prediction is the outcome of classifying one frame.
type Prediction struct {
	Label         emotions.Label `json:"label"`
	Index         int            `json:"index"`
	Confidence    float32        `json:"confidence"`
	Probabilities []float32      `json:"probabilities"`
}

// Classify normalizes the frame, runs the classifier and picks the label.
// A panic inside the classifier is returned as a *PanicError.
func Classify(ctx context.Context, c Classifier, frame image.Image) (pred *Prediction, err error) {
	if c == nil {
		return nil, ErrModelNotFound
	}
	if frame == nil || frame.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty frame", ErrInference)
	}

	defer func() {
		if r := recover(); r != nil {
			pred = nil
			err = &PanicError{Value: r}
		}
	}()

	scores, err := c.Predict(ctx, Normalize(frame))
	if err != nil {
		return nil, err
	}
	if len(scores) != emotions.Count {
		return nil, fmt.Errorf("%w: got %d scores, want %d", ErrBadOutput, len(scores), emotions.Count)
	}

	for i, v := range scores {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return nil, fmt.Errorf("%w: non-finite score at %d", ErrBadOutput, i)
		}
	}

	probs := Probabilities(scores)
	idx, conf := Argmax(probs)
	label, _ := emotions.At(idx)

	return &Prediction{
		Label:         label,
		Index:         idx,
		Confidence:    conf,
		Probabilities: probs,
	}, nil
}

// Normalize converts a frame to grayscale, resizes it to InputSize square
// with bilinear interpolation and scales intensities to [0,1]. The result is
// row-major.
func Normalize(frame image.Image) []float32 {
	b := frame.Bounds()

	gray, ok := frame.(*image.Gray)
	if !ok {
		gray = image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(gray, gray.Bounds(), frame, b.Min, draw.Src)
	}

	small := image.NewGray(image.Rect(0, 0, InputSize, InputSize))
	draw.BiLinear.Scale(small, small.Bounds(), gray, gray.Bounds(), draw.Src, nil)

	out := make([]float32, InputSize*InputSize)
	for y := 0; y < InputSize; y++ {
		row := small.Pix[y*small.Stride : y*small.Stride+InputSize]
		for x, v := range row {
			out[y*InputSize+x] = float32(v) / 255
		}
	}
	return out
}

// Argmax returns the index and value of the largest score. Ties go to the
// lowest index. An empty slice yields -1.
func Argmax(scores []float32) (int, float32) {
	best := -1
	var max float32
	for i, s := range scores {
		if best < 0 || s > max {
			best, max = i, s
		}
	}
	return best, max
}

// Probabilities returns scores as a distribution. Outputs that already look
// like one (non-negative, summing to ~1) are copied unchanged; anything else
// is treated as logits and passed through softmax.
func Probabilities(scores []float32) []float32 {
	out := make([]float32, len(scores))
	var sum float64
	isDist := true
	for _, s := range scores {
		if s < 0 || math.IsNaN(float64(s)) {
			isDist = false
		}
		sum += float64(s)
	}
	if isDist && math.Abs(sum-1) < 1e-3 {
		copy(out, scores)
		return out
	}

	idx, max := Argmax(scores)
	if idx < 0 {
		return out
	}
	var total float64
	for i, s := range scores {
		e := math.Exp(float64(s - max))
		out[i] = float32(e)
		total += e
	}
	for i := range out {
		out[i] = float32(float64(out[i]) / total)
	}
	return out
}
