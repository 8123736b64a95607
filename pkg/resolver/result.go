package resolver

import (
	"time"

	"github.com/teslashibe/moodcam/pkg/emotions"
	"github.com/teslashibe/moodcam/pkg/imaging"
)

// Result is one resolved reading. It is built fresh per request.
type Result struct {
	ID              string         `json:"id"`
	Label           emotions.Label `json:"emotion"`
	Advice          string         `json:"advice"`
	Strategy        string         `json:"strategy"`
	Confidence      float32        `json:"confidence,omitempty"`
	Probabilities   []float32      `json:"probabilities,omitempty"`
	CameraAvailable bool           `json:"camera_available"`
	FrameCaptured   bool           `json:"frame_captured"`
	CameraIndex     int            `json:"camera_index"`
	Image           []byte         `json:"-"`
	CreatedAt       time.Time      `json:"created_at"`
}

// ImageBase64 returns the JPEG image as standard base64.
func (r *Result) ImageBase64() string {
	return imaging.EncodeBase64(r.Image)
}

// Demo reports whether the label was chosen at random.
func (r *Result) Demo() bool {
	return r.Strategy != StrategyClassifier
}

// Event is the image-less projection of a Result sent to subscribers.
type Event struct {
	ID              string    `json:"id"`
	Emotion         string    `json:"emotion"`
	Advice          string    `json:"advice"`
	Strategy        string    `json:"strategy"`
	Confidence      float32   `json:"confidence,omitempty"`
	CameraAvailable bool      `json:"camera_available"`
	FrameCaptured   bool      `json:"frame_captured"`
	CreatedAt       time.Time `json:"created_at"`
}

// Event returns the broadcast projection of r.
func (r *Result) Event() Event {
	return Event{
		ID:              r.ID,
		Emotion:         string(r.Label),
		Advice:          r.Advice,
		Strategy:        r.Strategy,
		Confidence:      r.Confidence,
		CameraAvailable: r.CameraAvailable,
		FrameCaptured:   r.FrameCaptured,
		CreatedAt:       r.CreatedAt,
	}
}
