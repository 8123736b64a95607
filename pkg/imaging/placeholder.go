package imaging

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Placeholder frame messages.
const (
	CameraNotAvailable = "Camera not available"
	CameraReadFailed   = "Camera read failed"
	DemoBanner         = "DEMO MODE - Random Emotion Detection"
)

// Placeholder returns a black w x h frame with the given message and the
// demo banner beneath it, drawn from the left edge at mid-height.
func Placeholder(w, h int, message string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	x := w / 12
	y := h / 2
	DrawText(img, Line{Text: message, Pos: image.Pt(x, y-2*face.Height), Scale: 2, Color: White})
	DrawText(img, Line{Text: DemoBanner, Pos: image.Pt(x, y+face.Height), Scale: 1, Color: Yellow})
	return img
}
