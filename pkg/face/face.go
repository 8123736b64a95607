// Package face locates faces in a frame so the classifier can be given a
// tight crop instead of the whole picture.
package face

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// DefaultMargin widens a crop by this fraction of the box on each side.
const DefaultMargin = 0.1

// Detection represents a detected face
type Detection struct {
	X, Y       float64 // Top-left corner (0-1 normalized)
	W, H       float64 // Width and height (0-1 normalized)
	Confidence float64 // Detection confidence (0-1)
}

// Center returns the center point of the detection
func (d Detection) Center() (x, y float64) {
	return d.X + d.W/2, d.Y + d.H/2
}

// Area returns the area of the bounding box
func (d Detection) Area() float64 {
	return d.W * d.H
}

// Rect maps the detection into bounds, grown by margin and clipped.
func (d Detection) Rect(bounds image.Rectangle, margin float64) image.Rectangle {
	bw, bh := float64(bounds.Dx()), float64(bounds.Dy())
	mx, my := d.W*margin, d.H*margin

	px := func(v, size float64) int { return int(math.Round(v * size)) }
	r := image.Rect(
		bounds.Min.X+px(d.X-mx, bw),
		bounds.Min.Y+px(d.Y-my, bh),
		bounds.Min.X+px(d.X+d.W+mx, bw),
		bounds.Min.Y+px(d.Y+d.H+my, bh),
	)
	return r.Intersect(bounds)
}

// Detector finds faces in a frame.
type Detector interface {
	Detect(img image.Image) ([]Detection, error)
	Close() error
}

// SelectBest picks the face to classify.
// Priority: confidence * 0.7 + relative area * 0.3
func SelectBest(dets []Detection) *Detection {
	if len(dets) == 0 {
		return nil
	}
	if len(dets) == 1 {
		return &dets[0]
	}

	maxArea := 0.0
	for _, d := range dets {
		if d.Area() > maxArea {
			maxArea = d.Area()
		}
	}

	bestScore := -1.0
	var best *Detection
	for i := range dets {
		score := dets[i].Confidence * 0.7
		if maxArea > 0 {
			score += (dets[i].Area() / maxArea) * 0.3
		}
		if score > bestScore {
			bestScore = score
			best = &dets[i]
		}
	}
	return best
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// Crop returns the region of img covered by d plus margin. An empty region
// returns img unchanged.
func Crop(img image.Image, d Detection, margin float64) image.Image {
	r := d.Rect(img.Bounds(), margin)
	if r.Empty() {
		return img
	}
	if si, ok := img.(subImager); ok {
		return si.SubImage(r)
	}
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), img, r.Min, draw.Src)
	return out
}

// CropBest detects faces and crops to the best one. When there is no
// face, or detection fails, it returns the whole frame and found=false.
func CropBest(det Detector, img image.Image, margin float64) (out image.Image, found bool, err error) {
	dets, err := det.Detect(img)
	if err != nil {
		return img, false, err
	}
	best := SelectBest(dets)
	if best == nil {
		return img, false, nil
	}
	return Crop(img, *best, margin), true, nil
}
