package imaging

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Overlay colors.
var (
	Green  = color.RGBA{G: 255, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow = color.RGBA{R: 255, G: 255, A: 255}
)

// Line is one piece of overlay text. Pos is the top-left corner.
type Line struct {
	Text  string
	Pos   image.Point
	Scale int
	Color color.Color
}

var face = basicfont.Face7x13

// TextSize returns the pixel size of text at the given scale.
func TextSize(text string, scale int) image.Point {
	if scale < 1 {
		scale = 1
	}
	w := font.MeasureString(face, text).Ceil()
	return image.Pt(w*scale, face.Height*scale)
}

// DrawText renders a line onto dst. The 7x13 bitmap font is drawn once at
// native size and enlarged with nearest-neighbour scaling so it stays crisp.
func DrawText(dst draw.Image, l Line) {
	if l.Text == "" {
		return
	}
	scale := l.Scale
	if scale < 1 {
		scale = 1
	}
	col := l.Color
	if col == nil {
		col = White
	}

	native := TextSize(l.Text, 1)
	mask := image.NewRGBA(image.Rect(0, 0, native.X, native.Y))
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(l.Text)

	if scale == 1 {
		draw.Draw(dst, mask.Bounds().Add(l.Pos), mask, image.Point{}, draw.Over)
		return
	}
	target := image.Rectangle{Min: l.Pos, Max: l.Pos.Add(native.Mul(scale))}
	draw.NearestNeighbor.Scale(dst, target, mask, mask.Bounds(), draw.Over, nil)
}

// Annotate returns an RGBA copy of src with the lines drawn on it. src is
// not modified.
func Annotate(src image.Image, lines ...Line) *image.RGBA {
	b := src.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), src, b.Min, draw.Src)
	for _, l := range lines {
		DrawText(out, l)
	}
	return out
}
