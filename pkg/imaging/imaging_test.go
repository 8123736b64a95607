package imaging

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"
)

func TestPlaceholder(t *testing.T) {
	img := Placeholder(640, 480, CameraNotAvailable)
	if img.Bounds().Dx() != 640 || img.Bounds().Dy() != 480 {
		t.Fatalf("unexpected size %v", img.Bounds())
	}

	// Corner stays black, text region has lit pixels.
	if c := img.RGBAAt(0, 0); c.R != 0 || c.G != 0 || c.B != 0 {
		t.Errorf("corner should be black, got %v", c)
	}
	lit := 0
	for y := 0; y < 480; y++ {
		for x := 0; x < 640; x++ {
			if img.RGBAAt(x, y).R > 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("placeholder has no text pixels")
	}
}

func TestPlaceholderJPEGRoundTrip(t *testing.T) {
	data, err := EncodeJPEG(Placeholder(640, 480, CameraReadFailed), 85)
	if err != nil {
		t.Fatalf("EncodeJPEG failed: %v", err)
	}
	if len(data) < 2 || data[0] != 0xFF || data[1] != 0xD8 {
		t.Fatal("output is not a JPEG")
	}

	img, err := DecodeJPEG(data)
	if err != nil {
		t.Fatalf("DecodeJPEG failed: %v", err)
	}
	if img.Bounds().Dx() != 640 || img.Bounds().Dy() != 480 {
		t.Errorf("decoded size %v", img.Bounds())
	}
}

func TestEncodeJPEGErrors(t *testing.T) {
	if _, err := EncodeJPEG(nil, 85); !errors.Is(err, ErrEncode) {
		t.Errorf("nil image: expected ErrEncode, got %v", err)
	}
	empty := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if _, err := EncodeJPEG(empty, 85); !errors.Is(err, ErrEncode) {
		t.Errorf("empty image: expected ErrEncode, got %v", err)
	}
}

func TestEncodeJPEGQualityFallback(t *testing.T) {
	img := Placeholder(160, 120, "x")
	if _, err := EncodeJPEG(img, 0); err != nil {
		t.Errorf("quality 0 should fall back to default: %v", err)
	}
	if _, err := EncodeJPEG(img, 500); err != nil {
		t.Errorf("quality 500 should fall back to default: %v", err)
	}
}

func TestBase64RoundTrip(t *testing.T) {
	data, err := EncodeJPEG(Placeholder(320, 240, "hello"), 90)
	if err != nil {
		t.Fatal(err)
	}

	b64 := EncodeBase64(data)
	img, err := DecodeBase64Image(b64)
	if err != nil {
		t.Fatalf("DecodeBase64Image failed: %v", err)
	}
	if img.Bounds().Dx() != 320 {
		t.Errorf("decoded width %d", img.Bounds().Dx())
	}

	uri := DataURI(data)
	if !strings.HasPrefix(uri, "data:image/jpeg;base64,") || !strings.HasSuffix(uri, b64) {
		t.Errorf("unexpected data URI prefix: %.40s", uri)
	}

	if _, err := DecodeBase64Image("not base64!"); err == nil {
		t.Error("expected error for invalid base64")
	}
}

func TestAnnotateLeavesSourceUntouched(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 200, 100))
	out := Annotate(src, Line{Text: "Happy (87%)", Pos: image.Pt(10, 10), Scale: 2, Color: Green})

	for _, v := range src.Pix {
		if v != 0 {
			t.Fatal("source image was modified")
		}
	}

	green := 0
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			if out.RGBAAt(x, y).G > 0 {
				green++
			}
		}
	}
	if green == 0 {
		t.Error("annotation drew nothing")
	}
}

func TestAnnotateOffsetBounds(t *testing.T) {
	sub := image.NewRGBA(image.Rect(50, 50, 150, 150))
	sub.Set(50, 50, color.White)
	out := Annotate(sub)
	if out.Bounds().Min != (image.Point{}) {
		t.Errorf("expected zero-origin output, got %v", out.Bounds())
	}
	if c := out.RGBAAt(0, 0); c.R != 255 {
		t.Errorf("expected source pixel copied to origin, got %v", c)
	}
}

func TestTextSize(t *testing.T) {
	one := TextSize("abc", 1)
	two := TextSize("abc", 2)
	if two.X != one.X*2 || two.Y != one.Y*2 {
		t.Errorf("scale 2 size %v should double %v", two, one)
	}
	if one.X != 21 || one.Y != 13 {
		t.Errorf("TextSize(abc) = %v, want (21,13)", one)
	}
}
