// Package imaging builds, annotates and encodes frames.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
)

// DefaultQuality is the JPEG quality used when none is configured.
const DefaultQuality = 85

// ErrEncode is returned when a frame cannot be encoded.
var ErrEncode = errors.New("imaging: encode failed")

// EncodeJPEG encodes img at the given quality (1-100). Out-of-range values
// fall back to DefaultQuality.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrEncode)
	}
	if quality < 1 || quality > 100 {
		quality = DefaultQuality
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return buf.Bytes(), nil
}

// DecodeJPEG decodes JPEG bytes.
func DecodeJPEG(data []byte) (image.Image, error) {
	return jpeg.Decode(bytes.NewReader(data))
}

// EncodeBase64 encodes raw JPEG bytes for embedding in text.
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeBase64Image decodes a base64 JPEG string to an image.
func DecodeBase64Image(b64 string) (image.Image, error) {
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, err
	}
	return DecodeJPEG(data)
}

// DataURI returns a data: URI suitable for an <img> src attribute.
func DataURI(jpegData []byte) string {
	return "data:image/jpeg;base64," + EncodeBase64(jpegData)
}
