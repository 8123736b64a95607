package web

import (
	"fmt"
	"io"
)

// MJPEG framing.
const (
	Boundary          = "frame"
	StreamContentType = "multipart/x-mixed-replace; boundary=" + Boundary
)

// WritePart writes one JPEG as a multipart part:
//
//	--frame\r\nContent-Type: image/jpeg\r\n\r\n<jpeg>\r\n
func WritePart(w io.Writer, jpeg []byte) error {
	if _, err := fmt.Fprintf(w, "--%s\r\nContent-Type: image/jpeg\r\n\r\n", Boundary); err != nil {
		return err
	}
	if _, err := w.Write(jpeg); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\r\n")
	return err
}
