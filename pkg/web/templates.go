package web

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/teslashibe/moodcam/pkg/imaging"
	"github.com/teslashibe/moodcam/pkg/resolver"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type indexPage struct {
	Title  string
	Status resolver.Status
}

type resultPage struct {
	Emotion    string
	Advice     string
	Strategy   string
	Demo       bool
	Confidence float32
	Image      template.URL
}

func render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newResultPage(res *resolver.Result) resultPage {
	return resultPage{
		Emotion:    string(res.Label),
		Advice:     res.Advice,
		Strategy:   res.Strategy,
		Demo:       res.Demo(),
		Confidence: res.Confidence * 100,
		// DataURI output is base64 only, so it is safe to mark as a URL.
		Image: template.URL(imaging.DataURI(res.Image)),
	}
}
