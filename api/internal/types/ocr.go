package types

import (
	"encoding/base64"
	"strings"
)

// Image is an inline image payload handed to an OCR engine.
type Image struct {
	Data []byte
	MIME string
}

// DataURL renders the payload as data:<mime>;base64,<...>.
func (i Image) DataURL() string {
	mime := strings.TrimSpace(i.MIME)
	if mime == "" {
		mime = "image/jpeg"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// MathData is one structured notation item detected next to the plain text.
type MathData struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// OCRResult is the transcription of a work sample. Field names follow the
// Mathpix v3/text reply so the payload can be passed through as-is.
type OCRResult struct {
	RequestID      string     `json:"request_id,omitempty"`
	Text           string     `json:"text"`
	LatexStyled    string     `json:"latex_styled,omitempty"`
	Data           []MathData `json:"data,omitempty"`
	Confidence     float64    `json:"confidence,omitempty"`
	ConfidenceRate float64    `json:"confidence_rate,omitempty"`
	IsPrinted      bool       `json:"is_printed,omitempty"`
	IsHandwritten  bool       `json:"is_handwritten,omitempty"`
	ImageWidth     int        `json:"image_width,omitempty"`
	ImageHeight    int        `json:"image_height,omitempty"`
	Engine         string     `json:"engine,omitempty"`
}

// HasText reports whether the transcription contains anything besides whitespace.
func (r OCRResult) HasText() bool {
	return strings.TrimSpace(r.Text) != ""
}
