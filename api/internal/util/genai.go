package util

import (
	"strings"

	"github.com/google/generative-ai-go/genai"
)

// FirstText joins the text parts of the first candidate that has content.
func FirstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		var b strings.Builder
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
		if b.Len() > 0 {
			return b.String()
		}
	}
	return ""
}

func PtrFloat32(v float32) *float32 { return &v }

func PtrInt32(v int32) *int32 { return &v }
