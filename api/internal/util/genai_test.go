package util

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func TestFirstText(t *testing.T) {
	if got := FirstText(nil); got != "" {
		t.Fatalf("expected empty text for nil response, got %q", got)
	}
	resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
		{Content: nil},
		{Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"a":`), genai.Text(`1}`)}}},
	}}
	if got := FirstText(resp); got != `{"a":1}` {
		t.Fatalf("unexpected text %q", got)
	}
}
