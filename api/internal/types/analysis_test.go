package types

import (
	"encoding/json"
	"strings"
	"testing"
)

const sampleReply = `{
  "stepByStepAnalysis": [
    {"step": 1, "status": "correct", "content": "F = m * a"},
    {"step": 2, "status": "ERROR", "content": "3 * 5 = 8", "misconception": "adds instead of multiplying"}
  ],
  "primaryMisconception": {"name": "Operation swap", "description": "d", "explanation": "e"},
  "feedback": {"encouragement": "Good setup", "correction": "Multiply", "memoryTip": "Times means groups"},
  "suggestedPractice": [{"problem": "4 * 6", "scaffolding": "Draw 4 groups"}],
  "confidence": 0.9
}`

func TestDecodeAnalysis(t *testing.T) {
	a, err := DecodeAnalysis([]byte(sampleReply))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(a.StepByStepAnalysis) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(a.StepByStepAnalysis))
	}
	if _, ok := a.StepByStepAnalysis[0].Verdict.(Correct); !ok {
		t.Fatalf("expected first step correct, got %#v", a.StepByStepAnalysis[0].Verdict)
	}
	m, ok := a.StepByStepAnalysis[1].Verdict.(Mistake)
	if !ok || m.Misconception != "adds instead of multiplying" {
		t.Fatalf("unexpected second verdict %#v", a.StepByStepAnalysis[1].Verdict)
	}
	if len(a.Mistakes()) != 1 {
		t.Fatalf("expected one mistake")
	}
	if a.Feedback.MemoryTip != "Times means groups" {
		t.Fatalf("unexpected feedback %+v", a.Feedback)
	}
}

func TestDecodeAnalysisMarshalsFourFields(t *testing.T) {
	a, err := DecodeAnalysis([]byte(sampleReply))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	b, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(b, &top); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if len(top) != 4 {
		t.Fatalf("expected 4 top-level fields, got %d: %s", len(top), b)
	}
	if strings.Contains(string(b), "confidence") {
		t.Fatalf("unknown reply fields must not leak: %s", b)
	}
	if !strings.Contains(string(b), `"status":"error","content":"3 * 5 = 8","misconception":"adds instead of multiplying"`) {
		t.Fatalf("unexpected step encoding: %s", b)
	}
	if strings.Contains(string(b), `"status":"correct","content":"F = m * a","misconception"`) {
		t.Fatalf("correct step must not carry a misconception: %s", b)
	}
}

func TestDecodeAnalysisRejectsWrongShape(t *testing.T) {
	cases := map[string]string{
		"missing feedback": `{"stepByStepAnalysis": [], "primaryMisconception": {}, "suggestedPractice": []}`,
		"null practice":    `{"stepByStepAnalysis": [], "primaryMisconception": {}, "feedback": {}, "suggestedPractice": null}`,
		"unknown status":   `{"stepByStepAnalysis": [{"step": 1, "status": "maybe"}], "primaryMisconception": {}, "feedback": {}, "suggestedPractice": []}`,
		"steps not a list": `{"stepByStepAnalysis": {"step": 1}, "primaryMisconception": {}, "feedback": {}, "suggestedPractice": []}`,
		"not an object":    `[1, 2]`,
		"empty":            ``,
	}
	for name, raw := range cases {
		if _, err := DecodeAnalysis([]byte(raw)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestDecodeAnalysisEmptyListsStayLists(t *testing.T) {
	a, err := DecodeAnalysis([]byte(`{"stepByStepAnalysis": [], "primaryMisconception": {}, "feedback": {}, "suggestedPractice": []}`))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	b, _ := json.Marshal(a)
	if !strings.Contains(string(b), `"stepByStepAnalysis":[]`) || !strings.Contains(string(b), `"suggestedPractice":[]`) {
		t.Fatalf("expected empty arrays, got %s", b)
	}
}

func TestImageDataURL(t *testing.T) {
	img := Image{Data: []byte("hi")}
	if got := img.DataURL(); got != "data:image/jpeg;base64,aGk=" {
		t.Fatalf("unexpected data url %s", got)
	}
}
