package llm

import (
	"fmt"
	"strings"
	"text/template"

	"classroom-diag/api/internal/util"
)

const defaultTemplate = `You are an expert math and physics teacher with 30 years of experience.
Analyze the following OCR transcription of a student's handwritten work for a {{.GradeLevel}} {{.Topic}} problem.

OCR Transcription:
"{{.OCRText}}"

Follow these pedagogical principles:
1. Mistake-Centered Learning: Identify specific conceptual errors vs procedural/arithmetic mistakes.
2. Confidence-Building Feedback: Acknowledge what the student did right first.
3. Growth Mindset: Reframe mistakes as learning opportunities.

Provide your analysis in JSON format with the following structure:
{
  "stepByStepAnalysis": [
    { "step": 1, "status": "correct", "content": "..." },
    { "step": 2, "status": "error", "content": "...", "misconception": "..." }
  ],
  "primaryMisconception": {
    "name": "...",
    "description": "...",
    "explanation": "..."
  },
  "feedback": {
    "encouragement": "...",
    "correction": "...",
    "memoryTip": "..."
  },
  "suggestedPractice": [
    { "problem": "...", "scaffolding": "..." }
  ]
}
"status" is either "correct" or "error". Return only the JSON object.`

// Input is what the interpretation stage knows about a work sample.
type Input struct {
	OCRText    string
	GradeLevel string
	Topic      string
}

// LoadTemplate returns the analyze prompt template: <dir>/analyze.user.txt
// when present, the built-in text otherwise.
func LoadTemplate(dir string) (*template.Template, error) {
	text, err := util.LoadPrompt(dir, "analyze", "user")
	if err != nil {
		return nil, err
	}
	if text == "" {
		text = defaultTemplate
	}
	tmpl, err := template.New("analyze").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("analyze prompt: %w", err)
	}
	return tmpl, nil
}

func render(tmpl *template.Template, in Input) (string, error) {
	var b strings.Builder
	if err := tmpl.Execute(&b, in); err != nil {
		return "", err
	}
	return b.String(), nil
}
