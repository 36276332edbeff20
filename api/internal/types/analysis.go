package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// StepStatus is the wire label of a step verdict.
type StepStatus string

const (
	StatusCorrect StepStatus = "correct"
	StatusError   StepStatus = "error"
)

// Verdict is the graded outcome of one solution step: Correct or Mistake.
type Verdict interface {
	Status() StepStatus
}

// Correct marks a step without errors.
type Correct struct{}

func (Correct) Status() StepStatus { return StatusCorrect }

// Mistake marks a wrong step. Misconception may be empty when the model
// attributes the error to nothing conceptual.
type Mistake struct {
	Misconception string
}

func (Mistake) Status() StepStatus { return StatusError }

// Step is one graded line of the student's solution.
type Step struct {
	Index   int
	Content string
	Verdict Verdict
}

func (s Step) Status() StepStatus {
	if s.Verdict == nil {
		return ""
	}
	return s.Verdict.Status()
}

func (s Step) Misconception() string {
	if m, ok := s.Verdict.(Mistake); ok {
		return m.Misconception
	}
	return ""
}

type stepWire struct {
	Step          int        `json:"step"`
	Status        StepStatus `json:"status"`
	Content       string     `json:"content"`
	Misconception string     `json:"misconception,omitempty"`
}

func (s Step) MarshalJSON() ([]byte, error) {
	w := stepWire{Step: s.Index, Content: s.Content}
	switch v := s.Verdict.(type) {
	case Mistake:
		w.Status = StatusError
		w.Misconception = v.Misconception
	case nil:
		return nil, fmt.Errorf("step %d: missing verdict", s.Index)
	default:
		w.Status = v.Status()
	}
	return json.Marshal(w)
}

func (s *Step) UnmarshalJSON(b []byte) error {
	var w stepWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	s.Index = w.Step
	s.Content = w.Content
	switch StepStatus(strings.ToLower(strings.TrimSpace(string(w.Status)))) {
	case StatusCorrect:
		s.Verdict = Correct{}
	case StatusError:
		s.Verdict = Mistake{Misconception: strings.TrimSpace(w.Misconception)}
	default:
		return fmt.Errorf("step %d: unknown status %q", w.Step, w.Status)
	}
	return nil
}

// Misconception is the primary conceptual error found in the work sample.
type Misconception struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Explanation string `json:"explanation"`
}

// Feedback is the teacher-facing comment for the student.
type Feedback struct {
	Encouragement string `json:"encouragement"`
	Correction    string `json:"correction"`
	MemoryTip     string `json:"memoryTip"`
}

// Practice is one suggested follow-up problem.
type Practice struct {
	Problem     string `json:"problem"`
	Scaffolding string `json:"scaffolding"`
}

// AnalysisResult is the diagnostic produced for one work sample.
type AnalysisResult struct {
	StepByStepAnalysis   []Step        `json:"stepByStepAnalysis"`
	PrimaryMisconception Misconception `json:"primaryMisconception"`
	Feedback             Feedback      `json:"feedback"`
	SuggestedPractice    []Practice    `json:"suggestedPractice"`
}

var analysisFields = []string{"stepByStepAnalysis", "primaryMisconception", "feedback", "suggestedPractice"}

// DecodeAnalysis validates and decodes a model reply object. All four
// top-level fields must be present and every step must carry a known status.
func DecodeAnalysis(raw []byte) (AnalysisResult, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return AnalysisResult{}, errors.New("analysis: empty object")
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return AnalysisResult{}, fmt.Errorf("analysis: bad JSON: %w", err)
	}
	for _, k := range analysisFields {
		v, ok := top[k]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return AnalysisResult{}, fmt.Errorf("analysis: missing field %q", k)
		}
	}

	var out AnalysisResult
	if err := json.Unmarshal(top["stepByStepAnalysis"], &out.StepByStepAnalysis); err != nil {
		return AnalysisResult{}, fmt.Errorf("analysis: stepByStepAnalysis: %w", err)
	}
	if err := json.Unmarshal(top["primaryMisconception"], &out.PrimaryMisconception); err != nil {
		return AnalysisResult{}, fmt.Errorf("analysis: primaryMisconception: %w", err)
	}
	if err := json.Unmarshal(top["feedback"], &out.Feedback); err != nil {
		return AnalysisResult{}, fmt.Errorf("analysis: feedback: %w", err)
	}
	if err := json.Unmarshal(top["suggestedPractice"], &out.SuggestedPractice); err != nil {
		return AnalysisResult{}, fmt.Errorf("analysis: suggestedPractice: %w", err)
	}
	if out.StepByStepAnalysis == nil {
		out.StepByStepAnalysis = []Step{}
	}
	if out.SuggestedPractice == nil {
		out.SuggestedPractice = []Practice{}
	}
	return out, nil
}

// Mistakes returns the steps graded as errors.
func (a AnalysisResult) Mistakes() []Step {
	var out []Step
	for _, s := range a.StepByStepAnalysis {
		if _, ok := s.Verdict.(Mistake); ok {
			out = append(out, s)
		}
	}
	return out
}
