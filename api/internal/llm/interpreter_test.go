package llm

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"classroom-diag/api/internal/apperr"
	"classroom-diag/api/internal/types"
)

type fakeEngine struct {
	reply  string
	err    error
	prompt string
	calls  int
}

func (f *fakeEngine) Name() string     { return "fake" }
func (f *fakeEngine) GetModel() string { return "fake-1" }
func (f *fakeEngine) Generate(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	return f.reply, f.err
}

const oneErrorStep = `Sure! Here is the analysis:
{"stepByStepAnalysis":[{"step":1,"status":"error","content":"3 * 5 = 15","misconception":"none"}],
 "primaryMisconception":{"name":"n","description":"d","explanation":"e"},
 "feedback":{"encouragement":"a","correction":"b","memoryTip":"c"},
 "suggestedPractice":[]}
Let me know if you need more.`

func TestInterpret(t *testing.T) {
	eng := &fakeEngine{reply: oneErrorStep}
	in := Input{OCRText: "3 * 5 = 15", GradeLevel: "7th Grade", Topic: "Arithmetic"}
	res, err := NewInterpreter(eng, nil).Interpret(context.Background(), in)
	if err != nil {
		t.Fatalf("interpret error: %v", err)
	}
	if len(res.StepByStepAnalysis) != 1 || res.StepByStepAnalysis[0].Status() != types.StatusError {
		t.Fatalf("unexpected steps %+v", res.StepByStepAnalysis)
	}
	for _, want := range []string{`"3 * 5 = 15"`, "7th Grade Arithmetic problem", "stepByStepAnalysis"} {
		if !strings.Contains(eng.prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, eng.prompt)
		}
	}
}

func TestInterpretNoJSON(t *testing.T) {
	eng := &fakeEngine{reply: "I cannot analyze this image."}
	_, err := NewInterpreter(eng, nil).Interpret(context.Background(), Input{OCRText: "x"})
	if !errors.Is(err, apperr.ErrInterpretation) {
		t.Fatalf("expected interpretation failure, got %v", err)
	}
}

func TestInterpretWrongShape(t *testing.T) {
	eng := &fakeEngine{reply: `{"verdict":"fine"}`}
	_, err := NewInterpreter(eng, nil).Interpret(context.Background(), Input{OCRText: "x"})
	if !errors.Is(err, apperr.ErrInterpretation) {
		t.Fatalf("expected interpretation failure, got %v", err)
	}
}

func TestInterpretEngineError(t *testing.T) {
	eng := &fakeEngine{err: errors.New("quota exceeded")}
	_, err := NewInterpreter(eng, nil).Interpret(context.Background(), Input{OCRText: "x"})
	if !errors.Is(err, apperr.ErrInterpretation) || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("expected wrapped engine error, got %v", err)
	}
}

func TestLoadTemplateOverride(t *testing.T) {
	dir := t.TempDir()
	body := "Grade={{.GradeLevel}} Topic={{.Topic}} Text={{.OCRText}}"
	if err := os.WriteFile(filepath.Join(dir, "analyze.user.txt"), []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	tmpl, err := LoadTemplate(dir)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	eng := &fakeEngine{reply: oneErrorStep}
	if _, err := NewInterpreter(eng, tmpl).Interpret(context.Background(), Input{OCRText: "a=b", GradeLevel: "G", Topic: "T"}); err != nil {
		t.Fatalf("interpret error: %v", err)
	}
	if eng.prompt != "Grade=G Topic=T Text=a=b" {
		t.Fatalf("unexpected prompt %q", eng.prompt)
	}
}

func TestLoadTemplateBadSyntax(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "analyze.user.txt"), []byte("{{.Topic"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadTemplate(dir); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestGetEngine(t *testing.T) {
	engs := &Engines{Gemini: &fakeEngine{}}
	if _, err := engs.GetEngine(""); err != nil {
		t.Fatalf("expected default engine, got %v", err)
	}
	if _, err := engs.GetEngine("gpt"); err == nil {
		t.Fatalf("expected error for unconfigured gpt")
	}
	if _, err := engs.GetEngine("claude"); err == nil {
		t.Fatalf("expected error for unknown engine")
	}
}
