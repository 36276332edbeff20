package ocr

import (
	"context"
	"testing"

	"classroom-diag/api/internal/types"
)

type namedEngine string

func (n namedEngine) Name() string { return string(n) }
func (n namedEngine) Recognize(context.Context, types.Image) (types.OCRResult, error) {
	return types.OCRResult{Engine: string(n)}, nil
}

func TestGetEngine(t *testing.T) {
	engs := &Engines{Mathpix: namedEngine("mathpix")}
	e, err := engs.GetEngine("")
	if err != nil || e.Name() != "mathpix" {
		t.Fatalf("expected mathpix default, got %v %v", e, err)
	}
	if _, err := engs.GetEngine("gemini"); err == nil {
		t.Fatalf("expected error for unconfigured gemini")
	}
	if _, err := engs.GetEngine("tesseract"); err == nil {
		t.Fatalf("expected error for unknown engine")
	}
}
