package ocr

import (
	"context"
	"fmt"

	"classroom-diag/api/internal/types"
)

type Engine interface {
	Name() string
	Recognize(ctx context.Context, img types.Image) (types.OCRResult, error)
}

type Engines struct {
	Mathpix Engine
	Gemini  Engine
}

func (e *Engines) GetEngine(name string) (Engine, error) {
	var eng Engine
	switch name {
	case "", "mathpix":
		eng = e.Mathpix
	case "gemini":
		eng = e.Gemini
	default:
		return nil, fmt.Errorf("unknown ocr engine %q; use 'mathpix' or 'gemini'", name)
	}
	if eng == nil {
		return nil, fmt.Errorf("ocr engine %q is not configured", name)
	}
	return eng, nil
}
