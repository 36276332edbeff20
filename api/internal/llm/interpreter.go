package llm

import (
	"context"
	"fmt"
	"log"
	"text/template"

	"classroom-diag/api/internal/apperr"
	"classroom-diag/api/internal/types"
	"classroom-diag/api/internal/util"
)

// Interpreter turns an OCR transcription into a typed diagnostic.
type Interpreter struct {
	engine Engine
	tmpl   *template.Template
}

func NewInterpreter(engine Engine, tmpl *template.Template) *Interpreter {
	if tmpl == nil {
		tmpl = template.Must(template.New("analyze").Parse(defaultTemplate))
	}
	return &Interpreter{engine: engine, tmpl: tmpl}
}

func (i *Interpreter) Name() string { return i.engine.Name() }

func (i *Interpreter) Interpret(ctx context.Context, in Input) (types.AnalysisResult, error) {
	prompt, err := render(i.tmpl, in)
	if err != nil {
		return types.AnalysisResult{}, fmt.Errorf("%w: prompt: %v", apperr.ErrInterpretation, err)
	}

	reply, err := i.engine.Generate(ctx, prompt)
	if err != nil {
		return types.AnalysisResult{}, fmt.Errorf("%w: %s: %v", apperr.ErrInterpretation, i.engine.Name(), err)
	}

	obj, ok := util.FirstJSONObject(reply)
	if !ok {
		log.Printf("interpret: engine=%s model=%s reply without JSON: %q", i.engine.Name(), i.engine.GetModel(), util.Truncate(reply, 200))
		return types.AnalysisResult{}, fmt.Errorf("%w: no JSON object in %s reply", apperr.ErrInterpretation, i.engine.Name())
	}

	res, err := types.DecodeAnalysis([]byte(obj))
	if err != nil {
		return types.AnalysisResult{}, fmt.Errorf("%w: %v", apperr.ErrInterpretation, err)
	}
	return res, nil
}
