package llm

import (
	"context"
	"fmt"
)

// Engine sends one prompt to a generative-text provider and returns its raw reply.
type Engine interface {
	Name() string
	GetModel() string
	Generate(ctx context.Context, prompt string) (string, error)
}

type Engines struct {
	Gemini Engine
	OpenAI Engine
}

func (e *Engines) GetEngine(llmName string) (Engine, error) {
	var eng Engine
	switch llmName {
	case "", "gemini":
		eng = e.Gemini
	case "gpt", "openai":
		eng = e.OpenAI
	default:
		return nil, fmt.Errorf("unknown llm_name %q; use 'gemini' or 'gpt'", llmName)
	}
	if eng == nil {
		return nil, fmt.Errorf("llm engine %q is not configured", llmName)
	}
	return eng, nil
}
