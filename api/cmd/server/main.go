package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"classroom-diag/api/internal/auth"
	"classroom-diag/api/internal/classroom"
	"classroom-diag/api/internal/config"
	"classroom-diag/api/internal/handle"
	"classroom-diag/api/internal/httpserver"
	"classroom-diag/api/internal/llm"
	llmgemini "classroom-diag/api/internal/llm/gemini"
	"classroom-diag/api/internal/llm/gpt"
	"classroom-diag/api/internal/ocr"
	ocrgemini "classroom-diag/api/internal/ocr/gemini"
	"classroom-diag/api/internal/ocr/mathpix"
	"classroom-diag/api/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	for _, w := range cfg.Warnings() {
		log.Printf("WARN %s", w)
	}

	ocrEngines := &ocr.Engines{
		Mathpix: mathpix.New(cfg.MathpixAppID, cfg.MathpixAppKey, cfg.MathpixBaseURL),
		Gemini:  ocrgemini.New(cfg.GeminiAPIKey, cfg.GeminiModel),
	}
	recognizer, err := ocrEngines.GetEngine(cfg.OCREngine)
	if err != nil {
		log.Fatalf("ocr: %v", err)
	}

	llmEngines := &llm.Engines{
		Gemini: llmgemini.New(cfg.GeminiAPIKey, cfg.GeminiModel),
		OpenAI: gpt.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL),
	}
	engine, err := llmEngines.GetEngine(cfg.LLMProvider)
	if err != nil {
		log.Fatalf("llm: %v", err)
	}
	tmpl, err := llm.LoadTemplate(cfg.PromptDir)
	if err != nil {
		log.Fatalf("prompt: %v", err)
	}

	gw := classroom.New(classroom.Options{MaxFileBytes: cfg.MaxFileBytes})
	p := pipeline.New(gw, recognizer, llm.NewInterpreter(engine, tmpl))
	p.GradeLevel, p.Topic = cfg.DefaultGradeLevel, cfg.DefaultTopic

	creds := auth.Chain{
		auth.Bearer{},
		auth.Session{Secret: cfg.SessionSecret, Cookie: cfg.SessionCookie},
	}
	h := handle.New(gw, p, creds, handle.Options{
		Timeout:    cfg.RequestTimeout,
		LoginURL:   cfg.LoginURL,
		GradeLevel: cfg.DefaultGradeLevel,
		Topic:      cfg.DefaultTopic,
	})

	log.Printf("classroom-diag ocr=%s llm=%s model=%s", recognizer.Name(), engine.Name(), engine.GetModel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := httpserver.New(":"+cfg.Port, h.Routes(cfg.CORSOrigins), cfg.RequestTimeout)
	if err := httpserver.Run(ctx, srv); err != nil {
		log.Fatalf("server: %v", err)
	}
}
