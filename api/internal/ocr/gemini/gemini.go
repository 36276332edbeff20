package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"classroom-diag/api/internal/types"
	"classroom-diag/api/internal/util"
)

const instruction = `You transcribe PHOTOS of handwritten math and physics student work.
Copy every line exactly as written, top to bottom, including wrong steps. Do not fix, solve or comment.
Return STRICT JSON:
{
  "text": string,         // plain-text transcription, one line per written line
  "latex_styled": string  // the same content as LaTeX, "" if there is no math notation
}`

// Engine uses Gemini vision as an OCR provider.
type Engine struct {
	APIKey string
	Model  string
}

func New(apiKey, model string) *Engine {
	return &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }

func (e *Engine) Recognize(ctx context.Context, img types.Image) (types.OCRResult, error) {
	if e.APIKey == "" {
		return types.OCRResult{}, errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return types.OCRResult{}, err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      util.PtrFloat32(0),
		ResponseMIMEType: "application/json",
	}
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(instruction)}}

	mime := img.MIME
	if mime == "" {
		mime = "image/jpeg"
	}
	resp, err := m.GenerateContent(ctx,
		genai.Text("Transcribe this work sample. JSON only."),
		&genai.Blob{MIMEType: mime, Data: img.Data},
	)
	if err != nil {
		return types.OCRResult{}, fmt.Errorf("gemini ocr: %w", err)
	}
	return decodeReply(util.FirstText(resp))
}

func decodeReply(txt string) (types.OCRResult, error) {
	txt = util.StripCodeFences(txt)
	if txt == "" {
		return types.OCRResult{}, errors.New("gemini ocr: empty response")
	}
	var out struct {
		Text        string `json:"text"`
		LatexStyled string `json:"latex_styled"`
	}
	if err := json.Unmarshal([]byte(txt), &out); err != nil {
		return types.OCRResult{}, fmt.Errorf("gemini ocr: bad JSON: %w", err)
	}
	return types.OCRResult{
		Text:        strings.TrimSpace(out.Text),
		LatexStyled: strings.TrimSpace(out.LatexStyled),
		Engine:      "gemini",
	}, nil
}
