package mathpix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"classroom-diag/api/internal/types"
)

const DefaultBaseURL = "https://api.mathpix.com"

type Engine struct {
	appID   string
	appKey  string
	baseURL string
	httpc   *http.Client
}

func New(appID, appKey, baseURL string) *Engine {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Engine{
		appID:   strings.TrimSpace(appID),
		appKey:  strings.TrimSpace(appKey),
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 60 * time.Second},
	}
}

// WithHTTPClient overrides the internal HTTP client.
func (e *Engine) WithHTTPClient(c *http.Client) *Engine {
	if c != nil {
		e.httpc = c
	}
	return e
}

func (e *Engine) Name() string { return "mathpix" }

type dataOptions struct {
	IncludeLatex bool `json:"include_latex"`
}

type request struct {
	Src         string      `json:"src"`
	Formats     []string    `json:"formats"`
	DataOptions dataOptions `json:"data_options"`
}

type response struct {
	types.OCRResult
	Error     string `json:"error,omitempty"`
	ErrorInfo *struct {
		ID      string `json:"id"`
		Message string `json:"message"`
	} `json:"error_info,omitempty"`
}

func (e *Engine) Recognize(ctx context.Context, img types.Image) (types.OCRResult, error) {
	if e.appID == "" || e.appKey == "" {
		return types.OCRResult{}, fmt.Errorf("MATHPIX_APP_ID/MATHPIX_APP_KEY are empty")
	}
	payload, err := json.Marshal(request{
		Src:         img.DataURL(),
		Formats:     []string{"text", "data", "latex_styled"},
		DataOptions: dataOptions{IncludeLatex: true},
	})
	if err != nil {
		return types.OCRResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/v3/text", bytes.NewReader(payload))
	if err != nil {
		return types.OCRResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("app_id", e.appID)
	req.Header.Set("app_key", e.appKey)

	resp, err := e.httpc.Do(req)
	if err != nil {
		return types.OCRResult{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return types.OCRResult{}, fmt.Errorf("mathpix %d: %s", resp.StatusCode, strings.TrimSpace(string(x)))
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return types.OCRResult{}, fmt.Errorf("mathpix: bad JSON: %w", err)
	}
	if out.Error != "" {
		msg := out.Error
		if out.ErrorInfo != nil && out.ErrorInfo.ID != "" {
			msg = out.ErrorInfo.ID + ": " + msg
		}
		return types.OCRResult{}, fmt.Errorf("mathpix: %s", msg)
	}
	res := out.OCRResult
	res.Text = strings.TrimSpace(res.Text)
	res.Engine = e.Name()
	return res, nil
}
