package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string `yaml:"port"`

	OCREngine   string `yaml:"ocrEngine"`
	LLMProvider string `yaml:"llmProvider"`

	GeminiAPIKey  string `yaml:"-"`
	GeminiModel   string `yaml:"geminiModel"`
	OpenAIAPIKey  string `yaml:"-"`
	OpenAIModel   string `yaml:"openaiModel"`
	OpenAIBaseURL string `yaml:"openaiBaseURL"`

	MathpixAppID   string `yaml:"-"`
	MathpixAppKey  string `yaml:"-"`
	MathpixBaseURL string `yaml:"mathpixBaseURL"`

	SessionSecret string `yaml:"-"`
	SessionCookie string `yaml:"sessionCookie"`
	LoginURL      string `yaml:"loginURL"`

	CORSOrigins    []string      `yaml:"corsOrigins"`
	RequestTimeout time.Duration `yaml:"requestTimeout"`
	MaxFileBytes   int64         `yaml:"maxFileBytes"`

	PromptDir         string `yaml:"promptDir"`
	DefaultGradeLevel string `yaml:"defaultGradeLevel"`
	DefaultTopic      string `yaml:"defaultTopic"`
}

func defaults() *Config {
	return &Config{
		Port:              "8000",
		OCREngine:         "mathpix",
		LLMProvider:       "gemini",
		GeminiModel:       "gemini-2.5-flash",
		OpenAIModel:       "gpt-4o-mini",
		MathpixBaseURL:    "https://api.mathpix.com",
		SessionCookie:     "session-token",
		LoginURL:          "/api/auth/signin",
		RequestTimeout:    180 * time.Second,
		MaxFileBytes:      20 << 20,
		DefaultGradeLevel: "9th Grade",
		DefaultTopic:      "Math/Physics",
	}
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getEnvDuration(k string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		if s, err := strconv.Atoi(v); err == nil {
			return time.Duration(s) * time.Second
		}
		log.Printf("config: ignoring bad duration %s=%q", k, v)
	}
	return def
}

func getEnvInt64(k string, def int64) int64 {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
		log.Printf("config: ignoring bad integer %s=%q", k, v)
	}
	return def
}

func getEnvList(k string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load builds the configuration from, in increasing priority: built-in
// defaults, a YAML file at CONFIG_PATH, a .env file and the process environment.
// Secrets are only ever read from the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env not loaded: %v", err)
	}

	cfg := defaults()
	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.OCREngine = strings.ToLower(getEnv("OCR_ENGINE", cfg.OCREngine))
	cfg.LLMProvider = strings.ToLower(getEnv("LLM_PROVIDER", cfg.LLMProvider))

	cfg.GeminiAPIKey = getEnv("GEMINI_API_KEY", "")
	cfg.GeminiModel = getEnv("GEMINI_MODEL", cfg.GeminiModel)
	cfg.OpenAIAPIKey = getEnv("OPENAI_API_KEY", "")
	cfg.OpenAIModel = getEnv("OPENAI_MODEL", cfg.OpenAIModel)
	cfg.OpenAIBaseURL = getEnv("OPENAI_BASE_URL", cfg.OpenAIBaseURL)

	cfg.MathpixAppID = getEnv("MATHPIX_APP_ID", "")
	cfg.MathpixAppKey = getEnv("MATHPIX_APP_KEY", "")
	cfg.MathpixBaseURL = getEnv("MATHPIX_BASE_URL", cfg.MathpixBaseURL)

	cfg.SessionSecret = getEnv("SESSION_SECRET", "")
	cfg.SessionCookie = getEnv("SESSION_COOKIE", cfg.SessionCookie)
	cfg.LoginURL = getEnv("LOGIN_URL", cfg.LoginURL)

	cfg.CORSOrigins = getEnvList("CORS_ORIGINS", cfg.CORSOrigins)
	cfg.RequestTimeout = getEnvDuration("REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.MaxFileBytes = getEnvInt64("MAX_FILE_BYTES", cfg.MaxFileBytes)

	cfg.PromptDir = getEnv("PROMPT_DIR", cfg.PromptDir)
	cfg.DefaultGradeLevel = getEnv("DEFAULT_GRADE_LEVEL", cfg.DefaultGradeLevel)
	cfg.DefaultTopic = getEnv("DEFAULT_TOPIC", cfg.DefaultTopic)

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	return nil
}

// Warnings lists missing credentials that do not prevent serving but will
// make the matching requests fail downstream.
func (c *Config) Warnings() []string {
	var out []string
	switch c.LLMProvider {
	case "gpt", "openai":
		if c.OpenAIAPIKey == "" {
			out = append(out, "OPENAI_API_KEY is not set; analysis requests will fail")
		}
	default:
		if c.GeminiAPIKey == "" {
			out = append(out, "GEMINI_API_KEY is not set; analysis requests will fail")
		}
	}
	switch c.OCREngine {
	case "gemini":
		if c.GeminiAPIKey == "" {
			out = append(out, "GEMINI_API_KEY is not set; OCR requests will fail")
		}
	default:
		if c.MathpixAppID == "" || c.MathpixAppKey == "" {
			out = append(out, "MATHPIX_APP_ID/MATHPIX_APP_KEY are not set; OCR requests will fail")
		}
	}
	if c.SessionSecret == "" {
		out = append(out, "SESSION_SECRET is not set; only bearer credentials are accepted")
	}
	return out
}
