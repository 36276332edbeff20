package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadPrompt reads <PROMPT_DIR>/<name>.<tp>.txt. It returns "" and no error
// when the directory is not configured or the file is absent, so callers can
// fall back to their built-in text.
func LoadPrompt(dir, name, tp string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", nil
	}
	p := filepath.Join(dir, fmt.Sprintf("%s.%s.txt", name, tp))
	b, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("prompt %q: %w", p, err)
	}
	return strings.TrimSpace(string(b)), nil
}
