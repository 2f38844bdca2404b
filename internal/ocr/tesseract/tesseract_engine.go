// Package tesseract implements port.OCREngine with a local Tesseract install
// through gosseract. Tesseract offers no cancellation hook: when the caller's
// context expires the recognition keeps running to completion and its result
// is discarded.
package tesseract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/otiai10/gosseract/v2"

	"receiptflow/internal/config"
)

// Engine implements port.OCREngine using a local Tesseract installation.
type Engine struct {
	language string
}

// NewEngine creates a Tesseract-backed OCR engine.
func NewEngine(cfg *config.OCRConfig) *Engine {
	lang := cfg.Language
	if lang == "" {
		lang = "tha+eng"
	}
	return &Engine{language: lang}
}

// ExtractText runs Tesseract over the page image at path.
// A fresh client per call: gosseract clients are not safe for concurrent use.
func (e *Engine) ExtractText(ctx context.Context, path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("page file not accessible: %w", err)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving page path: %w", err)
	}

	client := gosseract.NewClient()
	defer func() { _ = client.Close() }()

	if err := client.SetLanguage(e.language); err != nil {
		return "", fmt.Errorf("setting ocr language: %w", err)
	}
	// Receipts are a single uniform block of text.
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", fmt.Errorf("setting page segmentation mode: %w", err)
	}
	if err := client.SetImage(absPath); err != nil {
		return "", fmt.Errorf("setting image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("extracting text: %w", err)
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	return text, nil
}
