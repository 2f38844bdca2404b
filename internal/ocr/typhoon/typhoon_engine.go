// Package typhoon implements port.OCREngine against the Typhoon OCR API,
// an OpenAI-compatible chat-completions endpoint that returns the page text
// as the first choice's message content.
package typhoon

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"receiptflow/internal/config"
)

const (
	defaultBaseURL = "https://api.opentyphoon.ai/v1"

	// Instruction sent alongside the page image. The model returns the
	// recognized text in natural reading order.
	ocrPrompt = "Extract all text from this scanned document page. " +
		"Return the raw text only, preserving line breaks, with no commentary."
)

// Engine implements port.OCREngine using the Typhoon OCR API.
type Engine struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewEngine creates a Typhoon-backed OCR engine.
func NewEngine(cfg *config.OCRConfig) *Engine {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = "typhoon-ocr-preview"
	}
	return &Engine{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: base + "/chat/completions",
		// No client-level timeout: the caller bounds the call through ctx,
		// which also cancels the in-flight request on abandon.
		client: &http.Client{},
	}
}

// NewEngineWithEndpoint creates an engine pointing at a custom API endpoint (for testing).
func NewEngineWithEndpoint(cfg *config.OCRConfig, endpoint string) *Engine {
	e := NewEngine(cfg)
	e.endpoint = endpoint
	return e
}

func (e *Engine) ExtractText(ctx context.Context, path string) (string, error) {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading page file: %w", err)
	}

	mimeType := toMimeType(path)
	dataURI := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(fileBytes))

	reqBody := map[string]interface{}{
		"model": e.model,
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{
						"type":      "image_url",
						"image_url": map[string]interface{}{"url": dataURI},
					},
					{
						"type": "text",
						"text": ocrPrompt,
					},
				},
			},
		},
		"max_tokens":  16384,
		"temperature": 0,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling typhoon API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("typhoon API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500))
	}

	return parseResponse(respBody)
}

func toMimeType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".pdf":
		return "application/pdf"
	default:
		return "image/jpeg"
	}
}

// typhoonResponse models the OpenAI-compatible completion response.
type typhoonResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func parseResponse(body []byte) (string, error) {
	var resp typhoonResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from API: no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
