package typhoon_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"receiptflow/internal/config"
	"receiptflow/internal/ocr/typhoon"
)

func newTestEngine(serverURL string) *typhoon.Engine {
	cfg := &config.OCRConfig{
		APIKey: "test-typhoon-key",
		Model:  "typhoon-ocr-preview",
	}
	return typhoon.NewEngineWithEndpoint(cfg, serverURL)
}

func writePage(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func completionResponse(text string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": text,
				},
				"finish_reason": "stop",
			},
		},
	}
}

func TestEngine_ExtractText_Success(t *testing.T) {
	pageBytes := []byte("fake png bytes")
	path := writePage(t, "page_1.png", pageBytes)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-typhoon-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&reqBody)
		assert.NoError(t, err)
		assert.Equal(t, "typhoon-ocr-preview", reqBody["model"])
		assert.Equal(t, float64(0), reqBody["temperature"])

		messages := reqBody["messages"].([]interface{})
		assert.Len(t, messages, 1)
		content := messages[0].(map[string]interface{})["content"].([]interface{})
		assert.Len(t, content, 2)

		imagePart := content[0].(map[string]interface{})
		assert.Equal(t, "image_url", imagePart["type"])
		url := imagePart["image_url"].(map[string]interface{})["url"].(string)
		assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
		assert.Contains(t, url, base64.StdEncoding.EncodeToString(pageBytes))

		textPart := content[1].(map[string]interface{})
		assert.Equal(t, "text", textPart["type"])
		assert.NotEmpty(t, textPart["text"])

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(completionResponse("บริษัท ทดสอบ จำกัด\nเลขที่ 457"))
	}))
	defer server.Close()

	e := newTestEngine(server.URL)
	text, err := e.ExtractText(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "บริษัท ทดสอบ จำกัด\nเลขที่ 457", text)
}

func TestEngine_ExtractText_PDFMimeType(t *testing.T) {
	path := writePage(t, "scan.pdf", []byte("%PDF-1.4"))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqBody map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&reqBody)
		content := reqBody["messages"].([]interface{})[0].(map[string]interface{})["content"].([]interface{})
		url := content[0].(map[string]interface{})["image_url"].(map[string]interface{})["url"].(string)
		assert.True(t, strings.HasPrefix(url, "data:application/pdf;base64,"))

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(completionResponse("text"))
	}))
	defer server.Close()

	e := newTestEngine(server.URL)
	_, err := e.ExtractText(context.Background(), path)
	require.NoError(t, err)
}

func TestEngine_ExtractText_FileMissing(t *testing.T) {
	e := newTestEngine("http://127.0.0.1:0")
	_, err := e.ExtractText(context.Background(), filepath.Join(t.TempDir(), "missing.png"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "reading page file")
}

func TestEngine_ExtractText_APIError(t *testing.T) {
	path := writePage(t, "page_1.png", []byte("fake"))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid api key"}`))
	}))
	defer server.Close()

	e := newTestEngine(server.URL)
	_, err := e.ExtractText(context.Background(), path)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestEngine_ExtractText_NoChoices(t *testing.T) {
	path := writePage(t, "page_1.png", []byte("fake"))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	e := newTestEngine(server.URL)
	_, err := e.ExtractText(context.Background(), path)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestEngine_ExtractText_ContextCanceled(t *testing.T) {
	path := writePage(t, "page_1.png", []byte("fake"))

	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := newTestEngine(server.URL)
	_, err := e.ExtractText(ctx, path)

	assert.Error(t, err)
}
