package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"analyzer-backend/internal/llm"
)

type fakeClient struct {
	output    json.RawMessage
	err       error
	lastInput llm.AnalyzeInput
}

func (f *fakeClient) AnalyzeCode(_ context.Context, in llm.AnalyzeInput) (json.RawMessage, error) {
	f.lastInput = in
	if f.err != nil {
		return nil, f.err
	}
	return f.output, nil
}

func newTestRouter(t *testing.T, client llm.Client) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(NewService(client, "gpt-3.5-turbo"), t.TempDir())
	h.RegisterRoutes(&r.RouterGroup)
	return r
}

func multipartUpload(t *testing.T, filename, content string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func TestAnalyzeUpload(t *testing.T) {
	client := &fakeClient{output: json.RawMessage(validVerdict)}
	r := newTestRouter(t, client)

	body, contentType := multipartUpload(t, "example.py", "def main():\n    pass\n", map[string]string{
		"model": "gpt-4",
	})
	req := httptest.NewRequest(http.MethodPost, "/analyze/", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 85, result.OverallScore)
	assert.Equal(t, 17, result.Breakdown.Modularity)
	assert.NotEmpty(t, result.Recommendations)

	assert.Equal(t, "gpt-4", client.lastInput.Model)
	assert.Equal(t, "example.py", client.lastInput.Filename)
	assert.Equal(t, "Python", client.lastInput.Language)
	assert.Contains(t, client.lastInput.Code, "def main()")
}

func TestAnalyzeUploadDefaultsModel(t *testing.T) {
	client := &fakeClient{output: json.RawMessage(validVerdict)}
	r := newTestRouter(t, client)

	body, contentType := multipartUpload(t, "app.js", "const x = 1;\n", nil)
	req := httptest.NewRequest(http.MethodPost, "/analyze/", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gpt-3.5-turbo", client.lastInput.Model)
}

func TestAnalyzeUploadMissingFile(t *testing.T) {
	r := newTestRouter(t, &fakeClient{})

	req := httptest.NewRequest(http.MethodPost, "/analyze/", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "file is required")
}

func TestAnalyzeUploadUnsupportedExtension(t *testing.T) {
	r := newTestRouter(t, &fakeClient{})

	body, contentType := multipartUpload(t, "notes.txt", "hello", nil)
	req := httptest.NewRequest(http.MethodPost, "/analyze/", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Detail, "Unsupported file type")
	assert.Contains(t, resp.Detail, ".py, .js, .jsx")
}

func TestAnalyzeUploadMalformedModelOutput(t *testing.T) {
	client := &fakeClient{output: json.RawMessage("Sorry, I cannot help with that.")}
	r := newTestRouter(t, client)

	body, contentType := multipartUpload(t, "example.py", "x = 1\n", nil)
	req := httptest.NewRequest(http.MethodPost, "/analyze/", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 0, result.OverallScore)
	require.Len(t, result.Recommendations, 1)
	assert.Contains(t, result.Recommendations[0], "unreadable response")
}

func TestAnalyzeUploadProviderError(t *testing.T) {
	client := &fakeClient{err: errors.New("rate limit exceeded")}
	r := newTestRouter(t, client)

	body, contentType := multipartUpload(t, "example.py", "x = 1\n", nil)
	req := httptest.NewRequest(http.MethodPost, "/analyze/", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Analysis failed")
}

func TestAnalyzeUploadCleansTempDir(t *testing.T) {
	client := &fakeClient{output: json.RawMessage(validVerdict)}
	gin.SetMode(gin.TestMode)
	r := gin.New()
	tempDir := t.TempDir()
	h := NewHandler(NewService(client, "gpt-3.5-turbo"), tempDir)
	h.RegisterRoutes(&r.RouterGroup)

	body, contentType := multipartUpload(t, "example.py", "x = 1\n", nil)
	req := httptest.NewRequest(http.MethodPost, "/analyze/", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAnalyzePath(t *testing.T) {
	client := &fakeClient{output: json.RawMessage(validVerdict)}
	r := newTestRouter(t, client)

	path := filepath.Join(t.TempDir(), "script.py")
	require.NoError(t, os.WriteFile(path, []byte("def run():\n    pass\n"), 0o644))

	form := url.Values{"file_path": {path}, "model": {"gpt-4"}}
	req := httptest.NewRequest(http.MethodPost, "/analyze/path/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "script.py", client.lastInput.Filename)
	assert.Equal(t, "gpt-4", client.lastInput.Model)
}

func TestAnalyzePathMissingParam(t *testing.T) {
	r := newTestRouter(t, &fakeClient{})

	req := httptest.NewRequest(http.MethodPost, "/analyze/path/", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "file_path is required")
}

func TestAnalyzePathNotFound(t *testing.T) {
	r := newTestRouter(t, &fakeClient{})

	form := url.Values{"file_path": {"/nonexistent/script.py"}}
	req := httptest.NewRequest(http.MethodPost, "/analyze/path/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "File not found")
}

func TestAnalyzePathUnsupportedExtension(t *testing.T) {
	r := newTestRouter(t, &fakeClient{})

	path := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# notes"), 0o644))

	form := url.Values{"file_path": {path}}
	req := httptest.NewRequest(http.MethodPost, "/analyze/path/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unsupported file type")
}

func TestListModels(t *testing.T) {
	r := newTestRouter(t, &fakeClient{})

	req := httptest.NewRequest(http.MethodGet, "/models", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Models []ModelInfo `json:"models"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Models, 2)
	assert.Equal(t, "gpt-3.5-turbo", resp.Models[0].ID)
	assert.Equal(t, "gpt-4", resp.Models[1].ID)
}
