package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coursepage "github.com/alnah/go-coursepage"
)

// stubConverter returns a canned result or error.
type stubConverter struct {
	result   *coursepage.Result
	err      error
	gotInput coursepage.Input
	calls    int
}

func (s *stubConverter) Convert(_ context.Context, input coursepage.Input) (*coursepage.Result, error) {
	s.calls++
	s.gotInput = input
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func testResult() *coursepage.Result {
	return &coursepage.Result{
		PreviewHTML: `<html><body><img src="data:image/png;base64,AAAA"></body></html>`,
		Archive:     []byte("zip-bytes"),
		Filename:    "notes_webpage.zip",
	}
}

func multipartBody(t *testing.T, apiKey, filename string, document []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if apiKey != "" {
		require.NoError(t, w.WriteField("apiKey", apiKey))
	}
	if filename != "" {
		part, err := w.CreateFormFile("document", filename)
		require.NoError(t, err)
		_, err = part.Write(document)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func postConvert(t *testing.T, handler http.Handler, apiKey, filename string, document []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, apiKey, filename, document)
	req := httptest.NewRequest(http.MethodPost, "/convert", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeConvert(t *testing.T, rec *httptest.ResponseRecorder) convertResponse {
	t.Helper()
	var resp convertResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestIndexServesPage(t *testing.T) {
	server := NewServer(&stubConverter{}, "pandoc", 20)
	rec := httptest.NewRecorder()
	server.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Course Page Generator")
	assert.Contains(t, rec.Body.String(), `name="apiKey"`)
	assert.Contains(t, rec.Body.String(), `name="document"`)
}

func TestConvertRequiresAPIKeyAndFile(t *testing.T) {
	server := NewServer(&stubConverter{result: testResult()}, "pandoc", 20)
	handler := server.Routes()

	rec := postConvert(t, handler, "", "notes.docx", []byte("doc"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeConvert(t, rec).Error, "API key")

	rec = postConvert(t, handler, "key", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeConvert(t, rec).Error, "document")
}

func TestConvertRejectsNonDocx(t *testing.T) {
	converter := &stubConverter{result: testResult()}
	server := NewServer(converter, "pandoc", 20)

	rec := postConvert(t, server.Routes(), "key", "notes.pdf", []byte("doc"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeConvert(t, rec).Error, ".docx")
	assert.Zero(t, converter.calls)
}

func TestConvertSuccessExposesResult(t *testing.T) {
	converter := &stubConverter{result: testResult()}
	server := NewServer(converter, "pandoc", 20)
	handler := server.Routes()

	rec := postConvert(t, handler, "secret", "notes.docx", []byte("docx-bytes"))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeConvert(t, rec)
	assert.True(t, resp.Done)
	assert.Equal(t, "notes_webpage.zip", resp.Filename)
	assert.Equal(t, "secret", converter.gotInput.APIKey)
	assert.Equal(t, "notes.docx", converter.gotInput.Filename)
	assert.Equal(t, []byte("docx-bytes"), converter.gotInput.Document)

	// Preview serves the inlined variant.
	previewRec := httptest.NewRecorder()
	handler.ServeHTTP(previewRec, httptest.NewRequest(http.MethodGet, "/preview", nil))
	require.Equal(t, http.StatusOK, previewRec.Code)
	assert.Equal(t, testResult().PreviewHTML, previewRec.Body.String())

	// Download serves the archive with the suggested filename.
	downloadRec := httptest.NewRecorder()
	handler.ServeHTTP(downloadRec, httptest.NewRequest(http.MethodGet, "/download", nil))
	require.Equal(t, http.StatusOK, downloadRec.Code)
	assert.Equal(t, "application/zip", downloadRec.Header().Get("Content-Type"))
	assert.Contains(t, downloadRec.Header().Get("Content-Disposition"), "notes_webpage.zip")
	assert.Equal(t, "zip-bytes", downloadRec.Body.String())
}

func TestConvertFailureClearsEverything(t *testing.T) {
	converter := &stubConverter{result: testResult()}
	server := NewServer(converter, "pandoc", 20)
	handler := server.Routes()

	rec := postConvert(t, handler, "key", "notes.docx", []byte("doc"))
	require.Equal(t, http.StatusOK, rec.Code)

	converter.err = fmt.Errorf("%w: network unreachable", coursepage.ErrGeneration)
	rec = postConvert(t, handler, "key", "notes.docx", []byte("doc"))
	require.Equal(t, http.StatusBadGateway, rec.Code)

	resp := decodeConvert(t, rec)
	assert.False(t, resp.Done)
	assert.Contains(t, resp.Error, "HTML generation failed")
	assert.Contains(t, resp.Error, "hint:")

	// The prior result must be gone: no partial state survives a failed run.
	for _, path := range []string{"/preview", "/download"} {
		r := httptest.NewRecorder()
		handler.ServeHTTP(r, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, r.Code, path)
	}
}

func TestConvertErrorHints(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantIn  string
		mustNot string
	}{
		{
			name:   "extraction error hints at pandoc or input",
			err:    fmt.Errorf("%w: exit status 1", coursepage.ErrExtraction),
			wantIn: "hint:",
		},
		{
			name:   "malformed output error hints at retry",
			err:    fmt.Errorf("%w: missing container", coursepage.ErrMalformedHTML),
			wantIn: "running the conversion again",
		},
		{
			name:    "generation error never echoes the key",
			err:     fmt.Errorf("%w: 401 unauthorized", coursepage.ErrGeneration),
			wantIn:  "API key",
			mustNot: "super-secret-key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := NewServer(&stubConverter{err: tt.err}, "pandoc", 20)
			rec := postConvert(t, server.Routes(), "super-secret-key", "notes.docx", []byte("doc"))
			require.Equal(t, http.StatusBadGateway, rec.Code)

			resp := decodeConvert(t, rec)
			assert.Contains(t, resp.Error, tt.wantIn)
			if tt.mustNot != "" {
				assert.NotContains(t, resp.Error, tt.mustNot)
			}
		})
	}
}

func TestResetClearsResult(t *testing.T) {
	server := NewServer(&stubConverter{result: testResult()}, "pandoc", 20)
	handler := server.Routes()

	rec := postConvert(t, handler, "key", "notes.docx", []byte("doc"))
	require.Equal(t, http.StatusOK, rec.Code)

	resetRec := httptest.NewRecorder()
	handler.ServeHTTP(resetRec, httptest.NewRequest(http.MethodPost, "/reset", nil))
	require.Equal(t, http.StatusNoContent, resetRec.Code)

	previewRec := httptest.NewRecorder()
	handler.ServeHTTP(previewRec, httptest.NewRequest(http.MethodGet, "/preview", nil))
	assert.Equal(t, http.StatusNotFound, previewRec.Code)
}

func TestResultEndpointsBeforeAnyRun(t *testing.T) {
	server := NewServer(&stubConverter{}, "pandoc", 20)
	handler := server.Routes()

	for _, path := range []string{"/preview", "/download"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	server := NewServer(&stubConverter{}, "pandoc", 20)
	handler := server.Routes()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/convert"},
		{http.MethodPost, "/preview"},
		{http.MethodPost, "/download"},
		{http.MethodGet, "/reset"},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, "%s %s", tt.method, tt.path)
	}
}

func TestConvertFailureIsNotStoredAtAll(t *testing.T) {
	converter := &stubConverter{err: errors.New("plain failure")}
	server := NewServer(converter, "pandoc", 20)

	rec := postConvert(t, server.Routes(), "key", "notes.docx", []byte("doc"))
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Nil(t, server.currentResult())
}
