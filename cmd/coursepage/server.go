package main

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	coursepage "github.com/alnah/go-coursepage"
	"github.com/alnah/go-coursepage/internal/hints"
)

//go:embed templates/*
var templates embed.FS

// Converter is the interface the server needs from the conversion service.
type Converter interface {
	Convert(ctx context.Context, input coursepage.Input) (*coursepage.Result, error)
}

// Server handles the single-session web UI: upload, convert, preview,
// download, reset.
type Server struct {
	converter    Converter
	pandocBinary string
	maxUpload    int64 // bytes
	tmpl         *template.Template

	// Session result, all-or-nothing: set atomically on success, cleared
	// atomically on new upload, new run, or failure. Never partially visible.
	mu     sync.Mutex
	result *coursepage.Result
}

// NewServer creates a Server around the given converter.
// Panics if the embedded page template cannot be parsed (build error).
func NewServer(converter Converter, pandocBinary string, maxUploadMiB int) *Server {
	tmpl, err := template.ParseFS(templates, "templates/index.html")
	if err != nil {
		panic("parsing embedded page template: " + err.Error())
	}
	return &Server{
		converter:    converter,
		pandocBinary: pandocBinary,
		maxUpload:    int64(maxUploadMiB) << 20,
		tmpl:         tmpl,
	}
}

// Routes returns the HTTP handler for all endpoints.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/convert", s.handleConvert)
	mux.HandleFunc("/preview", s.handlePreview)
	mux.HandleFunc("/download", s.handleDownload)
	mux.HandleFunc("/reset", s.handleReset)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	return mux
}

// convertResponse is the JSON body returned by /convert.
type convertResponse struct {
	Done     bool   `json:"done"`
	Filename string `json:"filename,omitempty"`
	Error    string `json:"error,omitempty"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, nil); err != nil {
		log.Printf("rendering page: %v", err)
	}
}

// handleConvert runs the whole pipeline for one uploaded document.
// A new run unconditionally invalidates any prior result before starting.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.clearResult()

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		s.writeConvertError(w, http.StatusBadRequest, fmt.Errorf("parsing upload: %w", err))
		return
	}

	apiKey := r.FormValue("apiKey")
	if apiKey == "" {
		s.writeConvertError(w, http.StatusBadRequest, coursepage.ErrMissingAPIKey)
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		s.writeConvertError(w, http.StatusBadRequest, coursepage.ErrMissingDocument)
		return
	}
	defer func() { _ = file.Close() }()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".docx") {
		s.writeConvertError(w, http.StatusBadRequest, fmt.Errorf("unsupported file type %q: upload a .docx document", filepath.Ext(header.Filename)))
		return
	}

	document, err := io.ReadAll(file)
	if err != nil {
		s.writeConvertError(w, http.StatusBadRequest, fmt.Errorf("reading upload: %w", err))
		return
	}

	result, err := s.converter.Convert(r.Context(), coursepage.Input{
		Document: document,
		Filename: header.Filename,
		APIKey:   apiKey,
	})
	if err != nil {
		// Failure discards everything: the prior result was already cleared
		// and no new one is stored.
		s.writeConvertError(w, http.StatusBadGateway, err)
		return
	}

	s.storeResult(result)
	writeJSON(w, http.StatusOK, convertResponse{Done: true, Filename: result.Filename})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result := s.currentResult()
	if result == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, result.PreviewHTML)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result := s.currentResult()
	if result == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	_, _ = w.Write(result.Archive)
}

// handleReset clears the session result; the page calls it when a new file
// is picked.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.clearResult()
	w.WriteHeader(http.StatusNoContent)
}

// writeConvertError surfaces a failure with an actionable hint appended.
// The message never includes the API key.
func (s *Server) writeConvertError(w http.ResponseWriter, status int, err error) {
	msg := err.Error()
	switch {
	case errors.Is(err, coursepage.ErrExtraction):
		msg += hints.ForExtraction(s.pandocBinary)
	case errors.Is(err, coursepage.ErrGeneration):
		msg += hints.ForGeneration()
	case errors.Is(err, coursepage.ErrMalformedHTML):
		msg += hints.ForMalformedOutput()
	}
	log.Printf("conversion failed: %s", msg)
	writeJSON(w, status, convertResponse{Error: msg})
}

func (s *Server) storeResult(result *coursepage.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = result
}

func (s *Server) clearResult() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = nil
}

func (s *Server) currentResult() *coursepage.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}
