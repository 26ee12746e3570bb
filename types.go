package coursepage

import (
	"path/filepath"
	"strings"
	"time"
)

// Defaults applied when no option overrides them.
const (
	defaultTimeout      = 2 * time.Minute
	defaultModel        = "gemini-2.5-pro"
	defaultPandocBinary = "pandoc"
)

// Input contains one conversion request.
type Input struct {
	Document []byte // uploaded .docx content (required)
	Filename string // declared upload name, used to derive the archive name (required)
	APIKey   string // hosted model credential; used for the single outbound request, never logged (required)
}

// Result is the complete outcome of one successful conversion.
// It is produced all-or-nothing: no partial Result ever escapes Convert.
type Result struct {
	PreviewHTML string // self-contained variant with images inlined as data URIs
	Archive     []byte // zip with course.html and the extracted imgs/ files
	Filename    string // suggested download name, "<basename>_webpage.zip"
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout      time.Duration
	model        string
	pandocBinary string
}

// WithTimeout sets the overall conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("coursepage: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithModel sets the hosted model identifier used for HTML generation.
// Empty names are ignored.
func WithModel(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.cfg.model = name
		}
	}
}

// WithPandocBinary sets the Pandoc executable name or path.
// Empty paths are ignored.
func WithPandocBinary(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.cfg.pandocBinary = path
		}
	}
}

// archiveFilename derives the suggested download name from the source
// document name: "lecture-3.docx" becomes "lecture-3_webpage.zip".
func archiveFilename(sourceName string) string {
	base := filepath.Base(sourceName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + "_webpage.zip"
}
