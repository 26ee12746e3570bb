package coursepage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Service orchestrates the docx-to-course-page pipeline.
type Service struct {
	cfg       serviceConfig
	extractor markupExtractor
	annotator remarkAnnotator
	generator textGenerator
	validator htmlValidator
	previewer previewMaterializer
	packager  archivePackager
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithModel).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			timeout:      defaultTimeout,
			model:        defaultModel,
			pandocBinary: defaultPandocBinary,
		},
		annotator: newKeywordAnnotator(),
		validator: &structuralValidator{},
		previewer: &base64Inliner{},
		packager:  &zipPackager{},
	}

	for _, opt := range opts {
		opt(s)
	}

	// Create external-facing stages if not injected (e.g., by tests)
	if s.extractor == nil {
		s.extractor = newPandocExtractor(s.cfg.pandocBinary)
	}
	if s.generator == nil {
		s.generator = newGeminiGenerator(s.cfg.model)
	}

	return s
}

// Convert runs the full pipeline and returns the conversion result.
//
// All filesystem work happens inside a temporary directory that is removed on
// every exit path; extraction and packaging both complete before it closes.
// Any step failure discards the in-progress work, so callers never observe a
// partial Result. There are no retries.
func (s *Service) Convert(ctx context.Context, input Input) (*Result, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.timeout)
	defer cancel()

	tempDir, err := os.MkdirTemp("", "coursepage-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(tempDir) }()

	docPath := filepath.Join(tempDir, filepath.Base(input.Filename))
	if err := os.WriteFile(docPath, input.Document, 0o600); err != nil {
		return nil, fmt.Errorf("writing source document: %w", err)
	}
	mediaDir := filepath.Join(tempDir, archiveMediaDir)

	markup, err := s.extractor.Extract(ctx, docPath, mediaDir)
	if err != nil {
		return nil, err
	}

	annotated := s.annotator.Annotate(markup)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	htmlContent, err := s.generator.GenerateHTML(ctx, input.APIKey, annotated)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(htmlContent); err != nil {
		return nil, err
	}

	previewHTML, err := s.previewer.Materialize(htmlContent, mediaDir)
	if err != nil {
		return nil, err
	}

	archive, err := s.packager.Package(htmlContent, mediaDir)
	if err != nil {
		return nil, err
	}

	return &Result{
		PreviewHTML: previewHTML,
		Archive:     archive,
		Filename:    archiveFilename(input.Filename),
	}, nil
}

// validateInput checks the only preconditions enforced before the pipeline
// starts: credential present, document present, filename present.
func (s *Service) validateInput(input Input) error {
	if input.APIKey == "" {
		return ErrMissingAPIKey
	}
	if len(input.Document) == 0 {
		return ErrMissingDocument
	}
	if input.Filename == "" {
		return ErrMissingFilename
	}
	return nil
}
