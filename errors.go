package coursepage

import "errors"

// Sentinel errors for library operations.
var (
	ErrMissingAPIKey   = errors.New("API key cannot be empty")
	ErrMissingDocument = errors.New("document content cannot be empty")
	ErrMissingFilename = errors.New("document filename cannot be empty")

	ErrExtraction    = errors.New("document extraction failed")
	ErrGeneration    = errors.New("HTML generation failed")
	ErrMalformedHTML = errors.New("generated HTML failed structural checks")
	ErrPackaging     = errors.New("archive packaging failed")
)
