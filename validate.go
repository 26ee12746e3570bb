package coursepage

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// htmlValidator abstracts the structural check applied to model output
// before it is trusted.
type htmlValidator interface {
	Validate(htmlContent string) error
}

// structuralValidator verifies that generated HTML carries the elements the
// prompt demands: a parseable document with the course container and an
// embedded stylesheet. Anything less returns ErrMalformedHTML so callers can
// distinguish a misbehaving model from transport failures.
type structuralValidator struct{}

func (v *structuralValidator) Validate(htmlContent string) error {
	if strings.TrimSpace(htmlContent) == "" {
		return fmt.Errorf("%w: empty model response", ErrMalformedHTML)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedHTML, err)
	}

	if doc.Find("main.course-container").Length() == 0 {
		return fmt.Errorf("%w: missing <main class=\"course-container\"> element", ErrMalformedHTML)
	}

	if doc.Find("style").Length() == 0 {
		return fmt.Errorf("%w: missing embedded <style> element", ErrMalformedHTML)
	}

	return nil
}
