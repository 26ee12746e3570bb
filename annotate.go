package coursepage

import "strings"

// remarkKeywords are the trigger prefixes that mark a line as an editorial
// callout. Matching is case-insensitive against the line with leading
// whitespace stripped.
var remarkKeywords = []string{
	"Remark:",
	"Note:",
	"Important:",
	"Remarque:",
	"N.B.:",
	"Attention:",
}

// Callout container wrapper applied to matched lines.
const (
	remarkOpen  = `<div class="remark"><p>`
	remarkClose = `</p></div>`
)

// remarkAnnotator abstracts the callout-wrapping pass over extracted markup.
type remarkAnnotator interface {
	Annotate(content string) string
}

// keywordAnnotator wraps keyword-prefixed lines in a callout container.
type keywordAnnotator struct {
	keywords []string
}

func newKeywordAnnotator() *keywordAnnotator {
	return &keywordAnnotator{keywords: remarkKeywords}
}

// Annotate scans content line by line and wraps every line starting with a
// remark keyword in the callout container. All other lines pass through
// unchanged; line count and order are preserved exactly.
//
// Matching is per physical line: a keyword-led sentence that the extractor
// wrapped across several lines only gets its first line annotated. Wrapped
// lines no longer start with a keyword, so a second pass is a no-op.
func (a *keywordAnnotator) Annotate(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if a.isRemark(line) {
			lines[i] = remarkOpen + line + remarkClose
		}
	}
	return strings.Join(lines, "\n")
}

// isRemark reports whether the stripped, case-folded line starts with one of
// the remark keywords.
func (a *keywordAnnotator) isRemark(line string) bool {
	stripped := strings.ToLower(strings.TrimSpace(line))
	for _, kw := range a.keywords {
		if strings.HasPrefix(stripped, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
