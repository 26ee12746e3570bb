package coursepage

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/alnah/go-coursepage/internal/assets"
)

// promptTemplate is the fixed instruction set sent with every generation
// request. The first %s receives the course stylesheet, the second the
// annotated Markdown content.
const promptTemplate = `You are an expert HTML developer. Your task is to convert a Markdown document into a single, styled, self-contained HTML file.

**CRITICAL INSTRUCTIONS (Follow these exactly):**
1.  **Output ONLY raw HTML code.** Do not add any commentary.
2.  Use the following CSS style sheet EXACTLY as provided. Place it inside a ` + "`<style>`" + ` tag in the ` + "`<head>`" + ` section.
3.  The main content from the Markdown must be placed inside a ` + "`<main class=\"course-container\">`" + ` element within the ` + "`<body>`" + `.
4.  If you see Markdown tables (using pipe syntax), convert them to proper HTML ` + "`<table>`, `<thead>`, `<tbody>`, `<tr>`, `<th>`, and `<td>`" + ` elements.
5.  If you see Markdown image links like ` + "`![alt text](imgs/image1.png)`" + `, convert them to proper HTML ` + "`<img src=\"imgs/image1.png\" alt=\"alt text\">`" + ` tags.
6.  **Important:** The provided Markdown may already contain some HTML ` + "`<div class=\"remark\">`" + ` elements. You MUST preserve these ` + "`div`" + ` wrappers and their content exactly as they appear.
7.  Produce a valid HTML5 document structure and set the ` + "`<title>`" + ` to "Course Notes".

--- START OF CSS TO USE ---
<style>
%s
</style>
--- END OF CSS TO USE ---

--- START OF MARKDOWN CONTENT TO CONVERT ---
%s
--- END OF MARKDOWN CONTENT TO CONVERT ---
`

// textGenerator abstracts the hosted model call.
type textGenerator interface {
	GenerateHTML(ctx context.Context, apiKey, markup string) (string, error)
}

// geminiGenerator produces styled HTML from annotated markup via a hosted
// Gemini model.
type geminiGenerator struct {
	model string
}

func newGeminiGenerator(model string) *geminiGenerator {
	return &geminiGenerator{model: model}
}

// GenerateHTML sends the fixed prompt plus the markup content to the model
// and returns the response with surrounding code fences stripped.
//
// Sampling is deterministic (temperature 0). The model's adherence to the
// instructions is verified separately by the structural validator; network,
// auth, and quota failures collapse into ErrGeneration.
func (g *geminiGenerator) GenerateHTML(ctx context.Context, apiKey, markup string) (string, error) {
	client, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(g.model),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	response, err := llms.GenerateFromSinglePrompt(ctx, client, buildPrompt(markup),
		llms.WithTemperature(0),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	return stripCodeFence(response), nil
}

// buildPrompt assembles the full generation prompt for the given markup.
func buildPrompt(markup string) string {
	return fmt.Sprintf(promptTemplate, assets.CourseCSS(), markup)
}

// stripCodeFence removes a surrounding ```html code fence, if present, and
// trims leading and trailing whitespace.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```html")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
