// Package coursepage converts Word documents into styled, self-contained
// HTML course pages.
//
// # Quick Start
//
// Create a service and convert an uploaded document:
//
//	svc := coursepage.New()
//	result, err := svc.Convert(ctx, coursepage.Input{
//	    Document: docxBytes,
//	    Filename: "lecture-3.docx",
//	    APIKey:   apiKey,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(result.Filename, result.Archive, 0644)
//
// The result contains a self-contained preview (images inlined as data URIs),
// a downloadable zip archive (course.html plus an imgs/ directory), and the
// suggested archive filename.
//
// # Conversion Pipeline
//
//  1. Markup extraction via Pandoc (docx to Markdown, embedded images
//     extracted to a media directory)
//  2. Remark annotation (keyword-prefixed lines wrapped in callout divs)
//  3. HTML generation via a hosted Gemini model with a fixed stylesheet
//     and instruction set
//  4. Structural validation of the generated document
//  5. Preview materialization (base64 image inlining)
//  6. Zip packaging
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc := coursepage.New(
//	    coursepage.WithTimeout(3 * time.Minute),
//	    coursepage.WithModel("gemini-2.5-pro"),
//	    coursepage.WithPandocBinary("/usr/local/bin/pandoc"),
//	)
//
// # External Requirements
//
// Markup extraction requires Pandoc on the PATH (or a binary set via
// WithPandocBinary). HTML generation requires a valid Gemini API key,
// supplied per conversion and never logged or persisted.
package coursepage
