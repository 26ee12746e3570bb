package coursepage

import (
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-coursepage/internal/fileutil"
)

// mediaRefPrefix is the relative path prefix the prompt instructs the model
// to use for image sources, matching the archive layout.
const mediaRefPrefix = "imgs/"

// previewMaterializer abstracts the inlining pass that makes generated HTML
// viewable without separate asset files.
type previewMaterializer interface {
	Materialize(htmlContent, mediaDir string) (string, error)
}

// base64Inliner replaces relative image references with data URIs.
type base64Inliner struct{}

// Materialize returns a self-contained variant of htmlContent with each image
// in mediaDir embedded as a base64 data URI. If mediaDir does not exist the
// HTML is returned unchanged.
//
// Only the first occurrence of each image reference is replaced; a document
// that reuses one image keeps the later references on the external path.
// Non-image files and images the model never referenced are skipped silently.
func (b *base64Inliner) Materialize(htmlContent, mediaDir string) (string, error) {
	if !fileutil.DirExists(mediaDir) {
		return htmlContent, nil
	}

	entries, err := os.ReadDir(mediaDir)
	if err != nil {
		return "", fmt.Errorf("reading media directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		mimeType := mime.TypeByExtension(filepath.Ext(name))
		if !strings.HasPrefix(mimeType, "image/") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(mediaDir, name))
		if err != nil {
			return "", fmt.Errorf("reading media file %q: %w", name, err)
		}

		dataURI := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(content)
		htmlContent = strings.Replace(htmlContent, mediaRefPrefix+name, dataURI, 1)
	}

	return htmlContent, nil
}
