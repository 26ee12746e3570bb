package coursepage

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alnah/go-coursepage/internal/fileutil"
)

// Archive layout constants.
const (
	archiveHTMLEntry = "course.html"
	archiveMediaDir  = "imgs"
)

// archivePackager abstracts the downloadable-bundle step.
type archivePackager interface {
	Package(htmlContent, mediaDir string) ([]byte, error)
}

// zipPackager bundles the generated HTML and extracted media into an
// in-memory zip archive.
type zipPackager struct{}

// Package writes htmlContent as course.html at the archive root and, if
// mediaDir exists, walks it recursively adding every contained file under
// imgs/ with its original filename. The HTML entry keeps external image
// references; the inlined preview variant is never packaged.
func (z *zipPackager) Package(htmlContent, mediaDir string) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	entry, err := w.Create(archiveHTMLEntry)
	if err != nil {
		return nil, fmt.Errorf("%w: creating HTML entry: %v", ErrPackaging, err)
	}
	if _, err := entry.Write([]byte(htmlContent)); err != nil {
		return nil, fmt.Errorf("%w: writing HTML entry: %v", ErrPackaging, err)
	}

	if fileutil.DirExists(mediaDir) {
		walkErr := filepath.WalkDir(mediaDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}

			content, err := os.ReadFile(path) // #nosec G304 -- path comes from walking our own temp dir
			if err != nil {
				return err
			}

			f, err := w.Create(archiveMediaDir + "/" + d.Name())
			if err != nil {
				return err
			}
			_, err = f.Write(content)
			return err
		})
		if walkErr != nil {
			return nil, fmt.Errorf("%w: adding media files: %v", ErrPackaging, walkErr)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: closing archive: %v", ErrPackaging, err)
	}

	return buf.Bytes(), nil
}
