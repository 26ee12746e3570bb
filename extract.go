package coursepage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// CommandRunner abstracts command execution to enable testing without real
// subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return "", "", fmt.Errorf("creating stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return "", "", fmt.Errorf("starting command: %w", err)
	}

	stderrContent, err := io.ReadAll(stderrPipe)
	if err != nil {
		return "", "", fmt.Errorf("reading stderr: %w", err)
	}

	err = cmd.Wait()
	return stdout.String(), string(stderrContent), err
}

// markupExtractor abstracts document-to-markup extraction.
type markupExtractor interface {
	Extract(ctx context.Context, docPath, mediaDir string) (string, error)
}

// pandocExtractor converts a .docx file to Markdown by invoking the Pandoc
// CLI, extracting embedded media into mediaDir and rewriting in-text image
// references to point there.
type pandocExtractor struct {
	binary string
	runner CommandRunner
}

// newPandocExtractor creates a pandocExtractor with a real command runner.
func newPandocExtractor(binary string) *pandocExtractor {
	return &pandocExtractor{binary: binary, runner: &ExecRunner{}}
}

// Extract converts the document at docPath to Markdown text.
// Any Pandoc failure (missing binary, corrupt input, unsupported content)
// is collapsed into ErrExtraction with the tool's stderr attached.
func (e *pandocExtractor) Extract(ctx context.Context, docPath, mediaDir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stdout, stderr, err := e.runner.Run(ctx, e.binary, docPath, "-t", "markdown", "--extract-media="+mediaDir)
	if err != nil {
		if msg := strings.TrimSpace(stderr); msg != "" {
			return "", fmt.Errorf("%w: %s: %v", ErrExtraction, msg, err)
		}
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	return stdout, nil
}
