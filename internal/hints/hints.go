// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os/exec"
	"strings"
)

// lookPath is swappable in tests.
var lookPath = exec.LookPath

// ForExtraction returns hints for document extraction failures.
// Detects a missing Pandoc binary and suggests installing it.
func ForExtraction(binary string) string {
	if binary == "" {
		binary = "pandoc"
	}
	if _, err := lookPath(binary); err != nil {
		return format(binary + " not found; install it and make sure it is on your PATH")
	}
	return format("check that the uploaded file is a valid .docx document")
}

// ForGeneration returns hints for hosted model failures.
func ForGeneration() string {
	return format("check that your API key is valid and has remaining quota")
}

// ForMalformedOutput returns a hint for structurally invalid model output.
func ForMalformedOutput() string {
	return format("the model returned unusable HTML; running the conversion again may help")
}

// ForConfigNotFound returns hints for config file not found errors.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/coursepage") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
