// Package assets provides the CSS stylesheet shipped with every generated
// course page, embedded at compile time.
package assets

import (
	"embed"
	"strings"
)

//go:embed styles/*
var styles embed.FS

// CourseCSS returns the course page stylesheet.
// Panics if the embedded asset is missing (build error, not a runtime condition).
func CourseCSS() string {
	content, err := styles.ReadFile("styles/course.css")
	if err != nil {
		panic("assets: embedded course stylesheet missing: " + err.Error())
	}
	return strings.TrimRight(string(content), "\n")
}
