// Package surface defines output rendering for esgcore results.
// Implementations handle different output targets: terminal, Markdown, JSON.
package surface

import (
	"fmt"
	"io"

	"github.com/esgcopilot/esgcore/pkg/pipeline"
)

// Renderer produces formatted output from a pipeline Result.
type Renderer interface {
	// Render writes the formatted result to the writer.
	Render(w io.Writer, result *pipeline.Result) error
}

// Formats accepted by ForFormat.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatRecord   = "record"
	FormatMarkdown = "markdown"
)

// ForFormat returns the renderer for an --output value.
func ForFormat(format string) (Renderer, error) {
	switch format {
	case FormatText, "":
		return &TerminalRenderer{}, nil
	case FormatJSON:
		return &JSONRenderer{}, nil
	case FormatRecord:
		return &RecordRenderer{}, nil
	case FormatMarkdown:
		return &MarkdownRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want text, json, record or markdown)", format)
	}
}
