// Package output renders generation results and history listings for the
// CLI in table, JSON, or markdown form.
package output

import (
	"fmt"
	"strings"

	"github.com/adforge/adforge/internal/veolink"
)

// Format represents an output format.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Formatter renders prompt responses and history listings.
type Formatter interface {
	FormatResponse(response *veolink.PromptResponse) (string, error)
	FormatHistory(items []veolink.HistoryItem) (string, error)
}

// ParseFormat validates and normalizes a format string.
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatMarkdown):
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", value)
	}
}

// NewFormatter returns a formatter for the requested format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return &TableFormatter{}
	}
}

func hashtagLine(tags []string) string {
	return strings.Join(tags, " ")
}
