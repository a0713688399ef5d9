package extraction

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lexhub-io/lexhub/internal/models"
)

// MarkdownExtractor splits optional YAML front-matter from the body and
// prepends a flattened key: value rendering of it, so front-matter fields
// stay searchable in the extracted text.
type MarkdownExtractor struct{}

func NewMarkdownExtractor() *MarkdownExtractor {
	return &MarkdownExtractor{}
}

func (e *MarkdownExtractor) Extract(content string) Result {
	front, body, hasFront := splitFrontMatter(content)

	text := body
	var warnings []string
	if hasFront {
		rendered, err := renderFrontMatter(front)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("invalid front-matter, kept body only: %v", err))
		} else if rendered != "" {
			text = rendered + "\n\n" + body
		}
	}

	meta := NewMetadata(text, models.FormatMarkdown)
	meta.ExtractionMethod = "markdown"
	meta.HasFrontMatter = hasFront
	meta.Warnings = warnings
	return Result{Text: text, Metadata: meta}
}

// splitFrontMatter detects a leading "---" block and returns the raw YAML,
// the remaining body, and whether a block was present.
func splitFrontMatter(content string) (front, body string, ok bool) {
	trimmed := strings.TrimPrefix(content, "\ufeff")
	if !strings.HasPrefix(trimmed, "---") {
		return "", content, false
	}
	rest := trimmed[3:]
	if !strings.HasPrefix(rest, "\n") && !strings.HasPrefix(rest, "\r\n") {
		return "", content, false
	}
	rest = strings.TrimLeft(rest, "\r\n")

	// CRLF variants first so the front block never keeps a trailing \r.
	for _, delim := range []string{"\r\n---\r\n", "\r\n---\n", "\n---\r\n", "\n---\n"} {
		if i := strings.Index(rest, delim); i >= 0 {
			return rest[:i], strings.TrimLeft(rest[i+len(delim):], "\r\n"), true
		}
	}
	// Front-matter closed at EOF.
	for _, suffix := range []string{"\r\n---", "\n---"} {
		if strings.HasSuffix(rest, suffix) {
			return strings.TrimSuffix(rest, suffix), "", true
		}
	}
	return "", content, false
}

// renderFrontMatter flattens parsed YAML into sorted "key: value" lines.
func renderFrontMatter(front string) (string, error) {
	var fields map[string]any
	if err := yaml.Unmarshal([]byte(front), &fields); err != nil {
		return "", err
	}
	if len(fields) == 0 {
		return "", nil
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s: %v", k, fields[k])
	}
	return sb.String(), nil
}
