package notification

import (
	"log/slog"
	"regexp"
	"strings"
)

// placeholderRe matches {{name}} placeholders. Whitespace around the
// identifier inside the braces is tolerated and trimmed.
var placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// TemplateEngine performs placeholder substitution on message bodies.
// Missing variables degrade to an empty substitution plus a warning log,
// never an error: a missing personalization value should not block
// delivery of an otherwise valid message.
type TemplateEngine struct {
	logger *slog.Logger
}

// NewTemplateEngine creates a TemplateEngine that reports missing
// variables through logger.
func NewTemplateEngine(logger *slog.Logger) *TemplateEngine {
	return &TemplateEngine{logger: logger}
}

// Expand replaces every {{name}} placeholder in tmpl with its value from
// vars. A nil vars map means "no context supplied" and returns tmpl
// unmodified; an empty-but-present map replaces every placeholder with
// the empty string. Replacement text is inserted literally and never
// re-scanned for placeholders.
func (e *TemplateEngine) Expand(tmpl string, vars map[string]string) string {
	if vars == nil {
		return tmpl
	}
	if strings.TrimSpace(tmpl) == "" {
		return tmpl
	}
	return placeholderRe.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := strings.TrimSpace(match[2 : len(match)-2])
		value, ok := vars[name]
		if !ok {
			e.logger.Warn("template variable not supplied, substituting empty string",
				slog.String("variable", name))
			return ""
		}
		return value
	})
}

// HasVariables reports whether tmpl contains at least one well-formed
// placeholder.
func HasVariables(tmpl string) bool {
	return placeholderRe.MatchString(tmpl)
}

// ExtractVariables returns the distinct placeholder names in tmpl, in
// order of first appearance.
func ExtractVariables(tmpl string) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, m := range placeholderRe.FindAllStringSubmatch(tmpl, -1) {
		name := m[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
