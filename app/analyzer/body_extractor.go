package analyzer

import (
	"log/slog"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

// BodyExtractor turns the HTML announcement body into readable text before it
// is handed to the model. Extraction failures fall back to the raw body so a
// malformed fragment never blocks classification.
type BodyExtractor struct{}

func NewBodyExtractor() *BodyExtractor {
	return &BodyExtractor{}
}

func (e *BodyExtractor) Run(body string) string {
	if !strings.Contains(body, "<") {
		return body
	}

	article, err := readability.FromReader(strings.NewReader(body), nil)
	if err != nil {
		slog.Debug("Body extraction failed, using raw body", "error", err)
		return body
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return body
	}

	return text
}
