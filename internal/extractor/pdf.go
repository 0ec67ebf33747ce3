package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/documentloaders"
)

// extractPDF joins the text of every page in page order with a single space.
// Pages without extractable text (scans, images) are skipped.
func extractPDF(ctx context.Context, path string) (string, error) {
	f, size, err := openSized(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	pages, err := documentloaders.NewPDF(f, size).Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load pdf: %w", err)
	}

	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		text := strings.TrimSpace(p.PageContent)
		if text == "" {
			continue
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, " "), nil
}
