package extractor

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tmc/langchaingo/documentloaders"
)

func extractText(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	docs, err := documentloaders.NewText(f).Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load text: %w", err)
	}

	var b strings.Builder
	for _, d := range docs {
		b.WriteString(d.PageContent)
	}
	return b.String(), nil
}
