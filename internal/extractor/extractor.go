// Package extractor turns .txt, .docx and .pdf documents into one sanitized
// Unicode string ready for segmentation.
package extractor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"quiz-forge/internal/domain"
)

// Format identifies the extraction strategy for a document.
type Format string

const (
	FormatText Format = "txt"
	FormatDocx Format = "docx"
	FormatPDF  Format = "pdf"
)

// FormatFromPath selects the format from the file extension, case-insensitively.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch Format(ext) {
	case FormatText, FormatDocx, FormatPDF:
		return Format(ext), nil
	default:
		return "", domain.NewUnsupportedFormatError(ext)
	}
}

// IsSupported reports whether path has an extension the extractor handles.
func IsSupported(path string) bool {
	_, err := FormatFromPath(path)
	return err == nil
}

// Extract reads the file at path and returns its sanitized text.
// An unknown format yields a CodeUnsupportedFormat domain error; a document
// without extractable text yields an empty string and no error.
func Extract(ctx context.Context, path string, format Format) (string, error) {
	var (
		text string
		err  error
	)

	switch format {
	case FormatText:
		text, err = extractText(ctx, path)
	case FormatDocx:
		text, err = extractDocx(path)
	case FormatPDF:
		text, err = extractPDF(ctx, path)
	default:
		return "", domain.NewUnsupportedFormatError(string(format))
	}
	if err != nil {
		return "", domain.NewExtractionError(path, err)
	}
	return Sanitize(text), nil
}

// ExtractFile is Extract with the format taken from the file extension.
func ExtractFile(ctx context.Context, path string) (string, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return "", err
	}
	return Extract(ctx, path, format)
}

func openSized(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, fmt.Errorf("stat %s: %w", path, err)
	}
	return f, info.Size(), nil
}
