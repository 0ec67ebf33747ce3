package extractor

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const docxBodyPart = "word/document.xml"

// extractDocx concatenates the text runs of word/document.xml in document order.
// Paragraph and line breaks survive as newlines; everything else is dropped.
func extractDocx(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open docx container: %w", err)
	}
	defer zr.Close()

	part := findZipFile(&zr.Reader, docxBodyPart)
	if part == nil {
		return "", fmt.Errorf("docx container has no %s", docxBodyPart)
	}
	rc, err := part.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", docxBodyPart, err)
	}
	defer rc.Close()

	return readWordprocessingText(rc)
}

func findZipFile(zr *zip.Reader, name string) *zip.File {
	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// readWordprocessingText walks a WordprocessingML body and collects w:t runs.
func readWordprocessingText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var out strings.Builder
	inText := false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode %s: %w", docxBodyPart, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				out.WriteByte('\t')
			case "br", "cr":
				out.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				out.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				out.Write(t)
			}
		}
	}
	return out.String(), nil
}
