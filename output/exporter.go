package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"toggljournal/journal"
)

// Exporter writes a rendered journal to disk. The HTML document is always
// written since it is the source of the PDF.
type Exporter struct {
	Dir     string
	Formats []string
	PDF     PDFConverter
}

// Result lists the files an export produced, in write order.
type Result struct {
	Files []string
}

func (e Exporter) Export(ctx context.Context, html string, rows []journal.BlockRow, baseName string) (Result, error) {
	var result Result

	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return result, fmt.Errorf("create output directory %s: %w", dir, err)
	}

	formats, err := ParseFormats(e.Formats)
	if err != nil {
		return result, err
	}

	htmlPath := filepath.Join(dir, baseName+".html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return result, fmt.Errorf("write html output %s: %w", htmlPath, err)
	}
	result.Files = append(result.Files, htmlPath)

	for _, format := range formats {
		switch format {
		case FormatHTML:
			continue
		case FormatPDF:
			if e.PDF == nil {
				return result, fmt.Errorf("pdf output requested but no converter is configured")
			}
			pdfPath := filepath.Join(dir, baseName+".pdf")
			if err := e.PDF.Convert(ctx, htmlPath, pdfPath); err != nil {
				return result, err
			}
			result.Files = append(result.Files, pdfPath)
		default:
			writer, err := WriterForFormat(format)
			if err != nil {
				return result, err
			}
			path := filepath.Join(dir, baseName+"."+format)
			if err := writer.Write(path, rows); err != nil {
				return result, err
			}
			result.Files = append(result.Files, path)
		}
	}

	return result, nil
}
