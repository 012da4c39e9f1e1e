package output

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

const defaultPDFTimeout = 60 * time.Second

// paperSizes are width and height in inches.
var paperSizes = map[string][2]float64{
	"A3":     {11.69, 16.54},
	"A4":     {8.27, 11.69},
	"LETTER": {8.5, 11},
	"LEGAL":  {8.5, 14},
}

// PDFOptions fixes the printed page. Margins are in inches.
type PDFOptions struct {
	PageSize     string
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	MarginLeft   float64
	BrowserBin   string
	Timeout      time.Duration
}

func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		PageSize:     "A4",
		MarginTop:    0.4,
		MarginRight:  0.4,
		MarginBottom: 0.4,
		MarginLeft:   0.4,
	}
}

// PaperSize returns the dimensions of a named paper size in inches.
func PaperSize(name string) (float64, float64, error) {
	size, ok := paperSizes[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, 0, fmt.Errorf("unsupported pdf page size: %s", name)
	}
	return size[0], size[1], nil
}

// PDFConverter turns a rendered HTML file into a PDF file.
type PDFConverter interface {
	Convert(ctx context.Context, htmlPath, pdfPath string) error
}

// ChromePDFConverter prints through a headless Chrome instance.
type ChromePDFConverter struct {
	Options PDFOptions
}

func NewChromePDFConverter(options PDFOptions) *ChromePDFConverter {
	return &ChromePDFConverter{Options: options}
}

func (c *ChromePDFConverter) Convert(ctx context.Context, htmlPath, pdfPath string) error {
	width, height, err := PaperSize(c.Options.PageSize)
	if err != nil {
		return err
	}

	absPath, err := filepath.Abs(htmlPath)
	if err != nil {
		return fmt.Errorf("resolve html path %s: %w", htmlPath, err)
	}
	fileURL := (&url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}).String()

	allocOptions := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.NoDefaultBrowserCheck,
		chromedp.NoFirstRun,
	)
	if bin := strings.TrimSpace(c.Options.BrowserBin); bin != "" {
		allocOptions = append(allocOptions, chromedp.ExecPath(bin))
	}

	timeout := c.Options.Timeout
	if timeout <= 0 {
		timeout = defaultPDFTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOptions...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var pdf []byte
	if err := chromedp.Run(browserCtx,
		chromedp.Navigate(fileURL),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(width).
				WithPaperHeight(height).
				WithMarginTop(c.Options.MarginTop).
				WithMarginRight(c.Options.MarginRight).
				WithMarginBottom(c.Options.MarginBottom).
				WithMarginLeft(c.Options.MarginLeft).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = data
			return nil
		}),
	); err != nil {
		return fmt.Errorf("print %s to pdf: %w", htmlPath, err)
	}

	if err := os.WriteFile(pdfPath, pdf, 0o644); err != nil {
		return fmt.Errorf("write pdf output %s: %w", pdfPath, err)
	}
	return nil
}
