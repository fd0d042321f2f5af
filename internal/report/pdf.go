package report

import (
	"bytes"
	"fmt"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

// PDFRenderer turns report HTML into a PDF file at out.
type PDFRenderer func(html []byte, out string) error

// WKHTMLToPDF renders through the wkhtmltopdf binary, which must be on PATH
// or pointed to by the WKHTMLTOPDF_PATH environment variable.
func WKHTMLToPDF(html []byte, out string) error {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return fmt.Errorf("pdf: %w", err)
	}

	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationLandscape)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(html))
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return fmt.Errorf("pdf: create: %w", err)
	}
	if err := pdfg.WriteFile(out); err != nil {
		return fmt.Errorf("pdf: write %s: %w", out, err)
	}
	return nil
}
