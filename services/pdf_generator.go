package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"time"

	"legaldocs_api_go/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// getChromePath returns the Chrome executable path from environment variable
func getChromePath() string {
	return os.Getenv("CHROME_PATH")
}

// PDFOptions contains options for PDF generation
type PDFOptions struct {
	PageSize     string // letter, legal, A4
	MarginTop    int    // points (72 = 1 inch)
	MarginBottom int
	MarginLeft   int
	MarginRight  int
}

// DefaultPDFOptions returns default options for legal documents
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		PageSize:     "letter",
		MarginTop:    72,
		MarginBottom: 72,
		MarginLeft:   72,
		MarginRight:  72,
	}
}

// GeneratePDF renders HTML content to PDF using headless Chrome
func GeneratePDF(htmlContent string, options PDFOptions) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
	)

	// Custom Chrome path for headless-shell in Docker
	if chromePath := getChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	defer allocCancel()

	ctx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	var paperWidth, paperHeight float64
	switch options.PageSize {
	case "legal":
		paperWidth = 8.5
		paperHeight = 14.0
	case "A4":
		paperWidth = 8.27
		paperHeight = 11.69
	default: // letter
		paperWidth = 8.5
		paperHeight = 11.0
	}

	marginTop := float64(options.MarginTop) / 72.0
	marginBottom := float64(options.MarginBottom) / 72.0
	marginLeft := float64(options.MarginLeft) / 72.0
	marginRight := float64(options.MarginRight) / 72.0

	var pdfBuf []byte

	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.Sleep(100*time.Millisecond),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginTop(marginTop).
				WithMarginBottom(marginBottom).
				WithMarginLeft(marginLeft).
				WithMarginRight(marginRight).
				WithPrintBackground(true).
				WithDisplayHeaderFooter(false).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}

var caseSummaryTemplate = template.Must(template.New("case_summary").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: Georgia, serif; font-size: 12pt; color: #222; }
h1 { font-size: 16pt; border-bottom: 1px solid #222; padding-bottom: 6px; }
table { width: 100%; border-collapse: collapse; margin-top: 12px; }
td { padding: 4px 8px; vertical-align: top; }
td.label { font-weight: bold; width: 32%; }
.documents { margin-top: 18px; }
</style>
</head>
<body>
<h1>{{.CaseNumber}} — {{.Title}}</h1>
<table>
<tr><td class="label">Cliente</td><td>{{.Client.FullName}} ({{.Client.IdentificationNumber}})</td></tr>
<tr><td class="label">Tipo</td><td>{{.CaseType}}</td></tr>
<tr><td class="label">Estado</td><td>{{.Status}}</td></tr>
<tr><td class="label">Prioridad</td><td>{{.Priority}}</td></tr>
<tr><td class="label">Fecha de inicio</td><td>{{.StartDate.Format "2006-01-02"}}</td></tr>
{{if .Deadline}}<tr><td class="label">Fecha límite</td><td>{{.Deadline.Format "2006-01-02"}}</td></tr>{{end}}
{{if .ClosedDate}}<tr><td class="label">Fecha de cierre</td><td>{{.ClosedDate.Format "2006-01-02"}}</td></tr>{{end}}
{{if .AssignedTo}}<tr><td class="label">Asignado a</td><td>{{.AssignedTo.Name}}</td></tr>{{end}}
</table>
<div class="documents">
<h1>Documentos ({{len .Documents}})</h1>
<table>
{{range .Documents}}<tr><td class="label">{{.DocumentType}}</td><td>{{.Title}} ({{.FileSize}} bytes)</td></tr>
{{end}}</table>
</div>
</body>
</html>`))

// GenerateCaseSummaryPDF renders a one-page PDF summary of a case with its
// client, dates and document inventory.
func GenerateCaseSummaryPDF(caseRecord *models.Case) ([]byte, error) {
	var htmlBody bytes.Buffer
	if err := caseSummaryTemplate.Execute(&htmlBody, caseRecord); err != nil {
		return nil, fmt.Errorf("failed to render case summary: %w", err)
	}
	return GeneratePDF(htmlBody.String(), DefaultPDFOptions())
}
