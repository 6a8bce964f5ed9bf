// Package export renders a finished story as a printable document.
package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"jongubooks/pkg/schema"
)

// PDF renders the story as an A5 booklet: a title page followed by one page
// per story page. Illustrations are referenced by URL only, so the pages
// carry text alone.
func PDF(story schema.Story) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(18, 20, 18)
	pdf.SetFooterFunc(func() {
		if pdf.PageNo() == 1 {
			return
		}
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("%d", pdf.PageNo()-1), "", 0, "C", false, 0, "")
	})

	titlePage(pdf, story)
	for _, page := range story.Pages {
		storyPage(pdf, page)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func titlePage(pdf *gofpdf.Fpdf, story schema.Story) {
	pdf.AddPage()
	pdf.SetY(60)
	pdf.SetFont("Helvetica", "B", 26)
	pdf.MultiCell(0, 12, story.Title, "", "C", false)

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 12)
	if story.Author != "" {
		pdf.MultiCell(0, 8, "by "+story.Author, "", "C", false)
	}
	if story.Lesson != "" {
		pdf.Ln(16)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 6, story.Lesson, "", "C", false)
	}
}

func storyPage(pdf *gofpdf.Fpdf, page schema.Page) {
	pdf.AddPage()
	pdf.SetY(40)
	pdf.SetFont("Helvetica", "", 14)
	pdf.MultiCell(0, 9, page.Text, "", "L", false)
}
