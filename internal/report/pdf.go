// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	pdfFont       = "Helvetica"
	pdfLineHeight = 5.0
)

// writePDF renders one section per resume: header, score, keywords, then
// the full resume text. Core fonts only cover cp1252, so text is translated
// and unmappable runes are replaced.
func writePDF(w io.Writer, rep *Report) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Resume Screening Report", true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(pdfFont, "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont(pdfFont, "B", 16)
	pdf.CellFormat(0, 10, "Resume Screening Report", "", 1, "L", false, 0, "")
	pdf.SetFont(pdfFont, "", 10)
	pdf.MultiCell(0, pdfLineHeight, tr(fmt.Sprintf("Run %s, %s normalizer, role filter: %s",
		rep.RunID, rep.Strategy, rep.Role)), "", "L", false)
	pdf.MultiCell(0, pdfLineHeight, tr("Job keywords: "+KeywordList(rep.Keywords)), "", "L", false)
	pdf.Ln(4)

	if len(rep.Rows) == 0 {
		pdf.MultiCell(0, pdfLineHeight, "No matching resumes.", "", "L", false)
	}

	for i, r := range rep.Rows {
		if i > 0 {
			pdf.AddPage()
		}
		pdf.SetFont(pdfFont, "B", 13)
		pdf.MultiCell(0, 7, tr(fmt.Sprintf("%d. %s", r.Rank, r.DocumentID)), "B", "L", false)
		pdf.SetFont(pdfFont, "", 10)
		pdf.MultiCell(0, pdfLineHeight, tr("Role: "+r.Role), "", "L", false)
		pdf.MultiCell(0, pdfLineHeight, "Score: "+FormatScore(r.Score), "", "L", false)
		pdf.MultiCell(0, pdfLineHeight, tr("Matched keywords: "+KeywordList(r.MatchedKeywords)), "", "L", false)
		pdf.Ln(3)
		pdf.SetFont(pdfFont, "", 9)
		pdf.MultiCell(0, 4.5, tr(r.Text), "", "L", false)
	}

	if len(rep.Failures) > 0 {
		pdf.AddPage()
		pdf.SetFont(pdfFont, "B", 13)
		pdf.CellFormat(0, 8, "Unreadable resumes", "", 1, "L", false, 0, "")
		pdf.SetFont(pdfFont, "", 10)
		for _, f := range rep.Failures {
			pdf.MultiCell(0, pdfLineHeight, tr(f.DocumentID+": "+f.Error), "", "L", false)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering PDF: %w", err)
	}
	return nil
}
