package main

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth  = 210 // A4 width in mm
	pdfMargin     = 10  // Margin in mm
	pdfLineHeight = 6   // Row height in mm
	pdfFontSize   = 9
	pdfLinesWidth = 30 // Width of the line-count column in mm
)

// generatePDF writes a two-column table of paths and line counts followed by
// the summary.
func generatePDF(files []FileInfo, summary Summary, outputPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()

	// Core fonts are cp1252; translate so non-ASCII paths survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pathWidth := float64(pdfPageWidth-2*pdfMargin) - pdfLinesWidth

	pdf.SetFont("Helvetica", "B", pdfFontSize+1)
	pdf.CellFormat(pathWidth, pdfLineHeight, "File", "B", 0, "L", false, 0, "")
	pdf.CellFormat(pdfLinesWidth, pdfLineHeight, "Lines", "B", 1, "R", false, 0, "")

	pdf.SetFont("Courier", "", pdfFontSize)
	for _, file := range files {
		pdf.CellFormat(pathWidth, pdfLineHeight, tr(file.Path), "", 0, "L", false, 0, "")
		pdf.CellFormat(pdfLinesWidth, pdfLineHeight, fmt.Sprint(file.Lines), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", pdfFontSize+1)
	pdf.CellFormat(pathWidth, pdfLineHeight, fmt.Sprintf("Total lines (%d files)", summary.TotalFiles), "T", 0, "L", false, 0, "")
	pdf.CellFormat(pdfLinesWidth, pdfLineHeight, fmt.Sprint(summary.TotalLines), "T", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("failed to save PDF to %s: %w", outputPath, err)
	}
	return nil
}
