package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/bottomline-assist/talent-matcher/internal/models"
)

const (
	documentTitle = "CV Evaluation Report"
	reportTitle   = "Bottomline Assist Fusion – Powered by a multi dimensional talent evaluation framework"

	fontFamily = "Helvetica"

	pageSideMargin   = 17.8
	pageTopMargin    = 20.3
	pageBottomMargin = 17.8

	titleFontSize   = 15
	sectionFontSize = 16
	headingFontSize = 12
	textFontSize    = 11

	textLineHeight    = 5
	titleLineHeight   = 7
	sectionLineHeight = 7.5
	headingLineHeight = 6

	logoWidth = 20.3

	defaultLogoPath = "logo.png"

	timestampLayout = "20060102_150405"
)

// PDFRenderer writes report documents as PDF files into OutputDir. A logo
// image at LogoPath is drawn above the title when the file exists.
type PDFRenderer struct {
	OutputDir string
	LogoPath  string

	logger *zap.Logger
}

func NewPDFRenderer(outputDir string, log *zap.Logger) *PDFRenderer {
	return &PDFRenderer{
		OutputDir: outputDir,
		LogoPath:  defaultLogoPath,
		logger:    log,
	}
}

// Render writes the report to a timestamped PDF file and returns its path.
func (r *PDFRenderer) Render(doc *models.Document) (string, error) {
	path := filepath.Join(r.OutputDir, fmt.Sprintf("evaluation_report_%s.pdf", time.Now().Format(timestampLayout)))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(documentTitle, true)
	pdf.SetMargins(pageSideMargin, pageTopMargin, pageSideMargin)
	pdf.SetAutoPageBreak(true, pageBottomMargin)
	pdf.AddPage()

	// Core fonts cover cp1252 only; the translator maps everything else to
	// its closest representable form.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	r.drawLogo(pdf)
	r.drawTitle(pdf, tr)
	r.drawHeader(pdf, tr, doc.Header)

	for i, candidate := range doc.Candidates {
		r.drawCandidate(pdf, tr, i+1, candidate)
		if i < doc.Candidates.Len()-1 {
			pdf.Ln(8)
		}
	}

	if doc.OverallSummary != "" {
		r.drawOverallSummary(pdf, tr, doc.OverallSummary)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", &RenderError{Path: path, Cause: err}
	}

	return path, nil
}

// drawLogo centers the brand logo above the title. A missing or unreadable
// logo is skipped, never failing the render.
func (r *PDFRenderer) drawLogo(pdf *fpdf.Fpdf) {
	if r.LogoPath == "" {
		return
	}
	if _, err := os.Stat(r.LogoPath); err != nil {
		return
	}

	info := pdf.RegisterImageOptions(r.LogoPath, fpdf.ImageOptions{})
	if info == nil || !pdf.Ok() {
		pdf.ClearError()
		r.logger.Warn("skipping unreadable report logo", zap.String("file", r.LogoPath))
		return
	}

	pageWidth, _ := pdf.GetPageSize()
	height := logoWidth * info.Height() / info.Width()
	pdf.ImageOptions(r.LogoPath, (pageWidth-logoWidth)/2, pdf.GetY(), logoWidth, height, false, fpdf.ImageOptions{}, 0, "")
	pdf.SetY(pdf.GetY() + height + 1.5)
}

func (r *PDFRenderer) drawTitle(pdf *fpdf.Fpdf, tr func(string) string) {
	pdf.SetFont(fontFamily, "B", titleFontSize)
	pdf.SetTextColor(0, 4, 53)
	pdf.MultiCell(0, titleLineHeight, tr(reportTitle), "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)
}

// drawHeader prints the job metadata block. Location is carried only in the
// JSON artifact, not here.
func (r *PDFRenderer) drawHeader(pdf *fpdf.Fpdf, tr func(string) string, header models.Header) {
	r.labeledLine(pdf, tr, "Role:", header.Role)
	r.labeledLine(pdf, tr, "Department:", header.Department)
	r.labeledLine(pdf, tr, "Company:", header.Company)
	r.labeledLine(pdf, tr, "Work Mode:", header.WorkMode)
	r.labeledLine(pdf, tr, "Report Date:", header.ReportDate)
	pdf.Ln(3)

	pdf.SetFont(fontFamily, "B", textFontSize)
	pdf.Write(textLineHeight, tr("Assessment Method: "))
	pdf.SetFont(fontFamily, "", textFontSize)
	pdf.Write(textLineHeight, tr(header.AssessmentMethod))
	pdf.Ln(textLineHeight)
	pdf.Ln(5)
}

func (r *PDFRenderer) drawCandidate(pdf *fpdf.Fpdf, tr func(string) string, number int, candidate *models.Evaluation) {
	pdf.SetFont(fontFamily, "B", sectionFontSize)
	pdf.CellFormat(0, sectionLineHeight, tr(fmt.Sprintf("Candidate %d", number)), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	r.labeledLine(pdf, tr, "Candidate Name:", candidate.CandidateName)
	r.labeledLine(pdf, tr, "Match Score:", fmt.Sprintf("%d/100", candidate.MatchScore))
	pdf.Ln(3)

	r.heading(pdf, tr, "Rating Summary")
	pdf.SetFont(fontFamily, "", textFontSize)
	pdf.MultiCell(0, textLineHeight, tr(candidate.RatingSummary), "", "J", false)
	pdf.Ln(3)

	r.heading(pdf, tr, "Strengths")
	r.bullets(pdf, tr, candidate.Strengths)
	pdf.Ln(2)

	r.heading(pdf, tr, "Potential Gaps")
	r.bullets(pdf, tr, candidate.PotentialGaps)
}

func (r *PDFRenderer) drawOverallSummary(pdf *fpdf.Fpdf, tr func(string) string, summary string) {
	pdf.Ln(6)
	pdf.SetFont(fontFamily, "B", sectionFontSize)
	pdf.CellFormat(0, sectionLineHeight, tr("Overall Comparative Insight"), "", 1, "L", false, 0, "")
	pdf.Ln(2)
	pdf.SetFont(fontFamily, "", textFontSize)
	pdf.MultiCell(0, textLineHeight, tr(summary), "", "J", false)
}

// labeledLine writes a bold label and a regular value as one flowing line.
func (r *PDFRenderer) labeledLine(pdf *fpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.SetFont(fontFamily, "B", textFontSize)
	pdf.Write(textLineHeight, tr(label)+" ")
	pdf.SetFont(fontFamily, "", textFontSize)
	pdf.Write(textLineHeight, tr(value))
	pdf.Ln(textLineHeight + 1)
}

func (r *PDFRenderer) heading(pdf *fpdf.Fpdf, tr func(string) string, text string) {
	pdf.SetFont(fontFamily, "B", headingFontSize)
	pdf.CellFormat(0, headingLineHeight, tr(text), "", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func (r *PDFRenderer) bullets(pdf *fpdf.Fpdf, tr func(string) string, items []string) {
	pdf.SetFont(fontFamily, "", textFontSize)
	for _, item := range items {
		pdf.MultiCell(0, textLineHeight, tr("• "+item), "", "L", false)
	}
}
