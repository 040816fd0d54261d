package reports

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"yuconz/internal/domain/review"
)

// RenderReviewPDF produces the printable form of a completed annual
// review. Open reviews cannot be rendered: the signatures are part of the
// document.
func RenderReviewPDF(r *review.AnnualReview) ([]byte, error) {
	if !r.IsComplete() {
		return nil, review.ErrReviewOpen
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Annual Review")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	field := func(label, value string) {
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
	}
	field("Staff No", r.StaffNo)
	field("Name", r.RevieweeName)
	field("Supervisor", r.SupervisorNo)
	field("Second Reviewer", r.SecondReviewerNo)
	field("Section", r.Section)
	field("Job Title", r.JobTitle)
	field("Recommendation", r.Recommendation.Title())
	pdf.Ln(4)

	if r.PastPerformance != nil {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, "Review of past performance")
		pdf.Ln(9)
		pdf.SetFont("Helvetica", "", 11)
		for i, a := range r.PastPerformance.Achievements {
			pdf.MultiCell(0, 6, fmt.Sprintf("%d. %s: %s", i+1, a.Objective, a.Outcome), "", "L", false)
		}
		pdf.MultiCell(0, 6, "Summary: "+r.PastPerformance.Summary, "", "L", false)
		pdf.Ln(4)
	}

	if r.FutureGoals != nil {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, "Preview of future performance")
		pdf.Ln(9)
		pdf.SetFont("Helvetica", "", 11)
		for i, goal := range r.FutureGoals.Goals {
			pdf.MultiCell(0, 6, fmt.Sprintf("%d. %s", i+1, goal), "", "L", false)
		}
		pdf.MultiCell(0, 6, "Summary: "+r.FutureGoals.Summary, "", "L", false)
		pdf.Ln(4)
	}

	sigs := r.Signatures()
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Signatures")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	field("Reviewee signed", formatDate(sigs.Reviewee))
	field("Supervisor signed", formatDate(sigs.Supervisor))
	field("Second reviewer signed", formatDate(sigs.SecondReviewer))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
