// Package pdf renders persisted job cards to A4 PDF documents addressed
// by job number. Rendering runs on the deferred path only; a submission
// never waits for it.
package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nordx/jobcard-backend/internal/model"
	"github.com/nordx/jobcard-backend/internal/storage"
)

// Renderer draws job-card documents into the jobcards category of the
// media store, using the tenant's branding for the header.
type Renderer struct {
	store *storage.LocalStore
}

// NewRenderer returns a Renderer writing through the given store.
func NewRenderer(store *storage.LocalStore) *Renderer {
	return &Renderer{store: store}
}

const (
	marginX  = 14.0 // left/right page margin in mm
	thumbW   = 42.0 // photo thumbnail width in mm
	thumbH   = 28.0 // photo thumbnail height in mm
	thumbGap = 4.0
)

// Render draws the document for card and writes it to the artifact path
// for the card's job number, returning that path. The context bounds the
// whole call; an expired context fails the render.
func (r *Renderer) Render(ctx context.Context, card *model.JobCard, company *model.Company) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	out := r.store.ArtifactPath(card.JobNumber)
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 16)
	pdf.AddPage()
	pageW, _ := pdf.GetPageSize()

	// Header: logo on the left, title and company contacts on the right.
	if company != nil && company.LogoPath != nil {
		if disk, err := r.store.DiskPath(*company.LogoPath); err == nil {
			if _, err := os.Stat(disk); err == nil {
				pdf.ImageOptions(disk, marginX, 12, 42, 21, false,
					gofpdf.ImageOptions{ReadDpi: true}, 0, "")
			}
		}
	}
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginX, 14)
	pdf.CellFormat(pageW-2*marginX, 7, "JOB CARD", "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if company != nil {
		pdf.CellFormat(pageW-2*marginX, 5, company.Name, "", 1, "R", false, 0, "")
		if company.ContactPhone != nil {
			pdf.CellFormat(pageW-2*marginX, 5, "Tel: "+*company.ContactPhone, "", 1, "R", false, 0, "")
		}
		if company.ContactEmail != nil {
			pdf.CellFormat(pageW-2*marginX, 5, "Email: "+*company.ContactEmail, "", 1, "R", false, 0, "")
		}
	}
	pdf.SetY(38)
	pdf.Line(marginX, pdf.GetY(), pageW-marginX, pdf.GetY())
	pdf.Ln(4)

	// Meta grid, two columns.
	meta := []struct{ label, value string }{
		{"Job Number", card.JobNumber},
		{"Client", card.ClientName},
		{"Site Address", card.SiteAddress},
		{"Contact Person", card.ContactPerson},
		{"Contact Number", strOrEmpty(card.ContactNumber)},
		{"Technician", card.TechnicianName},
		{"Arrival Time", card.ArrivalTime},
		{"Departure Time", card.DepartureTime},
		{"Hours Worked", fmt.Sprintf("%.2f", card.HoursWorked)},
		{"Instructions Given By", strOrEmpty(card.InstructionGivenBy)},
	}
	colW := (pageW - 2*marginX) / 2
	for i := 0; i < len(meta); i += 2 {
		for j := 0; j < 2 && i+j < len(meta); j++ {
			m := meta[i+j]
			pdf.SetX(marginX + float64(j)*colW)
			pdf.SetFont("Helvetica", "B", 9)
			pdf.CellFormat(40, 5, m.label+":", "", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 9)
			pdf.CellFormat(colW-40, 5, m.value, "", 0, "L", false, 0, "")
		}
		pdf.Ln(5)
	}
	pdf.Ln(3)
	pdf.Line(marginX, pdf.GetY(), pageW-marginX, pdf.GetY())
	pdf.Ln(5)

	r.textSection(pdf, "Job Description", card.JobDescription)
	materials := "None"
	if card.MaterialsUsed != nil && *card.MaterialsUsed != "" {
		materials = *card.MaterialsUsed
	}
	r.textSection(pdf, "Materials Used", materials)

	for _, sec := range []struct {
		title string
		paths []string
	}{
		{"Material Receipt Photos", card.MaterialPhotos},
		{"Before Photos", card.BeforePhotos},
		{"After Photos", card.AfterPhotos},
	} {
		r.photoSection(pdf, sec.title, sec.paths)
	}

	r.signatureSection(pdf, card)

	pdf.SetY(-12)
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat((pageW-2*marginX)/2, 5,
		fmt.Sprintf("Generated on %s", time.Now().UTC().Format("2006-01-02 15:04")),
		"", 0, "L", false, 0, "")
	pdf.CellFormat((pageW-2*marginX)/2, 5,
		fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := pdf.OutputFileAndClose(out); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}
	return out, nil
}

func (r *Renderer) textSection(pdf *gofpdf.Fpdf, title, body string) {
	pageW, _ := pdf.GetPageSize()
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(pageW-2*marginX, 6, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(pageW-2*marginX, 4.5, body, "", "L", false)
	pdf.Ln(4)
}

// photoSection draws a wrapped grid of thumbnails. Paths that are not
// drawable (missing files, raw .bin fallbacks) are skipped silently, the
// same way the section is skipped when no photos exist.
func (r *Renderer) photoSection(pdf *gofpdf.Fpdf, title string, paths []string) {
	var drawable []string
	for _, p := range paths {
		ext := strings.ToLower(filepath.Ext(p))
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".gif" {
			continue
		}
		disk, err := r.store.DiskPath(p)
		if err != nil {
			continue
		}
		if _, err := os.Stat(disk); err != nil {
			continue
		}
		drawable = append(drawable, disk)
	}
	if len(drawable) == 0 {
		return
	}

	pageW, _ := pdf.GetPageSize()
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(pageW-2*marginX, 6, title, "", 1, "L", false, 0, "")

	x := marginX
	for _, disk := range drawable {
		if x+thumbW > pageW-marginX {
			x = marginX
			pdf.SetY(pdf.GetY() + thumbH + thumbGap)
		}
		pdf.ImageOptions(disk, x, pdf.GetY(), thumbW, thumbH, false,
			gofpdf.ImageOptions{ReadDpi: true}, 0, "")
		x += thumbW + thumbGap
	}
	pdf.SetY(pdf.GetY() + thumbH + 6)
}

func (r *Renderer) signatureSection(pdf *gofpdf.Fpdf, card *model.JobCard) {
	if card.SignaturePath == nil {
		return
	}
	disk, err := r.store.DiskPath(*card.SignaturePath)
	if err != nil {
		return
	}
	if _, err := os.Stat(disk); err != nil {
		return
	}
	pageW, _ := pdf.GetPageSize()
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(pageW-2*marginX, 6, "Customer Signature", "", 1, "L", false, 0, "")
	pdf.ImageOptions(disk, marginX, pdf.GetY(), 66, 18, false,
		gofpdf.ImageOptions{ReadDpi: true}, 0, "")
	pdf.SetY(pdf.GetY() + 24)
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
