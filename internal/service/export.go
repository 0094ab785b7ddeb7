package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"github.com/travelmaker/backend/internal/currency"
	"github.com/travelmaker/backend/internal/domain"
	"github.com/travelmaker/backend/internal/repo"
)

// ExportService renders a trip's full itinerary to a PDF document.
type ExportService struct {
	trips repo.TripRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(trips repo.TripRepo) *ExportService {
	return &ExportService{trips: trips}
}

// ExportPDF renders the trip identified by id and returns the raw PDF bytes.
// No filesystem involved; the document is built in memory.
func (s *ExportService) ExportPDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.ExportPDF: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// Header bar
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 24, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 7)
	pdf.CellFormat(100, 10, "TravelMaker", "", 1, "L", false, 0, "")
	pdf.SetY(30)
	pdf.SetTextColor(0, 0, 0)

	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+tr(title), "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}
	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(45, 6, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(125, 6, tr(value), "", 1, "L", false, 0, "")
	}

	local := currency.ForTrip(trip)

	sectionHeader("Trip")
	row("Destination", trip.Location)
	row("Dates", fmt.Sprintf("%s to %s (%d days)",
		trip.StartDate.Format(domain.DateKey), trip.EndDate.Format(domain.DateKey), trip.Days()))
	row("Participants", strings.Join(trip.Participants, ", "))
	row("Currency", fmt.Sprintf("%s (%s)", local.Name, local.Code))
	pdf.Ln(4)

	for dayIndex, date := range trip.Dates() {
		activities := trip.Itinerary[date]

		sectionHeader(fmt.Sprintf("Day %d: %s", dayIndex+1, date))
		if len(activities) == 0 {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.CellFormat(170, 6, "No activities planned.", "", 1, "L", false, 0, "")
			pdf.Ln(2)
			continue
		}

		for _, a := range activities {
			pdf.SetFont("Helvetica", "B", 9)
			pdf.CellFormat(28, 5, fmt.Sprintf("%s-%s", a.StartTime, a.EndTime), "", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 9)
			line := a.Content
			if a.Location != "" {
				line += " @ " + a.Location
			}
			pdf.CellFormat(102, 5, tr(line), "", 0, "L", false, 0, "")
			pdf.CellFormat(20, 5, string(a.Category), "", 0, "L", false, 0, "")
			pdf.CellFormat(20, 5, tr(fmt.Sprintf("%s%.0f", local.Symbol, float64(a.Cost))), "", 1, "R", false, 0, "")
		}

		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(150, 6, "Day total", "T", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, tr(fmt.Sprintf("%s%.0f", local.Symbol, trip.Itinerary.CostForDate(date))), "T", 1, "R", false, 0, "")
		pdf.Ln(3)
	}

	sectionHeader("Cost summary")
	for _, entry := range sortedBreakdown(trip.Itinerary) {
		row(string(entry.category), fmt.Sprintf("%s%.0f", local.Symbol, entry.total))
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(45, 8, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(125, 8, tr(fmt.Sprintf("%s%.0f", local.Symbol, trip.Itinerary.TotalCost())), "T", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("service.ExportService.ExportPDF: render: %w", err)
	}
	return buf.Bytes(), nil
}

type breakdownEntry struct {
	category domain.Category
	total    float64
}

// sortedBreakdown orders the category breakdown by summed cost, descending —
// the display ordering is the caller's job, and here the PDF is the caller.
func sortedBreakdown(it domain.Itinerary) []breakdownEntry {
	breakdown := it.CategoryBreakdown()
	entries := make([]breakdownEntry, 0, len(breakdown))
	for category, total := range breakdown {
		entries = append(entries, breakdownEntry{category: category, total: total})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].total != entries[j].total {
			return entries[i].total > entries[j].total
		}
		return entries[i].category < entries[j].category
	})
	return entries
}
