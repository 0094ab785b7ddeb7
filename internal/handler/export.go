package handler

import (
	"fmt"
	"net/http"
	"strconv"
)

// ExportTripPDF handles GET /trips/{tripID}/export.pdf. The document is
// rendered in memory and served inline.
func (s *Server) ExportTripPDF(w http.ResponseWriter, r *http.Request) {
	tripID, err := tripIDParam(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	pdf, err := s.exporter.ExportPDF(r.Context(), tripID)
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", "trip-"+tripID.String()+".pdf"))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		// Client went away mid-download; nothing to recover.
		return
	}
}
