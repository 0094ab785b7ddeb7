package handler

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/travelmaker/backend/internal/repo"
)

// imageBodyLimit caps an image upload body. Slightly above the stored image
// limit to leave room for the JSON envelope around the data URL.
const imageBodyLimit = repo.MaxImageBytes + 1<<20

// imageLocationParam decodes the {location} path parameter. Locations are
// free text and arrive percent-encoded.
func imageLocationParam(r *http.Request) string {
	raw := chi.URLParam(r, "location")
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

// GetImage handles GET /images/{location}.
func (s *Server) GetImage(w http.ResponseWriter, r *http.Request) {
	location := imageLocationParam(r)

	dataURL, err := s.images.Get(r.Context(), location)
	if err != nil {
		respondError(w, r, err, "image")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"location": location,
		"image":    dataURL,
	})
}

// PutImage handles PUT /images/{location}. The body carries a base64 image
// data URL; oversized or non-image payloads are rejected.
func (s *Server) PutImage(w http.ResponseWriter, r *http.Request) {
	location := imageLocationParam(r)

	var body struct {
		Image string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "request body must be valid JSON")
		return
	}

	if err := s.images.Put(r.Context(), location, body.Image); err != nil {
		respondError(w, r, err, "image")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteImage handles DELETE /images/{location}.
func (s *Server) DeleteImage(w http.ResponseWriter, r *http.Request) {
	if err := s.images.Delete(r.Context(), imageLocationParam(r)); err != nil {
		respondError(w, r, err, "image")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
