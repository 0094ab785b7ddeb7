package handler_test

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngDataURL() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("fake png bytes"))
}

func TestImageRoundTrip(t *testing.T) {
	_, h := newTestServer(t)

	put := httptest.NewRequest(http.MethodPut, "/images/Tokyo%2C%20Japan", jsonBody(t, map[string]string{
		"image": pngDataURL(),
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, put)
	require.Equal(t, http.StatusNoContent, rec.Code)

	get := httptest.NewRequest(http.MethodGet, "/images/Tokyo%2C%20Japan", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, get)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Location string `json:"location"`
		Image    string `json:"image"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Tokyo, Japan", resp.Location, "the path parameter is percent-decoded")
	assert.Equal(t, pngDataURL(), resp.Image)

	del := httptest.NewRequest(http.MethodDelete, "/images/Tokyo%2C%20Japan", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, del)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/images/Tokyo%2C%20Japan", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPutImage_RejectsNonImagePayload(t *testing.T) {
	_, h := newTestServer(t)

	req := httptest.NewRequest(http.MethodPut, "/images/somewhere", jsonBody(t, map[string]string{
		"image": "data:text/html;base64,PGh0bWw+",
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", decodeError(t, rec.Body).Error.Code)
}
