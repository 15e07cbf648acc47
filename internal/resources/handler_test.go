package resources

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResourceServer(t *testing.T, repo Repository) *httptest.Server {
	t.Helper()

	h := NewHandler(NewMatcher(repo, zerolog.Nop()))
	r := chi.NewRouter()
	RegisterRoutes(r, h)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestHandleFindResourcesRequiresCoordinates(t *testing.T) {
	srv := newResourceServer(t, nil)

	for _, query := range []string{"", "?lat=37.7", "?lng=-122.4", "?lat=abc&lng=-122.4"} {
		resp, err := http.Get(srv.URL + "/resources" + query)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "query %q", query)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Latitude and longitude are required", body["error"])
	}
}

func TestHandleFindResourcesServesFallback(t *testing.T) {
	srv := newResourceServer(t, nil)

	resp, err := http.Get(srv.URL + "/resources?lat=37.7749&lng=-122.4194")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status      string     `json:"status"`
		Resources   []Resource `json:"resources"`
		Count       int        `json:"count"`
		TriageLevel string     `json:"triage_level"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, "success", body.Status)
	assert.Equal(t, "routine", body.TriageLevel, "level defaults to routine")
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Resources, 2)
	assert.Equal(t, "mock_1", body.Resources[0].ID)
}

func TestHandleFindResourcesHonorsLevelAndDistance(t *testing.T) {
	repo := &stubRepo{resources: []Resource{
		facilityAt("hospital_close", TypeHospital, 3),
		facilityAt("hospital_far", TypeHospital, 20),
		facilityAt("clinic_close", TypeClinic, 1),
	}}
	srv := newResourceServer(t, repo)

	resp, err := http.Get(srv.URL + "/resources?lat=37.7749&lng=-122.4194&level=emergency&distance=10")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Resources   []Resource `json:"resources"`
		TriageLevel string     `json:"triage_level"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, "emergency", body.TriageLevel)
	require.Len(t, body.Resources, 1)
	assert.Equal(t, "hospital_close", body.Resources[0].ID)
}
