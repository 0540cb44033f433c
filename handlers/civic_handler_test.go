package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/opencivicmap/civicsync/models"
)

type fakeReader struct {
	officials map[string][]models.Official // by state abbr
	counties  map[string][]models.County   // by state name
}

func (f *fakeReader) GetOfficialsByState(_ context.Context, abbr string) ([]models.Official, error) {
	return f.officials[abbr], nil
}

func (f *fakeReader) GetCountiesByState(_ context.Context, name string) ([]models.County, error) {
	return f.counties[name], nil
}

func TestGetOfficials(t *testing.T) {
	reader := &fakeReader{officials: map[string][]models.Official{
		"VT": {{Name: "Welch, Peter", Office: models.OfficeSenator, StateAbbr: "VT"}},
	}}
	h := NewCivicHandler(reader, zap.NewNop().Sugar())

	rec := httptest.NewRecorder()
	h.GetOfficials(rec, httptest.NewRequest(http.MethodGet, "/api/officials?state=vt", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got []models.Official
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Welch, Peter", got[0].Name)
}

func TestGetOfficials_EmptyStateIsEmptyArray(t *testing.T) {
	h := NewCivicHandler(&fakeReader{}, zap.NewNop().Sugar())

	rec := httptest.NewRecorder()
	h.GetOfficials(rec, httptest.NewRequest(http.MethodGet, "/api/officials?state=WY", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetCounties_LooksUpByFullStateName(t *testing.T) {
	reader := &fakeReader{counties: map[string][]models.County{
		"Vermont": {{Name: "Windham", State: "Vermont", Population: 45905}},
	}}
	h := NewCivicHandler(reader, zap.NewNop().Sugar())

	rec := httptest.NewRecorder()
	h.GetCounties(rec, httptest.NewRequest(http.MethodGet, "/api/counties?state=VT", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got []models.County
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Windham", got[0].Name)
}

func TestStateQueryValidation(t *testing.T) {
	h := NewCivicHandler(&fakeReader{}, zap.NewNop().Sugar())

	rec := httptest.NewRecorder()
	h.GetOfficials(rec, httptest.NewRequest(http.MethodGet, "/api/officials", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.GetOfficials(rec, httptest.NewRequest(http.MethodGet, "/api/officials?state=ZZ", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.GetOfficials(rec, httptest.NewRequest(http.MethodPost, "/api/officials?state=VT", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
