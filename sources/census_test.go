package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/opencivicmap/civicsync/config"
	"github.com/opencivicmap/civicsync/models"
)

const censusFixture = `[
	["NAME","B01003_001E","state","county"],
	["Windham County, Vermont","45905","50","025"],
	["Orleans Parish, Louisiana","376971","50","071"],
	["Essex County, Vermont","N/A","50","009"]
]`

func newCensusClient(t *testing.T, baseURL string) *CensusClient {
	t.Helper()
	return NewCensusClient(config.ProvidersConfig{
		CensusBaseURL:  baseURL,
		CensusAPIKey:   "census-key",
		RequestTimeout: 5 * time.Second,
	}, zap.NewNop().Sugar())
}

func TestCensusFetchByState_MapsRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "NAME,B01003_001E", r.URL.Query().Get("get"))
		assert.Equal(t, "county:*", r.URL.Query().Get("for"))
		assert.Equal(t, "state:50", r.URL.Query().Get("in"))
		assert.Equal(t, "census-key", r.URL.Query().Get("key"))
		w.Write([]byte(censusFixture))
	}))
	defer server.Close()

	counties, err := newCensusClient(t, server.URL).FetchByState(context.Background(), vermont(t))
	require.NoError(t, err)
	require.Len(t, counties, 3)

	windham := counties[0]
	assert.Equal(t, "Windham", windham.Name, "County suffix and state must be stripped")
	assert.Equal(t, "Vermont", windham.State)
	assert.Equal(t, 45905, windham.Population)
	assert.Equal(t, "50", windham.StateFIPS)
	assert.Equal(t, "025", windham.CountyFIPS)
	assert.Equal(t, "50025", windham.FullFIPS)
	assert.Equal(t, models.SourceCensus, windham.Source)

	assert.Equal(t, "Orleans", counties[1].Name, "Parish suffix must be stripped too")
	assert.Equal(t, 0, counties[2].Population, "non-numeric population defaults to zero")
}

func TestCensusFetchByState_HeaderOnlyIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[["NAME","B01003_001E","state","county"]]`))
	}))
	defer server.Close()

	counties, err := newCensusClient(t, server.URL).FetchByState(context.Background(), vermont(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too short")
	assert.Nil(t, counties)
}

func TestCensusFetchByState_MissingColumnIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[["NAME","state","county"],["Windham County, Vermont","50","025"]]`))
	}))
	defer server.Close()

	_, err := newCensusClient(t, server.URL).FetchByState(context.Background(), vermont(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing expected columns")
}

func TestCensusFetchByState_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newCensusClient(t, server.URL).FetchByState(context.Background(), vermont(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestCleanCountyName(t *testing.T) {
	cases := map[string]string{
		"Windham County, Vermont":      "Windham",
		"Orleans Parish, Louisiana":    "Orleans",
		"District of Columbia":         "District of Columbia",
		"Carson City, Nevada":          "Carson City",
	}
	for in, want := range cases {
		assert.Equal(t, want, cleanCountyName(in), "input %q", in)
	}
}
