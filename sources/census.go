package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/opencivicmap/civicsync/config"
	"github.com/opencivicmap/civicsync/models"
	"github.com/opencivicmap/civicsync/statecodes"
)

// ACS 5-year total population estimate.
const censusPopulationField = "B01003_001E"

// CensusClient fetches county population rows from the Census ACS API. The
// API speaks tabular JSON: a header row naming the columns, then one row per
// county.
type CensusClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	log        *zap.SugaredLogger
}

func NewCensusClient(cfg config.ProvidersConfig, log *zap.SugaredLogger) *CensusClient {
	return &CensusClient{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:    strings.TrimRight(cfg.CensusBaseURL, "/"),
		apiKey:     cfg.CensusAPIKey,
		log:        log,
	}
}

// FetchByState requests population for every county in the state identified
// by the roster entry's FIPS code and maps each data row to a County record.
func (c *CensusClient) FetchByState(ctx context.Context, st statecodes.State) ([]models.County, error) {
	params := url.Values{}
	params.Set("get", "NAME,"+censusPopulationField)
	params.Set("for", "county:*")
	params.Set("in", "state:"+st.FIPS)
	params.Set("key", c.apiKey)
	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build census request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("census request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("census returned status %d", resp.StatusCode)
	}

	var rows [][]string
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode census response: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("census response too short: %d rows, expected header plus data", len(rows))
	}

	cols, err := censusColumns(rows[0])
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	counties := make([]models.County, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) <= cols.max() {
			c.log.Warnf("Source: skipping short census row for %s: %v", st.Abbr, row)
			continue
		}
		population, perr := strconv.Atoi(row[cols.population])
		if perr != nil {
			// Census publishes occasional non-numeric placeholders; treat
			// them as zero rather than dropping the county.
			population = 0
		}
		counties = append(counties, models.County{
			Name:        cleanCountyName(row[cols.name]),
			State:       st.Name,
			StateFIPS:   row[cols.state],
			CountyFIPS:  row[cols.county],
			FullFIPS:    row[cols.state] + row[cols.county],
			Population:  population,
			Source:      models.SourceCensus,
			LastUpdated: now,
		})
	}

	c.log.Infof("Source: census returned %d counties for %s", len(counties), st.Abbr)
	return counties, nil
}

type censusColumnIndex struct {
	name       int
	population int
	state      int
	county     int
}

func (i censusColumnIndex) max() int {
	m := i.name
	for _, v := range []int{i.population, i.state, i.county} {
		if v > m {
			m = v
		}
	}
	return m
}

func censusColumns(header []string) (censusColumnIndex, error) {
	idx := censusColumnIndex{name: -1, population: -1, state: -1, county: -1}
	for i, col := range header {
		switch col {
		case "NAME":
			idx.name = i
		case censusPopulationField:
			idx.population = i
		case "state":
			idx.state = i
		case "county":
			idx.county = i
		}
	}
	if idx.name < 0 || idx.population < 0 || idx.state < 0 || idx.county < 0 {
		return idx, fmt.Errorf("census header missing expected columns: %v", header)
	}
	return idx, nil
}

// cleanCountyName strips the ", <State>" suffix and the "County"/"Parish"
// designation from a Census display name, e.g.
// "Windham County, Vermont" -> "Windham".
func cleanCountyName(name string) string {
	if i := strings.Index(name, ","); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimSuffix(name, " County")
	name = strings.TrimSuffix(name, " Parish")
	return strings.TrimSpace(name)
}
