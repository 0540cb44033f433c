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

// CongressClient fetches the current-member roster from the Congress.gov API
// and maps matching members to Official records. Failures are returned as
// errors; the sync worker decides what an unavailable lane means.
type CongressClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	pageSize   int
	log        *zap.SugaredLogger
}

func NewCongressClient(cfg config.ProvidersConfig, log *zap.SugaredLogger) *CongressClient {
	return &CongressClient{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:    strings.TrimRight(cfg.CongressBaseURL, "/"),
		apiKey:     cfg.CongressAPIKey,
		pageSize:   cfg.CongressPageSize,
		log:        log,
	}
}

// Wire shape of the Congress.gov member list response. Only the fields the
// mapper needs are declared.
type congressMemberList struct {
	Members []congressMember `json:"members"`
}

type congressMember struct {
	Name       string `json:"name"`
	BioguideID string `json:"bioguideId"`
	PartyName  string `json:"partyName"`
	State      string `json:"state"`
	District   *int   `json:"district"`
	Terms      struct {
		Item []struct {
			Chamber   string `json:"chamber"`
			StartYear int    `json:"startYear"`
		} `json:"item"`
	} `json:"terms"`
}

// FetchByState requests the full current-member roster (one page, bounded
// page size) and filters client-side to members whose state matches the
// roster entry by full name or USPS code.
func (c *CongressClient) FetchByState(ctx context.Context, st statecodes.State) ([]models.Official, error) {
	params := url.Values{}
	params.Set("currentMember", "true")
	params.Set("limit", strconv.Itoa(c.pageSize))
	params.Set("api_key", c.apiKey)
	reqURL := fmt.Sprintf("%s/member?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build congress.gov request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("congress.gov request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("congress.gov returned status %d", resp.StatusCode)
	}

	var list congressMemberList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode congress.gov member list: %w", err)
	}

	now := time.Now().UTC()
	var officials []models.Official
	for _, m := range list.Members {
		if m.State != st.Name && m.State != st.Abbr {
			continue
		}
		official := models.Official{
			Name:        m.Name,
			Office:      officeForMember(m),
			Party:       m.PartyName,
			State:       st.Name,
			StateAbbr:   st.Abbr,
			BioguideID:  m.BioguideID,
			Source:      models.SourceCongress,
			LastUpdated: now,
		}
		if m.District != nil {
			official.District = strconv.Itoa(*m.District)
		}
		officials = append(officials, official)
	}

	c.log.Infof("Source: congress.gov returned %d members for %s", len(officials), st.Abbr)
	return officials, nil
}

// officeForMember derives the office label from the chamber of the member's
// most recent term. Unknown chambers fall back to Representative, matching
// the district-holding default.
func officeForMember(m congressMember) string {
	items := m.Terms.Item
	if len(items) == 0 {
		return models.OfficeRepresentative
	}
	latest := items[len(items)-1]
	if strings.Contains(latest.Chamber, "Senate") {
		return models.OfficeSenator
	}
	return models.OfficeRepresentative
}
