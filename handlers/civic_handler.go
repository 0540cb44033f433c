package handlers

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/opencivicmap/civicsync/models"
	"github.com/opencivicmap/civicsync/statecodes"
)

// CivicReader is the read-side slice of the store the front-end endpoints
// serve from.
type CivicReader interface {
	GetOfficialsByState(ctx context.Context, stateAbbr string) ([]models.Official, error)
	GetCountiesByState(ctx context.Context, stateName string) ([]models.County, error)
}

// CivicHandler serves the thin read endpoints the front-end consumes. The
// sync engine owns the writes; these routes only prove the canonical store
// is servable.
type CivicHandler struct {
	store CivicReader
	log   *zap.SugaredLogger
}

func NewCivicHandler(store CivicReader, log *zap.SugaredLogger) *CivicHandler {
	return &CivicHandler{store: store, log: log}
}

// GetOfficials handles GET /api/officials?state=XX.
func (h *CivicHandler) GetOfficials(w http.ResponseWriter, r *http.Request) {
	st, ok := h.stateFromQuery(w, r)
	if !ok {
		return
	}

	officials, err := h.store.GetOfficialsByState(r.Context(), st.Abbr)
	if err != nil {
		respondWithError(w, h.log, http.StatusInternalServerError, "failed to load officials")
		return
	}
	if officials == nil {
		officials = []models.Official{}
	}
	respondWithJSON(w, h.log, http.StatusOK, officials)
}

// GetCounties handles GET /api/counties?state=XX.
func (h *CivicHandler) GetCounties(w http.ResponseWriter, r *http.Request) {
	st, ok := h.stateFromQuery(w, r)
	if !ok {
		return
	}

	counties, err := h.store.GetCountiesByState(r.Context(), st.Name)
	if err != nil {
		respondWithError(w, h.log, http.StatusInternalServerError, "failed to load counties")
		return
	}
	if counties == nil {
		counties = []models.County{}
	}
	respondWithJSON(w, h.log, http.StatusOK, counties)
}

func (h *CivicHandler) stateFromQuery(w http.ResponseWriter, r *http.Request) (statecodes.State, bool) {
	if r.Method != http.MethodGet {
		respondWithError(w, h.log, http.StatusMethodNotAllowed, "only GET method is allowed")
		return statecodes.State{}, false
	}
	abbr := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("state")))
	if abbr == "" {
		respondWithError(w, h.log, http.StatusBadRequest, "missing required query parameter: state")
		return statecodes.State{}, false
	}
	st, ok := statecodes.ByAbbr(abbr)
	if !ok {
		respondWithError(w, h.log, http.StatusBadRequest, "unknown state code: "+abbr)
		return statecodes.State{}, false
	}
	return st, true
}
