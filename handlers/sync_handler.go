package handlers

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/opencivicmap/civicsync/models"
)

// SyncRunner is what the trigger needs from the sync engine.
type SyncRunner interface {
	Run(ctx context.Context) (*models.RunReport, error)
}

// SyncHandler exposes the one trigger operation: POST /api/admin/sync,
// authenticated by a pre-shared bearer secret. Authentication is checked
// before any work happens; a rejected trigger performs no upstream calls and
// writes no audit rows.
type SyncHandler struct {
	svc    SyncRunner
	secret string
	log    *zap.SugaredLogger
}

func NewSyncHandler(svc SyncRunner, secret string, log *zap.SugaredLogger) *SyncHandler {
	return &SyncHandler{svc: svc, secret: secret, log: log}
}

// TriggerSync handles POST /api/admin/sync.
func (h *SyncHandler) TriggerSync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, h.log, http.StatusMethodNotAllowed, "only POST method is allowed")
		return
	}

	// An unset secret is a deployment mistake, not an auth failure; refuse
	// to run rather than run open.
	if h.secret == "" {
		respondWithError(w, h.log, http.StatusInternalServerError, "sync secret is not configured")
		return
	}

	auth := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if subtle.ConstantTimeCompare([]byte(auth), []byte(h.secret)) != 1 {
		respondWithError(w, h.log, http.StatusUnauthorized, "unauthorized")
		return
	}

	report, err := h.svc.Run(r.Context())
	if err != nil {
		respondWithError(w, h.log, http.StatusInternalServerError, "sync run failed: "+err.Error())
		return
	}

	respondWithJSON(w, h.log, http.StatusOK, report)
}
