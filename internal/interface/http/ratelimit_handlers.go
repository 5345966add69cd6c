package http

import (
	"net/http"
	"time"
)

type checkRateLimitRequest struct {
	Identifier    string `json:"identifier"`
	Endpoint      string `json:"endpoint" validate:"required"`
	MaxRequests   int64  `json:"max_requests" validate:"gte=0"`
	WindowMinutes int64  `json:"window_minutes" validate:"gte=0"`
}

func (a *API) handleCheckRateLimit(w http.ResponseWriter, r *http.Request) {
	var req checkRateLimitRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	identifier := req.Identifier
	if identifier == "" {
		identifier = a.callerIdentity(r)
	}

	decision, err := a.limiter.CheckWithLimit(
		r.Context(),
		identifier,
		req.Endpoint,
		req.MaxRequests,
		time.Duration(req.WindowMinutes)*time.Minute,
	)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	if !decision.Allowed {
		writeRateLimited(w, decision.RetryAfter)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"allowed":   true,
		"remaining": decision.Remaining,
	})
}
