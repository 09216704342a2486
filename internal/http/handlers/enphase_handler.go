package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Luiz-campos3/Onway-Monitor/internal/clients"
)

// NewEnphaseSumHandler handles POST /internal/enphase/sum, a diagnostic
// endpoint over the provider integration. It is only routed when the
// integration is configured and enabled.
func NewEnphaseSumHandler(enphase *clients.EnphaseClient) http.HandlerFunc {
	type request struct {
		SystemID  string   `json:"system_id"`
		DeviceIDs []string `json:"device_ids"`
		StartDate string   `json:"start_date"`
		EndDate   string   `json:"end_date"`
	}
	type response struct {
		TotalKWh float64 `json:"total_kwh"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.SystemID == "" || len(req.DeviceIDs) == 0 {
			writeError(w, http.StatusBadRequest, "system_id and device_ids are required")
			return
		}

		pair, err := enphase.ObtainToken(r.Context())
		if err != nil {
			writeError(w, http.StatusBadGateway, "token request failed")
			return
		}

		total := enphase.SumGeneration(r.Context(), req.SystemID, req.DeviceIDs, req.StartDate, req.EndDate, pair.AccessToken)
		writeJSON(w, http.StatusOK, response{TotalKWh: total})
	}
}
