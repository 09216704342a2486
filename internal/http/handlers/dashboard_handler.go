package handlers

import (
	"net/http"

	"github.com/Luiz-campos3/Onway-Monitor/internal/http/middleware"
	"github.com/Luiz-campos3/Onway-Monitor/internal/service"
)

// NewDashboardHandler handles GET /dashboard/summary for the logged-in user.
// Both reads recompute from the backend on every call; nothing is cached.
func NewDashboardHandler(dashboard *service.DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, ok := middleware.FromContext(r.Context())
		if !ok || sc.State.User == nil {
			writeError(w, http.StatusUnauthorized, "missing session user")
			return
		}

		summary := dashboard.LoadSummary(r.Context(), sc.State.User.ID)
		writeJSON(w, http.StatusOK, summary)
	}
}
