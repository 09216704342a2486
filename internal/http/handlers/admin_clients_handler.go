package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Luiz-campos3/Onway-Monitor/internal/models"
	"github.com/Luiz-campos3/Onway-Monitor/internal/service"
)

// NewAdminClientsHandler serves /admin/clients: GET returns the unfiltered
// client list, POST forwards a new-client form to the workflow webhook with
// the create action.
func NewAdminClientsHandler(admin *service.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			listClients(w, r, admin)
		case http.MethodPost:
			form, ok := decodeClientForm(w, r)
			if !ok {
				return
			}
			action, err := admin.SaveClient(r.Context(), form, false)
			writeSaveResult(w, action, err)
		default:
			w.Header().Set("Allow", "GET, POST")
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}
}

// NewAdminClientUpdateHandler serves PUT /admin/clients/{id}: the form of an
// existing record is forwarded to the workflow webhook with the update action.
// The id only selects the action; it is not part of the webhook payload.
func NewAdminClientUpdateHandler(admin *service.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := strconv.ParseInt(r.PathValue("id"), 10, 64); err != nil {
			writeError(w, http.StatusBadRequest, "invalid client id")
			return
		}
		form, ok := decodeClientForm(w, r)
		if !ok {
			return
		}
		action, err := admin.SaveClient(r.Context(), form, true)
		writeSaveResult(w, action, err)
	}
}

func listClients(w http.ResponseWriter, r *http.Request, admin *service.AdminService) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"clients": admin.ListClients(r.Context()),
	})
}

func decodeClientForm(w http.ResponseWriter, r *http.Request) (models.ClientForm, bool) {
	type request struct {
		Name     string `json:"nome"`
		Email    string `json:"email"`
		Phone    string `json:"telefone"`
		Password string `json:"senha"`
		SystemID string `json:"id_sistema"`
		AP       string `json:"ap"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return models.ClientForm{}, false
	}
	if strings.TrimSpace(req.Email) == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return models.ClientForm{}, false
	}

	return models.ClientForm{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		SystemID: req.SystemID,
		AP:       req.AP,
	}, true
}

func writeSaveResult(w http.ResponseWriter, action string, err error) {
	type response struct {
		Status string `json:"status"`
		Action string `json:"action"`
	}

	if err != nil {
		if errors.Is(err, service.ErrSaveInFlight) {
			writeError(w, http.StatusConflict, "save already in progress")
			return
		}
		writeError(w, http.StatusBadGateway, "failed to save client")
		return
	}

	// Generic acknowledgment: the webhook response body is never interpreted.
	writeJSON(w, http.StatusAccepted, response{Status: "sent", Action: action})
}
