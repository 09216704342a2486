package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luiz-campos3/Onway-Monitor/internal/models"
)

func TestWorkflowClientSendClientAction(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC)

	t.Run("payload travels url-encoded in the data parameter", func(t *testing.T) {
		var (
			gotMethod string
			gotData   string
		)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotData = r.URL.Query().Get("data")
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := NewWorkflowClient(server.URL, server.Client())
		form := models.ClientForm{Name: "Ana", Email: "ana@x.com", SystemID: "42"}
		require.NoError(t, client.SendClientAction(ctx, ActionCreate, form, ts))

		assert.Equal(t, http.MethodGet, gotMethod)

		var payload struct {
			Action string            `json:"action"`
			Client models.ClientForm `json:"client"`
			Time   string            `json:"timestamp"`
		}
		require.NoError(t, json.Unmarshal([]byte(gotData), &payload))
		assert.Equal(t, "create", payload.Action)
		assert.Equal(t, "Ana", payload.Client.Name)
		assert.Equal(t, "ana@x.com", payload.Client.Email)
		assert.Equal(t, "42", payload.Client.SystemID)
		assert.Equal(t, "2024-03-15T12:30:00Z", payload.Time)
	})

	t.Run("update action tag", func(t *testing.T) {
		var gotData string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotData = r.URL.Query().Get("data")
		}))
		defer server.Close()

		client := NewWorkflowClient(server.URL, server.Client())
		require.NoError(t, client.SendClientAction(ctx, ActionUpdate, models.ClientForm{Email: "a@b.com"}, ts))

		var payload map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(gotData), &payload))
		assert.Equal(t, "update", payload["action"])
	})

	t.Run("empty password is carried, never stored data", func(t *testing.T) {
		var gotData string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotData = r.URL.Query().Get("data")
		}))
		defer server.Close()

		client := NewWorkflowClient(server.URL, server.Client())
		require.NoError(t, client.SendClientAction(ctx, ActionUpdate, models.ClientForm{Email: "a@b.com"}, ts))

		var payload struct {
			Client map[string]string `json:"client"`
		}
		require.NoError(t, json.Unmarshal([]byte(gotData), &payload))
		assert.Equal(t, "", payload.Client["senha"])
	})

	t.Run("non-2xx status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewWorkflowClient(server.URL, server.Client())
		err := client.SendClientAction(ctx, ActionCreate, models.ClientForm{Email: "a@b.com"}, ts)
		assert.Error(t, err)
	})

	t.Run("network error is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := NewWorkflowClient(server.URL, nil)
		err := client.SendClientAction(ctx, ActionCreate, models.ClientForm{Email: "a@b.com"}, ts)
		assert.Error(t, err)
	})
}
