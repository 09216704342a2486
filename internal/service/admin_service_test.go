package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Luiz-campos3/Onway-Monitor/internal/models"
)

type fakeLister struct {
	records []models.ClientRecord
	err     error
}

func (f *fakeLister) List(context.Context) ([]models.ClientRecord, error) {
	return f.records, f.err
}

type fakeWorkflow struct {
	mu      sync.Mutex
	actions []string
	forms   []models.ClientForm
	block   chan struct{}
	err     error
}

func (f *fakeWorkflow) SendClientAction(_ context.Context, action string, form models.ClientForm, _ time.Time) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, action)
	f.forms = append(f.forms, form)
	return f.err
}

func TestAdminListClients(t *testing.T) {
	ctx := context.Background()

	t.Run("returns records", func(t *testing.T) {
		lister := &fakeLister{records: []models.ClientRecord{{ID: 1, Name: "Ana", Status: "Ativo"}}}
		svc := NewAdminService(lister, &fakeWorkflow{}, zap.NewNop())

		got := svc.ListClients(ctx)
		require.Len(t, got, 1)
		assert.Equal(t, "Ana", got[0].Name)
	})

	t.Run("failure degrades to empty list", func(t *testing.T) {
		svc := NewAdminService(&fakeLister{err: assert.AnError}, &fakeWorkflow{}, zap.NewNop())
		got := svc.ListClients(ctx)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestAdminSaveClient(t *testing.T) {
	ctx := context.Background()
	form := models.ClientForm{Name: "Ana", Email: "ana@x.com", SystemID: "42"}

	t.Run("create action for new records", func(t *testing.T) {
		workflow := &fakeWorkflow{}
		svc := NewAdminService(&fakeLister{}, workflow, zap.NewNop())

		action, err := svc.SaveClient(ctx, form, false)
		require.NoError(t, err)
		assert.Equal(t, "create", action)
		require.Len(t, workflow.forms, 1)
		assert.Equal(t, "Ana", workflow.forms[0].Name)
	})

	t.Run("update action while editing", func(t *testing.T) {
		workflow := &fakeWorkflow{}
		svc := NewAdminService(&fakeLister{}, workflow, zap.NewNop())

		action, err := svc.SaveClient(ctx, form, true)
		require.NoError(t, err)
		assert.Equal(t, "update", action)
	})

	t.Run("webhook failure is surfaced", func(t *testing.T) {
		svc := NewAdminService(&fakeLister{}, &fakeWorkflow{err: assert.AnError}, zap.NewNop())
		_, err := svc.SaveClient(ctx, form, false)
		assert.Error(t, err)
	})

	t.Run("concurrent double submission is rejected", func(t *testing.T) {
		workflow := &fakeWorkflow{block: make(chan struct{})}
		svc := NewAdminService(&fakeLister{}, workflow, zap.NewNop())

		done := make(chan error, 1)
		go func() {
			_, err := svc.SaveClient(ctx, form, false)
			done <- err
		}()

		// Wait for the first save to hold the in-flight marker.
		require.Eventually(t, func() bool {
			svc.mu.Lock()
			defer svc.mu.Unlock()
			_, busy := svc.inFlight["ana@x.com"]
			return busy
		}, time.Second, 5*time.Millisecond)

		_, err := svc.SaveClient(ctx, form, false)
		assert.ErrorIs(t, err, ErrSaveInFlight)

		close(workflow.block)
		require.NoError(t, <-done)

		// The marker is released after completion.
		_, err = svc.SaveClient(ctx, form, true)
		assert.NoError(t, err)
	})
}
