package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Luiz-campos3/Onway-Monitor/internal/clients"
	"github.com/Luiz-campos3/Onway-Monitor/internal/models"
)

// ErrSaveInFlight rejects a save while an identical one is still running.
var ErrSaveInFlight = errors.New("admin: save already in flight")

// ClientLister is the storage contract for the administrative list view.
type ClientLister interface {
	List(ctx context.Context) ([]models.ClientRecord, error)
}

// WorkflowSender delivers client actions to the automation webhook.
type WorkflowSender interface {
	SendClientAction(ctx context.Context, action string, form models.ClientForm, ts time.Time) error
}

// AdminService backs the administrative screen: the unfiltered client list
// and the webhook-mediated create/update flow.
type AdminService struct {
	clients  ClientLister
	workflow WorkflowSender
	now      func() time.Time
	logger   *zap.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewAdminService builds an AdminService.
func NewAdminService(clientLister ClientLister, workflow WorkflowSender, logger *zap.Logger) *AdminService {
	return &AdminService{
		clients:  clientLister,
		workflow: workflow,
		now:      time.Now,
		logger:   logger,
		inFlight: make(map[string]struct{}),
	}
}

// ListClients returns every client record. Backend failures degrade to an
// empty list; the administrative screen never sees an error here.
func (s *AdminService) ListClients(ctx context.Context) []models.ClientRecord {
	records, err := s.clients.List(ctx)
	if err != nil {
		s.logger.Error("client list failed", zap.Error(err))
		return []models.ClientRecord{}
	}
	if records == nil {
		records = []models.ClientRecord{}
	}
	return records
}

// SaveClient packages the form with an action tag and a timestamp and sends
// it to the workflow endpoint. update is chosen when an existing record was
// being edited, create otherwise. A second save for the same client email
// while one is running is rejected with ErrSaveInFlight.
func (s *AdminService) SaveClient(ctx context.Context, form models.ClientForm, editing bool) (string, error) {
	action := clients.ActionCreate
	if editing {
		action = clients.ActionUpdate
	}

	key := strings.ToLower(strings.TrimSpace(form.Email))
	if err := s.acquire(key); err != nil {
		return action, err
	}
	defer s.release(key)

	if err := s.workflow.SendClientAction(ctx, action, form, s.now()); err != nil {
		s.logger.Error("workflow save failed", zap.String("action", action), zap.Error(err))
		return action, err
	}

	s.logger.Info("workflow save dispatched", zap.String("action", action))
	return action, nil
}

func (s *AdminService) acquire(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[key]; busy {
		return ErrSaveInFlight
	}
	s.inFlight[key] = struct{}{}
	return nil
}

func (s *AdminService) release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, key)
}
