package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/Luiz-campos3/Onway-Monitor/internal/models"
	"github.com/Luiz-campos3/Onway-Monitor/internal/password"
	"github.com/Luiz-campos3/Onway-Monitor/internal/repository"
)

var (
	// ErrInvalidCredentials covers both missing-record and wrong-password
	// failures so the cause is never surfaced to the caller.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrBackendUnavailable signals the connection-failed bucket: the
	// service was started without backend configuration.
	ErrBackendUnavailable = errors.New("auth: backend unavailable")
	// ErrAdminDisabled is returned while no admin credentials are
	// configured; the administrative area stays closed rather than open.
	ErrAdminDisabled = errors.New("auth: admin access not configured")
)

// ClientGetter is the storage contract used for credential checks.
type ClientGetter interface {
	GetByEmail(ctx context.Context, email string) (*models.ClientRecord, error)
}

// AuthService performs the end-user credential check and the administrative
// login gate.
type AuthService struct {
	clients       ClientGetter
	verifier      password.Verifier
	adminEmail    string
	adminPassHash string
	logger        *zap.Logger
}

// NewAuthService builds an AuthService. adminEmail/adminPasswordHash may be
// empty, which disables administrative login entirely.
func NewAuthService(clients ClientGetter, verifier password.Verifier, adminEmail, adminPasswordHash string, logger *zap.Logger) *AuthService {
	return &AuthService{
		clients:       clients,
		verifier:      verifier,
		adminEmail:    strings.ToLower(strings.TrimSpace(adminEmail)),
		adminPassHash: adminPasswordHash,
		logger:        logger,
	}
}

// Login looks up at most one client record by exact email match and verifies
// the submitted password against the stored credential. The two failure
// buckets are ErrBackendUnavailable (no backend configured) and
// ErrInvalidCredentials (everything else the user may have caused).
func (s *AuthService) Login(ctx context.Context, email, pass string) (*models.SessionUser, error) {
	email = strings.TrimSpace(email)
	if email == "" || pass == "" {
		return nil, ErrInvalidCredentials
	}

	rec, err := s.clients.GetByEmail(ctx, email)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBackendUnavailable):
			return nil, ErrBackendUnavailable
		case errors.Is(err, repository.ErrClientNotFound):
			return nil, ErrInvalidCredentials
		default:
			s.logger.Error("client lookup failed", zap.Error(err))
			return nil, ErrInvalidCredentials
		}
	}

	if err := s.verifier.Verify(rec.Password, pass); err != nil {
		return nil, ErrInvalidCredentials
	}

	user := models.SessionUserFromRecord(rec)
	s.logger.Info("user logged in", zap.Int64("client_id", user.ID))
	return &user, nil
}

// AdminLogin verifies the configured administrator credentials. The bcrypt
// hash requirement is deliberate: the administrative area never accepts an
// unverified confirmation.
func (s *AuthService) AdminLogin(_ context.Context, email, pass string) error {
	if s.adminEmail == "" || s.adminPassHash == "" {
		s.logger.Warn("admin login attempted while admin credentials are not configured")
		return ErrAdminDisabled
	}

	if strings.ToLower(strings.TrimSpace(email)) != s.adminEmail {
		return ErrInvalidCredentials
	}
	if err := s.verifier.Verify(s.adminPassHash, pass); err != nil {
		return ErrInvalidCredentials
	}

	s.logger.Info("admin logged in")
	return nil
}
