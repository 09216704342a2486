package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Luiz-campos3/Onway-Monitor/internal/models"
)

// ClientRepository reads the clientes_monitora table. Administrative writes
// go through the workflow webhook, so this repository is read-only.
type ClientRepository struct {
	db *sql.DB
}

// NewClientRepository returns a repository over the given handle. A nil
// handle is legal and makes every method return ErrBackendUnavailable.
func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// GetByEmail fetches at most one client record by exact email match.
func (r *ClientRepository) GetByEmail(ctx context.Context, email string) (*models.ClientRecord, error) {
	if r.db == nil {
		return nil, ErrBackendUnavailable
	}

	const query = `
		SELECT id, nome, email, COALESCE(telefone, ''), COALESCE(id_sistema, ''),
		       COALESCE(ap, ''), COALESCE(n_inversor, 0), COALESCE(senha, ''), COALESCE(status, '')
		FROM clientes_monitora
		WHERE email = $1
		LIMIT 1
	`
	row := r.db.QueryRowContext(ctx, query, strings.TrimSpace(email))

	var rec models.ClientRecord
	if err := row.Scan(
		&rec.ID,
		&rec.Name,
		&rec.Email,
		&rec.Phone,
		&rec.SystemID,
		&rec.AccessPoint,
		&rec.InverterCount,
		&rec.Password,
		&rec.Status,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	if rec.Status == "" {
		rec.Status = models.DefaultClientStatus
	}
	return &rec, nil
}

// List returns every client record without filtering or pagination.
func (r *ClientRepository) List(ctx context.Context) ([]models.ClientRecord, error) {
	if r.db == nil {
		return nil, ErrBackendUnavailable
	}

	const query = `
		SELECT id, nome, email, COALESCE(telefone, ''), COALESCE(id_sistema, ''),
		       COALESCE(ap, ''), COALESCE(n_inversor, 0), COALESCE(status, '')
		FROM clientes_monitora
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.ClientRecord
	for rows.Next() {
		var rec models.ClientRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.Name,
			&rec.Email,
			&rec.Phone,
			&rec.SystemID,
			&rec.AccessPoint,
			&rec.InverterCount,
			&rec.Status,
		); err != nil {
			return nil, err
		}
		if rec.Status == "" {
			rec.Status = models.DefaultClientStatus
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
