package repository

import "errors"

var (
	// ErrBackendUnavailable is returned by every repository method when the
	// service was started without a backend DSN.
	ErrBackendUnavailable = errors.New("repository: backend unavailable")
	// ErrClientNotFound represents missing clientes_monitora rows.
	ErrClientNotFound = errors.New("repository: client not found")
	// ErrNoRows represents an absent aggregate row in a telemetry view.
	ErrNoRows = errors.New("repository: no rows")
)
