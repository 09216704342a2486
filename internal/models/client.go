package models

// ClientRecord represents a row of the clientes_monitora table.
// Password holds either a bcrypt hash or a legacy plaintext value; it is
// write-only and never serialized back to API consumers.
type ClientRecord struct {
	ID            int64  `db:"id" json:"id"`
	Name          string `db:"nome" json:"name"`
	Email         string `db:"email" json:"email"`
	Phone         string `db:"telefone" json:"phone"`
	SystemID      string `db:"id_sistema" json:"system_id"`
	AccessPoint   string `db:"ap" json:"access_point"`
	InverterCount int    `db:"n_inversor" json:"inverter_count"`
	Password      string `db:"senha" json:"-"`
	Status        string `db:"status" json:"status"`
}

// DefaultClientStatus is applied when a record carries no status.
const DefaultClientStatus = "Ativo"

// SessionUser is the authenticated end-user profile held in session state
// while the session is user-logged. It carries no credential material.
type SessionUser struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	SystemID      string `json:"system_id"`
	AccessPoint   string `json:"access_point"`
	InverterCount int    `json:"inverter_count"`
}

// SessionUserFromRecord copies the public profile fields of a matched record.
func SessionUserFromRecord(rec *ClientRecord) SessionUser {
	return SessionUser{
		ID:            rec.ID,
		Name:          rec.Name,
		Email:         rec.Email,
		Phone:         rec.Phone,
		SystemID:      rec.SystemID,
		AccessPoint:   rec.AccessPoint,
		InverterCount: rec.InverterCount,
	}
}
