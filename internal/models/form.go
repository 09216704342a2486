package models

// ClientForm carries the administrative create/edit form fields. The JSON
// field names are the webhook contract and must stay as-is. Password is
// never seeded from stored data; an untouched edit form submits it empty.
type ClientForm struct {
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Phone    string `json:"telefone"`
	Password string `json:"senha"`
	SystemID string `json:"id_sistema"`
	AP       string `json:"ap"`
}
