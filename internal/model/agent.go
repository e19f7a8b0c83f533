package model

// Agent represents a staff member who records payments. Agents sign in
// with their email address; the password hash never leaves the server.
// The birth date serializes as dd/MM/yyyy on this entity only.
type Agent struct {
	ID           uint64    `json:"idAgent"`
	Nom          string    `json:"nomAgent"`
	Prenom       string    `json:"prenomAgent"`
	Sexe         string    `json:"sexeAgent"`
	DateNaiss    BirthDate `json:"dateNaiss"`
	Tel          string    `json:"telAgent"`
	Mail         string    `json:"mailAgent"`
	PasswordHash string    `json:"-"`
}
