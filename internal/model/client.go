package model

// Client represents a row of the `client` table. The JSON names mirror
// the public API contract. The password hash never leaves the server.
//
// Fields:
//  ID           – primary key identifier.
//  Nom          – family name.
//  Prenom       – given name.
//  DateNaiss    – birth date (yyyy-MM-dd on the wire).
//  Mail         – email address.
//  Tel          – phone number.
//  Sexe         – declared gender label.
//  Login        – unique login name, immutable after creation.
//  PasswordHash – bcrypt hash of the password.
type Client struct {
	ID           uint64 `json:"idClient"`
	Nom          string `json:"nomClient"`
	Prenom       string `json:"prenomClient"`
	DateNaiss    Date   `json:"dateNaiss"`
	Mail         string `json:"mailClient"`
	Tel          string `json:"telClient"`
	Sexe         string `json:"sexeClient"`
	Login        string `json:"login"`
	PasswordHash string `json:"-"`
}
