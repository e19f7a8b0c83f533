package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/madjo-travel/voyage-reservation/internal/model"
)

// ClientRepo provides CRUD operations for clients. Deleting a client
// also removes its reservations and their payments: the client is the
// sole owner of that subtree, and the walk happens inside one
// transaction so a failed step leaves everything in place.
type ClientRepo struct {
	DB *sql.DB
}

func NewClientRepo(db *sql.DB) *ClientRepo { return &ClientRepo{DB: db} }

const clientColumns = `id_client, nom_client, prenom_client, date_naiss, mail_client, tel_client, sexe_client, login, password_hash`

func scanClient(row interface{ Scan(...any) error }) (model.Client, error) {
	var c model.Client
	var naiss time.Time
	err := row.Scan(&c.ID, &c.Nom, &c.Prenom, &naiss, &c.Mail, &c.Tel, &c.Sexe, &c.Login, &c.PasswordHash)
	if err != nil {
		return model.Client{}, err
	}
	c.DateNaiss = model.NewDate(naiss)
	return c, nil
}

// Create inserts the client and populates its generated ID.
func (r *ClientRepo) Create(ctx context.Context, c *model.Client) error {
	const q = `INSERT INTO client (nom_client, prenom_client, date_naiss, mail_client, tel_client, sexe_client, login, password_hash)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.DB.ExecContext(ctx, q, c.Nom, c.Prenom, c.DateNaiss.Time, c.Mail, c.Tel, c.Sexe, c.Login, c.PasswordHash)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// GetByID returns the client or ErrClientNotFound.
func (r *ClientRepo) GetByID(ctx context.Context, id uint64) (model.Client, error) {
	const q = `SELECT ` + clientColumns + ` FROM client WHERE id_client = ?`
	c, err := scanClient(r.DB.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return model.Client{}, ErrClientNotFound
	}
	return c, err
}

// GetByLogin returns the client with the given login name, used by the
// sign-in flow. The password check happens in the handler via bcrypt.
func (r *ClientRepo) GetByLogin(ctx context.Context, login string) (model.Client, error) {
	const q = `SELECT ` + clientColumns + ` FROM client WHERE login = ? LIMIT 1`
	c, err := scanClient(r.DB.QueryRowContext(ctx, q, strings.TrimSpace(login)))
	if err == sql.ErrNoRows {
		return model.Client{}, ErrClientNotFound
	}
	return c, err
}

// ListAll returns every client, newest first.
func (r *ClientRepo) ListAll(ctx context.Context) ([]model.Client, error) {
	const q = `SELECT ` + clientColumns + ` FROM client ORDER BY id_client DESC`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	clients := make([]model.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// ClientFilter narrows Search results. Empty fields are ignored; Nom and
// Mail match as substrings, Sexe and Tel match exactly.
type ClientFilter struct {
	Nom  string
	Mail string
	Sexe string
	Tel  string
}

// Search returns clients matching the filter, newest first.
func (r *ClientRepo) Search(ctx context.Context, f ClientFilter) ([]model.Client, error) {
	q := `SELECT ` + clientColumns + ` FROM client WHERE 1=1`
	args := make([]any, 0, 4)
	if f.Nom != "" {
		q += ` AND nom_client LIKE ?`
		args = append(args, "%"+f.Nom+"%")
	}
	if f.Mail != "" {
		q += ` AND mail_client LIKE ?`
		args = append(args, "%"+f.Mail+"%")
	}
	if f.Sexe != "" {
		q += ` AND sexe_client = ?`
		args = append(args, f.Sexe)
	}
	if f.Tel != "" {
		q += ` AND tel_client = ?`
		args = append(args, f.Tel)
	}
	q += ` ORDER BY id_client DESC`
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	clients := make([]model.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// Update replaces every mutable column. Login and password hash are part
// of the write so callers must carry the stored values through.
func (r *ClientRepo) Update(ctx context.Context, c *model.Client) error {
	const q = `UPDATE client SET nom_client = ?, prenom_client = ?, date_naiss = ?, mail_client = ?, tel_client = ?, sexe_client = ?, login = ?, password_hash = ?
	           WHERE id_client = ?`
	res, err := r.DB.ExecContext(ctx, q, c.Nom, c.Prenom, c.DateNaiss.Time, c.Mail, c.Tel, c.Sexe, c.Login, c.PasswordHash, c.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// RowsAffected is also 0 for a no-op write, so confirm absence.
		if _, err := r.GetByID(ctx, c.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the client and cascades to its reservations and their
// payments. It returns false when no such client exists.
func (r *ClientRepo) Delete(ctx context.Context, id uint64) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	const delPayments = `DELETE p FROM paiement p
	                     JOIN reservation r ON r.id_reservation = p.reservation_id
	                     WHERE r.client_id = ?`
	if _, err := tx.ExecContext(ctx, delPayments, id); err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM reservation WHERE client_id = ?`, id); err != nil {
		return false, err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM client WHERE id_client = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return n > 0, nil
}
