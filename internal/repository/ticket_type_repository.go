package repository

import (
	"context"
	"database/sql"

	"github.com/madjo-travel/voyage-reservation/internal/model"
)

// TicketTypeRepo provides CRUD operations for fare classes. Like voyages
// and clients, a ticket type cascade-owns the reservations made with it.
type TicketTypeRepo struct {
	DB *sql.DB
}

func NewTicketTypeRepo(db *sql.DB) *TicketTypeRepo { return &TicketTypeRepo{DB: db} }

// Create inserts the ticket type and populates its generated ID.
func (r *TicketTypeRepo) Create(ctx context.Context, t *model.TicketType) error {
	const q = `INSERT INTO type_billet (libelle_type_billet, prix_type_billet) VALUES (?, ?)`
	res, err := r.DB.ExecContext(ctx, q, t.Libelle, t.Prix)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// GetByID returns the ticket type or ErrTicketTypeNotFound.
func (r *TicketTypeRepo) GetByID(ctx context.Context, id uint64) (model.TicketType, error) {
	const q = `SELECT id_type_billet, libelle_type_billet, prix_type_billet FROM type_billet WHERE id_type_billet = ?`
	var t model.TicketType
	err := r.DB.QueryRowContext(ctx, q, id).Scan(&t.ID, &t.Libelle, &t.Prix)
	if err == sql.ErrNoRows {
		return model.TicketType{}, ErrTicketTypeNotFound
	}
	return t, err
}

// ListAll returns every ticket type in table order.
func (r *TicketTypeRepo) ListAll(ctx context.Context) ([]model.TicketType, error) {
	const q = `SELECT id_type_billet, libelle_type_billet, prix_type_billet FROM type_billet`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	types := make([]model.TicketType, 0)
	for rows.Next() {
		var t model.TicketType
		if err := rows.Scan(&t.ID, &t.Libelle, &t.Prix); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// Update replaces the label and price.
func (r *TicketTypeRepo) Update(ctx context.Context, t *model.TicketType) error {
	const q = `UPDATE type_billet SET libelle_type_billet = ?, prix_type_billet = ? WHERE id_type_billet = ?`
	_, err := r.DB.ExecContext(ctx, q, t.Libelle, t.Prix, t.ID)
	return err
}

// Delete removes the ticket type, its reservations and their payments.
// Returns false when no such ticket type exists.
func (r *TicketTypeRepo) Delete(ctx context.Context, id uint64) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	const delPayments = `DELETE p FROM paiement p
	                     JOIN reservation r ON r.id_reservation = p.reservation_id
	                     WHERE r.type_billet_id = ?`
	if _, err := tx.ExecContext(ctx, delPayments, id); err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM reservation WHERE type_billet_id = ?`, id); err != nil {
		return false, err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM type_billet WHERE id_type_billet = ?`, id)
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
