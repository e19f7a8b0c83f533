package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/madjo-travel/voyage-reservation/internal/model"
)

// VoyageRepo provides CRUD operations for voyages. A voyage owns its
// reservations, which in turn own their payments; Delete walks that
// subtree inside one transaction.
type VoyageRepo struct {
	DB *sql.DB
}

func NewVoyageRepo(db *sql.DB) *VoyageRepo { return &VoyageRepo{DB: db} }

const voyageColumns = `id_voyage, depart_voyage, arrive_voyage, heure_depart, heure_arrivee, date_voyage, prix`

func scanVoyage(row interface{ Scan(...any) error }) (model.Voyage, error) {
	var v model.Voyage
	var date time.Time
	var hd, ha sql.NullString
	err := row.Scan(&v.ID, &v.Depart, &v.Arrivee, &hd, &ha, &date, &v.Prix)
	if err != nil {
		return model.Voyage{}, err
	}
	v.HeureDepart = hd.String
	v.HeureArrivee = ha.String
	v.DateVoyage = model.NewDate(date)
	return v, nil
}

// Create inserts the voyage and populates its generated ID.
func (r *VoyageRepo) Create(ctx context.Context, v *model.Voyage) error {
	const q = `INSERT INTO voyage (depart_voyage, arrive_voyage, heure_depart, heure_arrivee, date_voyage, prix)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.DB.ExecContext(ctx, q, v.Depart, v.Arrivee, v.HeureDepart, v.HeureArrivee, v.DateVoyage.Time, v.Prix)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	return nil
}

// GetByID returns the voyage or ErrVoyageNotFound.
func (r *VoyageRepo) GetByID(ctx context.Context, id uint64) (model.Voyage, error) {
	const q = `SELECT ` + voyageColumns + ` FROM voyage WHERE id_voyage = ?`
	v, err := scanVoyage(r.DB.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return model.Voyage{}, ErrVoyageNotFound
	}
	return v, err
}

// ListAll returns every voyage, most recent travel date first.
func (r *VoyageRepo) ListAll(ctx context.Context) ([]model.Voyage, error) {
	const q = `SELECT ` + voyageColumns + ` FROM voyage ORDER BY date_voyage DESC`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	voyages := make([]model.Voyage, 0)
	for rows.Next() {
		v, err := scanVoyage(rows)
		if err != nil {
			return nil, err
		}
		voyages = append(voyages, v)
	}
	return voyages, rows.Err()
}

// Update replaces the route fields: departure, arrival, hours and date.
// The price column is deliberately left out of the write.
func (r *VoyageRepo) Update(ctx context.Context, v *model.Voyage) error {
	const q = `UPDATE voyage SET depart_voyage = ?, arrive_voyage = ?, heure_depart = ?, heure_arrivee = ?, date_voyage = ?
	           WHERE id_voyage = ?`
	_, err := r.DB.ExecContext(ctx, q, v.Depart, v.Arrivee, v.HeureDepart, v.HeureArrivee, v.DateVoyage.Time, v.ID)
	return err
}

// Delete removes the voyage, its reservations and their payments.
// Returns false when no such voyage exists.
func (r *VoyageRepo) Delete(ctx context.Context, id uint64) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	const delPayments = `DELETE p FROM paiement p
	                     JOIN reservation r ON r.id_reservation = p.reservation_id
	                     WHERE r.voyage_id = ?`
	if _, err := tx.ExecContext(ctx, delPayments, id); err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM reservation WHERE voyage_id = ?`, id); err != nil {
		return false, err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM voyage WHERE id_voyage = ?`, id)
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
