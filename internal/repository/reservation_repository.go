package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/madjo-travel/voyage-reservation/internal/model"
)

// ReservationRepo provides CRUD operations for reservations. The listing
// query joins the client, voyage and ticket type rows into nested
// projections so a single call returns everything a consumer needs.
type ReservationRepo struct {
	DB *sql.DB
}

func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{DB: db} }

// Create inserts a new reservation and populates its generated ID.
// Referential preconditions are the caller's job; the insert assumes the
// client, voyage and ticket type rows exist.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservation (client_id, voyage_id, type_billet_id, nombre_places, date_reservation, status)
	           VALUES (?, ?, ?, ?, ?, ?)`
	result, err := r.DB.ExecContext(ctx, q, res.ClientID, res.VoyageID, res.TypeBilletID, res.Places, res.Date.Time, string(res.Status))
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	return nil
}

// GetByID returns the reservation or ErrReservationNotFound. Only the
// foreign-key ids are populated; use ListDetailed for full projections.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
	const q = `SELECT id_reservation, client_id, voyage_id, type_billet_id, nombre_places, date_reservation, status
	           FROM reservation WHERE id_reservation = ?`
	var res model.Reservation
	var date time.Time
	var status string
	err := r.DB.QueryRowContext(ctx, q, id).Scan(
		&res.ID, &res.ClientID, &res.VoyageID, &res.TypeBilletID, &res.Places, &date, &status,
	)
	if err == sql.ErrNoRows {
		return model.Reservation{}, ErrReservationNotFound
	}
	if err != nil {
		return model.Reservation{}, err
	}
	res.Date = model.NewDate(date)
	res.Status = model.ReservationStatus(status)
	return res, nil
}

// ListDetailed returns every reservation with its client, voyage and
// ticket type resolved in a single JOIN, newest reservation first.
func (r *ReservationRepo) ListDetailed(ctx context.Context) ([]model.Reservation, error) {
	const q = `SELECT r.id_reservation, r.nombre_places, r.date_reservation, r.status,
	                  c.id_client, c.nom_client, c.prenom_client, c.date_naiss, c.mail_client, c.tel_client, c.sexe_client, c.login,
	                  v.id_voyage, v.depart_voyage, v.arrive_voyage, v.heure_depart, v.heure_arrivee, v.date_voyage, v.prix,
	                  t.id_type_billet, t.libelle_type_billet, t.prix_type_billet
	           FROM reservation r
	           JOIN client c ON c.id_client = r.client_id
	           JOIN voyage v ON v.id_voyage = r.voyage_id
	           JOIN type_billet t ON t.id_type_billet = r.type_billet_id
	           ORDER BY r.id_reservation DESC`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		var c model.Client
		var v model.Voyage
		var t model.TicketType
		var resDate, naiss, vDate time.Time
		var status string
		var hd, ha sql.NullString
		if err := rows.Scan(
			&res.ID, &res.Places, &resDate, &status,
			&c.ID, &c.Nom, &c.Prenom, &naiss, &c.Mail, &c.Tel, &c.Sexe, &c.Login,
			&v.ID, &v.Depart, &v.Arrivee, &hd, &ha, &vDate, &v.Prix,
			&t.ID, &t.Libelle, &t.Prix,
		); err != nil {
			return nil, err
		}
		c.DateNaiss = model.NewDate(naiss)
		v.HeureDepart = hd.String
		v.HeureArrivee = ha.String
		v.DateVoyage = model.NewDate(vDate)
		res.Date = model.NewDate(resDate)
		res.Status = model.ReservationStatus(status)
		res.ClientID = c.ID
		res.VoyageID = v.ID
		res.TypeBilletID = t.ID
		res.Client = &c
		res.Voyage = &v
		res.TypeBillet = &t
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

// Update replaces every mutable column of the reservation.
func (r *ReservationRepo) Update(ctx context.Context, res *model.Reservation) error {
	const q = `UPDATE reservation SET client_id = ?, voyage_id = ?, type_billet_id = ?, nombre_places = ?, date_reservation = ?, status = ?
	           WHERE id_reservation = ?`
	_, err := r.DB.ExecContext(ctx, q, res.ClientID, res.VoyageID, res.TypeBilletID, res.Places, res.Date.Time, string(res.Status), res.ID)
	return err
}

// UpdateStatus overwrites only the status column. This is the single
// partial-update operation in the model.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id uint64, status model.ReservationStatus) error {
	const q = `UPDATE reservation SET status = ? WHERE id_reservation = ?`
	_, err := r.DB.ExecContext(ctx, q, string(status), id)
	return err
}

// Delete removes the reservation and its payments inside one
// transaction. Returns false when no such reservation exists.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM paiement WHERE reservation_id = ?`, id); err != nil {
		return false, err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM reservation WHERE id_reservation = ?`, id)
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
