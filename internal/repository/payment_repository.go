package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/madjo-travel/voyage-reservation/internal/model"
)

// PaymentRepo provides CRUD operations for payments. The primary key is
// the caller-supplied payment code; a duplicate insert surfaces as
// ErrPaymentExists.
type PaymentRepo struct {
	DB *sql.DB
}

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{DB: db} }

const paymentColumns = `code_paiement, reservation_id, agent_id, date_paiement, montant, status, method`

func scanPayment(row interface{ Scan(...any) error }) (model.Payment, error) {
	var p model.Payment
	var date time.Time
	var status string
	err := row.Scan(&p.CodePaiement, &p.ReservationID, &p.AgentID, &date, &p.Montant, &status, &p.Method)
	if err != nil {
		return model.Payment{}, err
	}
	p.Date = model.NewDate(date)
	p.Status = model.PaymentStatus(status)
	return p, nil
}

// Create inserts the payment under its caller-supplied code.
func (r *PaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	const q = `INSERT INTO paiement (code_paiement, reservation_id, agent_id, date_paiement, montant, status, method)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.DB.ExecContext(ctx, q, p.CodePaiement, p.ReservationID, p.AgentID, p.Date.Time, p.Montant, string(p.Status), p.Method)
	if err != nil {
		// 1062 = duplicate entry on the primary key
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrPaymentExists
		}
		return err
	}
	return nil
}

// GetByCode returns the payment or ErrPaymentNotFound.
func (r *PaymentRepo) GetByCode(ctx context.Context, code string) (model.Payment, error) {
	const q = `SELECT ` + paymentColumns + ` FROM paiement WHERE code_paiement = ?`
	p, err := scanPayment(r.DB.QueryRowContext(ctx, q, code))
	if err == sql.ErrNoRows {
		return model.Payment{}, ErrPaymentNotFound
	}
	return p, err
}

// ListAll returns every payment in table order.
func (r *PaymentRepo) ListAll(ctx context.Context) ([]model.Payment, error) {
	const q = `SELECT ` + paymentColumns + ` FROM paiement`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	payments := make([]model.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// Update overwrites date, amount, status and method. The reservation and
// agent links are immutable after creation and are not part of the write.
func (r *PaymentRepo) Update(ctx context.Context, p *model.Payment) error {
	const q = `UPDATE paiement SET date_paiement = ?, montant = ?, status = ?, method = ? WHERE code_paiement = ?`
	_, err := r.DB.ExecContext(ctx, q, p.Date.Time, p.Montant, string(p.Status), p.Method, p.CodePaiement)
	return err
}

// Delete removes the payment. Returns false when no such code exists.
func (r *PaymentRepo) Delete(ctx context.Context, code string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM paiement WHERE code_paiement = ?`, code)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
