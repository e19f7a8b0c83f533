package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/madjo-travel/voyage-reservation/internal/model"
)

// AgentRepo provides CRUD operations for agents. An agent owns the
// payments it recorded, so deletion removes those payments in the same
// transaction.
type AgentRepo struct {
	DB *sql.DB
}

func NewAgentRepo(db *sql.DB) *AgentRepo { return &AgentRepo{DB: db} }

const agentColumns = `id_agent, nom_agent, prenom_agent, sexe_agent, date_naiss, tel_agent, mail_agent, password_hash`

func scanAgent(row interface{ Scan(...any) error }) (model.Agent, error) {
	var a model.Agent
	var naiss time.Time
	err := row.Scan(&a.ID, &a.Nom, &a.Prenom, &a.Sexe, &naiss, &a.Tel, &a.Mail, &a.PasswordHash)
	if err != nil {
		return model.Agent{}, err
	}
	a.DateNaiss = model.BirthDate{Time: naiss}
	return a, nil
}

// Create inserts the agent and populates its generated ID.
func (r *AgentRepo) Create(ctx context.Context, a *model.Agent) error {
	const q = `INSERT INTO agent (nom_agent, prenom_agent, sexe_agent, date_naiss, tel_agent, mail_agent, password_hash)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.DB.ExecContext(ctx, q, a.Nom, a.Prenom, a.Sexe, a.DateNaiss.Time, a.Tel, a.Mail, a.PasswordHash)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// GetByID returns the agent or ErrAgentNotFound.
func (r *AgentRepo) GetByID(ctx context.Context, id uint64) (model.Agent, error) {
	const q = `SELECT ` + agentColumns + ` FROM agent WHERE id_agent = ?`
	a, err := scanAgent(r.DB.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return model.Agent{}, ErrAgentNotFound
	}
	return a, err
}

// GetByMail returns the agent with the given email, used by the sign-in
// flow. Agents have no separate login column.
func (r *AgentRepo) GetByMail(ctx context.Context, mail string) (model.Agent, error) {
	const q = `SELECT ` + agentColumns + ` FROM agent WHERE mail_agent = ? LIMIT 1`
	a, err := scanAgent(r.DB.QueryRowContext(ctx, q, strings.ToLower(strings.TrimSpace(mail))))
	if err == sql.ErrNoRows {
		return model.Agent{}, ErrAgentNotFound
	}
	return a, err
}

// ListAll returns every agent, newest first.
func (r *AgentRepo) ListAll(ctx context.Context) ([]model.Agent, error) {
	const q = `SELECT ` + agentColumns + ` FROM agent ORDER BY id_agent DESC`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	agents := make([]model.Agent, 0)
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}
	return agents, rows.Err()
}

// Update replaces the profile columns. Credentials travel with the
// struct, so callers carry the stored hash through.
func (r *AgentRepo) Update(ctx context.Context, a *model.Agent) error {
	const q = `UPDATE agent SET nom_agent = ?, prenom_agent = ?, sexe_agent = ?, date_naiss = ?, tel_agent = ?, mail_agent = ?, password_hash = ?
	           WHERE id_agent = ?`
	_, err := r.DB.ExecContext(ctx, q, a.Nom, a.Prenom, a.Sexe, a.DateNaiss.Time, a.Tel, a.Mail, a.PasswordHash, a.ID)
	return err
}

// Delete removes the agent and the payments it recorded. Returns false
// when no such agent exists.
func (r *AgentRepo) Delete(ctx context.Context, id uint64) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM paiement WHERE agent_id = ?`, id); err != nil {
		return false, err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM agent WHERE id_agent = ?`, id)
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
