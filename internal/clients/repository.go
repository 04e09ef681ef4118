package clients

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/soft-m/softm-api/internal/platform/db"
)

// siretConstraint is the UNIQUE constraint backing SIRET uniqueness.
const siretConstraint = "clients_siret_key"

// Repository is the storage collaborator for clients.
type Repository interface {
	// FindBySIRET returns ErrNotFound when no client carries siret.
	FindBySIRET(ctx context.Context, siret string) (Client, error)
	// Get returns ErrNotFound when id is unknown.
	Get(ctx context.Context, id string) (Client, error)
	// Create returns ErrDuplicateSIRET when the unique constraint fires.
	Create(ctx context.Context, client Client) (Client, error)
}

// Querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type repository struct {
	db Querier
}

// NewRepository wraps a pool (or transaction) as a Repository.
func NewRepository(q Querier) Repository {
	return &repository{db: q}
}

const clientColumns = `id, client_type, siret, name, address, postal_code, city, email, phone,
	accounting_system, collectivity_code, budget_code, status, created_at, updated_at`

func (r *repository) FindBySIRET(ctx context.Context, siret string) (Client, error) {
	return r.getOne(ctx, `SELECT `+clientColumns+` FROM clients WHERE siret = $1`, siret)
}

func (r *repository) Get(ctx context.Context, id string) (Client, error) {
	return r.getOne(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
}

func (r *repository) Create(ctx context.Context, c Client) (Client, error) {
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}
	_, err := r.db.Exec(ctx, `INSERT INTO clients (`+clientColumns+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		c.ID, string(c.ClientType), c.SIRET, c.Name, c.Address, c.PostalCode, c.City, c.Email, c.Phone,
		nullText(string(c.AccountingSystem)), nullText(c.CollectivityCode), nullText(c.BudgetCode),
		string(c.Status), c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err, siretConstraint) {
			return Client{}, ErrDuplicateSIRET
		}
		return Client{}, fmt.Errorf("clients: insert: %w", err)
	}
	return c, nil
}

func (r *repository) getOne(ctx context.Context, query string, arg any) (Client, error) {
	var (
		c                                Client
		clientType, status               string
		accounting, collectivity, budget pgtype.Text
		createdAt, updatedAt             pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&c.ID, &clientType, &c.SIRET, &c.Name, &c.Address, &c.PostalCode, &c.City, &c.Email, &c.Phone,
		&accounting, &collectivity, &budget, &status, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Client{}, ErrNotFound
		}
		return Client{}, fmt.Errorf("clients: select: %w", err)
	}
	c.ClientType = ClientType(clientType)
	c.Status = Status(status)
	c.AccountingSystem = AccountingSystem(accounting.String)
	c.CollectivityCode = collectivity.String
	c.BudgetCode = budget.String
	if createdAt.Valid {
		c.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		c.UpdatedAt = updatedAt.Time
	}
	return c, nil
}

func nullText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
