package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DefaultTableName is the row name used when none is configured.
const DefaultTableName = "default"

// Schema creates the table the postgres source reads from.
const Schema = `
CREATE TABLE IF NOT EXISTS probability_tables (
    id        BIGSERIAL PRIMARY KEY,
    name      TEXT        NOT NULL,
    body      TEXT        NOT NULL,
    loaded_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS probability_tables_name_loaded_at
    ON probability_tables (name, loaded_at DESC);
`

const (
	selectLatest = `SELECT body FROM probability_tables WHERE name = $1 ORDER BY loaded_at DESC, id DESC LIMIT 1`
	insertTable  = `INSERT INTO probability_tables (name, body) VALUES ($1, $2)`
)

// Querier is the subset of *pgxpool.Pool used here.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Postgres reads the most recent table text stored under a name.
type Postgres struct {
	db   Querier
	name string
}

// NewPostgres creates a postgres source for the named table.
func NewPostgres(db Querier, name string) *Postgres {
	if name == "" {
		name = DefaultTableName
	}
	return &Postgres{db: db, name: name}
}

// Name implements core.TextSource.
func (p *Postgres) Name() string { return "postgres:" + p.name }

// ReadText implements core.TextSource.
func (p *Postgres) ReadText(ctx context.Context) (string, error) {
	var body string
	err := p.db.QueryRow(ctx, selectLatest, p.name).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("%w: probability_tables name=%q", ErrNotFound, p.name)
	}
	if err != nil {
		return "", unavailable(err)
	}
	return body, nil
}

// EnsureSchema creates the probability_tables table if needed.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Save stores body as the newest version of this source's table.
func (p *Postgres) Save(ctx context.Context, body string) error {
	if _, err := p.db.Exec(ctx, insertTable, p.name, body); err != nil {
		return fmt.Errorf("save table %q: %w", p.name, err)
	}
	return nil
}
