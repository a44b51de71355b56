package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var ErrAuditNotFound = errors.New("audit not found")

type Repository struct {
	db *sqlx.DB
}

func NewConnection(databaseURL string, maxConns, maxIdle int) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// Migrate applies the embedded schema migrations.
func Migrate(databaseURL string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Ping() error {
	return r.db.Ping()
}

func (r *Repository) SaveAudit(a *AuditRecord) error {
	query := `
        INSERT INTO audits (
            id, input, final_url, platform, total_score, report, created_at
        ) VALUES (
            :id, :input, :final_url, :platform, :total_score, :report, :created_at
        )`

	_, err := r.db.NamedExec(query, a)
	return err
}

func (r *Repository) GetAudit(id string) (*AuditRecord, error) {
	var a AuditRecord
	query := `SELECT * FROM audits WHERE id = $1`
	err := r.db.Get(&a, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrAuditNotFound
	}
	return &a, err
}

func (r *Repository) ListAudits(limit int) ([]*AuditRecord, error) {
	audits := []*AuditRecord{}
	query := `
        SELECT id, input, final_url, platform, total_score, created_at, '{}'::jsonb AS report
        FROM audits
        ORDER BY created_at DESC
        LIMIT $1`

	err := r.db.Select(&audits, query, limit)
	return audits, err
}
