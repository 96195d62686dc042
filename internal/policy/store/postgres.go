package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"tokengate/internal/policy/models"
	"tokengate/pkg/platform/sentinel"
	"tokengate/pkg/platform/tx"
)

// Schema documents the logical shape of the policy table. Kept next to the
// store so integration tests and deploy scripts share one definition.
const Schema = `
CREATE TABLE IF NOT EXISTS chats (
	id UUID PRIMARY KEY,
	chat_id TEXT NOT NULL,
	token_id TEXT NOT NULL,
	chain TEXT NOT NULL DEFAULT '',
	minimum_token_count DOUBLE PRECISION NOT NULL,
	name TEXT NOT NULL DEFAULT '',
	image_url TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS chats_chat_id_key ON chats (chat_id);
`

// Postgres persists gating policies in the chats table.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const pqUniqueViolation = "23505"

// querier is the read/write surface shared by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// q returns the context's transaction when one is present so callers
// can group store operations atomically, and the pooled DB otherwise.
func (s *Postgres) q(ctx context.Context) querier {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return s.db
}

// Create inserts a policy. The unique index on chat_id makes the
// one-active-policy-per-chat invariant hold even under concurrent creates;
// a violation surfaces as sentinel.ErrConflict.
func (s *Postgres) Create(ctx context.Context, p *models.GatingPolicy) error {
	query := `
		INSERT INTO chats (id, chat_id, token_id, chain, minimum_token_count, name, image_url, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.q(ctx).ExecContext(ctx, query,
		p.ID, p.ChatID, p.TokenID, string(p.Chain), p.MinimumTokenCount,
		p.Name, p.ImageURL, p.Description, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create policy: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id uuid.UUID) (*models.GatingPolicy, error) {
	query := `
		SELECT id, chat_id, token_id, chain, minimum_token_count, name, image_url, description, created_at, updated_at
		FROM chats WHERE id = $1
	`
	return s.scanOne(s.q(ctx).QueryRowContext(ctx, query, id))
}

func (s *Postgres) FindByChatID(ctx context.Context, chatID string) (*models.GatingPolicy, error) {
	query := `
		SELECT id, chat_id, token_id, chain, minimum_token_count, name, image_url, description, created_at, updated_at
		FROM chats WHERE chat_id = $1
	`
	return s.scanOne(s.q(ctx).QueryRowContext(ctx, query, chatID))
}

func (s *Postgres) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.q(ctx).ExecContext(ctx, `DELETE FROM chats WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete policy: %w", err)
	}
	return deletedOrNotFound(res)
}

func (s *Postgres) DeleteByChatID(ctx context.Context, chatID string) error {
	res, err := s.q(ctx).ExecContext(ctx, `DELETE FROM chats WHERE chat_id = $1`, chatID)
	if err != nil {
		return fmt.Errorf("delete policy by chat: %w", err)
	}
	return deletedOrNotFound(res)
}

// Update persists mutable display fields only.
func (s *Postgres) Update(ctx context.Context, p *models.GatingPolicy) error {
	query := `
		UPDATE chats SET name = $2, image_url = $3, description = $4, updated_at = $5
		WHERE id = $1
	`
	res, err := s.q(ctx).ExecContext(ctx, query, p.ID, p.Name, p.ImageURL, p.Description, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update policy: %w", err)
	}
	return deletedOrNotFound(res)
}

func (s *Postgres) scanOne(row *sql.Row) (*models.GatingPolicy, error) {
	var p models.GatingPolicy
	var chain string
	err := row.Scan(&p.ID, &p.ChatID, &p.TokenID, &chain, &p.MinimumTokenCount,
		&p.Name, &p.ImageURL, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan policy: %w", err)
	}
	p.Chain = models.Chain(chain)
	return &p, nil
}

func deletedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
