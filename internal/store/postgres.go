package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	s := &PostgresStore{db: db}
	if err := s.migrate(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	// Use advisory lock to prevent concurrent migrations from multiple services.
	// Note: In production, use dedicated migration tools (e.g., golang-migrate/migrate)
	// that run as a separate deployment step before app services start.
	const lockID = 824167355 // arbitrary number for this application's migration lock

	var acquired bool
	err := s.db.QueryRowContext(ctx, `SELECT pg_try_advisory_lock($1)`, lockID).Scan(&acquired)
	if err != nil {
		return fmt.Errorf("failed to acquire migration lock: %w", err)
	}

	if !acquired {
		// Another service is running migrations; wait briefly and skip
		time.Sleep(2 * time.Second)
		return nil
	}

	defer func() {
		_, _ = s.db.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, lockID)
	}()

	_, err = s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS exchanges (
			id UUID PRIMARY KEY,
			chat_id BIGINT NOT NULL,
			kind TEXT NOT NULL,
			questions TEXT[],
			topics TEXT[],
			reply TEXT,
			created_at TIMESTAMPTZ DEFAULT now()
		);`)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS exchanges_chat_created_idx
		ON exchanges (chat_id, created_at DESC)
	`)
	return err
}

func (s *PostgresStore) RecordExchange(ctx context.Context, ex Exchange) (Exchange, error) {
	if ex.ID == uuid.Nil {
		ex.ID = uuid.New()
	}
	if ex.CreatedAt.IsZero() {
		ex.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO exchanges (id, chat_id, kind, questions, topics, reply, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		ex.ID, ex.ChatID, string(ex.Kind), pq.Array(ex.Questions), pq.Array(ex.Topics), ex.Reply, ex.CreatedAt,
	)
	if err != nil {
		return Exchange{}, err
	}
	return ex, nil
}

func (s *PostgresStore) RecentExchanges(ctx context.Context, chatID int64, limit int) ([]Exchange, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, chat_id, kind, questions, topics, reply, created_at
		FROM exchanges
		WHERE chat_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, chatID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Exchange
	for rows.Next() {
		var ex Exchange
		var kind string
		if err := rows.Scan(&ex.ID, &ex.ChatID, &kind, pq.Array(&ex.Questions), pq.Array(&ex.Topics), &ex.Reply, &ex.CreatedAt); err != nil {
			return nil, err
		}
		ex.Kind = ExchangeKind(kind)
		out = append(out, ex)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
