package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Cheertaboi/bookverse-storefront/internal/session"
)

// SessionRepo stores sessions in PostgreSQL as JSONB rows that expire ttl
// after their last write.
type SessionRepo struct {
	db  *sql.DB
	ttl time.Duration
}

func NewSessionRepo(db *sql.DB, ttl time.Duration) *SessionRepo {
	return &SessionRepo{db: db, ttl: ttl}
}

// Migrate creates the sessions table when it does not exist yet.
func (r *SessionRepo) Migrate(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS storefront_sessions (
			id         TEXT PRIMARY KEY,
			data       JSONB NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS storefront_sessions_expires_at_idx
			ON storefront_sessions (expires_at);
	`
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("migrate sessions: %w", err)
	}
	return nil
}

func (r *SessionRepo) Get(ctx context.Context, id string) (*session.Session, error) {
	query := `
		SELECT data
		FROM storefront_sessions
		WHERE id = $1 AND expires_at > NOW()
	`

	var raw []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, session.ErrNotFound
		}
		return nil, err
	}

	var s session.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &s, nil
}

// Save inserts or replaces the session and pushes its expiry forward.
func (r *SessionRepo) Save(ctx context.Context, s *session.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", s.ID, err)
	}

	query := `
		INSERT INTO storefront_sessions (id, data, expires_at, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (id) DO UPDATE
		SET data = EXCLUDED.data,
		    expires_at = EXCLUDED.expires_at,
		    updated_at = NOW()
	`

	_, err = r.db.ExecContext(ctx, query, s.ID, raw, time.Now().Add(r.ttl))
	return err
}

func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM storefront_sessions WHERE id = $1`, id)
	return err
}

// PurgeExpired removes expired rows and reports how many went.
func (r *SessionRepo) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM storefront_sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
