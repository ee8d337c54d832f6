// Package sqlite provides a durable tokenstore.Store backed by a local
// SQLite database, so a remembered session survives process restarts.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lanternware/lantern-go/pkg/tokenstore"

	_ "modernc.org/sqlite"
)

// Store persists a single credential row. The row is replaced wholesale on
// every Set, so readers never observe a half-written token pair.
type Store struct {
	db  *sql.DB
	dsn string
}

// NewStore opens (or creates) the database at dsn and applies any pending
// schema migrations.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Serialise writers, SQLite only supports one anyway
	db.SetMaxOpenConns(1)

	s := &Store{db: db, dsn: dsn}
	if err := s.applyMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Get(ctx context.Context) (tokenstore.Credential, error) {
	var cred tokenstore.Credential

	row := s.db.QueryRowContext(ctx,
		`SELECT access_token, refresh_token FROM credentials WHERE id = 1`)
	if err := row.Scan(&cred.AccessToken, &cred.RefreshToken); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return tokenstore.Credential{}, nil
		}
		return tokenstore.Credential{}, err
	}

	return cred, nil
}

func (s *Store) Set(ctx context.Context, cred tokenstore.Credential) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO credentials (id, access_token, refresh_token, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			access_token  = excluded.access_token,
			refresh_token = excluded.refresh_token,
			updated_at    = excluded.updated_at`,
		cred.AccessToken,
		cred.RefreshToken,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM credentials WHERE id = 1`)
	return err
}
