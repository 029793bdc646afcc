package session

import (
	"context"
	"embed"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Migrations holds the goose migrations creating the sessions table.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory of Migrations to pass to goose.
const MigrationsDir = "migrations"

// DB is the subset of *pgxpool.Pool used by PostgresStore.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps sessions in the sessions table; the data bag is stored
// msgpack-encoded.
type PostgresStore struct {
	db DB
}

// NewPostgresStore creates a store using db.
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const (
	sqlCreateSession = `INSERT INTO sessions (token, id, data, expires_at, last_activity_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	sqlGetSession = `SELECT id, data, expires_at, last_activity_at, created_at
FROM sessions WHERE token = $1`
	sqlUpdateSession = `UPDATE sessions SET data = $2, expires_at = $3, last_activity_at = $4
WHERE token = $1`
	sqlDeleteSession        = `DELETE FROM sessions WHERE token = $1`
	sqlDeleteExpiredSession = `DELETE FROM sessions WHERE expires_at <= $1`
)

func (s *PostgresStore) Create(ctx context.Context, sess *Session) error {
	if sess == nil || sess.Token == "" {
		return ErrInvalidSession
	}
	data, err := encodeData(sess.Data)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(ctx, sqlCreateSession,
		sess.Token, sess.ID, data, sess.ExpiresAt, sess.LastActivityAt, sess.CreatedAt,
	); err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, token string) (*Session, error) {
	var (
		id   uuid.UUID
		data []byte
		sess = Session{Token: token}
	)
	err := s.db.QueryRow(ctx, sqlGetSession, token).
		Scan(&id, &data, &sess.ExpiresAt, &sess.LastActivityAt, &sess.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, errors.Join(ErrStore, err)
	}
	sess.ID = id
	if sess.Data, err = decodeData(data); err != nil {
		return nil, err
	}
	if sess.IsExpired() {
		return nil, ErrSessionExpired
	}
	return &sess, nil
}

func (s *PostgresStore) Update(ctx context.Context, sess *Session) error {
	if sess == nil || sess.Token == "" {
		return ErrInvalidSession
	}
	data, err := encodeData(sess.Data)
	if err != nil {
		return err
	}
	tag, err := s.db.Exec(ctx, sqlUpdateSession, sess.Token, data, sess.ExpiresAt, sess.LastActivityAt)
	if err != nil {
		return errors.Join(ErrStore, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, token string) error {
	if _, err := s.db.Exec(ctx, sqlDeleteSession, token); err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

func (s *PostgresStore) DeleteExpired(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, sqlDeleteExpiredSession, time.Now()); err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}
