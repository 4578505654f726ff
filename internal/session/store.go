// Package session is the client-side auth state: access token, refresh
// token, and a cached user display copy per visitor, keyed by the sid
// cookie. None of it is authoritative; everything here is rebuilt from
// backend responses and exists so views and the API client share one
// accessor instead of reading ad hoc state.
package session

import (
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"shopfront/internal/domain"
)

type Store struct {
	db *sqlx.DB
}

func Open(dsn string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  access_token  TEXT NOT NULL DEFAULT '',
  refresh_token TEXT NOT NULL DEFAULT '',
  user_json     TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
`
	_, err := db.Exec(schema)
	return err
}

func (s *Store) Close() error { return s.db.Close() }

// Tokens returns the stored pair; a visitor without a row simply has no
// credentials yet.
func (s *Store) Tokens(sid string) (string, string, error) {
	var row struct {
		Access  string `db:"access_token"`
		Refresh string `db:"refresh_token"`
	}
	err := s.db.Get(&row, `SELECT access_token, refresh_token FROM sessions WHERE id=?`, sid)
	if err == sql.ErrNoRows {
		return "", "", nil
	}
	if err != nil {
		return "", "", err
	}
	return row.Access, row.Refresh, nil
}

func (s *Store) SetTokens(sid, access, refresh string) error {
	_, err := s.db.Exec(`
		INSERT INTO sessions(id, access_token, refresh_token, last_seen)
		VALUES(?,?,?,CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE
		SET access_token=excluded.access_token,
		    refresh_token=excluded.refresh_token,
		    last_seen=CURRENT_TIMESTAMP`, sid, access, refresh)
	return err
}

// ClearTokens drops credentials but keeps the row; the sid cookie stays
// valid for the next login.
func (s *Store) ClearTokens(sid string) error {
	_, err := s.db.Exec(`UPDATE sessions SET access_token='', refresh_token='', user_json='',
		last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}

// SaveUser caches the display copy shown in headers and the profile page.
func (s *Store) SaveUser(sid string, u *domain.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO sessions(id, user_json, last_seen)
		VALUES(?,?,CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE
		SET user_json=excluded.user_json, last_seen=CURRENT_TIMESTAMP`, sid, string(b))
	return err
}

// User returns the cached display copy, nil when the visitor is anonymous.
func (s *Store) User(sid string) (*domain.User, error) {
	var raw string
	err := s.db.Get(&raw, `SELECT user_json FROM sessions WHERE id=?`, sid)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Clear is the logout teardown: the whole row goes.
func (s *Store) Clear(sid string) error {
	_, err := s.db.Exec(`DELETE FROM sessions WHERE id=?`, sid)
	return err
}
