package datastore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/color-palette/api/models"
)

// HistoryRepository stores anonymous undo/redo sessions. Expired sessions
// are invisible to Get and Apply.
type HistoryRepository interface {
	Create(session models.HistorySession) (models.HistorySession, error)
	Get(sessionID string) (models.HistorySession, error)
	// Apply runs fn on the stored state atomically, saves the result and
	// extends the session's expiry to now+ttl.
	Apply(sessionID string, ttl time.Duration, fn func(models.PaletteHistory) models.PaletteHistory) (models.HistorySession, error)
	DeleteExpired(now time.Time) (int64, error)
}

type HistoryDatabase struct {
	database *sql.DB
}

func NewHistoryDatabase(db *sql.DB) (HistoryDatabase, error) {
	if db == nil {
		return HistoryDatabase{}, errors.New("nil database handle")
	}
	return HistoryDatabase{database: db}, nil
}

const historyColumns = `
		session_id,
		entries,
		idx,
		expires_at,
		created_at,
		updated_at`

func scanHistory(row rowScanner) (models.HistorySession, error) {
	var (
		s       models.HistorySession
		entries []byte
	)
	scanErr := row.Scan(
		&s.SessionID,
		&entries,
		&s.State.Index,
		&s.ExpiresAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	switch {
	case errors.Is(scanErr, sql.ErrNoRows):
		return models.HistorySession{}, notFound(scanErr)
	case scanErr != nil:
		return models.HistorySession{}, scanErr
	}

	// Unreadable entries reset the session instead of failing it.
	if err := json.Unmarshal(entries, &s.State.Entries); err != nil {
		s.State.Entries = nil
	}
	s.State = s.State.Normalize()
	return s, nil
}

func encodeEntries(state models.PaletteHistory) ([]byte, error) {
	entries := state.Entries
	if entries == nil {
		entries = [][]string{}
	}
	return json.Marshal(entries)
}

func (hdb HistoryDatabase) Create(session models.HistorySession) (models.HistorySession, error) {
	entries, err := encodeEntries(session.State)
	if err != nil {
		return models.HistorySession{}, fmt.Errorf("failed to encode history: %w", err)
	}

	_, err = hdb.database.Exec(`
		INSERT INTO history_sessions (`+historyColumns+`
		) VALUES ($1, $2, $3, $4, $5, $6)`,
		session.SessionID,
		entries,
		session.State.Index,
		session.ExpiresAt,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		return models.HistorySession{}, fmt.Errorf("failed to create history session: %w", err)
	}
	return session, nil
}

func (hdb HistoryDatabase) Get(sessionID string) (models.HistorySession, error) {
	row := hdb.database.QueryRow(`
		SELECT`+historyColumns+`
		FROM history_sessions
		WHERE session_id = $1 AND expires_at > $2`, sessionID, time.Now())
	return scanHistory(row)
}

func (hdb HistoryDatabase) Apply(sessionID string, ttl time.Duration, fn func(models.PaletteHistory) models.PaletteHistory) (models.HistorySession, error) {
	tx, err := hdb.database.Begin()
	if err != nil {
		return models.HistorySession{}, err
	}
	defer tx.Rollback()

	now := time.Now()
	session, err := scanHistory(tx.QueryRow(`
		SELECT`+historyColumns+`
		FROM history_sessions
		WHERE session_id = $1 AND expires_at > $2
		FOR UPDATE`, sessionID, now))
	if err != nil {
		return models.HistorySession{}, err
	}

	session.State = fn(session.State)
	session.ExpiresAt = now.Add(ttl)
	session.UpdatedAt = now

	entries, err := encodeEntries(session.State)
	if err != nil {
		return models.HistorySession{}, fmt.Errorf("failed to encode history: %w", err)
	}

	if _, err := tx.Exec(`
		UPDATE history_sessions
		SET
			entries = $2,
			idx = $3,
			expires_at = $4,
			updated_at = $5
		WHERE session_id = $1`,
		session.SessionID,
		entries,
		session.State.Index,
		session.ExpiresAt,
		session.UpdatedAt,
	); err != nil {
		return models.HistorySession{}, fmt.Errorf("failed to update history session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.HistorySession{}, err
	}
	return session, nil
}

func (hdb HistoryDatabase) DeleteExpired(now time.Time) (int64, error) {
	res, err := hdb.database.Exec(`DELETE FROM history_sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return res.RowsAffected()
}
