package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/color-palette/api/history"
)

// PaletteHistory is the undo/redo stack of one editing session. Each entry
// is a full palette.
type PaletteHistory = history.State[[]string]

type HistorySession struct {
	SessionID string         `json:"sessionId" db:"session_id"`
	State     PaletteHistory `json:"state" db:"state"`
	ExpiresAt time.Time      `json:"expiresAt" db:"expires_at"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time      `json:"updatedAt" db:"updated_at"`
}

func NewHistorySession(ttl time.Duration) HistorySession {
	now := time.Now()
	return HistorySession{
		SessionID: uuid.New().String(),
		State:     history.Empty[[]string](),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type HistoryPushRequest struct {
	Colors []string `json:"colors"`
}

type HistoryReplaceRequest struct {
	Entries [][]string `json:"entries"`
	Index   *int       `json:"index,omitempty"`
}

type HistoryResponse struct {
	SessionID string     `json:"sessionId"`
	Entries   [][]string `json:"entries"`
	Index     int        `json:"index"`
	Current   []string   `json:"current"`
	CanUndo   bool       `json:"canUndo"`
	CanRedo   bool       `json:"canRedo"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

func (s HistorySession) Response() HistoryResponse {
	current, _ := s.State.Current()
	return HistoryResponse{
		SessionID: s.SessionID,
		Entries:   s.State.Entries,
		Index:     s.State.Index,
		Current:   current,
		CanUndo:   s.State.CanUndo(),
		CanRedo:   s.State.CanRedo(),
		ExpiresAt: s.ExpiresAt,
	}
}
