package datastore

import (
	"database/sql"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/color-palette/api/history"
	"github.com/color-palette/api/models"
)

// The in-memory repositories back DB_TYPE=memory and the handler tests. They
// follow the same not-found conventions as the Postgres ones.

type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: map[string]models.User{}}
}

func (m *MemoryUserStore) Create(user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.UserID]; ok {
		return user, errors.New("duplicate user id")
	}
	for _, u := range m.users {
		if u.Email == user.Email || u.Username == user.Username {
			return user, errors.New("duplicate email or username")
		}
	}
	m.users[user.UserID] = user
	return user, nil
}

func (m *MemoryUserStore) find(match func(models.User) bool) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if match(u) {
			return u, nil
		}
	}
	return models.User{}, notFound(sql.ErrNoRows)
}

func (m *MemoryUserStore) Get(userID string) (models.User, error) {
	return m.find(func(u models.User) bool { return u.UserID == userID })
}

func (m *MemoryUserStore) GetUserByEmail(email string) (models.User, error) {
	return m.find(func(u models.User) bool { return u.Email == email })
}

func (m *MemoryUserStore) GetUserByUsername(username string) (models.User, error) {
	return m.find(func(u models.User) bool { return u.Username == username })
}

func (m *MemoryUserStore) DeleteUserByID(userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, userID)
	return nil
}

func (m *MemoryUserStore) Update(user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.UserID]; !ok {
		return models.User{}, notFound(sql.ErrNoRows)
	}
	user.UpdatedAt = time.Now()
	m.users[user.UserID] = user
	return user, nil
}

func (m *MemoryUserStore) ValidateAndGetUser(credentials models.Credentials) (models.User, error) {
	user, err := m.GetUserByEmail(credentials.Email)
	if err != nil {
		return models.User{}, err
	}
	if err := user.CheckPassword(credentials.Password); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (m *MemoryUserStore) GetAllUsers() ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	users := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

type MemoryPaletteStore struct {
	mu       sync.RWMutex
	palettes map[string]models.SavedPalette
}

func NewMemoryPaletteStore() *MemoryPaletteStore {
	return &MemoryPaletteStore{palettes: map[string]models.SavedPalette{}}
}

func clonePalette(p models.SavedPalette) models.SavedPalette {
	p.Colors = append([]string(nil), p.Colors...)
	return p
}

func (m *MemoryPaletteStore) Create(palette models.SavedPalette) (models.SavedPalette, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.palettes[palette.PaletteID]; ok {
		return models.SavedPalette{}, errors.New("duplicate palette id")
	}
	m.palettes[palette.PaletteID] = clonePalette(palette)
	return palette, nil
}

func (m *MemoryPaletteStore) Get(paletteID string) (models.SavedPalette, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.palettes[paletteID]
	if !ok {
		return models.SavedPalette{}, notFound(sql.ErrNoRows)
	}
	return clonePalette(p), nil
}

func (m *MemoryPaletteStore) ListByUser(userID string) ([]models.SavedPalette, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.SavedPalette{}
	for _, p := range m.palettes {
		if p.UserID == userID {
			out = append(out, clonePalette(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m *MemoryPaletteStore) Update(palette models.SavedPalette) (models.SavedPalette, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.palettes[palette.PaletteID]; !ok {
		return models.SavedPalette{}, notFound(sql.ErrNoRows)
	}
	palette.UpdatedAt = time.Now()
	m.palettes[palette.PaletteID] = clonePalette(palette)
	return palette, nil
}

func (m *MemoryPaletteStore) Delete(paletteID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.palettes[paletteID]; !ok {
		return notFound(sql.ErrNoRows)
	}
	delete(m.palettes, paletteID)
	return nil
}

type memorySession struct {
	stack     *history.Guarded[[]string]
	expiresAt time.Time
	createdAt time.Time
	updatedAt time.Time
}

// MemoryHistoryStore keeps each session's stack in a history.Guarded so
// transitions on one session never block another.
type MemoryHistoryStore struct {
	mu       sync.Mutex
	sessions map[string]*memorySession
	now      func() time.Time
}

func NewMemoryHistoryStore() *MemoryHistoryStore {
	return &MemoryHistoryStore{sessions: map[string]*memorySession{}, now: time.Now}
}

func (s *memorySession) view(id string) models.HistorySession {
	return models.HistorySession{
		SessionID: id,
		State:     s.stack.Snapshot(),
		ExpiresAt: s.expiresAt,
		CreatedAt: s.createdAt,
		UpdatedAt: s.updatedAt,
	}
}

func (m *MemoryHistoryStore) Create(session models.HistorySession) (models.HistorySession, error) {
	stack := history.NewGuarded[[]string](0)
	stack.ReplaceAt(session.State.Entries, session.State.Index)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[session.SessionID]; ok {
		return models.HistorySession{}, errors.New("duplicate session id")
	}
	m.sessions[session.SessionID] = &memorySession{
		stack:     stack,
		expiresAt: session.ExpiresAt,
		createdAt: session.CreatedAt,
		updatedAt: session.UpdatedAt,
	}
	return session, nil
}

func (m *MemoryHistoryStore) live(sessionID string) (*memorySession, time.Time, error) {
	now := m.now()
	s, ok := m.sessions[sessionID]
	if !ok || !s.expiresAt.After(now) {
		return nil, now, notFound(sql.ErrNoRows)
	}
	return s, now, nil
}

func (m *MemoryHistoryStore) Get(sessionID string) (models.HistorySession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, _, err := m.live(sessionID)
	if err != nil {
		return models.HistorySession{}, err
	}
	return s.view(sessionID), nil
}

func (m *MemoryHistoryStore) Apply(sessionID string, ttl time.Duration, fn func(models.PaletteHistory) models.PaletteHistory) (models.HistorySession, error) {
	m.mu.Lock()
	s, now, err := m.live(sessionID)
	if err == nil {
		s.expiresAt = now.Add(ttl)
		s.updatedAt = now
	}
	m.mu.Unlock()
	if err != nil {
		return models.HistorySession{}, err
	}

	s.stack.Apply(fn)

	m.mu.Lock()
	defer m.mu.Unlock()
	return s.view(sessionID), nil
}

func (m *MemoryHistoryStore) DeleteExpired(now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, s := range m.sessions {
		if !s.expiresAt.After(now) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}
