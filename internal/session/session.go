// Package session keeps the currently authenticated principal.
//
// The principal is persisted as a JSON singleton under the authUser key of
// the key-value store, so a new process resumes the previous session. The
// Manager is an explicit dependency injected into repositories and services;
// there is no package-level session state.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"

	"github.com/dmitrijs2005/clinicdesk/internal/common"
	"github.com/dmitrijs2005/clinicdesk/internal/models"
	"github.com/dmitrijs2005/clinicdesk/internal/repositories/kv"
)

// Listener receives the new principal after every session change; nil means
// the session was cleared.
type Listener func(*models.Principal)

// Manager reads and writes session state and fans out change notifications.
type Manager struct {
	db *sql.DB

	mu        sync.Mutex
	nextID    int
	listeners map[int]Listener
}

// NewManager returns a Manager persisting session state in db.
func NewManager(db *sql.DB) *Manager {
	return &Manager{db: db, listeners: make(map[int]Listener)}
}

func (m *Manager) store() kv.Store {
	return kv.NewSQLiteStore(m.db)
}

// Current returns the authenticated principal, or nil when the session key
// is missing, malformed, or unreadable. It never returns an error.
func (m *Manager) Current(ctx context.Context) *models.Principal {
	raw, ok, err := m.store().Get(ctx, common.KeyAuthUser)
	if err != nil || !ok {
		return nil
	}
	var p models.Principal
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil
	}
	return &p
}

// SetCurrent stores p as the session principal (or clears the session when
// p is nil), then notifies subscribed listeners. Listener panics are
// swallowed; only storage failures are returned.
func (m *Manager) SetCurrent(ctx context.Context, p *models.Principal) error {
	st := m.store()
	if p == nil {
		if err := st.Delete(ctx, common.KeyAuthUser); err != nil {
			return err
		}
	} else {
		b, err := json.Marshal(p)
		if err != nil {
			return err
		}
		if err := st.Set(ctx, common.KeyAuthUser, string(b)); err != nil {
			return err
		}
	}
	m.notify(p)
	return nil
}

// IsAuthenticated reports whether a principal is present.
func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	return m.Current(ctx) != nil
}

// IsAdmin reports whether the present principal has the admin role.
func (m *Manager) IsAdmin(ctx context.Context) bool {
	return m.Current(ctx).IsAdmin()
}

// Subscribe registers l for session-change notifications and returns a token
// for Unsubscribe.
func (m *Manager) Subscribe(l Listener) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.listeners[m.nextID] = l
	return m.nextID
}

// Unsubscribe removes the listener registered under id. Unknown ids are
// ignored.
func (m *Manager) Unsubscribe(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.listeners, id)
}

func (m *Manager) notify(p *models.Principal) {
	m.mu.Lock()
	ls := make([]Listener, 0, len(m.listeners))
	for _, l := range m.listeners {
		ls = append(ls, l)
	}
	m.mu.Unlock()

	for _, l := range ls {
		func() {
			// a failing listener must not break the session change
			defer func() { _ = recover() }()
			l(p)
		}()
	}
}
