package session

import (
	"strconv"
	"sync"
	"time"

	"github.com/ayomide-o/sportify/internal/shared"
	"github.com/charmbracelet/log"
)

// Credential store keys. A session is either fully present (access token and
// expiry written together) or fully absent; Persist and Logout are the only
// writers and both touch all three keys in one call.
const (
	KeyAccessToken  = "spotify_access_token"
	KeyExpiresAt    = "spotify_expires_at"
	KeyRefreshToken = "spotify_refresh_token"
)

// Listener receives authenticated/unauthenticated state changes.
type Listener func(loggedIn bool)

// Manager owns the access-token/expiry/refresh-token triplet.
//
// Expiry is stored as a string-encoded epoch-millisecond instant. The
// refresh token is retained but never used; an expired session forces
// logout instead of a refresh attempt.
type Manager struct {
	store  Store
	logger *log.Logger
	now    func() time.Time

	mu        sync.Mutex
	listeners []Listener
}

// NewManager creates a session manager over the given credential store.
func NewManager(store Store, logger *log.Logger) *Manager {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Manager{store: store, logger: logger, now: time.Now}
}

// Subscribe registers a listener for login/logout transitions.
func (m *Manager) Subscribe(fn Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

func (m *Manager) notify(loggedIn bool) {
	m.mu.Lock()
	listeners := make([]Listener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(loggedIn)
	}
}

// Valid reports whether a non-expired session exists.
//
// The boundary instant itself counts as expired. Pure read, no side effects.
func (m *Manager) Valid() bool {
	raw, ok, err := m.store.Get(KeyExpiresAt)
	if err != nil {
		m.logger.Warnf("failed to read session expiry %v", err)
		return false
	}
	if !ok {
		return false
	}

	expiresAt, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		m.logger.Warnf("malformed session expiry %q", raw)
		return false
	}

	return m.now().UnixMilli() < expiresAt
}

// ValidToken returns the stored access token only when the session is valid.
//
// Never returns a token known to be expired.
func (m *Manager) ValidToken() (string, bool) {
	if !m.Valid() {
		return "", false
	}
	return m.RawToken()
}

// RawToken returns whatever access token is stored regardless of expiry.
//
// Distinguishes "never logged in" from "expired"; authenticated calls must
// use ValidToken instead.
func (m *Manager) RawToken() (string, bool) {
	token, ok, err := m.store.Get(KeyAccessToken)
	if err != nil {
		m.logger.Warnf("failed to read access token %v", err)
		return "", false
	}
	return token, ok && token != ""
}

// Persist writes a freshly acquired session as a single committed unit and
// notifies subscribers that the client is authenticated.
//
// expiresIn is the provider-reported token lifetime. An absent refresh token
// is stored as the empty string.
func (m *Manager) Persist(accessToken string, expiresIn time.Duration, refreshToken string) error {
	expiresAt := m.now().Add(expiresIn).UnixMilli()

	err := m.store.SetMany(map[string]string{
		KeyAccessToken:  accessToken,
		KeyExpiresAt:    strconv.FormatInt(expiresAt, 10),
		KeyRefreshToken: refreshToken,
	})
	if err != nil {
		return err
	}

	m.logger.Debug("session persisted", "expires_at", expiresAt)
	m.notify(true)
	return nil
}

// Logout deletes all session keys and notifies subscribers.
//
// Safe to call when no session exists.
func (m *Manager) Logout() error {
	if err := m.store.Delete(KeyAccessToken, KeyExpiresAt, KeyRefreshToken); err != nil {
		return err
	}

	m.logger.Info("logged out")
	m.notify(false)
	return nil
}
