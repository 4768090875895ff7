// Package auth models the externally-owned credential collaborator: a
// bearer token source plus the logout hook controllers fire when the
// backend reports an expired session.
package auth

import (
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenSource supplies the bearer credential for protected calls. An empty
// token means "no credential".
type TokenSource interface {
	Token() string
}

// Memory is the in-process token holder. Logout hooks run once per Logout
// call, in registration order.
type Memory struct {
	mu       sync.Mutex
	token    string
	onLogout []func()
}

func NewMemory(token string) *Memory {
	return &Memory{token: token}
}

func (m *Memory) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *Memory) SetToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
}

// OnLogout registers a hook fired when the session ends.
func (m *Memory) OnLogout(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onLogout = append(m.onLogout, fn)
}

// Logout clears the stored token and fires the registered hooks.
func (m *Memory) Logout() {
	m.mu.Lock()
	m.token = ""
	hooks := make([]func(), len(m.onLogout))
	copy(hooks, m.onLogout)
	m.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

// Expired inspects the token's exp claim without verifying the signature
// (verification is the backend's job; this is only a local heads-up).
// Tokens without a parseable exp are treated as not expired.
func (m *Memory) Expired(now time.Time) bool {
	claims, ok := m.claims()
	if !ok {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return now.After(exp.Time)
}

// EmployeeID extracts a numeric employee id from the token subject, when
// present. Used to preload "my" data without a dedicated endpoint.
func (m *Memory) EmployeeID() (int64, bool) {
	claims, ok := m.claims()
	if !ok {
		return 0, false
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (m *Memory) claims() (jwt.MapClaims, bool) {
	token := m.Token()
	if token == "" {
		return nil, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, false
	}
	return claims, true
}
