package conn

import (
	"crypto/subtle"
	"sync"
)

// Password is the server password. Sessions read it during the handshake;
// it may be changed while the server runs.
type Password struct {
	mu    sync.RWMutex
	value string
}

func NewPassword(value string) *Password {
	return &Password{value: value}
}

// Required reports whether clients must send a password.
func (p *Password) Required() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.value != ""
}

// Check reports whether attempt matches the password.
func (p *Password) Check(attempt string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return subtle.ConstantTimeCompare([]byte(attempt), []byte(p.value)) == 1
}

func (p *Password) Set(value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.value = value
}
