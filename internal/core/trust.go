package core

import "sync"

// TrustState is the displayed verification state of this device's identity.
// No cryptography happens here; the state is presentation-level and the
// backend owns the actual key material.
type TrustState string

const (
	TrustUnverified TrustState = "unverified"
	TrustTrusted    TrustState = "trusted"
)

// TrustController flips between the two trust states.
type TrustController struct {
	mu     sync.Mutex
	state  TrustState
	notify func()
}

func NewTrustController() *TrustController {
	return &TrustController{state: TrustUnverified, notify: func() {}}
}

func (c *TrustController) SetNotify(fn func()) {
	if fn != nil {
		c.notify = fn
	}
}

func (c *TrustController) State() TrustState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Verify marks the identity trusted.
func (c *TrustController) Verify() {
	c.mu.Lock()
	c.state = TrustTrusted
	c.mu.Unlock()
	c.notify()
}

// Revoke returns the identity to unverified.
func (c *TrustController) Revoke() {
	c.mu.Lock()
	c.state = TrustUnverified
	c.mu.Unlock()
	c.notify()
}
