package core

import (
	"sync"
	"time"
)

// IncomingRequest is one inbound consent request from a sender. Deadline is
// an extension point for auto-decline; nothing fires it today.
type IncomingRequest struct {
	From     string
	FileName string
	Size     string
	Deadline time.Time
}

// Decision is the user's answer to a pending request.
type Decision string

const (
	DecisionAccepted Decision = "accepted"
	DecisionDeclined Decision = "declined"
)

// Resolution records what was decided for which file, for display and for
// the decision push.
type Resolution struct {
	Decision Decision
	FileName string
}

// IncomingController holds at most one pending request. A new request
// replaces the current one unconditionally; the displaced request is dropped
// without a resolution record.
type IncomingController struct {
	mu      sync.Mutex
	pending *IncomingRequest
	notify  func()
}

func NewIncomingController() *IncomingController {
	return &IncomingController{notify: func() {}}
}

func (c *IncomingController) SetNotify(fn func()) {
	if fn != nil {
		c.notify = fn
	}
}

// Present installs req as the pending request, displacing any current one.
func (c *IncomingController) Present(req IncomingRequest) {
	c.mu.Lock()
	c.pending = &req
	c.mu.Unlock()
	c.notify()
}

// Pending returns the current pending request, if any.
func (c *IncomingController) Pending() (IncomingRequest, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return IncomingRequest{}, false
	}
	return *c.pending, true
}

// Resolve applies the user's decision to the pending request and clears the
// slot. With no pending request it reports false and changes nothing.
func (c *IncomingController) Resolve(d Decision) (Resolution, bool) {
	c.mu.Lock()
	if c.pending == nil {
		c.mu.Unlock()
		return Resolution{}, false
	}
	res := Resolution{Decision: d, FileName: c.pending.FileName}
	c.pending = nil
	c.mu.Unlock()
	c.notify()
	return res, true
}
