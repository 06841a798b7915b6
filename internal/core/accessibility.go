package core

import "sync"

// AccessibilityState is the set of presentation flags. They only affect how
// views render, never what the controllers do.
type AccessibilityState struct {
	ReducedMotion bool
	HighContrast  bool
	LargeText     bool
}

// AccessibilityController owns the flags and the derived active-flag list
// shown in the settings view.
type AccessibilityController struct {
	mu     sync.Mutex
	s      AccessibilityState
	active []string
	notify func()
}

func NewAccessibilityController(initial AccessibilityState) *AccessibilityController {
	return &AccessibilityController{
		s:      initial,
		active: deriveActiveFlags(initial),
		notify: func() {},
	}
}

func (c *AccessibilityController) SetNotify(fn func()) {
	if fn != nil {
		c.notify = fn
	}
}

// Snapshot returns the current flags by value.
func (c *AccessibilityController) Snapshot() AccessibilityState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s
}

// ActiveFlags returns the names of the enabled flags, in a fixed order.
func (c *AccessibilityController) ActiveFlags() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.active))
	copy(out, c.active)
	return out
}

func (c *AccessibilityController) SetReducedMotion(on bool) {
	c.mutate(func(s *AccessibilityState) { s.ReducedMotion = on })
}

func (c *AccessibilityController) SetHighContrast(on bool) {
	c.mutate(func(s *AccessibilityState) { s.HighContrast = on })
}

func (c *AccessibilityController) SetLargeText(on bool) {
	c.mutate(func(s *AccessibilityState) { s.LargeText = on })
}

func (c *AccessibilityController) mutate(fn func(*AccessibilityState)) {
	c.mu.Lock()
	fn(&c.s)
	c.active = deriveActiveFlags(c.s)
	c.mu.Unlock()
	c.notify()
}

func deriveActiveFlags(s AccessibilityState) []string {
	var out []string
	if s.ReducedMotion {
		out = append(out, "reduced-motion")
	}
	if s.HighContrast {
		out = append(out, "high-contrast")
	}
	if s.LargeText {
		out = append(out, "large-text")
	}
	return out
}
