// Package notify holds the transient, auto-dismissing messages shown to the
// user after an action. Success and error share one channel and are told
// apart by Kind.
package notify

import (
	"log/slog"
	"sync"
	"time"
)

// DisplayDuration is how long a notification stays visible.
const DisplayDuration = 3 * time.Second

// Kind tags a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notification is a single user-visible message.
type Notification struct {
	Kind      Kind      `json:"type"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Notifier publishes notifications.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Center keeps the most recent notification. A newer notification replaces
// the older one; expiry is evaluated lazily on read, so no timer goroutine
// is needed.
type Center struct {
	now func() time.Time

	mu      sync.Mutex
	current *Notification
}

var _ Notifier = (*Center)(nil)

// NewCenter creates a Center. now defaults to time.Now when nil.
func NewCenter(now func() time.Time) *Center {
	if now == nil {
		now = time.Now
	}
	return &Center{now: now}
}

func (c *Center) Success(msg string) {
	c.publish(KindSuccess, msg)
}

func (c *Center) Error(msg string) {
	c.publish(KindError, msg)
}

func (c *Center) publish(kind Kind, msg string) {
	n := &Notification{
		Kind:      kind,
		Message:   msg,
		ExpiresAt: c.now().Add(DisplayDuration),
	}

	c.mu.Lock()
	c.current = n
	c.mu.Unlock()

	slog.Debug("Notification published", "type", kind, "message", msg)
}

// Current returns the visible notification, or nil once it has expired.
func (c *Center) Current() *Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return nil
	}
	if !c.now().Before(c.current.ExpiresAt) {
		c.current = nil
		return nil
	}
	n := *c.current
	return &n
}

// Dismiss hides the current notification early.
func (c *Center) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
}
