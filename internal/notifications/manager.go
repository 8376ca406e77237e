package notifications

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"recipectl/internal/api"
	"recipectl/internal/events"
	"recipectl/internal/logging"
)

// DefaultDismissAfter is how long a notification stays visible unless
// dismissed earlier.
const DefaultDismissAfter = 10 * time.Second

// Manager owns the set of currently visible notifications.
type Manager struct {
	mu           sync.Mutex
	bus          *events.Bus
	logger       *slog.Logger
	dismissAfter time.Duration
	newID        func() string
	now          func() time.Time
	active       map[string]api.Notification
	order        []string
	timers       map[string]*time.Timer
}

// Option customizes manager construction.
type Option func(*Manager)

// WithDismissAfter overrides the auto-dismiss delay.
func WithDismissAfter(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.dismissAfter = d
		}
	}
}

// WithIDGenerator overrides the notification identifier generator, used by
// tests that need deterministic IDs.
func WithIDGenerator(generate func() string) Option {
	return func(m *Manager) {
		if generate != nil {
			m.newID = generate
		}
	}
}

// WithClock overrides the time source stamped onto notifications.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager constructs a manager publishing to bus.
func NewManager(bus *events.Bus, logger *slog.Logger, opts ...Option) *Manager {
	m := &Manager{
		bus:          bus,
		logger:       logging.NewComponentLogger(logger, "notifications"),
		dismissAfter: DefaultDismissAfter,
		newID:        uuid.NewString,
		now:          time.Now,
		active:       make(map[string]api.Notification),
		timers:       make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Show makes notification visible, assigning an identifier when absent, and
// schedules its auto-dismissal. The shown event is published immediately.
// The assigned identifier is returned.
func (m *Manager) Show(notification api.Notification) string {
	m.mu.Lock()
	if notification.ID == "" {
		notification.ID = m.newID()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = m.now()
	}
	id := notification.ID

	// Re-showing an existing id resets its timer.
	if timer, ok := m.timers[id]; ok {
		timer.Stop()
	}
	if _, ok := m.active[id]; !ok {
		m.order = append(m.order, id)
	}
	m.active[id] = notification
	m.timers[id] = time.AfterFunc(m.dismissAfter, func() { m.Dismiss(id) })
	m.mu.Unlock()

	m.bus.Publish(events.NotificationShown{Notification: notification})
	m.logger.Debug("notification shown",
		logging.String(logging.FieldNotificationID, id),
		logging.String("kind", string(notification.Kind)))
	return id
}

// Dismiss removes the notification with the given identifier and publishes a
// dismissed event. Unknown identifiers are ignored.
func (m *Manager) Dismiss(id string) {
	m.mu.Lock()
	if _, ok := m.active[id]; !ok {
		m.mu.Unlock()
		return
	}
	delete(m.active, id)
	if timer, ok := m.timers[id]; ok {
		timer.Stop()
		delete(m.timers, id)
	}
	for i, candidate := range m.order {
		if candidate == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.mu.Unlock()

	m.bus.Publish(events.NotificationDismissed{ID: id})
	m.logger.Debug("notification dismissed", logging.String(logging.FieldNotificationID, id))
}

// Active returns the visible notifications in the order they were shown.
func (m *Manager) Active() []api.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := make([]api.Notification, 0, len(m.order))
	for _, id := range m.order {
		if notification, ok := m.active[id]; ok {
			snapshot = append(snapshot, notification)
		}
	}
	return snapshot
}

// Close stops all pending auto-dismiss timers without publishing dismissals.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, timer := range m.timers {
		timer.Stop()
		delete(m.timers, id)
	}
}
