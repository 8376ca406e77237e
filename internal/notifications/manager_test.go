package notifications_test

import (
	"fmt"
	"testing"
	"time"

	"recipectl/internal/api"
	"recipectl/internal/events"
	"recipectl/internal/logging"
	"recipectl/internal/notifications"
)

func sequentialIDs() func() string {
	next := 0
	return func() string {
		next++
		return fmt.Sprintf("notif-%d", next)
	}
}

func waitFor[T events.Event](t *testing.T, ch <-chan events.Event) T {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if typed, ok := evt.(T); ok {
				return typed
			}
		case <-deadline:
			var zero T
			t.Fatalf("timed out waiting for %T", zero)
			return zero
		}
	}
}

func TestShowAssignsIDAndPublishes(t *testing.T) {
	bus := events.NewBus()
	defer bus.Close()
	ch, cancel := bus.Subscribe()
	defer cancel()

	manager := notifications.NewManager(bus, logging.NewNop(),
		notifications.WithIDGenerator(sequentialIDs()),
		notifications.WithDismissAfter(time.Hour))
	defer manager.Close()

	id := manager.Show(api.Notification{Kind: api.NotificationSuccess, Message: "Recipe deleted."})
	if id != "notif-1" {
		t.Fatalf("unexpected id %q", id)
	}

	shown := waitFor[events.NotificationShown](t, ch)
	if shown.Notification.ID != "notif-1" || shown.Notification.Message != "Recipe deleted." {
		t.Fatalf("unexpected shown event %+v", shown)
	}
	if shown.Notification.CreatedAt.IsZero() {
		t.Fatal("expected a creation timestamp")
	}

	active := manager.Active()
	if len(active) != 1 || active[0].ID != "notif-1" {
		t.Fatalf("unexpected active set %+v", active)
	}
}

func TestAutoDismissFiresAfterDelay(t *testing.T) {
	bus := events.NewBus()
	defer bus.Close()
	ch, cancel := bus.Subscribe()
	defer cancel()

	manager := notifications.NewManager(bus, logging.NewNop(),
		notifications.WithIDGenerator(sequentialIDs()),
		notifications.WithDismissAfter(20*time.Millisecond))
	defer manager.Close()

	id := manager.Show(api.Notification{Kind: api.NotificationError, Message: "Error enabling recipe."})

	dismissed := waitFor[events.NotificationDismissed](t, ch)
	if dismissed.ID != id {
		t.Fatalf("dismissed id %q does not match shown id %q", dismissed.ID, id)
	}
	if len(manager.Active()) != 0 {
		t.Fatalf("expected no active notifications, got %+v", manager.Active())
	}
}

func TestDismissIsIdempotentForUnknownIDs(t *testing.T) {
	bus := events.NewBus()
	defer bus.Close()
	ch, cancel := bus.Subscribe()
	defer cancel()

	manager := notifications.NewManager(bus, logging.NewNop())
	defer manager.Close()

	manager.Dismiss("no-such-id")

	select {
	case evt := <-ch:
		t.Fatalf("expected no event for unknown id, got %T", evt)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestExplicitDismissBeatsTimer(t *testing.T) {
	bus := events.NewBus()
	defer bus.Close()
	ch, cancel := bus.Subscribe()
	defer cancel()

	manager := notifications.NewManager(bus, logging.NewNop(),
		notifications.WithIDGenerator(sequentialIDs()),
		notifications.WithDismissAfter(time.Hour))
	defer manager.Close()

	id := manager.Show(api.Notification{Kind: api.NotificationSuccess, Message: "Recipe updated."})
	waitFor[events.NotificationShown](t, ch)

	manager.Dismiss(id)
	dismissed := waitFor[events.NotificationDismissed](t, ch)
	if dismissed.ID != id {
		t.Fatalf("unexpected dismissed id %q", dismissed.ID)
	}

	// Second dismissal of the same id is a no-op.
	manager.Dismiss(id)
	select {
	case evt := <-ch:
		t.Fatalf("expected no further events, got %T", evt)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestActivePreservesShowOrder(t *testing.T) {
	bus := events.NewBus()
	defer bus.Close()

	manager := notifications.NewManager(bus, logging.NewNop(),
		notifications.WithIDGenerator(sequentialIDs()),
		notifications.WithDismissAfter(time.Hour))
	defer manager.Close()

	manager.Show(api.Notification{Kind: api.NotificationSuccess, Message: "first"})
	manager.Show(api.Notification{Kind: api.NotificationSuccess, Message: "second"})
	manager.Show(api.Notification{Kind: api.NotificationSuccess, Message: "third"})
	manager.Dismiss("notif-2")

	active := manager.Active()
	if len(active) != 2 {
		t.Fatalf("expected two active notifications, got %d", len(active))
	}
	if active[0].Message != "first" || active[1].Message != "third" {
		t.Fatalf("unexpected order %+v", active)
	}
}
