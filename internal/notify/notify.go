// Package notify sends a freedesktop desktop notification over the D-Bus
// session bus when the countdown reaches its target.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	busName    = "org.freedesktop.Notifications"
	objectPath = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyCall = "org.freedesktop.Notifications.Notify"
)

// Urgency hint values understood by freedesktop notification servers.
const (
	UrgencyLow      byte = 0
	UrgencyNormal   byte = 1
	UrgencyCritical byte = 2
)

// Notifier posts notifications to the session bus.
type Notifier struct {
	mu      sync.Mutex
	logger  *slog.Logger
	appName string
	icon    string

	// obj is resolved on first use so construction never touches the bus.
	obj dbus.BusObject
}

// New creates a notifier that sends as appName.
func New(appName string, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		logger:  logger,
		appName: appName,
		icon:    "emblem-favorite",
	}
}

// NewWithObject creates a notifier bound to an existing bus object.
func NewWithObject(appName string, obj dbus.BusObject, logger *slog.Logger) *Notifier {
	n := New(appName, logger)
	n.obj = obj
	return n
}

func (n *Notifier) object() (dbus.BusObject, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.obj != nil {
		return n.obj, nil
	}

	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	n.obj = conn.Object(busName, objectPath)
	return n.obj, nil
}

// Notify sends one notification and returns the server-assigned id.
func (n *Notifier) Notify(ctx context.Context, summary, body string) (uint32, error) {
	obj, err := n.object()
	if err != nil {
		return 0, err
	}

	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(UrgencyNormal),
	}

	call := obj.CallWithContext(ctx, notifyCall, 0,
		n.appName,
		uint32(0), // replaces_id
		n.icon,
		summary,
		body,
		[]string{},
		hints,
		int32(-1), // server default timeout
	)
	if call.Err != nil {
		return 0, fmt.Errorf("notify call failed: %w", call.Err)
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("failed to read notification id: %w", err)
	}

	n.logger.Debug("desktop notification sent", "id", id, "summary", summary)
	return id, nil
}
