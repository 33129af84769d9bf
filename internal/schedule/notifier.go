package schedule

import "github.com/gen2brain/beeep"

// Notifier delivers a reminder to the user through some channel.
type Notifier interface {
	Notify(title, body string) error
}

// DesktopNotifier delivers reminders through the operating system's
// notification service.
type DesktopNotifier struct{}

// Notify shows a desktop notification.
func (DesktopNotifier) Notify(title, body string) error {
	return beeep.Notify(title, body, "")
}

// NoopNotifier discards reminders. It is used when notifications are
// disabled or unavailable; due doses still surface inside the TUI.
type NoopNotifier struct{}

// Notify does nothing.
func (NoopNotifier) Notify(title, body string) error { return nil }
