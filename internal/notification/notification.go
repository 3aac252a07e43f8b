// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"github.com/gen2brain/beeep"

	"github.com/botenders/govsimplify/internal/logger"
)

// AppName is the title every notification is sent under.
const AppName = "GovSimplify"

var notify = beeep.Notify

// SetNotifier replaces the function that delivers notifications (for testing).
func SetNotifier(fn func(title, message string, icon any) error) {
	notify = fn
}

// ResetNotifier restores beeep as the notification backend.
func ResetNotifier() {
	notify = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	log := logger.WithComponent("notification")
	log.Debug("sending notification", "title", title, "message", message)
	// Empty icon lets beeep use the platform default.
	err := notify(title, message, "")
	if err != nil {
		log.Warn("notification failed", "error", err)
	}
	return err
}

// ReplyReady announces that the assistant for agency has answered.
func ReplyReady(agency string) error {
	return Send(AppName, agency+" replied to your question")
}
