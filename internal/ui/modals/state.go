// Package modals provides modal dialog state types for the UI.
// Each modal type implements the ModalState interface with its own state struct,
// ensuring type-safe access to modal-specific fields.
package modals

import (
	tea "charm.land/bubbletea/v2"
)

// ModalState is a discriminated union interface for modal-specific state.
// Each modal type implements this interface with its own state struct,
// ensuring type-safe access to modal-specific fields.
type ModalState interface {
	modalState() // marker method to restrict implementations
	Title() string
	Help() string
	Render() string
	Update(msg tea.Msg) (ModalState, tea.Cmd)
}

// ModalWithPreferredWidth is an optional interface that modals can implement
// to specify a custom width. If not implemented, the default ModalWidth is used.
type ModalWithPreferredWidth interface {
	ModalState
	PreferredWidth() int
}

// ModalWithSize is implemented by modals whose content depends on the space
// available inside the modal box.
type ModalWithSize interface {
	ModalState
	SetSize(width, height int)
}

// HelpShortcut represents a single keyboard shortcut for display
type HelpShortcut struct {
	Key  string
	Desc string
}

// HelpSection represents a group of related shortcuts
type HelpSection struct {
	Title     string
	Shortcuts []HelpShortcut
}
