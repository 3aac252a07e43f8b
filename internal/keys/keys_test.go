package keys

import "testing"

// TestKeyStringValues verifies that all key constants produce the expected
// string representations. This acts as a safety net if Bubble Tea ever changes
// its key string format.
func TestKeyStringValues(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		// Navigation
		{"Up", Up, "up"},
		{"Down", Down, "down"},
		{"Left", Left, "left"},
		{"Right", Right, "right"},
		{"Home", Home, "home"},
		{"End", End, "end"},
		{"PgUp", PgUp, "pgup"},
		{"PgDown", PgDown, "pgdown"},

		// Actions
		{"Enter", Enter, "enter"},
		{"ShiftEnter", ShiftEnter, "shift+enter"},
		{"AltEnter", AltEnter, "alt+enter"},
		{"Tab", Tab, "tab"},
		{"ShiftTab", ShiftTab, "shift+tab"},
		{"Escape", Escape, "esc"},

		// Ctrl combos
		{"CtrlA", CtrlA, "ctrl+a"},
		{"CtrlB", CtrlB, "ctrl+b"},
		{"CtrlC", CtrlC, "ctrl+c"},
		{"CtrlD", CtrlD, "ctrl+d"},
		{"CtrlN", CtrlN, "ctrl+n"},
		{"CtrlO", CtrlO, "ctrl+o"},
		{"CtrlS", CtrlS, "ctrl+s"},
		{"CtrlU", CtrlU, "ctrl+u"},
		{"CtrlY", CtrlY, "ctrl+y"},
		{"CtrlSlash", CtrlSlash, "ctrl+/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("keys.%s = %q, want %q", tt.name, tt.got, tt.expected)
			}
		})
	}
}
