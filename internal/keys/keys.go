// Package keys provides string constants for Bubble Tea v2 key press events.
//
// These constants are derived from tea.KeyPressMsg{Code: tea.KeyXxx}.String()
// so they always match the runtime values. Single-character keys like "q",
// "y" and "?" are not included because they cannot be meaningfully misspelled.
package keys

import tea "charm.land/bubbletea/v2"

// Navigation keys
var (
	Up     = tea.KeyPressMsg{Code: tea.KeyUp}.String()     // "up"
	Down   = tea.KeyPressMsg{Code: tea.KeyDown}.String()   // "down"
	Left   = tea.KeyPressMsg{Code: tea.KeyLeft}.String()   // "left"
	Right  = tea.KeyPressMsg{Code: tea.KeyRight}.String()  // "right"
	Home   = tea.KeyPressMsg{Code: tea.KeyHome}.String()   // "home"
	End    = tea.KeyPressMsg{Code: tea.KeyEnd}.String()    // "end"
	PgUp   = tea.KeyPressMsg{Code: tea.KeyPgUp}.String()   // "pgup"
	PgDown = tea.KeyPressMsg{Code: tea.KeyPgDown}.String() // "pgdown"
)

// Action keys
var (
	Enter      = tea.KeyPressMsg{Code: tea.KeyEnter}.String()                      // "enter"
	ShiftEnter = (tea.KeyPressMsg{Code: tea.KeyEnter, Mod: tea.ModShift}).String() // "shift+enter"
	AltEnter   = (tea.KeyPressMsg{Code: tea.KeyEnter, Mod: tea.ModAlt}).String()   // "alt+enter"
	Tab        = tea.KeyPressMsg{Code: tea.KeyTab}.String()                        // "tab"
	ShiftTab   = (tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}).String()   // "shift+tab"
	Escape     = tea.KeyPressMsg{Code: tea.KeyEscape}.String()                     // "esc"
)

// Ctrl combinations
var (
	CtrlA     = (tea.KeyPressMsg{Code: 'a', Mod: tea.ModCtrl}).String() // "ctrl+a"
	CtrlB     = (tea.KeyPressMsg{Code: 'b', Mod: tea.ModCtrl}).String() // "ctrl+b"
	CtrlC     = (tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}).String() // "ctrl+c"
	CtrlD     = (tea.KeyPressMsg{Code: 'd', Mod: tea.ModCtrl}).String() // "ctrl+d"
	CtrlN     = (tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl}).String() // "ctrl+n"
	CtrlO     = (tea.KeyPressMsg{Code: 'o', Mod: tea.ModCtrl}).String() // "ctrl+o"
	CtrlS     = (tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}).String() // "ctrl+s"
	CtrlU     = (tea.KeyPressMsg{Code: 'u', Mod: tea.ModCtrl}).String() // "ctrl+u"
	CtrlY     = (tea.KeyPressMsg{Code: 'y', Mod: tea.ModCtrl}).String() // "ctrl+y"
	CtrlSlash = (tea.KeyPressMsg{Code: '/', Mod: tea.ModCtrl}).String() // "ctrl+/"
)
