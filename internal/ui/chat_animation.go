package ui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// SlowHint is shown once a reply has been pending past the slow threshold.
const SlowHint = "This is taking longer than usual..."

// StopwatchTickMsg is sent to update the animated waiting display. Gen
// identifies the StartWaiting call whose chain produced it.
type StopwatchTickMsg struct {
	Time time.Time
	Gen  int
}

// waitingVerbs cycle while a reply is pending
var waitingVerbs = []string{
	"Thinking",
	"Reviewing",
	"Researching",
	"Reading regulations",
	"Checking guidance",
	"Consulting the record",
	"Summarizing",
	"Drafting",
}

// randomWaitingVerb returns a random verb from the list
func randomWaitingVerb() string {
	return waitingVerbs[rand.Intn(len(waitingVerbs))]
}

// spinnerFrames are the characters used for the waiting spinner
var spinnerFrames = []string{"·", "✺", "✹", "✸", "✷", "✶", "✵", "✴", "✳", "✲", "✱", "✧", "✦", "·"}

// StopwatchTick returns a command that sends a tick message for chain gen
// after a delay
func StopwatchTick(gen int) tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return StopwatchTickMsg{Time: t, Gen: gen}
	})
}

// formatElapsed formats a duration for display (e.g., "12s", "1m30s")
func formatElapsed(d time.Duration) string {
	secs := int(d.Seconds())
	if secs < 60 {
		return fmt.Sprintf("%ds", secs)
	}
	return fmt.Sprintf("%dm%ds", secs/60, secs%60)
}

// renderWaitingStatus renders the status line while a reply is pending.
// Format: ✺ Thinking... (12s)
func renderWaitingStatus(verb string, frameIdx int, elapsed time.Duration, slow bool) string {
	frame := spinnerFrames[frameIdx%len(spinnerFrames)]

	spinnerStyle := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)

	verbStyle := lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Italic(true)

	metaStyle := lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	var sb strings.Builder
	sb.WriteString(spinnerStyle.Render(frame))
	sb.WriteString(" ")
	sb.WriteString(verbStyle.Render(verb + "..."))
	sb.WriteString(" ")
	sb.WriteString(metaStyle.Render("(" + formatElapsed(elapsed) + ")"))
	if slow {
		sb.WriteString("\n")
		sb.WriteString(ChatSlowHintStyle.Render(SlowHint))
	}
	return sb.String()
}

// StartWaiting resets the spinner for a new pending reply and starts the
// stopwatch. Any chain started earlier stops at its next tick.
func (c *Chat) StartWaiting() tea.Cmd {
	c.waitVerb = randomWaitingVerb()
	c.frame = 0
	c.waitGen++
	c.updateContent(true)
	return StopwatchTick(c.waitGen)
}

// handleStopwatchTick advances the spinner while a reply is pending
func (c *Chat) handleStopwatchTick(msg StopwatchTickMsg) tea.Cmd {
	if msg.Gen != c.waitGen || c.session == nil || !c.session.IsAwaiting() {
		return nil
	}
	c.frame = (c.frame + 1) % len(spinnerFrames)
	c.updateContent(false)
	return StopwatchTick(c.waitGen)
}
