package explorer

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"reclens/internal/analysis"
)

// toggleTarget resolves a toggle letter from the yo/[/] grammar to the flag
// it drives and its status messages.
func (m *Model) toggleTarget(letter string) (flag *bool, onMsg, offMsg string, ok bool) {
	switch letter {
	case "f":
		return &m.frequencyMode, "Frequency mode ON", "Frequency mode OFF", true
	case "w":
		return &m.wrapMode, "Wrap ON", "Wrap OFF", true
	case "l":
		return &m.showLocks, "Locks ON", "Locks OFF", true
	case "g":
		return &m.showGutter, "Gutter ON", "Gutter OFF", true
	}
	return nil, "", "", false
}

// handleToggle applies a toggle letter against the active pending prefix:
// yo toggles, [ forces on, ] forces off. Reports whether the key was
// consumed as a toggle.
func (m *Model) handleToggle(letter string) bool {
	flag, onMsg, offMsg, ok := m.toggleTarget(letter)
	if !ok {
		return false
	}

	switch m.pending {
	case pendingYo:
		*flag = !*flag
		if *flag {
			m.message = onMsg
		} else {
			m.message = offMsg
		}
	case pendingOpenBracket:
		*flag = true
		m.message = onMsg
	case pendingCloseBracket:
		*flag = false
		m.message = offMsg
	default:
		return false
	}

	m.pending = pendingNone
	m.countBuffer = ""

	if letter == "f" && m.frequencyMode {
		m.freq = analysis.Compute(m.records)
	}
	return true
}

// consumeCount drains the count buffer. An empty buffer or a failed parse
// yields 1, never 0.
func (m *Model) consumeCount() int {
	count, err := strconv.Atoi(m.countBuffer)
	m.countBuffer = ""
	if err != nil || count < 1 {
		return 1
	}
	return count
}

// handleKey is the normal-mode dispatch. Every arm either completes a
// command or resets the pending state; a half-entered multi-key sequence
// never partially applies.
func (m *Model) handleKey(msg tea.KeyMsg) {
	switch key := msg.String(); key {
	case ":":
		m.pending = pendingNone
		m.countBuffer = ""
		m.commandMode = true
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.message = ""

	case "tab":
		m.pending = pendingNone
		m.currentType = m.currentType.Next()
		m.clampFieldOffset()
		m.message = fmt.Sprintf("Type: %s", m.currentType.Name())

	case "shift+tab":
		m.pending = pendingNone
		m.currentType = m.currentType.Prev()
		m.clampFieldOffset()
		m.message = fmt.Sprintf("Type: %s", m.currentType.Name())

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.pending = pendingNone
		m.countBuffer += key

	case "0":
		m.pending = pendingNone
		if m.countBuffer != "" {
			m.countBuffer += key
		} else {
			m.currentField = 0
		}

	case "$":
		m.pending = pendingNone
		m.countBuffer = ""
		m.currentField = m.maxFields() - 1
		if m.currentField < 0 {
			m.currentField = 0
		}

	case "h":
		m.pending = pendingNone
		m.shiftOffsetBackward()

	case "b":
		m.pending = pendingNone
		m.moveToPrevField()

	case "j", "down":
		m.pending = pendingNone
		m.moveDown(m.consumeCount())

	case "k", "up":
		m.pending = pendingNone
		m.moveUp(m.consumeCount())

	case "ctrl+d", "pgdown":
		m.pending = pendingNone
		m.countBuffer = ""
		m.pageDown()

	case "ctrl+u", "pgup":
		m.pending = pendingNone
		m.countBuffer = ""
		m.pageUp()

	case "G":
		m.pending = pendingNone
		m.countBuffer = ""
		m.jumpToEnd()

	case "L":
		m.pending = pendingNone
		m.lockCurrent(m.consumeCount())

	case "U":
		m.pending = pendingNone
		m.countBuffer = ""
		m.unlockAtCursor()

	case "y":
		m.pending = pendingY

	case "o":
		if m.pending == pendingY {
			m.pending = pendingYo
		} else {
			m.pending = pendingNone
		}

	case "[":
		m.pending = pendingOpenBracket

	case "]":
		m.pending = pendingCloseBracket

	case "f":
		if !m.handleToggle(key) {
			m.pending = pendingNone
		}

	case "w":
		if !m.handleToggle(key) {
			m.pending = pendingNone
			m.moveToNextField()
		}

	case "l":
		if !m.handleToggle(key) {
			m.pending = pendingNone
			m.shiftOffsetForward()
		}

	case "g":
		if !m.handleToggle(key) {
			if m.pending == pendingG {
				m.pending = pendingNone
				m.countBuffer = ""
				m.jumpToStart()
			} else {
				m.pending = pendingG
			}
		}

	default:
		m.pending = pendingNone
		m.countBuffer = ""
	}
}
