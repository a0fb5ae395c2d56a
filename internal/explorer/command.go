package explorer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"reclens/internal/config"
)

// handleCommandKey drives the : line editor. Enter executes, Esc cancels,
// everything else goes to the text input.
func (m *Model) handleCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		line := m.commandInput.Value()
		m.commandMode = false
		m.commandInput.Blur()
		return m, m.executeCommand(line)
	case "esc":
		m.commandMode = false
		m.commandInput.Blur()
		m.message = ""
		return m, nil
	default:
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		return m, cmd
	}
}

// executeCommand runs one command line: the first whitespace token is the
// verb, the remainder a single optional argument.
func (m *Model) executeCommand(line string) tea.Cmd {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	verb, arg, hasArg := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	hasArg = hasArg && arg != ""

	switch verb {
	case "w", "write":
		m.cmdWrite(arg, hasArg, false)
	case "w!", "write!":
		m.cmdWrite(arg, hasArg, true)
	case "p", "preset":
		m.cmdPreset(arg, hasArg)
	case "e", "o", "open", "edit":
		m.cmdOpen(arg, hasArg)
	case "clear":
		m.reg.Clear()
		m.message = "Cleared all locked fields"
	case "s", "save":
		m.cmdSaveSettings()
	case "q", "quit":
		return tea.Quit
	default:
		m.message = fmt.Sprintf("Unknown command: %s", verb)
	}
	return nil
}

// cmdWrite saves the locked fields as a preset. Writing under a new name
// refuses to clobber an existing file unless forced; a bare :w rewrites the
// current preset.
func (m *Model) cmdWrite(arg string, hasArg, force bool) {
	name := m.currentPreset
	if hasArg {
		name = arg
	}
	if name == "" {
		usage := ":w"
		if force {
			usage = ":w!"
		}
		m.message = fmt.Sprintf("No preset loaded. Usage: %s <preset_name>", usage)
		return
	}

	if !force && hasArg && m.store.Exists(name) {
		m.message = fmt.Sprintf("'%s' exists. Use :w! %s to overwrite", name, name)
		return
	}

	if err := m.store.Save(name, &m.reg); err != nil {
		m.message = err.Error()
		return
	}
	m.message = fmt.Sprintf("Saved to '%s'", name)
}

// cmdPreset loads a preset by name, or reloads the current one. The
// registry is replaced only on a fully successful parse.
func (m *Model) cmdPreset(arg string, hasArg bool) {
	name := m.currentPreset
	if hasArg {
		name = arg
	}
	if name == "" {
		m.message = "No preset loaded. Usage: :p <preset_name>"
		return
	}

	fields, err := m.store.Load(name)
	if err != nil {
		m.message = err.Error()
		return
	}
	m.reg.Replace(fields)
	m.currentPreset = name
	m.message = fmt.Sprintf("Loaded preset '%s' (%d fields)", name, len(fields))
}

func (m *Model) cmdOpen(arg string, hasArg bool) {
	if !hasArg {
		m.message = "Usage: :e <filename>"
		return
	}

	count, err := m.openFile(arg)
	if err != nil {
		m.message = err.Error()
		return
	}
	m.message = fmt.Sprintf("Opened '%s' (%d records)", arg, count)
}

func (m *Model) cmdSaveSettings() {
	s := config.Settings{WrapMode: m.wrapMode, FrequencyMode: m.frequencyMode}
	if err := s.Save(m.paths.SettingsPath); err != nil {
		m.message = err.Error()
		return
	}
	m.message = fmt.Sprintf("Saved config to %s", m.paths.SettingsPath)
}
