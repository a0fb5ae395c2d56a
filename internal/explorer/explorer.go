// Package explorer is the interactive exploration engine: a bubbletea model
// over an immutable record set, the vim-flavored modal keymap, the locked
// field registry, and the viewport math that turns state into styled rows.
package explorer

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"reclens/internal/analysis"
	"reclens/internal/config"
	"reclens/internal/field"
	"reclens/internal/preset"
	"reclens/internal/record"
)

// pendingPrefix is the in-progress multi-key command, exactly one of which
// is active at a time.
type pendingPrefix int

const (
	pendingNone pendingPrefix = iota
	pendingG            // g pressed, awaiting a second g
	pendingY            // y pressed, awaiting o
	pendingYo           // yo pressed, awaiting a toggle letter
	pendingOpenBracket  // [ pressed, awaiting a toggle letter
	pendingCloseBracket // ] pressed, awaiting a toggle letter
)

type Model struct {
	records [][]byte
	format  string

	reg   field.Registry
	store preset.Store
	paths config.Paths

	styles *config.Styles

	// Cursor and viewport.
	currentRecord  int
	scrollOffset   int
	visibleRecords int
	fieldOffset    int
	currentField   int
	currentType    field.DataType

	// Modal input state.
	pending     pendingPrefix
	countBuffer string

	// Toggleable modes.
	frequencyMode bool
	wrapMode      bool
	showLocks     bool
	showGutter    bool

	freq *analysis.FrequencyTable

	// Command sub-mode.
	commandMode  bool
	commandInput textinput.Model

	currentPreset string
	message       string

	width  int
	height int
}

// New builds the engine over an already-decoded record set. paths is the
// only filesystem configuration the engine ever consults; settings seed the
// wrap and frequency toggles; autoPreset, when non-empty, names a preset
// detected at startup to load into the registry.
func New(records [][]byte, format string, paths config.Paths, settings config.Settings, autoPreset string) *Model {
	ti := textinput.New()
	ti.Prompt = ":"

	m := &Model{
		records:        records,
		format:         format,
		store:          preset.NewStore(paths),
		paths:          paths,
		styles:         config.NewStyles(),
		currentType:    field.U8,
		visibleRecords: 10,
		frequencyMode:  settings.FrequencyMode,
		wrapMode:       settings.WrapMode,
		showLocks:      true,
		showGutter:     true,
		commandInput:   ti,
		width:          80,
	}

	if m.frequencyMode {
		m.freq = analysis.Compute(m.records)
	}

	if autoPreset != "" {
		m.currentPreset = autoPreset
		fields, err := m.store.Load(autoPreset)
		if err != nil {
			m.message = fmt.Sprintf("Auto-detect found '%s' but failed to load: %v", autoPreset, err)
		} else {
			m.reg.Replace(fields)
			m.message = fmt.Sprintf("Auto-loaded preset '%s'", autoPreset)
		}
	}

	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.visibleRecords = msg.Height - 2 // header and status rows
		if m.visibleRecords < 1 {
			m.visibleRecords = 1
		}
		m.followCursor()
		return m, nil

	case tea.KeyMsg:
		if m.commandMode {
			return m.handleCommandKey(msg)
		}
		m.handleKey(msg)
		return m, nil
	}

	return m, nil
}

// currentRecordBytes returns the record under the cursor, nil when the set
// is empty.
func (m *Model) currentRecordBytes() []byte {
	if m.currentRecord < 0 || m.currentRecord >= len(m.records) {
		return nil
	}
	return m.records[m.currentRecord]
}

// fieldCount is how many complete fields of the current type fit in a
// record of the given length after the alignment offset.
func (m *Model) fieldCount(recordLen int) int {
	if recordLen <= m.fieldOffset {
		return 0
	}
	return (recordLen - m.fieldOffset) / m.currentType.WidthOr1()
}

func (m *Model) maxFields() int {
	return m.fieldCount(len(m.currentRecordBytes()))
}

// clampedField is currentField clamped against the live field count; the
// stored value has no upper bound of its own.
func (m *Model) clampedField() int {
	f := m.currentField
	if max := m.maxFields(); f >= max {
		f = max - 1
	}
	if f < 0 {
		f = 0
	}
	return f
}

// currentFieldByte is the byte offset of the cursor field.
func (m *Model) currentFieldByte() int {
	return m.fieldOffset + m.clampedField()*m.currentType.WidthOr1()
}

// clampFieldOffset re-validates the alignment offset after a type change.
func (m *Model) clampFieldOffset() {
	if w := m.currentType.WidthOr1(); m.fieldOffset >= w {
		m.fieldOffset = w - 1
	}
}

func (m *Model) shiftOffsetForward() {
	if m.fieldOffset+1 < m.currentType.WidthOr1() {
		m.fieldOffset++
	}
}

func (m *Model) shiftOffsetBackward() {
	if m.fieldOffset > 0 {
		m.fieldOffset--
	}
}

func (m *Model) moveToNextField() {
	if m.currentField+1 < m.maxFields() {
		m.currentField++
	}
}

func (m *Model) moveToPrevField() {
	if m.currentField > 0 {
		m.currentField--
	}
}

func (m *Model) moveDown(count int) {
	maxIdx := len(m.records) - 1
	if maxIdx < 0 {
		maxIdx = 0
	}
	m.currentRecord += count
	if m.currentRecord > maxIdx {
		m.currentRecord = maxIdx
	}
	m.followCursor()
}

func (m *Model) moveUp(count int) {
	m.currentRecord -= count
	if m.currentRecord < 0 {
		m.currentRecord = 0
	}
	m.followCursor()
}

func (m *Model) pageDown() {
	m.moveDown(m.visibleRecords / 2)
}

func (m *Model) pageUp() {
	m.moveUp(m.visibleRecords / 2)
}

func (m *Model) jumpToStart() {
	m.currentRecord = 0
	m.scrollOffset = 0
	m.message = "Jumped to first record"
}

func (m *Model) jumpToEnd() {
	m.currentRecord = len(m.records) - 1
	if m.currentRecord < 0 {
		m.currentRecord = 0
	}
	m.followCursor()
	m.message = "Jumped to last record"
}

// followCursor keeps currentRecord inside the visible scroll window.
func (m *Model) followCursor() {
	if m.currentRecord < m.scrollOffset {
		m.scrollOffset = m.currentRecord
	} else if m.currentRecord >= m.scrollOffset+m.visibleRecords {
		m.scrollOffset = m.currentRecord - m.visibleRecords + 1
	}
}

// lockCurrent pins count consecutive fields at the cursor as one region.
func (m *Model) lockCurrent(count int) {
	byteOff := m.currentFieldByte()
	f, err := m.reg.Lock(byteOff, m.currentType, count, len(m.currentRecordBytes()))
	if err != nil {
		m.message = err.Error()
		return
	}
	if count > 1 {
		m.message = fmt.Sprintf("Locked %dx%s (%d bytes) at byte %d", count, m.currentType.Name(), f.ByteLength, byteOff)
	} else {
		m.message = fmt.Sprintf("Locked %s at byte %d", m.currentType.Name(), byteOff)
	}
}

func (m *Model) unlockAtCursor() {
	if m.reg.UnlockAt(m.currentFieldByte()) {
		m.message = "Unlocked field"
	} else {
		m.message = "No locked field at cursor"
	}
}

// openFile replaces the record set from a file in the engine's framing
// format. Locked fields survive so a preset can be reapplied to new data;
// the cursor, scroll, and alignment reset.
func (m *Model) openFile(path string) (int, error) {
	records, err := record.ReadFile(path, m.format)
	if err != nil {
		return 0, err
	}
	m.records = records
	m.currentRecord = 0
	m.scrollOffset = 0
	m.fieldOffset = 0
	m.currentField = 0
	if m.frequencyMode {
		m.freq = analysis.Compute(m.records)
	}
	return len(records), nil
}

// Records exposes the loaded record set.
func (m *Model) Records() [][]byte {
	return m.records
}

// Locked exposes the locked-field set, sorted by offset.
func (m *Model) Locked() []field.LockedField {
	return m.reg.Fields()
}

// Message is the current transient status message.
func (m *Model) Message() string {
	return m.message
}
