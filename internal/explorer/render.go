package explorer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"reclens/internal/analysis"
)

// CellClass names the style bucket of one rendered field cell, in
// precedence order: overflow beats cursor beats locked beats frequency
// coloring beats the plain active/dim record styles.
type CellClass int

const (
	ClassDim CellClass = iota
	ClassActive
	ClassFrequency
	ClassLocked
	ClassCursor
	ClassOverflow
	ClassInsufficient
)

// Cell is one drawable field of a record row.
type Cell struct {
	Text  string
	Class CellClass
	// Tier is set when Class is ClassFrequency.
	Tier analysis.Tier
}

// Row is the drawable form of one visible record.
type Row struct {
	RecordIndex int
	Active      bool
	Cells       []Cell
}

// layout is the horizontal geometry shared by BuildRows and View.
type layout struct {
	lineNumWidth  int
	gutterWidth   int
	visibleFields int
	scrollField   int
}

func (m *Model) layout() layout {
	l := layout{lineNumWidth: len(fmt.Sprintf("%d", len(m.records)))}
	if m.showGutter {
		l.gutterWidth = 2
	}
	prefix := l.lineNumWidth + l.gutterWidth + 1

	fieldWidth := m.currentType.DisplayWidth()
	l.visibleFields = (m.width - prefix) / fieldWidth
	if l.visibleFields < 1 {
		l.visibleFields = 1
	}

	// Keep the cursor field roughly centered under horizontal scroll; wrap
	// mode always starts at the first field.
	if !m.wrapMode {
		l.scrollField = m.clampedField() - l.visibleFields/2
		if l.scrollField < 0 {
			l.scrollField = 0
		}
	}
	return l
}

// BuildRows derives the visible grid from the current state. It is a pure
// function of the model: no mutation, so it can be exercised against
// synthetic states without a terminal.
func (m *Model) BuildRows() []Row {
	l := m.layout()
	typeSize := m.currentType.WidthOr1()
	cursorField := m.clampedField()

	var rows []Row
	for idx := m.scrollOffset; idx < len(m.records) && len(rows) < m.visibleRecords; idx++ {
		rec := m.records[idx]
		active := idx == m.currentRecord
		row := Row{RecordIndex: idx, Active: active}

		bytePos := m.fieldOffset + l.scrollField*typeSize
		fieldIdx := l.scrollField
		rendered := 0

		for bytePos+typeSize <= len(rec) && rendered < l.visibleFields {
			isCursor := active && fieldIdx == cursorField

			locked, inLock := m.reg.Covering(bytePos)
			if !m.showLocks {
				inLock = false
			}

			// A field that starts outside every lock but runs into one is
			// flagged instead of decoded: a partial decode across a lock
			// boundary would be garbage.
			overflows := false
			if m.showLocks && !inLock {
				fieldEnd := bytePos + typeSize
				for _, lf := range m.reg.Fields() {
					if bytePos < lf.ByteOffset && fieldEnd > lf.ByteOffset {
						overflows = true
						break
					}
				}
			}

			displayType := m.currentType
			decodeAt := bytePos
			advance := typeSize
			if inLock {
				displayType = locked.DataType
				decodeAt = locked.ByteOffset
				advance = locked.ByteOffset + locked.ByteLength - bytePos
			}

			value := displayType.Decode(rec[decodeAt:])
			cell := Cell{Text: fmt.Sprintf("%*s", displayType.FormatWidth(), value)}

			switch {
			case overflows:
				cell.Class = ClassOverflow
			case isCursor:
				cell.Class = ClassCursor
			case inLock:
				cell.Class = ClassLocked
			case m.frequencyMode && active:
				cell.Class = ClassFrequency
				cell.Tier = m.freq.Tier(bytePos, rec[bytePos])
			case active:
				cell.Class = ClassActive
			default:
				cell.Class = ClassDim
			}

			row.Cells = append(row.Cells, cell)
			bytePos += advance
			fieldIdx++
			rendered++
		}

		// Trailing bytes too few for a complete field. The stored field
		// index, not the clamped one, decides whether the cursor sits here.
		if rendered < l.visibleFields && bytePos < len(rec) && bytePos+typeSize > len(rec) {
			cls := ClassInsufficient
			if active && fieldIdx == m.currentField {
				cls = ClassCursor
			}
			row.Cells = append(row.Cells, Cell{
				Text:  fmt.Sprintf("?[%d]", len(rec)-bytePos),
				Class: cls,
			})
		}

		rows = append(rows, row)
	}
	return rows
}

func (m *Model) cellStyle(c Cell) lipgloss.Style {
	switch c.Class {
	case ClassOverflow:
		return m.styles.Overflow
	case ClassCursor:
		return m.styles.Cursor
	case ClassLocked:
		return m.styles.Locked
	case ClassInsufficient:
		return m.styles.Insufficient
	case ClassFrequency:
		switch c.Tier {
		case analysis.TierConstant:
			return m.styles.FreqConstant
		case analysis.TierHigh:
			return m.styles.FreqHigh
		case analysis.TierMedium:
			return m.styles.FreqMedium
		case analysis.TierLow:
			return m.styles.FreqLow
		case analysis.TierEntropy:
			return m.styles.FreqEntropy
		default:
			return m.styles.FreqNoData
		}
	case ClassActive:
		return m.styles.ActiveRecord
	default:
		return m.styles.DimRecord
	}
}

func (m *Model) renderHeader() string {
	sep := m.styles.Separator.Render("│")
	parts := []string{
		m.styles.HeaderIndex.Render(fmt.Sprintf(" %d/%d ", m.currentRecord+1, len(m.records))),
		sep,
		m.styles.HeaderType.Render(fmt.Sprintf(" %s ", m.currentType.Name())),
		sep,
		m.styles.HeaderField.Render(fmt.Sprintf(" field:%d +%d ", m.clampedField(), m.fieldOffset)),
	}

	if m.currentPreset != "" {
		parts = append(parts, sep, m.styles.HeaderPreset.Render(fmt.Sprintf(" %s ", m.currentPreset)))
	}
	if m.reg.Len() > 0 {
		parts = append(parts, sep, m.styles.HeaderLocks.Render(fmt.Sprintf(" %dL ", m.reg.Len())))
	}

	var modes []string
	if m.frequencyMode {
		modes = append(modes, "freq")
	}
	if m.wrapMode {
		modes = append(modes, "wrap")
	}
	if !m.showLocks {
		modes = append(modes, "~lock")
	}
	if !m.showGutter {
		modes = append(modes, "~gut")
	}
	if len(modes) > 0 {
		parts = append(parts, sep, m.styles.HeaderModes.Render(fmt.Sprintf(" %s ", strings.Join(modes, " "))))
	}

	return strings.Join(parts, "")
}

func (m *Model) renderStatus() string {
	if m.commandMode {
		return m.styles.CommandPrompt.Render(m.commandInput.View())
	}

	left := m.styles.StatusByte.Render(fmt.Sprintf(" byte:%d ", m.currentFieldByte()))
	leftLen := len(fmt.Sprintf(" byte:%d ", m.currentFieldByte()))
	if rec := m.currentRecordBytes(); rec != nil {
		s := fmt.Sprintf("len:%d ", len(rec))
		left += m.styles.StatusLen.Render(s)
		leftLen += len(s)
	}

	if m.message != "" && leftLen+len(m.message)+2 < m.width {
		padding := m.width - leftLen - len(m.message) - 1
		left += strings.Repeat(" ", padding) + m.styles.Message.Render(m.message)
	}
	return left
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	l := m.layout()
	rows := m.BuildRows()
	for _, row := range rows {
		numStyle := m.styles.LineNumDim
		if row.Active {
			numStyle = m.styles.LineNumActive
		}
		b.WriteString(numStyle.Render(fmt.Sprintf("%*d", l.lineNumWidth, row.RecordIndex)))
		b.WriteString(strings.Repeat(" ", l.gutterWidth+1))

		for _, cell := range row.Cells {
			b.WriteString(m.cellStyle(cell).Render(cell.Text))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	// Pad so the status line sits at the bottom of the window.
	for i := len(rows); i < m.visibleRecords; i++ {
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatus())
	return b.String()
}
