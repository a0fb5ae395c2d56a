package config

import "github.com/charmbracelet/lipgloss"

// Styles is the render style table. One entry per cell/decoration class so
// the render model stays free of color decisions.
type Styles struct {
	// Cell classes, highest precedence first.
	Overflow     lipgloss.Style
	Cursor       lipgloss.Style
	Locked       lipgloss.Style
	Insufficient lipgloss.Style
	ActiveRecord lipgloss.Style
	DimRecord    lipgloss.Style

	// Frequency tiers, constant-like down to high-entropy.
	FreqConstant lipgloss.Style
	FreqHigh     lipgloss.Style
	FreqMedium   lipgloss.Style
	FreqLow      lipgloss.Style
	FreqEntropy  lipgloss.Style
	FreqNoData   lipgloss.Style

	// Chrome.
	LineNumActive lipgloss.Style
	LineNumDim    lipgloss.Style
	Separator     lipgloss.Style
	HeaderIndex   lipgloss.Style
	HeaderType    lipgloss.Style
	HeaderField   lipgloss.Style
	HeaderPreset  lipgloss.Style
	HeaderLocks   lipgloss.Style
	HeaderModes   lipgloss.Style
	StatusByte    lipgloss.Style
	StatusLen     lipgloss.Style
	Message       lipgloss.Style
	CommandPrompt lipgloss.Style
}

func NewStyles() *Styles {
	dim := lipgloss.Color("#646464")
	return &Styles{
		Overflow:     lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")),
		Cursor:       lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("3")),
		Locked:       lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6")),
		Insufficient: lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")),
		ActiveRecord: lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		DimRecord:    lipgloss.NewStyle().Foreground(dim),

		FreqConstant: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		FreqHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		FreqMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		FreqLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		FreqEntropy:  lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true),
		FreqNoData:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		LineNumActive: lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		LineNumDim:    lipgloss.NewStyle().Foreground(dim),
		Separator:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		HeaderIndex:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		HeaderType:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		HeaderField:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		HeaderPreset:  lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		HeaderLocks:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		HeaderModes:   lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		StatusByte:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		StatusLen:     lipgloss.NewStyle().Foreground(lipgloss.Color("#969696")),
		Message:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		CommandPrompt: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	}
}
