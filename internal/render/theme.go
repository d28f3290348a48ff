package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme only changes colours; kinematics never read it.
type Theme struct {
	Name     string
	Empty    lipgloss.Style
	Idle     lipgloss.Style
	Driver   lipgloss.Style
	Cursor   lipgloss.Style
	Header   lipgloss.Style
	Status   lipgloss.Style
	Advisory lipgloss.Style
	Success  lipgloss.Style
	// GearColors tints chain gears with their own colour.
	GearColors bool
}

var Themes = []Theme{
	{
		Name:       "classic",
		Empty:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Idle:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Driver:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Cursor:     lipgloss.NewStyle().Foreground(lipgloss.Color("231")),
		Header:     lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
		Status:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Advisory:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Success:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		GearColors: true,
	},
	{
		Name:       "neon",
		Empty:      lipgloss.NewStyle().Foreground(lipgloss.Color("57")),
		Idle:       lipgloss.NewStyle().Foreground(lipgloss.Color("99")),
		Driver:     lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true),
		Cursor:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		Header:     lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true),
		Status:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
		Advisory:   lipgloss.NewStyle().Foreground(lipgloss.Color("197")).Bold(true),
		Success:    lipgloss.NewStyle().Foreground(lipgloss.Color("118")).Bold(true).Blink(true),
		GearColors: true,
	},
	{
		Name:     "mono",
		Empty:    lipgloss.NewStyle().Faint(true),
		Idle:     lipgloss.NewStyle().Faint(true),
		Driver:   lipgloss.NewStyle().Bold(true),
		Cursor:   lipgloss.NewStyle().Reverse(true),
		Header:   lipgloss.NewStyle().Bold(true).Underline(true),
		Status:   lipgloss.NewStyle(),
		Advisory: lipgloss.NewStyle().Bold(true),
		Success:  lipgloss.NewStyle().Bold(true).Reverse(true),
	},
}

// ThemeByName falls back to the first theme for unknown names.
func ThemeByName(name string) Theme {
	for _, t := range Themes {
		if strings.EqualFold(t.Name, name) {
			return t
		}
	}
	return Themes[0]
}

// NextTheme cycles through Themes.
func NextTheme(current string) Theme {
	for i, t := range Themes {
		if t.Name == current {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// Styled renders the grid with the theme's colours.
func Styled(v View, th Theme) string {
	var rows []string
	for _, row := range Cells(v) {
		blocks := make([]string, len(row))
		for i, cell := range row {
			blocks[i] = th.cellStyle(cell).Render(strings.Join(cell.Lines[:], "\n"))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, blocks...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (th Theme) cellStyle(c Cell) lipgloss.Style {
	var s lipgloss.Style
	switch c.Kind {
	case CellDriver:
		s = th.Driver
	case CellDriven:
		s = lipgloss.NewStyle()
		if th.GearColors && c.Gear != nil && c.Gear.Color != "" {
			s = s.Foreground(lipgloss.Color(c.Gear.Color))
		}
	case CellIdle:
		s = th.Idle
	default:
		s = th.Empty
	}
	if c.Cursor {
		s = s.Inherit(th.Cursor)
	}
	return s
}
