package render

import (
	"fmt"
	"math"
	"strings"

	"geartrain/internal/gear"
)

// Each grid cell is drawn as a CellWidth x CellHeight block of runes.
const (
	CellWidth  = 7
	CellHeight = 3
)

// NoCursor hides the cursor.
const NoCursor = -1

// View is everything needed to draw one frame of the workspace.
type View struct {
	Gears  []gear.Gear
	Chain  gear.Chain
	Angles map[int]float64
	Mesh   *gear.MeshGraph

	Cols, Rows int

	CursorCol, CursorRow int

	ShowTeeth     bool
	ShowRatio     bool
	ShowDirection bool
}

// CellKind tells the styler how to colour a cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellDriver
	CellDriven // in the chain
	CellIdle   // placed but not reachable from the driver
)

type Cell struct {
	Kind   CellKind
	Gear   *gear.Gear
	Lines  [CellHeight]string
	Cursor bool
}

// spokes index by 45° step, clockwise from twelve o'clock.
var spokes = []rune{'|', '/', '-', '\\'}

// Spoke picks the glyph for an angle in degrees.
func Spoke(angle float64) rune {
	step := int(math.Round(gear.NormalizeDegrees(angle)/45)) % 8
	return spokes[step%4]
}

// Cells lays out the grid row by row.
func Cells(v View) [][]Cell {
	byCell := make(map[[2]int]gear.Gear, len(v.Gears))
	for _, g := range v.Gears {
		byCell[[2]int{g.Col, g.Row}] = g
	}

	rows := make([][]Cell, v.Rows)
	for r := 0; r < v.Rows; r++ {
		rows[r] = make([]Cell, v.Cols)
		for c := 0; c < v.Cols; c++ {
			cell := Cell{Cursor: c == v.CursorCol && r == v.CursorRow}
			if g, ok := byCell[[2]int{c, r}]; ok {
				g := g
				cell.Gear = &g
				cell.Kind, cell.Lines = gearCell(v, g, byCell)
			} else {
				cell.Lines = [CellHeight]string{blank(), centered("·"), blank()}
			}
			if cell.Cursor {
				cell.Lines = withCursor(cell.Lines)
			}
			rows[r][c] = cell
		}
	}
	return rows
}

// Grid renders the workspace as plain text, one string per terminal row.
func Grid(v View) []string {
	var out []string
	for _, row := range Cells(v) {
		for line := 0; line < CellHeight; line++ {
			var b strings.Builder
			for _, cell := range row {
				b.WriteString(cell.Lines[line])
			}
			out = append(out, b.String())
		}
	}
	return out
}

func gearCell(v View, g gear.Gear, byCell map[[2]int]gear.Gear) (CellKind, [CellHeight]string) {
	entry, inChain := v.Chain.Get(g.ID)
	kind := CellIdle
	switch {
	case inChain && g.Driver:
		kind = CellDriver
	case inChain:
		kind = CellDriven
	}

	lb, rb := '(', ')'
	if g.Driver {
		lb, rb = '[', ']'
	}
	spoke := '·'
	if inChain {
		spoke = Spoke(v.Angles[g.ID])
	}
	left, right := ' ', ' '
	if v.Mesh != nil {
		if n, ok := byCell[[2]int{g.Col - 1, g.Row}]; ok && v.Mesh.Meshed(g.ID, n.ID) {
			left = '='
		}
		if n, ok := byCell[[2]int{g.Col + 1, g.Row}]; ok && v.Mesh.Meshed(g.ID, n.ID) {
			right = '='
		}
	}
	top := fmt.Sprintf("%c %c%c%c %c", left, lb, spoke, rb, right)

	mid := ""
	if v.ShowTeeth {
		mid = fmt.Sprintf("%dt", g.Teeth)
	}

	bottom := ""
	if inChain {
		if v.ShowRatio {
			bottom = "x" + formatRatio(entry.SpeedRatio)
		}
		if v.ShowDirection {
			bottom += string(directionGlyph(entry.Direction))
		}
	} else if v.ShowRatio || v.ShowDirection {
		bottom = "--"
	}
	return kind, [CellHeight]string{fit(top), centered(mid), centered(bottom)}
}

func directionGlyph(dir int) rune {
	if dir < 0 {
		return '↺'
	}
	return '↻'
}

// formatRatio keeps ratios inside a cell: 0.50, 1.33, 12.0, 150.
func formatRatio(r float64) string {
	switch {
	case r >= 100:
		return fmt.Sprintf("%.0f", r)
	case r >= 10:
		return fmt.Sprintf("%.1f", r)
	default:
		return fmt.Sprintf("%.2f", r)
	}
}

func withCursor(lines [CellHeight]string) [CellHeight]string {
	top := []rune(lines[0])
	bottom := []rune(lines[CellHeight-1])
	top[0], top[CellWidth-1] = '┌', '┐'
	bottom[0], bottom[CellWidth-1] = '└', '┘'
	lines[0] = string(top)
	lines[CellHeight-1] = string(bottom)
	return lines
}

func blank() string { return strings.Repeat(" ", CellWidth) }

func centered(s string) string {
	n := len([]rune(s))
	if n >= CellWidth {
		return fit(s)
	}
	left := (CellWidth - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", CellWidth-n-left)
}

func fit(s string) string {
	r := []rune(s)
	if len(r) > CellWidth {
		return string(r[:CellWidth])
	}
	return s + strings.Repeat(" ", CellWidth-len(r))
}
