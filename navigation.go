package main

import "geartrain/internal/render"

func (m *model) handleCursorMove(key string) {
	speed := m.getMoveSpeed(key)
	switch key {
	case "h", "left", "H", "shift+left":
		m.cursorCol -= speed
	case "l", "right", "L", "shift+right":
		m.cursorCol += speed
	case "k", "up", "K", "shift+up":
		m.cursorRow -= speed
	case "j", "down", "J", "shift+down":
		m.cursorRow += speed
	}
	m.ensureCursorInBounds()
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

func (m *model) ensureCursorInBounds() {
	opts := m.workspace.Options()
	if m.cursorCol >= opts.Cols {
		m.cursorCol = opts.Cols - 1
	}
	if m.cursorRow >= opts.Rows {
		m.cursorRow = opts.Rows - 1
	}
	if m.cursorCol < 0 {
		m.cursorCol = 0
	}
	if m.cursorRow < 0 {
		m.cursorRow = 0
	}
}

// cellAt maps a mouse position to a grid cell. The grid starts below the header line.
func (m *model) cellAt(x, y int) (col, row int, ok bool) {
	y -= headerHeight
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/render.CellWidth, y/render.CellHeight
	opts := m.workspace.Options()
	if col >= opts.Cols || row >= opts.Rows {
		return 0, 0, false
	}
	return col, row, true
}
