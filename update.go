package main

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"geartrain/internal/gear"
	"geartrain/internal/render"
	"geartrain/internal/workspace"
)

func (m model) Init() tea.Cmd {
	// A scenario can start solved; the first observation counts as the first frame.
	return m.observeGoal()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case frameMsg:
		if !m.driver.Frame(msg.gen) {
			return m, nil
		}
		return m, tea.Batch(m.scheduleFrame(msg.gen), m.observeGoal())

	case bannerMsg:
		return m, nil

	case tea.MouseMsg:
		if msg.Type != tea.MouseLeft {
			return m, nil
		}
		if col, row, ok := m.cellAt(msg.X, msg.Y); ok {
			m.cursorCol, m.cursorRow = col, row
		}
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return m.quit()
		}
		if m.help {
			switch key {
			case "esc", "q", "?":
				m.help = false
			}
			return m, nil
		}
		if m.mode == ModeConfirm {
			return m.handleConfirm(key)
		}
		m.errorMessage = ""
		m.successMessage = ""
		return m.handleKey(key)
	}
	return m, nil
}

func (m model) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "h", "j", "k", "l", "left", "down", "up", "right",
		"H", "J", "K", "L", "shift+left", "shift+down", "shift+up", "shift+right":
		m.handleCursorMove(key)
		return m, nil

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		n, _ := strconv.Atoi(key)
		if sizes := m.workspace.Options().GearSizes; n <= len(sizes) {
			m.sizeIndex = n - 1
		}
		return m, nil

	case "a", "enter":
		m.placeGear()
		return m, m.observeGoal()

	case "d", "x":
		g := m.workspace.GearAt(m.cursorCol, m.cursorRow)
		switch {
		case g == nil:
			m.errorMessage = "No gear here"
		case !m.workspace.Options().AllowRemove:
			m.errorMessage = "Removing gears is turned off for this challenge"
		case m.config.Confirmations:
			m.mode = ModeConfirm
			m.confirmAction = ConfirmRemoveGear
			m.confirmGearID = g.ID
		default:
			m.removeGear(g.ID)
		}
		return m, m.observeGoal()

	case "D":
		m.setDriver()
		return m, m.observeGoal()

	case " ", "p":
		gen, schedule := m.driver.Toggle()
		m.logger.Debug("animation", zap.Stringer("state", m.driver.State()), zap.Uint64("generation", gen))
		if schedule {
			return m, m.scheduleFrame(gen)
		}
		return m, nil

	case "[":
		m.driver.RotateBy(-rotateStep)
		return m, nil
	case "]":
		m.driver.RotateBy(rotateStep)
		return m, nil
	case "0":
		m.driver.Stop()
		m.driver.SetAngle(0)
		return m, nil

	case "t":
		m.showTeeth = !m.showTeeth
	case "r":
		m.showRatio = !m.showRatio
	case "v":
		m.showDirection = !m.showDirection
	case "T":
		m.theme = render.NextTheme(m.theme.Name)
		m.successMessage = "Theme: " + m.theme.Name

	case "u":
		if !m.undo() {
			m.errorMessage = "Nothing to undo"
		}
		return m, m.observeGoal()
	case "U":
		if !m.redo() {
			m.errorMessage = "Nothing to redo"
		}
		return m, m.observeGoal()

	case "y":
		if err := m.copyReport(); err != nil {
			m.errorMessage = fmt.Sprintf("Clipboard unavailable: %v", err)
		} else {
			m.successMessage = "Chain report copied"
		}
	case "s":
		m.saveSnapshot()
	case "S":
		m.savePNG()

	case "?":
		m.help = true

	case "q":
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m.quit()

	case "esc":
		m.mode = ModeNormal
	}
	return m, nil
}

func (m model) handleConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return m.quit()
		case ConfirmRemoveGear:
			m.removeGear(m.confirmGearID)
			m.confirmGearID = gear.NoGear
			return m, m.observeGoal()
		}
	case "n", "N", "esc":
		m.mode = ModeNormal
		m.confirmGearID = gear.NoGear
	}
	return m, nil
}

// quit stops playback first so a frame still in flight finds a stale generation.
func (m model) quit() (tea.Model, tea.Cmd) {
	m.driver.Stop()
	m.logger.Info("workbench closed", zap.Int("gears", m.workspace.Len()))
	return m, tea.Quit
}

func (m *model) placeGear() {
	teeth := m.selectedTeeth()
	g, err := m.workspace.Place(m.cursorCol, m.cursorRow, teeth)
	if err != nil {
		m.errorMessage = workspace.Advisory(err, m.workspace.Options().MaxGears)
		m.logger.Debug("placement rejected",
			zap.Int("col", m.cursorCol),
			zap.Int("row", m.cursorRow),
			zap.Int("teeth", teeth),
			zap.Error(err))
		return
	}
	m.recordAction(ActionPlaceGear, GearData{Gear: g}, GearData{Gear: g})
	m.logger.Debug("gear placed",
		zap.Int("id", g.ID),
		zap.Int("col", g.Col),
		zap.Int("row", g.Row),
		zap.Int("teeth", g.Teeth),
		zap.Int("chain", m.workspace.Chain().Len()))
}

func (m *model) removeGear(id int) {
	g, ok := m.workspace.Remove(id)
	if !ok {
		return
	}
	m.recordAction(ActionRemoveGear, GearData{Gear: g}, GearData{Gear: g})
	m.logger.Debug("gear removed", zap.Int("id", g.ID), zap.Int("driver", m.workspace.Driver()))
}

func (m *model) setDriver() {
	g := m.workspace.GearAt(m.cursorCol, m.cursorRow)
	if g == nil {
		m.errorMessage = "No gear here"
		return
	}
	from, to := m.workspace.Driver(), g.ID
	if from == to || !m.workspace.SetDriver(to) {
		return
	}
	m.recordAction(ActionSetDriver, DriverData{From: from, To: to}, DriverData{From: to, To: from})
	m.logger.Info("driver changed", zap.Int("from", from), zap.Int("to", to))
}
