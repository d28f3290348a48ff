package main

import (
	"fmt"
	"strings"

	"geartrain/internal/gear"
	"geartrain/internal/goal"
	"geartrain/internal/render"
)

// headerHeight is the number of lines above the grid; mouse hit-testing depends on it.
const headerHeight = 1

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	var result strings.Builder
	result.WriteString(m.theme.Header.Render(m.headerLine()))
	result.WriteString("\n")
	result.WriteString(render.Styled(m.renderView(true), m.theme))
	result.WriteString("\n")
	result.WriteString(m.statusLine())
	return result.String()
}

func (m model) headerLine() string {
	title := m.name
	if title == "" {
		title = "geartrain"
	}
	return fmt.Sprintf("%s | next gear: %d teeth | %s at %.0f°", title, m.selectedTeeth(), m.driver.State(), m.driver.Angle())
}

func (m model) statusLine() string {
	if m.mode == ModeConfirm {
		var message string
		switch m.confirmAction {
		case ConfirmRemoveGear:
			message = fmt.Sprintf("Remove gear %d? (y/n)", m.confirmGearID)
		case ConfirmQuit:
			message = "Quit geartrain? (y/n)"
		}
		return m.theme.Advisory.Render("CONFIRM | " + message)
	}

	chain := m.workspace.Chain()
	parts := []string{fmt.Sprintf("Gears: %d/%d", m.workspace.Len(), m.workspace.Options().MaxGears)}
	if overall, ok := chain.OverallRatio(); ok {
		parts = append(parts, fmt.Sprintf("Ratio: %.2f", overall))
	} else {
		parts = append(parts, "Ratio: -")
	}
	if m.target != nil {
		target := fmt.Sprintf("Target: %.2f", *m.target)
		if m.targetGear != gear.NoGear {
			if measured, ok := goal.Measure(chain, m.targetGear); ok {
				target = fmt.Sprintf("Target: %.2f at gear %d (now %.2f)", *m.target, m.targetGear, measured)
			} else {
				target = fmt.Sprintf("Target: %.2f at gear %d", *m.target, m.targetGear)
			}
		}
		parts = append(parts, target)
	}
	status := m.theme.Status.Render(strings.Join(parts, " | "))

	switch {
	case m.goal.Showing():
		status += " | " + m.theme.Success.Render(successBanner)
	case m.errorMessage != "":
		status += " | " + m.theme.Advisory.Render(m.errorMessage)
	case m.successMessage != "":
		status += " | " + m.theme.Success.Render(m.successMessage)
	default:
		status += " | ? for help | q to quit"
	}
	return status
}

var helpLines = []string{
	"geartrain help",
	"==============",
	"",
	"Navigation:",
	"-----------",
	"  h/←/j/↓/k/↑/l/→  Move cursor one cell",
	"  Shift+h/j/k/l    Move cursor two cells",
	"  Mouse click      Move cursor to the clicked cell",
	"",
	"Gears:",
	"------",
	"  1-9              Pick a gear size from the size list",
	"  a/Enter          Place a gear of the picked size at the cursor",
	"  d/x              Remove the gear under the cursor",
	"  D                Make the gear under the cursor the driver",
	"",
	"Rotation:",
	"---------",
	"  Space/p          Play or pause the animation",
	"  [ / ]            Turn the driver 45° back / forward",
	"  0                Stop and reset the driver to 0°",
	"",
	"Display:",
	"--------",
	"  t / r / v        Toggle teeth / ratio / direction labels",
	"  T                Cycle colour theme",
	"",
	"Files:",
	"------",
	"  y                Copy the chain report to the clipboard",
	"  s                Save a text snapshot of the grid and report",
	"  S                Export the workspace as a PNG image",
	"",
	"General:",
	"  u                Undo last action",
	"  U                Redo last undone action",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
	"",
	"Cells: [|] driver  (/) driven  (·) idle  == meshed neighbour",
	"       x0.50 speed ratio, ↻ clockwise, ↺ counter-clockwise",
}

func (m model) helpView() string {
	visibleHeight := m.height - 1
	if visibleHeight < 1 || visibleHeight > len(helpLines) {
		visibleHeight = len(helpLines)
	}
	result := strings.Join(helpLines[:visibleHeight], "\n")
	result += "\n" + m.theme.Status.Render("Help | Esc or ? to close")
	return result
}
