package main

import (
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"geartrain/internal/anim"
	"geartrain/internal/gear"
	"geartrain/internal/goal"
	"geartrain/internal/render"
	"geartrain/internal/report"
	"geartrain/internal/scenario"
)

// bannerMsg re-renders once the success banner has expired.
type bannerMsg struct{}

func newModel(sc *scenario.Scenario, config *Config, logger *zap.Logger) model {
	if sc == nil {
		sc = &scenario.Scenario{}
	}
	if config == nil {
		config = defaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	theme := config.Theme
	if sc.Theme != "" {
		theme = sc.Theme
	}
	frameInterval := defaultFrameInterval
	if config.FrameMS > 0 {
		frameInterval = time.Duration(config.FrameMS) * time.Millisecond
	}

	m := model{
		name:          sc.Name,
		workspace:     sc.Workspace(config.MaxGears),
		driver:        anim.NewDriver(config.StepDegrees),
		goal:          goal.NewEvaluator(goal.DefaultDisplay, nil),
		target:        sc.TargetRatio,
		targetGear:    sc.TargetGearID(),
		showTeeth:     sc.Display.ShowTeeth(),
		showRatio:     sc.Display.ShowRatio(),
		showDirection: sc.Display.ShowDirection(),
		theme:         render.ThemeByName(theme),
		confirmGearID: gear.NoGear,
		frameInterval: frameInterval,
		config:        config,
		logger:        logger,
	}
	return m
}

func (m *model) selectedTeeth() int {
	sizes := m.workspace.Options().GearSizes
	if len(sizes) == 0 {
		return m.workspace.Options().MinTeeth
	}
	if m.sizeIndex >= len(sizes) {
		m.sizeIndex = len(sizes) - 1
	}
	return sizes[m.sizeIndex]
}

func (m *model) renderView(withCursor bool) render.View {
	chain := m.workspace.Chain()
	opts := m.workspace.Options()
	v := render.View{
		Gears:         m.workspace.Gears(),
		Chain:         chain,
		Angles:        gear.ComputeAngles(chain, m.driver.Angle()),
		Mesh:          m.workspace.MeshGraph(),
		Cols:          opts.Cols,
		Rows:          opts.Rows,
		CursorCol:     render.NoCursor,
		CursorRow:     render.NoCursor,
		ShowTeeth:     m.showTeeth,
		ShowRatio:     m.showRatio,
		ShowDirection: m.showDirection,
	}
	if withCursor {
		v.CursorCol, v.CursorRow = m.cursorCol, m.cursorRow
	}
	return v
}

func (m *model) buildReport() report.Report {
	return report.Build(m.name, m.workspace, m.driver.Angle(), m.target, m.targetGear)
}

func (m *model) copyReport() error {
	return clipboard.WriteAll(m.buildReport().Text())
}

// observeGoal feeds the measured ratio to the goal evaluator. On the rising edge it
// schedules a redraw for when the success banner expires.
func (m *model) observeGoal() tea.Cmd {
	measured, ok := goal.Measure(m.workspace.Chain(), m.targetGear)
	if !m.goal.ObserveRatio(measured, ok, m.target) {
		return nil
	}
	m.logger.Info("target ratio reached",
		zap.Float64("ratio", measured),
		zap.Float64("target", *m.target),
		zap.Int("gears", m.workspace.Len()))
	return tea.Tick(m.goal.Display, func(time.Time) tea.Msg { return bannerMsg{} })
}

// scheduleFrame arms the next animation frame for generation gen.
func (m *model) scheduleFrame(gen uint64) tea.Cmd {
	return tea.Tick(m.frameInterval, func(time.Time) tea.Msg { return frameMsg{gen: gen} })
}
