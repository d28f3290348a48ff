package main

import (
	"time"

	"go.uber.org/zap"

	"geartrain/internal/anim"
	"geartrain/internal/gear"
	"geartrain/internal/goal"
	"geartrain/internal/render"
	"geartrain/internal/workspace"
)

type model struct {
	width         int
	height        int
	cursorCol     int
	cursorRow     int
	mode          Mode
	help          bool
	confirmAction ConfirmAction
	confirmGearID int

	name       string
	workspace  *workspace.Workspace
	driver     *anim.Driver
	goal       *goal.Evaluator
	target     *float64
	targetGear int
	sizeIndex  int

	showTeeth     bool
	showRatio     bool
	showDirection bool
	theme         render.Theme

	undoStack []Action
	redoStack []Action

	errorMessage   string
	successMessage string
	frameInterval  time.Duration

	config *Config
	logger *zap.Logger
}

// frameMsg carries the driver generation it was scheduled under.
type frameMsg struct {
	gen uint64
}

type Action struct {
	Type    ActionType
	Data    interface{}
	Inverse interface{}
}

// GearData is used for both placement and removal; undo and redo swap the roles.
type GearData struct {
	Gear gear.Gear
}

type DriverData struct {
	From int
	To   int
}
