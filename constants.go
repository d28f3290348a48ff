package main

import "time"

type Mode int

const (
	ModeNormal Mode = iota
	ModeConfirm
)

type ConfirmAction int

const (
	ConfirmRemoveGear ConfirmAction = iota
	ConfirmQuit
)

type ActionType int

const (
	ActionPlaceGear ActionType = iota
	ActionRemoveGear
	ActionSetDriver
)

const (
	defaultFrameInterval = time.Second / 60
	rotateStep           = 45.0
	successBanner        = "Nice! Target ratio reached"
)
