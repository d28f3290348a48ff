package workspace

import (
	"errors"
	"fmt"
)

// Placement rejections. None of them change the gear set.
var (
	ErrMaxGears    = errors.New("maximum number of gears reached")
	ErrOccupied    = errors.New("grid cell already has a gear")
	ErrOutOfBounds = errors.New("grid cell is outside the workspace")
	ErrAddDisabled = errors.New("adding gears is disabled")
)

// Advisory turns a placement error into the short message shown on the status line.
func Advisory(err error, maxGears int) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMaxGears):
		return fmt.Sprintf("Maximum %d gears allowed", maxGears)
	case errors.Is(err, ErrOccupied):
		return "That spot already has a gear"
	case errors.Is(err, ErrOutOfBounds):
		return "Place gears inside the grid"
	case errors.Is(err, ErrAddDisabled):
		return "Adding gears is turned off for this challenge"
	default:
		return err.Error()
	}
}
