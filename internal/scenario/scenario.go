package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"geartrain/internal/gear"
	"geartrain/internal/workspace"
)

// Scenario is one gear-train exercise: the workspace it starts from and, optionally,
// the ratio the learner is asked to build.
type Scenario struct {
	// Name is shown in the header.
	Name string `yaml:"name"`

	Description string `yaml:"description,omitempty"`

	// GearSizes are the tooth counts offered by the size picker, in picker order.
	GearSizes []int `yaml:"gear_sizes,omitempty"`

	Grid  *Grid  `yaml:"grid,omitempty"`
	Teeth *Range `yaml:"teeth,omitempty"`

	// MaxGears caps placement. Zero keeps the default.
	MaxGears int `yaml:"max_gears,omitempty"`

	AllowAdd    *bool `yaml:"allow_add,omitempty"`
	AllowRemove *bool `yaml:"allow_remove,omitempty"`

	// Driver selects the driver among Gears by id; overrides per-gear driver flags.
	Driver *int `yaml:"driver,omitempty"`

	TargetRatio *float64 `yaml:"target_ratio,omitempty"`

	// TargetGear names the gear whose ratio is checked in a branching train. Unset
	// means the chain's overall ratio.
	TargetGear *int `yaml:"target_gear,omitempty"`

	// Theme is cosmetic and never affects kinematics.
	Theme string `yaml:"theme,omitempty"`

	Display  Display      `yaml:"display,omitempty"`
	Geometry *GeometrySet `yaml:"geometry,omitempty"`
	Gears    []GearSpec   `yaml:"gears,omitempty"`
}

type Grid struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Display toggles the per-gear labels. Unset toggles default to on for teeth and ratio
// and off for direction.
type Display struct {
	Teeth     *bool `yaml:"teeth,omitempty"`
	Ratio     *bool `yaml:"ratio,omitempty"`
	Direction *bool `yaml:"direction,omitempty"`
}

type GeometrySet struct {
	CellSize  float64 `yaml:"cell_size"`
	ToothSize float64 `yaml:"tooth_size"`
}

type GearSpec struct {
	ID     int    `yaml:"id,omitempty"`
	Col    int    `yaml:"col"`
	Row    int    `yaml:"row"`
	Teeth  int    `yaml:"teeth"`
	Color  string `yaml:"color,omitempty"`
	Driver bool   `yaml:"driver,omitempty"`
}

var (
	ErrBadTarget   = errors.New("target_ratio must be positive")
	ErrBadGearSize = errors.New("gear sizes must be positive")
	ErrBadGrid     = errors.New("grid must have at least one column and one row")
	ErrBadGeometry = errors.New("geometry sizes must be positive")
	ErrBadTeeth    = errors.New("teeth range needs 1 <= min <= max")
	ErrBadGearSpec = errors.New("gear teeth must not be negative")
)

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scenario, rejecting unknown keys.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) Validate() error {
	if s.TargetRatio != nil && *s.TargetRatio <= 0 {
		return ErrBadTarget
	}
	for _, n := range s.GearSizes {
		if n <= 0 {
			return fmt.Errorf("%w: %d", ErrBadGearSize, n)
		}
	}
	if s.Grid != nil && (s.Grid.Cols <= 0 || s.Grid.Rows <= 0) {
		return ErrBadGrid
	}
	if s.Geometry != nil && (s.Geometry.CellSize <= 0 || s.Geometry.ToothSize <= 0) {
		return ErrBadGeometry
	}
	if s.Teeth != nil && (s.Teeth.Min < 1 || s.Teeth.Min > s.Teeth.Max) {
		return fmt.Errorf("%w: got %d..%d", ErrBadTeeth, s.Teeth.Min, s.Teeth.Max)
	}
	// Omitted teeth decode as 0 and are clamped up to the minimum.
	for _, g := range s.Gears {
		if g.Teeth < 0 {
			return fmt.Errorf("%w: gear %d has %d", ErrBadGearSpec, g.ID, g.Teeth)
		}
	}
	return nil
}

// Options overlays the scenario on the workspace defaults. maxGears is the configured
// cap used when the scenario sets none.
func (s *Scenario) Options(maxGears int) workspace.Options {
	opts := workspace.DefaultOptions()
	if maxGears > 0 {
		opts.MaxGears = maxGears
	}
	if len(s.GearSizes) > 0 {
		opts.GearSizes = append([]int(nil), s.GearSizes...)
	}
	if s.Grid != nil {
		opts.Cols, opts.Rows = s.Grid.Cols, s.Grid.Rows
	}
	if s.Teeth != nil {
		opts.MinTeeth, opts.MaxTeeth = s.Teeth.Min, s.Teeth.Max
	}
	if s.MaxGears > 0 {
		opts.MaxGears = s.MaxGears
	}
	if s.AllowAdd != nil {
		opts.AllowAdd = *s.AllowAdd
	}
	if s.AllowRemove != nil {
		opts.AllowRemove = *s.AllowRemove
	}
	if s.Geometry != nil {
		opts.Geometry = gear.Geometry{CellSize: s.Geometry.CellSize, ToothSize: s.Geometry.ToothSize}
	}
	return opts
}

// Workspace builds the starting workspace.
func (s *Scenario) Workspace(maxGears int) *workspace.Workspace {
	gears := make([]gear.Gear, 0, len(s.Gears))
	for _, g := range s.Gears {
		gears = append(gears, gear.Gear{ID: g.ID, Col: g.Col, Row: g.Row, Teeth: g.Teeth, Color: g.Color, Driver: g.Driver})
	}
	driver := gear.NoGear
	if s.Driver != nil {
		driver = *s.Driver
	}
	return workspace.New(s.Options(maxGears), gears, driver)
}

// TargetGearID is the gear the goal measures, or gear.NoGear for the overall ratio.
func (s *Scenario) TargetGearID() int {
	if s.TargetGear == nil {
		return gear.NoGear
	}
	return *s.TargetGear
}

func (d Display) ShowTeeth() bool { return d.Teeth == nil || *d.Teeth }
func (d Display) ShowRatio() bool { return d.Ratio == nil || *d.Ratio }
func (d Display) ShowDirection() bool { return d.Direction != nil && *d.Direction }
