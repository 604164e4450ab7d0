package game

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MinSize      = 3
	MaxSize      = 20
	MinWinLength = 3
)

// ErrConfiguration is the sentinel every ConfigurationError unwraps to
var ErrConfiguration = errors.New("invalid configuration")

// Topology tells whether columns wrap around horizontally
type Topology uint8

const (
	Rectangle Topology = iota
	Cylinder
)

func (t Topology) String() string {
	switch t {
	case Rectangle:
		return "rectangle"
	case Cylinder:
		return "cylinder"
	}
	return fmt.Sprintf("topology(%d)", uint8(t))
}

// ParseTopology accepts the names produced by String, case-insensitively
func ParseTopology(s string) (Topology, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rectangle", "rect", "":
		return Rectangle, nil
	case "cylinder", "cyl":
		return Cylinder, nil
	}
	return 0, &ConfigurationError{Field: "topology", Reason: fmt.Sprintf("unknown topology %q", s)}
}

// ConfigurationError reports the first invariant a configuration violates
type ConfigurationError struct {
	Field  string
	Value  int
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %d", e.Field, e.Value)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// Config holds the board dimensions, the win length and the topology; treat it as immutable once validated
type Config struct {
	Width     int
	Height    int
	WinLength int
	Topology  Topology
}

// DefaultConfig is the classic 7x6 connect four
func DefaultConfig() Config {
	return Config{Width: 7, Height: 6, WinLength: 4, Topology: Rectangle}
}

// NewConfig builds and validates a configuration
func NewConfig(width, height, winLength int, topo Topology) (Config, error) {
	c := Config{Width: width, Height: height, WinLength: winLength, Topology: topo}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the dimension, win length and topology invariants
func (c Config) Validate() error {
	if c.Width < MinSize || c.Width > MaxSize {
		return &ConfigurationError{Field: "width", Value: c.Width,
			Reason: fmt.Sprintf("%d is outside [%d,%d]", c.Width, MinSize, MaxSize)}
	}
	if c.Height < MinSize || c.Height > MaxSize {
		return &ConfigurationError{Field: "height", Value: c.Height,
			Reason: fmt.Sprintf("%d is outside [%d,%d]", c.Height, MinSize, MaxSize)}
	}
	if c.WinLength < MinWinLength {
		return &ConfigurationError{Field: "win length", Value: c.WinLength,
			Reason: fmt.Sprintf("%d is below %d", c.WinLength, MinWinLength)}
	}
	if c.WinLength > max(c.Width, c.Height) {
		return &ConfigurationError{Field: "win length", Value: c.WinLength,
			Reason: fmt.Sprintf("%d does not fit a %dx%d board", c.WinLength, c.Width, c.Height)}
	}
	if c.Topology != Rectangle && c.Topology != Cylinder {
		return &ConfigurationError{Field: "topology", Value: int(c.Topology)}
	}
	return nil
}

func (c Config) String() string {
	return fmt.Sprintf("%dx%d connect %d (%s)", c.Width, c.Height, c.WinLength, c.Topology)
}
