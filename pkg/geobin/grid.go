package geobin

import (
	"github.com/beetlebugorg/geobin/internal/config"
	"github.com/beetlebugorg/geobin/internal/grid"
	"github.com/beetlebugorg/geobin/internal/hex"
)

// Grid strategies and their parameters.
type (
	Strategy         = grid.Strategy
	Cell             = grid.Cell
	Square           = grid.Square
	Hex              = grid.Hex
	FixedArea        = grid.FixedArea
	FixedAreaOptions = grid.FixedAreaOptions
	Lookup           = grid.Lookup
	Layout           = hex.Layout
)

// Grid errors.
type (
	ErrInvalidSize       = grid.ErrInvalidSize
	ErrInvalidProjection = grid.ErrInvalidProjection
	ErrInvalidGeometry   = grid.ErrInvalidGeometry
	ErrDuplicateKey      = grid.ErrDuplicateKey
)

// Hexagon layouts.
const (
	Pointy = hex.Pointy
	Flat   = hex.Flat
)

// Projections for FixedAreaOptions.
const (
	WGS84           = grid.WGS84
	EuropeEqualArea = grid.EuropeEqualArea
)

var (
	NewSquare               = grid.NewSquare
	NewHex                  = grid.NewHex
	NewFixedArea            = grid.NewFixedArea
	NewLookup               = grid.NewLookup
	DefaultFixedAreaOptions = grid.DefaultFixedAreaOptions
	ParseLayout             = hex.ParseLayout

	ErrEmptyFeatureSet = grid.ErrEmptyFeatureSet
)

// LoadGrid builds a grid strategy from a JSON config file.
func LoadGrid(path string) (Strategy, error) {
	cfg, err := config.LoadGridConfig(path)
	if err != nil {
		return nil, err
	}
	return cfg.Build()
}
