// Package config loads grid definitions from JSON files.
//
// Files may contain comments and trailing commas. Every field is optional;
// the Get* methods supply defaults for anything the file leaves out, so a
// file holding only {"kind": "hex"} is a complete configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/beetlebugorg/geobin/internal/grid"
	"github.com/beetlebugorg/geobin/internal/hex"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/tailscale/hujson"
)

// Grid kinds accepted in the "kind" field.
const (
	KindSquare    = "square"
	KindHex       = "hex"
	KindFixedArea = "fixed_area"
	KindLookup    = "lookup"
)

const maxFileSize = 1 * 1024 * 1024 // 1MB

// GridConfig describes one grid strategy.
type GridConfig struct {
	Kind   *string     `json:"kind,omitempty"`
	Size   *float64    `json:"size,omitempty"`
	Origin *[2]float64 `json:"origin,omitempty"`

	// Hex only
	Layout *string `json:"layout,omitempty"` // "pointy" or "flat"

	// Fixed-area only
	SourceProjection *string     `json:"source_projection,omitempty"` // proj4
	GridProjection   *string     `json:"grid_projection,omitempty"`   // proj4
	CRSName          *string     `json:"crs_name,omitempty"`
	Unit             *float64    `json:"unit,omitempty"`
	Extent           *[4]float64 `json:"extent,omitempty"` // minX, minY, maxX, maxY
	Densify          *int        `json:"densify,omitempty"`
	CacheSize        *int        `json:"cache_size,omitempty"`

	// Lookup only. Relative paths are resolved against the config file.
	Features *string `json:"features,omitempty"`

	dir string
}

func ptrString(v string) *string    { return &v }
func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }

// LoadGridConfig loads a GridConfig from a .json file of at most 1MB.
func LoadGridConfig(path string) (*GridConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := ParseGridConfig(data)
	if err != nil {
		return nil, err
	}
	cfg.dir = filepath.Dir(cleanPath)
	return cfg, nil
}

// ParseGridConfig parses and validates a config document.
func ParseGridConfig(data []byte) (*GridConfig, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	cfg := &GridConfig{}
	if err := json.Unmarshal(std, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the values that are set.
func (c *GridConfig) Validate() error {
	switch c.GetKind() {
	case KindSquare, KindHex, KindFixedArea, KindLookup:
	default:
		return fmt.Errorf("unknown grid kind %q", c.GetKind())
	}

	if c.Size != nil && !(*c.Size > 0) {
		return fmt.Errorf("size must be positive, got %v", *c.Size)
	}
	if c.Unit != nil && !(*c.Unit > 0) {
		return fmt.Errorf("unit must be positive, got %v", *c.Unit)
	}
	if c.Layout != nil {
		if _, err := hex.ParseLayout(*c.Layout); err != nil {
			return err
		}
	}
	if c.Extent != nil {
		e := *c.Extent
		if e[0] >= e[2] || e[1] >= e[3] {
			return fmt.Errorf("extent must be [minX, minY, maxX, maxY], got %v", e)
		}
	}
	if c.Densify != nil && *c.Densify < 0 {
		return fmt.Errorf("densify must not be negative, got %d", *c.Densify)
	}
	if c.CacheSize != nil && *c.CacheSize < 0 {
		return fmt.Errorf("cache_size must not be negative, got %d", *c.CacheSize)
	}
	if c.GetKind() == KindLookup && c.GetFeatures() == "" {
		return fmt.Errorf("lookup grid requires a features file")
	}
	return nil
}

// GetKind returns the grid kind, default square.
func (c *GridConfig) GetKind() string {
	if c.Kind == nil {
		return KindSquare
	}
	return strings.ToLower(*c.Kind)
}

// GetSize returns the cell size. The default depends on the kind: 200
// meters for fixed-area grids, 1 map unit otherwise.
func (c *GridConfig) GetSize() float64 {
	if c.Size != nil {
		return *c.Size
	}
	if c.GetKind() == KindFixedArea {
		return grid.DefaultFixedAreaOptions().Size
	}
	return 1
}

// GetOrigin returns the grid origin, default (0, 0).
func (c *GridConfig) GetOrigin() orb.Point {
	if c.Origin == nil {
		return orb.Point{}
	}
	return orb.Point(*c.Origin)
}

// GetLayout returns the hex layout, default pointy.
func (c *GridConfig) GetLayout() hex.Layout {
	if c.Layout == nil {
		return hex.Pointy
	}
	l, _ := hex.ParseLayout(*c.Layout)
	return l
}

// GetFeatures returns the path of the lookup features file.
func (c *GridConfig) GetFeatures() string {
	if c.Features == nil {
		return ""
	}
	if filepath.IsAbs(*c.Features) || c.dir == "" {
		return *c.Features
	}
	return filepath.Join(c.dir, *c.Features)
}

// FixedAreaOptions merges the fixed-area fields over the defaults.
func (c *GridConfig) FixedAreaOptions() grid.FixedAreaOptions {
	opts := grid.DefaultFixedAreaOptions()
	opts.Size = c.GetSize()
	if c.SourceProjection != nil {
		opts.SourceProjection = *c.SourceProjection
	}
	if c.GridProjection != nil {
		opts.GridProjection = *c.GridProjection
	}
	if c.CRSName != nil {
		opts.CRSName = *c.CRSName
	}
	if c.Unit != nil {
		opts.Unit = *c.Unit
	}
	if c.Extent != nil {
		e := *c.Extent
		opts.SourceExtent = orb.Bound{Min: orb.Point{e[0], e[1]}, Max: orb.Point{e[2], e[3]}}
	}
	if c.Densify != nil {
		opts.Densify = *c.Densify
	}
	if c.CacheSize != nil {
		opts.CacheSize = *c.CacheSize
	}
	return opts
}

// Build constructs the configured strategy.
func (c *GridConfig) Build() (grid.Strategy, error) {
	var (
		s   grid.Strategy
		err error
	)
	switch c.GetKind() {
	case KindSquare:
		s, err = grid.NewSquare(c.GetSize(), c.GetOrigin())
	case KindHex:
		s, err = grid.NewHex(c.GetSize(), c.GetOrigin(), c.GetLayout())
	case KindFixedArea:
		s, err = grid.NewFixedArea(c.FixedAreaOptions())
	case KindLookup:
		var features []*geojson.Feature
		if features, err = loadFeatures(c.GetFeatures()); err == nil {
			s, err = grid.NewLookup(features)
		}
	default:
		err = fmt.Errorf("unknown grid kind %q", c.GetKind())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build %s grid: %w", c.GetKind(), err)
	}
	return s, nil
}

func loadFeatures(path string) ([]*geojson.Feature, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read features file: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse features file %s: %w", path, err)
	}
	return fc.Features, nil
}
