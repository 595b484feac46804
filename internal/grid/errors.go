package grid

import (
	"errors"
	"fmt"
	"math"
)

// ErrEmptyFeatureSet indicates a lookup grid was built without polygons.
var ErrEmptyFeatureSet = errors.New("grid: lookup grid needs at least one polygon feature")

// ErrMissingKey indicates a strategy produced a cell geometry without a key.
var ErrMissingKey = errors.New("grid: cell has a geometry but no key")

// ErrInvalidSize indicates a cell size that is not a positive finite number
type ErrInvalidSize struct {
	Size float64
}

func (e *ErrInvalidSize) Error() string {
	return fmt.Sprintf("grid: invalid cell size %g (must be > 0)", e.Size)
}

// ErrInvalidProjection indicates a projection definition that cannot be used
type ErrInvalidProjection struct {
	Definition string
	Err        error
}

func (e *ErrInvalidProjection) Error() string {
	return fmt.Sprintf("grid: invalid projection %q: %v", e.Definition, e.Err)
}

func (e *ErrInvalidProjection) Unwrap() error {
	return e.Err
}

// ErrInvalidGeometry indicates a lookup feature whose geometry is not polygonal
type ErrInvalidGeometry struct {
	Index int
	Type  string
}

func (e *ErrInvalidGeometry) Error() string {
	return fmt.Sprintf("grid: feature %d has %s geometry (want Polygon or MultiPolygon)", e.Index, e.Type)
}

// ErrDuplicateKey indicates two lookup features share an id
type ErrDuplicateKey struct {
	Key string
}

func (e *ErrDuplicateKey) Error() string {
	return fmt.Sprintf("grid: duplicate feature id %q", e.Key)
}

func checkSize(size float64) error {
	if !(size > 0) || math.IsInf(size, 0) {
		return &ErrInvalidSize{Size: size}
	}
	return nil
}
