// SPDX-License-Identifier: MIT

package channel

import (
	"fmt"
	"strings"
)

// Shape names accepted by New.
const (
	ShapeRectangular = "rectangular"
	ShapeTrapezoidal = "trapezoidal"
	ShapeTriangular  = "triangular"
	ShapeCircular    = "circular"
	ShapeParabolic   = "parabolic"
)

// Dimensions carries the dimensions a named shape may need. Fields that a
// shape does not use are ignored.
type Dimensions struct {
	Width          float64 `yaml:"width,omitempty"`
	SideSlope      float64 `yaml:"side_slope,omitempty"`
	Diameter       float64 `yaml:"diameter,omitempty"`
	TopWidthFactor float64 `yaml:"top_width_factor,omitempty"`
}

// New builds a Geometry from a shape name, as used by scenario files and
// CLI flags. Width is the bottom width for trapezoids.
func New(shape string, d Dimensions) (Geometry, error) {
	var (
		g   Geometry
		err error
	)
	switch strings.ToLower(strings.TrimSpace(shape)) {
	case ShapeRectangular:
		g, err = NewRectangular(d.Width)
	case ShapeTrapezoidal:
		g, err = NewTrapezoidal(d.Width, d.SideSlope)
	case ShapeTriangular:
		g, err = NewTriangular(d.SideSlope)
	case ShapeCircular:
		g, err = NewCircular(d.Diameter)
	case ShapeParabolic:
		g, err = NewParabolic(d.TopWidthFactor)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, shape)
	}
	if err != nil {
		// avoid handing back a typed nil inside the interface
		return nil, err
	}

	return g, nil
}

// Shapes lists the names accepted by New.
func Shapes() []string {
	return []string{ShapeRectangular, ShapeTrapezoidal, ShapeTriangular, ShapeCircular, ShapeParabolic}
}
