// SPDX-License-Identifier: MIT

package channel

import (
	"fmt"
	"math"
)

// CircularDischargePeakRatio is y/D at which Manning discharge in a
// circular section reaches its maximum.
const CircularDischargePeakRatio = 0.9382

// Rectangular is a section with vertical walls and a flat bottom.
type Rectangular struct {
	Width float64 // bottom width b
}

// NewRectangular validates b > 0.
func NewRectangular(width float64) (*Rectangular, error) {
	if err := checkDimension("width", width, true); err != nil {
		return nil, err
	}

	return &Rectangular{Width: width}, nil
}

func (r *Rectangular) Area(y float64) (float64, error) {
	if err := checkDepth(y); err != nil {
		return 0, err
	}

	return r.Width * y, nil
}

func (r *Rectangular) WettedPerimeter(y float64) (float64, error) {
	if err := checkDepth(y); err != nil {
		return 0, err
	}

	return r.Width + 2*y, nil
}

func (r *Rectangular) TopWidth(y float64) (float64, error) {
	if err := checkDepth(y); err != nil {
		return 0, err
	}

	return r.Width, nil
}

func (r *Rectangular) String() string { return fmt.Sprintf("Rectangular(b=%g)", r.Width) }

// Trapezoidal is a flat-bottomed section with side slopes z horizontal : 1 vertical.
type Trapezoidal struct {
	BottomWidth float64 // b
	SideSlope   float64 // z
}

// NewTrapezoidal validates b > 0 and z ≥ 0.
func NewTrapezoidal(bottomWidth, sideSlope float64) (*Trapezoidal, error) {
	if err := checkDimension("bottom width", bottomWidth, true); err != nil {
		return nil, err
	}
	if err := checkDimension("side slope", sideSlope, false); err != nil {
		return nil, err
	}

	return &Trapezoidal{BottomWidth: bottomWidth, SideSlope: sideSlope}, nil
}

func (t *Trapezoidal) Area(y float64) (float64, error) {
	if err := checkDepth(y); err != nil {
		return 0, err
	}

	return (t.BottomWidth + t.SideSlope*y) * y, nil
}

func (t *Trapezoidal) WettedPerimeter(y float64) (float64, error) {
	if err := checkDepth(y); err != nil {
		return 0, err
	}

	return t.BottomWidth + 2*y*math.Sqrt(1+t.SideSlope*t.SideSlope), nil
}

func (t *Trapezoidal) TopWidth(y float64) (float64, error) {
	if err := checkDepth(y); err != nil {
		return 0, err
	}

	return t.BottomWidth + 2*t.SideSlope*y, nil
}

func (t *Trapezoidal) String() string {
	return fmt.Sprintf("Trapezoidal(b=%g, z=%g)", t.BottomWidth, t.SideSlope)
}

// Triangular is a V-shaped section with side slopes z horizontal : 1 vertical.
type Triangular struct {
	SideSlope float64 // z
}

// NewTriangular validates z > 0.
func NewTriangular(sideSlope float64) (*Triangular, error) {
	if err := checkDimension("side slope", sideSlope, true); err != nil {
		return nil, err
	}

	return &Triangular{SideSlope: sideSlope}, nil
}

func (t *Triangular) Area(y float64) (float64, error) {
	if err := checkDepth(y); err != nil {
		return 0, err
	}

	return t.SideSlope * y * y, nil
}

func (t *Triangular) WettedPerimeter(y float64) (float64, error) {
	if err := checkDepth(y); err != nil {
		return 0, err
	}

	return 2 * y * math.Sqrt(1+t.SideSlope*t.SideSlope), nil
}

func (t *Triangular) TopWidth(y float64) (float64, error) {
	if err := checkDepth(y); err != nil {
		return 0, err
	}

	return 2 * t.SideSlope * y, nil
}

func (t *Triangular) String() string { return fmt.Sprintf("Triangular(z=%g)", t.SideSlope) }

// Circular is a pipe flowing partially full. Valid depths are 0 < y ≤ D.
type Circular struct {
	Diameter float64 // D
}

// NewCircular validates D > 0.
func NewCircular(diameter float64) (*Circular, error) {
	if err := checkDimension("diameter", diameter, true); err != nil {
		return nil, err
	}

	return &Circular{Diameter: diameter}, nil
}

// MaxDepth implements Bounded.
func (c *Circular) MaxDepth() float64 { return c.Diameter }

// DischargePeakDepth implements DischargeLimited.
func (c *Circular) DischargePeakDepth() float64 { return CircularDischargePeakRatio * c.Diameter }

// theta returns the central angle subtended by the free surface,
// θ = 2·acos(1 − 2y/D), after domain validation.
func (c *Circular) theta(y float64) (float64, error) {
	if err := checkDepth(y); err != nil {
		return 0, err
	}
	if y > c.Diameter {
		return 0, fmt.Errorf("%w: depth %g exceeds diameter %g", ErrInvalidDepth, y, c.Diameter)
	}
	// clamp for round-off at y ≈ D
	arg := math.Max(-1, math.Min(1, 1-2*y/c.Diameter))

	return 2 * math.Acos(arg), nil
}

func (c *Circular) Area(y float64) (float64, error) {
	th, err := c.theta(y)
	if err != nil {
		return 0, err
	}

	return c.Diameter * c.Diameter / 8 * (th - math.Sin(th)), nil
}

func (c *Circular) WettedPerimeter(y float64) (float64, error) {
	th, err := c.theta(y)
	if err != nil {
		return 0, err
	}

	return 0.5 * th * c.Diameter, nil
}

// TopWidth is zero at y = D (full pipe).
func (c *Circular) TopWidth(y float64) (float64, error) {
	th, err := c.theta(y)
	if err != nil {
		return 0, err
	}
	if y == c.Diameter {
		return 0, nil
	}

	return c.Diameter * math.Sin(th/2), nil
}

func (c *Circular) String() string { return fmt.Sprintf("Circular(D=%g)", c.Diameter) }

// Parabolic is a section whose top width grows as T = 2c·√y.
type Parabolic struct {
	TopWidthFactor float64 // c
}

// NewParabolic validates c > 0.
func NewParabolic(topWidthFactor float64) (*Parabolic, error) {
	if err := checkDimension("top width factor", topWidthFactor, true); err != nil {
		return nil, err
	}

	return &Parabolic{TopWidthFactor: topWidthFactor}, nil
}

func (p *Parabolic) Area(y float64) (float64, error) {
	if err := checkDepth(y); err != nil {
		return 0, err
	}

	return 2.0 / 3.0 * p.topWidth(y) * y, nil
}

// WettedPerimeter is the exact arc length of the parabola between the two
// water lines: P = T/2·(√(1+x²) + asinh(x)/x), x = 4y/T.
func (p *Parabolic) WettedPerimeter(y float64) (float64, error) {
	if err := checkDepth(y); err != nil {
		return 0, err
	}
	t := p.topWidth(y)
	x := 4 * y / t

	return t / 2 * (math.Sqrt(1+x*x) + math.Asinh(x)/x), nil
}

func (p *Parabolic) TopWidth(y float64) (float64, error) {
	if err := checkDepth(y); err != nil {
		return 0, err
	}

	return p.topWidth(y), nil
}

func (p *Parabolic) topWidth(y float64) float64 { return 2 * p.TopWidthFactor * math.Sqrt(y) }

func (p *Parabolic) String() string { return fmt.Sprintf("Parabolic(c=%g)", p.TopWidthFactor) }

// compile-time interface checks
var (
	_ Geometry         = (*Rectangular)(nil)
	_ Geometry         = (*Trapezoidal)(nil)
	_ Geometry         = (*Triangular)(nil)
	_ Geometry         = (*Circular)(nil)
	_ Geometry         = (*Parabolic)(nil)
	_ Bounded          = (*Circular)(nil)
	_ DischargeLimited = (*Circular)(nil)
)
