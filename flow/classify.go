// SPDX-License-Identifier: MIT

package flow

import "math"

// near reports |a − ref| ≤ CriticalBand·ref.
func near(a, ref float64) bool { return math.Abs(a-ref) <= CriticalBand*ref }

// ClassifySlope compares normal depth yn with critical depth yc:
// yn > yc is Mild, yn < yc is Steep, and yn within CriticalBand of yc is
// CriticalSlope.
func ClassifySlope(yn, yc float64) (SlopeClass, error) {
	if err := requirePositive("normal depth", yn); err != nil {
		return 0, err
	}
	if err := requirePositive("critical depth", yc); err != nil {
		return 0, err
	}

	switch {
	case near(yn, yc):
		return CriticalSlope, nil
	case yn > yc:
		return Mild, nil
	default:
		return Steep, nil
	}
}

// ClassifyProfile names the GVF curve through depth y on a reach with normal
// depth yn and critical depth yc.
//
//	Mild:     y > yn → M1,  yc ≤ y < yn → M2,  y < yc → M3
//	Steep:    y > yc → S1,  yn < y ≤ yc → S2,  y < yn → S3
//	Critical: y > yc → C1,  y < yc → C3
//
// A depth within CriticalBand of yn is ProfileUniform.
func ClassifyProfile(y, yn, yc float64) (ProfileClass, error) {
	if err := requirePositive("depth", y); err != nil {
		return "", err
	}
	slope, err := ClassifySlope(yn, yc)
	if err != nil {
		return "", err
	}
	if near(y, yn) {
		return ProfileUniform, nil
	}

	switch slope {
	case Mild:
		switch {
		case y > yn:
			return ProfileM1, nil
		case y >= yc:
			return ProfileM2, nil
		default:
			return ProfileM3, nil
		}
	case Steep:
		switch {
		case y > yc:
			return ProfileS1, nil
		case y > yn:
			return ProfileS2, nil
		default:
			return ProfileS3, nil
		}
	default:
		if y > yc {
			return ProfileC1, nil
		}
		return ProfileC3, nil
	}
}
