// SPDX-License-Identifier: MIT

// Package structures provides closed-form relations for hydraulic structures:
// the hydraulic jump in a rectangular channel and sharp/broad-crested and
// V-notch weirs.
//
// The conjugate-depth relation
//
//	y2 = (y1/2)·(√(1 + 8·Fr1²) − 1),   ΔE = (y2 − y1)³/(4·y1·y2)
//
// follows from momentum conservation and is exact only for rectangular
// sections. ConjugateDepth therefore accepts only *channel.Rectangular and
// returns ErrUnsupportedShape for anything else instead of approximating.
package structures
