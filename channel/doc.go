// SPDX-License-Identifier: MIT

// Package channel is the geometry provider for open-channel cross-sections.
//
// The solvers in package flow consume a cross-section only through the
// Geometry interface:
//
//	Area(y)            — flow area A(y)
//	WettedPerimeter(y) — wetted perimeter P(y)
//	TopWidth(y)        — free-surface width T(y)
//
// and derive R = A/P (HydraulicRadius) and D = A/T (HydraulicDepth) from it.
// One implementation exists per shape:
//
//	Rectangular   A = b·y            P = b + 2y           T = b
//	Trapezoidal   A = (b + z·y)·y    P = b + 2y·√(1+z²)   T = b + 2z·y
//	Triangular    A = z·y²           P = 2y·√(1+z²)       T = 2z·y
//	Circular      A = D²/8·(θ−sinθ)  P = θ·D/2            T = D·sin(θ/2),  θ = 2·acos(1 − 2y/D)
//	Parabolic     A = 2/3·T·y        P = exact arc length T = 2c·√y
//
// # Depth domain
//
// Every method rejects y ≤ 0, NaN and ±Inf with ErrInvalidDepth. Shapes with
// a physical upper bound implement Bounded; the circular section accepts
// 0 < y ≤ D. At y = D the pipe is full: A and P take their full-pipe values
// and T(D) = 0 (the limit of the free-surface width). HydraulicDepth is
// undefined there and returns ErrNoFreeSurface.
//
// Circular sections also implement DischargeLimited: Manning discharge
// peaks near y = 0.938·D and decreases towards the full pipe, so depth
// searches that rely on monotonic discharge must stay below that depth.
//
// All shapes are immutable values after construction and safe for
// concurrent use.
package channel
