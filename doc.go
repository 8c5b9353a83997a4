// SPDX-License-Identifier: MIT

// Package openchannel is a toolkit for steady open-channel hydraulics:
// uniform flow, critical flow and gradually varied water-surface profiles
// in prismatic channels.
//
// 🚀 What is in the box?
//
//	• Cross-sections: rectangular, trapezoidal, triangular, circular, parabolic
//	• Uniform flow: Manning discharge, normal depth, rating tables
//	• Critical flow: Froude number, critical depth, alternate depths
//	• Gradually varied flow: direct step, standard step, profile marching
//	• Structures: hydraulic jumps and weirs
//	• Scenarios: YAML problem files solved in parallel, and a CLI
//
// Every solver takes the unit system (SI or English) as an argument, checks
// its inputs before iterating, and reports failures as wrapped sentinel
// errors. Root finding is a bracketed Brent method; nothing widens a bracket
// behind the caller's back.
//
// Packages, leaves first:
//
//	units/       — g and Manning k per unit system
//	channel/     — cross-section geometry and the shape factory
//	rootfind/    — bracketed Brent root finding with typed failures
//	flow/        — uniform, critical and gradually varied flow solvers
//	structures/  — hydraulic jump and weir formulas
//	scenario/    — YAML scenario files and the parallel runner
//	cmd/openchannel — command-line front end
//
// Quick example (b = 3 m, n = 0.015, S0 = 0.001, y = 1 m):
//
//	g := &channel.Rectangular{Width: 3}
//	q, _ := flow.Discharge(g, 1.0, 0.015, 0.001, units.SI) // ≈ 4.50 m³/s
//	yc, _ := flow.CriticalDepth(g, q, units.SI)
//
//	go install github.com/katalvlaran/openchannel/cmd/openchannel@latest
package openchannel
