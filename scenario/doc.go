// SPDX-License-Identifier: MIT

// Package scenario reads hydraulic problems from YAML files, validates them
// and solves them concurrently.
//
// A file holds a list of named scenarios. Each scenario names a channel
// shape, the flow data and a kind that selects the computation:
//
//	scenarios:
//	  - name: storm drain normal depth
//	    kind: normal-depth
//	    units: English
//	    channel: {shape: circular, diameter: 4}
//	    discharge: 30
//	    manning: 0.013
//	    slope: 0.005
//	    max_depth: 3.6
//
// Kinds: normal-depth, critical-depth, alternate-depths, discharge, rating,
// profile, jump and design. A design scenario searches the smallest bottom
// width whose normal depth stays within a limit.
//
// Runner solves independent scenarios on a bounded worker pool. A failing
// scenario is recorded in its own Report and never stops its siblings.
package scenario
