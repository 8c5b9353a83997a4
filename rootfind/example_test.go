// SPDX-License-Identifier: MIT

package rootfind_test

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/openchannel/rootfind"
)

// ExampleBrent finds √2 as the positive root of x² − 2.
func ExampleBrent() {
	res, err := rootfind.Brent(func(x float64) (float64, error) {
		return x*x - 2, nil
	}, 0, 2, rootfind.WithXTol(1e-12))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("root=%.8f\n", res.Root)
	// Output:
	// root=1.41421356
}

// ExampleBrent_notBracketed shows how to recognize a bracket that must be widened.
func ExampleBrent_notBracketed() {
	_, err := rootfind.Brent(func(x float64) (float64, error) {
		return x - 5, nil
	}, 0, 2)
	fmt.Println(errors.Is(err, rootfind.ErrNotBracketed))
	fmt.Println(errors.Is(err, rootfind.ErrNoConvergence))
	// Output:
	// true
	// true
}
