// Package boolmin implements a two-level Boolean-function minimizer: prime
// implicant generation (Quine-McCluskey), minimal column cover selection,
// and unate recursive complementation over ternary cube covers.
package boolmin

// version is the module's release string.
const version = "0.1.0"

// Version returns the module's release string.
func Version() string {
	return version
}
