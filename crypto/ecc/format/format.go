// Package format converts BabyJubJub point coordinates between the standard
// Twisted Edwards form (a = 168700, used by iden3/circomlib) and the reduced
// Twisted Edwards form (a = -1, used by gnark-crypto). Only the X coordinate
// is scaled; Y is the same in both forms.
package format

import (
	"math/big"

	"github.com/iden3/go-iden3-crypto/constants"
)

// scalingFactor is f with f^2 = -168700 mod p, where p is the BabyJubJub base
// field. A standard point (x, y) corresponds to the reduced point (f*x, y).
var (
	scalingFactor, _ = new(big.Int).SetString(
		"6360561867910373094066688120553762416144456282423235903351243436111059670888", 10)
	scalingFactorInv = new(big.Int).ModInverse(scalingFactor, constants.Q)
)

// FromTEtoRTE converts a point from standard Twisted Edwards coordinates to
// reduced Twisted Edwards coordinates: x' = f*x, y' = y.
func FromTEtoRTE(x, y *big.Int) (*big.Int, *big.Int) {
	xRTE := new(big.Int).Mul(x, scalingFactor)
	return xRTE.Mod(xRTE, constants.Q), y
}

// FromRTEtoTE converts a point from reduced Twisted Edwards coordinates to
// standard Twisted Edwards coordinates: x = x'/f, y = y'.
func FromRTEtoTE(x, y *big.Int) (*big.Int, *big.Int) {
	xTE := new(big.Int).Mul(x, scalingFactorInv)
	return xTE.Mod(xTE, constants.Q), y
}
