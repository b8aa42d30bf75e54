package types

import (
	"math/big"

	"github.com/fxamacker/cbor/v2"
)

// BigInt is a big.Int wrapper which marshals JSON and text as the decimal
// string representation of the number.
type BigInt big.Int

// MarshalText returns the decimal string representation.
func (i *BigInt) MarshalText() ([]byte, error) {
	return (*big.Int)(i).MarshalText()
}

// UnmarshalText parses a decimal string representation.
func (i *BigInt) UnmarshalText(data []byte) error {
	return (*big.Int)(i).UnmarshalText(data)
}

// MarshalCBOR serializes the BigInt using the CBOR bignum encoding.
func (i *BigInt) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal((*big.Int)(i))
}

// UnmarshalCBOR deserializes the BigInt from a CBOR bignum.
func (i *BigInt) UnmarshalCBOR(data []byte) error {
	return cbor.Unmarshal(data, (*big.Int)(i))
}

// MathBigInt converts b to a math/big *big.Int.
func (i *BigInt) MathBigInt() *big.Int {
	return (*big.Int)(i)
}

// SetBigInt sets the value to the provided big.Int and returns the receiver.
func (i *BigInt) SetBigInt(x *big.Int) *BigInt {
	(*big.Int)(i).Set(x)
	return i
}

// String returns the decimal string representation.
func (i *BigInt) String() string {
	return (*big.Int)(i).String()
}
