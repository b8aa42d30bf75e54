package types

import (
	"encoding/json"
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/fxamacker/cbor/v2"
	"github.com/google/go-cmp/cmp"
)

// bigIntEquals compares BigInt values numerically, since go-cmp cannot look
// at big.Int's unexported fields.
var bigIntEquals = qt.CmpEquals(cmp.Comparer(func(a, b *BigInt) bool {
	return a.MathBigInt().Cmp(b.MathBigInt()) == 0
}))

func TestBigMarshalUnmarshalJSON(t *testing.T) {
	c := qt.New(t)
	bi := (*BigInt)(big.NewInt(1234567890))
	jsonBigInt := map[string]*BigInt{
		"bi": bi,
	}
	bBigInt, err := json.Marshal(jsonBigInt)
	c.Assert(err, qt.IsNil)

	var unmarshaled map[string]*BigInt
	c.Assert(json.Unmarshal(bBigInt, &unmarshaled), qt.IsNil)
	c.Assert(unmarshaled["bi"], bigIntEquals, bi)
}

func TestBigMarshalUnmarshalCBOR(t *testing.T) {
	c := qt.New(t)
	bi := (*BigInt)(big.NewInt(1234567890))
	cborBigInt := map[string]*BigInt{
		"bi": bi,
	}
	bBigInt, err := cbor.Marshal(cborBigInt)
	c.Assert(err, qt.IsNil)

	var unmarshaled map[string]*BigInt
	c.Assert(cbor.Unmarshal(bBigInt, &unmarshaled), qt.IsNil)
	c.Assert(unmarshaled["bi"], bigIntEquals, bi)
}

func TestHexBytesString(t *testing.T) {
	c := qt.New(t)
	hb := HexBytes{0xde, 0xad, 0xbe, 0xef}
	c.Assert(hb.String(), qt.Equals, "0xdeadbeef")

	var decoded HexBytes
	c.Assert(decoded.FromString("0xdeadbeef"), qt.IsNil)
	c.Assert(decoded, qt.DeepEquals, hb)

	// the prefix is optional on input
	c.Assert(decoded.FromString("deadbeef"), qt.IsNil)
	c.Assert(decoded, qt.DeepEquals, hb)

	c.Assert(decoded.FromString("0xzz"), qt.IsNotNil)
}

func TestHexBytesMarshalUnmarshalJSON(t *testing.T) {
	c := qt.New(t)
	hb := HexBytes{0x01, 0x02, 0xff}
	data, err := json.Marshal(hb)
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Equals, `"0x0102ff"`)

	var decoded HexBytes
	c.Assert(json.Unmarshal(data, &decoded), qt.IsNil)
	c.Assert(decoded, qt.DeepEquals, hb)

	// unprefixed input is accepted too
	c.Assert(json.Unmarshal([]byte(`"0102ff"`), &decoded), qt.IsNil)
	c.Assert(decoded, qt.DeepEquals, hb)

	c.Assert(json.Unmarshal([]byte(`12`), &decoded), qt.IsNotNil)
}
