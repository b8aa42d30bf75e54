package ecies

import (
	"errors"
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
)

func testBlob() *Blob {
	blob := &Blob{
		Length:  3,
		AuthKey: [2]*big.Int{big.NewInt(1111), big.NewInt(2222)},
		Chunks:  []*big.Int{big.NewInt(10), big.NewInt(20), big.NewInt(30)},
	}
	for i := range blob.Nonce {
		blob.Nonce[i] = byte(i)
	}
	return blob
}

func TestBlobSerializeDeserialize(t *testing.T) {
	c := qt.New(t)
	blob := testBlob()

	data := blob.Serialize()
	c.Assert(len(data), qt.Equals, HeaderSize+3*WordSize)

	decoded := &Blob{}
	c.Assert(decoded.Deserialize(data), qt.IsNil)
	c.Assert(decoded.Length, qt.Equals, blob.Length)
	c.Assert(decoded.Nonce, qt.Equals, blob.Nonce)
	c.Assert(decoded.AuthKey[0].Cmp(blob.AuthKey[0]), qt.Equals, 0)
	c.Assert(decoded.AuthKey[1].Cmp(blob.AuthKey[1]), qt.Equals, 0)
	for i := range blob.Chunks {
		c.Assert(decoded.Chunks[i].Cmp(blob.Chunks[i]), qt.Equals, 0)
	}
}

func TestBlobString(t *testing.T) {
	c := qt.New(t)
	blob := testBlob()
	s := blob.String()
	c.Assert(s[:2], qt.Equals, "0x")
	// two hex characters per byte plus the prefix
	c.Assert(len(s), qt.Equals, 2+2*(HeaderSize+3*WordSize))
}

func TestBlobDeserializeErrors(t *testing.T) {
	c := qt.New(t)

	for _, tc := range []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short header", make([]byte, HeaderSize-1)},
		{"ragged body", make([]byte, HeaderSize+5)},
		{"zero length field", make([]byte, HeaderSize+WordSize)},
	} {
		err := (&Blob{}).Deserialize(tc.data)
		c.Assert(errors.Is(err, ErrMalformedBlob), qt.IsTrue, qt.Commentf("%s", tc.name))
	}

	// Length field larger than MaxChunks.
	data := make([]byte, HeaderSize+WordSize)
	big.NewInt(MaxChunks+1).FillBytes(data[:WordSize])
	err := (&Blob{}).Deserialize(data)
	c.Assert(errors.Is(err, ErrMalformedBlob), qt.IsTrue)
}
