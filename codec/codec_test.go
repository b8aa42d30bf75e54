package codec

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := qt.New(t)
	texts := []string{
		"Hello",
		"hello world",
		" ",
		"z",
		strings.Repeat("a", 30),
		strings.Repeat("a", 31), // exactly one full group
		strings.Repeat("a", 32),
		strings.Repeat("Hello zkmsg! ", 40),
		strings.Repeat("a", 2000),
		"!\"#$%&'()*+,-./0123456789:;<=>?@ABCXYZ[\\]^_`abcxyz",
	}
	for _, text := range texts {
		chunks, usedLength, err := Encode(text)
		c.Assert(err, qt.IsNil, qt.Commentf("text %q", text))
		c.Assert(usedLength, qt.Equals, len(chunks))
		c.Assert(usedLength >= 1, qt.IsTrue)

		decoded, err := Decode(chunks)
		c.Assert(err, qt.IsNil)
		c.Assert(decoded, qt.Equals, text)
	}
}

func TestEncodeEmpty(t *testing.T) {
	c := qt.New(t)
	chunks, usedLength, err := Encode("")
	c.Assert(err, qt.IsNil)
	c.Assert(usedLength, qt.Equals, 1)
	c.Assert(len(chunks), qt.Equals, 1)
	c.Assert(chunks[0].Sign(), qt.Equals, 0)

	decoded, err := Decode(chunks)
	c.Assert(err, qt.IsNil)
	c.Assert(decoded, qt.Equals, "")
}

func TestEncodeChunkCount(t *testing.T) {
	c := qt.New(t)
	// The terminator byte occupies one position, so n*31 characters need
	// n+1 chunks while n*31-1 characters still fit in n.
	for _, tc := range []struct {
		length, chunks int
	}{
		{0, 1},
		{1, 1},
		{30, 1},
		{31, 2},
		{61, 2},
		{62, 3},
		{2000, 65},
	} {
		_, usedLength, err := Encode(strings.Repeat("x", tc.length))
		c.Assert(err, qt.IsNil)
		c.Assert(usedLength, qt.Equals, tc.chunks, qt.Commentf("length %d", tc.length))
	}
}

func TestEncodeTerminatorAlwaysPresent(t *testing.T) {
	c := qt.New(t)
	// A text that exactly fills its groups gets an extra all-zero chunk.
	chunks, usedLength, err := Encode(strings.Repeat("b", 31))
	c.Assert(err, qt.IsNil)
	c.Assert(usedLength, qt.Equals, 2)
	c.Assert(chunks[1].Sign(), qt.Equals, 0)
}

func TestEncodeInvalidCharacter(t *testing.T) {
	c := qt.New(t)
	for _, text := range []string{
		"new\nline",
		"tab\there",
		"{curly}",
		"tilde~",
		"ñ",
		string([]byte{31}),
		string([]byte{123}),
		string([]byte{0}),
	} {
		_, _, err := Encode(text)
		c.Assert(errors.Is(err, ErrInvalidCharacter), qt.IsTrue, qt.Commentf("text %q", text))
	}
}

func TestDecodeIgnoresBytesAfterTerminator(t *testing.T) {
	c := qt.New(t)
	chunks, _, err := Encode("Hi")
	c.Assert(err, qt.IsNil)

	// Bytes past the terminator and whole extra chunks must be ignored.
	garbage, _, err := Encode("garbage")
	c.Assert(err, qt.IsNil)
	decoded, err := Decode(append(chunks, garbage...))
	c.Assert(err, qt.IsNil)
	c.Assert(decoded, qt.Equals, "Hi")
}

func TestDecodeMalformed(t *testing.T) {
	c := qt.New(t)

	// Chunk wider than 31 bytes.
	tooWide := new(big.Int).Lsh(big.NewInt(1), 31*8)
	_, err := Decode([]*big.Int{tooWide})
	c.Assert(errors.Is(err, ErrMalformedEncoding), qt.IsTrue)

	// Out-of-range character before the terminator.
	word := make([]byte, BytesPerChunk)
	word[0] = 0xff
	_, err = Decode([]*big.Int{new(big.Int).SetBytes(word)})
	c.Assert(errors.Is(err, ErrMalformedEncoding), qt.IsTrue)

	// No terminator anywhere.
	full := new(big.Int).SetBytes([]byte(strings.Repeat("a", BytesPerChunk)))
	_, err = Decode([]*big.Int{full})
	c.Assert(errors.Is(err, ErrMalformedEncoding), qt.IsTrue)

	// Nil chunk.
	_, err = Decode([]*big.Int{nil})
	c.Assert(errors.Is(err, ErrMalformedEncoding), qt.IsTrue)
}

func TestEncodeDeterministic(t *testing.T) {
	c := qt.New(t)
	a, _, err := Encode("same input")
	c.Assert(err, qt.IsNil)
	b, _, err := Encode("same input")
	c.Assert(err, qt.IsNil)
	c.Assert(len(a), qt.Equals, len(b))
	for i := range a {
		c.Assert(a[i].Cmp(b[i]), qt.Equals, 0)
	}
}
