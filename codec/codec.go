// Package codec implements the reversible mapping between human-readable text
// and a bounded sequence of field elements suitable for arithmetic circuits.
//
// Characters are restricted to the printable ASCII range [MinChar, MaxChar],
// which keeps the zero byte free to act as an in-band terminator: a decoded
// chunk sequence is self-terminating and needs no external length metadata.
package codec

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

const (
	// MinChar and MaxChar bound the allowed printable ASCII range,
	// inclusive. The zero byte is reserved as the end-of-string marker.
	MinChar = 32
	MaxChar = 122

	// BytesPerChunk is the number of characters packed into one field
	// element. 31 bytes (248 bits) keep a fully packed chunk strictly
	// below the 253-bit BabyJubJub base field modulus.
	BytesPerChunk = 31
)

var (
	// ErrInvalidCharacter is returned by Encode when the text contains a
	// character outside the allowed printable range.
	ErrInvalidCharacter = errors.New("invalid character")
	// ErrMalformedEncoding is returned by Decode when a chunk cannot be
	// split back into characters within the allowed range.
	ErrMalformedEncoding = errors.New("malformed encoding")
)

// Encode packs text into big-endian 31-byte groups, one field element per
// group, and returns the chunk sequence together with its length. A zero
// terminator byte is always present: it follows the last character, the final
// group is zero-padded after it, and text that exactly fills its groups gains
// one extra all-zero chunk. The empty string encodes to a single zero-valued
// chunk. Encode is pure and deterministic.
func Encode(text string) ([]*big.Int, int, error) {
	for i := 0; i < len(text); i++ {
		if text[i] < MinChar || text[i] > MaxChar {
			return nil, 0, fmt.Errorf("%w: byte 0x%02x at position %d", ErrInvalidCharacter, text[i], i)
		}
	}
	buf := make([]byte, 0, len(text)+BytesPerChunk)
	buf = append(buf, text...)
	buf = append(buf, 0) // terminator
	if rem := len(buf) % BytesPerChunk; rem != 0 {
		buf = append(buf, make([]byte, BytesPerChunk-rem)...)
	}
	chunks := make([]*big.Int, 0, len(buf)/BytesPerChunk)
	for i := 0; i < len(buf); i += BytesPerChunk {
		chunks = append(chunks, new(big.Int).SetBytes(buf[i:i+BytesPerChunk]))
	}
	return chunks, len(chunks), nil
}

// Decode unpacks the chunk sequence back into text, stopping at the first
// zero byte. Bytes after the terminator, including whole later chunks, are
// ignored. It returns ErrMalformedEncoding if a chunk does not fit in
// BytesPerChunk bytes, if a character falls outside the allowed range before
// the terminator, or if no terminator is present at all.
func Decode(chunks []*big.Int) (string, error) {
	var text strings.Builder
	word := make([]byte, BytesPerChunk)
	for i, chunk := range chunks {
		if chunk == nil || chunk.Sign() < 0 || chunk.BitLen() > BytesPerChunk*8 {
			return "", fmt.Errorf("%w: chunk %d out of range", ErrMalformedEncoding, i)
		}
		chunk.FillBytes(word)
		for _, b := range word {
			if b == 0 {
				return text.String(), nil
			}
			if b < MinChar || b > MaxChar {
				return "", fmt.Errorf("%w: byte 0x%02x outside allowed range", ErrMalformedEncoding, b)
			}
			text.WriteByte(b)
		}
	}
	return "", fmt.Errorf("%w: missing terminator", ErrMalformedEncoding)
}
