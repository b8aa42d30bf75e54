package ecies

import (
	"fmt"
	"math/big"

	"github.com/zkmsg/zkmsg/types"
)

// Sizes in bytes of the serialized blob sections. The wire format is a
// contract with the on-chain collaborator: four 32-byte big-endian header
// words (length, nonce, authKey[0], authKey[1]) followed by one 32-byte word
// per masked chunk.
const (
	WordSize   = 32
	HeaderSize = 4 * WordSize

	// MaxChunks bounds the number of masked chunks a single blob can
	// carry, which in turn bounds the plaintext length Encrypt accepts.
	MaxChunks = 1024
)

// Blob is the parsed form of a serialized ciphertext: the chunk count, the
// compressed nonce point, the auth key pair, and the masked chunks. Blobs are
// transient call-scoped values, never mutated after creation.
type Blob struct {
	Length  int
	Nonce   [WordSize]byte
	AuthKey [2]*big.Int
	Chunks  []*big.Int
}

// Serialize returns the wire representation of the blob: HeaderSize bytes of
// header followed by Length 32-byte big-endian chunk words.
func (b *Blob) Serialize() types.HexBytes {
	buf := make([]byte, 0, HeaderSize+len(b.Chunks)*WordSize)
	word := make([]byte, WordSize)
	big.NewInt(int64(b.Length)).FillBytes(word)
	buf = append(buf, word...)
	buf = append(buf, b.Nonce[:]...)
	for _, ak := range b.AuthKey {
		ak.FillBytes(word)
		buf = append(buf, word...)
	}
	for _, chunk := range b.Chunks {
		chunk.FillBytes(word)
		buf = append(buf, word...)
	}
	return buf
}

// Deserialize reconstructs a Blob from its wire representation. It returns
// ErrMalformedBlob if the input is shorter than the header, the body is not a
// multiple of the word size, or the length field does not match the body.
func (b *Blob) Deserialize(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: got %d bytes, header needs %d", ErrMalformedBlob, len(data), HeaderSize)
	}
	if (len(data)-HeaderSize)%WordSize != 0 {
		return fmt.Errorf("%w: body length %d is not a multiple of %d", ErrMalformedBlob, len(data)-HeaderSize, WordSize)
	}
	bodyWords := (len(data) - HeaderSize) / WordSize
	length := new(big.Int).SetBytes(data[:WordSize])
	if !length.IsInt64() || length.Int64() < 1 || length.Int64() > MaxChunks {
		return fmt.Errorf("%w: length field %s out of range", ErrMalformedBlob, length)
	}
	if int(length.Int64()) != bodyWords {
		return fmt.Errorf("%w: length field %s does not match %d body words", ErrMalformedBlob, length, bodyWords)
	}
	b.Length = bodyWords
	copy(b.Nonce[:], data[WordSize:2*WordSize])
	b.AuthKey[0] = new(big.Int).SetBytes(data[2*WordSize : 3*WordSize])
	b.AuthKey[1] = new(big.Int).SetBytes(data[3*WordSize : 4*WordSize])
	b.Chunks = make([]*big.Int, bodyWords)
	for i := range b.Chunks {
		offset := HeaderSize + i*WordSize
		b.Chunks[i] = new(big.Int).SetBytes(data[offset : offset+WordSize])
	}
	return nil
}

// String returns the 0x-prefixed hex representation of the serialized blob.
func (b *Blob) String() string {
	return b.Serialize().String()
}
