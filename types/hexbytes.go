package types

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// HexBytes is a []byte which encodes as hexadecimal in JSON and text, carrying
// the standard "0x" prefix. It is the textual form of every binary value that
// crosses the collaborator boundary, including encrypted message blobs.
type HexBytes []byte

// String returns the 0x-prefixed hexadecimal representation.
func (b HexBytes) String() string {
	return "0x" + hex.EncodeToString(b)
}

// FromString decodes a hex string, with or without the 0x prefix, into b.
func (b *HexBytes) FromString(str string) error {
	str = strings.TrimPrefix(str, "0x")
	var err error
	(*b), err = hex.DecodeString(str)
	return err
}

// MarshalJSON encodes as a quoted 0x-prefixed hex string.
func (b HexBytes) MarshalJSON() ([]byte, error) {
	enc := make([]byte, len(b)*2+4)
	enc[0] = '"'
	enc[1], enc[2] = '0', 'x'
	hex.Encode(enc[3:], b)
	enc[len(enc)-1] = '"'
	return enc, nil
}

// UnmarshalJSON decodes a quoted hex string, with or without the 0x prefix.
func (b *HexBytes) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid JSON string: %q", data)
	}
	data = data[1 : len(data)-1]
	if len(data) >= 2 && data[0] == '0' && (data[1] == 'x' || data[1] == 'X') {
		data = data[2:]
	}
	decoded := make([]byte, hex.DecodedLen(len(data)))
	if _, err := hex.Decode(decoded, data); err != nil {
		return err
	}
	*b = decoded
	return nil
}
