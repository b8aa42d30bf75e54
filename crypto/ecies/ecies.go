// Package ecies implements the hybrid public-key cipher that hides an encoded
// text behind a recipient public key. Encryption draws a fresh random nonce
// scalar k, embeds the nonce point R = k*G in the ciphertext, and masks each
// plaintext field element with a Poseidon key stream derived from the shared
// secret S = k*publicKey. Decryption recomputes S = privateKey*R by
// commutativity of scalar multiplication.
//
// Decryption with a wrong private key fails with ErrAuthenticationFailed: the
// blob carries an auth key pair derived from the shared secret which is
// recomputed and compared before unmasking. It never silently returns the
// wrong plaintext as valid output.
package ecies

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/iden3/go-iden3-crypto/constants"
	"github.com/iden3/go-iden3-crypto/poseidon"

	"github.com/zkmsg/zkmsg/codec"
	"github.com/zkmsg/zkmsg/crypto/ecc"
	"github.com/zkmsg/zkmsg/types"
)

// Cipher encapsulates encryption and decryption of text messages over an
// elliptic curve. All operations are pure, synchronous and safe for
// concurrent use; the only shared resource is the randomness source.
type Cipher struct {
	curve  ecc.Point
	random io.Reader
}

// New returns a Cipher over the given curve drawing nonce scalars from
// crypto/rand.
func New(curve ecc.Point) *Cipher {
	return NewWithRand(curve, rand.Reader)
}

// NewWithRand returns a Cipher drawing nonce scalars from the given source.
// The source must be cryptographically secure in production; deterministic
// stand-ins are for tests only, since a repeated nonce scalar leaks
// information about two plaintexts through the shared key stream.
func NewWithRand(curve ecc.Point, random io.Reader) *Cipher {
	return &Cipher{curve: curve, random: random}
}

// GenerateKey generates a new public/private encryption key pair on the curve.
func GenerateKey(curve ecc.Point) (publicKey ecc.Point, privateKey *big.Int, err error) {
	order := curve.Order()
	d, err := rand.Int(rand.Reader, order)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate private key scalar: %v", err)
	}
	if d.Sign() == 0 {
		d = big.NewInt(1) // avoid zero private keys
	}
	publicKey = curve.New()
	publicKey.SetGenerator()
	publicKey.ScalarMult(publicKey, d)
	return publicKey, d, nil
}

// Encrypt encodes text into field elements and encrypts them for the holder
// of the private key matching publicKey. Two calls on the same inputs yield
// different blobs, since each call draws a fresh nonce scalar.
func (c *Cipher) Encrypt(publicKey ecc.Point, text string) (types.HexBytes, error) {
	chunks, usedLength, err := codec.Encode(text)
	if err != nil {
		return nil, err
	}
	if usedLength > MaxChunks {
		return nil, fmt.Errorf("%w: %d chunks, format supports %d", ErrMessageTooLarge, usedLength, MaxChunks)
	}
	if err := c.checkPublicKey(publicKey); err != nil {
		return nil, err
	}

	k, err := c.randScalar()
	if err != nil {
		return nil, err
	}
	// R = k * G, S = k * publicKey
	R := c.curve.New()
	R.ScalarBaseMult(k)
	S := c.curve.New()
	S.ScalarMult(publicKey, k)

	auth0, auth1, masks, err := deriveKeyStream(S, usedLength)
	if err != nil {
		return nil, err
	}
	blob := &Blob{
		Length:  usedLength,
		AuthKey: [2]*big.Int{auth0, auth1},
		Chunks:  make([]*big.Int, usedLength),
	}
	copy(blob.Nonce[:], R.Marshal())
	for i, chunk := range chunks {
		masked := new(big.Int).Add(chunk, masks[i])
		blob.Chunks[i] = masked.Mod(masked, constants.Q)
	}
	return blob.Serialize(), nil
}

// Decrypt parses the blob, recomputes the shared secret with privateKey,
// verifies the embedded auth key and unmasks the chunk sequence back to text.
func (c *Cipher) Decrypt(privateKey *big.Int, blob []byte) (string, error) {
	if privateKey == nil {
		return "", fmt.Errorf("nil private key")
	}
	parsed := &Blob{}
	if err := parsed.Deserialize(blob); err != nil {
		return "", err
	}
	R := c.curve.New()
	if err := R.Unmarshal(parsed.Nonce[:]); err != nil {
		return "", fmt.Errorf("%w: invalid nonce point: %v", ErrMalformedBlob, err)
	}
	// S = privateKey * R == k * publicKey
	S := c.curve.New()
	S.ScalarMult(R, privateKey)

	auth0, auth1, masks, err := deriveKeyStream(S, parsed.Length)
	if err != nil {
		return "", err
	}
	if auth0.Cmp(parsed.AuthKey[0]) != 0 || auth1.Cmp(parsed.AuthKey[1]) != 0 {
		return "", fmt.Errorf("%w: auth key mismatch", ErrAuthenticationFailed)
	}
	chunks := make([]*big.Int, parsed.Length)
	for i, masked := range parsed.Chunks {
		chunk := new(big.Int).Sub(masked, masks[i])
		chunks[i] = chunk.Mod(chunk, constants.Q)
	}
	return codec.Decode(chunks)
}

// DecryptHex decodes a 0x-prefixed hex blob and decrypts it.
func (c *Cipher) DecryptHex(privateKey *big.Int, blob string) (string, error) {
	var raw types.HexBytes
	if err := raw.FromString(blob); err != nil {
		return "", fmt.Errorf("%w: non-hex input: %v", ErrMalformedBlob, err)
	}
	return c.Decrypt(privateKey, raw)
}

func (c *Cipher) checkPublicKey(publicKey ecc.Point) error {
	if publicKey == nil {
		return fmt.Errorf("%w: nil point", ErrInvalidPublicKey)
	}
	zero := c.curve.New()
	zero.SetZero()
	if publicKey.Equal(zero) {
		return fmt.Errorf("%w: identity point", ErrInvalidPublicKey)
	}
	if !publicKey.IsOnCurve() {
		return fmt.Errorf("%w: point is not a curve member", ErrInvalidPublicKey)
	}
	return nil
}

// randScalar draws a fresh nonce scalar in [1, order-1].
func (c *Cipher) randScalar() (*big.Int, error) {
	k, err := rand.Int(c.random, c.curve.Order())
	if err != nil {
		return nil, fmt.Errorf("failed to draw nonce scalar: %w", err)
	}
	if k.Sign() == 0 {
		k.Add(k, big.NewInt(1)) // ensure k != 0
	}
	return k, nil
}

// deriveKeyStream derives the auth key pair and the per-index masking key
// stream from the shared secret point. The auth pair uses 2-input Poseidon
// and the stream 3-input Poseidon, so the two cannot collide.
func deriveKeyStream(shared ecc.Point, n int) (auth0, auth1 *big.Int, masks []*big.Int, err error) {
	sx, sy := shared.Point()
	sx = ecc.BigToFF(constants.Q, sx)
	sy = ecc.BigToFF(constants.Q, sy)
	if auth0, err = poseidon.Hash([]*big.Int{sx, sy}); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to derive auth key: %w", err)
	}
	if auth1, err = poseidon.Hash([]*big.Int{sy, sx}); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to derive auth key: %w", err)
	}
	masks = make([]*big.Int, n)
	for i := range masks {
		if masks[i], err = poseidon.Hash([]*big.Int{sx, sy, big.NewInt(int64(i))}); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to derive key stream: %w", err)
		}
	}
	return auth0, auth1, masks, nil
}
