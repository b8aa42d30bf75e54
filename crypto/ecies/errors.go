package ecies

import "errors"

var (
	// ErrMessageTooLarge is returned by Encrypt when the encoded plaintext
	// needs more chunks than the blob format supports.
	ErrMessageTooLarge = errors.New("message too large")
	// ErrInvalidPublicKey is returned by Encrypt when the recipient public
	// key is nil, the identity, or not a member of the curve.
	ErrInvalidPublicKey = errors.New("invalid public key")
	// ErrMalformedBlob is returned by Decrypt when the blob fails
	// structural parsing.
	ErrMalformedBlob = errors.New("malformed blob")
	// ErrAuthenticationFailed is returned by Decrypt when the recomputed
	// auth key does not match the embedded one, indicating a wrong private
	// key or a corrupted blob.
	ErrAuthenticationFailed = errors.New("authentication failed")
)
