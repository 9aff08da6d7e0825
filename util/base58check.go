package util

import (
	"github.com/btcsuite/btcutil/base58"
	"github.com/pkg/errors"
)

var (
	// ErrChecksum indicates that the checksum of a Base58Check string does
	// not match its payload.
	ErrChecksum = errors.New("checksum mismatch")

	// ErrInvalidFormat indicates that a Base58Check string is too short to
	// carry a version byte and a checksum, or holds non-base58 characters.
	ErrInvalidFormat = errors.New("invalid base58check format")
)

// EncodeBase58Check prepends version to payload, appends the first four bytes
// of hash256(version || payload) and encodes the result in base58.
func EncodeBase58Check(version byte, payload []byte) string {
	return base58.CheckEncode(payload, version)
}

// DecodeBase58Check verifies and strips the checksum of a Base58Check
// string, returning its version byte and payload.
func DecodeBase58Check(encoded string) (version byte, payload []byte, err error) {
	payload, version, err = base58.CheckDecode(encoded)
	switch {
	case errors.Is(err, base58.ErrChecksum):
		return 0, nil, errors.Wrapf(ErrChecksum, "decoding %q", encoded)
	case err != nil:
		return 0, nil, errors.Wrapf(ErrInvalidFormat, "decoding %q: %s", encoded, err)
	}
	return version, payload, nil
}
