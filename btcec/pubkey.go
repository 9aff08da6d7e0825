// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcec

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/satoshilab/scriptcore/chaincfg"
	"github.com/satoshilab/scriptcore/util"
)

// These constants define the lengths of serialized public keys.
const (
	PubKeyBytesLenCompressed   = 33
	PubKeyBytesLenUncompressed = 65
)

const (
	pubkeyCompressed   byte = 0x2 // y_bit + x coord
	pubkeyUncompressed byte = 0x4 // x coord + y coord
)

// ErrInvalidPubKeyFormat is returned when public key bytes carry an unknown
// prefix or have the wrong length for their prefix.
var ErrInvalidPubKeyFormat = errors.New("invalid public key format")

// PublicKey is a non-infinity point of secp256k1.
type PublicKey struct {
	point *Point
}

// NewPublicKey wraps a point of secp256k1 as a public key.
func NewPublicKey(point *Point) (*PublicKey, error) {
	if point.curve != S256() {
		return nil, errors.New("public keys must be secp256k1 points")
	}
	if point.IsInfinity() {
		return nil, errors.New("the point at infinity is not a valid public key")
	}
	return &PublicKey{point: point}, nil
}

// Point returns the curve point of the key.
func (p *PublicKey) Point() *Point {
	return p.point
}

// IsEqual reports whether the two keys are the same point.
func (p *PublicKey) IsEqual(otherPubKey *PublicKey) bool {
	return p.point.Equal(otherPubKey.point)
}

// ParsePubKey parses a SEC encoded secp256k1 public key. Both the 65-byte
// uncompressed form (0x04 || x || y) and the 33-byte compressed form
// (0x02/0x03 || x) are accepted.
func ParsePubKey(pubKeyStr []byte) (*PublicKey, error) {
	curve := S256()
	if len(pubKeyStr) == 0 {
		return nil, errors.Wrap(ErrInvalidPubKeyFormat, "pubkey string is empty")
	}

	format := pubKeyStr[0]
	ybit := (format & 0x1) == 0x1
	format &= ^byte(0x1)

	switch len(pubKeyStr) {
	case PubKeyBytesLenUncompressed:
		if format != pubkeyUncompressed || ybit {
			return nil, errors.Wrapf(ErrInvalidPubKeyFormat,
				"invalid magic in pubkey str: %d", pubKeyStr[0])
		}
		x := new(big.Int).SetBytes(pubKeyStr[1:33])
		y := new(big.Int).SetBytes(pubKeyStr[33:])
		point, err := curve.NewPoint(x, y)
		if err != nil {
			return nil, err
		}
		return &PublicKey{point: point}, nil

	case PubKeyBytesLenCompressed:
		// format is 0x2 | solution, <X coordinate>
		// solution determines which solution of the curve we use.
		// y^2 = x^3 + 7
		if format != pubkeyCompressed {
			return nil, errors.Wrapf(ErrInvalidPubKeyFormat,
				"invalid magic in compressed pubkey string: %d", pubKeyStr[0])
		}
		x, err := NewFieldElement(new(big.Int).SetBytes(pubKeyStr[1:33]), curve.params.P)
		if err != nil {
			return nil, errors.Wrap(ErrNotOnCurve, "pubkey X parameter is >= to P")
		}
		y, err := curve.decompressY(x, ybit)
		if err != nil {
			return nil, err
		}
		return &PublicKey{point: curve.point(x, y)}, nil

	default: // wrong!
		return nil, errors.Wrapf(ErrInvalidPubKeyFormat,
			"invalid pub key length %d", len(pubKeyStr))
	}
}

// decompressY returns the y coordinate for x whose parity matches odd.
func (curve *KoblitzCurve) decompressY(x *FieldElement, odd bool) (*FieldElement, error) {
	y, err := curve.sqrt(curve.rhs(x))
	if err != nil {
		return nil, errors.Wrapf(ErrNotOnCurve, "no point with x = %s", x.num)
	}
	if y.IsOdd() != odd {
		y = y.Neg()
	}
	return y, nil
}

// SerializeUncompressed serializes a public key in the 65-byte uncompressed
// format.
func (p *PublicKey) SerializeUncompressed() []byte {
	b := make([]byte, 0, PubKeyBytesLenUncompressed)
	b = append(b, pubkeyUncompressed)
	b = append(b, coordinateBytes(p.point.x)...)
	return append(b, coordinateBytes(p.point.y)...)
}

// SerializeCompressed serializes a public key in the 33-byte compressed
// format.
func (p *PublicKey) SerializeCompressed() []byte {
	b := make([]byte, 0, PubKeyBytesLenCompressed)
	format := pubkeyCompressed
	if p.point.y.IsOdd() {
		format |= 0x1
	}
	b = append(b, format)
	return append(b, coordinateBytes(p.point.x)...)
}

// Serialize returns the compressed or uncompressed SEC encoding of p.
func (p *PublicKey) Serialize(compressed bool) []byte {
	if compressed {
		return p.SerializeCompressed()
	}
	return p.SerializeUncompressed()
}

// Hash160 returns ripemd160(sha256(sec)) of the chosen SEC encoding.
func (p *PublicKey) Hash160(compressed bool) []byte {
	return util.Hash160(p.Serialize(compressed))
}

// Address returns the Base58Check pay-to-pubkey-hash address of p on the
// given network.
func (p *PublicKey) Address(compressed bool, params *chaincfg.Params) string {
	return util.EncodeAddress(p.Hash160(compressed), params)
}

// coordinateBytes serializes a secp256k1 coordinate as 32 big-endian bytes.
func coordinateBytes(fe *FieldElement) []byte {
	b, err := fe.Bytes(32)
	if err != nil {
		panic(err) // coordinates of secp256k1 are below 2^256
	}
	return b
}
