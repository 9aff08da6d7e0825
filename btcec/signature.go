// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcec

import (
	"math/big"

	"github.com/pkg/errors"
)

// Errors returned by canonicalPadding.
var (
	errNegativeValue          = errors.New("value may be interpreted as negative")
	errExcessivelyPaddedValue = errors.New("value is excessively padded")
)

// ErrMalformedSignature wraps every DER parsing failure.
var ErrMalformedSignature = errors.New("malformed signature")

const (
	derSequenceID = 0x30
	derIntegerID  = 0x02

	// minSigLen is the minimum length of a DER encoded signature: the
	// sequence header plus two integers of one byte each.
	minSigLen = 8

	// maxSigLen is the maximum length of a DER encoded signature: the
	// sequence header plus two 33-byte integers with their headers.
	maxSigLen = 72
)

// Signature is an ECDSA signature. The components are kept as plain
// integers so that values outside [1, N-1] survive parsing and are rejected
// by verification rather than silently reduced.
type Signature struct {
	R *big.Int
	S *big.Int
}

// NewSignature returns the signature (r, s).
func NewSignature(r, s *big.Int) *Signature {
	return &Signature{R: new(big.Int).Set(r), S: new(big.Int).Set(s)}
}

// Serialize returns the DER encoding of the signature:
// 0x30 <length> 0x02 <length r> r 0x02 <length s> s
// where each integer is minimally encoded and prefixed with 0x00 when its
// high bit is set.
func (sig *Signature) Serialize() []byte {
	rb := canonicalizeInt(sig.R)
	sb := canonicalizeInt(sig.S)

	length := 6 + len(rb) + len(sb)
	b := make([]byte, 0, length)
	b = append(b, derSequenceID, byte(length-2))
	b = append(b, derIntegerID, byte(len(rb)))
	b = append(b, rb...)
	b = append(b, derIntegerID, byte(len(sb)))
	return append(b, sb...)
}

// canonicalizeInt returns the bytes for the passed big integer adjusted as
// necessary to ensure that a big-endian encoded integer can't possibly be
// misinterpreted as a negative number. This can happen when the most
// significant bit is set, so it is padded by a leading zero byte in this
// case. Also, the returned bytes will have at least a single byte when the
// passed value is 0. This is required for DER encoding.
func canonicalizeInt(val *big.Int) []byte {
	b := val.Bytes()
	if len(b) == 0 {
		b = []byte{0x00}
	}
	if b[0]&0x80 != 0 {
		paddedBytes := make([]byte, len(b)+1)
		copy(paddedBytes[1:], b)
		b = paddedBytes
	}
	return b
}

// canonicalPadding checks whether a big-endian encoded integer could
// possibly be misinterpreted as a negative number (even though OpenSSL
// treats all numbers as unsigned), or if there is any unnecessary
// leading zero padding.
func canonicalPadding(b []byte) error {
	switch {
	case b[0]&0x80 == 0x80:
		return errNegativeValue
	case len(b) > 1 && b[0] == 0x00 && b[1]&0x80 != 0x80:
		return errExcessivelyPaddedValue
	default:
		return nil
	}
}

// ParseDERSignature parses a DER encoded signature. Any structural mismatch
// (wrong markers, inconsistent lengths, trailing bytes, non-canonical
// integers) is reported as an error wrapping ErrMalformedSignature.
func ParseDERSignature(sigStr []byte) (*Signature, error) {
	fail := func(format string, args ...interface{}) (*Signature, error) {
		return nil, errors.Wrapf(ErrMalformedSignature, format, args...)
	}

	if len(sigStr) < minSigLen {
		return fail("too short: %d < %d", len(sigStr), minSigLen)
	}
	if len(sigStr) > maxSigLen {
		return fail("too long: %d > %d", len(sigStr), maxSigLen)
	}

	// 0x30
	index := 0
	if sigStr[index] != derSequenceID {
		return fail("no header magic: 0x%02x", sigStr[index])
	}
	index++
	// length of remaining message
	siglen := int(sigStr[index])
	index++
	if siglen != len(sigStr)-2 {
		return fail("bad length: %d != %d", siglen, len(sigStr)-2)
	}

	r, index, err := parseDERInteger(sigStr, index, "R")
	if err != nil {
		return nil, err
	}
	s, index, err := parseDERInteger(sigStr, index, "S")
	if err != nil {
		return nil, err
	}
	if index != len(sigStr) {
		return fail("%d trailing bytes", len(sigStr)-index)
	}
	return &Signature{R: r, S: s}, nil
}

// parseDERInteger reads a 0x02 <length> <bytes> integer starting at index and
// returns it with the index of the following byte.
func parseDERInteger(sigStr []byte, index int, name string) (*big.Int, int, error) {
	if index+2 > len(sigStr) {
		return nil, 0, errors.Wrapf(ErrMalformedSignature, "%s is missing", name)
	}
	if sigStr[index] != derIntegerID {
		return nil, 0, errors.Wrapf(ErrMalformedSignature,
			"%s integer marker is 0x%02x, want 0x%02x", name, sigStr[index], derIntegerID)
	}
	index++
	length := int(sigStr[index])
	index++
	if length <= 0 || index+length > len(sigStr) {
		return nil, 0, errors.Wrapf(ErrMalformedSignature, "bogus %s length %d", name, length)
	}
	raw := sigStr[index : index+length]
	if err := canonicalPadding(raw); err != nil {
		return nil, 0, errors.Wrapf(ErrMalformedSignature, "%s: %s", name, err)
	}
	return new(big.Int).SetBytes(raw), index + length, nil
}

// IsEqual compares this Signature instance to the one passed, returning true
// if both Signatures are equivalent. A signature is equivalent to another, if
// they both have the same scalar value for R and S.
func (sig *Signature) IsEqual(otherSig *Signature) bool {
	return sig.R.Cmp(otherSig.R) == 0 &&
		sig.S.Cmp(otherSig.S) == 0
}

// IsLowS reports whether S is at most half the secp256k1 group order.
func (sig *Signature) IsLowS() bool {
	return sig.S.Cmp(S256().halfOrder) <= 0
}

// Verify reports whether the signature is a valid signature of the message
// scalar z by pubKey.
func (sig *Signature) Verify(z *big.Int, pubKey *PublicKey) bool {
	return pubKey.Verify(z, sig)
}

// Verify reports whether sig is a valid signature of the message scalar z:
// with u = z/s and v = r/s, the point u·G + v·P must not be the identity and
// its x coordinate reduced modulo N must equal r.
func (p *PublicKey) Verify(z *big.Int, sig *Signature) bool {
	curve := p.point.curve
	n := curve.params.N
	if sig.R.Sign() <= 0 || sig.R.Cmp(n) >= 0 {
		return false
	}
	if sig.S.Sign() <= 0 || sig.S.Cmp(n) >= 0 {
		return false
	}

	sInv, err := curve.NewScalar(sig.S).Inv()
	if err != nil {
		return false
	}
	u := curve.NewScalar(z).Mul(sInv)
	v := curve.NewScalar(sig.R).Mul(sInv)

	total := curve.ScalarBaseMult(u.BigInt()).Add(p.point.ScalarMult(v.BigInt()))
	if total.IsInfinity() {
		return false
	}
	x := new(big.Int).Mod(total.x.num, n)
	return x.Cmp(sig.R) == 0
}
