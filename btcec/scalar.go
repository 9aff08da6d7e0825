// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcec

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
)

// ScalarSize is the length of a serialized secp256k1 scalar.
const ScalarSize = 32

// Scalar is an integer modulo the order of a curve's generator. Private keys,
// nonces and signature components are scalars. Like FieldElement it is
// immutable.
type Scalar struct {
	fe *FieldElement
}

// NewScalar reduces k modulo order.
func NewScalar(k, order *big.Int) *Scalar {
	return &Scalar{fe: NewFieldElementReduced(k, order)}
}

// ScalarFromBytes interprets b as a big-endian integer and reduces it modulo
// the secp256k1 group order.
func ScalarFromBytes(b []byte) *Scalar {
	return S256().NewScalar(new(big.Int).SetBytes(b))
}

func (s *Scalar) wrap(fe *FieldElement) *Scalar {
	return &Scalar{fe: fe}
}

// BigInt returns a copy of the scalar's value.
func (s *Scalar) BigInt() *big.Int {
	return s.fe.Num()
}

// Order returns a copy of the modulus of s.
func (s *Scalar) Order() *big.Int {
	return s.fe.Prime()
}

// Add returns s + other.
func (s *Scalar) Add(other *Scalar) *Scalar {
	return s.wrap(s.fe.Add(other.fe))
}

// Sub returns s - other.
func (s *Scalar) Sub(other *Scalar) *Scalar {
	return s.wrap(s.fe.Sub(other.fe))
}

// Mul returns s * other.
func (s *Scalar) Mul(other *Scalar) *Scalar {
	return s.wrap(s.fe.Mul(other.fe))
}

// Neg returns order - s.
func (s *Scalar) Neg() *Scalar {
	return s.wrap(s.fe.Neg())
}

// Inv returns the inverse of s modulo the order.
func (s *Scalar) Inv() (*Scalar, error) {
	inv, err := s.fe.Inv()
	if err != nil {
		return nil, err
	}
	return s.wrap(inv), nil
}

// Div returns s / other.
func (s *Scalar) Div(other *Scalar) (*Scalar, error) {
	quotient, err := s.fe.Div(other.fe)
	if err != nil {
		return nil, err
	}
	return s.wrap(quotient), nil
}

// Pow returns s raised to exp.
func (s *Scalar) Pow(exp *big.Int) (*Scalar, error) {
	power, err := s.fe.Pow(exp)
	if err != nil {
		return nil, err
	}
	return s.wrap(power), nil
}

// IsZero reports whether s is zero.
func (s *Scalar) IsZero() bool {
	return s.fe.IsZero()
}

// Equal reports whether s and other are the same scalar of the same order.
func (s *Scalar) Equal(other *Scalar) bool {
	return s.fe.Equal(other.fe)
}

// IsOverHalfOrder reports whether s > order/2.
func (s *Scalar) IsOverHalfOrder() bool {
	half := new(big.Int).Rsh(s.fe.prime, 1)
	return s.fe.num.Cmp(half) > 0
}

// Bytes32 returns the big-endian 32-byte serialization of s.
func (s *Scalar) Bytes32() ([ScalarSize]byte, error) {
	var out [ScalarSize]byte
	b, err := s.fe.Bytes(ScalarSize)
	if err != nil {
		return out, errors.Wrap(err, "scalar does not fit a 32-byte encoding")
	}
	copy(out[:], b)
	return out, nil
}

// String returns the scalar in hex.
func (s *Scalar) String() string {
	return fmt.Sprintf("%064x", s.fe.num)
}
