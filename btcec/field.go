// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcec

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
)

var (
	// ErrDivisionByZero is returned when inverting, or dividing by, the zero
	// element of a field.
	ErrDivisionByZero = errors.New("division by the zero element")

	// ErrOutOfRange is returned by NewFieldElement when the value is not in
	// [0, prime).
	ErrOutOfRange = errors.New("field element out of range")

	// ErrPrimeMismatch is the panic value raised when two elements of
	// different fields are combined.
	ErrPrimeMismatch = errors.New("field elements have different moduli")
)

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
	bigTwo  = big.NewInt(2)
)

// FieldElement is an integer modulo a prime. Values are immutable: every
// operation returns a new element and never modifies its operands.
type FieldElement struct {
	num   *big.Int
	prime *big.Int
}

// NewFieldElement returns num as an element of the field of order prime. It
// fails if num is not in [0, prime) or prime is not greater than one.
func NewFieldElement(num, prime *big.Int) (*FieldElement, error) {
	if prime.Cmp(bigOne) <= 0 {
		return nil, errors.Wrapf(ErrOutOfRange, "modulus %s is not a prime", prime)
	}
	if num.Sign() < 0 || num.Cmp(prime) >= 0 {
		return nil, errors.Wrapf(ErrOutOfRange, "num %s not in field range 0 to %s", num,
			new(big.Int).Sub(prime, bigOne))
	}
	return &FieldElement{
		num:   new(big.Int).Set(num),
		prime: new(big.Int).Set(prime),
	}, nil
}

// NewFieldElementReduced maps any signed integer into the field of order
// prime using Euclidean reduction. prime must be positive.
func NewFieldElementReduced(num, prime *big.Int) *FieldElement {
	return &FieldElement{
		num:   new(big.Int).Mod(num, prime),
		prime: new(big.Int).Set(prime),
	}
}

// newFieldElementInt64 is a test and constants helper.
func newFieldElementInt64(num, prime int64) *FieldElement {
	return NewFieldElementReduced(big.NewInt(num), big.NewInt(prime))
}

// field returns an element of the same field as f holding num reduced.
func (f *FieldElement) field(num *big.Int) *FieldElement {
	return &FieldElement{
		num:   num.Mod(num, f.prime),
		prime: f.prime,
	}
}

// mustMatch panics when f and other don't share a modulus. Mixing fields is
// a programming error, not an input error.
func (f *FieldElement) mustMatch(other *FieldElement) {
	if f.prime.Cmp(other.prime) != 0 {
		panic(errors.Wrapf(ErrPrimeMismatch, "%s and %s", f.prime, other.prime))
	}
}

// Num returns a copy of the element's value.
func (f *FieldElement) Num() *big.Int {
	return new(big.Int).Set(f.num)
}

// Prime returns a copy of the element's modulus.
func (f *FieldElement) Prime() *big.Int {
	return new(big.Int).Set(f.prime)
}

// Equal reports whether f and other hold the same value in the same field.
func (f *FieldElement) Equal(other *FieldElement) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.num.Cmp(other.num) == 0 && f.prime.Cmp(other.prime) == 0
}

// IsZero reports whether f is the additive identity.
func (f *FieldElement) IsZero() bool {
	return f.num.Sign() == 0
}

// IsOdd reports whether the canonical value of f is odd.
func (f *FieldElement) IsOdd() bool {
	return f.num.Bit(0) == 1
}

// Add returns f + other.
func (f *FieldElement) Add(other *FieldElement) *FieldElement {
	f.mustMatch(other)
	return f.field(new(big.Int).Add(f.num, other.num))
}

// Sub returns f - other.
func (f *FieldElement) Sub(other *FieldElement) *FieldElement {
	f.mustMatch(other)
	return f.field(new(big.Int).Sub(f.num, other.num))
}

// Mul returns f * other.
func (f *FieldElement) Mul(other *FieldElement) *FieldElement {
	f.mustMatch(other)
	return f.field(new(big.Int).Mul(f.num, other.num))
}

// MulInt returns f added to itself k times.
func (f *FieldElement) MulInt(k int64) *FieldElement {
	return f.field(new(big.Int).Mul(f.num, big.NewInt(k)))
}

// Neg returns the additive inverse of f.
func (f *FieldElement) Neg() *FieldElement {
	return f.field(new(big.Int).Neg(f.num))
}

// Square returns f * f.
func (f *FieldElement) Square() *FieldElement {
	return f.Mul(f)
}

// Pow returns f raised to exp. The exponent is first reduced modulo
// prime-1, so negative exponents are supported for non-zero elements.
// Raising zero to a negative power returns ErrDivisionByZero.
func (f *FieldElement) Pow(exp *big.Int) (*FieldElement, error) {
	if f.IsZero() {
		switch exp.Sign() {
		case -1:
			return nil, errors.Wrap(ErrDivisionByZero, "zero raised to a negative power")
		case 0:
			return f.field(big.NewInt(1)), nil
		default:
			return f.field(big.NewInt(0)), nil
		}
	}
	order := new(big.Int).Sub(f.prime, bigOne)
	return f.pow(new(big.Int).Mod(exp, order)), nil
}

// pow is left-to-right square-and-multiply for a non-negative exponent.
func (f *FieldElement) pow(exp *big.Int) *FieldElement {
	result := big.NewInt(1)
	for i := exp.BitLen() - 1; i >= 0; i-- {
		result.Mul(result, result)
		result.Mod(result, f.prime)
		if exp.Bit(i) == 1 {
			result.Mul(result, f.num)
			result.Mod(result, f.prime)
		}
	}
	return f.field(result)
}

// Inv returns the multiplicative inverse of f, computed as f^(prime-2).
func (f *FieldElement) Inv() (*FieldElement, error) {
	if f.IsZero() {
		return nil, errors.Wrapf(ErrDivisionByZero, "inverse of zero in F_%s", f.prime)
	}
	return f.pow(new(big.Int).Sub(f.prime, bigTwo)), nil
}

// Div returns f / other.
func (f *FieldElement) Div(other *FieldElement) (*FieldElement, error) {
	f.mustMatch(other)
	inv, err := other.Inv()
	if err != nil {
		return nil, err
	}
	return f.Mul(inv), nil
}

// Bytes returns the value of f as a big-endian byte slice of exactly size
// bytes, failing if it does not fit.
func (f *FieldElement) Bytes(size int) ([]byte, error) {
	if (f.num.BitLen()+7)/8 > size {
		return nil, errors.Errorf("value %s does not fit in %d bytes", f.num, size)
	}
	return f.num.FillBytes(make([]byte, size)), nil
}

// String returns the element in the form FieldElement_prime(num).
func (f *FieldElement) String() string {
	return fmt.Sprintf("FieldElement_%s(%s)", f.prime, f.num)
}
