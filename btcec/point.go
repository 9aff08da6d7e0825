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
	// ErrNotOnCurve is returned when constructing a point whose coordinates
	// don't satisfy the curve equation.
	ErrNotOnCurve = errors.New("point is not on the curve")

	// ErrCurveMismatch is the panic value raised when points of different
	// curves are added.
	ErrCurveMismatch = errors.New("points are on different curves")
)

// Point is an element of the group of a curve: either the point at infinity
// or an affine pair (x, y) satisfying the curve equation. Points are
// immutable.
type Point struct {
	curve *KoblitzCurve
	x, y  *FieldElement // nil for the point at infinity
}

// NewPoint returns the affine point (x, y), failing with ErrNotOnCurve when
// it doesn't satisfy the curve equation or a coordinate is outside [0, P).
func (curve *KoblitzCurve) NewPoint(x, y *big.Int) (*Point, error) {
	fx, err := NewFieldElement(x, curve.params.P)
	if err != nil {
		return nil, errors.Wrapf(ErrNotOnCurve, "x: %s", err)
	}
	fy, err := NewFieldElement(y, curve.params.P)
	if err != nil {
		return nil, errors.Wrapf(ErrNotOnCurve, "y: %s", err)
	}
	if !curve.isOnCurve(fx, fy) {
		return nil, errors.Wrapf(ErrNotOnCurve, "(%s, %s) on %s", x, y, curve.params.Name)
	}
	return &Point{curve: curve, x: fx, y: fy}, nil
}

// Infinity returns the identity of the curve's group.
func (curve *KoblitzCurve) Infinity() *Point {
	return &Point{curve: curve}
}

// point builds the result of a group operation. Those always land on the
// curve, so a failed check means the arithmetic itself is broken.
func (curve *KoblitzCurve) point(x, y *FieldElement) *Point {
	if !curve.isOnCurve(x, y) {
		panic(errors.Wrapf(ErrNotOnCurve, "group law produced (%s, %s)", x, y))
	}
	return &Point{curve: curve, x: x, y: y}
}

// Curve returns the curve the point belongs to.
func (p *Point) Curve() *KoblitzCurve {
	return p.curve
}

// IsInfinity reports whether p is the point at infinity.
func (p *Point) IsInfinity() bool {
	return p.x == nil
}

// X returns the x coordinate of p, or nil for the point at infinity.
func (p *Point) X() *FieldElement {
	return p.x
}

// Y returns the y coordinate of p, or nil for the point at infinity.
func (p *Point) Y() *FieldElement {
	return p.y
}

// Equal reports whether p and other are the same point of the same curve.
// The point at infinity equals only itself.
func (p *Point) Equal(other *Point) bool {
	if p.curve != other.curve {
		return false
	}
	if p.IsInfinity() || other.IsInfinity() {
		return p.IsInfinity() && other.IsInfinity()
	}
	return p.x.Equal(other.x) && p.y.Equal(other.y)
}

// Neg returns the additive inverse of p.
func (p *Point) Neg() *Point {
	if p.IsInfinity() {
		return p
	}
	return &Point{curve: p.curve, x: p.x, y: p.y.Neg()}
}

// Add returns p + other using the chord-and-tangent rule.
func (p *Point) Add(other *Point) *Point {
	if p.curve != other.curve {
		panic(errors.Wrapf(ErrCurveMismatch, "%s + %s", p.curve.params.Name, other.curve.params.Name))
	}

	// P + O = P and O + P = P.
	if p.IsInfinity() {
		return other
	}
	if other.IsInfinity() {
		return p
	}

	if p.x.Equal(other.x) {
		// Same x with y1 + y2 = 0 covers both the additive inverse and the
		// vertical tangent at y = 0.
		if p.y.Add(other.y).IsZero() {
			return p.curve.Infinity()
		}
		return p.Double()
	}

	// s = (y2 - y1) / (x2 - x1)
	slope, err := other.y.Sub(p.y).Div(other.x.Sub(p.x))
	if err != nil {
		panic(err) // x1 != x2
	}
	// x3 = s² - x1 - x2
	x3 := slope.Square().Sub(p.x).Sub(other.x)
	// y3 = s(x1 - x3) - y1
	y3 := slope.Mul(p.x.Sub(x3)).Sub(p.y)
	return p.curve.point(x3, y3)
}

// Double returns p + p.
func (p *Point) Double() *Point {
	if p.IsInfinity() {
		return p
	}
	// A vertical tangent meets the curve at infinity.
	if p.y.IsZero() {
		return p.curve.Infinity()
	}

	// s = (3x² + a) / 2y
	slope, err := p.x.Square().MulInt(3).Add(p.curve.a).Div(p.y.MulInt(2))
	if err != nil {
		panic(err) // y != 0
	}
	// x3 = s² - 2x
	x3 := slope.Square().Sub(p.x.MulInt(2))
	// y3 = s(x - x3) - y
	y3 := slope.Mul(p.x.Sub(x3)).Sub(p.y)
	return p.curve.point(x3, y3)
}

// ScalarMult returns k·p. When the curve has a known group order k is first
// reduced modulo it, otherwise a negative k multiplies -p by |k|. The
// multiplication is an iterative double-and-add over the bits of k.
func (p *Point) ScalarMult(k *big.Int) *Point {
	coefficient := new(big.Int).Set(k)
	addend := p
	if n := p.curve.params.N; n != nil {
		coefficient.Mod(coefficient, n)
	} else if coefficient.Sign() < 0 {
		coefficient.Neg(coefficient)
		addend = p.Neg()
	}

	result := p.curve.Infinity()
	for i := 0; i < coefficient.BitLen(); i++ {
		if coefficient.Bit(i) == 1 {
			result = result.Add(addend)
		}
		addend = addend.Double()
	}
	return result
}

// String returns the point as (x, y)_a_b, or Point(infinity).
func (p *Point) String() string {
	if p.IsInfinity() {
		return "Point(infinity)"
	}
	return fmt.Sprintf("Point(%s,%s)_%s_%s FieldElement(%s)",
		p.x.num, p.y.num, p.curve.params.A, p.curve.params.B, p.curve.params.P)
}
