// Copyright (c) 2010 The Go Authors. All rights reserved.
// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcec

import (
	"math/big"
	"sync"

	"github.com/pkg/errors"
)

// CurveParams describes a short Weierstrass curve y² = x³ + a·x + b over the
// prime field of order P, with generator (Gx, Gy) of prime order N. N, Gx
// and Gy may be nil for curves used only for point arithmetic.
type CurveParams struct {
	Name    string
	P       *big.Int // the order of the underlying field
	N       *big.Int // the order of the base point
	A       *big.Int // the constant a of the curve equation
	B       *big.Int // the constant b of the curve equation
	Gx, Gy  *big.Int // (x,y) of the base point
	BitSize int      // the size of the underlying field
}

// KoblitzCurve is a frozen set of curve parameters. Points, scalars and keys
// keep a pointer to the curve they were created on, and arithmetic between
// values of different curves is refused.
type KoblitzCurve struct {
	params *CurveParams

	a, b *FieldElement
	g    *Point

	// halfOrder is N/2, used for low-s normalization.
	halfOrder *big.Int

	// sqrtExp is (P+1)/4, defined when P ≡ 3 (mod 4).
	sqrtExp *big.Int
}

// NewCurve validates params and returns the curve they describe. The
// parameters are copied, so later modifications of params don't affect the
// curve.
func NewCurve(params *CurveParams) (*KoblitzCurve, error) {
	if params.P == nil || params.A == nil || params.B == nil {
		return nil, errors.New("curve parameters must include P, A and B")
	}
	if !params.P.ProbablyPrime(20) {
		return nil, errors.Errorf("curve field order %s is not prime", params.P)
	}
	frozen := &CurveParams{
		Name:    params.Name,
		P:       new(big.Int).Set(params.P),
		A:       new(big.Int).Set(params.A),
		B:       new(big.Int).Set(params.B),
		BitSize: params.BitSize,
	}
	curve := &KoblitzCurve{
		params: frozen,
		a:      NewFieldElementReduced(frozen.A, frozen.P),
		b:      NewFieldElementReduced(frozen.B, frozen.P),
	}
	if new(big.Int).And(frozen.P, big.NewInt(3)).Int64() == 3 {
		curve.sqrtExp = new(big.Int).Rsh(new(big.Int).Add(frozen.P, bigOne), 2)
	}

	if params.Gx != nil && params.Gy != nil {
		g, err := curve.NewPoint(params.Gx, params.Gy)
		if err != nil {
			return nil, errors.Wrap(err, "invalid generator")
		}
		frozen.Gx = new(big.Int).Set(params.Gx)
		frozen.Gy = new(big.Int).Set(params.Gy)
		curve.g = g
	}
	if params.N != nil {
		frozen.N = new(big.Int).Set(params.N)
		curve.halfOrder = new(big.Int).Rsh(frozen.N, 1)
	}
	return curve, nil
}

// Params returns a copy of the parameters of the curve.
func (curve *KoblitzCurve) Params() *CurveParams {
	params := *curve.params
	return &params
}

// N returns a copy of the order of the generator.
func (curve *KoblitzCurve) N() *big.Int {
	if curve.params.N == nil {
		return nil
	}
	return new(big.Int).Set(curve.params.N)
}

// P returns a copy of the order of the underlying field.
func (curve *KoblitzCurve) P() *big.Int {
	return new(big.Int).Set(curve.params.P)
}

// fieldElement returns v reduced into the curve's field.
func (curve *KoblitzCurve) fieldElement(v *big.Int) *FieldElement {
	return NewFieldElementReduced(v, curve.params.P)
}

// rhs evaluates x³ + a·x + b.
func (curve *KoblitzCurve) rhs(x *FieldElement) *FieldElement {
	return x.Square().Mul(x).Add(curve.a.Mul(x)).Add(curve.b)
}

// IsOnCurve reports whether (x, y) satisfies the curve equation. Both
// coordinates must be in [0, P).
func (curve *KoblitzCurve) IsOnCurve(x, y *big.Int) bool {
	fx, err := NewFieldElement(x, curve.params.P)
	if err != nil {
		return false
	}
	fy, err := NewFieldElement(y, curve.params.P)
	if err != nil {
		return false
	}
	return curve.isOnCurve(fx, fy)
}

func (curve *KoblitzCurve) isOnCurve(x, y *FieldElement) bool {
	return y.Square().Equal(curve.rhs(x))
}

// G returns the generator of the curve, or nil when the curve has none.
func (curve *KoblitzCurve) G() *Point {
	return curve.g
}

// NewScalar reduces k modulo the order of the curve's generator.
func (curve *KoblitzCurve) NewScalar(k *big.Int) *Scalar {
	if curve.params.N == nil {
		panic("curve " + curve.params.Name + " has no group order")
	}
	return NewScalar(k, curve.params.N)
}

// ScalarBaseMult returns k·G.
func (curve *KoblitzCurve) ScalarBaseMult(k *big.Int) *Point {
	return curve.g.ScalarMult(k)
}

// sqrt returns a square root of v when the field order is 3 mod 4.
func (curve *KoblitzCurve) sqrt(v *FieldElement) (*FieldElement, error) {
	if curve.sqrtExp == nil {
		return nil, errors.Errorf("square roots are not supported over F_%s", curve.params.P)
	}
	root := v.pow(curve.sqrtExp)
	if !root.Square().Equal(v) {
		return nil, errors.Errorf("%s is not a quadratic residue", v)
	}
	return root, nil
}

var (
	initonce sync.Once
	s256     *KoblitzCurve
)

func initS256() {
	params := &CurveParams{
		Name:    "secp256k1",
		P:       fromHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F"),
		N:       fromHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141"),
		A:       big.NewInt(0),
		B:       big.NewInt(7),
		Gx:      fromHex("79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798"),
		Gy:      fromHex("483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8"),
		BitSize: 256,
	}
	curve, err := NewCurve(params)
	if err != nil {
		panic(err)
	}
	s256 = curve
}

// S256 returns the secp256k1 curve. The same frozen instance is returned on
// every call.
func S256() *KoblitzCurve {
	initonce.Do(initS256)
	return s256
}

// fromHex converts the passed hex string into a big integer pointer and will
// panic is there is an error. This is only provided for the hard-coded
// constants so errors in the source code can be detected. It will only (and
// must only) be called for initialization purposes.
func fromHex(s string) *big.Int {
	r, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("invalid hex in source file: " + s)
	}
	return r
}
