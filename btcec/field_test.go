package btcec

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
)

func TestNewFieldElement(t *testing.T) {
	tests := []struct {
		name    string
		num     int64
		prime   int64
		wantErr bool
	}{
		{"zero", 0, 13, false},
		{"largest", 12, 13, false},
		{"equal to prime", 13, 13, true},
		{"negative", -1, 13, true},
		{"modulus one", 0, 1, true},
	}
	for _, test := range tests {
		_, err := NewFieldElement(big.NewInt(test.num), big.NewInt(test.prime))
		if (err != nil) != test.wantErr {
			t.Errorf("%s: unexpected error state %v", test.name, err)
		}
		if err != nil && !errors.Is(err, ErrOutOfRange) {
			t.Errorf("%s: got %v, want ErrOutOfRange", test.name, err)
		}
	}

	reduced := NewFieldElementReduced(big.NewInt(-3), big.NewInt(13))
	if reduced.Num().Int64() != 10 {
		t.Errorf("NewFieldElementReduced(-3, 13) = %s, want 10", reduced)
	}
}

func TestFieldElementArithmetic(t *testing.T) {
	fe := func(num int64) *FieldElement { return newFieldElementInt64(num, 31) }

	if got := fe(2).Add(fe(15)); !got.Equal(fe(17)) {
		t.Errorf("2 + 15 = %s, want 17", got)
	}
	if got := fe(17).Add(fe(21)); !got.Equal(fe(7)) {
		t.Errorf("17 + 21 = %s, want 7", got)
	}
	if got := fe(29).Sub(fe(4)); !got.Equal(fe(25)) {
		t.Errorf("29 - 4 = %s, want 25", got)
	}
	if got := fe(15).Sub(fe(30)); !got.Equal(fe(16)) {
		t.Errorf("15 - 30 = %s, want 16", got)
	}
	if got := fe(24).Mul(fe(19)); !got.Equal(fe(22)) {
		t.Errorf("24 * 19 = %s, want 22", got)
	}

	pow, err := fe(17).Pow(big.NewInt(3))
	if err != nil || !pow.Equal(fe(15)) {
		t.Errorf("17^3 = %s (%v), want 15", pow, err)
	}
	pow, err = fe(17).Pow(big.NewInt(-3))
	if err != nil || !pow.Equal(fe(29)) {
		t.Errorf("17^-3 = %s (%v), want 29", pow, err)
	}
	pow, err = fe(4).Pow(big.NewInt(-4))
	if err != nil || !pow.Mul(fe(11)).Equal(fe(13)) {
		t.Errorf("4^-4 * 11 = %s (%v), want 13", pow, err)
	}

	quotient, err := fe(3).Div(fe(24))
	if err != nil || !quotient.Equal(fe(4)) {
		t.Errorf("3 / 24 = %s (%v), want 4", quotient, err)
	}
}

func TestFieldElementZeroDivision(t *testing.T) {
	zero := newFieldElementInt64(0, 31)
	one := newFieldElementInt64(1, 31)

	if _, err := one.Div(zero); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("1 / 0: got %v, want ErrDivisionByZero", err)
	}
	if _, err := zero.Inv(); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("0^-1: got %v, want ErrDivisionByZero", err)
	}
	if _, err := zero.Pow(big.NewInt(-2)); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("0^-2: got %v, want ErrDivisionByZero", err)
	}

	// 0^(p-1) is zero even though the exponent reduces to zero.
	pow, err := zero.Pow(big.NewInt(30))
	if err != nil || !pow.IsZero() {
		t.Errorf("0^30 = %s (%v), want 0", pow, err)
	}
	pow, err = zero.Pow(big.NewInt(0))
	if err != nil || !pow.Equal(one) {
		t.Errorf("0^0 = %s (%v), want 1", pow, err)
	}
}

func TestFieldElementPrimeMismatch(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrPrimeMismatch) {
			t.Fatalf("expected an ErrPrimeMismatch panic, got %v", r)
		}
	}()
	newFieldElementInt64(1, 31).Add(newFieldElementInt64(1, 223))
}

// TestFieldElementProperties checks the field axioms on random elements of
// the secp256k1 base field.
func TestFieldElementProperties(t *testing.T) {
	prime := S256().P()
	rng := rand.New(rand.NewSource(1))
	random := func() *FieldElement {
		return NewFieldElementReduced(new(big.Int).Rand(rng, prime), prime)
	}

	for i := 0; i < 20; i++ {
		a, b, c := random(), random(), random()

		if !a.Add(b).Add(c).Equal(a.Add(b.Add(c))) {
			t.Fatalf("addition is not associative for %s, %s, %s", a, b, c)
		}
		if !a.Mul(b.Add(c)).Equal(a.Mul(b).Add(a.Mul(c))) {
			t.Fatalf("multiplication does not distribute for %s, %s, %s", a, b, c)
		}
		if a.IsZero() {
			continue
		}
		inv, err := a.Inv()
		if err != nil {
			t.Fatalf("Inv(%s): %s", a, err)
		}
		if got := a.Mul(inv); got.Num().Cmp(bigOne) != 0 {
			t.Fatalf("%s * %s = %s, want 1", a, inv, got)
		}
	}
}

func TestScalar(t *testing.T) {
	curve := S256()
	nMinusOne := new(big.Int).Sub(curve.N(), bigOne)

	s := curve.NewScalar(nMinusOne)
	if !s.Add(curve.NewScalar(big.NewInt(2))).Equal(curve.NewScalar(bigOne)) {
		t.Errorf("(n-1) + 2 != 1 mod n")
	}
	if !s.IsOverHalfOrder() || s.Neg().IsOverHalfOrder() {
		t.Errorf("IsOverHalfOrder is wrong for n-1 and 1")
	}
	if _, err := curve.NewScalar(bigZero).Inv(); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("inverse of the zero scalar: got %v", err)
	}

	b, err := curve.NewScalar(big.NewInt(0x0102)).Bytes32()
	if err != nil {
		t.Fatalf("Bytes32: %s", err)
	}
	if b[30] != 0x01 || b[31] != 0x02 || b[0] != 0 {
		t.Errorf("Bytes32: got %x", b)
	}

	wide := NewScalar(new(big.Int).Lsh(bigOne, 300), new(big.Int).Add(new(big.Int).Lsh(bigOne, 301), bigOne))
	if _, err := wide.Bytes32(); err == nil {
		t.Errorf("Bytes32 of a 301-bit scalar succeeded")
	}

	if !ScalarFromBytes(curve.N().Bytes()).IsZero() {
		t.Errorf("ScalarFromBytes(n) is not zero")
	}
}
