// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcec

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/satoshilab/scriptcore/chaincfg"
	"github.com/satoshilab/scriptcore/util"
)

func TestPrivKeys(t *testing.T) {
	tests := []struct {
		name string
		key  []byte
	}{
		{
			name: "check curve",
			key: []byte{
				0xea, 0xf0, 0x2c, 0xa3, 0x48, 0xc5, 0x24, 0xe6,
				0x39, 0x26, 0x55, 0xba, 0x4d, 0x29, 0x60, 0x3c,
				0xd1, 0xa7, 0x34, 0x7d, 0x9d, 0x65, 0xcf, 0xe9,
				0x3c, 0xe1, 0xeb, 0xff, 0xdc, 0xa2, 0x26, 0x94,
			},
		},
	}

	for _, test := range tests {
		priv, err := PrivKeyFromBytes(test.key)
		if err != nil {
			t.Fatalf("%s: PrivKeyFromBytes: %s", test.name, err)
		}
		pub := priv.PubKey()

		if _, err := ParsePubKey(pub.SerializeUncompressed()); err != nil {
			t.Errorf("%s privkey: %v", test.name, err)
			continue
		}

		serializedKey := priv.Serialize()
		if !bytes.Equal(serializedKey, test.key) {
			t.Errorf("%s unexpected serialized bytes - got: %x, "+
				"want: %x", test.name, serializedKey, test.key)
		}
	}
}

func TestPrivKeyRange(t *testing.T) {
	n := S256().N()
	invalid := []*big.Int{
		big.NewInt(0),
		big.NewInt(-1),
		n,
		new(big.Int).Add(n, bigOne),
	}
	for _, e := range invalid {
		if _, err := PrivKeyFromBigInt(e); !errors.Is(err, ErrInvalidPrivateKey) {
			t.Errorf("PrivKeyFromBigInt(%x): got %v, want ErrInvalidPrivateKey", e, err)
		}
	}
	if _, err := PrivKeyFromBytes(make([]byte, 33)); !errors.Is(err, ErrInvalidPrivateKey) {
		t.Errorf("33-byte secret: got %v, want ErrInvalidPrivateKey", err)
	}
	if _, err := PrivKeyFromScalar(NewScalar(bigOne, big.NewInt(223))); !errors.Is(err, ErrInvalidPrivateKey) {
		t.Errorf("scalar of another group: got %v, want ErrInvalidPrivateKey", err)
	}

	priv, err := PrivKeyFromBigInt(new(big.Int).Sub(n, bigOne))
	if err != nil {
		t.Fatalf("PrivKeyFromBigInt(n-1): %s", err)
	}
	// (n-1)·G = -G
	if !priv.PubKey().Point().Equal(S256().G().Neg()) {
		t.Errorf("(n-1)·G != -G")
	}

	// Short secrets are left padded.
	short, err := PrivKeyFromBytes([]byte{0x01})
	if err != nil {
		t.Fatalf("PrivKeyFromBytes(0x01): %s", err)
	}
	if len(short.Serialize()) != PrivKeyBytesLen || short.Serialize()[31] != 0x01 {
		t.Errorf("unexpected serialization %x", short.Serialize())
	}
}

func TestNewPrivateKey(t *testing.T) {
	first, err := NewPrivateKey()
	if err != nil {
		t.Fatalf("NewPrivateKey: %s", err)
	}
	second, err := NewPrivateKey()
	if err != nil {
		t.Fatalf("NewPrivateKey: %s", err)
	}
	if first.Secret().Equal(second.Secret()) {
		t.Fatalf("two fresh keys share a secret")
	}
}

func TestWIF(t *testing.T) {
	tests := []struct {
		secret     *big.Int
		compressed bool
		params     *chaincfg.Params
		wif        string
	}{
		{big.NewInt(1), true, &chaincfg.MainnetParams, "KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWn"},
		{big.NewInt(1), false, &chaincfg.MainnetParams, "5HpHagT65TZzG1PH3CSu63k8DbpvD8s5ip4nEB3kEsreAnchuDf"},
		{big.NewInt(5003), true, &chaincfg.TestnetParams, "cMahea7zqjxrtgAbB7LSGbcQUr1uX1ojuat9jZodMN8rFTv2sfUK"},
		{new(big.Int).Exp(big.NewInt(2021), big.NewInt(5), nil), false, &chaincfg.TestnetParams, "91avARGdfge8E4tZfYLoxeJ5sGBdNJQH4kvjpWAxgzczjbCwxic"},
		{big.NewInt(0x54321deadbeef), true, &chaincfg.MainnetParams, "KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgiuQJv1h8Ytr2S53a"},
	}
	for _, test := range tests {
		priv, err := PrivKeyFromBigInt(test.secret)
		if err != nil {
			t.Fatalf("PrivKeyFromBigInt(%x): %s", test.secret, err)
		}
		wif := priv.WIF(test.compressed, test.params)
		if wif != test.wif {
			t.Errorf("WIF of %x: got %s, want %s", test.secret, wif, test.wif)
			continue
		}

		decoded, compressed, params, err := DecodeWIF(wif)
		if err != nil {
			t.Errorf("DecodeWIF(%s): %s", wif, err)
			continue
		}
		if !decoded.Secret().Equal(priv.Secret()) || compressed != test.compressed || params != test.params {
			t.Errorf("DecodeWIF(%s) = (%x, %t, %s)", wif, decoded.Serialize(), compressed, params.Name)
		}
	}
}

func TestDecodeWIFErrors(t *testing.T) {
	tests := []struct {
		name string
		wif  string
		err  error
	}{
		{"bad compression flag", "KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sfZr2ym", ErrMalformedWIF},
		{"short payload", "yNb7j1viLcZunrTHozyfJPTZJrprRSPpY485Lwzq1CFSBo1up", ErrMalformedWIF},
		{"unknown version", "5Km2kuu7vtFDPpxywn4u3NLu8iSdrqhxWT8tUKjeEXs2fPgNpLf", ErrMalformedWIF},
		{"zero secret", "5HpHagT65TZzG1PH3CSu63k8DbpvD8s5ip4nEB3kEsreAbuatmU", ErrInvalidPrivateKey},
		{"bad checksum", "KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWo", util.ErrChecksum},
		{"not base58", "0OIl", util.ErrInvalidFormat},
	}
	for _, test := range tests {
		_, _, _, err := DecodeWIF(test.wif)
		if !errors.Is(err, test.err) {
			t.Errorf("%s: got %v, want %v", test.name, err, test.err)
		}
	}
}

// fakeRandReader returns n bytes and then err.
type fakeRandReader struct {
	data []byte
	err  error
}

func (r *fakeRandReader) Read(p []byte) (int, error) {
	n := copy(p, r.data)
	r.data = r.data[n:]
	if n < len(p) {
		return n, r.err
	}
	return n, nil
}

func TestRandomNonceSource(t *testing.T) {
	// An out of range draw is skipped.
	data := append(bytes.Repeat([]byte{0xff}, 32), make([]byte, 31)...)
	data = append(data, 0x07)
	source := RandomNonceSource{Reader: &fakeRandReader{data: data}}
	k, err := source.Nonce(nil, nil, 0)
	if err != nil {
		t.Fatalf("Nonce: %s", err)
	}
	if k.BigInt().Int64() != 7 {
		t.Errorf("nonce is %s, want 7", k)
	}

	failing := RandomNonceSource{Reader: &fakeRandReader{data: make([]byte, 10), err: errors.New("fail")}}
	if _, err := failing.Nonce(nil, nil, 0); err == nil {
		t.Errorf("a failing reader produced a nonce")
	}

	priv, err := PrivKeyFromBigInt(big.NewInt(2))
	if err != nil {
		t.Fatalf("PrivKeyFromBigInt: %s", err)
	}
	if _, err := priv.SignWithNonceSource(big.NewInt(1), failing); err == nil {
		t.Errorf("signing with a failing nonce source succeeded")
	}
}
