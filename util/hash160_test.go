package util

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/satoshilab/scriptcore/chaincfg"
)

func hexToBytes(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("invalid hex in source file: " + s)
	}
	return b
}

func TestHashPrimitives(t *testing.T) {
	tests := []struct {
		name string
		hash func([]byte) []byte
		in   []byte
		want string
	}{
		{"sha256 empty", Sha256, nil, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"sha1 abc", Sha1, []byte("abc"), "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{"ripemd160 empty", Ripemd160, nil, "9c1185a5c5e9fc54612808977ee8f548b2258d31"},
		{"ripemd160 abc", Ripemd160, []byte("abc"), "8eb208f7e05d987a9b044a8e98c6b087f15a0bfc"},
		{
			"hash160 generator pubkey",
			Hash160,
			hexToBytes("0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"),
			"751e76e8199196d454941c45d1b3a323f1433bd6",
		},
		{
			"hash256",
			Hash256,
			[]byte("Programming Bitcoin!"),
			"969f6056aa26f7d2795fd013fe88868d09c9f6aed96965016e1936ae47060d48",
		},
	}

	for _, test := range tests {
		got := test.hash(test.in)
		if !bytes.Equal(got, hexToBytes(test.want)) {
			t.Errorf("%s: got %x want %s", test.name, got, test.want)
		}
	}
}

func TestBase58Check(t *testing.T) {
	payload := hexToBytes("751e76e8199196d454941c45d1b3a323f1433bd6")
	encoded := EncodeBase58Check(0x00, payload)
	if encoded != "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH" {
		t.Fatalf("EncodeBase58Check: got %s", encoded)
	}

	version, decoded, err := DecodeBase58Check(encoded)
	if err != nil {
		t.Fatalf("DecodeBase58Check: %s", err)
	}
	if version != 0x00 || !bytes.Equal(decoded, payload) {
		t.Errorf("DecodeBase58Check: got version %x payload %x", version, decoded)
	}

	corrupted := "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMJ"
	_, _, err = DecodeBase58Check(corrupted)
	if !errors.Is(err, ErrChecksum) {
		t.Errorf("DecodeBase58Check(corrupted): got %v want ErrChecksum", err)
	}

	_, _, err = DecodeBase58Check("1")
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("DecodeBase58Check(short): got %v want ErrInvalidFormat", err)
	}
}

func TestAddressRoundTrip(t *testing.T) {
	hash := hexToBytes("751e76e8199196d454941c45d1b3a323f1433bd6")
	tests := []struct {
		params   *chaincfg.Params
		prefixes string
	}{
		{&chaincfg.MainnetParams, "1"},
		{&chaincfg.TestnetParams, "mn"},
	}
	for _, test := range tests {
		address := EncodeAddress(hash, test.params)
		if !strings.ContainsAny(address[:1], test.prefixes) {
			t.Errorf("EncodeAddress(%s): %s does not start with one of %q",
				test.params.Name, address, test.prefixes)
			continue
		}
		decoded, params, err := DecodeAddress(address)
		if err != nil {
			t.Errorf("DecodeAddress(%s): %s", address, err)
			continue
		}
		if params != test.params || !bytes.Equal(decoded, hash) {
			t.Errorf("DecodeAddress(%s): got %x on %s", address, decoded, params.Name)
		}
	}

	wif := "KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgiuQJv1h8Ytr2S53a"
	if _, _, err := DecodeAddress(wif); !errors.Is(err, ErrInvalidAddress) {
		t.Errorf("DecodeAddress(wif): got %v want ErrInvalidAddress", err)
	}
}
