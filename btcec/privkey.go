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

// PrivKeyBytesLen defines the length in bytes of a serialized private key.
const PrivKeyBytesLen = 32

// compressMagic is the suffix of WIF payloads whose public key is serialized
// compressed.
const compressMagic byte = 0x01

// maxSignAttempts bounds how many nonces Sign draws before giving up. Each
// retry happens with probability about 2^-256.
const maxSignAttempts = 16

var (
	// ErrInvalidPrivateKey is returned for secrets outside [1, N-1].
	ErrInvalidPrivateKey = errors.New("private key out of range")

	// ErrMalformedWIF is returned for WIF strings with a bad payload length
	// or compression suffix.
	ErrMalformedWIF = errors.New("malformed WIF private key")
)

// PrivateKey is a secp256k1 secret scalar together with its public key. The
// public key is always derived from the secret.
type PrivateKey struct {
	secret *Scalar
	pubKey *PublicKey
}

// PrivKeyFromScalar returns the private key of secret. Zero is rejected.
func PrivKeyFromScalar(secret *Scalar) (*PrivateKey, error) {
	curve := S256()
	if secret.fe.prime.Cmp(curve.params.N) != 0 {
		return nil, errors.Wrap(ErrInvalidPrivateKey, "secret is not a secp256k1 scalar")
	}
	if secret.IsZero() {
		return nil, errors.Wrap(ErrInvalidPrivateKey, "secret is zero")
	}
	pubKey := &PublicKey{point: curve.ScalarBaseMult(secret.BigInt())}
	return &PrivateKey{secret: secret, pubKey: pubKey}, nil
}

// PrivKeyFromBigInt returns the private key of e, which must be in [1, N-1].
func PrivKeyFromBigInt(e *big.Int) (*PrivateKey, error) {
	if e.Sign() <= 0 || e.Cmp(S256().params.N) >= 0 {
		return nil, errors.Wrapf(ErrInvalidPrivateKey, "secret %x", e)
	}
	return PrivKeyFromScalar(S256().NewScalar(e))
}

// PrivKeyFromBytes returns the private key whose secret is the big-endian
// integer pk. pk must be at most 32 bytes long.
func PrivKeyFromBytes(pk []byte) (*PrivateKey, error) {
	if len(pk) > PrivKeyBytesLen {
		return nil, errors.Wrapf(ErrInvalidPrivateKey, "secret of %d bytes", len(pk))
	}
	return PrivKeyFromBigInt(new(big.Int).SetBytes(pk))
}

// NewPrivateKey generates a private key from the system's secure random
// source.
func NewPrivateKey() (*PrivateKey, error) {
	k, err := randomScalar(nil)
	if err != nil {
		return nil, err
	}
	return PrivKeyFromScalar(k)
}

// PubKey returns the public key of the private key.
func (p *PrivateKey) PubKey() *PublicKey {
	return p.pubKey
}

// Secret returns the secret scalar of the private key.
func (p *PrivateKey) Secret() *Scalar {
	return p.secret
}

// Serialize returns the private key as a 32-byte big-endian number.
func (p *PrivateKey) Serialize() []byte {
	b, err := p.secret.Bytes32()
	if err != nil {
		panic(err) // secp256k1 scalars are below 2^256
	}
	return b[:]
}

// Sign signs the message scalar z with a fresh random nonce.
func (p *PrivateKey) Sign(z *big.Int) (*Signature, error) {
	return p.SignWithNonceSource(z, RandomNonceSource{})
}

// SignWithNonceSource signs the message scalar z, drawing nonces from
// source. The returned signature always has a low S. A nonce that yields
// r = 0 or s = 0 is discarded and the source asked again.
func (p *PrivateKey) SignWithNonceSource(z *big.Int, source NonceSource) (*Signature, error) {
	curve := S256()
	e := p.secret
	message := curve.NewScalar(z)

	for attempt := uint32(0); attempt < maxSignAttempts; attempt++ {
		k, err := source.Nonce(p, z, attempt)
		if err != nil {
			return nil, err
		}
		if k.IsZero() {
			continue
		}

		// r = (k·G).x mod N
		point := curve.ScalarBaseMult(k.BigInt())
		if point.IsInfinity() {
			continue
		}
		r := curve.NewScalar(point.x.num)
		if r.IsZero() {
			continue
		}

		// s = (z + r·e) / k
		s, err := message.Add(r.Mul(e)).Div(k)
		if err != nil {
			return nil, err
		}
		if s.IsZero() {
			continue
		}
		if s.IsOverHalfOrder() {
			s = s.Neg()
		}

		log.Tracef("Signed %064x with nonce attempt %d", z, attempt)
		return &Signature{R: r.BigInt(), S: s.BigInt()}, nil
	}
	return nil, errors.Errorf("no usable nonce after %d attempts", maxSignAttempts)
}

// WIF returns the Wallet Import Format encoding of the private key:
// Base58Check(PrivateKeyID || secret || [0x01 if compressed]).
func (p *PrivateKey) WIF(compressed bool, params *chaincfg.Params) string {
	payload := p.Serialize()
	if compressed {
		payload = append(payload, compressMagic)
	}
	return util.EncodeBase58Check(params.PrivateKeyID, payload)
}

// DecodeWIF decodes a WIF string into the private key, whether its public
// key is to be serialized compressed, and the network it belongs to.
func DecodeWIF(wif string) (*PrivateKey, bool, *chaincfg.Params, error) {
	version, payload, err := util.DecodeBase58Check(wif)
	if err != nil {
		return nil, false, nil, err
	}
	params, err := chaincfg.ParamsForPrivateKeyID(version)
	if err != nil {
		return nil, false, nil, errors.Wrapf(ErrMalformedWIF, "%s", err)
	}

	var compressed bool
	switch len(payload) {
	case PrivKeyBytesLen + 1:
		if payload[PrivKeyBytesLen] != compressMagic {
			return nil, false, nil, errors.Wrapf(ErrMalformedWIF,
				"compression flag 0x%02x", payload[PrivKeyBytesLen])
		}
		compressed = true
	case PrivKeyBytesLen:
	default:
		return nil, false, nil, errors.Wrapf(ErrMalformedWIF, "payload of %d bytes", len(payload))
	}

	privKey, err := PrivKeyFromBytes(payload[:PrivKeyBytesLen])
	if err != nil {
		return nil, false, nil, err
	}
	return privKey, compressed, params, nil
}
