package btcec

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"
)

// NonceSource provides the per-signature nonce k. attempt starts at zero and
// is incremented each time the signer rejects a nonce, so deterministic
// sources must return a different value for every attempt.
type NonceSource interface {
	Nonce(privKey *PrivateKey, z *big.Int, attempt uint32) (*Scalar, error)
}

// RandomNonceSource draws nonces uniformly from [1, N-1]. Every call reads
// fresh bytes from Reader, or from crypto/rand when Reader is nil, so
// concurrent signers never share a nonce.
type RandomNonceSource struct {
	Reader io.Reader
}

// Nonce implements NonceSource.
func (s RandomNonceSource) Nonce(_ *PrivateKey, _ *big.Int, _ uint32) (*Scalar, error) {
	return randomScalar(s.Reader)
}

// maxRandomDraws bounds the rejection sampling in randomScalar. A 32-byte
// draw is rejected with probability below 2^-127.
const maxRandomDraws = 64

// randomScalar returns a uniformly random scalar in [1, N-1] by rejection
// sampling 32-byte big-endian integers.
func randomScalar(reader io.Reader) (*Scalar, error) {
	if reader == nil {
		reader = rand.Reader
	}
	curve := S256()
	var buf [ScalarSize]byte
	for i := 0; i < maxRandomDraws; i++ {
		if _, err := io.ReadFull(reader, buf[:]); err != nil {
			return nil, errors.Wrap(err, "reading random nonce")
		}
		k := new(big.Int).SetBytes(buf[:])
		if k.Sign() == 0 || k.Cmp(curve.params.N) >= 0 {
			continue
		}
		return curve.NewScalar(k), nil
	}
	return nil, errors.New("random source keeps producing out of range values")
}

// RFC6979NonceSource derives nonces deterministically from the private key
// and message as described in RFC 6979 with HMAC-SHA256. Signatures made
// with it are reproducible and match other RFC 6979 signers.
type RFC6979NonceSource struct{}

// Nonce implements NonceSource.
func (RFC6979NonceSource) Nonce(privKey *PrivateKey, z *big.Int, attempt uint32) (*Scalar, error) {
	if z.Sign() < 0 || z.BitLen() > 256 {
		return nil, errors.Errorf("message %s is not a 256-bit digest", z)
	}
	hash := z.FillBytes(make([]byte, 32))
	k := secp256k1.NonceRFC6979(privKey.Serialize(), hash, nil, nil, attempt)
	kBytes := k.Bytes()
	return ScalarFromBytes(kBytes[:]), nil
}
