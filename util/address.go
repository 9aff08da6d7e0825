package util

import (
	"github.com/pkg/errors"
	"github.com/satoshilab/scriptcore/chaincfg"
)

// Hash160Size is the length of a pubkey hash.
const Hash160Size = 20

// ErrInvalidAddress is returned for addresses that decode but don't hold a
// pay-to-pubkey-hash payload of a known network.
var ErrInvalidAddress = errors.New("invalid address")

// EncodeAddress returns the Base58Check pay-to-pubkey-hash address of the
// given 20-byte pubkey hash.
func EncodeAddress(hash160 []byte, params *chaincfg.Params) string {
	return EncodeBase58Check(params.PubKeyHashAddrID, hash160)
}

// DecodeAddress decodes a pay-to-pubkey-hash address into its pubkey hash
// and the network it belongs to.
func DecodeAddress(address string) ([]byte, *chaincfg.Params, error) {
	version, payload, err := DecodeBase58Check(address)
	if err != nil {
		return nil, nil, err
	}
	if len(payload) != Hash160Size {
		return nil, nil, errors.Wrapf(ErrInvalidAddress, "payload of %d bytes", len(payload))
	}
	params, err := chaincfg.ParamsForPubKeyHashAddrID(version)
	if err != nil {
		return nil, nil, errors.Wrapf(ErrInvalidAddress, "%s", err)
	}
	return payload, params, nil
}
