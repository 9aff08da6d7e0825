// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"github.com/pkg/errors"
)

// Params defines the per-network values that leak into encodings: the
// version bytes of Base58Check addresses and WIF private keys, and the block
// explorer used to look up previous transactions.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// Testnet marks networks whose transactions are looked up on the test
	// explorer.
	Testnet bool

	// PubKeyHashAddrID is the first byte of a pay-to-pubkey-hash address.
	PubKeyHashAddrID byte

	// PrivateKeyID is the first byte of a WIF private key.
	PrivateKeyID byte

	// ExplorerURL is the base URL of the REST explorer used to fetch raw
	// transactions by id.
	ExplorerURL string
}

// MainnetParams defines the network parameters for the main network.
var MainnetParams = Params{
	Name:             "mainnet",
	Testnet:          false,
	PubKeyHashAddrID: 0x00, // starts with 1
	PrivateKeyID:     0x80, // starts with 5 (uncompressed) or K/L (compressed)
	ExplorerURL:      "https://blockstream.info/api",
}

// TestnetParams defines the network parameters for the test network.
var TestnetParams = Params{
	Name:             "testnet",
	Testnet:          true,
	PubKeyHashAddrID: 0x6f, // starts with m or n
	PrivateKeyID:     0xef, // starts with 9 (uncompressed) or c (compressed)
	ExplorerURL:      "https://blockstream.info/testnet/api",
}

var (
	// ErrDuplicateNet describes an error where the parameters for a network
	// could not be set due to the network already being a standard network
	// or previously-registered into this package.
	ErrDuplicateNet = errors.New("duplicate network")

	// ErrUnknownNet describes an error where no network is registered
	// under a name.
	ErrUnknownNet = errors.New("unknown network")

	// ErrUnknownVersion describes an error where a version byte does not
	// belong to any registered network.
	ErrUnknownVersion = errors.New("unknown network version byte")
)

var (
	registeredNets    = make(map[string]*Params)
	pubKeyHashAddrIDs = make(map[byte]*Params)
	privateKeyIDs     = make(map[byte]*Params)
)

// Register registers the network parameters. This may error with
// ErrDuplicateNet if a network with the same name or version bytes is already
// registered.
//
// Network parameters should be registered into this package by a main package
// as early as possible. Then, library packages may lookup networks or network
// parameters based on inputs and work regardless of the network being standard
// or not.
func Register(params *Params) error {
	if _, ok := registeredNets[params.Name]; ok {
		return ErrDuplicateNet
	}
	if _, ok := pubKeyHashAddrIDs[params.PubKeyHashAddrID]; ok {
		return ErrDuplicateNet
	}
	if _, ok := privateKeyIDs[params.PrivateKeyID]; ok {
		return ErrDuplicateNet
	}
	registeredNets[params.Name] = params
	pubKeyHashAddrIDs[params.PubKeyHashAddrID] = params
	privateKeyIDs[params.PrivateKeyID] = params
	return nil
}

// mustRegister performs the same function as Register except it panics if there
// is an error. This should only be called from package init functions.
func mustRegister(params *Params) {
	if err := Register(params); err != nil {
		panic("failed to register network: " + err.Error())
	}
}

// ParamsForName returns the network registered under name.
func ParamsForName(name string) (*Params, error) {
	params, ok := registeredNets[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownNet, "network %q", name)
	}
	return params, nil
}

// ParamsForPubKeyHashAddrID returns the network whose address version byte is id.
func ParamsForPubKeyHashAddrID(id byte) (*Params, error) {
	params, ok := pubKeyHashAddrIDs[id]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownVersion, "address version 0x%02x", id)
	}
	return params, nil
}

// ParamsForPrivateKeyID returns the network whose WIF version byte is id.
func ParamsForPrivateKeyID(id byte) (*Params, error) {
	params, ok := privateKeyIDs[id]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownVersion, "private key version 0x%02x", id)
	}
	return params, nil
}

func init() {
	// Register all default networks when the package is initialized.
	mustRegister(&MainnetParams)
	mustRegister(&TestnetParams)
}
