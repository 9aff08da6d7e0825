// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"github.com/pkg/errors"
	"github.com/satoshilab/scriptcore/chaincfg"
	"github.com/satoshilab/scriptcore/util"
)

// ScriptClass is an enumeration for the list of standard types of script.
type ScriptClass byte

// Classes of script payment known about in the blockchain.
const (
	NonStandardTy ScriptClass = iota // None of the recognized forms.
	PubKeyTy                         // Pay pubkey.
	PubKeyHashTy                     // Pay pubkey hash.
)

// scriptClassToName houses the human-readable strings which describe each
// script class.
var scriptClassToName = []string{
	NonStandardTy: "nonstandard",
	PubKeyTy:      "pubkey",
	PubKeyHashTy:  "pubkeyhash",
}

// String implements the Stringer interface by returning the name of
// the enum script class. If the enum is invalid then "Invalid" will be
// returned.
func (t ScriptClass) String() string {
	if int(t) >= len(scriptClassToName) {
		return "Invalid"
	}
	return scriptClassToName[t]
}

// isPubKey returns true if the script passed is a pay-to-pubkey transaction,
// false otherwise.
func isPubKey(cmds []Command) bool {
	return len(cmds) == 2 &&
		(len(cmds[0].Data) == 33 || len(cmds[0].Data) == 65) &&
		cmds[0].IsData() &&
		cmds[1].Opcode == OpCheckSig
}

// isPubKeyHash returns true if the script passed is a pay-to-pubkey-hash
// transaction, false otherwise.
func isPubKeyHash(cmds []Command) bool {
	return len(cmds) == 5 &&
		cmds[0].Opcode == OpDup &&
		cmds[1].Opcode == OpHash160 &&
		cmds[2].Opcode == OpData20 &&
		cmds[3].Opcode == OpEqualVerify &&
		cmds[4].Opcode == OpCheckSig
}

// IsPayToPubKeyHash returns true if the script is in the standard
// pay-to-pubkey-hash (P2PKH) format, false otherwise.
func (s *Script) IsPayToPubKeyHash() bool {
	return isPubKeyHash(s.cmds)
}

// IsPayToPubKey returns true if the script is in the standard pay-to-pubkey
// format, false otherwise.
func (s *Script) IsPayToPubKey() bool {
	return isPubKey(s.cmds)
}

// Class returns the class of the script.
func (s *Script) Class() ScriptClass {
	switch {
	case isPubKey(s.cmds):
		return PubKeyTy
	case isPubKeyHash(s.cmds):
		return PubKeyHashTy
	default:
		return NonStandardTy
	}
}

// PayToPubKeyHashScript creates a new script to pay a transaction
// output to a 20-byte pubkey hash. It is expected that the input is a valid
// hash.
func PayToPubKeyHashScript(pubKeyHash []byte) (*Script, error) {
	if len(pubKeyHash) != 20 {
		return nil, errors.Errorf("pubkey hash must be 20 bytes, got %d",
			len(pubKeyHash))
	}
	return NewScript(
		NewOpcodeCommand(OpDup),
		NewOpcodeCommand(OpHash160),
		NewDataCommand(pubKeyHash),
		NewOpcodeCommand(OpEqualVerify),
		NewOpcodeCommand(OpCheckSig),
	), nil
}

// PayToPubKeyScript creates a new script to pay a transaction output to a
// SEC encoded public key.
func PayToPubKeyScript(serializedPubKey []byte) (*Script, error) {
	if len(serializedPubKey) != 33 && len(serializedPubKey) != 65 {
		return nil, errors.Errorf("public key must be 33 or 65 bytes, got %d",
			len(serializedPubKey))
	}
	return NewScript(
		NewDataCommand(serializedPubKey),
		NewOpcodeCommand(OpCheckSig),
	), nil
}

// PayToAddrScript creates a new script to pay a transaction output to the
// Base58Check pay-to-pubkey-hash address.
func PayToAddrScript(address string) (*Script, error) {
	hash160, _, err := util.DecodeAddress(address)
	if err != nil {
		return nil, err
	}
	return PayToPubKeyHashScript(hash160)
}

// ExtractPubKeyHash returns the public key hash a pay-to-pubkey-hash script
// pays to.
func (s *Script) ExtractPubKeyHash() ([]byte, error) {
	if !isPubKeyHash(s.cmds) {
		return nil, errors.Errorf("script %s is not pay-to-pubkey-hash", s)
	}
	return s.cmds[2].Data, nil
}

// ExtractScriptPubKeyAddress returns the type of script and its address for
// the network described by params. A pay-to-pubkey script is reported with
// the address of the hash of its key.
func ExtractScriptPubKeyAddress(script *Script, params *chaincfg.Params) (ScriptClass, string, error) {
	switch class := script.Class(); class {
	case PubKeyHashTy:
		return class, util.EncodeAddress(script.cmds[2].Data, params), nil
	case PubKeyTy:
		return class, util.EncodeAddress(util.Hash160(script.cmds[0].Data), params), nil
	default:
		return NonStandardTy, "", errors.Errorf("no address for %s script", class)
	}
}
