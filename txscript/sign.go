// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"context"

	"github.com/pkg/errors"
	"github.com/satoshilab/scriptcore/btcec"
	"github.com/satoshilab/scriptcore/chaincfg"
	"github.com/satoshilab/scriptcore/wire"
)

// RawTxInSignature returns the DER encoded ECDSA signature of input idx of
// the given transaction, with hashType appended to it. scriptPubKey is the
// locking script of the output being spent. Nonces are derived
// deterministically as described in RFC 6979.
func RawTxInSignature(tx *wire.MsgTx, idx int, scriptPubKey *Script, hashType SigHashType,
	key *btcec.PrivateKey) ([]byte, error) {

	z, err := CalcSignatureHash(tx, idx, scriptPubKey, hashType)
	if err != nil {
		return nil, err
	}
	signature, err := key.SignWithNonceSource(z, btcec.RFC6979NonceSource{})
	if err != nil {
		return nil, errors.Errorf("cannot sign tx input: %s", err)
	}

	return append(signature.Serialize(), byte(hashType)), nil
}

// SignatureScript creates an input signature script for tx to spend coins
// sent from a previous output to the owner of privKey. tx must include all
// transaction inputs and outputs, however txin scripts are allowed to be
// filled or empty. The returned script is calculated to be used as the idx'th
// txin sigscript for tx. scriptPubKey is the locking script of the previous
// output being used as the idx'th input. privKey is serialized in either a
// compressed or uncompressed format based on compress. This format must match
// the same format used to generate the payment address, or the script
// validation will fail.
func SignatureScript(tx *wire.MsgTx, idx int, scriptPubKey *Script, hashType SigHashType,
	privKey *btcec.PrivateKey, compress bool) ([]byte, error) {

	sig, err := RawTxInSignature(tx, idx, scriptPubKey, hashType, privKey)
	if err != nil {
		return nil, err
	}

	pkData := privKey.PubKey().Serialize(compress)
	return NewScriptBuilder().AddData(sig).AddData(pkData).Script()
}

func sign(params *chaincfg.Params, tx *wire.MsgTx, idx int, scriptPubKey *Script,
	hashType SigHashType, kdb KeyDB) ([]byte, ScriptClass, string, error) {

	class, address, err := ExtractScriptPubKeyAddress(scriptPubKey, params)
	if err != nil {
		return nil, NonStandardTy, "", err
	}

	// look up key for address
	key, compressed, err := kdb.GetKey(address)
	if err != nil {
		return nil, class, "", err
	}

	switch class {
	case PubKeyHashTy:
		signedScript, err := SignatureScript(tx, idx, scriptPubKey, hashType, key, compressed)
		if err != nil {
			return nil, class, "", err
		}
		return signedScript, class, address, nil

	case PubKeyTy:
		sig, err := RawTxInSignature(tx, idx, scriptPubKey, hashType, key)
		if err != nil {
			return nil, class, "", err
		}
		signedScript, err := NewScriptBuilder().AddData(sig).Script()
		if err != nil {
			return nil, class, "", err
		}
		return signedScript, class, address, nil

	default:
		return nil, class, "", errors.New("can't sign unknown transactions")
	}
}

// KeyDB is an interface type provided to SignTxOutput, it encapsulates
// any user state required to get the private keys for an address.
type KeyDB interface {
	GetKey(address string) (*btcec.PrivateKey, bool, error)
}

// KeyClosure implements KeyDB with a closure.
type KeyClosure func(address string) (*btcec.PrivateKey, bool, error)

// GetKey implements KeyDB by returning the result of calling the closure.
func (kc KeyClosure) GetKey(address string) (*btcec.PrivateKey, bool, error) {
	return kc(address)
}

// SignTxOutput signs output idx of the given tx to resolve the script given
// in scriptPubKey with a signature type of hashType. Any keys required will be
// looked up by calling getKey() with the string of the given address. The
// returned script is the signature script of input idx.
func SignTxOutput(params *chaincfg.Params, tx *wire.MsgTx, idx int, scriptPubKey *Script,
	hashType SigHashType, kdb KeyDB) ([]byte, error) {

	sigScript, class, address, err := sign(params, tx, idx, scriptPubKey, hashType, kdb)
	if err != nil {
		return nil, err
	}
	log.Debugf("Signed input %d of class %s paying to %s", idx, class, address)
	return sigScript, nil
}

// SignInput signs input idx of tx with privKey, stores the resulting
// signature script in the input, and reports whether the input then
// verifies. The locking script of the spent output is looked up through
// fetcher.
func SignInput(ctx context.Context, tx *wire.MsgTx, idx int, privKey *btcec.PrivateKey, compressed bool,
	fetcher TxFetcher) (bool, error) {

	prevOut, err := previousOutput(ctx, tx, idx, fetcher)
	if err != nil {
		return false, err
	}
	scriptPubKey, err := ParseRawScript(prevOut.ScriptPubKey)
	if err != nil {
		return false, errors.Wrapf(err, "failed to parse the locking script of input %d", idx)
	}

	sigScript, err := SignatureScript(tx, idx, scriptPubKey, SigHashAll, privKey, compressed)
	if err != nil {
		return false, err
	}
	tx.TxIn[idx].SignatureScript = sigScript

	return verifyInput(ctx, tx, idx, fetcher, StandardVerifyFlags)
}
