// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"fmt"
	"math/big"

	"github.com/satoshilab/scriptcore/util/binaryserializer"
	"github.com/satoshilab/scriptcore/util/chainhash"
	"github.com/satoshilab/scriptcore/wire"
)

// SigHashType represents hash type bits at the end of a signature.
type SigHashType uint32

// Hash type bits from the end of a signature.
const (
	SigHashAll          SigHashType = 0x1
	SigHashNone         SigHashType = 0x2
	SigHashSingle       SigHashType = 0x3
	SigHashAnyOneCanPay SigHashType = 0x80

	// SigHashMask defines the number of bits of the hash type which is used
	// to identify which outputs are signed.
	SigHashMask = 0x1f
)

var sigHashTypeStrings = map[SigHashType]string{
	SigHashAll:    "SIGHASH_ALL",
	SigHashNone:   "SIGHASH_NONE",
	SigHashSingle: "SIGHASH_SINGLE",
}

func (hashType SigHashType) String() string {
	name, ok := sigHashTypeStrings[hashType&SigHashMask]
	if !ok {
		return fmt.Sprintf("SIGHASH_UNKNOWN(0x%02x)", uint32(hashType))
	}
	if hashType&SigHashAnyOneCanPay != 0 {
		name += "|SIGHASH_ANYONECANPAY"
	}
	return name
}

// CalcSignatureHash computes the signature hash of input idx of tx, which
// spends an output locked by scriptPubKey.
//
// The hash is computed over a copy of the transaction where every signature
// script is emptied except the one of input idx, which is replaced by
// scriptPubKey, followed by the hash type as a 4 byte little-endian integer.
// The double SHA-256 of that serialization is read as a big-endian integer.
// Only SigHashAll is supported.
func CalcSignatureHash(tx *wire.MsgTx, idx int, scriptPubKey *Script, hashType SigHashType) (*big.Int, error) {
	if hashType != SigHashAll {
		str := fmt.Sprintf("hash type %s is not supported", hashType)
		return nil, scriptError(ErrUnsupportedHashType, str)
	}
	if idx < 0 || idx >= len(tx.TxIn) {
		str := fmt.Sprintf("transaction input index %d is not in [0, %d)",
			idx, len(tx.TxIn))
		return nil, scriptError(ErrInvalidIndex, str)
	}

	script, err := scriptPubKey.Bytes()
	if err != nil {
		return nil, err
	}

	txCopy := tx.Copy()
	for i, txIn := range txCopy.TxIn {
		if i == idx {
			txIn.SignatureScript = script
		} else {
			txIn.SignatureScript = nil
		}
	}

	writer := chainhash.NewDoubleHashWriter()
	if err := txCopy.Serialize(writer); err != nil {
		return nil, err
	}
	if err := binaryserializer.PutUint32(writer, uint32(hashType)); err != nil {
		return nil, err
	}
	hash := writer.Finalize()
	return new(big.Int).SetBytes(hash[:]), nil
}
