// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/satoshilab/scriptcore/wire"
)

// legacyTxHex spends output 0 of transaction
// d1c789a9c60383bf715f3f6ad9d14b91fe55f3deb369fe5d9280cb1a01793f81, which
// pays to the key hash a802fc56c704ce87c42d7c92eb75e7896bdc41ae.
const legacyTxHex = "0100000001813f79011acb80925dfe69b3def355fe914bd1d96a3f5f71bf8303c6a989c7d1" +
	"000000006b483045022100ed81ff192e75a3fd2304004dcadb746fa5e24c5031ccfcf21320b0277457c98f" +
	"02207a986d955c6e0cb35d446a89d3f56100f4d7f67801c31967743a9c8e10615bed01210349fc4e631e36" +
	"24a545de3f89f5d8684c7b8138bd94bdd531d2e213bf016b278afeffffff02a135ef01000000001976a914" +
	"bc3b654dca7e56b04dca18f2566cdaf02e8d9ada88ac99c39800000000001976a9141c4bc762dd5423e332" +
	"166702cb75f40df79fea1288ac19430600"

func parseLegacyTx(t *testing.T) *wire.MsgTx {
	raw, err := hex.DecodeString(legacyTxHex)
	if err != nil {
		t.Fatalf("DecodeString: %v", err)
	}
	var tx wire.MsgTx
	if err := tx.Deserialize(bytes.NewReader(raw)); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	return &tx
}

func mustParseScriptHex(t *testing.T, s string) *Script {
	raw, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("DecodeString: %v", err)
	}
	script, err := ParseRawScript(raw)
	if err != nil {
		t.Fatalf("ParseRawScript: %v", err)
	}
	return script
}

func TestCalcSignatureHash(t *testing.T) {
	tx := parseLegacyTx(t)
	scriptPubKey := mustParseScriptHex(t, p2pkhScriptHex)

	z, err := CalcSignatureHash(tx, 0, scriptPubKey, SigHashAll)
	if err != nil {
		t.Fatalf("CalcSignatureHash: %v", err)
	}
	const want = "27e0c5994dec7824e56dec6b2fcb342eb7cdb0d0957c2fce9882f715e85d81a6"
	if got := z.Text(16); got != want {
		t.Errorf("CalcSignatureHash: got %s, want %s", got, want)
	}

	// The transaction itself is left untouched.
	if raw, _ := tx.Bytes(); hex.EncodeToString(raw) != legacyTxHex {
		t.Errorf("CalcSignatureHash modified the transaction")
	}
}

func TestCalcSignatureHashErrors(t *testing.T) {
	tx := parseLegacyTx(t)
	scriptPubKey := mustParseScriptHex(t, p2pkhScriptHex)

	tests := []struct {
		name     string
		idx      int
		hashType SigHashType
		code     ErrorCode
	}{
		{"index past the inputs", 1, SigHashAll, ErrInvalidIndex},
		{"negative index", -1, SigHashAll, ErrInvalidIndex},
		{"SIGHASH_NONE", 0, SigHashNone, ErrUnsupportedHashType},
		{"SIGHASH_SINGLE", 0, SigHashSingle, ErrUnsupportedHashType},
		{"SIGHASH_ALL|ANYONECANPAY", 0, SigHashAll | SigHashAnyOneCanPay, ErrUnsupportedHashType},
	}
	for _, test := range tests {
		_, err := CalcSignatureHash(tx, test.idx, scriptPubKey, test.hashType)
		if !IsErrorCode(err, test.code) {
			t.Errorf("%s: got %v, want %s", test.name, err, test.code)
		}
	}
}

func TestSigHashTypeString(t *testing.T) {
	tests := []struct {
		in   SigHashType
		want string
	}{
		{SigHashAll, "SIGHASH_ALL"},
		{SigHashNone, "SIGHASH_NONE"},
		{SigHashSingle, "SIGHASH_SINGLE"},
		{SigHashSingle | SigHashAnyOneCanPay, "SIGHASH_SINGLE|SIGHASH_ANYONECANPAY"},
		{0x1f, "SIGHASH_UNKNOWN(0x1f)"},
	}
	for _, test := range tests {
		if got := test.in.String(); got != test.want {
			t.Errorf("String(%d): got %s, want %s", uint32(test.in), got, test.want)
		}
	}
}
