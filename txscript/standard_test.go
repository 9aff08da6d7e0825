// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/satoshilab/scriptcore/chaincfg"
)

const (
	// compressedPubKeyHex hashes to a802fc56c704ce87c42d7c92eb75e7896bdc41ae.
	compressedPubKeyHex = "0349fc4e631e3624a545de3f89f5d8684c7b8138bd94bdd531d2e213bf016b278a"

	p2pkhMainnetAddress = "1GKN6gJBgvet8S92qiQjVxEaVJ5eoJE9s2"
	p2pkhTestnetAddress = "mvqKPjPAVx68uYceZHP7KsSuMHgMicNp73"
)

func TestScriptClass(t *testing.T) {
	tests := []struct {
		name   string
		script string
		class  ScriptClass
	}{
		{"pay to pubkey hash", p2pkhScriptHex, PubKeyHashTy},
		{"pay to compressed pubkey", "21" + compressedPubKeyHex + "ac", PubKeyTy},
		{"pubkey hash of the wrong size", "76a913a802fc56c704ce87c42d7c92eb75e7896bdc4188ac", NonStandardTy},
		{"trailing opcode", p2pkhScriptHex + "75", NonStandardTy},
		{"empty", "", NonStandardTy},
	}

	for _, test := range tests {
		script := mustParseScriptHex(t, test.script)
		if got := script.Class(); got != test.class {
			t.Errorf("%s: got class %s, want %s", test.name, got, test.class)
		}
		if got := script.IsPayToPubKeyHash(); got != (test.class == PubKeyHashTy) {
			t.Errorf("%s: IsPayToPubKeyHash returned %t", test.name, got)
		}
		if got := script.IsPayToPubKey(); got != (test.class == PubKeyTy) {
			t.Errorf("%s: IsPayToPubKey returned %t", test.name, got)
		}
	}
}

func TestScriptClassString(t *testing.T) {
	tests := []struct {
		in   ScriptClass
		want string
	}{
		{NonStandardTy, "nonstandard"},
		{PubKeyTy, "pubkey"},
		{PubKeyHashTy, "pubkeyhash"},
		{ScriptClass(3), "Invalid"},
	}
	for _, test := range tests {
		if got := test.in.String(); got != test.want {
			t.Errorf("String(%d): got %s, want %s", test.in, got, test.want)
		}
	}
}

func TestPayToPubKeyHashScript(t *testing.T) {
	hash, _ := hex.DecodeString("a802fc56c704ce87c42d7c92eb75e7896bdc41ae")
	script, err := PayToPubKeyHashScript(hash)
	if err != nil {
		t.Fatalf("PayToPubKeyHashScript: %v", err)
	}
	raw, err := script.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if got := hex.EncodeToString(raw); got != p2pkhScriptHex {
		t.Errorf("PayToPubKeyHashScript: got %s, want %s", got, p2pkhScriptHex)
	}

	extracted, err := script.ExtractPubKeyHash()
	if err != nil {
		t.Fatalf("ExtractPubKeyHash: %v", err)
	}
	if !bytes.Equal(extracted, hash) {
		t.Errorf("ExtractPubKeyHash: got %x, want %x", extracted, hash)
	}

	if _, err := PayToPubKeyHashScript(hash[:19]); err == nil {
		t.Errorf("PayToPubKeyHashScript accepted a 19 byte hash")
	}
	if _, err := NewScript(NewOpcodeCommand(Op1)).ExtractPubKeyHash(); err == nil {
		t.Errorf("ExtractPubKeyHash succeeded on a non standard script")
	}
}

func TestPayToPubKeyScript(t *testing.T) {
	pubKey, _ := hex.DecodeString(compressedPubKeyHex)
	script, err := PayToPubKeyScript(pubKey)
	if err != nil {
		t.Fatalf("PayToPubKeyScript: %v", err)
	}
	if !script.IsPayToPubKey() {
		t.Errorf("PayToPubKeyScript: built %s, which is not pay-to-pubkey", script)
	}
	if _, err := PayToPubKeyScript(pubKey[1:]); err == nil {
		t.Errorf("PayToPubKeyScript accepted a 32 byte key")
	}
}

func TestPayToAddrScript(t *testing.T) {
	for _, address := range []string{p2pkhMainnetAddress, p2pkhTestnetAddress} {
		script, err := PayToAddrScript(address)
		if err != nil {
			t.Fatalf("PayToAddrScript(%s): %v", address, err)
		}
		raw, _ := script.Bytes()
		if got := hex.EncodeToString(raw); got != p2pkhScriptHex {
			t.Errorf("PayToAddrScript(%s): got %s, want %s", address, got, p2pkhScriptHex)
		}
	}

	if _, err := PayToAddrScript("1GKN6gJBgvet8S92qiQjVxEaVJ5eoJE9s3"); err == nil {
		t.Errorf("PayToAddrScript accepted an address with a bad checksum")
	}
}

func TestExtractScriptPubKeyAddress(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		params  *chaincfg.Params
		class   ScriptClass
		address string
	}{
		{"mainnet pubkey hash", p2pkhScriptHex, &chaincfg.MainnetParams, PubKeyHashTy, p2pkhMainnetAddress},
		{"testnet pubkey hash", p2pkhScriptHex, &chaincfg.TestnetParams, PubKeyHashTy, p2pkhTestnetAddress},
		{"mainnet pubkey", "21" + compressedPubKeyHex + "ac", &chaincfg.MainnetParams, PubKeyTy, p2pkhMainnetAddress},
	}
	for _, test := range tests {
		class, address, err := ExtractScriptPubKeyAddress(mustParseScriptHex(t, test.script), test.params)
		if err != nil {
			t.Errorf("%s: %v", test.name, err)
			continue
		}
		if class != test.class || address != test.address {
			t.Errorf("%s: got (%s, %s), want (%s, %s)", test.name, class, address,
				test.class, test.address)
		}
	}

	if _, _, err := ExtractScriptPubKeyAddress(NewScript(NewOpcodeCommand(OpReturn)),
		&chaincfg.MainnetParams); err == nil {
		t.Errorf("ExtractScriptPubKeyAddress succeeded on a non standard script")
	}
}
