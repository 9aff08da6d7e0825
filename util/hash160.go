// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"crypto/sha1"
	"crypto/sha256"
	"hash"

	"github.com/satoshilab/scriptcore/util/chainhash"
	"golang.org/x/crypto/ripemd160"
)

// Calculate the hash of hasher over buf.
func calcHash(buf []byte, hasher hash.Hash) []byte {
	_, _ = hasher.Write(buf)
	return hasher.Sum(nil)
}

// Sha256 calculates the hash sha256(b).
func Sha256(buf []byte) []byte {
	return chainhash.HashB(buf)
}

// Sha1 calculates the hash sha1(b).
func Sha1(buf []byte) []byte {
	return calcHash(buf, sha1.New())
}

// Ripemd160 calculates the hash ripemd160(b).
func Ripemd160(buf []byte) []byte {
	return calcHash(buf, ripemd160.New())
}

// Hash160 calculates the hash ripemd160(sha256(b)).
func Hash160(buf []byte) []byte {
	return calcHash(calcHash(buf, sha256.New()), ripemd160.New())
}

// Hash256 calculates the hash sha256(sha256(b)).
func Hash256(buf []byte) []byte {
	return chainhash.DoubleHashB(buf)
}
