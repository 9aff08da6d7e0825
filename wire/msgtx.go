// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/satoshilab/scriptcore/util/binaryserializer"
	"github.com/satoshilab/scriptcore/util/chainhash"
)

const (
	// TxVersion is the current latest supported transaction version.
	TxVersion = 1

	// MaxTxInSequenceNum is the maximum sequence number the sequence field
	// of a transaction input can be.
	MaxTxInSequenceNum uint32 = 0xffffffff

	// MaxPrevOutIndex is the maximum index the index field of a previous
	// outpoint can be.
	MaxPrevOutIndex uint32 = 0xffffffff

	// MaxTxSize is the largest serialized transaction accepted by
	// Deserialize.
	MaxTxSize = 4 * 1000 * 1000

	// MaxScriptSize is the largest signature or public key script accepted
	// by Deserialize.
	MaxScriptSize = 10000

	// maxWitnessItemSize is the largest single witness stack item accepted
	// while stripping witness data.
	maxWitnessItemSize = MaxTxSize

	// defaultTxInOutAlloc is the default size used for the backing array for
	// transaction inputs and outputs. The array will dynamically grow as needed,
	// but this figure is intended to provide enough space for the number of
	// inputs and outputs in a typical transaction without needing to grow the
	// backing array multiple times.
	defaultTxInOutAlloc = 15

	// minTxInPayload is the minimum payload size for a transaction input.
	// PreviousOutpoint.TxID + PreviousOutpoint.Index 4 bytes + Varint for
	// SignatureScript length 1 byte + Sequence 4 bytes.
	minTxInPayload = 9 + chainhash.HashSize

	// maxTxInPerMessage is the maximum number of transactions inputs that
	// a transaction which fits into MaxTxSize could possibly have.
	maxTxInPerMessage = (MaxTxSize / minTxInPayload) + 1

	// minTxOutPayload is the minimum payload size for a transaction output.
	// Value 8 bytes + Varint for ScriptPubKey length 1 byte.
	minTxOutPayload = 9

	// maxTxOutPerMessage is the maximum number of transactions outputs that
	// a transaction which fits into MaxTxSize could possibly have.
	maxTxOutPerMessage = (MaxTxSize / minTxOutPayload) + 1

	// witnessFlag follows the zero marker byte of a transaction serialized
	// with segregated witness data.
	witnessFlag = 0x01
)

// Outpoint defines a bitcoin data type that is used to track previous
// transaction outputs.
type Outpoint struct {
	TxID  chainhash.Hash
	Index uint32
}

// NewOutpoint returns a new transaction outpoint point with the provided
// transaction ID and index.
func NewOutpoint(txID *chainhash.Hash, index uint32) *Outpoint {
	return &Outpoint{
		TxID:  *txID,
		Index: index,
	}
}

// String returns the Outpoint in the human-readable form "txID:index".
func (o Outpoint) String() string {
	// Allocate enough for ID string, colon, and 10 digits.
	buf := make([]byte, 2*chainhash.HashSize+1, 2*chainhash.HashSize+1+10)
	copy(buf, o.TxID.String())
	buf[2*chainhash.HashSize] = ':'
	buf = strconv.AppendUint(buf, uint64(o.Index), 10)
	return string(buf)
}

// TxIn defines a transaction input.
type TxIn struct {
	PreviousOutpoint Outpoint
	SignatureScript  []byte
	Sequence         uint32
}

// NewTxIn returns a new transaction input with the provided previous
// outpoint and signature script with a default sequence of
// MaxTxInSequenceNum.
func NewTxIn(prevOut *Outpoint, signatureScript []byte) *TxIn {
	return &TxIn{
		PreviousOutpoint: *prevOut,
		SignatureScript:  signatureScript,
		Sequence:         MaxTxInSequenceNum,
	}
}

// SerializeSize returns the number of bytes it would take to serialize the
// transaction input.
func (t *TxIn) SerializeSize() int {
	// Outpoint TxID 32 bytes + Outpoint Index 4 bytes + Sequence 4 bytes +
	// serialized varint size for the length of SignatureScript +
	// SignatureScript bytes.
	return 40 + VarIntSerializeSize(uint64(len(t.SignatureScript))) +
		len(t.SignatureScript)
}

// TxOut defines a transaction output.
type TxOut struct {
	Value        uint64
	ScriptPubKey []byte
}

// NewTxOut returns a new transaction output with the provided transaction
// value in satoshis and public key script.
func NewTxOut(value uint64, scriptPubKey []byte) *TxOut {
	return &TxOut{
		Value:        value,
		ScriptPubKey: scriptPubKey,
	}
}

// SerializeSize returns the number of bytes it would take to serialize the
// transaction output.
func (t *TxOut) SerializeSize() int {
	// Value 8 bytes + serialized varint size for the length of ScriptPubKey +
	// ScriptPubKey bytes.
	return 8 + VarIntSerializeSize(uint64(len(t.ScriptPubKey))) + len(t.ScriptPubKey)
}

// MsgTx is a legacy bitcoin transaction. Testnet is not part of the
// serialization; it records which network the transaction was read from so
// that its previous outputs are looked up on the same network.
//
// Use the AddTxIn and AddTxOut functions to build up the list of transaction
// inputs and outputs.
type MsgTx struct {
	Version  uint32
	TxIn     []*TxIn
	TxOut    []*TxOut
	LockTime uint32
	Testnet  bool
}

// NewMsgTx returns a new transaction with the given version and no inputs
// or outputs.
func NewMsgTx(version uint32) *MsgTx {
	return &MsgTx{
		Version: version,
		TxIn:    make([]*TxIn, 0, defaultTxInOutAlloc),
		TxOut:   make([]*TxOut, 0, defaultTxInOutAlloc),
	}
}

// AddTxIn adds a transaction input to the message.
func (msg *MsgTx) AddTxIn(ti *TxIn) {
	msg.TxIn = append(msg.TxIn, ti)
}

// AddTxOut adds a transaction output to the message.
func (msg *MsgTx) AddTxOut(to *TxOut) {
	msg.TxOut = append(msg.TxOut, to)
}

// IsCoinBase determines whether or not a transaction is a coinbase: it has a
// single input whose previous outpoint has a zero transaction ID and the
// maximum index.
func (msg *MsgTx) IsCoinBase() bool {
	if len(msg.TxIn) != 1 {
		return false
	}
	prevOut := &msg.TxIn[0].PreviousOutpoint
	return prevOut.Index == MaxPrevOutIndex && prevOut.TxID == (chainhash.Hash{})
}

// TxID returns hash256 of the serialized transaction. Its String form is the
// byte-reversed hex used by block explorers.
func (msg *MsgTx) TxID() chainhash.Hash {
	writer := chainhash.NewDoubleHashWriter()
	err := msg.Serialize(writer)
	if err != nil {
		// Writing to a hash writer never fails.
		panic(errors.Wrap(err, "TxID() failed. this should never fail"))
	}
	return writer.Finalize()
}

// Copy creates a deep copy of a transaction so that the original does not get
// modified when the copy is manipulated.
func (msg *MsgTx) Copy() *MsgTx {
	// Create new tx and start by copying primitive values and making space
	// for the transaction inputs and outputs.
	newTx := MsgTx{
		Version:  msg.Version,
		TxIn:     make([]*TxIn, 0, len(msg.TxIn)),
		TxOut:    make([]*TxOut, 0, len(msg.TxOut)),
		LockTime: msg.LockTime,
		Testnet:  msg.Testnet,
	}

	// Deep copy the old TxIn data.
	for _, oldTxIn := range msg.TxIn {
		// Deep copy the old signature script.
		var newScript []byte
		if oldTxIn.SignatureScript != nil {
			newScript = make([]byte, len(oldTxIn.SignatureScript))
			copy(newScript, oldTxIn.SignatureScript)
		}

		newTx.TxIn = append(newTx.TxIn, &TxIn{
			PreviousOutpoint: oldTxIn.PreviousOutpoint,
			SignatureScript:  newScript,
			Sequence:         oldTxIn.Sequence,
		})
	}

	// Deep copy the old TxOut data.
	for _, oldTxOut := range msg.TxOut {
		var newScript []byte
		if oldTxOut.ScriptPubKey != nil {
			newScript = make([]byte, len(oldTxOut.ScriptPubKey))
			copy(newScript, oldTxOut.ScriptPubKey)
		}

		newTx.TxOut = append(newTx.TxOut, &TxOut{
			Value:        oldTxOut.Value,
			ScriptPubKey: newScript,
		})
	}

	return &newTx
}

// Deserialize decodes a legacy serialized transaction from r into the
// receiver. The Testnet field is left untouched.
func (msg *MsgTx) Deserialize(r io.Reader) error {
	version, err := binaryserializer.Uint32(r)
	if err != nil {
		return err
	}
	count, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	return msg.deserializeBody(r, version, count, false)
}

// DeserializeStrippingWitness decodes a transaction that may carry
// segregated witness data, as explorers return it. When the input count is
// the zero marker followed by the witness flag, the witness stacks are read
// and discarded so that the receiver holds the legacy transaction whose
// hash is the transaction ID.
func (msg *MsgTx) DeserializeStrippingWitness(r io.Reader) error {
	version, err := binaryserializer.Uint32(r)
	if err != nil {
		return err
	}
	count, err := ReadVarInt(r)
	if err != nil {
		return err
	}

	hasWitness := false
	if count == 0 {
		flag, err := binaryserializer.Uint8(r)
		if err != nil {
			return err
		}
		if flag != witnessFlag {
			str := fmt.Sprintf("witness tx but flag byte is %x", flag)
			return messageError("MsgTx.DeserializeStrippingWitness", str)
		}
		hasWitness = true
		count, err = ReadVarInt(r)
		if err != nil {
			return err
		}
	}
	return msg.deserializeBody(r, version, count, hasWitness)
}

// deserializeBody reads everything that follows the input count.
func (msg *MsgTx) deserializeBody(r io.Reader, version uint32, inCount uint64, hasWitness bool) error {
	msg.Version = version

	// Prevent more input transactions than could possibly fit into a
	// transaction. It would be possible to cause memory exhaustion and
	// panics without a sane upper bound on this count.
	if inCount > uint64(maxTxInPerMessage) {
		str := fmt.Sprintf("too many input transactions to fit into "+
			"max transaction size [count %d, max %d]", inCount,
			maxTxInPerMessage)
		return messageError("MsgTx.Deserialize", str)
	}

	msg.TxIn = make([]*TxIn, inCount)
	for i := range msg.TxIn {
		ti := &TxIn{}
		err := readTxIn(r, ti)
		if err != nil {
			return err
		}
		msg.TxIn[i] = ti
	}

	outCount, err := ReadVarInt(r)
	if err != nil {
		return err
	}

	// Prevent more output transactions than could possibly fit into a
	// transaction. It would be possible to cause memory exhaustion and
	// panics without a sane upper bound on this count.
	if outCount > uint64(maxTxOutPerMessage) {
		str := fmt.Sprintf("too many output transactions to fit into "+
			"max transaction size [count %d, max %d]", outCount,
			maxTxOutPerMessage)
		return messageError("MsgTx.Deserialize", str)
	}

	msg.TxOut = make([]*TxOut, outCount)
	for i := range msg.TxOut {
		to := &TxOut{}
		err = readTxOut(r, to)
		if err != nil {
			return err
		}
		msg.TxOut[i] = to
	}

	if hasWitness {
		for range msg.TxIn {
			err = skipWitness(r)
			if err != nil {
				return err
			}
		}
		log.Tracef("Stripped witness data of %d inputs", len(msg.TxIn))
	}

	msg.LockTime, err = binaryserializer.Uint32(r)
	return err
}

// Serialize encodes the transaction to w in the legacy format:
// version, inputs, outputs and lock time.
func (msg *MsgTx) Serialize(w io.Writer) error {
	err := binaryserializer.PutUint32(w, msg.Version)
	if err != nil {
		return err
	}

	err = WriteVarInt(w, uint64(len(msg.TxIn)))
	if err != nil {
		return err
	}
	for _, ti := range msg.TxIn {
		err = writeTxIn(w, ti)
		if err != nil {
			return err
		}
	}

	err = WriteVarInt(w, uint64(len(msg.TxOut)))
	if err != nil {
		return err
	}
	for _, to := range msg.TxOut {
		err = writeTxOut(w, to)
		if err != nil {
			return err
		}
	}

	return binaryserializer.PutUint32(w, msg.LockTime)
}

// Bytes returns the serialized transaction.
func (msg *MsgTx) Bytes() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, msg.SerializeSize()))
	err := msg.Serialize(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SerializeSize returns the number of bytes it would take to serialize the
// transaction.
func (msg *MsgTx) SerializeSize() int {
	// Version 4 bytes + LockTime 4 bytes + Serialized varint size for the
	// number of transaction inputs and outputs.
	n := 8 + VarIntSerializeSize(uint64(len(msg.TxIn))) +
		VarIntSerializeSize(uint64(len(msg.TxOut)))

	for _, txIn := range msg.TxIn {
		n += txIn.SerializeSize()
	}

	for _, txOut := range msg.TxOut {
		n += txOut.SerializeSize()
	}

	return n
}

// readOutpoint reads the next sequence of bytes from r as an Outpoint.
func readOutpoint(r io.Reader, op *Outpoint) error {
	_, err := io.ReadFull(r, op.TxID[:])
	if err != nil {
		return errors.WithStack(err)
	}
	op.Index, err = binaryserializer.Uint32(r)
	return err
}

// writeOutpoint encodes op to w.
func writeOutpoint(w io.Writer, op *Outpoint) error {
	_, err := w.Write(op.TxID[:])
	if err != nil {
		return errors.WithStack(err)
	}
	return binaryserializer.PutUint32(w, op.Index)
}

// readTxIn reads the next sequence of bytes from r as a transaction input
// (TxIn).
func readTxIn(r io.Reader, ti *TxIn) error {
	err := readOutpoint(r, &ti.PreviousOutpoint)
	if err != nil {
		return err
	}

	ti.SignatureScript, err = ReadVarBytes(r, MaxScriptSize, "transaction input signature script")
	if err != nil {
		return err
	}

	ti.Sequence, err = binaryserializer.Uint32(r)
	return err
}

// writeTxIn encodes ti to w.
func writeTxIn(w io.Writer, ti *TxIn) error {
	err := writeOutpoint(w, &ti.PreviousOutpoint)
	if err != nil {
		return err
	}

	err = WriteVarBytes(w, ti.SignatureScript)
	if err != nil {
		return err
	}

	return binaryserializer.PutUint32(w, ti.Sequence)
}

// readTxOut reads the next sequence of bytes from r as a transaction output
// (TxOut).
func readTxOut(r io.Reader, to *TxOut) error {
	var err error
	to.Value, err = binaryserializer.Uint64(r)
	if err != nil {
		return err
	}

	to.ScriptPubKey, err = ReadVarBytes(r, MaxScriptSize, "transaction output public key script")
	return err
}

// writeTxOut encodes to into the bitcoin transaction output wire format
// and writes it to w.
func writeTxOut(w io.Writer, to *TxOut) error {
	err := binaryserializer.PutUint64(w, to.Value)
	if err != nil {
		return err
	}

	return WriteVarBytes(w, to.ScriptPubKey)
}

// skipWitness reads and discards the witness stack of one input.
func skipWitness(r io.Reader) error {
	count, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if count > uint64(maxTxInPerMessage) {
		str := fmt.Sprintf("too many witness items to fit into "+
			"max transaction size [count %d, max %d]", count,
			maxTxInPerMessage)
		return messageError("MsgTx.DeserializeStrippingWitness", str)
	}
	for i := uint64(0); i < count; i++ {
		_, err = ReadVarBytes(r, maxWitnessItemSize, "witness item")
		if err != nil {
			return err
		}
	}
	return nil
}
