// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/satoshilab/scriptcore/wire"
)

const (
	// MaxScriptElementSize is the maximum number of bytes a single script
	// element may hold.
	MaxScriptElementSize = 520

	// MaxScriptSize is the maximum allowed length of a raw script.
	MaxScriptSize = wire.MaxScriptSize
)

// Command is a single parsed script command: either an opcode, or a data
// element together with the push opcode that carries it on the wire.
type Command struct {
	Opcode byte
	Data   []byte
}

// NewOpcodeCommand returns the command executing op.
func NewOpcodeCommand(op byte) Command {
	return Command{Opcode: op}
}

// NewDataCommand returns the command pushing data with the smallest push
// opcode able to carry it. The empty element is pushed by OP_0.
func NewDataCommand(data []byte) Command {
	dataLen := len(data)
	switch {
	case dataLen == 0:
		return Command{Opcode: Op0}
	case dataLen <= OpData75:
		return Command{Opcode: byte(dataLen), Data: data}
	case dataLen <= 0xff:
		return Command{Opcode: OpPushData1, Data: data}
	case dataLen <= 0xffff:
		return Command{Opcode: OpPushData2, Data: data}
	default:
		return Command{Opcode: OpPushData4, Data: data}
	}
}

// IsData returns whether the command pushes a data element.
func (c Command) IsData() bool {
	return c.Opcode >= OpData1 && c.Opcode <= OpPushData4
}

// String returns the hex of a data element or the name of an opcode.
func (c Command) String() string {
	if c.IsData() {
		return hex.EncodeToString(c.Data)
	}
	return opcodeArray[c.Opcode].name
}

// checkMinimalDataPush returns whether or not the command is a data push
// that uses the smallest possible push opcode for its data.
func (c Command) checkMinimalDataPush() error {
	data := c.Data
	dataLen := len(data)
	opcode := c.Opcode

	if dataLen == 0 && opcode != Op0 {
		str := fmt.Sprintf("zero length data push is encoded with "+
			"opcode %s instead of OP_0", opcodeArray[opcode].name)
		return scriptError(ErrMinimalData, str)
	} else if dataLen == 1 && data[0] >= 1 && data[0] <= 16 {
		str := fmt.Sprintf("data push of the value %d encoded "+
			"with opcode %s instead of OP_%d", data[0],
			opcodeArray[opcode].name, data[0])
		return scriptError(ErrMinimalData, str)
	} else if dataLen == 1 && data[0] == 0x81 {
		str := fmt.Sprintf("data push of the value -1 encoded "+
			"with opcode %s instead of OP_1NEGATE",
			opcodeArray[opcode].name)
		return scriptError(ErrMinimalData, str)
	} else if dataLen <= 75 {
		if int(opcode) != dataLen {
			str := fmt.Sprintf("data push of %d bytes encoded "+
				"with opcode %s instead of OP_DATA_%d", dataLen,
				opcodeArray[opcode].name, dataLen)
			return scriptError(ErrMinimalData, str)
		}
	} else if dataLen <= 255 {
		if opcode != OpPushData1 {
			str := fmt.Sprintf("data push of %d bytes encoded "+
				"with opcode %s instead of OP_PUSHDATA1",
				dataLen, opcodeArray[opcode].name)
			return scriptError(ErrMinimalData, str)
		}
	} else if dataLen <= 65535 {
		if opcode != OpPushData2 {
			str := fmt.Sprintf("data push of %d bytes encoded "+
				"with opcode %s instead of OP_PUSHDATA2",
				dataLen, opcodeArray[opcode].name)
			return scriptError(ErrMinimalData, str)
		}
	}
	return nil
}

// Script is an immutable sequence of commands. Unlocking scripts are
// combined with the locking script they spend before evaluation.
type Script struct {
	cmds []Command
}

// NewScript returns the script made of cmds.
func NewScript(cmds ...Command) *Script {
	return &Script{cmds: append([]Command(nil), cmds...)}
}

// Commands returns a copy of the commands of the script.
func (s *Script) Commands() []Command {
	return append([]Command(nil), s.cmds...)
}

// Len returns the number of commands in the script.
func (s *Script) Len() int {
	return len(s.cmds)
}

// Combine returns a new script made of the commands of s followed by the
// commands of other.
func (s *Script) Combine(other *Script) *Script {
	cmds := make([]Command, 0, len(s.cmds)+len(other.cmds))
	cmds = append(cmds, s.cmds...)
	return &Script{cmds: append(cmds, other.cmds...)}
}

// String returns the one-line disassembly of the script.
func (s *Script) String() string {
	parts := make([]string, len(s.cmds))
	for i, cmd := range s.cmds {
		parts[i] = cmd.String()
	}
	return strings.Join(parts, " ")
}

// ParseRawScript parses a script without a length prefix, such as the
// signature script of a transaction input. A push that runs past the end of
// the script fails with ErrMalformedPush.
func ParseRawScript(script []byte) (*Script, error) {
	cmds := make([]Command, 0, len(script)/2)
	for i := 0; i < len(script); {
		op := script[i]
		i++

		var dataLen int
		switch {
		case op >= OpData1 && op <= OpData75:
			dataLen = int(op)
		case op == OpPushData1:
			if len(script)-i < 1 {
				return nil, malformedPush(op, 1, len(script)-i)
			}
			dataLen = int(script[i])
			i++
		case op == OpPushData2:
			if len(script)-i < 2 {
				return nil, malformedPush(op, 2, len(script)-i)
			}
			dataLen = int(binary.LittleEndian.Uint16(script[i:]))
			i += 2
		case op == OpPushData4:
			if len(script)-i < 4 {
				return nil, malformedPush(op, 4, len(script)-i)
			}
			length := binary.LittleEndian.Uint32(script[i:])
			if uint64(length) > uint64(len(script)) {
				return nil, malformedPush(op, int(length), len(script)-i-4)
			}
			dataLen = int(length)
			i += 4
		default:
			cmds = append(cmds, Command{Opcode: op})
			continue
		}

		if len(script)-i < dataLen {
			return nil, malformedPush(op, dataLen, len(script)-i)
		}
		data := make([]byte, dataLen)
		copy(data, script[i:i+dataLen])
		cmds = append(cmds, Command{Opcode: op, Data: data})
		i += dataLen
	}
	return &Script{cmds: cmds}, nil
}

func malformedPush(op byte, want, have int) error {
	str := fmt.Sprintf("opcode %s requires %d bytes, but script only "+
		"has %d remaining", opcodeArray[op].name, want, have)
	return scriptError(ErrMalformedPush, str)
}

// ParseScript reads a script serialized as a varint length followed by the
// raw script.
func ParseScript(r io.Reader) (*Script, error) {
	raw, err := wire.ReadVarBytes(r, MaxScriptSize, "script")
	if err != nil {
		return nil, err
	}
	return ParseRawScript(raw)
}

// Bytes returns the raw script without a length prefix. Elements above
// MaxScriptElementSize cannot be serialized and fail with ErrElementTooBig.
func (s *Script) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	for _, cmd := range s.cmds {
		if !cmd.IsData() {
			buf.WriteByte(cmd.Opcode)
			continue
		}
		if err := writeDataCommand(&buf, cmd); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// Serialize returns the script prefixed with its length as a varint.
func (s *Script) Serialize() ([]byte, error) {
	raw, err := s.Bytes()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := wire.WriteVarBytes(&buf, raw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeDataCommand writes a data push keeping the push opcode of the
// command: one length byte up to OP_PUSHDATA1, two bytes for OP_PUSHDATA2.
func writeDataCommand(buf *bytes.Buffer, cmd Command) error {
	dataLen := len(cmd.Data)
	if dataLen > MaxScriptElementSize {
		str := fmt.Sprintf("element size %d exceeds the max allowed size %d",
			dataLen, MaxScriptElementSize)
		return scriptError(ErrElementTooBig, str)
	}

	op := cmd.Opcode
	switch {
	case op <= OpData75:
		if dataLen != int(op) {
			return errors.Errorf("%d bytes of data pushed by %s", dataLen, opcodeArray[op].name)
		}
		buf.WriteByte(op)
	case op == OpPushData1 && dataLen <= 0xff:
		buf.WriteByte(op)
		buf.WriteByte(byte(dataLen))
	default:
		// Every element within the 520 byte limit fits the two byte length
		// of OP_PUSHDATA2, so OP_PUSHDATA4 is never emitted.
		var length [2]byte
		binary.LittleEndian.PutUint16(length[:], uint16(dataLen))
		buf.WriteByte(OpPushData2)
		buf.Write(length[:])
	}
	buf.Write(cmd.Data)
	return nil
}

// DisasmString formats a raw script for display, one command per word. A
// script that fails to parse yields the error.
func DisasmString(script []byte) (string, error) {
	parsed, err := ParseRawScript(script)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// IsPushOnly returns true if the script only pushes data.
func (s *Script) IsPushOnly() bool {
	for _, cmd := range s.cmds {
		// All opcodes up to OP_16 are data push instructions.
		if cmd.Opcode > Op16 {
			return false
		}
	}
	return true
}
