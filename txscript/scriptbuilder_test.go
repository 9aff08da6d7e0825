// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"testing"
)

// TestScriptBuilderAddOp tests that pushing opcodes to a script via the
// ScriptBuilder API works as expected.
func TestScriptBuilderAddOp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opcodes  []byte
		expected []byte
	}{
		{
			name:     "push OP_0",
			opcodes:  []byte{Op0},
			expected: []byte{Op0},
		},
		{
			name:     "push OP_1 OP_2",
			opcodes:  []byte{Op1, Op2},
			expected: []byte{Op1, Op2},
		},
		{
			name:     "push OP_HASH160 OP_EQUAL",
			opcodes:  []byte{OpHash160, OpEqual},
			expected: []byte{OpHash160, OpEqual},
		},
	}

	// Run tests and individually add each op via AddOp.
	builder := NewScriptBuilder()
	for _, test := range tests {
		builder.Reset()
		for _, opcode := range test.opcodes {
			builder.AddOp(opcode)
		}
		result, err := builder.Script()
		if err != nil {
			t.Errorf("ScriptBuilder.AddOp test (%s) unexpected error: %v", test.name, err)
			continue
		}
		if !bytes.Equal(result, test.expected) {
			t.Errorf("ScriptBuilder.AddOp test (%s) wrong result\ngot: %x\nwant: %x",
				test.name, result, test.expected)
		}
	}

	// Run tests and bulk add ops via AddOps.
	for _, test := range tests {
		builder.Reset()
		result, err := builder.AddOps(test.opcodes).Script()
		if err != nil {
			t.Errorf("ScriptBuilder.AddOps test (%s) unexpected error: %v", test.name, err)
			continue
		}
		if !bytes.Equal(result, test.expected) {
			t.Errorf("ScriptBuilder.AddOps test (%s) wrong result\ngot: %x\nwant: %x",
				test.name, result, test.expected)
		}
	}
}

// TestScriptBuilderAddInt64 tests that pushing signed integers to a script via
// the ScriptBuilder API works as expected.
func TestScriptBuilderAddInt64(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		val      int64
		expected []byte
	}{
		{name: "push -1", val: -1, expected: []byte{Op1Negate}},
		{name: "push small int 0", val: 0, expected: []byte{Op0}},
		{name: "push small int 1", val: 1, expected: []byte{Op1}},
		{name: "push small int 16", val: 16, expected: []byte{Op16}},
		{name: "push 17", val: 17, expected: []byte{OpData1, 0x11}},
		{name: "push 65", val: 65, expected: []byte{OpData1, 0x41}},
		{name: "push 127", val: 127, expected: []byte{OpData1, 0x7f}},
		{name: "push 128", val: 128, expected: []byte{OpData1 + 1, 0x80, 0}},
		{name: "push 255", val: 255, expected: []byte{OpData1 + 1, 0xff, 0}},
		{name: "push 256", val: 256, expected: []byte{OpData1 + 1, 0, 0x01}},
		{name: "push 32767", val: 32767, expected: []byte{OpData1 + 1, 0xff, 0x7f}},
		{name: "push 32768", val: 32768, expected: []byte{OpData1 + 2, 0, 0x80, 0}},
		{name: "push -2", val: -2, expected: []byte{OpData1, 0x82}},
		{name: "push -16", val: -16, expected: []byte{OpData1, 0x90}},
		{name: "push -128", val: -128, expected: []byte{OpData1 + 1, 0x80, 0x80}},
		{name: "push -255", val: -255, expected: []byte{OpData1 + 1, 0xff, 0x80}},
		{name: "push -256", val: -256, expected: []byte{OpData1 + 1, 0x00, 0x81}},
		{name: "push -2147483648", val: -2147483648, expected: []byte{OpData1 + 4, 0, 0, 0, 0x80, 0x80}},
	}

	builder := NewScriptBuilder()
	for _, test := range tests {
		builder.Reset().AddInt64(test.val)
		result, err := builder.Script()
		if err != nil {
			t.Errorf("ScriptBuilder.AddInt64 test (%s) unexpected error: %v", test.name, err)
			continue
		}
		if !bytes.Equal(result, test.expected) {
			t.Errorf("ScriptBuilder.AddInt64 test (%s) wrong result\ngot: %x\nwant: %x",
				test.name, result, test.expected)
		}
	}
}

// TestScriptBuilderAddData tests that pushing data to a script via the
// ScriptBuilder API works as expected and conforms to canonical pushes.
func TestScriptBuilderAddData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     []byte
		expected []byte
		useFull  bool // use AddFullData instead of AddData.
	}{
		// BIP0062: Pushing an empty byte sequence must use OP_0.
		{name: "push empty byte sequence", data: nil, expected: []byte{Op0}},
		{name: "push 1 byte 0x00", data: []byte{0x00}, expected: []byte{Op0}},

		// BIP0062: Pushing a 1-byte sequence of byte 0x01 through 0x10 must use OP_n.
		{name: "push 1 byte 0x01", data: []byte{0x01}, expected: []byte{Op1}},
		{name: "push 1 byte 0x10", data: []byte{0x10}, expected: []byte{Op16}},

		// BIP0062: Pushing the byte 0x81 must use OP_1NEGATE.
		{name: "push 1 byte 0x81", data: []byte{0x81}, expected: []byte{Op1Negate}},

		// BIP0062: Pushing any other byte sequence up to 75 bytes must
		// use the normal data push (opcode byte n, with n the number of
		// bytes, followed n bytes of data being pushed).
		{name: "push 1 byte 0x11", data: []byte{0x11}, expected: []byte{OpData1, 0x11}},
		{name: "push 1 byte 0x80", data: []byte{0x80}, expected: []byte{OpData1, 0x80}},
		{name: "push 1 byte 0x82", data: []byte{0x82}, expected: []byte{OpData1, 0x82}},
		{name: "push 1 byte 0xff", data: []byte{0xff}, expected: []byte{OpData1, 0xff}},
		{
			name:     "push data len 17",
			data:     bytes.Repeat([]byte{0x49}, 17),
			expected: append([]byte{OpData1 + 16}, bytes.Repeat([]byte{0x49}, 17)...),
		},
		{
			name:     "push data len 75",
			data:     bytes.Repeat([]byte{0x49}, 75),
			expected: append([]byte{OpData75}, bytes.Repeat([]byte{0x49}, 75)...),
		},

		// BIP0062: Pushing 76 to 255 bytes must use OP_PUSHDATA1.
		{
			name:     "push data len 76",
			data:     bytes.Repeat([]byte{0x49}, 76),
			expected: append([]byte{OpPushData1, 76}, bytes.Repeat([]byte{0x49}, 76)...),
		},
		{
			name:     "push data len 255",
			data:     bytes.Repeat([]byte{0x49}, 255),
			expected: append([]byte{OpPushData1, 255}, bytes.Repeat([]byte{0x49}, 255)...),
		},

		// BIP0062: Pushing 256 to 520 bytes must use OP_PUSHDATA2.
		{
			name:     "push data len 256",
			data:     bytes.Repeat([]byte{0x49}, 256),
			expected: append([]byte{OpPushData2, 0, 1}, bytes.Repeat([]byte{0x49}, 256)...),
		},
		{
			name:     "push data len 520",
			data:     bytes.Repeat([]byte{0x49}, 520),
			expected: append([]byte{OpPushData2, 0x08, 0x02}, bytes.Repeat([]byte{0x49}, 520)...),
		},

		// BIP0062: OP_PUSHDATA4 can never be used, as pushes over 520
		// bytes are not allowed, and those below can be done using
		// other operators.
		{
			name:     "push data len 521",
			data:     bytes.Repeat([]byte{0x49}, 521),
			expected: nil,
		},
		{
			name:     "push data len 32767 (canonical)",
			data:     bytes.Repeat([]byte{0x49}, 32767),
			expected: nil,
		},

		// Additional tests for the PushFullData function that
		// intentionally allows data pushes to exceed the limit for
		// regression testing purposes.

		// 3-byte data push via OP_PUSHDATA_2.
		{
			name:     "push data len 32767 (non-canonical)",
			data:     bytes.Repeat([]byte{0x49}, 32767),
			expected: append([]byte{OpPushData2, 255, 127}, bytes.Repeat([]byte{0x49}, 32767)...),
			useFull:  true,
		},

		// 5-byte data push via OP_PUSHDATA_4.
		{
			name:     "push data len 65536 (non-canonical)",
			data:     bytes.Repeat([]byte{0x49}, 65536),
			expected: append([]byte{OpPushData4, 0, 0, 1, 0}, bytes.Repeat([]byte{0x49}, 65536)...),
			useFull:  true,
		},
	}

	builder := NewScriptBuilder()
	for _, test := range tests {
		if !test.useFull {
			builder.Reset().AddData(test.data)
		} else {
			builder.Reset().AddFullData(test.data)
		}
		result, _ := builder.Script()
		if !bytes.Equal(result, test.expected) {
			t.Errorf("ScriptBuilder.AddData test (%s) wrong result\ngot: %x\nwant: %x",
				test.name, result, test.expected)
		}
	}
}

// TestExceedMaxScriptSize ensures that all of the functions that can be used
// to add data to a script don't allow the script to exceed the max allowed
// size.
func TestExceedMaxScriptSize(t *testing.T) {
	t.Parallel()

	// Start off by constructing a max size script.
	builder := NewScriptBuilder()
	builder.Reset().AddFullData(make([]byte, MaxScriptSize-3))
	origScript, err := builder.Script()
	if err != nil {
		t.Fatalf("Unexpected error for max size script: %v", err)
	}

	// Ensure adding data that would exceed the maximum size of the script
	// does not add the data.
	script, err := builder.AddData([]byte{0x00}).Script()
	if !IsErrorCode(err, ErrInternal) {
		t.Fatalf("ScriptBuilder.AddData allowed exceeding max script size: %v", err)
	}
	if !bytes.Equal(script, origScript) {
		t.Fatalf("ScriptBuilder.AddData unexpected modified script - got len %d, want len %d",
			len(script), len(origScript))
	}

	// Ensure adding an opcode that would exceed the maximum size of the
	// script does not add the data.
	builder.Reset().AddFullData(make([]byte, MaxScriptSize-3))
	script, err = builder.AddOp(Op0).Script()
	if !IsErrorCode(err, ErrInternal) {
		t.Fatalf("ScriptBuilder.AddOp unexpected modified script - got len %d, want len %d",
			len(script), len(origScript))
	}
	if !bytes.Equal(script, origScript) {
		t.Fatalf("ScriptBuilder.AddOp unexpected modified script - got len %d, want len %d",
			len(script), len(origScript))
	}

	// Ensure adding an integer that would exceed the maximum size of the
	// script does not add the data.
	builder.Reset().AddFullData(make([]byte, MaxScriptSize-3))
	script, err = builder.AddInt64(0).Script()
	if !IsErrorCode(err, ErrInternal) {
		t.Fatalf("ScriptBuilder.AddInt64 unexpected modified script - got len %d, want len %d",
			len(script), len(origScript))
	}
	if !bytes.Equal(script, origScript) {
		t.Fatalf("ScriptBuilder.AddInt64 unexpected modified script - got len %d, want len %d",
			len(script), len(origScript))
	}
}

func TestScriptBuilderParsedScript(t *testing.T) {
	script, err := NewScriptBuilder().AddInt64(2).AddInt64(3).AddOp(OpAdd).
		AddInt64(5).AddOp(OpEqual).ParsedScript()
	if err != nil {
		t.Fatalf("ParsedScript: %v", err)
	}
	if got, want := script.String(), "OP_2 OP_3 OP_ADD OP_5 OP_EQUAL"; got != want {
		t.Errorf("ParsedScript: got %q, want %q", got, want)
	}
	if !script.Evaluate(bigOne) {
		t.Errorf("Evaluate: 2 + 3 == 5 evaluated to false")
	}

	_, err = NewScriptBuilder().AddData(make([]byte, MaxScriptElementSize+1)).ParsedScript()
	if !IsErrorCode(err, ErrElementTooBig) {
		t.Errorf("ParsedScript: got %v, want %s", err, ErrElementTooBig)
	}
}
