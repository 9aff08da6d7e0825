// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/satoshilab/scriptcore/btcec"
	"github.com/satoshilab/scriptcore/util"
)

// opcodeKind tells which of the four calling conventions an opcode uses.
type opcodeKind int

const (
	// kindData marks the push opcodes. Their payload is carried by the
	// parsed Command and pushed by the engine directly.
	kindData opcodeKind = iota

	// kindStack opcodes only touch the main data stack.
	kindStack

	// kindAltStack opcodes move items between the main and alt stacks.
	kindAltStack

	// kindFlow opcodes may move the program counter.
	kindFlow

	// kindSig opcodes consume the signature hash of the input being
	// verified.
	kindSig
)

var kindStrings = map[opcodeKind]string{
	kindData:     "data",
	kindStack:    "stack",
	kindAltStack: "alt stack",
	kindFlow:     "flow",
	kindSig:      "signature",
}

func (k opcodeKind) String() string {
	if s, ok := kindStrings[k]; ok {
		return s
	}
	return fmt.Sprintf("Unknown opcodeKind (%d)", int(k))
}

// An opcode defines the information related to a txscript opcode. Exactly
// one of the handler fields matching kind is set.
type opcode struct {
	value byte
	name  string
	kind  opcodeKind

	stackOp    func(s *stack) error
	altStackOp func(main, alt *stack) error
	flowOp     func(vm *Engine, pc int) error
	sigOp      func(s *stack, z *big.Int) error
}

// These constants are the values of the official opcodes used on the btc wiki,
// in bitcoin core and in most if not all other references and software related
// to handling BTC scripts.
const (
	Op0                   = 0x00 // 0
	OpFalse               = 0x00 // 0 - AKA Op0
	OpData1               = 0x01 // 1
	OpData20              = 0x14 // 20
	OpData33              = 0x21 // 33
	OpData65              = 0x41 // 65
	OpData75              = 0x4b // 75
	OpPushData1           = 0x4c // 76
	OpPushData2           = 0x4d // 77
	OpPushData4           = 0x4e // 78
	Op1Negate             = 0x4f // 79
	OpReserved            = 0x50 // 80
	Op1                   = 0x51 // 81 - AKA OpTrue
	OpTrue                = 0x51 // 81
	Op2                   = 0x52 // 82
	Op3                   = 0x53 // 83
	Op4                   = 0x54 // 84
	Op5                   = 0x55 // 85
	Op6                   = 0x56 // 86
	Op7                   = 0x57 // 87
	Op8                   = 0x58 // 88
	Op9                   = 0x59 // 89
	Op10                  = 0x5a // 90
	Op11                  = 0x5b // 91
	Op12                  = 0x5c // 92
	Op13                  = 0x5d // 93
	Op14                  = 0x5e // 94
	Op15                  = 0x5f // 95
	Op16                  = 0x60 // 96
	OpNop                 = 0x61 // 97
	OpVer                 = 0x62 // 98
	OpIf                  = 0x63 // 99
	OpNotIf               = 0x64 // 100
	OpVerIf               = 0x65 // 101
	OpVerNotIf            = 0x66 // 102
	OpElse                = 0x67 // 103
	OpEndIf               = 0x68 // 104
	OpVerify              = 0x69 // 105
	OpReturn              = 0x6a // 106
	OpToAltStack          = 0x6b // 107
	OpFromAltStack        = 0x6c // 108
	Op2Drop               = 0x6d // 109
	Op2Dup                = 0x6e // 110
	Op3Dup                = 0x6f // 111
	Op2Over               = 0x70 // 112
	Op2Rot                = 0x71 // 113
	Op2Swap               = 0x72 // 114
	OpIfDup               = 0x73 // 115
	OpDepth               = 0x74 // 116
	OpDrop                = 0x75 // 117
	OpDup                 = 0x76 // 118
	OpNip                 = 0x77 // 119
	OpOver                = 0x78 // 120
	OpPick                = 0x79 // 121
	OpRoll                = 0x7a // 122
	OpRot                 = 0x7b // 123
	OpSwap                = 0x7c // 124
	OpTuck                = 0x7d // 125
	OpCat                 = 0x7e // 126
	OpSubStr              = 0x7f // 127
	OpLeft                = 0x80 // 128
	OpRight               = 0x81 // 129
	OpSize                = 0x82 // 130
	OpInvert              = 0x83 // 131
	OpAnd                 = 0x84 // 132
	OpOr                  = 0x85 // 133
	OpXor                 = 0x86 // 134
	OpEqual               = 0x87 // 135
	OpEqualVerify         = 0x88 // 136
	OpReserved1           = 0x89 // 137
	OpReserved2           = 0x8a // 138
	Op1Add                = 0x8b // 139
	Op1Sub                = 0x8c // 140
	Op2Mul                = 0x8d // 141
	Op2Div                = 0x8e // 142
	OpNegate              = 0x8f // 143
	OpAbs                 = 0x90 // 144
	OpNot                 = 0x91 // 145
	Op0NotEqual           = 0x92 // 146
	OpAdd                 = 0x93 // 147
	OpSub                 = 0x94 // 148
	OpMul                 = 0x95 // 149
	OpDiv                 = 0x96 // 150
	OpMod                 = 0x97 // 151
	OpLShift              = 0x98 // 152
	OpRShift              = 0x99 // 153
	OpBoolAnd             = 0x9a // 154
	OpBoolOr              = 0x9b // 155
	OpNumEqual            = 0x9c // 156
	OpNumEqualVerify      = 0x9d // 157
	OpNumNotEqual         = 0x9e // 158
	OpLessThan            = 0x9f // 159
	OpGreaterThan         = 0xa0 // 160
	OpLessThanOrEqual     = 0xa1 // 161
	OpGreaterThanOrEqual  = 0xa2 // 162
	OpMin                 = 0xa3 // 163
	OpMax                 = 0xa4 // 164
	OpWithin              = 0xa5 // 165
	OpRipeMD160           = 0xa6 // 166
	OpSHA1                = 0xa7 // 167
	OpSHA256              = 0xa8 // 168
	OpHash160             = 0xa9 // 169
	OpHash256             = 0xaa // 170
	OpCodeSeparator       = 0xab // 171
	OpCheckSig            = 0xac // 172
	OpCheckSigVerify      = 0xad // 173
	OpCheckMultiSig       = 0xae // 174
	OpCheckMultiSigVerify = 0xaf // 175
	OpNop1                = 0xb0 // 176
	OpCheckLockTimeVerify = 0xb1 // 177 - AKA OpNop2
	OpCheckSequenceVerify = 0xb2 // 178 - AKA OpNop3
	OpNop4                = 0xb3 // 179
	OpNop5                = 0xb4 // 180
	OpNop6                = 0xb5 // 181
	OpNop7                = 0xb6 // 182
	OpNop8                = 0xb7 // 183
	OpNop9                = 0xb8 // 184
	OpNop10               = 0xb9 // 185
	OpInvalidOpCode       = 0xff // 255
)

// opcodeArray holds details about all possible opcodes such as its
// human-readable name, its calling convention and the handler function. The
// data pushes and the unassigned values are filled in by init.
var opcodeArray = [256]opcode{
	// Data push opcodes.
	OpFalse:     stackOpcode(OpFalse, "OP_0", opcodeFalse),
	OpPushData1: {value: OpPushData1, name: "OP_PUSHDATA1", kind: kindData},
	OpPushData2: {value: OpPushData2, name: "OP_PUSHDATA2", kind: kindData},
	OpPushData4: {value: OpPushData4, name: "OP_PUSHDATA4", kind: kindData},
	Op1Negate:   stackOpcode(Op1Negate, "OP_1NEGATE", opcode1Negate),
	OpReserved:  stackOpcode(OpReserved, "OP_RESERVED", opcodeReserved),
	OpTrue:      stackOpcode(OpTrue, "OP_1", opcodeN(1)),
	Op2:         stackOpcode(Op2, "OP_2", opcodeN(2)),
	Op3:         stackOpcode(Op3, "OP_3", opcodeN(3)),
	Op4:         stackOpcode(Op4, "OP_4", opcodeN(4)),
	Op5:         stackOpcode(Op5, "OP_5", opcodeN(5)),
	Op6:         stackOpcode(Op6, "OP_6", opcodeN(6)),
	Op7:         stackOpcode(Op7, "OP_7", opcodeN(7)),
	Op8:         stackOpcode(Op8, "OP_8", opcodeN(8)),
	Op9:         stackOpcode(Op9, "OP_9", opcodeN(9)),
	Op10:        stackOpcode(Op10, "OP_10", opcodeN(10)),
	Op11:        stackOpcode(Op11, "OP_11", opcodeN(11)),
	Op12:        stackOpcode(Op12, "OP_12", opcodeN(12)),
	Op13:        stackOpcode(Op13, "OP_13", opcodeN(13)),
	Op14:        stackOpcode(Op14, "OP_14", opcodeN(14)),
	Op15:        stackOpcode(Op15, "OP_15", opcodeN(15)),
	Op16:        stackOpcode(Op16, "OP_16", opcodeN(16)),

	// Control opcodes.
	OpNop:                 flowOpcode(OpNop, "OP_NOP", opcodeNop),
	OpVer:                 stackOpcode(OpVer, "OP_VER", opcodeReserved),
	OpIf:                  flowOpcode(OpIf, "OP_IF", opcodeIf),
	OpNotIf:               flowOpcode(OpNotIf, "OP_NOTIF", opcodeNotIf),
	OpVerIf:               stackOpcode(OpVerIf, "OP_VERIF", opcodeReserved),
	OpVerNotIf:            stackOpcode(OpVerNotIf, "OP_VERNOTIF", opcodeReserved),
	OpElse:                flowOpcode(OpElse, "OP_ELSE", opcodeElse),
	OpEndIf:               flowOpcode(OpEndIf, "OP_ENDIF", opcodeEndIf),
	OpVerify:              stackOpcode(OpVerify, "OP_VERIFY", opcodeVerify),
	OpReturn:              stackOpcode(OpReturn, "OP_RETURN", opcodeReturn),
	OpCheckLockTimeVerify: stackOpcode(OpCheckLockTimeVerify, "OP_CHECKLOCKTIMEVERIFY", opcodeNotImplemented),
	OpCheckSequenceVerify: stackOpcode(OpCheckSequenceVerify, "OP_CHECKSEQUENCEVERIFY", opcodeNotImplemented),

	// Stack opcodes.
	OpToAltStack:   altStackOpcode(OpToAltStack, "OP_TOALTSTACK", opcodeToAltStack),
	OpFromAltStack: altStackOpcode(OpFromAltStack, "OP_FROMALTSTACK", opcodeFromAltStack),
	Op2Drop:        stackOpcode(Op2Drop, "OP_2DROP", opcode2Drop),
	Op2Dup:         stackOpcode(Op2Dup, "OP_2DUP", opcode2Dup),
	Op3Dup:         stackOpcode(Op3Dup, "OP_3DUP", opcode3Dup),
	Op2Over:        stackOpcode(Op2Over, "OP_2OVER", opcode2Over),
	Op2Rot:         stackOpcode(Op2Rot, "OP_2ROT", opcode2Rot),
	Op2Swap:        stackOpcode(Op2Swap, "OP_2SWAP", opcode2Swap),
	OpIfDup:        stackOpcode(OpIfDup, "OP_IFDUP", opcodeIfDup),
	OpDepth:        stackOpcode(OpDepth, "OP_DEPTH", opcodeDepth),
	OpDrop:         stackOpcode(OpDrop, "OP_DROP", opcodeDrop),
	OpDup:          stackOpcode(OpDup, "OP_DUP", opcodeDup),
	OpNip:          stackOpcode(OpNip, "OP_NIP", opcodeNip),
	OpOver:         stackOpcode(OpOver, "OP_OVER", opcodeOver),
	OpPick:         stackOpcode(OpPick, "OP_PICK", opcodePick),
	OpRoll:         stackOpcode(OpRoll, "OP_ROLL", opcodeRoll),
	OpRot:          stackOpcode(OpRot, "OP_ROT", opcodeRot),
	OpSwap:         stackOpcode(OpSwap, "OP_SWAP", opcodeSwap),
	OpTuck:         stackOpcode(OpTuck, "OP_TUCK", opcodeTuck),

	// Splice opcodes.
	OpCat:    stackOpcode(OpCat, "OP_CAT", opcodeDisabled),
	OpSubStr: stackOpcode(OpSubStr, "OP_SUBSTR", opcodeDisabled),
	OpLeft:   stackOpcode(OpLeft, "OP_LEFT", opcodeDisabled),
	OpRight:  stackOpcode(OpRight, "OP_RIGHT", opcodeDisabled),
	OpSize:   stackOpcode(OpSize, "OP_SIZE", opcodeSize),

	// Bitwise logic opcodes.
	OpInvert:      stackOpcode(OpInvert, "OP_INVERT", opcodeDisabled),
	OpAnd:         stackOpcode(OpAnd, "OP_AND", opcodeDisabled),
	OpOr:          stackOpcode(OpOr, "OP_OR", opcodeDisabled),
	OpXor:         stackOpcode(OpXor, "OP_XOR", opcodeDisabled),
	OpEqual:       stackOpcode(OpEqual, "OP_EQUAL", opcodeEqual),
	OpEqualVerify: stackOpcode(OpEqualVerify, "OP_EQUALVERIFY", opcodeEqualVerify),
	OpReserved1:   stackOpcode(OpReserved1, "OP_RESERVED1", opcodeReserved),
	OpReserved2:   stackOpcode(OpReserved2, "OP_RESERVED2", opcodeReserved),

	// Numeric related opcodes.
	Op1Add:               stackOpcode(Op1Add, "OP_1ADD", opcode1Add),
	Op1Sub:               stackOpcode(Op1Sub, "OP_1SUB", opcode1Sub),
	Op2Mul:               stackOpcode(Op2Mul, "OP_2MUL", opcodeDisabled),
	Op2Div:               stackOpcode(Op2Div, "OP_2DIV", opcodeDisabled),
	OpNegate:             stackOpcode(OpNegate, "OP_NEGATE", opcodeNegate),
	OpAbs:                stackOpcode(OpAbs, "OP_ABS", opcodeAbs),
	OpNot:                stackOpcode(OpNot, "OP_NOT", opcodeNot),
	Op0NotEqual:          stackOpcode(Op0NotEqual, "OP_0NOTEQUAL", opcode0NotEqual),
	OpAdd:                stackOpcode(OpAdd, "OP_ADD", opcodeAdd),
	OpSub:                stackOpcode(OpSub, "OP_SUB", opcodeSub),
	OpMul:                stackOpcode(OpMul, "OP_MUL", opcodeMul),
	OpDiv:                stackOpcode(OpDiv, "OP_DIV", opcodeDisabled),
	OpMod:                stackOpcode(OpMod, "OP_MOD", opcodeDisabled),
	OpLShift:             stackOpcode(OpLShift, "OP_LSHIFT", opcodeDisabled),
	OpRShift:             stackOpcode(OpRShift, "OP_RSHIFT", opcodeDisabled),
	OpBoolAnd:            stackOpcode(OpBoolAnd, "OP_BOOLAND", opcodeBoolAnd),
	OpBoolOr:             stackOpcode(OpBoolOr, "OP_BOOLOR", opcodeBoolOr),
	OpNumEqual:           stackOpcode(OpNumEqual, "OP_NUMEQUAL", opcodeNumEqual),
	OpNumEqualVerify:     stackOpcode(OpNumEqualVerify, "OP_NUMEQUALVERIFY", opcodeNumEqualVerify),
	OpNumNotEqual:        stackOpcode(OpNumNotEqual, "OP_NUMNOTEQUAL", opcodeNumNotEqual),
	OpLessThan:           stackOpcode(OpLessThan, "OP_LESSTHAN", opcodeLessThan),
	OpGreaterThan:        stackOpcode(OpGreaterThan, "OP_GREATERTHAN", opcodeGreaterThan),
	OpLessThanOrEqual:    stackOpcode(OpLessThanOrEqual, "OP_LESSTHANOREQUAL", opcodeLessThanOrEqual),
	OpGreaterThanOrEqual: stackOpcode(OpGreaterThanOrEqual, "OP_GREATERTHANOREQUAL", opcodeGreaterThanOrEqual),
	OpMin:                stackOpcode(OpMin, "OP_MIN", opcodeMin),
	OpMax:                stackOpcode(OpMax, "OP_MAX", opcodeMax),
	OpWithin:             stackOpcode(OpWithin, "OP_WITHIN", opcodeWithin),

	// Crypto opcodes.
	OpRipeMD160:           stackOpcode(OpRipeMD160, "OP_RIPEMD160", opcodeHash(util.Ripemd160)),
	OpSHA1:                stackOpcode(OpSHA1, "OP_SHA1", opcodeHash(util.Sha1)),
	OpSHA256:              stackOpcode(OpSHA256, "OP_SHA256", opcodeHash(util.Sha256)),
	OpHash160:             stackOpcode(OpHash160, "OP_HASH160", opcodeHash(util.Hash160)),
	OpHash256:             stackOpcode(OpHash256, "OP_HASH256", opcodeHash(util.Hash256)),
	OpCodeSeparator:       flowOpcode(OpCodeSeparator, "OP_CODESEPARATOR", opcodeCodeSeparator),
	OpCheckSig:            sigOpcode(OpCheckSig, "OP_CHECKSIG", opcodeCheckSig),
	OpCheckSigVerify:      sigOpcode(OpCheckSigVerify, "OP_CHECKSIGVERIFY", opcodeCheckSigVerify),
	OpCheckMultiSig:       stackOpcode(OpCheckMultiSig, "OP_CHECKMULTISIG", opcodeNotImplemented),
	OpCheckMultiSigVerify: stackOpcode(OpCheckMultiSigVerify, "OP_CHECKMULTISIGVERIFY", opcodeNotImplemented),

	// Reserved opcodes.
	OpNop1:  flowOpcode(OpNop1, "OP_NOP1", opcodeNop),
	OpNop4:  flowOpcode(OpNop4, "OP_NOP4", opcodeNop),
	OpNop5:  flowOpcode(OpNop5, "OP_NOP5", opcodeNop),
	OpNop6:  flowOpcode(OpNop6, "OP_NOP6", opcodeNop),
	OpNop7:  flowOpcode(OpNop7, "OP_NOP7", opcodeNop),
	OpNop8:  flowOpcode(OpNop8, "OP_NOP8", opcodeNop),
	OpNop9:  flowOpcode(OpNop9, "OP_NOP9", opcodeNop),
	OpNop10: flowOpcode(OpNop10, "OP_NOP10", opcodeNop),

	OpInvalidOpCode: stackOpcode(OpInvalidOpCode, "OP_INVALIDOPCODE", opcodeInvalid),
}

// OpcodeByName is a map that can be used to lookup an opcode by its
// human-readable name (OP_CHECKSIG, OP_FALSE, etc).
var OpcodeByName = make(map[string]byte)

func init() {
	for i := OpData1; i <= OpData75; i++ {
		opcodeArray[i] = opcode{value: byte(i), name: fmt.Sprintf("OP_DATA_%d", i), kind: kindData}
	}
	for i := range opcodeArray {
		if opcodeArray[i].name == "" {
			opcodeArray[i] = stackOpcode(byte(i), fmt.Sprintf("OP_UNKNOWN%d", i), opcodeInvalid)
		}
	}

	// Initialize the opcode name to value map using the contents of the
	// opcode array. Also add entries for "OP_FALSE", "OP_TRUE", and
	// "OP_NOP2" since they are aliases for "OP_0", "OP_1", and
	// "OP_CHECKLOCKTIMEVERIFY" respectively.
	for _, op := range opcodeArray {
		OpcodeByName[op.name] = op.value
	}
	OpcodeByName["OP_FALSE"] = OpFalse
	OpcodeByName["OP_TRUE"] = OpTrue
	OpcodeByName["OP_NOP2"] = OpCheckLockTimeVerify
	OpcodeByName["OP_NOP3"] = OpCheckSequenceVerify
}

func stackOpcode(value byte, name string, fn func(*stack) error) opcode {
	return opcode{value: value, name: name, kind: kindStack, stackOp: fn}
}

func altStackOpcode(value byte, name string, fn func(main, alt *stack) error) opcode {
	return opcode{value: value, name: name, kind: kindAltStack, altStackOp: fn}
}

func flowOpcode(value byte, name string, fn func(*Engine, int) error) opcode {
	return opcode{value: value, name: name, kind: kindFlow, flowOp: fn}
}

func sigOpcode(value byte, name string, fn func(*stack, *big.Int) error) opcode {
	return opcode{value: value, name: name, kind: kindSig, sigOp: fn}
}

// isDisabled returns whether or not the opcode is disabled and thus is always
// bad to see in the instruction stream (even if turned off by a conditional).
func (op *opcode) isDisabled() bool {
	switch op.value {
	case OpCat, OpSubStr, OpLeft, OpRight, OpInvert, OpAnd, OpOr, OpXor,
		Op2Mul, Op2Div, OpDiv, OpMod, OpLShift, OpRShift:
		return true
	default:
		return false
	}
}

// isConditional returns whether or not the opcode is a conditional opcode
// which changes the conditional execution stack when executed.
func (op *opcode) isConditional() bool {
	switch op.value {
	case OpIf, OpNotIf, OpElse, OpEndIf:
		return true
	default:
		return false
	}
}

// *******************************************
// Opcode implementation functions start here.
// *******************************************

// opcodeDisabled is a common handler for disabled opcodes. It returns an
// appropriate error indicating the opcode is disabled. NewEngine already
// rejects scripts containing disabled opcodes anywhere, even in a branch that
// is never executed.
func opcodeDisabled(_ *stack) error {
	return scriptError(ErrDisabledOpcode, "attempt to execute disabled opcode")
}

// opcodeReserved is a common handler for all reserved opcodes. It returns an
// appropriate error indicating the opcode is reserved.
func opcodeReserved(_ *stack) error {
	return scriptError(ErrReservedOpcode, "attempt to execute reserved opcode")
}

// opcodeInvalid is a common handler for all invalid opcodes. It returns an
// appropriate error indicating the opcode is invalid.
func opcodeInvalid(_ *stack) error {
	return scriptError(ErrReservedOpcode, "attempt to execute invalid opcode")
}

// opcodeNotImplemented handles multisig and timelock opcodes, whose
// semantics need transaction context this engine does not carry.
func opcodeNotImplemented(_ *stack) error {
	return scriptError(ErrNotImplemented, "attempt to execute unimplemented opcode")
}

// opcodeFalse pushes an empty array to the data stack to represent false. Note
// that 0, when encoded as a number according to the numeric encoding consensus
// rules, is an empty array.
func opcodeFalse(s *stack) error {
	s.PushByteArray(nil)
	return nil
}

// opcode1Negate pushes -1, encoded as a number, to the data stack.
func opcode1Negate(s *stack) error {
	s.PushInt(scriptNum(-1))
	return nil
}

// opcodeN returns the handler of OP_1 through OP_16, which push n encoded
// as a number to the data stack.
func opcodeN(n scriptNum) func(*stack) error {
	return func(s *stack) error {
		s.PushInt(n)
		return nil
	}
}

// opcodeNop is a common handler for the NOP family of opcodes. As the name
// implies it generally does nothing, however, it will return an error when
// the flag to discourage use of NOPs is set for select opcodes.
func opcodeNop(vm *Engine, pc int) error {
	op := vm.script[pc].Opcode
	if op != OpNop && vm.hasFlag(ScriptDiscourageUpgradableNops) {
		str := fmt.Sprintf("opcode 0x%02x reserved for soft-fork upgrades", op)
		return scriptError(ErrDiscourageUpgradableNOPs, str)
	}
	return nil
}

// opcodeCodeSeparator is a no-op. Signature hashes are computed outside the
// engine over the whole locking script.
func opcodeCodeSeparator(_ *Engine, _ int) error {
	return nil
}

// opcodeIf treats the top item on the data stack as a boolean and removes it.
// When it is false the program counter jumps past the matching OP_ELSE, or
// past the matching OP_ENDIF when there is no OP_ELSE.
//
// Data stack transformation: [... bool] -> [...]
func opcodeIf(vm *Engine, pc int) error {
	ok, err := vm.dstack.PopBool()
	if err != nil {
		return err
	}
	if !ok {
		vm.skipBranch(pc)
	}
	return nil
}

// opcodeNotIf is the inverse of opcodeIf: the branch up to OP_ELSE or
// OP_ENDIF runs only when the popped item is false.
//
// Data stack transformation: [... bool] -> [...]
func opcodeNotIf(vm *Engine, pc int) error {
	ok, err := vm.dstack.PopBool()
	if err != nil {
		return err
	}
	if ok {
		vm.skipBranch(pc)
	}
	return nil
}

// opcodeElse is only reached at the end of an executed true branch, so it
// jumps past the matching OP_ENDIF.
func opcodeElse(vm *Engine, pc int) error {
	target, ok := vm.branches[pc]
	if !ok {
		return scriptError(ErrUnbalancedConditional,
			"encountered opcode OP_ELSE with no matching opcode to begin conditional execution")
	}
	vm.pc = target.endIdx + 1
	return nil
}

// opcodeEndIf marks the end of a conditional block and has no effect when
// executed.
func opcodeEndIf(vm *Engine, pc int) error {
	if _, ok := vm.branches[pc]; !ok {
		return scriptError(ErrUnbalancedConditional,
			"encountered opcode OP_ENDIF with no matching opcode to begin conditional execution")
	}
	return nil
}

// abstractVerify examines the top item on the data stack as a boolean value and
// verifies it evaluates to true. An error is returned either when there is no
// item on the stack or when that item evaluates to false. In the latter case
// where the verification fails specifically due to the top item evaluating
// to false, the returned error will use the passed error code.
func abstractVerify(s *stack, c ErrorCode) error {
	verified, err := s.PopBool()
	if err != nil {
		return err
	}

	if !verified {
		str := fmt.Sprintf("%s failed", c)
		return scriptError(c, str)
	}
	return nil
}

// opcodeVerify examines the top item on the data stack as a boolean value and
// verifies it evaluates to true. An error is returned if it does not.
func opcodeVerify(s *stack) error {
	return abstractVerify(s, ErrVerify)
}

// opcodeReturn returns an appropriate error since it is always an error to
// return early from a script.
func opcodeReturn(_ *stack) error {
	return scriptError(ErrEarlyReturn, "script returned early")
}

// opcodeToAltStack removes the top item from the main data stack and pushes it
// onto the alternate data stack.
//
// Main data stack transformation: [... x1 x2 x3] -> [... x1 x2]
// Alt data stack transformation:  [... y1 y2 y3] -> [... y1 y2 y3 x3]
func opcodeToAltStack(main, alt *stack) error {
	so, err := main.PopByteArray()
	if err != nil {
		return err
	}
	alt.PushByteArray(so)

	return nil
}

// opcodeFromAltStack removes the top item from the alternate data stack and
// pushes it onto the main data stack.
//
// Main data stack transformation: [... x1 x2 x3] -> [... x1 x2 x3 y3]
// Alt data stack transformation:  [... y1 y2 y3] -> [... y1 y2]
func opcodeFromAltStack(main, alt *stack) error {
	if alt.Depth() == 0 {
		return scriptError(ErrInvalidAltStackOperation,
			"attempt to pop from an empty alt stack")
	}
	so, err := alt.PopByteArray()
	if err != nil {
		return err
	}
	main.PushByteArray(so)

	return nil
}

// opcode2Drop removes the top 2 items from the data stack.
//
// Stack transformation: [... x1 x2 x3] -> [... x1]
func opcode2Drop(s *stack) error {
	return s.DropN(2)
}

// opcode2Dup duplicates the top 2 items on the data stack.
//
// Stack transformation: [... x1 x2 x3] -> [... x1 x2 x3 x2 x3]
func opcode2Dup(s *stack) error {
	return s.DupN(2)
}

// opcode3Dup duplicates the top 3 items on the data stack.
//
// Stack transformation: [... x1 x2 x3] -> [... x1 x2 x3 x1 x2 x3]
func opcode3Dup(s *stack) error {
	return s.DupN(3)
}

// opcode2Over duplicates the 2 items before the top 2 items on the data stack.
//
// Stack transformation: [... x1 x2 x3 x4] -> [... x1 x2 x3 x4 x1 x2]
func opcode2Over(s *stack) error {
	return s.OverN(2)
}

// opcode2Rot rotates the top 6 items on the data stack to the left twice.
//
// Stack transformation: [... x1 x2 x3 x4 x5 x6] -> [... x3 x4 x5 x6 x1 x2]
func opcode2Rot(s *stack) error {
	return s.RotN(2)
}

// opcode2Swap swaps the top 2 items on the data stack with the 2 that come
// before them.
//
// Stack transformation: [... x1 x2 x3 x4] -> [... x3 x4 x1 x2]
func opcode2Swap(s *stack) error {
	return s.SwapN(2)
}

// opcodeIfDup duplicates the top item of the stack if it is not zero.
//
// Stack transformation (x1==0): [... x1] -> [... x1]
// Stack transformation (x1!=0): [... x1] -> [... x1 x1]
func opcodeIfDup(s *stack) error {
	so, err := s.PeekByteArray(0)
	if err != nil {
		return err
	}

	// Push copy of data iff it isn't zero
	if asBool(so) {
		s.PushByteArray(so)
	}

	return nil
}

// opcodeDepth pushes the depth of the data stack prior to executing this
// opcode, encoded as a number, onto the data stack.
//
// Stack transformation: [...] -> [... <num of items on the stack>]
func opcodeDepth(s *stack) error {
	s.PushInt(scriptNum(s.Depth()))
	return nil
}

// opcodeDrop removes the top item from the data stack.
//
// Stack transformation: [... x1 x2 x3] -> [... x1 x2]
func opcodeDrop(s *stack) error {
	return s.DropN(1)
}

// opcodeDup duplicates the top item on the data stack.
//
// Stack transformation: [... x1 x2 x3] -> [... x1 x2 x3 x3]
func opcodeDup(s *stack) error {
	return s.DupN(1)
}

// opcodeNip removes the item before the top item on the data stack.
//
// Stack transformation: [... x1 x2 x3] -> [... x1 x3]
func opcodeNip(s *stack) error {
	return s.NipN(1)
}

// opcodeOver duplicates the item before the top item on the data stack.
//
// Stack transformation: [... x1 x2 x3] -> [... x1 x2 x3 x2]
func opcodeOver(s *stack) error {
	return s.OverN(1)
}

// opcodePick treats the top item on the data stack as an integer and duplicates
// the item on the stack that number of items back to the top.
//
// Stack transformation: [xn ... x2 x1 x0 n] -> [xn ... x2 x1 x0 xn]
// Example with n=1: [x2 x1 x0 1] -> [x2 x1 x0 x1]
// Example with n=2: [x2 x1 x0 2] -> [x2 x1 x0 x2]
func opcodePick(s *stack) error {
	val, err := s.PopInt()
	if err != nil {
		return err
	}

	return s.PickN(val.Int32())
}

// opcodeRoll treats the top item on the data stack as an integer and moves
// the item on the stack that number of items back to the top.
//
// Stack transformation: [xn ... x2 x1 x0 n] -> [... x2 x1 x0 xn]
// Example with n=1: [x2 x1 x0 1] -> [x2 x0 x1]
// Example with n=2: [x2 x1 x0 2] -> [x1 x0 x2]
func opcodeRoll(s *stack) error {
	val, err := s.PopInt()
	if err != nil {
		return err
	}

	return s.RollN(val.Int32())
}

// opcodeRot rotates the top 3 items on the data stack to the left.
//
// Stack transformation: [... x1 x2 x3] -> [... x2 x3 x1]
func opcodeRot(s *stack) error {
	return s.RotN(1)
}

// opcodeSwap swaps the top two items on the stack.
//
// Stack transformation: [... x1 x2] -> [... x2 x1]
func opcodeSwap(s *stack) error {
	return s.SwapN(1)
}

// opcodeTuck inserts a duplicate of the top item of the data stack before the
// second-to-top item.
//
// Stack transformation: [... x1 x2] -> [... x2 x1 x2]
func opcodeTuck(s *stack) error {
	return s.Tuck()
}

// opcodeSize pushes the size of the top item of the data stack onto the data
// stack.
//
// Stack transformation: [... x1] -> [... x1 len(x1)]
func opcodeSize(s *stack) error {
	so, err := s.PeekByteArray(0)
	if err != nil {
		return err
	}

	s.PushInt(scriptNum(len(so)))
	return nil
}

// opcodeEqual removes the top 2 items of the data stack, compares them as raw
// bytes, and pushes the result, encoded as a boolean, back to the stack.
//
// Stack transformation: [... x1 x2] -> [... bool]
func opcodeEqual(s *stack) error {
	a, err := s.PopByteArray()
	if err != nil {
		return err
	}
	b, err := s.PopByteArray()
	if err != nil {
		return err
	}

	s.PushBool(bytes.Equal(a, b))
	return nil
}

// opcodeEqualVerify is a combination of opcodeEqual and opcodeVerify.
// Specifically, it removes the top 2 items of the data stack, compares them,
// and pushes the result, encoded as a boolean, back to the stack. Then, it
// examines the top item on the data stack as a boolean value and verifies it
// evaluates to true. An error is returned if it does not.
//
// Stack transformation: [... x1 x2] -> [... bool] -> [...]
func opcodeEqualVerify(s *stack) error {
	err := opcodeEqual(s)
	if err == nil {
		err = abstractVerify(s, ErrEqualVerify)
	}
	return err
}

// unaryNumOp returns the handler of an opcode that replaces the top item of
// the data stack, read as a number, with fn of it.
//
// Stack transformation: [... x1] -> [... fn(x1)]
func unaryNumOp(fn func(scriptNum) scriptNum) func(*stack) error {
	return func(s *stack) error {
		m, err := s.PopInt()
		if err != nil {
			return err
		}

		s.PushInt(fn(m))
		return nil
	}
}

// binaryNumOp returns the handler of an opcode that replaces the top two
// items of the data stack, read as numbers, with fn(x1, x2).
//
// Stack transformation: [... x1 x2] -> [... fn(x1, x2)]
func binaryNumOp(fn func(x1, x2 scriptNum) scriptNum) func(*stack) error {
	return func(s *stack) error {
		v0, err := s.PopInt()
		if err != nil {
			return err
		}

		v1, err := s.PopInt()
		if err != nil {
			return err
		}

		s.PushInt(fn(v1, v0))
		return nil
	}
}

func boolToNum(b bool) scriptNum {
	if b {
		return 1
	}
	return 0
}

var (
	// opcode1Add adds one to the top item: [... x1] -> [... x1+1]
	opcode1Add = unaryNumOp(func(m scriptNum) scriptNum { return m + 1 })

	// opcode1Sub subtracts one from the top item: [... x1] -> [... x1-1]
	opcode1Sub = unaryNumOp(func(m scriptNum) scriptNum { return m - 1 })

	// opcodeNegate negates the top item: [... x1] -> [... -x1]
	opcodeNegate = unaryNumOp(func(m scriptNum) scriptNum { return -m })

	// opcodeAbs replaces the top item with its absolute value:
	// [... x1] -> [... abs(x1)]
	opcodeAbs = unaryNumOp(func(m scriptNum) scriptNum {
		if m < 0 {
			return -m
		}
		return m
	})

	// opcodeNot replaces the top item with 1 when it is zero and with 0
	// otherwise. This is a numeric not, so for example 2 becomes 0.
	opcodeNot = unaryNumOp(func(m scriptNum) scriptNum { return boolToNum(m == 0) })

	// opcode0NotEqual replaces the top item with 0 when it is zero and with
	// 1 otherwise.
	opcode0NotEqual = unaryNumOp(func(m scriptNum) scriptNum { return boolToNum(m != 0) })

	// opcodeAdd: [... x1 x2] -> [... x1+x2]
	opcodeAdd = binaryNumOp(func(v1, v0 scriptNum) scriptNum { return v1 + v0 })

	// opcodeSub: [... x1 x2] -> [... x1-x2]
	opcodeSub = binaryNumOp(func(v1, v0 scriptNum) scriptNum { return v1 - v0 })

	// opcodeMul: [... x1 x2] -> [... x1*x2]
	opcodeMul = binaryNumOp(func(v1, v0 scriptNum) scriptNum { return v1 * v0 })

	// opcodeBoolAnd: [... a b] -> [... a != 0 && b != 0]
	opcodeBoolAnd = binaryNumOp(func(v1, v0 scriptNum) scriptNum { return boolToNum(v1 != 0 && v0 != 0) })

	// opcodeBoolOr: [... a b] -> [... a != 0 || b != 0]
	opcodeBoolOr = binaryNumOp(func(v1, v0 scriptNum) scriptNum { return boolToNum(v1 != 0 || v0 != 0) })

	// opcodeNumEqual: [... x1 x2] -> [... x1 == x2]
	opcodeNumEqual = binaryNumOp(func(v1, v0 scriptNum) scriptNum { return boolToNum(v1 == v0) })

	// opcodeNumNotEqual: [... x1 x2] -> [... x1 != x2]
	opcodeNumNotEqual = binaryNumOp(func(v1, v0 scriptNum) scriptNum { return boolToNum(v1 != v0) })

	// opcodeLessThan: [... x1 x2] -> [... x1 < x2]
	opcodeLessThan = binaryNumOp(func(v1, v0 scriptNum) scriptNum { return boolToNum(v1 < v0) })

	// opcodeGreaterThan: [... x1 x2] -> [... x1 > x2]
	opcodeGreaterThan = binaryNumOp(func(v1, v0 scriptNum) scriptNum { return boolToNum(v1 > v0) })

	// opcodeLessThanOrEqual: [... x1 x2] -> [... x1 <= x2]
	opcodeLessThanOrEqual = binaryNumOp(func(v1, v0 scriptNum) scriptNum { return boolToNum(v1 <= v0) })

	// opcodeGreaterThanOrEqual: [... x1 x2] -> [... x1 >= x2]
	opcodeGreaterThanOrEqual = binaryNumOp(func(v1, v0 scriptNum) scriptNum { return boolToNum(v1 >= v0) })

	// opcodeMin: [... x1 x2] -> [... min(x1, x2)]
	opcodeMin = binaryNumOp(func(v1, v0 scriptNum) scriptNum {
		if v1 < v0 {
			return v1
		}
		return v0
	})

	// opcodeMax: [... x1 x2] -> [... max(x1, x2)]
	opcodeMax = binaryNumOp(func(v1, v0 scriptNum) scriptNum {
		if v1 > v0 {
			return v1
		}
		return v0
	})
)

// opcodeNumEqualVerify is a combination of opcodeNumEqual and opcodeVerify.
//
// Stack transformation: [... x1 x2] -> [... bool] -> [...]
func opcodeNumEqualVerify(s *stack) error {
	err := opcodeNumEqual(s)
	if err == nil {
		err = abstractVerify(s, ErrNumEqualVerify)
	}
	return err
}

// opcodeWithin treats the top 3 items on the data stack as integers. When the
// value to test is within the specified range (left inclusive), 1 is pushed to
// the data stack. Otherwise, 0 is pushed.
//
// Stack transformation: [... x1 min max] -> [... bool]
func opcodeWithin(s *stack) error {
	maxVal, err := s.PopInt()
	if err != nil {
		return err
	}

	minVal, err := s.PopInt()
	if err != nil {
		return err
	}

	x, err := s.PopInt()
	if err != nil {
		return err
	}

	s.PushBool(x >= minVal && x < maxVal)
	return nil
}

// opcodeHash returns the handler of a hash opcode, which replaces the top
// item of the data stack with its digest.
//
// Stack transformation: [... x1] -> [... hash(x1)]
func opcodeHash(hash func([]byte) []byte) func(*stack) error {
	return func(s *stack) error {
		buf, err := s.PopByteArray()
		if err != nil {
			return err
		}

		s.PushByteArray(hash(buf))
		return nil
	}
}

// opcodeCheckSig treats the top 2 items on the stack as a public key and a
// signature and replaces them with a bool which indicates if the signature
// was successfully verified against the signature hash z.
//
// The signature is a DER encoded ECDSA signature followed by a single byte
// hash type. The public key is SEC encoded, compressed or uncompressed. A
// signature or public key that does not parse makes the opcode push false
// rather than fail the script.
//
// Stack transformation: [... signature pubkey] -> [... bool]
func opcodeCheckSig(s *stack, z *big.Int) error {
	pkBytes, err := s.PopByteArray()
	if err != nil {
		return err
	}

	fullSigBytes, err := s.PopByteArray()
	if err != nil {
		return err
	}

	// The signature actually needs needs to be longer than this, but at
	// least 1 byte is needed for the hash type below. The full length is
	// checked depending on the script flags and upon parsing the signature.
	if len(fullSigBytes) < 1 {
		s.PushBool(false)
		return nil
	}

	// Trim off hashtype from the signature string and check if the
	// signature and pubkey conform to the strict encoding requirements
	// depending on the flags.
	hashType := SigHashType(fullSigBytes[len(fullSigBytes)-1])
	sigBytes := fullSigBytes[:len(fullSigBytes)-1]

	pubKey, err := btcec.ParsePubKey(pkBytes)
	if err != nil {
		log.Tracef("OP_CHECKSIG: unparsable public key %x: %s", pkBytes, err)
		s.PushBool(false)
		return nil
	}

	signature, err := btcec.ParseDERSignature(sigBytes)
	if err != nil {
		log.Tracef("OP_CHECKSIG: unparsable signature %x: %s", sigBytes, err)
		s.PushBool(false)
		return nil
	}

	valid := signature.Verify(z, pubKey)
	log.Tracef("OP_CHECKSIG: hash type %s, signature valid: %t", hashType, valid)
	s.PushBool(valid)
	return nil
}

// opcodeCheckSigVerify is a combination of opcodeCheckSig and opcodeVerify.
// The opcodeCheckSig function is invoked followed by opcodeVerify. See the
// documentation for each of those opcodes for more details.
//
// Stack transformation: signature pubkey] -> [... bool] -> [...]
func opcodeCheckSigVerify(s *stack, z *big.Int) error {
	err := opcodeCheckSig(s, z)
	if err == nil {
		err = abstractVerify(s, ErrCheckSigVerify)
	}
	return err
}
