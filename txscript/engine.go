// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"fmt"
	"math/big"

	"github.com/satoshilab/scriptcore/infrastructure/logger"
)

// ScriptFlags is a bitmask defining additional operations or tests that will be
// done when executing a script pair.
type ScriptFlags uint32

const (
	// ScriptDiscourageUpgradableNops defines whether to verify that
	// NOP1 through NOP10 are reserved for future soft-fork upgrades. This
	// flag must not be used for consensus critical code nor applied to
	// blocks as this flag is only for stricter standard transaction
	// checks. This flag is only applied when the above opcodes are
	// executed.
	ScriptDiscourageUpgradableNops ScriptFlags = 1 << iota

	// ScriptVerifyMinimalData defines that signatures must use the smallest
	// push operator. This is both rules 3 and 4 of BIP0062.
	ScriptVerifyMinimalData

	// ScriptVerifyCleanStack defines that the stack must contain only
	// one stack element after evaluation and that the element must be
	// true if interpreted as a boolean. This is rule 6 of BIP0062.
	ScriptVerifyCleanStack
)

// branchTarget holds the indices of the OP_ELSE and OP_ENDIF matching a
// conditional. elseIdx is -1 when the conditional has no OP_ELSE.
type branchTarget struct {
	elseIdx int
	endIdx  int
}

// Engine is the virtual machine that executes scripts.
type Engine struct {
	script   []Command
	branches map[int]branchTarget
	pc       int
	dstack   stack // data stack
	astack   stack // alt stack
	z        *big.Int
	flags    ScriptFlags
}

// hasFlag returns whether the script engine instance has the passed flag set.
func (vm *Engine) hasFlag(flag ScriptFlags) bool {
	return vm.flags&flag == flag
}

// skipBranch moves the program counter of the conditional at pc to the
// start of its OP_ELSE branch, or past its OP_ENDIF when there is none.
func (vm *Engine) skipBranch(pc int) {
	target := vm.branches[pc]
	if target.elseIdx >= 0 {
		vm.pc = target.elseIdx + 1
		return
	}
	vm.pc = target.endIdx + 1
}

// Execute will execute all scripts in the script engine and return either nil
// for successful validation or an error if one occurred.
func (vm *Engine) Execute() (err error) {
	done := false
	for !done {
		log.Tracef("%s", logger.NewLogClosure(func() string {
			return fmt.Sprintf("stepping %s", vm.DisasmPC())
		}))

		done, err = vm.Step()
		if err != nil {
			return err
		}
		log.Tracef("%s", logger.NewLogClosure(func() string {
			var dstr, astr string

			// if we're tracing, dump the stacks.
			if vm.dstack.Depth() != 0 {
				dstr = "Stack:\n" + vm.dstack.String()
			}
			if vm.astack.Depth() != 0 {
				astr = "AltStack:\n" + vm.astack.String()
			}

			return dstr + astr
		}))
	}

	return vm.CheckErrorCondition()
}

// CheckErrorCondition returns nil if the running script has ended and was
// successful, leaving a true boolean on the stack. An error otherwise,
// including if the script has not finished.
func (vm *Engine) CheckErrorCondition() error {
	if vm.pc < len(vm.script) {
		return scriptError(ErrInternal, "error check when script unfinished")
	}
	if vm.dstack.Depth() < 1 {
		return scriptError(ErrEmptyStack,
			"stack empty at end of script execution")
	}
	if vm.hasFlag(ScriptVerifyCleanStack) && vm.dstack.Depth() != 1 {
		str := fmt.Sprintf("stack contains %d unexpected items",
			vm.dstack.Depth()-1)
		return scriptError(ErrCleanStack, str)
	}

	v, err := vm.dstack.PopBool()
	if err != nil {
		return err
	}
	if !v {
		log.Tracef("%s", logger.NewLogClosure(func() string {
			return fmt.Sprintf("script failed: %s", NewScript(vm.script...))
		}))
		return scriptError(ErrEvalFalse,
			"false stack entry at end of script execution")
	}
	return nil
}

// Step will execute the next instruction and move the program counter to the
// next opcode in the script, or the next script if the current has ended. Step
// will return true in the case that the last opcode was successfully executed.
//
// The result of calling Step or any other method is undefined if an error is
// returned.
func (vm *Engine) Step() (done bool, err error) {
	if vm.pc >= len(vm.script) {
		return true, nil
	}

	pc := vm.pc
	cmd := vm.script[pc]
	vm.pc++

	if cmd.IsData() {
		err = vm.pushData(cmd)
	} else {
		err = vm.executeOpcode(cmd.Opcode, pc)
	}
	if err != nil {
		return true, err
	}

	return vm.pc >= len(vm.script), nil
}

// pushData pushes the element carried by a data command to the data stack.
func (vm *Engine) pushData(cmd Command) error {
	if len(cmd.Data) > MaxScriptElementSize {
		str := fmt.Sprintf("element size %d exceeds max allowed size %d",
			len(cmd.Data), MaxScriptElementSize)
		return scriptError(ErrElementTooBig, str)
	}
	if vm.hasFlag(ScriptVerifyMinimalData) {
		if err := cmd.checkMinimalDataPush(); err != nil {
			return err
		}
	}
	vm.dstack.PushByteArray(cmd.Data)
	return nil
}

// executeOpcode dispatches op to its handler according to its calling
// convention.
func (vm *Engine) executeOpcode(op byte, pc int) error {
	opcode := &opcodeArray[op]
	if opcode.isDisabled() {
		str := fmt.Sprintf("attempt to execute disabled opcode %s",
			opcode.name)
		return scriptError(ErrDisabledOpcode, str)
	}

	switch opcode.kind {
	case kindStack:
		return opcode.stackOp(&vm.dstack)
	case kindAltStack:
		return opcode.altStackOp(&vm.dstack, &vm.astack)
	case kindFlow:
		return opcode.flowOp(vm, pc)
	case kindSig:
		return opcode.sigOp(&vm.dstack, vm.z)
	default:
		str := fmt.Sprintf("opcode %s of kind %s has no handler",
			opcode.name, opcode.kind)
		return scriptError(ErrInternal, str)
	}
}

// DisasmPC returns the string for the disassembly of the opcode that will be
// next to execute when Step is called.
func (vm *Engine) DisasmPC() string {
	if vm.pc >= len(vm.script) {
		return fmt.Sprintf("%04d: <end>", vm.pc)
	}
	return fmt.Sprintf("%04d: %s", vm.pc, vm.script[vm.pc])
}

// GetStack returns the contents of the primary stack as an array. where the
// last item in the array is the top of the stack.
func (vm *Engine) GetStack() [][]byte {
	return getStack(&vm.dstack)
}

// GetAltStack returns the contents of the alternate stack as an array where the
// last item in the array is the top of the stack.
func (vm *Engine) GetAltStack() [][]byte {
	return getStack(&vm.astack)
}

// getStack returns the contents of stack as a byte array bottom up
func getStack(stack *stack) [][]byte {
	array := make([][]byte, stack.Depth())
	for i := range array {
		// PeekByteArray can't fail due to overflow, already checked
		array[len(array)-i-1], _ = stack.PeekByteArray(int32(i))
	}
	return array
}

// buildBranchTable matches every OP_IF and OP_NOTIF with its OP_ELSE and
// OP_ENDIF in one forward scan. The table is keyed by the index of each of
// the three commands.
func buildBranchTable(script []Command) (map[int]branchTarget, error) {
	type openConditional struct {
		ifIdx   int
		elseIdx int
	}
	var open []openConditional
	branches := make(map[int]branchTarget)

	for i, cmd := range script {
		if cmd.IsData() {
			continue
		}
		switch cmd.Opcode {
		case OpIf, OpNotIf:
			open = append(open, openConditional{ifIdx: i, elseIdx: -1})

		case OpElse:
			if len(open) == 0 {
				str := fmt.Sprintf("OP_ELSE at %d has no matching "+
					"opcode to begin conditional execution", i)
				return nil, scriptError(ErrUnbalancedConditional, str)
			}
			top := &open[len(open)-1]
			if top.elseIdx != -1 {
				str := fmt.Sprintf("second OP_ELSE at %d for the "+
					"conditional at %d", i, top.ifIdx)
				return nil, scriptError(ErrUnbalancedConditional, str)
			}
			top.elseIdx = i

		case OpEndIf:
			if len(open) == 0 {
				str := fmt.Sprintf("OP_ENDIF at %d has no matching "+
					"opcode to begin conditional execution", i)
				return nil, scriptError(ErrUnbalancedConditional, str)
			}
			top := open[len(open)-1]
			open = open[:len(open)-1]

			target := branchTarget{elseIdx: top.elseIdx, endIdx: i}
			branches[top.ifIdx] = target
			if top.elseIdx != -1 {
				branches[top.elseIdx] = target
			}
			branches[i] = target
		}
	}

	if len(open) != 0 {
		str := fmt.Sprintf("conditional at %d has no matching OP_ENDIF",
			open[len(open)-1].ifIdx)
		return nil, scriptError(ErrUnbalancedConditional, str)
	}
	return branches, nil
}

// NewEngine returns a new script engine for the unlocking script followed by
// the locking script it spends. z is the signature hash checked by
// OP_CHECKSIG. Either script may be nil.
//
// Scripts containing a disabled opcode anywhere, or conditionals that do not
// balance, are rejected before anything is executed.
func NewEngine(unlocking, locking *Script, z *big.Int, flags ScriptFlags) (*Engine, error) {
	var script []Command
	if unlocking != nil {
		script = append(script, unlocking.cmds...)
	}
	if locking != nil {
		script = append(script, locking.cmds...)
	}

	for i, cmd := range script {
		if cmd.IsData() {
			continue
		}
		if opcode := &opcodeArray[cmd.Opcode]; opcode.isDisabled() {
			str := fmt.Sprintf("attempt to execute disabled opcode %s at %d",
				opcode.name, i)
			return nil, scriptError(ErrDisabledOpcode, str)
		}
	}

	branches, err := buildBranchTable(script)
	if err != nil {
		return nil, err
	}

	vm := &Engine{
		script:   script,
		branches: branches,
		z:        z,
		flags:    flags,
	}
	if vm.hasFlag(ScriptVerifyMinimalData) {
		vm.dstack.verifyMinimalData = true
		vm.astack.verifyMinimalData = true
	}
	return vm, nil
}

// Evaluate runs the script against the signature hash z and reports whether
// it leaves a true value on top of the stack. Unlocking scripts are combined
// with the locking script they spend beforehand.
func (s *Script) Evaluate(z *big.Int) bool {
	vm, err := NewEngine(nil, s, z, 0)
	if err != nil {
		log.Debugf("Script %s rejected: %s", s, err)
		return false
	}
	if err := vm.Execute(); err != nil {
		log.Debugf("Script %s failed: %s", s, err)
		return false
	}
	return true
}
