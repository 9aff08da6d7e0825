// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorCode identifies a kind of script error.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrInternal is returned if internal consistency checks fail. In
	// practice this error should never be seen as it would mean there is an
	// error in the engine logic.
	ErrInternal ErrorCode = iota

	// ---------------------------------------
	// Failures related to improper API usage.
	// ---------------------------------------

	// ErrInvalidIndex is returned when an out-of-bounds index is passed to
	// a function.
	ErrInvalidIndex

	// ErrUnsupportedHashType is returned when a signature hash is requested
	// for a hash type other than SigHashAll.
	ErrUnsupportedHashType

	// ---------------------------------------------
	// Failures related to final execution state.
	// ---------------------------------------------

	// ErrEarlyReturn is returned when OP_RETURN is executed in the script.
	ErrEarlyReturn

	// ErrEmptyStack is returned when the script evaluated without error,
	// but terminated with an empty top stack element.
	ErrEmptyStack

	// ErrEvalFalse is returned when the script evaluated without error but
	// terminated with a false top stack element.
	ErrEvalFalse

	// ErrCleanStack is returned when the ScriptVerifyCleanStack flag
	// is set, and after evaluation, the stack does not contain only a
	// single element.
	ErrCleanStack

	// -----------------------------------------------------
	// Failures related to the encoding of script elements.
	// -----------------------------------------------------

	// ErrElementTooBig is returned if the size of an element to be pushed
	// to the stack is over MaxScriptElementSize.
	ErrElementTooBig

	// ErrMalformedPush is returned when a data push opcode tries to push
	// more bytes than are left in the script.
	ErrMalformedPush

	// ErrNumberTooBig is returned when the argument for an opcode that
	// expects numeric input is larger than the expected maximum number of
	// bytes.
	ErrNumberTooBig

	// ErrMinimalData is returned when the ScriptVerifyMinimalData flag
	// is set and the script contains push operations or numeric operands
	// that do not use the minimal encoding.
	ErrMinimalData

	// ---------------------------------
	// Failures related to opcodes.
	// ---------------------------------

	// ErrReservedOpcode is returned when an opcode marked as reserved or
	// not assigned is encountered.
	ErrReservedOpcode

	// ErrDisabledOpcode is returned when a disabled opcode is encountered
	// in a script.
	ErrDisabledOpcode

	// ErrNotImplemented is returned for opcodes whose semantics this
	// engine deliberately leaves out, such as multisig and timelocks.
	ErrNotImplemented

	// ErrUnbalancedConditional is returned when an OP_ELSE or OP_ENDIF is
	// encountered without first having an OP_IF or OP_NOTIF or the end of
	// script is reached without encountering an OP_ENDIF when an OP_IF or
	// OP_NOTIF was previously encountered.
	ErrUnbalancedConditional

	// ErrInvalidStackOperation is returned when a stack operation is
	// attempted with a number that is invalid for the current stack size.
	ErrInvalidStackOperation

	// ErrInvalidAltStackOperation is returned when an alt stack operation
	// is attempted on an empty alt stack.
	ErrInvalidAltStackOperation

	// ---------------------------------
	// Failures related to verification.
	// ---------------------------------

	// ErrVerify is returned when OP_VERIFY is encountered in a script and
	// the top item on the data stack does not evaluate to true.
	ErrVerify

	// ErrEqualVerify is returned when OP_EQUALVERIFY is encountered in a
	// script and the top item on the data stack does not evaluate to true.
	ErrEqualVerify

	// ErrNumEqualVerify is returned when OP_NUMEQUALVERIFY is encountered
	// in a script and the top item on the data stack does not evaluate to
	// true.
	ErrNumEqualVerify

	// ErrCheckSigVerify is returned when OP_CHECKSIGVERIFY is encountered
	// in a script and the top item on the data stack does not evaluate to
	// true.
	ErrCheckSigVerify

	// ErrDiscourageUpgradableNOPs is returned when the
	// ScriptDiscourageUpgradableNops flag is set and a NOP opcode is
	// encountered in a script.
	ErrDiscourageUpgradableNOPs

	// numErrorCodes is the maximum error code number used in tests. This
	// entry MUST be the last entry in the enum.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrInternal:                 "ErrInternal",
	ErrInvalidIndex:             "ErrInvalidIndex",
	ErrUnsupportedHashType:      "ErrUnsupportedHashType",
	ErrEarlyReturn:              "ErrEarlyReturn",
	ErrEmptyStack:               "ErrEmptyStack",
	ErrEvalFalse:                "ErrEvalFalse",
	ErrCleanStack:               "ErrCleanStack",
	ErrElementTooBig:            "ErrElementTooBig",
	ErrMalformedPush:            "ErrMalformedPush",
	ErrNumberTooBig:             "ErrNumberTooBig",
	ErrMinimalData:              "ErrMinimalData",
	ErrReservedOpcode:           "ErrReservedOpcode",
	ErrDisabledOpcode:           "ErrDisabledOpcode",
	ErrNotImplemented:           "ErrNotImplemented",
	ErrUnbalancedConditional:    "ErrUnbalancedConditional",
	ErrInvalidStackOperation:    "ErrInvalidStackOperation",
	ErrInvalidAltStackOperation: "ErrInvalidAltStackOperation",
	ErrVerify:                   "ErrVerify",
	ErrEqualVerify:              "ErrEqualVerify",
	ErrNumEqualVerify:           "ErrNumEqualVerify",
	ErrCheckSigVerify:           "ErrCheckSigVerify",
	ErrDiscourageUpgradableNOPs: "ErrDiscourageUpgradableNOPs",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error identifies a script-related error. It is used to indicate three
// classes of errors:
//  1. Script execution failures due to violating one of the many requirements
//     imposed by the script engine or evaluating to false
//  2. Improper API usage by callers
//  3. Internal consistency check failures
//
// The caller can use type assertions on the returned errors to access the
// ErrorCode field to ascertain the specific reason for the error. As an
// additional convenience, the caller may make use of the IsErrorCode function
// to check for a specific error code.
type Error struct {
	ErrorCode   ErrorCode
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// scriptError creates an Error given a set of arguments.
func scriptError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}

// IsErrorCode returns whether or not the provided error is a script error with
// the provided error code.
func IsErrorCode(err error, c ErrorCode) bool {
	var scriptErr Error
	if ok := errors.As(err, &scriptErr); ok {
		return scriptErr.ErrorCode == c
	}
	return false
}
