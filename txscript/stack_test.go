// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"fmt"
	"testing"
)

// checkStack returns an error if the two stacks are not identical.
func checkStack(got, want [][]byte) error {
	if len(got) != len(want) {
		return fmt.Errorf("stack length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if !bytes.Equal(got[i], want[i]) {
			return fmt.Errorf("stack item %d mismatch: got %x, want %x", i, got[i], want[i])
		}
	}
	return nil
}

// TestStack tests that all of the stack operations work as expected.
func TestStack(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		before    [][]byte
		operation func(*stack) error
		err       error
		after     [][]byte
	}{
		{
			"noop",
			[][]byte{{1}, {2}, {3}, {4}, {5}},
			func(s *stack) error {
				return nil
			},
			nil,
			[][]byte{{1}, {2}, {3}, {4}, {5}},
		},
		{
			"peek underflow (byte)",
			[][]byte{{1}, {2}, {3}, {4}, {5}},
			func(s *stack) error {
				_, err := s.PeekByteArray(5)
				return err
			},
			scriptError(ErrInvalidStackOperation, ""),
			nil,
		},
		{
			"peek bool",
			[][]byte{{1}, {0x80}},
			func(s *stack) error {
				val, err := s.PeekBool(0)
				if err != nil {
					return err
				}
				if val {
					return fmt.Errorf("negative zero read as true")
				}
				val, err = s.PeekBool(1)
				if err != nil {
					return err
				}
				if !val {
					return fmt.Errorf("one read as false")
				}
				return nil
			},
			nil,
			[][]byte{{1}, {0x80}},
		},
		{
			"pop",
			[][]byte{{1}, {2}, {3}, {4}, {5}},
			func(s *stack) error {
				val, err := s.PopByteArray()
				if err != nil {
					return err
				}
				if !bytes.Equal(val, []byte{5}) {
					return fmt.Errorf("popped %x", val)
				}
				return nil
			},
			nil,
			[][]byte{{1}, {2}, {3}, {4}},
		},
		{
			"pop everything",
			[][]byte{{1}, {2}, {3}, {4}, {5}},
			func(s *stack) error {
				for i := 0; i < 5; i++ {
					if _, err := s.PopByteArray(); err != nil {
						return err
					}
				}
				return nil
			},
			nil,
			nil,
		},
		{
			"pop underflow",
			[][]byte{{1}, {2}, {3}, {4}, {5}},
			func(s *stack) error {
				for i := 0; i < 6; i++ {
					if _, err := s.PopByteArray(); err != nil {
						return err
					}
				}
				return nil
			},
			scriptError(ErrInvalidStackOperation, ""),
			nil,
		},
		{
			"pop int",
			[][]byte{{0x81}},
			func(s *stack) error {
				v, err := s.PopInt()
				if err != nil {
					return err
				}
				if v != -1 {
					return fmt.Errorf("popped %d, want -1", v)
				}
				return nil
			},
			nil,
			nil,
		},
		{
			"pop int too big",
			[][]byte{{1, 2, 3, 4, 5}},
			func(s *stack) error {
				_, err := s.PopInt()
				return err
			},
			scriptError(ErrNumberTooBig, ""),
			nil,
		},
		{
			"push int",
			nil,
			func(s *stack) error {
				s.PushInt(scriptNum(-129))
				s.PushInt(scriptNum(0))
				return nil
			},
			nil,
			[][]byte{{0x81, 0x80}, {}},
		},
		{
			"push bool",
			nil,
			func(s *stack) error {
				s.PushBool(true)
				s.PushBool(false)
				return nil
			},
			nil,
			[][]byte{{1}, nil},
		},
		{
			"nip top",
			[][]byte{{1}, {2}, {3}},
			func(s *stack) error {
				return s.NipN(0)
			},
			nil,
			[][]byte{{1}, {2}},
		},
		{
			"nip middle",
			[][]byte{{1}, {2}, {3}},
			func(s *stack) error {
				return s.NipN(1)
			},
			nil,
			[][]byte{{1}, {3}},
		},
		{
			"nip too far",
			[][]byte{{1}, {2}, {3}},
			func(s *stack) error {
				return s.NipN(3)
			},
			scriptError(ErrInvalidStackOperation, ""),
			nil,
		},
		{
			"tuck",
			[][]byte{{1}, {2}},
			func(s *stack) error {
				return s.Tuck()
			},
			nil,
			[][]byte{{2}, {1}, {2}},
		},
		{
			"tuck underflow",
			[][]byte{{1}},
			func(s *stack) error {
				return s.Tuck()
			},
			scriptError(ErrInvalidStackOperation, ""),
			nil,
		},
		{
			"drop 2",
			[][]byte{{1}, {2}, {3}},
			func(s *stack) error {
				return s.DropN(2)
			},
			nil,
			[][]byte{{1}},
		},
		{
			"drop 0",
			[][]byte{{1}},
			func(s *stack) error {
				return s.DropN(0)
			},
			scriptError(ErrInvalidStackOperation, ""),
			nil,
		},
		{
			"dup 2",
			[][]byte{{1}, {2}, {3}},
			func(s *stack) error {
				return s.DupN(2)
			},
			nil,
			[][]byte{{1}, {2}, {3}, {2}, {3}},
		},
		{
			"dup 3 underflow",
			[][]byte{{1}, {2}},
			func(s *stack) error {
				return s.DupN(3)
			},
			scriptError(ErrInvalidStackOperation, ""),
			nil,
		},
		{
			"rot 1",
			[][]byte{{1}, {2}, {3}, {4}},
			func(s *stack) error {
				return s.RotN(1)
			},
			nil,
			[][]byte{{1}, {3}, {4}, {2}},
		},
		{
			"rot 2",
			[][]byte{{1}, {2}, {3}, {4}, {5}, {6}},
			func(s *stack) error {
				return s.RotN(2)
			},
			nil,
			[][]byte{{3}, {4}, {5}, {6}, {1}, {2}},
		},
		{
			"rot underflow",
			[][]byte{{1}, {2}},
			func(s *stack) error {
				return s.RotN(1)
			},
			scriptError(ErrInvalidStackOperation, ""),
			nil,
		},
		{
			"swap 1",
			[][]byte{{1}, {2}, {3}},
			func(s *stack) error {
				return s.SwapN(1)
			},
			nil,
			[][]byte{{1}, {3}, {2}},
		},
		{
			"swap 2",
			[][]byte{{1}, {2}, {3}, {4}},
			func(s *stack) error {
				return s.SwapN(2)
			},
			nil,
			[][]byte{{3}, {4}, {1}, {2}},
		},
		{
			"over 1",
			[][]byte{{1}, {2}, {3}},
			func(s *stack) error {
				return s.OverN(1)
			},
			nil,
			[][]byte{{1}, {2}, {3}, {2}},
		},
		{
			"over 2",
			[][]byte{{1}, {2}, {3}, {4}},
			func(s *stack) error {
				return s.OverN(2)
			},
			nil,
			[][]byte{{1}, {2}, {3}, {4}, {1}, {2}},
		},
		{
			"over underflow",
			[][]byte{{1}},
			func(s *stack) error {
				return s.OverN(1)
			},
			scriptError(ErrInvalidStackOperation, ""),
			nil,
		},
		{
			"pick 2",
			[][]byte{{1}, {2}, {3}},
			func(s *stack) error {
				return s.PickN(2)
			},
			nil,
			[][]byte{{1}, {2}, {3}, {1}},
		},
		{
			"pick underflow",
			[][]byte{{1}, {2}, {3}},
			func(s *stack) error {
				return s.PickN(3)
			},
			scriptError(ErrInvalidStackOperation, ""),
			nil,
		},
		{
			"roll 0",
			[][]byte{{1}, {2}, {3}},
			func(s *stack) error {
				return s.RollN(0)
			},
			nil,
			[][]byte{{1}, {2}, {3}},
		},
		{
			"roll 2",
			[][]byte{{1}, {2}, {3}},
			func(s *stack) error {
				return s.RollN(2)
			},
			nil,
			[][]byte{{2}, {3}, {1}},
		},
	}

	for _, test := range tests {
		s := stack{}
		for _, elem := range test.before {
			s.PushByteArray(elem)
		}

		err := test.operation(&s)
		if e := tstCheckScriptError(err, test.err); e != nil {
			t.Errorf("%s: %v", test.name, e)
			continue
		}
		if err != nil {
			continue
		}

		if err := checkStack(getStack(&s), test.after); err != nil {
			t.Errorf("%s: %v", test.name, err)
		}
	}
}

func TestStackMinimalData(t *testing.T) {
	s := stack{verifyMinimalData: true}
	s.PushByteArray([]byte{0x01, 0x00})
	if _, err := s.PopInt(); !IsErrorCode(err, ErrMinimalData) {
		t.Errorf("PopInt: got %v, want %s", err, ErrMinimalData)
	}

	s.verifyMinimalData = false
	s.PushByteArray([]byte{0x01, 0x00})
	v, err := s.PopInt()
	if err != nil {
		t.Fatalf("PopInt: %v", err)
	}
	if v != 1 {
		t.Errorf("PopInt: got %d, want 1", v)
	}
}
