// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package acm0802c

import (
	"testing"
)

func TestInstructionCodes(t *testing.T) {
	tests := []struct {
		inst Instruction
		want byte
	}{
		{ClearDisplay, 0x01},
		{ReturnHome, 0x02},
		{EntryCursorLeft, 0x04},
		{EntryDisplayRight, 0x05},
		{EntryCursorRight, 0x06},
		{EntryDisplayLeft, 0x07},
		{DisplayOff, 0x08},
		{DisplayOn, 0x0c},
		{DisplayOnCursorBlink, 0x0f},
		{CursorShiftLeft, 0x10},
		{CursorShiftRight, 0x14},
		{DisplayShiftLeft, 0x18},
		{DisplayShiftRight, 0x1c},
		{FunctionSet4Bit1Line5x8, 0x20},
		{FunctionSet8Bit2Line5x8, 0x38},
		{FunctionSet8Bit2Line5x11, 0x3c},
		{Line1, 0x80},
		{Line2, 0xc0},
	}
	for _, tc := range tests {
		if got := tc.inst.Code(); got != tc.want {
			t.Errorf("%s.Code() = %#02x, want %#02x", tc.inst, got, tc.want)
		}
	}
}

func TestNewDisplayControl(t *testing.T) {
	for _, d := range []bool{false, true} {
		for _, c := range []bool{false, true} {
			for _, b := range []bool{false, true} {
				got := NewDisplayControl(d, c, b)
				if got < DisplayOff || got > DisplayOnCursorBlink {
					t.Errorf("NewDisplayControl(%t, %t, %t) = %#02x out of family", d, c, b, byte(got))
				}
				if (got&0x04 != 0) != d || (got&0x02 != 0) != c || (got&0x01 != 0) != b {
					t.Errorf("NewDisplayControl(%t, %t, %t) = %s", d, c, b, got)
				}
			}
		}
	}
	if NewDisplayControl(false, false, false) != DisplayOff {
		t.Error("all flags off must be DisplayOff")
	}
	if NewDisplayControl(true, true, true) != DisplayOnCursorBlink {
		t.Error("all flags on must be DisplayOnCursorBlink")
	}
}

func TestNewFunctionSet(t *testing.T) {
	tests := []struct {
		eightBit, twoLine, tall bool
		want                    FunctionSet
	}{
		{false, false, false, FunctionSet4Bit1Line5x8},
		{false, false, true, FunctionSet4Bit1Line5x11},
		{false, true, false, FunctionSet4Bit2Line5x8},
		{false, true, true, FunctionSet4Bit2Line5x11},
		{true, false, false, FunctionSet8Bit1Line5x8},
		{true, false, true, FunctionSet8Bit1Line5x11},
		{true, true, false, FunctionSet8Bit2Line5x8},
		{true, true, true, FunctionSet8Bit2Line5x11},
	}
	for _, tc := range tests {
		if got := NewFunctionSet(tc.eightBit, tc.twoLine, tc.tall); got != tc.want {
			t.Errorf("NewFunctionSet(%t, %t, %t) = %s, want %s", tc.eightBit, tc.twoLine, tc.tall, got, tc.want)
		}
	}
	if s := FunctionSet8Bit2Line5x8.String(); s != "FunctionSet(8-bit,2-line,5x8)" {
		t.Errorf("String() = %q", s)
	}
}

func TestLineAddress(t *testing.T) {
	tests := []struct {
		line int
		want DDRAMAddress
	}{
		{1, 0x80},
		{2, 0xc0},
		{0, 0xc0},
		{3, 0xc0},
		{-1, 0xc0},
	}
	for _, tc := range tests {
		if got := LineAddress(tc.line); got != tc.want {
			t.Errorf("LineAddress(%d) = %s, want %s", tc.line, got, tc.want)
		}
	}
}

func TestColumn(t *testing.T) {
	tests := []struct {
		base DDRAMAddress
		col  int
		want DDRAMAddress
	}{
		{Line1, 0, 0x80},
		{Line1, 7, 0x87},
		{Line1, 39, 0xa7},
		{Line1, 40, 0xa7},
		{Line2, 2, 0xc2},
		{Line2, 39, 0xe7},
		{Line2, -5, 0xc0},
	}
	for _, tc := range tests {
		if got := tc.base.Column(tc.col); got != tc.want {
			t.Errorf("%s.Column(%d) = %s, want %s", tc.base, tc.col, got, tc.want)
		}
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		inst Instruction
		want string
	}{
		{ClearDisplay, "ClearDisplay"},
		{Command(0x03), "Command(0x03)"},
		{EntryCursorRight, "EntryCursorRight"},
		{DisplayOnCursor, "DisplayControl(D=1,C=1,B=0)"},
		{DisplayShiftRight, "DisplayShiftRight"},
		{Line2.Column(3), "DDRAMAddress(0x43)"},
		{Line1.Column(5), "DDRAMAddress(0x05)"},
		{EntryMode(0x00), "EntryMode(0x00)"},
		{Shift(0x11), "Shift(0x11)"},
	}
	for _, tc := range tests {
		if got := tc.inst.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}
