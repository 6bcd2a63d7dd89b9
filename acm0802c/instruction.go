// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package acm0802c

import "fmt"

// Control is the byte sent ahead of every payload byte on the bus. It selects
// whether the payload is an instruction or display data.
//
//	0b[C0][RS]000000
//
// C0 = 0 marks the last control byte: only data bytes may follow until STOP.
// C0 = 1 means another control byte follows the next data byte.
type Control byte

const (
	ControlInstruction     Control = 0x00
	ControlInstructionMore Control = 0x80
	ControlData            Control = 0x40
	ControlDataMore        Control = 0xc0
)

// Instruction is an 8-bit controller instruction. The set of implementations
// is closed: every value comes from one of the instruction families below.
type Instruction interface {
	fmt.Stringer
	// Code returns the byte put on the wire after ControlInstruction.
	Code() byte
	instruction()
}

// Command is an instruction without parameters.
type Command byte

const (
	ClearDisplay Command = 0x01 // Fill DDRAM with spaces, address counter to 0.
	ReturnHome   Command = 0x02 // Address counter to 0, undo display shift.
)

// EntryMode selects the cursor direction and display shift applied after
// each data write.
//
//	0b000001[I/D][S]
type EntryMode byte

const (
	EntryCursorLeft   EntryMode = 0x04 // Decrement, no shift.
	EntryDisplayRight EntryMode = 0x05 // Decrement, shift the display right.
	EntryCursorRight  EntryMode = 0x06 // Increment, no shift.
	EntryDisplayLeft  EntryMode = 0x07 // Increment, shift the display left.
)

// DisplayControl turns the display, the cursor and the cursor blink on or
// off.
//
//	0b00001[D][C][B]
type DisplayControl byte

const (
	DisplayOff            DisplayControl = 0x08
	DisplayOffBlink       DisplayControl = 0x09
	DisplayOffCursor      DisplayControl = 0x0a
	DisplayOffCursorBlink DisplayControl = 0x0b
	DisplayOn             DisplayControl = 0x0c
	DisplayOnBlink        DisplayControl = 0x0d
	DisplayOnCursor       DisplayControl = 0x0e
	DisplayOnCursorBlink  DisplayControl = 0x0f
)

// NewDisplayControl packs the three display control flags.
func NewDisplayControl(display, cursor, blink bool) DisplayControl {
	v := DisplayOff
	if display {
		v |= 0x04
	}
	if cursor {
		v |= 0x02
	}
	if blink {
		v |= 0x01
	}
	return v
}

// Shift moves the cursor or the whole display by one position without
// touching DDRAM.
//
//	0b0001[S/C][R/L]00
type Shift byte

const (
	CursorShiftLeft   Shift = 0x10
	CursorShiftRight  Shift = 0x14
	DisplayShiftLeft  Shift = 0x18
	DisplayShiftRight Shift = 0x1c
)

// FunctionSet selects the interface width, the line count and the font.
//
//	0b001[DL][N][F]00
type FunctionSet byte

const (
	FunctionSet4Bit1Line5x8  FunctionSet = 0x20
	FunctionSet4Bit1Line5x11 FunctionSet = 0x24
	FunctionSet4Bit2Line5x8  FunctionSet = 0x28
	FunctionSet4Bit2Line5x11 FunctionSet = 0x2c
	FunctionSet8Bit1Line5x8  FunctionSet = 0x30
	FunctionSet8Bit1Line5x11 FunctionSet = 0x34
	FunctionSet8Bit2Line5x8  FunctionSet = 0x38
	FunctionSet8Bit2Line5x11 FunctionSet = 0x3c
)

// NewFunctionSet packs the three function set flags.
func NewFunctionSet(eightBit, twoLine, tallFont bool) FunctionSet {
	v := FunctionSet4Bit1Line5x8
	if eightBit {
		v |= 0x10
	}
	if twoLine {
		v |= 0x08
	}
	if tallFont {
		v |= 0x04
	}
	return v
}

// DDRAMAddress sets the address counter to a display data RAM cell.
//
//	0b1[AC6][AC5][AC4][AC3][AC2][AC1][AC0]
//
// Line 1 occupies 0x00-0x27 and line 2 0x40-0x67. With no display shift the
// visible cells are:
//
//	|00|01|02|03|04|05|06|07|
//	|40|41|42|43|44|45|46|47|
type DDRAMAddress byte

const (
	Line1 DDRAMAddress = 0x80
	Line2 DDRAMAddress = 0xc0
)

// LineAddress returns the DDRAM base address of a display line. Line 1 is
// the top line; every other value selects line 2.
func LineAddress(line int) DDRAMAddress {
	if line == 1 {
		return Line1
	}
	return Line2
}

// Column offsets a line base address by col cells. col is clamped to the
// line's DDRAM extent.
func (a DDRAMAddress) Column(col int) DDRAMAddress {
	col = max(0, min(col, LineLength-1))
	return a&0xc0 | DDRAMAddress(col)
}

func (c Command) Code() byte        { return byte(c) }
func (e EntryMode) Code() byte      { return byte(e) }
func (d DisplayControl) Code() byte { return byte(d) }
func (s Shift) Code() byte          { return byte(s) }
func (f FunctionSet) Code() byte    { return byte(f) }
func (a DDRAMAddress) Code() byte   { return byte(a) }

func (Command) instruction()        {}
func (EntryMode) instruction()      {}
func (DisplayControl) instruction() {}
func (Shift) instruction()          {}
func (FunctionSet) instruction()    {}
func (DDRAMAddress) instruction()   {}

func (c Command) String() string {
	switch c {
	case ClearDisplay:
		return "ClearDisplay"
	case ReturnHome:
		return "ReturnHome"
	}
	return fmt.Sprintf("Command(%#02x)", byte(c))
}

func (e EntryMode) String() string {
	switch e {
	case EntryCursorLeft:
		return "EntryCursorLeft"
	case EntryDisplayRight:
		return "EntryDisplayRight"
	case EntryCursorRight:
		return "EntryCursorRight"
	case EntryDisplayLeft:
		return "EntryDisplayLeft"
	}
	return fmt.Sprintf("EntryMode(%#02x)", byte(e))
}

func (d DisplayControl) String() string {
	return fmt.Sprintf("DisplayControl(D=%d,C=%d,B=%d)", byte(d>>2&1), byte(d>>1&1), byte(d&1))
}

func (s Shift) String() string {
	switch s {
	case CursorShiftLeft:
		return "CursorShiftLeft"
	case CursorShiftRight:
		return "CursorShiftRight"
	case DisplayShiftLeft:
		return "DisplayShiftLeft"
	case DisplayShiftRight:
		return "DisplayShiftRight"
	}
	return fmt.Sprintf("Shift(%#02x)", byte(s))
}

func (f FunctionSet) String() string {
	width, lines, font := 4, 1, "5x8"
	if f&0x10 != 0 {
		width = 8
	}
	if f&0x08 != 0 {
		lines = 2
	}
	if f&0x04 != 0 {
		font = "5x11"
	}
	return fmt.Sprintf("FunctionSet(%d-bit,%d-line,%s)", width, lines, font)
}

func (a DDRAMAddress) String() string {
	return fmt.Sprintf("DDRAMAddress(%#02x)", byte(a&0x7f))
}
