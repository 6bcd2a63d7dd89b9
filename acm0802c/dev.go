// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package acm0802c

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/i2c"
)

var (
	// ErrNoDevice is returned by New when no strap address acknowledged.
	ErrNoDevice = errors.New(packageName + ": no display found")

	ErrNotImplemented = fmt.Errorf("%s: %w", packageName, display.ErrNotImplemented)
)

// Dev is an ACM0802C display implementing display.TextDisplay.
//
// Unlike the package level functions, Dev serializes its operations so it
// can be shared between goroutines.
type Dev struct {
	mu   sync.Mutex
	bus  i2c.Bus
	addr Address
	opts Opts

	on     bool
	cursor bool
	blink  bool
}

// New finds the display on bus, initializes it and turns it on.
func New(bus i2c.Bus, opts *Opts) (*Dev, error) {
	addr := FindAddress(bus, opts)
	if addr == NoDevice {
		return nil, ErrNoDevice
	}
	return NewAt(bus, addr, opts)
}

// NewAt initializes the display at a known address and turns it on.
func NewAt(bus i2c.Bus, addr Address, opts *Opts) (*Dev, error) {
	dev := &Dev{bus: bus, addr: addr, opts: opts.resolve()}
	r := Init(bus, addr, &dev.opts)
	if err := r.Err(); err != nil {
		return nil, err
	}
	if err := dev.Display(true); err != nil {
		return nil, err
	}
	return dev, nil
}

// Address returns the bus address of the display.
func (dev *Dev) Address() Address {
	return dev.addr
}

// instruction sends inst and waits delay. The caller holds dev.mu.
func (dev *Dev) instruction(inst Instruction, delay bool) error {
	err := WriteInstruction(dev.bus, dev.addr, inst)
	if delay {
		dev.opts.Sleep(dev.opts.CommandDelay)
	}
	return err
}

// AutoScroll makes the display shift left with each character written, so
// the cursor stays in place. WriteLine turns it off again.
func (dev *Dev) AutoScroll(enabled bool) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	mode := EntryCursorRight
	if enabled {
		mode = EntryDisplayLeft
	}
	return dev.instruction(mode, true)
}

// Clear the display and move the cursor home.
func (dev *Dev) Clear() error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	err := WriteInstruction(dev.bus, dev.addr, ClearDisplay)
	dev.opts.Sleep(dev.opts.ClearDelay)
	return err
}

// Return the number of columns the display shows.
func (dev *Dev) Cols() int {
	return Cols
}

// Set the cursor mode. You can pass multiple arguments.
// Cursor(CursorOff, CursorUnderline)
func (dev *Dev) Cursor(modes ...display.CursorMode) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	cursor, blink := dev.cursor, dev.blink
	for _, mode := range modes {
		switch mode {
		case display.CursorOff:
			cursor, blink = false, false
		case display.CursorUnderline:
			cursor = true
		case display.CursorBlink, display.CursorBlock:
			blink = true
		default:
			return fmt.Errorf("%s: unexpected cursor: %d", packageName, mode)
		}
	}
	if err := dev.instruction(NewDisplayControl(dev.on, cursor, blink), true); err != nil {
		return err
	}
	dev.cursor, dev.blink = cursor, blink
	return nil
}

// Turn the display on / off. DDRAM is kept while the display is off.
func (dev *Dev) Display(on bool) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if err := dev.instruction(NewDisplayControl(on, dev.cursor, dev.blink), true); err != nil {
		return err
	}
	dev.on = on
	return nil
}

// Halt clears the display and turns it off.
func (dev *Dev) Halt() error {
	err := dev.Clear()
	return errors.Join(err, dev.Display(false))
}

// Move the cursor home (MinRow(),MinCol()) and undo any display shift.
func (dev *Dev) Home() error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	err := WriteInstruction(dev.bus, dev.addr, ReturnHome)
	dev.opts.Sleep(dev.opts.ClearDelay)
	return err
}

// Return the min column position.
func (dev *Dev) MinCol() int {
	return 1
}

// Return the min row position.
func (dev *Dev) MinRow() int {
	return 1
}

// Move the cursor forward or backward.
func (dev *Dev) Move(dir display.CursorDirection) error {
	var s Shift
	switch dir {
	case display.Backward:
		s = CursorShiftLeft
	case display.Forward:
		s = CursorShiftRight
	default:
		return ErrNotImplemented
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.instruction(s, true)
}

// Move the cursor to arbitrary position.
func (dev *Dev) MoveTo(row, col int) error {
	if row < dev.MinRow() || row > Rows || col < dev.MinCol() || col > Cols {
		return fmt.Errorf("%s.MoveTo(%d,%d) value out of range", packageName, row, col)
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.instruction(LineAddress(row).Column(col-1), false)
}

// Return the number of rows the display supports.
func (dev *Dev) Rows() int {
	return Rows
}

func (dev *Dev) String() string {
	return fmt.Sprintf("%s{%s}", packageName, dev.addr)
}

// Write character codes at the cursor. Writing stops at the first failed
// character.
func (dev *Dev) Write(p []byte) (n int, err error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	for _, c := range p {
		if err = writeChar(dev.bus, dev.addr, c, &dev.opts); err != nil {
			return n, wrap(err)
		}
		n++
	}
	return n, nil
}

// Write a string output to the display, encoded with Opts.Encoding.
func (dev *Dev) WriteString(text string) (int, error) {
	return dev.Write(dev.opts.encode(text, -1))
}

// WriteLine replaces the start of line 1 or 2 with text. See WriteLine.
func (dev *Dev) WriteLine(line int, text string) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return WriteLine(dev.bus, dev.addr, line, text, &dev.opts)
}

var _ conn.Resource = &Dev{}
var _ display.TextDisplay = &Dev{}
