// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package acm0802c

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"periph.io/x/conn/v3/i2c"
)

const (
	packageName = "acm0802c"

	// Rows and Cols are the visible size of the panel.
	Rows = 2
	Cols = 8
	// LineLength is the number of DDRAM cells per line. Text past this
	// length is dropped.
	LineLength = 40
)

// Address is a slave address in the left aligned 8-bit form printed in the
// datasheet. The low bit is the R/W bit and is always 0.
type Address uint8

const (
	// NoDevice is returned by FindAddress when nothing acknowledged.
	NoDevice Address = 0x00

	Address0 Address = 0x78 // SA1 pulled down, SA0 pulled down.
	Address1 Address = 0x7a // SA1 pulled down, SA0 pulled up.
	Address2 Address = 0x7c // SA1 pulled up, SA0 pulled down.
	Address3 Address = 0x7e // SA1 pulled up, SA0 pulled up.
)

// Addresses lists the strap addresses in probe order.
var Addresses = [...]Address{Address0, Address1, Address2, Address3}

// Addr7 returns the right aligned 7-bit bus address.
func (a Address) Addr7() uint16 {
	return uint16(a) >> 1
}

func (a Address) String() string {
	if a == NoDevice {
		return "NoDevice"
	}
	return fmt.Sprintf("%#02x", uint8(a))
}

// Minimum settling times from the datasheet. Delays configured in Opts are
// raised to these values.
const (
	MinPowerOnDelay = 40 * time.Millisecond
	MinCommandDelay = 100 * time.Microsecond
	MinClearDelay   = 10 * time.Millisecond
	MinCharDelay    = 10 * time.Millisecond
)

// Opts holds the timing and encoding options. A nil *Opts selects
// DefaultOpts, and zero fields take the DefaultOpts value.
type Opts struct {
	// PowerOnDelay is waited before the first instruction of Init.
	PowerOnDelay time.Duration
	// CommandDelay is waited after function set, display control and
	// entry mode set.
	CommandDelay time.Duration
	// ClearDelay is waited after clear display and return home.
	ClearDelay time.Duration
	// CharDelay is waited after every character written.
	CharDelay time.Duration
	// ProbeAttempts is the number of tries per address in FindAddress.
	ProbeAttempts int
	// Encoding converts text to character ROM codes. When nil the bytes of
	// the string are written unchanged. japanese.ShiftJIS maps half-width
	// katakana onto the A00 ROM. WriteLine drops a code that would not fit
	// whole in the line.
	Encoding encoding.Encoding
	// Sleep blocks for the given duration. Defaults to time.Sleep.
	Sleep func(time.Duration)
}

// DefaultOpts are the default timings, comfortably above the controller
// minimums.
var DefaultOpts = Opts{
	PowerOnDelay:  50 * time.Millisecond,
	CommandDelay:  time.Millisecond,
	ClearDelay:    20 * time.Millisecond,
	CharDelay:     10 * time.Millisecond,
	ProbeAttempts: 10,
}

// resolve returns a complete copy of opts.
func (opts *Opts) resolve() Opts {
	o := DefaultOpts
	if opts != nil {
		if opts.PowerOnDelay != 0 {
			o.PowerOnDelay = opts.PowerOnDelay
		}
		if opts.CommandDelay != 0 {
			o.CommandDelay = opts.CommandDelay
		}
		if opts.ClearDelay != 0 {
			o.ClearDelay = opts.ClearDelay
		}
		if opts.CharDelay != 0 {
			o.CharDelay = opts.CharDelay
		}
		if opts.ProbeAttempts > 0 {
			o.ProbeAttempts = opts.ProbeAttempts
		}
		o.Encoding = opts.Encoding
		o.Sleep = opts.Sleep
	}
	o.PowerOnDelay = max(o.PowerOnDelay, MinPowerOnDelay)
	o.CommandDelay = max(o.CommandDelay, MinCommandDelay)
	o.ClearDelay = max(o.ClearDelay, MinClearDelay)
	o.CharDelay = max(o.CharDelay, MinCharDelay)
	if o.Sleep == nil {
		o.Sleep = time.Sleep
	}
	return o
}

// encode converts text to character codes. Runes the encoding cannot
// represent become its replacement character.
//
// When limit is not negative at most limit bytes are returned. With an
// Encoding the cut falls between the codes of two runes, so a multi-byte code
// is never split.
func (opts *Opts) encode(text string, limit int) []byte {
	if opts.Encoding == nil {
		b := []byte(text)
		if limit >= 0 && len(b) > limit {
			b = b[:limit]
		}
		return b
	}
	enc := encoding.ReplaceUnsupported(opts.Encoding.NewEncoder())
	var b []byte
	for _, r := range text {
		c, err := enc.Bytes([]byte(string(r)))
		if err != nil {
			c = []byte(string(r))
		}
		if limit >= 0 && len(b)+len(c) > limit {
			break
		}
		b = append(b, c...)
	}
	return b
}

func wrap(err error) error {
	if err == nil || strings.HasPrefix(err.Error(), packageName) {
		return err
	}
	return fmt.Errorf("%s: %w", packageName, err)
}

// FindAddress probes the four strap addresses in order and returns the first
// one that acknowledges. It returns NoDevice when none does, which means no
// display is attached.
//
// A probe is a lone instruction control byte, which the controller ignores.
// Each address is tried up to opts.ProbeAttempts times.
func FindAddress(bus i2c.Bus, opts *Opts) Address {
	o := opts.resolve()
	probe := []byte{byte(ControlInstruction)}
	for _, addr := range Addresses {
		for range o.ProbeAttempts {
			if bus.Tx(addr.Addr7(), probe, nil) == nil {
				return addr
			}
		}
	}
	return NoDevice
}

// transmit writes one 2 byte frame.
func transmit(bus i2c.Bus, addr Address, ctrl Control, b byte) error {
	return bus.Tx(addr.Addr7(), []byte{byte(ctrl), b}, nil)
}

// WriteInstruction sends a single instruction. It does not wait for the
// instruction to complete and does not retry.
func WriteInstruction(bus i2c.Bus, addr Address, inst Instruction) error {
	if err := transmit(bus, addr, ControlInstruction, inst.Code()); err != nil {
		return fmt.Errorf("%s: %s: %w", packageName, inst, err)
	}
	return nil
}

// WriteChar writes one character code at the address counter and waits
// opts.CharDelay, whether or not the write succeeded.
func WriteChar(bus i2c.Bus, addr Address, c byte, opts *Opts) error {
	o := opts.resolve()
	return wrap(writeChar(bus, addr, c, &o))
}

func writeChar(bus i2c.Bus, addr Address, c byte, o *Opts) error {
	err := transmit(bus, addr, ControlData, c)
	o.Sleep(o.CharDelay)
	return err
}

// StepResult is the outcome of one Init step.
type StepResult struct {
	Instruction Instruction
	// Delay is the time waited after the instruction.
	Delay time.Duration
	Err   error
}

// InitReport lists every step Init performed.
type InitReport struct {
	PowerOnDelay time.Duration
	Steps        []StepResult
}

// OK reports whether every instruction was acknowledged.
func (r *InitReport) OK() bool {
	return r.Err() == nil
}

// Err joins the errors of the failed steps, or returns nil.
func (r *InitReport) Err() error {
	var errs []error
	for _, s := range r.Steps {
		if s.Err != nil {
			errs = append(errs, s.Err)
		}
	}
	return errors.Join(errs...)
}

// Init brings the controller from power on into 8-bit, 2 line, 5x8 font mode
// with the display off, DDRAM cleared and the address counter incrementing.
//
// Every step and its delay always run, even after a failed write: the
// controller's timing does not change because an acknowledge went missing.
// The outcome of each step is in the returned report.
func Init(bus i2c.Bus, addr Address, opts *Opts) InitReport {
	o := opts.resolve()
	steps := []struct {
		inst  Instruction
		delay time.Duration
	}{
		{FunctionSet8Bit2Line5x8, o.CommandDelay},
		{DisplayOff, o.CommandDelay},
		{ClearDisplay, o.ClearDelay},
		{EntryCursorRight, o.CommandDelay},
	}

	r := InitReport{PowerOnDelay: o.PowerOnDelay, Steps: make([]StepResult, 0, len(steps))}
	o.Sleep(o.PowerOnDelay)
	for _, s := range steps {
		err := WriteInstruction(bus, addr, s.inst)
		o.Sleep(s.delay)
		r.Steps = append(r.Steps, StepResult{Instruction: s.inst, Delay: s.delay, Err: err})
	}
	return r
}

// WriteLine writes text on line 1 or 2 starting at the first DDRAM cell of
// that line. Any line other than 1 selects line 2. At most LineLength
// characters are written; there is no wrapping to the next line.
//
// A character that fails to write is dropped and the remaining characters
// are still written. The returned error joins every failure.
func WriteLine(bus i2c.Bus, addr Address, line int, text string, opts *Opts) error {
	o := opts.resolve()
	var errs []error
	if err := WriteInstruction(bus, addr, EntryCursorRight); err != nil {
		errs = append(errs, err)
	}
	if err := WriteInstruction(bus, addr, LineAddress(line)); err != nil {
		errs = append(errs, err)
	}
	for i, c := range o.encode(text, LineLength) {
		if err := writeChar(bus, addr, c, &o); err != nil {
			errs = append(errs, fmt.Errorf("%s: character %d: %w", packageName, i, err))
		}
	}
	return errors.Join(errs...)
}
