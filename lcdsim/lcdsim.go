// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcdsim emulates an HD44780 compatible character LCD controller
// with a control byte I²C interface, such as the ST7032 in the ACM0802C
// module. The emulator implements i2c.Bus so drivers run against it
// unchanged, and it can show the panel on the terminal or as an image.
//
// Useful while the display is still in the mail, and in tests.
package lcdsim

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

const (
	// DefaultAddr is the 7-bit address of an ACM0802C with both straps low.
	DefaultAddr uint16 = 0x3c

	// LineLength is the number of DDRAM cells per line.
	LineLength = 40

	rsBit   byte = 0x40
	moreBit byte = 0x80
)

// ErrNack is returned for transactions the emulated device does not
// acknowledge.
var ErrNack = errors.New("lcdsim: no acknowledge")

// Opts represents the options of the emulator.
type Opts struct {
	// Addr is the 7-bit address the emulator answers on. Defaults to
	// DefaultAddr.
	Addr uint16
	// Cols and Rows are the visible window. Default to 8x2.
	Cols, Rows int
	// Out receives the console rendering. Defaults to a colorable stdout.
	Out io.Writer
	// Refresh redraws the console after every transaction.
	Refresh bool
	// Palette renders the bezel. Defaults to ansi256.Default.
	Palette *ansi256.Palette
	// Logger traces decoded instructions at debug level. Defaults to the
	// logrus standard logger.
	Logger logrus.FieldLogger

	_ struct{}
}

// Write is one decoded byte received by the controller.
type Write struct {
	Data  bool // Written to RAM rather than executed as an instruction.
	Value byte
}

// Dev is an emulated display controller.
type Dev struct {
	addr    uint16
	cols    int
	rows    int
	w       io.Writer
	refresh bool
	palette ansi256.Palette
	log     logrus.FieldLogger

	mu        sync.Mutex
	nack      bool
	txs       int
	writes    []Write
	ddram     [2][LineLength]byte
	cgram     [64]byte
	ac        byte // Address counter, DDRAM form: 0x00-0x27 and 0x40-0x67.
	cgMode    bool // Data writes go to CGRAM.
	increment bool
	shiftOn   bool
	shift     int // Display shift, positive is left.
	function  byte
	displayOn bool
	cursorOn  bool
	blinkOn   bool
	drawn     bool
}

// New returns an emulated controller in its power on state: DDRAM blank,
// display off, 8-bit 1 line mode.
func New(opts *Opts) *Dev {
	if opts == nil {
		opts = &Opts{}
	}
	d := &Dev{
		addr:      opts.Addr,
		cols:      opts.Cols,
		rows:      opts.Rows,
		w:         opts.Out,
		refresh:   opts.Refresh,
		log:       opts.Logger,
		increment: true,
		function:  0x30,
	}
	if d.addr == 0 {
		d.addr = DefaultAddr
	}
	if d.cols <= 0 {
		d.cols = 8
	}
	if d.rows <= 0 || d.rows > 2 {
		d.rows = 2
	}
	if d.w == nil {
		d.w = colorable.NewColorableStdout()
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	d.palette = *p
	if d.log == nil {
		d.log = logrus.StandardLogger()
	}
	d.clear()
	return d
}

func (d *Dev) String() string {
	return fmt.Sprintf("lcdsim{%#x}", d.addr)
}

// SetSpeed implements i2c.Bus. The emulator runs at any speed.
func (d *Dev) SetSpeed(f physic.Frequency) error {
	return nil
}

// Close implements io.Closer so the emulator can stand in for an
// i2c.BusCloser.
func (d *Dev) Close() error {
	return nil
}

// Halt implements conn.Resource. It resets the terminal colors.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// SetNack makes the device stop (or resume) acknowledging its address.
func (d *Dev) SetNack(nack bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nack = nack
}

// Tx implements i2c.Bus.
//
// Every byte of w after the address is decoded per the control byte
// protocol: a control byte with C0 set carries exactly one payload byte and
// is followed by another control byte; a control byte with C0 clear is
// followed by payload bytes until the end of the transaction.
func (d *Dev) Tx(addr uint16, w, r []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if addr != d.addr || d.nack {
		return ErrNack
	}
	if len(r) != 0 {
		return errors.New("lcdsim: reads are not supported")
	}
	d.txs++
	for pos := 0; pos < len(w); {
		ctrl := w[pos]
		pos++
		data := ctrl&rsBit != 0
		if ctrl&moreBit != 0 {
			if pos < len(w) {
				d.exec(data, w[pos])
				pos++
			}
			continue
		}
		for ; pos < len(w); pos++ {
			d.exec(data, w[pos])
		}
	}
	if d.refresh {
		if err := d.draw(); err != nil {
			d.log.WithError(err).Warn("lcdsim: console refresh failed")
		}
	}
	return nil
}

// Transactions returns the number of acknowledged transactions.
func (d *Dev) Transactions() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.txs
}

// Writes returns every byte received so far, in order.
func (d *Dev) Writes() []Write {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Write(nil), d.writes...)
}

// State is a snapshot of the controller registers.
type State struct {
	Address   byte // Address counter.
	Increment bool
	Shift     bool // Entry mode display shift.
	DisplayOn bool
	CursorOn  bool
	BlinkOn   bool
	Function  byte // Last function set instruction.
}

// State returns the controller registers.
func (d *Dev) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return State{
		Address:   d.ac,
		Increment: d.increment,
		Shift:     d.shiftOn,
		DisplayOn: d.displayOn,
		CursorOn:  d.cursorOn,
		BlinkOn:   d.blinkOn,
		Function:  d.function,
	}
}

// Line returns all LineLength DDRAM cells of line 1 or 2 as raw codes.
func (d *Dev) Line(line int) []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	row := 0
	if line != 1 {
		row = 1
	}
	return append([]byte(nil), d.ddram[row][:]...)
}

// Visible returns the text shown on each row, taking the display shift into
// account. A display that is off shows blanks.
func (d *Dev) Visible() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.visible()
}

func (d *Dev) visible() []string {
	out := make([]string, d.rows)
	for row := range d.rows {
		cells := make([]rune, d.cols)
		for col := range d.cols {
			cells[col] = ' '
			if d.displayOn {
				cells[col] = Glyph(d.ddram[row][mod(d.shift+col, LineLength)])
			}
		}
		out[row] = string(cells)
	}
	return out
}

// exec applies one received byte. The caller holds d.mu.
func (d *Dev) exec(data bool, b byte) {
	d.writes = append(d.writes, Write{Data: data, Value: b})
	if data {
		d.writeRAM(b)
		return
	}
	switch {
	case b&0x80 != 0:
		d.cgMode = false
		d.ac = b & 0x7f
		d.log.WithField("address", fmt.Sprintf("%#02x", d.ac)).Debug("lcdsim: set DDRAM address")
	case b&0x40 != 0:
		d.cgMode = true
		d.ac = b & 0x3f
		d.log.WithField("address", fmt.Sprintf("%#02x", d.ac)).Debug("lcdsim: set CGRAM address")
	case b&0x20 != 0:
		d.function = b
		d.log.WithField("function", fmt.Sprintf("%#02x", b)).Debug("lcdsim: function set")
	case b&0x10 != 0:
		left := b&0x04 == 0
		if b&0x08 != 0 {
			if left {
				d.shift++
			} else {
				d.shift--
			}
		} else {
			d.step(!left)
		}
		d.log.WithField("shift", d.shift).Debug("lcdsim: cursor or display shift")
	case b&0x08 != 0:
		d.displayOn = b&0x04 != 0
		d.cursorOn = b&0x02 != 0
		d.blinkOn = b&0x01 != 0
		d.log.WithFields(logrus.Fields{"display": d.displayOn, "cursor": d.cursorOn, "blink": d.blinkOn}).Debug("lcdsim: display control")
	case b&0x04 != 0:
		d.increment = b&0x02 != 0
		d.shiftOn = b&0x01 != 0
		d.log.WithFields(logrus.Fields{"increment": d.increment, "shift": d.shiftOn}).Debug("lcdsim: entry mode")
	case b&0x02 != 0:
		d.cgMode = false
		d.ac = 0
		d.shift = 0
		d.log.Debug("lcdsim: return home")
	case b&0x01 != 0:
		d.clear()
		d.log.Debug("lcdsim: clear display")
	}
}

func (d *Dev) clear() {
	for row := range d.ddram {
		for col := range d.ddram[row] {
			d.ddram[row][col] = ' '
		}
	}
	d.cgMode = false
	d.ac = 0
	d.shift = 0
	d.increment = true
}

func (d *Dev) writeRAM(b byte) {
	if d.cgMode {
		d.cgram[d.ac&0x3f] = b
		if d.increment {
			d.ac = (d.ac + 1) & 0x3f
		} else {
			d.ac = (d.ac - 1) & 0x3f
		}
		return
	}
	row, col := d.cell()
	if col < LineLength {
		d.ddram[row][col] = b
	}
	d.step(d.increment)
	if d.shiftOn {
		if d.increment {
			d.shift++
		} else {
			d.shift--
		}
	}
}

// cell splits the address counter into a row and a column.
func (d *Dev) cell() (int, int) {
	row := 0
	if d.ac&0x40 != 0 {
		row = 1
	}
	return row, int(d.ac & 0x3f)
}

// step moves the address counter by one cell. In 2 line mode the end of line
// 1 continues at the start of line 2 and the other way around.
func (d *Dev) step(forward bool) {
	row, col := d.cell()
	twoLine := d.function&0x08 != 0
	if forward {
		col++
		if col >= LineLength {
			col = 0
			if twoLine {
				row ^= 1
			}
		}
	} else {
		col--
		if col < 0 {
			col = LineLength - 1
			if twoLine {
				row ^= 1
			}
		}
	}
	d.ac = byte(row<<6 | col)
}

// Glyph returns the rune shown for a character code of the A00 (Japanese)
// character ROM.
func Glyph(c byte) rune {
	switch {
	case c < 0x10:
		return '□' // CGRAM
	case c == 0x5c:
		return '¥'
	case c == 0x7e:
		return '→'
	case c == 0x7f:
		return '←'
	case c >= 0x20 && c < 0x7e:
		return rune(c)
	case c >= 0xa1 && c <= 0xdf:
		return rune(0xff61 + int(c) - 0xa1)
	}
	return ' '
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}

var _ i2c.BusCloser = &Dev{}
var _ conn.Resource = &Dev{}
