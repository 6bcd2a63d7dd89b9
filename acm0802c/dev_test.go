// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package acm0802c

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/display/displaytest"

	"github.com/GermanBionicSystems/charlcd/lcdsim"
)

var liveDevice = false

func noSleep(time.Duration) {}

func getDev(t *testing.T) (*Dev, *lcdsim.Dev) {
	sim := newSim(Address2.Addr7())
	dev, err := New(sim, &Opts{Sleep: noSleep})
	if err != nil {
		t.Fatal(err)
	}
	return dev, sim
}

func TestDevBasic(t *testing.T) {
	dev, sim := getDev(t)
	if dev.Address() != Address2 {
		t.Errorf("Address() = %s", dev.Address())
	}
	if s := dev.String(); s != "acm0802c{0x7c}" {
		t.Errorf("String() = %q", s)
	}
	if !sim.State().DisplayOn {
		t.Error("display should be on after New")
	}
	n, err := dev.WriteString("12345678")
	if err != nil {
		t.Error(err)
	}
	if n != 8 {
		t.Errorf("expected 8 bytes written, got %d", n)
	}
	if err = dev.MoveTo(2, 3); err != nil {
		t.Error(err)
	}
	if _, err = dev.WriteString("abc"); err != nil {
		t.Error(err)
	}
	if diff := cmp.Diff(sim.Visible(), []string{"12345678", "  abc   "}); diff != "" {
		t.Errorf("visible (-got +want):\n%s", diff)
	}
	if dev.Rows() != 2 || dev.Cols() != 8 {
		t.Errorf("unexpected size %dx%d", dev.Cols(), dev.Rows())
	}
	if err = dev.Halt(); err != nil {
		t.Error(err)
	}
	if sim.State().DisplayOn {
		t.Error("display should be off after Halt")
	}
}

func TestDevInterface(t *testing.T) {
	dev, _ := getDev(t)
	defer func() { _ = dev.Halt() }()
	errs := displaytest.TestTextDisplay(dev, liveDevice)
	for _, err := range errs {
		if !errors.Is(err, display.ErrNotImplemented) {
			t.Error(err)
		}
	}
}

func TestDevNoDevice(t *testing.T) {
	_, err := New(newSim(0x27), &Opts{Sleep: noSleep, ProbeAttempts: 1})
	if !errors.Is(err, ErrNoDevice) {
		t.Errorf("expected ErrNoDevice, got %v", err)
	}
}

func TestDevInitFailure(t *testing.T) {
	sim := newSim(0x3c)
	sim.SetNack(true)
	dev, err := NewAt(sim, Address0, &Opts{Sleep: noSleep})
	if dev != nil || !errors.Is(err, lcdsim.ErrNack) {
		t.Errorf("expected ErrNack, got %v", err)
	}
}

func TestDevWriteLine(t *testing.T) {
	dev, sim := getDev(t)
	if err := dev.AutoScroll(true); err != nil {
		t.Fatal(err)
	}
	if err := dev.WriteLine(1, "Hello"); err != nil {
		t.Fatal(err)
	}
	if err := dev.WriteLine(2, "World"); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(sim.Visible(), []string{"Hello   ", "World   "}); diff != "" {
		t.Errorf("visible (-got +want):\n%s", diff)
	}
	if sim.State().Shift {
		t.Error("WriteLine should restore the increment entry mode")
	}
}

func TestDevCursor(t *testing.T) {
	dev, sim := getDev(t)
	if err := dev.Cursor(display.CursorUnderline, display.CursorBlink); err != nil {
		t.Fatal(err)
	}
	st := sim.State()
	if !st.DisplayOn || !st.CursorOn || !st.BlinkOn {
		t.Errorf("unexpected state %+v", st)
	}
	if err := dev.Cursor(display.CursorOff); err != nil {
		t.Fatal(err)
	}
	st = sim.State()
	if !st.DisplayOn || st.CursorOn || st.BlinkOn {
		t.Errorf("unexpected state %+v", st)
	}
	if err := dev.Cursor(display.CursorMode(99)); err == nil {
		t.Error("expected error for unknown cursor mode")
	}
}

func TestDevMove(t *testing.T) {
	dev, sim := getDev(t)
	if err := dev.MoveTo(1, 4); err != nil {
		t.Fatal(err)
	}
	if err := dev.Move(display.Forward); err != nil {
		t.Error(err)
	}
	if got := sim.State().Address; got != 0x04 {
		t.Errorf("address counter %#02x, want 0x04", got)
	}
	if err := dev.Move(display.Backward); err != nil {
		t.Error(err)
	}
	if got := sim.State().Address; got != 0x03 {
		t.Errorf("address counter %#02x, want 0x03", got)
	}
	if err := dev.Move(display.Up); !errors.Is(err, display.ErrNotImplemented) {
		t.Errorf("expected ErrNotImplemented, got %v", err)
	}
	for _, pos := range [][2]int{{0, 1}, {3, 1}, {1, 0}, {1, 9}} {
		if err := dev.MoveTo(pos[0], pos[1]); err == nil {
			t.Errorf("MoveTo(%d, %d) expected error", pos[0], pos[1])
		}
	}
	if err := dev.Home(); err != nil {
		t.Error(err)
	}
	if got := sim.State().Address; got != 0 {
		t.Errorf("address counter %#02x after Home", got)
	}
}
