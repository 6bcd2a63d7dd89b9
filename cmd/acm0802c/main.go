// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// acm0802c writes two lines of text to an ACM0802C character display.
//
// With -sim the display is emulated on the terminal instead, and -png saves
// a picture of the emulated panel.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/japanese"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/charlcd/acm0802c"
	"github.com/GermanBionicSystems/charlcd/lcdsim"
)

func openBus(name string, sim *lcdsim.Dev) (i2c.BusCloser, error) {
	if sim != nil {
		return sim, nil
	}
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	return i2creg.Open(name)
}

func mainImpl() error {
	busName := flag.String("bus", "", "I²C bus to use")
	l1 := flag.String("l1", "ACM0802C", "text for line 1")
	l2 := flag.String("l2", "", "text for line 2")
	katakana := flag.Bool("katakana", false, "encode text as Shift_JIS so half width katakana reach the character ROM")
	simulate := flag.Bool("sim", false, "emulate the display on the terminal")
	png := flag.String("png", "", "save a PNG of the emulated display, requires -sim")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()
	if flag.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}
	if *png != "" && !*simulate {
		return errors.New("-png requires -sim")
	}
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	var sim *lcdsim.Dev
	if *simulate {
		sim = lcdsim.New(&lcdsim.Opts{Refresh: true})
		defer sim.Halt()
	}
	bus, err := openBus(*busName, sim)
	if err != nil {
		return err
	}
	defer bus.Close()
	log := logrus.WithField("bus", bus.String())

	opts := acm0802c.DefaultOpts
	if *katakana {
		opts.Encoding = japanese.ShiftJIS
	}

	addr := acm0802c.FindAddress(bus, &opts)
	if addr == acm0802c.NoDevice {
		return acm0802c.ErrNoDevice
	}
	log = log.WithField("addr", addr)
	log.Info("display found")

	r := acm0802c.Init(bus, addr, &opts)
	for _, s := range r.Steps {
		entry := log.WithFields(logrus.Fields{"instruction": s.Instruction, "delay": s.Delay})
		if s.Err != nil {
			entry.WithError(s.Err).Error("init step failed")
		} else {
			entry.Debug("init step")
		}
	}
	if err := acm0802c.WriteInstruction(bus, addr, acm0802c.DisplayOn); err != nil {
		return err
	}
	time.Sleep(opts.CommandDelay)
	var errs []error
	for i, text := range []string{*l1, *l2} {
		if err := acm0802c.WriteLine(bus, addr, i+1, text, &opts); err != nil {
			log.WithError(err).WithField("line", i+1).Warn("write failed")
			errs = append(errs, err)
		}
	}
	if *png != "" {
		if err := sim.SavePNG(*png, nil); err != nil {
			return err
		}
		log.WithField("path", *png).Info("saved snapshot")
	}
	return errors.Join(errs...)
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
