// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdsim

import (
	"fmt"
	"image/color"
	"io"
	"strings"
)

var (
	bezel = color.NRGBA{40, 40, 40, 255}

	// Dark text on a yellow-green backlight, or dim when the display is off.
	litPanel  = "\033[38;5;22;48;5;149m"
	darkPanel = "\033[38;5;236;48;5;236m"
)

// Draw renders the visible window to the console.
func (d *Dev) Draw() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.draw()
}

func (d *Dev) draw() error {
	var buf strings.Builder
	if d.drawn {
		// Move back over the previous frame.
		fmt.Fprintf(&buf, "\r\033[%dA", d.rows+2)
	}
	edge := strings.Repeat(d.palette.Block(bezel), d.cols+2)
	_, _ = buf.WriteString("\r\033[0m" + edge + "\033[0m\n")
	panel := darkPanel
	if d.displayOn {
		panel = litPanel
	}
	for _, line := range d.visible() {
		_, _ = io.WriteString(&buf, d.palette.Block(bezel)+panel+line+"\033[0m"+d.palette.Block(bezel)+"\033[0m\n")
	}
	_, _ = buf.WriteString(edge + "\033[0m\n")
	_, err := io.WriteString(d.w, buf.String())
	d.drawn = true
	return err
}
