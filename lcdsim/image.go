// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdsim

import (
	"image"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
)

const (
	cellW  = 14
	cellH  = 22
	margin = 12
)

// MonoFace returns the Go Mono font at the given size.
func MonoFace(points float64) (font.Face, error) {
	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: points}), nil
}

// Image renders the visible window as a picture of the panel. A nil face
// selects basicfont.Face7x13.
func (d *Dev) Image(face font.Face) image.Image {
	if face == nil {
		face = basicfont.Face7x13
	}
	d.mu.Lock()
	rows := d.visible()
	on := d.displayOn
	d.mu.Unlock()

	w := 2*margin + cellW*d.cols
	h := 2*margin + cellH*d.rows
	dc := gg.NewContext(w, h)
	dc.SetRGB255(40, 40, 40)
	dc.Clear()
	dc.DrawRoundedRectangle(margin/2, margin/2, float64(w-margin), float64(h-margin), 4)
	if on {
		dc.SetRGB255(170, 210, 60)
	} else {
		dc.SetRGB255(60, 70, 40)
	}
	dc.Fill()

	dc.SetFontFace(face)
	dc.SetRGB255(20, 50, 20)
	for row, line := range rows {
		y := float64(margin + cellH*row + cellH/2)
		for col, r := range []rune(line) {
			x := float64(margin + cellW*col + cellW/2)
			dc.DrawStringAnchored(string(r), x, y, 0.5, 0.5)
		}
	}
	return dc.Image()
}

// SavePNG writes Image(face) to path.
func (d *Dev) SavePNG(path string, face font.Face) error {
	return gg.SavePNG(path, d.Image(face))
}
