// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package acm0802c drives the Xiamen Zettler ACM0802C-NLW-BBW-IIC, an 8x2
// character LCD module with an HD44780 compatible controller behind an I²C
// interface.
//
// The package level functions are the whole driver. They hold no state: the
// caller owns the i2c.Bus and the Address and passes both into every call.
// Every bus write is a 2 byte frame, a Control byte followed by either an
// Instruction code or a character code.
//
// Dev wraps the same functions as a periph.io/x/conn/v3/display.TextDisplay.
//
// # Addressing
//
// The slave address is selected by the SA1 (pin 4) and SA0 (pin 5) straps:
//
//	0b01111[SA1][SA0]0 = 0x78, 0x7a, 0x7c or 0x7e
//
// Addresses in this package use that left aligned form. Address.Addr7 gives
// the 7-bit value periph expects.
//
// # Datasheet
//
// https://akizukidenshi.com/goodsaffix/ACM0802C-NLW-BBW-IIC.pdf
package acm0802c
