// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package charlcd is a container for character LCD drivers and the tools to
// exercise them without hardware.
//
// acm0802c drives the ACM0802C 8x2 module over I²C, lcdsim emulates its
// controller, and cmd/acm0802c writes text to either from the command line.
package charlcd
