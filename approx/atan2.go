// {{{ Copyright (c) Paul R. Tagliamonte <paul@k3xec.com>, 2020
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE. }}}

// Package approx provides fast polynomial approximations of transcendental
// functions that sit on the hot path of the DSP kernel. DSP code is not
// allowed to call libm per-sample in the inner loop of a discriminator, so
// phase estimation everywhere in this module goes through Atan2 here rather
// than math.Atan2.
package approx

import "math"

// atanPoly is a degree-13 odd minimax polynomial approximating atan(x) on
// [-1, 1] to within about 4e-8, evaluated by Horner's method.
func atanPoly(x float64) float64 {
	x2 := x * x
	return x * (0.9999993329 + x2*(-0.3333314528+x2*(0.1999355085+
		x2*(-0.1420889944+x2*(0.1065626393+x2*(-0.0752896400+x2*0.0429096138))))))
}

// Atan2 approximates math.Atan2 to within about 4e-8 over the full circle
// using the minimum/maximum argument ratio plus quadrant fix-ups, avoiding
// a direct call into libm's atan.
func Atan2(y, x float64) float64 {
	if x == 0 && y == 0 {
		return 0
	}

	ax, ay := math.Abs(x), math.Abs(y)
	var angle float64
	if ax >= ay {
		r := ay / ax
		angle = atanPoly(r)
	} else {
		r := ax / ay
		angle = math.Pi/2 - atanPoly(r)
	}

	switch {
	case x >= 0 && y >= 0:
		// angle already in [0, pi/2]
	case x < 0 && y >= 0:
		angle = math.Pi - angle
	case x < 0 && y < 0:
		angle = angle - math.Pi
	default: // x >= 0 && y < 0
		angle = -angle
	}
	return angle
}

// Atan2f is the float32 convenience wrapper used throughout the f32 DSP
// inner loops.
func Atan2f(y, x float32) float32 {
	return float32(Atan2(float64(y), float64(x)))
}
