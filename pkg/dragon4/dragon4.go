// Package dragon4 converts finite IEEE-754 binary64 values into the
// shortest digit string in any radix 2-36 that parses back to the same
// value under round-to-nearest-even.
//
// The algorithm is the Steele-White / Burger-Dybvig free-format digit
// generation over exact rational arithmetic: the double is decomposed into
// f * 2^e, the value is carried as the quotient r/s together with the
// admissibility window [r - m-, r + m+], and digits are peeled off until
// the window permits stopping. All arithmetic runs on fixed-capacity
// integers from pkg/bigint and digits go into a fixed buffer, so the
// working state needs no heap allocation; the returned string is
// allocated.
package dragon4

import (
	"math"

	"go.radixpoint.io/dragon/pkg/bigint"
)

// alphabet maps a digit value in [0, 36) to its character.
const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// outBufSize bounds the formatted output. The worst case is radix 2 of the
// smallest subnormal: 1074 fraction digits plus "0." and the sign.
const outBufSize = 1200

// conv is the working state of one conversion. It lives on the caller's
// stack for the duration of a single Stringify call; nothing is shared.
type conv struct {
	f      bigint.Int // significand, x = f * 2^e
	r      bigint.Int // numerator of the remaining value
	s      bigint.Int // denominator
	mPlus  bigint.Int // distance to the successor double, scaled
	mMinus bigint.Int // distance to the predecessor double, scaled
	t1, t2 bigint.Int // scratch

	e int    // binary exponent
	b uint32 // output radix
	k int    // scale exponent: leading digit has weight b^(k-1)

	// Inclusive window boundaries. Both are set when f is even, so that
	// under round-to-nearest-even a value exactly on a boundary still
	// rounds back to f.
	lowOK  bool
	highOK bool

	buf   [outBufSize]byte
	w     int
	first bool // no digit emitted yet
	nd    int  // digits emitted
}

// decompose extracts f and e from a positive finite double so that
// x == f * 2^e exactly. Bits are taken from the value, never through
// memory aliasing, so the result is endian-independent.
func (c *conv) decompose(x float64) {
	bits := math.Float64bits(x)
	mant := bits & (1<<52 - 1)
	bexp := int(bits>>52) & 0x7FF
	if bexp == 0 {
		// Subnormal: no implicit bit, fixed exponent.
		c.e = -1074
	} else {
		c.e = bexp - 1075
		mant |= 1 << 52
	}
	c.f.SetUint64(mant)
}

// prepare initializes r, s, m+ and m- from (f, e). The four cases follow
// Burger-Dybvig: when f is the smallest significand of its binade the gap
// to the predecessor is half the gap to the successor, so the window is
// asymmetric.
func (c *conv) prepare() {
	c.lowOK = c.f.IsEven()
	c.highOK = c.lowOK

	if c.e >= 0 {
		if c.f.Is2to52() {
			// r = f * 2^(e+2), s = 4, m+ = 2^(e+1), m- = 2^e
			c.t1.SetTwoExp(c.e + 2)
			c.r.Mul(&c.f, &c.t1)
			c.s.SetSmall(4)
			c.mPlus.SetTwoExp(c.e + 1)
			c.mMinus.SetTwoExp(c.e)
		} else {
			// r = f * 2^(e+1), s = 2, m+ = m- = 2^e
			c.t1.SetTwoExp(c.e + 1)
			c.r.Mul(&c.f, &c.t1)
			c.s.SetSmall(2)
			c.mPlus.SetTwoExp(c.e)
			c.mMinus.SetTwoExp(c.e)
		}
		return
	}
	if c.e > -1074 && c.f.Is2to52() {
		// r = f * 4, s = 2^(2-e), m+ = 2, m- = 1
		c.r.MulSmall(&c.f, 4)
		c.s.SetTwoExp(2 - c.e)
		c.mPlus.SetSmall(2)
		c.mMinus.SetSmall(1)
	} else {
		// r = f * 2, s = 2^(1-e), m+ = m- = 1
		c.r.MulSmall(&c.f, 2)
		c.s.SetTwoExp(1 - c.e)
		c.mPlus.SetSmall(1)
		c.mMinus.SetSmall(1)
	}
}

// scale finds k such that b^(k-1) <= (r+m+)/s < b^k, growing s while the
// value reaches past the ceiling and growing r, m+, m- while it falls
// short. No logarithm estimate: each round moves k by exactly one, and
// |e| <= 1074 bounds the walk.
func (c *conv) scale() {
	c.k = 0
	hi := 1
	if c.highOK {
		hi = 0
	}
	for {
		c.t1.Add(&c.r, &c.mPlus)
		if c.t1.Cmp(&c.s) < hi {
			break
		}
		c.s.MulSmallAssign(c.b, &c.t2)
		c.k++
	}
	if c.k > 0 {
		return
	}
	lo := 0
	if c.highOK {
		lo = -1
	}
	for {
		c.t2.Add(&c.r, &c.mPlus)
		c.t1.MulSmall(&c.t2, c.b)
		if c.t1.Cmp(&c.s) > lo {
			break
		}
		c.r.MulSmallAssign(c.b, &c.t1)
		c.mPlus.MulSmallAssign(c.b, &c.t1)
		c.mMinus.MulSmallAssign(c.b, &c.t1)
		c.k--
	}
}

// generate peels digits off r/s until the admissibility window allows
// stopping, then rounds the final digit. When both window edges are
// reached at once, 2r is compared against s; an exact half (2r == s)
// rounds the digit up.
func (c *conv) generate() {
	c.first = true
	c.nd = 0

	lowCut := -1
	if c.lowOK {
		lowCut = 0
	}
	highCut := 1
	if c.highOK {
		highCut = 0
	}

	for {
		// d, r = divmod(r*b, s) by repeated subtraction; d < b.
		c.t1.MulSmall(&c.r, c.b)
		d := 0
		for c.t1.Cmp(&c.s) >= 0 {
			c.t1.SubAssign(&c.s, &c.t2)
			d++
		}
		c.r.Set(&c.t1)
		c.mPlus.MulSmallAssign(c.b, &c.t1)
		c.mMinus.MulSmallAssign(c.b, &c.t1)

		low := c.r.Cmp(&c.mMinus) <= lowCut
		c.t1.Add(&c.r, &c.mPlus)
		high := c.t1.Cmp(&c.s) >= highCut

		switch {
		case low && !high:
			c.emit(d)
			return
		case high && !low:
			c.emit(d + 1)
			return
		case low && high:
			// Both neighbors are representable: round to whichever
			// side of s/2 the remainder sits on.
			c.t1.MulSmall(&c.r, 2)
			if c.t1.Cmp(&c.s) < 0 {
				c.emit(d)
			} else {
				c.emit(d + 1)
			}
			return
		}
		c.emit(d)
	}
}

// emit places one digit, inserting the leading "0." run or the radix
// point as dictated by the digit's position k - nd.
func (c *conv) emit(d int) {
	pos := c.k - c.nd
	if c.first {
		c.first = false
		if pos <= 0 {
			c.putc('0')
			c.putc('.')
			for i := 0; i < -c.k; i++ {
				c.putc('0')
			}
		}
	} else if pos == 0 {
		c.putc('.')
	}
	c.putc(alphabet[d])
	c.nd++
}

// finish pads unfilled integer positions with zeros. A value like b^20
// generates a single digit but owns 21 integer places.
func (c *conv) finish() {
	if c.k >= 1 && c.k > c.nd {
		for i := c.nd; i < c.k; i++ {
			c.putc('0')
		}
	}
}

func (c *conv) putc(b byte) {
	c.buf[c.w] = b
	c.w++
}

// convert runs the full pipeline for a positive finite x and returns the
// formatted digits. neg prepends the sign.
func convert(x float64, radix int, neg bool) string {
	var c conv
	c.b = uint32(radix)
	c.decompose(x)
	c.prepare()
	c.scale()
	if neg {
		c.putc('-')
	}
	c.generate()
	c.finish()
	return string(c.buf[:c.w])
}
