// Package bigint implements fixed-capacity nonnegative multiple-precision
// integers on 32-bit limbs.
//
// The capacity (35 limbs, 1120 bits) is sized for shortest-form floating
// point conversion: the largest intermediate produced while scaling a
// double's significand through any radix in [2, 36] stays under it. There
// is no dynamic growth; exceeding the capacity is a caller bug and panics.
package bigint

// Limbs is the number of 32-bit limbs an Int can hold.
const Limbs = 35

// Int is a nonnegative integer stored as n little-endian 32-bit limbs.
// The zero value is the number zero. An Int is normalized when n == 0 or
// limb[n-1] != 0; every operation below takes and returns normalized
// values.
//
// Int is a plain value type: records embedding several of them stay on the
// stack, and assignment copies. The mutating operations exist so a caller
// can keep one working set alive for the duration of a conversion without
// allocating.
type Int struct {
	n    int
	limb [Limbs]uint32
}

// norm drops high zero limbs so that limb[n-1] != 0 or n == 0.
func (z *Int) norm() {
	for z.n > 0 && z.limb[z.n-1] == 0 {
		z.n--
	}
}

// SetSmall sets z to the 32-bit value v.
func (z *Int) SetSmall(v uint32) {
	if v == 0 {
		z.n = 0
		return
	}
	z.n = 1
	z.limb[0] = v
}

// SetUint64 sets z to the 64-bit value v.
func (z *Int) SetUint64(v uint64) {
	z.limb[0] = uint32(v)
	z.limb[1] = uint32(v >> 32)
	z.n = 2
	z.norm()
}

// Set copies x into z.
func (z *Int) Set(x *Int) {
	z.n = x.n
	copy(z.limb[:x.n], x.limb[:x.n])
}

// SetTwoExp sets z to 2^e, e >= 0. The result occupies e/32+1 limbs.
func (z *Int) SetTwoExp(e int) {
	if e < 0 || e >= Limbs*32 {
		panic("bigint: SetTwoExp exponent out of range")
	}
	n := e/32 + 1
	for i := 0; i < n-1; i++ {
		z.limb[i] = 0
	}
	z.limb[n-1] = 1 << (uint(e) % 32)
	z.n = n
}

// Add sets z = x + y. z may alias x or y. The sum must fit in Limbs limbs.
func (z *Int) Add(x, y *Int) {
	nx, ny := x.n, y.n
	nmax := nx
	if ny > nmax {
		nmax = ny
	}
	// 64-bit accumulation: each step adds two 32-bit limbs and a 0/1
	// carry, so acc < 2^33 and the carry out is a single bit.
	var carry uint64
	for i := 0; i < nmax; i++ {
		acc := carry
		if i < nx {
			acc += uint64(x.limb[i])
		}
		if i < ny {
			acc += uint64(y.limb[i])
		}
		z.limb[i] = uint32(acc)
		carry = acc >> 32
	}
	z.n = nmax
	if carry != 0 {
		if nmax == Limbs {
			panic("bigint: add overflow")
		}
		z.limb[nmax] = uint32(carry)
		z.n = nmax + 1
	}
}

// Sub sets z = x - y. The caller guarantees x >= y. z may alias x or y.
func (z *Int) Sub(x, y *Int) {
	// Signed 64-bit accumulation with borrow. Each limb difference is in
	// (-2^32, 2^32), so adding 2^32 when negative and carrying -1 keeps
	// every intermediate in range.
	var borrow int64
	for i := 0; i < x.n; i++ {
		acc := int64(x.limb[i]) - borrow
		if i < y.n {
			acc -= int64(y.limb[i])
		}
		if acc < 0 {
			acc += 1 << 32
			borrow = 1
		} else {
			borrow = 0
		}
		z.limb[i] = uint32(acc)
	}
	if borrow != 0 {
		panic("bigint: sub underflow")
	}
	z.n = x.n
	z.norm()
}

// Mul sets z = x * y by schoolbook multiplication. x and y may be the same
// Int, but z must not alias either operand. The product must fit in Limbs
// limbs.
func (z *Int) Mul(x, y *Int) {
	nz := x.n + y.n
	if nz > Limbs {
		panic("bigint: mul overflow")
	}
	for i := 0; i < nz; i++ {
		z.limb[i] = 0
	}
	for i := 0; i < x.n; i++ {
		// The inner accumulator holds limb product + previous limb +
		// carry: (2^32-1)^2 + 2*(2^32-1) = 2^64-1, so uint64 is exact.
		var carry uint64
		xi := uint64(x.limb[i])
		for j := 0; j < y.n; j++ {
			acc := xi*uint64(y.limb[j]) + uint64(z.limb[i+j]) + carry
			z.limb[i+j] = uint32(acc)
			carry = acc >> 32
		}
		z.limb[i+y.n] = uint32(carry)
	}
	z.n = nz
	z.norm()
}

// MulSmall sets z = x * v. z must not alias x.
func (z *Int) MulSmall(x *Int, v uint32) {
	var t Int
	t.SetSmall(v)
	z.Mul(x, &t)
}

// SubAssign sets x = x - y, using scratch as working storage. The caller
// guarantees x >= y.
func (x *Int) SubAssign(y, scratch *Int) {
	scratch.Sub(x, y)
	x.Set(scratch)
}

// MulSmallAssign sets x = x * v, using scratch as working storage.
func (x *Int) MulSmallAssign(v uint32, scratch *Int) {
	scratch.MulSmall(x, v)
	x.Set(scratch)
}

// Cmp returns -1, 0, or +1 according to whether x < y, x == y, or x > y.
func (x *Int) Cmp(y *Int) int {
	if x.n != y.n {
		if x.n < y.n {
			return -1
		}
		return 1
	}
	for i := x.n - 1; i >= 0; i-- {
		if x.limb[i] != y.limb[i] {
			if x.limb[i] < y.limb[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// IsEven reports whether x is even. Zero is even.
func (x *Int) IsEven() bool {
	return x.n == 0 || x.limb[0]&1 == 0
}

// Is2to52 reports whether x == 2^52, the smallest 53-bit significand.
// Tested against the canonical limb pattern rather than by comparison.
func (x *Int) Is2to52() bool {
	return x.n == 2 && x.limb[0] == 0 && x.limb[1] == 1<<20
}
