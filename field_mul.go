package schnorr256k1

import "math/bits"

// u128 is a minimal unsigned 128-bit integer built on math/bits.Mul64 and
// math/bits.Add64, in the same spirit as the carry-propagating adds the
// teacher's own field arithmetic uses. Go has no native 128-bit integer
// type, unlike the Rust source this multiplier is ported from, which
// relies on u128 directly; this type stands in for it.
type u128 struct {
	hi, lo uint64
}

func mul64x64(a, b uint64) u128 {
	hi, lo := bits.Mul64(a, b)
	return u128{hi: hi, lo: lo}
}

func (x u128) add(y u128) u128 {
	lo, carry := bits.Add64(x.lo, y.lo, 0)
	hi, _ := bits.Add64(x.hi, y.hi, carry)
	return u128{hi: hi, lo: lo}
}

// shr returns x >> n for 0 <= n <= 128.
func (x u128) shr(n uint) u128 {
	switch {
	case n == 0:
		return x
	case n >= 128:
		return u128{}
	case n >= 64:
		return u128{hi: 0, lo: x.hi >> (n - 64)}
	default:
		return u128{hi: x.hi >> n, lo: (x.lo >> n) | (x.hi << (64 - n))}
	}
}

// low returns the bottom bits of x selected by mask (mask < 2^64), i.e.
// the equivalent of the Rust source's "x & MASK_52" etc. on a u128: a mask
// narrower than 64 bits only ever touches x.lo.
func (x u128) low(mask uint64) uint64 {
	return x.lo & mask
}

// mulLow multiplies the low 64 bits of x by k, producing a fresh u128.
// This mirrors "(x & MASK_64) * k" in the Rust source, which always
// applies to a u128 value whose content is proven (by the surrounding
// bit-width assertions in the original) to already fit in 64 bits.
func (x u128) mulLow(k uint64) u128 {
	return mul64x64(x.lo, k)
}

// fits128 reports whether x < 2^bits, i.e. x >> bits == 0.
func fits128(x u128, bits uint) bool {
	return x.shr(bits) == (u128{})
}

// fieldMultiply computes a*b using the interleaved 5x52-limb schoolbook
// multiplier from libsecp256k1's field_5x52, reducing mod p along the way
// via the field's R = 2^32 + 977 folding constant. Every intermediate
// bit-width bound from original_source/src/field_multiplication.rs is
// checked as it's reached, not just asserted of the inputs.
func fieldMultiply(a, b Element) Element {
	if a.magnitude >= 5 || b.magnitude >= 5 {
		panic("mul requires magnitude < 5 on both operands")
	}
	a.Verify()
	b.Verify()

	// Limb 5 sits at 2^260, so folding it back uses R scaled by 2^4.
	const r = uint64(fieldR) << 4
	const rShift12 = r << 12
	const rShift4 = r >> 4

	a0, a1, a2, a3, a4 := a.limbs[0], a.limbs[1], a.limbs[2], a.limbs[3], a.limbs[4]
	b0, b1, b2, b3, b4 := b.limbs[0], b.limbs[1], b.limbs[2], b.limbs[3], b.limbs[4]

	// d and c track running partial sums of the schoolbook product,
	// each assembled as [... p 0 0 0] mod p as the algorithm progresses.
	d := mul64x64(a0, b3).add(mul64x64(a1, b2)).add(mul64x64(a2, b1)).add(mul64x64(a3, b0))
	if !fits128(d, 114) {
		panic("fieldMultiply: d exceeds 114 bits")
	}

	c := mul64x64(a4, b4)
	if !fits128(c, 112) {
		panic("fieldMultiply: c exceeds 112 bits")
	}

	d = d.add(c.mulLow(r))
	c = c.shr(64)
	if !fits128(d, 115) {
		panic("fieldMultiply: d exceeds 115 bits")
	}
	if !fits128(c, 48) {
		panic("fieldMultiply: c exceeds 48 bits")
	}

	t3 := d.low(mask52)
	d = d.shr(52)
	if t3>>52 != 0 {
		panic("fieldMultiply: t3 exceeds 52 bits")
	}
	if !fits128(d, 63) {
		panic("fieldMultiply: d exceeds 63 bits")
	}

	d = d.add(mul64x64(a0, b4)).add(mul64x64(a1, b3)).add(mul64x64(a2, b2)).add(mul64x64(a3, b1)).add(mul64x64(a4, b0))
	if !fits128(d, 115) {
		panic("fieldMultiply: d exceeds 115 bits")
	}

	d = d.add(c.mulLow(rShift12))
	if !fits128(d, 116) {
		panic("fieldMultiply: d exceeds 116 bits")
	}

	t4 := d.low(mask52)
	d = d.shr(52)
	if t4>>52 != 0 {
		panic("fieldMultiply: t4 exceeds 52 bits")
	}
	if !fits128(d, 64) {
		panic("fieldMultiply: d exceeds 64 bits")
	}

	tx := t4 >> 48
	t4 &= mask48
	if tx>>4 != 0 {
		panic("fieldMultiply: tx exceeds 4 bits")
	}
	if t4>>48 != 0 {
		panic("fieldMultiply: t4 exceeds 48 bits")
	}

	c = mul64x64(a0, b0)
	if !fits128(c, 112) {
		panic("fieldMultiply: c exceeds 112 bits")
	}

	d = d.add(mul64x64(a1, b4)).add(mul64x64(a2, b3)).add(mul64x64(a3, b2)).add(mul64x64(a4, b1))
	if !fits128(d, 115) {
		panic("fieldMultiply: d exceeds 115 bits")
	}

	u0 := d.low(mask52)
	d = d.shr(52)
	if u0>>52 != 0 {
		panic("fieldMultiply: u0 exceeds 52 bits")
	}
	if !fits128(d, 63) {
		panic("fieldMultiply: d exceeds 63 bits")
	}

	u0 = (u0 << 4) | tx
	if u0>>56 != 0 {
		panic("fieldMultiply: u0 exceeds 56 bits")
	}

	c = c.add(mul64x64(u0, rShift4))
	if !fits128(c, 115) {
		panic("fieldMultiply: c exceeds 115 bits")
	}

	r0 := c.low(mask52)
	c = c.shr(52)
	if r0>>52 != 0 {
		panic("fieldMultiply: r0 exceeds 52 bits")
	}
	if !fits128(c, 61) {
		panic("fieldMultiply: c exceeds 61 bits")
	}

	c = c.add(mul64x64(a0, b1)).add(mul64x64(a1, b0))
	if !fits128(c, 114) {
		panic("fieldMultiply: c exceeds 114 bits")
	}

	d = d.add(mul64x64(a2, b4)).add(mul64x64(a3, b3)).add(mul64x64(a4, b2))
	if !fits128(d, 114) {
		panic("fieldMultiply: d exceeds 114 bits")
	}

	// Only the low 52 bits of d fold into c here (the original masks
	// with MASK_52, not MASK_64, at this particular step); the rest of
	// d survives the later shr(52) for the next digit.
	c = c.add(mul64x64(d.low(mask52), r))
	d = d.shr(52)
	if !fits128(c, 115) {
		panic("fieldMultiply: c exceeds 115 bits")
	}
	if !fits128(d, 62) {
		panic("fieldMultiply: d exceeds 62 bits")
	}

	r1 := c.low(mask52)
	c = c.shr(52)
	if r1>>52 != 0 {
		panic("fieldMultiply: r1 exceeds 52 bits")
	}
	if !fits128(c, 63) {
		panic("fieldMultiply: c exceeds 63 bits")
	}

	c = c.add(mul64x64(a0, b2)).add(mul64x64(a1, b1)).add(mul64x64(a2, b0))
	if !fits128(c, 114) {
		panic("fieldMultiply: c exceeds 114 bits")
	}

	d = d.add(mul64x64(a3, b4)).add(mul64x64(a4, b3))
	if !fits128(d, 114) {
		panic("fieldMultiply: d exceeds 114 bits")
	}

	c = c.add(d.mulLow(r))
	d = d.shr(64)
	if !fits128(c, 115) {
		panic("fieldMultiply: c exceeds 115 bits")
	}
	if !fits128(d, 50) {
		panic("fieldMultiply: d exceeds 50 bits")
	}

	r2 := c.low(mask52)
	c = c.shr(52)
	if r2>>52 != 0 {
		panic("fieldMultiply: r2 exceeds 52 bits")
	}
	if !fits128(c, 63) {
		panic("fieldMultiply: c exceeds 63 bits")
	}

	c = c.add(d.mulLow(rShift12))
	c = c.add(u128{lo: t3})
	if !fits128(c, 100) {
		panic("fieldMultiply: c exceeds 100 bits")
	}

	r3 := c.low(mask52)
	c = c.shr(52)
	if r3>>52 != 0 {
		panic("fieldMultiply: r3 exceeds 52 bits")
	}
	if !fits128(c, 48) {
		panic("fieldMultiply: c exceeds 48 bits")
	}

	r4 := c.lo + t4
	if r4>>49 != 0 {
		panic("fieldMultiply: r4 exceeds 49 bits")
	}

	return Element{limbs: [5]uint64{r0, r1, r2, r3, r4}, magnitude: 0}
}

// fieldSquare computes a*a with the doubled cross terms folded in directly,
// avoiding the separate multiplications a doubled call to fieldMultiply
// would otherwise perform. Carries the same bit-width checks as
// fieldMultiply, ported from the square() half of
// original_source/src/field_multiplication.rs.
func fieldSquare(a Element) Element {
	if a.magnitude >= 5 {
		panic("square requires magnitude < 5")
	}
	a.Verify()

	// Limb 5 sits at 2^260, so folding it back uses R scaled by 2^4.
	const r = uint64(fieldR) << 4
	const rShift12 = r << 12
	const rShift4 = r >> 4

	a0, a1, a2, a3, a4 := a.limbs[0], a.limbs[1], a.limbs[2], a.limbs[3], a.limbs[4]

	d := mul64x64(a0, a3).add(mul64x64(a1, a2))
	d = d.add(d) // *2
	if !fits128(d, 114) {
		panic("fieldSquare: d exceeds 114 bits")
	}

	c := mul64x64(a4, a4)
	if !fits128(c, 112) {
		panic("fieldSquare: c exceeds 112 bits")
	}

	d = d.add(c.mulLow(r))
	c = c.shr(64)
	if !fits128(d, 115) {
		panic("fieldSquare: d exceeds 115 bits")
	}
	if !fits128(c, 48) {
		panic("fieldSquare: c exceeds 48 bits")
	}

	t3 := d.low(mask52)
	d = d.shr(52)
	if t3>>52 != 0 {
		panic("fieldSquare: t3 exceeds 52 bits")
	}
	if !fits128(d, 63) {
		panic("fieldSquare: d exceeds 63 bits")
	}

	cross := mul64x64(a0, a4).add(mul64x64(a1, a3))
	cross = cross.add(cross) // *2
	d = d.add(cross).add(mul64x64(a2, a2))
	if !fits128(d, 115) {
		panic("fieldSquare: d exceeds 115 bits")
	}

	d = d.add(c.mulLow(rShift12))
	if !fits128(d, 116) {
		panic("fieldSquare: d exceeds 116 bits")
	}

	t4 := d.low(mask52)
	d = d.shr(52)
	if t4>>52 != 0 {
		panic("fieldSquare: t4 exceeds 52 bits")
	}
	if !fits128(d, 64) {
		panic("fieldSquare: d exceeds 64 bits")
	}

	tx := t4 >> 48
	t4 &= mask48
	if tx>>4 != 0 {
		panic("fieldSquare: tx exceeds 4 bits")
	}
	if t4>>48 != 0 {
		panic("fieldSquare: t4 exceeds 48 bits")
	}

	c = mul64x64(a0, a0)
	if !fits128(c, 112) {
		panic("fieldSquare: c exceeds 112 bits")
	}

	cross = mul64x64(a1, a4).add(mul64x64(a2, a3))
	cross = cross.add(cross)
	d = d.add(cross)
	if !fits128(d, 115) {
		panic("fieldSquare: d exceeds 115 bits")
	}

	u0 := d.low(mask52)
	d = d.shr(52)
	if u0>>52 != 0 {
		panic("fieldSquare: u0 exceeds 52 bits")
	}
	if !fits128(d, 63) {
		panic("fieldSquare: d exceeds 63 bits")
	}

	u0 = (u0 << 4) | tx
	if u0>>56 != 0 {
		panic("fieldSquare: u0 exceeds 56 bits")
	}

	c = c.add(mul64x64(u0, rShift4))
	if !fits128(c, 115) {
		panic("fieldSquare: c exceeds 115 bits")
	}

	r0 := c.low(mask52)
	c = c.shr(52)
	if r0>>52 != 0 {
		panic("fieldSquare: r0 exceeds 52 bits")
	}
	if !fits128(c, 61) {
		panic("fieldSquare: c exceeds 61 bits")
	}

	doubleA0A1 := mul64x64(a0, a1)
	c = c.add(doubleA0A1).add(doubleA0A1)
	if !fits128(c, 114) {
		panic("fieldSquare: c exceeds 114 bits")
	}

	cross = mul64x64(a2, a4)
	cross = cross.add(cross)
	d = d.add(cross).add(mul64x64(a3, a3))
	if !fits128(d, 114) {
		panic("fieldSquare: d exceeds 114 bits")
	}

	// Only the low 52 bits of d fold into c here (the original masks
	// with MASK_52, not MASK_64, at this particular step); the rest of
	// d survives the later shr(52) for the next digit.
	c = c.add(mul64x64(d.low(mask52), r))
	d = d.shr(52)
	if !fits128(c, 115) {
		panic("fieldSquare: c exceeds 115 bits")
	}
	if !fits128(d, 62) {
		panic("fieldSquare: d exceeds 62 bits")
	}

	r1 := c.low(mask52)
	c = c.shr(52)
	if r1>>52 != 0 {
		panic("fieldSquare: r1 exceeds 52 bits")
	}
	if !fits128(c, 63) {
		panic("fieldSquare: c exceeds 63 bits")
	}

	doubleA0A2 := mul64x64(a0, a2)
	c = c.add(doubleA0A2).add(doubleA0A2).add(mul64x64(a1, a1))
	if !fits128(c, 114) {
		panic("fieldSquare: c exceeds 114 bits")
	}

	cross = mul64x64(a3, a4)
	cross = cross.add(cross)
	d = d.add(cross)
	if !fits128(d, 114) {
		panic("fieldSquare: d exceeds 114 bits")
	}

	c = c.add(d.mulLow(r))
	d = d.shr(64)
	if !fits128(c, 115) {
		panic("fieldSquare: c exceeds 115 bits")
	}
	if !fits128(d, 50) {
		panic("fieldSquare: d exceeds 50 bits")
	}

	r2 := c.low(mask52)
	c = c.shr(52)
	if r2>>52 != 0 {
		panic("fieldSquare: r2 exceeds 52 bits")
	}
	if !fits128(c, 63) {
		panic("fieldSquare: c exceeds 63 bits")
	}

	c = c.add(d.mulLow(rShift12))
	c = c.add(u128{lo: t3})
	if !fits128(c, 100) {
		panic("fieldSquare: c exceeds 100 bits")
	}

	r3 := c.low(mask52)
	c = c.shr(52)
	if r3>>52 != 0 {
		panic("fieldSquare: r3 exceeds 52 bits")
	}
	if !fits128(c, 48) {
		panic("fieldSquare: c exceeds 48 bits")
	}

	r4 := c.lo + t4
	if r4>>49 != 0 {
		panic("fieldSquare: r4 exceeds 49 bits")
	}

	return Element{limbs: [5]uint64{r0, r1, r2, r3, r4}, magnitude: 0}
}
