package schnorr256k1

import "math/bits"

// Modular inversion via Bernstein-Yang's safegcd algorithm, specialized to
// the 62-bit-limb variant used throughout libsecp256k1's modinv64 backend:
// 12 outer steps of 62 divsteps each (744 divsteps total), tracking the
// 2x2 transition matrix (u,v,q,r) that each batch of divsteps applies to
// the (f,g) pair, and applying that same matrix to a second pair (d,e)
// that accumulates the inverse.
//
// f and g are reshaped from the field's 5x52 representation into 5 limbs
// of 62 bits each (offset62) so that one outer step's matrix can be
// applied without intermediate renormalization; d and e stay in that same
// 62-bit shape throughout and are reshaped back to 52-bit limbs only once,
// at the very end.

// i128 is a minimal signed 128-bit integer, stored as ordinary two's
// complement: the represented value is int128(hi)<<64 | lo. Arithmetic on
// it exploits the fact that addition, subtraction and truncated
// multiplication are all identical bit operations whether the operands are
// interpreted as signed or unsigned, which is what lets mulI64 compute a
// signed product by doing plain unsigned multiplication underneath.
type i128 struct {
	hi int64
	lo uint64
}

func i128FromUint64(x uint64) i128 { return i128{lo: x} }

func (a i128) add(b i128) i128 {
	lo := a.lo + b.lo
	carry := uint64(0)
	if lo < a.lo {
		carry = 1
	}
	return i128{hi: a.hi + b.hi + int64(carry), lo: lo}
}

// mulI64 returns a*k truncated to 128 bits. This is exact whenever the true
// product fits in 128 bits, which every call site here relies on (the same
// invariant the Rust source enforces with explicit bit-width assertions).
//
// Truncated multiplication mod 2^128 doesn't care whether the operands are
// read as signed or unsigned, so this sign-extends k to a full 128-bit word
// (klo, khi) and runs an ordinary unsigned 128x128->128 schoolbook multiply
// against (a.lo, a.hi), discarding everything above bit 127. Folding k's
// high word straight into a.hi (as a same-width unsigned multiply) without
// that sign-extension silently drops the correction needed whenever k < 0.
func (a i128) mulI64(k int64) i128 {
	klo := uint64(k)
	var khi uint64
	if k < 0 {
		khi = ^uint64(0)
	}
	hi, lo := bits.Mul64(a.lo, klo)
	hi += a.lo*khi + uint64(a.hi)*klo
	return i128{hi: int64(hi), lo: lo}
}

// sar is an arithmetic (sign-preserving) right shift by n < 64 bits.
func (a i128) sar(n uint) i128 {
	if n == 0 {
		return a
	}
	lo := (a.lo >> n) | (uint64(a.hi) << (64 - n))
	hi := a.hi >> n
	return i128{hi: hi, lo: lo}
}

// low masks a to its bottom bits selected by mask (mask < 2^64), returning
// the result as a non-negative i128 digit.
func (a i128) low(mask uint64) i128 {
	return i128{lo: a.lo & mask}
}

// neg returns -a via two's complement negation (bitwise NOT plus one).
func (a i128) neg() i128 {
	lo := ^a.lo + 1
	hi := ^a.hi
	if lo == 0 {
		hi++
	}
	return i128{hi: hi, lo: lo}
}

// abs returns |a|. Used only by the bit-width assertions below, which in
// the Rust source this is ported from check the magnitude of a signed
// accumulator regardless of its sign.
func (a i128) abs() i128 {
	if a.hi < 0 {
		return a.neg()
	}
	return a
}

// fitsAbs reports whether |a| < 2^bits.
func fitsAbs(a i128, bits uint) bool {
	v := a.abs()
	return u128{hi: uint64(v.hi), lo: v.lo}.shr(bits) == (u128{})
}

const mask62 = 0x3FFFFFFFFFFFFFFF
const mask8 = 0xFF

// inverse2Pow744 is 2^-744 mod p, the fixed constant the 744-divstep
// safegcd run's output must be scaled by to recover a true inverse.
var inverse2Pow744 = Element{
	limbs: [5]uint64{
		0x223BFB1017899,
		0x54F60359FCD6E,
		0x2A4C88010D511,
		0x84718F7C917CA,
		0xF83445F10520,
	},
	magnitude: 0,
}

// toOffset62 repacks a 5x52-limb field representation into 5 limbs of 62
// bits each.
func toOffset62(limbs [5]uint64) [5]i128 {
	l0 := limbs[0] | (limbs[1] << 52)
	l1 := (limbs[1] >> 10) | (limbs[2] << 42)
	l2 := (limbs[2] >> 20) | (limbs[3] << 32)
	l3 := (limbs[3] >> 30) | (limbs[4] << 22)
	l4 := limbs[4] >> 40

	return [5]i128{
		i128FromUint64(l0 & mask62),
		i128FromUint64(l1 & mask62),
		i128FromUint64(l2 & mask62),
		i128FromUint64(l3 & mask62),
		i128FromUint64(l4),
	}
}

// toOffset52 repacks 5 signed 62-bit limbs back into 5 signed 52-bit limbs.
func toOffset52(limbs [5]i128) [5]int64 {
	const m52 = 0xFFFFFFFFFFFFF

	var l [5]int64
	for i := range l {
		l[i] = int64(limbs[i].lo)
	}

	r0 := l[0]
	r1 := (l[1] << 10) + (l[0] >> 52)
	r2 := (l[2] << 20) + (l[1] >> 42)
	r3 := (l[3] << 30) + (l[2] >> 32)
	r4 := (l[4] << 40) + (l[3] >> 22)

	return [5]int64{r0 & m52, r1 & m52, r2 & m52, r3 & m52, r4}
}

type divstepMatrix struct{ u, v, q, r int64 }

// updateDelta runs 62 divsteps on the scalar bottom limbs of f and g,
// producing the updated delta and the 2x2 transition matrix those 62
// divsteps applied (scaled by 2^62).
func updateDelta(delta, f, g int64) (int64, divstepMatrix) {
	u, v, q, r := int64(1), int64(0), int64(0), int64(1)

	for i := 0; i < 62; i++ {
		if f&1 != 1 {
			panic("divstep requires f odd")
		}

		switch {
		case delta > 0 && g&1 == 1:
			delta = 1 - delta
			f, g = g, (g-f)>>1
			u, v, q, r = q<<1, r<<1, q-u, r-v
		case g&1 == 1:
			delta++
			g = (g + f) >> 1
			u, v, q, r = u<<1, v<<1, q+u, r+v
		default:
			delta++
			g = g >> 1
			u, v, q, r = u<<1, v<<1, q, r
		}
	}

	return delta, divstepMatrix{u: u, v: v, q: q, r: r}
}

// updateFG applies the transition matrix to (f,g), shifting the result
// down by 62 bits per limb (the matrix entries are themselves scaled by
// 2^62, and each divstep batch divides out that same factor).
func updateFG(f, g [5]i128, m divstepMatrix) ([5]i128, [5]i128) {
	cf := f[0].mulI64(m.u).add(g[0].mulI64(m.v))
	cg := f[0].mulI64(m.q).add(g[0].mulI64(m.r))

	// The bottom 62 bits of the result must be zero before they're discarded.
	if cf.low(mask62) != (i128{}) {
		panic("updateFG: cf not a multiple of 2^62")
	}
	if cg.low(mask62) != (i128{}) {
		panic("updateFG: cg not a multiple of 2^62")
	}

	cf = cf.sar(62)
	cg = cg.sar(62)

	var nf, ng [5]i128
	for i := 0; i < 4; i++ {
		cf = cf.add(f[i+1].mulI64(m.u)).add(g[i+1].mulI64(m.v))
		cg = cg.add(f[i+1].mulI64(m.q)).add(g[i+1].mulI64(m.r))

		nf[i] = cf.low(mask62)
		ng[i] = cg.low(mask62)

		cf = cf.sar(62)
		cg = cg.sar(62)
	}

	// What remains is limb 5 of t*[f,g]; it must fit in 8 bits plus sign.
	if !fitsAbs(cf, 8) {
		panic("updateFG: cf limb 5 out of range")
	}
	if !fitsAbs(cg, 8) {
		panic("updateFG: cg limb 5 out of range")
	}

	nf[4] = cf
	ng[4] = cg

	return nf, ng
}

// updateDE applies the same transition matrix to the (d,e) accumulator
// pair, folding the final carry back in via the field's R reduction
// constant since d and e track values mod p rather than plain integers.
func updateDE(d, e [5]i128, m divstepMatrix) ([5]i128, [5]i128) {
	entryBounds := [5]uint{63, 63, 62, 62, 8}
	for i, bits := range entryBounds {
		if !fitsAbs(d[i], bits) {
			panic("updateDE: d limb out of range on entry")
		}
		if !fitsAbs(e[i], bits) {
			panic("updateDE: e limb out of range on entry")
		}
	}

	var cd, ce i128
	var nd, ne [5]i128

	for i := 0; i < 4; i++ {
		xd := d[i].mulI64(m.u).add(e[i].mulI64(m.v))
		xe := d[i].mulI64(m.q).add(e[i].mulI64(m.r))

		if !fitsAbs(xd, 126) {
			panic("updateDE: xd out of range")
		}
		if !fitsAbs(xe, 126) {
			panic("updateDE: xe out of range")
		}

		cd = cd.add(xd)
		ce = ce.add(xe)

		nd[i] = cd.low(mask62)
		ne[i] = ce.low(mask62)

		cd = cd.sar(62)
		ce = ce.sar(62)
	}

	cd = cd.add(d[4].mulI64(m.u)).add(e[4].mulI64(m.v))
	ce = ce.add(d[4].mulI64(m.q)).add(e[4].mulI64(m.r))

	if !fitsAbs(cd, 71) {
		panic("updateDE: cd out of range before R-fold")
	}
	if !fitsAbs(ce, 71) {
		panic("updateDE: ce out of range before R-fold")
	}

	nd[4] = cd.low(mask8)
	ne[4] = ce.low(mask8)

	cd = cd.sar(8).mulI64(fieldR)
	ce = ce.sar(8).mulI64(fieldR)

	if !fitsAbs(cd, 96) {
		panic("updateDE: cd out of range after R-fold")
	}
	if !fitsAbs(ce, 96) {
		panic("updateDE: ce out of range after R-fold")
	}

	nd[0] = nd[0].add(cd.low(mask62))
	ne[0] = ne[0].add(ce.low(mask62))

	cd = cd.sar(62)
	ce = ce.sar(62)

	nd[1] = nd[1].add(cd)
	ne[1] = ne[1].add(ce)

	return nd, ne
}

// fieldInvert computes x^-1 mod p. Panics if x is zero.
func fieldInvert(x Element) Element {
	if x.IsZero() {
		panic("cannot invert zero field element")
	}

	delta := int64(1)
	f := toOffset62(fieldP)
	g := toOffset62(x.Normalize().limbs)
	var d, e [5]i128
	e[0] = i128FromUint64(1)

	for i := 0; i < 12; i++ {
		var m divstepMatrix
		delta, m = updateDelta(delta, int64(f[0].lo), int64(g[0].lo))
		f, g = updateFG(f, g, m)
		d, e = updateDE(d, e, m)
	}

	fi := toOffset52(f)
	di := toOffset52(d)

	var fLimbs, dLimbs [5]uint64
	for i := 0; i < 5; i++ {
		fLimbs[i] = uint64(int64(fieldP[i]<<1) + fi[i])
		dLimbs[i] = uint64(int64(fieldP[i]<<2) + di[i])
	}

	fElem := Element{limbs: fLimbs, magnitude: 2}
	dElem := Element{limbs: dLimbs, magnitude: 3}

	return fElem.Mul(dElem).Mul(inverse2Pow744)
}
