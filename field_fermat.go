package schnorr256k1

// primeMinus2 is p-2 as a big-endian byte string, the exponent
// InverseFermat raises its operand to: a^(p-2) = a^-1 mod p for any
// nonzero a, by Fermat's little theorem.
var primeMinus2 = mustHex32("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2D")

// InverseFermat returns a^-1 mod p computed by modular exponentiation
// rather than the safegcd divstep algorithm in field_inv.go. It exists
// as a second, independently-grounded implementation of field inversion
// used to cross-check Inverse in tests, not as the production path
// (this exponentiation is several times slower).
// Panics if a is zero, same as Inverse.
func (a Element) InverseFermat() Element {
	if a.IsZero() {
		panic("schnorr256k1: cannot invert zero")
	}
	r := One
	forEachBit(primeMinus2, func(bit bool) {
		r = r.Square()
		if bit {
			r = r.Mul(a)
		}
	})
	return r
}

// SqrtFermat returns a square root of c mod p (not necessarily the one
// with even y) via c^((p+1)/4), the same exponentiation SolveForEvenY
// performs on the curve equation's right-hand side. Exposed as a general
// field operation so field-level tests can exercise it independently of
// the curve. Only valid when c is a quadratic residue mod p; callers
// must check the result squares back to c.
func SqrtFermat(c Element) Element {
	r := One
	forEachBit(magicExponent, func(bit bool) {
		r = r.Square()
		if bit {
			r = r.Mul(c)
		}
	})
	return r
}
