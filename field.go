package schnorr256k1

import "encoding/binary"

// Element is a value in the field modulo the secp256k1 prime
//
//	p = 2^256 - 2^32 - 977
//
// held in the 5-limb, base-2^52 redundant representation used by
// libsecp256k1's field_5x52 backend: limbs[i] contributes
// limbs[i] << (52*i) to the represented integer, taken mod p.
//
// magnitude records how many unreduced additions have piled up since the
// last call to Reduce or Normalize. It bounds the limb widths
// (limbs[i] < 2^(52+magnitude) for i < 4, limbs[4] < 2^(49+magnitude)),
// which is what Verify checks and every arithmetic method relies on.
//
// Every method takes Element by value and returns a new Element; none of
// them mutate the receiver.
type Element struct {
	limbs     [5]uint64
	magnitude uint64
}

const (
	mask52 = 0xFFFFFFFFFFFFF
	mask48 = 0xFFFFFFFFFFFF

	// fieldR is 2^32 + 977, the amount by which 2^256 folds back into
	// the field mod p.
	fieldR = 0x1000003D1
)

// fieldP holds the limbs of p in the 5x52 representation.
var fieldP = [5]uint64{
	0xFFFFEFFFFFC2F,
	0xFFFFFFFFFFFFF,
	0xFFFFFFFFFFFFF,
	0xFFFFFFFFFFFFF,
	0xFFFFFFFFFFFF,
}

// Zero is the additive identity.
var Zero = Element{limbs: [5]uint64{0, 0, 0, 0, 0}, magnitude: 0}

// One is the multiplicative identity.
var One = Element{limbs: [5]uint64{1, 0, 0, 0, 0}, magnitude: 0}

// Verify panics unless a's limbs fit within the widths its magnitude
// promises. A failure here means a caller violated the magnitude contract
// of some earlier operation, not that the field arithmetic is wrong.
func (a Element) Verify() {
	if a.limbs[0]>>(a.magnitude+52) != 0 ||
		a.limbs[1]>>(a.magnitude+52) != 0 ||
		a.limbs[2]>>(a.magnitude+52) != 0 ||
		a.limbs[3]>>(a.magnitude+52) != 0 ||
		a.limbs[4]>>(a.magnitude+49) != 0 {
		panic("field element exceeds its magnitude bound")
	}
}

// FromUint64 lifts n into the field.
func FromUint64(n uint64) Element {
	return Element{limbs: [5]uint64{n & mask52, n >> 52, 0, 0, 0}, magnitude: 0}
}

// Decode interprets b as a big-endian 256-bit integer and lifts it into the
// 5x52 representation. It does not reduce mod p or reject b >= p; callers
// that need a bounds check (PublicKeyOutOfBounds, SignatureOutOfBounds)
// compare the raw bytes themselves before calling Decode.
func Decode(b [32]byte) Element {
	b3 := binary.BigEndian.Uint64(b[0:8])
	b2 := binary.BigEndian.Uint64(b[8:16])
	b1 := binary.BigEndian.Uint64(b[16:24])
	b0 := binary.BigEndian.Uint64(b[24:32])

	l0 := b0 & mask52
	l1 := ((b1 << 12) | (b0 >> 52)) & mask52
	l2 := ((b2 << 24) | (b1 >> 40)) & mask52
	l3 := ((b3 << 36) | (b2 >> 28)) & mask52
	l4 := b3 >> 16

	return Element{limbs: [5]uint64{l0, l1, l2, l3, l4}, magnitude: 0}
}

// Encode normalizes a and serializes it as 32 big-endian bytes.
func (a Element) Encode() [32]byte {
	l := a.Normalize().limbs

	b0 := l[0] | (l[1] << 52)
	b1 := (l[1] >> 12) | (l[2] << 40)
	b2 := (l[2] >> 24) | (l[3] << 28)
	b3 := (l[3] >> 36) | (l[4] << 16)

	var out [32]byte
	binary.BigEndian.PutUint64(out[0:8], b3)
	binary.BigEndian.PutUint64(out[8:16], b2)
	binary.BigEndian.PutUint64(out[16:24], b1)
	binary.BigEndian.PutUint64(out[24:32], b0)
	return out
}

// Reduce folds limb 4's overflow back in via fieldR, producing magnitude 0.
// The result can still be as large as 2p - it is reduced, not normalized.
func (a Element) Reduce() Element {
	if a.magnitude >= 12 {
		panic("reduce requires magnitude < 12")
	}
	a.Verify()

	l := a.limbs

	l[0] += (l[4] >> 48) * fieldR
	l[4] &= mask48

	l[1] += l[0] >> 52
	l[2] += l[1] >> 52
	l[3] += l[2] >> 52
	l[4] += l[3] >> 52

	l[0] &= mask52
	l[1] &= mask52
	l[2] &= mask52
	l[3] &= mask52

	return Element{limbs: l, magnitude: 0}
}

// Normalize reduces a to its unique canonical residue in [0, p).
func (a Element) Normalize() Element {
	l := a.Reduce().limbs

	normalized := false
	for i := 4; i >= 0; i-- {
		if l[i] != fieldP[i] {
			normalized = l[i] < fieldP[i]
			break
		}
	}

	if !normalized {
		// a reduced representation is worth less than 2p, so a single
		// subtraction of p (expressed as adding R and dropping the
		// carry out of bit 256) suffices.
		l[0] += fieldR
		l[1] += l[0] >> 52
		l[2] += l[1] >> 52
		l[3] += l[2] >> 52
		l[4] += l[3] >> 52

		if l[4]>>48 != 1 {
			panic("normalize: expected carry into bit 48 of limb 4")
		}

		l[0] &= mask52
		l[1] &= mask52
		l[2] &= mask52
		l[3] &= mask52
		l[4] &= mask48
	}

	return Element{limbs: l, magnitude: 0}
}

// IsZero reports whether a represents the zero residue.
func (a Element) IsZero() bool {
	return a.Normalize().limbs == [5]uint64{0, 0, 0, 0, 0}
}

// IsEven reports whether a's canonical residue is even.
func (a Element) IsEven() bool {
	return a.Normalize().limbs[0]&1 == 0
}

// Equal reports whether a and b represent the same residue mod p.
func (a Element) Equal(b Element) bool {
	return a.Sub(b).IsZero()
}

// Double returns a + a.
func (a Element) Double() Element {
	if a.magnitude >= 12 {
		panic("double requires magnitude < 12")
	}
	a.Verify()

	var l [5]uint64
	for i := range l {
		l[i] = a.limbs[i] << 1
	}
	return Element{limbs: l, magnitude: a.magnitude + 1}
}

// Negative returns an element congruent to -a, keeping all limbs
// non-negative by first adding a large enough multiple of p.
func (a Element) Negative() Element {
	if a.magnitude >= 12 {
		panic("negative requires magnitude < 12")
	}
	a.Verify()

	shift := a.magnitude + 1
	var l [5]uint64
	for i := range l {
		l[i] = (fieldP[i] << shift) - a.limbs[i]
	}
	return Element{limbs: l, magnitude: a.magnitude + 1}
}

// Add returns a + b.
func (a Element) Add(b Element) Element {
	if a.magnitude >= 12 || b.magnitude >= 12 {
		panic("add requires magnitude < 12 on both operands")
	}
	a.Verify()
	b.Verify()

	var l [5]uint64
	for i := range l {
		l[i] = a.limbs[i] + b.limbs[i]
	}
	m := a.magnitude
	if b.magnitude > m {
		m = b.magnitude
	}
	return Element{limbs: l, magnitude: m + 1}
}

// Sub returns a - b.
func (a Element) Sub(b Element) Element {
	return a.Add(b.Negative())
}

// Mul returns a * b, computed via the interleaved 5x52 schoolbook
// multiplier in field_mul.go.
func (a Element) Mul(b Element) Element {
	return fieldMultiply(a, b)
}

// Square returns a * a, computed via the dedicated squaring routine in
// field_mul.go.
func (a Element) Square() Element {
	return fieldSquare(a)
}

// Inverse returns a^-1 mod p via the safegcd divstep algorithm in
// field_inv.go. Panics if a is zero, since zero has no inverse.
func (a Element) Inverse() Element {
	return fieldInvert(a)
}

// Div returns a / b, i.e. a * b.Inverse().
func (a Element) Div(b Element) Element {
	return a.Mul(b.Inverse())
}
