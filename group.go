package schnorr256k1

// Point is a secp256k1 curve point in Jacobian projective coordinates
// (x, y, z), representing the affine point (x/z^2, y/z^3). Infinity is
// tracked with an explicit flag rather than a sentinel coordinate value,
// matching the teacher's GroupElementJacobian convention.
//
// As with Element, every method is pure: it takes Point by value and
// returns a new Point.
type Point struct {
	x, y, z  Element
	infinity bool
}

// Infinity is the neutral element of the curve group.
var Infinity = Point{infinity: true}

// threeHalfs is the constant 3/2 mod p used by the doubling formula below.
var threeHalfs = Element{
	limbs: [5]uint64{
		0xFFFFF7FFFFE19,
		0xFFFFFFFFFFFFF,
		0xFFFFFFFFFFFFF,
		0xFFFFFFFFFFFFF,
		0x7FFFFFFFFFFF,
	},
	magnitude: 0,
}

var generatorX = Element{
	limbs: [5]uint64{
		0x2815B16F81798,
		0xDB2DCE28D959F,
		0xE870B07029BFC,
		0xBBAC55A06295C,
		0x79BE667EF9DC,
	},
	magnitude: 0,
}

var generatorY = Element{
	limbs: [5]uint64{
		0x7D08FFB10D4B8,
		0x48A68554199C4,
		0xE1108A8FD17B4,
		0xC4655DA4FBFC0,
		0x483ADA7726A3,
	},
	magnitude: 0,
}

// Generator is the standard secp256k1 base point G.
var Generator = Point{x: generatorX, y: generatorY, z: One}

// curveB is the secp256k1 curve equation's constant term: y^2 = x^3 + 7.
var curveB = FromUint64(7)

// Verify panics unless p lies on the curve. The neutral element trivially
// satisfies this and is left unchecked.
func (p Point) Verify() {
	if p.infinity {
		return
	}
	z2 := p.z.Square()
	x := p.x.Div(z2)
	y := p.y.Div(z2.Mul(p.z))
	if !y.Square().Equal(x.Mul(x).Mul(x).Add(curveB)) {
		panic("point does not satisfy the curve equation")
	}
}

// AffineX returns p's affine x-coordinate. Panics if p is the neutral
// element, which has no affine representation.
func (p Point) AffineX() Element {
	if p.infinity {
		panic("AffineX called on the neutral element")
	}
	return p.x.Div(p.z.Square())
}

// AffineY returns p's affine y-coordinate. Panics if p is the neutral
// element.
func (p Point) AffineY() Element {
	if p.infinity {
		panic("AffineY called on the neutral element")
	}
	return p.y.Div(p.z.Square().Mul(p.z))
}

// IsNeutral reports whether p is the group's identity element.
func (p Point) IsNeutral() bool {
	return p.infinity
}

// Negative returns -p.
func (p Point) Negative() Point {
	if p.infinity {
		return Infinity
	}
	return Point{x: p.x, y: p.y.Negative(), z: p.z, infinity: false}
}

// Double returns p + p.
//
// Formula used:
//
//	L = (3/2) * X^2
//	S = Y^2
//	T = -X*S
//	RX = L^2 + 2*T
//	RY = -(L*(RX + T) + S^2)
//	RZ = Y*Z
func (p Point) Double() Point {
	if p.infinity {
		return Infinity
	}
	if p.y.IsZero() {
		return Infinity
	}

	l := threeHalfs.Mul(p.x.Square())
	s := p.y.Square()
	t := p.x.Mul(s).Negative()
	rx := l.Square().Add(t.Double())
	ry := l.Mul(rx.Add(t)).Add(s.Square()).Negative()
	rz := p.y.Mul(p.z)

	return Point{x: rx, y: ry, z: rz}
}

// Add returns p + rhs.
func (p Point) Add(rhs Point) Point {
	if p.infinity && rhs.infinity {
		return Infinity
	}
	if p.infinity {
		return rhs
	}
	if rhs.infinity {
		return p
	}

	az2 := p.z.Square()
	bz2 := rhs.z.Square()

	ax := p.x.Mul(bz2)
	ay := p.y.Mul(bz2).Mul(rhs.z)
	bx := rhs.x.Mul(az2)
	by := rhs.y.Mul(az2).Mul(p.z)

	h := bx.Sub(ax)
	i := ay.Sub(by)

	if h.IsZero() {
		if i.IsZero() {
			return p.Double()
		}
		return Infinity
	}

	h2 := h.Square().Negative()
	h3 := h2.Mul(h)
	t := ax.Mul(h2)

	rx := i.Square().Add(h3).Add(t.Double())
	ry := i.Mul(t.Add(rx)).Add(h3.Mul(ay))
	rz := p.z.Mul(rhs.z).Mul(h)

	return Point{x: rx, y: ry, z: rz}
}
