package schnorr256k1

import (
	"bytes"
	"encoding/hex"
	"errors"
)

func mustHex32(s string) [32]byte {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 32 {
		panic("mustHex32: bad literal")
	}
	var out [32]byte
	copy(out[:], b)
	return out
}

// primeBytes and groupOrderBytes are the field prime p and the curve
// order n as big-endian byte strings, used for the raw bounds checks
// VerifySignature performs before lifting anything into field or scalar
// arithmetic.
var (
	primeBytes      = mustHex32("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F")
	groupOrderBytes = mustHex32("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141")

	// magicExponent is (p+1)/4, the exponent solve_for_even_y raises the
	// curve equation's right-hand side to when extracting a square root.
	magicExponent = mustHex32("3FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFBFFFFF0C")
)

// Signature is a BIP-340 Schnorr signature, the pair (R, s).
type Signature struct {
	R [32]byte
	S [32]byte
}

// Verification failure reasons. VerifySignature returns exactly one of
// these (or nil) so callers can branch on the cause.
var (
	ErrPublicKeyOutOfBounds = errors.New("schnorr256k1: public key out of bounds")
	ErrSignatureOutOfBounds = errors.New("schnorr256k1: signature out of bounds")
	ErrFailedToSolve        = errors.New("schnorr256k1: failed to solve for even y")
	ErrIsNeutral            = errors.New("schnorr256k1: verification point is the neutral element")
	ErrIsOdd                = errors.New("schnorr256k1: verification point has odd y")
	ErrNotEqual             = errors.New("schnorr256k1: computed r does not match signature r")
)

// forEachBit calls f once per bit of b, most significant bit first.
func forEachBit(b [32]byte, f func(bit bool)) {
	for _, octet := range b {
		for s := 7; s >= 0; s-- {
			f(octet&(1<<uint(s)) != 0)
		}
	}
}

// MultiplyByScalar computes scalar*point via plain double-and-add, with no
// windowing or precomputed tables.
func MultiplyByScalar(point Point, scalar [32]byte) Point {
	g := Infinity
	forEachBit(scalar, func(bit bool) {
		if bit {
			g = g.Double().Add(point)
		} else {
			g = g.Double()
		}
	})
	return g
}

// PublicKey derives the BIP-340 x-only public key for secretKey. Panics if
// secretKey is zero or is not a valid scalar (secretKey >= p); both are
// contract violations on the caller's part, not recoverable conditions.
func PublicKey(secretKey [32]byte) [32]byte {
	if secretKey == ([32]byte{}) {
		panic("schnorr256k1: secret key is zero")
	}
	if bytes.Compare(secretKey[:], primeBytes[:]) >= 0 {
		panic("schnorr256k1: secret key out of range")
	}

	return MultiplyByScalar(Generator, secretKey).AffineX().Encode()
}

// SolveForEvenY lifts x to the unique point (x, y) on the curve with y
// even, by raising the curve equation's right-hand side to the (p+1)/4
// power. Returns ErrFailedToSolve if x is not on the curve at all.
func SolveForEvenY(x Element) (Element, error) {
	c := x.Square().Mul(x).Add(curveB)

	y := One
	forEachBit(magicExponent, func(bit bool) {
		if bit {
			y = y.Square().Mul(c)
		} else {
			y = y.Square()
		}
	})

	if !y.Square().Equal(c) {
		return Element{}, ErrFailedToSolve
	}
	if !y.IsEven() {
		y = y.Negative()
	}
	return y, nil
}

// VerifySignature checks sig against publicKey and message per BIP-340.
// A nil return means the signature is valid; otherwise the returned error
// identifies which check failed.
func VerifySignature(publicKey, message [32]byte, sig Signature) error {
	if bytes.Compare(publicKey[:], primeBytes[:]) >= 0 {
		return ErrPublicKeyOutOfBounds
	}
	if bytes.Compare(sig.R[:], primeBytes[:]) >= 0 || bytes.Compare(sig.S[:], groupOrderBytes[:]) >= 0 {
		return ErrSignatureOutOfBounds
	}

	publicX := Decode(publicKey)
	publicY, err := SolveForEvenY(publicX)
	if err != nil {
		return err
	}
	publicPoint := Point{x: publicX, y: publicY, z: One}

	e := challengeHash(sig.R, publicKey, message)

	g := MultiplyByScalar(Generator, sig.S)
	p := MultiplyByScalar(publicPoint, e)
	h := g.Add(p.Negative())

	if h.IsNeutral() {
		return ErrIsNeutral
	}
	if !h.AffineY().IsEven() {
		return ErrIsOdd
	}
	if h.AffineX().Encode() != sig.R {
		return ErrNotEqual
	}

	return nil
}
