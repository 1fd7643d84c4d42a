package schnorr256k1

import "testing"

func TestGeneratorOnCurve(t *testing.T) {
	Generator.Verify()
}

func TestPointDoubling(t *testing.T) {
	g := Generator
	for i := 0; i < 32; i++ {
		g = g.Double()
		g.Verify()
	}
}

func TestPointAddition(t *testing.T) {
	g := Generator
	for i := 0; i < 32; i++ {
		g = g.Add(Generator)
		g.Verify()
	}
}

func TestPointAddIdentity(t *testing.T) {
	sum := Generator.Add(Infinity)
	if !sum.AffineX().Equal(Generator.AffineX()) || !sum.AffineY().Equal(Generator.AffineY()) {
		t.Error("P + O should equal P")
	}

	sum = Infinity.Add(Generator)
	if !sum.AffineX().Equal(Generator.AffineX()) || !sum.AffineY().Equal(Generator.AffineY()) {
		t.Error("O + P should equal P")
	}
}

func TestPointAddNegative(t *testing.T) {
	sum := Generator.Add(Generator.Negative())
	if !sum.IsNeutral() {
		t.Error("P + (-P) should equal the neutral element")
	}
}

func TestPointDoubleMatchesAdd(t *testing.T) {
	doubled := Generator.Double()
	added := Generator.Add(Generator)

	if !doubled.AffineX().Equal(added.AffineX()) || !doubled.AffineY().Equal(added.AffineY()) {
		t.Error("G + G should equal double(G)")
	}
}

func TestAffineXYPanicsOnInfinity(t *testing.T) {
	expectPanic := func(name string, f func()) {
		defer func() {
			if recover() == nil {
				t.Errorf("%s on the neutral element should panic", name)
			}
		}()
		f()
	}
	expectPanic("AffineX", func() { Infinity.AffineX() })
	expectPanic("AffineY", func() { Infinity.AffineY() })
}

func TestGroupOrderAnnihilatesGenerator(t *testing.T) {
	order := mustHex32("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141")

	result := MultiplyByScalar(Generator, order)
	if !result.IsNeutral() {
		t.Error("n*G should equal the neutral element")
	}
}

func BenchmarkPointDouble(b *testing.B) {
	g := Generator
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g = g.Double()
	}
}

func BenchmarkPointAdd(b *testing.B) {
	g := Generator
	doubled := g.Double()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.Add(doubled)
	}
}
