package schnorr256k1

import "testing"

func TestSolveForEvenYMatchesGeneratorPowers(t *testing.T) {
	g := Generator
	for i := 0; i < 32; i++ {
		x := g.AffineX()
		y := g.AffineY()
		if !y.IsEven() {
			y = y.Negative()
		}

		yLift, err := SolveForEvenY(x)
		if err != nil {
			t.Fatalf("could not solve for y: %v", err)
		}

		if !yLift.IsEven() {
			t.Error("solved y should be even")
		}
		if !yLift.Equal(y) {
			t.Error("solved y should match the generator's own (possibly negated) y")
		}

		g = g.Add(Generator)
	}
}

func TestPublicKeyVector(t *testing.T) {
	secretKey := mustHex32("B7E151628AED2A6ABF7158809CF4F3C762E7160F38B4DA56A784D9045190CFEF")
	want := mustHex32("DFF1D77F2A671C5F36183726DB2341BE58FEAE1DA2DECED843240F7B502BA659")

	got := PublicKey(secretKey)
	if got != want {
		t.Errorf("public key mismatch.\nwant: %x\ngot:  %x", want, got)
	}
}

func TestPublicKeyZeroSecretPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("zero secret key should panic")
		}
	}()
	PublicKey([32]byte{})
}

func TestVerifySignatureVector(t *testing.T) {
	publicKey := mustHex32("DFF1D77F2A671C5F36183726DB2341BE58FEAE1DA2DECED843240F7B502BA659")
	message := mustHex32("243F6A8885A308D313198A2E03707344A4093822299F31D0082EFA98EC4E6C89")
	sig := Signature{
		R: mustHex32("6896BD60EEAE296DB48A229FF71DFE071BDE413E6D43F917DC8DCF8C78DE3341"),
		S: mustHex32("8906D11AC976ABCCB20B091292BFF4EA897EFCB639EA871CFA95F6DE339E4B0A"),
	}

	if err := VerifySignature(publicKey, message, sig); err != nil {
		t.Errorf("expected valid signature, got error: %v", err)
	}
}

func TestVerifySignatureRejectsTamperedMessage(t *testing.T) {
	publicKey := mustHex32("DFF1D77F2A671C5F36183726DB2341BE58FEAE1DA2DECED843240F7B502BA659")
	message := mustHex32("243F6A8885A308D313198A2E03707344A4093822299F31D0082EFA98EC4E6C89")
	sig := Signature{
		R: mustHex32("6896BD60EEAE296DB48A229FF71DFE071BDE413E6D43F917DC8DCF8C78DE3341"),
		S: mustHex32("8906D11AC976ABCCB20B091292BFF4EA897EFCB639EA871CFA95F6DE339E4B0A"),
	}

	message[0] ^= 1

	if err := VerifySignature(publicKey, message, sig); err == nil {
		t.Error("expected verification to fail for a tampered message")
	}
}

func TestVerifySignatureBoundsChecks(t *testing.T) {
	message := mustHex32("243F6A8885A308D313198A2E03707344A4093822299F31D0082EFA98EC4E6C89")
	sig := Signature{
		R: mustHex32("6896BD60EEAE296DB48A229FF71DFE071BDE413E6D43F917DC8DCF8C78DE3341"),
		S: mustHex32("8906D11AC976ABCCB20B091292BFF4EA897EFCB639EA871CFA95F6DE339E4B0A"),
	}

	outOfBoundsKey := [32]byte{}
	for i := range outOfBoundsKey {
		outOfBoundsKey[i] = 0xFF
	}

	err := VerifySignature(outOfBoundsKey, message, sig)
	if err != ErrPublicKeyOutOfBounds {
		t.Errorf("expected ErrPublicKeyOutOfBounds, got %v", err)
	}

	publicKey := mustHex32("DFF1D77F2A671C5F36183726DB2341BE58FEAE1DA2DECED843240F7B502BA659")
	badSig := sig
	badSig.R = outOfBoundsKey
	err = VerifySignature(publicKey, message, badSig)
	if err != ErrSignatureOutOfBounds {
		t.Errorf("expected ErrSignatureOutOfBounds, got %v", err)
	}
}

func TestDerivedPublicKeyVerifiesSignature(t *testing.T) {
	secretKey := mustHex32("B7E151628AED2A6ABF7158809CF4F3C762E7160F38B4DA56A784D9045190CFEF")
	publicKey := PublicKey(secretKey)
	message := mustHex32("243F6A8885A308D313198A2E03707344A4093822299F31D0082EFA98EC4E6C89")

	sig := Signature{
		R: mustHex32("6896BD60EEAE296DB48A229FF71DFE071BDE413E6D43F917DC8DCF8C78DE3341"),
		S: mustHex32("8906D11AC976ABCCB20B091292BFF4EA897EFCB639EA871CFA95F6DE339E4B0A"),
	}

	if err := VerifySignature(publicKey, message, sig); err != nil {
		t.Errorf("signature should verify against its own public key: %v", err)
	}
}

func BenchmarkVerifySignature(b *testing.B) {
	publicKey := mustHex32("DFF1D77F2A671C5F36183726DB2341BE58FEAE1DA2DECED843240F7B502BA659")
	message := mustHex32("243F6A8885A308D313198A2E03707344A4093822299F31D0082EFA98EC4E6C89")
	sig := Signature{
		R: mustHex32("6896BD60EEAE296DB48A229FF71DFE071BDE413E6D43F917DC8DCF8C78DE3341"),
		S: mustHex32("8906D11AC976ABCCB20B091292BFF4EA897EFCB639EA871CFA95F6DE339E4B0A"),
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = VerifySignature(publicKey, message, sig)
	}
}
