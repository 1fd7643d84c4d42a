package schnorr256k1

import (
	"bytes"
	"strings"
	"testing"
)

// Test vectors from FIPS 180-4 / NIST.
func TestSHA256NistVectors(t *testing.T) {
	cases := []struct {
		name  string
		input []byte
		want  [32]byte
	}{
		{
			name:  "empty",
			input: []byte{},
			want: [32]byte{
				0xE3, 0xB0, 0xC4, 0x42, 0x98, 0xFC, 0x1C, 0x14, 0x9A, 0xFB, 0xF4, 0xC8, 0x99, 0x6F,
				0xB9, 0x24, 0x27, 0xAE, 0x41, 0xE4, 0x64, 0x9B, 0x93, 0x4C, 0xA4, 0x95, 0x99, 0x1B,
				0x78, 0x52, 0xB8, 0x55,
			},
		},
		{
			name:  "abc",
			input: []byte("abc"),
			want: [32]byte{
				0xBA, 0x78, 0x16, 0xBF, 0x8F, 0x01, 0xCF, 0xEA, 0x41, 0x41, 0x40, 0xDE, 0x5D, 0xAE,
				0x22, 0x23, 0xB0, 0x03, 0x61, 0xA3, 0x96, 0x17, 0x7A, 0x9C, 0xB4, 0x10, 0xFF, 0x61,
				0xF2, 0x00, 0x15, 0xAD,
			},
		},
		{
			name:  "two_blocks",
			input: []byte("abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq"),
			want: [32]byte{
				0x24, 0x8D, 0x6A, 0x61, 0xD2, 0x06, 0x38, 0xB8, 0xE5, 0xC0, 0x26, 0x93, 0x0C, 0x3E,
				0x60, 0x39, 0xA3, 0x3C, 0xE4, 0x59, 0x64, 0xFF, 0x21, 0x67, 0xF6, 0xEC, 0xED, 0xD4,
				0x19, 0xDB, 0x06, 0xC1,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SHA256Sum(tc.input)
			if got != tc.want {
				t.Errorf("mismatch.\nwant: %x\ngot:  %x", tc.want, got)
			}
		})
	}
}

func TestSHA256LargeInput(t *testing.T) {
	input := []byte(strings.Repeat("a", 1_000_000))
	want := [32]byte{
		0xCD, 0xC7, 0x6E, 0x5C, 0x99, 0x14, 0xFB, 0x92, 0x81, 0xA1, 0xC7, 0xE2, 0x84, 0xD7,
		0x3E, 0x67, 0xF1, 0x80, 0x9A, 0x48, 0xA4, 0x97, 0x20, 0x0E, 0x04, 0x6D, 0x39, 0xCC, 0xC7,
		0x11, 0x2C, 0xD0,
	}

	got := SHA256Sum(input)
	if got != want {
		t.Errorf("large input digest mismatch.\nwant: %x\ngot:  %x", want, got)
	}
}

func TestSHA256StreamingMatchesOneShot(t *testing.T) {
	data := []byte("streaming versus one-shot should agree")

	oneShot := SHA256Sum(data)

	h := NewSHA256()
	for _, chunk := range [][]byte{data[:5], data[5:17], data[17:]} {
		h.Write(chunk)
	}
	streamed := h.Finalize()

	if oneShot != streamed {
		t.Error("streaming writes should produce the same digest as a single Write")
	}
}

func TestTaggedHashSpecification(t *testing.T) {
	tag := []byte("BIP0340/challenge")
	data := []byte("test message")

	got := TaggedHash(tag, data)

	tagHash := SHA256Sum(tag)
	var combined []byte
	combined = append(combined, tagHash[:]...)
	combined = append(combined, tagHash[:]...)
	combined = append(combined, data...)
	want := SHA256Sum(combined)

	if got != want {
		t.Errorf("tagged hash doesn't follow SHA256(SHA256(tag)||SHA256(tag)||data).\nwant: %x\ngot:  %x", want, got)
	}
}

func TestTaggedHashDeterministicAndTagSensitive(t *testing.T) {
	tag := []byte("BIP0340/nonce")
	msg := []byte("another test")

	a := TaggedHash(tag, msg)
	b := TaggedHash(tag, msg)
	if a != b {
		t.Error("tagged hash should be deterministic")
	}

	differentTag := []byte("BIP0340/aux")
	c := TaggedHash(differentTag, msg)
	if bytes.Equal(a[:], c[:]) {
		t.Error("different tags should produce different outputs")
	}
}
