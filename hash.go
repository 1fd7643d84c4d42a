package schnorr256k1

import "encoding/binary"

// sha256K holds the 64 round constants from FIPS 180-4.
var sha256K = [64]uint32{
	0x428A2F98, 0x71374491, 0xB5C0FBCF, 0xE9B5DBA5, 0x3956C25B, 0x59F111F1, 0x923F82A4, 0xAB1C5ED5,
	0xD807AA98, 0x12835B01, 0x243185BE, 0x550C7DC3, 0x72BE5D74, 0x80DEB1FE, 0x9BDC06A7, 0xC19BF174,
	0xE49B69C1, 0xEFBE4786, 0x0FC19DC6, 0x240CA1CC, 0x2DE92C6F, 0x4A7484AA, 0x5CB0A9DC, 0x76F988DA,
	0x983E5152, 0xA831C66D, 0xB00327C8, 0xBF597FC7, 0xC6E00BF3, 0xD5A79147, 0x06CA6351, 0x14292967,
	0x27B70A85, 0x2E1B2138, 0x4D2C6DFC, 0x53380D13, 0x650A7354, 0x766A0ABB, 0x81C2C92E, 0x92722C85,
	0xA2BFE8A1, 0xA81A664B, 0xC24B8B70, 0xC76C51A3, 0xD192E819, 0xD6990624, 0xF40E3585, 0x106AA070,
	0x19A4C116, 0x1E376C08, 0x2748774C, 0x34B0BCB5, 0x391C0CB3, 0x4ED8AA4A, 0x5B9CCA4F, 0x682E6FF3,
	0x748F82EE, 0x78A5636F, 0x84C87814, 0x8CC70208, 0x90BEFFFA, 0xA4506CEB, 0xBEF9A3F7, 0xC67178F2,
}

var sha256H0 = [8]uint32{
	0x6A09E667, 0xBB67AE85, 0x3C6EF372, 0xA54FF53A, 0x510E527F, 0x9B05688C, 0x1F83D9AB, 0x5BE0CD19,
}

// SHA256 is a from-scratch, streaming implementation of FIPS 180-4 SHA-256.
// It is used instead of crypto/sha256 so the Schnorr verification path
// doesn't depend on anything outside this module for its core primitive;
// crypto/sha256 and the third-party sha256-simd package are still used as
// cross-check oracles in the test suite.
type SHA256 struct {
	state   [8]uint32
	buffer  [64]byte
	nBuffer int
	nBlocks uint64
}

// NewSHA256 returns a fresh hash context.
func NewSHA256() *SHA256 {
	h := &SHA256{state: sha256H0}
	return h
}

// Write absorbs more input into the running hash state.
func (h *SHA256) Write(data []byte) {
	if h.nBuffer+len(data) >= 64 {
		n := 64 - h.nBuffer
		copy(h.buffer[h.nBuffer:], data[:n])
		data = data[n:]
		sha256Block(&h.state, &h.buffer)
		h.nBuffer = 0
		h.nBlocks++
	}

	for len(data) >= 64 {
		var block [64]byte
		copy(block[:], data[:64])
		data = data[64:]
		sha256Block(&h.state, &block)
		h.nBlocks++
	}

	copy(h.buffer[h.nBuffer:], data)
	h.nBuffer += len(data)
}

// Finalize pads the buffered input and returns the 32-byte digest. The
// receiver must not be used again afterwards.
func (h *SHA256) Finalize() [32]byte {
	nWrittenBits := h.nBlocks*512 + uint64(h.nBuffer)*8

	nPadding := 55 - h.nBuffer
	if h.nBuffer >= 56 {
		nPadding = 119 - h.nBuffer
	}

	var padding [64]byte
	h.Write([]byte{0x80})
	h.Write(padding[:nPadding])

	var lenBytes [8]byte
	binary.BigEndian.PutUint64(lenBytes[:], nWrittenBits)
	h.Write(lenBytes[:])

	if h.nBuffer != 0 {
		panic("finalize: padding did not land on a block boundary")
	}

	var out [32]byte
	for i, s := range h.state {
		binary.BigEndian.PutUint32(out[i*4:], s)
	}
	return out
}

func rotr32(x uint32, n uint) uint32 { return x>>n | x<<(32-n) }

func sha256Block(state *[8]uint32, block *[64]byte) {
	var w [64]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(block[i*4:])
	}
	for i := 16; i < 64; i++ {
		s0 := rotr32(w[i-15], 7) ^ rotr32(w[i-15], 18) ^ (w[i-15] >> 3)
		s1 := rotr32(w[i-2], 17) ^ rotr32(w[i-2], 19) ^ (w[i-2] >> 10)
		w[i] = w[i-16] + s0 + w[i-7] + s1
	}

	h := *state
	for i := 0; i < 64; i++ {
		ch := (h[4] & h[5]) ^ (^h[4] & h[6])
		maj := (h[0] & h[1]) ^ (h[0] & h[2]) ^ (h[1] & h[2])
		s0 := rotr32(h[0], 2) ^ rotr32(h[0], 13) ^ rotr32(h[0], 22)
		s1 := rotr32(h[4], 6) ^ rotr32(h[4], 11) ^ rotr32(h[4], 25)
		t0 := h[7] + s1 + ch + sha256K[i] + w[i]
		t1 := s0 + maj

		h[7] = h[6]
		h[6] = h[5]
		h[5] = h[4]
		h[4] = h[3] + t0
		h[3] = h[2]
		h[2] = h[1]
		h[1] = h[0]
		h[0] = t0 + t1
	}

	for i := range state {
		state[i] += h[i]
	}
}

// SHA256Sum hashes data in a single call.
func SHA256Sum(data []byte) [32]byte {
	h := NewSHA256()
	h.Write(data)
	return h.Finalize()
}

// TaggedHash implements the BIP-340 tagged hash construction:
//
//	tagged_hash(tag, data...) = SHA256(SHA256(tag) || SHA256(tag) || data...)
func TaggedHash(tag []byte, data ...[]byte) [32]byte {
	tagHash := SHA256Sum(tag)

	h := NewSHA256()
	h.Write(tagHash[:])
	h.Write(tagHash[:])
	for _, d := range data {
		h.Write(d)
	}
	return h.Finalize()
}

// challengeTagHash is SHA256("BIP0340/challenge"), precomputed since every
// signature verification hashes under the same tag.
var challengeTagHash = SHA256Sum([]byte("BIP0340/challenge"))

// challengeHash computes the BIP-340 challenge e = tagged_hash("BIP0340/challenge", r || pubkey || message).
func challengeHash(r, pubkey, message [32]byte) [32]byte {
	h := NewSHA256()
	h.Write(challengeTagHash[:])
	h.Write(challengeTagHash[:])
	h.Write(r[:])
	h.Write(pubkey[:])
	h.Write(message[:])
	return h.Finalize()
}
