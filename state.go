package rijndael

import "github.com/codahale/rijndael/internal/gf"

// A state is one 16-byte block viewed as a 4x4 byte matrix in column-major
// order: row r of column c lives at index r + 4*c, which is also the byte's
// position in the block. Each transformation mutates the state in place and
// has an exact inverse.

// subBytes substitutes every state byte through the S-box.
func subBytes(s *[16]byte) {
	for i := range s {
		s[i] = sbox[s[i]]
	}
}

func invSubBytes(s *[16]byte) {
	for i := range s {
		s[i] = invSbox[s[i]]
	}
}

// shiftRows rotates row r left by r positions.
func shiftRows(s *[16]byte) {
	// Row 1: left by one.
	s[1], s[5], s[9], s[13] = s[5], s[9], s[13], s[1]
	// Row 2: left by two.
	s[2], s[10] = s[10], s[2]
	s[6], s[14] = s[14], s[6]
	// Row 3: left by three, i.e. right by one.
	s[3], s[7], s[11], s[15] = s[15], s[3], s[7], s[11]
}

// invShiftRows rotates row r right by r positions.
func invShiftRows(s *[16]byte) {
	s[1], s[5], s[9], s[13] = s[13], s[1], s[5], s[9]
	s[2], s[10] = s[10], s[2]
	s[6], s[14] = s[14], s[6]
	s[3], s[7], s[11], s[15] = s[7], s[11], s[15], s[3]
}

// mixColumns multiplies each column by the circulant matrix [02 03 01 01] in
// GF(2^8).
func mixColumns(s *[16]byte) {
	for c := 0; c < 16; c += 4 {
		a0, a1, a2, a3 := s[c], s[c+1], s[c+2], s[c+3]
		s[c] = gf.Mul2(a0) ^ gf.Mul3(a1) ^ a2 ^ a3
		s[c+1] = a0 ^ gf.Mul2(a1) ^ gf.Mul3(a2) ^ a3
		s[c+2] = a0 ^ a1 ^ gf.Mul2(a2) ^ gf.Mul3(a3)
		s[c+3] = gf.Mul3(a0) ^ a1 ^ a2 ^ gf.Mul2(a3)
	}
}

// invMixColumns multiplies each column by the inverse matrix [0e 0b 0d 09].
func invMixColumns(s *[16]byte) {
	for c := 0; c < 16; c += 4 {
		a0, a1, a2, a3 := s[c], s[c+1], s[c+2], s[c+3]
		s[c] = gf.Mul14(a0) ^ gf.Mul11(a1) ^ gf.Mul13(a2) ^ gf.Mul9(a3)
		s[c+1] = gf.Mul9(a0) ^ gf.Mul14(a1) ^ gf.Mul11(a2) ^ gf.Mul13(a3)
		s[c+2] = gf.Mul13(a0) ^ gf.Mul9(a1) ^ gf.Mul14(a2) ^ gf.Mul11(a3)
		s[c+3] = gf.Mul11(a0) ^ gf.Mul13(a1) ^ gf.Mul9(a2) ^ gf.Mul14(a3)
	}
}

// addRoundKey XORs a 16-byte round key into the state. Self-inverse.
func addRoundKey(s *[16]byte, rk []byte) {
	for i := range s {
		s[i] ^= rk[i]
	}
}
