package rijndael

import "encoding/binary"

// expandKey derives the full key schedule from the cipher key: 4*(nr+1)
// 32-bit words, returned as (nr+1) concatenated 16-byte round keys. Words
// 0..nk-1 are the key itself; every later word is word[i-nk] XOR a transform
// of word[i-1] (FIPS-197 §5.2). The schedule is computed once per cipher and
// never mutated afterwards.
func expandKey(key []byte, nk, nr int) []byte {
	w := make([]uint32, 4*(nr+1))
	for i := range nk {
		w[i] = binary.BigEndian.Uint32(key[4*i:])
	}
	for i := nk; i < len(w); i++ {
		temp := w[i-1]
		switch {
		case i%nk == 0:
			temp = subWord(rotWord(temp)) ^ uint32(rcon[i/nk])<<24
		case nk == 8 && i%nk == 4:
			// The 256-bit variant substitutes mid-key as well.
			temp = subWord(temp)
		}
		w[i] = w[i-nk] ^ temp
	}

	schedule := make([]byte, 4*len(w))
	for i, word := range w {
		binary.BigEndian.PutUint32(schedule[4*i:], word)
	}
	return schedule
}

// rotWord cyclically rotates a word left by one byte.
func rotWord(w uint32) uint32 {
	return w<<8 | w>>24
}

// subWord substitutes each byte of a word through the S-box.
func subWord(w uint32) uint32 {
	return uint32(sbox[w>>24])<<24 |
		uint32(sbox[w>>16&0xff])<<16 |
		uint32(sbox[w>>8&0xff])<<8 |
		uint32(sbox[w&0xff])
}
