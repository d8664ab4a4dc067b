// Package gf implements arithmetic over GF(2^8), the field of 256 elements
// used by the Rijndael linear layer. Addition is XOR; multiplication is
// polynomial multiplication modulo x^8 + x^4 + x^3 + x + 1.
package gf

// poly is the low eight bits of the reduction polynomial. The x^8 term is
// implicit: it cancels against the carry whenever a doubling overflows.
const poly = 0x1b

// Mul returns the product of a and b in GF(2^8), computed by peasant
// multiplication with a reduction on every doubling.
func Mul(a, b byte) byte {
	var p byte
	for range 8 {
		if b&1 != 0 {
			p ^= a
		}
		carry := a & 0x80
		a <<= 1
		if carry != 0 {
			a ^= poly
		}
		b >>= 1
	}
	return p
}

// Mul2 returns 2a, a single doubling. This is the xtime operation every other
// fixed multiplier is built from.
func Mul2(a byte) byte {
	if a&0x80 != 0 {
		return a<<1 ^ poly
	}
	return a << 1
}

// Mul3 returns 3a = 2a + a.
func Mul3(a byte) byte {
	return Mul2(a) ^ a
}

// Mul9 returns 9a = 8a + a.
func Mul9(a byte) byte {
	return Mul2(Mul2(Mul2(a))) ^ a
}

// Mul11 returns 11a = 8a + 2a + a.
func Mul11(a byte) byte {
	return Mul2(Mul2(Mul2(a))) ^ Mul2(a) ^ a
}

// Mul13 returns 13a = 8a + 4a + a.
func Mul13(a byte) byte {
	x4 := Mul2(Mul2(a))
	return Mul2(x4) ^ x4 ^ a
}

// Mul14 returns 14a = 8a + 4a + 2a.
func Mul14(a byte) byte {
	x2 := Mul2(a)
	x4 := Mul2(x2)
	return Mul2(x4) ^ x4 ^ x2
}

// Inverse returns the multiplicative inverse of a, or 0 for a = 0, which has
// none. Computed as a^254 with an addition chain over squarings.
func Inverse(a byte) byte {
	x2 := Mul(a, a)
	x4 := Mul(x2, x2)
	x8 := Mul(x4, x4)
	x16 := Mul(x8, x8)
	x32 := Mul(x16, x16)
	x64 := Mul(x32, x32)
	x128 := Mul(x64, x64)

	// a^254 = a^128 * a^64 * a^32 * a^16 * a^8 * a^4 * a^2
	p := Mul(x2, x4)
	p = Mul(p, x8)
	p = Mul(p, x16)
	p = Mul(p, x32)
	p = Mul(p, x64)
	return Mul(p, x128)
}
