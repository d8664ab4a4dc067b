// Package rijndael implements the AES (Rijndael) block cipher from first
// principles: GF(2^8) arithmetic, the fixed substitution tables, the four
// round transformations and their inverses, the FIPS-197 key schedule, and
// block-by-block multi-block operation with PKCS#7 padding.
//
// Multi-block operation is ECB-equivalent: blocks are processed
// independently, with no chaining, so identical plaintext blocks under the
// same key produce identical ciphertext blocks. That is a structural property
// of the mode, not a defect. The implementation is a direct rendition of the
// published transformations; it makes no constant-time guarantees and
// provides no authentication. Do not use it where a hardened primitive is
// required.
package rijndael

import "errors"

// BlockSize is the cipher block size in bytes, fixed for all key sizes.
const BlockSize = 16

var (
	// ErrUnsupportedKeySize is returned when the declared key size is not
	// 128, 192, or 256 bits.
	ErrUnsupportedKeySize = errors.New("rijndael: unsupported key size")

	// ErrInvalidKeyLength is returned when the key bytes do not match the
	// declared key size.
	ErrInvalidKeyLength = errors.New("rijndael: invalid key length")

	// ErrInvalidBlockLength is returned when a block operation's operand is
	// not exactly 16 bytes, or when multi-block input is not a whole number
	// of blocks.
	ErrInvalidBlockLength = errors.New("rijndael: invalid block length")

	// ErrInvalidPadding is returned when decrypted padding bytes are
	// inconsistent with the PKCS#7 rule.
	ErrInvalidPadding = errors.New("rijndael: invalid PKCS#7 padding")
)

// A Cipher is an instance of AES using a particular key. The expanded key
// schedule is computed once at construction and never mutated afterwards, so
// a Cipher is safe for concurrent use.
type Cipher struct {
	schedule []byte // (nr+1) round keys of 16 bytes each
	nr       int
}

// New returns a Cipher for the given key. keySize selects the variant and
// must be 128, 192, or 256; the key must be exactly keySize/8 bytes.
func New(key []byte, keySize int) (*Cipher, error) {
	var nk, nr int
	switch keySize {
	case 128:
		nk, nr = 4, 10
	case 192:
		nk, nr = 6, 12
	case 256:
		nk, nr = 8, 14
	default:
		return nil, ErrUnsupportedKeySize
	}
	if len(key) != keySize/8 {
		return nil, ErrInvalidKeyLength
	}
	return &Cipher{schedule: expandKey(key, nk, nr), nr: nr}, nil
}

// NewFromKey returns a Cipher for the given key, inferring the variant from
// the key length, which must be 16, 24, or 32 bytes.
func NewFromKey(key []byte) (*Cipher, error) {
	switch len(key) {
	case 16, 24, 32:
		return New(key, len(key)*8)
	default:
		return nil, ErrInvalidKeyLength
	}
}

// roundKey returns round key k as a read-only slice of the schedule.
func (c *Cipher) roundKey(k int) []byte {
	return c.schedule[k*BlockSize : (k+1)*BlockSize]
}

// EncryptBlock appends the encryption of the 16-byte block src to dst and
// returns the resulting slice.
func (c *Cipher) EncryptBlock(dst, src []byte) ([]byte, error) {
	if len(src) != BlockSize {
		return nil, ErrInvalidBlockLength
	}
	var s [16]byte
	copy(s[:], src)
	c.encrypt(&s)
	return append(dst, s[:]...), nil
}

// DecryptBlock appends the decryption of the 16-byte block src to dst and
// returns the resulting slice.
func (c *Cipher) DecryptBlock(dst, src []byte) ([]byte, error) {
	if len(src) != BlockSize {
		return nil, ErrInvalidBlockLength
	}
	var s [16]byte
	copy(s[:], src)
	c.decrypt(&s)
	return append(dst, s[:]...), nil
}

// encrypt runs the forward round pipeline over one state: an initial key
// addition, nr-1 full rounds, and a final round without mixColumns.
func (c *Cipher) encrypt(s *[16]byte) {
	addRoundKey(s, c.roundKey(0))
	for round := 1; round < c.nr; round++ {
		subBytes(s)
		shiftRows(s)
		mixColumns(s)
		addRoundKey(s, c.roundKey(round))
	}
	subBytes(s)
	shiftRows(s)
	addRoundKey(s, c.roundKey(c.nr))
}

// decrypt mirrors encrypt exactly in reverse, with inverse transformations
// and round keys applied from nr down to 0.
func (c *Cipher) decrypt(s *[16]byte) {
	addRoundKey(s, c.roundKey(c.nr))
	invShiftRows(s)
	invSubBytes(s)
	for round := c.nr - 1; round > 0; round-- {
		addRoundKey(s, c.roundKey(round))
		invMixColumns(s)
		invShiftRows(s)
		invSubBytes(s)
	}
	addRoundKey(s, c.roundKey(0))
}

// Encrypt encrypts data block by block and returns the concatenated
// ciphertext. With padding enabled, PKCS#7 padding is applied first, so the
// result is always a whole number of blocks and data of any length is
// accepted. With padding disabled, len(data) must already be a multiple of
// BlockSize.
func (c *Cipher) Encrypt(data []byte, padding bool) ([]byte, error) {
	if padding {
		data = pad(data)
	} else if len(data)%BlockSize != 0 {
		return nil, ErrInvalidBlockLength
	}

	out := make([]byte, len(data))
	var s [16]byte
	for i := 0; i < len(data); i += BlockSize {
		copy(s[:], data[i:])
		c.encrypt(&s)
		copy(out[i:], s[:])
	}
	return out, nil
}

// Decrypt decrypts data block by block. len(data) must be a nonzero multiple
// of BlockSize. With padding enabled, the PKCS#7 padding of the concatenated
// plaintext is validated and stripped; with padding disabled, the raw
// concatenation is returned unmodified.
func (c *Cipher) Decrypt(data []byte, padding bool) ([]byte, error) {
	if len(data) == 0 || len(data)%BlockSize != 0 {
		return nil, ErrInvalidBlockLength
	}

	out := make([]byte, len(data))
	var s [16]byte
	for i := 0; i < len(data); i += BlockSize {
		copy(s[:], data[i:])
		c.decrypt(&s)
		copy(out[i:], s[:])
	}

	if padding {
		return unpad(out)
	}
	return out, nil
}
