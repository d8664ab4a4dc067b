package rijndael

// pad appends PKCS#7 padding to a copy of data: n bytes of value n, where
// n = 16 - len(data)%16. Input that is already block-aligned gains a full
// block of 0x10, so removal is always unambiguous.
func pad(data []byte) []byte {
	n := BlockSize - len(data)%BlockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

// unpad validates and strips PKCS#7 padding: the final byte n must be in
// 1..16 and the last n bytes must all equal n.
func unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrInvalidPadding
	}
	n := int(data[len(data)-1])
	if n == 0 || n > BlockSize || n > len(data) {
		return nil, ErrInvalidPadding
	}
	for _, b := range data[len(data)-n:] {
		if b != byte(n) {
			return nil, ErrInvalidPadding
		}
	}
	return data[:len(data)-n], nil
}
