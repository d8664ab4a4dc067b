package rijndael_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"sync"
	"testing"

	"github.com/codahale/rijndael"
)

func mustHex(tb testing.TB, s string) []byte {
	tb.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		tb.Fatal(err)
	}
	return b
}

// TestKnownAnswers checks the published FIPS-197 vectors: the Appendix B
// walkthrough and the Appendix C examples for each key size.
func TestKnownAnswers(t *testing.T) {
	for _, v := range []struct {
		name       string
		keySize    int
		key        string
		plaintext  string
		ciphertext string
	}{
		{
			name:       "AES-128 appendix B",
			keySize:    128,
			key:        "2b7e151628aed2a6abf7158809cf4f3c",
			plaintext:  "3243f6a8885a308d313198a2e0370734",
			ciphertext: "3925841d02dc09fbdc118597196a0b32",
		},
		{
			name:       "AES-128 appendix C.1",
			keySize:    128,
			key:        "000102030405060708090a0b0c0d0e0f",
			plaintext:  "00112233445566778899aabbccddeeff",
			ciphertext: "69c4e0d86a7b0430d8cdb78070b4c55a",
		},
		{
			name:       "AES-192 appendix C.2",
			keySize:    192,
			key:        "000102030405060708090a0b0c0d0e0f1011121314151617",
			plaintext:  "00112233445566778899aabbccddeeff",
			ciphertext: "dda97ca4864cdfe06eaf70a0ec0d7191",
		},
		{
			name:       "AES-256 appendix C.3",
			keySize:    256,
			key:        "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f",
			plaintext:  "00112233445566778899aabbccddeeff",
			ciphertext: "8ea2b7ca516745bfeafc49904b496089",
		},
	} {
		t.Run(v.name, func(t *testing.T) {
			c, err := rijndael.New(mustHex(t, v.key), v.keySize)
			if err != nil {
				t.Fatal(err)
			}

			ct, err := c.EncryptBlock(nil, mustHex(t, v.plaintext))
			if err != nil {
				t.Fatal(err)
			}
			if got, want := hex.EncodeToString(ct), v.ciphertext; got != want {
				t.Errorf("EncryptBlock(%s) = %s, want = %s", v.plaintext, got, want)
			}

			pt, err := c.DecryptBlock(nil, mustHex(t, v.ciphertext))
			if err != nil {
				t.Fatal(err)
			}
			if got, want := hex.EncodeToString(pt), v.plaintext; got != want {
				t.Errorf("DecryptBlock(%s) = %s, want = %s", v.ciphertext, got, want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("unsupported key size", func(t *testing.T) {
		for _, keySize := range []int{0, 64, 129, 512} {
			if _, err := rijndael.New(make([]byte, 16), keySize); !errors.Is(err, rijndael.ErrUnsupportedKeySize) {
				t.Errorf("New(16-byte key, %d) = %v, want = %v", keySize, err, rijndael.ErrUnsupportedKeySize)
			}
		}
	})

	t.Run("mismatched key length", func(t *testing.T) {
		for _, v := range []struct {
			keySize, keyLen int
		}{{128, 15}, {128, 24}, {192, 16}, {256, 16}, {256, 33}} {
			if _, err := rijndael.New(make([]byte, v.keyLen), v.keySize); !errors.Is(err, rijndael.ErrInvalidKeyLength) {
				t.Errorf("New(%d-byte key, %d) = %v, want = %v", v.keyLen, v.keySize, err, rijndael.ErrInvalidKeyLength)
			}
		}
	})

	t.Run("inferred key size", func(t *testing.T) {
		for _, keyLen := range []int{16, 24, 32} {
			if _, err := rijndael.NewFromKey(make([]byte, keyLen)); err != nil {
				t.Errorf("NewFromKey(%d-byte key) = %v, want no error", keyLen, err)
			}
		}
		if _, err := rijndael.NewFromKey(make([]byte, 20)); !errors.Is(err, rijndael.ErrInvalidKeyLength) {
			t.Errorf("NewFromKey(20-byte key) = %v, want = %v", err, rijndael.ErrInvalidKeyLength)
		}
	})
}

func TestBlockLength(t *testing.T) {
	c, err := rijndael.NewFromKey(make([]byte, 16))
	if err != nil {
		t.Fatal(err)
	}

	for _, n := range []int{0, 15, 17, 32} {
		if _, err := c.EncryptBlock(nil, make([]byte, n)); !errors.Is(err, rijndael.ErrInvalidBlockLength) {
			t.Errorf("EncryptBlock(%d bytes) = %v, want = %v", n, err, rijndael.ErrInvalidBlockLength)
		}
		if _, err := c.DecryptBlock(nil, make([]byte, n)); !errors.Is(err, rijndael.ErrInvalidBlockLength) {
			t.Errorf("DecryptBlock(%d bytes) = %v, want = %v", n, err, rijndael.ErrInvalidBlockLength)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, keyLen := range []int{16, 24, 32} {
		key := make([]byte, keyLen)
		for i := range key {
			key[i] = byte(i + keyLen)
		}
		c, err := rijndael.NewFromKey(key)
		if err != nil {
			t.Fatal(err)
		}

		for n := range 49 {
			message := make([]byte, n)
			for i := range message {
				message[i] = byte(i * 3)
			}

			ciphertext, err := c.Encrypt(message, true)
			if err != nil {
				t.Fatal(err)
			}
			if got, want := len(ciphertext), (n/rijndael.BlockSize+1)*rijndael.BlockSize; got != want {
				t.Errorf("len(Encrypt(%d bytes)) = %d, want = %d", n, got, want)
			}

			plaintext, err := c.Decrypt(ciphertext, true)
			if err != nil {
				t.Fatal(err)
			}
			if got, want := plaintext, message; !bytes.Equal(got, want) {
				t.Errorf("Decrypt(Encrypt(%x)) = %x, want = %x", want, got, want)
			}
		}
	}
}

func TestEncryptWithoutPadding(t *testing.T) {
	c, err := rijndael.NewFromKey([]byte("This is a key123"))
	if err != nil {
		t.Fatal(err)
	}

	t.Run("unaligned input", func(t *testing.T) {
		if _, err := c.Encrypt(make([]byte, 15), false); !errors.Is(err, rijndael.ErrInvalidBlockLength) {
			t.Errorf("Encrypt(15 bytes, false) = %v, want = %v", err, rijndael.ErrInvalidBlockLength)
		}
	})

	t.Run("aligned round trip", func(t *testing.T) {
		message := bytes.Repeat([]byte("0123456789abcdef"), 3)
		ciphertext, err := c.Encrypt(message, false)
		if err != nil {
			t.Fatal(err)
		}
		plaintext, err := c.Decrypt(ciphertext, false)
		if err != nil {
			t.Fatal(err)
		}
		if got, want := plaintext, message; !bytes.Equal(got, want) {
			t.Errorf("Decrypt(Encrypt(%x)) = %x, want = %x", want, got, want)
		}
	})

	t.Run("identical blocks give identical ciphertext", func(t *testing.T) {
		// A structural property of unchained block-by-block operation.
		message := bytes.Repeat([]byte("0123456789abcdef"), 2)
		ciphertext, err := c.Encrypt(message, false)
		if err != nil {
			t.Fatal(err)
		}
		if got, want := ciphertext[:16], ciphertext[16:32]; !bytes.Equal(got, want) {
			t.Errorf("ciphertext blocks differ: %x != %x", got, want)
		}
	})
}

func TestPaddingAlignedInput(t *testing.T) {
	c, err := rijndael.NewFromKey([]byte("This is a key123"))
	if err != nil {
		t.Fatal(err)
	}

	// Block-aligned input gains exactly one full block of 0x10.
	message := make([]byte, 32)
	ciphertext, err := c.Encrypt(message, true)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(ciphertext), 48; got != want {
		t.Fatalf("len(Encrypt(32 bytes, true)) = %d, want = %d", got, want)
	}

	raw, err := c.Decrypt(ciphertext, false)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := raw[32:], bytes.Repeat([]byte{0x10}, 16); !bytes.Equal(got, want) {
		t.Errorf("padding block = %x, want = %x", got, want)
	}

	plaintext, err := c.Decrypt(ciphertext, true)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := plaintext, message; !bytes.Equal(got, want) {
		t.Errorf("Decrypt(Encrypt(%x)) = %x, want = %x", want, got, want)
	}
}

func TestDecryptErrors(t *testing.T) {
	c, err := rijndael.NewFromKey([]byte("This is a key123"))
	if err != nil {
		t.Fatal(err)
	}

	t.Run("empty input", func(t *testing.T) {
		if _, err := c.Decrypt(nil, true); !errors.Is(err, rijndael.ErrInvalidBlockLength) {
			t.Errorf("Decrypt(nil) = %v, want = %v", err, rijndael.ErrInvalidBlockLength)
		}
	})

	t.Run("unaligned input", func(t *testing.T) {
		if _, err := c.Decrypt(make([]byte, 15), true); !errors.Is(err, rijndael.ErrInvalidBlockLength) {
			t.Errorf("Decrypt(15 bytes) = %v, want = %v", err, rijndael.ErrInvalidBlockLength)
		}
	})

	t.Run("padding byte out of range", func(t *testing.T) {
		// Craft plaintext blocks whose final byte is 0x00 or 0x11 and
		// encrypt them without padding; unpadding them must fail.
		for _, last := range []byte{0x00, 0x11} {
			block := bytes.Repeat([]byte{0xaa}, 16)
			block[15] = last
			ciphertext, err := c.Encrypt(block, false)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := c.Decrypt(ciphertext, true); !errors.Is(err, rijndael.ErrInvalidPadding) {
				t.Errorf("Decrypt(pad byte %#02x) = %v, want = %v", last, err, rijndael.ErrInvalidPadding)
			}
		}
	})

	t.Run("inconsistent padding bytes", func(t *testing.T) {
		block := bytes.Repeat([]byte{0xaa}, 16)
		block[15] = 0x05 // claims five pad bytes, but the rest are 0xaa
		ciphertext, err := c.Encrypt(block, false)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := c.Decrypt(ciphertext, true); !errors.Is(err, rijndael.ErrInvalidPadding) {
			t.Errorf("Decrypt(inconsistent padding) = %v, want = %v", err, rijndael.ErrInvalidPadding)
		}
	})
}

func TestShortMessage(t *testing.T) {
	c, err := rijndael.New([]byte("This is a key123"), 128)
	if err != nil {
		t.Fatal(err)
	}

	message := []byte("Hello, World!")
	ciphertext, err := c.Encrypt(message, true)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(ciphertext), 16; got != want {
		t.Errorf("len(Encrypt(%q)) = %d, want = %d", message, got, want)
	}

	plaintext, err := c.Decrypt(ciphertext, true)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := plaintext, message; !bytes.Equal(got, want) {
		t.Errorf("Decrypt(Encrypt(%q)) = %q, want = %q", want, got, want)
	}
}

// TestConcurrentUse shares one cipher across goroutines; the schedule is
// immutable after construction, so all results must agree.
func TestConcurrentUse(t *testing.T) {
	c, err := rijndael.NewFromKey(make([]byte, 32))
	if err != nil {
		t.Fatal(err)
	}

	message := bytes.Repeat([]byte("block cipher"), 8)
	want, err := c.Encrypt(message, true)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				got, err := c.Encrypt(message, true)
				if err != nil {
					t.Error(err)
					return
				}
				if !bytes.Equal(got, want) {
					t.Errorf("concurrent Encrypt = %x, want = %x", got, want)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func BenchmarkEncryptBlock(b *testing.B) {
	c, err := rijndael.NewFromKey(make([]byte, 16))
	if err != nil {
		b.Fatal(err)
	}

	block := make([]byte, rijndael.BlockSize)
	out := make([]byte, 0, rijndael.BlockSize)
	b.ReportAllocs()
	b.SetBytes(rijndael.BlockSize)
	for b.Loop() {
		_, _ = c.EncryptBlock(out[:0], block)
	}
}

func BenchmarkEncrypt(b *testing.B) {
	for _, keyLen := range []int{16, 24, 32} {
		b.Run(map[int]string{16: "AES-128", 24: "AES-192", 32: "AES-256"}[keyLen], func(b *testing.B) {
			c, err := rijndael.NewFromKey(make([]byte, keyLen))
			if err != nil {
				b.Fatal(err)
			}

			message := make([]byte, 1024)
			b.ReportAllocs()
			b.SetBytes(int64(len(message)))
			for b.Loop() {
				_, _ = c.Encrypt(message, true)
			}
		})
	}
}
