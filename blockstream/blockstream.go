// Package blockstream provides streaming encryption on top of a
// rijndael.Cipher.
//
// The writer buffers plaintext into 16-byte blocks and encrypts each one as
// it fills. Closing the writer encrypts the residue with PKCS#7 padding, so
// the stream always ends in a padded block and is unambiguous to terminate.
// The returned io.WriteCloser MUST be closed for the stream to be valid.
//
// The reader keeps one ciphertext block of lookahead: each block is decrypted
// without padding until the underlying reader is exhausted, at which point
// the held-back final block is decrypted and its padding stripped. A stream
// that is empty or ends mid-block fails with rijndael.ErrInvalidBlockLength;
// a final block with malformed padding fails with rijndael.ErrInvalidPadding.
//
// Blocks are encrypted independently, with no chaining; the stream inherits
// the structural properties of block-by-block operation.
package blockstream

import (
	"errors"
	"io"

	"github.com/codahale/rijndael"
)

// NewWriter wraps the given cipher and io.Writer with an encrypting writer.
func NewWriter(c *rijndael.Cipher, w io.Writer) io.WriteCloser {
	return &padWriter{
		c:   c,
		w:   w,
		buf: make([]byte, 0, rijndael.BlockSize),
		out: make([]byte, 0, rijndael.BlockSize),
	}
}

// NewReader wraps the given cipher and io.Reader with a decrypting reader.
func NewReader(c *rijndael.Cipher, r io.Reader) io.Reader {
	return &unpadReader{c: c, r: r}
}

type padWriter struct {
	c      *rijndael.Cipher
	w      io.Writer
	buf    []byte // residual plaintext, always shorter than one block
	out    []byte // ciphertext scratch
	closed bool
}

func (pw *padWriter) Write(p []byte) (n int, err error) {
	total := len(p)

	// Top up the residual block first.
	if len(pw.buf) > 0 {
		take := min(len(p), rijndael.BlockSize-len(pw.buf))
		pw.buf = append(pw.buf, p[:take]...)
		p = p[take:]
		if len(pw.buf) < rijndael.BlockSize {
			return total, nil
		}
		if err := pw.encryptAndWrite(pw.buf); err != nil {
			return total - len(p), err
		}
		pw.buf = pw.buf[:0]
	}

	// Pass whole blocks straight through.
	for len(p) >= rijndael.BlockSize {
		if err := pw.encryptAndWrite(p[:rijndael.BlockSize]); err != nil {
			return total - len(p), err
		}
		p = p[rijndael.BlockSize:]
	}

	pw.buf = append(pw.buf, p...)
	return total, nil
}

func (pw *padWriter) Close() error {
	if pw.closed {
		return nil
	}
	pw.closed = true

	// Pad and encrypt the residue; an empty residue still produces a full
	// padding block, terminating the stream unambiguously.
	final, err := pw.c.Encrypt(pw.buf, true)
	if err != nil {
		return err
	}
	_, err = pw.w.Write(final)
	return err
}

func (pw *padWriter) encryptAndWrite(block []byte) error {
	out, err := pw.c.EncryptBlock(pw.out[:0], block)
	if err != nil {
		return err
	}
	_, err = pw.w.Write(out)
	return err
}

type unpadReader struct {
	c     *rijndael.Cipher
	r     io.Reader
	ahead [rijndael.BlockSize]byte // ciphertext lookahead
	have  bool
	out   []byte // decrypted bytes ready to serve
	done  bool
	err   error
}

func (ur *unpadReader) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}

	for {
		// Satisfy the read from decrypted bytes if any are buffered.
		if len(ur.out) > 0 {
			n = min(len(ur.out), len(p))
			copy(p, ur.out[:n])
			ur.out = ur.out[n:]
			return n, nil
		}
		if ur.done {
			return 0, io.EOF
		}
		if ur.err != nil {
			return 0, ur.err
		}
		if err := ur.advance(); err != nil {
			ur.err = err
			return 0, err
		}
	}
}

// advance reads the next ciphertext block. While a successor block exists,
// the held block is an interior one and is decrypted without padding; once
// the stream ends cleanly, the held block is the final one and its padding
// is stripped.
func (ur *unpadReader) advance() error {
	var next [rijndael.BlockSize]byte
	if _, err := io.ReadFull(ur.r, next[:]); err != nil {
		switch {
		case errors.Is(err, io.EOF) && ur.have:
			out, err := ur.c.Decrypt(ur.ahead[:], true)
			if err != nil {
				return err
			}
			ur.out = out
			ur.done = true
			return nil
		case errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF):
			// An empty or truncated stream is not a whole number of blocks.
			return rijndael.ErrInvalidBlockLength
		default:
			return err
		}
	}

	if ur.have {
		out, err := ur.c.Decrypt(ur.ahead[:], false)
		if err != nil {
			return err
		}
		ur.out = out
	}
	ur.ahead = next
	ur.have = true
	return nil
}

var (
	_ io.WriteCloser = (*padWriter)(nil)
	_ io.Reader      = (*unpadReader)(nil)
)
