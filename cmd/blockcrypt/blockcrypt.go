// Command blockcrypt encrypts and decrypts files with the rijndael package.
// It is a thin filesystem-facing consumer of the cipher: key material,
// padding, and key size come from flags and an optional JSON/YAML config
// file, and all cryptographic work happens in the library.
//
// With -compress, input is lz4-compressed before encryption and decompressed
// after decryption.
package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/codahale/rijndael"
	"github.com/codahale/rijndael/blockstream"
	"github.com/codahale/rijndael/config"
	"github.com/pierrec/lz4/v4"
	"github.com/spf13/afero"
)

func main() {
	var (
		decrypt    = flag.Bool("d", false, "decrypt instead of encrypt")
		keyHex     = flag.String("key", "", "cipher key as hex (16, 24, or 32 bytes)")
		inPath     = flag.String("in", "", "input file")
		outPath    = flag.String("out", "", "output file")
		configPath = flag.String("config", "", "optional JSON or YAML config file")
		compress   = flag.Bool("compress", false, "lz4-compress before encrypting")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	log := slog.New(slog.Default().Handler())

	if err := run(afero.NewOsFs(), log, *decrypt, *keyHex, *inPath, *outPath, *configPath, *compress, *verbose); err != nil {
		log.Error("blockcrypt failed", "err", err)
		os.Exit(1)
	}
}

//nolint:funlen // one linear pipeline
func run(fsys afero.Fs, log *slog.Logger, decrypt bool, keyHex, inPath, outPath, configPath string, compress, verbose bool) error {
	if keyHex == "" || inPath == "" || outPath == "" {
		return errors.New("-key, -in, and -out are required")
	}

	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(fsys, configPath)
		if err != nil {
			return err
		}
		log.Info("loaded config", "path", configPath, "keySize", cfg.KeySize, "padding", cfg.Padding)
	}
	if verbose || cfg.Verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return fmt.Errorf("decoding key: %w", err)
	}
	cipher, err := rijndael.New(key, cfg.KeySize)
	if err != nil {
		return err
	}

	in, err := fsys.Open(inPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := fsys.Create(outPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	if !cfg.Padding {
		// Unpadded operation works on whole block-aligned files.
		return runUnpadded(cipher, decrypt, in, out)
	}

	if decrypt {
		var r io.Reader = blockstream.NewReader(cipher, in)
		if compress {
			r = lz4.NewReader(r)
		}
		n, err := io.Copy(out, r)
		if err != nil {
			return err
		}
		log.Debug("decrypted", "in", inPath, "out", outPath, "bytes", n)
		return nil
	}

	w := blockstream.NewWriter(cipher, out)
	var dst io.Writer = w
	var zw *lz4.Writer
	if compress {
		zw = lz4.NewWriter(w)
		dst = zw
	}
	n, err := io.Copy(dst, in)
	if err != nil {
		return err
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	log.Debug("encrypted", "in", inPath, "out", outPath, "bytes", n)
	return nil
}

// runUnpadded reads the whole file and runs a single unpadded multi-block
// operation over it; the input length must be a multiple of the block size.
func runUnpadded(cipher *rijndael.Cipher, decrypt bool, in io.Reader, out io.Writer) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}

	var result []byte
	if decrypt {
		result, err = cipher.Decrypt(data, false)
	} else {
		result, err = cipher.Encrypt(data, false)
	}
	if err != nil {
		return err
	}

	_, err = out.Write(result)
	return err
}
