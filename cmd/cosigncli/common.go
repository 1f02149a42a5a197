package main

import (
	"encoding/binary"
	"errors"
	"io"
	"os"

	"github.com/iov-one/cosign/cmd/cosignd/app"
)

// env returns the value of an environment variable if provided (even if empty)
// or a fallback value.
func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

// documentID decodes a document ID as returned by the create document
// handler.
func documentID(b []byte) (uint64, error) {
	if len(b) != 8 {
		return 0, errors.New("document ID must be 8 bytes")
	}
	return binary.BigEndian.Uint64(b), nil
}

// writeTx serialize the transaction. First bytes written contain the
// information how much space the transaction takes, so that transactions
// can be streamed.
func writeTx(w io.Writer, tx *app.Tx) (int, error) {
	b, err := tx.Marshal()
	if err != nil {
		return 0, err
	}

	var size [txHeaderSize]byte
	binary.BigEndian.PutUint32(size[:], uint32(len(b)))

	if n, err := w.Write(size[:]); err != nil {
		return n, err
	}
	if n, err := w.Write(b); err != nil {
		return n + txHeaderSize, err
	}
	return txHeaderSize + len(b), nil
}

func readTx(r io.Reader) (*app.Tx, int, error) {
	var size [txHeaderSize]byte
	if n, err := io.ReadFull(r, size[:]); err != nil {
		return nil, n, err
	}
	msgSize := binary.BigEndian.Uint32(size[:])
	raw := make([]byte, msgSize)
	if n, err := io.ReadFull(r, raw); err != nil {
		return nil, n + txHeaderSize, err
	}

	var tx app.Tx
	if err := tx.Unmarshal(raw); err != nil {
		return nil, int(msgSize + txHeaderSize), err
	}
	return &tx, int(msgSize + txHeaderSize), nil
}

const txHeaderSize = 4

const (
	defaultTmAddr = "http://localhost:26657"
	tmAddrHelp    = "Tendermint node address. You can use COSIGNCLI_TM_ADDR environment variable to set it."
	keyPathHelp   = "Path to the private key file. You can use COSIGNCLI_PRIV_KEY environment variable to set it."
)

func defaultKeyPath() string {
	return env("COSIGNCLI_PRIV_KEY", os.Getenv("HOME")+"/.cosignd.priv.key")
}
