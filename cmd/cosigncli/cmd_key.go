package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/weave/crypto"
	"github.com/stellar/go/exp/crypto/derivation"
	"golang.org/x/crypto/ed25519"
)

func cmdKeygen(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Generate a new private key.

When successful a new file with binary content containing private key is
created. This command fails if the private key file already exists.

A key can be derived from a hex encoded seed using a SLIP-0010 path. If no
seed is given a random key is generated.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", defaultKeyPath(), keyPathHelp)
		seedFl    = fl.String("seed", "", "Optional hex encoded seed to derive the key from.")
		pathFl    = fl.String("path", "m/44'/234'/0'", "Derivation path used together with the seed.")
	)
	fl.Parse(args)

	if _, err := os.Stat(*keyPathFl); !os.IsNotExist(err) {
		// Never overwrite a private key. User must delete it manually.
		return fmt.Errorf("private key file %q already exists, delete this file and try again", *keyPathFl)
	}

	var priv ed25519.PrivateKey
	if *seedFl == "" {
		var err error
		if _, priv, err = ed25519.GenerateKey(nil); err != nil {
			return fmt.Errorf("cannot generate ed25519 key: %s", err)
		}
	} else {
		seed, err := hex.DecodeString(*seedFl)
		if err != nil {
			return fmt.Errorf("invalid seed: %s", err)
		}
		if priv, err = derive(seed, *pathFl); err != nil {
			return err
		}
	}

	fd, err := os.OpenFile(*keyPathFl, os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("cannot create private key file: %s", err)
	}
	defer fd.Close()

	if _, err := fd.Write(priv); err != nil {
		return fmt.Errorf("cannot write private key: %s", err)
	}
	if err := fd.Close(); err != nil {
		return fmt.Errorf("cannot close private key file: %s", err)
	}
	return nil
}

// derive returns the ed25519 key found under given path of the seed.
func derive(seed []byte, path string) (ed25519.PrivateKey, error) {
	k, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		return nil, fmt.Errorf("cannot derive key using path %q: %s", path, err)
	}
	return ed25519.NewKeyFromSeed(k.Key), nil
}

func cmdKeyaddr(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the address associated with your private key. Hex format is used
unless a bech32 human readable part is given.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", defaultKeyPath(), keyPathHelp)
		bechFl    = fl.String("bech32", "", "Human readable part, for example \"tiov\". Print bech32 address if set.")
	)
	fl.Parse(args)

	key, err := loadPrivateKey(*keyPathFl)
	if err != nil {
		return err
	}
	addr := key.PublicKey().Address()
	if *bechFl == "" {
		_, err = fmt.Fprintln(output, addr)
		return err
	}
	b, err := toBech32(*bechFl, addr)
	if err != nil {
		return fmt.Errorf("cannot serialize to bech32: %s", err)
	}
	_, err = fmt.Fprintln(output, b)
	return err
}

func toBech32(prefix string, data []byte) (string, error) {
	converted, err := bech32.ConvertBits(data, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("cannot convert bits: %s", err)
	}
	return bech32.Encode(prefix, converted)
}

func loadPrivateKey(path string) (*crypto.PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read private key file: %s", err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, errors.New("invalid private key length")
	}
	return &crypto.PrivateKey{
		Priv: &crypto.PrivateKey_Ed25519{Ed25519: raw},
	}, nil
}
