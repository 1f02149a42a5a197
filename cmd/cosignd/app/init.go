package app

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iov-one/cosign/x/cosign"
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/app"
	"github.com/iov-one/weave/commands/server"
	"github.com/iov-one/weave/crypto"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/migration"
	abci "github.com/tendermint/tendermint/abci/types"
)

// GenInitOptions will produce genesis options with a single registry. Its
// owner is also the migration and the configuration admin.
//
// Owner address can be given as the first argument. If not provided, a new
// key is generated and its hex encoded serialization is printed out.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var addr weave.Address
	if len(args) > 0 {
		a, err := weave.ParseAddress(args[0])
		if err != nil {
			return nil, errors.Wrap(err, "owner address")
		}
		addr = a
	} else {
		a, secret, err := GenerateOwnerKey()
		if err != nil {
			return nil, err
		}
		addr = a
		fmt.Println(secret)
	}

	type (
		dict  map[string]interface{}
		array []interface{}
	)
	return json.Marshal(dict{
		"cosign": dict{
			"registries": array{
				dict{"id": addr},
			},
		},
		"conf": dict{
			"cosign": cosign.Configuration{
				Metadata:             &weave.Metadata{Schema: 1},
				Owner:                addr,
				MaxSigners:           64,
				MaxTitleLength:       256,
				MaxDescriptionLength: 4096,
			},
			"migration": dict{
				"admin": addr,
			},
		},
		"initialize_schema": []dict{
			{"pkg": "cosign", "ver": 1},
			{"pkg": "sigs", "ver": 1},
		},
	})
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(options *server.Options) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if options.Home != "" {
		dbPath = filepath.Join(options.Home, "abci.db")
	}

	application, err := Application("cosign", Stack(), TxDecoder, dbPath, options.Debug)
	if err != nil {
		return nil, err
	}
	application.WithInit(app.ChainInitializers(
		&migration.Initializer{},
		&cosign.Initializer{},
	))

	// set the logger and return
	application.WithLogger(options.Logger)
	return application, nil
}

// GenerateOwnerKey returns the address of a new private key, along with the
// hex encoded key serialization that can be used to sign transactions.
func GenerateOwnerKey() (weave.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	raw, err := privKey.Marshal()
	if err != nil {
		return nil, "", errors.Wrap(err, "cannot serialize private key")
	}
	return privKey.PublicKey().Address(), hex.EncodeToString(raw), nil
}
