package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/cosign/cmd/cosignd/app"
	"github.com/iov-one/cosign/x/cosign"
	"github.com/iov-one/weave"
)

func cmdCreateRegistry(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction initializing a registry. The registry is owned by the
signer of the transaction and is identified by its address.
`)
		fl.PrintDefaults()
	}
	fl.Parse(args)

	msg := cosign.CreateRegistryMsg{
		Metadata: &weave.Metadata{Schema: 1},
	}
	return writeMsg(output, &msg)
}

func cmdCreateDocument(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction registering a new document that must be signed by all
given signers.
`)
		fl.PrintDefaults()
	}
	var (
		registryFl = flAddress(fl, "registry", env("COSIGNCLI_REGISTRY", ""), "Registry address. You can use COSIGNCLI_REGISTRY environment variable to set it.")
		titleFl    = fl.String("title", "", "Document title.")
		descFl     = fl.String("description", "", "Optional document description.")
		hashFl     = fl.String("hash", "", "Hash of the document file.")
		signersFl  = flAddressList(fl, "signers", "Comma separated list of addresses that must sign the document.")
	)
	fl.Parse(args)

	msg := cosign.CreateDocumentMsg{
		Metadata:    &weave.Metadata{Schema: 1},
		RegistryID:  *registryFl,
		Title:       *titleFl,
		Description: *descFl,
		FileHash:    *hashFl,
		Signers:     *signersFl,
	}
	return writeMsg(output, &msg)
}

func cmdSignDocument(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction submitting a signature of a document. The transaction
must be signed by one of the document signers.
`)
		fl.PrintDefaults()
	}
	var (
		registryFl = flAddress(fl, "registry", env("COSIGNCLI_REGISTRY", ""), "Registry address. You can use COSIGNCLI_REGISTRY environment variable to set it.")
		idFl       = fl.Uint64("id", 0, "Document ID.")
		sigFl      = fl.String("signature", "", "Signature of the document file.")
	)
	fl.Parse(args)

	msg := cosign.SignDocumentMsg{
		Metadata:   &weave.Metadata{Schema: 1},
		RegistryID: *registryFl,
		DocumentID: *idFl,
		Signature:  *sigFl,
	}
	return writeMsg(output, &msg)
}

func cmdUpdateDocument(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction changing the title and the description of a document.
Only the creator can update a document and only before it was signed.
`)
		fl.PrintDefaults()
	}
	var (
		registryFl = flAddress(fl, "registry", env("COSIGNCLI_REGISTRY", ""), "Registry address. You can use COSIGNCLI_REGISTRY environment variable to set it.")
		idFl       = fl.Uint64("id", 0, "Document ID.")
		titleFl    = fl.String("title", "", "New document title.")
		descFl     = fl.String("description", "", "New document description.")
	)
	fl.Parse(args)

	msg := cosign.UpdateDocumentMsg{
		Metadata:    &weave.Metadata{Schema: 1},
		RegistryID:  *registryFl,
		DocumentID:  *idFl,
		Title:       *titleFl,
		Description: *descFl,
	}
	return writeMsg(output, &msg)
}

func cmdTransferOwnership(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction transferring the ownership of a registry.
`)
		fl.PrintDefaults()
	}
	var (
		registryFl = flAddress(fl, "registry", env("COSIGNCLI_REGISTRY", ""), "Registry address. You can use COSIGNCLI_REGISTRY environment variable to set it.")
		ownerFl    = flAddress(fl, "owner", "", "Address of the new owner.")
	)
	fl.Parse(args)

	msg := cosign.TransferOwnershipMsg{
		Metadata:   &weave.Metadata{Schema: 1},
		RegistryID: *registryFl,
		NewOwner:   *ownerFl,
	}
	return writeMsg(output, &msg)
}

func cmdUpdateConfiguration(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction updating the registry limits. Only provided values are
changed. Zero limit means no limit.
`)
		fl.PrintDefaults()
	}
	var (
		ownerFl   = flAddress(fl, "owner", "", "New configuration owner.")
		signersFl = fl.Uint("max-signers", 0, "Maximum number of document signers.")
		titleFl   = fl.Uint("max-title", 0, "Maximum title length.")
		descFl    = fl.Uint("max-description", 0, "Maximum description length.")
	)
	fl.Parse(args)

	msg := cosign.UpdateConfigurationMsg{
		Metadata: &weave.Metadata{Schema: 1},
		Patch: &cosign.Configuration{
			Metadata:             &weave.Metadata{Schema: 1},
			Owner:                *ownerFl,
			MaxSigners:           uint32(*signersFl),
			MaxTitleLength:       uint32(*titleFl),
			MaxDescriptionLength: uint32(*descFl),
		},
	}
	return writeMsg(output, &msg)
}

// writeMsg validates the message and writes a new transaction carrying it.
func writeMsg(output io.Writer, msg weave.Msg) error {
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("given data produce an invalid message: %s", err)
	}
	var tx app.Tx
	if err := tx.SetMsg(msg); err != nil {
		return fmt.Errorf("cannot create transaction: %s", err)
	}
	_, err := writeTx(output, &tx)
	return err
}
