package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/cosign/cmd/cosignd/client"
	"github.com/iov-one/cosign/x/cosign"
	"github.com/iov-one/weave"
)

func cmdSubmitTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read binary serialized transaction from standard input and submit it.

For certain transactions response is written out, for example the ID of a
created document.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", env("COSIGNCLI_TM_ADDR", defaultTmAddr), tmAddrHelp)
	)
	fl.Parse(args)

	tx, _, err := readTx(input)
	if err != nil {
		return fmt.Errorf("cannot read transaction from input: %s", err)
	}

	c := client.NewClient(client.NewHTTPConnection(*tmAddrFl))
	resp := c.BroadcastTx(tx)
	if err := resp.IsError(); err != nil {
		return fmt.Errorf("cannot broadcast transaction: %s", err)
	}

	pretty, err := extractResponse(tx, resp.Response.DeliverTx.Data)
	if err != nil {
		return fmt.Errorf("cannot extract response: %s", err)
	}
	if pretty != "" {
		fmt.Fprintln(output, pretty)
	}
	return nil
}

// extractResponse returns a human readable representation of the response
// data. An empty string is returned if the response is not worth showing.
func extractResponse(tx weave.Tx, data []byte) (string, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return "", fmt.Errorf("cannot extract message from transaction: %s", err)
	}
	format, ok := formatters[msg.Path()]
	if !ok {
		return "", nil
	}
	return format(data)
}

// formatters contains a mapping of a message path to response parser.
var formatters = map[string]func([]byte) (string, error){
	(&cosign.CreateRegistryMsg{}).Path(): fmtAddress,
	(&cosign.CreateDocumentMsg{}).Path(): fmtDocumentID,
	(&cosign.SignDocumentMsg{}).Path():   fmtDocumentKey,
	(&cosign.UpdateDocumentMsg{}).Path(): fmtDocumentKey,
}

func fmtAddress(raw []byte) (string, error) {
	a := weave.Address(raw)
	if err := a.Validate(); err != nil {
		return "", err
	}
	return a.String(), nil
}

func fmtDocumentID(raw []byte) (string, error) {
	n, err := documentID(raw)
	if err != nil {
		return "", err
	}
	return fmt.Sprint(n), nil
}

// fmtDocumentKey formats a key built by cosign.DocumentKey.
func fmtDocumentKey(raw []byte) (string, error) {
	if len(raw) < 8 {
		return "", fmt.Errorf("invalid document key %x", raw)
	}
	split := len(raw) - 8
	reg, err := fmtAddress(raw[:split])
	if err != nil {
		return "", err
	}
	id, err := documentID(raw[split:])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%d", reg, id), nil
}
