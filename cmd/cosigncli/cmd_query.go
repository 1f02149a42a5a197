package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/iov-one/cosign/cmd/cosignd/client"
	"github.com/iov-one/weave"
)

func cmdQuery(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Query the registry state and print JSON encoded result.

Supported kinds are:
	registry    the registry
	document    a single document, requires -id
	signatures  signatures of a document, requires -id
	created     documents created by -user
	assigned    documents -user must sign, not completed yet
	signed      documents signed by -user
	events      the registry event log
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl   = fl.String("tm", env("COSIGNCLI_TM_ADDR", defaultTmAddr), tmAddrHelp)
		registryFl = flAddress(fl, "registry", env("COSIGNCLI_REGISTRY", ""), "Registry address. You can use COSIGNCLI_REGISTRY environment variable to set it.")
		kindFl     = fl.String("kind", "document", "Kind of the queried entity.")
		idFl       = fl.Uint64("id", 0, "Document ID.")
		userFl     = flAddress(fl, "user", "", "User address.")
	)
	fl.Parse(args)

	run, ok := queries[*kindFl]
	if !ok {
		return fmt.Errorf("unknown kind %q, available kinds: %s", *kindFl, strings.Join(queryKinds(), ", "))
	}
	if err := registryFl.Validate(); err != nil {
		return fmt.Errorf("invalid registry: %s", err)
	}

	c := client.NewClient(client.NewHTTPConnection(*tmAddrFl))
	result, err := run(c, queryArgs{registry: *registryFl, id: *idFl, user: *userFl})
	if err != nil {
		return fmt.Errorf("failed to run query: %s", err)
	}
	pretty, err := json.MarshalIndent(result, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot JSON serialize: %s", err)
	}
	_, err = output.Write(pretty)
	return err
}

type queryArgs struct {
	registry weave.Address
	id       uint64
	user     weave.Address
}

var queries = map[string]func(*client.CosignClient, queryArgs) (interface{}, error){
	"registry": func(c *client.CosignClient, a queryArgs) (interface{}, error) {
		return c.GetRegistry(a.registry)
	},
	"document": func(c *client.CosignClient, a queryArgs) (interface{}, error) {
		return c.GetDocument(a.registry, a.id)
	},
	"signatures": func(c *client.CosignClient, a queryArgs) (interface{}, error) {
		return c.Signatures(a.registry, a.id)
	},
	"created": func(c *client.CosignClient, a queryArgs) (interface{}, error) {
		if err := a.user.Validate(); err != nil {
			return nil, fmt.Errorf("invalid user: %s", err)
		}
		return c.DocumentsCreatedBy(a.registry, a.user)
	},
	"assigned": func(c *client.CosignClient, a queryArgs) (interface{}, error) {
		if err := a.user.Validate(); err != nil {
			return nil, fmt.Errorf("invalid user: %s", err)
		}
		return c.DocumentsAssignedTo(a.registry, a.user)
	},
	"signed": func(c *client.CosignClient, a queryArgs) (interface{}, error) {
		if err := a.user.Validate(); err != nil {
			return nil, fmt.Errorf("invalid user: %s", err)
		}
		return c.DocumentsSignedBy(a.registry, a.user)
	},
	"events": func(c *client.CosignClient, a queryArgs) (interface{}, error) {
		return c.Events(a.registry)
	},
}

func queryKinds() []string {
	kinds := make([]string, 0, len(queries))
	for k := range queries {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
