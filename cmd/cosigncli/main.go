package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/iov-one/weave"
)

// commands is a register of all available commands. The name is matched with
// the first argument given to the program.
//
// A command function is given the standard input and output and the command
// line arguments without the program and command name. Each command provides
// a single functionality. Transactions are streamed between commands so that
// a unix pipeline can be used, for example:
//
//   $ cosigncli sign-document -registry $REG -id 3 -signature 0af0 \
//       | cosigncli sign \
//       | cosigncli submit
//
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"create-document":      cmdCreateDocument,
	"create-registry":      cmdCreateRegistry,
	"keyaddr":              cmdKeyaddr,
	"keygen":               cmdKeygen,
	"query":                cmdQuery,
	"sign":                 cmdSignTransaction,
	"sign-document":        cmdSignDocument,
	"submit":               cmdSubmitTransaction,
	"transfer-ownership":   cmdTransferOwnership,
	"update-configuration": cmdUpdateConfiguration,
	"update-document":      cmdUpdateDocument,
	"version":              cmdVersion,
	"view":                 cmdTransactionView,
}

func main() {
	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s is a command line client for the document co-signing registry.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		fmt.Fprintf(os.Stderr, "Run '%s <command> -help' to learn more about each command.\n", os.Args[0])
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func cmdVersion(in io.Reader, out io.Writer, args []string) error {
	fmt.Fprintf(out, "%s (weave %s)\n", gitHash, weave.Version)
	return nil
}

// gitHash is set during the compilation time.
var gitHash = "dev"
