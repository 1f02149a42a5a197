package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/iov-one/weave"
)

// flAddress returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided.
// If given value cannot be deserialized, process is terminated.
func flAddress(fl *flag.FlagSet, name, defaultVal, usage string) *weave.Address {
	var a weave.Address
	if defaultVal != "" {
		var err error
		a, err = weave.ParseAddress(defaultVal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q weave.Address flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var(&a, name, usage)
	return &a
}

// flAddressList returns a list of addresses that is filled with comma
// separated values provided as a command line argument.
func flAddressList(fl *flag.FlagSet, name, usage string) *[]weave.Address {
	var l addressList
	fl.Var(&l, name, usage)
	return (*[]weave.Address)(&l)
}

type addressList []weave.Address

func (l addressList) String() string {
	s := make([]string, len(l))
	for i, a := range l {
		s[i] = a.String()
	}
	return strings.Join(s, ",")
}

func (l *addressList) Set(raw string) error {
	var out []weave.Address
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		a, err := weave.ParseAddress(s)
		if err != nil {
			return fmt.Errorf("%q: %s", s, err)
		}
		out = append(out, a)
	}
	*l = out
	return nil
}
