package main

import (
	"net/http"
	"os"

	"github.com/iov-one/cosign/cmd/cosignd/client"
	"github.com/tendermint/tendermint/libs/log"
)

type configuration struct {
	HTTP       string
	Tendermint string
}

func main() {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "cosignapi")

	conf := configuration{
		HTTP:       env("HTTP", ":8000"),
		Tendermint: env("TENDERMINT", "http://localhost:26657"),
	}

	if err := run(conf, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

func run(conf configuration, logger log.Logger) error {
	c := client.NewClient(client.NewHTTPConnection(conf.Tendermint))
	rt := newRouter(c, logger)

	logger.Info("listening", "addr", conf.HTTP, "tendermint", conf.Tendermint)
	return http.ListenAndServe(conf.HTTP, rt)
}
