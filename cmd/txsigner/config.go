package main

import (
	"strconv"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"github.com/satoshilab/scriptcore/infrastructure/config"
	"github.com/satoshilab/scriptcore/infrastructure/db/txstore"
)

type configFlags struct {
	Transaction string        `long:"transaction" short:"t" description:"Unsigned transaction in HEX format" required:"true"`
	PrivateKey  string        `long:"private-key" short:"p" description:"Private key in WIF format" required:"true"`
	StoreType   string        `long:"store-type" description:"Where fetched transactions are cached {memory, leveldb, bbolt}"`
	Store       string        `long:"store" description:"Path of the leveldb directory or the bbolt file caching fetched transactions"`
	ExplorerURL string        `long:"explorer" description:"Base URL of the block explorer, overriding the default of the network"`
	Timeout     time.Duration `long:"timeout" description:"Timeout of each explorer request"`
	Profile     string        `long:"profile" description:"Enable HTTP profiling on given port -- NOTE port must be between 1024 and 65536"`
	config.NetworkFlags
	config.ProxyFlags
	config.LogFlags
}

func parseConfig() (*configFlags, error) {
	cfg := &configFlags{
		StoreType: txstore.TypeMemory,
	}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)
	_, err := parser.Parse()
	if err != nil {
		return nil, err
	}

	err = cfg.ResolveNetwork(parser)
	if err != nil {
		return nil, err
	}

	if cfg.Profile != "" {
		profilePort, err := strconv.Atoi(cfg.Profile)
		if err != nil || profilePort < 1024 || profilePort > 65535 {
			return nil, errors.New("The profile port must be between 1024 and 65535")
		}
	}

	return cfg, nil
}
