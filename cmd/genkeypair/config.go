package main

import (
	"github.com/jessevdk/go-flags"
	"github.com/satoshilab/scriptcore/infrastructure/config"
)

type configFlags struct {
	Mnemonic     bool   `long:"mnemonic" description:"Derive the key from a newly generated BIP39 mnemonic"`
	FromMnemonic string `long:"from-mnemonic" description:"Derive the key from the given BIP39 mnemonic"`
	Passphrase   bool   `long:"passphrase" description:"Prompt for a passphrase protecting the mnemonic seed"`
	Uncompressed bool   `long:"uncompressed" description:"Use the uncompressed public key for the WIF and address"`
	config.NetworkFlags
}

func parseConfig() (*configFlags, error) {
	cfg := &configFlags{}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)
	_, err := parser.Parse()
	if err != nil {
		return nil, err
	}

	err = cfg.ResolveNetwork(parser)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
