package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/satoshilab/scriptcore/btcec"
	"github.com/satoshilab/scriptcore/infrastructure/db/txstore"
	"github.com/satoshilab/scriptcore/infrastructure/logger"
	"github.com/satoshilab/scriptcore/infrastructure/network/txfetcher"
	"github.com/satoshilab/scriptcore/infrastructure/os/signal"
	"github.com/satoshilab/scriptcore/txscript"
	"github.com/satoshilab/scriptcore/util"
	"github.com/satoshilab/scriptcore/util/profiling"
	"github.com/satoshilab/scriptcore/wire"
)

func main() {
	cfg, err := parseConfig()
	if err != nil {
		os.Exit(1)
	}
	if err := cfg.InitLogging("txsigner"); err != nil {
		printErrorAndExit(err, "Failed to initialize logging")
	}
	defer logger.BackendLog.Close()

	if cfg.Profile != "" {
		profiling.Start(cfg.Profile, log)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	interrupt := signal.InterruptListener()
	spawn(func() {
		select {
		case <-interrupt:
			cancel()
		case <-ctx.Done():
		}
	})

	signed, err := run(ctx, cfg)
	if err != nil {
		printErrorAndExit(err, "Failed to sign transaction")
	}
	fmt.Printf("Signed Transaction (hex): %s\n", signed)
}

func run(ctx context.Context, cfg *configFlags) (string, error) {
	privateKey, compressed, err := parsePrivateKey(cfg)
	if err != nil {
		return "", err
	}
	transaction, err := parseTransaction(cfg.Transaction, cfg.NetParams().Testnet)
	if err != nil {
		return "", err
	}

	fetcher, closeFetcher, err := newFetcher(cfg)
	if err != nil {
		return "", err
	}
	defer closeFetcher()

	err = signTransaction(ctx, transaction, privateKey, compressed, fetcher)
	if err != nil {
		return "", err
	}

	fee, err := txscript.Fee(ctx, transaction, fetcher)
	if err != nil {
		return "", err
	}
	log.Infof("Transaction %s pays a fee of %s", transaction.TxID(), util.Amount(fee))

	serialized, err := transaction.Bytes()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(serialized), nil
}

func parsePrivateKey(cfg *configFlags) (*btcec.PrivateKey, bool, error) {
	privateKey, compressed, params, err := btcec.DecodeWIF(cfg.PrivateKey)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to decode private key")
	}
	if params != cfg.NetParams() {
		return nil, false, errors.Errorf("the private key is for %s but %s was selected",
			params.Name, cfg.NetParams().Name)
	}
	return privateKey, compressed, nil
}

func parseTransaction(transactionHex string, testnet bool) (*wire.MsgTx, error) {
	serializedTx, err := hex.DecodeString(transactionHex)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode transaction hex")
	}
	transaction := &wire.MsgTx{Testnet: testnet}
	err = transaction.DeserializeStrippingWitness(bytes.NewReader(serializedTx))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse transaction")
	}
	log.Tracef("%s", logger.NewLogClosure(func() string {
		return "Parsed transaction:\n" + spew.Sdump(transaction)
	}))
	return transaction, nil
}

// newFetcher returns the explorer fetcher behind a cache in the configured
// store, and a function closing the store.
func newFetcher(cfg *configFlags) (txscript.TxFetcher, func(), error) {
	dial, err := cfg.Dial()
	if err != nil {
		return nil, nil, err
	}
	fetcherConfig := &txfetcher.Config{
		Dial:    dial,
		Timeout: cfg.Timeout,
	}
	if cfg.NetParams().Testnet {
		fetcherConfig.TestnetURL = cfg.ExplorerURL
	} else {
		fetcherConfig.MainnetURL = cfg.ExplorerURL
	}

	db, err := txstore.OpenDatabase(cfg.StoreType, cfg.Store)
	if err != nil {
		return nil, nil, err
	}
	store := txstore.New(db)
	closeStore := func() {
		if err := store.Close(); err != nil {
			log.Errorf("Failed to close the transaction store: %s", err)
		}
	}
	return txstore.NewCachingFetcher(store, txfetcher.New(fetcherConfig)), closeStore, nil
}

func signTransaction(ctx context.Context, transaction *wire.MsgTx, privateKey *btcec.PrivateKey,
	compressed bool, fetcher txscript.TxFetcher) error {

	// Warm the cache concurrently before signing inputs one by one.
	if _, err := txfetcher.FetchPrevious(ctx, fetcher, transaction); err != nil {
		return err
	}

	for i := range transaction.TxIn {
		ok, err := txscript.SignInput(ctx, transaction, i, privateKey, compressed, fetcher)
		if err != nil {
			return errors.Wrapf(err, "failed to sign input %d", i)
		}
		if !ok {
			return errors.Errorf("input %d does not verify after signing, "+
				"is it locked to this key?", i)
		}
	}
	return nil
}

func printErrorAndExit(err error, message string) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", message, err)
	os.Exit(1)
}
