package txstore

import (
	"context"

	"github.com/pkg/errors"
	"github.com/satoshilab/scriptcore/txscript"
	"github.com/satoshilab/scriptcore/util/chainhash"
	"github.com/satoshilab/scriptcore/wire"
)

// CachingFetcher serves transactions from a TxStore and falls back to an
// upstream fetcher, storing what it fetches.
type CachingFetcher struct {
	store    *TxStore
	upstream txscript.TxFetcher
}

// NewCachingFetcher returns a fetcher caching the results of upstream in
// store.
func NewCachingFetcher(store *TxStore, upstream txscript.TxFetcher) *CachingFetcher {
	return &CachingFetcher{store: store, upstream: upstream}
}

// FetchTransaction implements txscript.TxFetcher.
func (f *CachingFetcher) FetchTransaction(ctx context.Context, txID *chainhash.Hash,
	testnet bool) (*wire.MsgTx, error) {

	tx, err := f.store.Get(txID, testnet)
	if err == nil {
		log.Tracef("Transaction %s found in the store", txID)
		return tx, nil
	}
	if !errors.Is(err, ErrTxNotFound) {
		return nil, err
	}

	tx, err = f.upstream.FetchTransaction(ctx, txID, testnet)
	if err != nil {
		return nil, err
	}
	if fetchedID := tx.TxID(); !fetchedID.IsEqual(txID) {
		return nil, errors.Errorf("fetched transaction %s while asking for %s", fetchedID, txID)
	}
	tx.Testnet = testnet
	if err := f.store.Put(tx); err != nil {
		log.Warnf("Failed to store transaction %s: %s", txID, err)
	}
	return tx, nil
}
