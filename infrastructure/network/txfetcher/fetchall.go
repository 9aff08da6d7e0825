package txfetcher

import (
	"context"

	"github.com/satoshilab/scriptcore/txscript"
	"github.com/satoshilab/scriptcore/util/chainhash"
	utilMath "github.com/satoshilab/scriptcore/util/math"
	"github.com/satoshilab/scriptcore/wire"
)

const maxConcurrentFetches = 8

type fetchResult struct {
	txID chainhash.Hash
	tx   *wire.MsgTx
	err  error
}

// FetchPrevious fetches every distinct transaction spent by tx concurrently
// and returns them by id. The first error cancels the remaining fetches.
func FetchPrevious(ctx context.Context, fetcher txscript.TxFetcher, tx *wire.MsgTx) (map[chainhash.Hash]*wire.MsgTx, error) {
	if tx.IsCoinBase() {
		return map[chainhash.Hash]*wire.MsgTx{}, nil
	}

	var txIDs []chainhash.Hash
	seen := make(map[chainhash.Hash]struct{})
	for _, txIn := range tx.TxIn {
		txID := txIn.PreviousOutpoint.TxID
		if _, ok := seen[txID]; ok {
			continue
		}
		seen[txID] = struct{}{}
		txIDs = append(txIDs, txID)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pending := make(chan chainhash.Hash)
	results := make(chan fetchResult, len(txIDs))
	workers := utilMath.MinInt(maxConcurrentFetches, len(txIDs))
	for i := 0; i < workers; i++ {
		spawn(func() {
			for txID := range pending {
				txID := txID
				prevTx, err := fetcher.FetchTransaction(ctx, &txID, tx.Testnet)
				results <- fetchResult{txID: txID, tx: prevTx, err: err}
			}
		})
	}
	spawn(func() {
		defer close(pending)
		for _, txID := range txIDs {
			select {
			case pending <- txID:
			case <-ctx.Done():
				return
			}
		}
	})

	prevTxs := make(map[chainhash.Hash]*wire.MsgTx, len(txIDs))
	for range txIDs {
		var result fetchResult
		select {
		case result = <-results:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if result.err != nil {
			return nil, result.err
		}
		prevTxs[result.txID] = result.tx
	}
	log.Debugf("Fetched %d transactions spent by %s", len(prevTxs), tx.TxID())
	return prevTxs, nil
}
