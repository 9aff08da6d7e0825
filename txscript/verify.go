package txscript

import (
	"context"

	"github.com/pkg/errors"
	"github.com/satoshilab/scriptcore/infrastructure/logger"
	"github.com/satoshilab/scriptcore/util/chainhash"
	"github.com/satoshilab/scriptcore/wire"
)

// TxFetcher looks up previously confirmed transactions by id. testnet
// selects the network the transaction is looked up on.
type TxFetcher interface {
	FetchTransaction(ctx context.Context, txID *chainhash.Hash, testnet bool) (*wire.MsgTx, error)
}

// ErrCoinbaseInput is returned when verifying or signing the input of a
// coinbase transaction, which spends no previous output.
var ErrCoinbaseInput = errors.New("coinbase transactions spend no previous output")

// previousOutput returns the output spent by input idx of tx.
func previousOutput(ctx context.Context, tx *wire.MsgTx, idx int, fetcher TxFetcher) (*wire.TxOut, error) {
	if idx < 0 || idx >= len(tx.TxIn) {
		return nil, errors.Errorf("transaction input index %d is not in [0, %d)", idx, len(tx.TxIn))
	}
	if tx.IsCoinBase() {
		return nil, ErrCoinbaseInput
	}

	outpoint := tx.TxIn[idx].PreviousOutpoint
	prevTx, err := fetcher.FetchTransaction(ctx, &outpoint.TxID, tx.Testnet)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch the transaction spent by %s", outpoint)
	}
	if int(outpoint.Index) >= len(prevTx.TxOut) {
		return nil, errors.Errorf("outpoint %s refers to a missing output, the transaction has %d",
			outpoint, len(prevTx.TxOut))
	}
	return prevTx.TxOut[outpoint.Index], nil
}

// Fee returns the sum of the values of the outputs spent by tx minus the sum
// of its own output values. A negative fee means tx spends more than it has.
func Fee(ctx context.Context, tx *wire.MsgTx, fetcher TxFetcher) (int64, error) {
	var inputSum, outputSum int64
	for idx := range tx.TxIn {
		prevOut, err := previousOutput(ctx, tx, idx, fetcher)
		if err != nil {
			return 0, err
		}
		inputSum += int64(prevOut.Value)
	}
	for _, txOut := range tx.TxOut {
		outputSum += int64(txOut.Value)
	}
	return inputSum - outputSum, nil
}

// VerifyInput evaluates the signature script of input idx of tx followed by
// the locking script of the output it spends. A script that does not
// evaluate to true yields false without an error. Errors are reserved for
// failures to look up or parse the scripts.
func VerifyInput(ctx context.Context, tx *wire.MsgTx, idx int, fetcher TxFetcher) (bool, error) {
	return verifyInput(ctx, tx, idx, fetcher, 0)
}

func verifyInput(ctx context.Context, tx *wire.MsgTx, idx int, fetcher TxFetcher, flags ScriptFlags) (bool, error) {
	prevOut, err := previousOutput(ctx, tx, idx, fetcher)
	if err != nil {
		return false, err
	}
	scriptPubKey, err := ParseRawScript(prevOut.ScriptPubKey)
	if err != nil {
		return false, errors.Wrapf(err, "failed to parse the locking script of input %d", idx)
	}
	sigScript, err := ParseRawScript(tx.TxIn[idx].SignatureScript)
	if err != nil {
		return false, errors.Wrapf(err, "failed to parse the signature script of input %d", idx)
	}

	z, err := CalcSignatureHash(tx, idx, scriptPubKey, SigHashAll)
	if err != nil {
		return false, err
	}

	vm, err := NewEngine(sigScript, scriptPubKey, z, flags)
	if err == nil {
		err = vm.Execute()
	}
	if err != nil {
		log.Debugf("Input %d of transaction %s failed verification: %s", idx, tx.TxID(), err)
		return false, nil
	}
	return true, nil
}

// VerifyTransaction reports whether tx pays a non-negative fee and every one
// of its inputs verifies.
func VerifyTransaction(ctx context.Context, tx *wire.MsgTx, fetcher TxFetcher) (bool, error) {
	onEnd := logger.LogAndMeasureExecutionTime(log, "VerifyTransaction")
	defer onEnd()

	fee, err := Fee(ctx, tx, fetcher)
	if err != nil {
		return false, err
	}
	if fee < 0 {
		log.Debugf("Transaction %s pays a negative fee of %d", tx.TxID(), fee)
		return false, nil
	}

	for idx := range tx.TxIn {
		ok, err := VerifyInput(ctx, tx, idx, fetcher)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}
