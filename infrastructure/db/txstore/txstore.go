package txstore

import (
	"bytes"
	"context"

	"github.com/pkg/errors"
	"github.com/satoshilab/scriptcore/infrastructure/db/database"
	"github.com/satoshilab/scriptcore/util/chainhash"
	"github.com/satoshilab/scriptcore/wire"
)

var (
	txsBucket     = database.MakeBucket([]byte("txs"))
	mainnetBucket = txsBucket.Bucket([]byte("mainnet"))
	testnetBucket = txsBucket.Bucket([]byte("testnet"))
)

// ErrTxNotFound is returned when a transaction is not in the store.
var ErrTxNotFound = errors.New("transaction not found")

// TxStore keeps serialized transactions by id, apart for each network.
type TxStore struct {
	db database.Database
}

// New returns a TxStore kept in db.
func New(db database.Database) *TxStore {
	return &TxStore{db: db}
}

func txKey(txID *chainhash.Hash, testnet bool) *database.Key {
	if testnet {
		return testnetBucket.Key(txID[:])
	}
	return mainnetBucket.Key(txID[:])
}

// Put stores tx under its id on the network given by tx.Testnet.
func (s *TxStore) Put(tx *wire.MsgTx) error {
	serialized, err := tx.Bytes()
	if err != nil {
		return err
	}
	txID := tx.TxID()
	log.Tracef("Storing transaction %s", txID)
	return s.db.Put(txKey(&txID, tx.Testnet), serialized)
}

// Get returns the transaction with the given id, or ErrTxNotFound.
func (s *TxStore) Get(txID *chainhash.Hash, testnet bool) (*wire.MsgTx, error) {
	serialized, err := s.db.Get(txKey(txID, testnet))
	if database.IsNotFoundError(err) {
		return nil, errors.Wrapf(ErrTxNotFound, "transaction %s", txID)
	}
	if err != nil {
		return nil, err
	}

	tx := &wire.MsgTx{Testnet: testnet}
	if err := tx.Deserialize(bytes.NewReader(serialized)); err != nil {
		return nil, errors.Wrapf(err, "stored transaction %s is corrupt", txID)
	}
	return tx, nil
}

// Has returns whether the transaction with the given id is stored.
func (s *TxStore) Has(txID *chainhash.Hash, testnet bool) (bool, error) {
	return s.db.Has(txKey(txID, testnet))
}

// Delete removes the transaction with the given id.
func (s *TxStore) Delete(txID *chainhash.Hash, testnet bool) error {
	return s.db.Delete(txKey(txID, testnet))
}

// Close closes the underlying database.
func (s *TxStore) Close() error {
	return s.db.Close()
}

// FetchTransaction implements txscript.TxFetcher over the stored
// transactions only.
func (s *TxStore) FetchTransaction(_ context.Context, txID *chainhash.Hash, testnet bool) (*wire.MsgTx, error) {
	return s.Get(txID, testnet)
}
