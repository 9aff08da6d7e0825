package bboltdb

import (
	"time"

	"github.com/pkg/errors"
	"github.com/satoshilab/scriptcore/infrastructure/db/database"
	"github.com/satoshilab/scriptcore/infrastructure/logger"
	bolt "go.etcd.io/bbolt"
)

var log = logger.RegisterSubSystem("TXDB")

// rootBucket holds every key. Bucket paths are already part of the full
// keys, so a single bolt bucket is enough.
var rootBucket = []byte("scriptcore")

const openTimeout = time.Second

// BoltDB defines a thin wrapper around a bbolt database file.
type BoltDB struct {
	db *bolt.DB
}

// NewBoltDB opens the bbolt database file at path, creating it if needed.
// Opening fails after a second if another process holds the file.
func NewBoltDB(path string) (*BoltDB, error) {
	onEnd := logger.LogAndMeasureExecutionTime(log, "NewBoltDB")
	defer onEnd()

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bbolt database %s", path)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(rootBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "failed to create bucket %s", rootBucket)
	}
	return &BoltDB{db: db}, nil
}

// Close closes the database file.
func (b *BoltDB) Close() error {
	return errors.WithStack(b.db.Close())
}

// Put sets the value for the given key. It overwrites
// any previous value for that key.
func (b *BoltDB) Put(key *database.Key, value []byte) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(rootBucket).Put(key.FullKey(), value)
	})
	return errors.WithStack(err)
}

// Get gets the value for the given key. It returns
// ErrNotFound if the given key does not exist.
func (b *BoltDB) Get(key *database.Key) ([]byte, error) {
	var value []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(rootBucket).Get(key.FullKey())
		if v == nil {
			return errors.Wrapf(database.ErrNotFound, "key %s not found", key)
		}
		// Values are only valid while the transaction is open.
		value = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Has returns true if the database does contains the
// given key.
func (b *BoltDB) Has(key *database.Key) (bool, error) {
	var exists bool
	err := b.db.View(func(tx *bolt.Tx) error {
		exists = tx.Bucket(rootBucket).Get(key.FullKey()) != nil
		return nil
	})
	return exists, errors.WithStack(err)
}

// Delete deletes the value for the given key. Will not
// return an error if the key doesn't exist.
func (b *BoltDB) Delete(key *database.Key) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(rootBucket).Delete(key.FullKey())
	})
	return errors.WithStack(err)
}
