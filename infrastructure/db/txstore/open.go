package txstore

import (
	"github.com/pkg/errors"
	"github.com/satoshilab/scriptcore/infrastructure/db/database"
	"github.com/satoshilab/scriptcore/infrastructure/db/database/bboltdb"
	"github.com/satoshilab/scriptcore/infrastructure/db/database/ldb"
)

// Supported store types.
const (
	TypeMemory  = "memory"
	TypeLevelDB = "leveldb"
	TypeBolt    = "bbolt"
)

const defaultCacheSizeMiB = 8

// OpenDatabase opens the database of the given type. path is the leveldb
// directory or the bbolt file, and is ignored for the memory type.
func OpenDatabase(storeType, path string) (database.Database, error) {
	switch storeType {
	case TypeMemory:
		return ldb.NewMemoryLevelDB()
	case TypeLevelDB:
		if path == "" {
			return nil, errors.New("a path is required for a leveldb store")
		}
		return ldb.NewLevelDB(path, defaultCacheSizeMiB)
	case TypeBolt:
		if path == "" {
			return nil, errors.New("a path is required for a bbolt store")
		}
		return bboltdb.NewBoltDB(path)
	default:
		return nil, errors.Errorf("unknown store type %q, expected one of %s, %s or %s",
			storeType, TypeMemory, TypeLevelDB, TypeBolt)
	}
}
