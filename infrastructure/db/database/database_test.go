package database_test

import (
	"bytes"
	"testing"

	"github.com/satoshilab/scriptcore/infrastructure/db/database"
)

func TestDatabasePut(t *testing.T) {
	testForAllDatabaseTypes(t, "TestDatabasePut", testDatabasePut)
}

func testDatabasePut(t *testing.T, db database.Database, testName string) {
	// Put value1 into the database
	key := database.MakeBucket(nil).Key([]byte("key"))
	value1 := []byte("value1")
	err := db.Put(key, value1)
	if err != nil {
		t.Fatalf("%s: Put "+
			"unexpectedly failed: %s", testName, err)
	}

	// Make sure that the returned value is value1
	returnedValue, err := db.Get(key)
	if err != nil {
		t.Fatalf("%s: Get "+
			"unexpectedly failed: %s", testName, err)
	}
	if !bytes.Equal(returnedValue, value1) {
		t.Fatalf("%s: Get "+
			"returned wrong value. Want: %s, got: %s",
			testName, string(value1), string(returnedValue))
	}

	// Put value2 into the database with the same key
	value2 := []byte("value2")
	err = db.Put(key, value2)
	if err != nil {
		t.Fatalf("%s: Put "+
			"unexpectedly failed: %s", testName, err)
	}

	// Make sure that the returned value is value2
	returnedValue, err = db.Get(key)
	if err != nil {
		t.Fatalf("%s: Get "+
			"unexpectedly failed: %s", testName, err)
	}
	if !bytes.Equal(returnedValue, value2) {
		t.Fatalf("%s: Get "+
			"returned wrong value. Want: %s, got: %s",
			testName, string(value2), string(returnedValue))
	}
}

func TestDatabaseGet(t *testing.T) {
	testForAllDatabaseTypes(t, "TestDatabaseGet", testDatabaseGet)
}

func testDatabaseGet(t *testing.T, db database.Database, testName string) {
	entries := populateDatabaseForTest(t, db, testName)
	for _, entry := range entries {
		returnedValue, err := db.Get(entry.key)
		if err != nil {
			t.Fatalf("%s: Get "+
				"unexpectedly failed: %s", testName, err)
		}
		if !bytes.Equal(returnedValue, entry.value) {
			t.Fatalf("%s: Get "+
				"returned wrong value for key %s. Want: %s, got: %s",
				testName, entry.key, string(entry.value), string(returnedValue))
		}
	}

	// Make sure that Get returns ErrNotFound for a key that
	// does not exist
	nonExistentKey := database.MakeBucket(nil).Key([]byte("doesn't exist"))
	_, err := db.Get(nonExistentKey)
	if err == nil {
		t.Fatalf("%s: Get "+
			"unexpectedly succeeded", testName)
	}
	if !database.IsNotFoundError(err) {
		t.Fatalf("%s: Get "+
			"returned wrong error: %s", testName, err)
	}
}

func TestDatabaseHas(t *testing.T) {
	testForAllDatabaseTypes(t, "TestDatabaseHas", testDatabaseHas)
}

func testDatabaseHas(t *testing.T, db database.Database, testName string) {
	// Put a value into the database
	key := database.MakeBucket(nil).Key([]byte("key"))
	err := db.Put(key, []byte("value"))
	if err != nil {
		t.Fatalf("%s: Put "+
			"unexpectedly failed: %s", testName, err)
	}

	// Make sure that Has returns true for the value we just put
	exists, err := db.Has(key)
	if err != nil {
		t.Fatalf("%s: Has "+
			"unexpectedly failed: %s", testName, err)
	}
	if !exists {
		t.Fatalf("%s: Has "+
			"unexpectedly returned that the value does not exist", testName)
	}

	// Make sure that Has returns false for a non-existent value
	nonExistentKey := database.MakeBucket(nil).Key([]byte("doesn't exist"))
	exists, err = db.Has(nonExistentKey)
	if err != nil {
		t.Fatalf("%s: Has "+
			"unexpectedly failed: %s", testName, err)
	}
	if exists {
		t.Fatalf("%s: Has "+
			"unexpectedly returned that the value exists", testName)
	}
}

func TestDatabaseDelete(t *testing.T) {
	testForAllDatabaseTypes(t, "TestDatabaseDelete", testDatabaseDelete)
}

func testDatabaseDelete(t *testing.T, db database.Database, testName string) {
	// Put a value into the database
	key := database.MakeBucket(nil).Key([]byte("key"))
	err := db.Put(key, []byte("value"))
	if err != nil {
		t.Fatalf("%s: Put "+
			"unexpectedly failed: %s", testName, err)
	}

	// Delete the value
	err = db.Delete(key)
	if err != nil {
		t.Fatalf("%s: Delete "+
			"unexpectedly failed: %s", testName, err)
	}

	// Make sure that Has returns false for the deleted value
	exists, err := db.Has(key)
	if err != nil {
		t.Fatalf("%s: Has "+
			"unexpectedly failed: %s", testName, err)
	}
	if exists {
		t.Fatalf("%s: Has "+
			"returned that the value exists after deletion", testName)
	}

	// Deleting a missing key is not an error
	err = db.Delete(key)
	if err != nil {
		t.Fatalf("%s: Delete of a missing key "+
			"unexpectedly failed: %s", testName, err)
	}
}

func TestBucketKeys(t *testing.T) {
	bucket := database.MakeBucket([]byte("txs")).Bucket([]byte("testnet"))
	key := bucket.Key([]byte("id"))

	if got, want := string(bucket.Path()), "txs/testnet/"; got != want {
		t.Errorf("Path: got %q, want %q", got, want)
	}
	if got, want := key.String(), "txs/testnet/id"; got != want {
		t.Errorf("String: got %q, want %q", got, want)
	}
	if got := string(key.Key()); got != "id" {
		t.Errorf("Key: got %q, want %q", got, "id")
	}
}
