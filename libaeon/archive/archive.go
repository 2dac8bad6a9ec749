// Package archive persists analysis reports in a badger key-value store.
package archive

import (
	"runtime"

	"github.com/dgraph-io/badger/v3"
	"github.com/gogo/protobuf/proto"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/2x3systems/goaeon/goaeon"
)

/***

Archive db format:

	gRunPrefix, RunID (16 bytes)  => ReportRecord (protobuf)

Keys sort by run UUID, so List() order is stable but not chronological.

***/

var (
	gRunPrefix = []byte{0x00, 'r'}
)

// Opts specifies how to open an Archive.
type Opts struct {
	DbPathName string // omit for an in-memory archive
	ReadOnly   bool
}

// Archive stores ReportRecords keyed by run ID.
type Archive struct {
	db *badger.DB
}

// Open opens (or creates) the archive at opts.DbPathName.
func Open(opts Opts) (*Archive, error) {
	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(goaeon.ErrBadArchive, "DbPathName must be specified for a read-only archive")
		}
		dbOpts.InMemory = true
	}

	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, errors.Wrap(err, "opening archive")
	}
	return &Archive{db: db}, nil
}

func (ar *Archive) Close() error {
	if ar.db == nil {
		return nil
	}
	err := ar.db.Close()
	ar.db = nil
	return err
}

func formRunKey(runID string) ([]byte, error) {
	id, err := uuid.Parse(runID)
	if err != nil {
		return nil, errors.Wrapf(goaeon.ErrBadArchive, "bad run ID %q", runID)
	}
	key := append([]byte{}, gRunPrefix...)
	return append(key, id[:]...), nil
}

// Put stores rec under rec.RunId, replacing any previous record.
func (ar *Archive) Put(rec *ReportRecord) error {
	key, err := formRunKey(rec.RunId)
	if err != nil {
		return err
	}
	buf, err := proto.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, "encoding report")
	}
	return ar.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, buf)
	})
}

// Get returns the record for runID, or ErrRunNotFound.
func (ar *Archive) Get(runID string) (*ReportRecord, error) {
	key, err := formRunKey(runID)
	if err != nil {
		return nil, err
	}

	rec := &ReportRecord{}
	err = ar.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return errors.Wrapf(goaeon.ErrRunNotFound, "run %s", runID)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return proto.Unmarshal(val, rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns every archived record in key order.
func (ar *Archive) List() ([]*ReportRecord, error) {
	var out []*ReportRecord

	err := ar.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(gRunPrefix); it.ValidForPrefix(gRunPrefix); it.Next() {
			rec := &ReportRecord{}
			err := it.Item().Value(func(val []byte) error {
				return proto.Unmarshal(val, rec)
			})
			if err != nil {
				return errors.Wrapf(goaeon.ErrBadArchive, "decoding %x: %v", it.Item().Key(), err)
			}
			out = append(out, rec)
		}
		return nil
	})
	return out, err
}
