// Package journal records in-flight copy+remove moves in an embedded
// BadgerDB database.
//
// The two-step move is not atomic: a crash between the copy and the source
// removal leaves both copies present. The journal makes that gap
// observable: a record is written before the copy and cleared after the
// remove, so any record still present at startup names an orphaned
// destination to inspect.
package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// Record describes one in-flight (or orphaned) move.
type Record struct {
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	StartedAt   time.Time `json:"started_at"`
}

// Journal is a BadgerDB-backed transfer journal.
//
// BadgerDB provides WAL-based crash recovery, so a record written before
// the copy survives a process crash at any later point of the move.
type Journal struct {
	db *badger.DB
}

// Open opens (or creates) the journal database at path.
func Open(path string) (*Journal, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open journal database: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close releases the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Begin records an intent to move src to dst and returns the record id.
func (j *Journal) Begin(ctx context.Context, src, dst string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rec := Record{
		ID:          uuid.NewString(),
		Source:      src,
		Destination: dst,
		StartedAt:   time.Now().UTC(),
	}
	value, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("encode journal record: %w", err)
	}

	err = j.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(rec.ID), value)
	})
	if err != nil {
		return "", fmt.Errorf("write journal record: %w", err)
	}
	return rec.ID, nil
}

// Commit clears the record once the move's source has been removed.
func (j *Journal) Commit(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := j.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(id))
	})
	if err != nil {
		return fmt.Errorf("clear journal record: %w", err)
	}
	return nil
}

// Pending returns every record that was never committed; after a crash
// these name destinations whose sources may still exist.
func (j *Journal) Pending(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var pending []Record
	err := j.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				var rec Record
				if err := json.Unmarshal(value, &rec); err != nil {
					return fmt.Errorf("decode journal record: %w", err)
				}
				pending = append(pending, rec)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pending, nil
}
