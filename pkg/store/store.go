// Package store persists file metadata records in a single SQLite file that
// is itself committed to the repository it describes.
//
// The store keeps an in-memory read/write-through cache in front of the
// database. The cache only ever mirrors rows already read or written during
// the current process lifetime; the database stays authoritative. All writes
// go through one open transaction, so durability is exactly the Commit
// boundary: nothing hits the file until Commit (or Close) is called.
package store

import (
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Store is a durable keyed collection of metadata records.
//
// Store is not safe for concurrent use. Hook invocations are short-lived
// single-threaded processes, and simultaneous invocations are out of scope.
type Store struct {
	db   *gorm.DB
	tx   *gorm.DB
	path string

	cache map[string]Record

	// mutations counts durable writes (upserts and deletes). Field-identical
	// puts do not increment it, which is what makes a second capture pass
	// over an unchanged tree observable as a no-op.
	mutations int64
}

// Open opens or initializes the store file at path, creating the schema on
// first use. The returned store holds an open write transaction; callers must
// Close it on every exit path or buffered writes are lost.
func Open(path string) (*Store, error) {
	// DELETE journal mode instead of WAL: the store file gets committed to
	// the repository, and WAL would leave -wal/-shm sidecars next to it.
	dsn := path + "?_pragma=journal_mode(DELETE)&_pragma=busy_timeout(5000)"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, path, err)
	}

	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("%w: migrating %s: %v", ErrUnavailable, path, err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, path, tx.Error)
	}

	return &Store{
		db:    db,
		tx:    tx,
		path:  path,
		cache: make(map[string]Record),
	}, nil
}

// Path returns the store file location.
func (s *Store) Path() string {
	return s.path
}

// Get returns the record for path. A cache hit returns immediately; a miss
// queries the database and populates the cache. Returns ErrNotFound when no
// record exists.
func (s *Store) Get(path string) (Record, error) {
	if rec, ok := s.cache[path]; ok {
		return rec, nil
	}

	var rec Record
	if err := s.tx.First(&rec, "path = ?", path).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Record{}, fmt.Errorf("%q: %w", path, ErrNotFound)
		}
		return Record{}, fmt.Errorf("reading record for %q: %w", path, err)
	}

	s.cache[path] = rec
	return rec, nil
}

// Put upserts the record for path. When an existing record is field-identical
// the call is a no-op and no durable write happens.
func (s *Store) Put(path string, rec Record) error {
	rec.Path = path

	if existing, err := s.Get(path); err == nil {
		if existing == rec {
			return nil
		}
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	if err := s.tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error; err != nil {
		return fmt.Errorf("writing record for %q: %w", path, err)
	}

	s.cache[path] = rec
	s.mutations++
	return nil
}

// Delete removes the record for path. Deleting an absent path is not an error.
func (s *Store) Delete(path string) error {
	res := s.tx.Delete(&Record{}, "path = ?", path)
	if res.Error != nil {
		return fmt.Errorf("deleting record for %q: %w", path, res.Error)
	}

	delete(s.cache, path)
	if res.RowsAffected > 0 {
		s.mutations++
	}
	return nil
}

// Contains reports whether a record exists for path.
func (s *Store) Contains(path string) bool {
	_, err := s.Get(path)
	return err == nil
}

// Count returns the durable record count. It always queries the database,
// independent of cache state.
func (s *Store) Count() (int64, error) {
	var n int64
	if err := s.tx.Model(&Record{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}

// ForEach calls fn for every durable record, populating the cache as it goes.
// Iteration order is unspecified. A non-nil error from fn stops iteration and
// is returned. Each call re-runs the underlying query, so iteration is
// restartable.
func (s *Store) ForEach(fn func(Record) error) error {
	rows, err := s.tx.Model(&Record{}).Rows()
	if err != nil {
		return fmt.Errorf("iterating records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec Record
		if err := s.tx.ScanRows(rows, &rec); err != nil {
			return fmt.Errorf("scanning record: %w", err)
		}
		s.cache[rec.Path] = rec
		if err := fn(rec); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Mutations returns the number of durable writes performed so far. Useful for
// verifying that an unchanged capture pass was a no-op.
func (s *Store) Mutations() int64 {
	return s.mutations
}

// Commit flushes all outstanding writes to the store file and opens a fresh
// transaction for subsequent work.
func (s *Store) Commit() error {
	if err := s.tx.Commit().Error; err != nil {
		return fmt.Errorf("committing store: %w", err)
	}

	s.tx = s.db.Begin()
	if s.tx.Error != nil {
		return fmt.Errorf("reopening store transaction: %w", s.tx.Error)
	}
	return nil
}

// Close commits outstanding writes and releases the database handle. It is
// safe to call after an earlier Commit; an empty transaction commits cleanly.
func (s *Store) Close() error {
	commitErr := s.tx.Commit().Error

	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("closing store: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("closing store: %w", err)
	}

	if commitErr != nil && !errors.Is(commitErr, gorm.ErrInvalidTransaction) {
		return fmt.Errorf("committing store on close: %w", commitErr)
	}
	return nil
}
