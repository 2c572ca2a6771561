package db

// Env (spec ssec 4.5, "A single environment exposes named sub-DBs") wraps
// one bbolt-backed, memory-mapped B+tree file. bbolt gives single-writer /
// multi-reader transactional semantics directly, matching the spec's
// LMDB-shaped concurrency model without needing a separate coordination
// layer (spec ssec "Concurrency & Resource Model").

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"
)

const (
	dirPerm  os.FileMode = 0o700
	filePerm os.FileMode = 0o600
)

// discardLogger is the default logger for any Env opened without one
// explicitly supplied — quiet until a caller opts in.
var discardLogger = &logrus.Logger{Out: io.Discard, Level: logrus.PanicLevel}

type Env struct {
	db     *bolt.DB
	path   string
	logger *logrus.Logger
}

// Open creates the parent directory if needed and opens (or creates) the
// bbolt file at path, matching the teacher's atomic create-else-open
// pattern for on-disk state.
func Open(path string, logger *logrus.Logger) (*Env, error) {
	if logger == nil {
		logger = discardLogger
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return nil, fmt.Errorf("db: mkdir %s: %w", dir, err)
		}
	}
	bdb, err := bolt.Open(path, filePerm, nil)
	if err != nil {
		return nil, fmt.Errorf("db: open %s: %w", path, err)
	}
	logger.Infof("db: opened environment at %s", path)
	return &Env{db: bdb, path: path, logger: logger}, nil
}

// OpenTemp opens an ephemeral environment under the OS temp directory,
// named "<prefix><uuid>.db" per the on-disk layout's TEMP_PREFIX convention
// for ephemeral instances (e.g. config.TempPrefixDB, config.TempPrefixKS).
func OpenTemp(prefix string, logger *logrus.Logger) (*Env, error) {
	name := prefix + uuid.New().String() + ".db"
	return Open(filepath.Join(os.TempDir(), name), logger)
}

// Close releases the mmap and file handle.
func (e *Env) Close() error {
	e.logger.Infof("db: closing environment at %s", e.path)
	return e.db.Close()
}

// Logger returns e's configured logger.
func (e *Env) Logger() *logrus.Logger { return e.logger }

// Path returns the backing file path.
func (e *Env) Path() string { return e.path }

func (e *Env) createBucket(name string) error {
	return e.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(name))
		return err
	})
}
