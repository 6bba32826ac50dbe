//go:generate go run go.uber.org/mock/mockgen -source=catalog.go -destination=../mocks/mock_catalog.go -package=mocks
package repositories

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"

	"lan-collab/domain"
	"lan-collab/errors"
)

const catalogPrefix = "file:"

type ICatalog interface {
	Store(record domain.FileRecord) error
	Get(id string) (domain.FileRecord, error)
	List() ([]domain.FileRecord, error)
}

// FileCatalog keeps FileRecords in an in-memory Badger instance. The
// catalog deliberately does not survive a restart; the uploaded bytes on
// disk become unreachable once their records are gone.
type FileCatalog struct {
	db  *badger.DB
	log *slog.Logger
}

func NewFileCatalog(db *badger.DB, log *slog.Logger) FileCatalog {
	return FileCatalog{db: db, log: log}
}

func (c FileCatalog) Store(record domain.FileRecord) error {
	bytes, err := json.Marshal(toDiskRecord(record))
	if err != nil {
		return err
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(catalogPrefix+record.ID), bytes)
	})
}

func (c FileCatalog) Get(id string) (domain.FileRecord, error) {
	var disk diskRecord
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(catalogPrefix + id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &disk)
		})
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return domain.FileRecord{}, errors.ErrFileNotFound
	}
	if err != nil {
		return domain.FileRecord{}, err
	}
	return fromDiskRecord(disk), nil
}

// List returns every record ordered by upload time.
func (c FileCatalog) List() ([]domain.FileRecord, error) {
	var records []domain.FileRecord
	err := c.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Prefix = []byte(catalogPrefix)
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var disk diskRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &disk)
			})
			if err != nil {
				return err
			}
			records = append(records, fromDiskRecord(disk))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].At.Before(records[j].At)
	})
	return records, nil
}

// diskRecord is the stored shape. Unlike the wire form it keeps the
// storage path, which is never exposed to clients.
type diskRecord struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Path     string `json:"path"`
	Uploader string `json:"uploader"`
	At       int64  `json:"at"`
}

func toDiskRecord(r domain.FileRecord) diskRecord {
	return diskRecord{
		ID:       r.ID,
		Filename: r.Filename,
		Size:     r.Size,
		Path:     r.Path,
		Uploader: r.Uploader,
		At:       r.At.UnixNano(),
	}
}

func fromDiskRecord(d diskRecord) domain.FileRecord {
	return domain.FileRecord{
		ID:       d.ID,
		Filename: d.Filename,
		Size:     d.Size,
		Path:     d.Path,
		Uploader: d.Uploader,
		At:       time.Unix(0, d.At),
	}
}
