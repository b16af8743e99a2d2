// Package localstore is a file-backed persistence driver. Each collection
// lives in one JSON document on disk, keyed by a fixed namespace, and every
// mutation rewrites the whole document. It backs the zero-config deployment
// where no database is available and doubles as the change feed source:
// subscribers receive a full snapshot of a collection after each mutation.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Collection keys. The names are part of the on-disk format; existing data
// directories depend on them.
const (
	keyAuth      = "mbb_auth"
	keyBusiness  = "mbb_business"
	keyProducts  = "mbb_products"
	keyCustomers = "mbb_customers"
	keyInvoices  = "mbb_invoices"
	keyNextInv   = "mbb_nextInv"
)

// Store serializes all access to the data directory. One mutex guards every
// collection; contention is acceptable at this store's scale and makes the
// read-modify-write cycles of the repos atomic with respect to each other.
type Store struct {
	dir string

	mu   sync.Mutex
	subs map[string][]*subscriber
}

// New opens (creating if needed) a store rooted at dir.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("localstore: creating data dir: %w", err)
	}
	return &Store{
		dir:  dir,
		subs: make(map[string][]*subscriber),
	}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// read unmarshals the collection at key into v. A missing file is not an
// error; v keeps its zero value.
func (s *Store) read(key string, v any) error {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("localstore: reading %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("localstore: decoding %s: %w", key, err)
	}
	return nil
}

// write replaces the collection at key. The document is written to a temp
// file and renamed so a crash never leaves a half-written collection.
func (s *Store) write(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("localstore: encoding %s: %w", key, err)
	}

	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("localstore: writing %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("localstore: replacing %s: %w", key, err)
	}
	return nil
}
