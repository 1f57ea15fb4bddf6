package catalog

import (
	"errors"
	"sync/atomic"

	"order-intake/internal/fileio"
)

// Load reads a .csv/.xls/.xlsx catalog from disk and builds an Index.
func Load(path string, headerRow int) (*Index, error) {
	t, err := fileio.ReadFile(path, headerRow)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	idx, err := BuildTable(t)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	return idx, nil
}

// Store publishes the current Index. Readers get a snapshot that stays
// unchanged even if a reload swaps in a new one.
type Store struct {
	cur atomic.Pointer[Index]
}

// NewStore returns a Store holding idx (which may be nil).
func NewStore(idx *Index) *Store {
	s := &Store{}
	if idx != nil {
		s.cur.Store(idx)
	}
	return s
}

// Current returns the published Index or nil.
func (s *Store) Current() *Index { return s.cur.Load() }

// Reload loads path and publishes the result. On error the previous Index
// stays in place.
func (s *Store) Reload(path string, headerRow int) (*Index, error) {
	idx, err := Load(path, headerRow)
	if err != nil {
		return nil, err
	}
	s.cur.Store(idx)
	return idx, nil
}
