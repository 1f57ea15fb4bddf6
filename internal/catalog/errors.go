package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCatalogLoad matches every *LoadError via errors.Is.
var ErrCatalogLoad = errors.New("catalog load failed")

// LoadError reports an unreadable or malformed catalog. No partial catalog
// is ever returned alongside it.
type LoadError struct {
	Path    string
	Missing []string // required columns not found in the header
	Err     error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	b.WriteString("catalog")
	if e.Path != "" {
		fmt.Fprintf(&b, " %s", e.Path)
	}
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, ": missing required columns: %s", strings.Join(e.Missing, ", "))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool { return target == ErrCatalogLoad }
