// Package pbxid mints and tracks the 24-character identifiers that name every
// object in an Xcode project manifest.
package pbxid

import (
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Length is the number of hex characters in an identifier.
const Length = 24

var (
	// ErrUnallocated is returned when a name is looked up that was never allocated.
	ErrUnallocated = errors.New("identifier not allocated")
	// ErrDuplicateName is returned when the same logical name is allocated twice.
	ErrDuplicateName = errors.New("name already allocated")
	// ErrFrozen is returned when allocating after the table has been frozen.
	ErrFrozen = errors.New("identifier table is frozen")
	// ErrCollision is returned when the source produces an id that is already in use.
	ErrCollision = errors.New("identifier collision")
)

// Source produces a fresh identifier on each call.
type Source func() string

// New returns a fresh uppercase hex identifier taken from a random 128-bit UUID.
func New() string {
	u := uuid.New()
	return strings.ToUpper(hex.EncodeToString(u[:]))[:Length]
}

// Valid reports whether s has the shape of an identifier.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}

// Table maps stable logical names (e.g. "file:Views/JournalView.swift") to
// identifiers. Allocation happens once per name; after Freeze the table is
// read-only and Lookup never mints.
type Table struct {
	src    Source
	byName map[string]string
	used   map[string]string // id -> name
	frozen bool
}

// NewTable creates an empty table drawing identifiers from src.
// A nil src uses New.
func NewTable(src Source) *Table {
	if src == nil {
		src = New
	}
	return &Table{
		src:    src,
		byName: make(map[string]string),
		used:   make(map[string]string),
	}
}

// Allocate mints the identifier for name.
func (t *Table) Allocate(name string) (string, error) {
	if t.frozen {
		return "", fmt.Errorf("allocate %q: %w", name, ErrFrozen)
	}
	if _, ok := t.byName[name]; ok {
		return "", fmt.Errorf("allocate %q: %w", name, ErrDuplicateName)
	}
	id := t.src()
	if owner, ok := t.used[id]; ok {
		return "", fmt.Errorf("allocate %q: %w with %q (%s)", name, ErrCollision, owner, id)
	}
	t.byName[name] = id
	t.used[id] = name
	return id, nil
}

// AllocateAll allocates every name in order and stops at the first failure.
func (t *Table) AllocateAll(names ...string) error {
	for _, n := range names {
		if _, err := t.Allocate(n); err != nil {
			return err
		}
	}
	return nil
}

// Freeze ends the allocation pass.
func (t *Table) Freeze() { t.frozen = true }

// Frozen reports whether Freeze has been called.
func (t *Table) Frozen() bool { return t.frozen }

// Lookup returns the identifier previously allocated for name.
func (t *Table) Lookup(name string) (string, error) {
	id, ok := t.byName[name]
	if !ok {
		return "", fmt.Errorf("lookup %q: %w", name, ErrUnallocated)
	}
	return id, nil
}

// NameOf returns the logical name that owns id.
func (t *Table) NameOf(id string) (string, bool) {
	n, ok := t.used[id]
	return n, ok
}

// Len returns the number of allocated names.
func (t *Table) Len() int { return len(t.byName) }

// Names returns every allocated name, sorted.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.byName))
	for n := range t.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
