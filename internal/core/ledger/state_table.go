package ledger

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/LeJamon/goBondedMarkets/internal/core/ledger/keylet"
	"github.com/LeJamon/goBondedMarkets/internal/storage/database"
)

// Action represents the type of modification to a ledger entry
type Action int

const (
	// ActionCache means the entry was read but not modified
	ActionCache Action = iota
	// ActionInsert means a new entry was created
	ActionInsert
	// ActionModify means an existing entry was modified
	ActionModify
	// ActionErase means an entry was deleted
	ActionErase
)

func (a Action) String() string {
	switch a {
	case ActionCache:
		return "cache"
	case ActionInsert:
		return "created"
	case ActionModify:
		return "modified"
	case ActionErase:
		return "deleted"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// TrackedEntry represents a ledger entry being tracked for changes
type TrackedEntry struct {
	Action   Action
	Original []byte // nil for inserts
	Current  []byte
}

// AffectedNode describes one committed change.
type AffectedNode struct {
	Keylet   keylet.Keylet
	Action   Action
	Original []byte
	Current  []byte
}

// ApplyStateTable buffers reads and writes over a Store so a unit of work
// can be committed as one batch or discarded without side effects.
type ApplyStateTable struct {
	ctx   context.Context
	base  *Store
	items map[keylet.Keylet]*TrackedEntry
}

// NewApplyStateTable creates a sandbox over base.
func NewApplyStateTable(ctx context.Context, base *Store) *ApplyStateTable {
	return &ApplyStateTable{
		ctx:   ctx,
		base:  base,
		items: make(map[keylet.Keylet]*TrackedEntry),
	}
}

// Read returns the current bytes for k, or nil if absent.
func (t *ApplyStateTable) Read(k keylet.Keylet) ([]byte, error) {
	if entry, exists := t.items[k]; exists {
		if entry.Action == ActionErase {
			return nil, nil
		}
		return entry.Current, nil
	}

	data, err := t.base.Read(t.ctx, k)
	if err != nil {
		return nil, err
	}

	// Only track entries that exist in the base
	if data != nil {
		t.items[k] = &TrackedEntry{
			Action:   ActionCache,
			Original: data,
			Current:  data,
		}
	}

	return data, nil
}

// Exists checks if an entry exists
func (t *ApplyStateTable) Exists(k keylet.Keylet) (bool, error) {
	if entry, exists := t.items[k]; exists {
		return entry.Action != ActionErase, nil
	}
	return t.base.Exists(t.ctx, k)
}

// Insert adds a new entry
func (t *ApplyStateTable) Insert(k keylet.Keylet, data []byte) error {
	if entry, exists := t.items[k]; exists {
		if entry.Action != ActionErase {
			return fmt.Errorf("%w: %s", ErrAlreadyExists, k)
		}
		// Re-inserting a deleted entry becomes a modify
		entry.Action = ActionModify
		entry.Current = data
		return nil
	}

	exists, err := t.base.Exists(t.ctx, k)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, k)
	}

	t.items[k] = &TrackedEntry{
		Action:  ActionInsert,
		Current: data,
	}
	return nil
}

// Update modifies an existing entry
func (t *ApplyStateTable) Update(k keylet.Keylet, data []byte) error {
	if entry, exists := t.items[k]; exists {
		if entry.Action == ActionErase {
			return fmt.Errorf("update of erased entry %s", k)
		}
		if entry.Action == ActionCache {
			entry.Action = ActionModify
		}
		// Inserts stay inserts with new data
		entry.Current = data
		return nil
	}

	original, err := t.base.Read(t.ctx, k)
	if err != nil {
		return err
	}
	if original == nil {
		return fmt.Errorf("update of missing entry %s", k)
	}

	t.items[k] = &TrackedEntry{
		Action:   ActionModify,
		Original: original,
		Current:  data,
	}
	return nil
}

// Erase removes an entry
func (t *ApplyStateTable) Erase(k keylet.Keylet) error {
	if entry, exists := t.items[k]; exists {
		if entry.Action == ActionErase {
			return fmt.Errorf("entry %s already deleted", k)
		}
		if entry.Action == ActionInsert {
			// Inserting then deleting is no change
			delete(t.items, k)
			return nil
		}
		entry.Action = ActionErase
		return nil
	}

	original, err := t.base.Read(t.ctx, k)
	if err != nil {
		return err
	}
	if original == nil {
		return fmt.Errorf("erase of missing entry %s", k)
	}

	t.items[k] = &TrackedEntry{
		Action:   ActionErase,
		Original: original,
		Current:  original,
	}
	return nil
}

// Changes returns the pending modifications in storage-key order.
func (t *ApplyStateTable) Changes() []AffectedNode {
	nodes := make([]AffectedNode, 0, len(t.items))
	for k, entry := range t.items {
		switch entry.Action {
		case ActionCache:
			continue
		case ActionModify:
			if bytes.Equal(entry.Original, entry.Current) {
				continue
			}
		}
		nodes = append(nodes, AffectedNode{
			Keylet:   k,
			Action:   entry.Action,
			Original: entry.Original,
			Current:  entry.Current,
		})
	}
	sort.Slice(nodes, func(i, j int) bool {
		return bytes.Compare(nodes[i].Keylet.Bytes(), nodes[j].Keylet.Bytes()) < 0
	})
	return nodes
}

// Apply commits every pending change to the base store in one batch and
// returns what changed.
func (t *ApplyStateTable) Apply() ([]AffectedNode, error) {
	nodes := t.Changes()

	ops := make([]database.BatchOperation, 0, len(nodes))
	for _, n := range nodes {
		if n.Action == ActionErase {
			ops = append(ops, database.Del(n.Keylet.Bytes()))
			continue
		}
		ops = append(ops, database.Put(n.Keylet.Bytes(), n.Current))
	}

	if err := t.base.Commit(t.ctx, ops); err != nil {
		return nil, fmt.Errorf("commit ledger batch: %w", err)
	}

	t.items = make(map[keylet.Keylet]*TrackedEntry)
	return nodes, nil
}
