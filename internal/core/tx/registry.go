package tx

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// Factory returns an empty transaction of one type.
type Factory func() Transaction

var (
	registryMu sync.RWMutex
	registry   = make(map[Type]Factory)
)

// Register makes a transaction type constructible by NewFromType and
// FromJSON. Transaction packages call it from init.
func Register(t Type, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[t]; dup {
		panic(fmt.Sprintf("tx: duplicate registration for %s", t))
	}
	registry[t] = f
}

// Registered returns the registered types in ascending order.
func Registered() []Type {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]Type, 0, len(registry))
	for t := range registry {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NewFromType creates a new transaction of the given type
func NewFromType(t Type) (Transaction, error) {
	registryMu.RLock()
	f, ok := registry[t]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTransactionType, t)
	}
	return f(), nil
}

// FromJSON creates a Transaction from a JSON object
func FromJSON(data []byte) (Transaction, error) {
	var raw struct {
		TransactionType string `json:"TransactionType"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	txType, ok := TypeFromName(raw.TransactionType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransactionType, raw.TransactionType)
	}

	tx, err := NewFromType(txType)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, tx); err != nil {
		return nil, err
	}

	return tx, nil
}
