// Package store provides the key-value persistence used for history, saved
// and favorite collections. Collections are always read and written whole.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// Store is a synchronous key-value store. Get reports absent keys with
// ok == false rather than an error. The last writer wins.
type Store interface {
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
	Close() error
}

type Kind string

const (
	KindMemory Kind = "memory"
	KindFile   Kind = "file"
	KindSQLite Kind = "sqlite"
)

func (k Kind) String() string {
	return string(k)
}

var Kinds = []Kind{KindMemory, KindFile, KindSQLite}

func IsKind(s string) bool {
	return slices.Contains(Kinds, Kind(s))
}

var ErrInvalidKey = errors.New("invalid store key")

// Open creates the store backend of the given kind under dataDir.
func Open(log *zap.Logger, kind Kind, dataDir string) (Store, error) {
	switch kind {
	case KindMemory:
		return NewMemory(), nil
	case KindFile:
		return NewFile(log, dataDir)
	case KindSQLite:
		return NewSQLite(dataDir)
	default:
		return nil, fmt.Errorf("unsupported store: %q", kind)
	}
}

// GetJSON decodes the value at key into v. ok is false when the key is absent.
func GetJSON(s Store, key string, v any) (bool, error) {
	data, ok, err := s.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes v and writes it to key.
func SetJSON(s Store, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(key, data)
}
