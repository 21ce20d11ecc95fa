package registry

import (
	"reflect"
	"sync"
)

// The index map registry associates Go record types with their DynamoDB key
// patterns (PK, SK, GSI keys).

var (
	indexMapRegistry = make(map[reflect.Type]map[string]string)
	indexMapMu       sync.RWMutex
)

// RegisterIndexMap associates a Go type T with a given DynamoDB index map (PK, SK, etc.).
func RegisterIndexMap[T any](idxMap map[string]string) {
	var zero T
	t := reflect.TypeOf(zero)

	indexMapMu.Lock()
	defer indexMapMu.Unlock()
	indexMapRegistry[t] = idxMap
}

// GetIndexMap retrieves the indexMap for type T, if any.
func GetIndexMap[T any]() (map[string]string, bool) {
	var zero T
	t := reflect.TypeOf(zero)

	indexMapMu.RLock()
	defer indexMapMu.RUnlock()
	m, ok := indexMapRegistry[t]
	return m, ok
}
