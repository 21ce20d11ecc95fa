package registry

import (
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// UnmarshalFunc defines a function that takes a raw DynamoDB item and returns the unmarshaled record.
type UnmarshalFunc func(item map[string]types.AttributeValue) (interface{}, error)

var (
	recordMu       sync.RWMutex
	recordRegistry = make(map[string]UnmarshalFunc)
)

// RegisterRecordType registers an unmarshal function for a given record type
// name (the RecordType attribute injected at persist time). If a function is
// already registered for the name, it panics to prevent accidental overrides.
func RegisterRecordType(name string, fn UnmarshalFunc) {
	recordMu.Lock()
	defer recordMu.Unlock()
	if _, exists := recordRegistry[name]; exists {
		panic(fmt.Sprintf("record registry: record type %q already registered", name))
	}
	recordRegistry[name] = fn
}

// GetUnmarshalFunc returns the registered unmarshal function for the given record type name.
// If no function is registered, it returns an error.
func GetUnmarshalFunc(name string) (UnmarshalFunc, error) {
	recordMu.RLock()
	defer recordMu.RUnlock()
	fn, ok := recordRegistry[name]
	if !ok {
		return nil, fmt.Errorf("record registry: no record type registered for name %q", name)
	}
	return fn, nil
}
