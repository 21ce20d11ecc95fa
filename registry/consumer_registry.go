package registry

import (
	"fmt"
	"sync"

	"github.com/docsmith/implindex/errors"
	"github.com/docsmith/implindex/mailbox"
	"github.com/docsmith/implindex/storagemodels"
)

// WellKnownConsumer is the name the site's primary table consumer registers
// itself under. Fragment loaders look it up before falling back to the
// pending slot.
const WellKnownConsumer = "register_implementors"

var (
	consumerMu       sync.RWMutex
	consumerRegistry = make(map[string]mailbox.ConsumerFunc)
)

// RegisterConsumer registers a table consumer under a well-known name.
// If a consumer is already registered for the name, it panics to prevent
// accidental overrides.
func RegisterConsumer(name string, fn mailbox.ConsumerFunc) {
	consumerMu.Lock()
	defer consumerMu.Unlock()
	if _, exists := consumerRegistry[name]; exists {
		panic(fmt.Sprintf("consumer registry: consumer with name %q already registered", name))
	}
	consumerRegistry[name] = fn
}

// GetConsumer returns the consumer registered under the given name.
// If no consumer is registered, it returns an error.
func GetConsumer(name string) (mailbox.ConsumerFunc, error) {
	consumerMu.RLock()
	defer consumerMu.RUnlock()
	fn, ok := consumerRegistry[name]
	if !ok {
		return nil, errors.NewNoConsumerError(name)
	}
	return fn, nil
}

// UnregisterConsumer removes a named consumer, typically during teardown.
func UnregisterConsumer(name string) {
	consumerMu.Lock()
	defer consumerMu.Unlock()
	delete(consumerRegistry, name)
}

// Dispatch performs the forward-or-queue handoff against the well-known
// consumer name: if a consumer is registered it receives the table
// synchronously, otherwise the table is parked in the default mailbox's
// pending slot for the consumer to drain when it attaches.
func Dispatch(t storagemodels.Table) {
	fn, err := GetConsumer(WellKnownConsumer)
	if err != nil {
		mailbox.Publish(t)
		return
	}
	fn(t)
}
