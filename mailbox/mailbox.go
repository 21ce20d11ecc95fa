package mailbox

import (
	"sync"

	"github.com/docsmith/implindex/storagemodels"
)

// ConsumerFunc accepts a just-produced implementor table and incorporates it
// into live consumer state. The call is fire-and-forget; nothing is returned.
type ConsumerFunc func(storagemodels.Table)

// Mailbox coordinates the handoff of implementor tables between a producer
// (a fragment load) and a consumer that may not have initialized yet. It
// holds an optional consumer reference plus a single pending slot. The slot
// has a single-writer/single-reader lifecycle: a load fills it when no
// consumer is attached, and the consumer drains it exactly once on Attach.
type Mailbox struct {
	mu       sync.Mutex
	consumer ConsumerFunc
	pending  storagemodels.Table
	hasTable bool
}

// New creates an empty Mailbox with no consumer and an empty pending slot.
func New() *Mailbox {
	return &Mailbox{}
}

// Publish delivers a table through exactly one of two paths: if a consumer is
// attached it is invoked synchronously with the table, otherwise the table is
// placed in the pending slot, overwriting any previous contents. Overwrite is
// last-write-wins; two loads before any consumer attaches leave only the
// second table pending.
//
// A consumer that panics does so on the caller's goroutine; the mailbox has
// no recovery to offer.
func (m *Mailbox) Publish(t storagemodels.Table) {
	m.mu.Lock()
	fn := m.consumer
	if fn == nil {
		m.pending = t
		m.hasTable = true
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	// Invoked outside the lock so the consumer may call back into the mailbox.
	fn(t)
}

// Attach registers fn as the consumer and drains the pending slot if it is
// occupied: the held table is cleared from the slot and delivered to fn
// before Attach returns. Attaching replaces any previous consumer.
func (m *Mailbox) Attach(fn ConsumerFunc) {
	m.mu.Lock()
	m.consumer = fn
	var drained storagemodels.Table
	deliver := false
	if m.hasTable {
		drained = m.pending
		m.pending = nil
		m.hasTable = false
		deliver = true
	}
	m.mu.Unlock()

	if deliver && fn != nil {
		fn(drained)
	}
}

// Detach clears the consumer. Subsequent publishes queue into the pending
// slot again.
func (m *Mailbox) Detach() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.consumer = nil
}

// Pending reports the table currently held in the pending slot, if any,
// without draining it.
func (m *Mailbox) Pending() (storagemodels.Table, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending, m.hasTable
}

// Attached reports whether a consumer is currently registered.
func (m *Mailbox) Attached() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.consumer != nil
}

// defaultMailbox is the process-wide rendezvous point, the well-known slot a
// consumer checks during its own initialization.
var defaultMailbox = New()

// Default returns the process-wide mailbox.
func Default() *Mailbox {
	return defaultMailbox
}

// Publish publishes a table to the process-wide mailbox.
func Publish(t storagemodels.Table) {
	defaultMailbox.Publish(t)
}

// Attach registers a consumer on the process-wide mailbox, draining any
// pending table.
func Attach(fn ConsumerFunc) {
	defaultMailbox.Attach(fn)
}

// Detach clears the consumer on the process-wide mailbox.
func Detach() {
	defaultMailbox.Detach()
}

// Pending reports the process-wide pending slot without draining it.
func Pending() (storagemodels.Table, bool) {
	return defaultMailbox.Pending()
}
