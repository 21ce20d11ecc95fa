package registry

import (
	"sort"
	"sync"

	"github.com/docsmith/implindex/mailbox"
)

// Each trait gets its own mailbox so implementor tables for different traits
// rendezvous independently.

var (
	mailboxMu       sync.RWMutex
	mailboxRegistry = make(map[string]*mailbox.Mailbox)
)

// MailboxFor returns the mailbox for the given trait path, creating it on
// first use.
func MailboxFor(traitPath string) *mailbox.Mailbox {
	mailboxMu.RLock()
	m, ok := mailboxRegistry[traitPath]
	mailboxMu.RUnlock()
	if ok {
		return m
	}

	mailboxMu.Lock()
	defer mailboxMu.Unlock()
	if m, ok := mailboxRegistry[traitPath]; ok {
		return m
	}
	m = mailbox.New()
	mailboxRegistry[traitPath] = m
	return m
}

// Traits returns the trait paths with a mailbox, sorted.
func Traits() []string {
	mailboxMu.RLock()
	defer mailboxMu.RUnlock()
	traits := make([]string, 0, len(mailboxRegistry))
	for trait := range mailboxRegistry {
		traits = append(traits, trait)
	}
	sort.Strings(traits)
	return traits
}

// ResetMailboxes clears all trait mailboxes. Intended for tests and full
// site reloads.
func ResetMailboxes() {
	mailboxMu.Lock()
	defer mailboxMu.Unlock()
	mailboxRegistry = make(map[string]*mailbox.Mailbox)
}
