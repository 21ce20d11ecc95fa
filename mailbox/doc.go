/*
Package mailbox implements the deferred handoff between implementor table
producers and their consumer.

Generated fragment artifacts are loaded as soon as a documentation build is
read, but the consumer that wants the tables (typically a search index) may
not have initialized yet. The Mailbox bridges that gap: a Publish either
forwards the table to the attached consumer synchronously, or parks it in a
single pending slot for the consumer to drain when it attaches.

After any Publish exactly one of the two holds: the table was delivered to a
live consumer, or it sits in the pending slot. Never both, never neither.
The pending slot is overwrite-on-collision (last write wins); it never merges
tables on its own.

	// Producer side, e.g. after parsing a fragment:
	mailbox.Publish(table)

	// Consumer side, during its own initialization:
	mailbox.Attach(func(t storagemodels.Table) {
	    index.Add(t)
	})

Publish does not deduplicate: publishing twice with a consumer attached
invokes it twice. A single fragment artifact is loaded once per build, so
repeated delivery only happens when the caller repeats itself.

The package-level Publish/Attach/Detach/Pending operate on a process-wide
default mailbox. Per-trait mailboxes are available through the registry
package.
*/
package mailbox
